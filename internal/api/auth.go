package api

import (
	"context"
	"fmt"

	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/internal/session"
	"github.com/bekzodm/sayohat/internal/transport"
	"github.com/bekzodm/sayohat/pkg/logger"
	"github.com/bekzodm/sayohat/pkg/validate"
)

// ErrNotAdmin is returned when a tourist account tries to open the dashboard.
var ErrNotAdmin = fmt.Errorf("auth: only admin users can access the dashboard")

// AuthService handles login, logout and the current user's profile.
type AuthService struct {
	t       *transport.Client
	store   *cache.Store
	sess    session.Store
	profile *cache.Query[model.User]
}

func newAuthService(t *transport.Client, store *cache.Store, sess session.Store) *AuthService {
	s := &AuthService{t: t, store: store, sess: sess}
	s.profile = cache.NewQuery(store, cache.ListKey(ResourceProfile), s.fetchProfile)
	return s
}

// Login exchanges credentials for a bearer token, persists it, and verifies
// the account is an admin. A non-admin login is immediately undone.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	if errs := validate.Struct(creds); validate.HasErrors(errs) {
		return model.User{}, fmt.Errorf("auth: invalid credentials: %v", errs)
	}

	resp, err := s.t.Post("/api/auth/login").Body(creds).Send(ctx)
	if err != nil {
		return model.User{}, err
	}

	var login model.LoginResponse
	if err := resp.JSON(&login); err != nil {
		return model.User{}, err
	}
	if err := s.sess.Set(login.Token); err != nil {
		return model.User{}, err
	}

	user, err := s.Profile(ctx)
	if err != nil {
		s.Logout()
		return model.User{}, err
	}
	if !user.IsAdmin() {
		s.Logout()
		return model.User{}, ErrNotAdmin
	}

	logger.Info("logged in", "email", user.Email)
	return user, nil
}

// Profile returns the authenticated user, cached until invalidated.
func (s *AuthService) Profile(ctx context.Context) (model.User, error) {
	return s.profile.Get(ctx)
}

// Logout clears the persisted token and resets the resource cache.
func (s *AuthService) Logout() {
	_ = s.sess.Clear()
	s.store.Reset()
}

func (s *AuthService) fetchProfile(ctx context.Context) (model.User, error) {
	resp, err := s.t.Get("/api/users/profile").Send(ctx)
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := resp.JSON(&user); err != nil {
		return model.User{}, err
	}
	return user, nil
}
