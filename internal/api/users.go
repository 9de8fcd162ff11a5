package api

import (
	"context"
	"fmt"

	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/internal/transport"
)

// UserPayload is the wire shape of user create/update bodies. Password is
// only sent on create; PATCH updates omit empty fields.
type UserPayload struct {
	Email       string `json:"email,omitempty"`
	Password    string `json:"password,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

// UsersService is CRUD over /api/users.
type UsersService struct {
	t    *transport.Client
	mut  *cache.Mutator
	list *cache.Query[[]model.User]
}

func newUsersService(t *transport.Client, store *cache.Store, mut *cache.Mutator) *UsersService {
	s := &UsersService{t: t, mut: mut}
	s.list = cache.NewQuery(store, cache.ListKey(ResourceUsers), s.fetchList)
	return s
}

// List returns all users, served from cache when fresh.
func (s *UsersService) List(ctx context.Context) ([]model.User, error) {
	return s.list.Get(ctx)
}

// ListQuery exposes the coordinator for subscriptions.
func (s *UsersService) ListQuery() *cache.Query[[]model.User] { return s.list }

// Create adds a user and invalidates the users list.
func (s *UsersService) Create(ctx context.Context, p UserPayload) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "users.create",
		Invalidates: []cache.Key{cache.ListKey(ResourceUsers)},
		Do: func(ctx context.Context) error {
			_, err := s.t.Post("/api/users").Body(p).Send(ctx)
			return err
		},
	})
}

// Update patches a user and invalidates the users list and the user's key.
func (s *UsersService) Update(ctx context.Context, id int, p UserPayload) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name: "users.update",
		Invalidates: []cache.Key{
			cache.ListKey(ResourceUsers),
			cache.DetailKey(ResourceUsers, fmt.Sprint(id)),
		},
		Do: func(ctx context.Context) error {
			_, err := s.t.Patch(fmt.Sprintf("/api/users/%d", id)).Body(p).Send(ctx)
			return err
		},
	})
}

// Delete removes a user and invalidates the users list and the user's key.
func (s *UsersService) Delete(ctx context.Context, id int) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name: "users.delete",
		Invalidates: []cache.Key{
			cache.ListKey(ResourceUsers),
			cache.DetailKey(ResourceUsers, fmt.Sprint(id)),
		},
		Do: func(ctx context.Context) error {
			_, err := s.t.Delete(fmt.Sprintf("/api/users/%d", id)).Send(ctx)
			return err
		},
	})
}

func (s *UsersService) fetchList(ctx context.Context) ([]model.User, error) {
	resp, err := s.t.Get("/api/users").Send(ctx)
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := resp.JSON(&users); err != nil {
		return nil, err
	}
	return users, nil
}
