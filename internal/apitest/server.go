// Package apitest runs an in-memory rendition of the booking API for
// service-level tests. It honours the same routes, bearer auth and error
// envelope as the real backend, so tests exercise the full client path
// down to the wire.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/bekzodm/sayohat/internal/model"
)

// Token is the bearer token the fake server accepts after login.
const Token = "test-admin-token"

// Server is the fake API plus its mutable state. All fields are guarded by
// mu; tests may seed them directly before making calls.
type Server struct {
	mu sync.Mutex

	Users        []model.User
	Tours        []model.Tour
	Bookings     []model.Booking
	Categories   []model.Category
	Difficulties []model.Difficulty

	Profile  model.User
	Password string // accepted by /api/auth/login for Profile.Email

	nextID int

	httpSrv *httptest.Server
}

// New starts the fake API with an admin profile and a working login.
func New() *Server {
	s := &Server{
		Profile: model.User{
			ID: 1, Email: "admin@sayohat.test",
			FirstName: "Admin", LastName: "User", Role: model.RoleAdmin,
		},
		Password: "secret123",
		nextID:   100,
	}
	s.httpSrv = httptest.NewServer(s.router())
	return s
}

// URL is the base URL tests point the transport client at.
func (s *Server) URL() string { return s.httpSrv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.httpSrv.Close() }

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)

		r.Get("/api/users/profile", s.handleProfile)
		r.Get("/api/users", s.handleListUsers)
		r.Post("/api/users", s.handleCreateUser)
		r.Patch("/api/users/{id}", s.handleUpdateUser)
		r.Delete("/api/users/{id}", s.handleDeleteUser)

		r.Get("/api/tours", s.handleListTours)
		r.Get("/api/tours/admin", s.handleListTours)
		r.Post("/api/tours", s.handleCreateTour)
		r.Patch("/api/tours/{id}", s.handleUpdateTour)
		r.Delete("/api/tours/{id}", s.handleDeleteTour)

		r.Get("/api/bookings", s.handleListBookings)
		r.Patch("/api/bookings/{id}", s.handleUpdateBooking)
		r.Delete("/api/bookings/{id}", s.handleDeleteBooking)
		r.Post("/api/bookings/{id}/confirm-payment", s.transition(model.TransitionConfirmPayment))
		r.Post("/api/bookings/{id}/complete", s.transition(model.TransitionComplete))
		r.Post("/api/bookings/{id}/cancel", s.transition(model.TransitionCancel))

		r.Post("/api/payments/generate-invoice/{id}", s.handleGenerateInvoice)

		r.Get("/api/categories", s.handleListCategories)
		r.Get("/api/categories/url/{slug}", s.handleCategoryBySlug)
		r.Post("/api/categories", s.handleCreateCategory)
		r.Patch("/api/categories/{id}", s.handleUpdateCategory)
		r.Delete("/api/categories/{id}", s.handleDeleteCategory)

		r.Get("/api/difficulties", s.handleListDifficulties)
		r.Post("/api/difficulties", s.handleCreateDifficulty)
		r.Patch("/api/difficulties/{id}", s.handleUpdateDifficulty)
		r.Delete("/api/difficulties/{id}", s.handleDeleteDifficulty)

		r.Post("/api/upload/file", s.handleUpload)
	})

	return r
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	ok := creds.Email == s.Profile.Email && creds.Password == s.Password
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, model.LoginResponse{Token: Token})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	profile := s.Profile
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, profile)
}

// ── Users ────────────────────────────────────────────────────────────────────

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := append([]model.User(nil), s.Users...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	u.ID = s.allocID()
	s.Users = append(s.Users, u)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Users {
		if s.Users[i].ID == id {
			var patch model.User
			if err := json.NewDecoder(r.Body).Decode(&patch); err == nil {
				patch.ID = id
				s.Users[i] = patch
			}
			writeJSON(w, http.StatusOK, s.Users[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "user not found")
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Users {
		if s.Users[i].ID == id {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "user not found")
}

// ── Tours ────────────────────────────────────────────────────────────────────

func (s *Server) handleListTours(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tours := append([]model.Tour(nil), s.Tours...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, tours)
}

func (s *Server) handleCreateTour(w http.ResponseWriter, r *http.Request) {
	var t model.Tour
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	t.ID = s.allocID()
	s.Tours = append(s.Tours, t)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTour(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Tours {
		if s.Tours[i].ID == id {
			var patch model.Tour
			if err := json.NewDecoder(r.Body).Decode(&patch); err == nil {
				patch.ID = id
				s.Tours[i] = patch
			}
			writeJSON(w, http.StatusOK, s.Tours[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "tour not found")
}

func (s *Server) handleDeleteTour(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Tours {
		if s.Tours[i].ID == id {
			s.Tours = append(s.Tours[:i], s.Tours[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "tour not found")
}

// ── Bookings ─────────────────────────────────────────────────────────────────

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	bookings := append([]model.Booking(nil), s.Bookings...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Bookings {
		if s.Bookings[i].ID == id {
			var patch model.Booking
			if err := json.NewDecoder(r.Body).Decode(&patch); err == nil {
				patch.ID = id
				s.Bookings[i] = patch
			}
			writeJSON(w, http.StatusOK, s.Bookings[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "booking not found")
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Bookings {
		if s.Bookings[i].ID == id {
			s.Bookings = append(s.Bookings[:i], s.Bookings[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "booking not found")
}

// transition applies the same guards the real backend enforces, so an
// out-of-order action comes back as a rejection the client must surface.
func (s *Server) transition(t model.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlID(r)
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.Bookings {
			if s.Bookings[i].ID != id {
				continue
			}
			b := s.Bookings[i]
			if err := b.GuardTransition(t); err != nil {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			switch t {
			case model.TransitionConfirmPayment:
				b.IsPaid = true
			case model.TransitionComplete:
				b.Status = model.StatusCompleted
			case model.TransitionCancel:
				b.Status = model.StatusCancelled
			}
			s.Bookings[i] = b
			writeJSON(w, http.StatusOK, b)
			return
		}
		writeError(w, http.StatusNotFound, "booking not found")
	}
}

func (s *Server) handleGenerateInvoice(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.Bookings {
		if b.ID == id {
			writeJSON(w, http.StatusOK, model.Invoice{
				InvoiceURL: fmt.Sprintf("%s/invoices/%d.pdf", s.httpSrv.URL, id),
			})
			return
		}
	}
	writeError(w, http.StatusNotFound, "booking not found")
}

// ── Categories / difficulties ────────────────────────────────────────────────

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	categories := append([]model.Category(nil), s.Categories...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.Categories {
		if c.CategoryURL == slug {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "category not found")
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var c model.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	c.ID = s.allocID()
	s.Categories = append(s.Categories, c)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			var patch model.Category
			if err := json.NewDecoder(r.Body).Decode(&patch); err == nil {
				patch.ID = id
				s.Categories[i] = patch
			}
			writeJSON(w, http.StatusOK, s.Categories[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "category not found")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			s.Categories = append(s.Categories[:i], s.Categories[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "category not found")
}

func (s *Server) handleListDifficulties(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	difficulties := append([]model.Difficulty(nil), s.Difficulties...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, difficulties)
}

func (s *Server) handleCreateDifficulty(w http.ResponseWriter, r *http.Request) {
	var d model.Difficulty
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	d.ID = s.allocID()
	s.Difficulties = append(s.Difficulties, d)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleUpdateDifficulty(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Difficulties {
		if s.Difficulties[i].ID == id {
			var patch model.Difficulty
			if err := json.NewDecoder(r.Body).Decode(&patch); err == nil {
				patch.ID = id
				s.Difficulties[i] = patch
			}
			writeJSON(w, http.StatusOK, s.Difficulties[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "difficulty not found")
}

func (s *Server) handleDeleteDifficulty(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Difficulties {
		if s.Difficulties[i].ID == id {
			s.Difficulties = append(s.Difficulties[:i], s.Difficulties[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "difficulty not found")
}

// ── Upload ───────────────────────────────────────────────────────────────────

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field missing")
		return
	}
	defer file.Close()

	writeJSON(w, http.StatusCreated, model.UploadedFile{
		OriginalName: header.Filename,
		Filename:     "stored-" + header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		URL:          s.httpSrv.URL + "/files/stored-" + header.Filename,
	})
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *Server) allocID() int {
	s.nextID++
	return s.nextID
}

func urlID(r *http.Request) int {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	return id
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
