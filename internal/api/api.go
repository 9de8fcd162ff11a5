// Package api exposes one typed service per dashboard resource, all wired
// through the transport client and the resource synchronization layer.
// Each service declares its cache keys and which keys every write affects,
// so staleness never outlives one invalidation cycle.
package api

import (
	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/session"
	"github.com/bekzodm/sayohat/internal/transport"
)

// Resource names used as cache key prefixes.
const (
	ResourceProfile      = "profile"
	ResourceUsers        = "users"
	ResourceTours        = "tours"
	ResourceToursAdmin   = "tours-admin"
	ResourceBookings     = "bookings"
	ResourceCategories   = "categories"
	ResourceDifficulties = "difficulties"
)

// API aggregates every resource service over one transport client, one
// session store and one resource cache. It is the explicit context object
// of the client: built once at start, Reset at logout.
type API struct {
	Auth         *AuthService
	Users        *UsersService
	Tours        *ToursService
	Bookings     *BookingsService
	Payments     *PaymentsService
	Categories   *CategoriesService
	Difficulties *DifficultiesService
	Uploads      *UploadService

	store *cache.Store
}

// New wires the services.
func New(t *transport.Client, store *cache.Store, sess session.Store) *API {
	mut := cache.NewMutator(store)

	return &API{
		Auth:         newAuthService(t, store, sess),
		Users:        newUsersService(t, store, mut),
		Tours:        newToursService(t, store, mut),
		Bookings:     newBookingsService(t, store, mut),
		Payments:     newPaymentsService(t, mut),
		Categories:   newCategoriesService(t, store, mut),
		Difficulties: newDifficultiesService(t, store, mut),
		Uploads:      newUploadService(t, mut),
		store:        store,
	}
}

// Store exposes the underlying cache, mainly for subscriptions.
func (a *API) Store() *cache.Store { return a.store }
