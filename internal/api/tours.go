package api

import (
	"context"
	"fmt"

	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/internal/transport"
)

// TourPayload is the wire shape of tour create/update bodies. Dates travel
// as startDate/endDate strings — there is no dateRange key on the wire —
// and list-like fields as JSON arrays.
type TourPayload struct {
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Price            float64  `json:"price"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	AvailableSeats   int      `json:"availableSeats"`
	CategoryID       *int     `json:"categoryId,omitempty"`
	DifficultyID     *int     `json:"difficultyId,omitempty"`
	IsActive         bool     `json:"isActive"`
	Images           []string `json:"images,omitempty"`
	IncludedServices []string `json:"includedServices,omitempty"`
	ExcludedServices []string `json:"excludedServices,omitempty"`
	Itinerary        []string `json:"itinerary,omitempty"`
}

// ToursService is CRUD over /api/tours plus the admin listing.
type ToursService struct {
	t         *transport.Client
	mut       *cache.Mutator
	list      *cache.Query[[]model.Tour]
	adminList *cache.Query[[]model.Tour]
}

func newToursService(t *transport.Client, store *cache.Store, mut *cache.Mutator) *ToursService {
	s := &ToursService{t: t, mut: mut}
	s.list = cache.NewQuery(store, cache.ListKey(ResourceTours), s.fetcher("/api/tours"))
	s.adminList = cache.NewQuery(store, cache.ListKey(ResourceToursAdmin), s.fetcher("/api/tours/admin"))
	return s
}

// List returns the public tour listing.
func (s *ToursService) List(ctx context.Context) ([]model.Tour, error) {
	return s.list.Get(ctx)
}

// AdminList returns the admin listing, which includes inactive tours.
func (s *ToursService) AdminList(ctx context.Context) ([]model.Tour, error) {
	return s.adminList.Get(ctx)
}

// ListQuery exposes the public-list coordinator for subscriptions.
func (s *ToursService) ListQuery() *cache.Query[[]model.Tour] { return s.list }

// affectedKeys is every tour key a write can stale: both listings and,
// when id is known, the tour's detail key.
func affectedTourKeys(id int) []cache.Key {
	keys := []cache.Key{
		cache.ListKey(ResourceTours),
		cache.ListKey(ResourceToursAdmin),
	}
	if id != 0 {
		keys = append(keys, cache.DetailKey(ResourceTours, fmt.Sprint(id)))
	}
	return keys
}

// Create posts a new tour.
func (s *ToursService) Create(ctx context.Context, p TourPayload) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "tours.create",
		Invalidates: affectedTourKeys(0),
		Do: func(ctx context.Context) error {
			_, err := s.t.Post("/api/tours").Body(p).Send(ctx)
			return err
		},
	})
}

// Update patches an existing tour.
func (s *ToursService) Update(ctx context.Context, id int, p TourPayload) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "tours.update",
		Invalidates: affectedTourKeys(id),
		Do: func(ctx context.Context) error {
			_, err := s.t.Patch(fmt.Sprintf("/api/tours/%d", id)).Body(p).Send(ctx)
			return err
		},
	})
}

// Delete removes a tour.
func (s *ToursService) Delete(ctx context.Context, id int) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "tours.delete",
		Invalidates: affectedTourKeys(id),
		Do: func(ctx context.Context) error {
			_, err := s.t.Delete(fmt.Sprintf("/api/tours/%d", id)).Send(ctx)
			return err
		},
	})
}

func (s *ToursService) fetcher(path string) cache.Fetcher[[]model.Tour] {
	return func(ctx context.Context) ([]model.Tour, error) {
		resp, err := s.t.Get(path).Send(ctx)
		if err != nil {
			return nil, err
		}
		var tours []model.Tour
		if err := resp.JSON(&tours); err != nil {
			return nil, err
		}
		return tours, nil
	}
}
