package api

import (
	"context"
	"fmt"

	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/internal/transport"
)

// BookingPayload is the wire shape of booking update bodies.
type BookingPayload struct {
	TourID          int    `json:"tourId,omitempty"`
	NumberOfPeople  int    `json:"numberOfPeople,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	ContactPhone    string `json:"contactPhone,omitempty"`
	ContactEmail    string `json:"contactEmail,omitempty"`
	Status          string `json:"status,omitempty"`
	IsPaid          *bool  `json:"isPaid,omitempty"`
}

// BookingsService is CRUD over /api/bookings plus the status transition
// actions. Transitions are guarded locally before any request goes out;
// the server is still the authority and its rejections surface verbatim.
type BookingsService struct {
	t    *transport.Client
	mut  *cache.Mutator
	list *cache.Query[[]model.Booking]
}

func newBookingsService(t *transport.Client, store *cache.Store, mut *cache.Mutator) *BookingsService {
	s := &BookingsService{t: t, mut: mut}
	s.list = cache.NewQuery(store, cache.ListKey(ResourceBookings), s.fetchList)
	return s
}

// List returns all bookings.
func (s *BookingsService) List(ctx context.Context) ([]model.Booking, error) {
	return s.list.Get(ctx)
}

// ListQuery exposes the coordinator for subscriptions.
func (s *BookingsService) ListQuery() *cache.Query[[]model.Booking] { return s.list }

func affectedBookingKeys(id int) []cache.Key {
	keys := []cache.Key{cache.ListKey(ResourceBookings)}
	if id != 0 {
		keys = append(keys, cache.DetailKey(ResourceBookings, fmt.Sprint(id)))
	}
	return keys
}

// Update patches a booking.
func (s *BookingsService) Update(ctx context.Context, id int, p BookingPayload) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "bookings.update",
		Invalidates: affectedBookingKeys(id),
		Do: func(ctx context.Context) error {
			_, err := s.t.Patch(fmt.Sprintf("/api/bookings/%d", id)).Body(p).Send(ctx)
			return err
		},
	})
}

// Delete removes a booking.
func (s *BookingsService) Delete(ctx context.Context, id int) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "bookings.delete",
		Invalidates: affectedBookingKeys(id),
		Do: func(ctx context.Context) error {
			_, err := s.t.Delete(fmt.Sprintf("/api/bookings/%d", id)).Send(ctx)
			return err
		},
	})
}

// Transition invokes one of the dedicated action endpoints
// (confirm-payment, complete, cancel) after its local guard passes.
// A failing guard returns *model.ErrInvalidTransition without any request.
func (s *BookingsService) Transition(ctx context.Context, b model.Booking, t model.Transition) error {
	if err := b.GuardTransition(t); err != nil {
		return err
	}
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "bookings." + string(t),
		Invalidates: affectedBookingKeys(b.ID),
		Do: func(ctx context.Context) error {
			_, err := s.t.Post(fmt.Sprintf("/api/bookings/%d/%s", b.ID, t)).Send(ctx)
			return err
		},
	})
}

func (s *BookingsService) fetchList(ctx context.Context) ([]model.Booking, error) {
	resp, err := s.t.Get("/api/bookings").Send(ctx)
	if err != nil {
		return nil, err
	}
	var bookings []model.Booking
	if err := resp.JSON(&bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
