// Package dashboard aggregates the overview numbers shown on the landing
// screen from the cached resource lists.
package dashboard

import (
	"context"

	"github.com/bekzodm/sayohat/internal/api"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/pkg/collection"
)

// Stats is the overview snapshot.
type Stats struct {
	TotalUsers      int
	TotalTours      int
	TotalBookings   int
	PendingBookings int
	// TotalRevenue sums tour price × people over paid bookings. Bookings
	// whose tour is missing from the listing contribute nothing.
	TotalRevenue float64
}

// Collect fetches the three lists (through the resource cache, so repeat
// calls are free until something invalidates) and derives the snapshot.
func Collect(ctx context.Context, a *api.API) (Stats, error) {
	users, err := a.Users.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	tours, err := a.Tours.AdminList(ctx)
	if err != nil {
		return Stats{}, err
	}
	bookings, err := a.Bookings.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Derive(users, tours, bookings), nil
}

// Derive computes the snapshot from already-loaded lists.
func Derive(users []model.User, tours []model.Tour, bookings []model.Booking) Stats {
	priceByTour := map[int]float64{}
	for _, t := range tours {
		priceByTour[t.ID] = t.Price
	}

	paid := collection.Filter(bookings, func(b model.Booking) bool { return b.IsPaid })
	revenue := collection.SumBy(paid, func(b model.Booking) float64 {
		return priceByTour[b.TourID] * float64(b.NumberOfPeople)
	})

	return Stats{
		TotalUsers:    len(users),
		TotalTours:    len(tours),
		TotalBookings: len(bookings),
		PendingBookings: collection.CountBy(bookings, func(b model.Booking) bool {
			return b.Status == model.StatusPending
		}),
		TotalRevenue: revenue,
	}
}
