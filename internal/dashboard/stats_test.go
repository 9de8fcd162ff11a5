package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekzodm/sayohat/internal/api"
	"github.com/bekzodm/sayohat/internal/apitest"
	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/dashboard"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/internal/session"
	"github.com/bekzodm/sayohat/internal/transport"
)

func TestDerive(t *testing.T) {
	users := []model.User{{ID: 1}, {ID: 2}, {ID: 3}}
	tours := []model.Tour{
		{ID: 10, Price: 100},
		{ID: 11, Price: 250},
	}
	bookings := []model.Booking{
		{ID: 1, TourID: 10, NumberOfPeople: 2, Status: model.StatusConfirmed, IsPaid: true},
		{ID: 2, TourID: 11, NumberOfPeople: 3, Status: model.StatusPending},
		{ID: 3, TourID: 11, NumberOfPeople: 1, Status: model.StatusCompleted, IsPaid: true},
		{ID: 4, TourID: 99, NumberOfPeople: 5, Status: model.StatusPending, IsPaid: true}, // unknown tour
		{ID: 5, TourID: 10, NumberOfPeople: 4, Status: model.StatusCancelled},
	}

	stats := dashboard.Derive(users, tours, bookings)

	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalTours)
	assert.Equal(t, 5, stats.TotalBookings)
	assert.Equal(t, 2, stats.PendingBookings)
	// 2×100 + 1×250; the paid booking on an unknown tour contributes nothing.
	assert.Equal(t, 450.0, stats.TotalRevenue)
}

func TestDeriveEmpty(t *testing.T) {
	stats := dashboard.Derive(nil, nil, nil)
	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.PendingBookings)
}

func TestCollectGoesThroughCache(t *testing.T) {
	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.Users = []model.User{{ID: 1, Email: "admin@sayohat.test"}}
	srv.Tours = []model.Tour{{ID: 10, Price: 80}}
	srv.Bookings = []model.Booking{
		{ID: 1, TourID: 10, NumberOfPeople: 2, Status: model.StatusPending, IsPaid: true},
	}

	sess := session.NewMemoryStore()
	require.NoError(t, sess.Set(apitest.Token))
	client := transport.New(srv.URL(), sess, transport.WithTimeout(5*time.Second))
	a := api.New(client, cache.NewStore(), sess)

	stats, err := dashboard.Collect(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 1, stats.PendingBookings)
	assert.Equal(t, 160.0, stats.TotalRevenue)

	// A second collect is served from cache even if the server is gone.
	srv.Close()
	again, err := dashboard.Collect(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}
