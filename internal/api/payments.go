package api

import (
	"context"
	"fmt"

	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/internal/transport"
)

// PaymentsService generates invoices for bookings.
type PaymentsService struct {
	t   *transport.Client
	mut *cache.Mutator
}

func newPaymentsService(t *transport.Client, mut *cache.Mutator) *PaymentsService {
	return &PaymentsService{t: t, mut: mut}
}

// GenerateInvoice asks the server for an invoice for bookingID. The server
// may flip payment flags as a side effect, so the bookings list is
// invalidated on success.
func (s *PaymentsService) GenerateInvoice(ctx context.Context, bookingID int) (model.Invoice, error) {
	var invoice model.Invoice
	err := s.mut.Run(ctx, cache.Mutation{
		Name:        "payments.generate-invoice",
		Invalidates: []cache.Key{cache.ListKey(ResourceBookings)},
		Do: func(ctx context.Context) error {
			resp, err := s.t.Post(fmt.Sprintf("/api/payments/generate-invoice/%d", bookingID)).Send(ctx)
			if err != nil {
				return err
			}
			return resp.JSON(&invoice)
		},
	})
	return invoice, err
}
