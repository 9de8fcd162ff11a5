package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bekzodm/sayohat/internal/api"
	"github.com/bekzodm/sayohat/internal/model"
)

// sayohat bookings:list
var bookingsListCmd = &cobra.Command{
	Use:   "bookings:list",
	Short: "List bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		bookings, err := a.Bookings.List(cmd.Context())
		if err != nil {
			return err
		}
		w := table()
		fmt.Fprintln(w, "ID\tTOUR\tPEOPLE\tSTATUS\tPAID")
		for _, b := range bookings {
			fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%t\n",
				b.ID, b.TourID, b.NumberOfPeople, b.Status, b.IsPaid)
		}
		return w.Flush()
	},
}

// sayohat bookings:confirm-payment ID
var bookingsConfirmCmd = &cobra.Command{
	Use:   "bookings:confirm-payment ID",
	Short: "Mark a booking's payment as received",
	Args:  cobra.ExactArgs(1),
	RunE:  transitionRunE(model.TransitionConfirmPayment, "Payment confirmed."),
}

// sayohat bookings:complete ID
var bookingsCompleteCmd = &cobra.Command{
	Use:   "bookings:complete ID",
	Short: "Mark a booking as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  transitionRunE(model.TransitionComplete, "Booking completed."),
}

// sayohat bookings:cancel ID
var bookingsCancelCmd = &cobra.Command{
	Use:   "bookings:cancel ID",
	Short: "Cancel a pending booking",
	Args:  cobra.ExactArgs(1),
	RunE:  transitionRunE(model.TransitionCancel, "Booking cancelled."),
}

// sayohat bookings:invoice ID
var bookingsInvoiceCmd = &cobra.Command{
	Use:   "bookings:invoice ID",
	Short: "Generate an invoice for a booking and print its URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid booking id %q", args[0])
		}
		invoice, err := a.Payments.GenerateInvoice(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Println(invoice.InvoiceURL)
		return nil
	},
}

// transitionRunE finds the booking by id so the local guard sees current
// status and payment state before the request goes out.
func transitionRunE(t model.Transition, done string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid booking id %q", args[0])
		}
		booking, err := findBooking(cmd, a, id)
		if err != nil {
			return err
		}
		if err := a.Bookings.Transition(cmd.Context(), booking, t); err != nil {
			return err
		}
		fmt.Println(done)
		return nil
	}
}

func findBooking(cmd *cobra.Command, a *api.API, id int) (model.Booking, error) {
	bookings, err := a.Bookings.List(cmd.Context())
	if err != nil {
		return model.Booking{}, err
	}
	for _, b := range bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Booking{}, fmt.Errorf("booking %d not found", id)
}
