package model

import "fmt"

// Booking statuses. Cancelled and completed are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking as served by /api/bookings.
type Booking struct {
	ID              int    `json:"id"`
	TourID          int    `json:"tourId"`
	NumberOfPeople  int    `json:"numberOfPeople"`
	Status          string `json:"status"`
	IsPaid          bool   `json:"isPaid"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	ContactPhone    string `json:"contactPhone,omitempty"`
	ContactEmail    string `json:"contactEmail,omitempty"`
}

// Transition is one of the dedicated booking action endpoints.
type Transition string

const (
	TransitionConfirmPayment Transition = "confirm-payment"
	TransitionComplete       Transition = "complete"
	TransitionCancel         Transition = "cancel"
)

// ErrInvalidTransition is returned when a transition's guard fails locally.
// The server remains the authority: even when a guard passes here, the server
// may still reject, and that rejection is surfaced verbatim.
type ErrInvalidTransition struct {
	Transition Transition
	Status     string
	IsPaid     bool
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("booking: cannot %s a booking with status=%s isPaid=%t",
		e.Transition, e.Status, e.IsPaid)
}

// CanConfirmPayment mirrors when the dashboard offers the confirm-payment
// action: the booking is unpaid and not cancelled.
func (b Booking) CanConfirmPayment() bool {
	return !b.IsPaid && b.Status != StatusCancelled
}

// CanCancel is true only while the booking is still pending.
func (b Booking) CanCancel() bool { return b.Status == StatusPending }

// CanComplete requires a confirmed, paid booking.
func (b Booking) CanComplete() bool {
	return b.Status == StatusConfirmed && b.IsPaid
}

// GuardTransition checks the local precondition for t.
func (b Booking) GuardTransition(t Transition) error {
	ok := false
	switch t {
	case TransitionConfirmPayment:
		ok = b.CanConfirmPayment()
	case TransitionComplete:
		ok = b.CanComplete()
	case TransitionCancel:
		ok = b.CanCancel()
	}
	if !ok {
		return &ErrInvalidTransition{Transition: t, Status: b.Status, IsPaid: b.IsPaid}
	}
	return nil
}
