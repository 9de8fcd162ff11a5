package form

import (
	"github.com/bekzodm/sayohat/internal/api"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/pkg/validate"
)

// BookingForm edits an existing booking's details. Status transitions do
// not go through this form — they use the dedicated action endpoints.
type BookingForm struct {
	ID int

	TourID          int    `json:"tourId"          validate:"required,gte=1"`
	NumberOfPeople  int    `json:"numberOfPeople"  validate:"required,gte=1,lte=100"`
	SpecialRequests string `json:"specialRequests" validate:"nullable,max=1000"`
	ContactPhone    string `json:"contactPhone"    validate:"nullable,min=5,max=30"`
	ContactEmail    string `json:"contactEmail"    validate:"nullable,email"`
	Status          string `json:"status"          validate:"required,in=pending,confirmed,completed,cancelled"`
	IsPaid          bool   `json:"isPaid"`
}

// LoadBookingForm populates edit state from a booking.
func LoadBookingForm(b model.Booking) *BookingForm {
	return &BookingForm{
		ID:              b.ID,
		TourID:          b.TourID,
		NumberOfPeople:  b.NumberOfPeople,
		SpecialRequests: b.SpecialRequests,
		ContactPhone:    b.ContactPhone,
		ContactEmail:    b.ContactEmail,
		Status:          b.Status,
		IsPaid:          b.IsPaid,
	}
}

// Validate runs the declarative rules.
func (f *BookingForm) Validate() map[string]string { return validate.Struct(f) }

// Submit validates and builds the wire payload.
func (f *BookingForm) Submit() (api.BookingPayload, error) {
	if err := blocked(f.Validate()); err != nil {
		return api.BookingPayload{}, err
	}

	isPaid := f.IsPaid
	return api.BookingPayload{
		TourID:          f.TourID,
		NumberOfPeople:  f.NumberOfPeople,
		SpecialRequests: f.SpecialRequests,
		ContactPhone:    f.ContactPhone,
		ContactEmail:    f.ContactEmail,
		Status:          f.Status,
		IsPaid:          &isPaid,
	}, nil
}
