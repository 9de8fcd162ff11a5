package model_test

import (
	"errors"
	"testing"

	"github.com/bekzodm/sayohat/internal/model"
)

func TestTransitionGuards(t *testing.T) {
	cases := []struct {
		name       string
		status     string
		isPaid     bool
		transition model.Transition
		allowed    bool
	}{
		// confirm-payment: unpaid and not cancelled
		{"confirm unpaid pending", model.StatusPending, false, model.TransitionConfirmPayment, true},
		{"confirm unpaid confirmed", model.StatusConfirmed, false, model.TransitionConfirmPayment, true},
		{"confirm already paid", model.StatusPending, true, model.TransitionConfirmPayment, false},
		{"confirm cancelled", model.StatusCancelled, false, model.TransitionConfirmPayment, false},

		// cancel: pending only
		{"cancel pending", model.StatusPending, false, model.TransitionCancel, true},
		{"cancel pending paid", model.StatusPending, true, model.TransitionCancel, true},
		{"cancel confirmed", model.StatusConfirmed, false, model.TransitionCancel, false},
		{"cancel completed", model.StatusCompleted, true, model.TransitionCancel, false},
		{"cancel cancelled", model.StatusCancelled, false, model.TransitionCancel, false},

		// complete: confirmed and paid
		{"complete confirmed paid", model.StatusConfirmed, true, model.TransitionComplete, true},
		{"complete confirmed unpaid", model.StatusConfirmed, false, model.TransitionComplete, false},
		{"complete pending paid", model.StatusPending, true, model.TransitionComplete, false},
		{"complete completed", model.StatusCompleted, true, model.TransitionComplete, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := model.Booking{ID: 1, Status: tc.status, IsPaid: tc.isPaid}
			err := b.GuardTransition(tc.transition)

			if tc.allowed && err != nil {
				t.Fatalf("expected %s to be allowed, got %v", tc.transition, err)
			}
			if !tc.allowed {
				var invalid *model.ErrInvalidTransition
				if !errors.As(err, &invalid) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
				if invalid.Transition != tc.transition {
					t.Errorf("error names transition %s, want %s", invalid.Transition, tc.transition)
				}
			}
		})
	}
}

func TestUserHelpers(t *testing.T) {
	u := model.User{FirstName: "Aziza", LastName: "Karimova", Role: model.RoleAdmin}
	if got := u.FullName(); got != "Aziza Karimova" {
		t.Errorf("FullName = %q", got)
	}
	if !u.IsAdmin() {
		t.Error("admin role not recognised")
	}
	if (model.User{Role: model.RoleTourist}).IsAdmin() {
		t.Error("tourist reported as admin")
	}
}
