package validate_test

import (
	"testing"

	"github.com/bekzodm/sayohat/pkg/validate"
)

type tourInput struct {
	Title          string  `json:"title"          validate:"required,min=3,max=200"`
	Description    string  `json:"description"    validate:"nullable,max=5000"`
	Price          float64 `json:"price"          validate:"required,gt=0"`
	StartDate      string  `json:"startDate"      validate:"required,date"`
	EndDate        string  `json:"endDate"        validate:"required,date"`
	AvailableSeats int     `json:"availableSeats" validate:"required,gte=1"`
	Status         string  `json:"status"         validate:"required,in=pending,confirmed,completed,cancelled"`
	ImageURL       string  `json:"imageUrl"       validate:"nullable,url"`
	Rating         float64 `json:"rating"         validate:"nullable,between=0,5"`
}

func validInput() tourInput {
	return tourInput{
		Title:          "Silk Road classic",
		Price:          499.50,
		StartDate:      "2026-05-01",
		EndDate:        "2026-05-07",
		AvailableSeats: 12,
		Status:         "pending",
	}
}

func TestValidInput(t *testing.T) {
	if errs := validate.Struct(validInput()); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(tourInput{})
	for _, field := range []string{"title", "price", "startDate", "endDate", "availableSeats", "status"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
	if _, ok := errs["description"]; ok {
		t.Error("nullable description must not fail when empty")
	}
}

func TestDateRule(t *testing.T) {
	in := validInput()
	in.StartDate = "1 May 2026"
	if _, ok := validate.Struct(in)["startDate"]; !ok {
		t.Error("expected startDate format error")
	}

	in = validInput()
	in.StartDate = "2026-02-30"
	if _, ok := validate.Struct(in)["startDate"]; !ok {
		t.Error("expected impossible date to fail")
	}
}

func TestNumericBounds(t *testing.T) {
	in := validInput()
	in.Price = 0
	if _, ok := validate.Struct(in)["price"]; !ok {
		t.Error("expected price to be required (zero value)")
	}

	in = validInput()
	in.AvailableSeats = -2
	if _, ok := validate.Struct(in)["availableSeats"]; !ok {
		t.Error("expected negative seats to fail gte=1")
	}

	in = validInput()
	in.Rating = 7.5
	if _, ok := validate.Struct(in)["rating"]; !ok {
		t.Error("expected rating outside between=0,5 to fail")
	}
	in.Rating = 4.5
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		t.Errorf("expected rating 4.5 to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	in := validInput()
	in.Status = "archived"
	if _, ok := validate.Struct(in)["status"]; !ok {
		t.Error("expected status outside the in= set to fail")
	}
	for _, status := range []string{"pending", "confirmed", "completed", "cancelled"} {
		in.Status = status
		if errs := validate.Struct(in); validate.HasErrors(errs) {
			t.Errorf("expected status %q to pass, got: %v", status, errs)
		}
	}
}

func TestURLRule(t *testing.T) {
	in := validInput()
	in.ImageURL = "not a url"
	if _, ok := validate.Struct(in)["imageUrl"]; !ok {
		t.Error("expected invalid url to fail")
	}
	in.ImageURL = "https://cdn.example.com/a.jpg"
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		t.Errorf("expected valid url to pass, got: %v", errs)
	}
}

func TestStringLengthBounds(t *testing.T) {
	in := validInput()
	in.Title = "ab"
	if _, ok := validate.Struct(in)["title"]; !ok {
		t.Error("expected short title to fail min=3")
	}
}

func TestConfirmedRule(t *testing.T) {
	type in struct {
		Password             string `json:"password" validate:"required,min=8,confirmed"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "different"})
	if !validate.HasErrors(errs) {
		t.Error("expected mismatched confirmation to fail")
	}
	errs = validate.Struct(in{Password: "secret123", PasswordConfirmation: "secret123"})
	if validate.HasErrors(errs) {
		t.Errorf("expected matching confirmation to pass, got: %v", errs)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := validate.ParseDate("2026-05-01"); err != nil {
		t.Errorf("expected ISO date to parse: %v", err)
	}
	// Legacy records use day/month/year.
	if _, err := validate.ParseDate("05/01/2026"); err != nil {
		t.Errorf("expected dd/mm/yyyy to parse: %v", err)
	}
	if _, err := validate.ParseDate("not-a-date"); err == nil {
		t.Error("expected garbage to fail")
	}
}
