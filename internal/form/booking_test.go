package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekzodm/sayohat/internal/form"
	"github.com/bekzodm/sayohat/internal/model"
)

func TestBookingFormRoundTrip(t *testing.T) {
	b := model.Booking{
		ID: 12, TourID: 3, NumberOfPeople: 4,
		Status: model.StatusConfirmed, IsPaid: true,
		SpecialRequests: "vegetarian meals",
		ContactPhone:    "+998901234567",
		ContactEmail:    "tourist@sayohat.test",
	}

	f := form.LoadBookingForm(b)
	require.Empty(t, f.Validate())

	p, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, 3, p.TourID)
	assert.Equal(t, 4, p.NumberOfPeople)
	assert.Equal(t, model.StatusConfirmed, p.Status)
	require.NotNil(t, p.IsPaid)
	assert.True(t, *p.IsPaid)
}

func TestBookingFormValidation(t *testing.T) {
	f := form.LoadBookingForm(model.Booking{ID: 1, TourID: 3, NumberOfPeople: 2, Status: "pending"})

	f.NumberOfPeople = 0
	assert.Contains(t, f.Validate(), "numberOfPeople")

	f.NumberOfPeople = 150
	assert.Contains(t, f.Validate(), "numberOfPeople")

	f.NumberOfPeople = 2
	f.Status = "archived"
	assert.Contains(t, f.Validate(), "status")

	f.Status = model.StatusPending
	f.ContactEmail = "nope"
	assert.Contains(t, f.Validate(), "contactEmail")
}

func TestCategoryFormValidation(t *testing.T) {
	f := form.NewCategoryForm()
	errs := f.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "categoryUrl")

	f.Name = "Adventure"
	f.CategoryURL = "adventure"
	f.ImageURL = "not a url"
	assert.Contains(t, f.Validate(), "imageUrl")

	f.ImageURL = "https://cdn.test/adventure.jpg"
	require.Empty(t, f.Validate())

	p, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, "adventure", p.CategoryURL)
}

func TestDifficultyFormValidation(t *testing.T) {
	f := form.NewDifficultyForm()
	assert.Contains(t, f.Validate(), "name")

	f.Name = "Challenging"
	f.Description = "Steep ascents, long days."
	p, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Challenging", p.Name)
}
