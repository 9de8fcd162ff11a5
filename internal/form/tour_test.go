package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekzodm/sayohat/internal/form"
	"github.com/bekzodm/sayohat/internal/model"
)

func validTourForm() *form.TourForm {
	f := form.NewTourForm()
	f.Title = "Samarkand Silk Road"
	f.Description = "Five days across Registan and beyond."
	f.Price = 499.99
	f.Location = "Samarkand"
	f.StartDate = "2026-05-01"
	f.EndDate = "2026-05-05"
	f.AvailableSeats = 12
	return f
}

func TestTourFormSubmitBuildsWirePayload(t *testing.T) {
	f := validTourForm()
	catID, diffID := 3, 2
	f.CategoryID = &catID
	f.DifficultyID = &diffID
	f.AddImage("https://cdn.test/registan.jpg")
	f.AddIncludedService("guide")
	f.AddExcludedService("flights")
	f.AddItineraryStep("Day 1: Registan square")

	p, err := f.Submit()
	require.NoError(t, err)

	assert.Equal(t, "Samarkand Silk Road", p.Title)
	assert.Equal(t, "2026-05-01", p.StartDate)
	assert.Equal(t, "2026-05-05", p.EndDate)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, 3, *p.CategoryID)
	require.NotNil(t, p.DifficultyID)
	assert.Equal(t, 2, *p.DifficultyID)
	assert.True(t, p.IsActive, "new tours default to active")
	assert.Equal(t, []string{"guide"}, p.IncludedServices)
	assert.Equal(t, []string{"Day 1: Registan square"}, p.Itinerary)
}

func TestTourFormValidation(t *testing.T) {
	t.Run("missing required fields", func(t *testing.T) {
		f := form.NewTourForm()
		errs := f.Validate()
		assert.Contains(t, errs, "title")
		assert.Contains(t, errs, "price")
		assert.Contains(t, errs, "startDate")
		assert.Contains(t, errs, "endDate")
		assert.Contains(t, errs, "availableSeats")

		_, err := f.Submit()
		var vErr *form.ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("end date before start date", func(t *testing.T) {
		f := validTourForm()
		f.StartDate = "2026-05-10"
		f.EndDate = "2026-05-01"
		errs := f.Validate()
		assert.Contains(t, errs, "endDate")
	})

	t.Run("zero price rejected", func(t *testing.T) {
		f := validTourForm()
		f.Price = 0
		assert.Contains(t, f.Validate(), "price")
	})

	t.Run("zero seats rejected", func(t *testing.T) {
		f := validTourForm()
		f.AvailableSeats = 0
		assert.Contains(t, f.Validate(), "availableSeats")
	})

	t.Run("valid form passes", func(t *testing.T) {
		assert.Empty(t, validTourForm().Validate())
	})
}

func TestLoadTourFormResolvesLegacyNames(t *testing.T) {
	categories := []model.Category{
		{ID: 1, Name: "Adventure"},
		{ID: 2, Name: "Cultural"},
	}
	difficulties := []model.Difficulty{
		{ID: 1, Name: "Easy"},
		{ID: 2, Name: "Moderate"},
	}

	t.Run("case-insensitive name match", func(t *testing.T) {
		f := form.LoadTourForm(model.Tour{
			ID: 7, Title: "Chimgan hike",
			Category: "cultural", Difficulty: "MODERATE",
		}, categories, difficulties)

		require.NotNil(t, f.CategoryID)
		assert.Equal(t, 2, *f.CategoryID)
		require.NotNil(t, f.DifficultyID)
		assert.Equal(t, 2, *f.DifficultyID)
	})

	t.Run("unknown names stay unset", func(t *testing.T) {
		f := form.LoadTourForm(model.Tour{
			ID: 8, Category: "Gastronomy", Difficulty: "Brutal",
		}, categories, difficulties)
		assert.Nil(t, f.CategoryID)
		assert.Nil(t, f.DifficultyID)
	})

	t.Run("existing foreign keys win over names", func(t *testing.T) {
		catID := 1
		f := form.LoadTourForm(model.Tour{
			ID: 9, CategoryID: &catID, Category: "Cultural",
		}, categories, difficulties)
		require.NotNil(t, f.CategoryID)
		assert.Equal(t, 1, *f.CategoryID)
	})
}

// Load then submit of an already-valid tour must be lossless.
func TestLoadTourFormRoundTrip(t *testing.T) {
	catID := 2
	tour := model.Tour{
		ID: 5, Title: "Aral Sea expedition", Price: 820,
		Location: "Moynaq", StartDate: "2026-06-10", EndDate: "2026-06-17",
		AvailableSeats: 8, CategoryID: &catID, IsActive: true,
		Images:    []string{"a.jpg", "b.jpg"},
		Itinerary: []string{"Day 1", "Day 2"},
	}

	f := form.LoadTourForm(tour, nil, nil)
	p, err := f.Submit()
	require.NoError(t, err)

	assert.Equal(t, tour.Title, p.Title)
	assert.Equal(t, tour.StartDate, p.StartDate)
	assert.Equal(t, tour.EndDate, p.EndDate)
	assert.Equal(t, tour.Images, p.Images)
	assert.Equal(t, tour.Itinerary, p.Itinerary)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, catID, *p.CategoryID)
}

func TestTourFormListEditing(t *testing.T) {
	f := form.NewTourForm()
	f.AddImage("one.jpg")
	f.AddImage("two.jpg")
	f.AddImage("  ") // blank entries are dropped
	assert.Equal(t, []string{"one.jpg", "two.jpg"}, f.Images)

	f.RemoveImage(0)
	assert.Equal(t, []string{"two.jpg"}, f.Images)

	f.RemoveImage(5) // out of range is a no-op
	assert.Equal(t, []string{"two.jpg"}, f.Images)
}
