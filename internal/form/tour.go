package form

import (
	"strings"

	"github.com/bekzodm/sayohat/internal/api"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/pkg/collection"
	"github.com/bekzodm/sayohat/pkg/validate"
)

// TourForm is the editing state of a tour. Dates are held as a start/end
// pair and only flattened to the wire's startDate/endDate at submit.
type TourForm struct {
	ID int // 0 = create

	Title          string  `json:"title"          validate:"required,min=3,max=200"`
	Description    string  `json:"description"    validate:"nullable,max=5000"`
	Price          float64 `json:"price"          validate:"required,gt=0"`
	Location       string  `json:"location"       validate:"nullable,max=200"`
	StartDate      string  `json:"startDate"      validate:"required,date"`
	EndDate        string  `json:"endDate"        validate:"required,date"`
	AvailableSeats int     `json:"availableSeats" validate:"required,gte=1"`

	CategoryID   *int `json:"categoryId"`
	DifficultyID *int `json:"difficultyId"`
	IsActive     bool `json:"isActive"`

	Images           []string `json:"images"`
	IncludedServices []string `json:"includedServices"`
	ExcludedServices []string `json:"excludedServices"`
	Itinerary        []string `json:"itinerary"`
}

// NewTourForm returns create-mode state with the declared defaults.
func NewTourForm() *TourForm {
	return &TourForm{IsActive: true}
}

// LoadTourForm populates edit-mode state from an existing tour. Legacy
// records carry free-text category/difficulty names instead of foreign
// keys; those are resolved by case-insensitive name match against the
// current lists, staying nil when nothing matches. That mapping is a
// compatibility shim, not a guarantee.
func LoadTourForm(t model.Tour, categories []model.Category, difficulties []model.Difficulty) *TourForm {
	f := &TourForm{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Price:            t.Price,
		Location:         t.Location,
		StartDate:        t.StartDate,
		EndDate:          t.EndDate,
		AvailableSeats:   t.AvailableSeats,
		CategoryID:       t.CategoryID,
		DifficultyID:     t.DifficultyID,
		IsActive:         t.IsActive,
		Images:           append([]string(nil), t.Images...),
		IncludedServices: append([]string(nil), t.IncludedServices...),
		ExcludedServices: append([]string(nil), t.ExcludedServices...),
		Itinerary:        append([]string(nil), t.Itinerary...),
	}

	if f.CategoryID == nil && t.Category != "" {
		if c, ok := collection.First(categories, func(c model.Category) bool {
			return strings.EqualFold(c.Name, t.Category)
		}); ok {
			id := c.ID
			f.CategoryID = &id
		}
	}
	if f.DifficultyID == nil && t.Difficulty != "" {
		if d, ok := collection.First(difficulties, func(d model.Difficulty) bool {
			return strings.EqualFold(d.Name, t.Difficulty)
		}); ok {
			id := d.ID
			f.DifficultyID = &id
		}
	}

	return f
}

// List-field editing. The in-memory representation is always the ordered
// sequence; nothing is comma-joined until the payload is built server-side.

func (f *TourForm) AddImage(url string) { f.Images = addItem(f.Images, url) }
func (f *TourForm) RemoveImage(i int)   { f.Images = removeItem(f.Images, i) }

func (f *TourForm) AddIncludedService(s string) { f.IncludedServices = addItem(f.IncludedServices, s) }
func (f *TourForm) RemoveIncludedService(i int) {
	f.IncludedServices = removeItem(f.IncludedServices, i)
}

func (f *TourForm) AddExcludedService(s string) { f.ExcludedServices = addItem(f.ExcludedServices, s) }
func (f *TourForm) RemoveExcludedService(i int) {
	f.ExcludedServices = removeItem(f.ExcludedServices, i)
}

func (f *TourForm) AddItineraryStep(s string) { f.Itinerary = addItem(f.Itinerary, s) }
func (f *TourForm) RemoveItineraryStep(i int) { f.Itinerary = removeItem(f.Itinerary, i) }

// Validate runs the declarative rules plus the date-order cross check.
func (f *TourForm) Validate() map[string]string {
	errs := validate.Struct(f)

	if _, ok := errs["startDate"]; !ok {
		if _, ok := errs["endDate"]; !ok {
			start, err1 := validate.ParseDate(f.StartDate)
			end, err2 := validate.ParseDate(f.EndDate)
			if err1 == nil && err2 == nil && end.Before(start) {
				errs["endDate"] = "The endDate must not be before startDate."
			}
		}
	}
	return errs
}

// Submit validates and builds the wire payload. The payload carries
// startDate/endDate and never a date-range field.
func (f *TourForm) Submit() (api.TourPayload, error) {
	if err := blocked(f.Validate()); err != nil {
		return api.TourPayload{}, err
	}

	return api.TourPayload{
		Title:            f.Title,
		Description:      f.Description,
		Price:            f.Price,
		Location:         f.Location,
		StartDate:        f.StartDate,
		EndDate:          f.EndDate,
		AvailableSeats:   f.AvailableSeats,
		CategoryID:       f.CategoryID,
		DifficultyID:     f.DifficultyID,
		IsActive:         f.IsActive,
		Images:           f.Images,
		IncludedServices: f.IncludedServices,
		ExcludedServices: f.ExcludedServices,
		Itinerary:        f.Itinerary,
	}, nil
}
