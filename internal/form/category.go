package form

import (
	"github.com/bekzodm/sayohat/internal/api"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/pkg/validate"
)

// CategoryForm edits a tour category. CategoryURL is the slug used by the
// public site and doubles as the display image when ImageURL is unset.
type CategoryForm struct {
	ID int // 0 = create

	Name        string `json:"name"        validate:"required,min=2,max=100"`
	CategoryURL string `json:"categoryUrl" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"nullable,max=1000"`
	ImageURL    string `json:"imageUrl"    validate:"nullable,url"`
}

// NewCategoryForm returns empty create-mode state.
func NewCategoryForm() *CategoryForm { return &CategoryForm{} }

// LoadCategoryForm populates edit state from a category.
func LoadCategoryForm(c model.Category) *CategoryForm {
	return &CategoryForm{
		ID:          c.ID,
		Name:        c.Name,
		CategoryURL: c.CategoryURL,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

// Validate runs the declarative rules.
func (f *CategoryForm) Validate() map[string]string { return validate.Struct(f) }

// Submit validates and builds the wire payload.
func (f *CategoryForm) Submit() (api.CategoryPayload, error) {
	if err := blocked(f.Validate()); err != nil {
		return api.CategoryPayload{}, err
	}

	return api.CategoryPayload{
		Name:        f.Name,
		CategoryURL: f.CategoryURL,
		Description: f.Description,
		ImageURL:    f.ImageURL,
	}, nil
}
