package form

import (
	"github.com/bekzodm/sayohat/internal/api"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/pkg/validate"
)

// DifficultyForm edits a difficulty level.
type DifficultyForm struct {
	ID int // 0 = create

	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"nullable,max=1000"`
}

// NewDifficultyForm returns empty create-mode state.
func NewDifficultyForm() *DifficultyForm { return &DifficultyForm{} }

// LoadDifficultyForm populates edit state from a difficulty.
func LoadDifficultyForm(d model.Difficulty) *DifficultyForm {
	return &DifficultyForm{ID: d.ID, Name: d.Name, Description: d.Description}
}

// Validate runs the declarative rules.
func (f *DifficultyForm) Validate() map[string]string { return validate.Struct(f) }

// Submit validates and builds the wire payload.
func (f *DifficultyForm) Submit() (api.DifficultyPayload, error) {
	if err := blocked(f.Validate()); err != nil {
		return api.DifficultyPayload{}, err
	}
	return api.DifficultyPayload{Name: f.Name, Description: f.Description}, nil
}
