package form

import (
	"github.com/bekzodm/sayohat/internal/api"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/pkg/validate"
)

// UserForm is the editing state of a user account. Password is required
// only in create mode and must match its confirmation.
type UserForm struct {
	ID int // 0 = create

	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"nullable,min=8"`
	PasswordConfirmation string `json:"password_confirmation"`
	FirstName            string `json:"firstName"             validate:"required,min=1,max=100"`
	LastName             string `json:"lastName"              validate:"required,min=1,max=100"`
	PhoneNumber          string `json:"phoneNumber"           validate:"nullable,min=5,max=30"`
	Role                 string `json:"role"                  validate:"required,in=admin,tourist"`
	Address              string `json:"address"               validate:"nullable,max=300"`
	City                 string `json:"city"                  validate:"nullable,max=100"`
	Country              string `json:"country"               validate:"nullable,max=100"`
}

// NewUserForm returns create-mode state; new accounts default to tourist.
func NewUserForm() *UserForm {
	return &UserForm{Role: model.RoleTourist}
}

// LoadUserForm populates edit-mode state. Password fields start empty and
// are only sent when the operator sets a new one.
func LoadUserForm(u model.User) *UserForm {
	return &UserForm{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Address:     u.Address,
		City:        u.City,
		Country:     u.Country,
	}
}

// Validate applies the declarative rules plus the mode-dependent password
// requirement.
func (f *UserForm) Validate() map[string]string {
	errs := validate.Struct(f)

	if f.ID == 0 && f.Password == "" {
		errs["password"] = "The password field is required."
	}
	if f.Password != "" && f.Password != f.PasswordConfirmation {
		errs["password"] = "The password confirmation does not match."
	}
	return errs
}

// Submit validates and builds the wire payload.
func (f *UserForm) Submit() (api.UserPayload, error) {
	if err := blocked(f.Validate()); err != nil {
		return api.UserPayload{}, err
	}

	return api.UserPayload{
		Email:       f.Email,
		Password:    f.Password,
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		PhoneNumber: f.PhoneNumber,
		Role:        f.Role,
		Address:     f.Address,
		City:        f.City,
		Country:     f.Country,
	}, nil
}
