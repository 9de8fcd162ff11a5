package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekzodm/sayohat/internal/form"
	"github.com/bekzodm/sayohat/internal/model"
)

func validUserForm() *form.UserForm {
	f := form.NewUserForm()
	f.Email = "guide@sayohat.test"
	f.Password = "hunter2hunter2"
	f.PasswordConfirmation = "hunter2hunter2"
	f.FirstName = "Bobur"
	f.LastName = "Aliyev"
	return f
}

func TestUserFormPasswordRules(t *testing.T) {
	t.Run("required on create", func(t *testing.T) {
		f := validUserForm()
		f.Password = ""
		f.PasswordConfirmation = ""
		assert.Contains(t, f.Validate(), "password")
	})

	t.Run("optional on edit", func(t *testing.T) {
		f := form.LoadUserForm(model.User{
			ID: 4, Email: "guide@sayohat.test",
			FirstName: "Bobur", LastName: "Aliyev", Role: model.RoleTourist,
		})
		assert.Empty(t, f.Validate())
	})

	t.Run("confirmation must match", func(t *testing.T) {
		f := validUserForm()
		f.PasswordConfirmation = "different"
		assert.Contains(t, f.Validate(), "password")
	})

	t.Run("edit with new password still needs confirmation", func(t *testing.T) {
		f := form.LoadUserForm(model.User{ID: 4, Email: "guide@sayohat.test",
			FirstName: "Bobur", LastName: "Aliyev", Role: model.RoleTourist})
		f.Password = "newpassword1"
		assert.Contains(t, f.Validate(), "password")
		f.PasswordConfirmation = "newpassword1"
		assert.Empty(t, f.Validate())
	})
}

func TestUserFormValidation(t *testing.T) {
	f := validUserForm()
	f.Email = "not-an-email"
	assert.Contains(t, f.Validate(), "email")

	f = validUserForm()
	f.Role = "superuser"
	assert.Contains(t, f.Validate(), "role")

	assert.Equal(t, model.RoleTourist, form.NewUserForm().Role, "new accounts default to tourist")
}

func TestUserFormSubmit(t *testing.T) {
	p, err := validUserForm().Submit()
	require.NoError(t, err)
	assert.Equal(t, "guide@sayohat.test", p.Email)
	assert.Equal(t, model.RoleTourist, p.Role)
	assert.Equal(t, "hunter2hunter2", p.Password)
}
