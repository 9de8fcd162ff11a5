package model

// Roles the API recognises. Only admins may use the dashboard endpoints.
const (
	RoleAdmin   = "admin"
	RoleTourist = "tourist"
)

// User as served by /api/users and /api/users/profile.
type User struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

// FullName joins the name parts for display.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user may access admin resources.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
