package model

// Credentials is the body of POST /api/auth/login.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token for all subsequent requests.
type LoginResponse struct {
	Token string `json:"token"`
}

// Invoice is the response of POST /api/payments/generate-invoice/{id}.
type Invoice struct {
	InvoiceURL string `json:"invoiceUrl"`
}
