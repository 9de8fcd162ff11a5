// Package session persists the admin bearer token between runs.
//
// The token is global client state with a fixed lifecycle: set at login,
// cleared at logout or on any 401 response, read on every outbound request.
// Storage is pluggable through the Store interface; the default driver writes
// a single JSON file, and a Redis driver is available for shared gateways.
package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/bekzodm/sayohat/config"
)

// Store holds at most one bearer token.
type Store interface {
	// Token returns the persisted token, or "" when logged out.
	Token() string
	// Set persists a new token.
	Set(token string) error
	// Clear removes the token (logout / 401).
	Clear() error
}

// New builds the Store selected by SESSION_DRIVER.
func New() (Store, error) {
	switch config.SessionDriver() {
	case "redis":
		return NewRedisStore(config.RedisAddr(), config.RedisPassword())
	case "memory":
		return NewMemoryStore(), nil
	default:
		return NewFileStore(config.SessionFile())
	}
}

// Expired reports whether token is a JWT whose exp claim has passed.
// The signature is NOT verified — the server does that; this check only
// short-circuits requests that are guaranteed to come back 401.
// Tokens that are not parseable JWTs are assumed live.
func Expired(token string) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now())
}
