package transport

import (
	"encoding/json"
	"fmt"
)

// HTTPError is any non-2xx response from the API. Message carries the
// server-supplied error text when the body had one.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// serverMessage extracts the error text from the API's JSON error envelope.
// The backend answers either {"message": "..."} or {"error": "..."}.
func serverMessage(raw []byte, status int) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}
