package models

import (
	"errors"
	"fmt"
)

var ErrMissingPersonID = errors.New("person has no id")

// APIError is a non-2xx response from the TPS API. Code and Message come from
// the response body; Code keeps the server's literal (string or number).
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tps api error (status %d): %s, %s", e.Status, e.Code, e.Message)
}
