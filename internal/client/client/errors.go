package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/trustlayerlabs/academy/internal/common"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status    int
	Message   string
	Malformed bool
	err       error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// UserMessage is the text to show an end user for this failure.
func (e *APIError) UserMessage() string {
	if e.Malformed || e.Message == "" {
		return common.GenericServerMessage
	}
	return e.Message
}

// newAPIError builds an APIError from a status code and raw body.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.err = common.ErrUnauthorized
	case status >= http.StatusInternalServerError:
		e.err = common.ErrUnavailable
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		e.Malformed = true
		return e
	}

	e.Message = payload.Message
	if e.Message == "" {
		e.Message = payload.Error
	}
	return e
}
