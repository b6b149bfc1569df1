package services

import (
	"errors"
	"fmt"

	"github.com/trustlayerlabs/academy/internal/client/client"
	"github.com/trustlayerlabs/academy/internal/client/validation"
	"github.com/trustlayerlabs/academy/internal/common"
)

// ErrorKind tells which session operation failed.
type ErrorKind int

const (
	KindAuthentication ErrorKind = iota + 1
	KindRegistration
	KindProfileUpdate
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindRegistration:
		return "registration"
	case KindProfileUpdate:
		return "profile update"
	}
	return "unknown"
}

// AuthError is returned by the session mutators. Message is safe to show to
// the user as is.
type AuthError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Kind, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func newAuthError(kind ErrorKind, err error) *AuthError {
	return &AuthError{Kind: kind, Message: UserMessage(err), Err: err}
}

// UserMessage turns err into text for the end user: the server's own message
// when it sent one, field errors for rejected input, and a generic text for
// everything else.
func UserMessage(err error) string {
	var apiErr *client.APIError
	var vErr *validation.Error
	var authErr *AuthError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.As(err, &apiErr):
		return apiErr.UserMessage()
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.Is(err, common.ErrNotAuthenticated):
		return "please log in first"
	case errors.Is(err, common.ErrForbidden):
		return "admin access required"
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrInvalidStatus):
		return "status must be pending, quoted or completed"
	case errors.Is(err, common.ErrUnavailable):
		return "server unreachable, try again later"
	}
	return common.GenericServerMessage
}
