package session

import "github.com/trustlayerlabs/academy/internal/client/models"

// State is the phase of the live session.
type State int

const (
	StateUnauthenticated State = iota
	// StateAuthenticating covers a login or register call in flight.
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Session is a point-in-time copy of the live session.
type Session struct {
	Token string
	User  *models.User
	State State
}

// IsAuthenticated holds iff both the token and the user are present.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// IsAdmin reports whether the session belongs to an authenticated admin.
func (s Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.User.IsAdmin()
}

// Loading reports whether an auth call is still in flight.
func (s Session) Loading() bool {
	return s.State == StateAuthenticating
}

// Source exposes the current session to readers such as route guards.
type Source interface {
	Snapshot() Session
}
