// Package common contains shared constants and sentinel errors used across
// the academy client components.
package common

// Persisted client state layout. Only these two keys are ever written.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// HTTP header names used on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Application route paths.
const (
	PathHome      = "/"
	PathCourses   = "/courses"
	PathServices  = "/services"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
	PathProfile   = "/profile"
	PathAdmin     = "/admin"
	PathPrivacy   = "/privacy-policy"
	PathTerms     = "/terms-and-conditions"
	PathRefund    = "/refund"
)

// GenericServerMessage is shown when the backend answers with a body that is
// not structured data.
const GenericServerMessage = "server error, try again"
