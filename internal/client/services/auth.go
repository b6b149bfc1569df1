// Package services holds the client's application services: the session
// manager, the checkout orchestrator and thin catalog/admin wrappers over the
// API client.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trustlayerlabs/academy/internal/client/client"
	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/client/session"
	"github.com/trustlayerlabs/academy/internal/client/validation"
	"github.com/trustlayerlabs/academy/internal/common"
	"github.com/trustlayerlabs/academy/internal/logging"
)

var timeNow = time.Now

// AuthService owns the live session. Login, Register, UpdateProfile and
// Logout are its only mutators; each writes through to the session store and
// none of them navigates.
//
// Operations are not serialized against each other. Concurrent mutators
// resolve last-write-wins on the in-memory state.
type AuthService struct {
	api    client.Client
	store  *session.Store
	logger logging.Logger

	mu    sync.RWMutex
	token string
	user  *models.User
	state session.State
}

// NewAuthService hydrates the session from store. A half-present or damaged
// session, or a JWT that has already expired, is cleared.
func NewAuthService(ctx context.Context, api client.Client, store *session.Store, logger logging.Logger) *AuthService {
	a := &AuthService{
		api:    api,
		store:  store,
		logger: logger.With("component", "auth"),
	}
	a.hydrate(ctx)
	return a
}

func (a *AuthService) hydrate(ctx context.Context) {
	snap := a.store.Read(ctx)

	switch {
	case snap.Empty():
		return
	case !snap.Complete() || snap.Damaged:
		a.logger.Warn(ctx, "stored session is incomplete, clearing")
		a.clearStore(ctx)
		return
	case tokenExpired(snap.Token):
		a.logger.Info(ctx, "stored token has expired, clearing", "email", snap.User.Email)
		a.clearStore(ctx)
		return
	}

	a.token = snap.Token
	a.user = snap.User
	a.state = session.StateAuthenticated
	a.logger.Info(ctx, "session restored", "email", a.user.Email, "role", a.user.Role)
}

// tokenExpired reports whether token is a JWT whose exp claim is in the past.
// Tokens that are not JWTs never expire client-side.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(timeNow())
}

// Snapshot returns a copy of the live session.
func (a *AuthService) Snapshot() session.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return session.Session{Token: a.token, User: a.user.Clone(), State: a.state}
}

// IsAuthenticated holds iff both token and user are present.
func (a *AuthService) IsAuthenticated() bool {
	return a.Snapshot().IsAuthenticated()
}

// Token is the bearer token source for the API client.
func (a *AuthService) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// begin enters StateAuthenticating and returns the state to restore on failure.
func (a *AuthService) begin() session.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	prev := a.state
	a.state = session.StateAuthenticating
	return prev
}

func (a *AuthService) restore(prev session.State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == session.StateAuthenticating {
		a.state = prev
	}
}

// Login authenticates with the backend and persists the returned session.
// A failed login restores the state held before the call: a session that
// already existed stays authenticated with its previous user.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	creds := models.Credentials{Email: email, Password: password}
	if err := validation.Struct(creds); err != nil {
		return nil, newAuthError(KindAuthentication, err)
	}

	prev := a.begin()
	a.logger.Debug(ctx, "login started", "email", email)

	resp, err := a.api.Login(ctx, creds)
	if err != nil {
		a.restore(prev)
		a.logger.Warn(ctx, "login failed", "email", email, "error", err)
		return nil, newAuthError(KindAuthentication, err)
	}

	if err := a.store.Write(ctx, resp.Token, resp.User); err != nil {
		a.restore(prev)
		a.logger.Error(ctx, "persisting session failed", "error", err)
		return nil, newAuthError(KindAuthentication, err)
	}

	a.mu.Lock()
	a.token = resp.Token
	a.user = resp.User.Clone()
	a.state = session.StateAuthenticated
	a.mu.Unlock()

	a.logger.Info(ctx, "logged in", "email", resp.User.Email, "role", resp.User.Role)
	return resp.User.Clone(), nil
}

// Register creates an account. It does not log the new user in. The
// returned user is nil when the backend does not echo the record.
func (a *AuthService) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	if err := validation.Struct(reg); err != nil {
		return nil, newAuthError(KindRegistration, err)
	}

	prev := a.begin()
	defer a.restore(prev)

	u, err := a.api.Register(ctx, reg)
	if err != nil {
		a.logger.Warn(ctx, "registration failed", "email", reg.Email, "error", err)
		return nil, newAuthError(KindRegistration, err)
	}

	a.logger.Info(ctx, "registered", "email", reg.Email)
	return u, nil
}

// UpdateProfile sends upd to the backend and merges it into the local user,
// then overlays the fields the server echoed back. Fields missing from the
// echo keep their local value. State is unchanged on failure.
func (a *AuthService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	cur := a.Snapshot()
	if cur.State != session.StateAuthenticated || !cur.IsAuthenticated() {
		return nil, common.ErrNotAuthenticated
	}
	if err := validation.Struct(upd); err != nil {
		return nil, newAuthError(KindProfileUpdate, err)
	}
	if upd.Empty() {
		return cur.User, nil
	}

	echo, err := a.api.UpdateProfile(ctx, upd)
	if err != nil {
		a.logger.Warn(ctx, "profile update failed", "email", cur.User.Email, "error", err)
		return nil, newAuthError(KindProfileUpdate, err)
	}
	merged := upd.Apply(*cur.User)
	if echo != nil {
		merged = echo.Apply(merged)
	}
	u := &merged

	a.mu.Lock()
	defer a.mu.Unlock()

	// A logout or re-login while the call was in flight wins.
	if a.token != cur.Token {
		return nil, newAuthError(KindProfileUpdate, common.ErrNotAuthenticated)
	}
	if err := a.store.Write(ctx, a.token, u); err != nil {
		return nil, newAuthError(KindProfileUpdate, err)
	}
	a.user = u.Clone()

	a.logger.Info(ctx, "profile updated", "email", u.Email)
	return u.Clone(), nil
}

// Logout clears the session in memory and in the store. The in-memory state
// is cleared even when the store fails.
func (a *AuthService) Logout(ctx context.Context) error {
	a.mu.Lock()
	email := ""
	if a.user != nil {
		email = a.user.Email
	}
	a.token = ""
	a.user = nil
	a.state = session.StateUnauthenticated
	a.mu.Unlock()

	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "clearing stored session failed", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	if email != "" {
		a.logger.Info(ctx, "logged out", "email", email)
	}
	return nil
}

func (a *AuthService) clearStore(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "clearing stored session failed", "error", err)
	}
}

// IsAuthError reports whether err is an AuthError of kind k.
func IsAuthError(err error, k ErrorKind) bool {
	var ae *AuthError
	return errors.As(err, &ae) && ae.Kind == k
}
