// Package session persists the authenticated session (bearer token and user
// record) across process restarts.
//
// Exactly two keys are used, common.TokenKey holding the raw token and
// common.UserKey holding the JSON-encoded models.User. Read never fails: an
// unreadable or malformed entry is reported as absent and the caller decides
// how to repair it.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/client/repositories/kv"
	"github.com/trustlayerlabs/academy/internal/common"
	"github.com/trustlayerlabs/academy/internal/logging"
)

// Snapshot is what Read found. Either field may be empty independently.
// Damaged is set when a stored user value existed but could not be used.
type Snapshot struct {
	Token   string
	User    *models.User
	Damaged bool
}

// Complete reports whether both halves of the session are present.
func (s Snapshot) Complete() bool {
	return s.Token != "" && s.User != nil
}

// Empty reports whether neither half is present and nothing unusable was found.
func (s Snapshot) Empty() bool {
	return s.Token == "" && s.User == nil && !s.Damaged
}

type Store struct {
	repo   kv.Repository
	logger logging.Logger
}

func NewStore(repo kv.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("component", "session_store")}
}

// Read loads the persisted session.
func (s *Store) Read(ctx context.Context) Snapshot {
	var snap Snapshot

	token, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil {
		s.logger.Warn(ctx, "reading token failed, treating as absent", "error", err)
	} else {
		snap.Token = string(token)
	}

	raw, err := s.repo.Get(ctx, common.UserKey)
	if err != nil {
		s.logger.Warn(ctx, "reading user failed, treating as absent", "error", err)
		return snap
	}
	if len(raw) == 0 {
		return snap
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.Warn(ctx, "stored user is malformed, treating as absent", "error", err)
		snap.Damaged = true
		return snap
	}
	if !u.Valid() {
		s.logger.Warn(ctx, "stored user lacks id or email, treating as absent")
		snap.Damaged = true
		return snap
	}
	snap.User = &u

	return snap
}

// Write persists token and user, token first.
func (s *Store) Write(ctx context.Context, token string, user *models.User) error {
	if token == "" || !user.Valid() {
		return fmt.Errorf("write session: token and user are both required")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := s.repo.SetAll(ctx,
		kv.Pair{Key: common.TokenKey, Value: []byte(token)},
		kv.Pair{Key: common.UserKey, Value: data},
	); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes both keys. Removing absent keys is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenKey, common.UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
