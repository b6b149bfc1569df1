package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/trustlayerlabs/academy/internal/client/client"
	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/client/session"
	"github.com/trustlayerlabs/academy/internal/client/validation"
	"github.com/trustlayerlabs/academy/internal/common"
	"github.com/trustlayerlabs/academy/internal/logging"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid service status")
)

// AdminService is the back-office API. Every call requires an admin session
// and is refused locally otherwise.
type AdminService struct {
	api     client.Client
	session session.Source
	logger  logging.Logger
}

func NewAdminService(api client.Client, src session.Source, logger logging.Logger) *AdminService {
	return &AdminService{api: api, session: src, logger: logger.With("component", "admin")}
}

func (s *AdminService) authorize() error {
	snap := s.session.Snapshot()
	switch {
	case !snap.IsAuthenticated():
		return common.ErrNotAuthenticated
	case !snap.User.IsAdmin():
		return common.ErrForbidden
	}
	return nil
}

func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	if err := s.authorize(); err != nil {
		return nil, err
	}
	users, err := s.api.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AdminService) Services(ctx context.Context) ([]models.ServiceTicket, error) {
	if err := s.authorize(); err != nil {
		return nil, err
	}
	tickets, err := s.api.ServiceTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	return tickets, nil
}

func (s *AdminService) CreateCourse(ctx context.Context, nc models.NewCourse) (*models.Course, error) {
	if err := s.authorize(); err != nil {
		return nil, err
	}
	if err := validation.Struct(nc); err != nil {
		return nil, err
	}
	c, err := s.api.CreateCourse(ctx, nc)
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.logger.Info(ctx, "course created", "course_id", c.ID.String(), "title", c.Title)
	return c, nil
}

func (s *AdminService) DeleteCourse(ctx context.Context, id models.ID) error {
	if err := s.authorize(); err != nil {
		return err
	}
	if err := s.api.DeleteCourse(ctx, id); err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	s.logger.Info(ctx, "course deleted", "course_id", id.String())
	return nil
}

func (s *AdminService) UpdateServiceStatus(ctx context.Context, id models.ID, status models.ServiceStatus) error {
	if err := s.authorize(); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.api.UpdateServiceStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update service request %s: %w", id, err)
	}
	s.logger.Info(ctx, "service request updated", "ticket_id", id.String(), "status", string(status))
	return nil
}
