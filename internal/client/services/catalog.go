package services

import (
	"context"
	"fmt"

	"github.com/trustlayerlabs/academy/internal/client/client"
	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/client/session"
	"github.com/trustlayerlabs/academy/internal/client/validation"
	"github.com/trustlayerlabs/academy/internal/common"
)

// CatalogService wraps the public catalog, the student's enrollments and
// service requests.
type CatalogService struct {
	api     client.Client
	session session.Source
}

func NewCatalogService(api client.Client, src session.Source) *CatalogService {
	return &CatalogService{api: api, session: src}
}

func (s *CatalogService) Courses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.api.Courses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Course finds one course of the catalog by id.
func (s *CatalogService) Course(ctx context.Context, id models.ID) (models.Course, error) {
	courses, err := s.Courses(ctx)
	if err != nil {
		return models.Course{}, err
	}
	for _, c := range courses {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Course{}, fmt.Errorf("course %s: %w", id, ErrNotFound)
}

func (s *CatalogService) Enrollments(ctx context.Context) ([]models.EnrolledCourse, error) {
	if !s.session.Snapshot().IsAuthenticated() {
		return nil, common.ErrNotAuthenticated
	}
	list, err := s.api.Enrollments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return list, nil
}

// RequestService submits a consulting request. Anonymous visitors may submit
// too; the token is attached when a session exists.
func (s *CatalogService) RequestService(ctx context.Context, req models.ServiceRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := s.api.RequestService(ctx, req); err != nil {
		return fmt.Errorf("request service: %w", err)
	}
	return nil
}
