package client

import (
	"context"

	"github.com/trustlayerlabs/academy/internal/client/models"
)

// Client is the academy backend API.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserEcho, error)

	Courses(ctx context.Context) ([]models.Course, error)
	Enrollments(ctx context.Context) ([]models.EnrolledCourse, error)

	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	VerifyPayment(ctx context.Context, req models.VerifyRequest) (*models.VerifyResponse, error)

	RequestService(ctx context.Context, req models.ServiceRequest) error

	Users(ctx context.Context) ([]models.User, error)
	CreateCourse(ctx context.Context, c models.NewCourse) (*models.Course, error)
	DeleteCourse(ctx context.Context, id models.ID) error
	ServiceTickets(ctx context.Context) ([]models.ServiceTicket, error)
	UpdateServiceStatus(ctx context.Context, id models.ID, status models.ServiceStatus) error
}
