package services

import (
	"context"
	"sync"

	"github.com/trustlayerlabs/academy/internal/client/client"
	"github.com/trustlayerlabs/academy/internal/client/models"
)

// fakeClient implements client.Client for unit tests. Results come from the
// exported fields; every call is counted.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	LoginResp *models.AuthResponse
	LoginErr  error

	RegisterUser *models.User
	RegisterErr  error

	ProfileEcho *models.UserEcho
	ProfileErr  error
	LastProfile models.ProfileUpdate

	CoursesRet     []models.Course
	CoursesErr     error
	EnrollmentsRet []models.EnrolledCourse

	Order      *models.Order
	OrderErr   error
	Verify     *models.VerifyResponse
	VerifyErr  error
	LastVerify models.VerifyRequest

	LastRequestID string

	ServiceErr error
	AdminErr   error
}

func (f *fakeClient) record(ctx context.Context, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if id, ok := client.RequestIDFrom(ctx); ok {
		f.LastRequestID = id
	}
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Login(ctx context.Context, _ models.Credentials) (*models.AuthResponse, error) {
	f.record(ctx, "Login")
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, _ models.Registration) (*models.User, error) {
	f.record(ctx, "Register")
	return f.RegisterUser, f.RegisterErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserEcho, error) {
	f.record(ctx, "UpdateProfile")
	f.LastProfile = upd
	return f.ProfileEcho, f.ProfileErr
}

func (f *fakeClient) Courses(ctx context.Context) ([]models.Course, error) {
	f.record(ctx, "Courses")
	return f.CoursesRet, f.CoursesErr
}

func (f *fakeClient) Enrollments(ctx context.Context) ([]models.EnrolledCourse, error) {
	f.record(ctx, "Enrollments")
	return f.EnrollmentsRet, nil
}

func (f *fakeClient) CreateOrder(ctx context.Context, _ models.OrderRequest) (*models.Order, error) {
	f.record(ctx, "CreateOrder")
	return f.Order, f.OrderErr
}

func (f *fakeClient) VerifyPayment(ctx context.Context, req models.VerifyRequest) (*models.VerifyResponse, error) {
	f.record(ctx, "VerifyPayment")
	f.LastVerify = req
	return f.Verify, f.VerifyErr
}

func (f *fakeClient) RequestService(ctx context.Context, _ models.ServiceRequest) error {
	f.record(ctx, "RequestService")
	return f.ServiceErr
}

func (f *fakeClient) Users(ctx context.Context) ([]models.User, error) {
	f.record(ctx, "Users")
	return nil, f.AdminErr
}

func (f *fakeClient) CreateCourse(ctx context.Context, nc models.NewCourse) (*models.Course, error) {
	f.record(ctx, "CreateCourse")
	if f.AdminErr != nil {
		return nil, f.AdminErr
	}
	return &models.Course{ID: "9", Title: nc.Title, Price: models.Amount(nc.Price)}, nil
}

func (f *fakeClient) DeleteCourse(ctx context.Context, _ models.ID) error {
	f.record(ctx, "DeleteCourse")
	return f.AdminErr
}

func (f *fakeClient) ServiceTickets(ctx context.Context) ([]models.ServiceTicket, error) {
	f.record(ctx, "ServiceTickets")
	return nil, f.AdminErr
}

func (f *fakeClient) UpdateServiceStatus(ctx context.Context, _ models.ID, _ models.ServiceStatus) error {
	f.record(ctx, "UpdateServiceStatus")
	return f.AdminErr
}
