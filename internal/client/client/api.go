package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/common"
)

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", authNone, creds, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" || !resp.User.Valid() {
		return nil, fmt.Errorf("%w: login response lacks token or user", common.ErrMalformedResponse)
	}
	return &resp, nil
}

// Register creates an account. The backend answers either with the user
// record, with {"user": {...}}, or with a bare acknowledgement; the returned
// user is nil in the last case.
func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", authNone, reg, &raw); err != nil {
		return nil, err
	}
	return userFromBody(raw), nil
}

// UpdateProfile returns the fields of the user record the server echoed, or
// nil when the body carries none.
func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserEcho, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/api/user/profile", authRequired, upd, &raw); err != nil {
		return nil, err
	}
	return echoFromBody(raw), nil
}

// userFromBody extracts a user record from either a bare or a wrapped body.
func userFromBody(raw json.RawMessage) *models.User {
	var wrapped struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User.Valid() {
		return wrapped.User
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err == nil && u.Valid() {
		return &u
	}
	return nil
}

// echoFromBody is userFromBody for partial records.
func echoFromBody(raw json.RawMessage) *models.UserEcho {
	var wrapped struct {
		User *models.UserEcho `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil && !wrapped.User.Empty() {
		return wrapped.User
	}

	var e models.UserEcho
	if err := json.Unmarshal(raw, &e); err == nil && !e.Empty() {
		return &e
	}
	return nil
}

func (c *HTTPClient) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.do(ctx, http.MethodGet, "/api/courses", authNone, nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *HTTPClient) Enrollments(ctx context.Context) ([]models.EnrolledCourse, error) {
	var list []models.EnrolledCourse
	if err := c.do(ctx, http.MethodGet, "/api/enrollments", authRequired, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/payment/create-order", authRequired, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *HTTPClient) VerifyPayment(ctx context.Context, req models.VerifyRequest) (*models.VerifyResponse, error) {
	var resp models.VerifyResponse
	if err := c.do(ctx, http.MethodPost, "/api/payment/verify", authRequired, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) RequestService(ctx context.Context, req models.ServiceRequest) error {
	return c.do(ctx, http.MethodPost, "/api/services", authOptional, req, nil)
}

func (c *HTTPClient) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", authRequired, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) CreateCourse(ctx context.Context, nc models.NewCourse) (*models.Course, error) {
	var course models.Course
	if err := c.do(ctx, http.MethodPost, "/api/admin/courses", authRequired, nc, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *HTTPClient) DeleteCourse(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/courses/"+url.PathEscape(id.String()), authRequired, nil, nil)
}

func (c *HTTPClient) ServiceTickets(ctx context.Context) ([]models.ServiceTicket, error) {
	var tickets []models.ServiceTicket
	if err := c.do(ctx, http.MethodGet, "/api/admin/services", authRequired, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *HTTPClient) UpdateServiceStatus(ctx context.Context, id models.ID, status models.ServiceStatus) error {
	path := "/api/admin/services/" + url.PathEscape(id.String())
	return c.do(ctx, http.MethodPut, path, authRequired, models.StatusUpdate{Status: status}, nil)
}
