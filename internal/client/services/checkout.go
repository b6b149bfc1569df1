package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trustlayerlabs/academy/internal/client/client"
	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/client/navigation"
	"github.com/trustlayerlabs/academy/internal/client/session"
	"github.com/trustlayerlabs/academy/internal/common"
	"github.com/trustlayerlabs/academy/internal/logging"
)

// Brand is shown in the payment widget header.
const Brand = "Trustlayer Labs"

// Prefill is user data the payment widget shows pre-entered.
type Prefill struct {
	Name  string
	Email string
	Phone string
}

// WidgetRequest opens the vendor payment widget for one order.
type WidgetRequest struct {
	KeyID       string
	OrderID     string
	Amount      int64
	Currency    string
	Name        string
	Description string
	Prefill     Prefill
}

// WidgetResult is the widget's single answer: a payment, a dismissal, or an
// error raised by the widget itself.
type WidgetResult struct {
	Payment   models.PaymentResult
	Dismissed bool
	Err       error
}

// Widget is the vendor payment UI. Open returns at once; the channel yields
// exactly one result when the user finishes, then is closed.
type Widget interface {
	Open(ctx context.Context, req WidgetRequest) (<-chan WidgetResult, error)
}

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

type Notice struct {
	Level NoticeLevel
	Text  string
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(n Notice)
}

type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type Outcome int

const (
	// OutcomeLoginRequired: no session, sent to login, nothing was called.
	OutcomeLoginRequired Outcome = iota + 1
	// OutcomeFailed: the order could not be created or the widget failed.
	OutcomeFailed
	// OutcomeCancelled: the user closed the widget without paying.
	OutcomeCancelled
	// OutcomeUnverified: the backend did not confirm the payment.
	OutcomeUnverified
	OutcomeEnrolled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoginRequired:
		return "login required"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeUnverified:
		return "unverified"
	case OutcomeEnrolled:
		return "enrolled"
	}
	return "unknown"
}

// Result describes how one checkout attempt ended. Err is informational; the
// user has already been told through the Notifier.
type Result struct {
	Outcome   Outcome
	AttemptID string
	OrderID   string
	Err       error
}

// Checkout runs the purchase flow: create order, collect payment in the
// widget, verify with the backend. It reads the session but never changes it.
type Checkout struct {
	api      client.Client
	session  session.Source
	widget   Widget
	nav      navigation.Navigator
	notifier Notifier
	logger   logging.Logger
	keyID    string
}

func NewCheckout(
	api client.Client,
	src session.Source,
	widget Widget,
	nav navigation.Navigator,
	notifier Notifier,
	logger logging.Logger,
	keyID string,
) *Checkout {
	return &Checkout{
		api:      api,
		session:  src,
		widget:   widget,
		nav:      nav,
		notifier: notifier,
		logger:   logger.With("component", "checkout"),
		keyID:    keyID,
	}
}

// Enroll buys course for the current user. Failures are reported to the
// Notifier and never retried.
func (c *Checkout) Enroll(ctx context.Context, course models.Course) Result {
	res := Result{AttemptID: uuid.NewString()}
	log := c.logger.With("attempt_id", res.AttemptID, "course_id", course.ID.String())

	snap := c.session.Snapshot()
	if !snap.IsAuthenticated() {
		log.Info(ctx, "checkout without session, redirecting to login")
		c.notifier.Notify(Notice{Level: NoticeInfo, Text: "Please log in to enroll."})
		c.nav.Navigate(navigation.Location{Path: common.PathLogin, From: common.PathCourses})
		res.Outcome = OutcomeLoginRequired
		return res
	}

	ctx = client.WithRequestID(ctx, res.AttemptID)

	order, err := c.api.CreateOrder(ctx, models.OrderRequest{Amount: course.Price})
	if err == nil && order.ID == "" {
		err = fmt.Errorf("%w: response has no order id", common.ErrOrderCreation)
	} else if err != nil {
		err = fmt.Errorf("%w: %w", common.ErrOrderCreation, err)
	}
	if err != nil {
		log.Warn(ctx, "create order failed", "error", err)
		c.notifier.Notify(Notice{Level: NoticeError, Text: "Could not start payment: " + UserMessage(err)})
		res.Outcome, res.Err = OutcomeFailed, err
		return res
	}
	res.OrderID = order.ID
	log = log.With("order_id", order.ID)
	log.Debug(ctx, "order created", "amount", order.Amount)

	payment, outcome, err := c.collect(ctx, snap.User, course, order)
	if outcome != 0 {
		log.Info(ctx, "payment not collected", "outcome", outcome.String(), "error", err)
		switch outcome {
		case OutcomeCancelled:
			c.notifier.Notify(Notice{Level: NoticeInfo, Text: "Payment cancelled."})
		default:
			c.notifier.Notify(Notice{Level: NoticeError, Text: "Payment failed: " + UserMessage(err)})
		}
		res.Outcome, res.Err = outcome, err
		return res
	}

	verdict, err := c.api.VerifyPayment(ctx, models.VerifyRequest{PaymentResult: payment, CourseID: course.ID})
	switch {
	case err != nil:
		err = fmt.Errorf("%w: %w", common.ErrVerification, err)
	case !verdict.Verified():
		err = fmt.Errorf("%w: %s", common.ErrVerification, verdict.Message)
	}
	if err != nil {
		log.Warn(ctx, "payment verification failed", "error", err)
		c.notifier.Notify(Notice{Level: NoticeError, Text: "Payment verification failed. If you were charged, contact support with order " + order.ID + "."})
		res.Outcome, res.Err = OutcomeUnverified, err
		return res
	}

	log.Info(ctx, "enrolled")
	c.notifier.Notify(Notice{Level: NoticeSuccess, Text: "Enrollment successful! Welcome to " + course.Title + "."})
	c.nav.Navigate(navigation.Location{Path: common.PathDashboard})
	res.Outcome = OutcomeEnrolled
	return res
}

// collect opens the widget and waits for its answer. A non-zero Outcome means
// no payment was collected.
func (c *Checkout) collect(ctx context.Context, u *models.User, course models.Course, order *models.Order) (models.PaymentResult, Outcome, error) {
	ch, err := c.widget.Open(ctx, WidgetRequest{
		KeyID:       c.keyID,
		OrderID:     order.ID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        Brand,
		Description: course.Title,
		Prefill:     Prefill{Name: u.Name, Email: u.Email, Phone: u.Phone},
	})
	if err != nil {
		return models.PaymentResult{}, OutcomeFailed, fmt.Errorf("open payment widget: %w", err)
	}

	select {
	case <-ctx.Done():
		return models.PaymentResult{}, OutcomeCancelled, ctx.Err()
	case r, ok := <-ch:
		switch {
		case !ok || r.Dismissed:
			return models.PaymentResult{}, OutcomeCancelled, nil
		case r.Err != nil:
			return models.PaymentResult{}, OutcomeFailed, r.Err
		}
		if r.Payment.OrderID == "" {
			r.Payment.OrderID = order.ID
		}
		return r.Payment, 0, nil
	}
}
