package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/client/services"
)

// defaultExpiryDays is offered when an admin leaves the access period empty.
const defaultExpiryDays = 365

// Enroll buys the course with the given id. The checkout reports its own
// progress; afterwards the page it navigated to is shown.
func (a *App) Enroll(ctx context.Context, id string) error {
	course, err := a.catalog.Course(ctx, models.ID(id))
	if err != nil {
		return err
	}
	a.printf("Checkout: %s for %s\n", course.Title, formatPrice(course.Price))

	res := a.checkout.Enroll(ctx, course)
	a.logger.Debug(ctx, "checkout finished", "outcome", res.Outcome.String(), "attempt_id", res.AttemptID, "order_id", res.OrderID)

	switch res.Outcome {
	case services.OutcomeLoginRequired, services.OutcomeEnrolled:
		return a.render(ctx, a.history.Current())
	}
	return nil
}

// RequestService asks for a consulting request and submits it.
func (a *App) RequestService(ctx context.Context) error {
	a.title("Request a quote")
	for i, o := range models.Offerings {
		a.printf("%d. %s\n", i+1, o.Title)
	}

	choice, err := getSimpleText(a.reader, "Service (number or name)", a.out)
	if err != nil {
		return err
	}
	service := choice
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(models.Offerings) {
		service = models.Offerings[n-1].Title
	}

	description, err := getMultiline(a.reader, "Describe what you need", a.out)
	if err != nil {
		return err
	}

	email := ""
	if u := a.auth.Snapshot().User; u != nil {
		email = u.Email
	}
	if email == "" {
		if email, err = getSimpleText(a.reader, "Your email", a.out); err != nil {
			return err
		}
	}

	req := models.ServiceRequest{Service: service, Description: description, RequesterEmail: email}
	if err := a.catalog.RequestService(ctx, req); err != nil {
		return err
	}
	a.printf("Request sent. We will get back to you at %s.\n", email)
	return nil
}

// AddCourse asks for a new course and creates it.
func (a *App) AddCourse(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	rawPrice, err := getSimpleText(a.reader, "Price (INR)", a.out)
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
	if err != nil {
		a.printf("Price must be a number.\n")
		return nil
	}
	link, err := getSimpleText(a.reader, "Drive link", a.out)
	if err != nil {
		return err
	}
	rawExpiry, err := getSimpleText(a.reader, fmt.Sprintf("Access days [%d]", defaultExpiryDays), a.out)
	if err != nil {
		return err
	}
	expiry := defaultExpiryDays
	if rawExpiry != "" {
		if expiry, err = strconv.Atoi(rawExpiry); err != nil {
			a.printf("Access days must be a whole number.\n")
			return nil
		}
	}

	c, err := a.admin.CreateCourse(ctx, models.NewCourse{
		Title:      title,
		Price:      price,
		DriveLink:  link,
		ExpiryDays: expiry,
	})
	if err != nil {
		return err
	}
	a.printf("Course created: %s %s\n", c.ID, c.Title)
	return nil
}

func (a *App) DeleteCourse(ctx context.Context, id string) error {
	if err := a.admin.DeleteCourse(ctx, models.ID(id)); err != nil {
		return err
	}
	a.printf("Course %s deleted.\n", id)
	return nil
}

func (a *App) SetStatus(ctx context.Context, id, status string) error {
	if err := a.admin.UpdateServiceStatus(ctx, models.ID(id), models.ServiceStatus(status)); err != nil {
		return err
	}
	a.printf("Request %s is now %s.\n", id, status)
	return nil
}
