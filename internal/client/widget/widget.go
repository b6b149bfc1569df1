// Package widget provides payment widgets for the checkout flow. The
// terminal widget asks the user for the gateway's payment reference, the
// sandbox widget pays instantly with a locally computed signature, and the
// scripted widget replays fixed answers in tests.
package widget

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/client/services"
)

var ErrNoScript = errors.New("widget script exhausted")

// FormatAmount renders an amount in the smallest currency unit.
func FormatAmount(amount int64, currency string) string {
	if currency == "" {
		currency = "INR"
	}
	return fmt.Sprintf("%s %d.%02d", currency, amount/100, amount%100)
}

// Terminal prompts on w and reads answers from r.
type Terminal struct {
	r *bufio.Reader
	w io.Writer
}

func NewTerminal(r *bufio.Reader, w io.Writer) *Terminal {
	return &Terminal{r: r, w: w}
}

// Open prompts in a goroutine so the caller can stop waiting when ctx is
// done. The goroutine itself stays blocked on r until a line arrives, and that
// line is consumed as the answer. r must therefore only be shared with readers
// that stop on the same ctx, as the REPL does.
func (t *Terminal) Open(ctx context.Context, req services.WidgetRequest) (<-chan services.WidgetResult, error) {
	if req.OrderID == "" {
		return nil, errors.New("payment widget needs an order id")
	}

	ch := make(chan services.WidgetResult, 1)
	go func() {
		defer close(ch)
		ch <- t.run(req)
	}()
	return ch, nil
}

func (t *Terminal) run(req services.WidgetRequest) services.WidgetResult {
	fmt.Fprintf(t.w, "\n== %s ==\n%s\nAmount: %s\nOrder:  %s\n",
		req.Name, req.Description, FormatAmount(req.Amount, req.Currency), req.OrderID)
	if req.Prefill.Email != "" {
		fmt.Fprintf(t.w, "Paying as %s\n", req.Prefill.Email)
	}

	paymentID, err := t.ask("Payment id (empty line to cancel)")
	if err != nil {
		return services.WidgetResult{Err: err}
	}
	if paymentID == "" {
		return services.WidgetResult{Dismissed: true}
	}

	signature, err := t.ask("Payment signature")
	if err != nil {
		return services.WidgetResult{Err: err}
	}
	if signature == "" {
		return services.WidgetResult{Dismissed: true}
	}

	return services.WidgetResult{Payment: models.PaymentResult{
		OrderID:   req.OrderID,
		PaymentID: paymentID,
		Signature: signature,
	}}
}

func (t *Terminal) ask(prompt string) (string, error) {
	if _, err := fmt.Fprint(t.w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := t.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Sandbox completes every payment at once, signing it with the merchant
// secret of a test account.
type Sandbox struct {
	secret string
}

func NewSandbox(secret string) *Sandbox {
	return &Sandbox{secret: secret}
}

func (s *Sandbox) Open(_ context.Context, req services.WidgetRequest) (<-chan services.WidgetResult, error) {
	if req.OrderID == "" {
		return nil, errors.New("payment widget needs an order id")
	}

	paymentID := "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
	ch := make(chan services.WidgetResult, 1)
	ch <- services.WidgetResult{Payment: models.PaymentResult{
		OrderID:   req.OrderID,
		PaymentID: paymentID,
		Signature: models.SignPayment(s.secret, req.OrderID, paymentID),
	}}
	close(ch)
	return ch, nil
}

// Scripted answers each Open with the next result of its script.
type Scripted struct {
	results  []services.WidgetResult
	Requests []services.WidgetRequest
}

func NewScripted(results ...services.WidgetResult) *Scripted {
	return &Scripted{results: results}
}

func (s *Scripted) Open(_ context.Context, req services.WidgetRequest) (<-chan services.WidgetResult, error) {
	s.Requests = append(s.Requests, req)
	if len(s.results) == 0 {
		return nil, ErrNoScript
	}
	r := s.results[0]
	s.results = s.results[1:]
	if r.Payment.OrderID == "" && !r.Dismissed && r.Err == nil {
		r.Payment.OrderID = req.OrderID
	}

	ch := make(chan services.WidgetResult, 1)
	ch <- r
	close(ch)
	return ch, nil
}
