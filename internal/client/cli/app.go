package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/trustlayerlabs/academy/internal/client/client"
	"github.com/trustlayerlabs/academy/internal/client/config"
	"github.com/trustlayerlabs/academy/internal/client/guard"
	"github.com/trustlayerlabs/academy/internal/client/navigation"
	"github.com/trustlayerlabs/academy/internal/client/repositories/kv"
	"github.com/trustlayerlabs/academy/internal/client/services"
	"github.com/trustlayerlabs/academy/internal/client/session"
	"github.com/trustlayerlabs/academy/internal/client/widget"
	"github.com/trustlayerlabs/academy/internal/common"
	"github.com/trustlayerlabs/academy/internal/logging"
)

type App struct {
	logger logging.Logger
	out    io.Writer
	reader *bufio.Reader

	repo     kv.Repository
	auth     *services.AuthService
	catalog  *services.CatalogService
	admin    *services.AdminService
	checkout *services.Checkout
	guard    *guard.Guard
	routes   *navigation.Table
	history  *navigation.History
}

// NewApp opens the session store, restores any saved session and wires the
// services against the configured API.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repo, err := kv.New(ctx, c.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	api, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, nil)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	reader := bufio.NewReader(os.Stdin)

	var w services.Widget = widget.NewTerminal(reader, os.Stdout)
	if c.PaymentSandboxSecret != "" {
		logger.Warn(ctx, "payment sandbox enabled, payments are signed locally")
		w = widget.NewSandbox(c.PaymentSandboxSecret)
	}

	return newApp(ctx, appDeps{
		api:    api,
		repo:   repo,
		widget: w,
		reader: reader,
		out:    os.Stdout,
		logger: logger,
		keyID:  c.PaymentKeyID,
	}), nil
}

type appDeps struct {
	api    *client.HTTPClient
	repo   kv.Repository
	widget services.Widget
	reader *bufio.Reader
	out    io.Writer
	logger logging.Logger
	keyID  string
}

func newApp(ctx context.Context, d appDeps) *App {
	a := &App{
		logger:  d.logger,
		out:     d.out,
		reader:  d.reader,
		repo:    d.repo,
		routes:  navigation.DefaultRoutes(),
		history: navigation.NewHistory(navigation.Location{Path: common.PathHome}),
	}

	store := session.NewStore(d.repo, d.logger)
	a.auth = services.NewAuthService(ctx, d.api, store, d.logger)
	d.api.SetTokenSource(a.auth.Token)

	a.catalog = services.NewCatalogService(d.api, a.auth)
	a.admin = services.NewAdminService(d.api, a.auth, d.logger)
	a.checkout = services.NewCheckout(d.api, a.auth, d.widget, a.history, services.NotifierFunc(a.notify), d.logger, d.keyID)
	a.guard = guard.New(a.auth, a.routes, a.history)
	return a
}

// Run shows the home page and runs the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	a.printf("Welcome to %s Academy (type 'help' for commands)\n", services.Brand)
	if err := a.Go(ctx, common.PathHome); err != nil {
		a.report(err)
	}
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the session store.
func (a *App) Close() error {
	return a.repo.Close()
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.auth.Snapshot().IsAdmin()
}

// status is shown in the prompt: who is logged in and where they are.
func (a *App) status() string {
	s := a.auth.Snapshot()
	who := "guest"
	if s.IsAuthenticated() {
		who = fmt.Sprintf("%s %s", s.User.Email, s.User.Role)
	}
	return fmt.Sprintf("[%s] %s", who, a.history.Current().Path)
}

func (a *App) notify(n services.Notice) {
	prefix := "[info]"
	switch n.Level {
	case services.NoticeSuccess:
		prefix = "[ok]"
	case services.NoticeError:
		prefix = "[error]"
	}
	a.printf("%s %s\n", prefix, n.Text)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints err in user terms. Reading past the end of input is not an
// error worth reporting.
func (a *App) report(err error) {
	if err == nil || errors.Is(err, io.EOF) {
		return
	}
	a.printf("[error] %s\n", services.UserMessage(err))
	a.logger.Debug(context.Background(), "command failed", "error", err)
}
