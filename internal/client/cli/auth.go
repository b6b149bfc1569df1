package cli

import (
	"context"
	"sort"

	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/client/navigation"
	"github.com/trustlayerlabs/academy/internal/common"
)

// getSimpleText, getPassword and getOptional are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getOptional   = GetOptional
	getMultiline  = GetMultiline
)

// Register opens the registration page.
func (a *App) Register(ctx context.Context) error {
	return a.Go(ctx, common.PathRegister)
}

// Login opens the login page.
func (a *App) Login(ctx context.Context) error {
	return a.Go(ctx, common.PathLogin)
}

// loginPage prompts for credentials. On success it continues to from, or to
// the user's landing page when the login was not triggered by a redirect.
func (a *App) loginPage(ctx context.Context, from string) error {
	a.title("Login")
	if u := a.auth.Snapshot().User; a.isLoggedIn() {
		a.printf("Logged in as %s. Use logout to switch accounts.\n", u.Email)
		return nil
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	u, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.printf("Welcome, %s!\n", displayName(u))

	target := from
	if target == "" {
		target = navigation.Landing(u)
	}
	return a.Go(ctx, target)
}

// registerPage collects a registration form and sends the user on to log in.
func (a *App) registerPage(ctx context.Context) error {
	a.title("Create account")
	if a.isLoggedIn() {
		a.printf("You are already logged in. Use logout first to create another account.\n")
		return nil
	}

	var (
		reg models.Registration
		err error
	)
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Email", &reg.Email},
		{"Name (optional)", &reg.Name},
		{"College (optional)", &reg.College},
		{"Year (optional)", &reg.Year},
		{"Phone (optional)", &reg.Phone},
		{"City (optional)", &reg.City},
	} {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}
	if reg.Password, err = getPassword(a.reader, "Password (min 6 characters)", a.out); err != nil {
		return err
	}
	if reg.ConfirmPassword, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	if _, err := a.auth.Register(ctx, reg); err != nil {
		return err
	}
	a.printf("Account created. Please log in.\n")
	return a.Go(ctx, common.PathLogin)
}

// Logout ends the session. When the current page needs a session the user
// is taken home.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return nil
	}

	err := a.auth.Logout(ctx)
	a.printf("Logged out.\n")
	if !a.guard.Allowed(a.history.Current().Path) {
		if gerr := a.Go(ctx, common.PathHome); gerr != nil {
			return gerr
		}
	}
	return err
}

// WhoAmI prints the session. verbose also lists what the session store
// holds, with value sizes instead of values.
func (a *App) WhoAmI(ctx context.Context, verbose bool) error {
	s := a.auth.Snapshot()
	if !s.IsAuthenticated() {
		a.printf("Not logged in (%s).\n", s.State)
	} else {
		a.printf("%s <%s> role=%s id=%s\n", displayName(s.User), s.User.Email, s.User.Role, s.User.ID)
	}
	if !verbose {
		return nil
	}

	stored, err := a.repo.List(ctx)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(stored))
	for k := range stored {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	a.printf("Session store: %d key(s)\n", len(keys))
	for _, k := range keys {
		a.printf("  %s (%d bytes)\n", k, len(stored[k]))
	}
	return nil
}

// Reset logs out and wipes everything the session store holds.
func (a *App) Reset(ctx context.Context) error {
	if a.isLoggedIn() {
		if err := a.Logout(ctx); err != nil {
			return err
		}
	}
	if err := a.repo.Clear(ctx); err != nil {
		return err
	}
	a.printf("Local session data removed.\n")
	return nil
}

// EditProfile asks for every profile field and saves the ones that changed.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotAuthenticated
	}
	u := a.auth.Snapshot().User

	var (
		upd models.ProfileUpdate
		err error
	)
	for _, f := range []struct {
		label   string
		current string
		dst     **string
	}{
		{"Name", u.Name, &upd.Name},
		{"College", u.College, &upd.College},
		{"Course", u.Course, &upd.Course},
		{"Year", u.Year, &upd.Year},
		{"Phone", u.Phone, &upd.Phone},
		{"City", u.City, &upd.City},
	} {
		if *f.dst, err = getOptional(a.reader, f.label, f.current, a.out); err != nil {
			return err
		}
	}

	if upd.Empty() {
		a.printf("Nothing to change.\n")
		return nil
	}
	if _, err := a.auth.UpdateProfile(ctx, upd); err != nil {
		return err
	}
	a.printf("Profile updated.\n")
	if a.history.Current().Path == common.PathProfile {
		return a.profilePage()
	}
	return nil
}

func displayName(u *models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
