package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/trustlayerlabs/academy/internal/client/guard"
	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/client/navigation"
	"github.com/trustlayerlabs/academy/internal/common"
)

// Go visits path through the route guard and renders wherever it lands.
func (a *App) Go(ctx context.Context, path string) error {
	d, err := a.guard.Enter(path)
	if err != nil {
		if errors.Is(err, guard.ErrUnknownRoute) {
			a.printf("Page not found: %s\n", navigation.Clean(path))
			return nil
		}
		return err
	}

	switch d.Outcome {
	case guard.OutcomeLoading:
		a.printf("Loading...\n")
		return nil
	case guard.OutcomeRedirect:
		a.printf("-> %s\n", d.Location)
	}
	return a.render(ctx, d.Location)
}

// Back returns to the previous page. It is shown again only when the
// session still allows it.
func (a *App) Back(ctx context.Context) error {
	loc := a.history.Back()
	if !a.guard.Allowed(loc.Path) {
		return a.Go(ctx, loc.Path)
	}
	return a.render(ctx, loc)
}

// Pages lists every route and whether the current session may open it.
func (a *App) Pages(ctx context.Context) error {
	a.title("Pages")
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tTITLE\tACCESS\tOPEN")
	for _, r := range a.routes.All() {
		open := "no"
		if a.guard.Allowed(r.Path) {
			open = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Path, r.Title, r.Access, open)
	}
	return tw.Flush()
}

func (a *App) render(ctx context.Context, loc navigation.Location) error {
	switch loc.Path {
	case common.PathHome:
		return a.homePage()
	case common.PathCourses:
		return a.coursesPage(ctx)
	case common.PathServices:
		return a.servicesPage()
	case common.PathLogin:
		return a.loginPage(ctx, loc.From)
	case common.PathRegister:
		return a.registerPage(ctx)
	case common.PathDashboard:
		return a.dashboardPage(ctx)
	case common.PathProfile:
		return a.profilePage()
	case common.PathAdmin:
		return a.adminPage(ctx)
	case common.PathPrivacy, common.PathTerms, common.PathRefund:
		return a.legalPage(loc.Path)
	}
	return nil
}

func (a *App) title(s string) {
	a.printf("\n== %s ==\n", s)
}

func (a *App) homePage() error {
	a.title("Trustlayer Labs")
	a.printf("Cybersecurity courses and consulting.\n")
	a.printf("Try: courses, services, login, register\n")
	if a.isLoggedIn() {
		a.printf("Your area: go %s\n", navigation.Landing(a.auth.Snapshot().User))
	}
	return nil
}

func (a *App) coursesPage(ctx context.Context) error {
	courses, err := a.catalog.Courses(ctx)
	if err != nil {
		return err
	}

	a.title("Courses")
	if len(courses) == 0 {
		a.printf("No courses available yet.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tACCESS")
	for _, c := range courses {
		access := "-"
		if c.ExpiryDays > 0 {
			access = fmt.Sprintf("%d days", c.ExpiryDays)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Title, formatPrice(c.Price), access)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("Enroll with: enroll <id>\n")
	return nil
}

func (a *App) servicesPage() error {
	a.title("Services")
	for i, o := range models.Offerings {
		a.printf("%d. %s [%s]\n   %s\n", i+1, o.Title, o.Category, o.Description)
	}
	a.printf("Request a quote with: request\n")
	return nil
}

func (a *App) dashboardPage(ctx context.Context) error {
	u := a.auth.Snapshot().User
	list, err := a.catalog.Enrollments(ctx)
	if err != nil {
		return err
	}

	a.title("Student Dashboard")
	a.printf("Welcome back, %s (%s account)\n\n", u.Email, u.Role)
	a.printf("My Learning\n")
	if len(list) == 0 {
		a.printf("  You haven't enrolled in any courses yet. Browse: courses\n")
	}
	for _, e := range list {
		a.printf("  %-30s %s %3d%%\n", e.Title, progressBar(e.Progress(), 20), e.Progress())
		if e.DriveLink != "" {
			a.printf("  %-30s %s\n", "", e.DriveLink)
		}
	}
	a.printf("\nProfile: %s\n", orDash(u.Name))
	return nil
}

func (a *App) profilePage() error {
	u := a.auth.Snapshot().User

	a.title("Profile")
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, row := range [][2]string{
		{"Email", u.Email},
		{"Role", string(u.Role)},
		{"Name", u.Name},
		{"College", u.College},
		{"Course", u.Course},
		{"Year", u.Year},
		{"Phone", u.Phone},
		{"City", u.City},
	} {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], orDash(row[1]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("Edit with: edit\n")
	return nil
}

func (a *App) adminPage(ctx context.Context) error {
	users, err := a.admin.Users(ctx)
	if err != nil {
		return err
	}
	tickets, err := a.admin.Services(ctx)
	if err != nil {
		return err
	}
	courses, err := a.catalog.Courses(ctx)
	if err != nil {
		return err
	}

	a.title("Admin")
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Users (%d)\n", len(users))
	for _, u := range users {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", u.ID, u.Email, u.Role)
	}
	fmt.Fprintf(tw, "Courses (%d)\n", len(courses))
	for _, c := range courses {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.ID, c.Title, formatPrice(c.Price))
	}
	fmt.Fprintf(tw, "Service requests (%d)\n", len(tickets))
	for _, t := range tickets {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", t.ID, t.Service, t.RequesterEmail, t.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("Manage with: addcourse, delcourse <id>, setstatus <id> <pending|quoted|completed>\n")
	return nil
}

var legalText = map[string][2]string{
	common.PathPrivacy: {"Privacy Policy", "We store your account details to run your courses and never sell them."},
	common.PathTerms:   {"Terms & Conditions", "Course access is personal and expires after the listed number of days."},
	common.PathRefund:  {"Refund Policy", "Digital courses are non-refundable once access has been granted."},
}

func (a *App) legalPage(path string) error {
	t := legalText[path]
	a.title(t[0])
	a.printf("%s\n", t[1])
	return nil
}

func formatPrice(p models.Amount) string {
	return fmt.Sprintf("Rs. %.2f", float64(p))
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
