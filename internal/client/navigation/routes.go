// Package navigation models the client's route table and the locations it
// moves between. A Location carries its return path explicitly so that the
// login flow can send the user back where they were headed.
package navigation

import (
	"strings"

	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/common"
)

// Access is the requirement a route places on the session.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessAdmin
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessAuthenticated:
		return "authenticated"
	case AccessAdmin:
		return "admin"
	}
	return "unknown"
}

type Route struct {
	Path   string
	Access Access
	Title  string
}

// Table is an ordered, immutable set of routes keyed by path.
type Table struct {
	order  []Route
	byPath map[string]Route
}

func NewTable(routes ...Route) *Table {
	t := &Table{byPath: make(map[string]Route, len(routes))}
	for _, r := range routes {
		r.Path = Clean(r.Path)
		if _, dup := t.byPath[r.Path]; dup {
			continue
		}
		t.order = append(t.order, r)
		t.byPath[r.Path] = r
	}
	return t
}

// DefaultRoutes is the academy's route table.
func DefaultRoutes() *Table {
	return NewTable(
		Route{Path: common.PathHome, Access: AccessPublic, Title: "Home"},
		Route{Path: common.PathCourses, Access: AccessPublic, Title: "Courses"},
		Route{Path: common.PathServices, Access: AccessPublic, Title: "Services"},
		Route{Path: common.PathLogin, Access: AccessPublic, Title: "Login"},
		Route{Path: common.PathRegister, Access: AccessPublic, Title: "Register"},
		Route{Path: common.PathPrivacy, Access: AccessPublic, Title: "Privacy Policy"},
		Route{Path: common.PathTerms, Access: AccessPublic, Title: "Terms & Conditions"},
		Route{Path: common.PathRefund, Access: AccessPublic, Title: "Refund Policy"},
		Route{Path: common.PathDashboard, Access: AccessAuthenticated, Title: "Dashboard"},
		Route{Path: common.PathProfile, Access: AccessAuthenticated, Title: "Profile"},
		Route{Path: common.PathAdmin, Access: AccessAdmin, Title: "Admin"},
	)
}

// Lookup finds the route for path after cleaning it.
func (t *Table) Lookup(path string) (Route, bool) {
	r, ok := t.byPath[Clean(path)]
	return r, ok
}

// All returns the routes in declaration order.
func (t *Table) All() []Route {
	return append([]Route(nil), t.order...)
}

// Clean normalizes a user-typed path: leading slash, no trailing slash, no
// query or fragment.
func Clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// Landing is where a user goes after login when no return path is set.
func Landing(u *models.User) string {
	if u.IsAdmin() {
		return common.PathAdmin
	}
	return common.PathDashboard
}
