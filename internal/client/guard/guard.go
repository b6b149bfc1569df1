// Package guard decides whether a navigation into a route may render, must
// wait for an auth call to finish, or has to be redirected. Decisions are
// recomputed from the live session on every call and never cached.
package guard

import (
	"errors"
	"fmt"

	"github.com/trustlayerlabs/academy/internal/client/navigation"
	"github.com/trustlayerlabs/academy/internal/client/session"
	"github.com/trustlayerlabs/academy/internal/common"
)

var ErrUnknownRoute = errors.New("unknown route")

type Outcome int

const (
	OutcomeLoading Outcome = iota
	OutcomeRedirect
	OutcomeRender
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeRender:
		return "render"
	}
	return "unknown"
}

// Decision is the guard's verdict. Location is the redirect target for
// OutcomeRedirect and the requested path for OutcomeRender.
type Decision struct {
	Outcome  Outcome
	Location navigation.Location
}

// Decide applies the access rules, in order:
// in-flight auth call, missing session, non-admin on an admin route.
func Decide(s session.Session, access navigation.Access, path string) Decision {
	if access == navigation.AccessPublic {
		return Decision{Outcome: OutcomeRender, Location: navigation.Location{Path: path}}
	}
	if s.Loading() {
		return Decision{Outcome: OutcomeLoading}
	}
	if !s.IsAuthenticated() {
		return Decision{
			Outcome:  OutcomeRedirect,
			Location: navigation.Location{Path: common.PathLogin, From: path},
		}
	}
	if access == navigation.AccessAdmin && !s.User.IsAdmin() {
		return Decision{
			Outcome:  OutcomeRedirect,
			Location: navigation.Location{Path: common.PathDashboard},
		}
	}
	return Decision{Outcome: OutcomeRender, Location: navigation.Location{Path: path}}
}

// Guard applies Decide to navigations and performs the resulting moves.
type Guard struct {
	source session.Source
	routes *navigation.Table
	nav    navigation.Navigator
}

func New(source session.Source, routes *navigation.Table, nav navigation.Navigator) *Guard {
	return &Guard{source: source, routes: routes, nav: nav}
}

// Enter decides on path and navigates to the rendered path or the redirect
// target. A loading decision navigates nowhere.
func (g *Guard) Enter(path string) (Decision, error) {
	route, ok := g.routes.Lookup(path)
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}

	d := Decide(g.source.Snapshot(), route.Access, route.Path)
	if d.Outcome != OutcomeLoading {
		g.nav.Navigate(d.Location)
	}
	return d, nil
}

// Allowed reports whether path would render for the current session.
func (g *Guard) Allowed(path string) bool {
	route, ok := g.routes.Lookup(path)
	if !ok {
		return false
	}
	return Decide(g.source.Snapshot(), route.Access, route.Path).Outcome == OutcomeRender
}
