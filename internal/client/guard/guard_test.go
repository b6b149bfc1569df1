package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/client/navigation"
	"github.com/trustlayerlabs/academy/internal/client/session"
	"github.com/trustlayerlabs/academy/internal/common"
)

type fixedSource struct{ s session.Session }

func (f *fixedSource) Snapshot() session.Session { return f.s }

func authed(role models.Role) session.Session {
	return session.Session{
		Token: "tok",
		User:  &models.User{ID: "1", Email: "a@b.com", Role: role},
		State: session.StateAuthenticated,
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		s       session.Session
		access  navigation.Access
		path    string
		outcome Outcome
		loc     navigation.Location
	}{
		{
			name:    "unauthenticated on dashboard goes to login with return path",
			s:       session.Session{},
			access:  navigation.AccessAuthenticated,
			path:    "/dashboard",
			outcome: OutcomeRedirect,
			loc:     navigation.Location{Path: common.PathLogin, From: "/dashboard"},
		},
		{
			name:    "student on admin goes to dashboard",
			s:       authed(models.RoleStudent),
			access:  navigation.AccessAdmin,
			path:    "/admin",
			outcome: OutcomeRedirect,
			loc:     navigation.Location{Path: common.PathDashboard},
		},
		{
			name:    "admin on admin renders",
			s:       authed(models.RoleAdmin),
			access:  navigation.AccessAdmin,
			path:    "/admin",
			outcome: OutcomeRender,
			loc:     navigation.Location{Path: "/admin"},
		},
		{
			name:    "student on dashboard renders",
			s:       authed(models.RoleStudent),
			access:  navigation.AccessAuthenticated,
			path:    "/dashboard",
			outcome: OutcomeRender,
			loc:     navigation.Location{Path: "/dashboard"},
		},
		{
			name:    "unauthenticated on admin goes to login first",
			s:       session.Session{},
			access:  navigation.AccessAdmin,
			path:    "/admin",
			outcome: OutcomeRedirect,
			loc:     navigation.Location{Path: common.PathLogin, From: "/admin"},
		},
		{
			name:    "auth call in flight shows loading",
			s:       session.Session{State: session.StateAuthenticating},
			access:  navigation.AccessAuthenticated,
			path:    "/profile",
			outcome: OutcomeLoading,
		},
		{
			name: "loading wins over an existing session",
			s: func() session.Session {
				s := authed(models.RoleStudent)
				s.State = session.StateAuthenticating
				return s
			}(),
			access:  navigation.AccessAdmin,
			path:    "/admin",
			outcome: OutcomeLoading,
		},
		{
			name:    "half session is not authenticated",
			s:       session.Session{Token: "tok", State: session.StateAuthenticated},
			access:  navigation.AccessAuthenticated,
			path:    "/profile",
			outcome: OutcomeRedirect,
			loc:     navigation.Location{Path: common.PathLogin, From: "/profile"},
		},
		{
			name:    "public route always renders",
			s:       session.Session{State: session.StateAuthenticating},
			access:  navigation.AccessPublic,
			path:    "/courses",
			outcome: OutcomeRender,
			loc:     navigation.Location{Path: "/courses"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.s, tt.access, tt.path)
			assert.Equal(t, tt.outcome, d.Outcome)
			assert.Equal(t, tt.loc, d.Location)
		})
	}
}

func TestGuard_EnterNavigates(t *testing.T) {
	src := &fixedSource{}
	hist := navigation.NewHistory(navigation.Location{Path: common.PathHome})
	g := New(src, navigation.DefaultRoutes(), hist)

	d, err := g.Enter("/dashboard/")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, navigation.Location{Path: common.PathLogin, From: common.PathDashboard}, hist.Current())
	assert.False(t, g.Allowed(common.PathDashboard))

	// decisions follow the live session
	src.s = authed(models.RoleStudent)
	d, err = g.Enter(common.PathDashboard)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRender, d.Outcome)
	assert.Equal(t, navigation.Location{Path: common.PathDashboard}, hist.Current())
	assert.True(t, g.Allowed(common.PathDashboard))
	assert.False(t, g.Allowed(common.PathAdmin))

	src.s = session.Session{}
	d, err = g.Enter(common.PathDashboard)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirect, d.Outcome)
}

func TestGuard_LoadingDoesNotNavigate(t *testing.T) {
	src := &fixedSource{s: session.Session{State: session.StateAuthenticating}}
	hist := navigation.NewHistory(navigation.Location{Path: common.PathHome})
	g := New(src, navigation.DefaultRoutes(), hist)

	d, err := g.Enter(common.PathProfile)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLoading, d.Outcome)
	assert.Len(t, hist.Entries(), 1)
}

func TestGuard_UnknownRoute(t *testing.T) {
	g := New(&fixedSource{}, navigation.DefaultRoutes(), navigation.NewHistory(navigation.Location{}))
	_, err := g.Enter("/secret")
	assert.ErrorIs(t, err, ErrUnknownRoute)
	assert.False(t, g.Allowed("/secret"))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "loading", OutcomeLoading.String())
	assert.Equal(t, "redirect", OutcomeRedirect.String())
	assert.Equal(t, "render", OutcomeRender.String())
}
