package navigation_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/user-console/internal/application/navigation"
	"github.com/jhoicas/user-console/internal/application/session"
	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/internal/infrastructure/storage"
)

// fakeGuard guard controlado a mano que registra las llamadas con efectos.
type fakeGuard struct {
	authenticated bool
	restorable    bool
	expired       bool
	role          entity.Role

	logouts    int
	activities int
	restores   int
}

func (f *fakeGuard) IsAuthenticated() bool { return f.authenticated }
func (f *fakeGuard) Restore() bool {
	f.restores++
	if f.restorable {
		f.authenticated = true
	}
	return f.restorable
}
func (f *fakeGuard) Expired() bool { return f.authenticated && f.expired }
func (f *fakeGuard) Logout() {
	f.logouts++
	f.authenticated = false
}
func (f *fakeGuard) RecordActivity() { f.activities++ }
func (f *fakeGuard) HasRole(required entity.Role) bool {
	return f.authenticated && entity.HasRole(f.role, required)
}

func TestRouteTable_Match(t *testing.T) {
	routes := navigation.DefaultRoutes()

	cases := map[string]string{
		"/":             navigation.RouteHome,
		"/login":        navigation.RouteLogin,
		"/unauthorized": navigation.RouteUnauthorized,
		"/users":        navigation.RouteUserManagement,
		"/users/":       navigation.RouteUserManagement,
		"/users/42":     navigation.RouteUserDetail,
		"/users/42/x":   navigation.RouteNotFound,
		"/otra/cosa":    navigation.RouteNotFound,
	}
	for path, want := range cases {
		r, _ := routes.Match(path)
		assert.Equal(t, want, r.Name, path)
	}

	_, params := routes.Match("/users/42")
	assert.Equal(t, map[string]string{"id": "42"}, params)
}

func TestRouteTable_MatchVariosParametros(t *testing.T) {
	routes := navigation.NewRouteTable(
		navigation.Route{Name: "Perdida", Path: "*"},
		navigation.Route{Name: "Miembro", Path: "/teams/:team/members/:member"},
		navigation.Route{Name: "Equipos", Path: "/teams"},
		navigation.Route{Name: "Duplicada", Path: "/teams"},
	)

	r, params := routes.Match("/teams/core/members/7")
	assert.Equal(t, "Miembro", r.Name)
	assert.Equal(t, map[string]string{"team": "core", "member": "7"}, params)

	r, _ = routes.Match("/teams")
	assert.Equal(t, "Equipos", r.Name, "ante patrones repetidos gana el primero")

	r, params = routes.Match("/teams/core/members")
	assert.Equal(t, "Perdida", r.Name)
	assert.Empty(t, params)
	assert.Equal(t, "Perdida", routes.Fallback().Name)
}

func TestAuthorize_RutaPublicaSiempre(t *testing.T) {
	g := &fakeGuard{}
	a := navigation.NewAuthorizer(g, nil, nil)

	for _, p := range []string{"/unauthorized", "/no-existe", "/login"} {
		d := a.Authorize(p)
		assert.True(t, d.Allow, p)
		assert.Equal(t, navigation.ReasonAllowed, d.Reason)
	}
	assert.Zero(t, g.activities)
}

func TestAuthorize_LoginAutenticadoRedirigeAUsuarios(t *testing.T) {
	g := &fakeGuard{authenticated: true, role: entity.RoleViewer}
	a := navigation.NewAuthorizer(g, nil, nil)

	d := a.Authorize("/login")

	assert.False(t, d.Allow)
	assert.Equal(t, navigation.ReasonAlreadyAuthenticated, d.Reason)
	require.NotNil(t, d.Redirect)
	assert.Equal(t, "/users", d.Redirect.URL())
}

func TestAuthorize_HomeRedirige(t *testing.T) {
	a := navigation.NewAuthorizer(&fakeGuard{}, nil, nil)

	d := a.Authorize("/")

	assert.False(t, d.Allow)
	assert.Equal(t, navigation.ReasonHomeRedirect, d.Reason)
	assert.Equal(t, navigation.RouteUserManagement, d.Redirect.Name)
}

func TestAuthorize_AnonimoSinRestauracion(t *testing.T) {
	g := &fakeGuard{}
	a := navigation.NewAuthorizer(g, nil, nil)

	d := a.Authorize("/users/5?tab=perfil")

	assert.False(t, d.Allow)
	assert.Equal(t, navigation.ReasonNotAuthenticated, d.Reason)
	assert.Equal(t, navigation.RouteLogin, d.Redirect.Name)
	assert.Equal(t, "/users/5?tab=perfil", d.Redirect.Query["redirect"])
	assert.Equal(t, "/login?redirect=%2Fusers%2F5%3Ftab%3Dperfil", d.Redirect.URL())
	assert.Equal(t, 1, g.restores)
}

func TestAuthorize_RestauraYPermite(t *testing.T) {
	g := &fakeGuard{restorable: true, role: entity.RoleEditor}
	a := navigation.NewAuthorizer(g, nil, nil)

	d := a.Authorize("/users/5")

	assert.True(t, d.Allow)
	assert.Equal(t, "5", d.Params["id"])
	assert.Equal(t, 1, g.activities)
}

func TestAuthorize_SesionExpirada(t *testing.T) {
	g := &fakeGuard{authenticated: true, expired: true, role: entity.RoleAdmin}
	a := navigation.NewAuthorizer(g, nil, nil)

	d := a.Authorize("/users")

	assert.False(t, d.Allow)
	assert.Equal(t, navigation.ReasonSessionExpired, d.Reason)
	assert.Equal(t, map[string]string{"redirect": "/users", "expired": "true"}, d.Redirect.Query)
	assert.Equal(t, 1, g.logouts)
	assert.Zero(t, g.activities)
}

func TestAuthorize_RolInsuficiente(t *testing.T) {
	g := &fakeGuard{authenticated: true, role: entity.RoleViewer}
	a := navigation.NewAuthorizer(g, nil, nil)

	d := a.Authorize("/users/9")

	assert.False(t, d.Allow)
	assert.Equal(t, navigation.ReasonInsufficientRole, d.Reason)
	assert.Equal(t, "/unauthorized", d.Redirect.URL())
	assert.Equal(t, 1, g.activities, "la actividad se registra antes de comprobar el rol")
}

func TestAuthorize_RolSuficiente(t *testing.T) {
	g := &fakeGuard{authenticated: true, role: entity.RoleViewer}
	a := navigation.NewAuthorizer(g, nil, nil)

	d := a.Authorize("/users")

	assert.True(t, d.Allow)
	assert.Equal(t, navigation.RouteUserManagement, d.Route.Name)
}

func TestAuthorize_ConGuardReal(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	guard := session.NewGuard(storage.NewMemoryStorage(), session.WithClock(clk))
	a := navigation.NewAuthorizer(guard, nil, nil)

	assert.Equal(t, navigation.ReasonNotAuthenticated, a.Authorize("/users").Reason)

	require.NoError(t, guard.Login(entity.SessionUser{ID: 1, Name: "Admin", Role: entity.RoleEditor}, "tok"))
	clk.Advance(40 * time.Second)
	assert.True(t, a.Authorize("/users/1").Allow)
	assert.Equal(t, clk.Now(), guard.LastActivity())

	clk.Advance(61 * time.Second)
	require.Eventually(t, func() bool { return !guard.IsAuthenticated() }, time.Second, time.Millisecond)
	d := a.Authorize("/users")
	assert.Equal(t, navigation.ReasonNotAuthenticated, d.Reason, "el temporizador ya cerró la sesión")
}
