package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/user-console/internal/domain/entity"
	apphttp "github.com/jhoicas/user-console/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/user-console/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "user-console-test"
	testExpMin    = 60
)

// fakeSession sesión controlada por el test.
type fakeSession struct {
	session    *entity.Session
	expired    bool
	logouts    int
	activities int
}

func (f *fakeSession) Session() (entity.Session, bool) {
	if f.session == nil {
		return entity.Session{}, false
	}
	return *f.session, true
}
func (f *fakeSession) Expired() bool   { return f.expired }
func (f *fakeSession) Logout()         { f.logouts++; f.session = nil }
func (f *fakeSession) RecordActivity() { f.activities++ }
func (f *fakeSession) Can(r entity.Role, p string) bool {
	d, ok := entity.FindRole(entity.DefaultRoles(), r)
	return ok && d.Can(p)
}

// tokenFor genera un JWT y abre la sesión falsa con él.
func tokenFor(t *testing.T, f *fakeSession, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, 7, "ana@example.com", string(role), testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	f.session = &entity.Session{
		User:         entity.SessionUser{ID: 7, Name: "Ana", Email: "ana@example.com", Role: role},
		Token:        tok,
		LastActivity: time.Now(),
	}
	return "Bearer " + tok
}

// buildTestApp aplicación Fiber mínima con AuthMiddleware y, opcionalmente, RequirePermission.
func buildTestApp(f *fakeSession, permission string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret, f)}
	if permission != "" {
		handlers = append(handlers, apphttp.RequirePermission(permission, f))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":      true,
			"user_id": apphttp.GetUserID(c),
			"role":    string(apphttp.GetRole(c)),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SesionValidaCuentaActividad(t *testing.T) {
	f := &fakeSession{}
	app := buildTestApp(f, "")

	resp := doRequest(t, app, tokenFor(t, f, entity.RoleEditor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(7), body["user_id"])
	assert.Equal(t, "editor", body["role"])
	assert.Equal(t, 1, f.activities)
}

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeSession{}, "")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeSession{}, "")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeSession{}, "")
	resp := doRequest(t, app, "Basic abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Un JWT válido que no es el de la sesión abierta no autoriza.
func TestAuthMiddleware_TokenDeOtraSesion_Retorna401(t *testing.T) {
	f := &fakeSession{}
	app := buildTestApp(f, "")
	old := tokenFor(t, f, entity.RoleAdmin)
	tokenFor(t, f, entity.RoleAdmin)

	resp := doRequest(t, app, old)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "UNAUTHORIZED")
	assert.Zero(t, f.activities)
}

func TestAuthMiddleware_SesionExpirada_CierraYRetorna401(t *testing.T) {
	f := &fakeSession{}
	app := buildTestApp(f, "")
	header := tokenFor(t, f, entity.RoleAdmin)
	f.expired = true

	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "SESSION_EXPIRED")
	assert.Equal(t, 1, f.logouts)
	assert.Zero(t, f.activities)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_AdminPuedeEliminar(t *testing.T) {
	f := &fakeSession{}
	app := buildTestApp(f, entity.PermUsersDelete)

	resp := doRequest(t, app, tokenFor(t, f, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_ManagerNoPuedeEliminar(t *testing.T) {
	f := &fakeSession{}
	app := buildTestApp(f, entity.PermUsersDelete)

	resp := doRequest(t, app, tokenFor(t, f, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestRequirePermission_ViewerNoPuedeCrear(t *testing.T) {
	f := &fakeSession{}
	app := buildTestApp(f, entity.PermUsersCreate)

	resp := doRequest(t, app, tokenFor(t, f, entity.RoleViewer))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
