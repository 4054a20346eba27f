package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/user-console/internal/application/auth"
	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/application/export"
	"github.com/jhoicas/user-console/internal/application/navigation"
	"github.com/jhoicas/user-console/internal/application/session"
	"github.com/jhoicas/user-console/internal/application/usecase"
	"github.com/jhoicas/user-console/internal/application/usercache"
	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/internal/infrastructure/i18n"
	"github.com/jhoicas/user-console/internal/infrastructure/mockapi"
	"github.com/jhoicas/user-console/internal/infrastructure/pdf"
	"github.com/jhoicas/user-console/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/user-console/internal/interfaces/http"
)

var consoleNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type console struct {
	app   *fiber.App
	clock clockwork.FakeClock
	guard *session.Guard
}

// newConsole arma la consola completa sobre el store simulado sin latencia ni fallos.
func newConsole(t *testing.T) *console {
	t.Helper()
	clk := clockwork.NewFakeClockAt(consoleNow)
	login := consoleNow.Add(-time.Hour)
	store := mockapi.New(
		mockapi.WithLatency(mockapi.NoLatency),
		mockapi.WithFailure(mockapi.NeverFail),
		mockapi.WithClock(clk),
		mockapi.WithSeedUsers([]entity.User{
			{ID: 1, Name: "Ada Admin", Email: "ada@example.com", Role: entity.RoleAdmin, Status: entity.StatusActive, LastLogin: &login, CreatedAt: consoleNow.AddDate(-1, 0, 0)},
			{ID: 2, Name: "Vera Viewer", Email: "vera@example.com", Role: entity.RoleViewer, Status: entity.StatusActive, LastLogin: &login, CreatedAt: consoleNow.AddDate(0, -2, 0)},
			{ID: 3, Name: "Ed Editor", Email: "ed@example.com", Role: entity.RoleEditor, Status: entity.StatusActive, LastLogin: &login, CreatedAt: consoleNow.AddDate(0, -1, 0)},
		}),
	)
	guard := session.NewGuard(storage.NewMemoryStorage(), session.WithClock(clk))
	roleUC := usecase.NewRoleUseCase(store, nil)
	authUC, err := auth.NewAuthUseCase(store, guard, roleUC, auth.Config{
		JWT:          auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		DemoPassword: "password123",
		BcryptCost:   bcrypt.MinCost,
	}, clk, nil)
	require.NoError(t, err)

	userUC := usecase.NewUserUseCase(usercache.New(store))
	prefUC := usecase.NewPreferenceUseCase(storage.NewMemoryStorage())
	exportUC := export.NewUseCase(pdf.NewMarotoPDFGenerator(), i18n.New(), clk)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		RoleUC:       roleUC,
		PreferenceUC: prefUC,
		ExportUC:     exportUC,
		Navigation:   navigation.NewAuthorizer(guard, nil, nil),
		Guard:        guard,
		JWTSecret:    testJWTSecret,
		AppName:      "user-console",
		Env:          "test",
	})
	return &console{app: app, clock: clk, guard: guard}
}

func (c *console) do(t *testing.T, method, target, token string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (c *console) login(t *testing.T, email string) string {
	t.Helper()
	resp := c.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "password123"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas(t *testing.T) {
	c := newConsole(t)

	resp := c.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ada@example.com", Password: "otra"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, c.guard.IsAuthenticated())
}

func TestLogin_CamposVacios(t *testing.T) {
	c := newConsole(t)

	resp := c.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ada@example.com"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMe_YLogout(t *testing.T) {
	c := newConsole(t)
	token := c.login(t, "ada@example.com")
	c.clock.Advance(15 * time.Second)

	me := decode[dto.SessionResponse](t, c.do(t, http.MethodGet, "/api/auth/me", token, nil))
	assert.Equal(t, 1, me.User.ID)
	assert.Equal(t, 60, me.TimeoutSeconds)
	// la propia petición cuenta como actividad
	assert.Equal(t, 60, me.ExpiresInSeconds)
	assert.Contains(t, me.Permissions, entity.PermUsersDelete)

	resp := c.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = c.do(t, http.MethodGet, "/api/auth/me", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSesion_InactividadCierraLaSesion(t *testing.T) {
	c := newConsole(t)
	token := c.login(t, "ada@example.com")

	c.clock.Advance(60 * time.Second)

	require.Eventually(t, func() bool { return !c.guard.IsAuthenticated() }, time.Second, time.Millisecond)
	resp := c.do(t, http.MethodGet, "/api/users", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── Users ────────────────────────────────────────────────────────────────────

func TestUsers_ListarFiltrarYOrdenar(t *testing.T) {
	c := newConsole(t)
	token := c.login(t, "ada@example.com")

	all := decode[dto.UserListResponse](t, c.do(t, http.MethodGet, "/api/users", token, nil))
	assert.Len(t, all.Data, 3)
	assert.Equal(t, 3, all.Meta.TotalItems)

	filtered := decode[dto.UserListResponse](t, c.do(t, http.MethodGet, "/api/users?role=editor", token, nil))
	require.Len(t, filtered.Data, 1)
	assert.Equal(t, 3, filtered.Data[0].ID)
	assert.Equal(t, "editor", filtered.Query.Role)

	// el filtro persiste mientras no se envíe de nuevo
	again := decode[dto.UserListResponse](t, c.do(t, http.MethodGet, "/api/users", token, nil))
	assert.Len(t, again.Data, 1)

	cleared := decode[dto.UserListResponse](t, c.do(t, http.MethodGet, "/api/users?role=&sortBy=name&sortOrder=desc", token, nil))
	require.Len(t, cleared.Data, 3)
	assert.Equal(t, "Vera Viewer", cleared.Data[0].Name)
	assert.Equal(t, "Ada Admin", cleared.Data[2].Name)
}

func TestUsers_RolInvalido(t *testing.T) {
	c := newConsole(t)
	token := c.login(t, "ada@example.com")

	resp := c.do(t, http.MethodGet, "/api/users?role=root", token, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_INPUT")
}

func TestUsers_CrearActualizarEliminar(t *testing.T) {
	c := newConsole(t)
	token := c.login(t, "ada@example.com")
	c.do(t, http.MethodGet, "/api/users", token, nil).Body.Close()

	resp := c.do(t, http.MethodPost, "/api/users", token, dto.CreateUserRequest{
		Name: "Nora New", Email: "nora@example.com", Role: "viewer", Status: "pending",
	})
	created := decode[dto.UserResponse](t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 4, created.ID)

	resp = c.do(t, http.MethodPost, "/api/users", token, dto.CreateUserRequest{
		Name: "Dup", Email: "nora@example.com", Role: "viewer", Status: "active",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	name := "Nora Updated"
	resp = c.do(t, http.MethodPut, "/api/users/4", token, dto.UpdateUserRequest{Name: &name})
	updated := decode[dto.UserResponse](t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Nora Updated", updated.Name)

	resp = c.do(t, http.MethodDelete, "/api/users/4", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = c.do(t, http.MethodGet, "/api/users/4", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "USER_NOT_FOUND")
}

func TestUsers_IDInvalido(t *testing.T) {
	c := newConsole(t)
	token := c.login(t, "ada@example.com")

	resp := c.do(t, http.MethodGet, "/api/users/abc", token, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsers_ViewerNoPuedeEliminar(t *testing.T) {
	c := newConsole(t)
	token := c.login(t, "vera@example.com")

	resp := c.do(t, http.MethodDelete, "/api/users/1", token, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ── Roles ────────────────────────────────────────────────────────────────────

func TestRoles_Catalogo(t *testing.T) {
	c := newConsole(t)
	token := c.login(t, "vera@example.com")

	cat := decode[dto.RoleCatalogResponse](t, c.do(t, http.MethodGet, "/api/roles", token, nil))

	assert.Len(t, cat.Roles, 5)
	require.Len(t, cat.Options, 6)
	assert.Equal(t, "All Roles", cat.Options[0].Label)
}

// ── Preferencias ─────────────────────────────────────────────────────────────

func TestPreferencias_CambiarIdioma(t *testing.T) {
	c := newConsole(t)

	def := decode[dto.PreferencesResponse](t, c.do(t, http.MethodGet, "/api/preferences", "", nil))
	assert.Equal(t, "en", def.Language)
	assert.Equal(t, "ltr", def.Direction)

	lang := "ar"
	out := decode[dto.PreferencesResponse](t, c.do(t, http.MethodPut, "/api/preferences", "", dto.UpdatePreferencesRequest{Language: &lang}))
	assert.Equal(t, "ar", out.Language)
	assert.True(t, out.RTL)

	bad := "fr"
	resp := c.do(t, http.MethodPut, "/api/preferences", "", dto.UpdatePreferencesRequest{Language: &bad})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── Exportaciones ────────────────────────────────────────────────────────────

func TestExport_CSVDeLaPaginaActual(t *testing.T) {
	c := newConsole(t)
	token := c.login(t, "ada@example.com")
	c.do(t, http.MethodGet, "/api/users?sortBy=id&sortOrder=asc", token, nil).Body.Close()

	resp := c.do(t, http.MethodGet, "/api/exports/users.csv", token, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="users-export-2026-06-01.csv"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, export.ContentTypeCSV, resp.Header.Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(bodyString(t, resp)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID,Name,Email"))
}

func TestExport_PDFDeUnUsuario(t *testing.T) {
	c := newConsole(t)
	token := c.login(t, "ada@example.com")

	resp := c.do(t, http.MethodGet, "/api/exports/users/2/pdf?lang=en", token, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="user-2-2026-06-01.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(bodyString(t, resp), "%PDF"))
}

// ── Navegación ───────────────────────────────────────────────────────────────

func TestNavegacion_AnonimoVaAlLogin(t *testing.T) {
	c := newConsole(t)

	resp := c.do(t, http.MethodGet, "/users", "", nil)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fusers", resp.Header.Get("Location"))
}

func TestNavegacion_HomeRedirigeAUsuarios(t *testing.T) {
	c := newConsole(t)

	resp := c.do(t, http.MethodGet, "/", "", nil)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users", resp.Header.Get("Location"))
}

func TestNavegacion_AutenticadoPermitido(t *testing.T) {
	c := newConsole(t)
	c.login(t, "ed@example.com")

	nav := decode[dto.NavigationResponse](t, c.do(t, http.MethodGet, "/users/2", "", nil))

	assert.Equal(t, navigation.RouteUserDetail, nav.Route)
	assert.Equal(t, "2", nav.Params["id"])
	assert.Equal(t, "allowed", nav.Reason)
}

func TestNavegacion_RolInsuficiente(t *testing.T) {
	c := newConsole(t)
	c.login(t, "vera@example.com")

	resp := c.do(t, http.MethodGet, "/users/1", "", nil)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
}

func TestNavegacion_LoginConSesionVaAUsuarios(t *testing.T) {
	c := newConsole(t)
	c.login(t, "vera@example.com")

	resp := c.do(t, http.MethodGet, "/login", "", nil)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users", resp.Header.Get("Location"))
}

func TestNavegacion_RutaDesconocida(t *testing.T) {
	c := newConsole(t)

	resp := c.do(t, http.MethodGet, "/no/existe", "", nil)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ── Health ───────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	c := newConsole(t)

	out := decode[dto.HealthResponse](t, c.do(t, http.MethodGet, "/health", "", nil))

	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "user-console", out.App)
}

func TestMetrics_ExponeContadoresDelStore(t *testing.T) {
	c := newConsole(t)
	c.login(t, "ada@example.com")

	resp := c.do(t, http.MethodGet, "/metrics", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "console_mockapi_")
}
