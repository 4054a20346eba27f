package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/user-console/internal/application/auth"
	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/application/session"
	"github.com/jhoicas/user-console/internal/domain"
	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/internal/infrastructure/mockapi"
	"github.com/jhoicas/user-console/internal/infrastructure/storage"
	"github.com/jhoicas/user-console/pkg/jwt"
)

const testSecret = "test-secret"

var testNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type staticPerms map[entity.Role][]string

func (s staticPerms) Permissions(r entity.Role) []string { return s[r] }

func setup(t *testing.T) (*auth.AuthUseCase, *session.Guard, clockwork.FakeClock) {
	t.Helper()
	clk := clockwork.NewFakeClockAt(testNow)
	login := testNow.Add(-time.Hour)
	store := mockapi.New(
		mockapi.WithLatency(mockapi.NoLatency),
		mockapi.WithFailure(mockapi.NeverFail),
		mockapi.WithClock(clk),
		mockapi.WithSeedUsers([]entity.User{
			{ID: 1, Name: "Ada Admin", Email: "ada@example.com", Role: entity.RoleAdmin, Status: entity.StatusActive, LastLogin: &login},
			{ID: 2, Name: "Ada Jr", Email: "ada.jr@example.com", Role: entity.RoleViewer, Status: entity.StatusActive, LastLogin: &login},
			{ID: 3, Name: "Paco Pending", Email: "paco@example.com", Role: entity.RoleEditor, Status: entity.StatusPending},
		}),
	)
	guard := session.NewGuard(storage.NewMemoryStorage(), session.WithClock(clk))
	uc, err := auth.NewAuthUseCase(store, guard, staticPerms{entity.RoleAdmin: {"users.view", "users.delete"}}, auth.Config{
		JWT:          auth.JWTConfig{Secret: testSecret, ExpMinutes: 30, Issuer: "user-console"},
		DemoPassword: "password123",
		BcryptCost:   bcrypt.MinCost,
	}, clk, nil)
	require.NoError(t, err)
	return uc, guard, clk
}

func TestLogin_Correcto(t *testing.T) {
	uc, guard, _ := setup(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ada@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.User.ID)
	assert.Equal(t, "admin", resp.User.Role)
	assert.True(t, guard.IsAuthenticated())
	s, _ := guard.Session()
	assert.Equal(t, resp.Token, s.Token)

	claims, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_EmailExacto(t *testing.T) {
	uc, _, _ := setup(t)

	// "ada" coincide por búsqueda con dos registros pero con ninguno exactamente
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ada", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ada.jr@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.User.ID)
}

func TestLogin_Rechazos(t *testing.T) {
	uc, guard, _ := setup(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ada@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "paco@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.False(t, guard.IsAuthenticated())
}

func TestMe_Y_Logout(t *testing.T) {
	uc, guard, clk := setup(t)
	_, err := uc.Me()
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	clk.Advance(20 * time.Second)

	me, err := uc.Me()
	require.NoError(t, err)
	assert.Equal(t, 60, me.TimeoutSeconds)
	assert.Equal(t, 40, me.ExpiresInSeconds)
	assert.Equal(t, []string{"users.view", "users.delete"}, me.Permissions)

	uc.Logout()
	assert.False(t, guard.IsAuthenticated())
}
