package auth

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/domain"
	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/internal/domain/repository"
	"github.com/jhoicas/user-console/pkg/jwt"
	"github.com/jhoicas/user-console/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config parámetros del login de demostración.
type Config struct {
	JWT          JWTConfig
	DemoPassword string
	BcryptCost   int // 0 = bcrypt.DefaultCost
}

// SessionGuard vista del guard de sesión usada por el login.
type SessionGuard interface {
	Login(user entity.SessionUser, token string) error
	Logout()
	Session() (entity.Session, bool)
	Timeout() time.Duration
}

// PermissionSource resuelve los permisos de un rol.
type PermissionSource interface {
	Permissions(role entity.Role) []string
}

// AuthUseCase login contra el store simulado: todos los usuarios comparten la contraseña de demostración.
type AuthUseCase struct {
	store        repository.UserStore
	guard        SessionGuard
	perms        PermissionSource
	jwtCfg       JWTConfig
	passwordHash []byte
	clock        clockwork.Clock
	log          *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. La contraseña de demostración se hashea una vez con bcrypt.
func NewAuthUseCase(store repository.UserStore, guard SessionGuard, perms PermissionSource, cfg Config, clk clockwork.Clock, log *logger.Logger) (*AuthUseCase, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), cost)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		store:        store,
		guard:        guard,
		perms:        perms,
		jwtCfg:       cfg.JWT,
		passwordHash: hash,
		clock:        clk,
		log:          log.Component("auth"),
	}, nil
}

// Login verifica email/password, exige estado active, genera JWT y abre la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.NewInvalidInput("email y password son obligatorios")
	}
	user, err := uc.findByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.StatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	su := entity.SessionUserFrom(*user)
	if err := uc.guard.Login(su, token); err != nil {
		return nil, err
	}
	uc.log.Info().Int("user_id", user.ID).Msg("login correcto")
	return &dto.LoginResponse{Token: token, User: toSessionUserResponse(su)}, nil
}

// Logout cierra la sesión.
func (uc *AuthUseCase) Logout() {
	uc.guard.Logout()
}

// Me estado de la sesión actual.
func (uc *AuthUseCase) Me() (*dto.SessionResponse, error) {
	s, ok := uc.guard.Session()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	timeout := uc.guard.Timeout()
	remaining := timeout - uc.clock.Now().Sub(s.LastActivity)
	if remaining < 0 {
		remaining = 0
	}
	var perms []string
	if uc.perms != nil {
		perms = uc.perms.Permissions(s.User.Role)
	}
	if perms == nil {
		perms = []string{}
	}
	return &dto.SessionResponse{
		User:             toSessionUserResponse(s.User),
		LastActivity:     s.LastActivity,
		TimeoutSeconds:   int(timeout / time.Second),
		ExpiresInSeconds: int(remaining / time.Second),
		Permissions:      perms,
	}, nil
}

// findByEmail busca por coincidencia exacta de email usando el filtro de búsqueda del store.
func (uc *AuthUseCase) findByEmail(ctx context.Context, email string) (*entity.User, error) {
	page, err := uc.store.ListUsers(ctx, entity.ListQuery{Search: email, Page: 1, Limit: 100})
	if err != nil {
		return nil, err
	}
	for i := range page.Data {
		if page.Data[i].Email == email {
			u := page.Data[i]
			return &u, nil
		}
	}
	return nil, nil
}

func toSessionUserResponse(u entity.SessionUser) dto.SessionUserResponse {
	return dto.SessionUserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
		Avatar: u.Avatar,
	}
}
