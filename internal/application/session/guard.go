// Package session mantiene la sesión autenticada de la consola: estado en memoria,
// copia en el almacenamiento por pestaña y expiración por inactividad.
package session

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jhoicas/user-console/internal/domain"
	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/internal/domain/repository"
	"github.com/jhoicas/user-console/pkg/logger"
)

// Claves del trío persistido.
const (
	KeyUser         = "user"
	KeyToken        = "token"
	KeyLastActivity = "lastActivity"
)

// DefaultTimeout umbral de inactividad por defecto.
const DefaultTimeout = 60 * time.Second

// Option configura el Guard.
type Option func(*Guard)

// WithClock inyecta el reloj (tests usan clockwork.NewFakeClockAt).
func WithClock(c clockwork.Clock) Option {
	return func(g *Guard) { g.clock = c }
}

// WithTimeout fija el umbral de inactividad.
func WithTimeout(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(g *Guard) { g.log = l.Component("session") }
}

// WithOnExpire callback invocado (fuera del lock) cuando el temporizador cierra la sesión.
func WithOnExpire(f func()) Option {
	return func(g *Guard) { g.onExpire = f }
}

// Guard estados Anonymous / Authenticated. authenticated implica session != nil con token.
type Guard struct {
	mu       sync.Mutex
	storage  repository.KeyValueStorage
	clock    clockwork.Clock
	timeout  time.Duration
	log      *logger.Logger
	onExpire func()

	session *entity.Session
	timer   clockwork.Timer
	gen     uint64
}

// NewGuard construye el guard sobre el almacenamiento por pestaña.
func NewGuard(storage repository.KeyValueStorage, opts ...Option) *Guard {
	g := &Guard{
		storage: storage,
		clock:   clockwork.NewRealClock(),
		timeout: DefaultTimeout,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Timeout umbral de inactividad configurado.
func (g *Guard) Timeout() time.Duration { return g.timeout }

// Login autentica con la instantánea del usuario y el token; persiste el trío y arranca el temporizador.
func (g *Guard) Login(user entity.SessionUser, token string) error {
	if token == "" {
		return domain.NewInvalidInput("token vacío")
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	s := &entity.Session{User: user, Token: token, LastActivity: now}
	if err := g.persistLocked(s); err != nil {
		return err
	}
	g.session = s
	g.scheduleLocked(g.timeout)
	g.log.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Msg("sesión iniciada")
	return nil
}

// Logout vuelve a Anonymous, borra el trío y cancela el temporizador. Idempotente.
func (g *Guard) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.logoutLocked()
}

func (g *Guard) logoutLocked() {
	g.cancelTimerLocked()
	if g.session != nil {
		g.log.Info().Int("user_id", g.session.User.ID).Msg("sesión cerrada")
	}
	g.session = nil
	g.clearPersistedLocked()
}

// Restore reconstruye la sesión desde el almacenamiento. Falla cerrado: datos ausentes,
// malformados o vencidos dejan el guard en Anonymous (en los dos últimos casos se borra el trío).
func (g *Guard) Restore() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session != nil {
		return true
	}

	rawUser, okUser := g.storage.Get(KeyUser)
	token, okToken := g.storage.Get(KeyToken)
	rawLast, okLast := g.storage.Get(KeyLastActivity)
	if !okUser && !okToken && !okLast {
		return false
	}
	if !okUser || !okToken || !okLast || token == "" {
		g.log.Warn().Msg("sesión persistida incompleta; se descarta")
		g.logoutLocked()
		return false
	}

	var user entity.SessionUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		g.log.Warn().Err(err).Msg("usuario persistido malformado; se descarta")
		g.logoutLocked()
		return false
	}
	ms, err := strconv.ParseInt(rawLast, 10, 64)
	if err != nil {
		g.log.Warn().Err(err).Msg("lastActivity persistido malformado; se descarta")
		g.logoutLocked()
		return false
	}

	last := time.UnixMilli(ms)
	elapsed := g.clock.Now().Sub(last)
	if elapsed > g.timeout {
		g.log.Info().Dur("inactive", elapsed).Msg("sesión persistida vencida")
		g.logoutLocked()
		return false
	}

	g.session = &entity.Session{User: user, Token: token, LastActivity: last}
	g.scheduleLocked(g.timeout - elapsed)
	return true
}

// RecordActivity refresca lastActivity (memoria y almacenamiento) y reinicia el temporizador.
// Sin sesión no hace nada.
func (g *Guard) RecordActivity() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return
	}
	g.session.LastActivity = g.clock.Now()
	if err := g.persistLocked(g.session); err != nil {
		g.log.Warn().Err(err).Msg("no se pudo persistir la actividad")
	}
	g.scheduleLocked(g.timeout)
}

// IsAuthenticated informa si hay sesión.
func (g *Guard) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session != nil
}

// Session copia de la sesión actual.
func (g *Guard) Session() (entity.Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return entity.Session{}, false
	}
	return *g.session, true
}

// LastActivity instante de la última actividad; cero sin sesión.
func (g *Guard) LastActivity() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return time.Time{}
	}
	return g.session.LastActivity
}

// Expired informa si la sesión superó el umbral de inactividad (now - lastActivity > timeout).
func (g *Guard) Expired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return false
	}
	return g.clock.Now().Sub(g.session.LastActivity) > g.timeout
}

// HasRole rango del rol de la sesión >= rango requerido.
func (g *Guard) HasRole(required entity.Role) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return false
	}
	return entity.HasRole(g.session.User.Role, required)
}

// ── Temporizador ─────────────────────────────────────────────────────────────

func (g *Guard) scheduleLocked(d time.Duration) {
	g.cancelTimerLocked()
	gen := g.gen
	g.timer = g.clock.AfterFunc(d, func() { g.fire(gen) })
}

func (g *Guard) cancelTimerLocked() {
	g.gen++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

func (g *Guard) fire(gen uint64) {
	g.mu.Lock()
	if gen != g.gen || g.session == nil {
		g.mu.Unlock()
		return
	}
	elapsed := g.clock.Now().Sub(g.session.LastActivity)
	if elapsed < g.timeout {
		g.scheduleLocked(g.timeout - elapsed)
		g.mu.Unlock()
		return
	}
	g.log.Info().Dur("inactive", elapsed).Msg("sesión expirada por inactividad")
	g.logoutLocked()
	onExpire := g.onExpire
	g.mu.Unlock()

	if onExpire != nil {
		onExpire()
	}
}

// ── Persistencia ─────────────────────────────────────────────────────────────

func (g *Guard) persistLocked(s *entity.Session) error {
	raw, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	return g.storage.SetMany(map[string]string{
		KeyUser:         string(raw),
		KeyToken:        s.Token,
		KeyLastActivity: strconv.FormatInt(s.LastActivity.UnixMilli(), 10),
	})
}

func (g *Guard) clearPersistedLocked() {
	if err := g.storage.RemoveMany(KeyUser, KeyToken, KeyLastActivity); err != nil {
		g.log.Warn().Err(err).Msg("no se pudo borrar la sesión persistida")
	}
}
