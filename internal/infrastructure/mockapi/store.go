// Package mockapi implementa un backend de usuarios en memoria con latencia y fallos
// inyectables. Cada Store es dueño de sus registros; no hay estado a nivel de paquete.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/user-console/internal/domain"
	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/internal/domain/repository"
	"github.com/jhoicas/user-console/pkg/logger"
)

var _ repository.UserStore = (*Store)(nil)

// Valores por defecto del backend simulado.
const (
	DefaultDelayMin   = 300 * time.Millisecond
	DefaultDelayMax   = 800 * time.Millisecond
	DefaultErrorRate  = 0.1
	DefaultSeedCount  = 55
	defaultRandomSeed = 0
)

// Store backend simulado de usuarios y roles.
type Store struct {
	mu      sync.Mutex
	users   []entity.User
	roles   []entity.RoleDefinition
	lastID  int
	coll    *collate.Collator
	clock   clockwork.Clock
	log     *logger.Logger
	latency LatencyFunc
	fail    FailureFunc

	rateMu    sync.RWMutex
	errorRate float64
	rng       *lockedRand
}

type options struct {
	seedUsers  []entity.User
	seedCount  int
	roles      []entity.RoleDefinition
	latency    LatencyFunc
	delayMin   time.Duration
	delayMax   time.Duration
	fail       FailureFunc
	errorRate  float64
	randomSeed uint64
	clock      clockwork.Clock
	log        *logger.Logger
	lang       language.Tag
}

// Option configura un Store.
type Option func(*options)

// WithSeedUsers usa exactamente estos registros como datos iniciales.
func WithSeedUsers(users []entity.User) Option {
	return func(o *options) {
		o.seedUsers = make([]entity.User, 0, len(users))
		for _, u := range users {
			o.seedUsers = append(o.seedUsers, u.Clone())
		}
	}
}

// WithGeneratedUsers genera n usuarios de demostración (ignorado si hay WithSeedUsers).
func WithGeneratedUsers(n int) Option {
	return func(o *options) { o.seedCount = n }
}

// WithRoles reemplaza el conjunto estático de roles.
func WithRoles(roles []entity.RoleDefinition) Option {
	return func(o *options) { o.roles = roles }
}

// WithLatency inyecta la estrategia de retardo.
func WithLatency(fn LatencyFunc) Option {
	return func(o *options) { o.latency = fn }
}

// WithUniformLatency retardo uniforme en [min, max].
func WithUniformLatency(min, max time.Duration) Option {
	return func(o *options) {
		o.latency = nil
		o.delayMin, o.delayMax = min, max
	}
}

// WithFailure inyecta el predicado de fallo; tiene prioridad sobre la tasa de error.
func WithFailure(fn FailureFunc) Option {
	return func(o *options) { o.fail = fn }
}

// WithErrorRate probabilidad inicial de fallo transitorio.
func WithErrorRate(rate float64) Option {
	return func(o *options) { o.errorRate = rate }
}

// WithRandomSeed fija la semilla del generador (0 = basada en el reloj).
func WithRandomSeed(seed uint64) Option {
	return func(o *options) { o.randomSeed = seed }
}

// WithClock reloj para fechas de creación y datos semilla.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger logger estructurado.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithCollationLanguage idioma usado para comparar strings al ordenar.
func WithCollationLanguage(tag language.Tag) Option {
	return func(o *options) { o.lang = tag }
}

// New construye el backend simulado.
func New(opts ...Option) *Store {
	o := options{
		seedCount:  DefaultSeedCount,
		roles:      entity.DefaultRoles(),
		delayMin:   DefaultDelayMin,
		delayMax:   DefaultDelayMax,
		errorRate:  DefaultErrorRate,
		randomSeed: defaultRandomSeed,
		clock:      clockwork.NewRealClock(),
		log:        logger.Nop(),
		lang:       language.English,
	}
	for _, opt := range opts {
		opt(&o)
	}

	seed := o.randomSeed
	if seed == 0 {
		seed = uint64(o.clock.Now().UnixNano())
	}
	rng := newLockedRand(seed)

	s := &Store{
		roles:     make([]entity.RoleDefinition, 0, len(o.roles)),
		coll:      collate.New(o.lang),
		clock:     o.clock,
		log:       o.log.Component("mockapi"),
		latency:   o.latency,
		fail:      o.fail,
		errorRate: o.errorRate,
		rng:       rng,
	}
	for _, r := range o.roles {
		s.roles = append(s.roles, r.Clone())
	}
	if s.latency == nil {
		s.latency = uniformLatency(rng, o.delayMin, o.delayMax)
	}
	if s.fail == nil {
		s.fail = s.randomFailure
	}

	if o.seedUsers != nil {
		s.users = o.seedUsers
	} else {
		s.users = generateUsers(o.seedCount, s.roles, o.clock.Now(), rng)
	}
	for _, u := range s.users {
		if u.ID > s.lastID {
			s.lastID = u.ID
		}
	}
	return s
}

// SetErrorRate ajusta la probabilidad global de fallo transitorio. Rechaza valores fuera de [0, 1].
func (s *Store) SetErrorRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return domain.NewInvalidInput(fmt.Sprintf("error rate fuera de rango: %v", rate))
	}
	s.rateMu.Lock()
	s.errorRate = rate
	s.rateMu.Unlock()
	s.log.Info().Float64("error_rate", rate).Msg("tasa de error actualizada")
	return nil
}

// ErrorRate devuelve la probabilidad actual de fallo transitorio.
func (s *Store) ErrorRate() float64 {
	s.rateMu.RLock()
	defer s.rateMu.RUnlock()
	return s.errorRate
}

func (s *Store) randomFailure() bool {
	return s.rng.Float64() < s.ErrorRate()
}

// simulate espera la latencia inyectada y evalúa el predicado de fallo antes de cualquier validación.
func (s *Store) simulate(ctx context.Context, op, failMessage string) error {
	if err := wait(ctx, s.latency()); err != nil {
		return err
	}
	if s.fail() {
		injectedFailuresTotal.WithLabelValues(op).Inc()
		s.log.Warn().Str("operation", op).Msg("fallo transitorio inyectado")
		return domain.NewServerError(failMessage)
	}
	return nil
}

func (s *Store) observe(op string, start time.Time, err error) {
	outcome := outcomeOK
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = outcomeCanceled
	case errors.Is(err, domain.ErrServer):
		outcome = outcomeInjected
	default:
		outcome = outcomeError
	}
	operationDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

// ListUsers filtra, ordena y pagina. Los totales se calculan sobre el conjunto filtrado.
func (s *Store) ListUsers(ctx context.Context, q entity.ListQuery) (page *entity.UserPage, err error) {
	defer func(start time.Time) { s.observe("listUsers", start, err) }(time.Now())
	if err := s.simulate(ctx, "listUsers", "Server error while fetching users"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := filterUsers(s.users, q)
	sortUsers(filtered, q.SortBy, q.SortOrder, s.coll)
	data, meta := paginate(filtered, q.Page, q.Limit)

	s.log.Debug().
		Str("search", q.Search).
		Int("page", meta.CurrentPage).
		Int("total", meta.TotalItems).
		Msg("listUsers")
	return &entity.UserPage{Data: data, Meta: meta}, nil
}

// GetUser devuelve una copia del registro o ErrUserNotFound.
func (s *Store) GetUser(ctx context.Context, id int) (user *entity.User, err error) {
	defer func(start time.Time) { s.observe("getUser", start, err) }(time.Now())
	if err := s.simulate(ctx, "getUser", fmt.Sprintf("Server error while fetching user %d", id)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.NewUserNotFound(id)
	}
	out := s.users[idx].Clone()
	return &out, nil
}

// CreateUser valida campos obligatorios y unicidad del email, asigna id y fecha de creación.
// El último acceso solo se conserva para usuarios activos.
func (s *Store) CreateUser(ctx context.Context, in entity.NewUser) (user *entity.User, err error) {
	defer func(start time.Time) { s.observe("createUser", start, err) }(time.Now())
	if err := s.simulate(ctx, "createUser", "Server error while creating user"); err != nil {
		return nil, err
	}

	if !in.HasRequiredFields() {
		return nil, domain.ErrMissingRequiredFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(in.Email, 0) {
		return nil, domain.ErrEmailAlreadyExists
	}

	s.lastID++
	u := entity.User{
		ID:         s.lastID,
		Name:       in.Name,
		Email:      in.Email,
		Avatar:     in.Avatar,
		Role:       in.Role,
		Status:     in.Status,
		CreatedAt:  s.clock.Now(),
		Department: in.Department,
		Location:   in.Location,
		Phone:      in.Phone,
	}
	if in.LastLogin != nil && in.Status == entity.StatusActive {
		ll := *in.LastLogin
		u.LastLogin = &ll
	}
	s.users = append(s.users, u)

	s.log.Info().Int("user_id", u.ID).Msg("usuario creado")
	out := u.Clone()
	return &out, nil
}

// UpdateUser fusiona el patch sobre el registro; el id es inmutable.
func (s *Store) UpdateUser(ctx context.Context, id int, patch entity.UserPatch) (user *entity.User, err error) {
	defer func(start time.Time) { s.observe("updateUser", start, err) }(time.Now())
	if err := s.simulate(ctx, "updateUser", fmt.Sprintf("Server error while updating user %d", id)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.NewUserNotFound(id)
	}
	if patch.Email != nil && *patch.Email != s.users[idx].Email && s.emailTaken(*patch.Email, id) {
		return nil, domain.ErrEmailAlreadyExists
	}

	s.users[idx] = s.users[idx].Apply(patch)

	s.log.Info().Int("user_id", id).Msg("usuario actualizado")
	out := s.users[idx].Clone()
	return &out, nil
}

// DeleteUser elimina el registro de forma irrevocable.
func (s *Store) DeleteUser(ctx context.Context, id int) (err error) {
	defer func(start time.Time) { s.observe("deleteUser", start, err) }(time.Now())
	if err := s.simulate(ctx, "deleteUser", fmt.Sprintf("Server error while deleting user %d", id)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.NewUserNotFound(id)
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)

	s.log.Info().Int("user_id", id).Msg("usuario eliminado")
	return nil
}

// ListRoles devuelve el conjunto estático de roles.
func (s *Store) ListRoles(ctx context.Context) (roles []entity.RoleDefinition, err error) {
	defer func(start time.Time) { s.observe("listRoles", start, err) }(time.Now())
	if err := s.simulate(ctx, "listRoles", "Server error while fetching roles"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.RoleDefinition, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, r.Clone())
	}
	return out, nil
}

// Len cantidad de registros almacenados.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) indexOf(id int) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

// emailTaken comparación exacta (sensible a mayúsculas) contra todos los registros salvo exceptID.
func (s *Store) emailTaken(email string, exceptID int) bool {
	for i := range s.users {
		if s.users[i].ID != exceptID && s.users[i].Email == email {
			return true
		}
	}
	return false
}
