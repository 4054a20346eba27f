// Package usercache mantiene la página de usuarios visible, el registro de detalle y el estado
// de consulta, aplicando las mutaciones de forma optimista con rollback completo ante cualquier error.
package usercache

import (
	"context"
	"sync"

	"github.com/jhoicas/user-console/internal/domain"
	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/internal/domain/repository"
	"github.com/jhoicas/user-console/pkg/logger"
)

// Option configura la caché.
type Option func(*Cache)

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Cache) { c.log = l.Component("usercache") }
}

// WithPageSize tamaño de página inicial.
func WithPageSize(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.query.PerPage = n
		}
	}
}

// WithResolutionHook recibe cada operación pendiente al resolverse (confirmada o revertida).
func WithResolutionHook(f func(PendingOperation)) Option {
	return func(c *Cache) { c.onResolve = f }
}

// State instantánea de la caché para lectura.
type State struct {
	Users    []entity.User   `json:"users"`
	Meta     entity.PageMeta `json:"meta"`
	Detail   *entity.User    `json:"detail,omitempty"`
	Loading  bool            `json:"loading"`
	Mutating bool            `json:"mutating"`
	Error    string          `json:"error,omitempty"`
	Query    QueryState      `json:"query"`
	Pending  int             `json:"pending"`
}

// Cache caché optimista sobre el UserStore. El mutex nunca se mantiene durante una llamada al store.
type Cache struct {
	mu        sync.Mutex
	store     repository.UserStore
	log       *logger.Logger
	onResolve func(PendingOperation)

	users    []entity.User
	meta     entity.PageMeta
	detail   *entity.User
	query    QueryState
	loading  int
	mutating int
	lastErr  error
	pending  map[int]*PendingOperation

	// rank posición de cada id en la última página recibida; las altas locales se numeran a continuación.
	rank     map[int]int
	nextRank int

	listGen   uint64
	detailGen uint64
}

// New construye la caché vacía.
func New(store repository.UserStore, opts ...Option) *Cache {
	c := &Cache{
		store:   store,
		log:     logger.Nop(),
		query:   DefaultQueryState(entity.DefaultPageSize),
		pending: make(map[int]*PendingOperation),
		rank:    make(map[int]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.meta = entity.PageMeta{CurrentPage: 1, ItemsPerPage: c.query.PerPage}
	return c
}

// ── Lecturas ─────────────────────────────────────────────────────────────────

// Refresh pide la página según el QueryState actual. Un error deja los datos previos intactos.
// Si otra Refresh posterior ya se emitió, la respuesta se descarta.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.listGen++
	gen := c.listGen
	q := c.query.ListQuery()
	c.loading++
	c.lastErr = nil
	c.mu.Unlock()

	page, err := c.store.ListUsers(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--
	if gen != c.listGen {
		staleResponsesTotal.WithLabelValues("list").Inc()
		c.log.Debug().Uint64("gen", gen).Msg("respuesta de listado obsoleta descartada")
		return err
	}
	if err != nil {
		c.setErrorLocked(err)
		return err
	}
	c.users = cloneUsers(page.Data)
	c.meta = page.Meta
	c.rank = make(map[int]int, len(c.users))
	for i := range c.users {
		c.rank[c.users[i].ID] = i
	}
	c.nextRank = len(c.users)
	for _, op := range c.pending {
		op.rank = -1
	}
	return nil
}

// LoadOne carga el registro de detalle. Mismo contrato que Refresh para el slot de detalle.
func (c *Cache) LoadOne(ctx context.Context, id int) error {
	c.mu.Lock()
	c.detailGen++
	gen := c.detailGen
	c.loading++
	c.lastErr = nil
	c.mu.Unlock()

	u, err := c.store.GetUser(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--
	if gen != c.detailGen {
		staleResponsesTotal.WithLabelValues("detail").Inc()
		return err
	}
	if err != nil {
		c.setErrorLocked(err)
		return err
	}
	d := u.Clone()
	c.detail = &d
	return nil
}

// ── Mutaciones ───────────────────────────────────────────────────────────────

// Create da de alta en el store. Sin estado previo que revertir: un error no toca la caché.
// TotalItems siempre sube; el registro solo se agrega si cabe en la página mostrada.
func (c *Cache) Create(ctx context.Context, in entity.NewUser) (*entity.User, error) {
	c.mu.Lock()
	c.mutating++
	c.lastErr = nil
	c.mu.Unlock()

	u, err := c.store.CreateUser(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mutating--
	if err != nil {
		c.setErrorLocked(err)
		return nil, err
	}
	perPage := c.query.PerPage
	if len(c.users) < perPage || c.meta.TotalItems < perPage*c.query.Page {
		c.users = append(c.users, u.Clone())
		c.rank[u.ID] = c.nextRank
		c.nextRank++
	}
	c.meta.TotalItems++
	c.meta.TotalPages = entity.TotalPagesFor(c.meta.TotalItems, perPage)
	out := u.Clone()
	return &out, nil
}

// Update aplica el patch localmente antes de llamar al store y lo revierte ante cualquier error.
// Con otra mutación en vuelo para el mismo id falla con ErrMutationPending sin llamar al store.
func (c *Cache) Update(ctx context.Context, id int, patch entity.UserPatch) (*entity.User, error) {
	c.mu.Lock()
	if _, busy := c.pending[id]; busy {
		c.mu.Unlock()
		return nil, domain.ErrMutationPending
	}
	op := &PendingOperation{ID: id, Kind: OpUpdate, Index: -1, State: StateApplied, rank: -1}
	if i := c.indexLocked(id); i >= 0 {
		snap := c.users[i].Clone()
		op.Snapshot = &snap
		op.Index = i
		c.users[i] = c.users[i].Apply(patch)
	}
	c.pending[id] = op
	c.mutating++
	c.lastErr = nil
	c.mu.Unlock()

	u, err := c.store.UpdateUser(ctx, id, patch)

	c.mu.Lock()
	c.mutating--
	delete(c.pending, id)
	if err != nil {
		if op.Snapshot != nil {
			if i := c.indexLocked(id); i >= 0 {
				c.users[i] = op.Snapshot.Clone()
			}
		}
		op.resolve(StateRolledBack)
		c.setErrorLocked(err)
		c.mu.Unlock()
		c.resolved(op)
		return nil, err
	}
	if i := c.indexLocked(id); i >= 0 {
		c.users[i] = u.Clone()
	}
	if c.detail != nil && c.detail.ID == id {
		d := u.Clone()
		c.detail = &d
	}
	op.resolve(StateConfirmed)
	c.mu.Unlock()
	c.resolved(op)

	out := u.Clone()
	return &out, nil
}

// Delete quita el registro localmente (ajustando los contadores) antes de llamar al store.
// Ante error lo reinserta delante del primer registro que lo seguía en la página recibida,
// aunque otros borrados solapados hayan cambiado las posiciones, y restaura los contadores.
func (c *Cache) Delete(ctx context.Context, id int) error {
	c.mu.Lock()
	if _, busy := c.pending[id]; busy {
		c.mu.Unlock()
		return domain.ErrMutationPending
	}
	op := &PendingOperation{ID: id, Kind: OpDelete, Index: -1, State: StateApplied, rank: -1}
	if i := c.indexLocked(id); i >= 0 {
		snap := c.users[i].Clone()
		op.Snapshot = &snap
		op.Index = i
		if r, ok := c.rank[id]; ok {
			op.rank = r
		}
		c.users = append(c.users[:i], c.users[i+1:]...)
		c.adjustTotalLocked(-1)
	}
	c.pending[id] = op
	c.mutating++
	c.lastErr = nil
	c.mu.Unlock()

	err := c.store.DeleteUser(ctx, id)

	c.mu.Lock()
	c.mutating--
	delete(c.pending, id)
	if err != nil {
		if op.Snapshot != nil && c.indexLocked(id) < 0 {
			c.reinsertLocked(op)
			c.adjustTotalLocked(+1)
		}
		op.resolve(StateRolledBack)
		c.setErrorLocked(err)
		c.mu.Unlock()
		c.resolved(op)
		return err
	}
	if c.detail != nil && c.detail.ID == id {
		c.detail = nil
	}
	delete(c.rank, id)
	op.resolve(StateConfirmed)
	c.mu.Unlock()
	c.resolved(op)
	return nil
}

// ── Estado de consulta ───────────────────────────────────────────────────────
// Ninguno de estos mutadores dispara Refresh; el llamador decide cuándo recargar.

// SetFilters aplica los filtros no nulos y vuelve a la página 1.
func (c *Cache) SetFilters(f Filters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.applyFilters(f)
}

// SetSort alterna la dirección si la columna es la actual; si no, ordena ascendente por ella.
func (c *Cache) SetSort(column string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.toggleSort(column)
}

// SetPagination fija la página (mínimo 1) y, si size > 0, el tamaño de página.
func (c *Cache) SetPagination(page, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	c.query.Page = page
	if size > 0 {
		c.query.PerPage = size
	}
}

// ClearFilters limpia todos los filtros y vuelve a la página 1. El orden se conserva.
func (c *Cache) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.clearFilters()
}

// ClearError borra el último error.
func (c *Cache) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
}

// ── Lectura de estado ────────────────────────────────────────────────────────

// Snapshot copia profunda del estado actual.
func (c *Cache) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State{
		Users:    cloneUsers(c.users),
		Meta:     c.meta,
		Loading:  c.loading > 0,
		Mutating: c.mutating > 0,
		Query:    c.query,
		Pending:  len(c.pending),
	}
	if c.detail != nil {
		d := c.detail.Clone()
		s.Detail = &d
	}
	if c.lastErr != nil {
		s.Error = domain.AsAPIError(c.lastErr).Message
	}
	return s
}

// Query estado de consulta actual.
func (c *Cache) Query() QueryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Err último error registrado (nil si no hay).
func (c *Cache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Pending operación en vuelo para el id, si existe.
func (c *Cache) Pending(id int) (PendingOperation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	op, ok := c.pending[id]
	if !ok {
		return PendingOperation{}, false
	}
	return op.clone(), true
}

// HasPendingOperations informa si hay alguna mutación en vuelo.
func (c *Cache) HasPendingOperations() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending) > 0
}

// ── Internos ─────────────────────────────────────────────────────────────────

func (c *Cache) indexLocked(id int) int {
	for i := range c.users {
		if c.users[i].ID == id {
			return i
		}
	}
	return -1
}

// reinsertLocked devuelve el snapshot a la página. Sin rango conocido (p. ej. tras un Refresh)
// usa la posición capturada, acotada al largo actual.
func (c *Cache) reinsertLocked(op *PendingOperation) {
	at := min(op.Index, len(c.users))
	if op.rank >= 0 {
		at = len(c.users)
		for i := range c.users {
			if r, ok := c.rank[c.users[i].ID]; !ok || r > op.rank {
				at = i
				break
			}
		}
	}
	c.users = append(c.users, entity.User{})
	copy(c.users[at+1:], c.users[at:])
	c.users[at] = op.Snapshot.Clone()
}

func (c *Cache) adjustTotalLocked(delta int) {
	c.meta.TotalItems += delta
	if c.meta.TotalItems < 0 {
		c.meta.TotalItems = 0
	}
	c.meta.TotalPages = entity.TotalPagesFor(c.meta.TotalItems, c.query.PerPage)
}

func (c *Cache) setErrorLocked(err error) {
	c.lastErr = err
	c.log.Warn().Err(err).Msg("operación fallida")
}

func (c *Cache) resolved(op *PendingOperation) {
	mutationsTotal.WithLabelValues(string(op.Kind), string(op.State)).Inc()
	c.log.Debug().Int("id", op.ID).Str("kind", string(op.Kind)).Str("state", string(op.State)).Msg("mutación resuelta")
	if c.onResolve != nil {
		c.onResolve(op.clone())
	}
}

func cloneUsers(in []entity.User) []entity.User {
	out := make([]entity.User, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
