package usecase

import (
	"context"
	"sync"

	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/domain"
	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/internal/domain/repository"
	"github.com/jhoicas/user-console/pkg/logger"
)

// AllRolesLabel etiqueta de la opción sin filtro de rol.
const AllRolesLabel = "All Roles"

// RoleUseCase catálogo de roles cacheado desde el store.
type RoleUseCase struct {
	store repository.UserStore
	log   *logger.Logger

	mu      sync.Mutex
	roles   []entity.RoleDefinition
	loading bool
	lastErr error
}

// NewRoleUseCase construye el caso de uso con el puerto del store.
func NewRoleUseCase(store repository.UserStore, log *logger.Logger) *RoleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RoleUseCase{store: store, log: log.Component("roles")}
}

// FetchRoles recarga el catálogo. Un error conserva los roles previos.
func (uc *RoleUseCase) FetchRoles(ctx context.Context) error {
	uc.mu.Lock()
	uc.loading = true
	uc.lastErr = nil
	uc.mu.Unlock()

	roles, err := uc.store.ListRoles(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.loading = false
	if err != nil {
		uc.lastErr = err
		uc.log.Warn().Err(err).Msg("no se pudieron cargar los roles")
		return err
	}
	uc.roles = roles
	return nil
}

// Roles copia del catálogo actual.
func (uc *RoleUseCase) Roles() []entity.RoleDefinition {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]entity.RoleDefinition, 0, len(uc.roles))
	for _, r := range uc.roles {
		out = append(out, r.Clone())
	}
	return out
}

// RoleByID busca un rol del catálogo cargado.
func (uc *RoleUseCase) RoleByID(id entity.Role) (entity.RoleDefinition, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	r, ok := entity.FindRole(uc.roles, id)
	if !ok {
		return entity.RoleDefinition{}, false
	}
	return r.Clone(), true
}

// AvailableRoles opciones del filtro: "All Roles" primero y luego cada rol en orden.
func (uc *RoleUseCase) AvailableRoles() []dto.RoleOption {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]dto.RoleOption, 0, len(uc.roles)+1)
	out = append(out, dto.RoleOption{Label: AllRolesLabel, Value: ""})
	for _, r := range uc.roles {
		out = append(out, dto.RoleOption{Label: r.Name, Value: string(r.ID)})
	}
	return out
}

// Catalog respuesta completa para la API.
func (uc *RoleUseCase) Catalog() dto.RoleCatalogResponse {
	roles := uc.Roles()
	resp := dto.RoleCatalogResponse{Roles: make([]dto.RoleResponse, 0, len(roles)), Options: uc.AvailableRoles()}
	for _, r := range roles {
		resp.Roles = append(resp.Roles, dto.RoleResponse{
			ID:          string(r.ID),
			Name:        r.Name,
			Permissions: r.Permissions,
			Description: r.Description,
		})
	}
	return resp
}

// Permissions permisos del rol; si el catálogo aún no se cargó usa las definiciones por defecto.
func (uc *RoleUseCase) Permissions(role entity.Role) []string {
	if r, ok := uc.RoleByID(role); ok {
		return r.Permissions
	}
	if r, ok := entity.FindRole(entity.DefaultRoles(), role); ok {
		return r.Permissions
	}
	return nil
}

// Can informa si el rol tiene el permiso.
func (uc *RoleUseCase) Can(role entity.Role, permission string) bool {
	for _, p := range uc.Permissions(role) {
		if p == permission {
			return true
		}
	}
	return false
}

// Loading informa si hay una carga en curso.
func (uc *RoleUseCase) Loading() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.loading
}

// Err último error de carga.
func (uc *RoleUseCase) Err() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lastErr
}

// ClearError borra el último error.
func (uc *RoleUseCase) ClearError() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lastErr = nil
}

// ErrorMessage mensaje del último error o "" si no hay.
func (uc *RoleUseCase) ErrorMessage() string {
	if err := uc.Err(); err != nil {
		return domain.AsAPIError(err).Message
	}
	return ""
}
