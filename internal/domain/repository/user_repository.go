package repository

import (
	"context"

	"github.com/jhoicas/user-console/internal/domain/entity"
)

// UserStore define el puerto del backend de usuarios y roles (DIP).
// Todas las operaciones pueden fallar con un error transitorio (domain.ErrServer) además de los de dominio.
type UserStore interface {
	ListUsers(ctx context.Context, q entity.ListQuery) (*entity.UserPage, error)
	GetUser(ctx context.Context, id int) (*entity.User, error)
	CreateUser(ctx context.Context, in entity.NewUser) (*entity.User, error)
	UpdateUser(ctx context.Context, id int, patch entity.UserPatch) (*entity.User, error)
	DeleteUser(ctx context.Context, id int) error
	ListRoles(ctx context.Context) ([]entity.RoleDefinition, error)
}
