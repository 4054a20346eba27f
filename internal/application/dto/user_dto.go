package dto

import "time"

// UserListRequest parámetros de listado. Los filtros nil no cambian el estado de consulta actual.
type UserListRequest struct {
	Page       int     `query:"page" validate:"omitempty,min=1"`
	Limit      int     `query:"limit" validate:"omitempty,min=1,max=100"`
	Search     *string `query:"search"`
	Role       *string `query:"role" validate:"omitempty,oneof=admin manager editor viewer guest"`
	Status     *string `query:"status" validate:"omitempty,oneof=active inactive pending"`
	Department *string `query:"department"`
	Location   *string `query:"location"`
	SortBy     string  `query:"sortBy"`
	SortOrder  string  `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Avatar     string     `json:"avatar,omitempty"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	Department string     `json:"department,omitempty"`
	Location   string     `json:"location,omitempty"`
	Phone      string     `json:"phone,omitempty"`
}

// PageMetaResponse metadatos de la página.
type PageMetaResponse struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// QueryStateResponse estado de consulta con el que se pidió la página.
type QueryStateResponse struct {
	Search        string `json:"search"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	Department    string `json:"department"`
	Location      string `json:"location"`
	SortBy        string `json:"sortBy"`
	SortDirection string `json:"sortDirection"`
	Page          int    `json:"page"`
	PerPage       int    `json:"perPage"`
}

// UserListResponse página de usuarios.
type UserListResponse struct {
	Data    []UserResponse     `json:"data"`
	Meta    PageMetaResponse   `json:"meta"`
	Query   QueryStateResponse `json:"query"`
	Pending int                `json:"pendingOperations"`
}

// CreateUserRequest entrada para crear un usuario.
type CreateUserRequest struct {
	Name       string     `json:"name" validate:"required,min=1,max=200"`
	Email      string     `json:"email" validate:"required,email"`
	Avatar     string     `json:"avatar" validate:"omitempty,url"`
	Role       string     `json:"role" validate:"required,oneof=admin manager editor viewer guest"`
	Status     string     `json:"status" validate:"required,oneof=active inactive pending"`
	LastLogin  *time.Time `json:"lastLogin"`
	Department string     `json:"department"`
	Location   string     `json:"location"`
	Phone      string     `json:"phone"`
}

// UpdateUserRequest actualización parcial; solo se aplican los campos presentes.
type UpdateUserRequest struct {
	Name       *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Email      *string    `json:"email" validate:"omitempty,email"`
	Avatar     *string    `json:"avatar"`
	Role       *string    `json:"role" validate:"omitempty,oneof=admin manager editor viewer guest"`
	Status     *string    `json:"status" validate:"omitempty,oneof=active inactive pending"`
	LastLogin  *time.Time `json:"lastLogin"`
	Department *string    `json:"department"`
	Location   *string    `json:"location"`
	Phone      *string    `json:"phone"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUserResponse usuario de la sesión.
type SessionUserResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string              `json:"token"`
	User  SessionUserResponse `json:"user"`
}

// SessionResponse estado de la sesión actual.
type SessionResponse struct {
	User             SessionUserResponse `json:"user"`
	LastActivity     time.Time           `json:"lastActivity"`
	TimeoutSeconds   int                 `json:"timeoutSeconds"`
	ExpiresInSeconds int                 `json:"expiresInSeconds"`
	Permissions      []string            `json:"permissions"`
}
