package entity

// SortOrder dirección de ordenamiento.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DefaultPageSize tamaño de página cuando la consulta no indica límite.
const DefaultPageSize = 10

// ListQuery parámetros de listado: filtros, orden y paginación (page es 1-based).
type ListQuery struct {
	Page       int       `json:"page,omitempty"`
	Limit      int       `json:"limit,omitempty"`
	Search     string    `json:"search,omitempty"`
	Role       Role      `json:"role,omitempty"`
	Status     Status    `json:"status,omitempty"`
	Department string    `json:"department,omitempty"`
	Location   string    `json:"location,omitempty"`
	SortBy     string    `json:"sortBy,omitempty"`
	SortOrder  SortOrder `json:"sortOrder,omitempty"`
}

// PageMeta metadatos calculados sobre el conjunto filtrado (antes de paginar).
type PageMeta struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// UserPage página de usuarios con sus metadatos.
type UserPage struct {
	Data []User   `json:"data"`
	Meta PageMeta `json:"meta"`
}

// TotalPagesFor ceil(total / perPage); 0 si perPage no es positivo.
func TotalPagesFor(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
