package usercache

import "github.com/jhoicas/user-console/internal/domain/entity"

// Valores por defecto del estado de consulta.
const (
	DefaultSortBy    = "name"
	DefaultSortOrder = entity.SortAsc
)

// QueryState filtros, orden y paginación con los que se pide la página actual.
// Cambiar cualquier filtro vuelve a la página 1.
type QueryState struct {
	Search        string           `json:"search"`
	Role          entity.Role      `json:"role"`
	Status        entity.Status    `json:"status"`
	Department    string           `json:"department"`
	Location      string           `json:"location"`
	SortBy        string           `json:"sortBy"`
	SortDirection entity.SortOrder `json:"sortDirection"`
	Page          int              `json:"page"`
	PerPage       int              `json:"perPage"`
}

// DefaultQueryState estado inicial: orden por nombre ascendente, página 1.
func DefaultQueryState(perPage int) QueryState {
	if perPage <= 0 {
		perPage = entity.DefaultPageSize
	}
	return QueryState{SortBy: DefaultSortBy, SortDirection: DefaultSortOrder, Page: 1, PerPage: perPage}
}

// ListQuery traduce el estado a la consulta del store.
func (q QueryState) ListQuery() entity.ListQuery {
	return entity.ListQuery{
		Page:       q.Page,
		Limit:      q.PerPage,
		Search:     q.Search,
		Role:       q.Role,
		Status:     q.Status,
		Department: q.Department,
		Location:   q.Location,
		SortBy:     q.SortBy,
		SortOrder:  q.SortDirection,
	}
}

// Filters cambio parcial de filtros: nil deja el valor actual, "" lo limpia.
type Filters struct {
	Search     *string
	Role       *entity.Role
	Status     *entity.Status
	Department *string
	Location   *string
}

func (q *QueryState) applyFilters(f Filters) {
	if f.Search != nil {
		q.Search = *f.Search
	}
	if f.Role != nil {
		q.Role = *f.Role
	}
	if f.Status != nil {
		q.Status = *f.Status
	}
	if f.Department != nil {
		q.Department = *f.Department
	}
	if f.Location != nil {
		q.Location = *f.Location
	}
	q.Page = 1
}

func (q *QueryState) toggleSort(column string) {
	if q.SortBy == column {
		if q.SortDirection == entity.SortAsc {
			q.SortDirection = entity.SortDesc
		} else {
			q.SortDirection = entity.SortAsc
		}
		return
	}
	q.SortBy = column
	q.SortDirection = entity.SortAsc
}

func (q *QueryState) clearFilters() {
	q.Search = ""
	q.Role = ""
	q.Status = ""
	q.Department = ""
	q.Location = ""
	q.Page = 1
}
