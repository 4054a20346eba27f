package usecase

import (
	"context"

	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/application/usercache"
	"github.com/jhoicas/user-console/internal/domain"
	"github.com/jhoicas/user-console/internal/domain/entity"
)

// UserUseCase traduce las peticiones de la API a operaciones de la caché optimista.
type UserUseCase struct {
	cache *usercache.Cache
}

// NewUserUseCase construye el caso de uso sobre la caché.
func NewUserUseCase(cache *usercache.Cache) *UserUseCase {
	return &UserUseCase{cache: cache}
}

// List ajusta el estado de consulta con los parámetros presentes y recarga la página.
func (uc *UserUseCase) List(ctx context.Context, in dto.UserListRequest) (*dto.UserListResponse, error) {
	if in.Role != nil && *in.Role != "" && !entity.Role(*in.Role).Valid() {
		return nil, domain.NewInvalidInput("rol desconocido: " + *in.Role)
	}
	if in.Status != nil && *in.Status != "" && !entity.Status(*in.Status).Valid() {
		return nil, domain.NewInvalidInput("estado desconocido: " + *in.Status)
	}
	if in.SortOrder != "" && in.SortOrder != string(entity.SortAsc) && in.SortOrder != string(entity.SortDesc) {
		return nil, domain.NewInvalidInput("sortOrder debe ser asc o desc")
	}

	if f, changed := toFilters(in); changed {
		uc.cache.SetFilters(f)
	}
	if in.SortBy != "" && uc.cache.Query().SortBy != in.SortBy {
		uc.cache.SetSort(in.SortBy)
	}
	if in.SortOrder != "" && string(uc.cache.Query().SortDirection) != in.SortOrder {
		uc.cache.SetSort(uc.cache.Query().SortBy)
	}
	if in.Page > 0 || in.Limit > 0 {
		page := in.Page
		if page <= 0 {
			page = uc.cache.Query().Page
		}
		uc.cache.SetPagination(page, in.Limit)
	}

	if err := uc.cache.Refresh(ctx); err != nil {
		return nil, err
	}
	return uc.Page(), nil
}

// Page página cacheada sin recargar.
func (uc *UserUseCase) Page() *dto.UserListResponse {
	s := uc.cache.Snapshot()
	resp := &dto.UserListResponse{
		Data:    make([]dto.UserResponse, 0, len(s.Users)),
		Meta:    dto.PageMetaResponse(s.Meta),
		Query:   toQueryResponse(s.Query),
		Pending: s.Pending,
	}
	for _, u := range s.Users {
		resp.Data = append(resp.Data, ToUserResponse(u))
	}
	return resp
}

// Get carga el usuario en el slot de detalle.
func (uc *UserUseCase) Get(ctx context.Context, id int) (*dto.UserResponse, error) {
	if err := uc.cache.LoadOne(ctx, id); err != nil {
		return nil, err
	}
	d := uc.cache.Snapshot().Detail
	if d == nil || d.ID != id {
		return nil, domain.NewUserNotFound(id)
	}
	out := ToUserResponse(*d)
	return &out, nil
}

// Create da de alta un usuario.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Role != "" && !entity.Role(in.Role).Valid() {
		return nil, domain.NewInvalidInput("rol desconocido: " + in.Role)
	}
	if in.Status != "" && !entity.Status(in.Status).Valid() {
		return nil, domain.NewInvalidInput("estado desconocido: " + in.Status)
	}
	u, err := uc.cache.Create(ctx, entity.NewUser{
		Name:       in.Name,
		Email:      in.Email,
		Avatar:     in.Avatar,
		Role:       entity.Role(in.Role),
		Status:     entity.Status(in.Status),
		LastLogin:  in.LastLogin,
		Department: in.Department,
		Location:   in.Location,
		Phone:      in.Phone,
	})
	if err != nil {
		return nil, err
	}
	out := ToUserResponse(*u)
	return &out, nil
}

// Update aplica el cambio parcial de forma optimista.
func (uc *UserUseCase) Update(ctx context.Context, id int, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	patch := entity.UserPatch{
		Name:       in.Name,
		Email:      in.Email,
		Avatar:     in.Avatar,
		LastLogin:  in.LastLogin,
		Department: in.Department,
		Location:   in.Location,
		Phone:      in.Phone,
	}
	if in.Role != nil {
		r := entity.Role(*in.Role)
		if !r.Valid() {
			return nil, domain.NewInvalidInput("rol desconocido: " + *in.Role)
		}
		patch.Role = &r
	}
	if in.Status != nil {
		s := entity.Status(*in.Status)
		if !s.Valid() {
			return nil, domain.NewInvalidInput("estado desconocido: " + *in.Status)
		}
		patch.Status = &s
	}
	u, err := uc.cache.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	out := ToUserResponse(*u)
	return &out, nil
}

// Delete elimina de forma optimista.
func (uc *UserUseCase) Delete(ctx context.Context, id int) error {
	return uc.cache.Delete(ctx, id)
}

// PageUsers registros de la página cacheada (fuente de la exportación de listado).
func (uc *UserUseCase) PageUsers() []entity.User {
	return uc.cache.Snapshot().Users
}

// DetailUser registro para exportar: el slot de detalle si coincide, la página si lo contiene,
// y si no, lo carga en el slot de detalle.
func (uc *UserUseCase) DetailUser(ctx context.Context, id int) (entity.User, error) {
	s := uc.cache.Snapshot()
	if s.Detail != nil && s.Detail.ID == id {
		return *s.Detail, nil
	}
	for _, u := range s.Users {
		if u.ID == id {
			return u, nil
		}
	}
	if err := uc.cache.LoadOne(ctx, id); err != nil {
		return entity.User{}, err
	}
	if d := uc.cache.Snapshot().Detail; d != nil && d.ID == id {
		return *d, nil
	}
	return entity.User{}, domain.NewUserNotFound(id)
}

// ToUserResponse mapea la entidad a la salida de la API.
func ToUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Avatar:     u.Avatar,
		Role:       string(u.Role),
		Status:     string(u.Status),
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		Department: u.Department,
		Location:   u.Location,
		Phone:      u.Phone,
	}
}

func toFilters(in dto.UserListRequest) (usercache.Filters, bool) {
	var f usercache.Filters
	changed := false
	if in.Search != nil {
		f.Search = in.Search
		changed = true
	}
	if in.Role != nil {
		r := entity.Role(*in.Role)
		f.Role = &r
		changed = true
	}
	if in.Status != nil {
		s := entity.Status(*in.Status)
		f.Status = &s
		changed = true
	}
	if in.Department != nil {
		f.Department = in.Department
		changed = true
	}
	if in.Location != nil {
		f.Location = in.Location
		changed = true
	}
	return f, changed
}

func toQueryResponse(q usercache.QueryState) dto.QueryStateResponse {
	return dto.QueryStateResponse{
		Search:        q.Search,
		Role:          string(q.Role),
		Status:        string(q.Status),
		Department:    q.Department,
		Location:      q.Location,
		SortBy:        q.SortBy,
		SortDirection: string(q.SortDirection),
		Page:          q.Page,
		PerPage:       q.PerPage,
	}
}
