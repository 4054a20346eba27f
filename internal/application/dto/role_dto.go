package dto

// RoleResponse definición de rol.
type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Description string   `json:"description"`
}

// RoleOption opción del selector de roles ("" = todos).
type RoleOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RoleCatalogResponse roles y opciones del filtro.
type RoleCatalogResponse struct {
	Roles   []RoleResponse `json:"roles"`
	Options []RoleOption   `json:"options"`
}
