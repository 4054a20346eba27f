package entity

// Role identificador de rol.
type Role string

// Roles válidos para User. Guest existe como dato de referencia pero no forma parte de la jerarquía.
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleEditor  Role = "editor"
	RoleViewer  Role = "viewer"
	RoleGuest   Role = "guest"
)

// Permisos usados por la consola.
const (
	PermUsersView    = "users.view"
	PermUsersCreate  = "users.create"
	PermUsersEdit    = "users.edit"
	PermUsersDelete  = "users.delete"
	PermRolesView    = "roles.view"
	PermSettingsEdit = "settings.edit"
)

// Valid informa si el rol pertenece al conjunto cerrado (guest incluido).
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEditor, RoleViewer, RoleGuest:
		return true
	}
	return false
}

var roleRank = map[Role]int{
	RoleViewer:  0,
	RoleEditor:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Rank posición en la jerarquía viewer < editor < manager < admin; -1 si el rol no participa.
func Rank(r Role) int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return -1
}

// HasRole indica si actual es al menos tan privilegiado como required.
// Un rol fuera de la jerarquía nunca satisface ni es satisfecho.
func HasRole(actual, required Role) bool {
	a, r := Rank(actual), Rank(required)
	if a < 0 || r < 0 {
		return false
	}
	return a >= r
}

// RoleDefinition dato de referencia inmutable: permisos ordenados y descripción.
type RoleDefinition struct {
	ID          Role     `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Description string   `json:"description"`
}

// Can informa si el rol concede el permiso.
func (d RoleDefinition) Can(permission string) bool {
	for _, p := range d.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Clone copia la definición sin compartir el slice de permisos.
func (d RoleDefinition) Clone() RoleDefinition {
	d.Permissions = append([]string(nil), d.Permissions...)
	return d
}

// DefaultRoles conjunto estático de roles de la consola.
func DefaultRoles() []RoleDefinition {
	return []RoleDefinition{
		{
			ID:          RoleAdmin,
			Name:        "Administrator",
			Permissions: []string{PermUsersView, PermUsersCreate, PermUsersEdit, PermUsersDelete, PermRolesView, PermSettingsEdit},
			Description: "Full system access with all permissions",
		},
		{
			ID:          RoleManager,
			Name:        "Manager",
			Permissions: []string{PermUsersView, PermUsersCreate, PermUsersEdit, PermRolesView},
			Description: "Can manage users but cannot delete them or change system settings",
		},
		{
			ID:          RoleEditor,
			Name:        "Editor",
			Permissions: []string{PermUsersView, PermUsersEdit},
			Description: "Can view and edit user information but cannot create or delete users",
		},
		{
			ID:          RoleViewer,
			Name:        "Viewer",
			Permissions: []string{PermUsersView},
			Description: "Read-only access to user information",
		},
		{
			ID:          RoleGuest,
			Name:        "Guest",
			Permissions: []string{},
			Description: "Limited access with no user management capabilities",
		},
	}
}

// FindRole busca una definición por id.
func FindRole(defs []RoleDefinition, id Role) (RoleDefinition, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return RoleDefinition{}, false
}
