package entity

import "time"

// Status estado de la cuenta de un usuario.
type Status string

// Estados válidos para User.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Valid informa si el estado pertenece al conjunto cerrado.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// User registro de usuario administrado por la consola.
// ID es inmutable tras la creación; Email es único entre todos los registros.
// Los campos opcionales (Avatar, Department, Location, Phone) usan "" como ausente.
type User struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Avatar     string     `json:"avatar,omitempty"`
	Role       Role       `json:"role"`
	Status     Status     `json:"status"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"` // solo para usuarios activos
	CreatedAt  time.Time  `json:"createdAt"`
	Department string     `json:"department,omitempty"`
	Location   string     `json:"location,omitempty"`
	Phone      string     `json:"phone,omitempty"`
}

// Clone copia profunda (LastLogin incluido) para que las copias transitorias no compartan memoria.
func (u User) Clone() User {
	if u.LastLogin != nil {
		ll := *u.LastLogin
		u.LastLogin = &ll
	}
	return u
}

// Apply devuelve una copia con los campos no nulos del patch aplicados. El ID nunca cambia
// y el último acceso se descarta si el estado resultante no es activo.
func (u User) Apply(p UserPatch) User {
	out := u.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Avatar != nil {
		out.Avatar = *p.Avatar
	}
	if p.Role != nil {
		out.Role = *p.Role
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.LastLogin != nil {
		ll := *p.LastLogin
		out.LastLogin = &ll
	}
	if p.Department != nil {
		out.Department = *p.Department
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Phone != nil {
		out.Phone = *p.Phone
	}
	if out.Status != StatusActive {
		out.LastLogin = nil
	}
	return out
}

// NewUser datos de alta (sin id ni fecha de creación, los asigna el store).
type NewUser struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Avatar     string     `json:"avatar,omitempty"`
	Role       Role       `json:"role"`
	Status     Status     `json:"status"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	Department string     `json:"department,omitempty"`
	Location   string     `json:"location,omitempty"`
	Phone      string     `json:"phone,omitempty"`
}

// HasRequiredFields name, email, role y status son obligatorios.
func (n NewUser) HasRequiredFields() bool {
	return n.Name != "" && n.Email != "" && n.Role != "" && n.Status != ""
}

// UserPatch actualización parcial: solo se aplican los campos no nulos.
type UserPatch struct {
	Name       *string    `json:"name,omitempty"`
	Email      *string    `json:"email,omitempty"`
	Avatar     *string    `json:"avatar,omitempty"`
	Role       *Role      `json:"role,omitempty"`
	Status     *Status    `json:"status,omitempty"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	Department *string    `json:"department,omitempty"`
	Location   *string    `json:"location,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
}
