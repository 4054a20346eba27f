package entity

import "time"

// SessionUser instantánea del usuario autenticado que se guarda con la sesión.
type SessionUser struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// SessionUserFrom construye la instantánea a partir de un registro completo.
func SessionUserFrom(u User) SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Avatar: u.Avatar}
}

// Session estado de una sesión autenticada.
type Session struct {
	User         SessionUser `json:"user"`
	Token        string      `json:"-"`
	LastActivity time.Time   `json:"lastActivity"`
}
