package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError error de dominio con estado tipo HTTP, mensaje legible y código de máquina.
// Dos APIError son equivalentes para errors.Is si comparten Code.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is compara por código para que errors.Is funcione con instancias que llevan mensajes propios.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Errores de dominio (sin dependencias externas).
var (
	ErrServer                = &APIError{Status: http.StatusInternalServerError, Message: "error del servidor", Code: "SERVER_ERROR"}
	ErrUserNotFound          = &APIError{Status: http.StatusNotFound, Message: "usuario no encontrado", Code: "USER_NOT_FOUND"}
	ErrEmailAlreadyExists    = &APIError{Status: http.StatusBadRequest, Message: "Email address is already in use", Code: "EMAIL_ALREADY_EXISTS"}
	ErrMissingRequiredFields = &APIError{Status: http.StatusBadRequest, Message: "Missing required fields", Code: "MISSING_REQUIRED_FIELDS"}
	ErrMutationPending       = &APIError{Status: http.StatusConflict, Message: "ya hay una operación en curso para este usuario", Code: "MUTATION_PENDING"}
	ErrInvalidInput          = &APIError{Status: http.StatusBadRequest, Message: "entrada inválida", Code: "INVALID_INPUT"}
	ErrUnauthorized          = &APIError{Status: http.StatusUnauthorized, Message: "no autorizado", Code: "UNAUTHORIZED"}
	ErrForbidden             = &APIError{Status: http.StatusForbidden, Message: "acceso denegado", Code: "FORBIDDEN"}
	ErrSessionExpired        = &APIError{Status: http.StatusUnauthorized, Message: "la sesión expiró por inactividad", Code: "SESSION_EXPIRED"}
)

// NewServerError fallo transitorio inyectado por el backend simulado.
func NewServerError(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: message, Code: ErrServer.Code}
}

// NewUserNotFound el id referenciado no existe.
func NewUserNotFound(id int) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("User with ID %d not found", id), Code: ErrUserNotFound.Code}
}

// NewInvalidInput entrada rechazada con un detalle concreto.
func NewInvalidInput(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message, Code: ErrInvalidInput.Code}
}

// AsAPIError extrae el APIError de la cadena; los errores desconocidos se tratan como internos.
func AsAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Status: http.StatusInternalServerError, Message: err.Error(), Code: "INTERNAL"}
}
