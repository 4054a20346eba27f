package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse salida de /health.
type HealthResponse struct {
	Status string `json:"status"`
	App    string `json:"app"`
	Env    string `json:"env"`
}

// NavigationResponse resultado de una navegación permitida.
type NavigationResponse struct {
	Route  string            `json:"route"`
	Path   string            `json:"path"`
	Params map[string]string `json:"params,omitempty"`
	Reason string            `json:"reason"`
}
