package dto

// PreferencesResponse preferencias de interfaz.
type PreferencesResponse struct {
	Language  string `json:"language"`
	Theme     string `json:"theme"`
	Direction string `json:"direction"` // ltr | rtl
	RTL       bool   `json:"rtl"`
}

// UpdatePreferencesRequest cambio parcial de preferencias.
type UpdatePreferencesRequest struct {
	Language *string `json:"language" validate:"omitempty,oneof=en ar"`
	Theme    *string `json:"theme" validate:"omitempty,oneof=light dark system"`
}
