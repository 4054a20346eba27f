package usecase

import (
	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/domain"
	"github.com/jhoicas/user-console/internal/domain/repository"
)

// Claves y valores de preferencias.
const (
	PrefLanguage = "language"
	PrefTheme    = "theme"

	DefaultLanguage = "en"
	DefaultTheme    = "system"
)

var (
	supportedLanguages = map[string]bool{"en": true, "ar": true}
	supportedThemes    = map[string]bool{"light": true, "dark": true, "system": true}
	rtlLanguages       = map[string]bool{"ar": true}
)

// PreferenceUseCase idioma y tema guardados en el almacenamiento durable.
type PreferenceUseCase struct {
	storage repository.KeyValueStorage
}

// NewPreferenceUseCase construye el caso de uso.
func NewPreferenceUseCase(storage repository.KeyValueStorage) *PreferenceUseCase {
	return &PreferenceUseCase{storage: storage}
}

// Get preferencias actuales; valores ausentes o desconocidos caen a los por defecto.
func (uc *PreferenceUseCase) Get() dto.PreferencesResponse {
	lang, ok := uc.storage.Get(PrefLanguage)
	if !ok || !supportedLanguages[lang] {
		lang = DefaultLanguage
	}
	theme, ok := uc.storage.Get(PrefTheme)
	if !ok || !supportedThemes[theme] {
		theme = DefaultTheme
	}
	return buildPreferences(lang, theme)
}

// Language idioma actual.
func (uc *PreferenceUseCase) Language() string {
	return uc.Get().Language
}

// Update valida y guarda los campos presentes.
func (uc *PreferenceUseCase) Update(in dto.UpdatePreferencesRequest) (dto.PreferencesResponse, error) {
	entries := map[string]string{}
	if in.Language != nil {
		if !supportedLanguages[*in.Language] {
			return dto.PreferencesResponse{}, domain.NewInvalidInput("idioma no soportado: " + *in.Language)
		}
		entries[PrefLanguage] = *in.Language
	}
	if in.Theme != nil {
		if !supportedThemes[*in.Theme] {
			return dto.PreferencesResponse{}, domain.NewInvalidInput("tema no soportado: " + *in.Theme)
		}
		entries[PrefTheme] = *in.Theme
	}
	if len(entries) > 0 {
		if err := uc.storage.SetMany(entries); err != nil {
			return dto.PreferencesResponse{}, err
		}
	}
	return uc.Get(), nil
}

// IsRTL informa si el idioma se escribe de derecha a izquierda.
func IsRTL(lang string) bool {
	return rtlLanguages[lang]
}

func buildPreferences(lang, theme string) dto.PreferencesResponse {
	dir := "ltr"
	if IsRTL(lang) {
		dir = "rtl"
	}
	return dto.PreferencesResponse{Language: lang, Theme: theme, Direction: dir, RTL: IsRTL(lang)}
}
