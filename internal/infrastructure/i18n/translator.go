// Package i18n catálogo de mensajes en/ar sobre golang.org/x/text con respaldo a inglés.
package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/jhoicas/user-console/internal/domain/entity"
)

// Idiomas soportados.
const (
	English = "en"
	Arabic  = "ar"
)

var tags = map[string]language.Tag{
	English: language.English,
	Arabic:  language.Arabic,
}

var sources = map[string]map[string]string{
	English: english,
	Arabic:  arabic,
}

// Translator resuelve claves por idioma. Una clave ausente en el idioma pedido usa el texto en inglés
// y una clave desconocida se devuelve tal cual.
type Translator struct {
	printers map[string]*message.Printer
}

// New construye el catálogo. Panics solo si los mensajes estáticos son inválidos.
func New() *Translator {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for lang, msgs := range sources {
		for key, text := range msgs {
			if err := b.SetString(tags[lang], key, text); err != nil {
				panic(fmt.Sprintf("i18n: mensaje inválido %s/%s: %v", lang, key, err))
			}
		}
	}
	t := &Translator{printers: make(map[string]*message.Printer, len(tags))}
	for lang, tag := range tags {
		t.printers[lang] = message.NewPrinter(tag, message.Catalog(b))
	}
	return t
}

// Supported informa si el idioma tiene catálogo.
func (t *Translator) Supported(lang string) bool {
	_, ok := tags[lang]
	return ok
}

// Normalize devuelve lang si está soportado; si no, inglés.
func (t *Translator) Normalize(lang string) string {
	if t.Supported(lang) {
		return lang
	}
	return English
}

// T traduce la clave.
func (t *Translator) T(lang, key string) string {
	lang = t.Normalize(lang)
	if _, ok := sources[lang][key]; !ok {
		if _, ok := english[key]; !ok {
			return key
		}
		lang = English
	}
	return t.printers[lang].Sprintf(key)
}

// RoleLabel etiqueta del rol; un rol sin traducción se muestra con su id.
func (t *Translator) RoleLabel(lang string, r entity.Role) string {
	key := "roles." + string(r)
	if out := t.T(lang, key); out != key {
		return out
	}
	return string(r)
}

// StatusLabel etiqueta del estado.
func (t *Translator) StatusLabel(lang string, s entity.Status) string {
	key := "statuses." + string(s)
	if out := t.T(lang, key); out != key {
		return out
	}
	return string(s)
}

// FormatDate fecha corta según el idioma (en: M/D/YYYY, ar: DD/MM/YYYY). La fecha cero es "".
func (t *Translator) FormatDate(lang string, tm time.Time) string {
	if tm.IsZero() {
		return ""
	}
	if t.Normalize(lang) == Arabic {
		return tm.Format("02/01/2006")
	}
	return tm.Format("1/2/2006")
}
