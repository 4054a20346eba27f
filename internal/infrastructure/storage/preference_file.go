package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/jhoicas/user-console/internal/domain/repository"
)

var _ repository.KeyValueStorage = (*PreferenceFile)(nil)

// PreferenceFile almacenamiento durable de preferencias sobre un archivo JSON gestionado con Viper.
// Las claves se normalizan a minúsculas (comportamiento de Viper).
type PreferenceFile struct {
	mu   sync.Mutex
	path string
	v    *viper.Viper
}

// NewPreferenceFile abre (o prepara) el archivo de preferencias. Un archivo inexistente equivale a vacío.
func NewPreferenceFile(path string) (*PreferenceFile, error) {
	v := newPreferenceViper(path)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("preferences: leer %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("preferences: stat %s: %w", path, err)
	}
	return &PreferenceFile{path: path, v: v}, nil
}

func newPreferenceViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	return v
}

// Get devuelve el valor y si existe.
func (p *PreferenceFile) Get(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.v.IsSet(key) {
		return "", false
	}
	return p.v.GetString(key), true
}

// SetMany escribe las entradas y persiste el archivo completo.
func (p *PreferenceFile) SetMany(entries map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, val := range entries {
		p.v.Set(k, val)
	}
	return p.flushLocked()
}

// RemoveMany reconstruye el contenido sin las claves indicadas (Viper no soporta borrar claves).
func (p *PreferenceFile) RemoveMany(keys ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	settings := p.v.AllSettings()
	for _, k := range keys {
		delete(settings, k)
	}
	next := newPreferenceViper(p.path)
	for k, val := range settings {
		next.Set(k, val)
	}
	p.v = next
	return p.flushLocked()
}

func (p *PreferenceFile) flushLocked() error {
	if dir := filepath.Dir(p.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("preferences: crear directorio: %w", err)
		}
	}
	if err := p.v.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("preferences: escribir %s: %w", p.path, err)
	}
	return nil
}
