package storage

import (
	"sync"

	"github.com/jhoicas/user-console/internal/domain/repository"
)

var _ repository.KeyValueStorage = (*MemoryStorage)(nil)

// MemoryStorage almacenamiento por pestaña: vive lo que vive el proceso y se comparte solo por referencia.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStorage crea un almacenamiento vacío.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]string)}
}

// Get devuelve el valor y si existe.
func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// SetMany escribe todas las entradas bajo un mismo lock.
func (s *MemoryStorage) SetMany(entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range entries {
		s.entries[k] = v
	}
	return nil
}

// RemoveMany borra todas las claves bajo un mismo lock.
func (s *MemoryStorage) RemoveMany(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

// Len cantidad de entradas.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
