package repository

// KeyValueStorage almacenamiento clave/valor de strings (sesión por pestaña o preferencias durables).
// SetMany y RemoveMany son atómicos: ningún lector observa un subconjunto escrito.
type KeyValueStorage interface {
	Get(key string) (string, bool)
	SetMany(entries map[string]string) error
	RemoveMany(keys ...string) error
}
