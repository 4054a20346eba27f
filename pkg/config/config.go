package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App         AppConfig
	JWT         JWTConfig
	HTTP        HTTPConfig
	Session     SessionConfig
	MockAPI     MockAPIConfig
	Auth        AuthConfig
	Preferences PreferencesConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// JWTConfig configuración del token de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig umbral de inactividad de la sesión.
type SessionConfig struct {
	TimeoutSeconds int
}

// Timeout devuelve el umbral como time.Duration.
func (c SessionConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MockAPIConfig parámetros del backend simulado: latencia, tasa de fallos y datos semilla.
type MockAPIConfig struct {
	DelayMinMS int
	DelayMaxMS int
	ErrorRate  float64
	SeedCount  int
	RandomSeed int64 // 0 = semilla basada en el reloj
}

// DelayMin devuelve la latencia mínima simulada.
func (c MockAPIConfig) DelayMin() time.Duration {
	return time.Duration(c.DelayMinMS) * time.Millisecond
}

// DelayMax devuelve la latencia máxima simulada.
func (c MockAPIConfig) DelayMax() time.Duration {
	return time.Duration(c.DelayMaxMS) * time.Millisecond
}

// AuthConfig credenciales de demostración para el login.
type AuthConfig struct {
	DemoPassword string
}

// PreferencesConfig ubicación del archivo durable de preferencias (idioma, tema).
type PreferencesConfig struct {
	FilePath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, MOCKAPI_ERROR_RATE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	env := getString(v, "APP_ENV", "development")
	secret := getString(v, "JWT_SECRET", "")
	if secret == "" && env == "development" {
		secret = "dev-only-insecure-secret"
	}
	return &Config{
		App: AppConfig{
			Env:      env,
			Name:     getString(v, "APP_NAME", "user-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			Secret:     secret,
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "user-console"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Session: SessionConfig{
			TimeoutSeconds: getInt(v, "SESSION_TIMEOUT_SECONDS", 60),
		},
		MockAPI: MockAPIConfig{
			DelayMinMS: getInt(v, "MOCKAPI_DELAY_MIN_MS", 300),
			DelayMaxMS: getInt(v, "MOCKAPI_DELAY_MAX_MS", 800),
			ErrorRate:  getFloat(v, "MOCKAPI_ERROR_RATE", 0.1),
			SeedCount:  getInt(v, "MOCKAPI_SEED_COUNT", 55),
			RandomSeed: int64(getInt(v, "MOCKAPI_RANDOM_SEED", 0)),
		},
		Auth: AuthConfig{
			DemoPassword: getString(v, "AUTH_DEMO_PASSWORD", "password123"),
		},
		Preferences: PreferencesConfig{
			FilePath: getString(v, "PREFERENCES_FILE", "./data/preferences.json"),
		},
	}
}

// Validate comprueba combinaciones inválidas antes de construir los componentes.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio fuera de development")
	}
	if c.MockAPI.DelayMinMS < 0 || c.MockAPI.DelayMinMS > c.MockAPI.DelayMaxMS {
		return fmt.Errorf("config: rango de latencia inválido [%d, %d] ms", c.MockAPI.DelayMinMS, c.MockAPI.DelayMaxMS)
	}
	if c.MockAPI.ErrorRate < 0 || c.MockAPI.ErrorRate > 1 {
		return fmt.Errorf("config: MOCKAPI_ERROR_RATE debe estar en [0, 1], recibido %v", c.MockAPI.ErrorRate)
	}
	if c.Session.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: SESSION_TIMEOUT_SECONDS debe ser positivo")
	}
	if c.MockAPI.SeedCount < 0 {
		return fmt.Errorf("config: MOCKAPI_SEED_COUNT no puede ser negativo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			f, err := strconv.ParseFloat(v.GetString(key), 64)
			if err != nil {
				return def
			}
			return f
		default:
			return v.GetFloat64(key)
		}
	}
	return def
}
