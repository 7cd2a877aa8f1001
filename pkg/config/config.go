package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Gateway GatewayConfig
	RNC     RNCConfig
	JWT     JWTConfig
	Session SessionConfig
	Store   StoreConfig
	HTTP    HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// GatewayConfig configuración del backend de automatización (webhooks n8n).
// Todas las lecturas y escrituras de datos de negocio pasan por el endpoint
// TablaMiembros; las tareas se crean vía un webhook dedicado.
type GatewayConfig struct {
	BaseURL       string        // ej. https://n8n-dev.waopos.com/webhook
	TicketWebhook string        // identificador del webhook de creación de tareas
	Timeout       time.Duration // timeout de red por petición
}

// RNCConfig configuración del servicio externo de consulta de RNC.
type RNCConfig struct {
	BaseURL  string // base del servicio de consulta
	LookupID string // identificador del endpoint de búsqueda
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret string
	Issuer string
}

// SessionConfig parámetros del ciclo de vida de sesiones y del flujo 2FA.
type SessionConfig struct {
	TTL         time.Duration // expiración absoluta de la sesión (8h)
	RefreshAt   time.Duration // antigüedad a partir de la cual se refresca en silencio (TTL - 1h)
	OTPTTL      time.Duration // vigencia del código 2FA (5 min)
	OTPAttempts int           // intentos permitidos por código
}

// StoreConfig configuración de la base SQLite local (sesiones, tickets, borradores).
type StoreConfig struct {
	Path string // ruta del archivo; ":memory:" para tests
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

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, GATEWAY_BASE_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// Bind de variables de entorno (Viper las lee automáticamente si AutomaticEnv está activo)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "fedo-reportes-api"),
		},
		Gateway: GatewayConfig{
			BaseURL:       getString(v, "GATEWAY_BASE_URL", "https://n8n-dev.waopos.com/webhook"),
			TicketWebhook: getString(v, "GATEWAY_TICKET_WEBHOOK", "c49681de-ed44-4032-a426-ebe3c911a030"),
			Timeout:       getDuration(v, "GATEWAY_TIMEOUT", 30*time.Second),
		},
		RNC: RNCConfig{
			BaseURL:  getString(v, "RNC_API_URL", ""),
			LookupID: getString(v, "RNC_LOOKUP_ID", "38d12312-946a-4cc8-8ef1-100731a60bf0"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "fedo-reportes-api"),
		},
		Session: SessionConfig{
			TTL:         getDuration(v, "SESSION_TTL", 8*time.Hour),
			RefreshAt:   getDuration(v, "SESSION_REFRESH_AT", 7*time.Hour),
			OTPTTL:      getDuration(v, "OTP_TTL", 5*time.Minute),
			OTPAttempts: getInt(v, "OTP_ATTEMPTS", 3),
		},
		Store: StoreConfig{
			Path: getString(v, "STORE_PATH", "fedo.db"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}

	// Fuera de development el secret de firma es obligatorio.
	if cfg.App.Env != "development" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en %s", cfg.App.Env)
	}

	return cfg, nil
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		if d := v.GetDuration(key); d > 0 {
			return d
		}
	}
	return def
}
