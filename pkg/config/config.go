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
	App          AppConfig
	Supabase     SupabaseConfig
	HTTP         HTTPConfig
	Notificacion NotificacionConfig
	Tabla        TablaConfig
	Validacion   ValidacionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// SupabaseConfig acceso al almacén remoto (API REST de Supabase/PostgREST).
type SupabaseConfig struct {
	URL     string // ej. https://xyz.supabase.co
	AnonKey string // API key anónima (JWT)
	Tabla   string // nombre de la tabla de productos
}

// RestURL devuelve la URL base del endpoint REST (sin slash final).
func (c SupabaseConfig) RestURL() string {
	return strings.TrimRight(c.URL, "/") + "/rest/v1"
}

// HTTPConfig configuración del servidor HTTP que expone la superficie de eventos de UI.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NotificacionConfig duración de las notificaciones transitorias.
type NotificacionConfig struct {
	Duracion time.Duration
}

// TablaConfig presentación de la tabla de productos.
// ItemsPorPagina se declara para la UI; la lógica de sincronización no pagina.
type TablaConfig struct {
	ItemsPorPagina int
}

// ValidacionConfig límites y patrones de validación de formularios.
// Los patrones de cédula/teléfono/email se declaran para la UI; el núcleo
// solo aplica los límites de longitud del nombre.
type ValidacionConfig struct {
	MinNombre      int
	MaxNombre      int
	PatronCedula   string
	PatronTelefono string
	PatronEmail    string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, SUPABASE_URL, SUPABASE_ANON_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "tienda-ropa"),
		},
		Supabase: SupabaseConfig{
			URL:     getString(v, "SUPABASE_URL", ""),
			AnonKey: getString(v, "SUPABASE_ANON_KEY", ""),
			Tabla:   getString(v, "SUPABASE_TABLE", "productos"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Notificacion: NotificacionConfig{
			Duracion: time.Duration(getInt(v, "NOTIFICATION_DURATION_MS", 5000)) * time.Millisecond,
		},
		Tabla: TablaConfig{
			ItemsPorPagina: getInt(v, "TABLE_ITEMS_PER_PAGE", 10),
		},
		Validacion: ValidacionConfig{
			MinNombre:      getInt(v, "VALIDATION_MIN_NAME_LENGTH", 2),
			MaxNombre:      getInt(v, "VALIDATION_MAX_NAME_LENGTH", 50),
			PatronCedula:   getString(v, "VALIDATION_CEDULA_PATTERN", `^[0-9]{7,10}$`),
			PatronTelefono: getString(v, "VALIDATION_PHONE_PATTERN", `^[0-9+\-\s()]+$`),
			PatronEmail:    getString(v, "VALIDATION_EMAIL_PATTERN", `^[^\s@]+@[^\s@]+\.[^\s@]+$`),
		},
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
