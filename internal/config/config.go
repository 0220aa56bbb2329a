package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Remote RemoteConfig
	Sync   SyncConfig
	Chat   ChatConfig
	Stub   StubConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	Verbose     bool
	EventsTopic string
	NatsURL     string
	DeviceId    string // durable consumer name for cross-device sync
	RedisURL    string
	CacheTTL    time.Duration
	OtelEnabled bool
	OtelURL     string
}

type RemoteConfig struct {
	BaseURL        string
	APIToken       string
	RequestTimeout time.Duration
}

// SyncConfig tunes the reconciliation path that follows every mutation.
type SyncConfig struct {
	ReloadDelay          time.Duration // delay before a collection reload
	DashboardDebounce    time.Duration
	GuardLease           time.Duration // upper bound on how long an in-flight flag may stay held
	RollbackFailedToggle bool
}

type ChatConfig struct {
	MarkerCompat    bool // parse reply text when the response has no structured effects
	NoteMarkers     []string
	ReminderMarkers []string
}

type StubConfig struct {
	Port               string
	StructuredEffects  bool
	JWTSecret          string
	CorsAllowedOrigins string
	LogFilePath        string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/assistant.log"),
			Verbose:     getEnvAsBool("VERBOSE", false),
			EventsTopic: getEnv("EVENTS_TOPIC", "client.events"),
			NatsURL:     getEnv("NATS_URL", ""),
			DeviceId:    getEnv("DEVICE_ID", defaultDeviceId()),
			RedisURL:    getEnv("REDIS_URL", ""),
			CacheTTL:    time.Duration(getEnvAsInt("DASHBOARD_CACHE_TTL_MINUTES", 60)) * time.Minute,
			OtelEnabled: getEnvAsBool("OTEL_ENABLED", false),
			OtelURL:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Remote: RemoteConfig{
			BaseURL:        strings.TrimRight(getEnv("ASSISTANT_BACKEND_URL", "http://localhost:8001"), "/"),
			APIToken:       getEnv("ASSISTANT_API_TOKEN", ""),
			RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Sync: SyncConfig{
			ReloadDelay:          time.Duration(getEnvAsInt("RELOAD_DELAY_MS", 300)) * time.Millisecond,
			DashboardDebounce:    time.Duration(getEnvAsInt("DASHBOARD_DEBOUNCE_MS", 150)) * time.Millisecond,
			GuardLease:           time.Duration(getEnvAsInt("GUARD_LEASE_SECONDS", 120)) * time.Second,
			RollbackFailedToggle: getEnvAsBool("ROLLBACK_FAILED_TOGGLE", false),
		},
		Chat: ChatConfig{
			MarkerCompat:    getEnvAsBool("CHAT_MARKER_COMPAT", true),
			NoteMarkers:     getEnvAsList("CHAT_NOTE_MARKERS", []string{"nota criada"}),
			ReminderMarkers: getEnvAsList("CHAT_REMINDER_MARKERS", []string{"lembrete criado"}),
		},
		Stub: StubConfig{
			Port:               getEnv("STUB_PORT", "8001"),
			StructuredEffects:  getEnvAsBool("STUB_STRUCTURED_EFFECTS", true),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			LogFilePath:        getEnv("STUB_LOG_FILE_PATH", "logs/stub-api.log"),
		},
	}
}

// IsProduction reports whether logs should be emitted as JSON on the console too.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func defaultDeviceId() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "default"
	}
	return host
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(strValue, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
