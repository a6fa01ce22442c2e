package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Snapshot store kinds selectable via LEDGER_STORE.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Ledger       LedgerConfig
	Registration RegistrationConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Log          LogConfig
	Dashboard    DashboardConfig
	Bootstrap    BootstrapConfig
}

// LedgerConfig selects and locates the snapshot store backing the booking
// ledger.
type LedgerConfig struct {
	Store        string
	SnapshotPath string
}

// RegistrationConfig seeds the system configuration record on first start.
type RegistrationConfig struct {
	Open              bool
	MaxDailyCapacity  int
	MaxGroupSize      int
	ConfirmationEmail bool
	TwentyFourHour    bool
	DayOf             bool
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs stats caching behaviour.
type DashboardConfig struct {
	CacheTTL time.Duration
}

// BootstrapConfig seeds the initial super admin when the snapshot is empty.
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Ledger = LedgerConfig{
		Store:        v.GetString("LEDGER_STORE"),
		SnapshotPath: v.GetString("LEDGER_SNAPSHOT_PATH"),
	}

	cfg.Registration = RegistrationConfig{
		Open:              v.GetBool("REGISTRATION_OPEN"),
		MaxDailyCapacity:  v.GetInt("REGISTRATION_MAX_DAILY_CAPACITY"),
		MaxGroupSize:      v.GetInt("REGISTRATION_MAX_GROUP_SIZE"),
		ConfirmationEmail: v.GetBool("REMINDER_CONFIRMATION_EMAIL"),
		TwentyFourHour:    v.GetBool("REMINDER_24H_EMAIL"),
		DayOf:             v.GetBool("REMINDER_DAY_OF_EMAIL"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheTTL: parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), time.Minute),
	}

	cfg.Bootstrap = BootstrapConfig{
		AdminUsername: v.GetString("BOOTSTRAP_ADMIN_USERNAME"),
		AdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("LEDGER_STORE", StoreFile)
	v.SetDefault("LEDGER_SNAPSHOT_PATH", "./data/ledger.json")

	v.SetDefault("REGISTRATION_OPEN", true)
	v.SetDefault("REGISTRATION_MAX_DAILY_CAPACITY", 200)
	v.SetDefault("REGISTRATION_MAX_GROUP_SIZE", 15)
	v.SetDefault("REMINDER_CONFIRMATION_EMAIL", true)
	v.SetDefault("REMINDER_24H_EMAIL", false)
	v.SetDefault("REMINDER_DAY_OF_EMAIL", false)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "alibaanah_intake")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "alibaanah-intake")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_TTL", "1m")

	v.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "superadmin")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
