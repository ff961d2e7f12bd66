package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          int
	GinMode       string
	TLSCertFile   string
	TLSKeyFile    string
	DBDriver      string
	DBDSN         string
	SessionSecret string
	SessionExpiry time.Duration
	AdminUser     string
	AdminPassword string
}

type Env interface {
	Getenv(key string) string
}

type osEnv struct{}

func (osEnv) Getenv(key string) string { return os.Getenv(key) }

// fileConfig is the optional YAML config file shape. Environment variables
// always win over file values.
type fileConfig struct {
	Server struct {
		Port        int    `yaml:"port"`
		GinMode     string `yaml:"gin_mode"`
		TLSCertFile string `yaml:"tls_cert_file"`
		TLSKeyFile  string `yaml:"tls_key_file"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Admin struct {
		Username             string `yaml:"username"`
		Password             string `yaml:"password"`
		SessionSecret        string `yaml:"session_secret"`
		SessionExpirySeconds int    `yaml:"session_expiry_seconds"`
	} `yaml:"admin"`
}

func LoadConfig() (Config, error) {
	return LoadConfigFromEnv(osEnv{})
}

func LoadConfigFromEnv(env Env) (Config, error) {
	cfg := Config{
		Port:          8080,
		GinMode:       "release",
		DBDriver:      "sqlite",
		DBDSN:         "astracommand.db",
		SessionExpiry: 12 * time.Hour,
		AdminUser:     "admin",
		AdminPassword: "admin",
	}

	if path := env.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if raw := env.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT")
		}
		cfg.Port = port
	}

	if raw := env.Getenv("GIN_MODE"); raw != "" {
		cfg.GinMode = raw
	}

	if raw := env.Getenv("TLS_CERT_FILE"); raw != "" {
		cfg.TLSCertFile = raw
	}
	if raw := env.Getenv("TLS_KEY_FILE"); raw != "" {
		cfg.TLSKeyFile = raw
	}

	if raw := env.Getenv("DB_DRIVER"); raw != "" {
		cfg.DBDriver = raw
	}
	if raw := env.Getenv("DB_DSN"); raw != "" {
		cfg.DBDSN = raw
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "mysql" {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if raw := env.Getenv("SESSION_SECRET"); raw != "" {
		cfg.SessionSecret = raw
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	if raw := env.Getenv("SESSION_EXPIRY_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid SESSION_EXPIRY_SECONDS")
		}
		cfg.SessionExpiry = time.Duration(seconds) * time.Second
	}

	if raw := env.Getenv("ADMIN_USER"); raw != "" {
		cfg.AdminUser = raw
	}
	if raw := env.Getenv("ADMIN_PASSWORD"); raw != "" {
		cfg.AdminPassword = raw
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	if fc.Server.Port != 0 {
		cfg.Port = fc.Server.Port
	}
	if fc.Server.GinMode != "" {
		cfg.GinMode = fc.Server.GinMode
	}
	if fc.Server.TLSCertFile != "" {
		cfg.TLSCertFile = fc.Server.TLSCertFile
	}
	if fc.Server.TLSKeyFile != "" {
		cfg.TLSKeyFile = fc.Server.TLSKeyFile
	}
	if fc.Database.Driver != "" {
		cfg.DBDriver = fc.Database.Driver
	}
	if fc.Database.DSN != "" {
		cfg.DBDSN = fc.Database.DSN
	}
	if fc.Admin.Username != "" {
		cfg.AdminUser = fc.Admin.Username
	}
	if fc.Admin.Password != "" {
		cfg.AdminPassword = fc.Admin.Password
	}
	if fc.Admin.SessionSecret != "" {
		cfg.SessionSecret = fc.Admin.SessionSecret
	}
	if fc.Admin.SessionExpirySeconds > 0 {
		cfg.SessionExpiry = time.Duration(fc.Admin.SessionExpirySeconds) * time.Second
	}
	return nil
}
