package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yml"

	defaultAccessTTLMs   = 15 * 60 * 1000
	defaultRefreshTTLSec = 7 * 24 * 60 * 60
	defaultBasePassword  = "password123"
	minSecretBytes       = 32
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret                    string `yaml:"secret"`
	Issuer                    string `yaml:"issuer"`
	AccessTokenExpirationMs   int64  `yaml:"access_token_expiration_ms"`
	RefreshTokenExpirationSec int64  `yaml:"refresh_token_expiration_sec"`
}

type BootstrapConfig struct {
	AdminPassword       string `yaml:"admin_password"`
	BaseUserPassword    string `yaml:"base_user_password"`
	CoordinatorPassword string `yaml:"coordinator_password"`
}

type BcryptConfig struct {
	Cost int `yaml:"cost"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Bcrypt    BcryptConfig    `yaml:"bcrypt"`
	Log       LogConfig       `yaml:"log"`
	Casbin    CasbinConfig    `yaml:"casbin"`
}

type Config struct {
	Port                string
	GinMode             string
	DSN                 string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	JWTSecret           string
	JWTIssuer           string
	AccessTTL           time.Duration
	RefreshTTL          time.Duration
	AdminPassword       string
	BaseUserPassword    string
	CoordinatorPassword string
	BcryptCost          int
	LogLevel            string
	LogFormat           string
	CasbinModelPath     string // empty means the built-in model
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return i
}

// Load reads .env (if present), the YAML file at CONFIG_PATH (default
// config/config.yml, optional) and applies environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadFile(env("CONFIG_PATH", DefaultConfigPath))
}

// LoadFile builds the configuration from the YAML file at path. A missing file
// is not an error; defaults and environment variables are used instead.
func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg := fromFile(configFile)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromFile(f *ConfigFile) *Config {
	port := f.App.Port
	if port == 0 {
		port = 8080
	}
	accessMs := f.JWT.AccessTokenExpirationMs
	if accessMs == 0 {
		accessMs = defaultAccessTTLMs
	}
	refreshSec := f.JWT.RefreshTokenExpirationSec
	if refreshSec == 0 {
		refreshSec = defaultRefreshTTLSec
	}

	return &Config{
		Port:                env("PORT", strconv.Itoa(port)),
		GinMode:             env("GIN_MODE", f.App.GinMode),
		DSN:                 env("DATABASE_DSN", f.Database.DSN),
		RedisAddr:           env("REDIS_ADDR", f.Redis.Addr),
		RedisPassword:       env("REDIS_PASSWORD", f.Redis.Password),
		RedisDB:             int(envInt("REDIS_DB", int64(f.Redis.DB))),
		JWTSecret:           env("SECRET_KEY", f.JWT.Secret),
		JWTIssuer:           env("JWT_ISSUER", f.JWT.Issuer),
		AccessTTL:           time.Duration(envInt("JWT_ACCESS_TOKEN_EXPIRATION_MS", accessMs)) * time.Millisecond,
		RefreshTTL:          time.Duration(envInt("JWT_REFRESH_TOKEN_EXPIRATION_SEC", refreshSec)) * time.Second,
		AdminPassword:       env("ADMIN_PASSWORD", f.Bootstrap.AdminPassword),
		BaseUserPassword:    env("BASE_USER_PASSWORD", withDefault(f.Bootstrap.BaseUserPassword, defaultBasePassword)),
		CoordinatorPassword: env("COORDINATOR_PASSWORD", withDefault(f.Bootstrap.CoordinatorPassword, defaultBasePassword)),
		BcryptCost:          int(envInt("BCRYPT_COST", int64(f.Bcrypt.Cost))),
		LogLevel:            env("LOG_LEVEL", withDefault(f.Log.Level, "info")),
		LogFormat:           env("LOG_FORMAT", withDefault(f.Log.Format, "json")),
		CasbinModelPath:     env("CASBIN_MODEL_PATH", f.Casbin.ModelPath),
	}
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if c.DSN == "" {
		return errors.New("database dsn is required")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt secret is required (SECRET_KEY)")
	}
	key, err := base64.StdEncoding.DecodeString(c.JWTSecret)
	if err != nil {
		return fmt.Errorf("jwt secret must be base64 encoded: %w", err)
	}
	if len(key) < minSecretBytes {
		return fmt.Errorf("jwt secret must decode to at least %d bytes, got %d", minSecretBytes, len(key))
	}
	if c.AccessTTL <= 0 {
		return errors.New("access token expiration must be positive")
	}
	// iat and exp are whole seconds
	if c.AccessTTL < time.Second {
		return fmt.Errorf("access token expiration must be at least 1s, got %s", c.AccessTTL)
	}
	if c.RefreshTTL <= 0 {
		return errors.New("refresh token expiration must be positive")
	}
	if c.AdminPassword == "" {
		return errors.New("admin password is required (ADMIN_PASSWORD)")
	}
	return nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	var config ConfigFile

	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
