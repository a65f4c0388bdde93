package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
}

type AppConfig struct {
	AppName          string `validate:"required"`
	Environment      string `validate:"required"`
	HTTPPort         string `validate:"required"`
	LogLevel         string
	CORSAllowOrigins []string
	BcryptCost       int `validate:"gte=0,lte=31"`
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	RunMigrations bool
	RunSeeders    bool
}

type JWTConfig struct {
	Secret    string        `validate:"required"`
	ExpiresIn time.Duration `validate:"gt=0"`
}

// RedisConfig leaves Host empty to run without a cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Host) != ""
}

func (r RedisConfig) Addr() string {
	port := strings.TrimSpace(r.Port)
	if port == "" {
		port = "6379"
	}
	return fmt.Sprintf("%s:%s", strings.TrimSpace(r.Host), port)
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

const (
	defaultHTTPPort     = "5001"
	defaultJWTExpiresIn = time.Hour
	defaultRedisTTL     = 600 * time.Second
)

// Load reads the process environment. Callers wanting .env support load it
// into the environment first.
func Load() (Config, error) {
	cfg, err := read()
	if err != nil {
		return Config{}, err
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDatabase reads the same environment as Load but skips the checks that
// only the HTTP server needs, such as JWT_SECRET.
func LoadDatabase() (Config, error) {
	return read()
}

func read() (Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}), nil)
	if err != nil {
		return Config{}, errors.Wrap(err, "load env")
	}

	str := func(key, def string) string {
		v := strings.TrimSpace(k.String(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) (time.Duration, error) {
		raw := str(key, "")
		if raw == "" {
			return def, nil
		}
		if d, err := time.ParseDuration(raw); err == nil {
			return d, nil
		}
		var secs int
		if _, err := fmt.Sscanf(raw, "%d", &secs); err != nil {
			return 0, errors.Newf("invalid duration for %s: %q", strings.ToUpper(key), raw)
		}
		return time.Duration(secs) * time.Second, nil
	}
	num := func(key string, def int) (int, error) {
		raw := str(key, "")
		if raw == "" {
			return def, nil
		}
		var v int
		if _, err := fmt.Sscanf(raw, "%d", &v); err != nil {
			return 0, errors.Newf("invalid integer for %s: %q", strings.ToUpper(key), raw)
		}
		return v, nil
	}
	flag := func(key string) bool {
		switch strings.ToLower(str(key, "")) {
		case "1", "true", "yes", "on":
			return true
		}
		return false
	}

	cfg := Config{}

	bcryptCost, err := num("bcrypt_cost", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.App = AppConfig{
		AppName:          str("app_name", "job-board"),
		Environment:      str("app_env", "development"),
		HTTPPort:         str("http_port", defaultHTTPPort),
		LogLevel:         str("log_level", "info"),
		CORSAllowOrigins: splitList(str("cors_allow_origins", "")),
		BcryptCost:       bcryptCost,
	}

	maxConns, err := num("db_max_conns", 0)
	if err != nil {
		return Config{}, err
	}
	minConns, err := num("db_min_conns", 0)
	if err != nil {
		return Config{}, err
	}
	connectTimeout, err := dur("db_connect_timeout", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.Database = DatabaseConfig{
		DBHost:         str("db_host", "localhost"),
		DBPort:         str("db_port", "5432"),
		DBName:         str("db_name", "jobs"),
		DBUser:         str("db_user", "postgres"),
		DBPassword:     k.String("db_password"),
		DBSSLMode:      str("db_ssl_mode", "disable"),
		ConnectTimeout: connectTimeout,
		PoolMaxConns:   int32(maxConns),
		PoolMinConns:   int32(minConns),
		RunMigrations:  flag("db_run_migrations"),
		RunSeeders:     flag("db_run_seeders"),
	}

	expiresIn, err := dur("jwt_expires_in", defaultJWTExpiresIn)
	if err != nil {
		return Config{}, err
	}
	cfg.JWT = JWTConfig{
		Secret:    k.String("jwt_secret"),
		ExpiresIn: expiresIn,
	}

	ttl, err := dur("redis_ttl", defaultRedisTTL)
	if err != nil {
		return Config{}, err
	}
	cfg.Redis = RedisConfig{
		Host:     str("redis_host", ""),
		Port:     str("redis_port", "6379"),
		Password: k.String("redis_password"),
		TTL:      ttl,
	}

	return cfg, nil
}

func validate(cfg Config) error {
	v := validator.New()
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var missing []string
	for _, fe := range verrs {
		if name, ok := envNames[fe.StructNamespace()]; ok && fe.Tag() == "required" {
			missing = append(missing, name)
			continue
		}
		return errors.Newf("invalid config value %s: failed %q", fe.StructNamespace(), fe.Tag())
	}
	return errors.Wrapf(errMissingRequiredEnv, "%s", strings.Join(missing, ", "))
}

var envNames = map[string]string{
	"Config.App.AppName":     "APP_NAME",
	"Config.App.Environment": "APP_ENV",
	"Config.App.HTTPPort":    "HTTP_PORT",
	"Config.JWT.Secret":      "JWT_SECRET",
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
