package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ESTORE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv                 = "ESTORE_APP_ENV"
	EnvPort                   = "ESTORE_APP_PORT"
	EnvDBDSN                  = "ESTORE_DB_DSN"
	EnvDBHost                 = "ESTORE_DB_HOST"
	EnvDBUser                 = "ESTORE_DB_USER"
	EnvDBName                 = "ESTORE_DB_NAME"
	EnvRedisURL               = "ESTORE_REDIS_URL"
	EnvJWTSecret              = "ESTORE_JWT_SECRET"
	EnvJWTIssuer              = "ESTORE_JWT_ISSUER"
	EnvJWTExpMins             = "ESTORE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "ESTORE_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Session       SessionConfig
	CORS          CORSConfig
	AuthRateLimit AuthRateLimitConfig
	Admin         AdminConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ESTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"ESTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ESTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ESTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ESTORE_DB_DSN"`
	Driver string `envconfig:"ESTORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ESTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"ESTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ESTORE_DB_USER"`
	LegacyPassword string `envconfig:"ESTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"ESTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"ESTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ESTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ESTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ESTORE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ESTORE_REDIS_ADDR"`
	Password     string        `envconfig:"ESTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ESTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ESTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ESTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ESTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ESTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ESTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ESTORE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ESTORE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ESTORE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"ESTORE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// SessionConfig governs the storefront cart-session cookie.
type SessionConfig struct {
	CookieName string        `envconfig:"ESTORE_SESSION_COOKIE_NAME" default:"estore_session"`
	TTL        time.Duration `envconfig:"ESTORE_SESSION_TTL" default:"720h"`
	Secure     bool          `envconfig:"ESTORE_SESSION_COOKIE_SECURE" default:"false"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ESTORE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// AuthRateLimitConfig throttles the admin login endpoint. A zero window
// or zero limits disable the corresponding counter.
type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ESTORE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit       int           `envconfig:"ESTORE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	LoginUsernameLimit int           `envconfig:"ESTORE_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
}

// AdminConfig optionally seeds a first admin account at startup. Both
// fields must be set for the seed to run.
type AdminConfig struct {
	SeedUsername string `envconfig:"ESTORE_ADMIN_SEED_USERNAME"`
	SeedPassword string `envconfig:"ESTORE_ADMIN_SEED_PASSWORD"`
	SeedEmail    string `envconfig:"ESTORE_ADMIN_SEED_EMAIL"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ESTORE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
