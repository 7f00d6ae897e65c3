package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the API reads.
const EnvPrefix = "CUADRANTE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	SMTP          SMTPConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"CUADRANTE_APP_ENV" default:"development"`
	Port         string `envconfig:"CUADRANTE_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"CUADRANTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CUADRANTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CUADRANTE_DB_DSN"`
	Driver string `envconfig:"CUADRANTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CUADRANTE_DB_HOST"`
	LegacyPort     int    `envconfig:"CUADRANTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CUADRANTE_DB_USER"`
	LegacyPassword string `envconfig:"CUADRANTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"CUADRANTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"CUADRANTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CUADRANTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CUADRANTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CUADRANTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CUADRANTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CUADRANTE_REDIS_URL"`
	Address      string        `envconfig:"CUADRANTE_REDIS_ADDR"`
	Password     string        `envconfig:"CUADRANTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CUADRANTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CUADRANTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CUADRANTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CUADRANTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CUADRANTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CUADRANTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. Rate
// limiting degrades to a no-op without one.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"CUADRANTE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CUADRANTE_JWT_ISSUER" default:"cuadrante-api"`
	ExpirationMinutes int    `envconfig:"CUADRANTE_JWT_EXPIRATION_MINUTES" default:"10080"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CUADRANTE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CUADRANTE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CUADRANTE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CUADRANTE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CUADRANTE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"CUADRANTE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"CUADRANTE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"CUADRANTE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"100"`
}

type SMTPConfig struct {
	Host     string `envconfig:"CUADRANTE_SMTP_HOST"`
	Port     int    `envconfig:"CUADRANTE_SMTP_PORT" default:"587"`
	User     string `envconfig:"CUADRANTE_SMTP_USER"`
	Password string `envconfig:"CUADRANTE_SMTP_PASSWORD"`
	From     string `envconfig:"CUADRANTE_SMTP_FROM"`
}

// Enabled reports whether outbound mail is configured. Without it the
// notifier logs deliveries instead of sending them.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.User != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CUADRANTE_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:8000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CUADRANTE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		"CUADRANTE_DB_HOST": db.LegacyHost,
		"CUADRANTE_DB_USER": db.LegacyUser,
		"CUADRANTE_DB_NAME": db.LegacyName,
	}
	for _, env := range []string{"CUADRANTE_DB_HOST", "CUADRANTE_DB_USER", "CUADRANTE_DB_NAME"} {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either CUADRANTE_DB_DSN or %s are required", strings.Join(missing, ", "))
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
