package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AuthRateLimit AuthRateLimitConfig
	Delivery      DeliveryConfig
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
	Env          string `envconfig:"AQUAFARMS_APP_ENV" required:"true"`
	Port         string `envconfig:"AQUAFARMS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AQUAFARMS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AQUAFARMS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AQUAFARMS_DB_DSN"`
	Driver string `envconfig:"AQUAFARMS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AQUAFARMS_DB_HOST"`
	LegacyPort     int    `envconfig:"AQUAFARMS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AQUAFARMS_DB_USER"`
	LegacyPassword string `envconfig:"AQUAFARMS_DB_PASSWORD"`
	LegacyName     string `envconfig:"AQUAFARMS_DB_NAME"`
	LegacySSLMode  string `envconfig:"AQUAFARMS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AQUAFARMS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AQUAFARMS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AQUAFARMS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AQUAFARMS_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"AQUAFARMS_DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AQUAFARMS_REDIS_URL"`
	Address      string        `envconfig:"AQUAFARMS_REDIS_ADDR"`
	Password     string        `envconfig:"AQUAFARMS_REDIS_PASSWORD"`
	DB           int           `envconfig:"AQUAFARMS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AQUAFARMS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AQUAFARMS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AQUAFARMS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AQUAFARMS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AQUAFARMS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AQUAFARMS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AQUAFARMS_JWT_ISSUER" default:"aqua-farms"`
	ExpirationMinutes int    `envconfig:"AQUAFARMS_JWT_EXPIRATION_MINUTES" default:"30"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"AQUAFARMS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"AQUAFARMS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"AQUAFARMS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"AQUAFARMS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"AQUAFARMS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"AQUAFARMS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// DeliveryConfig carries the checkout policy knobs. Amounts are in minor
// currency units, the advance window in days.
type DeliveryConfig struct {
	FreeThresholdCents int `envconfig:"AQUAFARMS_DELIVERY_FREE_THRESHOLD_CENTS" default:"50000"`
	FeeCents           int `envconfig:"AQUAFARMS_DELIVERY_FEE_CENTS" default:"5000"`
	MaxAdvanceDays     int `envconfig:"AQUAFARMS_DELIVERY_MAX_ADVANCE_DAYS" default:"30"`
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
