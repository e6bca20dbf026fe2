package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"DOORLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"DOORLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DOORLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DOORLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DOORLINE_DB_DSN"`
	Driver string `envconfig:"DOORLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DOORLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"DOORLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DOORLINE_DB_USER"`
	LegacyPassword string `envconfig:"DOORLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"DOORLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"DOORLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DOORLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DOORLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DOORLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DOORLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DOORLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DOORLINE_REDIS_ADDR"`
	Password     string        `envconfig:"DOORLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"DOORLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DOORLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DOORLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DOORLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DOORLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DOORLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig controls how long an idle cart session survives in Redis.
type CartConfig struct {
	SessionTTL time.Duration `envconfig:"DOORLINE_CART_SESSION_TTL" default:"72h"`
}

// CatalogConfig controls the catalog read-through cache.
type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"DOORLINE_CATALOG_CACHE_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DOORLINE_AUTO_MIGRATE" default:"false"`
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
