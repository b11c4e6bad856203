package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is the envconfig prefix shared by every variable.
	EnvPrefix = "POMAR"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "POMAR_APP_ENV"
	EnvDBDSN  = "POMAR_DB_DSN"
	EnvDBHost = "POMAR_DB_HOST"
	EnvDBUser = "POMAR_DB_USER"
	EnvDBName = "POMAR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App            AppConfig
	DB             DBConfig
	FeatureFlags   FeatureFlagsConfig
	Reconciliation ReconciliationConfig
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
	Env          string `envconfig:"POMAR_APP_ENV" required:"true"`
	Port         string `envconfig:"POMAR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"POMAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POMAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"POMAR_DB_DSN"`
	Driver string `envconfig:"POMAR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"POMAR_DB_HOST"`
	LegacyPort     int    `envconfig:"POMAR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"POMAR_DB_USER"`
	LegacyPassword string `envconfig:"POMAR_DB_PASSWORD"`
	LegacyName     string `envconfig:"POMAR_DB_NAME"`
	LegacySSLMode  string `envconfig:"POMAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"POMAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"POMAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"POMAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"POMAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"POMAR_AUTO_MIGRATE" default:"false"`
}

// ReconciliationConfig scopes the settlement matcher to one banking channel.
type ReconciliationConfig struct {
	Channel string `envconfig:"POMAR_RECONCILIATION_CHANNEL" default:"pix"`
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
