package cmd

import (
	"fmt"
	"net/url"
	"os"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	LockBackendLocal = "local"
	LockBackendRedis = "redis"
)

// Config is the process configuration, read from the environment.
type Config struct {
	HTTPPort string `env:"HTTP_PORT,default=8080"`

	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER,default=postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,default=parceltrack"`
	DBSslMode  string `env:"DB_SSLMODE,default=disable"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`

	LockBackend   string `env:"LOCK_BACKEND,default=local"`
	RedisAddr     string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`
	LockTTLMillis int    `env:"LOCK_TTL_MS,default=30000"`

	// NATSURL is optional; without it domain events are only logged.
	NATSURL           string `env:"NATS_URL"`
	NATSSubjectPrefix string `env:"NATS_SUBJECT_PREFIX,default=parceltrack"`

	MetricsNamespace string `env:"METRICS_NAMESPACE,default=parceltrack"`

	AssignmentJobSpec string `env:"ASSIGNMENT_JOB_SPEC,default=@every 5s"`
	AuditJobSpec      string `env:"AUDIT_JOB_SPEC,default=@every 10m"`

	OpenAPIValidation bool   `env:"OPENAPI_VALIDATION,default=true"`
	LabelsFile        string `env:"LABELS_FILE"`
}

// LoadConfig reads the optional dotenv file into the process environment and
// maps the environment onto Config. Variables already set win over the file.
func LoadConfig(dotenvPath string) (Config, error) {
	if dotenvPath != "" {
		err := godotenv.Load(dotenvPath)
		if err != nil && !os.IsNotExist(errors.Cause(err)) {
			return Config{}, errors.Wrapf(err, "load %s", dotenvPath)
		}
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "map environment to config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.LockBackend != LockBackendLocal && c.LockBackend != LockBackendRedis {
		return fmt.Errorf("LOCK_BACKEND must be %q or %q, got %q", LockBackendLocal, LockBackendRedis, c.LockBackend)
	}
	if c.LockTTLMillis <= 0 {
		return fmt.Errorf("LOCK_TTL_MS must be positive, got %d", c.LockTTLMillis)
	}
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	return nil
}

// DSN is the postgres connection string of the delivery store.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func (c Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLMillis) * time.Millisecond
}
