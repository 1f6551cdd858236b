package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/officelife/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

// LoadEnv loads the env files that exist, looking next to the current
// directory first and then at the go.mod root.
func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fs.FileExists(file) {
			existingFiles = append(existingFiles, file)
		}
	}
	if len(existingFiles) == 0 {
		if root, ok := findModuleRoot(); ok {
			for _, file := range envFiles {
				candidate := filepath.Join(root, file)
				if fs.FileExists(candidate) {
					existingFiles = append(existingFiles, candidate)
				}
			}
		}
	}
	if len(existingFiles) == 0 {
		return 0, nil
	}
	return len(existingFiles), godotenv.Load(existingFiles...)
}

func findModuleRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"officelife"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
	Addr    string `env:"METRICS_ADDR" envDefault:"localhost:9464"`
}

type AuthzOptions struct {
	// Both empty means the built-in administrator > hr > user hierarchy.
	ModelPath  string `env:"AUTHZ_MODEL_PATH" envDefault:""`
	PolicyPath string `env:"AUTHZ_POLICY_PATH" envDefault:""`
}

func (a *AuthzOptions) Validate() error {
	if (a.ModelPath == "") != (a.PolicyPath == "") {
		return fmt.Errorf("AUTHZ_MODEL_PATH and AUTHZ_POLICY_PATH must be set together")
	}
	return nil
}

type AuditOptions struct {
	QueueBackend  string        `env:"AUDIT_QUEUE_BACKEND" envDefault:"memory"` // memory or redis
	QueuePrefix   string        `env:"AUDIT_QUEUE_PREFIX" envDefault:"officelife"`
	PushTimeout   time.Duration `env:"AUDIT_PUSH_TIMEOUT" envDefault:"2s"`
	BufferSize    int           `env:"AUDIT_BUFFER_SIZE" envDefault:"1024"`
	MaxAttempts   int           `env:"AUDIT_WORKER_MAX_ATTEMPTS" envDefault:"25"`
	MaxBackoff    time.Duration `env:"AUDIT_WORKER_MAX_BACKOFF" envDefault:"60s"`
	JitterMax     time.Duration `env:"AUDIT_WORKER_JITTER_MAX" envDefault:"200ms"`
	PollTimeout   time.Duration `env:"AUDIT_WORKER_POLL_TIMEOUT" envDefault:"1s"`
	LastErrMaxLen int           `env:"AUDIT_LAST_ERROR_MAX_BYTES" envDefault:"2048"`
}

func (a *AuditOptions) Validate(redisURL string) error {
	backend := strings.ToLower(strings.TrimSpace(a.QueueBackend))
	switch backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid AUDIT_QUEUE_BACKEND=%q (expected memory|redis)", a.QueueBackend)
	}
	if backend == "redis" && redisURL == "" {
		return fmt.Errorf("REDIS_URL is required when AUDIT_QUEUE_BACKEND is 'redis'")
	}
	if a.MaxAttempts < 1 {
		return fmt.Errorf("AUDIT_WORKER_MAX_ATTEMPTS must be positive, got %d", a.MaxAttempts)
	}
	a.QueueBackend = backend
	return nil
}

type Configuration struct {
	Database   DatabaseOptions
	Prometheus PrometheusOptions
	Authz      AuthzOptions
	Audit      AuditOptions

	RedisURL         string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	MigrationsDir    string `env:"MIGRATIONS_DIR" envDefault:""` // empty uses the embedded schema
	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`
	LogPath          string `env:"LOG_PATH" envDefault:"./logs/app.log"`
	// Location used to interpret "today" in calendar computations.
	Timezone string `env:"TZ_NAME" envDefault:"UTC"`

	// RLS enforcement mode (disabled/enforce).
	RLSEnforce string `env:"RLS_ENFORCE" envDefault:"disabled"`

	location *time.Location
	logFile  *os.File
	logger   *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger
	c.Database.Opts = c.Database.ConnectionString()
	return nil
}

func (c *Configuration) validate() error {
	if err := c.Authz.Validate(); err != nil {
		return fmt.Errorf("authz configuration error: %w", err)
	}
	if err := c.Audit.Validate(c.RedisURL); err != nil {
		return fmt.Errorf("audit configuration error: %w", err)
	}
	if err := c.validateRLS(); err != nil {
		return err
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TZ_NAME=%q: %w", c.Timezone, err)
	}
	c.location = loc
	return nil
}

func (c *Configuration) validateRLS() error {
	mode := strings.ToLower(strings.TrimSpace(c.RLSEnforce))
	if mode == "" {
		mode = "disabled"
	}
	switch mode {
	case "disabled", "enforce":
	default:
		return fmt.Errorf("invalid RLS_ENFORCE=%q (expected disabled|enforce)", c.RLSEnforce)
	}
	if mode == "enforce" && strings.EqualFold(strings.TrimSpace(c.Database.User), "postgres") {
		return fmt.Errorf("RLS_ENFORCE=enforce requires a non-superuser DB_USER (postgres will bypass RLS)")
	}
	c.RLSEnforce = mode
	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
