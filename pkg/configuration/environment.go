package configuration

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nimbusdesk/nimbusdesk/pkg/logging"
)

const Production = "production"

// Cache storage backends.
const (
	CacheStorageMemory = "memory"
	CacheStorageRedis  = "redis"
)

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fs.FileExists(file) {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"nimbusdesk"`
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

type CacheOptions struct {
	Storage    string `env:"CACHE_STORAGE_TYPE" envDefault:"memory"` // memory or redis
	TTLSeconds int    `env:"CACHE_STORAGE_TTL" envDefault:"3600"`
	RedisURL   string `env:"REDIS_URL"`
}

// Validate checks the cache storage configuration for startup errors.
func (c *CacheOptions) Validate() error {
	switch c.Storage {
	case CacheStorageMemory:
	case CacheStorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("cache RedisURL is required when Storage is 'redis'")
		}
	default:
		return fmt.Errorf("cache Storage must be 'memory' or 'redis', got '%s'", c.Storage)
	}
	if c.TTLSeconds <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %d", c.TTLSeconds)
	}
	return nil
}

// TTL converts the configured second-granularity TTL to a duration.
func (c *CacheOptions) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type FrontOptions struct {
	Protocol         string `env:"FRONT_PROTOCOL" envDefault:"http"`
	Domain           string `env:"FRONT_DOMAIN"`
	Port             string `env:"FRONT_PORT"`
	DefaultSubdomain string `env:"DEFAULT_SUBDOMAIN" envDefault:"app"`
}

func (f *FrontOptions) Validate() error {
	switch f.Protocol {
	case "http", "https":
	default:
		return fmt.Errorf("front Protocol must be 'http' or 'https', got '%s'", f.Protocol)
	}
	return nil
}

type CloudflareOptions struct {
	APIURL        string `env:"CLOUDFLARE_API_URL" envDefault:"https://api.cloudflare.com/client/v4"`
	APIKey        string `env:"CLOUDFLARE_API_KEY"`
	ZoneID        string `env:"CLOUDFLARE_ZONE_ID"`
	WebhookSecret string `env:"CLOUDFLARE_WEBHOOK_SECRET"`
}

type RateLimitOptions struct {
	Enabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	GlobalRPS int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"1000"`
	Storage   string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL  string `env:"RATE_LIMIT_REDIS_URL"`
}

func (r *RateLimitOptions) Validate() error {
	if r.GlobalRPS < 0 {
		return fmt.Errorf("rate limit GlobalRPS must be non-negative, got %d", r.GlobalRPS)
	}
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit Storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return fmt.Errorf("rate limit RedisURL is required when Storage is 'redis'")
	}
	return nil
}

type Configuration struct {
	Database   DatabaseOptions
	Cache      CacheOptions
	Front      FrontOptions
	Cloudflare CloudflareOptions
	RateLimit  RateLimitOptions

	IsMultiWorkspaceEnabled bool `env:"IS_MULTIWORKSPACE_ENABLED" envDefault:"false"`

	ServerURL        string `env:"SERVER_URL" envDefault:"http://localhost:3200"`
	ServerPort       int    `env:"PORT" envDefault:"3200"`
	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string `env:"-"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`
	LogPath          string `env:"LOG_PATH" envDefault:"./logs/app.log"`
	// Server will look for this header in the request, if it's not present, it will generate a random uuidv4
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
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

// BaseFrontURL composes the platform's front URL from the configured protocol,
// domain and port. When no front domain is configured the authority of the
// configured server URL is used instead.
func (c *Configuration) BaseFrontURL() (*url.URL, error) {
	if c.Front.Domain == "" {
		u, err := url.Parse(c.ServerURL)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_URL %q: %w", c.ServerURL, err)
		}
		return &url.URL{Scheme: u.Scheme, Host: u.Host}, nil
	}
	host := c.Front.Domain
	if c.Front.Port != "" {
		host = host + ":" + c.Front.Port
	}
	return &url.URL{Scheme: c.Front.Protocol, Host: host}, nil
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

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache configuration error: %w", err)
	}
	if err := c.Front.Validate(); err != nil {
		return fmt.Errorf("front configuration error: %w", err)
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit configuration error: %w", err)
	}
	if _, err := c.BaseFrontURL(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}
	c.GoAppEnvironment = strings.ToLower(strings.TrimSpace(c.GoAppEnvironment))

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
