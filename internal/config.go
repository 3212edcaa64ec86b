package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	MockAPI MockAPIConfig `mapstructure:"mock_api"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig points the console at the backend it administers.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig locates the local sqlite file holding the persisted
// token/username/role triple.
type SessionConfig struct {
	StorePath string `mapstructure:"store_path"`
}

// MockAPIConfig configures the bundled development backend.
type MockAPIConfig struct {
	Port              int           `mapstructure:"port"`
	DatabasePath      string        `mapstructure:"database_path"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- ENV LOADING -----------------

// LoadConfigFromEnv builds a Config purely from environment variables, for
// containerized deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://127.0.0.1:5000"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 15*time.Second),
		},
		Session: SessionConfig{
			StorePath: getEnv("SESSION_STORE_PATH", defaultSessionPath()),
		},
		MockAPI: MockAPIConfig{
			Port:              getEnvAsInt("MOCK_API_PORT", 5000),
			DatabasePath:      getEnv("MOCK_API_DATABASE_PATH", "chemconsole-mock.db"),
			JWTSecret:         getEnv("MOCK_API_JWT_SECRET", ""),
			TokenTTL:          getEnvAsDuration("MOCK_API_TOKEN_TTL", 12*time.Hour),
			ReadHeaderTimeout: getEnvAsDuration("MOCK_API_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("MOCK_API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getEnvAsDuration("MOCK_API_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("MOCK_API_IDLE_TIMEOUT", 60*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func defaultSessionPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/chemconsole/session.db"
	}
	return "chemconsole-session.db"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("api config: %v", err))
	}

	if err := c.MockAPI.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("mock_api config: %v", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %s: %w", c.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", parsed.Scheme)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

func (c *MockAPIConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Level)
	}
	switch c.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	return nil
}
