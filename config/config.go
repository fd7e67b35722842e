package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/domain"
)

const (
	defaultListen   = ":8080"
	defaultLogLevel = "info"
)

type Config struct {
	Listen      string
	LogLevel    string
	Credentials domain.Credentials
	Client      domain.ClientConfig
}

type ConfigTmp struct {
	Listen            string        `yaml:"listen"`
	LogLevel          string        `yaml:"log_level"`
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxRetriesStr     string        `yaml:"max_retries,omitempty"`
	AccountID         string        `yaml:"account_id"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// Get reads configuration from the command line, an optional yaml file and the
// environment. Credentials only come from the environment (or a .env file).
func Get() (Config, error) {
	return Load(os.Args[1:])
}

// Load is Get with explicit arguments. Precedence, lowest first:
// defaults, yaml file, environment, flags.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("quasarfx", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to yaml config")
	envFile := fs.String("env-file", "", "path to a .env file, overrides the process environment")
	listen := fs.String("listen", "", "HTTP listen address, example: :8080")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *envFile != "" {
		if err := godotenv.Overload(*envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", *envFile, err)
		}
	} else {
		// best-effort: a missing .env falls back to the real environment
		_ = godotenv.Load()
	}

	cfg := Config{
		Listen:   defaultListen,
		LogLevel: defaultLogLevel,
		Client:   domain.DefaultClientConfig(),
	}

	if *configPath != "" {
		if err := applyYaml(&cfg, *configPath); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if *listen != "" {
		cfg.Listen = *listen
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyYaml(cfg *Config, path string) error {
	var c ConfigTmp

	f, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(f, &c); err != nil {
		return fmt.Errorf("incorrect yaml config %s, error: %w", path, err)
	}

	if c.Listen != "" {
		cfg.Listen = c.Listen
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.BaseURL != "" {
		cfg.Client.BaseURL = c.BaseURL
	}
	if c.Timeout != 0 {
		cfg.Client.Timeout = c.Timeout
	}
	if c.MaxRetriesStr != "" {
		maxRetries, err := strconv.Atoi(c.MaxRetriesStr)
		if err != nil {
			return fmt.Errorf("incorrect 'max_retries' param in yaml config (must be an integer), error: %w", err)
		}
		cfg.Client.MaxRetries = maxRetries
	}
	if c.AccountID != "" {
		cfg.Client.AccountID = c.AccountID
	}
	if c.RequestsPerSecond != 0 {
		cfg.Client.RequestsPerSecond = c.RequestsPerSecond
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Credentials = domain.Credentials{
		Username: os.Getenv("USERNAME"),
		Password: os.Getenv("PASSWORD"),
		AppKey:   os.Getenv("APP_KEY"),
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.Client.BaseURL = v
	}
	if v := os.Getenv("ACCOUNT_ID"); v != "" {
		cfg.Client.AccountID = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Listen = v
	}
}

func (c Config) validate() error {
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s, must be positive", c.Client.Timeout)
	}
	if c.Client.MaxRetries < 0 {
		return fmt.Errorf("invalid max_retries %d, must not be negative", c.Client.MaxRetries)
	}
	if c.Client.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid requests_per_second %v, must not be negative", c.Client.RequestsPerSecond)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}
