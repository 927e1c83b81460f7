package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"cafecrawler/pkg/models"
)

const envPrefix = "CAFECRAWLER_"

// Config holds all configuration options for the crawler
type Config struct {
	// Target community and author
	Cafe CafeConfig `yaml:"cafe" json:"cafe"`

	// Crawl policy
	Crawl CrawlConfig `yaml:"crawl" json:"crawl"`

	// Export destination
	Output OutputConfig `yaml:"output" json:"output"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Retry policy for transient request failures
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Notification preferences
	Notifications NotificationConfig `yaml:"notifications" json:"notifications"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// CafeConfig identifies the community, the author and how to reach them
type CafeConfig struct {
	BaseURL        string `yaml:"base_url" json:"base_url"`
	ClubID         string `yaml:"club_id" json:"club_id"`
	AuthorID       string `yaml:"author_id" json:"author_id"`
	AuthorNickname string `yaml:"author_nickname" json:"author_nickname"`
	LoginCheckURL  string `yaml:"login_check_url" json:"login_check_url"`
	UserAgent      string `yaml:"user_agent" json:"user_agent"`
	Account        string `yaml:"account" json:"account"`
}

// CrawlConfig holds pagination and enrichment policy
type CrawlConfig struct {
	MaxPages        int           `yaml:"max_pages" json:"max_pages"`
	PeriodDays      int           `yaml:"period_days" json:"period_days"`
	IncludeComments bool          `yaml:"include_comments" json:"include_comments"`
	PageDelay       time.Duration `yaml:"page_delay" json:"page_delay"`
	LoginTimeout    time.Duration `yaml:"login_timeout" json:"login_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// OutputConfig holds the export location
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
}

// RateLimitConfig holds per-request rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// RetryConfig holds retry configuration for session requests
type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts" json:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff" json:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff" json:"max_backoff"`
	Multiplier     float64       `yaml:"multiplier" json:"multiplier"`
}

// NotificationConfig holds notification preferences
type NotificationConfig struct {
	Enabled    bool `yaml:"enabled" json:"enabled"`
	OnComplete bool `yaml:"on_complete" json:"on_complete"`
	OnError    bool `yaml:"on_error" json:"on_error"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	ExportFile string `yaml:"export_file" json:"export_file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Cafe: CafeConfig{
			BaseURL:        "https://cafe.naver.com",
			AuthorNickname: "Author",
			LoginCheckURL:  "https://cafe.naver.com/MyCafeIntro.nhn",
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			Account:        "default",
		},
		Crawl: CrawlConfig{
			MaxPages:        10,
			PeriodDays:      365,
			IncludeComments: true,
			PageDelay:       1 * time.Second,
			LoginTimeout:    10 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Output: OutputConfig{
			Directory: "naver_cafe_articles",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Retry: RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: 1 * time.Second,
			MaxBackoff:     30 * time.Second,
			Multiplier:     2.0,
		},
		Notifications: NotificationConfig{
			Enabled:    false,
			OnComplete: true,
			OnError:    true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// RunConfig projects the crawl scalars into the immutable run input
func (c *Config) RunConfig() models.RunConfig {
	return models.RunConfig{
		Community:         c.Cafe.ClubID,
		Author:            c.Cafe.AuthorID,
		AuthorDisplayName: c.Cafe.AuthorNickname,
		PageLimit:         c.Crawl.MaxPages,
		RecencyDays:       c.Crawl.PeriodDays,
		IncludeComments:   c.Crawl.IncludeComments,
		OutputDir:         c.Output.Directory,
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	setString := func(name string, dst *string) {
		if v := os.Getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) {
		v := os.Getenv(envPrefix + name)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = n
	}
	setBool := func(name string, dst *bool) {
		v := os.Getenv(envPrefix + name)
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = b
	}
	setDuration := func(name string, dst *time.Duration) {
		v := os.Getenv(envPrefix + name)
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = d
	}

	setString("BASE_URL", &c.Cafe.BaseURL)
	setString("CLUB_ID", &c.Cafe.ClubID)
	setString("AUTHOR_ID", &c.Cafe.AuthorID)
	setString("AUTHOR_NICKNAME", &c.Cafe.AuthorNickname)
	setString("USER_AGENT", &c.Cafe.UserAgent)
	setString("ACCOUNT", &c.Cafe.Account)

	setInt("MAX_PAGES", &c.Crawl.MaxPages)
	setInt("PERIOD_DAYS", &c.Crawl.PeriodDays)
	setBool("INCLUDE_COMMENTS", &c.Crawl.IncludeComments)
	setDuration("PAGE_DELAY", &c.Crawl.PageDelay)

	setString("OUTPUT_DIR", &c.Output.Directory)
	setInt("REQUESTS_PER_MINUTE", &c.RateLimit.RequestsPerMinute)
	setBool("NOTIFICATIONS_ENABLED", &c.Notifications.Enabled)

	setString("LOG_LEVEL", &c.Logging.Level)
	setString("LOG_FILE", &c.Logging.File)
	setString("LOG_EXPORT", &c.Logging.ExportFile)

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// DefaultPath is where `config init` writes and where Load looks last
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "cafecrawler", "config.yaml")
}

func (c *Config) findConfigFile() string {
	locations := []string{
		".cafecrawler.yaml",
		".cafecrawler.yml",
		DefaultPath(),
		filepath.Join(os.Getenv("HOME"), ".config", "cafecrawler", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. Club and author ids are
// checked per run so `config show` works on a partial file.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.Cafe.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, errors.New("cafe base URL must be an absolute URL"))
	}
	if c.Cafe.LoginCheckURL == "" {
		errs = append(errs, errors.New("login check URL is required"))
	}

	if c.Crawl.MaxPages < 1 {
		errs = append(errs, errors.New("max pages must be at least 1"))
	}
	if c.Crawl.PeriodDays < 0 {
		errs = append(errs, errors.New("period days cannot be negative"))
	}
	if c.Crawl.PageDelay < 0 {
		errs = append(errs, errors.New("page delay cannot be negative"))
	}
	if c.Crawl.LoginTimeout <= 0 {
		errs = append(errs, errors.New("login timeout must be positive"))
	}
	if c.Crawl.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}

	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("retry max attempts must be at least 1"))
	}
	if c.Retry.Multiplier < 1 {
		errs = append(errs, errors.New("retry multiplier must be at least 1"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	return errors.Join(errs...)
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only flags the user actually set should be present in the map.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if v, ok := flags["club"].(string); ok && v != "" {
		c.Cafe.ClubID = v
	}
	if v, ok := flags["author"].(string); ok && v != "" {
		c.Cafe.AuthorID = v
	}
	if v, ok := flags["nickname"].(string); ok && v != "" {
		c.Cafe.AuthorNickname = v
	}
	if v, ok := flags["account"].(string); ok && v != "" {
		c.Cafe.Account = v
	}
	if v, ok := flags["pages"].(int); ok {
		c.Crawl.MaxPages = v
	}
	if v, ok := flags["days"].(int); ok {
		c.Crawl.PeriodDays = v
	}
	if v, ok := flags["comments"].(bool); ok {
		c.Crawl.IncludeComments = v
	}
	if v, ok := flags["delay"].(time.Duration); ok {
		c.Crawl.PageDelay = v
	}
	if v, ok := flags["output"].(string); ok && v != "" {
		c.Output.Directory = v
	}
	if v, ok := flags["log-level"].(string); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := flags["export-logs"].(string); ok && v != "" {
		c.Logging.ExportFile = v
	}
	if v, ok := flags["notify"].(bool); ok {
		c.Notifications.Enabled = v
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".cafecrawler.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
