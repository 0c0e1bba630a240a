package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/OFFIS-RIT/wikigraph/internal/util"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "https://en.wikipedia.org/wiki/"
	DefaultUserAgent = "CompanyKnowledgeGraphExplorer/1.0 (https://example.com/contact; your.email@example.com)"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type LogConfig struct {
	Debug  bool   `yaml:"debug"`
	Format string `yaml:"format"`
}

type WikiConfig struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTries  int           `yaml:"max_tries"`
}

type CrawlConfig struct {
	DefaultDepth int           `yaml:"default_depth"`
	MaxItems     int           `yaml:"max_items"`
	Delay        time.Duration `yaml:"delay"`
}

// Config is the process-wide configuration shared by the server and the CLI.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Wiki   WikiConfig   `yaml:"wiki"`
	Crawl  CrawlConfig  `yaml:"crawl"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Log:    LogConfig{Format: "text"},
		Wiki: WikiConfig{
			BaseURL:   DefaultBaseURL,
			UserAgent: DefaultUserAgent,
			Timeout:   5 * time.Second,
			MaxTries:  1,
		},
		Crawl: CrawlConfig{
			DefaultDepth: 2,
			MaxItems:     300,
			Delay:        100 * time.Millisecond,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty or the file does not exist) and finally the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(file, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = util.GetEnvString("PORT", c.Server.Port)
	c.Log.Debug = util.GetEnvBool("DEBUG", c.Log.Debug)
	c.Log.Format = util.GetEnvString("LOG_FORMAT", c.Log.Format)

	c.Wiki.BaseURL = util.GetEnvString("WIKI_BASE_URL", c.Wiki.BaseURL)
	c.Wiki.UserAgent = util.GetEnvString("WIKI_USER_AGENT", c.Wiki.UserAgent)
	c.Wiki.Timeout = util.GetEnvDuration("FETCH_TIMEOUT", c.Wiki.Timeout)
	c.Wiki.MaxTries = int(util.GetEnvNumeric("FETCH_MAX_TRIES", c.Wiki.MaxTries))

	c.Crawl.DefaultDepth = int(util.GetEnvNumeric("CRAWL_DEFAULT_DEPTH", c.Crawl.DefaultDepth))
	c.Crawl.MaxItems = int(util.GetEnvNumeric("CRAWL_MAX_ITEMS", c.Crawl.MaxItems))
	c.Crawl.Delay = util.GetEnvDuration("CRAWL_DELAY", c.Crawl.Delay)
}

func (c Config) Validate() error {
	if c.Wiki.BaseURL == "" {
		return errors.New("wiki.base_url must not be empty")
	}
	if c.Wiki.Timeout <= 0 {
		return fmt.Errorf("wiki.timeout must be positive, got %s", c.Wiki.Timeout)
	}
	if c.Crawl.DefaultDepth < 0 {
		return fmt.Errorf("crawl.default_depth must not be negative, got %d", c.Crawl.DefaultDepth)
	}
	if c.Crawl.MaxItems <= 0 {
		return fmt.Errorf("crawl.max_items must be positive, got %d", c.Crawl.MaxItems)
	}
	if c.Crawl.Delay < 0 {
		return fmt.Errorf("crawl.delay must not be negative, got %s", c.Crawl.Delay)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
