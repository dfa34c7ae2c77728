package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read on top of the config file
const (
	EnvSuperJobToken = "SUPERJOB_API_KEY"
	EnvLanguages     = "LANGSALARY_LANGUAGES"
)

// ErrMissingToken is returned when SuperJob is queried without an API token.
var ErrMissingToken = errors.New("superjob api token is not set (" + EnvSuperJobToken + ")")

// Config holds application configuration
type Config struct {
	Languages  []string         `yaml:"languages"`
	HeadHunter HeadHunterConfig `yaml:"headhunter"`
	SuperJob   SuperJobConfig   `yaml:"superjob"`
	MaxPages   int              `yaml:"max_pages"`
	PageDelay  time.Duration    `yaml:"page_delay"`
	Proxy      string           `yaml:"proxy"`
}

// HeadHunterConfig describes the hh.ru vacancies query
type HeadHunterConfig struct {
	BaseURL   string `yaml:"base_url"`
	Area      string `yaml:"area"`
	Period    int    `yaml:"period"`
	PerPage   int    `yaml:"per_page"`
	Currency  string `yaml:"currency"`
	UserAgent string `yaml:"user_agent"`
	Title     string `yaml:"title"`
}

// SuperJobConfig describes the SuperJob vacancies query
type SuperJobConfig struct {
	BaseURL   string `yaml:"base_url"`
	Token     string `yaml:"token"` // Prefer SUPERJOB_API_KEY env var
	Town      string `yaml:"town"`
	Catalogue string `yaml:"catalogue"`
	Period    int    `yaml:"period"`
	Count     int    `yaml:"count"`
	Currency  string `yaml:"currency"`
	Title     string `yaml:"title"`
}

// Default returns the built-in configuration: Moscow on both providers,
// developer vacancies published in the last 30 days.
func Default() *Config {
	return &Config{
		Languages: []string{
			"Python",
			"Java",
			"JavaScript",
			"C",
			"C++",
			"C#",
			"PHP",
			"Go",
		},
		HeadHunter: HeadHunterConfig{
			BaseURL:  "https://api.hh.ru/vacancies",
			Area:     "1",
			Period:   30,
			PerPage:  50,
			Currency: "RUR",
			Title:    "hh.ru Moscow",
		},
		SuperJob: SuperJobConfig{
			BaseURL:   "https://api.superjob.ru/2.0/vacancies/",
			Town:      "4",
			Catalogue: "48",
			Period:    30,
			Count:     5,
			Currency:  "rub",
			Title:     "SuperJob.ru Moscow",
		},
		MaxPages: 200,
	}
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Missing files are not an error.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// Load builds the configuration from the defaults, the YAML file at path
// (skipped when path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if token := os.Getenv(EnvSuperJobToken); token != "" {
		c.SuperJob.Token = token
	}
	if languages := os.Getenv(EnvLanguages); languages != "" {
		c.Languages = ParseLanguages(languages)
	}
}

// ParseLanguages splits a comma-separated list, dropping blanks
func ParseLanguages(s string) []string {
	var languages []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			languages = append(languages, part)
		}
	}
	return languages
}

// Validate reports the first setting that cannot produce a valid query
func (c *Config) Validate() error {
	switch {
	case len(c.Languages) == 0:
		return errors.New("config: no languages configured")
	case c.HeadHunter.PerPage <= 0:
		return fmt.Errorf("config: headhunter.per_page must be positive, got %d", c.HeadHunter.PerPage)
	case c.HeadHunter.Period <= 0:
		return fmt.Errorf("config: headhunter.period must be positive, got %d", c.HeadHunter.Period)
	case c.SuperJob.Count <= 0:
		return fmt.Errorf("config: superjob.count must be positive, got %d", c.SuperJob.Count)
	case c.SuperJob.Period <= 0:
		return fmt.Errorf("config: superjob.period must be positive, got %d", c.SuperJob.Period)
	case c.MaxPages < 0:
		return fmt.Errorf("config: max_pages must not be negative, got %d", c.MaxPages)
	case c.PageDelay < 0:
		return fmt.Errorf("config: page_delay must not be negative, got %s", c.PageDelay)
	}
	return nil
}

// SuperJobToken returns the SuperJob API token or ErrMissingToken
func (c *Config) SuperJobToken() (string, error) {
	if c.SuperJob.Token == "" {
		return "", ErrMissingToken
	}
	return c.SuperJob.Token, nil
}
