// Package config resolves runtime settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultUserProfile is used when no profile is given on the command line or in the environment.
const DefaultUserProfile = `a British junior Python developer and product manager who is looking to work for a startup in the UK or Europe,
preferably in a job with a focus on AI.`

// DefaultConfigFile is read when JOBHUNT_CONFIG is not set.
const DefaultConfigFile = "jobhunt.yaml"

// DefaultColumns spans the job fields plus the cover letter link. The sheet
// range defaults to SheetName!DefaultColumns.
const DefaultColumns = "A:M"

// Config holds everything the pipeline and its outer surfaces need.
type Config struct {
	GeminiAPIKey string `yaml:"-"`
	GeminiModel  string `yaml:"gemini_model"`

	SpreadsheetID    string `yaml:"spreadsheet_id"`
	SpreadsheetTitle string `yaml:"spreadsheet_title"`
	SheetName        string `yaml:"sheet_name"`
	SheetRange       string `yaml:"sheet_range"`

	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`

	CVFile       string `yaml:"cv_file"`
	TemplatesDir string `yaml:"templates_dir"`

	// Templates maps a job type ("Software Engineer") to a template path,
	// overriding the file name derived from TemplatesDir.
	Templates map[string]string `yaml:"templates"`

	UserProfile string `yaml:"user_profile"`

	Port           string        `yaml:"port"`
	MaxConcurrency int           `yaml:"max_concurrency"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	MaxPageChars   int           `yaml:"max_page_chars"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		GeminiModel:      "gemini-2.0-flash",
		SpreadsheetTitle: "Jobs List",
		SheetName:        "Sheet1",
		CredentialsFile:  "credentials.json",
		TokenFile:        "token.json",
		CVFile:           "cv.txt",
		TemplatesDir:     "letter_templates",
		UserProfile:      DefaultUserProfile,
		Port:             "8080",
		FetchTimeout:     30 * time.Second,
		MaxPageChars:     20000,
	}
}

// Load reads path (if it exists) on top of the defaults, then applies the environment.
// An empty path means DefaultConfigFile or JOBHUNT_CONFIG.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("JOBHUNT_CONFIG")
	}
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// no file, defaults only
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.SheetRange == "" && cfg.SheetName != "" {
		cfg.SheetRange = cfg.SheetName + "!" + DefaultColumns
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.GeminiModel, "GEMINI_MODEL")
	setString(&c.SpreadsheetID, "SPREADSHEET_ID")
	setString(&c.SheetName, "SHEET_NAME")
	setString(&c.SheetRange, "SHEET_RANGE")
	setString(&c.CredentialsFile, "GOOGLE_CREDENTIALS_FILE")
	setString(&c.TokenFile, "GOOGLE_TOKEN_FILE")
	setString(&c.CVFile, "CV_FILE")
	setString(&c.TemplatesDir, "TEMPLATES_DIR")
	setString(&c.UserProfile, "USER_PROFILE")
	setString(&c.Port, "PORT")

	if v := os.Getenv("MAX_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("MAX_CONCURRENCY must be a non-negative integer, got %q", v)
		}
		c.MaxConcurrency = n
	}
	if v := os.Getenv("MAX_PAGE_CHARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("MAX_PAGE_CHARS must be a positive integer, got %q", v)
		}
		c.MaxPageChars = n
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FETCH_TIMEOUT: %w", err)
		}
		c.FetchTimeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the settings every entry point needs.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is empty. Did you load the .env file?")
	}
	if c.SheetRange == "" {
		return errors.New("sheet range is empty")
	}
	return nil
}
