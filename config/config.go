// Package config loads the optional YAML configuration file for a test run and applies
// defaults. Command-line flags are applied on top by the caller before Validate is called.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gojob/blog-api-contract-tests/report"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL      = "http://localhost:8080"
	DefaultProbePath    = "/public/test"
	DefaultProbeTimeout = 5 * time.Second
	DefaultReportPath   = report.DefaultJSONPath
)

// TransportErrorPolicy decides what happens to a test case whose request never got a response.
type TransportErrorPolicy string

const (
	// RecordTransportErrors records the case as a failed result with no actual status.
	RecordTransportErrors TransportErrorPolicy = "record"
	// SkipTransportErrors reports the error on the console and records nothing, so the case
	// does not appear in the totals.
	SkipTransportErrors TransportErrorPolicy = "skip"
)

type Config struct {
	BaseURL         string               `yaml:"base_url" validate:"required,url"`
	ProbePath       string               `yaml:"probe_path" validate:"required,startswith=/"`
	ProbeTimeout    time.Duration        `yaml:"probe_timeout" validate:"gt=0"`
	ReportPath      string               `yaml:"report_path" validate:"required"`
	XLSXPath        string               `yaml:"xlsx_path"`
	TransportErrors TransportErrorPolicy `yaml:"transport_errors" validate:"oneof=record skip"`
	Fixtures        Fixtures             `yaml:"fixtures"`
}

// Fixtures is the data the suite sends. The defaults match a freshly started server; set
// UniqueEmail to run repeatedly against the same server.
type Fixtures struct {
	Username       string `yaml:"username" validate:"required"`
	Email          string `yaml:"email" validate:"required,email"`
	Password       string `yaml:"password" validate:"required,min=6"`
	WrongPassword  string `yaml:"wrong_password" validate:"required,nefield=Password"`
	UnknownEmail   string `yaml:"unknown_email" validate:"required,email,nefield=Email"`
	UniqueEmail    bool   `yaml:"unique_email"`
	PostTitle      string `yaml:"post_title" validate:"required"`
	PostContent    string `yaml:"post_content" validate:"required"`
	UpdatedTitle   string `yaml:"updated_title" validate:"required"`
	UpdatedContent string `yaml:"updated_content" validate:"required"`
	CommentContent string `yaml:"comment_content" validate:"required"`
	FallbackPostID int    `yaml:"fallback_post_id" validate:"gte=1"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		ProbePath:       DefaultProbePath,
		ProbeTimeout:    DefaultProbeTimeout,
		ReportPath:      DefaultReportPath,
		TransportErrors: RecordTransportErrors,
		Fixtures: Fixtures{
			Username:       "testuser",
			Email:          "test@example.com",
			Password:       "123456",
			WrongPassword:  "wrongpassword",
			UnknownEmail:   "nonexistent@example.com",
			PostTitle:      "Test post title",
			PostContent:    "This is the content of a test post",
			UpdatedTitle:   "Updated post title",
			UpdatedContent: "Updated post content",
			CommentContent: "This is a test comment",
			FallbackPostID: 1,
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field, returning one error that lists all the problems.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var problems []string
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

// ResolveFixtures returns the fixtures to use for a run. With UniqueEmail set, the user's
// email gets a random suffix in its local part, so a rerun registers a new user.
func (c *Config) ResolveFixtures() Fixtures {
	f := c.Fixtures
	if f.UniqueEmail {
		suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
		if at := strings.LastIndex(f.Email, "@"); at > 0 {
			f.Email = f.Email[:at] + "+" + suffix + f.Email[at:]
		} else {
			f.Email = f.Email + "+" + suffix
		}
	}
	return f
}
