// Package config resolves the settings for a smoke test run from defaults, an optional YAML
// file, and environment variables. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL  = "http://localhost:8080"
	DefaultEmail    = "owner@kai.local"
	DefaultPassword = "secret123"
	DefaultTimeout  = time.Second * 10

	EnvBaseURL          = "KAI_BASE_URL"
	EnvEmail            = "KAI_EMAIL"
	EnvPassword         = "KAI_PASSWORD"
	EnvTimeout          = "KAI_TIMEOUT"
	EnvWithBackupImport = "KAI_WITH_BACKUP_IMPORT"
)

// Config is the resolved configuration. It is passed by value and never modified once the
// run has started.
type Config struct {
	BaseURL  string
	Email    string
	Password string
	Timeout  time.Duration

	// IncludeBackupImport enables the backup import test, which overwrites the server's data
	// with the backup it just exported.
	IncludeBackupImport bool
}

// fileConfig is the YAML representation. Pointer fields distinguish "absent" from zero.
type fileConfig struct {
	BaseURL          *string  `yaml:"base_url"`
	Email            *string  `yaml:"email"`
	Password         *string  `yaml:"password"`
	Timeout          *float64 `yaml:"timeout"`
	WithBackupImport *bool    `yaml:"with_backup_import"`
}

func Default() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Email:    DefaultEmail,
		Password: DefaultPassword,
		Timeout:  DefaultTimeout,
	}
}

// WithFile returns a copy of c with any settings present in the YAML file at path applied.
func (c Config) WithFile(path string) (Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("could not read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return c, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	if fc.BaseURL != nil {
		c.BaseURL = *fc.BaseURL
	}
	if fc.Email != nil {
		c.Email = *fc.Email
	}
	if fc.Password != nil {
		c.Password = *fc.Password
	}
	if fc.Timeout != nil {
		c.Timeout = Seconds(*fc.Timeout)
	}
	if fc.WithBackupImport != nil {
		c.IncludeBackupImport = *fc.WithBackupImport
	}
	return c, nil
}

// WithEnvironment returns a copy of c with any settings present in the environment applied.
// If lookup is nil, os.LookupEnv is used.
func (c Config) WithEnvironment(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvEmail); ok && v != "" {
		c.Email = v
	}
	if v, ok := lookup(EnvPassword); ok && v != "" {
		c.Password = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = Seconds(secs)
	}
	if v, ok := lookup(EnvWithBackupImport); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s %q: %w", EnvWithBackupImport, v, err)
		}
		c.IncludeBackupImport = enabled
	}
	return c, nil
}

// Validate checks that the configuration can be used for a run.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be greater than zero")
	}
	return nil
}

// Seconds converts a number of seconds, possibly fractional, to a Duration.
func Seconds(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
