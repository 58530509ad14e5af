package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kai-app/api-smoke-tests/config"
	"github.com/kai-app/api-smoke-tests/framework"

	"github.com/alessio/shellescape"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"

	redactedPassword = "<redacted>"
)

type commandParams struct {
	configFile       string
	baseURL          string
	email            string
	password         string
	timeoutSeconds   float64
	withBackupImport bool
	filters          framework.RegexFilters
	format           string
	debug            bool
	debugAll         bool
	verbose          bool
	noColor          bool
}

func (p *commandParams) addFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&p.configFile, "config", "", "YAML file with base_url, email, password, timeout, with_backup_import")
	fs.StringVar(&p.baseURL, "base-url", config.DefaultBaseURL, "base URL of the KAI API (env "+config.EnvBaseURL+")")
	fs.StringVar(&p.email, "email", config.DefaultEmail, "login email (env "+config.EnvEmail+")")
	fs.StringVar(&p.password, "password", config.DefaultPassword, "login password (env "+config.EnvPassword+")")
	fs.Float64Var(&p.timeoutSeconds, "timeout", config.DefaultTimeout.Seconds(),
		"request timeout in seconds (env "+config.EnvTimeout+")")
	fs.BoolVar(&p.withBackupImport, "with-backup-import", false,
		"also import the exported backup; this overwrites server data (env "+config.EnvWithBackupImport+")")
	fs.Var(&p.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&p.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&p.format, "format", formatText, "output format (text|json)")
	fs.BoolVar(&p.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&p.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&p.verbose, "verbose", false, "log every request and response as it happens")
	fs.BoolVar(&p.noColor, "no-color", false, "disable colored status labels")
}

func (p *commandParams) validate() error {
	if p.format != formatText && p.format != formatJSON {
		return fmt.Errorf("invalid format %q: must be %s or %s", p.format, formatText, formatJSON)
	}
	return nil
}

// resolveConfig applies, in increasing order of precedence, the defaults, the config file, the
// environment, and any flags that were set explicitly.
func (p *commandParams) resolveConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (config.Config, error) {
	c := config.Default()
	var err error
	if p.configFile != "" {
		if c, err = c.WithFile(p.configFile); err != nil {
			return c, err
		}
	}
	if c, err = c.WithEnvironment(lookupEnv); err != nil {
		return c, err
	}
	fs := cmd.Flags()
	if fs.Changed("base-url") {
		c.BaseURL = p.baseURL
	}
	if fs.Changed("email") {
		c.Email = p.email
	}
	if fs.Changed("password") {
		c.Password = p.password
	}
	if fs.Changed("timeout") {
		c.Timeout = config.Seconds(p.timeoutSeconds)
	}
	if fs.Changed("with-backup-import") {
		c.IncludeBackupImport = p.withBackupImport
	}
	return c, c.Validate()
}

// reproduceCommand returns a shell command line that runs the suite again with the same
// settings and with debug output for failed tests. The password is never included.
func (p *commandParams) reproduceCommand(program string, c config.Config) string {
	var b commandBuilder
	b.add(program, "--base-url", c.BaseURL, "--email", c.Email)
	if c.Password != config.DefaultPassword {
		b.add("--password", redactedPassword)
	}
	if c.Timeout != config.DefaultTimeout {
		b.add("--timeout", strconv.FormatFloat(c.Timeout.Seconds(), 'f', -1, 64))
	}
	if c.IncludeBackupImport {
		b.add("--with-backup-import")
	}
	for _, pattern := range p.filters.MustMatch.Patterns() {
		b.add("--run", pattern)
	}
	for _, pattern := range p.filters.MustNotMatch.Patterns() {
		b.add("--skip", pattern)
	}
	if p.debugAll {
		b.add("--debug-all")
	} else {
		b.add("--debug")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
