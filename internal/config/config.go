// Package config loads todos settings from TOML files and the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Makepad-fr/todos/internal/viewmodel"
)

const (
	// DefaultEndpoint is the public fixture the list is seeded from.
	DefaultEndpoint = "https://my-json-server.typicode.com/EnkiGroup/DesafioReactFrontendJunior2024/todos"
	DefaultTimeout  = "10s"
	DefaultTheme    = "classic"
	DefaultLogLevel = "info"

	appName         = "todos"
	userConfigName  = "config.toml"
	projectFileName = "todos.toml"
)

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

// Config is the merged configuration. Field tags are the TOML keys.
type Config struct {
	Endpoint  string `toml:"endpoint"`
	Timeout   string `toml:"timeout"`
	SeedFile  string `toml:"seed_file"`
	IDPolicy  string `toml:"id_policy"`
	Theme     string `toml:"theme"`
	NoColor   bool   `toml:"no_color"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`

	// Files records which config files were read, in order.
	Files []string `toml:"-"`
}

// Load reads, in order: defaults, the user config file, ./todos.toml and
// TODOS_* environment variables. Later sources override earlier ones.
// Flags are applied by the caller, which should call Validate afterwards.
func Load() (*Config, error) {
	return LoadFrom(findUserConfigFile(), findProjectConfigFile())
}

// LoadFrom is Load with explicit file paths. Empty paths are skipped.
func LoadFrom(userFile, projectFile string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	for _, p := range []string{userFile, projectFile} {
		if p == "" {
			continue
		}
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", p, err)
		}
		cfg.Files = append(cfg.Files, p)
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Endpoint = DefaultEndpoint
	cfg.Timeout = DefaultTimeout
	cfg.IDPolicy = string(viewmodel.IDPolicyLength)
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = "text"
	cfg.LogFile = defaultLogFile()
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODOS_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TODOS_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
	if v := os.Getenv("TODOS_SEED_FILE"); v != "" {
		cfg.SeedFile = v
	}
	if v := os.Getenv("TODOS_ID_POLICY"); v != "" {
		cfg.IDPolicy = v
	}
	if v := os.Getenv("TODOS_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODOS_NO_COLOR"); v != "" {
		cfg.NoColor = boolFromString(v)
	}
	// NO_COLOR is honoured the same way most terminal tools do.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.NoColor = true
	}
	if v := os.Getenv("TODOS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODOS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TODOS_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}

// Validate checks values that cannot be caught while decoding.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an http(s) URL, got %q", c.Endpoint)
	}
	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("timeout must be a positive duration, got %q", c.Timeout)
	}
	if _, err := viewmodel.ParseIDPolicy(c.IDPolicy); err != nil {
		return err
	}
	if !validTheme(c.Theme) {
		return fmt.Errorf("unknown theme %q (want %s)", c.Theme, strings.Join(Themes, ", "))
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("unknown log format %q (want text, json or logfmt)", c.LogFormat)
	}
	return nil
}

// TimeoutDuration returns Timeout parsed, falling back to the default.
func (c *Config) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultTimeout)
	return d
}

// Policy returns the parsed id policy.
func (c *Config) Policy() viewmodel.IDPolicy {
	p, err := viewmodel.ParseIDPolicy(c.IDPolicy)
	if err != nil {
		return viewmodel.IDPolicyLength
	}
	return p
}

// SeedPath returns SeedFile with ~ and env vars expanded.
func (c *Config) SeedPath() string { return expandPath(c.SeedFile) }

// LogPath returns LogFile with ~ and env vars expanded.
func (c *Config) LogPath() string { return expandPath(c.LogFile) }

func validTheme(name string) bool {
	for _, t := range Themes {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

func findUserConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	p := filepath.Join(dir, appName, userConfigName)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func findProjectConfigFile() string {
	if _, err := os.Stat(projectFileName); err == nil {
		return projectFileName
	}
	return ""
}

func defaultLogFile() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		dir = filepath.Join("~", ".local", "state")
	}
	return filepath.Join(dir, appName, appName+".log")
}

// expandPath expands ~/ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
