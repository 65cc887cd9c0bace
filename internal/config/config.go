// Package config handles the pbapi configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/pbapi/internal/api"
	"github.com/aidanlsb/pbapi/internal/atomicfile"
)

// EndpointEnv overrides the configured endpoint.
const EndpointEnv = "PBAPI_ENDPOINT"

// PathEnv names the config file when no path is given explicitly.
const PathEnv = "PBAPI_CONFIG"

// Defaults applied to settings the file leaves empty.
const (
	DefaultTimeout      = 60 * time.Second
	DefaultPollInterval = time.Second
	DefaultPollTimeout  = 10 * time.Minute
	DefaultLogLevel     = "info"
)

// Config represents the pbapi configuration.
type Config struct {
	// Endpoint is the base URL of the service.
	Endpoint string `toml:"endpoint"`

	// CredentialsFile is an auth file used when no credentials are given on
	// the command line.
	CredentialsFile string `toml:"credentials_file"`

	// Timeout bounds a single remote call.
	Timeout Duration `toml:"timeout"`

	Shell ShellConfig `toml:"shell"`
	Log   LogConfig   `toml:"log"`
	UI    UIConfig    `toml:"ui"`
}

// ShellConfig configures the interactive shell.
type ShellConfig struct {
	// PollInterval is the delay between readiness checks.
	PollInterval Duration `toml:"poll_interval"`

	// PollTimeout gives up waiting for a data center after this long. "0s"
	// waits without a deadline.
	PollTimeout Duration `toml:"poll_timeout"`

	// HistoryFile overrides the per-endpoint line history file.
	HistoryFile string `toml:"history_file"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// File receives logs, rotated, in addition to stderr.
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for headers and the prompt.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Duration is a time.Duration written as text ("1s", "10m") in the file.
// An explicit "0s" is kept apart from an absent setting.
type Duration struct {
	time.Duration
	set bool
}

// IsSet reports whether the duration was given explicitly.
func (d Duration) IsSet() bool {
	return d.set
}

// UnmarshalText parses a Go duration string. An empty string clears the
// setting.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*d = Duration{}
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if v < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", s)
	}
	d.Duration = v
	d.set = true
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ApplyDefaults fills empty settings and applies environment overrides.
func (c *Config) ApplyDefaults() {
	if env := strings.TrimSpace(os.Getenv(EndpointEnv)); env != "" {
		c.Endpoint = env
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		c.Endpoint = api.DefaultEndpoint
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	if c.Timeout.Duration == 0 {
		c.Timeout.Duration = DefaultTimeout
	}
	if c.Shell.PollInterval.Duration == 0 {
		c.Shell.PollInterval.Duration = DefaultPollInterval
	}
	// "0s" disables the poll deadline.
	if !c.Shell.PollTimeout.IsSet() {
		c.Shell.PollTimeout = Duration{Duration: DefaultPollTimeout}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadPath(DefaultPath())
}

// LoadPath loads path, or returns defaults when it does not exist.
func LoadPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown setting %q in config %s", undecoded[0].String(), path)
	}
	config.ApplyDefaults()
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/pbapi/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "pbapi", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "pbapi", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// ResolvePath returns explicit when set, then $PBAPI_CONFIG, then
// DefaultPath.
func ResolvePath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	if env := strings.TrimSpace(os.Getenv(PathEnv)); env != "" {
		return env
	}
	return DefaultPath()
}

const defaultConfig = `# pbapi configuration

# Service endpoint (PBAPI_ENDPOINT overrides this)
# endpoint = "https://api.profitbricks.com/1.1"

# Auth file with the username on the first line and the password on the
# second, used when -u/-p/-auth are not given.
# credentials_file = "~/.config/pbapi/default.auth"

# Per-call timeout
# timeout = "60s"

# [shell]
# poll_interval = "1s"
# poll_timeout = "10m"
# history_file = ""

# [log]
# file = ""      # rotated log file, in addition to stderr
# level = "info" # debug, info, warn or error

# Optional UI accent color for headers and the prompt.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

// CreateDefault creates a commented config file at path if it doesn't exist.
// It reports whether the file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := atomicfile.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// CredentialsPath returns CredentialsFile with a leading "~" expanded.
func (c *Config) CredentialsPath() string {
	return expandHome(c.CredentialsFile)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
