package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/pbapi/internal/atomicfile"
)

type persistedConfig struct {
	Endpoint        *string                 `toml:"endpoint,omitempty"`
	CredentialsFile *string                 `toml:"credentials_file,omitempty"`
	Timeout         *string                 `toml:"timeout,omitempty"`
	Shell           *persistedShellSettings `toml:"shell,omitempty"`
	Log             *persistedLogSettings   `toml:"log,omitempty"`
	UI              *persistedUISettings    `toml:"ui,omitempty"`
}

type persistedShellSettings struct {
	PollInterval *string `toml:"poll_interval,omitempty"`
	PollTimeout  *string `toml:"poll_timeout,omitempty"`
	HistoryFile  *string `toml:"history_file,omitempty"`
}

type persistedLogSettings struct {
	File  *string `toml:"file,omitempty"`
	Level *string `toml:"level,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func durationPtr(d Duration) *string {
	if d.Duration == 0 && !d.set {
		return nil
	}
	s := d.Duration.String()
	return &s
}

// setters maps the dotted keys accepted by Set to the field they change.
var setters = map[string]func(c *Config, value string) error{
	"endpoint":         func(c *Config, v string) error { c.Endpoint = v; return nil },
	"credentials_file": func(c *Config, v string) error { c.CredentialsFile = v; return nil },
	"timeout":          func(c *Config, v string) error { return c.Timeout.UnmarshalText([]byte(v)) },
	"shell.poll_interval": func(c *Config, v string) error {
		return c.Shell.PollInterval.UnmarshalText([]byte(v))
	},
	"shell.poll_timeout": func(c *Config, v string) error {
		return c.Shell.PollTimeout.UnmarshalText([]byte(v))
	},
	"shell.history_file": func(c *Config, v string) error { c.Shell.HistoryFile = v; return nil },
	"log.file":           func(c *Config, v string) error { c.Log.File = v; return nil },
	"log.level": func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "", "debug", "info", "warn", "error":
			c.Log.Level = strings.ToLower(v)
			return nil
		}
		return fmt.Errorf("invalid log level %q", v)
	},
	"ui.accent": func(c *Config, v string) error { c.UI.Accent = v; return nil },
}

// Keys returns the settings accepted by Set.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set changes one setting by its dotted key, e.g. "shell.poll_interval".
func (c *Config) Set(key, value string) error {
	set, ok := setters[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return set(c, strings.TrimSpace(value))
}

// SaveTo writes the config to path atomically. Empty settings are omitted so
// that defaults keep applying.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		Endpoint:        nonEmptyPtr(cfg.Endpoint),
		CredentialsFile: nonEmptyPtr(cfg.CredentialsFile),
		Timeout:         durationPtr(cfg.Timeout),
	}

	shell := persistedShellSettings{
		PollInterval: durationPtr(cfg.Shell.PollInterval),
		PollTimeout:  durationPtr(cfg.Shell.PollTimeout),
		HistoryFile:  nonEmptyPtr(cfg.Shell.HistoryFile),
	}
	if shell != (persistedShellSettings{}) {
		out.Shell = &shell
	}
	logs := persistedLogSettings{File: nonEmptyPtr(cfg.Log.File), Level: nonEmptyPtr(cfg.Log.Level)}
	if logs != (persistedLogSettings{}) {
		out.Log = &logs
	}
	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// SetIn loads the file at path (defaults when missing), changes one setting
// and writes it back. Defaults are not persisted.
func SetIn(path, key, value string) error {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !isNotExist(err) {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	return SaveTo(path, &cfg)
}
