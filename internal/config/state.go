package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// StateDirEnv overrides the state directory.
const StateDirEnv = "PBAPI_STATE_DIR"

// StateDir returns the directory for machine-local state: the call journal
// and shell history. XDG_STATE_HOME is honored, falling back to
// ~/.local/state/pbapi.
func StateDir() string {
	if dir := strings.TrimSpace(os.Getenv(StateDirEnv)); dir != "" {
		return dir
	}
	if dir := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); dir != "" {
		return filepath.Join(dir, "pbapi")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "pbapi")
	}
	return filepath.Join(os.TempDir(), "pbapi")
}

// HistoryPath returns the shell history file. Each endpoint keeps its own
// history unless the config names a file.
func (c *Config) HistoryPath(stateDir string) string {
	if c.Shell.HistoryFile != "" {
		return expandHome(c.Shell.HistoryFile)
	}
	name := slug.Make(strings.TrimPrefix(strings.TrimPrefix(c.Endpoint, "https://"), "http://"))
	if name == "" {
		name = "default"
	}
	return filepath.Join(stateDir, "history", name+".history")
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
