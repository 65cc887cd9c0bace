package cli

import (
	"io"
	"log/slog"

	"github.com/aidanlsb/pbapi/internal/api"
	"github.com/aidanlsb/pbapi/internal/args"
	"github.com/aidanlsb/pbapi/internal/commands"
	"github.com/aidanlsb/pbapi/internal/config"
	"github.com/aidanlsb/pbapi/internal/credentials"
	"github.com/aidanlsb/pbapi/internal/dispatch"
	"github.com/aidanlsb/pbapi/internal/exitcode"
	"github.com/aidanlsb/pbapi/internal/journal"
	"github.com/aidanlsb/pbapi/internal/logging"
	"github.com/aidanlsb/pbapi/internal/ui"
)

// environment is what a command needs beyond its arguments: configuration,
// logging and the call journal.
type environment struct {
	cfg      *config.Config
	stateDir string
	logger   *slog.Logger
	journal  *journal.Journal

	closers []io.Closer
}

// open loads the configuration at configPath (resolved when empty) and
// starts logging. A journal that cannot be opened is disabled with a
// warning.
func (a *App) open(configPath string, debug bool) (*environment, error) {
	path := config.ResolvePath(configPath)
	cfg, err := config.LoadPath(path)
	if err != nil {
		return nil, exitcode.Usagef("%v", err)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Debug:  debug,
		Stderr: a.stderr(),
	})
	if err != nil {
		return nil, exitcode.Usagef("%v", err)
	}

	env := &environment{
		cfg:      cfg,
		stateDir: config.StateDir(),
		logger:   logger,
		closers:  []io.Closer{logCloser},
	}
	logger.Debug("loaded config", "path", path, "endpoint", cfg.Endpoint)
	if cfg.UI.Accent != "" && !ui.ConfigureAccent(cfg.UI.Accent) {
		logger.Warn("ignoring invalid accent color", "accent", cfg.UI.Accent)
	}

	j, err := journal.Open(journal.DefaultPath(env.stateDir))
	if err != nil {
		logger.Warn("call journal disabled", "error", err)
	} else {
		env.journal = j
		env.closers = append(env.closers, j)
	}
	return env, nil
}

// Close releases the journal and the log file.
func (e *environment) Close() error {
	var first error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// dispatcher returns a dispatcher talking to the configured endpoint.
func (e *environment) dispatcher() *dispatch.Dispatcher {
	fallback := []string{credentials.DefaultFile}
	if p := e.cfg.CredentialsPath(); p != "" {
		fallback = append(fallback, p)
	}
	return &dispatch.Dispatcher{
		Registry:  commands.Default,
		NewClient: e.clientFactory(),
		Journal:   e.journal,
		Logger:    e.logger,
		Parse:     args.Options{FallbackAuthFiles: fallback},
	}
}

func (e *environment) clientFactory() dispatch.ClientFactory {
	return func(creds credentials.Credentials, debug bool) dispatch.Remote {
		opts := []api.Option{api.WithTimeout(e.cfg.Timeout.Duration)}
		if debug {
			opts = append(opts, api.WithLogger(e.logger))
		}
		return api.NewClient(e.cfg.Endpoint, creds, opts...)
	}
}
