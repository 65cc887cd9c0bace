package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/pbapi/internal/helptext"
	"github.com/aidanlsb/pbapi/internal/shell"
	"github.com/aidanlsb/pbapi/internal/ui"
)

type shellOptions struct {
	configPath string
	noWait     bool
	debug      bool
}

func bindShellFlags(fs *pflag.FlagSet, opts *shellOptions) {
	fs.StringVar(&opts.configPath, "config", "", "Path to config file")
	fs.BoolVar(&opts.noWait, "no-wait", false, "Start with waiting for the data center turned off")
	fs.BoolVar(&opts.debug, "debug", false, "Log requests and responses to stderr")
}

func newShellCommand(app *App) *cobra.Command {
	var opts shellOptions
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Operations are typed without the program
name and credentials, which are read from ./default.auth or the configured
credentials_file.

Type "use <dcid>" to make a data center the default target of every
operation. While a target is set and waiting is on, the shell waits for the
data center to become available after each change. Type "help" for the
list of commands.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runShell(cmd, opts)
		},
	}
	bindShellFlags(cmd.Flags(), &opts)
	return cmd
}

func (a *App) runShell(cmd *cobra.Command, opts shellOptions) error {
	env, err := a.open(opts.configPath, opts.debug)
	if err != nil {
		return err
	}
	defer env.Close()

	help, err := helptext.Shell()
	if err != nil {
		return err
	}

	in, out, closeInput, err := a.shellInput(env, help)
	if err != nil {
		return err
	}
	defer closeInput()

	session := shell.New(shell.Options{
		Dispatcher: env.dispatcher(),
		Out:        out,
		Poller: &shell.Poller{
			Interval: env.cfg.Shell.PollInterval.Duration,
			Timeout:  env.cfg.Shell.PollTimeout.Duration,
			Out:      out,
		},
		Help:   help,
		Width:  ui.NewDisplayContext(a.stdout()).AvailableWidth(0),
		Logger: env.logger,
		NoWait: opts.noWait,
	})
	return session.Run(cmd.Context(), in, shell.InterruptibleCommand)
}

// shellInput returns a line editor when stdin is a terminal and a plain
// line reader otherwise, so that scripts can be piped in.
func (a *App) shellInput(env *environment, help *helptext.Doc) (shell.LineReader, io.Writer, func(), error) {
	if !isTerminal(a.stdin()) {
		return shell.NewScript(a.stdin()), a.stdout(), func() {}, nil
	}

	historyFile := env.cfg.HistoryPath(env.stateDir)
	if err := os.MkdirAll(filepath.Dir(historyFile), 0o755); err != nil {
		env.logger.Warn("shell history disabled", "error", err)
		historyFile = ""
	}
	t, err := shell.NewTerminal(shell.TerminalOptions{
		HistoryFile: historyFile,
		Completer:   &shell.Completer{Registry: env.dispatcher().Operations(), Topics: help.Topics()},
		Stdin:       a.stdin(),
		Stdout:      a.stdout(),
		Stderr:      a.stderr(),
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return t, t.Stdout(), func() { t.Close() }, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
