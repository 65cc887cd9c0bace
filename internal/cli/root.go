// Package cli implements the command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/pbapi/internal/commands"
	"github.com/aidanlsb/pbapi/internal/exitcode"
)

// App holds the process streams. The zero value uses the os streams and
// returns exit codes instead of exiting.
type App struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
	// Exit ends the process after an error has been reported.
	Exit func(code int)
}

func (a *App) stdin() io.ReadCloser {
	if a.Stdin == nil {
		return os.Stdin
	}
	return a.Stdin
}

func (a *App) stdout() io.Writer {
	if a.Stdout == nil {
		return os.Stdout
	}
	return a.Stdout
}

func (a *App) stderr() io.Writer {
	if a.Stderr == nil {
		return os.Stderr
	}
	return a.Stderr
}

const rootLong = `pbapi calls one operation of the ProfitBricks cloud API and prints the
result.

  pbapi [-u <user> -p [<password>] | -auth <file>] [-s] [-debug] <operation> [-flag value ...]

Without -u/-p or -auth, credentials are read from ./default.auth or the
configured credentials_file. Run "pbapi @list" to see every operation and
"pbapi shell" for an interactive session.

Exit codes: 0 success, 1 invalid arguments, 2 authentication failure or
unknown operation, 3 remote failure.`

// NewRootCommand returns the pbapi command tree. Arguments of the root
// command are not parsed by cobra: they use the single-dash syntax of the
// operations.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:                "pbapi <operation> [-flag value ...]",
		Short:              "Call the ProfitBricks cloud API",
		Long:               rootLong,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		ValidArgsFunction:  commands.CompletionFunc(commands.Default),
		RunE: func(cmd *cobra.Command, argv []string) error {
			return app.runOperation(cmd.Context(), argv)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return exitcode.Usagef("%v", err)
	})
	root.SetIn(app.stdin())
	root.SetOut(app.stdout())
	root.SetErr(app.stderr())

	root.AddCommand(newShellCommand(app))
	root.AddCommand(newVersionCommand(app))
	root.AddCommand(newConfigCommand(app))
	return root
}

// usageArgs reports argument count errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return exitcode.Usagef("%v", err)
		}
		return nil
	}
}

// Run executes argv (without the program name) and reports the outcome.
func (a *App) Run(ctx context.Context, argv []string) int {
	root := NewRootCommand(a)
	// cobra falls back to os.Args for nil.
	if argv == nil {
		argv = []string{}
	}
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)
	return a.report(err)
}

func (a *App) report(err error) int {
	t := &exitcode.Terminator{Out: a.stdout(), Exit: a.Exit}
	if err == nil {
		return exitcode.OK
	}
	return t.Report(err)
}

func (a *App) runOperation(ctx context.Context, argv []string) error {
	env, err := a.open("", debugRequested(argv))
	if err != nil {
		return err
	}
	defer env.Close()

	d := env.dispatcher()
	d.Footer = true
	d.EchoArgv = true
	return d.Run(ctx, argv, a.stdout())
}

// debugRequested reports whether argv carries -debug. It is checked before
// parsing so that logging covers the whole invocation.
func debugRequested(argv []string) bool {
	for _, arg := range argv {
		if strings.EqualFold(arg, "-debug") {
			return true
		}
	}
	return false
}

// Execute runs the one-shot CLI with the process arguments.
func Execute() int {
	app := &App{Exit: os.Exit}
	return app.Run(context.Background(), os.Args[1:])
}

// ExecuteShell runs the interactive shell with the process arguments, which
// may only carry shell flags.
func ExecuteShell() int {
	app := &App{Exit: os.Exit}
	return app.Run(context.Background(), append([]string{"shell"}, os.Args[1:]...))
}
