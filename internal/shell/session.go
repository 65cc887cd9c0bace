// Package shell implements the interactive pbcli session: a read-eval loop
// over the same operations as the one-shot CLI, with a default data center,
// waiting for that data center after changes, and local meta-commands.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/aidanlsb/pbapi/internal/commands"
	"github.com/aidanlsb/pbapi/internal/dispatch"
	"github.com/aidanlsb/pbapi/internal/exitcode"
	"github.com/aidanlsb/pbapi/internal/helptext"
	"github.com/aidanlsb/pbapi/internal/logging"
	"github.com/aidanlsb/pbapi/internal/ui"
)

// Version is shown in the about banner.
const Version = "0.1"

// DefaultPrompt is shown while no data center is in use.
const DefaultPrompt = "ProfitBricks> "

// Options configures a Session.
type Options struct {
	Dispatcher *dispatch.Dispatcher
	Out        io.Writer
	Poller     *Poller
	Help       *helptext.Doc
	// Width is the terminal width used to render help.
	Width  int
	Logger *slog.Logger
	// Observer is told about every state change.
	Observer func(State)
	// NoWait starts the session with waiting turned off.
	NoWait bool
}

// Session runs commands typed by a user.
type Session struct {
	dispatcher *dispatch.Dispatcher
	out        io.Writer
	poller     *Poller
	help       *helptext.Doc
	width      int
	logger     *slog.Logger
	observer   func(State)

	context  *Context
	reporter *exitcode.Recorder
	state    State
}

// New returns a session.
func New(opts Options) *Session {
	s := &Session{
		dispatcher: opts.Dispatcher,
		out:        opts.Out,
		poller:     opts.Poller,
		help:       opts.Help,
		width:      opts.Width,
		logger:     opts.Logger,
		observer:   opts.Observer,
		context:    NewContext(),
		reporter:   &exitcode.Recorder{Out: opts.Out},
	}
	if s.poller == nil {
		s.poller = &Poller{Out: opts.Out}
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if opts.NoWait {
		s.context.SetWait(false)
	}
	return s
}

// Context returns the session context.
func (s *Session) Context() *Context { return s.context }

// State returns the current state.
func (s *Session) State() State { return s.state }

// LastExitCode returns the exit code of the last command and resets it.
func (s *Session) LastExitCode() int { return s.reporter.Last() }

// Prompt returns the prompt for the current context, in bold.
func (s *Session) Prompt() string {
	text := DefaultPrompt
	if dc := s.context.Target(); dc != "" {
		text = dc + "> "
	}
	return ui.Bold.Render(text)
}

func (s *Session) setState(st State) {
	s.state = st
	if s.observer != nil {
		s.observer(st)
	}
}

// Execute runs one line. It reports true when the session should end.
func (s *Session) Execute(ctx context.Context, line string) bool {
	tokens, err := shellwords.Parse(line)
	if err != nil {
		s.reporter.Report(exitcode.Usagef("%v", err))
		return false
	}
	if len(tokens) == 0 {
		return false
	}

	if meta, ok := metaCommands[strings.ToLower(tokens[0])]; ok {
		s.setState(DispatchingMeta)
		done := meta(s, tokens[1:])
		if done {
			s.setState(Terminated)
			return true
		}
		fmt.Fprintln(s.out)
		s.setState(ReadingLine)
		return false
	}

	defer s.setState(ReadingLine)
	s.setState(DispatchingRemote)
	s.runOperation(ctx, tokens)
	return false
}

func (s *Session) runOperation(ctx context.Context, tokens []string) {
	target := s.context.Target()
	argv := tokens
	if target != "" {
		argv = append([]string{"-dcid", target}, tokens...)
	}

	// Checked on the raw tokens first so that a refused command does not
	// prompt for a password, then on the resolved operation.
	if s.refuseDeletion(target, commands.OperationIn(s.dispatcher.Operations(), tokens)) {
		return
	}
	inv, err := s.dispatcher.Prepare(argv)
	if err != nil {
		s.reporter.Report(err)
		return
	}
	if s.refuseDeletion(target, inv.Op) {
		return
	}
	inv.Target = target

	res, err := s.dispatcher.Invoke(ctx, inv, s.out)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(s.out, ui.Warning("Cancelled"))
		}
		s.reporter.Report(err)
		return
	}
	s.reporter.Report(nil)

	if res == nil {
		return
	}
	// Every successful remote call ends with a dash, after the dots of a wait.
	if target == "" || !inv.Op.Mutates || !s.context.Wait() {
		ui.NewDots(s.out).Done()
		return
	}
	s.setState(Polling)
	err = s.poller.Wait(ctx, res.Client, target)
	ui.NewDots(s.out).Done()
	if err == nil {
		return
	}
	s.logger.Debug("stopped waiting", "datacenter", target, "error", err)
	switch {
	case errors.Is(err, ErrPollTimeout):
		fmt.Fprintln(s.out, ui.Warningf("Data center %s is still not available, stopped waiting", target))
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(s.out, ui.Warningf("Stopped waiting for data center %s", target))
	default:
		fmt.Fprintln(s.out, ui.Warningf("Stopped waiting for data center %s: %s", target, exitcode.Describe(err)))
	}
}

// refuseDeletion reports whether op would delete the data center in use, and
// tells the user so.
func (s *Session) refuseDeletion(target string, op *commands.Operation) bool {
	if target == "" || op == nil || op.Destroys != commands.ContextDataCenter {
		return false
	}
	fmt.Fprintf(s.out, "Data center %s is in use. You may not perform data center deletion operations. Type 'use' to reset and try again\n\n", target)
	s.reporter.Report(nil)
	return true
}

// LineReader supplies input lines.
type LineReader interface {
	// Readline returns the next line. io.EOF ends the session and
	// ErrInterrupt discards the current line.
	Readline() (string, error)
	SetPrompt(prompt string)
}

// ErrInterrupt is returned by a LineReader when the user pressed Ctrl-C
// while typing.
var ErrInterrupt = errors.New("interrupt")

// CommandContext starts the context of one command. The returned function
// ends it.
type CommandContext func(parent context.Context) (context.Context, func())

// Run reads and executes lines until exit or EOF. newCommand creates the
// context of each command; nil uses a plain cancellable context.
func (s *Session) Run(ctx context.Context, in LineReader, newCommand CommandContext) error {
	if newCommand == nil {
		newCommand = func(parent context.Context) (context.Context, func()) {
			return context.WithCancel(parent)
		}
	}

	s.about()
	fmt.Fprintln(s.out)
	for {
		s.setState(ReadingLine)
		in.SetPrompt(s.Prompt())
		line, err := in.Readline()
		if errors.Is(err, ErrInterrupt) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Warn("reading input failed", "error", err)
			}
			fmt.Fprintln(s.out)
			s.exit()
			s.setState(Terminated)
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		cmdCtx, done := newCommand(ctx)
		finished := s.Execute(cmdCtx, line)
		done()
		if finished {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
