// Package dispatch runs one parsed command line: it resolves the operation,
// checks credentials, calls the service and records the call in the journal.
// The one-shot CLI and the interactive shell share it.
package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aidanlsb/pbapi/internal/api"
	"github.com/aidanlsb/pbapi/internal/args"
	"github.com/aidanlsb/pbapi/internal/commands"
	"github.com/aidanlsb/pbapi/internal/credentials"
	"github.com/aidanlsb/pbapi/internal/exitcode"
	"github.com/aidanlsb/pbapi/internal/journal"
	"github.com/aidanlsb/pbapi/internal/logging"
	"github.com/aidanlsb/pbapi/internal/render"
)

// Remote is a client for one invocation.
type Remote interface {
	api.Caller
	RequestID() string
}

// ClientFactory creates the client for an invocation. debug is set by the
// -debug flag.
type ClientFactory func(creds credentials.Credentials, debug bool) Remote

// Dispatcher holds what every invocation needs.
type Dispatcher struct {
	Registry  *commands.Registry
	NewClient ClientFactory
	// Journal records remote calls; nil disables recording and @history.
	Journal *journal.Journal
	Logger  *slog.Logger
	Parse   args.Options
	// Footer prints the request id after long-form output.
	Footer bool
	// EchoArgv includes the command line in unknown operation errors.
	EchoArgv bool

	now func() time.Time
}

// Invocation is a resolved command line.
type Invocation struct {
	Args *args.Parsed
	Op   *commands.Operation
	// Target is the shell's default data center, recorded in the journal.
	Target string
}

// Result describes a completed remote call.
type Result struct {
	Client    Remote
	RequestID string
	Duration  time.Duration
}

// Prepare parses argv (without the program name) and resolves the
// operation.
func (d *Dispatcher) Prepare(argv []string) (*Invocation, error) {
	parsed, err := args.Parse(argv, d.Parse)
	if err != nil {
		return nil, err
	}
	op, err := d.Operations().Resolve(parsed.Base.Operation, parsed.Op)
	if err != nil {
		var unknown *exitcode.UnknownOperationError
		if d.EchoArgv && errors.As(err, &unknown) {
			unknown.Argv = argv
		}
		return nil, err
	}
	return &Invocation{Args: parsed, Op: op}, nil
}

// Invoke runs inv, writing its output to out. Remote operations return the
// result of the call; meta-operations return a nil Result.
func (d *Dispatcher) Invoke(ctx context.Context, inv *Invocation, out io.Writer) (*Result, error) {
	base := inv.Args.Base
	r := render.New(out, base.Short)

	if inv.Op.Internal {
		env := commands.LocalEnv{Out: r, Registry: d.Operations()}
		if d.Journal != nil {
			env.Journal = d.Journal
		}
		return nil, inv.Op.RunLocal(ctx, env)
	}

	if !base.Authenticated() {
		return nil, exitcode.Usagef("Missing authentication")
	}

	client := d.NewClient(base.Credentials(), base.Debug)
	logger := d.logger().With("operation", inv.Op.Name)
	logger.Debug("invoking operation", "args", len(inv.Args.Op), "target", inv.Target)

	start := d.clock()
	err := inv.Op.Run(ctx, commands.Env{Out: r, Client: client, Args: inv.Args.Op})
	res := &Result{Client: client, RequestID: client.RequestID(), Duration: d.clock().Sub(start)}

	d.record(ctx, inv, res, err)
	if err != nil {
		logger.Debug("operation failed", "error", err, "exit", exitcode.Code(err))
		return res, err
	}
	logger.Debug("operation completed", "request_id", res.RequestID, "duration", res.Duration)

	if d.Footer && !base.Short {
		r.RequestID(res.RequestID)
	}
	return res, nil
}

// Run is Prepare followed by Invoke.
func (d *Dispatcher) Run(ctx context.Context, argv []string, out io.Writer) error {
	inv, err := d.Prepare(argv)
	if err != nil {
		return err
	}
	_, err = d.Invoke(ctx, inv, out)
	return err
}

func (d *Dispatcher) record(ctx context.Context, inv *Invocation, res *Result, callErr error) {
	if d.Journal == nil {
		return
	}
	e := journal.Entry{
		Time:      d.clock().Add(-res.Duration),
		Operation: inv.Op.Name,
		Target:    inv.Target,
		ExitCode:  exitcode.Code(callErr),
		RequestID: res.RequestID,
		Duration:  res.Duration,
		Error:     exitcode.Describe(callErr),
	}
	// A cancelled command is still recorded.
	if err := d.Journal.Record(context.WithoutCancel(ctx), e); err != nil {
		d.logger().Warn("failed to record call", "error", err)
	}
}

// Operations returns the registry in use.
func (d *Dispatcher) Operations() *commands.Registry {
	if d.Registry == nil {
		return commands.Default
	}
	return d.Registry
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger == nil {
		return logging.Discard()
	}
	return d.Logger
}

func (d *Dispatcher) clock() time.Time {
	if d.now == nil {
		return time.Now()
	}
	return d.now()
}
