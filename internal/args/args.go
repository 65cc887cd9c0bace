// Package args parses the single-dash command surface shared by the one-shot
// CLI and the interactive shell.
//
// Base arguments (-u, -p, -auth, -debug, -s) are recognized case-insensitively.
// The first token without a leading dash names the operation. Every other
// "-flag value" pair becomes an operation argument keyed by the lower-cased
// flag name.
package args

import (
	"strings"

	"github.com/aidanlsb/pbapi/internal/credentials"
	"github.com/aidanlsb/pbapi/internal/exitcode"
)

// Base holds the arguments that configure the invocation itself.
type Base struct {
	Operation string
	Username  string
	Password  string
	AuthFile  string
	Short     bool
	Debug     bool

	hasUser bool
	hasPass bool
}

// Authenticated reports whether both a username and a password were supplied,
// from flags, an auth file or a fallback file.
func (b Base) Authenticated() bool {
	return b.hasUser && b.hasPass
}

// Credentials returns the supplied username and password.
func (b Base) Credentials() credentials.Credentials {
	return credentials.Credentials{Username: b.Username, Password: b.Password}
}

// OpArgs maps lower-cased flag names to raw values.
type OpArgs map[string]string

// Options customizes Parse.
type Options struct {
	// PromptPassword is called for "-p" without a value. Defaults to
	// credentials.Prompt.
	PromptPassword func() (string, error)
	// FallbackAuthFiles are tried in order when no complete credentials were
	// given. Unreadable files are skipped silently.
	FallbackAuthFiles []string
}

// Parsed is the result of Parse.
type Parsed struct {
	Base Base
	Op   OpArgs
	// Argv is the input, kept for diagnostics.
	Argv []string
}

// Parse splits argv (without the program name) into base and operation
// arguments.
func Parse(argv []string, opts Options) (*Parsed, error) {
	prompt := opts.PromptPassword
	if prompt == nil {
		prompt = credentials.Prompt
	}

	p := &Parsed{Op: OpArgs{}, Argv: argv}
	b := &p.Base
	last := len(argv) - 1

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "" || arg == "-" {
			continue
		}
		if arg[0] != '-' {
			b.Operation = arg
			continue
		}

		switch strings.ToLower(arg) {
		case "-u":
			if i == last {
				return nil, exitcode.Usagef("Missing username")
			}
			i++
			b.Username, b.hasUser = argv[i], true
		case "-p":
			if i == last || strings.HasPrefix(argv[i+1], "-") {
				pw, err := prompt()
				if err != nil {
					return nil, exitcode.Usagef("Missing password")
				}
				b.Password = pw
			} else {
				i++
				b.Password = argv[i]
			}
			b.hasPass = true
		case "-auth":
			if i == last {
				return nil, exitcode.Usagef("Missing authfile")
			}
			i++
			b.AuthFile = argv[i]
			c, err := credentials.Load(b.AuthFile)
			if err != nil {
				return nil, exitcode.Usagef("Authfile does not exist or cannot be read")
			}
			b.Username, b.Password = c.Username, c.Password
			b.hasUser, b.hasPass = true, true
		case "-debug":
			b.Debug = true
		case "-s":
			b.Short = true
		default:
			value := ""
			if i < last {
				i++
				value = argv[i]
			}
			p.Op[strings.ToLower(arg[1:])] = value
		}
	}

	if b.Operation == "" {
		return nil, exitcode.Usagef("Missing operation")
	}

	if !b.Authenticated() {
		if c, ok := credentials.LoadFirst(opts.FallbackAuthFiles...); ok {
			b.Username, b.Password = c.Username, c.Password
			b.hasUser, b.hasPass = true, true
		}
	}
	return p, nil
}
