package shell

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
)

// Terminal reads lines with editing, history and completion.
type Terminal struct {
	rl *readline.Instance
}

// TerminalOptions configures NewTerminal.
type TerminalOptions struct {
	HistoryFile string
	Completer   readline.AutoCompleter
	Stdin       io.ReadCloser
	Stdout      io.Writer
	Stderr      io.Writer
}

// NewTerminal opens a line editor.
func NewTerminal(opts TerminalOptions) (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            DefaultPrompt,
		HistoryFile:       opts.HistoryFile,
		HistorySearchFold: true,
		AutoComplete:      opts.Completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		Stdin:             opts.Stdin,
		Stdout:            opts.Stdout,
		Stderr:            opts.Stderr,
	})
	if err != nil {
		return nil, err
	}
	return &Terminal{rl: rl}, nil
}

// Readline returns the next line.
func (t *Terminal) Readline() (string, error) {
	line, err := t.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupt
	}
	return line, err
}

// SetPrompt changes the prompt.
func (t *Terminal) SetPrompt(prompt string) { t.rl.SetPrompt(prompt) }

// Stdout returns a writer that does not corrupt the prompt line.
func (t *Terminal) Stdout() io.Writer { return t.rl.Stdout() }

// Close restores the terminal and saves history.
func (t *Terminal) Close() error { return t.rl.Close() }

// InterruptibleCommand runs each command with a context that Ctrl-C
// cancels, aborting an in-flight call or wait without leaving the shell.
func InterruptibleCommand(parent context.Context) (context.Context, func()) {
	return signal.NotifyContext(parent, os.Interrupt)
}

// Script reads lines from a non-interactive input such as a pipe. It has no
// prompt and no editing.
type Script struct {
	scanner *bufio.Scanner
}

// NewScript returns a Script reading r.
func NewScript(r io.Reader) *Script {
	return &Script{scanner: bufio.NewScanner(r)}
}

// Readline returns the next line, or io.EOF at the end of the input.
func (s *Script) Readline() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// SetPrompt does nothing.
func (s *Script) SetPrompt(string) {}
