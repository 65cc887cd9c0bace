// Package credentials loads account credentials from two-line auth files and
// prompts for passwords on the terminal.
package credentials

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

// DefaultFile is the auth file looked up in the working directory when no
// credentials are given on the command line.
const DefaultFile = "default.auth"

// Credentials is a username and password pair.
type Credentials struct {
	Username string
	Password string
}

// Load reads an auth file: the username on the first line, the password on
// the second. Missing lines yield empty values.
func Load(path string) (Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return Credentials{}, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses auth file content from r.
func Read(r io.Reader) (Credentials, error) {
	var lines [2]string
	scanner := bufio.NewScanner(r)
	for i := 0; i < len(lines) && scanner.Scan(); i++ {
		lines[i] = strings.TrimRight(scanner.Text(), "\r")
	}
	if err := scanner.Err(); err != nil {
		return Credentials{}, fmt.Errorf("read auth file: %w", err)
	}
	return Credentials{Username: lines[0], Password: lines[1]}, nil
}

// LoadFirst tries each path in order and returns the first readable file.
// The boolean is false when none could be read.
func LoadFirst(paths ...string) (Credentials, bool) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if c, err := Load(p); err == nil {
			return c, true
		}
	}
	return Credentials{}, false
}

// Prompt asks for a password on the controlling terminal without echo.
func Prompt() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	defer fmt.Fprintln(os.Stderr)

	fd := os.Stdin.Fd()
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	pw, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}
