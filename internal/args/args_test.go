package args

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aidanlsb/pbapi/internal/exitcode"
)

func noPrompt(t *testing.T) Options {
	t.Helper()
	return Options{PromptPassword: func() (string, error) {
		t.Fatal("unexpected password prompt")
		return "", nil
	}}
}

func requireUsage(t *testing.T, err error, msg string) {
	t.Helper()
	var usage *exitcode.UsageError
	if !errors.As(err, &usage) {
		t.Fatalf("error = %v, want UsageError", err)
	}
	if usage.Message != msg {
		t.Errorf("message = %q, want %q", usage.Message, msg)
	}
}

func TestParseSplitsBaseAndOperationArgs(t *testing.T) {
	p, err := Parse([]string{"getServer", "-u", "alice", "-p", "pw", "-SRVID", "7", "-s", "-Debug"}, noPrompt(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Base.Operation != "getServer" {
		t.Errorf("Operation = %q", p.Base.Operation)
	}
	if p.Base.Username != "alice" || p.Base.Password != "pw" || !p.Base.Authenticated() {
		t.Errorf("credentials = %+v", p.Base)
	}
	if !p.Base.Short || !p.Base.Debug {
		t.Errorf("flags = short %v debug %v", p.Base.Short, p.Base.Debug)
	}
	if want := (OpArgs{"srvid": "7"}); !reflect.DeepEqual(p.Op, want) {
		t.Errorf("Op = %v, want %v", p.Op, want)
	}
}

func TestParseTrailingFlagGetsEmptyValue(t *testing.T) {
	p, err := Parse([]string{"updateNic", "-nicid", "n1", "-ip"}, noPrompt(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v, ok := p.Op["ip"]; !ok || v != "" {
		t.Errorf("ip = %q (present %v), want empty", v, ok)
	}
}

func TestParseSkipsEmptyAndDashTokens(t *testing.T) {
	p, err := Parse([]string{"", "-", "getAllImages"}, noPrompt(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Base.Operation != "getAllImages" || len(p.Op) != 0 {
		t.Errorf("parsed = %+v", p)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		argv []string
		msg  string
	}{
		{nil, "Missing operation"},
		{[]string{"-s"}, "Missing operation"},
		{[]string{"getAllImages", "-u"}, "Missing username"},
		{[]string{"getAllImages", "-auth"}, "Missing authfile"},
		{[]string{"getAllImages", "-auth", "/nonexistent/pb.auth"}, "Authfile does not exist or cannot be read"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.argv, noPrompt(t))
		requireUsage(t, err, tt.msg)
	}
}

func TestParsePasswordPromptDoesNotConsumeNextFlag(t *testing.T) {
	prompted := 0
	opts := Options{PromptPassword: func() (string, error) {
		prompted++
		return "typed", nil
	}}

	p, err := Parse([]string{"getServer", "-u", "alice", "-p", "-srvid", "7"}, opts)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if prompted != 1 || p.Base.Password != "typed" {
		t.Errorf("prompted %d times, password %q", prompted, p.Base.Password)
	}
	if p.Op["srvid"] != "7" {
		t.Errorf("srvid = %q, want 7", p.Op["srvid"])
	}
}

func TestParseAuthFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "my.auth")
	if err := os.WriteFile(path, []byte("bob\nhunter2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := Parse([]string{"-AUTH", path, "getAllImages"}, noPrompt(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Base.Username != "bob" || p.Base.Password != "hunter2" || p.Base.AuthFile != path {
		t.Errorf("base = %+v", p.Base)
	}
}

func TestParseFallbackAuthFile(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "default.auth")
	if err := os.WriteFile(fallback, []byte("carol\npw\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	opts := noPrompt(t)
	opts.FallbackAuthFiles = []string{filepath.Join(dir, "missing.auth"), fallback}

	p, err := Parse([]string{"getAllImages"}, opts)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !p.Base.Authenticated() || p.Base.Username != "carol" {
		t.Errorf("base = %+v", p.Base)
	}

	// Explicit credentials win over the fallback.
	p, err = Parse([]string{"getAllImages", "-u", "dave", "-p", "x"}, opts)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Base.Username != "dave" {
		t.Errorf("Username = %q, want dave", p.Base.Username)
	}
}

func TestParseWithoutCredentialsIsNotAnError(t *testing.T) {
	p, err := Parse([]string{"getAllImages"}, noPrompt(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Base.Authenticated() {
		t.Error("Authenticated() = true without credentials")
	}
}
