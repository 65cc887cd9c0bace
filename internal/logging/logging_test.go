package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"", "debug", "INFO", "warn", "warning", "error"} {
		if _, err := ParseLevel(name); err != nil {
			t.Errorf("ParseLevel(%q) error = %v", name, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) succeeded")
	}
}

func TestStderrShowsOnlyWarningsByDefault(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer, err := New(Options{Stderr: &stderr})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	logger.Info("calling service", "operation", "getServer")
	logger.Warn("journal disabled")

	out := stderr.String()
	if strings.Contains(out, "calling service") {
		t.Errorf("info record reached stderr: %s", out)
	}
	// A buffer is not a terminal, so records are JSON.
	var rec map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &rec); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, out)
	}
	if rec["msg"] != "journal disabled" {
		t.Errorf("record = %v", rec)
	}
}

func TestDebugReachesStderr(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer, err := New(Options{Stderr: &stderr, Debug: true})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()
	logger.Debug("request", "operation", "getServer")
	if !strings.Contains(stderr.String(), `"operation":"getServer"`) {
		t.Errorf("debug record missing: %s", stderr.String())
	}
}

func TestFileReceivesConfiguredLevel(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "pbapi.log")
	logger, closer, err := New(Options{Stderr: &stderr, File: path, Level: "info"})
	if err != nil {
		t.Fatal(err)
	}
	logger.With("session", "s1").Info("call finished", "exit", 0)
	logger.Debug("dropped")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"call finished"`) || !strings.Contains(string(data), `"session":"s1"`) {
		t.Errorf("file log = %s", data)
	}
	if strings.Contains(string(data), "dropped") {
		t.Errorf("debug record written at info level: %s", data)
	}
	if stderr.Len() != 0 {
		t.Errorf("info record reached stderr: %s", stderr.String())
	}
}
