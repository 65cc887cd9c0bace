package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfigureAccent(t *testing.T) {
	orig := AccentColor()
	t.Cleanup(func() { ConfigureAccent(orig) })

	tests := []struct {
		in   string
		ok   bool
		want string
	}{
		{"#a78bfa", true, "#A78BFA"},
		{"212", true, "212"},
		{" 7 ", true, "7"},
		{"256", false, ""},
		{"#12345", false, ""},
		{"purple", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		ConfigureAccent(orig)
		ok := ConfigureAccent(tt.in)
		if ok != tt.ok {
			t.Errorf("ConfigureAccent(%q) = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && AccentColor() != tt.want {
			t.Errorf("AccentColor() = %q, want %q", AccentColor(), tt.want)
		}
		if !ok && AccentColor() != orig {
			t.Errorf("invalid accent %q changed color to %q", tt.in, AccentColor())
		}
	}
}

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(2)
	tbl.AddRow("get-server", "Show a server")
	tbl.AddRow("use", "Set the default data center")

	lines := strings.Split(strings.TrimRight(tbl.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if strings.Index(lines[0], "Show") != strings.Index(lines[1], "Set") {
		t.Errorf("columns not aligned:\n%s", tbl.String())
	}
	if strings.HasSuffix(lines[0], " ") {
		t.Errorf("last column padded: %q", lines[0])
	}
}

func TestEmptyTable(t *testing.T) {
	if got := NewTable(3).String(); got != "" {
		t.Errorf("String() = %q", got)
	}
}

func TestGridIncludesHeadersAndRows(t *testing.T) {
	out := Grid([]string{"Time", "Operation"}, [][]string{{"10:00", "getServer"}})
	for _, want := range []string{"Time", "Operation", "10:00", "getServer"} {
		if !strings.Contains(out, want) {
			t.Errorf("Grid() missing %q:\n%s", want, out)
		}
	}
}

func TestDotsOnPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	d := NewDots(&buf)
	d.Tick()
	d.Tick()
	d.Done()
	if got := buf.String(); got != "..-\n" {
		t.Errorf("output = %q", got)
	}
	if d.Count() != 2 {
		t.Errorf("Count() = %d", d.Count())
	}
}

func TestDisplayContextForNonTerminal(t *testing.T) {
	d := NewDisplayContext(&bytes.Buffer{})
	if d.IsTTY || d.TermWidth != DefaultTermWidth {
		t.Errorf("display = %+v", d)
	}
}

func TestRenderMarkdownNormalizesTrailingNewline(t *testing.T) {
	out, err := RenderMarkdown("# Shell\n\nType `help`.", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected single trailing newline, got %q", out)
	}
	if !strings.Contains(out, "Shell") {
		t.Errorf("heading missing: %q", out)
	}
}

func TestRenderMarkdownDefaultsWidthWhenNonPositive(t *testing.T) {
	out, err := RenderMarkdown("hello", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected non-empty rendered output")
	}
}
