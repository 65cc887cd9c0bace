package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/pbapi/internal/journal"
	"github.com/aidanlsb/pbapi/internal/render"
)

func runLocal(t *testing.T, name string, history History) string {
	t.Helper()
	op, ok := Default.Find(name)
	if !ok || !op.Internal {
		t.Fatalf("Find(%q) did not return a meta-operation", name)
	}
	var buf bytes.Buffer
	env := LocalEnv{Out: render.New(&buf, false), Registry: Default, Journal: history}
	if err := op.RunLocal(context.Background(), env); err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return buf.String()
}

func TestUsage(t *testing.T) {
	op, _ := Default.Lookup("createStorage")
	want := "create-storage -size <size> -dcid <dcid> [-name <name>] [-mountimageid <mountimageid>]"
	if got := Usage(op); got != want {
		t.Errorf("Usage() = %q, want %q", got, want)
	}
}

func TestListOperations(t *testing.T) {
	out := runLocal(t, "list", nil)
	for _, name := range []string{"create-data-center", "get-all-images", "history"} {
		if !strings.Contains(out, name) {
			t.Errorf("@list output missing %q", name)
		}
	}

	simple := runLocal(t, "@list-simple", nil)
	lines := strings.Split(strings.TrimSpace(simple), "\n")
	if len(lines) != len(Default.All()) {
		t.Errorf("@list-simple printed %d lines, want %d", len(lines), len(Default.All()))
	}
	if lines[0] != "create-data-center" {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestDescribeOperations(t *testing.T) {
	out := runLocal(t, "describe", nil)
	var doc struct {
		Operations []struct {
			Name     string   `yaml:"name"`
			Required []string `yaml:"required"`
			Mutates  bool     `yaml:"mutates"`
			Flags    []struct {
				Flag  string `yaml:"flag"`
				Param string `yaml:"param"`
				Kind  string `yaml:"kind"`
			} `yaml:"flags"`
		} `yaml:"operations"`
	}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("@describe output is not YAML: %v\n%s", err, out)
	}
	if len(doc.Operations) != len(Default.All()) {
		t.Fatalf("described %d operations, want %d", len(doc.Operations), len(Default.All()))
	}
	for _, op := range doc.Operations {
		if op.Name != "createLoadBalancer" {
			continue
		}
		if !op.Mutates {
			t.Error("createLoadBalancer not marked as mutating")
		}
		for _, f := range op.Flags {
			if f.Flag == "srvid" && (f.Param != "serverIds" || f.Kind != "list") {
				t.Errorf("srvid flag = %+v", f)
			}
		}
		return
	}
	t.Error("createLoadBalancer not described")
}

func TestShowHistory(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		if out := runLocal(t, "history", nil); !strings.Contains(out, "disabled") {
			t.Errorf("output = %q", out)
		}
	})

	j, err := journal.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()

	t.Run("empty", func(t *testing.T) {
		if out := runLocal(t, "history", j); !strings.Contains(out, "No calls recorded") {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("entries", func(t *testing.T) {
		ctx := context.Background()
		_ = j.Record(ctx, journal.Entry{Operation: "getServer", RequestID: "req-1", Duration: time.Second})
		_ = j.Record(ctx, journal.Entry{Operation: "deleteNic", ExitCode: 3, Error: "Error: busy"})
		out := runLocal(t, "history", j)
		for _, want := range []string{"get-server", "delete-nic", "req-1", "Error: busy", "2 calls"} {
			if !strings.Contains(out, want) {
				t.Errorf("history output missing %q:\n%s", want, out)
			}
		}
	})
}

func TestCompletionFunc(t *testing.T) {
	complete := CompletionFunc(Default)
	cmd := &cobra.Command{}

	tests := []struct {
		name       string
		args       []string
		toComplete string
		want       []string
		absent     []string
	}{
		{name: "operation", toComplete: "get-all-d", want: []string{"get-all-data-centers"}},
		{name: "base flag before operation", toComplete: "-au", want: []string{"-auth"}},
		{name: "operation flags", args: []string{"get-server"}, toComplete: "-", want: []string{"-srvid", "-u", "-auth"}},
		{name: "after switch", args: []string{"-s", "create-nic"}, toComplete: "-l", want: []string{"-lanid"}},
		{name: "value after flag", args: []string{"-u", "bob", "get-server", "-srvid"}, toComplete: "", absent: []string{"-srvid"}},
		{name: "meta-operation has no base flags", args: []string{"list"}, toComplete: "-", absent: []string{"-u"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := complete(cmd, tt.args, tt.toComplete)
			joined := "," + strings.Join(got, ",") + ","
			for _, w := range tt.want {
				if !strings.Contains(joined, ","+w+",") {
					t.Errorf("completions %v missing %q", got, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(joined, ","+a+",") {
					t.Errorf("completions %v contain %q", got, a)
				}
			}
		})
	}
}
