package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aidanlsb/pbapi/internal/exitcode"
)

func TestDefaultRegistryNamesRoundTrip(t *testing.T) {
	for _, op := range Default.All() {
		for _, token := range []string{op.Name, DisplayName(op.Name), strings.ToUpper(op.Name)} {
			got, ok := Default.Find(token)
			if !ok {
				t.Errorf("Find(%q) found nothing", token)
				continue
			}
			if got.Name != op.Name {
				t.Errorf("Find(%q) = %q, want %q", token, got.Name, op.Name)
			}
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"createDataCenter", "create-data-center"},
		{"createNic", "create-nic"},
		{"getAllPublicIpBlocks", "get-all-public-ip-blocks"},
		{"addRomDriveToServer", "add-rom-drive-to-server"},
		{"@list", "list"},
		{"@list-simple", "list-simple"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.name); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestFindInternalPrefix(t *testing.T) {
	for _, token := range []string{"list", "@list", "LIST", "@List"} {
		op, ok := Default.Find(token)
		if !ok || op.Name != "@list" {
			t.Errorf("Find(%q) = %v, %v; want @list", token, op, ok)
		}
	}
	if _, ok := Default.Find("@getServer"); ok {
		t.Error("Find(@getServer) matched a remote operation")
	}
	if _, ok := Default.Find("frobnicate"); ok {
		t.Error("Find(frobnicate) matched")
	}
}

func TestResolve(t *testing.T) {
	t.Run("unknown operation", func(t *testing.T) {
		_, err := Default.Resolve("frobnicate", nil)
		var unknown *exitcode.UnknownOperationError
		if !errors.As(err, &unknown) {
			t.Fatalf("Resolve() error = %v, want UnknownOperationError", err)
		}
		if exitcode.Code(err) != exitcode.Auth {
			t.Errorf("exit code = %d, want %d", exitcode.Code(err), exitcode.Auth)
		}
	})

	t.Run("missing required lists every key", func(t *testing.T) {
		_, err := Default.Resolve("create-server", map[string]string{"cores": "2"})
		if err == nil {
			t.Fatal("Resolve() succeeded without -ram")
		}
		want := "operation 'create-server' requires these arguments: -cores -ram"
		if err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
		if exitcode.Code(err) != exitcode.Usage {
			t.Errorf("exit code = %d, want %d", exitcode.Code(err), exitcode.Usage)
		}
	})

	t.Run("empty required value", func(t *testing.T) {
		_, err := Default.Resolve("getServer", map[string]string{"srvid": ""})
		if exitcode.Code(err) != exitcode.Usage {
			t.Errorf("Resolve() error = %v, want usage error", err)
		}
	})

	t.Run("satisfied", func(t *testing.T) {
		op, err := Default.Resolve("GetServer", map[string]string{"srvid": "s1"})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if op.Name != "getServer" {
			t.Errorf("op = %q", op.Name)
		}
	})
}

func TestNewRegistryRejects(t *testing.T) {
	noop := func(context.Context, Env) error { return nil }
	local := func(context.Context, LocalEnv) error { return nil }

	tests := []struct {
		name string
		ops  []Operation
		want string
	}{
		{
			name: "collision",
			ops:  []Operation{{Name: "getServer", Run: noop}, {Name: "get-server", Run: noop}},
			want: "collides",
		},
		{
			name: "collision with internal",
			ops:  []Operation{{Name: "list", Run: noop}, {Name: "@list", Internal: true, RunLocal: local}},
			want: "collides",
		},
		{
			name: "missing handler",
			ops:  []Operation{{Name: "getServer"}},
			want: "no handler",
		},
		{
			name: "prefix without internal",
			ops:  []Operation{{Name: "@list", RunLocal: local}},
			want: "internal",
		},
		{
			name: "empty name",
			ops:  []Operation{{Run: noop}},
			want: "no name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.ops)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("NewRegistry() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLookupIsExact(t *testing.T) {
	if _, ok := Default.Lookup("getServer"); !ok {
		t.Error("Lookup(getServer) failed")
	}
	if _, ok := Default.Lookup("get-server"); ok {
		t.Error("Lookup(get-server) matched a display name")
	}
}

func TestComplete(t *testing.T) {
	got := Default.Complete("get-data")
	want := []string{"get-data-center", "get-data-center-state"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Complete(get-data) = %v, want %v", got, want)
	}
	if got := Default.Complete("@li"); len(got) != 2 || got[0] != "list" {
		t.Errorf("Complete(@li) = %v", got)
	}
	if got := Default.Complete("zzz"); len(got) != 0 {
		t.Errorf("Complete(zzz) = %v", got)
	}
}

func TestLifecycleFlags(t *testing.T) {
	for name := range mutatingOperations {
		op, ok := Default.Lookup(name)
		if !ok {
			t.Errorf("mutating operation %q is not registered", name)
			continue
		}
		if !op.Mutates {
			t.Errorf("%s.Mutates = false", name)
		}
	}
	for _, name := range []string{"getServer", "getAllDataCenters", "@list"} {
		if op, _ := Default.Lookup(name); op.Mutates {
			t.Errorf("%s.Mutates = true", name)
		}
	}
	op, _ := Default.Lookup("deleteDataCenter")
	if op.Destroys != ContextDataCenter {
		t.Errorf("deleteDataCenter.Destroys = %q", op.Destroys)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Default.Names()
	if len(names) != len(Default.All()) {
		t.Fatalf("Names() has %d entries, All() has %d", len(names), len(Default.All()))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted at %d: %q > %q", i, names[i-1], names[i])
		}
	}
}

func TestOperationInMatchesParser(t *testing.T) {
	tests := []struct {
		argv []string
		want string
	}{
		{argv: []string{"get-server", "-srvid", "s1"}, want: "getServer"},
		{argv: []string{"get-server", "delete-data-center"}, want: "deleteDataCenter"},
		{argv: []string{"typo", "delete-data-center"}, want: "deleteDataCenter"},
		{argv: []string{"-p", "-dcid", "dc1", "delete-data-center"}, want: "deleteDataCenter"},
		{argv: []string{"-p", "secret", "get-server"}, want: "getServer"},
		{argv: []string{"-u", "get-server", "list"}, want: "@list"},
		{argv: []string{"-s", "-debug", "list"}, want: "@list"},
		{argv: []string{"get-server", "typo"}, want: ""},
		{argv: []string{"-name", "get-server"}, want: ""},
		{argv: nil, want: ""},
	}
	for _, tt := range tests {
		got := ""
		if op := OperationIn(Default, tt.argv); op != nil {
			got = op.Name
		}
		if got != tt.want {
			t.Errorf("OperationIn(%q) = %q, want %q", tt.argv, got, tt.want)
		}
	}
}
