package translate

import (
	"reflect"
	"testing"
)

func TestTranslate(t *testing.T) {
	got := Translate(
		map[string]string{"dcid": "1", "name": "foo"},
		map[string]string{"dcid": "dataCenterId"},
	)
	want := map[string]string{"dataCenterId": "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate() = %v, want %v", got, want)
	}
}

func TestTranslateMatchesRuleKeysCaseInsensitively(t *testing.T) {
	got := Translate(
		map[string]string{"bootfromimageid": "img-1"},
		map[string]string{"bootFromImageId": "bootFromImageId", "lanId": "lanId"},
	)
	want := map[string]string{"bootFromImageId": "img-1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate() = %v, want %v", got, want)
	}
}

func TestTranslateDoesNotMutateInput(t *testing.T) {
	in := map[string]string{"dcid": "1"}
	Translate(in, map[string]string{"dcid": "dataCenterId"})
	if len(in) != 1 || in["dcid"] != "1" {
		t.Errorf("input mutated: %v", in)
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"yes", true},
		{"Y", true},
		{"yeah", true},
		{"no", false},
		{"", false},
		{"true", false},
		{" y", false},
	}
	for _, tt := range tests {
		if got := Bool(tt.in); got != tt.want {
			t.Errorf("Bool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{"a,,b", []string{"a", "", "b"}},
		{"a,", []string{"a", ""}},
	}
	for _, tt := range tests {
		if got := List(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("List(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitLegacy(t *testing.T) {
	if got := SplitLegacy("srv-1"); !reflect.DeepEqual(got, []string{","}) {
		t.Errorf("SplitLegacy(srv-1) = %q", got)
	}
	if got := SplitLegacy(","); !reflect.DeepEqual(got, []string{"", ""}) {
		t.Errorf("SplitLegacy(,) = %q", got)
	}
}

func TestPortRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
	}{
		{"80", "80", "80"},
		{"1000:2000", "1000", "2000"},
		{"1:2:3", "1", "3"},
	}
	for _, tt := range tests {
		start, end := PortRange(tt.in)
		if start != tt.start || end != tt.end {
			t.Errorf("PortRange(%q) = (%q, %q), want (%q, %q)", tt.in, start, end, tt.start, tt.end)
		}
	}
}

func TestResettableIP(t *testing.T) {
	if got := ResettableIP("RESET"); got != "" {
		t.Errorf("ResettableIP(RESET) = %q", got)
	}
	if got := ResettableIP("10.0.0.1"); got != "10.0.0.1" {
		t.Errorf("ResettableIP(10.0.0.1) = %q", got)
	}
}

func TestApply(t *testing.T) {
	rules := []Rule{
		{Flag: "dcid", Param: "dataCenterId"},
		{Flag: "ostype", Param: "osType", Kind: KindEnum},
		{Flag: "internetaccess", Param: "internetAccess", Kind: KindBool},
		{Flag: "srvid", Param: "serverIds", Kind: KindList},
		{Flag: "port", Param: "portRange", Kind: KindPortRange},
		{Flag: "ip", Param: "ip", Kind: KindResettable},
		{Flag: "name", Param: "serverName"},
	}
	got := Apply(map[string]string{
		"dcid":           "dc-1",
		"ostype":         "linux",
		"internetaccess": "yes",
		"srvid":          "a,b",
		"port":           "22:23",
		"ip":             "reset",
		"ignored":        "x",
	}, rules)

	want := map[string]any{
		"dataCenterId":   "dc-1",
		"osType":         "LINUX",
		"internetAccess": true,
		"serverIds":      []string{"a", "b"},
		"portRangeStart": "22",
		"portRangeEnd":   "23",
		"ip":             "",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %#v\nwant %#v", got, want)
	}
}
