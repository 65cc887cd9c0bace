package api

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestObjectPreservesOrderAndPresence(t *testing.T) {
	var obj Object
	data := `{"zeta":"1","alpha":null,"nested":{"b":true,"a":[1,2]},"ips":["10.0.0.1","10.0.0.2"]}`
	if err := json.Unmarshal([]byte(data), &obj); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if want := []string{"zeta", "alpha", "nested", "ips"}; !reflect.DeepEqual(obj.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", obj.Keys(), want)
	}
	if !obj.Has("alpha") {
		t.Error("Has(alpha) = false for an explicit null")
	}
	if got := obj.String("alpha"); got != "" {
		t.Errorf("String(alpha) = %q, want empty", got)
	}
	if got := obj.String("missing"); got != Placeholder {
		t.Errorf("String(missing) = %q, want %q", got, Placeholder)
	}
	nested := obj.Object("nested")
	if nested == nil || !nested.Bool("b") {
		t.Fatalf("nested = %v", nested)
	}
	if got := nested.Strings("a"); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("nested.Strings(a) = %v", got)
	}
	if got := obj.Strings("ips"); !reflect.DeepEqual(got, []string{"10.0.0.1", "10.0.0.2"}) {
		t.Errorf("Strings(ips) = %v", got)
	}

	out, err := json.Marshal(&obj)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != data {
		t.Errorf("Marshal() = %s\nwant %s", out, data)
	}
}

func TestObjectBool(t *testing.T) {
	obj := NewObject("a", true, "b", "TRUE", "c", "no", "d", false)
	for key, want := range map[string]bool{"a": true, "b": true, "c": false, "d": false, "missing": false} {
		if got := obj.Bool(key); got != want {
			t.Errorf("Bool(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestObjectsAcceptsSingleObject(t *testing.T) {
	v, err := Decode([]byte(`{"nics":{"nicId":"n1"},"servers":[{"serverId":"s1"},"junk",{"serverId":"s2"}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	obj := AsObject(v)
	if nics := obj.Objects("nics"); len(nics) != 1 || nics[0].String("nicId") != "n1" {
		t.Errorf("Objects(nics) = %v", nics)
	}
	if servers := obj.Objects("servers"); len(servers) != 2 {
		t.Errorf("Objects(servers) len = %d, want 2", len(servers))
	}
}

func TestNilObjectAccessors(t *testing.T) {
	var obj *Object
	if obj.Has("x") || obj.Bool("x") || obj.Object("x") != nil || obj.Keys() != nil {
		t.Error("nil object reported content")
	}
	if obj.String("x") != Placeholder {
		t.Errorf("String() = %q", obj.String("x"))
	}
}
