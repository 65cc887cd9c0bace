// Package translate maps user-facing operation flags onto the parameter names
// the remote service expects, coercing values where the service needs a
// different type or spelling.
package translate

import (
	"strings"
)

// Kind selects the coercion applied to a flag value.
type Kind string

const (
	KindString     Kind = "string"
	KindEnum       Kind = "enum"
	KindBool       Kind = "bool"
	KindList       Kind = "list"
	KindPortRange  Kind = "port-range"
	KindResettable Kind = "resettable"
)

// Rule binds one user flag to one remote parameter.
type Rule struct {
	// Flag is the user-facing flag name without the leading dash.
	Flag string `yaml:"flag"`
	// Param is the remote parameter name. For KindPortRange it is the prefix
	// of the Start/End pair.
	Param       string `yaml:"param"`
	Kind        Kind   `yaml:"kind,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Translate copies the values of userArgs whose keys appear in rules to the
// key named by the rule. Rule keys are matched case-insensitively against
// userArgs, which holds lower-cased keys. Keys without a rule are dropped.
//
//	Translate({"dcid": "1", "name": "foo"}, {"dcid": "dataCenterId"})
//	  => {"dataCenterId": "1"}
func Translate(userArgs map[string]string, rules map[string]string) map[string]string {
	out := make(map[string]string, len(rules))
	for from, to := range rules {
		if v, ok := userArgs[strings.ToLower(from)]; ok {
			out[to] = v
		}
	}
	return out
}

// Apply translates userArgs using rules and coerces each value by its rule's
// kind. The result is ready to send as a remote parameter object.
func Apply(userArgs map[string]string, rules []Rule) map[string]any {
	out := make(map[string]any, len(rules))
	for _, r := range rules {
		v, ok := userArgs[strings.ToLower(r.Flag)]
		if !ok {
			continue
		}
		switch r.Kind {
		case KindEnum:
			out[r.Param] = Upper(v)
		case KindBool:
			out[r.Param] = Bool(v)
		case KindList:
			out[r.Param] = List(v)
		case KindPortRange:
			start, end := PortRange(v)
			out[r.Param+"Start"] = start
			out[r.Param+"End"] = end
		case KindResettable:
			out[r.Param] = ResettableIP(v)
		default:
			out[r.Param] = v
		}
	}
	return out
}

// Bool reports whether v starts with "y" or "Y".
func Bool(v string) bool {
	return len(v) > 0 && (v[0] == 'y' || v[0] == 'Y')
}

// Upper normalizes an enum value.
func Upper(v string) string {
	return strings.ToUpper(v)
}

// List splits a comma separated value. Empty segments are kept so that the
// remote service sees exactly what the user typed.
func List(v string) []string {
	return strings.Split(v, ",")
}

// SplitLegacy reproduces the historical splitter, which split the literal ","
// using the user's value as the separator. For any id without a comma this
// yields []string{","}. It exists only for compatibility checks.
func SplitLegacy(v string) []string {
	if v == "" {
		return []string{","}
	}
	return strings.Split(",", v)
}

// PortRange parses "start:end". The end is the last segment, so "80" yields
// (80, 80) and "1:2:3" yields (1, 3).
func PortRange(v string) (start, end string) {
	parts := strings.Split(v, ":")
	return parts[0], parts[len(parts)-1]
}

// ResettableIP maps the keyword "reset" to the empty string, which clears the
// address on the remote side.
func ResettableIP(v string) string {
	if strings.EqualFold(v, "reset") {
		return ""
	}
	return v
}
