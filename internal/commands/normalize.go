package commands

import (
	"regexp"
	"strings"
)

var (
	camelWord  = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	camelUpper = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Normalize strips dashes and folds case: "Get-Data-Center" and
// "getDataCenter" both become "getdatacenter".
func Normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", ""))
}

// Key is the registry key of an operation name: normalized, without the
// internal prefix.
func Key(name string) string {
	return strings.TrimPrefix(Normalize(name), InternalPrefix)
}

// DisplayName renders an operation name in dashed lower case, without the
// internal prefix: "createDataCenter" becomes "create-data-center" and
// "createNic" becomes "create-nic".
func DisplayName(name string) string {
	s := strings.TrimPrefix(name, InternalPrefix)
	s = camelWord.ReplaceAllString(s, "${1}-${2}")
	s = camelUpper.ReplaceAllString(s, "${1}-${2}")
	return strings.ToLower(s)
}
