package shell

import (
	"sort"
	"strings"

	"github.com/aidanlsb/pbapi/internal/commands"
)

// Completer completes operation names, meta-commands and flags. It
// implements readline.AutoCompleter.
type Completer struct {
	Registry *commands.Registry
	Topics   []string
}

// Do returns the text to insert after the cursor for each candidate, and the
// length of the word being completed.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	words := strings.Fields(text)
	partial := ""
	if len(words) > 0 && !strings.HasSuffix(text, " ") {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	var candidates []string
	switch {
	case len(words) == 0:
		candidates = c.commandNames(partial)
	case strings.EqualFold(words[0], "help") && len(words) == 1:
		candidates = append(filterFold(c.Topics, partial), c.Registry.Complete(partial)...)
	case strings.HasPrefix(partial, "-"):
		if op := commands.OperationIn(c.Registry, words); op != nil {
			candidates = filterFold(commands.FlagNames(op), partial)
		}
	}

	out := make([][]rune, 0, len(candidates))
	for _, cand := range candidates {
		if suffix, ok := Suffix(partial, cand); ok {
			out = append(out, []rune(suffix+" "))
		}
	}
	return out, len([]rune(partial))
}

// commandNames returns meta-commands and operation display names matching
// partial.
func (c *Completer) commandNames(partial string) []string {
	var out []string
	for _, name := range metaNames() {
		if strings.HasPrefix(name, commands.Normalize(partial)) {
			out = append(out, name)
		}
	}
	for _, name := range c.Registry.Complete(partial) {
		if _, meta := metaCommands[name]; !meta {
			out = append(out, name)
		}
	}
	return out
}

// Suffix returns what must follow partial for the line to name candidate.
// Dashes and case are ignored while matching, so "getData" completes
// "get-data-center" with "-center". Operation names are listed without the
// internal prefix, so "@li" completes "list" with "st". It reports false when
// partial does not match the start of candidate.
func Suffix(partial, candidate string) (string, bool) {
	if !strings.HasPrefix(candidate, commands.InternalPrefix) {
		partial = strings.TrimPrefix(partial, commands.InternalPrefix)
	}
	p := []rune(strings.ToLower(partial))
	cand := []rune(candidate)
	i, j := 0, 0
	for i < len(p) {
		if j >= len(cand) {
			return "", false
		}
		pc, cc := p[i], []rune(strings.ToLower(string(cand[j])))[0]
		switch {
		case pc == cc:
			i++
			j++
		case pc == '-':
			i++
		case cc == '-':
			j++
		default:
			return "", false
		}
	}
	return string(cand[j:]), true
}

func filterFold(items []string, prefix string) []string {
	var out []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), strings.ToLower(prefix)) {
			out = append(out, item)
		}
	}
	return out
}

func metaNames() []string {
	names := make([]string, 0, len(metaCommands))
	for name := range metaCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
