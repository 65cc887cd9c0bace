package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// baseFlags are accepted by every operation.
var baseFlags = []string{"-u", "-p", "-auth", "-s", "-debug"}

// CompletionFunc returns a cobra ValidArgsFunction for the single-dash
// command surface. Until an operation name has been typed it completes
// operation names; afterwards it completes that operation's flags.
func CompletionFunc(reg *Registry) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, completedArgs []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		op := OperationIn(reg, completedArgs)
		if op == nil {
			if strings.HasPrefix(toComplete, "-") {
				return filterPrefix(baseFlags, toComplete), cobra.ShellCompDirectiveNoFileComp
			}
			return reg.Complete(toComplete), cobra.ShellCompDirectiveNoFileComp
		}

		// A value is expected after a flag.
		if n := len(completedArgs); n > 0 && strings.HasPrefix(completedArgs[n-1], "-") && !IsSwitch(completedArgs[n-1]) {
			if strings.EqualFold(completedArgs[n-1], "-auth") {
				return nil, cobra.ShellCompDirectiveDefault
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		return filterPrefix(FlagNames(op), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// FlagNames returns the dashed flags an operation accepts, required first.
func FlagNames(op *Operation) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		name = "-" + strings.ToLower(name)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, key := range op.Required {
		add(key)
	}
	for _, f := range op.Flags {
		add(f.Flag)
	}
	if !op.Internal {
		for _, f := range baseFlags {
			add(strings.TrimPrefix(f, "-"))
		}
	}
	return out
}

// OperationIn returns the operation a command line names. It picks the same
// token as the argument parser: the last one that is neither a flag nor a
// flag value. "-p" takes a value only when the next token is not a flag.
func OperationIn(reg *Registry, argv []string) *Operation {
	name := ""
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "" || arg == "-":
		case !strings.HasPrefix(arg, "-"):
			name = arg
		case IsSwitch(arg):
		case strings.EqualFold(arg, "-p"):
			if i+1 < len(argv) && !strings.HasPrefix(argv[i+1], "-") {
				i++
			}
		default:
			i++
		}
	}
	if name == "" {
		return nil
	}
	op, ok := reg.Find(name)
	if !ok {
		return nil
	}
	return op
}

// IsSwitch reports whether a base flag takes no value.
func IsSwitch(flag string) bool {
	switch strings.ToLower(flag) {
	case "-s", "-debug":
		return true
	}
	return false
}

func filterPrefix(items []string, prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), prefix) {
			out = append(out, item)
		}
	}
	return out
}
