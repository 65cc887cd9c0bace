package commands

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/pbapi/internal/translate"
	"github.com/aidanlsb/pbapi/internal/ui"
)

// historyLimit is how many journal entries @history shows.
const historyLimit = 20

// Usage returns a one-line synopsis: required flags first, optional flags in
// brackets.
func Usage(op *Operation) string {
	var sb strings.Builder
	sb.WriteString(DisplayName(op.Name))
	seen := map[string]bool{}
	for _, key := range op.Required {
		seen[key] = true
		fmt.Fprintf(&sb, " -%s <%s>", key, key)
	}
	for _, f := range op.Flags {
		key := strings.ToLower(f.Flag)
		if seen[key] {
			continue
		}
		seen[key] = true
		fmt.Fprintf(&sb, " [-%s <%s>]", key, key)
	}
	return sb.String()
}

func listOperations(_ context.Context, env LocalEnv) error {
	tbl := ui.NewTable(2)
	for _, op := range env.Registry.All() {
		tbl.AddRow(DisplayName(op.Name), ui.Hint(op.Description))
	}
	fmt.Fprint(env.Out.Writer(), tbl.String())
	return nil
}

func listOperationNames(_ context.Context, env LocalEnv) error {
	for _, op := range env.Registry.All() {
		env.Out.Line(DisplayName(op.Name))
	}
	return nil
}

type describedOperation struct {
	Name        string           `yaml:"name"`
	Usage       string           `yaml:"usage"`
	Description string           `yaml:"description"`
	Required    []string         `yaml:"required,omitempty"`
	Flags       []translate.Rule `yaml:"flags,omitempty"`
	Examples    []string         `yaml:"examples,omitempty"`
	Internal    bool             `yaml:"internal,omitempty"`
	Mutates     bool             `yaml:"mutates,omitempty"`
}

func describeOperations(_ context.Context, env LocalEnv) error {
	ops := env.Registry.All()
	described := make([]describedOperation, 0, len(ops))
	for _, op := range ops {
		described = append(described, describedOperation{
			Name:        op.Name,
			Usage:       Usage(op),
			Description: op.Description,
			Required:    op.Required,
			Flags:       op.Flags,
			Examples:    op.Examples,
			Internal:    op.Internal,
			Mutates:     op.Mutates,
		})
	}

	enc := yaml.NewEncoder(env.Out.Writer())
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"operations": described}); err != nil {
		return fmt.Errorf("encode operations: %w", err)
	}
	return enc.Close()
}

func showHistory(ctx context.Context, env LocalEnv) error {
	if env.Journal == nil {
		env.Out.Line(ui.Hint("Call journal is disabled"))
		return nil
	}
	entries, err := env.Journal.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		env.Out.Line("No calls recorded")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Time.Local().Format("2006-01-02 15:04:05"),
			DisplayName(e.Operation),
			e.Target,
			fmt.Sprint(e.ExitCode),
			e.Duration.String(),
			e.RequestID,
			e.Error,
		})
	}
	fmt.Fprint(env.Out.Writer(), ui.Grid(
		[]string{"Time", "Operation", "Target", "Exit", "Duration", "Request ID", "Error"},
		rows,
	))
	env.Out.Line(ui.Hint(ui.Count(len(entries), "call", "calls")))
	return nil
}
