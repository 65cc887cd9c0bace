// Package commands provides the registry of operations. The registry is the
// single source of truth for operation names, required arguments, flag
// translation rules and handlers, used by the one-shot CLI, the interactive
// shell and shell completion.
package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aidanlsb/pbapi/internal/api"
	"github.com/aidanlsb/pbapi/internal/exitcode"
	"github.com/aidanlsb/pbapi/internal/journal"
	"github.com/aidanlsb/pbapi/internal/render"
	"github.com/aidanlsb/pbapi/internal/translate"
)

// InternalPrefix marks meta-operations that run locally.
const InternalPrefix = "@"

// Env is what a remote operation handler works with.
type Env struct {
	Out    *render.Renderer
	Client api.Caller
	Args   map[string]string
}

// History is the read side of the call journal.
type History interface {
	Recent(ctx context.Context, limit int, operations ...string) ([]journal.Entry, error)
}

// LocalEnv is what a meta-operation handler works with. Journal is nil when
// the journal is disabled.
type LocalEnv struct {
	Out      *render.Renderer
	Registry *Registry
	Journal  History
}

// Handler executes a remote operation.
type Handler func(ctx context.Context, env Env) error

// LocalHandler executes a meta-operation.
type LocalHandler func(ctx context.Context, env LocalEnv) error

// Operation describes one user-facing operation.
type Operation struct {
	Name        string           // Canonical name, e.g. "getDataCenter" or "@list"
	Description string           // Short description
	Required    []string         // Flags that must be present and non-empty
	Flags       []translate.Rule // Flag to parameter translation
	Examples    []string         // Usage examples
	Internal    bool             // Meta-operation: no credentials, no client
	Mutates     bool             // Changes remote state; the shell waits afterwards
	Destroys    string           // Context class removed by this operation
	Run         Handler
	RunLocal    LocalHandler
}

// ContextDataCenter is the context class of a data center. The shell keeps a
// data center as its default target.
const ContextDataCenter = "datacenter"

// Registry is an immutable set of operations whose names are unique after
// normalization.
type Registry struct {
	ops   []*Operation
	byKey map[string]*Operation
}

// NewRegistry validates ops and builds a registry. Two operations whose
// names normalize to the same key are rejected.
func NewRegistry(ops []Operation) (*Registry, error) {
	r := &Registry{byKey: make(map[string]*Operation, len(ops))}
	for i := range ops {
		op := ops[i]
		if op.Name == "" {
			return nil, fmt.Errorf("operation %d has no name", i)
		}
		if op.Internal != strings.HasPrefix(op.Name, InternalPrefix) {
			return nil, fmt.Errorf("operation %q: internal operations must be named with %q", op.Name, InternalPrefix)
		}
		if op.Internal && op.RunLocal == nil || !op.Internal && op.Run == nil {
			return nil, fmt.Errorf("operation %q has no handler", op.Name)
		}
		key := Key(op.Name)
		if prev, ok := r.byKey[key]; ok {
			return nil, fmt.Errorf("operation %q collides with %q (both normalize to %q)", op.Name, prev.Name, key)
		}
		r.byKey[key] = &op
		r.ops = append(r.ops, &op)
	}
	return r, nil
}

// MustNewRegistry is NewRegistry that panics on invalid input.
func MustNewRegistry(ops []Operation) *Registry {
	r, err := NewRegistry(ops)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns the operations in declaration order.
func (r *Registry) All() []*Operation {
	return append([]*Operation(nil), r.ops...)
}

// Lookup finds an operation by its exact canonical name.
func (r *Registry) Lookup(name string) (*Operation, bool) {
	op, ok := r.byKey[Key(name)]
	if !ok || op.Name != name {
		return nil, false
	}
	return op, true
}

// Names returns the sorted normalized names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byKey))
	for key := range r.byKey {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// Find matches a user token against the registry, ignoring case and dashes.
// A token without the internal prefix also matches a meta-operation, so
// "list" and "@list" both find "@list".
func (r *Registry) Find(token string) (*Operation, bool) {
	norm := Normalize(token)
	op, ok := r.byKey[strings.TrimPrefix(norm, InternalPrefix)]
	if !ok {
		return nil, false
	}
	if strings.HasPrefix(norm, InternalPrefix) && !op.Internal {
		return nil, false
	}
	return op, true
}

// Resolve finds the operation named by token and checks that every required
// argument is present and non-empty in opArgs.
func (r *Registry) Resolve(token string, opArgs map[string]string) (*Operation, error) {
	op, ok := r.Find(token)
	if !ok {
		return nil, &exitcode.UnknownOperationError{Operation: token}
	}
	for _, key := range op.Required {
		if v, ok := opArgs[key]; !ok || v == "" {
			return nil, exitcode.Usagef("operation '%s' requires these arguments: -%s",
				token, strings.Join(op.Required, " -"))
		}
	}
	return op, nil
}

// Complete returns the display names of operations whose normalized name
// starts with the normalized prefix, in declaration order.
func (r *Registry) Complete(prefix string) []string {
	norm := strings.TrimPrefix(Normalize(prefix), InternalPrefix)
	var out []string
	for _, op := range r.ops {
		if strings.HasPrefix(Key(op.Name), norm) {
			out = append(out, DisplayName(op.Name))
		}
	}
	return out
}
