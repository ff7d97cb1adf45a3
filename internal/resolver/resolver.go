// Package resolver infers references between extracted declarations by plain
// substring checks over each function's scope slice.
package resolver

import (
	"strings"

	"contractlens/internal/extractor"
	"contractlens/internal/model"
)

// Edges holds every inferred reference. Slices are indexed like the
// corresponding declaration slice in extractor.Declarations and contain
// function names in declaration order, without duplicates.
type Edges struct {
	Calls     [][]string // per function
	ReadBy    [][]string // per state variable
	WrittenBy [][]string // per state variable
	EmittedBy [][]string // per event
}

// Resolve computes calls, state accesses and emissions.
func Resolve(decls *extractor.Declarations) *Edges {
	names := decls.FunctionNames()

	edges := &Edges{
		Calls:     make([][]string, len(decls.Functions)),
		ReadBy:    make([][]string, len(decls.StateVariables)),
		WrittenBy: make([][]string, len(decls.StateVariables)),
		EmittedBy: make([][]string, len(decls.Events)),
	}

	for i, f := range decls.Functions {
		edges.Calls[i] = Calls(f.Name, f.Scope, names)
	}

	for i, v := range decls.StateVariables {
		edges.ReadBy[i] = functionsWhere(decls.Functions, func(scope string) bool {
			return strings.Contains(scope, v.Name)
		})
		edges.WrittenBy[i] = functionsWhere(decls.Functions, func(scope string) bool {
			return strings.Contains(scope, v.Name+" =")
		})
	}

	for i, e := range decls.Events {
		edges.EmittedBy[i] = []string{}
		// Interface lists carry no bodies, so nothing is ever emitted there.
		if decls.Mode == model.ModeSource && strings.Contains(decls.Text, "emit "+e.Name) {
			edges.EmittedBy[i] = uniqueNames(names)
		}
	}

	return edges
}

// Calls returns the other known function names that appear as "name(" in scope.
func Calls(self, scope string, known []string) []string {
	calls := []string{}
	seen := map[string]bool{self: true}
	for _, name := range known {
		if seen[name] {
			continue
		}
		if strings.Contains(scope, name+"(") {
			calls = append(calls, name)
			seen[name] = true
		}
	}
	return calls
}

func functionsWhere(functions []extractor.FunctionDecl, match func(scope string) bool) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, f := range functions {
		if seen[f.Name] || !match(f.Scope) {
			continue
		}
		out = append(out, f.Name)
		seen[f.Name] = true
	}
	return out
}

func uniqueNames(names []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, n := range names {
		if !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	return out
}
