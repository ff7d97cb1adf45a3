package diagram

import (
	"fmt"

	"contractlens/internal/model"
)

// Node ids of the per-function graph.
const SubjectID = "function"

func InputID(i int) string      { return fmt.Sprintf("input-%d", i) }
func ModifierID(i int) string   { return fmt.Sprintf("modifier-%d", i) }
func DependencyID(i int) string { return fmt.Sprintf("dep-%d", i) }
func OutputID(i int) string     { return fmt.Sprintf("output-%d", i) }

const subRowHeight = 80

// BuildFunctionFlow details one function: inputs flow into it, and it flows
// out to its modifiers, the functions it calls and its outputs.
func BuildFunctionFlow(f model.FunctionRecord) Graph {
	b := newBuilder()
	y := 0

	b.node(Node{
		ID:       SubjectID,
		Kind:     KindFunction,
		Label:    fmt.Sprintf("%s\n%s %s", f.Name, f.Visibility, f.Mutability),
		Category: string(f.FlowCategory),
		Position: Position{X: 250, Y: 0},
		Style:    contractColors.style(200),
	})
	y += 100

	for i, in := range f.Inputs {
		id := InputID(i)
		b.node(Node{
			ID:       id,
			Kind:     KindInput,
			Label:    fmt.Sprintf("Input: %s\nType: %s", in.Name, in.Type),
			Position: Position{X: 50, Y: float64(y + i*subRowHeight)},
			Style:    neutralColors.style(150),
		})
		b.edge(Edge{Source: id, Target: SubjectID, Animated: true})
	}

	for i, m := range f.Modifiers {
		id := ModifierID(i)
		b.node(Node{
			ID:       id,
			Kind:     KindModifier,
			Label:    "Modifier: " + m,
			Position: Position{X: 450, Y: float64(y + i*subRowHeight)},
			Style:    eventColors.style(150),
		})
		b.edge(Edge{Source: SubjectID, Target: id, Animated: true})
	}

	if len(f.Calls) > 0 {
		y += max(len(f.Inputs), len(f.Modifiers))*subRowHeight + 50
		for i, dep := range f.Calls {
			id := DependencyID(i)
			b.node(Node{
				ID:       id,
				Kind:     KindDependency,
				Label:    "Calls: " + dep,
				Position: Position{X: 250, Y: float64(y + i*subRowHeight)},
				Style:    variableColors.style(150),
			})
			b.edge(Edge{Source: SubjectID, Target: id, Animated: true})
		}
	}

	if len(f.Outputs) > 0 {
		y += max(len(f.Calls), 1)*subRowHeight + 50
		for i, out := range f.Outputs {
			name := out.Name
			if name == "" {
				name = "return"
			}
			id := OutputID(i)
			b.node(Node{
				ID:       id,
				Kind:     KindOutput,
				Label:    fmt.Sprintf("Output: %s\nType: %s", name, out.Type),
				Position: Position{X: 250, Y: float64(y + i*subRowHeight)},
				Style:    neutralColors.style(150),
			})
			b.edge(Edge{Source: SubjectID, Target: id, Animated: true})
		}
	}

	return b.graph
}
