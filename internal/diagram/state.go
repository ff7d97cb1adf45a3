package diagram

import (
	"fmt"
	"slices"

	"contractlens/internal/model"
)

// VariableID is the node id of stateVariables[i] in the state graph.
func VariableID(i int) string { return fmt.Sprintf("state-%d", i) }

// BuildStateGraph links every function that writes state to the variables it
// modifies. Functions that only read are left out. Function nodes keep the
// id of their index in the model, so function-<i> resolves the same way in
// every graph.
func BuildStateGraph(c *model.AnalyzedContract) Graph {
	b := newBuilder()

	for i, v := range c.StateVariables {
		value := v.InitialValue
		if value == "" {
			value = "(uninitialized)"
		}
		b.node(Node{
			ID:       VariableID(i),
			Kind:     KindVariable,
			Label:    fmt.Sprintf("%s\n%s\n%s", v.Name, v.Type, value),
			Position: Position{X: 200, Y: float64(i * 150)},
			Style:    variableColors.style(200),
		})
	}

	row := 0
	for fi, f := range c.Functions {
		if !c.IsWriter(f.Name) {
			continue
		}
		id := FunctionID(fi)
		b.node(Node{
			ID:       id,
			Kind:     KindFunction,
			Label:    fmt.Sprintf("%s\n%s %s", f.Name, f.Visibility, f.Mutability),
			Category: string(f.FlowCategory),
			Position: Position{X: 500, Y: float64(row * 150)},
			Style:    contractColors.style(200),
		})
		for vi, v := range c.StateVariables {
			if slices.Contains(v.WrittenBy, f.Name) {
				b.edge(Edge{
					Source:   id,
					Target:   VariableID(vi),
					Label:    "modifies",
					Animated: true,
					Style:    Style{Stroke: contractColors.border},
				})
			}
		}
		row++
	}

	return b.graph
}
