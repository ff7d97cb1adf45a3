package diagram

import (
	"fmt"
	"strings"

	"contractlens/internal/model"
)

// ParentID is the node id of inheritsFrom[i].
func ParentID(i int) string { return fmt.Sprintf("parent-%d", i) }

// BuildClassGraph renders the contract as a compartmented class box, with
// its parents and events. Only inheritance edges are drawn.
func BuildClassGraph(c *model.AnalyzedContract) Graph {
	b := newBuilder()

	classStyle := contractColors.style(400)
	classStyle.Monospace = true
	b.node(Node{
		ID:       ContractID,
		Kind:     KindContract,
		Label:    classLabel(c),
		Position: Position{X: 300, Y: 0},
		Style:    classStyle,
	})

	for i, parent := range c.InheritsFrom {
		id := ParentID(i)
		b.node(Node{
			ID:       id,
			Kind:     KindParent,
			Label:    parent,
			Position: Position{X: float64(300 + i*200), Y: -100},
			Style:    neutralColors.style(150),
		})
		b.edge(Edge{Source: id, Target: ContractID, Style: Style{Stroke: neutralColors.border}})
	}

	eventStyle := eventColors.style(250)
	eventStyle.Monospace = true
	for i, e := range c.Events {
		b.node(Node{
			ID:       EventID(i),
			Kind:     KindEvent,
			Label:    eventClassLabel(e),
			Position: Position{X: 800, Y: float64(100 + i*150)},
			Style:    eventStyle,
		})
	}

	return b.graph
}

func marker(visibility string) string {
	if visibility == string(model.Private) {
		return "-"
	}
	return "+"
}

func classLabel(c *model.AnalyzedContract) string {
	rule := strings.Repeat("-", 30)

	vars := make([]string, 0, len(c.StateVariables))
	for _, v := range c.StateVariables {
		vars = append(vars, fmt.Sprintf("%s %s: %s", marker(v.Visibility), v.Name, v.Type))
	}

	funcs := make([]string, 0, len(c.Functions))
	for _, f := range c.Functions {
		params := make([]string, 0, len(f.Inputs))
		for _, in := range f.Inputs {
			params = append(params, in.Name+": "+in.Type)
		}
		returns := strings.Join(outputTypes(f.Outputs), ", ")
		if returns == "" {
			returns = "void"
		}
		funcs = append(funcs, fmt.Sprintf("%s %s(%s): %s", marker(string(f.Visibility)), f.Name, strings.Join(params, ", "), returns))
	}

	return c.Name + "\n" + rule + "\n" + strings.Join(vars, "\n") + "\n" + rule + "\n" + strings.Join(funcs, "\n")
}

func eventClassLabel(e model.EventRecord) string {
	fields := make([]string, 0, len(e.Inputs))
	for _, in := range e.Inputs {
		field := fmt.Sprintf("+ %s: %s", in.Name, in.Type)
		if in.Indexed {
			field += " (indexed)"
		}
		fields = append(fields, field)
	}
	return "«event»\n" + e.Name + "\n" + strings.Repeat("-", 20) + "\n" + strings.Join(fields, "\n")
}
