package diagram

import (
	"fmt"
	"math"
	"strings"

	"contractlens/internal/model"
)

const (
	flowRowHeight  = 150
	flowRoleHeight = 100
	flowMinSecY    = 500
)

// Fixed node ids of the flow graph.
const (
	ContractID = "contract"
	StateID    = "state"
	SecurityID = "security"
)

// FunctionID is the node id of functions[i].
func FunctionID(i int) string { return fmt.Sprintf("function-%d", i) }

// EventID is the node id of events[i].
func EventID(i int) string { return fmt.Sprintf("event-%d", i) }

// RoleID is the node id of a role.
func RoleID(name string) string { return "role-" + name }

// BuildFlowGraph shows the contract, its roles, state, functions with their
// calls, events with their emitters, and the security findings.
func BuildFlowGraph(c *model.AnalyzedContract) Graph {
	b := newBuilder()
	y := 0.0

	b.node(Node{
		ID:       ContractID,
		Kind:     KindContract,
		Label:    contractLabel(c),
		Position: Position{X: 250, Y: y},
		Style:    contractColors.style(300),
	})
	y += flowRowHeight

	for i, role := range c.Roles {
		id := RoleID(role.Name)
		b.node(Node{
			ID:       id,
			Kind:     KindRole,
			Label:    fmt.Sprintf("Role: %s\nFunctions: %d", role.Name, len(role.Functions)),
			Category: role.Name,
			Position: Position{X: -300, Y: y + float64(i*flowRoleHeight)},
			Style:    neutralColors.style(200),
		})
		b.edge(Edge{Source: ContractID, Target: id, Animated: true, Style: Style{Stroke: neutralColors.border}})
	}

	if len(c.StateVariables) > 0 {
		b.node(Node{
			ID:       StateID,
			Kind:     KindState,
			Label:    stateLabel(c.StateVariables),
			Position: Position{X: -200, Y: y},
			Style:    neutralColors.style(250),
		})
		b.edge(Edge{Source: ContractID, Target: StateID, Style: Style{Stroke: neutralColors.border}})
	}

	for i, f := range c.Functions {
		id := FunctionID(i)
		colors := colorsFor(f.FlowCategory)
		b.node(Node{
			ID:       id,
			Kind:     KindFunction,
			Label:    functionLabel(f),
			Category: string(f.FlowCategory),
			Position: Position{X: 250, Y: y},
			Style:    colors.style(300),
		})
		for _, dep := range f.Calls {
			target := c.FunctionIndex(dep)
			if target < 0 {
				continue
			}
			b.edge(Edge{
				Source:   id,
				Target:   FunctionID(target),
				Animated: true,
				Category: string(f.FlowCategory),
				Style:    Style{Stroke: colors.border},
			})
		}
		b.edge(Edge{
			Source:   ContractID,
			Target:   id,
			Animated: true,
			Category: string(f.FlowCategory),
			Style:    Style{Stroke: colors.border},
		})
		y += flowRowHeight
	}

	for i, e := range c.Events {
		id := EventID(i)
		b.node(Node{
			ID:       id,
			Kind:     KindEvent,
			Label:    eventLabel(e),
			Position: Position{X: 700, Y: float64(100 + i*flowRowHeight)},
			Style:    eventColors.style(250),
		})
		for _, name := range e.EmittedBy {
			if fi := c.FunctionIndex(name); fi >= 0 {
				b.edge(Edge{Source: FunctionID(fi), Target: id, Animated: true, Style: Style{Stroke: eventColors.border}})
			}
		}
		b.edge(Edge{Source: ContractID, Target: id, Animated: true, Style: Style{Stroke: eventColors.border}})
	}

	if len(c.SecurityFindings) > 0 {
		b.node(Node{
			ID:       SecurityID,
			Kind:     KindSecurity,
			Label:    securityLabel(c.SecurityFindings),
			Position: Position{X: -200, Y: math.Max(y, flowMinSecY)},
			Style:    securityColors.style(300),
		})
		for _, finding := range c.SecurityFindings {
			for _, name := range finding.AffectedFunctions {
				if fi := c.FunctionIndex(name); fi >= 0 {
					b.edge(Edge{Source: FunctionID(fi), Target: SecurityID, Animated: true, Style: Style{Stroke: securityColors.border}})
				}
			}
		}
		b.edge(Edge{Source: ContractID, Target: SecurityID, Animated: true, Style: Style{Stroke: securityColors.border}})
	}

	MarkCallCycles(&b.graph)
	return b.graph
}

func contractLabel(c *model.AnalyzedContract) string {
	var sb strings.Builder
	sb.WriteString(c.Name + "\n")
	sb.WriteString("Version: " + c.Version + "\n")
	if len(c.InheritsFrom) > 0 {
		sb.WriteString("Inherits: " + strings.Join(c.InheritsFrom, ", ") + "\n")
	}
	if c.License != "" {
		sb.WriteString("License: " + c.License)
	}
	return sb.String()
}

func stateLabel(vars []model.StateVariableRecord) string {
	entries := make([]string, 0, len(vars))
	for _, v := range vars {
		decl := fmt.Sprintf("%s %s %s", v.Visibility, v.Type, v.Name)
		if v.InitialValue != "" {
			decl += " = " + v.InitialValue
		}
		entries = append(entries, fmt.Sprintf("%s\nAccessed by: %d functions\nModified by: %d functions",
			decl, len(v.ReadBy), len(v.WrittenBy)))
	}
	return "State Variables\n" + strings.Join(entries, "\n\n")
}

func functionLabel(f model.FunctionRecord) string {
	inputs := make([]string, 0, len(f.Inputs))
	for _, in := range f.Inputs {
		inputs = append(inputs, in.Type+" "+in.Name)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s(%s)\n", f.Name, strings.Join(inputs, ", ")))
	if len(f.Outputs) > 0 {
		sb.WriteString("→ " + strings.Join(outputTypes(f.Outputs), ", ") + "\n")
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", f.Visibility, f.Mutability))
	sb.WriteString("Role: " + strings.Join(f.Roles, ", ") + "\n")
	if len(f.Modifiers) > 0 {
		sb.WriteString("Modifiers: " + strings.Join(f.Modifiers, ", ") + "\n")
	}
	if len(f.Calls) > 0 {
		sb.WriteString("Calls: " + strings.Join(f.Calls, ", "))
	}
	return sb.String()
}

func eventLabel(e model.EventRecord) string {
	var sb strings.Builder
	sb.WriteString("Event: " + e.Name + "\n")
	lines := make([]string, 0, len(e.Inputs))
	for _, in := range e.Inputs {
		indexed := ""
		if in.Indexed {
			indexed = "(indexed) "
		}
		lines = append(lines, in.Type+" "+indexed+in.Name)
	}
	sb.WriteString(strings.Join(lines, "\n"))
	if e.Anonymous {
		sb.WriteString("\nanonymous")
	}
	if len(e.EmittedBy) > 0 {
		sb.WriteString("\n\nEmitted by:\n" + strings.Join(e.EmittedBy, "\n"))
	}
	return sb.String()
}

func securityLabel(findings []model.SecurityFinding) string {
	entries := make([]string, 0, len(findings))
	for _, f := range findings {
		entry := fmt.Sprintf("[%s] %s\n", f.Severity, f.Description)
		if len(f.AffectedFunctions) > 0 {
			entry += "Affected: " + strings.Join(f.AffectedFunctions, ", ")
		}
		entries = append(entries, entry)
	}
	return "Security Issues\n" + strings.Join(entries, "\n\n")
}

func outputTypes(params []model.Parameter) []string {
	types := make([]string, 0, len(params))
	for _, p := range params {
		types = append(types, p.Type)
	}
	return types
}
