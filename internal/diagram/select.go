package diagram

import (
	"strconv"
	"strings"

	"contractlens/internal/errors"
	"contractlens/internal/model"
)

// Mode selects a diagram.
type Mode string

const (
	ModeFlow  Mode = "flow"
	ModeClass Mode = "class"
	ModeState Mode = "state"
)

// ParseMode accepts flow, class and state, and "uml" as an alias of class.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flow":
		return ModeFlow, nil
	case "class", "uml":
		return ModeClass, nil
	case "state":
		return ModeState, nil
	default:
		return "", errors.UnknownDiagram(s)
	}
}

// Build returns the diagram selected by mode.
func Build(c *model.AnalyzedContract, mode string) (Graph, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return Graph{}, err
	}
	switch m {
	case ModeClass:
		return BuildClassGraph(c), nil
	case ModeState:
		return BuildStateGraph(c), nil
	default:
		return BuildFlowGraph(c), nil
	}
}

// ResolveFunction maps a node id of the form function-<i> back to functions[i].
func ResolveFunction(c *model.AnalyzedContract, id string) (*model.FunctionRecord, int, error) {
	suffix, ok := strings.CutPrefix(id, KindFunction+"-")
	if !ok {
		return nil, -1, errors.UnknownNode(id, len(c.Functions))
	}
	i, err := strconv.Atoi(suffix)
	if err != nil || i < 0 || i >= len(c.Functions) || strconv.Itoa(i) != suffix {
		return nil, -1, errors.UnknownNode(id, len(c.Functions))
	}
	return &c.Functions[i], i, nil
}
