// Package diagram derives node/edge graphs from an AnalyzedContract.
//
// Every builder is a pure function of the model: ids, ordering and layout are
// identical across calls. Node ids are derived from an entity's ordinal or name
// (function-<i>, event-<i>, role-<name>) and edge ids from their endpoints
// (e-<source>-<target>).
package diagram

// Node kinds.
const (
	KindContract   = "contract"
	KindRole       = "role"
	KindState      = "state"
	KindVariable   = "variable"
	KindFunction   = "function"
	KindEvent      = "event"
	KindSecurity   = "security"
	KindParent     = "parent"
	KindInput      = "input"
	KindOutput     = "output"
	KindModifier   = "modifier"
	KindDependency = "dependency"
)

// Position is a layout coordinate. It carries no meaning beyond grouping.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style holds presentation hints for a node or edge.
type Style struct {
	Background string `json:"background,omitempty"`
	Border     string `json:"border,omitempty"`
	Stroke     string `json:"stroke,omitempty"`
	Width      int    `json:"width,omitempty"`
	Monospace  bool   `json:"monospace,omitempty"`
}

// Node is a vertex of a diagram.
type Node struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Label    string   `json:"label"`
	Category string   `json:"category,omitempty"`
	Position Position `json:"position"`
	Style    Style    `json:"style"`
}

// Edge connects two nodes. Cyclic is set on function-to-function edges that
// belong to a call cycle.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Label    string `json:"label,omitempty"`
	Animated bool   `json:"animated"`
	Category string `json:"category,omitempty"`
	Cyclic   bool   `json:"cyclic,omitempty"`
	Style    Style  `json:"style"`
}

// Graph is the output of every builder.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// EdgeID derives an edge id from its endpoints.
func EdgeID(source, target string) string {
	return "e-" + source + "-" + target
}

// builder accumulates a graph. Edges with an id already present are dropped,
// so the first one wins.
type builder struct {
	graph Graph
	edges map[string]bool
}

func newBuilder() *builder {
	return &builder{
		graph: Graph{Nodes: []Node{}, Edges: []Edge{}},
		edges: map[string]bool{},
	}
}

func (b *builder) node(n Node) {
	b.graph.Nodes = append(b.graph.Nodes, n)
}

func (b *builder) edge(e Edge) {
	e.ID = EdgeID(e.Source, e.Target)
	if b.edges[e.ID] {
		return
	}
	b.edges[e.ID] = true
	b.graph.Edges = append(b.graph.Edges, e)
}
