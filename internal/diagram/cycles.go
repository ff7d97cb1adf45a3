package diagram

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// callGraph holds the function nodes of a diagram as a gonum graph.
type callGraph struct {
	directed *simple.DirectedGraph
	ids      map[string]int64 // node id -> gonum id
	names    []string         // gonum id -> node id
}

func newCallGraph(g *Graph) *callGraph {
	cg := &callGraph{
		directed: simple.NewDirectedGraph(),
		ids:      map[string]int64{},
	}
	for _, n := range g.Nodes {
		if n.Kind != KindFunction {
			continue
		}
		id := int64(len(cg.names))
		cg.ids[n.ID] = id
		cg.names = append(cg.names, n.ID)
		cg.directed.AddNode(simple.Node(id))
	}
	for _, e := range g.Edges {
		from, fromOK := cg.ids[e.Source]
		to, toOK := cg.ids[e.Target]
		// simple graphs reject self-loops
		if fromOK && toOK && from != to {
			cg.directed.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		}
	}
	return cg
}

// cycles returns the strongly connected components with more than one node,
// as sorted gonum ids, ordered by their smallest member.
func (cg *callGraph) cycles() [][]int64 {
	var out [][]int64
	for _, scc := range topo.TarjanSCC(cg.directed) {
		if len(scc) < 2 {
			continue
		}
		ids := make([]int64, 0, len(scc))
		for _, n := range scc {
			ids = append(ids, n.ID())
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out = append(out, ids)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// MarkCallCycles flags function-to-function edges whose endpoints are in the
// same strongly connected component, i.e. calls that are part of a cycle.
func MarkCallCycles(g *Graph) {
	cg := newCallGraph(g)

	component := map[int64]int{}
	for i, cycle := range cg.cycles() {
		for _, id := range cycle {
			component[id] = i
		}
	}

	for i := range g.Edges {
		from, fromOK := cg.ids[g.Edges[i].Source]
		to, toOK := cg.ids[g.Edges[i].Target]
		if !fromOK || !toOK {
			continue
		}
		cf, ok1 := component[from]
		ct, ok2 := component[to]
		g.Edges[i].Cyclic = ok1 && ok2 && cf == ct
	}
}

// CallCycles returns the function node ids of every call cycle.
func CallCycles(g *Graph) [][]string {
	cg := newCallGraph(g)

	var out [][]string
	for _, cycle := range cg.cycles() {
		names := make([]string, 0, len(cycle))
		for _, id := range cycle {
			names = append(names, cg.names[id])
		}
		out = append(out, names)
	}
	return out
}
