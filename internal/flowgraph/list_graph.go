package flowgraph

// ListGraph is a dynamic, forward-only graph: arcs are inserted at the
// head of per-node singly linked lists. There is no build step and no
// reverse-arc support; Network Simplex targets this variant because its
// pivot loop never needs opposite(a).
type ListGraph struct {
	numNodes int32
	tail     []int32 // arc -> tail node
	head     []int32 // arc -> head node
	outNext  []int32 // arc -> next arc in tail's list, or NoArc
	firstOut []int32 // node -> first arc in its list, or NoArc
}

// NewListGraph constructs an empty ListGraph with room for nodeCap nodes
// and arcCap arcs without reallocating.
func NewListGraph(nodeCap, arcCap int) *ListGraph {
	g := &ListGraph{
		firstOut: make([]int32, 0, nodeCap),
	}
	g.tail = make([]int32, 0, arcCap)
	g.head = make([]int32, 0, arcCap)
	g.outNext = make([]int32, 0, arcCap)
	return g
}

// NumNodes returns the number of nodes added so far.
func (g *ListGraph) NumNodes() int32 { return g.numNodes }

// NumArcs returns the number of arcs added so far.
func (g *ListGraph) NumArcs() int32 { return int32(len(g.tail)) }

// AddNode extends the node set so that v is valid; nodes between the
// previous count and v are implicitly added with no arcs.
func (g *ListGraph) AddNode(v int32) {
	for int32(len(g.firstOut)) <= v {
		g.firstOut = append(g.firstOut, NoArc)
	}
	if v+1 > g.numNodes {
		g.numNodes = v + 1
	}
}

// AddArc adds a directed arc t -> h and returns its id.
func (g *ListGraph) AddArc(t, h int32) Arc {
	g.AddNode(t)
	g.AddNode(h)
	a := int32(len(g.tail))
	g.tail = append(g.tail, t)
	g.head = append(g.head, h)
	g.outNext = append(g.outNext, g.firstOut[t])
	g.firstOut[t] = a
	return a
}

// Tail returns the tail node of arc a.
func (g *ListGraph) Tail(a Arc) int32 { return g.tail[a] }

// Head returns the head node of arc a.
func (g *ListGraph) Head(a Arc) int32 { return g.head[a] }

// OutDegree counts v's outgoing arcs by walking its list; O(outDegree).
func (g *ListGraph) OutDegree(v int32) int {
	n := 0
	for a := g.firstOut[v]; a != NoArc; a = g.outNext[a] {
		n++
	}
	return n
}

// OutgoingArcs returns every arc leaving v, head of list first (most
// recently added first, since insertion is at the head).
func (g *ListGraph) OutgoingArcs(v int32) []Arc {
	var arcs []Arc
	for a := g.firstOut[v]; a != NoArc; a = g.outNext[a] {
		arcs = append(arcs, a)
	}
	return arcs
}

// OutgoingArcsStartingFrom resumes iteration of v's outgoing arcs from a
// specific arc previously returned by OutgoingArcs/this method, or from
// NoArc to start from the beginning.
func (g *ListGraph) OutgoingArcsStartingFrom(v int32, from Arc) []Arc {
	start := g.firstOut[v]
	if from != NoArc {
		start = from
	}
	var arcs []Arc
	for a := start; a != NoArc; a = g.outNext[a] {
		arcs = append(arcs, a)
	}
	return arcs
}

// IsNodeValid reports whether v has been added.
func (g *ListGraph) IsNodeValid(v int32) bool { return v >= 0 && v < g.numNodes }

// IsArcValid reports whether a has been added.
func (g *ListGraph) IsArcValid(a Arc) bool { return a >= 0 && a < int32(len(g.tail)) }
