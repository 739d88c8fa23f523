package flowgraph

import "flowcore/internal/svector"

// ReverseArcListGraph is the dynamic reverse-arc graph: adding a forward
// arc atomically prepends its reverse onto the head node's list, so every
// node's adjacency list mixes arcs it owns as tail (positive ids) and
// arcs it owns as head (their opposite, negative ids via ^a).
type ReverseArcListGraph struct {
	numNodes int32
	tail     []int32 // forward arc -> tail
	head     []int32 // forward arc -> head

	// next is indexed by signed arc id directly (forward id a >= 0, or
	// ^a < 0 for the reverse), so it grows symmetrically: adding forward
	// arc a extends the valid range by exactly one slot on each side, at
	// a and ^a. svector.SVector is built for exactly this access pattern.
	next *svector.SVector[int32] // signed arc -> next entry (signed) in its list, or NoArc

	firstOut []int32 // node -> first signed arc in its list (forward id or ^a), or NoArc
}

// NewReverseArcListGraph constructs an empty ReverseArcListGraph.
func NewReverseArcListGraph(nodeCap, arcCap int) *ReverseArcListGraph {
	g := &ReverseArcListGraph{}
	g.tail = make([]int32, 0, arcCap)
	g.head = make([]int32, 0, arcCap)
	g.next = svector.New[int32](0)
	g.next.Reserve(arcCap)
	g.firstOut = make([]int32, 0, nodeCap)
	return g
}

// NumNodes returns the number of nodes added so far.
func (g *ReverseArcListGraph) NumNodes() int32 { return g.numNodes }

// NumArcs returns the number of forward arcs added so far.
func (g *ReverseArcListGraph) NumArcs() int32 { return int32(len(g.tail)) }

// AddNode extends the node set so that v is valid.
func (g *ReverseArcListGraph) AddNode(v int32) {
	for int32(len(g.firstOut)) <= v {
		g.firstOut = append(g.firstOut, NoArc)
	}
	if v+1 > g.numNodes {
		g.numNodes = v + 1
	}
}

// AddArc adds a forward arc t -> h and its implicit reverse ^a, returning
// the forward arc's id.
func (g *ReverseArcListGraph) AddArc(t, h int32) Arc {
	g.AddNode(t)
	g.AddNode(h)
	a := int32(len(g.tail))
	g.tail = append(g.tail, t)
	g.head = append(g.head, h)

	// Grow extends next's valid range by one slot on each side, landing
	// exactly on a (the new right extreme) and ^a (the new left extreme).
	g.next.Grow(g.firstOut[h], g.firstOut[t])
	g.firstOut[t] = a
	g.firstOut[h] = Opposite(a)

	return a
}

// Opposite returns the reverse of a.
func (g *ReverseArcListGraph) Opposite(a Arc) Arc { return Opposite(a) }

// Tail returns the tail node of a (forward or reverse).
func (g *ReverseArcListGraph) Tail(a Arc) int32 {
	if a >= 0 {
		return g.tail[a]
	}
	return g.head[^a]
}

// Head returns the head node of a (forward or reverse).
func (g *ReverseArcListGraph) Head(a Arc) int32 {
	if a >= 0 {
		return g.head[a]
	}
	return g.tail[^a]
}

func (g *ReverseArcListGraph) nextInSameList(a Arc) Arc {
	return Arc(g.next.At(int(a)))
}

// OutgoingOrOppositeIncomingArcs returns every signed arc in v's
// adjacency list: forward arcs v owns as tail, and opposites of arcs v
// owns as head. This is the iteration basis of every push-relabel loop.
func (g *ReverseArcListGraph) OutgoingOrOppositeIncomingArcs(v int32) []Arc {
	var arcs []Arc
	for a := g.firstOut[v]; a != NoArc; a = g.nextInSameList(a) {
		arcs = append(arcs, a)
	}
	return arcs
}

// OutgoingOrOppositeIncomingArcsStartingFrom resumes iteration of v's
// adjacency list starting at (and including) from.
func (g *ReverseArcListGraph) OutgoingOrOppositeIncomingArcsStartingFrom(v int32, from Arc) []Arc {
	start := g.firstOut[v]
	if from != NoArc {
		start = from
	}
	var arcs []Arc
	for a := start; a != NoArc; a = g.nextInSameList(a) {
		arcs = append(arcs, a)
	}
	return arcs
}

// OutgoingArcs returns only the arcs v owns as tail.
func (g *ReverseArcListGraph) OutgoingArcs(v int32) []Arc {
	var arcs []Arc
	for _, a := range g.OutgoingOrOppositeIncomingArcs(v) {
		if a >= 0 {
			arcs = append(arcs, a)
		}
	}
	return arcs
}

// IncomingArcs returns the forward arcs v owns as head.
func (g *ReverseArcListGraph) IncomingArcs(v int32) []Arc {
	var arcs []Arc
	for _, a := range g.OutgoingOrOppositeIncomingArcs(v) {
		if a < 0 {
			arcs = append(arcs, ^a)
		}
	}
	return arcs
}

// IsNodeValid reports whether v has been added.
func (g *ReverseArcListGraph) IsNodeValid(v int32) bool { return v >= 0 && v < g.numNodes }

// IsArcValid reports whether a's underlying forward arc has been added.
func (g *ReverseArcListGraph) IsArcValid(a Arc) bool {
	idx := a
	if idx < 0 {
		idx = ^idx
	}
	return idx >= 0 && idx < int32(len(g.tail))
}
