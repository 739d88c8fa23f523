package flowgraph

import "sort"

// ReverseArcStaticGraph is the build-once reverse-arc graph that the
// MaxFlow and cost-scaling engines target: forward arcs occupy [0, m),
// their opposites are addressed as ^a, and after Build every node's
// combined forward+opposite-incoming adjacency occupies one contiguous
// range for cache-friendly iteration.
type ReverseArcStaticGraph struct {
	numNodes int32
	tailIn   []int32
	headIn   []int32

	built bool

	arcTail []int32 // forward arc -> tail
	arcHead []int32 // forward arc -> head

	// adj is the combined adjacency array: for each node, a contiguous
	// run of signed arc ids (forward, or ^a for arcs the node owns as
	// head), filled in increasing final arc id order, so forward and
	// opposite entries are interleaved but the order is deterministic.
	start []int32 // node -> start offset into adj (len numNodes+1)
	adj   []int32
}

// NewReverseArcStaticGraph constructs an empty ReverseArcStaticGraph.
func NewReverseArcStaticGraph(nodeCap, arcCap int) *ReverseArcStaticGraph {
	return &ReverseArcStaticGraph{
		tailIn: make([]int32, 0, arcCap),
		headIn: make([]int32, 0, arcCap),
	}
}

// NumNodes returns the number of nodes added so far.
func (g *ReverseArcStaticGraph) NumNodes() int32 { return g.numNodes }

// NumArcs returns the number of forward arcs added so far.
func (g *ReverseArcStaticGraph) NumArcs() int32 { return int32(len(g.tailIn)) }

// AddNode extends the node set so that v is valid.
func (g *ReverseArcStaticGraph) AddNode(v int32) {
	if g.built {
		panic("flowgraph: AddNode after Build")
	}
	if v+1 > g.numNodes {
		g.numNodes = v + 1
	}
}

// AddArc stages a forward arc t -> h and returns its pre-Build id.
func (g *ReverseArcStaticGraph) AddArc(t, h int32) Arc {
	if g.built {
		panic("flowgraph: AddArc after Build")
	}
	g.AddNode(t)
	g.AddNode(h)
	a := int32(len(g.tailIn))
	g.tailIn = append(g.tailIn, t)
	g.headIn = append(g.headIn, h)
	return a
}

// Build sorts forward arcs by tail, assigns final forward arc ids, and
// builds the combined forward+opposite-incoming adjacency. It returns a
// permutation mapping original forward arc ids to final ones; callers
// must remap per-arc side tables (capacities, costs) through it. Build is
// idempotent.
func (g *ReverseArcStaticGraph) Build() (perm []int32, ok bool) {
	if g.built {
		return nil, false
	}
	m := len(g.tailIn)
	order := make([]int32, m)
	for i := range order {
		order[i] = int32(i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.tailIn[order[i]] < g.tailIn[order[j]]
	})

	perm = make([]int32, m)
	g.arcTail = make([]int32, m)
	g.arcHead = make([]int32, m)
	for newIdx, oldIdx := range order {
		perm[oldIdx] = int32(newIdx)
		g.arcTail[newIdx] = g.tailIn[oldIdx]
		g.arcHead[newIdx] = g.headIn[oldIdx]
	}

	degree := make([]int32, g.numNodes)
	for a := 0; a < m; a++ {
		degree[g.arcTail[a]]++
		degree[g.arcHead[a]]++
	}
	g.start = make([]int32, g.numNodes+1)
	for v := int32(0); v < g.numNodes; v++ {
		g.start[v+1] = g.start[v] + degree[v]
	}

	g.adj = make([]int32, 2*m)
	cursor := make([]int32, g.numNodes)
	copy(cursor, g.start[:g.numNodes])
	for a := int32(0); a < int32(m); a++ {
		t, h := g.arcTail[a], g.arcHead[a]
		g.adj[cursor[t]] = a
		cursor[t]++
		g.adj[cursor[h]] = Opposite(a)
		cursor[h]++
	}

	g.tailIn = nil
	g.headIn = nil
	g.built = true
	return perm, true
}

// Opposite returns the reverse of a.
func (g *ReverseArcStaticGraph) Opposite(a Arc) Arc { return Opposite(a) }

// Tail returns the tail node of a (forward or reverse). Valid after Build.
func (g *ReverseArcStaticGraph) Tail(a Arc) int32 {
	if a >= 0 {
		return g.arcTail[a]
	}
	return g.arcHead[^a]
}

// Head returns the head node of a (forward or reverse). Valid after Build.
func (g *ReverseArcStaticGraph) Head(a Arc) int32 {
	if a >= 0 {
		return g.arcHead[a]
	}
	return g.arcTail[^a]
}

// OutDegree returns the number of forward arcs leaving v. Valid after
// Build; O(outDegree+inDegree) since the combined adjacency mixes
// directions.
func (g *ReverseArcStaticGraph) OutDegree(v int32) int {
	n := 0
	for _, a := range g.adj[g.start[v]:g.start[v+1]] {
		if a >= 0 {
			n++
		}
	}
	return n
}

// InDegree returns the number of forward arcs entering v.
func (g *ReverseArcStaticGraph) InDegree(v int32) int {
	n := 0
	for _, a := range g.adj[g.start[v]:g.start[v+1]] {
		if a < 0 {
			n++
		}
	}
	return n
}

// OutgoingOrOppositeIncomingArcs returns the full combined adjacency of
// v: forward arcs it owns as tail and opposites of arcs it owns as head.
// This is the iteration basis of every push-relabel loop.
func (g *ReverseArcStaticGraph) OutgoingOrOppositeIncomingArcs(v int32) []Arc {
	return g.adj[g.start[v]:g.start[v+1]]
}

// OutgoingOrOppositeIncomingArcsStartingFrom resumes v's combined
// adjacency iteration from a specific index within its range, identified
// by the arc value itself (linear scan, since the range is small and
// contiguous — O(outDegree+inDegree) worst case, O(1) amortized thanks to
// the caller's cached cursor).
func (g *ReverseArcStaticGraph) OutgoingOrOppositeIncomingArcsStartingFrom(v int32, from Arc) []Arc {
	full := g.adj[g.start[v]:g.start[v+1]]
	if from == NoArc {
		return full
	}
	for i, a := range full {
		if a == from {
			return full[i:]
		}
	}
	return full
}

// OutgoingArcs returns only the arcs v owns as tail, in adjacency order.
func (g *ReverseArcStaticGraph) OutgoingArcs(v int32) []Arc {
	var arcs []Arc
	for _, a := range g.OutgoingOrOppositeIncomingArcs(v) {
		if a >= 0 {
			arcs = append(arcs, a)
		}
	}
	return arcs
}

// IncomingArcs returns the forward arcs v owns as head.
func (g *ReverseArcStaticGraph) IncomingArcs(v int32) []Arc {
	var arcs []Arc
	for _, a := range g.OutgoingOrOppositeIncomingArcs(v) {
		if a < 0 {
			arcs = append(arcs, ^a)
		}
	}
	return arcs
}

// OppositeIncomingArcs returns, for each forward arc entering v, its
// opposite (the arc id as it appears in v's own adjacency list).
func (g *ReverseArcStaticGraph) OppositeIncomingArcs(v int32) []Arc {
	var arcs []Arc
	for _, a := range g.OutgoingOrOppositeIncomingArcs(v) {
		if a < 0 {
			arcs = append(arcs, a)
		}
	}
	return arcs
}

// IsNodeValid reports whether v has been added.
func (g *ReverseArcStaticGraph) IsNodeValid(v int32) bool { return v >= 0 && v < g.numNodes }

// IsArcValid reports whether a's underlying forward arc is valid.
func (g *ReverseArcStaticGraph) IsArcValid(a Arc) bool {
	idx := a
	if idx < 0 {
		idx = ^idx
	}
	return g.built && idx >= 0 && int(idx) < len(g.arcTail)
}

// Built reports whether Build has run.
func (g *ReverseArcStaticGraph) Built() bool { return g.built }

// HasNegativeReverseArcs is always true for this variant.
func (g *ReverseArcStaticGraph) HasNegativeReverseArcs() bool { return true }
