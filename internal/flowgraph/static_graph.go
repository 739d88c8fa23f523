package flowgraph

import "sort"

// StaticGraph is the build-once, forward-only graph: arcs may be added in
// any order, and Build() sorts them by tail so that any node's outgoing
// arcs occupy one contiguous range, giving O(1) OutDegree and
// cache-friendly iteration.
type StaticGraph struct {
	numNodes int32
	tailIn   []int32 // staging arcs before Build, tail
	headIn   []int32 // staging arcs before Build, head

	built     bool
	start     []int32 // node -> first index into arcHead/arcTail (len numNodes+1)
	arcTail   []int32
	arcHead   []int32
}

// NewStaticGraph constructs an empty StaticGraph with room for nodeCap
// nodes and arcCap arcs without reallocating the staging arrays.
func NewStaticGraph(nodeCap, arcCap int) *StaticGraph {
	return &StaticGraph{
		tailIn: make([]int32, 0, arcCap),
		headIn: make([]int32, 0, arcCap),
	}
}

// NumNodes returns the number of nodes added so far.
func (g *StaticGraph) NumNodes() int32 { return g.numNodes }

// NumArcs returns the number of arcs added so far.
func (g *StaticGraph) NumArcs() int32 { return int32(len(g.tailIn)) }

// AddNode extends the node set so that v is valid.
func (g *StaticGraph) AddNode(v int32) {
	if g.built {
		panic("flowgraph: AddNode after Build")
	}
	if v+1 > g.numNodes {
		g.numNodes = v + 1
	}
}

// AddArc stages a directed arc t -> h and returns its pre-Build id. The
// id is only stable after Build if the caller applies the permutation
// Build returns.
func (g *StaticGraph) AddArc(t, h int32) Arc {
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

// Build sorts arcs by tail and freezes the graph. It returns a
// permutation perm such that the caller's original arc i is now at index
// perm[i]; callers with per-arc side tables (costs, capacities) must
// remap them through perm. Build is idempotent: a second call returns
// (nil, false) and leaves the graph untouched.
func (g *StaticGraph) Build() (perm []int32, ok bool) {
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

	g.start = make([]int32, g.numNodes+1)
	for _, t := range g.arcTail {
		g.start[t+1]++
	}
	for v := int32(0); v < g.numNodes; v++ {
		g.start[v+1] += g.start[v]
	}

	g.tailIn = nil
	g.headIn = nil
	g.built = true
	return perm, true
}

// Tail returns the tail node of arc a. Valid after Build.
func (g *StaticGraph) Tail(a Arc) int32 { return g.arcTail[a] }

// Head returns the head node of arc a. Valid after Build.
func (g *StaticGraph) Head(a Arc) int32 { return g.arcHead[a] }

// OutDegree returns the number of arcs leaving v in O(1). Valid after Build.
func (g *StaticGraph) OutDegree(v int32) int32 { return g.start[v+1] - g.start[v] }

// OutgoingArcs returns the contiguous range of arc ids leaving v, in
// increasing order. Valid after Build.
func (g *StaticGraph) OutgoingArcs(v int32) (from, to Arc) {
	return g.start[v], g.start[v+1]
}

// OutgoingArcsStartingFrom resumes the range of v's outgoing arcs from a
// specific arc within that range.
func (g *StaticGraph) OutgoingArcsStartingFrom(v int32, from Arc) (start, to Arc) {
	return from, g.start[v+1]
}

// IsNodeValid reports whether v has been added.
func (g *StaticGraph) IsNodeValid(v int32) bool { return v >= 0 && v < g.numNodes }

// IsArcValid reports whether a is a valid post-Build arc id.
func (g *StaticGraph) IsArcValid(a Arc) bool {
	return g.built && a >= 0 && int(a) < len(g.arcTail)
}

// Built reports whether Build has run.
func (g *StaticGraph) Built() bool { return g.built }
