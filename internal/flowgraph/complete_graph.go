package flowgraph

// CompleteGraph is the implicit complete digraph on n nodes: arc a
// encodes the pair (a/(n-1), a%(n-1) adjusted to skip self), needing no
// arc storage at all. It has no reverse arcs and no Build step — every
// query is O(1) arithmetic.
type CompleteGraph struct {
	n int32
}

// NewCompleteGraph returns the complete digraph on n nodes (no self-loops).
func NewCompleteGraph(n int32) *CompleteGraph { return &CompleteGraph{n: n} }

// NumNodes returns n.
func (g *CompleteGraph) NumNodes() int32 { return g.n }

// NumArcs returns n*(n-1).
func (g *CompleteGraph) NumArcs() int32 {
	if g.n <= 1 {
		return 0
	}
	return g.n * (g.n - 1)
}

// Tail returns the tail node of arc a.
func (g *CompleteGraph) Tail(a Arc) int32 { return a / (g.n - 1) }

// Head returns the head node of arc a, skipping the diagonal.
func (g *CompleteGraph) Head(a Arc) int32 {
	t := g.Tail(a)
	h := a % (g.n - 1)
	if h >= t {
		h++
	}
	return h
}

// OutDegree is n-1 for every node.
func (g *CompleteGraph) OutDegree(int32) int32 { return g.n - 1 }

// ArcBetween returns the arc id from t to h (t != h).
func (g *CompleteGraph) ArcBetween(t, h int32) Arc {
	idx := h
	if h > t {
		idx--
	}
	return t*(g.n-1) + idx
}

// CompleteBipartiteGraph is the implicit complete bipartite digraph
// between a "left" part of size nLeft and a "right" part of size nRight,
// nodes numbered [0, nLeft) then [nLeft, nLeft+nRight). Like
// CompleteGraph, every query is O(1) arithmetic with no arc storage.
type CompleteBipartiteGraph struct {
	nLeft, nRight int32
}

// NewCompleteBipartiteGraph returns the complete bipartite digraph with
// the given part sizes.
func NewCompleteBipartiteGraph(nLeft, nRight int32) *CompleteBipartiteGraph {
	return &CompleteBipartiteGraph{nLeft: nLeft, nRight: nRight}
}

// NumNodes returns nLeft+nRight.
func (g *CompleteBipartiteGraph) NumNodes() int32 { return g.nLeft + g.nRight }

// NumArcs returns nLeft*nRight.
func (g *CompleteBipartiteGraph) NumArcs() int32 { return g.nLeft * g.nRight }

// Tail returns the tail (left-part) node of arc a.
func (g *CompleteBipartiteGraph) Tail(a Arc) int32 { return a / g.nRight }

// Head returns the head (right-part) node of arc a.
func (g *CompleteBipartiteGraph) Head(a Arc) int32 { return g.nLeft + a%g.nRight }

// ArcBetween returns the arc id from left node t to right node h (h
// already offset by nLeft).
func (g *CompleteBipartiteGraph) ArcBetween(t, h int32) Arc {
	return t*g.nRight + (h - g.nLeft)
}
