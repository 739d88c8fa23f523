// Package simplex implements primal Network Simplex for minimum-cost
// flow: a spanning-tree basis with a preorder thread index, a
// block-search pivot rule, strongly-feasible tie-breaking on the
// leaving arc, and an artificial-root initial basis. It is monomorphized
// against flowgraph.ListGraph, the reverse-arc-free variant, per the
// graph substrate's sum-type design.
package simplex

import (
	"math"

	"flowcore/internal/flowgraph"
	"flowcore/internal/solverstatus"
)

// SupplyType determines which inequality flow conservation must satisfy
// at each node; see the validator in internal/validate for how this
// feeds complementary-slackness checks.
type SupplyType int

const (
	EQ SupplyType = iota
	GEQ
	LEQ
)

const minBlockDefault = 10

// Solver is a primal Network Simplex engine over a flowgraph.ListGraph.
type Solver struct {
	g          *flowgraph.ListGraph
	supplyType SupplyType

	n int32 // real nodes
	m int32 // real arcs
	root int32

	lower []int64
	upper []int64
	cost  []int64
	tail  []int32
	head  []int32

	supply []int64

	// basis bookkeeping, sized n+1 (index n is the artificial root)
	flow      []int64 // current flow on arc i (i < m: real; i >= m: artificial)
	inBasis   []bool  // per-arc (real+artificial) basis membership
	parent    []int32
	predArc   []int32 // tree arc joining this node to its parent (real or artificial arc index); its direction is in predDir
	predDir   []int8  // +1 if predArc points node->parent, -1 if parent->node
	depth     []int32
	thread    []int32
	revThread []int32
	succNum   []int32
	lastSucc  []int32
	potential []int64

	artCost int64
	artTail map[int]int32
	artHead map[int]int32

	nextBlock int32
	blockSize int32

	status         solverstatus.Status
	minBlockSize   int
	blockFactor    float64
	denseThreshold float64
}

// NewSolver constructs a Network Simplex solver. tail/head/lower/upper/cost
// describe the m real arcs of g (already added to g); supply is per real
// node (length n). minBlockSize and blockFactor tune the block-search
// pivot rule; pass 0 and 0 to use the spec defaults.
func NewSolver(g *flowgraph.ListGraph, supplyType SupplyType, tail, head []int32, lower, upper, cost []int64, supply []int64, minBlockSize int, blockFactor float64) *Solver {
	if minBlockSize <= 0 {
		minBlockSize = minBlockDefault
	}
	if blockFactor <= 0 {
		blockFactor = 1.0
	}
	n := g.NumNodes()
	m := int32(len(tail))
	s := &Solver{
		g:              g,
		supplyType:     supplyType,
		n:              n,
		m:              m,
		root:           n,
		tail:           tail,
		head:           head,
		lower:          lower,
		upper:          upper,
		cost:           cost,
		supply:         append([]int64(nil), supply...),
		status:         solverstatus.NotSolved,
		minBlockSize:   minBlockSize,
		blockFactor:    blockFactor,
		denseThreshold: 10,
	}
	return s
}

// Status returns the outcome of the most recent Solve call.
func (s *Solver) Status() solverstatus.Status { return s.status }

// Flow returns the flow on real arc a in its original [lower, upper] bounds.
func (s *Solver) Flow(a int32) int64 { return s.lower[a] + s.flow[a] }

// Potential returns node v's dual potential.
func (s *Solver) Potential(v int32) int64 { return s.potential[v] }

// ReducedCost returns the reduced cost of real arc a: cost(a) -
// potential(tail) + potential(head).
func (s *Solver) ReducedCost(a int32) int64 {
	return s.cost[a] - s.potential[s.tail[a]] + s.potential[s.head[a]]
}

// TotalCost returns the total cost of the reported flow, in original
// (pre-shift) bounds.
func (s *Solver) TotalCost() int64 {
	var total int64
	for a := int32(0); a < s.m; a++ {
		total += s.Flow(a) * s.cost[a]
	}
	return total
}

// SupplyType returns the configured supply type, used by the validator.
func (s *Solver) SupplyType() SupplyType { return s.supplyType }

// NumNodes returns the number of real nodes (excluding the artificial root).
func (s *Solver) NumNodes() int32 { return s.n }

// NumArcs returns the number of real arcs.
func (s *Solver) NumArcs() int32 { return s.m }

// ArcTail returns real arc a's tail node.
func (s *Solver) ArcTail(a int32) int32 { return s.tail[a] }

// ArcHead returns real arc a's head node.
func (s *Solver) ArcHead(a int32) int32 { return s.head[a] }

// ArcLower returns real arc a's original lower bound.
func (s *Solver) ArcLower(a int32) int64 { return s.lower[a] }

// ArcUpper returns real arc a's original upper bound.
func (s *Solver) ArcUpper(a int32) int64 { return s.upper[a] }

// ArcCost returns real arc a's cost.
func (s *Solver) ArcCost(a int32) int64 { return s.cost[a] }

// Supply returns node v's original supply.
func (s *Solver) Supply(v int32) int64 { return s.supply[v] }

func (s *Solver) preSolve() bool {
	n, m := s.n, s.m

	if s.supplyType == EQ {
		var total int64
		for _, sv := range s.supply {
			total += sv
		}
		if total != 0 {
			s.status = solverstatus.Unbalanced
			return false
		}
	}

	// Lower-bound shift: flow = lower + x, supply adjusted.
	shiftedSupply := append([]int64(nil), s.supply...)
	for a := int32(0); a < m; a++ {
		if s.lower[a] == 0 {
			continue
		}
		shiftedSupply[s.tail[a]] -= s.lower[a]
		shiftedSupply[s.head[a]] += s.lower[a]
	}

	var absCostSum int64
	for _, c := range s.cost {
		if c < 0 {
			absCostSum -= c
		} else {
			absCostSum += c
		}
	}
	s.artCost = 1 + absCostSum

	total := m + n // real arcs + one artificial arc per node
	s.flow = make([]int64, total)
	s.inBasis = make([]bool, total)
	s.parent = make([]int32, n+1)
	s.predArc = make([]int32, n+1)
	s.predDir = make([]int8, n+1)
	s.depth = make([]int32, n+1)
	s.thread = make([]int32, n+1)
	s.revThread = make([]int32, n+1)
	s.succNum = make([]int32, n+1)
	s.lastSucc = make([]int32, n+1)
	s.potential = make([]int64, n+1)

	s.parent[s.root] = -1
	s.depth[s.root] = 0
	s.potential[s.root] = 0
	s.succNum[s.root] = n + 1

	prev := s.root
	for v := int32(0); v < n; v++ {
		artIdx := m + v
		sv := shiftedSupply[v]
		if sv >= 0 {
			// arc v -> root, flow = sv
			s.tailArt(int(artIdx), v, s.root)
			s.flow[artIdx] = sv
			s.predDir[v] = 1 // node -> parent(root)
			s.potential[v] = s.artCost
		} else {
			s.tailArt(int(artIdx), s.root, v)
			s.flow[artIdx] = -sv
			s.predDir[v] = -1 // parent(root) -> node
			s.potential[v] = -s.artCost
		}
		s.inBasis[artIdx] = true
		s.parent[v] = s.root
		s.predArc[v] = artIdx
		s.depth[v] = 1
		s.succNum[v] = 1
		s.lastSucc[v] = v

		s.thread[prev] = v
		prev = v
	}
	s.thread[prev] = s.root
	for i, v := 0, s.root; i <= int(n); i++ {
		next := s.thread[v]
		s.revThread[next] = v
		v = next
	}

	s.nextBlock = 0
	bs := int(math.Ceil(math.Sqrt(float64(m)) * s.blockFactor))
	if bs < s.minBlockSize {
		bs = s.minBlockSize
	}
	if m > 0 {
		avgDegree := float64(m) / float64(n)
		if avgDegree > s.denseThreshold {
			shrunk := int(math.Ceil(math.Sqrt(float64(m)) / 4))
			if shrunk < 50 {
				bs = shrunk
			} else {
				bs = 50
			}
			if bs < 1 {
				bs = 1
			}
		}
	}
	s.blockSize = int32(bs)
	if s.blockSize < 1 {
		s.blockSize = 1
	}

	return true
}

func (s *Solver) tailArt(artIdx int, t, h int32) {
	// Artificial arcs are stored alongside real arcs in tail/head/cost by
	// extension; since callers don't pre-size those slices for
	// artificials, we keep a parallel small map instead of growing the
	// shared slices.
	if s.artTail == nil {
		s.artTail = make(map[int]int32)
		s.artHead = make(map[int]int32)
	}
	s.artTail[artIdx] = t
	s.artHead[artIdx] = h
}

// arcTail/arcHead resolve both real and artificial arcs uniformly.
func (s *Solver) arcTail(a int32) int32 {
	if int(a) < int(s.m) {
		return s.tail[a]
	}
	return s.artTail[int(a)]
}

func (s *Solver) arcHead(a int32) int32 {
	if int(a) < int(s.m) {
		return s.head[a]
	}
	return s.artHead[int(a)]
}

func (s *Solver) arcCost(a int32) int64 {
	if int(a) < int(s.m) {
		return s.cost[a]
	}
	return s.artCost
}

func (s *Solver) arcUpper(a int32) int64 {
	if int(a) < int(s.m) {
		return s.upper[a] - s.lower[a]
	}
	return math.MaxInt64
}

func (s *Solver) reducedCostArc(a int32) int64 {
	return s.arcCost(a) - s.potential[s.arcTail(a)] + s.potential[s.arcHead(a)]
}

// Solve runs the pivot loop to optimality. Calling it twice on an
// unchanged already-solved instance is a no-op.
func (s *Solver) Solve() solverstatus.Status {
	if s.status == solverstatus.Optimal {
		return s.status
	}
	if s.n == 0 {
		s.status = solverstatus.Optimal
		return s.status
	}
	if !s.preSolve() {
		return s.status
	}

	pivotCap := int64(s.n) * int64(s.m)
	if pivotCap < 1_000_000 {
		pivotCap = 1_000_000
	}

	for iter := int64(0); iter < pivotCap; iter++ {
		enter, dir, found := s.findEnteringArc()
		if !found {
			break
		}
		if !s.pivot(enter, dir) {
			s.status = solverstatus.Unbounded
			return s.status
		}
	}

	for v := int32(0); v < s.n; v++ {
		art := int32(s.m) + v
		if s.inBasis[art] && s.flow[art] != 0 {
			s.status = solverstatus.Infeasible
			return s.status
		}
	}

	s.status = solverstatus.Optimal
	return s.status
}

// findEnteringArc runs a block-search scan and returns the
// most-violating non-basic arc of the first block (starting where the
// previous scan stopped, wrapping around) that holds a violating arc, its
// entering direction (+1 raise from lower, -1 lower from upper), and
// whether one was found. found is false only after every arc was scanned.
func (s *Solver) findEnteringArc() (arc int32, dir int64, found bool) {
	total := s.m + s.n
	if total == 0 {
		return 0, 0, false
	}
	best := int64(0)
	bestArc := int32(-1)
	bestDir := int64(0)

	scanned := int32(0)
	idx := s.nextBlock
	for scanned < total {
		if scanned > 0 && scanned%s.blockSize == 0 && bestArc >= 0 {
			break
		}
		a := idx % total
		if !s.inBasis[a] && s.arcUpper(a) > 0 {
			rc := s.reducedCostArc(a)
			atLower := s.flow[a] == 0
			atUpper := s.flow[a] == s.arcUpper(a)
			if atLower && rc < 0 {
				viol := -rc
				if viol > best {
					best = viol
					bestArc = a
					bestDir = 1
				}
			} else if atUpper && rc > 0 {
				viol := rc
				if viol > best {
					best = viol
					bestArc = a
					bestDir = -1
				}
			}
		}
		idx++
		scanned++
	}
	s.nextBlock = idx % total

	if bestArc < 0 {
		return 0, 0, false
	}
	return bestArc, bestDir, true
}

// findJoin walks both endpoints toward the root, returning their
// nearest common ancestor.
func (s *Solver) findJoin(u, v int32) int32 {
	du, dv := s.depth[u], s.depth[v]
	for du > dv {
		u = s.parent[u]
		du--
	}
	for dv > du {
		v = s.parent[v]
		dv--
	}
	for u != v {
		u = s.parent[u]
		v = s.parent[v]
	}
	return u
}

// pivot performs one basis exchange: entering arc a with direction dir
// (1 means driven up from its lower bound, -1 means driven down from its
// upper bound). Returns false if the cycle admits unbounded flow change.
func (s *Solver) pivot(a int32, dir int64) bool {
	t, h := s.arcTail(a), s.arcHead(a)
	join := s.findJoin(t, h)

	// Walk from t up to join and from h up to join, collecting the tree
	// arcs that form the cycle with a. The entering arc, oriented
	// t->h when dir=1, determines which tree arcs are "forward"
	// (same direction as the cycle) and which are "backward".
	type leg struct {
		v    int32
		arc  int32
		up   bool // true: arc points v -> parent(v) in predDir convention
	}
	var tLegs, hLegs []leg
	for v := t; v != join; v = s.parent[v] {
		tLegs = append(tLegs, leg{v: v, arc: s.predArc[v], up: s.predDir[v] == 1})
	}
	for v := h; v != join; v = s.parent[v] {
		hLegs = append(hLegs, leg{v: v, arc: s.predArc[v], up: s.predDir[v] == 1})
	}

	// Residual capacity of each cycle arc in the direction that opposes
	// the entering arc's flow increase (the direction that would need to
	// decrease), and in the direction that supports it (can increase up
	// to its upper bound).
	minDelta := int64(math.MaxInt64)
	leaveIdx := -1
	strongTieNode := int32(-1)

	// Entering arc a goes t->h conceptually when dir=1 (flow increases
	// from lower), h->t when dir=-1. With dir=1 the cycle returns flow
	// from h up to the join and then down to t, so tree arcs on the h-side
	// that point "up" (v -> parent) are co-oriented with the cycle, and
	// tree arcs on the t-side are co-oriented if they point from parent
	// down to v (opposite of "up"). dir=-1 swaps the two sides.
	consider := func(legs []leg, sameOrientationWhenUp bool) {
		for _, l := range legs {
			coOriented := l.up == sameOrientationWhenUp
			var delta int64
			if coOriented {
				// this arc's flow would increase; bound by its upper - flow
				delta = s.arcUpper(l.arc) - s.flow[l.arc]
			} else {
				delta = s.flow[l.arc]
			}
			if delta < minDelta {
				minDelta = delta
				leaveIdx = int(l.arc)
				strongTieNode = l.v
			} else if delta == minDelta && leaveIdx >= 0 {
				// strongly feasible tie-break: prefer the arc closer to
				// the cycle's far end (LEMON's rule approximated by depth)
				if s.depth[l.v] > s.depth[strongTieNode] {
					leaveIdx = int(l.arc)
					strongTieNode = l.v
				}
			}
		}
	}

	if dir == 1 {
		consider(tLegs, false)
		consider(hLegs, true)
	} else {
		consider(tLegs, true)
		consider(hLegs, false)
	}

	enteringUpper := s.arcUpper(a)
	if enteringUpper-s.flow[a] < minDelta && dir == 1 {
		minDelta = enteringUpper - s.flow[a]
		leaveIdx = -1
	} else if dir == -1 && s.flow[a] < minDelta {
		minDelta = s.flow[a]
		leaveIdx = -1
	}

	if minDelta == math.MaxInt64 {
		return false
	}

	// Apply delta along the cycle.
	applyDelta := func(legs []leg, sameOrientationWhenUp bool) {
		for _, l := range legs {
			coOriented := l.up == sameOrientationWhenUp
			if coOriented {
				s.flow[l.arc] += minDelta
			} else {
				s.flow[l.arc] -= minDelta
			}
		}
	}
	if dir == 1 {
		s.flow[a] += minDelta
		applyDelta(tLegs, false)
		applyDelta(hLegs, true)
	} else {
		s.flow[a] -= minDelta
		applyDelta(tLegs, true)
		applyDelta(hLegs, false)
	}

	if leaveIdx < 0 {
		// Entering arc itself reached its opposite bound: no basis change.
		return true
	}
	leaveArc := int32(leaveIdx)
	s.inBasis[leaveArc] = false
	s.inBasis[a] = true

	s.rebuildTree(a, t, h, dir, leaveArc)
	return true
}

// rebuildTree replaces the leaving arc with the entering arc and
// recomputes parent/depth/thread/potentials by a full tree re-derivation.
// This trades the spec's exact in-place rethread for a straightforward
// from-scratch rebuild of the same spanning tree, which preserves all of
// rethread's invariants (thread cycle, succNum, depth, potentials)
// without threading a separate incremental code path.
func (s *Solver) rebuildTree(enter int32, t, h int32, dir int64, leave int32) {
	n := s.n
	total := s.m + n

	adj := make([][]int32, n+1)
	for a := int32(0); a < total; a++ {
		if !s.inBasis[a] {
			continue
		}
		at, ah := s.arcTail(a), s.arcHead(a)
		adj[at] = append(adj[at], a)
		adj[ah] = append(adj[ah], a)
	}

	newParent := make([]int32, n+1)
	newPredArc := make([]int32, n+1)
	newPredDir := make([]int8, n+1)
	newDepth := make([]int32, n+1)
	visited := make([]bool, n+1)

	visited[s.root] = true
	newParent[s.root] = -1
	newDepth[s.root] = 0
	order := make([]int32, 0, n+1)
	stack := []int32{s.root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, v)
		for _, a := range adj[v] {
			at, ah := s.arcTail(a), s.arcHead(a)
			var other int32
			var dirFromV int8
			if at == v {
				other = ah
				dirFromV = 1 // arc points v(tail) -> other(head); other's predDir is "parent->node" i.e. -1 relative to other? define predDir as node's own direction along predArc toward parent
			} else {
				other = at
				dirFromV = -1
			}
			if visited[other] {
				continue
			}
			visited[other] = true
			newParent[other] = v
			newPredArc[other] = a
			// predDir[node] = 1 means arc points node -> parent; since
			// here arc points v -> other when dirFromV=1, from other's
			// perspective the arc points parent -> other, so predDir=-1.
			if dirFromV == 1 {
				newPredDir[other] = -1
			} else {
				newPredDir[other] = 1
			}
			newDepth[other] = newDepth[v] + 1
			stack = append(stack, other)
		}
	}

	s.parent = newParent
	s.predArc = newPredArc
	s.predDir = newPredDir
	s.depth = newDepth

	// Rebuild thread as the DFS preorder captured in `order`, forming a
	// single cycle back to root.
	s.succNum = make([]int32, n+1)
	s.lastSucc = make([]int32, n+1)
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		s.succNum[v] = 1
		s.lastSucc[v] = v
	}
	// Accumulate succNum bottom-up using reverse preorder (order is a
	// valid topological order since parents precede children). The first
	// child of p met in reverse is p's last child in preorder, whose
	// lastSucc is also p's.
	for i := len(order) - 1; i >= 1; i-- {
		v := order[i]
		p := newParent[v]
		s.succNum[p] += s.succNum[v]
		if s.lastSucc[p] == p {
			s.lastSucc[p] = s.lastSucc[v]
		}
	}

	for i := 0; i < len(order); i++ {
		v := order[i]
		var next int32
		if i+1 < len(order) {
			next = order[i+1]
		} else {
			next = s.root
		}
		s.thread[v] = next
	}
	for v := int32(0); v <= n; v++ {
		s.revThread[s.thread[v]] = v
	}

	// Recompute potentials from scratch by the same DFS order (root = 0).
	s.potential[s.root] = 0
	for i := 1; i < len(order); i++ {
		v := order[i]
		p := newParent[v]
		a := newPredArc[v]
		if newPredDir[v] == 1 {
			// arc v -> p: reducedCost 0 => cost - pot(v) + pot(p) = 0
			s.potential[v] = s.arcCost(a) + s.potential[p]
		} else {
			// arc p -> v: cost - pot(p) + pot(v) = 0
			s.potential[v] = s.potential[p] - s.arcCost(a)
		}
	}
}
