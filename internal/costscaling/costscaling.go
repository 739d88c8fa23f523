// Package costscaling implements minimum-cost flow via ε-scaling
// push-relabel: an outer loop halves (by a configurable factor) an
// admissibility threshold ε while an inner refine pass re-establishes
// ε-optimality, reusing the same discharge/relabel shape as
// internal/maxflow but keyed on reduced cost instead of height.
package costscaling

import (
	"flowcore/internal/flowgraph"
	"flowcore/internal/maxflow"
	"flowcore/internal/pqueue"
	"flowcore/internal/simplex"
	"flowcore/internal/solverstatus"
	"flowcore/internal/zvector"
)

const defaultAlpha = 5

// Solver is a cost-scaling minimum-cost flow engine over a
// ReverseArcStaticGraph, per the graph substrate's monomorphization note
// (cost-scaling targets the same reverse-arc variant as MaxFlow).
type Solver struct {
	g *flowgraph.ReverseArcStaticGraph

	n int32
	m int32

	lower    []int64
	upper    []int64 // original bounds; Solve shifts locally to upper-lower
	cost     []int64 // scaled by (n+1)
	origCost []int64
	supply   []int64 // original per-node supply; Solve shifts locally by incident lower bounds

	alpha int

	residual  *zvector.ZVector[int64]
	potential []int64
	excess    []int64

	status solverstatus.Status
}

// NewSolver constructs a cost-scaling solver over an already-built
// ReverseArcStaticGraph. lower/upper/cost are indexed by forward
// (post-Build) arc id; supply is per node.
func NewSolver(g *flowgraph.ReverseArcStaticGraph, lower, upper, cost, supply []int64, alpha int) *Solver {
	if alpha < 2 {
		alpha = defaultAlpha
	}
	if alpha > 32 {
		alpha = 32
	}
	return &Solver{
		g:        g,
		n:        g.NumNodes(),
		m:        g.NumArcs(),
		lower:    lower,
		upper:    upper,
		origCost: cost,
		supply:   append([]int64(nil), supply...),
		alpha:    alpha,
		status:   solverstatus.NotSolved,
	}
}

// Status returns the outcome of the most recent Solve call.
func (s *Solver) Status() solverstatus.Status { return s.status }

// Flow returns the signed flow on forward arc a, in original bounds.
func (s *Solver) Flow(a flowgraph.Arc) int64 {
	return s.lower[a] + s.residual.At(flowgraph.Opposite(a))
}

// Potential returns node v's dual potential, unscaled back to original
// cost units.
func (s *Solver) Potential(v int32) int64 {
	n1 := int64(s.n + 1)
	p := s.potential[v]
	if p >= 0 {
		return p / n1
	}
	return -((-p + n1 - 1) / n1)
}

// TotalCost returns the total cost of the reported flow in original
// (unscaled) cost units.
func (s *Solver) TotalCost() int64 {
	var total int64
	for a := flowgraph.Arc(0); a < s.m; a++ {
		total += s.Flow(a) * s.origCost[a]
	}
	return total
}

// NumNodes returns the number of nodes in the underlying graph.
func (s *Solver) NumNodes() int32 { return s.n }

// NumArcs returns the number of forward arcs.
func (s *Solver) NumArcs() int32 { return s.m }

// ArcTail returns forward arc a's tail node.
func (s *Solver) ArcTail(a int32) int32 { return s.g.Tail(a) }

// ArcHead returns forward arc a's head node.
func (s *Solver) ArcHead(a int32) int32 { return s.g.Head(a) }

// ArcLower returns forward arc a's original lower bound.
func (s *Solver) ArcLower(a int32) int64 { return s.lower[a] }

// ArcUpper returns forward arc a's original upper bound.
func (s *Solver) ArcUpper(a int32) int64 { return s.upper[a] }

// ArcCost returns forward arc a's original (unscaled) cost.
func (s *Solver) ArcCost(a int32) int64 { return s.origCost[a] }

// Supply returns node v's original supply.
func (s *Solver) Supply(v int32) int64 { return s.supply[v] }

// SupplyType is always EQ: cost-scaling requires exact supply balance.
func (s *Solver) SupplyType() simplex.SupplyType { return simplex.EQ }

// ReducedCost returns forward arc a's reduced cost in original
// (unscaled) cost units.
func (s *Solver) ReducedCost(a int32) int64 {
	n1 := int64(s.n + 1)
	rc := s.reducedCost(a)
	if rc >= 0 {
		return rc / n1
	}
	return -((-rc + n1 - 1) / n1)
}

// checkFeasibility builds a pure capacity projection of the shifted
// problem (shiftedUpper already excludes each arc's lower bound,
// shiftedSupply already accounts for the lower-bound shift) and checks
// that a super-source/super-sink max flow saturates every supply/demand
// arc.
func (s *Solver) checkFeasibility(shiftedUpper, shiftedSupply []int64) bool {
	n := s.n
	srcNode := n
	sinkNode := n + 1
	extra := int32(2)

	builder := flowgraph.NewReverseArcStaticGraph(int(n+extra), int(s.m)+int(n))
	for v := int32(0); v < n+extra; v++ {
		builder.AddNode(v)
	}
	capacity := make([]int64, 0, int(s.m)+int(n))
	orig := make([]flowgraph.Arc, 0, s.m)
	for a := flowgraph.Arc(0); a < s.m; a++ {
		if s.g.Tail(a) == s.g.Head(a) {
			continue
		}
		id := builder.AddArc(s.g.Tail(a), s.g.Head(a))
		orig = append(orig, id)
		capacity = append(capacity, shiftedUpper[a])
	}
	for v := int32(0); v < n; v++ {
		sv := shiftedSupply[v]
		if sv > 0 {
			id := builder.AddArc(srcNode, v)
			orig = append(orig, id)
			capacity = append(capacity, sv)
		} else if sv < 0 {
			id := builder.AddArc(v, sinkNode)
			orig = append(orig, id)
			capacity = append(capacity, -sv)
		}
	}
	perm, _ := builder.Build()
	finalCap := make([]int64, builder.NumArcs())
	for i, id := range orig {
		finalCap[perm[id]] = capacity[i]
	}

	var totalSupply int64
	for _, sv := range shiftedSupply {
		if sv > 0 {
			totalSupply += sv
		}
	}
	if totalSupply == 0 {
		return true
	}

	mf := maxflow.New[int64, int64](builder, srcNode, sinkNode, finalCap)
	mf.Solve()
	return mf.OptimalFlow() == totalSupply
}

// Solve runs the ε-scaling outer loop. Calling it twice on an
// already-Optimal instance is a no-op.
func (s *Solver) Solve() solverstatus.Status {
	if s.status == solverstatus.Optimal {
		return s.status
	}
	if s.n == 0 {
		s.status = solverstatus.Optimal
		return s.status
	}

	var totalSupply int64
	for _, sv := range s.supply {
		totalSupply += sv
	}
	if totalSupply != 0 {
		s.status = solverstatus.Unbalanced
		return s.status
	}

	// Lower-bound shift, mirroring internal/simplex's preSolve: flow on
	// arc a becomes lower[a] + residual flow over [0, upper[a]-lower[a]],
	// and each node's supply is adjusted by the lower-bound flow already
	// forced onto its incident arcs.
	shiftedUpper := make([]int64, s.m)
	shiftedSupply := append([]int64(nil), s.supply...)
	for a := flowgraph.Arc(0); a < s.m; a++ {
		shiftedUpper[a] = s.upper[a] - s.lower[a]
		if s.lower[a] == 0 {
			continue
		}
		shiftedSupply[s.g.Tail(a)] -= s.lower[a]
		shiftedSupply[s.g.Head(a)] += s.lower[a]
	}

	if !s.checkFeasibility(shiftedUpper, shiftedSupply) {
		s.status = solverstatus.Infeasible
		return s.status
	}

	n1 := int64(s.n + 1)
	s.cost = make([]int64, s.m)
	maxAbs := int64(0)
	for a := flowgraph.Arc(0); a < s.m; a++ {
		scaled := s.origCost[a] * n1
		if scaled > (1<<62)/n1 || scaled < -(1<<62)/n1 {
			s.status = solverstatus.BadCostRange
			return s.status
		}
		s.cost[a] = scaled
		abs := scaled
		if abs < 0 {
			abs = -abs
		}
		if abs > maxAbs {
			maxAbs = abs
		}
	}

	s.residual = zvector.New[int64](-int(s.m), int(s.m)-1)
	s.potential = make([]int64, s.n)
	s.excess = make([]int64, s.n)
	for a := flowgraph.Arc(0); a < s.m; a++ {
		cap := int64(0)
		if s.g.Tail(a) != s.g.Head(a) {
			cap = shiftedUpper[a]
		}
		s.residual.Set(a, cap)
		s.residual.Set(flowgraph.Opposite(a), 0)
	}
	for v := int32(0); v < s.n; v++ {
		s.excess[v] = shiftedSupply[v]
	}

	eps := maxAbs
	if eps < 1 {
		eps = 1
	}
	for eps > 1 {
		eps = (eps + int64(s.alpha) - 1) / int64(s.alpha)
		s.refine(eps)
	}
	s.refine(1)

	s.status = solverstatus.Optimal
	return s.status
}

func (s *Solver) reducedCost(a flowgraph.Arc) int64 {
	t, h := s.g.Tail(a), s.g.Head(a)
	if a >= 0 {
		return s.cost[a] - s.potential[t] + s.potential[h]
	}
	return -s.cost[^a] - s.potential[t] + s.potential[h]
}

// refine restores ε-optimality: every arc with positive residual has
// reduced cost > -ε, via an admissibility predicate of residual(a) > 0
// AND reducedCost(a) <= -ε.
func (s *Solver) refine(eps int64) {
	n := s.n
	pq := pqueue.New[int32]()
	firstAdmissible := make([]flowgraph.Arc, n)
	for v := int32(0); v < n; v++ {
		arcs := s.g.OutgoingOrOppositeIncomingArcs(v)
		if len(arcs) > 0 {
			firstAdmissible[v] = arcs[0]
		} else {
			firstAdmissible[v] = flowgraph.NoArc
		}
		if s.excess[v] > 0 {
			pq.Push(v, 0)
		}
	}

	admissible := func(a flowgraph.Arc) bool {
		return s.residual.At(a) > 0 && s.reducedCost(a) <= -eps
	}

	for {
		v, _, ok := pq.Pop()
		if !ok {
			break
		}
		for s.excess[v] > 0 {
			arcs := s.g.OutgoingOrOppositeIncomingArcsStartingFrom(v, firstAdmissible[v])
			pushed := false
			for _, a := range arcs {
				if !admissible(a) {
					continue
				}
				h := s.g.Head(a)
				if h == v {
					h = s.g.Tail(a)
				}
				r := s.residual.At(a)
				push := s.excess[v]
				if push > r {
					push = r
				}
				s.residual.Set(a, r-push)
				s.residual.Set(flowgraph.Opposite(a), s.residual.At(flowgraph.Opposite(a))+push)
				s.excess[v] -= push
				wasInactive := s.excess[h] <= 0
				s.excess[h] += push
				if wasInactive && s.excess[h] > 0 {
					pq.Push(h, 0)
				}
				firstAdmissible[v] = a
				pushed = true
				break
			}
			if pushed {
				continue
			}

			best := int64(0)
			haveBest := false
			var bestArc flowgraph.Arc = flowgraph.NoArc
			for _, a := range s.g.OutgoingOrOppositeIncomingArcs(v) {
				if s.residual.At(a) <= 0 {
					continue
				}
				h := s.g.Head(a)
				if h == v {
					h = s.g.Tail(a)
				}
				var arcCost int64
				if a >= 0 {
					arcCost = s.cost[a]
				} else {
					arcCost = -s.cost[^a]
				}
				candidate := s.potential[h] + arcCost + eps
				if !haveBest || candidate > best {
					best = candidate
					haveBest = true
					bestArc = a
				}
			}
			if !haveBest {
				// disconnected: no residual neighbor to relabel against.
				break
			}
			s.potential[v] = best
			firstAdmissible[v] = bestArc
		}
	}
}
