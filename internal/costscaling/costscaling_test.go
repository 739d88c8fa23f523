package costscaling

import (
	"testing"

	"flowcore/internal/flowgraph"
	"flowcore/internal/simplex"
	"flowcore/internal/solverstatus"
)

func buildCSGraph(n int32, edges [][2]int32) (*flowgraph.ReverseArcStaticGraph, []flowgraph.Arc) {
	g := flowgraph.NewReverseArcStaticGraph(int(n), len(edges))
	for v := int32(0); v < n; v++ {
		g.AddNode(v)
	}
	ids := make([]flowgraph.Arc, len(edges))
	for i, e := range edges {
		ids[i] = g.AddArc(e[0], e[1])
	}
	perm, _ := g.Build()
	final := make([]flowgraph.Arc, len(edges))
	for i, id := range ids {
		final[i] = perm[id]
	}
	return g, final
}

func TestTransportation4NodeCostScaling(t *testing.T) {
	edges := [][2]int32{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {1, 2}}
	costs := []int64{1, 3, 2, 1, 1}
	uppers := []int64{10, 10, 10, 10, 5}
	supply := []int64{10, 0, 0, -10}

	g, ids := buildCSGraph(4, edges)
	lower := make([]int64, g.NumArcs())
	upper := make([]int64, g.NumArcs())
	cost := make([]int64, g.NumArcs())
	for i, id := range ids {
		upper[id] = uppers[i]
		cost[id] = costs[i]
	}

	s := NewSolver(g, lower, upper, cost, supply, 5)
	status := s.Solve()
	if status != solverstatus.Optimal {
		t.Fatalf("status = %v, want Optimal", status)
	}
	if s.TotalCost() != 30 {
		t.Fatalf("TotalCost() = %d, want 30", s.TotalCost())
	}
}

func TestCrossCheckAgainstSimplex(t *testing.T) {
	edges := [][2]int32{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {1, 2}}
	costs := []int64{1, 3, 2, 1, 1}
	uppers := []int64{10, 10, 10, 10, 5}
	supply := []int64{10, 0, 0, -10}

	g, ids := buildCSGraph(4, edges)
	lower := make([]int64, g.NumArcs())
	upper := make([]int64, g.NumArcs())
	cost := make([]int64, g.NumArcs())
	for i, id := range ids {
		upper[id] = uppers[i]
		cost[id] = costs[i]
	}
	cs := NewSolver(g, lower, upper, cost, supply, 5)
	csStatus := cs.Solve()

	lg := flowgraph.NewListGraph(4, len(edges))
	for v := int32(0); v < 4; v++ {
		lg.AddNode(v)
	}
	tail := make([]int32, len(edges))
	head := make([]int32, len(edges))
	for i, e := range edges {
		lg.AddArc(e[0], e[1])
		tail[i] = e[0]
		head[i] = e[1]
	}
	sx := simplex.NewSolver(lg, simplex.EQ, tail, head, make([]int64, len(edges)), uppers, costs, supply, 0, 0)
	sxStatus := sx.Solve()

	if csStatus != solverstatus.Optimal || sxStatus != solverstatus.Optimal {
		t.Fatalf("statuses = %v / %v, want both Optimal", csStatus, sxStatus)
	}
	if cs.TotalCost() != sx.TotalCost() {
		t.Errorf("cost-scaling total cost %d != simplex total cost %d", cs.TotalCost(), sx.TotalCost())
	}
}

func TestCrossCheckAgainstSimplexWithLowerBound(t *testing.T) {
	// Same transportation instance as TestCrossCheckAgainstSimplex, but
	// arc 0->1 now carries a nonzero lower bound, exercising the
	// lower-bound shift end to end.
	edges := [][2]int32{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {1, 2}}
	costs := []int64{1, 3, 2, 1, 1}
	lowers := []int64{2, 0, 0, 0, 0}
	uppers := []int64{10, 10, 10, 10, 5}
	supply := []int64{10, 0, 0, -10}

	g, ids := buildCSGraph(4, edges)
	lower := make([]int64, g.NumArcs())
	upper := make([]int64, g.NumArcs())
	cost := make([]int64, g.NumArcs())
	for i, id := range ids {
		lower[id] = lowers[i]
		upper[id] = uppers[i]
		cost[id] = costs[i]
	}
	cs := NewSolver(g, lower, upper, cost, supply, 5)
	csStatus := cs.Solve()

	lg := flowgraph.NewListGraph(4, len(edges))
	for v := int32(0); v < 4; v++ {
		lg.AddNode(v)
	}
	tail := make([]int32, len(edges))
	head := make([]int32, len(edges))
	for i, e := range edges {
		lg.AddArc(e[0], e[1])
		tail[i] = e[0]
		head[i] = e[1]
	}
	sx := simplex.NewSolver(lg, simplex.EQ, tail, head, lowers, uppers, costs, supply, 0, 0)
	sxStatus := sx.Solve()

	if csStatus != solverstatus.Optimal || sxStatus != solverstatus.Optimal {
		t.Fatalf("statuses = %v / %v, want both Optimal", csStatus, sxStatus)
	}
	if cs.TotalCost() != sx.TotalCost() {
		t.Errorf("cost-scaling total cost %d != simplex total cost %d", cs.TotalCost(), sx.TotalCost())
	}
	for i := range edges {
		a := ids[i]
		if cs.Flow(a) < lowers[i] || cs.Flow(a) > uppers[i] {
			t.Errorf("arc %d: cost-scaling flow %d outside [%d, %d]", i, cs.Flow(a), lowers[i], uppers[i])
		}
	}
}

func TestUnbalancedSupplyDetected(t *testing.T) {
	g, ids := buildCSGraph(2, [][2]int32{{0, 1}})
	lower := make([]int64, g.NumArcs())
	upper := make([]int64, g.NumArcs())
	cost := make([]int64, g.NumArcs())
	upper[ids[0]] = 10
	cost[ids[0]] = 1
	s := NewSolver(g, lower, upper, cost, []int64{5, 0}, 5)
	if status := s.Solve(); status != solverstatus.Unbalanced {
		t.Fatalf("status = %v, want Unbalanced", status)
	}
}

func TestInfeasibleDetected(t *testing.T) {
	g, ids := buildCSGraph(2, [][2]int32{{0, 1}})
	lower := make([]int64, g.NumArcs())
	upper := make([]int64, g.NumArcs())
	cost := make([]int64, g.NumArcs())
	upper[ids[0]] = 2
	cost[ids[0]] = 1
	s := NewSolver(g, lower, upper, cost, []int64{10, -10}, 5)
	if status := s.Solve(); status != solverstatus.Infeasible {
		t.Fatalf("status = %v, want Infeasible", status)
	}
}
