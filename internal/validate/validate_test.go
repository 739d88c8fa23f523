package validate

import (
	"testing"

	"flowcore/internal/costscaling"
	"flowcore/internal/flowgraph"
	"flowcore/internal/simplex"
)

func buildTransportationSimplex() *simplex.Solver {
	edges := [][2]int32{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {1, 2}}
	costs := []int64{1, 3, 2, 1, 1}
	uppers := []int64{10, 10, 10, 10, 5}
	lowers := []int64{0, 0, 0, 0, 0}
	supply := []int64{10, 0, 0, -10}

	g := flowgraph.NewListGraph(4, len(edges))
	for v := int32(0); v < 4; v++ {
		g.AddNode(v)
	}
	tail := make([]int32, len(edges))
	head := make([]int32, len(edges))
	for i, e := range edges {
		g.AddArc(e[0], e[1])
		tail[i] = e[0]
		head[i] = e[1]
	}
	s := simplex.NewSolver(g, simplex.EQ, tail, head, lowers, uppers, costs, supply, 0, 0)
	s.Solve()
	return s
}

func TestValidateAcceptsOptimalSimplexSolution(t *testing.T) {
	s := buildTransportationSimplex()
	result := Validate(s)
	if result.HasErrors() {
		t.Fatalf("Validate reported errors on an optimal solution: %v", result.ErrorMessages())
	}
}

func buildTransportationCostScaling() *costscaling.Solver {
	edges := [][2]int32{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {1, 2}}
	costs := []int64{1, 3, 2, 1, 1}
	uppers := []int64{10, 10, 10, 10, 5}
	supply := []int64{10, 0, 0, -10}

	g := flowgraph.NewReverseArcStaticGraph(4, len(edges))
	for v := int32(0); v < 4; v++ {
		g.AddNode(v)
	}
	ids := make([]flowgraph.Arc, len(edges))
	for i, e := range edges {
		ids[i] = g.AddArc(e[0], e[1])
	}
	perm, _ := g.Build()
	lower := make([]int64, g.NumArcs())
	upper := make([]int64, g.NumArcs())
	cost := make([]int64, g.NumArcs())
	for i, id := range ids {
		upper[perm[id]] = uppers[i]
		cost[perm[id]] = costs[i]
	}
	s := costscaling.NewSolver(g, lower, upper, cost, supply, 5)
	s.Solve()
	return s
}

func TestValidateAcceptsOptimalCostScalingSolution(t *testing.T) {
	s := buildTransportationCostScaling()
	result := Validate(s)
	if result.HasErrors() {
		t.Fatalf("Validate reported errors on an optimal solution: %v", result.ErrorMessages())
	}
}
