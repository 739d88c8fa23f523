package maxflow

import (
	"testing"

	"flowcore/internal/flowgraph"
	"flowcore/internal/solverstatus"
)

func buildGraph(n int32, edges [][2]int32) (*flowgraph.ReverseArcStaticGraph, []int32) {
	g := flowgraph.NewReverseArcStaticGraph(int(n), len(edges))
	for v := int32(0); v < n; v++ {
		g.AddNode(v)
	}
	ids := make([]int32, len(edges))
	for i, e := range edges {
		ids[i] = g.AddArc(e[0], e[1])
	}
	perm, _ := g.Build()
	final := make([]int32, len(edges))
	for i, id := range ids {
		final[i] = perm[id]
	}
	return g, final
}

func TestLinearChainMaxFlow(t *testing.T) {
	edges := [][2]int32{{0, 1}, {1, 2}, {2, 3}}
	g, ids := buildGraph(4, edges)
	caps := []int32{8, 10, 8}
	capacity := make([]int32, g.NumArcs())
	for i, id := range ids {
		capacity[id] = caps[i]
	}

	s := New[int32, int64](g, 0, 3, capacity)
	status := s.Solve()
	if status != solverstatus.Optimal {
		t.Fatalf("status = %v, want Optimal", status)
	}
	if s.OptimalFlow() != 8 {
		t.Fatalf("OptimalFlow() = %d, want 8", s.OptimalFlow())
	}
	for i, id := range ids {
		if got := s.Flow(id); got != 8 {
			t.Errorf("flow on edge %d = %d, want 8", i, got)
		}
	}
}

func TestDiamondMaxFlow(t *testing.T) {
	edges := [][2]int32{
		{0, 1}, {0, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 5}, {4, 5},
	}
	caps := []int32{10, 10, 5, 5, 5, 5, 10, 10}
	g, ids := buildGraph(6, edges)
	capacity := make([]int32, g.NumArcs())
	for i, id := range ids {
		capacity[id] = caps[i]
	}

	s := New[int32, int64](g, 0, 5, capacity)
	status := s.Solve()
	if status != solverstatus.Optimal {
		t.Fatalf("status = %v, want Optimal", status)
	}
	if s.OptimalFlow() != 20 {
		t.Fatalf("OptimalFlow() = %d, want 20", s.OptimalFlow())
	}
	out01, out02 := s.Flow(ids[0]), s.Flow(ids[1])
	if out01+out02 != 20 {
		t.Errorf("flow(0,1)+flow(0,2) = %d, want 20", out01+out02)
	}
	in35, in45 := s.Flow(ids[6]), s.Flow(ids[7])
	if in35+in45 != 20 {
		t.Errorf("flow(3,5)+flow(4,5) = %d, want 20", in35+in45)
	}
}

func TestSourceEqualsSink(t *testing.T) {
	g, _ := buildGraph(3, [][2]int32{{0, 1}, {1, 2}})
	capacity := make([]int32, g.NumArcs())
	s := New[int32, int64](g, 1, 1, capacity)
	if status := s.Solve(); status != solverstatus.Optimal {
		t.Fatalf("status = %v, want Optimal", status)
	}
	if s.OptimalFlow() != 0 {
		t.Fatalf("OptimalFlow() = %d, want 0", s.OptimalFlow())
	}
}

func TestDisconnectedSourceSink(t *testing.T) {
	g, _ := buildGraph(4, [][2]int32{{0, 1}})
	capacity := []int32{5}
	s := New[int32, int64](g, 0, 3, capacity)
	if status := s.Solve(); status != solverstatus.Optimal {
		t.Fatalf("status = %v, want Optimal", status)
	}
	if s.OptimalFlow() != 0 {
		t.Fatalf("OptimalFlow() = %d, want 0", s.OptimalFlow())
	}
	cut := s.SourceSideMinCut()
	found0 := false
	for _, v := range cut {
		if v == 0 {
			found0 = true
		}
		if v == 3 {
			t.Errorf("source-side min-cut should not contain sink 3")
		}
	}
	if !found0 {
		t.Errorf("source-side min-cut should contain source 0")
	}
}

func TestAntisymmetryInvariant(t *testing.T) {
	edges := [][2]int32{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}}
	caps := []int32{4, 4, 2, 4, 4}
	g, ids := buildGraph(4, edges)
	capacity := make([]int32, g.NumArcs())
	for i, id := range ids {
		capacity[id] = caps[i]
	}
	s := New[int32, int64](g, 0, 3, capacity)
	s.Solve()
	for _, a := range ids {
		if s.Flow(a) != -s.Flow(flowgraph.Opposite(a)) {
			t.Errorf("antisymmetry violated on arc %d", a)
		}
	}
}

func TestMinCutIdentity(t *testing.T) {
	edges := [][2]int32{{0, 1}, {1, 2}}
	caps := []int32{7, 3}
	g, ids := buildGraph(3, edges)
	capacity := make([]int32, g.NumArcs())
	for i, id := range ids {
		capacity[id] = caps[i]
	}
	s := New[int32, int64](g, 0, 2, capacity)
	s.Solve()

	cut := s.SourceSideMinCut()
	inCut := map[int32]bool{}
	for _, v := range cut {
		inCut[v] = true
	}
	var crossing int64
	for i, id := range ids {
		t_ := g.Tail(id)
		h := g.Head(id)
		if inCut[t_] && !inCut[h] {
			crossing += int64(caps[i])
		}
	}
	if crossing != int64(s.OptimalFlow()) {
		t.Errorf("min-cut capacity sum = %d, want %d", crossing, s.OptimalFlow())
	}
}

func TestIntOverflowMaxFlow(t *testing.T) {
	const maxI32 = int32(1<<31 - 1)
	edges := [][2]int32{
		{0, 1}, {0, 1}, {0, 1}, {1, 2},
	}
	g, ids := buildGraph(3, edges)
	capacity := make([]int32, g.NumArcs())
	capacity[ids[0]] = maxI32 / 2
	capacity[ids[1]] = maxI32 / 2
	capacity[ids[2]] = maxI32 / 2
	capacity[ids[3]] = maxI32

	s := New[int32, int32](g, 0, 2, capacity)
	status := s.Solve()
	if status != solverstatus.IntOverflow {
		t.Fatalf("status = %v, want IntOverflow", status)
	}
	if s.OptimalFlow() != maxI32 {
		t.Errorf("OptimalFlow() = %d, want %d", s.OptimalFlow(), maxI32)
	}
}

func TestSolveIsIdempotent(t *testing.T) {
	g, ids := buildGraph(3, [][2]int32{{0, 1}, {1, 2}})
	capacity := make([]int32, g.NumArcs())
	capacity[ids[0]] = 5
	capacity[ids[1]] = 5
	s := New[int32, int64](g, 0, 2, capacity)
	s.Solve()
	first := s.OptimalFlow()
	status := s.Solve()
	if status != solverstatus.Optimal || s.OptimalFlow() != first {
		t.Errorf("second Solve changed result: status=%v flow=%d, want Optimal/%d", status, s.OptimalFlow(), first)
	}
}

func TestSelfLoopIgnored(t *testing.T) {
	g := flowgraph.NewReverseArcStaticGraph(2, 2)
	g.AddNode(0)
	g.AddNode(1)
	self := g.AddArc(0, 0)
	fwd := g.AddArc(0, 1)
	perm, _ := g.Build()
	capacity := make([]int32, g.NumArcs())
	capacity[perm[self]] = 100
	capacity[perm[fwd]] = 5

	s := New[int32, int64](g, 0, 1, capacity)
	s.Solve()
	if s.OptimalFlow() != 5 {
		t.Fatalf("OptimalFlow() = %d, want 5", s.OptimalFlow())
	}
	if s.Flow(perm[self]) != 0 {
		t.Errorf("self-loop should carry zero flow, got %d", s.Flow(perm[self]))
	}
}
