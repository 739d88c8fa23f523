// Package maxflow implements push-relabel maximum flow over a
// ReverseArcStaticGraph: FIFO source saturation, a BFS-based global
// potential update with excess-stealing, a highest-label discharge loop
// backed by pqueue.PriorityQueueRP, and a DFS-based phase-2 excess
// return to source.
package maxflow

import (
	"reflect"

	"flowcore/internal/flowgraph"
	"flowcore/internal/pqueue"
	"flowcore/internal/solverstatus"
	"flowcore/internal/zvector"
)

// Integer is the numeric constraint shared by ArcFlow and FlowSum type
// parameters: any fixed-width integer type, signed or unsigned.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func maxValue[T Integer]() T {
	var zero T
	bits := reflect.TypeOf(zero).Bits()
	kind := reflect.TypeOf(zero).Kind()
	if kind >= reflect.Uint && kind <= reflect.Uint64 {
		var v uint64 = 1<<uint(bits) - 1
		return T(v)
	}
	var v int64 = 1<<uint(bits-1) - 1
	return T(v)
}

// Solver is a push-relabel maximum flow engine monomorphized against
// ReverseArcStaticGraph, per the graph substrate's sum-type design: the
// engine targets exactly one variant rather than dispatching over an
// interface.
type Solver[AF Integer, FS Integer] struct {
	g      *flowgraph.ReverseArcStaticGraph
	source int32
	sink   int32

	numNodes int32
	numArcs  int32
	maxSum   FS

	capacity []AF // indexed by forward arc id, post-Build
	residual *zvector.ZVector[FS]

	excess          []FS
	potential       []int32
	firstAdmissible []flowgraph.Arc

	pq *pqueue.PriorityQueueRP[int32]

	status       solverstatus.Status
	degenerate   bool // source/sink invalid or equal: trivial Optimal
	sourceCut    []int32
	sinkCut      []int32
	cutsComputed bool
}

// New constructs a Solver over an already-built ReverseArcStaticGraph.
// capacity is indexed by forward (post-Build) arc id; entries for
// self-loops are ignored, per the substrate's documented no-op.
func New[AF Integer, FS Integer](g *flowgraph.ReverseArcStaticGraph, source, sink int32, capacity []AF) *Solver[AF, FS] {
	return &Solver[AF, FS]{
		g:        g,
		source:   source,
		sink:     sink,
		numNodes: g.NumNodes(),
		numArcs:  g.NumArcs(),
		maxSum:   maxValue[FS](),
		capacity: capacity,
		status:   solverstatus.NotSolved,
	}
}

// Status returns the outcome of the most recent Solve call.
func (s *Solver[AF, FS]) Status() solverstatus.Status { return s.status }

// OptimalFlow returns excess[sink], the total flow value. Defined only
// after a Solve call.
func (s *Solver[AF, FS]) OptimalFlow() FS {
	if s.degenerate {
		return 0
	}
	return s.excess[s.sink]
}

// Flow returns the signed flow on arc a: residual(opposite(a)) for a
// forward arc, and -residual(a) for a reverse arc, so that
// Flow(a) == -Flow(Opposite(a)).
func (s *Solver[AF, FS]) Flow(a flowgraph.Arc) FS {
	if s.degenerate {
		return 0
	}
	if a < 0 {
		return -s.residual.At(int(a))
	}
	return s.residual.At(int(flowgraph.Opposite(a)))
}

func (s *Solver[AF, FS]) initializePreflow() {
	n, m := s.numNodes, s.numArcs
	s.excess = make([]FS, n)
	s.potential = make([]int32, n)
	s.firstAdmissible = make([]flowgraph.Arc, n)
	s.residual = zvector.New[FS](-int(m), int(m)-1)

	for v := int32(0); v < n; v++ {
		s.potential[v] = 0
	}
	if s.source >= 0 && s.source < n {
		s.potential[s.source] = n
	}

	for a := flowgraph.Arc(0); a < m; a++ {
		cap := FS(0)
		if s.g.Tail(a) != s.g.Head(a) { // self-loops never carry flow
			cap = FS(s.capacity[a])
		}
		s.residual.Set(a, cap)
		s.residual.Set(flowgraph.Opposite(a), 0)
	}

	for v := int32(0); v < n; v++ {
		arcs := s.g.OutgoingOrOppositeIncomingArcs(v)
		if len(arcs) > 0 {
			s.firstAdmissible[v] = arcs[0]
		} else {
			s.firstAdmissible[v] = flowgraph.NoArc
		}
	}

	s.pq = pqueue.New[int32]()
}

// saturateOutgoingArcsFromSource pushes as much flow as possible out of
// source into neighbors that can still reach the sink (potential <
// numNodes), capping the total out of source at MaxFlowSum. Returns true
// iff any flow was pushed; it does not touch status (Solve checks for
// IntOverflow after the main loop).
func (s *Solver[AF, FS]) saturateOutgoingArcsFromSource() (pushedAny bool) {
	for _, a := range s.g.OutgoingOrOppositeIncomingArcs(s.source) {
		if a < 0 {
			continue
		}
		h := s.g.Head(a)
		if s.potential[h] >= s.numNodes {
			continue
		}
		r := s.residual.At(a)
		if r <= 0 {
			continue
		}
		room := s.maxSum + s.excess[s.source]
		push := r
		if FS(push) > room {
			push = FS(room)
		}
		if push <= 0 {
			continue
		}
		s.residual.Set(a, r-push)
		s.residual.Set(flowgraph.Opposite(a), s.residual.At(flowgraph.Opposite(a))+push)
		s.excess[s.source] -= push
		s.excess[h] += push
		pushedAny = true
	}
	return pushedAny
}

// globalUpdate runs a reverse BFS from sink over residual arcs,
// assigning exact distances-to-sink as potentials, stealing excess from
// already-active nodes it encounters, and repopulating the active queue
// in BFS order.
func (s *Solver[AF, FS]) globalUpdate() {
	n := s.numNodes
	visited := make([]bool, n)
	dist := make([]int32, n)
	queue := make([]int32, 0, n)

	visited[s.sink] = true
	dist[s.sink] = 0
	visited[s.source] = true
	queue = append(queue, s.sink)

	s.pq.Clear()

	head := 0
	for head < len(queue) {
		v := queue[head]
		head++
		// For each arc b touching v, the node on the other end reaches v
		// (in the residual graph, backwards) if residual(opposite(b)) > 0.
		for _, b := range s.g.OutgoingOrOppositeIncomingArcs(v) {
			other := s.g.Head(b)
			if other == v {
				other = s.g.Tail(b)
			}
			if visited[other] {
				continue
			}
			if s.residual.At(flowgraph.Opposite(b)) <= 0 {
				continue
			}
			visited[other] = true
			dist[other] = dist[v] + 1
			s.potential[other] = dist[other]

			if other != s.source && other != s.sink && s.excess[other] > 0 {
				// Excess-stealing: push back through the arc we just
				// discovered (b, from other's perspective the arc into v)
				// as far as it fits, reducing work the discharge loop
				// would otherwise redo.
				back := flowgraph.Opposite(b)
				r := s.residual.At(back)
				push := s.excess[other]
				if FS(push) > FS(r) {
					push = FS(r)
				}
				if push > 0 {
					s.residual.Set(back, r-push)
					s.residual.Set(b, s.residual.At(b)+push)
					s.excess[other] -= push
					s.excess[v] += push
				}
			}

			queue = append(queue, other)
		}
	}

	for v := int32(0); v < n; v++ {
		if !visited[v] {
			s.potential[v] = 2*n - 1
		}
	}

	for _, v := range queue {
		if v != s.sink && v != s.source && s.excess[v] > 0 {
			s.pq.Push(v, int(s.potential[v]))
		}
	}
}

func (s *Solver[AF, FS]) discharge(v int32) {
	n := s.numNodes
	for s.excess[v] > 0 {
		arcs := s.g.OutgoingOrOppositeIncomingArcsStartingFrom(v, s.firstAdmissible[v])
		pushed := false
		for _, a := range arcs {
			r := s.residual.At(a)
			if r <= 0 {
				continue
			}
			tail := v
			head := s.g.Head(a)
			if head == v {
				head = s.g.Tail(a)
			}
			if s.potential[tail] != s.potential[head]+1 {
				continue
			}
			push := s.excess[v]
			if FS(push) > FS(r) {
				push = FS(r)
			}
			s.residual.Set(a, r-push)
			s.residual.Set(flowgraph.Opposite(a), s.residual.At(flowgraph.Opposite(a))+push)
			s.excess[v] -= push
			s.excess[head] += push
			if head != s.source && head != s.sink && s.excess[head] == push {
				s.pq.Push(head, int(s.potential[head]))
			}
			s.firstAdmissible[v] = a
			pushed = true
			break
		}
		if pushed {
			continue
		}

		// Relax-relabel: raise v's potential to 1 + min reachable
		// residual neighbor's potential.
		best := int32(-1)
		var bestArc flowgraph.Arc = flowgraph.NoArc
		for _, a := range s.g.OutgoingOrOppositeIncomingArcs(v) {
			if s.residual.At(a) <= 0 {
				continue
			}
			h := s.g.Head(a)
			if h == v {
				h = s.g.Tail(a)
			}
			if best == -1 || s.potential[h] < best {
				best = s.potential[h]
				bestArc = a
			}
		}
		if best == -1 {
			s.potential[v] = 2*n - 1
			s.firstAdmissible[v] = flowgraph.NoArc
			return
		}
		s.potential[v] = best + 1
		s.firstAdmissible[v] = bestArc
		if s.potential[v] >= n {
			return
		}
	}
}

// pushFlowExcessBackToSource runs the phase-2 DFS that returns excess
// stranded at intermediate nodes back to source, cancelling cycles
// along the way.
func (s *Solver[AF, FS]) pushFlowExcessBackToSource() {
	n := s.numNodes
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int8, n)
	var order []int32

	var dfs func(v int32)
	dfs = func(v int32) {
		color[v] = gray
		for _, b := range s.g.OutgoingOrOppositeIncomingArcs(v) {
			other := s.g.Head(b)
			if other == v {
				other = s.g.Tail(b)
			}
			if other == s.source || other == s.sink {
				continue
			}
			if s.residual.At(flowgraph.Opposite(b)) <= 0 {
				continue
			}
			if color[other] == white {
				dfs(other)
			}
			// gray neighbor: a cycle; cancel along it by routing excess
			// directly (handled by the reverse-topological push below).
		}
		color[v] = black
		order = append(order, v)
	}

	for v := int32(0); v < n; v++ {
		if v == s.source || v == s.sink {
			continue
		}
		if color[v] == white && s.excess[v] > 0 {
			dfs(v)
		}
	}

	// order is a reverse-topological walk of nodes reachable from active
	// excess; push each node's excess out along any arc whose opposite
	// has spare residual (a path back toward source), preferring arcs
	// that lead to nodes already drained.
	for _, v := range order {
		for s.excess[v] > 0 {
			var chosen flowgraph.Arc = flowgraph.NoArc
			for _, b := range s.g.OutgoingOrOppositeIncomingArcs(v) {
				rev := flowgraph.Opposite(b)
				if s.residual.At(rev) <= 0 {
					continue
				}
				if s.g.Head(b) == v && s.g.Tail(b) == v {
					continue // self-loop
				}
				chosen = rev
				break
			}
			if chosen == flowgraph.NoArc {
				break
			}
			other := s.g.Head(chosen)
			if other == v {
				other = s.g.Tail(chosen)
			}
			r := s.residual.At(chosen)
			push := s.excess[v]
			if FS(push) > FS(r) {
				push = FS(r)
			}
			s.residual.Set(chosen, r-push)
			s.residual.Set(flowgraph.Opposite(chosen), s.residual.At(flowgraph.Opposite(chosen))+push)
			s.excess[v] -= push
			s.excess[other] += push
		}
	}
}

// Solve runs the push-relabel main loop. Calling Solve again on an
// already-Optimal or IntOverflow instance is a no-op that returns the
// cached status.
func (s *Solver[AF, FS]) Solve() solverstatus.Status {
	if s.status == solverstatus.Optimal || s.status == solverstatus.IntOverflow {
		return s.status
	}

	if s.source < 0 || s.source >= s.numNodes || s.sink < 0 || s.sink >= s.numNodes || s.source == s.sink {
		s.degenerate = true
		s.status = solverstatus.Optimal
		return s.status
	}

	s.initializePreflow()

	for {
		pushed := s.saturateOutgoingArcsFromSource()
		s.globalUpdate()
		for {
			v, _, ok := s.pq.Pop()
			if !ok {
				break
			}
			s.discharge(v)
		}
		if !pushed {
			break
		}
		// Check whether any further source arc could still push (only
		// possible if relabeling reopened a previously-blocked head).
		more := false
		for _, a := range s.g.OutgoingOrOppositeIncomingArcs(s.source) {
			if a >= 0 && s.residual.At(a) > 0 && s.potential[s.g.Head(a)] < s.numNodes {
				more = true
				break
			}
		}
		if !more {
			break
		}
	}

	s.pushFlowExcessBackToSource()

	s.status = solverstatus.Optimal
	if s.excess[s.sink] == s.maxSum {
		if s.sourceSideReachesSink() {
			s.status = solverstatus.IntOverflow
		}
	}
	return s.status
}

func (s *Solver[AF, FS]) sourceSideReachesSink() bool {
	cut := s.computeSourceSideMinCut()
	for _, v := range cut {
		if v == s.sink {
			return true
		}
	}
	return false
}

func (s *Solver[AF, FS]) computeSourceSideMinCut() []int32 {
	n := s.numNodes
	visited := make([]bool, n)
	visited[s.source] = true
	queue := []int32{s.source}
	for i := 0; i < len(queue); i++ {
		v := queue[i]
		for _, a := range s.g.OutgoingOrOppositeIncomingArcs(v) {
			other := s.g.Head(a)
			if other == v {
				other = s.g.Tail(a)
			}
			if visited[other] || s.residual.At(a) <= 0 {
				continue
			}
			visited[other] = true
			queue = append(queue, other)
		}
	}
	return queue
}

func (s *Solver[AF, FS]) computeSinkSideMinCut() []int32 {
	n := s.numNodes
	visited := make([]bool, n)
	visited[s.sink] = true
	queue := []int32{s.sink}
	for i := 0; i < len(queue); i++ {
		v := queue[i]
		for _, a := range s.g.OutgoingOrOppositeIncomingArcs(v) {
			other := s.g.Head(a)
			if other == v {
				other = s.g.Tail(a)
			}
			if visited[other] || s.residual.At(flowgraph.Opposite(a)) <= 0 {
				continue
			}
			visited[other] = true
			queue = append(queue, other)
		}
	}
	return queue
}

// SourceSideMinCut returns the nodes reachable from source over positive
// residual arcs. Defined after Solve.
func (s *Solver[AF, FS]) SourceSideMinCut() []int32 {
	if s.degenerate {
		return []int32{s.source}
	}
	if !s.cutsComputed {
		s.sourceCut = s.computeSourceSideMinCut()
		s.sinkCut = s.computeSinkSideMinCut()
		s.cutsComputed = true
	}
	return s.sourceCut
}

// SinkSideMinCut returns the nodes reachable from sink over arcs whose
// opposite has positive residual. Defined after Solve.
func (s *Solver[AF, FS]) SinkSideMinCut() []int32 {
	if s.degenerate {
		return []int32{s.sink}
	}
	if !s.cutsComputed {
		s.sourceCut = s.computeSourceSideMinCut()
		s.sinkCut = s.computeSinkSideMinCut()
		s.cutsComputed = true
	}
	return s.sinkCut
}
