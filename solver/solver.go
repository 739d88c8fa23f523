// Package solver is the public entry point: thin wrappers over
// internal/maxflow, internal/simplex, and internal/costscaling that add
// construction from plain node/arc slices, logging, and the result-query
// surface of the external interface.
package solver

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"flowcore/internal/costscaling"
	"flowcore/internal/flowgraph"
	"flowcore/internal/maxflow"
	"flowcore/internal/simplex"
	"flowcore/internal/solverstatus"
	"flowcore/internal/validate"
	"flowcore/pkg/apperror"
	"flowcore/pkg/config"
)

// Status mirrors the engines' shared status vocabulary.
type Status = solverstatus.Status

const (
	NotSolved    = solverstatus.NotSolved
	Optimal      = solverstatus.Optimal
	Infeasible   = solverstatus.Infeasible
	Unbounded    = solverstatus.Unbounded
	IntOverflow  = solverstatus.IntOverflow
	Unbalanced   = solverstatus.Unbalanced
	BadCostRange = solverstatus.BadCostRange
	BadResult    = solverstatus.BadResult
)

// Arc is a directed edge given to a solver constructor.
type Arc struct {
	Tail, Head int32
}

// MaxFlowSolver wraps internal/maxflow with construction from plain
// node/arc data and a solve-id tagged logger.
type MaxFlowSolver struct {
	cfg    *config.Config
	logger *slog.Logger
	solveID string

	graph    *flowgraph.ReverseArcStaticGraph
	capacity []int64
	arcPerm  []int32

	source, sink int32

	engine *maxflow.Solver[int64, int64]
}

// NewMaxFlowSolver constructs a MaxFlowSolver over numNodes nodes and the
// given arcs with parallel capacities. cfg and logger may be nil to use
// defaults.
func NewMaxFlowSolver(numNodes int32, arcs []Arc, capacities []int64, source, sink int32, cfg *config.Config, logger *slog.Logger) *MaxFlowSolver {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := flowgraph.NewReverseArcStaticGraph(int(numNodes), len(arcs))
	for v := int32(0); v < numNodes; v++ {
		g.AddNode(v)
	}
	ids := make([]flowgraph.Arc, len(arcs))
	for i, a := range arcs {
		ids[i] = g.AddArc(a.Tail, a.Head)
	}
	perm, _ := g.Build()
	capacity := make([]int64, g.NumArcs())
	for i, id := range ids {
		capacity[perm[id]] = capacities[i]
	}
	return &MaxFlowSolver{
		cfg:      cfg,
		logger:   logger,
		solveID:  uuid.NewString(),
		graph:    g,
		capacity: capacity,
		arcPerm:  perm,
		source:   source,
		sink:     sink,
	}
}

// Solve runs the push-relabel engine. ctx is checked once, before the
// engine starts; the engine itself does not poll it.
func (s *MaxFlowSolver) Solve(ctx context.Context) Status {
	log := s.logger.With("solve_id", s.solveID, "engine", "maxflow")
	if err := ctx.Err(); err != nil {
		log.Warn("solve not started: context already done", "error", err)
		return NotSolved
	}
	s.engine = maxflow.New[int64, int64](s.graph, s.source, s.sink, s.capacity)
	status := s.engine.Solve()
	log.Info("max flow solved", "status", status.String(), "flow", s.engine.OptimalFlow())
	return status
}

// GetOptimalFlow returns the total flow value. Defined after Solve.
func (s *MaxFlowSolver) GetOptimalFlow() int64 {
	if s.engine == nil {
		return 0
	}
	return s.engine.OptimalFlow()
}

// Flow returns the signed flow on the i-th arc passed to the constructor.
func (s *MaxFlowSolver) Flow(i int) int64 {
	if s.engine == nil {
		return 0
	}
	return s.engine.Flow(s.arcPerm[i])
}

// GetSourceSideMinCut returns the nodes reachable from source over
// positive-residual arcs.
func (s *MaxFlowSolver) GetSourceSideMinCut() []int32 {
	if s.engine == nil {
		return nil
	}
	return s.engine.SourceSideMinCut()
}

// GetSinkSideMinCut returns the nodes reachable from sink over arcs whose
// opposite has positive residual.
func (s *MaxFlowSolver) GetSinkSideMinCut() []int32 {
	if s.engine == nil {
		return nil
	}
	return s.engine.SinkSideMinCut()
}

// NetworkSimplexSolver wraps internal/simplex.
type NetworkSimplexSolver struct {
	cfg     *config.Config
	logger  *slog.Logger
	solveID string

	graph  *flowgraph.ListGraph
	tail   []int32
	head   []int32
	lower  []int64
	upper  []int64
	cost   []int64
	supply []int64
	typ    simplex.SupplyType

	engine *simplex.Solver
}

// NewNetworkSimplexSolver constructs a NetworkSimplexSolver.
func NewNetworkSimplexSolver(numNodes int32, arcs []Arc, lower, upper, cost []int64, supply []int64, typ simplex.SupplyType, cfg *config.Config, logger *slog.Logger) *NetworkSimplexSolver {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := flowgraph.NewListGraph(int(numNodes), len(arcs))
	for v := int32(0); v < numNodes; v++ {
		g.AddNode(v)
	}
	tail := make([]int32, len(arcs))
	head := make([]int32, len(arcs))
	for i, a := range arcs {
		g.AddArc(a.Tail, a.Head)
		tail[i] = a.Tail
		head[i] = a.Head
	}
	return &NetworkSimplexSolver{
		cfg:     cfg,
		logger:  logger,
		solveID: uuid.NewString(),
		graph:   g,
		tail:    tail,
		head:    head,
		lower:   lower,
		upper:   upper,
		cost:    cost,
		supply:  supply,
		typ:     typ,
	}
}

// Solve runs the pivot loop to optimality.
func (s *NetworkSimplexSolver) Solve(ctx context.Context) Status {
	log := s.logger.With("solve_id", s.solveID, "engine", "network_simplex")
	if err := ctx.Err(); err != nil {
		log.Warn("solve not started: context already done", "error", err)
		return NotSolved
	}
	s.engine = simplex.NewSolver(s.graph, s.typ, s.tail, s.head, s.lower, s.upper, s.cost, s.supply,
		s.cfg.NetworkSimplex.MinBlockSize, s.cfg.NetworkSimplex.BlockSizeFactor)
	status := s.engine.Solve()
	log.Info("network simplex solved", "status", status.String())
	return status
}

// Flow returns arc a's flow in original bounds.
func (s *NetworkSimplexSolver) Flow(a int32) int64 {
	if s.engine == nil {
		return 0
	}
	return s.engine.Flow(a)
}

// TotalCost returns the total cost of the reported flow.
func (s *NetworkSimplexSolver) TotalCost() int64 {
	if s.engine == nil {
		return 0
	}
	return s.engine.TotalCost()
}

// Potential returns node v's dual potential.
func (s *NetworkSimplexSolver) Potential(v int32) int64 {
	if s.engine == nil {
		return 0
	}
	return s.engine.Potential(v)
}

// ReducedCost returns arc a's reduced cost.
func (s *NetworkSimplexSolver) ReducedCost(a int32) int64 {
	if s.engine == nil {
		return 0
	}
	return s.engine.ReducedCost(a)
}

// Validate independently re-checks the solved instance's optimality
// conditions, returning every violation found.
func (s *NetworkSimplexSolver) Validate() *apperror.ValidationErrors {
	if s.engine == nil {
		ve := apperror.NewValidationErrors()
		ve.AddError(apperror.CodeNotSolved, "Solve has not been called")
		return ve
	}
	return validate.Validate(s.engine)
}

// CostScalingSolver wraps internal/costscaling.
type CostScalingSolver struct {
	cfg     *config.Config
	logger  *slog.Logger
	solveID string

	graph    *flowgraph.ReverseArcStaticGraph
	lower    []int64
	upper    []int64
	cost     []int64
	supply   []int64
	arcPerm  []int32

	engine *costscaling.Solver
}

// NewCostScalingSolver constructs a CostScalingSolver.
func NewCostScalingSolver(numNodes int32, arcs []Arc, lower, upper, cost []int64, supply []int64, cfg *config.Config, logger *slog.Logger) *CostScalingSolver {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := flowgraph.NewReverseArcStaticGraph(int(numNodes), len(arcs))
	for v := int32(0); v < numNodes; v++ {
		g.AddNode(v)
	}
	ids := make([]flowgraph.Arc, len(arcs))
	for i, a := range arcs {
		ids[i] = g.AddArc(a.Tail, a.Head)
	}
	perm, _ := g.Build()
	finalLower := make([]int64, g.NumArcs())
	finalUpper := make([]int64, g.NumArcs())
	finalCost := make([]int64, g.NumArcs())
	for i, id := range ids {
		finalLower[perm[id]] = lower[i]
		finalUpper[perm[id]] = upper[i]
		finalCost[perm[id]] = cost[i]
	}
	return &CostScalingSolver{
		cfg:     cfg,
		logger:  logger,
		solveID: uuid.NewString(),
		graph:   g,
		lower:   finalLower,
		upper:   finalUpper,
		cost:    finalCost,
		supply:  supply,
		arcPerm: perm,
	}
}

// Solve runs the ε-scaling outer loop.
func (s *CostScalingSolver) Solve(ctx context.Context) Status {
	log := s.logger.With("solve_id", s.solveID, "engine", "cost_scaling")
	if err := ctx.Err(); err != nil {
		log.Warn("solve not started: context already done", "error", err)
		return NotSolved
	}
	s.engine = costscaling.NewSolver(s.graph, s.lower, s.upper, s.cost, s.supply, s.cfg.CostScaling.Alpha)
	status := s.engine.Solve()
	log.Info("cost scaling solved", "status", status.String())
	return status
}

// Flow returns the i-th original arc's flow in original bounds.
func (s *CostScalingSolver) Flow(i int) int64 {
	if s.engine == nil {
		return 0
	}
	return s.engine.Flow(s.arcPerm[i])
}

// TotalCost returns the total cost of the reported flow.
func (s *CostScalingSolver) TotalCost() int64 {
	if s.engine == nil {
		return 0
	}
	return s.engine.TotalCost()
}

// Validate independently re-checks the solved instance's optimality
// conditions.
func (s *CostScalingSolver) Validate() *apperror.ValidationErrors {
	if s.engine == nil {
		ve := apperror.NewValidationErrors()
		ve.AddError(apperror.CodeNotSolved, "Solve has not been called")
		return ve
	}
	return validate.Validate(s.engine)
}
