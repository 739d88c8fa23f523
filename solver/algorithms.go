package solver

// AlgorithmType names one of the three solve engines this package wraps.
type AlgorithmType int

const (
	// AlgorithmMaxFlow is push-relabel maximum flow (internal/maxflow).
	AlgorithmMaxFlow AlgorithmType = iota
	// AlgorithmNetworkSimplex is primal Network Simplex min-cost flow
	// (internal/simplex).
	AlgorithmNetworkSimplex
	// AlgorithmCostScaling is ε-scaling push-relabel min-cost flow
	// (internal/costscaling).
	AlgorithmCostScaling
)

// String returns the algorithm's canonical name.
func (a AlgorithmType) String() string {
	switch a {
	case AlgorithmMaxFlow:
		return "max_flow"
	case AlgorithmNetworkSimplex:
		return "network_simplex"
	case AlgorithmCostScaling:
		return "cost_scaling"
	default:
		return "unknown"
	}
}

// AlgorithmInfo describes one engine's complexity and applicability, for
// callers choosing between them without reading the source.
type AlgorithmInfo struct {
	Type          AlgorithmType
	Name          string
	Description   string
	TimeComplexity string
	BestFor        string
	Caveats        string
}

var algorithmRegistry = map[AlgorithmType]*AlgorithmInfo{
	AlgorithmMaxFlow: {
		Type:           AlgorithmMaxFlow,
		Name:           "Push-Relabel Max Flow",
		Description:    "Goldberg-Tarjan push-relabel with highest-label discharge and periodic global relabeling.",
		TimeComplexity: "O(n^2 * sqrt(m))",
		BestFor:        "single source/sink maximum flow and min-cut queries, no costs involved",
		Caveats:        "ignores arc costs entirely; use a min-cost engine when costs matter",
	},
	AlgorithmNetworkSimplex: {
		Type:           AlgorithmNetworkSimplex,
		Name:           "Network Simplex",
		Description:    "Primal simplex specialized to spanning trees, with block-search pivoting.",
		TimeComplexity: "polynomial in practice, no known strongly-polynomial bound for the block-search rule",
		BestFor:        "small to medium sparse graphs, or when dual potentials/reduced costs are needed directly",
		Caveats:        "pivot count can degrade on dense graphs; costscaling.Solver usually dominates above a few thousand arcs",
	},
	AlgorithmCostScaling: {
		Type:           AlgorithmCostScaling,
		Name:           "Cost-Scaling Push-Relabel",
		Description:    "ε-scaling push-relabel minimum-cost flow, generalizing max-flow push-relabel to reduced costs.",
		TimeComplexity: "O(n^2 * m * log(n*C)) where C bounds arc costs",
		BestFor:        "large or dense graphs with integer costs",
		Caveats:        "requires supply to balance exactly (SupplyType EQ); no direct support for GEQ/LEQ problems",
	},
}

// Algorithms returns every registered engine's info, ordered by
// AlgorithmType.
func Algorithms() []*AlgorithmInfo {
	return []*AlgorithmInfo{
		algorithmRegistry[AlgorithmMaxFlow],
		algorithmRegistry[AlgorithmNetworkSimplex],
		algorithmRegistry[AlgorithmCostScaling],
	}
}

// GetAlgorithmInfo looks up a single engine's info.
func GetAlgorithmInfo(t AlgorithmType) (*AlgorithmInfo, bool) {
	info, ok := algorithmRegistry[t]
	return info, ok
}

// RecommendAlgorithm picks an engine from graph shape and problem type.
// maxCapacity <= 0 means the caller only needs a maximum-flow/min-cut
// answer with no arc costs; otherwise a min-cost engine is required, and
// among those, dense or large instances favor cost-scaling while small
// sparse ones favor Network Simplex for its exact dual potentials.
// hasLowerBounds does not change the recommendation today (both min-cost
// engines support lower bounds) but is accepted for parity with the
// teacher's recommendation signature and future engines that might not.
func RecommendAlgorithm(n, m int32, maxCapacity int64, hasLowerBounds bool) AlgorithmType {
	_ = hasLowerBounds
	if maxCapacity <= 0 {
		return AlgorithmMaxFlow
	}
	const denseThreshold = 4.0
	const largeNodeThreshold = 2000
	density := float64(m) / float64(maxInt32(n, 1))
	if n > largeNodeThreshold || density > denseThreshold {
		return AlgorithmCostScaling
	}
	return AlgorithmNetworkSimplex
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
