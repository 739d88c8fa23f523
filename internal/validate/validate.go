// Package validate independently re-derives the optimality conditions a
// solved minimum-cost flow must satisfy: flow conservation, capacity
// bounds, complementary slackness, dual feasibility, and the primal/dual
// cost identity. It never trusts a solver's own status.
package validate

import (
	"fmt"

	"flowcore/internal/simplex"
	"flowcore/pkg/apperror"
)

// Problem is the minimal read-only view a validator needs of a solved
// minimum-cost flow instance, satisfied by internal/simplex.Solver and
// internal/costscaling.Solver alike.
type Problem interface {
	NumNodes() int32
	NumArcs() int32
	ArcTail(a int32) int32
	ArcHead(a int32) int32
	ArcLower(a int32) int64
	ArcUpper(a int32) int64
	ArcCost(a int32) int64
	Supply(v int32) int64
	SupplyType() simplex.SupplyType

	Flow(a int32) int64
	Potential(v int32) int64
	ReducedCost(a int32) int64
	TotalCost() int64
}

// Validate runs the five checks in spec order, returning every violation
// found (it does not stop at the first).
func Validate(p Problem) *apperror.ValidationErrors {
	result := apperror.NewValidationErrors()

	n := p.NumNodes()
	m := p.NumArcs()

	// net is outflow minus inflow, matching the engines' convention that
	// a positive supply marks a source.
	net := make([]int64, n)
	for a := int32(0); a < m; a++ {
		f := p.Flow(a)
		net[p.ArcTail(a)] += f
		net[p.ArcHead(a)] -= f
	}

	for v := int32(0); v < n; v++ {
		sv := p.Supply(v)
		switch p.SupplyType() {
		case simplex.EQ:
			if net[v] != sv {
				result.AddError(apperror.CodeConservationViolation,
					fmt.Sprintf("node %d: net flow %d != supply %d", v, net[v], sv))
			}
		case simplex.GEQ:
			if net[v] < sv {
				result.AddError(apperror.CodeConservationViolation,
					fmt.Sprintf("node %d: net flow %d < supply %d", v, net[v], sv))
			}
		case simplex.LEQ:
			if net[v] > sv {
				result.AddError(apperror.CodeConservationViolation,
					fmt.Sprintf("node %d: net flow %d > supply %d", v, net[v], sv))
			}
		}
	}

	for a := int32(0); a < m; a++ {
		f := p.Flow(a)
		lo, up := p.ArcLower(a), p.ArcUpper(a)
		if f < lo || f > up {
			result.AddError(apperror.CodeFlowViolation,
				fmt.Sprintf("arc %d: flow %d outside [%d, %d]", a, f, lo, up))
		}
	}

	for a := int32(0); a < m; a++ {
		rc := p.ReducedCost(a)
		f := p.Flow(a)
		lo, up := p.ArcLower(a), p.ArcUpper(a)
		if rc > 0 && f != lo {
			result.AddError(apperror.CodeFlowViolation,
				fmt.Sprintf("arc %d: reduced cost %d > 0 but flow %d != lower %d", a, rc, f, lo))
		}
		if rc < 0 && f != up {
			result.AddError(apperror.CodeFlowViolation,
				fmt.Sprintf("arc %d: reduced cost %d < 0 but flow %d != upper %d", a, rc, f, up))
		}
	}

	for v := int32(0); v < n; v++ {
		pot := p.Potential(v)
		sv := p.Supply(v)
		switch p.SupplyType() {
		case simplex.GEQ:
			if net[v] > sv && pot > 0 {
				result.AddError(apperror.CodeFlowImbalance,
					fmt.Sprintf("node %d: net flow %d > supply %d but potential %d > 0", v, net[v], sv, pot))
			}
		case simplex.LEQ:
			if net[v] < sv && pot < 0 {
				result.AddError(apperror.CodeFlowImbalance,
					fmt.Sprintf("node %d: net flow %d < supply %d but potential %d < 0", v, net[v], sv, pot))
			}
		}
	}

	// Total cost = sum of potential*supply + sum of flow*reducedCost, and
	// complementary slackness puts flow at lower when rc > 0 and at upper
	// when rc < 0.
	var dual int64
	for v := int32(0); v < n; v++ {
		dual += p.Potential(v) * p.Supply(v)
	}
	for a := int32(0); a < m; a++ {
		rc := p.ReducedCost(a)
		if rc > 0 {
			dual += p.ArcLower(a) * rc
		} else if rc < 0 {
			dual += p.ArcUpper(a) * rc
		}
	}
	if dual != p.TotalCost() {
		result.AddError(apperror.CodeFlowViolation,
			fmt.Sprintf("dual cost identity violated: primal %d != dual %d", p.TotalCost(), dual))
	}

	return result
}
