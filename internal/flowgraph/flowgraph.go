// Package flowgraph implements the graph substrate shared by every
// engine: a family of node/arc containers over dense integer ids, using
// the 0-based bitwise-complement signed-arc convention uniformly
// (opposite(a) = ^a). Each variant is a concrete struct, not an
// interface — the engines are monomorphized against the one variant they
// need, per the substrate's sum-type design.
//
// Arc id 0 is a valid forward arc under this convention; its opposite is
// ^0 = -1, never 0, so "no arc" is represented by a node's adjacency list
// being empty, never by arc id 0 doing double duty.
package flowgraph

// NoArc marks the absence of an arc in a linked adjacency list.
const NoArc int32 = -1 - (1 << 30) // distinct from any ^a for valid a

// Arc is the signed-arc id, either a forward arc (>= 0) or the opposite
// of one (< 0, via bitwise complement). Opposite(Opposite(a)) == a for
// every a produced by a reverse-arc variant.
type Arc = int32

// Opposite returns the reverse of a under the 0-based ~a convention.
func Opposite(a Arc) Arc { return ^a }
