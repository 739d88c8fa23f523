// Package zvector implements a fixed-range array indexable by negative
// integers via a biased base offset.
//
// The residual-capacity array of a reverse-arc graph is addressed by arcs
// that may be negative (the opposite of a forward arc); ZVector lets
// residual[a] be a direct slice access with no conditional on the sign of
// a.
package zvector

// ZVector is a contiguous array over the index range [min, max], both
// inclusive, backed by a single slice with a biased base so At(i) is a
// constant-time access for any i in range.
type ZVector[T any] struct {
	buf  []T
	min  int
	max  int
}

// New constructs a ZVector covering [minIndex, maxIndex]. Both bounds are
// inclusive; minIndex may be negative, zero, or positive but must not
// exceed maxIndex.
func New[T any](minIndex, maxIndex int) *ZVector[T] {
	if minIndex > maxIndex {
		panic("zvector: minIndex must be <= maxIndex")
	}
	return &ZVector[T]{
		buf: make([]T, maxIndex-minIndex+1),
		min: minIndex,
		max: maxIndex,
	}
}

// Min returns the lowest valid index.
func (z *ZVector[T]) Min() int { return z.min }

// Max returns the highest valid index.
func (z *ZVector[T]) Max() int { return z.max }

// Len returns the number of elements, max-min+1.
func (z *ZVector[T]) Len() int { return len(z.buf) }

// At returns the element at index i. Out-of-range access is a programming
// error: checked in debug builds (see debug.go), undefined (it
// will panic via the runtime's own slice bounds check, or silently read
// adjacent memory through an unsafe build — this package never does that)
// in release builds.
func (z *ZVector[T]) At(i int) T {
	assertInRange(z, i)
	return z.buf[i-z.min]
}

// Set stores v at index i.
func (z *ZVector[T]) Set(i int, v T) {
	assertInRange(z, i)
	z.buf[i-z.min] = v
}

// Ptr returns a pointer to the element at index i, for callers that need
// to mutate in place without a second bounds-adjusted lookup.
func (z *ZVector[T]) Ptr(i int) *T {
	assertInRange(z, i)
	return &z.buf[i-z.min]
}

// FillAll sets every element to v.
func (z *ZVector[T]) FillAll(v T) {
	for i := range z.buf {
		z.buf[i] = v
	}
}

// Clear resets every element to the zero value of T.
func (z *ZVector[T]) Clear() {
	var zero T
	z.FillAll(zero)
}

// Clone returns a deep copy of z.
func (z *ZVector[T]) Clone() *ZVector[T] {
	out := &ZVector[T]{
		buf: make([]T, len(z.buf)),
		min: z.min,
		max: z.max,
	}
	copy(out.buf, z.buf)
	return out
}

// CopyFrom overwrites z's contents with other's. Both must share the
// same [min, max] range.
func (z *ZVector[T]) CopyFrom(other *ZVector[T]) {
	if z.min != other.min || z.max != other.max {
		panic("zvector: CopyFrom requires identical index range")
	}
	copy(z.buf, other.buf)
}

// Raw returns the underlying contiguous buffer for bulk iteration. The
// element at Raw()[k] corresponds to index Min()+k.
func (z *ZVector[T]) Raw() []T {
	return z.buf
}
