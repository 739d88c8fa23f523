// Package svector implements a symmetrically growable array whose valid
// indices are [-size, size).
//
// internal/flowgraph.ReverseArcListGraph uses one of these for its
// adjacency-list "next" pointers, which are keyed by signed arc id: a
// forward arc a >= 0 and its reverse ^a < 0 are added to the graph in the
// same AddArc call, so the valid index range grows by exactly one slot on
// each side per call — precisely what Grow provides.
package svector

const growthFactor = 1.3

// SVector is a growable array over [-size, size). Growing the array never
// invalidates indices already in range; it only extends the valid range
// symmetrically (via Grow) or to an arbitrary new size (via Resize).
type SVector[T any] struct {
	buf  []T // length 2*cap, index i maps to buf[mid+i]
	mid  int // offset of index 0 within buf
	size int // current half-length; valid indices are [-size, size)
}

// New constructs an SVector with the given initial half-length.
func New[T any](initialSize int) *SVector[T] {
	if initialSize < 0 {
		panic("svector: initialSize must be >= 0")
	}
	cap := initialSize
	if cap == 0 {
		cap = 1
	}
	return &SVector[T]{
		buf:  make([]T, 2*cap),
		mid:  cap,
		size: initialSize,
	}
}

// Size returns the current half-length; valid indices are [-Size(), Size()).
func (s *SVector[T]) Size() int { return s.size }

// At returns the element at index i, which must satisfy -size <= i < size.
func (s *SVector[T]) At(i int) T {
	return s.buf[s.mid+i]
}

// Set stores v at index i.
func (s *SVector[T]) Set(i int, v T) {
	s.buf[s.mid+i] = v
}

// capLeft reports how many more negative indices fit before the backing
// buffer must grow, and capRight the same for positive indices.
func (s *SVector[T]) capLeft() int  { return s.mid }
func (s *SVector[T]) capRight() int { return len(s.buf) - s.mid }

// Reserve ensures the backing buffer can hold half-length newSize without
// reallocating on the next Grow/Resize up to that size.
func (s *SVector[T]) Reserve(newSize int) {
	if newSize <= s.capLeft() && newSize <= s.capRight() {
		return
	}
	s.realloc(newSize)
}

func (s *SVector[T]) realloc(newCap int) {
	if newCap < s.size {
		newCap = s.size
	}
	grown := int(float64(newCap) * growthFactor)
	if grown < newCap {
		grown = newCap
	}
	newBuf := make([]T, 2*grown)
	newMid := grown
	// Copy the currently valid range [-size, size) into the new buffer
	// centered at newMid.
	copy(newBuf[newMid-s.size:newMid+s.size], s.buf[s.mid-s.size:s.mid+s.size])
	s.buf = newBuf
	s.mid = newMid
}

// Grow appends one element to each end in a single operation, setting
// index -newSize to left and index newSize-1 to right, where newSize is
// the post-growth size. left and right are copied to locals before any
// possible reallocation, since callers may pass existing cells (e.g.
// s.At(0)) as arguments.
func (s *SVector[T]) Grow(left, right T) {
	l, r := left, right
	newSize := s.size + 1
	if newSize > s.capLeft() || newSize > s.capRight() {
		s.realloc(newSize)
	}
	s.size = newSize
	s.Set(-newSize, l)
	s.Set(newSize-1, r)
}

// Resize grows or shrinks the valid range to [-newSize, newSize),
// default-initializing any newly exposed cells on either side. Shrinking
// does not zero the cells that fall out of range; it only reduces Size().
func (s *SVector[T]) Resize(newSize int) {
	if newSize < 0 {
		panic("svector: newSize must be >= 0")
	}
	if newSize <= s.size {
		s.size = newSize
		return
	}
	if newSize > s.capLeft() || newSize > s.capRight() {
		s.realloc(newSize)
	}
	var zero T
	for i := s.size; i < newSize; i++ {
		s.Set(-i-1, zero)
		s.Set(i, zero)
	}
	s.size = newSize
}

// Clear resets Size() to 0 without releasing the backing buffer.
func (s *SVector[T]) Clear() {
	s.size = 0
}

// ClearAndDealloc resets Size() to 0 and releases the backing buffer.
func (s *SVector[T]) ClearAndDealloc() {
	s.buf = nil
	s.mid = 0
	s.size = 0
}

// Swap exchanges the contents of s and other in O(1).
func (s *SVector[T]) Swap(other *SVector[T]) {
	s.buf, other.buf = other.buf, s.buf
	s.mid, other.mid = other.mid, s.mid
	s.size, other.size = other.size, s.size
}
