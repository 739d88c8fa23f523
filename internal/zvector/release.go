//go:build !zvector_debug

package zvector

// assertInRange is a no-op in release builds; out-of-range access is a
// programming error and its behavior is undefined (the underlying slice
// index will panic on its own, just without the range context above).
func assertInRange[T any](z *ZVector[T], i int) {}
