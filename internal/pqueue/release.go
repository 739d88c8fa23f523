//go:build !pqueue_debug

package pqueue

// assertRestrictedPush is a no-op in release builds. A violation of the
// restricted-push precondition indicates a bug in the caller's
// push-relabel loop, not a recoverable runtime condition.
func assertRestrictedPush[T any](q *PriorityQueueRP[T], p int) {}
