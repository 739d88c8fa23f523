//go:build pqueue_debug

package pqueue

import "fmt"

func assertRestrictedPush[T any](q *PriorityQueueRP[T], p int) {
	if q.hasItems && p < q.maxSeen-1 {
		panic(fmt.Sprintf("pqueue: restricted push violated: push(p=%d) but currentMaxPriority=%d", p, q.maxSeen))
	}
}
