package solver

import (
	"context"
	"sync"
)

// BatchTask is one unit of work submitted to SolveBatch: a solve call
// closing over its own solver instance. Each task must operate on a graph
// disjoint from every other task's, since the engines are not safe for
// concurrent use on shared state.
type BatchTask struct {
	Name  string
	Solve func(ctx context.Context) Status
}

// BatchResult pairs a task's name with its outcome, in submission order
// regardless of completion order.
type BatchResult struct {
	Name   string
	Status Status
}

// SolveBatch runs every task on its own goroutine and waits for all of
// them, returning results in the same order the tasks were submitted.
// Legal because each task is expected to own a disjoint graph; this
// function does not itself synchronize access to shared solver state.
func SolveBatch(ctx context.Context, tasks []BatchTask) []BatchResult {
	results := make([]BatchResult, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, task BatchTask) {
			defer wg.Done()
			results[i] = BatchResult{
				Name:   task.Name,
				Status: task.Solve(ctx),
			}
		}(i, task)
	}
	wg.Wait()
	return results
}
