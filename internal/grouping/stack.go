package grouping

import (
	"context"
	"fmt"
)

// ProcessFunc attempts one group and returns its replacement. The engine
// calls it once per group, strictly in order, every round; entries that are
// already done must be returned untouched.
type ProcessFunc[T any] func(group Group[T]) (Group[T], error)

// ProcessCtxFunc is ProcessFunc for processing that blocks on external
// systems. Each call runs to completion before the next group's call
// begins, so at most one call is ever in flight.
type ProcessCtxFunc[T any] func(ctx context.Context, group Group[T]) (Group[T], error)

// Stack composes heuristics in sequence and drives the fixpoint retry
// loop. The payload type is irrelevant to the stack itself; user-defined
// heuristics slot in without modifying the engine.
type Stack[T any] struct {
	heuristics []Heuristic[T]
}

// NewStack returns a stack applying the given heuristics in order each
// round.
func NewStack[T any](heuristics ...Heuristic[T]) *Stack[T] {
	return &Stack[T]{heuristics: heuristics}
}

// Distribute threads the distribution through every heuristic in order,
// stopping at the first error.
func (s *Stack[T]) Distribute(dist Distribution[T]) (Distribution[T], error) {
	var err error
	for _, h := range s.heuristics {
		dist, err = h.Distribute(dist)
		if err != nil {
			return nil, fmt.Errorf("distribute: %w", err)
		}
	}
	return dist, nil
}

// Run drives the synchronous fixpoint loop: repartition, process each
// group in order, and repeat until every outcome in every group is done.
// There is no built-in round cap; bounding retries is the job of a
// heuristic such as Escalate.
func (s *Stack[T]) Run(dist Distribution[T], fn ProcessFunc[T]) (Distribution[T], error) {
	for {
		var err error
		dist, err = s.Distribute(dist)
		if err != nil {
			return nil, err
		}

		next := make(Distribution[T], 0, len(dist))
		for i, g := range dist {
			if s.excluded(i) {
				next = append(next, g)
				continue
			}
			replacement, err := fn(g)
			if err != nil {
				return nil, fmt.Errorf("process group %d: %w", i, err)
			}
			next = append(next, replacement)
		}

		if allDone(next) {
			return next, nil
		}
		dist = next
	}
}

// RunSequential is Run for a blocking processing function. Group order and
// resource usage stay deterministic: each call completes before the next
// begins. The context is handed to the processing function untouched; the
// loop itself has no cancellation of its own.
func (s *Stack[T]) RunSequential(
	ctx context.Context,
	dist Distribution[T],
	fn ProcessCtxFunc[T],
) (Distribution[T], error) {
	for {
		var err error
		dist, err = s.Distribute(dist)
		if err != nil {
			return nil, err
		}

		next := make(Distribution[T], 0, len(dist))
		for i, g := range dist {
			if s.excluded(i) {
				next = append(next, g)
				continue
			}
			replacement, err := fn(ctx, g)
			if err != nil {
				return nil, fmt.Errorf("process group %d: %w", i, err)
			}
			next = append(next, replacement)
		}

		if allDone(next) {
			return next, nil
		}
		dist = next
	}
}

func (s *Stack[T]) excluded(index int) bool {
	for _, h := range s.heuristics {
		if ex, ok := h.(Excluder); ok && ex.Excluded(index) {
			return true
		}
	}
	return false
}

func allDone[T any](dist Distribution[T]) bool {
	for _, g := range dist {
		if !g.AllDone() {
			return false
		}
	}
	return true
}
