// Package grouping implements the batching and retry engine behind the
// bridge submitter. A distribution of element outcomes is repartitioned by
// a stack of heuristics between rounds, each resulting group is handed to a
// caller-supplied processing function, and the loop repeats until every
// element is done (succeeded or terminally failed).
//
// The engine performs no I/O and runs no groups concurrently; retries of
// the same element are a normal control path, so processing functions must
// be safe to invoke repeatedly for the same element.
package grouping

// Heuristic repartitions a full round's distribution.
//
// Implementations should:
//   - be deterministic given their input and configuration
//   - preserve every live element (no silent duplication or loss)
//   - never change an element's outcome classification while regrouping,
//     unless that change is the heuristic's stated purpose
//
// A failed Distribute aborts the whole round with no partial effects
// observable by the caller.
type Heuristic[T any] interface {
	Distribute(dist Distribution[T]) (Distribution[T], error)
}

// Excluder is implemented by heuristics that withhold groups from the
// processing step for the round they just distributed. After each
// Distribute pass the drivers ask every heuristic in the stack whether a
// group index is excluded; excluded groups are carried into the round's
// result unchanged instead of being handed to the processing function.
//
// Indices refer to the stack's final distribution, so an excluding
// heuristic is normally placed last in the stack.
type Excluder interface {
	Excluded(index int) bool
}

// Flatten concatenates all groups' outcomes, preserving order across group
// boundaries.
func Flatten[T any](dist Distribution[T]) []Outcome[T] {
	n := 0
	for _, g := range dist {
		n += len(g)
	}
	flat := make([]Outcome[T], 0, n)
	for _, g := range dist {
		flat = append(flat, g...)
	}
	return flat
}
