package grouping

// Group is the ordered set of element outcomes processed together in one
// round. Order is significant: operations preserve it unless reordering is
// their stated purpose.
type Group[T any] []Outcome[T]

// Distribution is the full ordered set of groups for one round.
type Distribution[T any] = []Group[T]

// NewAllSuccess returns a group of n succeeded outcomes, used to seed a
// nothing-to-do state.
func NewAllSuccess[T any](n int) Group[T] {
	g := make(Group[T], n)
	for i := range g {
		g[i] = NewSuccess[T]()
	}
	return g
}

// NewApplyGroup wraps each raw element as a pending outcome.
func NewApplyGroup[T any](elems []T) Group[T] {
	g := make(Group[T], 0, len(elems))
	for _, e := range elems {
		g = append(g, NewApply(e))
	}
	return g
}

// NewApplyDistribution places all elements into a single pending group in
// the 0th position of a new distribution.
func NewApplyDistribution[T any](elems []T) Distribution[T] {
	return Distribution[T]{NewApplyGroup(elems)}
}

// AllSucceeded reports whether every member of the group succeeded.
func (g Group[T]) AllSucceeded() bool {
	for _, o := range g {
		if !o.IsSuccess() {
			return false
		}
	}
	return true
}

// AllDone reports whether every member needs no further processing.
func (g Group[T]) AllDone() bool {
	for _, o := range g {
		if !o.IsDone() {
			return false
		}
	}
	return true
}

// AllToTerminal converts every failure in the group to a terminal failure
// and every pending element to a terminal failure. Used by heuristics that
// abandon a whole group at once.
func (g Group[T]) AllToTerminal() Group[T] {
	out := make(Group[T], len(g))
	for i, o := range g {
		out[i] = o.ToTerminal()
	}
	return out
}

// AllToApply re-arms every failed member of the group for another attempt.
func (g Group[T]) AllToApply() Group[T] {
	out := make(Group[T], len(g))
	for i, o := range g {
		out[i] = o.ToApply()
	}
	return out
}

// IntoOriginal extracts every live element (pending or failed, whichever
// failure kind) as raw payload, preserving relative order. Succeeded
// entries are discarded; callers that must distinguish instrumental from
// terminal failures inspect the outcomes before calling it.
func (g Group[T]) IntoOriginal() []T {
	original := make([]T, 0, len(g))
	for _, o := range g {
		switch o.kind {
		case KindApply:
			original = append(original, o.elem)
		case KindFailure:
			original = append(original, o.failure.IntoInner())
		}
	}
	return original
}
