package grouping

// Apply forces every outcome in the targeted groups back to pending,
// overriding prior failures of either kind. This is a documented override
// used to force resubmission, not an automatic transition. Succeeded
// entries carry no payload and therefore stay succeeded.
//
// Groups lists the indices to re-arm; an empty list targets every group.
type Apply[T any] struct {
	Groups []int
}

// NewApplyHeuristic returns a heuristic that re-arms the groups at the
// given indices, or every group when none are given.
func NewApplyHeuristic[T any](groups ...int) *Apply[T] {
	return &Apply[T]{Groups: groups}
}

func (a *Apply[T]) Distribute(dist Distribution[T]) (Distribution[T], error) {
	targeted := func(i int) bool {
		if len(a.Groups) == 0 {
			return true
		}
		for _, idx := range a.Groups {
			if idx == i {
				return true
			}
		}
		return false
	}

	out := make(Distribution[T], len(dist))
	for i, g := range dist {
		if targeted(i) {
			out[i] = g.AllToApply()
		} else {
			out[i] = g
		}
	}
	return out, nil
}
