package grouping

// DropSuccess removes succeeded entries from their groups, shrinking group
// size while preserving the relative order of survivors. Empty groups are
// dropped with their entries.
//
// Dropped entries are no longer carried forward for processing, but they
// are not forgotten: the running total stays readable through Dropped so a
// reporting surface can still account for them after the loop finishes.
type DropSuccess[T any] struct {
	dropped int
}

// NewDropSuccess returns a heuristic that compacts succeeded entries out of
// every group.
func NewDropSuccess[T any]() *DropSuccess[T] {
	return &DropSuccess[T]{}
}

func (d *DropSuccess[T]) Distribute(dist Distribution[T]) (Distribution[T], error) {
	out := make(Distribution[T], 0, len(dist))
	for _, g := range dist {
		kept := make(Group[T], 0, len(g))
		for _, o := range g {
			if o.IsSuccess() {
				d.dropped++
				continue
			}
			kept = append(kept, o)
		}
		if len(kept) > 0 {
			out = append(out, kept)
		}
	}
	return out, nil
}

// Dropped returns the total number of succeeded entries removed so far.
func (d *DropSuccess[T]) Dropped() int {
	return d.dropped
}
