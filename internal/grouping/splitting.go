package grouping

import "fmt"

// Splitting subdivides every group into Factor consecutive sub-groups of
// near-equal size, isolating failing subsets for finer-grained retry.
// Factor 2 is binary halving. Groups smaller than Factor yield one group
// per element; empty groups are dropped.
type Splitting[T any] struct {
	Factor int
}

// NewSplitting returns a splitting heuristic with the given subdivision factor.
func NewSplitting[T any](factor int) *Splitting[T] {
	return &Splitting[T]{Factor: factor}
}

func (s *Splitting[T]) Distribute(dist Distribution[T]) (Distribution[T], error) {
	if s.Factor < 1 {
		return nil, fmt.Errorf("splitting: invalid factor %d", s.Factor)
	}

	out := make(Distribution[T], 0, len(dist)*s.Factor)
	for _, g := range dist {
		if len(g) == 0 {
			continue
		}
		parts := s.Factor
		if parts > len(g) {
			parts = len(g)
		}
		// Near-equal consecutive slices; the first len(g)%parts slices
		// take one extra element so order never changes.
		base := len(g) / parts
		extra := len(g) % parts
		start := 0
		for i := 0; i < parts; i++ {
			size := base
			if i < extra {
				size++
			}
			end := start + size
			out = append(out, g[start:end:end])
			start = end
		}
	}
	return out, nil
}
