package grouping

import "fmt"

// Skip withholds a prefix of the distribution's elements from the
// processing step for a single round: its first. The selected outcomes are
// moved, in order, into a dedicated leading group that the drivers carry
// into the round's result unchanged; the remaining groups keep their
// relative order with the selected entries removed. From the second round
// on Skip is the identity, so withheld live elements still reach the
// processing function and the loop can converge.
//
// The prefix is selected by Count (first Count outcomes across group
// boundaries) or, when Match is set, by the predicate applied to each live
// payload. Exactly one of the two must be configured.
//
// Skip reports exclusions against its own output, so it belongs at the end
// of the stack.
type Skip[T any] struct {
	Count int
	Match func(elem T) bool

	spent    bool
	excluded bool
}

// NewSkip returns a heuristic that withholds the first count outcomes each
// round.
func NewSkip[T any](count int) *Skip[T] {
	return &Skip[T]{Count: count}
}

// NewSkipMatch returns a heuristic that withholds outcomes whose live
// payload satisfies match.
func NewSkipMatch[T any](match func(elem T) bool) *Skip[T] {
	return &Skip[T]{Match: match}
}

func (s *Skip[T]) Distribute(dist Distribution[T]) (Distribution[T], error) {
	if (s.Count > 0) == (s.Match != nil) {
		return nil, fmt.Errorf("skip: configure exactly one of count or predicate")
	}
	if s.spent {
		s.excluded = false
		return dist, nil
	}
	s.spent = true

	var held Group[T]
	rest := make(Distribution[T], 0, len(dist)+1)
	taken := 0
	for _, g := range dist {
		var kept Group[T]
		for _, o := range g {
			if s.take(o, taken) {
				held = append(held, o)
				taken++
				continue
			}
			kept = append(kept, o)
		}
		if len(kept) > 0 {
			rest = append(rest, kept)
		}
	}

	s.excluded = len(held) > 0
	if !s.excluded {
		return rest, nil
	}
	return append(Distribution[T]{held}, rest...), nil
}

// Excluded implements Excluder: the held prefix is always group 0.
func (s *Skip[T]) Excluded(index int) bool {
	return s.excluded && index == 0
}

func (s *Skip[T]) take(o Outcome[T], taken int) bool {
	if s.Match != nil {
		switch o.kind {
		case KindApply:
			return s.Match(o.elem)
		case KindFailure:
			return s.Match(o.failure.elem)
		default:
			return false
		}
	}
	return taken < s.Count
}
