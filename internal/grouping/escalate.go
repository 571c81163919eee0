package grouping

import "fmt"

// Escalate converts instrumental failures to terminal failures once it has
// observed more than MaxRounds rounds. The engine itself never caps
// retries, so an element can cycle through instrumental failures forever;
// placing Escalate in the stack is the liveness safeguard production
// configurations are expected to carry.
type Escalate[T any] struct {
	MaxRounds int

	rounds int
}

// NewEscalate returns a heuristic that abandons instrumental failures
// after maxRounds rounds.
func NewEscalate[T any](maxRounds int) *Escalate[T] {
	return &Escalate[T]{MaxRounds: maxRounds}
}

func (e *Escalate[T]) Distribute(dist Distribution[T]) (Distribution[T], error) {
	if e.MaxRounds < 1 {
		return nil, fmt.Errorf("escalate: invalid max rounds %d", e.MaxRounds)
	}

	e.rounds++
	if e.rounds <= e.MaxRounds {
		return dist, nil
	}

	out := make(Distribution[T], len(dist))
	for i, g := range dist {
		esc := make(Group[T], len(g))
		for j, o := range g {
			if f, ok := o.Failure(); ok && f.IsInstrumental() {
				esc[j] = o.ToTerminal()
				continue
			}
			esc[j] = o
		}
		out[i] = esc
	}
	return out, nil
}

// Rounds returns the number of rounds observed so far.
func (e *Escalate[T]) Rounds() int {
	return e.rounds
}
