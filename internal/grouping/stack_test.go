package grouping

import (
	"context"
	"errors"
	"testing"
)

// succeedAll marks every live entry in the group as succeeded.
func succeedAll[T any](g Group[T]) Group[T] {
	out := make(Group[T], len(g))
	for i, o := range g {
		if o.IsDone() {
			out[i] = o
			continue
		}
		out[i] = NewSuccess[T]()
	}
	return out
}

func TestRunConvergesInOneRound(t *testing.T) {
	stack := NewStack[string](NewChunking[string](2))
	seed := NewApplyDistribution([]string{"A", "B", "C", "D"})

	rounds := 0
	result, err := stack.Run(seed, func(g Group[string]) (Group[string], error) {
		rounds++ // counts group calls; 2 groups, 1 round
		return succeedAll(g), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if rounds != 2 {
		t.Fatalf("expected 2 group calls in a single round, got %d", rounds)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(result))
	}
	for i, g := range result {
		if !g.AllSucceeded() {
			t.Fatalf("group %d not fully succeeded", i)
		}
	}
}

func TestRunAllSuccessSeed(t *testing.T) {
	stack := NewStack[int](NewChunking[int](2))
	seed := Distribution[int]{NewAllSuccess[int](4)}

	calls := 0
	result, err := stack.Run(seed, func(g Group[int]) (Group[int], error) {
		calls++
		return g, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// The processing function still sees every group once; the loop ends
	// after the first round because nothing is live.
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(result))
	}
	for _, g := range result {
		if !g.AllSucceeded() {
			t.Fatal("seeded successes must survive")
		}
	}
}

func TestRunSequentialRetryConvergence(t *testing.T) {
	stack := NewStack[string](NewChunking[string](2))
	seed := NewApplyDistribution([]string{"A", "B", "C", "D"})

	attempts := make(map[string]int)
	var order []string

	result, err := stack.RunSequential(
		context.Background(),
		seed,
		func(ctx context.Context, g Group[string]) (Group[string], error) {
			out := make(Group[string], len(g))
			for i, o := range g {
				if o.IsDone() {
					out[i] = o
					continue
				}
				var payload string
				if e, ok := o.Elem(); ok {
					payload = e
				} else if f, ok := o.Failure(); ok {
					payload = f.IntoInner()
				}
				attempts[payload]++
				order = append(order, payload)
				if attempts[payload] == 1 {
					out[i] = o.ToInstrumental()
					continue
				}
				out[i] = NewSuccess[string]()
			}
			return out, nil
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	// Two rounds: 4 instrumental attempts, then 4 successes.
	for _, e := range []string{"A", "B", "C", "D"} {
		if attempts[e] != 2 {
			t.Fatalf("element %s attempted %d times, want 2", e, attempts[e])
		}
	}
	want := []string{"A", "B", "C", "D", "A", "B", "C", "D"}
	if !equal(order, want) {
		t.Fatalf("attempt order %v, want %v", order, want)
	}
	for _, g := range result {
		if !g.AllSucceeded() {
			t.Fatal("retry convergence must end fully succeeded")
		}
	}
}

func TestRunTerminalShortCircuit(t *testing.T) {
	stack := NewStack[string](NewChunking[string](2))
	seed := NewApplyDistribution([]string{"A", "B", "C", "D"})

	attempts := make(map[string]int)
	result, err := stack.Run(seed, func(g Group[string]) (Group[string], error) {
		out := make(Group[string], len(g))
		for i, o := range g {
			if o.IsDone() {
				out[i] = o
				continue
			}
			var payload string
			if e, ok := o.Elem(); ok {
				payload = e
			} else if f, ok := o.Failure(); ok {
				payload = f.IntoInner()
			}
			attempts[payload]++
			switch {
			case payload == "B":
				out[i] = NewFailure(NewTerminal(payload))
			case attempts[payload] < 3:
				out[i] = o.ToInstrumental()
			default:
				out[i] = NewSuccess[string]()
			}
		}
		return out, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if attempts["B"] != 1 {
		t.Fatalf("terminal element attempted %d times, want 1", attempts["B"])
	}

	// B is still present in the final distribution as a terminal failure.
	foundB := false
	for _, g := range result {
		for _, o := range g {
			if f, ok := o.Failure(); ok && f.IntoInner() == "B" {
				foundB = f.IsTerminal()
			}
		}
	}
	if !foundB {
		t.Fatal("terminal element missing from final distribution")
	}
}

func TestDistributeStopsAtFirstError(t *testing.T) {
	stack := NewStack[int](
		NewChunking[int](2),
		NewChunking[int](0), // invalid configuration
		NewChunking[int](3),
	)

	if _, err := stack.Distribute(NewApplyDistribution([]int{1, 2})); err == nil {
		t.Fatal("expected heuristic error to abort the round")
	}
}

func TestRunSurfacesProcessingError(t *testing.T) {
	stack := NewStack[int](NewChunking[int](1))
	boom := errors.New("ledger unreachable")

	_, err := stack.Run(NewApplyDistribution([]int{1}), func(g Group[int]) (Group[int], error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped processing error, got %v", err)
	}
}

func TestRunSkipExcludesFromProcessing(t *testing.T) {
	stack := NewStack[string](NewSkip[string](1))
	seed := NewApplyDistribution([]string{"A", "B"})

	var attempted []string
	result, err := stack.Run(seed, func(g Group[string]) (Group[string], error) {
		out := make(Group[string], len(g))
		for i, o := range g {
			if e, ok := o.Elem(); ok {
				attempted = append(attempted, e)
			}
			out[i] = NewSuccess[string]()
		}
		return out, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// Round 1: A withheld, only B processed. Round 2: A processed.
	if !equal(attempted, []string{"B", "A"}) {
		t.Fatalf("attempt order %v, want [B A]", attempted)
	}
	total := 0
	for _, g := range result {
		total += len(g)
	}
	if total != 2 {
		t.Fatalf("elements lost: final distribution holds %d entries", total)
	}
}

func TestRunEscalateBoundsRetries(t *testing.T) {
	stack := NewStack[int](NewChunking[int](2), NewEscalate[int](2))
	seed := NewApplyDistribution([]int{1, 2, 3})

	calls := 0
	result, err := stack.Run(seed, func(g Group[int]) (Group[int], error) {
		calls++
		// Never succeeds: everything comes back instrumental.
		out := make(Group[int], len(g))
		for i, o := range g {
			if o.IsDone() {
				out[i] = o
				continue
			}
			out[i] = o.ToInstrumental()
		}
		return out, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, g := range result {
		if !g.AllDone() {
			t.Fatal("escalate failed to terminate the loop")
		}
		if g.AllSucceeded() {
			t.Fatal("nothing should have succeeded")
		}
	}
	if calls == 0 {
		t.Fatal("processing function never ran")
	}
}
