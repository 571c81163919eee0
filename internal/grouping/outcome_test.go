package grouping

import "testing"

func TestFailureConversionsPreservePayload(t *testing.T) {
	f := NewInstrumental("tx-1")

	if !f.IsInstrumental() || f.IsTerminal() {
		t.Fatalf("expected instrumental failure, got %v", f.kind)
	}

	term := f.ToTerminal()
	if !term.IsTerminal() {
		t.Fatal("expected terminal after ToTerminal")
	}
	if term.IntoInner() != "tx-1" {
		t.Fatalf("payload lost: got %q", term.IntoInner())
	}

	// Idempotent in both directions.
	if term.ToTerminal() != term {
		t.Fatal("ToTerminal not idempotent")
	}
	back := term.ToInstrumental()
	if !back.IsInstrumental() || back.IntoInner() != "tx-1" {
		t.Fatal("ToInstrumental lost payload or kind")
	}
	if back.ToInstrumental() != back {
		t.Fatal("ToInstrumental not idempotent")
	}
}

func TestOutcomePredicates(t *testing.T) {
	apply := NewApply(7)
	success := NewSuccess[int]()
	instr := NewFailure(NewInstrumental(7))
	term := NewFailure(NewTerminal(7))

	if !apply.IsApply() || apply.IsSuccess() || apply.IsFailure() || apply.IsDone() {
		t.Fatal("apply predicates wrong")
	}
	if !success.IsSuccess() || !success.IsDone() || success.IsApply() {
		t.Fatal("success predicates wrong")
	}
	if !instr.IsFailure() || instr.IsDone() {
		t.Fatal("instrumental failure predicates wrong")
	}
	if !term.IsFailure() || !term.IsDone() {
		t.Fatal("terminal failure must be done")
	}
}

func TestOutcomeToTerminalIdempotent(t *testing.T) {
	cases := []Outcome[int]{
		NewApply(1),
		NewSuccess[int](),
		NewFailure(NewInstrumental(1)),
		NewFailure(NewTerminal(1)),
	}
	for _, o := range cases {
		once := o.ToTerminal()
		if once.ToTerminal() != once {
			t.Fatalf("ToTerminal(ToTerminal(%v)) != ToTerminal(%v)", o.kind, o.kind)
		}
	}
}

func TestSuccessNeverDowngraded(t *testing.T) {
	s := NewSuccess[int]()

	if s.ToTerminal() != s {
		t.Fatal("ToTerminal downgraded success")
	}
	if s.ToInstrumental() != s {
		t.Fatal("ToInstrumental downgraded success")
	}
	if s.ToApply() != s {
		t.Fatal("ToApply resurrected success")
	}
}

func TestOutcomeToApplyRecoversPayload(t *testing.T) {
	for _, o := range []Outcome[int]{
		NewFailure(NewInstrumental(42)),
		NewFailure(NewTerminal(42)),
	} {
		re := o.ToApply()
		elem, ok := re.Elem()
		if !ok || elem != 42 {
			t.Fatalf("ToApply lost payload: %v %v", elem, ok)
		}
	}

	a := NewApply(42)
	if a.ToApply() != a {
		t.Fatal("ToApply changed an apply outcome")
	}
}
