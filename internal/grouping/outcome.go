package grouping

// FailureKind distinguishes failures that should be retried from failures
// that end processing for the element.
type FailureKind int

const (
	// Instrumental failures carry the element into a later round.
	Instrumental FailureKind = iota
	// Terminal failures stop processing the element forever.
	Terminal
)

func (k FailureKind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "instrumental"
}

// Failure wraps a single element of a group that could not be processed.
type Failure[T any] struct {
	kind FailureKind
	elem T
}

// NewInstrumental wraps elem as a failure to be retried in a later round.
func NewInstrumental[T any](elem T) Failure[T] {
	return Failure[T]{kind: Instrumental, elem: elem}
}

// NewTerminal wraps elem as a failure that excludes it from further rounds.
func NewTerminal[T any](elem T) Failure[T] {
	return Failure[T]{kind: Terminal, elem: elem}
}

// IsInstrumental reports whether the failure should be retried.
func (f Failure[T]) IsInstrumental() bool {
	return f.kind == Instrumental
}

// IsTerminal reports whether the failure is permanent.
func (f Failure[T]) IsTerminal() bool {
	return f.kind == Terminal
}

// ToTerminal converts the failure to a terminal failure. Applying it to a
// terminal failure is a no-op; the payload is preserved either way.
func (f Failure[T]) ToTerminal() Failure[T] {
	return Failure[T]{kind: Terminal, elem: f.elem}
}

// ToInstrumental converts the failure to an instrumental failure. Applying
// it to an instrumental failure is a no-op; the payload is preserved.
func (f Failure[T]) ToInstrumental() Failure[T] {
	return Failure[T]{kind: Instrumental, elem: f.elem}
}

// IntoInner unwraps the failed element.
func (f Failure[T]) IntoInner() T {
	return f.elem
}

// OutcomeKind is the status of one element within a round.
type OutcomeKind int

const (
	// KindApply marks an element pending processing in the next attempt.
	KindApply OutcomeKind = iota
	// KindSuccess marks an element that completed; no more iteration needed.
	KindSuccess
	// KindFailure marks an element whose last attempt failed.
	KindFailure
)

// Outcome is the status of a single member of a heuristically formed group.
type Outcome[T any] struct {
	kind    OutcomeKind
	elem    T
	failure Failure[T]
}

// NewApply creates an outcome pending processing.
func NewApply[T any](elem T) Outcome[T] {
	return Outcome[T]{kind: KindApply, elem: elem}
}

// NewSuccess creates a succeeded outcome. Success carries no payload; it is
// a one-way state that only the processing function may assign.
func NewSuccess[T any]() Outcome[T] {
	return Outcome[T]{kind: KindSuccess}
}

// NewFailure creates a failed outcome from an elemental failure.
func NewFailure[T any](f Failure[T]) Outcome[T] {
	return Outcome[T]{kind: KindFailure, failure: f}
}

// Kind returns the outcome's status kind.
func (o Outcome[T]) Kind() OutcomeKind {
	return o.kind
}

// IsApply reports whether the outcome is pending processing.
func (o Outcome[T]) IsApply() bool {
	return o.kind == KindApply
}

// IsSuccess reports whether the outcome succeeded.
func (o Outcome[T]) IsSuccess() bool {
	return o.kind == KindSuccess
}

// IsFailure reports whether the outcome failed.
func (o Outcome[T]) IsFailure() bool {
	return o.kind == KindFailure
}

// IsDone reports whether the outcome needs no further processing:
// success, or a terminal failure.
func (o Outcome[T]) IsDone() bool {
	switch o.kind {
	case KindSuccess:
		return true
	case KindFailure:
		return o.failure.IsTerminal()
	default:
		return false
	}
}

// Elem returns the pending element. The second return is false unless the
// outcome is an apply.
func (o Outcome[T]) Elem() (T, bool) {
	return o.elem, o.kind == KindApply
}

// Failure returns the elemental failure. The second return is false unless
// the outcome is a failure.
func (o Outcome[T]) Failure() (Failure[T], bool) {
	return o.failure, o.kind == KindFailure
}

// ToTerminal converts the outcome to a terminal failure.
// Success is never downgraded. Idempotent.
func (o Outcome[T]) ToTerminal() Outcome[T] {
	switch o.kind {
	case KindApply:
		return NewFailure(NewTerminal(o.elem))
	case KindFailure:
		return NewFailure(o.failure.ToTerminal())
	default:
		return o
	}
}

// ToInstrumental converts the outcome to an instrumental failure.
// Success is never downgraded. Idempotent.
func (o Outcome[T]) ToInstrumental() Outcome[T] {
	switch o.kind {
	case KindApply:
		return NewFailure(NewInstrumental(o.elem))
	case KindFailure:
		return NewFailure(o.failure.ToInstrumental())
	default:
		return o
	}
}

// ToApply re-arms a failed outcome for another attempt. Success carries no
// payload and cannot be forced back to apply.
func (o Outcome[T]) ToApply() Outcome[T] {
	if o.kind == KindFailure {
		return NewApply(o.failure.IntoInner())
	}
	return o
}
