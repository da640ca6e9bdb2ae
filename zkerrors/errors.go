// Package zkerrors defines the typed error taxonomy shared by every
// component of the MiniRAM VOLE-ZK system.
package zkerrors

import "fmt"

// Kind classifies an Error so that callers (and log lines) can branch on
// the failure category without string-matching messages.
type Kind int

const (
	// InputInvalid marks malformed CLI input or an unknown preset name.
	InputInvalid Kind = iota
	// ExecutionStuck marks a MiniRAM interpreter that fetched past the
	// end of the program.
	ExecutionStuck
	// TimeBoundExceeded marks a MiniRAM interpreter that ran its full
	// step budget without reaching RET.
	TimeBoundExceeded
	// IOFailure marks a socket short-write, EOF, or unexpected close.
	IOFailure
	// AssertionFailure marks an internal invariant violation (counter
	// mismatch, operand-range violation, an input out of range for
	// DECODE32) -- always a bug, never a valid user input.
	AssertionFailure
	// VerificationRejected marks a failed MAC check or failed final
	// QuickSilver multiplication-check on the Verifier side.
	VerificationRejected
)

func (k Kind) String() string {
	switch k {
	case InputInvalid:
		return "InputInvalid"
	case ExecutionStuck:
		return "ExecutionStuck"
	case TimeBoundExceeded:
		return "TimeBoundExceeded"
	case IOFailure:
		return "IOFailure"
	case AssertionFailure:
		return "AssertionFailure"
	case VerificationRejected:
		return "VerificationRejected"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every package in this
// module. It carries a Kind for programmatic dispatch and optionally
// wraps an underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is allows errors.Is(err, zkerrors.ExecutionStuck) style checks by
// comparing Kind, since Kind is what callers actually branch on.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an Error of the given kind with a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs an Error of the given kind, wrapping an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Sentinel instances for errors.Is comparisons against a bare Kind.
var (
	ErrExecutionStuck     = New(ExecutionStuck, "stuck fetching")
	ErrTimeBoundExceeded  = New(TimeBoundExceeded, "time bound exceeded")
	ErrVerificationReject = New(VerificationRejected, "verification rejected")
)
