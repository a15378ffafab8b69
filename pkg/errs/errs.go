// Package errs defines the typed error vocabulary used across the geop
// kernel. Every fallible operation described by the spec returns one of
// the Kind values below, wrapped with a chain of context messages
// innermost-first (see Error.Error and Error.Report).
package errs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies a kernel failure into one of the categories the
// Boolean engine and its collaborators must distinguish.
type Kind int

const (
	// DomainError is a precondition violation, e.g. a point not on a curve.
	DomainError Kind = iota
	// NumericalError covers division-possibly-zero, sqrt-of-possibly-negative,
	// and indeterminate EFloat comparisons.
	NumericalError
	// DegenerateConfiguration is a geometric degeneracy: collinear points,
	// a knot vector with zero span where a nonzero span is required, etc.
	DegenerateConfiguration
	// InvalidTopology means edges don't close a contour, a face isn't
	// watertight, or a similar structural invariant fails.
	InvalidTopology
	// IntersectionResolutionFailed means the numerical bisector exhausted
	// its depth or time budget without resolving an intersection.
	IntersectionResolutionFailed
	// Timeout means a bounded computation exceeded its wall-clock deadline.
	Timeout
	// IndeterminateCorner means a face-corner inside/outside test landed
	// on a zero-containing interval and cannot be resolved (spec §9).
	IndeterminateCorner
)

func (k Kind) String() string {
	switch k {
	case DomainError:
		return "DomainError"
	case NumericalError:
		return "NumericalError"
	case DegenerateConfiguration:
		return "DegenerateConfiguration"
	case InvalidTopology:
		return "InvalidTopology"
	case IntersectionResolutionFailed:
		return "IntersectionResolutionFailed"
	case Timeout:
		return "Timeout"
	case IndeterminateCorner:
		return "IndeterminateCorner"
	default:
		return "UnknownKind"
	}
}

// Snapshot is a minimal set of entities that reproduces a failure. It is
// opaque to the error machinery; callers populate it with whatever
// values (points, curves, edges...) are useful for debugging.
type Snapshot map[string]any

// Error is the kernel's typed error. It carries a Kind, an optional
// Snapshot, and (via the embedded pkg/errors cause chain) a sequence of
// context messages attached by each calling layer.
type Error struct {
	kind     Kind
	cause    error
	snapshot Snapshot
}

// New creates a root Error of the given kind with a message.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, cause: errors.New(message)}
}

// Newf creates a root Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, cause: errors.New(fmt.Sprintf(format, args...))}
}

// Wrap attaches a context message to an existing error, preserving its
// Kind (or NumericalError if the wrapped error is not one of ours).
// Every layer that catches and rethrows an error should Wrap it with a
// message describing what it was attempting, per the spec's
// innermost-first context chain.
func Wrap(err error, context string) *Error {
	if err == nil {
		return nil
	}
	var ke *Error
	if errors.As(err, &ke) {
		return &Error{kind: ke.kind, cause: errors.Wrap(err, context), snapshot: ke.snapshot}
	}
	return &Error{kind: NumericalError, cause: errors.Wrap(err, context)}
}

// Wrapf is Wrap with a formatted context message.
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithSnapshot attaches (or replaces) the scene snapshot on this error.
func (e *Error) WithSnapshot(s Snapshot) *Error {
	e.snapshot = s
	return e
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Snapshot returns the attached scene snapshot, or nil.
func (e *Error) Snapshot() Snapshot { return e.snapshot }

// Error implements the error interface with a single-line summary.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.cause.Error())
}

// Cause returns the innermost error, for use with errors.Is/As chains.
func (e *Error) Cause() error { return errors.Cause(e.cause) }

// Unwrap supports errors.Is / errors.As against the wrapped chain.
func (e *Error) Unwrap() error { return e.cause }

// Report renders the full multi-line diagnostic the spec requires:
// root cause, then a backtrace line (from pkg/errors' %+v), then every
// context message innermost-first.
func (e *Error) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "kind: %s\n", e.kind)
	fmt.Fprintf(&b, "root cause: %v\n", e.Cause())
	fmt.Fprintf(&b, "trace:\n%+v\n", e.cause)
	if e.snapshot != nil {
		fmt.Fprintf(&b, "snapshot:\n")
		for k, v := range e.snapshot {
			fmt.Fprintf(&b, "  %s: %+v\n", k, v)
		}
	}
	return b.String()
}

// Is reports whether err is (or wraps) a *Error of the given Kind,
// mirroring the standard library's errors.Is/As classification idiom.
func Is(err error, kind Kind) bool {
	var ke *Error
	if errors.As(err, &ke) {
		return ke.kind == kind
	}
	return false
}
