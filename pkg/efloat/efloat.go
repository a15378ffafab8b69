// Package efloat implements EFloat, the certified scalar of spec §3.1
// and §4.1: an IEEE-754 binary64 value carried as a [lower, upper]
// interval bound. Every arithmetic operation widens its result interval
// by one ULP outward (using math.Nextafter) so that, for any real
// x in [a.lower, a.upper] and y in [b.lower, b.upper], the true result
// of the operation on x and y lies in the returned interval. Ordering
// that cannot be decided from disjoint intervals reports Indeterminate
// rather than guessing — this is the system's primary robustness
// mechanism and callers must treat it as a failed precondition, never a
// silent tie.
package efloat

import (
	"fmt"
	"math"

	"github.com/chazu/geop/pkg/errs"
)

// EFloat is a certified real: the true value is known to lie in
// [Lower, Upper]. Both bounds are always finite.
type EFloat struct {
	Lower float64
	Upper float64
}

// New constructs a definite EFloat from a single float64: (v, v).
func New(v float64) EFloat {
	return EFloat{Lower: v, Upper: v}
}

// NewInterval constructs an EFloat directly from bounds. Returns a
// DomainError if lower > upper or either bound is non-finite.
func NewInterval(lower, upper float64) (EFloat, error) {
	if !isFinite(lower) || !isFinite(upper) {
		return EFloat{}, errs.Newf(errs.DomainError, "efloat: non-finite bound [%v, %v]", lower, upper)
	}
	if lower > upper {
		return EFloat{}, errs.Newf(errs.DomainError, "efloat: lower %v > upper %v", lower, upper)
	}
	return EFloat{Lower: lower, Upper: upper}, nil
}

// Zero is the definite EFloat (0, 0).
func Zero() EFloat { return New(0) }

// IsDefinite reports whether the interval has collapsed to a point.
func (a EFloat) IsDefinite() bool { return a.Lower == a.Upper }

// Mid returns the interval midpoint, useful for logging/sampling only —
// never for a decision the spec requires to be certified.
func (a EFloat) Mid() float64 { return (a.Lower + a.Upper) / 2 }

// Width returns Upper - Lower.
func (a EFloat) Width() float64 { return a.Upper - a.Lower }

func (a EFloat) String() string {
	if a.IsDefinite() {
		return fmt.Sprintf("%g", a.Lower)
	}
	return fmt.Sprintf("[%g, %g]", a.Lower, a.Upper)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// outward widens a true-real interval [lo, hi] by one ULP on each side,
// moving away from the computed value so the certified result is never
// narrower than reality.
func outward(lo, hi float64) EFloat {
	return EFloat{
		Lower: math.Nextafter(lo, math.Inf(-1)),
		Upper: math.Nextafter(hi, math.Inf(1)),
	}
}

// Add returns a certified bound on a+b.
func Add(a, b EFloat) EFloat {
	return outward(a.Lower+b.Lower, a.Upper+b.Upper)
}

// Sub returns a certified bound on a-b.
func Sub(a, b EFloat) EFloat {
	return outward(a.Lower-b.Upper, a.Upper-b.Lower)
}

// Neg returns a certified bound on -a.
func Neg(a EFloat) EFloat {
	return EFloat{Lower: -a.Upper, Upper: -a.Lower}
}

// Mul returns a certified bound on a*b, taking the min/max of the four
// corner products (the standard interval-arithmetic rule) and widening
// outward by one ULP.
func Mul(a, b EFloat) EFloat {
	p1 := a.Lower * b.Lower
	p2 := a.Lower * b.Upper
	p3 := a.Upper * b.Lower
	p4 := a.Upper * b.Upper
	lo := math.Min(math.Min(p1, p2), math.Min(p3, p4))
	hi := math.Max(math.Max(p1, p2), math.Max(p3, p4))
	return outward(lo, hi)
}

// Scale returns a certified bound on k*a for a plain (uncertified) scalar k.
func Scale(a EFloat, k float64) EFloat {
	return Mul(a, New(k))
}

// Div returns a certified bound on a/b. Fails with a NumericalError if
// b's interval contains zero (spec: "division requires that the
// denominator's interval exclude zero").
func Div(a, b EFloat) (EFloat, error) {
	if b.Lower <= 0 && 0 <= b.Upper {
		return EFloat{}, errs.Newf(errs.NumericalError,
			"efloat: division by possibly-zero denominator [%v, %v]", b.Lower, b.Upper)
	}
	q1 := a.Lower / b.Lower
	q2 := a.Lower / b.Upper
	q3 := a.Upper / b.Lower
	q4 := a.Upper / b.Upper
	lo := math.Min(math.Min(q1, q2), math.Min(q3, q4))
	hi := math.Max(math.Max(q1, q2), math.Max(q3, q4))
	return outward(lo, hi), nil
}

// Abs returns a certified bound on |a|.
func Abs(a EFloat) EFloat {
	if a.Lower >= 0 {
		return a
	}
	if a.Upper <= 0 {
		return Neg(a)
	}
	return EFloat{Lower: 0, Upper: math.Max(-a.Lower, a.Upper)}
}

// Min returns a certified bound on min(a, b).
func Min(a, b EFloat) EFloat {
	return EFloat{Lower: math.Min(a.Lower, b.Lower), Upper: math.Min(a.Upper, b.Upper)}
}

// Max returns a certified bound on max(a, b).
func Max(a, b EFloat) EFloat {
	return EFloat{Lower: math.Max(a.Lower, b.Lower), Upper: math.Max(a.Upper, b.Upper)}
}

// Sqrt returns a certified bound on sqrt(a). Fails with a
// NumericalError if a.Upper < 0 (no real square root anywhere in the
// interval); otherwise the lower bound is clamped to zero before
// widening, per spec §3.1.
func Sqrt(a EFloat) (EFloat, error) {
	if a.Upper < 0 {
		return EFloat{}, errs.Newf(errs.NumericalError, "efloat: sqrt of possibly-negative interval [%v, %v]", a.Lower, a.Upper)
	}
	lo := a.Lower
	if lo < 0 {
		lo = 0
	}
	return outward(math.Sqrt(lo), math.Sqrt(a.Upper)), nil
}

// Sin returns a certified bound on sin(a). Monotonicity of sin is only
// piecewise, so outside a single monotonic branch we conservatively
// widen to the full achievable range using the derivative sign changes
// at the nearest quarter-periods within the interval.
func Sin(a EFloat) EFloat {
	return trig(a, math.Sin)
}

// Cos returns a certified bound on cos(a), by the same conservative
// sampling strategy as Sin.
func Cos(a EFloat) EFloat {
	return trig(a, math.Cos)
}

// trig conservatively brackets a monotonic-or-not trig function over
// [a.Lower, a.Upper] by evaluating at the endpoints and at every
// extremum (multiple of pi/2) inside the interval, then widening by
// one ULP. This is sound (it can only widen, never narrow, the true
// range) though not maximally tight.
func trig(a EFloat, f func(float64) float64) EFloat {
	lo, hi := f(a.Lower), f(a.Upper)
	if lo > hi {
		lo, hi = hi, lo
	}
	step := math.Pi / 2
	start := math.Ceil(a.Lower/step) * step
	for x := start; x <= a.Upper; x += step {
		v := f(x)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return outward(lo, hi)
}

// Acos returns a certified bound on acos(a). Fails with a
// NumericalError if the interval escapes [-1, 1] (acos is undefined
// there); acos is monotonically decreasing so the bound is exact up to
// the outward widening.
func Acos(a EFloat) (EFloat, error) {
	if a.Lower < -1 || a.Upper > 1 {
		return EFloat{}, errs.Newf(errs.NumericalError, "efloat: acos of out-of-domain interval [%v, %v]", a.Lower, a.Upper)
	}
	return outward(math.Acos(a.Upper), math.Acos(a.Lower)), nil
}

// Atan2 returns a certified bound on atan2(y, x). Because atan2 is
// discontinuous across the negative x-axis, a certified tight bound
// requires knowing the intervals don't straddle that branch cut; we
// conservatively fail closed (NumericalError) when both y's and x's
// intervals could straddle the cut (x interval contains 0 and y
// interval contains 0), matching the "indeterminate sign" policy.
func Atan2(y, x EFloat) (EFloat, error) {
	if x.Lower <= 0 && 0 <= x.Upper && y.Lower <= 0 && 0 <= y.Upper {
		return EFloat{}, errs.Newf(errs.NumericalError, "efloat: atan2 near origin is indeterminate")
	}
	corners := [4]float64{
		math.Atan2(y.Lower, x.Lower),
		math.Atan2(y.Lower, x.Upper),
		math.Atan2(y.Upper, x.Lower),
		math.Atan2(y.Upper, x.Upper),
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return outward(lo, hi), nil
}

// Pow returns a certified bound on a^n for a non-negative integer n,
// by repeated certified multiplication (exact under interval
// semantics: no transcendental rounding beyond what Mul already does).
func Pow(a EFloat, n int) EFloat {
	if n == 0 {
		return New(1)
	}
	result := a
	for i := 1; i < n; i++ {
		result = Mul(result, a)
	}
	return result
}

// Ordering is the three-way result of comparing two EFloats: Less and
// Greater require the intervals to be disjoint; anything else
// (including exact equality or partial overlap) is Indeterminate.
type Ordering int

const (
	Less Ordering = iota
	Greater
	Indeterminate
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Greater:
		return "Greater"
	default:
		return "Indeterminate"
	}
}

// Err returns a NumericalError if o is Indeterminate, else nil. Callers
// that need a strict order (e.g. sorting sub-edges along a curve) must
// check this rather than silently breaking ties.
func (o Ordering) Err() error {
	if o == Indeterminate {
		return errs.New(errs.NumericalError, "efloat: indeterminate comparison")
	}
	return nil
}

// Cmp compares a and b, returning Less/Greater only when their
// intervals are disjoint.
func Cmp(a, b EFloat) Ordering {
	if a.Upper < b.Lower {
		return Less
	}
	if a.Lower > b.Upper {
		return Greater
	}
	return Indeterminate
}

// Equal reports whether a and b's intervals overlap (spec: "Equality is
// 'intervals overlap'"). This is a plain bool, not a failed
// precondition — overlap-as-equality is the spec's definition of
// equality itself, not an indeterminate order.
func Equal(a, b EFloat) bool {
	return a.Lower <= b.Upper && b.Lower <= a.Upper
}

// SemiPositive is an EFloat statically known to have Lower >= 0.
type SemiPositive struct{ v EFloat }

// NewSemiPositive validates that e.Lower >= 0.
func NewSemiPositive(e EFloat) (SemiPositive, error) {
	if e.Lower < 0 {
		return SemiPositive{}, errs.Newf(errs.DomainError, "efloat: %v is not semi-positive", e)
	}
	return SemiPositive{v: e}, nil
}

// Value returns the underlying EFloat.
func (s SemiPositive) Value() EFloat { return s.v }

// Sqrt returns a certified SemiPositive bound on sqrt(s). This cannot
// fail: s.Lower >= 0 implies s.Upper >= 0, satisfying Sqrt's precondition.
func (s SemiPositive) Sqrt() SemiPositive {
	r, err := Sqrt(s.v)
	if err != nil {
		// Unreachable: s.v.Lower >= 0 implies s.v.Upper >= 0.
		panic("efloat: SemiPositive.Sqrt precondition violated: " + err.Error())
	}
	out, _ := NewSemiPositive(r)
	return out
}

// Positive is an EFloat statically known to have Lower > 0.
type Positive struct{ v EFloat }

// NewPositive validates that e.Lower > 0.
func NewPositive(e EFloat) (Positive, error) {
	if e.Lower <= 0 {
		return Positive{}, errs.Newf(errs.DomainError, "efloat: %v is not strictly positive", e)
	}
	return Positive{v: e}, nil
}

// Value returns the underlying EFloat.
func (p Positive) Value() EFloat { return p.v }

// NonZero is an EFloat statically known to exclude zero from its
// interval (Lower > 0 or Upper < 0).
type NonZero struct{ v EFloat }

// NewNonZero validates that e's interval excludes zero.
func NewNonZero(e EFloat) (NonZero, error) {
	if e.Lower <= 0 && 0 <= e.Upper {
		return NonZero{}, errs.Newf(errs.DomainError, "efloat: %v is possibly zero", e)
	}
	return NonZero{v: e}, nil
}

// Value returns the underlying EFloat.
func (n NonZero) Value() EFloat { return n.v }

// DivBy divides a by a statically-NonZero denominator. This cannot fail.
func DivBy(a EFloat, b NonZero) EFloat {
	r, err := Div(a, b.v)
	if err != nil {
		panic("efloat: DivBy precondition violated: " + err.Error())
	}
	return r
}
