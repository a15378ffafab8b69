package poly

import (
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
)

// BSplineBasis is a single B-spline basis function N_{i,k} defined by
// its index i, degree k, and local knot vector u_0 <= ... <= u_{k+1}
// (spec §3.3). Invariants: i <= k is NOT required here (that bound is
// about a curve's control-point count relative to its own index range;
// for a standalone basis function the only requirements are knot-vector
// length k+2 and non-decreasing order), checked by NewBSplineBasis.
type BSplineBasis struct {
	Index  int
	Degree int
	Knots  []efloat.EFloat
}

// NewBSplineBasis validates the knot vector length (k+2) and ordering.
func NewBSplineBasis(index, degree int, knots []efloat.EFloat) (BSplineBasis, error) {
	if len(knots) != degree+2 {
		return BSplineBasis{}, errs.Newf(errs.DomainError,
			"poly: basis knot vector length %d != degree+2 (%d)", len(knots), degree+2)
	}
	for i := 1; i < len(knots); i++ {
		ord := efloat.Cmp(knots[i-1], knots[i])
		if ord == efloat.Greater {
			return BSplineBasis{}, errs.New(errs.DomainError, "poly: basis knot vector must be non-decreasing")
		}
	}
	return BSplineBasis{Index: index, Degree: degree, Knots: knots}, nil
}

// Eval evaluates N_{i,k}(u) by the Cox-de Boor recursion.
func (b BSplineBasis) Eval(u efloat.EFloat) efloat.EFloat {
	return coxDeBoor(b.Knots, 0, b.Degree, u)
}

// safeDiv divides a by b when the caller has already established
// (via a disjoint-from-zero Equal check) that b cannot be zero; it
// exists to avoid re-deriving NewNonZero's error plumbing at every
// Cox-de Boor recursion step.
func safeDiv(a, b efloat.EFloat) efloat.EFloat {
	r, err := efloat.Div(a, b)
	if err != nil {
		// Unreachable: callers only invoke this after confirming b's
		// interval is disjoint from zero.
		panic("poly: safeDiv precondition violated: " + err.Error())
	}
	return r
}

// coxDeBoor evaluates N_{local,degree}(u) against a local knot window
// knots[0:degree+2], recursively, using the standard two-term
// recurrence. local is always 0 at the top call (the basis's own
// index), and walks to higher local offsets for lower-degree
// sub-bases in the recursion.
func coxDeBoor(knots []efloat.EFloat, local, degree int, u efloat.EFloat) efloat.EFloat {
	if degree == 0 {
		// N_{local,0}(u) = 1 if knots[local] <= u < knots[local+1], else 0.
		// Half-open per spec §9's open-question resolution. There is no
		// special case for u at the right end of the whole knot range,
		// where every degree-0 term is 0. (BSplineCurve.Eval does not use
		// this recursion; it locates its span with findSpan.)
		lo, hi := knots[local], knots[local+1]
		if efloat.Cmp(u, lo) != efloat.Less && efloat.Cmp(u, hi) == efloat.Less {
			return efloat.New(1)
		}
		return efloat.Zero()
	}
	left := efloat.Zero()
	denomLeft := efloat.Sub(knots[local+degree], knots[local])
	if !efloat.Equal(denomLeft, efloat.Zero()) {
		alpha := safeDiv(efloat.Sub(u, knots[local]), denomLeft)
		left = efloat.Mul(alpha, coxDeBoor(knots, local, degree-1, u))
	}
	right := efloat.Zero()
	denomRight := efloat.Sub(knots[local+degree+1], knots[local+1])
	if !efloat.Equal(denomRight, efloat.Zero()) {
		beta := safeDiv(efloat.Sub(knots[local+degree+1], u), denomRight)
		right = efloat.Mul(beta, coxDeBoor(knots, local+1, degree-1, u))
	}
	return efloat.Add(left, right)
}
