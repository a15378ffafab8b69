package poly

import (
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// BSplineCurve is a degree-k B-spline curve with control points
// P_0..P_n and a non-decreasing knot vector u_0..u_{n+k+1} (spec §3.3).
type BSplineCurve struct {
	Controls []vector.Vec
	Knots    []efloat.EFloat
	Degree   int
}

// NewBSplineCurve validates knot-vector length (n+k+2, for n+1
// controls) and non-decreasing order.
func NewBSplineCurve(controls []vector.Vec, knots []efloat.EFloat, degree int) (BSplineCurve, error) {
	n := len(controls) - 1
	if n < 0 {
		return BSplineCurve{}, errs.New(errs.DomainError, "poly: b-spline curve needs at least one control point")
	}
	if len(knots) != n+degree+2 {
		return BSplineCurve{}, errs.Newf(errs.DomainError,
			"poly: b-spline curve knot count %d != n+degree+2 (%d)", len(knots), n+degree+2)
	}
	for i := 1; i < len(knots); i++ {
		if efloat.Cmp(knots[i-1], knots[i]) == efloat.Greater {
			return BSplineCurve{}, errs.New(errs.DomainError, "poly: knot vector must be non-decreasing")
		}
	}
	return BSplineCurve{Controls: append([]vector.Vec(nil), controls...), Knots: append([]efloat.EFloat(nil), knots...), Degree: degree}, nil
}

// findSpan locates the knot span index i such that u in [knots[i], knots[i+1]),
// per spec §9's resolution of the open question: half-open spans, with
// a single-point special case at u == knots[n+1] (the curve's right
// endpoint), which is folded into the last span [knots[n], knots[n+1]].
func (c BSplineCurve) findSpan(u efloat.EFloat) int {
	n := len(c.Controls) - 1
	p := c.Degree
	if efloat.Cmp(u, c.Knots[n+1]) != efloat.Less {
		return n
	}
	lo, hi := p, n+1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if efloat.Cmp(u, c.Knots[mid]) == efloat.Less {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// Eval evaluates the curve at parameter u via de Boor's algorithm.
func (c BSplineCurve) Eval(u efloat.EFloat) vector.Vec {
	p := c.Degree
	span := c.findSpan(u)

	d := make([]vector.Vec, p+1)
	for j := 0; j <= p; j++ {
		d[j] = c.Controls[span-p+j]
	}

	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			i := span - p + j
			denom := efloat.Sub(c.Knots[i+p-r+1], c.Knots[i])
			var alpha efloat.EFloat
			if efloat.Equal(denom, efloat.Zero()) {
				alpha = efloat.Zero()
			} else {
				alpha = safeDiv(efloat.Sub(u, c.Knots[i]), denom)
			}
			d[j] = vector.Add(vector.ScaleE(d[j-1], efloat.Sub(efloat.New(1), alpha)), vector.ScaleE(d[j], alpha))
		}
	}
	return d[p]
}

// InsertKnot returns a new BSplineCurve with t inserted once into the
// knot vector, using the standard affine blend
// Q_i = (1-alpha)*P_{i-1} + alpha*P_i (spec §4.2). The result is
// pointwise identical to the original curve (spec §8 property 4).
func (c BSplineCurve) InsertKnot(t efloat.EFloat) BSplineCurve {
	p := c.Degree
	k := c.findSpan(t)

	newKnots := make([]efloat.EFloat, len(c.Knots)+1)
	copy(newKnots[:k+1], c.Knots[:k+1])
	newKnots[k+1] = t
	copy(newKnots[k+2:], c.Knots[k+1:])

	newControls := make([]vector.Vec, len(c.Controls)+1)
	for i := 0; i <= k-p; i++ {
		newControls[i] = c.Controls[i]
	}
	for i := k - p + 1; i <= k; i++ {
		denom := efloat.Sub(c.Knots[i+p], c.Knots[i])
		var alpha efloat.EFloat
		if efloat.Equal(denom, efloat.Zero()) {
			// Denominator's interval straddles zero: per spec §4.2, the
			// affected control point is degenerate by construction and
			// alpha is taken as 0.
			alpha = efloat.Zero()
		} else {
			alpha = safeDiv(efloat.Sub(t, c.Knots[i]), denom)
		}
		newControls[i] = vector.Add(
			vector.ScaleE(c.Controls[i-1], efloat.Sub(efloat.New(1), alpha)),
			vector.ScaleE(c.Controls[i], alpha),
		)
	}
	for i := k; i < len(c.Controls); i++ {
		newControls[i+1] = c.Controls[i]
	}

	return BSplineCurve{Controls: newControls, Knots: newKnots, Degree: p}
}

// multiplicityAt returns how many times value already appears in the
// curve's knot vector, used by Subdivide to know how many more
// insertions are needed to reach the required multiplicity p+1.
func (c BSplineCurve) multiplicityAt(value efloat.EFloat) int {
	count := 0
	for _, k := range c.Knots {
		if efloat.Equal(k, value) {
			count++
		}
	}
	return count
}

// Subdivide splits the curve at parameter t into a left piece (the
// portion of the curve for parameters <= t, reparameterized implicitly
// by keeping the original knot values) and a right piece, by inserting
// t until its multiplicity equals degree+1 — at which point the break
// knot's control point is shared and the control polygon splits cleanly
// (spec §4.2, §8 property 5).
func (c BSplineCurve) Subdivide(t efloat.EFloat) (left, right BSplineCurve) {
	cur := c
	for cur.multiplicityAt(t) < cur.Degree+1 {
		cur = cur.InsertKnot(t)
	}

	p := cur.Degree
	splitKnotIndex := 0
	for i, k := range cur.Knots {
		if efloat.Equal(k, t) {
			splitKnotIndex = i
			break
		}
	}
	// splitKnotIndex is the index of the first occurrence of t; after
	// p+1 insertions, the control point at splitKnotIndex-1 is the
	// shared break point P(t).
	breakCtrl := splitKnotIndex - 1

	leftControls := append([]vector.Vec(nil), cur.Controls[:breakCtrl+1]...)
	leftKnots := append([]efloat.EFloat(nil), cur.Knots[:breakCtrl+p+2]...)
	left = BSplineCurve{Controls: leftControls, Knots: leftKnots, Degree: p}

	rightControls := append([]vector.Vec(nil), cur.Controls[breakCtrl+1:]...)
	rightKnots := append([]efloat.EFloat(nil), cur.Knots[breakCtrl+1:]...)
	right = BSplineCurve{Controls: rightControls, Knots: rightKnots, Degree: p}

	return left, right
}
