package poly

import (
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// NURBSCurve is a BSplineCurve lifted into homogeneous coordinates by a
// per-control-point weight (spec §3.3, §4.2). A weight of 1 everywhere
// recovers the ordinary B-spline.
type NURBSCurve struct {
	Controls []vector.Vec
	Weights  []efloat.EFloat
	Knots    []efloat.EFloat
	Degree   int
}

// NewNURBSCurve validates weight count against control count (via the
// underlying BSplineCurve constructor) and that all weights are
// positive.
func NewNURBSCurve(controls []vector.Vec, weights []efloat.EFloat, knots []efloat.EFloat, degree int) (NURBSCurve, error) {
	if _, err := NewBSplineCurve(controls, knots, degree); err != nil {
		return NURBSCurve{}, err
	}
	if len(weights) != len(controls) {
		return NURBSCurve{}, errs.Newf(errs.DomainError,
			"poly: nurbs weight count %d != control count %d", len(weights), len(controls))
	}
	for _, w := range weights {
		if efloat.Cmp(w, efloat.Zero()) != efloat.Greater {
			return NURBSCurve{}, errs.New(errs.DegenerateConfiguration, "poly: nurbs weights must be positive")
		}
	}
	return NURBSCurve{
		Controls: append([]vector.Vec(nil), controls...),
		Weights:  append([]efloat.EFloat(nil), weights...),
		Knots:    append([]efloat.EFloat(nil), knots...),
		Degree:   degree,
	}, nil
}

// homogeneous lifts the curve's controls to 4-D points (wX, wY, wZ, w),
// stored here as a Vec for the spatial part plus a parallel weight
// slice, reusing BSplineCurve's de Boor machinery on each component.
func (c NURBSCurve) homogeneous() (BSplineCurve, BSplineCurve) {
	n := len(c.Controls)
	spatial := make([]vector.Vec, n)
	weightPts := make([]vector.Vec, n)
	for i := 0; i < n; i++ {
		w := c.Weights[i]
		spatial[i] = vector.ScaleE(c.Controls[i], w)
		weightPts[i] = vector.New(0, 0, 0)
		weightPts[i].X = w
	}
	spatialCurve := BSplineCurve{Controls: spatial, Knots: c.Knots, Degree: c.Degree}
	weightCurve := BSplineCurve{Controls: weightPts, Knots: c.Knots, Degree: c.Degree}
	return spatialCurve, weightCurve
}

// Eval evaluates the NURBS curve at u by de Boor in homogeneous
// coordinates followed by perspective division.
func (c NURBSCurve) Eval(u efloat.EFloat) (vector.Vec, error) {
	spatialCurve, weightCurve := c.homogeneous()
	hp := spatialCurve.Eval(u)
	hw := weightCurve.Eval(u).X

	wNZ, err := efloat.NewNonZero(hw)
	if err != nil {
		return vector.Vec{}, errs.Wrap(err, "poly: nurbs evaluation hit a possibly-zero homogeneous weight")
	}
	return vector.Vec{
		X: efloat.DivBy(hp.X, wNZ),
		Y: efloat.DivBy(hp.Y, wNZ),
		Z: efloat.DivBy(hp.Z, wNZ),
	}, nil
}

// InsertKnot returns a new NURBSCurve with t inserted once, by lifting
// to homogeneous coordinates, inserting there (where the ordinary
// B-spline affine blend applies unchanged), and reading the weights
// back out of the lifted curve's first coordinate.
func (c NURBSCurve) InsertKnot(t efloat.EFloat) NURBSCurve {
	spatialCurve, weightCurve := c.homogeneous()
	newSpatial := spatialCurve.InsertKnot(t)
	newWeight := weightCurve.InsertKnot(t)
	return dehomogenize(newSpatial, newWeight)
}

// Subdivide splits the NURBS curve at t by the same homogeneous-lift
// strategy as InsertKnot, applied to BSplineCurve.Subdivide.
func (c NURBSCurve) Subdivide(t efloat.EFloat) (left, right NURBSCurve) {
	spatialCurve, weightCurve := c.homogeneous()
	ls, rs := spatialCurve.Subdivide(t)
	lw, rw := weightCurve.Subdivide(t)
	return dehomogenize(ls, lw), dehomogenize(rs, rw)
}

// dehomogenize rebuilds a NURBSCurve from a pair of lifted spatial and
// weight BSplineCurves sharing the same knot vector and degree.
func dehomogenize(spatial, weight BSplineCurve) NURBSCurve {
	n := len(spatial.Controls)
	controls := make([]vector.Vec, n)
	weights := make([]efloat.EFloat, n)
	for i := 0; i < n; i++ {
		w := weight.Controls[i].X
		weights[i] = w
		wNZ, err := efloat.NewNonZero(w)
		if err != nil {
			// A zero-weight control point after insertion would be a
			// degenerate NURBS curve; the homogeneous weight basis
			// function construction guarantees positivity is preserved
			// by knot insertion's convex-combination structure, so this
			// is unreachable for curves built through NewNURBSCurve.
			panic("poly: nurbs dehomogenize hit a zero weight: " + err.Error())
		}
		controls[i] = vector.Vec{
			X: efloat.DivBy(spatial.Controls[i].X, wNZ),
			Y: efloat.DivBy(spatial.Controls[i].Y, wNZ),
			Z: efloat.DivBy(spatial.Controls[i].Z, wNZ),
		}
	}
	return NURBSCurve{Controls: controls, Weights: weights, Knots: spatial.Knots, Degree: spatial.Degree}
}
