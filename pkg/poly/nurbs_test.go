package poly_test

import (
	"testing"

	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/poly"
	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNURBSUnitWeightsMatchesBSpline(t *testing.T) {
	controls := []vector.Vec{vector.New(0, 0, 0), vector.New(1, 2, 0), vector.New(2, 0, 0)}
	knots := clampedLinearKnots()
	weights := ef(1, 1, 1)

	nurbs, err := poly.NewNURBSCurve(controls, weights, knots, 1)
	require.NoError(t, err)
	bs, err := poly.NewBSplineCurve(controls, knots, 1)
	require.NoError(t, err)

	for _, tv := range []float64{0, 0.25, 0.5, 0.75, 1} {
		u := efloat.New(tv)
		want := bs.Eval(u)
		got, err := nurbs.Eval(u)
		require.NoError(t, err)
		assert.InDelta(t, want.X.Mid(), got.X.Mid(), 1e-6)
		assert.InDelta(t, want.Y.Mid(), got.Y.Mid(), 1e-6)
	}
}

func TestNURBSRejectsNonPositiveWeight(t *testing.T) {
	controls := []vector.Vec{vector.New(0, 0, 0), vector.New(1, 0, 0), vector.New(2, 0, 0)}
	_, err := poly.NewNURBSCurve(controls, ef(1, 0, 1), clampedLinearKnots(), 1)
	require.Error(t, err)
}

func TestNURBSQuarterCircleArc(t *testing.T) {
	// Standard rational-quadratic quarter-circle arc: controls at
	// (1,0), (1,1), (0,1), weights 1, 1/sqrt(2), 1, knots
	// 0,0,0,1,1,1 (degree 2, clamped).
	sqrt2inv := 1.0 / 1.4142135623730951
	controls := []vector.Vec{vector.New(1, 0, 0), vector.New(1, 1, 0), vector.New(0, 1, 0)}
	weights := ef(1, sqrt2inv, 1)
	knots := ef(0, 0, 0, 1, 1, 1)

	nurbs, err := poly.NewNURBSCurve(controls, weights, knots, 2)
	require.NoError(t, err)

	mid, err := nurbs.Eval(efloat.New(0.5))
	require.NoError(t, err)
	// On the unit circle: x^2 + y^2 == 1.
	r := mid.X.Mid()*mid.X.Mid() + mid.Y.Mid()*mid.Y.Mid()
	assert.InDelta(t, 1, r, 1e-6)
}

func TestNURBSInsertKnotIsPointwiseIdentity(t *testing.T) {
	controls := []vector.Vec{vector.New(0, 0, 0), vector.New(1, 3, 0), vector.New(2, 0, 0)}
	weights := ef(1, 2, 1)
	knots := clampedLinearKnots()

	nurbs, err := poly.NewNURBSCurve(controls, weights, knots, 1)
	require.NoError(t, err)
	refined := nurbs.InsertKnot(efloat.New(0.25))

	for _, tv := range []float64{0, 0.1, 0.25, 0.5, 1} {
		u := efloat.New(tv)
		want, err := nurbs.Eval(u)
		require.NoError(t, err)
		got, err := refined.Eval(u)
		require.NoError(t, err)
		assert.InDelta(t, want.X.Mid(), got.X.Mid(), 1e-6)
		assert.InDelta(t, want.Y.Mid(), got.Y.Mid(), 1e-6)
	}
}

func TestNURBSSubdivideReconstructs(t *testing.T) {
	controls := []vector.Vec{vector.New(0, 0, 0), vector.New(1, 3, 0), vector.New(2, 0, 0)}
	weights := ef(1, 2, 1)
	knots := clampedLinearKnots()

	nurbs, err := poly.NewNURBSCurve(controls, weights, knots, 1)
	require.NoError(t, err)

	split := efloat.New(0.4)
	left, right := nurbs.Subdivide(split)

	for _, tv := range []float64{0, 0.2, 0.4} {
		u := efloat.New(tv)
		want, err := nurbs.Eval(u)
		require.NoError(t, err)
		got, err := left.Eval(u)
		require.NoError(t, err)
		assert.InDelta(t, want.X.Mid(), got.X.Mid(), 1e-6)
		assert.InDelta(t, want.Y.Mid(), got.Y.Mid(), 1e-6)
	}
	for _, tv := range []float64{0.4, 0.7, 1} {
		u := efloat.New(tv)
		want, err := nurbs.Eval(u)
		require.NoError(t, err)
		got, err := right.Eval(u)
		require.NoError(t, err)
		assert.InDelta(t, want.X.Mid(), got.X.Mid(), 1e-6)
		assert.InDelta(t, want.Y.Mid(), got.Y.Mid(), 1e-6)
	}
}
