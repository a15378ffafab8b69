package poly_test

import (
	"testing"

	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/poly"
	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clampedLinearKnots() []efloat.EFloat {
	// Clamped linear (degree 1) with 3 control points: knots
	// 0,0,0.5,1,1.
	return ef(0, 0, 0.5, 1, 1)
}

func TestBSplineCurveRejectsBadKnotCount(t *testing.T) {
	controls := []vector.Vec{vector.New(0, 0, 0), vector.New(1, 0, 0)}
	_, err := poly.NewBSplineCurve(controls, ef(0, 1), 1)
	require.Error(t, err)
}

func TestBSplineCurveEvalEndpoints(t *testing.T) {
	controls := []vector.Vec{vector.New(0, 0, 0), vector.New(1, 2, 0), vector.New(2, 0, 0)}
	curve, err := poly.NewBSplineCurve(controls, clampedLinearKnots(), 1)
	require.NoError(t, err)

	start := curve.Eval(efloat.New(0))
	assert.InDelta(t, 0, start.X.Mid(), 1e-9)
	assert.InDelta(t, 0, start.Y.Mid(), 1e-9)

	end := curve.Eval(efloat.New(1))
	assert.InDelta(t, 2, end.X.Mid(), 1e-9)
	assert.InDelta(t, 0, end.Y.Mid(), 1e-9)

	mid := curve.Eval(efloat.New(0.5))
	assert.InDelta(t, 1, mid.X.Mid(), 1e-9)
	assert.InDelta(t, 2, mid.Y.Mid(), 1e-9)
}

func TestBSplineCurveInsertKnotIsPointwiseIdentity(t *testing.T) {
	// spec §8 property 4.
	controls := []vector.Vec{vector.New(0, 0, 0), vector.New(1, 3, 0), vector.New(2, 0, 0)}
	curve, err := poly.NewBSplineCurve(controls, clampedLinearKnots(), 1)
	require.NoError(t, err)

	refined := curve.InsertKnot(efloat.New(0.25))
	for _, tv := range []float64{0, 0.1, 0.25, 0.4, 0.5, 0.75, 1} {
		u := efloat.New(tv)
		want := curve.Eval(u)
		got := refined.Eval(u)
		assert.InDelta(t, want.X.Mid(), got.X.Mid(), 1e-6)
		assert.InDelta(t, want.Y.Mid(), got.Y.Mid(), 1e-6)
	}
}

func TestBSplineCurveSubdivideReconstructs(t *testing.T) {
	// spec §8 property 5.
	controls := []vector.Vec{vector.New(0, 0, 0), vector.New(1, 3, 0), vector.New(2, 0, 0)}
	curve, err := poly.NewBSplineCurve(controls, clampedLinearKnots(), 1)
	require.NoError(t, err)

	split := efloat.New(0.4)
	left, right := curve.Subdivide(split)

	breakPoint := curve.Eval(split)
	leftEnd := left.Eval(efloat.New(left.Knots[len(left.Knots)-1].Mid()))
	assert.InDelta(t, breakPoint.X.Mid(), leftEnd.X.Mid(), 1e-6)
	assert.InDelta(t, breakPoint.Y.Mid(), leftEnd.Y.Mid(), 1e-6)

	rightStart := right.Eval(efloat.New(right.Knots[0].Mid()))
	assert.InDelta(t, breakPoint.X.Mid(), rightStart.X.Mid(), 1e-6)
	assert.InDelta(t, breakPoint.Y.Mid(), rightStart.Y.Mid(), 1e-6)

	for _, tv := range []float64{0, 0.1, 0.2, 0.3, 0.4} {
		u := efloat.New(tv)
		want := curve.Eval(u)
		got := left.Eval(u)
		assert.InDelta(t, want.X.Mid(), got.X.Mid(), 1e-6)
		assert.InDelta(t, want.Y.Mid(), got.Y.Mid(), 1e-6)
	}
	for _, tv := range []float64{0.4, 0.6, 0.8, 1} {
		u := efloat.New(tv)
		want := curve.Eval(u)
		got := right.Eval(u)
		assert.InDelta(t, want.X.Mid(), got.X.Mid(), 1e-6)
		assert.InDelta(t, want.Y.Mid(), got.Y.Mid(), 1e-6)
	}
}
