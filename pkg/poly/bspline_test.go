package poly_test

import (
	"testing"

	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBSplineBasisRejectsBadKnotLength(t *testing.T) {
	_, err := poly.NewBSplineBasis(0, 2, ef(0, 1))
	require.Error(t, err)
}

func TestBSplineBasisRejectsDecreasingKnots(t *testing.T) {
	_, err := poly.NewBSplineBasis(0, 1, ef(0, 1, 0.5))
	require.Error(t, err)
}

func TestBSplineBasisPartitionOfUnityDegreeZero(t *testing.T) {
	// A clamped degree-0 "basis" over a single span is just the
	// indicator of that span.
	b, err := poly.NewBSplineBasis(0, 0, ef(0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 1, b.Eval(efloat.New(0.5)).Mid(), 1e-9)
	assert.InDelta(t, 0, b.Eval(efloat.New(1.5)).Mid(), 1e-9)
}

func TestBSplineBasisLinearHatFunction(t *testing.T) {
	// N_{0,1} over knots [0,1,2] is the standard linear hat: 0 at u=0,
	// 1 at u=1, 0 at u=2.
	b, err := poly.NewBSplineBasis(0, 1, ef(0, 1, 2))
	require.NoError(t, err)
	assert.InDelta(t, 0, b.Eval(efloat.New(0)).Mid(), 1e-9)
	assert.InDelta(t, 1, b.Eval(efloat.New(1)).Mid(), 1e-9)
	assert.InDelta(t, 0.5, b.Eval(efloat.New(0.5)).Mid(), 1e-9)
	assert.InDelta(t, 0.5, b.Eval(efloat.New(1.5)).Mid(), 1e-9)
}
