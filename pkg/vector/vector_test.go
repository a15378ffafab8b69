package vector_test

import (
	"math"
	"testing"

	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotCrossBasics(t *testing.T) {
	x := vector.New(1, 0, 0)
	y := vector.New(0, 1, 0)

	d := vector.Dot(x, y)
	assert.InDelta(t, 0, d.Mid(), 1e-9)

	c := vector.Cross(x, y)
	assert.InDelta(t, 0, c.X.Mid(), 1e-9)
	assert.InDelta(t, 0, c.Y.Mid(), 1e-9)
	assert.InDelta(t, 1, c.Z.Mid(), 1e-9)
}

func TestNormAndNormalized(t *testing.T) {
	v := vector.New(3, 4, 0)
	n := vector.Norm(v)
	assert.InDelta(t, 5, n.Mid(), 1e-9)

	unit := vector.Scale(v, 1.0/5.0)
	assert.True(t, vector.IsNormalized(unit))
	assert.False(t, vector.IsNormalized(v))
}

func TestAngleOrthogonalVectors(t *testing.T) {
	x := vector.New(1, 0, 0)
	y := vector.New(0, 1, 0)
	angle, err := vector.Angle(x, y)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, angle.Mid(), 1e-6)
}

func TestAngleFailsOnZeroVector(t *testing.T) {
	_, err := vector.Angle(vector.Zero(), vector.New(1, 0, 0))
	require.Error(t, err)
}

func TestSolveLinear3(t *testing.T) {
	// Identity system: x = b.
	x, err := vector.SolveLinear3([3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}, [3]float64{2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2, x[0], 1e-9)
	assert.InDelta(t, 3, x[1], 1e-9)
	assert.InDelta(t, 4, x[2], 1e-9)
}

func TestSolveLinear3Singular(t *testing.T) {
	_, err := vector.SolveLinear3([3][3]float64{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}, [3]float64{1, 2, 3})
	require.Error(t, err)
}
