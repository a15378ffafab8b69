package curve_test

import (
	"math"
	"testing"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitCircle(t *testing.T) curve.Curve {
	t.Helper()
	c, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)
	return c
}

func TestCircleOnCurve(t *testing.T) {
	c := unitCircle(t)
	assert.True(t, curve.OnCurve(c, vector.New(1, 0, 0)))
	assert.True(t, curve.OnCurve(c, vector.New(0, 1, 0)))
	assert.False(t, curve.OnCurve(c, vector.New(2, 0, 0)))
	assert.False(t, curve.OnCurve(c, vector.New(1, 0, 1)))
}

func TestCircleTangentRightHandRule(t *testing.T) {
	c := unitCircle(t)
	tan, err := curve.Tangent(c, vector.New(1, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 0, tan.X.Mid(), 1e-9)
	assert.InDelta(t, 1, tan.Y.Mid(), 1e-9)
}

func TestCircleDistanceQuarterTurn(t *testing.T) {
	c := unitCircle(t)
	dist, err := curve.Distance(c, vector.New(1, 0, 0), vector.New(0, 1, 0))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, dist.Mid(), 1e-6)
}

func TestCircleInterpolateFullCircle(t *testing.T) {
	c := unitCircle(t)
	cfg := config.DefaultConfig()
	p, err := curve.Interpolate(c, cfg, nil, nil, efloat.New(0.25))
	require.NoError(t, err)
	assert.InDelta(t, 0, p.X.Mid(), 1e-6)
	assert.InDelta(t, 1, p.Y.Mid(), 1e-6)
}

func TestCircleInterpolateArc(t *testing.T) {
	c := unitCircle(t)
	cfg := config.DefaultConfig()
	a, b := vector.New(1, 0, 0), vector.New(0, 1, 0)
	mid, err := curve.Midpoint(c, cfg, &a, &b)
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(math.Pi/4), mid.X.Mid(), 1e-6)
	assert.InDelta(t, math.Sin(math.Pi/4), mid.Y.Mid(), 1e-6)
}

func TestCircleBetween(t *testing.T) {
	c := unitCircle(t)
	a, b := vector.New(1, 0, 0), vector.New(0, -1, 0)
	inside, err := curve.Between(c, vector.New(0, 1, 0), a, b)
	require.NoError(t, err)
	assert.True(t, inside)

	outside, err := curve.Between(c, vector.New(math.Sqrt2/2, -math.Sqrt2/2, 0), a, b)
	require.NoError(t, err)
	assert.False(t, outside)
}

func TestCircleProject(t *testing.T) {
	c := unitCircle(t)
	proj, err := curve.Project(c, vector.New(5, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 1, proj.X.Mid(), 1e-9)
	assert.InDelta(t, 0, proj.Y.Mid(), 1e-9)
}

func TestCircleBoundingBox(t *testing.T) {
	c := unitCircle(t)
	cfg := config.DefaultConfig()
	box, err := curve.BoundingBox(c, cfg, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, -1, box.MinX.Mid(), 1e-9)
	assert.InDelta(t, 1, box.MaxX.Mid(), 1e-9)
	assert.InDelta(t, -1, box.MinY.Mid(), 1e-9)
	assert.InDelta(t, 1, box.MaxY.Mid(), 1e-9)
	assert.InDelta(t, 0, box.MinZ.Mid(), 1e-9)
	assert.InDelta(t, 0, box.MaxZ.Mid(), 1e-9)
}

func TestCircleTransform(t *testing.T) {
	c := unitCircle(t)
	moved, err := curve.Transform(c, vector.Translation(5, 0, 0))
	require.NoError(t, err)
	assert.True(t, curve.OnCurve(moved, vector.New(6, 0, 0)))
}

func TestCircleFlipReversesTangent(t *testing.T) {
	c := unitCircle(t)
	flipped := curve.Flip(c)
	tan, err := curve.Tangent(flipped, vector.New(1, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 0, tan.X.Mid(), 1e-9)
	assert.InDelta(t, -1, tan.Y.Mid(), 1e-9)
}

func TestCircleRejectsNonPositiveRadius(t *testing.T) {
	_, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(0))
	require.Error(t, err)
}

func TestCircleNonOrthogonalRefDirectionIsProjected(t *testing.T) {
	c, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 1), efloat.New(1))
	require.NoError(t, err)
	assert.True(t, curve.OnCurve(c, vector.New(1, 0, 0)))
}
