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

func sampleHelix(t *testing.T) curve.Curve {
	t.Helper()
	h, err := curve.NewHelix(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1), efloat.New(2*math.Pi), true)
	require.NoError(t, err)
	return h
}

func TestHelixOnCurve(t *testing.T) {
	h := sampleHelix(t)
	assert.True(t, curve.OnCurve(h, vector.New(1, 0, 0)))
	// one full turn rises by Pitch = 2*pi along the axis.
	assert.True(t, curve.OnCurve(h, vector.New(1, 0, 2*math.Pi)))
	assert.False(t, curve.OnCurve(h, vector.New(1, 0, 1)))
}

func TestHelixTangentHasAxialComponent(t *testing.T) {
	h := sampleHelix(t)
	tan, err := curve.Tangent(h, vector.New(1, 0, 0))
	require.NoError(t, err)
	assert.True(t, tan.Z.Mid() > 0)
}

func TestHelixDistanceOneTurn(t *testing.T) {
	h := sampleHelix(t)
	a, b := vector.New(1, 0, 0), vector.New(1, 0, 2*math.Pi)
	dist, err := curve.Distance(h, a, b)
	require.NoError(t, err)
	speed := math.Sqrt(1 + 1)
	assert.InDelta(t, speed*2*math.Pi, dist.Mid(), 1e-6)
}

func TestHelixInterpolateBetweenBounds(t *testing.T) {
	h := sampleHelix(t)
	cfg := config.DefaultConfig()
	a, b := vector.New(1, 0, 0), vector.New(1, 0, 2*math.Pi)
	mid, err := curve.Midpoint(h, cfg, &a, &b)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, mid.Z.Mid(), 1e-6)
	assert.InDelta(t, -1, mid.X.Mid(), 1e-6)
}

func TestHelixInterpolateWithHorizon(t *testing.T) {
	h := sampleHelix(t)
	cfg := config.DefaultConfig()
	b := vector.New(1, 0, 0)
	p, err := curve.Interpolate(h, cfg, nil, &b, efloat.New(1))
	require.NoError(t, err)
	assert.InDelta(t, 0, p.Z.Mid(), 1e-6)
}

func TestHelixBetween(t *testing.T) {
	h := sampleHelix(t)
	a, b := vector.New(1, 0, 0), vector.New(1, 0, 2*math.Pi)
	m := vector.New(-1, 0, math.Pi)
	inside, err := curve.Between(h, m, a, b)
	require.NoError(t, err)
	assert.True(t, inside)
}

func TestHelixFlipNegatesAxisAndWinding(t *testing.T) {
	h := sampleHelix(t)
	flipped := curve.Flip(h)
	tan, err := curve.Tangent(flipped, vector.New(1, 0, 0))
	require.NoError(t, err)
	assert.True(t, tan.Z.Mid() < 0)
}

func TestHelixBoundingBoxCoversAxialSpan(t *testing.T) {
	h := sampleHelix(t)
	cfg := config.DefaultConfig()
	a, b := vector.New(1, 0, 0), vector.New(1, 0, 2*math.Pi)
	box, err := curve.BoundingBox(h, cfg, &a, &b)
	require.NoError(t, err)
	assert.InDelta(t, 0, box.MinZ.Mid(), 1e-6)
	assert.InDelta(t, 2*math.Pi, box.MaxZ.Mid(), 1e-6)
	assert.InDelta(t, -1, box.MinX.Mid(), 1e-6)
	assert.InDelta(t, 1, box.MaxX.Mid(), 1e-6)
}

func TestHelixBoundingBoxWithNegativeAxisComponent(t *testing.T) {
	h, err := curve.NewHelix(vector.Zero(), vector.New(0, 0, -1), vector.New(1, 0, 0), efloat.New(1), efloat.New(2*math.Pi), true)
	require.NoError(t, err)
	cfg := config.DefaultConfig()
	a := vector.New(1, 0, 0)
	b := vector.New(1, 0, -2*math.Pi)
	box, err := curve.BoundingBox(h, cfg, &a, &b)
	require.NoError(t, err)
	assert.True(t, box.MinZ.Mid() <= box.MaxZ.Mid())
	assert.InDelta(t, -2*math.Pi, box.MinZ.Mid(), 1e-6)
	assert.InDelta(t, 0, box.MaxZ.Mid(), 1e-6)
}

func TestHelixRejectsZeroPitch(t *testing.T) {
	_, err := curve.NewHelix(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1), efloat.New(0), true)
	require.Error(t, err)
}

func TestHelixRejectsNonPositiveRadius(t *testing.T) {
	_, err := curve.NewHelix(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(0), efloat.New(1), true)
	require.Error(t, err)
}
