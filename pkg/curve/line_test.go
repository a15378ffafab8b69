package curve_test

import (
	"testing"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineOnCurveAndTangent(t *testing.T) {
	l, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)

	assert.True(t, curve.OnCurve(l, vector.New(5, 0, 0)))
	assert.False(t, curve.OnCurve(l, vector.New(5, 1, 0)))

	tan, err := curve.Tangent(l, vector.New(2, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 1, tan.X.Mid(), 1e-9)
}

func TestLineDistanceAndInterpolate(t *testing.T) {
	l, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)

	a, b := vector.New(0, 0, 0), vector.New(4, 0, 0)
	dist, err := curve.Distance(l, a, b)
	require.NoError(t, err)
	assert.InDelta(t, 4, dist.Mid(), 1e-9)

	mid, err := curve.Midpoint(l, config.DefaultConfig(), &a, &b)
	require.NoError(t, err)
	assert.InDelta(t, 2, mid.X.Mid(), 1e-9)
}

func TestLineBetween(t *testing.T) {
	l, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)

	a, b := vector.New(0, 0, 0), vector.New(4, 0, 0)
	inside, err := curve.Between(l, vector.New(2, 0, 0), a, b)
	require.NoError(t, err)
	assert.True(t, inside)

	outside, err := curve.Between(l, vector.New(5, 0, 0), a, b)
	require.NoError(t, err)
	assert.False(t, outside)
}

func TestLineInterpolateWithHorizon(t *testing.T) {
	l, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)

	b := vector.New(0, 0, 0)
	cfg := config.DefaultConfig()
	p, err := curve.Interpolate(l, cfg, nil, &b, efloat.New(0))
	require.NoError(t, err)
	assert.InDelta(t, -cfg.HorizonDist, p.X.Mid(), 1e-6)
}

func TestLineProjectAndFlip(t *testing.T) {
	l, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)

	proj, err := curve.Project(l, vector.New(3, 7, 0))
	require.NoError(t, err)
	assert.InDelta(t, 3, proj.X.Mid(), 1e-9)
	assert.InDelta(t, 0, proj.Y.Mid(), 1e-9)

	flipped := curve.Flip(l)
	tan, err := curve.Tangent(flipped, vector.New(2, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, -1, tan.X.Mid(), 1e-9)
}

func TestLineTransform(t *testing.T) {
	l, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)

	moved, err := curve.Transform(l, vector.Translation(0, 5, 0))
	require.NoError(t, err)
	assert.True(t, curve.OnCurve(moved, vector.New(3, 5, 0)))
	assert.False(t, curve.OnCurve(moved, vector.New(3, 0, 0)))
}

func TestLineRejectsZeroDirection(t *testing.T) {
	_, err := curve.NewLine(vector.New(0, 0, 0), vector.New(0, 0, 0))
	require.Error(t, err)
}
