package surface_test

import (
	"testing"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xyPlane(t *testing.T) surface.Surface {
	t.Helper()
	p, err := surface.NewPlane(vector.Zero(), vector.New(0, 0, 1))
	require.NoError(t, err)
	return p
}

func TestPlaneOnSurface(t *testing.T) {
	p := xyPlane(t)
	assert.True(t, surface.OnSurface(p, vector.New(3, -2, 0)))
	assert.False(t, surface.OnSurface(p, vector.New(3, -2, 1)))
}

func TestPlaneNormal(t *testing.T) {
	p := xyPlane(t)
	n, err := surface.Normal(p, vector.New(1, 1, 0))
	require.NoError(t, err)
	assert.InDelta(t, 0, n.X.Mid(), 1e-9)
	assert.InDelta(t, 1, n.Z.Mid(), 1e-9)
}

func TestPlaneFlipReversesNormal(t *testing.T) {
	p := xyPlane(t)
	flipped := surface.Flip(p)
	n, err := surface.Normal(flipped, vector.New(0, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, -1, n.Z.Mid(), 1e-9)
}

func TestPlaneGeodesicIsLine(t *testing.T) {
	p := xyPlane(t)
	a, b := vector.New(0, 0, 0), vector.New(3, 4, 0)
	g, err := surface.Geodesic(p, config.DefaultConfig(), a, b)
	require.NoError(t, err)
	assert.Equal(t, curve.KindLine, g.Kind)
	assert.True(t, curve.OnCurve(g, a))
	assert.True(t, curve.OnCurve(g, b))
	dist, err := curve.Distance(g, a, b)
	require.NoError(t, err)
	assert.InDelta(t, 5, dist.Mid(), 1e-9)
}

func TestPlaneTransform(t *testing.T) {
	p := xyPlane(t)
	moved, err := surface.Transform(p, vector.Translation(0, 0, 5))
	require.NoError(t, err)
	assert.True(t, surface.OnSurface(moved, vector.New(1, 1, 5)))
	assert.False(t, surface.OnSurface(moved, vector.New(1, 1, 0)))
}

func TestPlanePointGrid(t *testing.T) {
	p := xyPlane(t)
	points, err := surface.PointGrid(p, 4)
	require.NoError(t, err)
	assert.Len(t, points, 16)
	for _, pt := range points {
		assert.True(t, surface.OnSurface(p, pt))
	}
}

func TestPlaneRejectsZeroNormal(t *testing.T) {
	_, err := surface.NewPlane(vector.Zero(), vector.New(0, 0, 0))
	require.Error(t, err)
}

func TestPlaneRejectsZeroLengthGeodesic(t *testing.T) {
	p := xyPlane(t)
	a := vector.New(1, 1, 0)
	_, err := surface.Geodesic(p, config.DefaultConfig(), a, a)
	require.Error(t, err)
}
