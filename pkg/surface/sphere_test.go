package surface_test

import (
	"math"
	"testing"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSphere(t *testing.T) surface.Surface {
	t.Helper()
	s, err := surface.NewSphere(vector.Zero(), efloat.New(1))
	require.NoError(t, err)
	return s
}

func TestSphereOnSurface(t *testing.T) {
	s := unitSphere(t)
	assert.True(t, surface.OnSurface(s, vector.New(1, 0, 0)))
	assert.False(t, surface.OnSurface(s, vector.New(1, 1, 0)))
}

func TestSphereNormal(t *testing.T) {
	s := unitSphere(t)
	n, err := surface.Normal(s, vector.New(0, 0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 1, n.Z.Mid(), 1e-9)
}

func TestSphereGeodesicQuarterArc(t *testing.T) {
	s := unitSphere(t)
	a, b := vector.New(1, 0, 0), vector.New(0, 1, 0)
	g, err := surface.Geodesic(s, config.DefaultConfig(), a, b)
	require.NoError(t, err)
	assert.Equal(t, curve.KindCircle, g.Kind)
	assert.True(t, curve.OnCurve(g, a))
	assert.True(t, curve.OnCurve(g, b))
	dist, err := curve.Distance(g, a, b)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, dist.Mid(), 1e-6)
}

func TestSphereGeodesicAntipodal(t *testing.T) {
	s := unitSphere(t)
	a, b := vector.New(1, 0, 0), vector.New(-1, 0, 0)
	g, err := surface.Geodesic(s, config.DefaultConfig(), a, b)
	require.NoError(t, err)
	assert.True(t, curve.OnCurve(g, a))
	assert.True(t, curve.OnCurve(g, b))
}

func TestSphereTransform(t *testing.T) {
	s := unitSphere(t)
	moved, err := surface.Transform(s, vector.Translation(5, 0, 0))
	require.NoError(t, err)
	assert.True(t, surface.OnSurface(moved, vector.New(6, 0, 0)))
}

func TestSpherePointGridOnSurface(t *testing.T) {
	s := unitSphere(t)
	points, err := surface.PointGrid(s, 5)
	require.NoError(t, err)
	for _, p := range points {
		d := vector.Norm(vector.Sub(p, vector.Zero())).Mid()
		assert.InDelta(t, 1, d, 1e-6)
	}
}

func TestSphereRejectsNonPositiveRadius(t *testing.T) {
	_, err := surface.NewSphere(vector.Zero(), efloat.New(0))
	require.Error(t, err)
}
