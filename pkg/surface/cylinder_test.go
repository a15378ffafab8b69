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

func unitCylinder(t *testing.T) surface.Surface {
	t.Helper()
	c, err := surface.NewCylinder(vector.Zero(), vector.New(0, 0, 1), efloat.New(1))
	require.NoError(t, err)
	return c
}

func TestCylinderOnSurface(t *testing.T) {
	c := unitCylinder(t)
	assert.True(t, surface.OnSurface(c, vector.New(1, 0, 5)))
	assert.False(t, surface.OnSurface(c, vector.New(0, 0, 5)))
}

func TestCylinderNormalIsRadial(t *testing.T) {
	c := unitCylinder(t)
	n, err := surface.Normal(c, vector.New(1, 0, 3))
	require.NoError(t, err)
	assert.InDelta(t, 1, n.X.Mid(), 1e-9)
	assert.InDelta(t, 0, n.Z.Mid(), 1e-9)
}

func TestCylinderGeodesicSameAngleIsLine(t *testing.T) {
	c := unitCylinder(t)
	a, b := vector.New(1, 0, 0), vector.New(1, 0, 5)
	g, err := surface.Geodesic(c, config.DefaultConfig(), a, b)
	require.NoError(t, err)
	assert.Equal(t, curve.KindLine, g.Kind)
	assert.True(t, curve.OnCurve(g, a))
	assert.True(t, curve.OnCurve(g, b))
}

func TestCylinderGeodesicSameHeightIsCircle(t *testing.T) {
	c := unitCylinder(t)
	a, b := vector.New(1, 0, 0), vector.New(0, 1, 0)
	g, err := surface.Geodesic(c, config.DefaultConfig(), a, b)
	require.NoError(t, err)
	assert.Equal(t, curve.KindCircle, g.Kind)
	assert.True(t, curve.OnCurve(g, a))
	assert.True(t, curve.OnCurve(g, b))
}

func TestCylinderGeodesicGeneralIsHelix(t *testing.T) {
	c := unitCylinder(t)
	a, b := vector.New(1, 0, 0), vector.New(0, 1, 5)
	g, err := surface.Geodesic(c, config.DefaultConfig(), a, b)
	require.NoError(t, err)
	assert.Equal(t, curve.KindHelix, g.Kind)
	assert.True(t, curve.OnCurve(g, a))
	assert.True(t, curve.OnCurve(g, b))
}

func TestCylinderTransform(t *testing.T) {
	c := unitCylinder(t)
	moved, err := surface.Transform(c, vector.Translation(0, 0, 3))
	require.NoError(t, err)
	assert.True(t, surface.OnSurface(moved, vector.New(1, 0, 10)))
}

func TestCylinderPointGridOnSurface(t *testing.T) {
	c := unitCylinder(t)
	points, err := surface.PointGrid(c, 5)
	require.NoError(t, err)
	for _, p := range points {
		r := math.Hypot(p.X.Mid(), p.Y.Mid())
		assert.InDelta(t, 1, r, 1e-6)
	}
}

func TestCylinderRejectsNonPositiveRadius(t *testing.T) {
	_, err := surface.NewCylinder(vector.Zero(), vector.New(0, 0, 1), efloat.New(0))
	require.Error(t, err)
}
