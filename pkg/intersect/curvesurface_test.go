package intersect_test

import (
	"testing"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/intersect"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePlaneSinglePoint(t *testing.T) {
	cfg := config.DefaultConfig()
	line, err := curve.NewLine(vector.New(0, 0, -5), vector.New(0, 0, 1))
	require.NoError(t, err)
	plane, err := surface.NewPlane(vector.Zero(), vector.New(0, 0, 1))
	require.NoError(t, err)

	res, err := intersect.CurveSurface(cfg, line, nil, nil, plane)
	require.NoError(t, err)
	require.Equal(t, intersect.KindPoint, res.Kind)
	assert.InDelta(t, 0, res.P.Z.Mid(), 1e-9)
}

func TestLinePlaneParallelDisjointIsNone(t *testing.T) {
	cfg := config.DefaultConfig()
	line, err := curve.NewLine(vector.New(0, 0, 5), vector.New(1, 0, 0))
	require.NoError(t, err)
	plane, err := surface.NewPlane(vector.Zero(), vector.New(0, 0, 1))
	require.NoError(t, err)

	res, err := intersect.CurveSurface(cfg, line, nil, nil, plane)
	require.NoError(t, err)
	assert.Equal(t, intersect.KindNone, res.Kind)
}

func TestLinePlaneInPlaneIsCurve(t *testing.T) {
	cfg := config.DefaultConfig()
	line, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)
	plane, err := surface.NewPlane(vector.Zero(), vector.New(0, 0, 1))
	require.NoError(t, err)

	res, err := intersect.CurveSurface(cfg, line, nil, nil, plane)
	require.NoError(t, err)
	assert.Equal(t, intersect.KindCurve, res.Kind)
}

func TestLineSphereTwoPoints(t *testing.T) {
	cfg := config.DefaultConfig()
	line, err := curve.NewLine(vector.New(-5, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)
	sphere, err := surface.NewSphere(vector.Zero(), efloat.New(2))
	require.NoError(t, err)

	res, err := intersect.CurveSurface(cfg, line, nil, nil, sphere)
	require.NoError(t, err)
	require.Equal(t, intersect.KindPoints, res.Kind)
	assert.InDelta(t, 16, (res.P.X.Mid()-res.Q.X.Mid())*(res.P.X.Mid()-res.Q.X.Mid()), 1e-6)
}

func TestLineSphereMissIsNone(t *testing.T) {
	cfg := config.DefaultConfig()
	line, err := curve.NewLine(vector.New(-5, 10, 0), vector.New(1, 0, 0))
	require.NoError(t, err)
	sphere, err := surface.NewSphere(vector.Zero(), efloat.New(2))
	require.NoError(t, err)

	res, err := intersect.CurveSurface(cfg, line, nil, nil, sphere)
	require.NoError(t, err)
	assert.Equal(t, intersect.KindNone, res.Kind)
}

func TestLineCylinderTwoPoints(t *testing.T) {
	cfg := config.DefaultConfig()
	line, err := curve.NewLine(vector.New(-5, 0, 3), vector.New(1, 0, 0))
	require.NoError(t, err)
	cyl, err := surface.NewCylinder(vector.Zero(), vector.New(0, 0, 1), efloat.New(1))
	require.NoError(t, err)

	res, err := intersect.CurveSurface(cfg, line, nil, nil, cyl)
	require.NoError(t, err)
	require.Equal(t, intersect.KindPoints, res.Kind)
	assert.InDelta(t, 3, res.P.Z.Mid(), 1e-9)
	assert.InDelta(t, 3, res.Q.Z.Mid(), 1e-9)
}

func TestCirclePlaneOnePoint(t *testing.T) {
	cfg := config.DefaultConfig()
	circ, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)
	plane, err := surface.NewPlane(vector.New(1, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)

	res, err := intersect.CurveSurface(cfg, circ, nil, nil, plane)
	require.NoError(t, err)
	require.Equal(t, intersect.KindPoint, res.Kind)
	assert.InDelta(t, 1, res.P.X.Mid(), 1e-9)
}

func TestCircleSphereSectionCircle(t *testing.T) {
	cfg := config.DefaultConfig()
	circ, err := curve.NewCircle(vector.New(2, 0, 0), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(2))
	require.NoError(t, err)
	sphere, err := surface.NewSphere(vector.Zero(), efloat.New(1))
	require.NoError(t, err)

	res, err := intersect.CurveSurface(cfg, circ, nil, nil, sphere)
	require.NoError(t, err)
	require.Equal(t, intersect.KindPoints, res.Kind)
	assert.InDelta(t, 1, res.P.X.Mid()*res.P.X.Mid()+res.P.Y.Mid()*res.P.Y.Mid(), 1e-6)
}
