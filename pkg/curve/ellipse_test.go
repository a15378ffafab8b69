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

func sampleEllipse(t *testing.T) curve.Curve {
	t.Helper()
	e, err := curve.NewEllipse(vector.Zero(), vector.New(0, 0, 1), vector.New(2, 0, 0), vector.New(0, 1, 0))
	require.NoError(t, err)
	return e
}

func TestEllipseOnCurve(t *testing.T) {
	e := sampleEllipse(t)
	assert.True(t, curve.OnCurve(e, vector.New(2, 0, 0)))
	assert.True(t, curve.OnCurve(e, vector.New(0, 1, 0)))
	assert.False(t, curve.OnCurve(e, vector.New(1, 1, 0)))
}

func TestEllipseTangentAtVertex(t *testing.T) {
	e := sampleEllipse(t)
	tan, err := curve.Tangent(e, vector.New(2, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 0, tan.X.Mid(), 1e-9)
	assert.True(t, tan.Y.Mid() > 0)
}

func TestEllipseRejectsNonOrthogonalAxes(t *testing.T) {
	_, err := curve.NewEllipse(vector.Zero(), vector.New(0, 0, 1), vector.New(2, 0, 0), vector.New(1, 1, 0))
	require.Error(t, err)
}

func TestEllipseRejectsAxisNotOrthogonalToNormal(t *testing.T) {
	_, err := curve.NewEllipse(vector.Zero(), vector.New(0, 0, 1), vector.New(2, 0, 1), vector.New(0, 1, 0))
	require.Error(t, err)
}

func TestEllipseDistanceQuarterArcApproximatesQuadrant(t *testing.T) {
	e := sampleEllipse(t)
	dist, err := curve.Distance(e, vector.New(2, 0, 0), vector.New(0, 1, 0))
	require.NoError(t, err)
	// A quarter of this ellipse's circumference is strictly between the
	// semi-minor and semi-major quarter-circle arcs (pi/2 and pi).
	assert.True(t, dist.Mid() > math.Pi/2 && dist.Mid() < math.Pi)
}

func TestEllipseInterpolateFullSweep(t *testing.T) {
	e := sampleEllipse(t)
	p, err := curve.Interpolate(e, config.DefaultConfig(), nil, nil, efloat.New(0.5))
	require.NoError(t, err)
	assert.InDelta(t, -2, p.X.Mid(), 1e-6)
	assert.InDelta(t, 0, p.Y.Mid(), 1e-6)
}

func TestEllipseBetween(t *testing.T) {
	e := sampleEllipse(t)
	a, b := vector.New(2, 0, 0), vector.New(-2, 0, 0)
	inside, err := curve.Between(e, vector.New(0, 1, 0), a, b)
	require.NoError(t, err)
	assert.True(t, inside)
}

func TestEllipseProjectOffCurvePoint(t *testing.T) {
	e := sampleEllipse(t)
	proj, err := curve.Project(e, vector.New(4, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 2, proj.X.Mid(), 1e-6)
	assert.InDelta(t, 0, proj.Y.Mid(), 1e-6)
}

func TestEllipseBoundingBox(t *testing.T) {
	e := sampleEllipse(t)
	box, err := curve.BoundingBox(e, config.DefaultConfig(), nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, -2, box.MinX.Mid(), 1e-9)
	assert.InDelta(t, 2, box.MaxX.Mid(), 1e-9)
	assert.InDelta(t, -1, box.MinY.Mid(), 1e-9)
	assert.InDelta(t, 1, box.MaxY.Mid(), 1e-9)
}

func TestEllipseTransform(t *testing.T) {
	e := sampleEllipse(t)
	moved, err := curve.Transform(e, vector.Translation(1, 0, 0))
	require.NoError(t, err)
	assert.True(t, curve.OnCurve(moved, vector.New(3, 0, 0)))
}
