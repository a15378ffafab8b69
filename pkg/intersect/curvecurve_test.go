package intersect_test

import (
	"math"
	"testing"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/intersect"
	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Spec scenario S1: line-line intersection of (0,0,0)->(1,1,0) and
// (0,1,0)->(1,0,0) meets at (0.5, 0.5, 0).
func TestLineLineS1(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 1, 0))
	require.NoError(t, err)
	b, err := curve.NewLine(vector.New(0, 1, 0), vector.New(1, -1, 0))
	require.NoError(t, err)

	aLo, aHi := vector.New(0, 0, 0), vector.New(1, 1, 0)
	bLo, bHi := vector.New(0, 1, 0), vector.New(1, 0, 0)

	res, err := intersect.Curves(cfg, a, &aLo, &aHi, b, &bLo, &bHi)
	require.NoError(t, err)
	require.Equal(t, intersect.KindPoint, res.Kind)
	assert.InDelta(t, 0.5, res.P.X.Mid(), 1e-9)
	assert.InDelta(t, 0.5, res.P.Y.Mid(), 1e-9)
	assert.InDelta(t, 0, res.P.Z.Mid(), 1e-9)
}

func TestLineLineParallelDisjointIsNone(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)
	b, err := curve.NewLine(vector.New(0, 1, 0), vector.New(1, 0, 0))
	require.NoError(t, err)

	res, err := intersect.Curves(cfg, a, nil, nil, b, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, intersect.KindNone, res.Kind)
}

func TestLineLineCollinearIsCurve(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)
	b, err := curve.NewLine(vector.New(5, 0, 0), vector.New(2, 0, 0))
	require.NoError(t, err)

	res, err := intersect.Curves(cfg, a, nil, nil, b, nil, nil)
	require.NoError(t, err)
	require.Equal(t, intersect.KindCurve, res.Kind)
	assert.Equal(t, curve.KindLine, res.Curve.Kind)
}

func TestLineLineSkewIsNone(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)
	b, err := curve.NewLine(vector.New(0, 1, 1), vector.New(0, 1, 0))
	require.NoError(t, err)

	res, err := intersect.Curves(cfg, a, nil, nil, b, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, intersect.KindNone, res.Kind)
}

func TestLineLineOutOfBoundIsNone(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewLine(vector.New(0, 0, 0), vector.New(1, 1, 0))
	require.NoError(t, err)
	b, err := curve.NewLine(vector.New(0, 1, 0), vector.New(1, -1, 0))
	require.NoError(t, err)

	// Both bounded to the segment before the true intersection point.
	aLo, aHi := vector.New(0, 0, 0), vector.New(0.2, 0.2, 0)
	bLo, bHi := vector.New(0, 1, 0), vector.New(0.2, 0.8, 0)

	res, err := intersect.Curves(cfg, a, &aLo, &aHi, b, &bLo, &bHi)
	require.NoError(t, err)
	assert.Equal(t, intersect.KindNone, res.Kind)
}

// Spec scenario S2: circle-circle intersection, centers (0,0,0) and
// (1,0,0), both radius 2, both normal (0,0,1), meets at (0.5, +-sqrt(3.75), 0).
func TestCircleCircleS2(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewCircle(vector.New(0, 0, 0), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(2))
	require.NoError(t, err)
	b, err := curve.NewCircle(vector.New(1, 0, 0), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(2))
	require.NoError(t, err)

	res, err := intersect.Curves(cfg, a, nil, nil, b, nil, nil)
	require.NoError(t, err)
	require.Equal(t, intersect.KindPoints, res.Kind)

	h := math.Sqrt(3.75)
	pts := []vector.Vec{res.P, res.Q}
	var sawPositive, sawNegative bool
	for _, p := range pts {
		assert.InDelta(t, 0.5, p.X.Mid(), 1e-9)
		if p.Y.Mid() > 0 {
			assert.InDelta(t, h, p.Y.Mid(), 1e-9)
			sawPositive = true
		} else {
			assert.InDelta(t, -h, p.Y.Mid(), 1e-9)
			sawNegative = true
		}
	}
	assert.True(t, sawPositive)
	assert.True(t, sawNegative)
}

func TestCircleCircleConcentricDifferentRadiusIsNone(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)
	b, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(2))
	require.NoError(t, err)

	res, err := intersect.Curves(cfg, a, nil, nil, b, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, intersect.KindNone, res.Kind)
}

func TestCircleCircleSameCenterSameRadiusIsCurve(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)
	b, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(0, 1, 0), efloat.New(1))
	require.NoError(t, err)

	res, err := intersect.Curves(cfg, a, nil, nil, b, nil, nil)
	require.NoError(t, err)
	require.Equal(t, intersect.KindCurve, res.Kind)
}

func TestCircleCircleTangentIsOnePoint(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)
	b, err := curve.NewCircle(vector.New(2, 0, 0), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)

	res, err := intersect.Curves(cfg, a, nil, nil, b, nil, nil)
	require.NoError(t, err)
	require.Equal(t, intersect.KindPoint, res.Kind)
	assert.InDelta(t, 1, res.P.X.Mid(), 1e-9)
	assert.InDelta(t, 0, res.P.Y.Mid(), 1e-9)
}

func TestCircleCircleDisjointIsNone(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)
	b, err := curve.NewCircle(vector.New(5, 0, 0), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)

	res, err := intersect.Curves(cfg, a, nil, nil, b, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, intersect.KindNone, res.Kind)
}

func TestLineCircleTwoPoints(t *testing.T) {
	cfg := config.DefaultConfig()
	line, err := curve.NewLine(vector.New(-2, 0, 0), vector.New(1, 0, 0))
	require.NoError(t, err)
	circ, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)

	res, err := intersect.Curves(cfg, line, nil, nil, circ, nil, nil)
	require.NoError(t, err)
	require.Equal(t, intersect.KindPoints, res.Kind)
	xs := []float64{res.P.X.Mid(), res.Q.X.Mid()}
	assert.ElementsMatch(t, []float64{-1, 1}, []float64{roundTo(xs[0]), roundTo(xs[1])})
}

func roundTo(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Ellipse-ellipse has no closed form (spec §10's open question): falls
// back to the generic bisector via the whole-curve quarter-arc split.
func TestEllipseEllipseFallsBackToBisector(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := curve.NewEllipse(vector.Zero(), vector.New(0, 0, 1), vector.New(2, 0, 0), vector.New(0, 1, 0))
	require.NoError(t, err)
	b, err := curve.NewEllipse(vector.New(1, 0, 0), vector.New(0, 0, 1), vector.New(2, 0, 0), vector.New(0, 1, 0))
	require.NoError(t, err)

	res, err := intersect.Curves(cfg, a, nil, nil, b, nil, nil)
	require.NoError(t, err)
	assert.NotEqual(t, intersect.KindNone, res.Kind)
}
