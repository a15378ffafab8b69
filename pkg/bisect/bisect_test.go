package bisect_test

import (
	"math"
	"testing"

	"github.com/chazu/geop/pkg/bisect"
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two unit circles, centered a unit apart, meeting at (0.5, +-sqrt(3)/2, 0).
func crossingCircles(t *testing.T) (curve.Curve, curve.Curve) {
	t.Helper()
	a, err := curve.NewCircle(vector.Zero(), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)
	b, err := curve.NewCircle(vector.New(1, 0, 0), vector.New(0, 0, 1), vector.New(1, 0, 0), efloat.New(1))
	require.NoError(t, err)
	return a, b
}

func TestBisectCirclesConvergeAtIntersection(t *testing.T) {
	a, b := crossingCircles(t)
	cfg := config.DefaultConfig()

	// Quarter arc of a from angle 0 to pi/2, and the matching quarter
	// arc of b (centered at (1,0,0)) from angle pi/2 to pi, both of
	// which bracket the upper intersection point.
	ia := bisect.Interval{Lo: vector.New(1, 0, 0), Hi: vector.New(0, 1, 0)}
	ib := bisect.Interval{Lo: vector.New(1, 1, 0), Hi: vector.New(0, 0, 0)}

	points, err := bisect.Curves(cfg, a, ia, b, ib)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 0.5, points[0].X.Mid(), 1e-4)
	assert.InDelta(t, math.Sqrt(3)/2, points[0].Y.Mid(), 1e-4)
}

func TestBisectCirclesNoIntersectionInDisjointArcs(t *testing.T) {
	a, b := crossingCircles(t)
	cfg := config.DefaultConfig()

	// The lower-right quarter of a (angle -pi/2 to 0, i.e. (0,-1,0) to
	// (1,0,0)) never meets the upper-left quarter of b (angle pi/2 to
	// pi, i.e. (1,1,0) to (0,0,0)): both intersection points of the
	// full circles lie outside these arcs.
	ia := bisect.Interval{Lo: vector.New(0, -1, 0), Hi: vector.New(1, 0, 0)}
	ib := bisect.Interval{Lo: vector.New(1, 1, 0), Hi: vector.New(0, 0, 0)}

	points, err := bisect.Curves(cfg, a, ia, b, ib)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestBisectRespectsDepthLimit(t *testing.T) {
	a, b := crossingCircles(t)
	cfg := config.New(config.WithMaxBisectionDepth(0))

	ia := bisect.Interval{Lo: vector.New(1, 0, 0), Hi: vector.New(0, 1, 0)}
	ib := bisect.Interval{Lo: vector.New(1, 1, 0), Hi: vector.New(0, 0, 0)}

	_, err := bisect.Curves(cfg, a, ia, b, ib)
	require.Error(t, err)
}
