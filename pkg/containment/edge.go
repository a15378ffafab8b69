package containment

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// EdgeState is the three-way classification of spec §4.8's
// point-in-edge query.
type EdgeState int

const (
	EdgeOutside EdgeState = iota
	EdgeOnPoint
	EdgeInside
)

func (s EdgeState) String() string {
	switch s {
	case EdgeOutside:
		return "outside"
	case EdgeOnPoint:
		return "on_point"
	case EdgeInside:
		return "inside"
	default:
		return "unknown"
	}
}

// PointInEdge classifies p against e (spec §4.8): first p must satisfy
// curve.on_curve; a bounded endpoint coinciding with p reports OnPoint
// before the arc test runs, and a closed edge (both endpoints
// unbounded) has no exterior once on_curve holds.
func PointInEdge(cfg config.Config, e topology.Edge, p vector.Vec) (EdgeState, error) {
	if !curve.OnCurve(e.Curve, p) {
		return EdgeOutside, nil
	}
	if e.Start != nil && vector.Equal(*e.Start, p) {
		return EdgeOnPoint, nil
	}
	if e.End != nil && vector.Equal(*e.End, p) {
		return EdgeOnPoint, nil
	}
	if e.IsClosed() {
		return EdgeInside, nil
	}
	a, err := curve.Interpolate(e.Curve, cfg, e.Start, e.End, efloat.New(0))
	if err != nil {
		return 0, errs.Wrap(err, "containment.PointInEdge: resolving start point")
	}
	b, err := curve.Interpolate(e.Curve, cfg, e.Start, e.End, efloat.New(1))
	if err != nil {
		return 0, errs.Wrap(err, "containment.PointInEdge: resolving end point")
	}
	between, err := curve.Between(e.Curve, p, a, b)
	if err != nil {
		return 0, errs.Wrap(err, "containment.PointInEdge: arc membership")
	}
	if between {
		return EdgeInside, nil
	}
	return EdgeOutside, nil
}
