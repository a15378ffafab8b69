package topology

import (
	"github.com/google/uuid"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// Edge is a bounded or unbounded oriented piece of a curve (spec §3.6).
// Start/End are nil for an unbounded endpoint (an open Line or Helix)
// or for both ends of a closed curve run in full (a whole Circle).
type Edge struct {
	ID    uuid.UUID
	Start *vector.Vec
	End   *vector.Vec
	Curve curve.Curve
}

// NewEdge validates spec §3.6's invariants: a non-nil endpoint must lie
// on the curve, and Start == End is only permitted when both are nil.
func NewEdge(start, end *vector.Vec, c curve.Curve) (Edge, error) {
	if start != nil && !curve.OnCurve(c, *start) {
		return Edge{}, errs.New(errs.InvalidTopology, "edge: start point does not lie on curve")
	}
	if end != nil && !curve.OnCurve(c, *end) {
		return Edge{}, errs.New(errs.InvalidTopology, "edge: end point does not lie on curve")
	}
	if start != nil && end != nil && vector.Equal(*start, *end) {
		return Edge{}, errs.New(errs.InvalidTopology, "edge: start == end is only valid when both are unbounded")
	}
	return Edge{ID: uuid.New(), Start: start, End: end, Curve: c}, nil
}

// samePoint treats two nil endpoints as equal (both unbounded) and two
// non-nil endpoints as equal when their coordinate intervals overlap.
func samePoint(a, b *vector.Vec) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return vector.Equal(*a, *b)
}

// Flip swaps endpoints and reverses the underlying curve, so the edge
// runs the opposite direction (spec §3.6).
func (e Edge) Flip() Edge {
	return Edge{ID: uuid.New(), Start: e.End, End: e.Start, Curve: curve.Flip(e.Curve)}
}

// IsClosed reports whether e has no declared endpoints at all (a full
// circle, a sphere's equator-like seam, etc).
func (e Edge) IsClosed() bool {
	return e.Start == nil && e.End == nil
}

// Midpoint returns the point at the edge's curve parameter t = 1/2,
// using cfg.HorizonDist to stand in for any unbounded endpoint.
func (e Edge) Midpoint(cfg config.Config) (vector.Vec, error) {
	return curve.Midpoint(e.Curve, cfg, e.Start, e.End)
}

// Length returns the arc length from Start to End along the curve's
// orientation, using cfg.HorizonDist for an unbounded endpoint.
func (e Edge) Length(cfg config.Config) (float64, error) {
	a, err := curve.Interpolate(e.Curve, cfg, e.Start, e.End, efloat.New(0))
	if err != nil {
		return 0, errs.Wrap(err, "edge.Length: resolving start point")
	}
	b, err := curve.Interpolate(e.Curve, cfg, e.Start, e.End, efloat.New(1))
	if err != nil {
		return 0, errs.Wrap(err, "edge.Length: resolving end point")
	}
	d, err := curve.Distance(e.Curve, a, b)
	if err != nil {
		return 0, errs.Wrap(err, "edge.Length: curve distance")
	}
	return d.Mid(), nil
}

// ConnectsTo reports whether e.End coincides with o.Start, the join
// test a Contour's edge sequence must satisfy (spec §3.7).
func (e Edge) ConnectsTo(o Edge) bool {
	return samePoint(e.End, o.Start)
}

// SameSupport reports whether e and o run along the same curve,
// regardless of orientation.
func (e Edge) SameSupport(o Edge) bool {
	return curve.SameSupport(e.Curve, o.Curve)
}

// Opposite reports whether e and o are the same oriented edge run
// backwards: same curve support, with endpoints swapped. This is the
// "shared by exactly two faces with opposite orientation" test a Shell
// requires of every edge (spec §3.9).
func (e Edge) Opposite(o Edge) bool {
	return e.SameSupport(o) && samePoint(e.Start, o.End) && samePoint(e.End, o.Start)
}
