package topology

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// Contour is an ordered, closed loop of edges on a common surface
// (spec §3.7): e[i].End == e[i+1 mod m].Start for every i.
type Contour struct {
	ID    uuid.UUID
	Edges []Edge
}

// NewContour validates the chain-closure and simplicity invariants of
// spec §3.7. Simplicity is checked structurally (no two non-adjacent
// edges sharing a vertex, no repeated edge by support+endpoints); a
// full algebraic self-intersection proof belongs to the Boolean
// engine's split phase (spec §4.9-§4.10), not to construction.
func NewContour(edges []Edge) (Contour, error) {
	n := len(edges)
	if n == 0 {
		return Contour{}, errs.New(errs.InvalidTopology, "contour: must have at least one edge")
	}
	for i := 0; i < n; i++ {
		next := edges[(i+1)%n]
		if !edges[i].ConnectsTo(next) {
			return Contour{}, errs.Newf(errs.InvalidTopology,
				"contour: edge %d end does not match edge %d start", i, (i+1)%n)
		}
	}
	if n == 1 && !edges[0].IsClosed() {
		return Contour{}, errs.New(errs.InvalidTopology,
			"contour: a single non-closed edge cannot form a loop")
	}
	verts := vertices(edges)
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if vector.Equal(verts[i], verts[j]) {
				return Contour{}, errs.Newf(errs.InvalidTopology,
					"contour: vertices %d and %d coincide, loop is not simple", i, j)
			}
		}
	}
	return Contour{ID: uuid.New(), Edges: append([]Edge(nil), edges...)}, nil
}

// vertices returns each edge's start point, skipping unbounded (nil)
// starts, which is the usual case only for a single-edge closed loop.
func vertices(edges []Edge) []vector.Vec {
	return lo.FilterMap(edges, func(e Edge, _ int) (vector.Vec, bool) {
		if e.Start == nil {
			return vector.Vec{}, false
		}
		return *e.Start, true
	})
}

// Flip reverses the contour: edges run in the opposite order, each
// itself flipped, so the loop's winding (and hence the inside it
// bounds) is reversed.
func (c Contour) Flip() Contour {
	n := len(c.Edges)
	flipped := make([]Edge, n)
	for i, e := range c.Edges {
		flipped[n-1-i] = e.Flip()
	}
	return Contour{ID: uuid.New(), Edges: flipped}
}

// CornerTangent is the pair of tangent directions meeting at a shared
// contour vertex (spec §3.7): the incoming edge's tangent approaching
// the vertex and the outgoing edge's tangent leaving it.
type CornerTangent struct {
	Incoming, Outgoing vector.Vec
}

// TangentAt returns c's tangent at p. If p is a corner shared by two
// edges, both incoming and outgoing directions are returned (and are
// equal for a smooth point); otherwise Incoming == Outgoing is the
// single edge's tangent at p.
func (c Contour) TangentAt(p vector.Vec) (CornerTangent, error) {
	n := len(c.Edges)
	for i, e := range c.Edges {
		if e.Start != nil && vector.Equal(*e.Start, p) {
			prev := c.Edges[(i-1+n)%n]
			in, err := curve.Tangent(prev.Curve, p)
			if err != nil {
				return CornerTangent{}, errs.Wrap(err, "contour.TangentAt: incoming edge tangent")
			}
			out, err := curve.Tangent(e.Curve, p)
			if err != nil {
				return CornerTangent{}, errs.Wrap(err, "contour.TangentAt: outgoing edge tangent")
			}
			return CornerTangent{Incoming: in, Outgoing: out}, nil
		}
		if curve.OnCurve(e.Curve, p) {
			t, err := curve.Tangent(e.Curve, p)
			if err != nil {
				return CornerTangent{}, errs.Wrap(err, "contour.TangentAt: edge tangent")
			}
			return CornerTangent{Incoming: t, Outgoing: t}, nil
		}
	}
	return CornerTangent{}, errs.New(errs.DomainError, "contour.TangentAt: point is not on the contour")
}

// windingSign returns a signed quantity whose sign indicates whether
// the contour winds counter-clockwise (positive) or clockwise
// (negative) as seen looking against normal, using the generalized
// 3-D shoelace sum sum(cross(v_i, v_{i+1})) . normal. A single-edge
// closed loop (e.g. a bare Circle boundary) has no polygon vertices to
// sum over; its sign is read directly from the curve's own orientation
// against normal instead.
func windingSign(cfg config.Config, c Contour, normal vector.Vec) (float64, error) {
	verts := vertices(c.Edges)
	if len(verts) < 3 {
		if len(c.Edges) != 1 {
			return 0, errs.New(errs.DegenerateConfiguration, "contour: fewer than 3 vertices but more than one edge")
		}
		mid, err := c.Edges[0].Midpoint(cfg)
		if err != nil {
			return 0, errs.Wrap(err, "contour.windingSign: single-edge midpoint")
		}
		t, err := curve.Tangent(c.Edges[0].Curve, mid)
		if err != nil {
			return 0, errs.Wrap(err, "contour.windingSign: single-edge tangent")
		}
		// A circle traversed with tangent t at radius vector r has
		// angular momentum cross(r, t); its sign against normal gives
		// the same CCW/CW reading as the polygon shoelace sum.
		return vector.Dot(vector.Cross(mid, t), normal).Mid(), nil
	}
	sum := vector.Zero()
	n := len(verts)
	for i := 0; i < n; i++ {
		sum = vector.Add(sum, vector.Cross(verts[i], verts[(i+1)%n]))
	}
	return vector.Dot(sum, normal).Mid(), nil
}
