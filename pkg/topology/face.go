package topology

import (
	"github.com/google/uuid"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/vector"
)

// Face is a bounded region of a surface enclosed by one outer contour
// and zero or more hole contours (spec §3.8). Boundaries[0] is the
// outer loop (counter-clockwise as seen from surface.Normal);
// Boundaries[1:] are holes (clockwise).
type Face struct {
	ID         uuid.UUID
	Boundaries []Contour
	Surface    surface.Surface
}

// NewFace validates spec §3.8/§4.7: every boundary edge must lie on
// the surface, the outer loop must wind counter-clockwise about the
// surface normal, and every hole must wind clockwise.
func NewFace(cfg config.Config, boundaries []Contour, s surface.Surface) (Face, error) {
	if len(boundaries) == 0 {
		return Face{}, errs.New(errs.InvalidTopology, "face: must have an outer boundary")
	}
	for bi, b := range boundaries {
		for ei, e := range b.Edges {
			if !edgeOnSurface(cfg, e, s) {
				return Face{}, errs.Newf(errs.InvalidTopology,
					"face: boundary %d edge %d does not lie on the surface", bi, ei)
			}
		}
	}
	outerNormal, err := representativeNormal(cfg, boundaries[0], s)
	if err != nil {
		return Face{}, errs.Wrap(err, "face: outer boundary normal")
	}
	outerSign, err := windingSign(cfg, boundaries[0], outerNormal)
	if err != nil {
		return Face{}, errs.Wrap(err, "face: outer boundary winding")
	}
	if outerSign < 0 {
		return Face{}, errs.New(errs.InvalidTopology, "face: outer boundary does not wind counter-clockwise about the surface normal")
	}
	for hi, hole := range boundaries[1:] {
		n, err := representativeNormal(cfg, hole, s)
		if err != nil {
			return Face{}, errs.Wrapf(err, "face: hole %d normal", hi)
		}
		sign, err := windingSign(cfg, hole, n)
		if err != nil {
			return Face{}, errs.Wrapf(err, "face: hole %d winding", hi)
		}
		if sign > 0 {
			return Face{}, errs.Newf(errs.InvalidTopology, "face: hole %d does not wind clockwise about the surface normal", hi)
		}
	}
	return Face{ID: uuid.New(), Boundaries: append([]Contour(nil), boundaries...), Surface: s}, nil
}

// edgeOnSurface approximates spec §4.7's "boundary edge satisfies
// surface.on_surface" by sampling the edge's declared endpoints and
// midpoint; the exhaustive structural predicate (line-in-plane,
// circle-in-plane, etc) lives in pkg/containment's EdgeInFace (spec
// §4.8), which full Boolean classification uses instead of this
// construction-time check.
func edgeOnSurface(cfg config.Config, e Edge, s surface.Surface) bool {
	if e.Start != nil && !surface.OnSurface(s, *e.Start) {
		return false
	}
	if e.End != nil && !surface.OnSurface(s, *e.End) {
		return false
	}
	mid, err := e.Midpoint(cfg)
	if err != nil {
		return false
	}
	return surface.OnSurface(s, mid)
}

// representativeNormal returns the surface normal at a point on the
// contour, used as the local reference for the winding-sign test.
func representativeNormal(cfg config.Config, c Contour, s surface.Surface) (vector.Vec, error) {
	p, err := c.Edges[0].Midpoint(cfg)
	if err != nil {
		return vector.Vec{}, err
	}
	return surface.Normal(s, p)
}

// Flip returns a Face viewed from the opposite side: the surface
// normal is reversed, and every boundary is reversed to match (spec
// §3.8 requires the outer loop remain CCW about the, now flipped,
// normal).
func (f Face) Flip() Face {
	flipped := make([]Contour, len(f.Boundaries))
	for i, b := range f.Boundaries {
		flipped[i] = b.Flip()
	}
	return Face{ID: uuid.New(), Boundaries: flipped, Surface: surface.Flip(f.Surface)}
}

// BoundaryPoint returns the midpoint of the outer boundary's first
// edge: a point on the face's boundary, not in its interior. Used by
// classification (spec §4.10) wherever a single sample point of the
// face is needed.
func (f Face) BoundaryPoint(cfg config.Config) (vector.Vec, error) {
	return f.Boundaries[0].Edges[0].Midpoint(cfg)
}

// AllEdges returns every edge of every boundary, outer loop first.
func (f Face) AllEdges() []Edge {
	var all []Edge
	for _, b := range f.Boundaries {
		all = append(all, b.Edges...)
	}
	return all
}
