package containment

import (
	"sort"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/intersect"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// FaceState is spec §4.8's point-in-face classification: NotOnSurface,
// Outside, OnPoint, OnEdge(edge), Inside.
type FaceState int

const (
	FaceNotOnSurface FaceState = iota
	FaceOutside
	FaceOnPoint
	FaceOnEdge
	FaceInside
)

func (s FaceState) String() string {
	switch s {
	case FaceNotOnSurface:
		return "not_on_surface"
	case FaceOutside:
		return "outside"
	case FaceOnPoint:
		return "on_point"
	case FaceOnEdge:
		return "on_edge"
	case FaceInside:
		return "inside"
	default:
		return "unknown"
	}
}

// FaceResult carries the boundary edge the point landed on, for
// FaceOnPoint/FaceOnEdge.
type FaceResult struct {
	State FaceState
	Edge  *topology.Edge
}

// PointInFace classifies p against f (spec §4.8). p must first satisfy
// surface.on_surface; every boundary edge is then tested directly
// (spec's "test curve.on_curve / curve.between" chain via
// PointInEdge); failing that, a geodesic is shot from p to an
// arbitrary boundary point and the closest crossing's tangent is
// compared against the surface normal to read inside vs outside.
func PointInFace(cfg config.Config, f topology.Face, p vector.Vec) (FaceResult, error) {
	if !surface.OnSurface(f.Surface, p) {
		return FaceResult{State: FaceNotOnSurface}, nil
	}
	for bi := range f.Boundaries {
		for ei := range f.Boundaries[bi].Edges {
			e := f.Boundaries[bi].Edges[ei]
			res, err := PointInEdge(cfg, e, p)
			if err != nil {
				return FaceResult{}, errs.Wrap(err, "containment.PointInFace: boundary edge test")
			}
			switch res {
			case EdgeOnPoint:
				return FaceResult{State: FaceOnPoint, Edge: &e}, nil
			case EdgeInside:
				return FaceResult{State: FaceOnEdge, Edge: &e}, nil
			}
		}
	}

	q, err := f.BoundaryPoint(cfg)
	if err != nil {
		return FaceResult{}, errs.Wrap(err, "containment.PointInFace: boundary reference point")
	}
	if vector.Equal(p, q) {
		return FaceResult{State: FaceOnPoint}, nil
	}
	geodesic, err := surface.Geodesic(f.Surface, cfg, p, q)
	if err != nil {
		return FaceResult{}, errs.Wrap(err, "containment.PointInFace: geodesic to boundary")
	}

	type crossing struct {
		point   vector.Vec
		dist    float64
		tangent topology.CornerTangent
	}
	var crossings []crossing
	for _, b := range f.Boundaries {
		for _, e := range b.Edges {
			res, err := intersect.Curves(cfg, geodesic, &p, &q, e.Curve, e.Start, e.End)
			if err != nil {
				continue
			}
			for _, x := range resultPoints(res) {
				if vector.Equal(x, p) {
					continue
				}
				d, err := curve.Distance(geodesic, p, x)
				if err != nil {
					continue
				}
				ct, err := b.TangentAt(x)
				if err != nil {
					continue
				}
				crossings = append(crossings, crossing{point: x, dist: d.Mid(), tangent: ct})
			}
		}
	}
	if len(crossings) == 0 {
		qTangent, err := boundaryTangentAt(f, q)
		if err != nil {
			return FaceResult{}, errs.Wrap(err, "containment.PointInFace: tangent at fallback boundary point")
		}
		d, err := curve.Distance(geodesic, p, q)
		if err != nil {
			return FaceResult{}, errs.Wrap(err, "containment.PointInFace: distance to fallback boundary point")
		}
		crossings = append(crossings, crossing{point: q, dist: d.Mid(), tangent: qTangent})
	}
	sort.Slice(crossings, func(i, j int) bool { return crossings[i].dist < crossings[j].dist })
	closest := crossings[0]

	n, err := surface.Normal(f.Surface, closest.point)
	if err != nil {
		return FaceResult{}, errs.Wrap(err, "containment.PointInFace: normal at crossing")
	}
	gt, err := curve.Tangent(geodesic, closest.point)
	if err != nil {
		return FaceResult{}, errs.Wrap(err, "containment.PointInFace: geodesic tangent at crossing")
	}
	inside, err := insideAtBoundary(n, gt, closest.tangent)
	if err != nil {
		return FaceResult{}, errs.Wrap(err, "containment.PointInFace: inside/outside sign")
	}
	if inside {
		return FaceResult{State: FaceInside}, nil
	}
	return FaceResult{State: FaceOutside}, nil
}

// boundaryTangentAt finds the boundary of f containing q and returns
// its tangent there.
func boundaryTangentAt(f topology.Face, q vector.Vec) (topology.CornerTangent, error) {
	for _, b := range f.Boundaries {
		if ct, err := b.TangentAt(q); err == nil {
			return ct, nil
		}
	}
	return topology.CornerTangent{}, errs.New(errs.DomainError, "containment: point is not on any boundary of the face")
}

// resultPoints flattens an intersect.Result into its concrete points,
// ignoring overlap results (KindCurve), which this package treats as a
// degenerate pairing outside its scope (the geodesic would have to
// coincide exactly with a boundary edge).
func resultPoints(res intersect.Result) []vector.Vec {
	switch res.Kind {
	case intersect.KindPoint:
		return []vector.Vec{res.P}
	case intersect.KindPoints:
		return []vector.Vec{res.P, res.Q}
	default:
		return nil
	}
}

// EdgeInFaceState is spec §4.8's edge-in-face classification.
type EdgeInFaceState int

const (
	EdgeFaceNotContained EdgeInFaceState = iota
	EdgeFaceOutside
	EdgeFaceInside
	EdgeFaceOnBorderSameDir
	EdgeFaceOnBorderOppositeDir
)

func (s EdgeInFaceState) String() string {
	switch s {
	case EdgeFaceNotContained:
		return "not_contained"
	case EdgeFaceOutside:
		return "outside"
	case EdgeFaceInside:
		return "inside"
	case EdgeFaceOnBorderSameDir:
		return "on_border_same_dir"
	case EdgeFaceOnBorderOppositeDir:
		return "on_border_opposite_dir"
	default:
		return "unknown"
	}
}

// EdgeInFace classifies e against f (spec §4.8): first a structural
// check that e's curve lies entirely on f's surface, then its midpoint
// is classified by PointInFace; a boundary hit is refined into
// same/opposite direction by comparing e's curve against the boundary
// edge it landed on.
func EdgeInFace(cfg config.Config, e topology.Edge, f topology.Face) (EdgeInFaceState, error) {
	contained, err := curveContainedInSurface(cfg, e.Curve, e.Start, e.End, f.Surface)
	if err != nil {
		return EdgeFaceNotContained, errs.Wrap(err, "containment.EdgeInFace: surface containment")
	}
	if !contained {
		return EdgeFaceNotContained, nil
	}
	mid, err := e.Midpoint(cfg)
	if err != nil {
		return EdgeFaceNotContained, errs.Wrap(err, "containment.EdgeInFace: edge midpoint")
	}
	res, err := PointInFace(cfg, f, mid)
	if err != nil {
		return EdgeFaceNotContained, errs.Wrap(err, "containment.EdgeInFace: midpoint classification")
	}
	switch res.State {
	case FaceInside:
		return EdgeFaceInside, nil
	case FaceOnEdge, FaceOnPoint:
		if res.Edge != nil && curve.Equal(e.Curve, res.Edge.Curve) {
			return EdgeFaceOnBorderSameDir, nil
		}
		if res.Edge != nil && curve.Equal(e.Curve, curve.Flip(res.Edge.Curve)) {
			return EdgeFaceOnBorderOppositeDir, nil
		}
		return EdgeFaceOnBorderSameDir, nil
	default:
		return EdgeFaceOutside, nil
	}
}
