// Package intersect implements the closed-form pairwise primitive
// intersectors of spec §4.6 (curve-curve, curve-surface,
// surface-surface), falling back to the generic numerical bisector of
// pkg/bisect (spec §4.6.1) for any pairing without a closed form.
package intersect

import (
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/vector"
)

// Kind tags which variant a Result holds.
type Kind int

const (
	// KindNone means the two primitives do not meet.
	KindNone Kind = iota
	// KindPoint means they meet at exactly one point, P.
	KindPoint
	// KindPoints means they meet at exactly two points, P and Q.
	KindPoints
	// KindCurve means the overlap is itself a curve (collinear lines,
	// concentric equal circles, a plane-plane intersection line).
	KindCurve
	// KindSurface means the overlap is itself a surface (coincident
	// planes), so C11 can reuse it directly.
	KindSurface
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPoint:
		return "point"
	case KindPoints:
		return "points"
	case KindCurve:
		return "curve"
	case KindSurface:
		return "surface"
	default:
		return "unknown"
	}
}

// Result is the sum type spec §4.6 requires every intersector to
// return: {None, Point(p), Points(p,q), Curve(c)}, extended with
// Surface for the plane-plane-coincident case surface-surface needs.
type Result struct {
	Kind    Kind
	P, Q    vector.Vec
	Curve   curve.Curve
	Surface surface.Surface
}

// none, point and points build the common Result shapes.
func none() Result { return Result{Kind: KindNone} }

func point(p vector.Vec) Result { return Result{Kind: KindPoint, P: p} }

func points(p, q vector.Vec) Result { return Result{Kind: KindPoints, P: p, Q: q} }

func onCurve(c curve.Curve) Result { return Result{Kind: KindCurve, Curve: c} }

// pointsResult collapses a point slice (0, 1, 2, or more, the last
// case only possible from a bisector fallback run over several
// sub-intervals) into a Result.
func pointsResult(pts []vector.Vec) Result {
	switch len(pts) {
	case 0:
		return none()
	case 1:
		return point(pts[0])
	default:
		return points(pts[0], pts[1])
	}
}
