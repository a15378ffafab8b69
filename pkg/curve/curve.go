// Package curve implements the analytic curve library of spec §3.4 and
// the CurveLike contract of spec §4.4: a closed sum type
// Line | Circle | Ellipse | Helix, pattern-matched by Kind rather than
// dispatched through an open interface (spec §9).
package curve

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// Kind tags which variant a Curve holds.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindEllipse
	KindHelix
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindHelix:
		return "helix"
	default:
		return "unknown"
	}
}

// Data is the kind-specific payload of a Curve. The marker method
// restricts implementations to this package, keeping the sum type
// closed (spec §9).
type Data interface {
	curveData()
}

// Curve is a tagged union over the four analytic curve variants.
type Curve struct {
	Kind Kind
	Data Data
}

func mismatch(k Kind, d Data) error {
	return errs.Newf(errs.DomainError, "curve: kind %v does not match data %T", k, d)
}

// Transform returns a Curve obtained by applying the affine transform
// to every parameter of c; exact when t is a rigid motion.
func Transform(c Curve, t vector.Transform) (Curve, error) {
	switch c.Kind {
	case KindLine:
		d, ok := c.Data.(LineData)
		if !ok {
			return Curve{}, mismatch(c.Kind, c.Data)
		}
		return lineTransform(d, t)
	case KindCircle:
		d, ok := c.Data.(CircleData)
		if !ok {
			return Curve{}, mismatch(c.Kind, c.Data)
		}
		return circleTransform(d, t)
	case KindEllipse:
		d, ok := c.Data.(EllipseData)
		if !ok {
			return Curve{}, mismatch(c.Kind, c.Data)
		}
		return ellipseTransform(d, t)
	case KindHelix:
		d, ok := c.Data.(HelixData)
		if !ok {
			return Curve{}, mismatch(c.Kind, c.Data)
		}
		return helixTransform(d, t)
	default:
		return Curve{}, errs.Newf(errs.DomainError, "curve: unknown kind %v", c.Kind)
	}
}

// Flip returns a Curve whose tangent at any shared point is negated.
func Flip(c Curve) Curve {
	switch c.Kind {
	case KindLine:
		return Curve{Kind: KindLine, Data: lineFlip(c.Data.(LineData))}
	case KindCircle:
		return Curve{Kind: KindCircle, Data: circleFlip(c.Data.(CircleData))}
	case KindEllipse:
		return Curve{Kind: KindEllipse, Data: ellipseFlip(c.Data.(EllipseData))}
	case KindHelix:
		return Curve{Kind: KindHelix, Data: helixFlip(c.Data.(HelixData))}
	default:
		return c
	}
}

// OnCurve reports whether p satisfies the variant's algebraic equation
// within interval tolerance.
func OnCurve(c Curve, p vector.Vec) bool {
	switch c.Kind {
	case KindLine:
		return lineOnCurve(c.Data.(LineData), p)
	case KindCircle:
		return circleOnCurve(c.Data.(CircleData), p)
	case KindEllipse:
		return ellipseOnCurve(c.Data.(EllipseData), p)
	case KindHelix:
		return helixOnCurve(c.Data.(HelixData), p)
	default:
		return false
	}
}

// Tangent fails if p is not on_curve; else returns the curve's tangent
// at p (not necessarily unit length).
func Tangent(c Curve, p vector.Vec) (vector.Vec, error) {
	if !OnCurve(c, p) {
		return vector.Vec{}, errs.New(errs.DomainError, "curve: tangent requested at a point not on the curve")
	}
	switch c.Kind {
	case KindLine:
		return lineTangent(c.Data.(LineData), p), nil
	case KindCircle:
		return circleTangent(c.Data.(CircleData), p), nil
	case KindEllipse:
		return ellipseTangent(c.Data.(EllipseData), p), nil
	case KindHelix:
		return helixTangent(c.Data.(HelixData), p), nil
	default:
		return vector.Vec{}, errs.Newf(errs.DomainError, "curve: unknown kind %v", c.Kind)
	}
}

// Distance returns the arc length from a to b along c's orientation.
func Distance(c Curve, a, b vector.Vec) (efloat.EFloat, error) {
	switch c.Kind {
	case KindLine:
		return lineDistance(c.Data.(LineData), a, b)
	case KindCircle:
		return circleDistance(c.Data.(CircleData), a, b)
	case KindEllipse:
		return ellipseDistance(c.Data.(EllipseData), a, b)
	case KindHelix:
		return helixDistance(c.Data.(HelixData), a, b)
	default:
		return efloat.EFloat{}, errs.Newf(errs.DomainError, "curve: unknown kind %v", c.Kind)
	}
}

// Interpolate returns the point at parameter t along c from a to b.
// For a Line or Helix, a single nil bound (an unbounded edge endpoint)
// is replaced by the point cfg.HorizonDist along the curve from the
// other bound, and two nil bounds are an error. For a Circle or
// Ellipse, a and b both nil means the whole closed curve (t in [0, 1]
// runs one full turn), and a single nil bound is a DomainError.
func Interpolate(c Curve, cfg config.Config, a, b *vector.Vec, t efloat.EFloat) (vector.Vec, error) {
	switch c.Kind {
	case KindLine:
		return lineInterpolate(c.Data.(LineData), cfg, a, b, t)
	case KindCircle:
		return circleInterpolate(c.Data.(CircleData), a, b, t)
	case KindEllipse:
		return ellipseInterpolate(c.Data.(EllipseData), a, b, t)
	case KindHelix:
		return helixInterpolate(c.Data.(HelixData), cfg, a, b, t)
	default:
		return vector.Vec{}, errs.Newf(errs.DomainError, "curve: unknown kind %v", c.Kind)
	}
}

// Between reports whether m lies on the oriented arc from a to b.
func Between(c Curve, m, a, b vector.Vec) (bool, error) {
	switch c.Kind {
	case KindLine:
		return lineBetween(c.Data.(LineData), m, a, b)
	case KindCircle:
		return circleBetween(c.Data.(CircleData), m, a, b)
	case KindEllipse:
		return ellipseBetween(c.Data.(EllipseData), m, a, b)
	case KindHelix:
		return helixBetween(c.Data.(HelixData), m, a, b)
	default:
		return false, errs.Newf(errs.DomainError, "curve: unknown kind %v", c.Kind)
	}
}

// Midpoint returns the point at t = 1/2 between a and b.
func Midpoint(c Curve, cfg config.Config, a, b *vector.Vec) (vector.Vec, error) {
	return Interpolate(c, cfg, a, b, efloat.New(0.5))
}

// Project returns the nearest on-curve point to p (used only by the
// numerical intersector).
func Project(c Curve, p vector.Vec) (vector.Vec, error) {
	switch c.Kind {
	case KindLine:
		return lineProject(c.Data.(LineData), p)
	case KindCircle:
		return circleProject(c.Data.(CircleData), p)
	case KindEllipse:
		return ellipseProject(c.Data.(EllipseData), p)
	case KindHelix:
		return helixProject(c.Data.(HelixData), p)
	default:
		return vector.Vec{}, errs.Newf(errs.DomainError, "curve: unknown kind %v", c.Kind)
	}
}

// BoundingBox returns an interval-conservative AABB of the arc from a
// to b.
func BoundingBox(c Curve, cfg config.Config, a, b *vector.Vec) (vector.BoundingBox, error) {
	switch c.Kind {
	case KindLine:
		return lineBoundingBox(c.Data.(LineData), cfg, a, b)
	case KindCircle:
		return circleBoundingBox(c.Data.(CircleData), a, b)
	case KindEllipse:
		return ellipseBoundingBox(c.Data.(EllipseData), a, b)
	case KindHelix:
		return helixBoundingBox(c.Data.(HelixData), cfg, a, b)
	default:
		return vector.BoundingBox{}, errs.Newf(errs.DomainError, "curve: unknown kind %v", c.Kind)
	}
}

// Equal reports whether a and b describe the same oriented curve, by
// structural comparison of their variant fields (spec §9: the sum type
// is closed and pattern-matched, so equality is a per-variant field
// comparison rather than a generic deep-equal). Used by the topology
// layer (spec §4.7, §4.10) to recognize that two independently
// constructed edges share support, e.g. when checking shell
// watertightness or stitching Boolean fragments back together.
func Equal(a, b Curve) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindLine:
		ad, bd := a.Data.(LineData), b.Data.(LineData)
		return vector.Equal(ad.Origin, bd.Origin) && vector.Equal(ad.Direction, bd.Direction)
	case KindCircle:
		ad, bd := a.Data.(CircleData), b.Data.(CircleData)
		return vector.Equal(ad.Center, bd.Center) && vector.Equal(ad.Normal, bd.Normal) &&
			efloat.Equal(ad.Radius, bd.Radius)
	case KindEllipse:
		ad, bd := a.Data.(EllipseData), b.Data.(EllipseData)
		return vector.Equal(ad.Center, bd.Center) && vector.Equal(ad.MajorAxis, bd.MajorAxis) &&
			vector.Equal(ad.MinorAxis, bd.MinorAxis)
	case KindHelix:
		ad, bd := a.Data.(HelixData), b.Data.(HelixData)
		return vector.Equal(ad.Center, bd.Center) && vector.Equal(ad.Axis, bd.Axis) &&
			efloat.Equal(ad.Radius, bd.Radius) && efloat.Equal(ad.Pitch, bd.Pitch) &&
			ad.RightWinding == bd.RightWinding
	default:
		return false
	}
}

// SameSupport reports whether a and b lie on the same curve regardless
// of orientation: Equal(a, b) or Equal(a, Flip(b)).
func SameSupport(a, b Curve) bool {
	return Equal(a, b) || Equal(a, Flip(b))
}
