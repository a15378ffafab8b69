// Package surface implements the analytic surface library of spec §3.4
// and the SurfaceLike contract of spec §4.5: a closed sum type
// Plane | Sphere | Cylinder, pattern-matched by Kind rather than
// dispatched through an open interface, mirroring pkg/curve (spec §9).
package surface

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// Kind tags which variant a Surface holds.
type Kind int

const (
	KindPlane Kind = iota
	KindSphere
	KindCylinder
)

func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindSphere:
		return "sphere"
	case KindCylinder:
		return "cylinder"
	default:
		return "unknown"
	}
}

// Data is the kind-specific payload of a Surface. The marker method
// restricts implementations to this package, keeping the sum type
// closed (spec §9).
type Data interface {
	surfaceData()
}

// Surface is a tagged union over the three analytic surface variants.
// Every variant carries a distinguished normal direction (outward, for
// the closed Sphere and Cylinder).
type Surface struct {
	Kind Kind
	Data Data
}

func mismatch(k Kind, d Data) error {
	return errs.Newf(errs.DomainError, "surface: kind %v does not match data %T", k, d)
}

// Transform returns a Surface obtained by applying the affine
// transform; exact when t is a rigid motion.
func Transform(s Surface, t vector.Transform) (Surface, error) {
	switch s.Kind {
	case KindPlane:
		d, ok := s.Data.(PlaneData)
		if !ok {
			return Surface{}, mismatch(s.Kind, s.Data)
		}
		return planeTransform(d, t)
	case KindSphere:
		d, ok := s.Data.(SphereData)
		if !ok {
			return Surface{}, mismatch(s.Kind, s.Data)
		}
		return sphereTransform(d, t)
	case KindCylinder:
		d, ok := s.Data.(CylinderData)
		if !ok {
			return Surface{}, mismatch(s.Kind, s.Data)
		}
		return cylinderTransform(d, t)
	default:
		return Surface{}, errs.Newf(errs.DomainError, "surface: unknown kind %v", s.Kind)
	}
}

// Flip returns a Surface with its normal reversed.
func Flip(s Surface) Surface {
	switch s.Kind {
	case KindPlane:
		return Surface{Kind: KindPlane, Data: planeFlip(s.Data.(PlaneData))}
	case KindSphere:
		return Surface{Kind: KindSphere, Data: sphereFlip(s.Data.(SphereData))}
	case KindCylinder:
		return Surface{Kind: KindCylinder, Data: cylinderFlip(s.Data.(CylinderData))}
	default:
		return s
	}
}

// OnSurface reports whether p satisfies the variant's algebraic
// equation within interval tolerance.
func OnSurface(s Surface, p vector.Vec) bool {
	switch s.Kind {
	case KindPlane:
		return planeOnSurface(s.Data.(PlaneData), p)
	case KindSphere:
		return sphereOnSurface(s.Data.(SphereData), p)
	case KindCylinder:
		return cylinderOnSurface(s.Data.(CylinderData), p)
	default:
		return false
	}
}

// Normal fails if p is not on_surface; else returns the unit-length
// outward normal at p.
func Normal(s Surface, p vector.Vec) (vector.Vec, error) {
	if !OnSurface(s, p) {
		return vector.Vec{}, errs.New(errs.DomainError, "surface: normal requested at a point not on the surface")
	}
	switch s.Kind {
	case KindPlane:
		return planeNormal(s.Data.(PlaneData)), nil
	case KindSphere:
		return sphereNormal(s.Data.(SphereData), p), nil
	case KindCylinder:
		return cylinderNormal(s.Data.(CylinderData), p), nil
	default:
		return vector.Vec{}, errs.Newf(errs.DomainError, "surface: unknown kind %v", s.Kind)
	}
}

// Geodesic returns a Curve lying on s that joins p to q along a locally
// shortest path: a Line in a Plane, a short-arc Circle (great circle)
// on a Sphere, and on a Cylinder a Line when p and q share an angular
// position, a Circle when they share an axial height, else a Helix.
func Geodesic(s Surface, cfg config.Config, p, q vector.Vec) (curve.Curve, error) {
	if !OnSurface(s, p) || !OnSurface(s, q) {
		return curve.Curve{}, errs.New(errs.DomainError, "surface: geodesic endpoints must be on_surface")
	}
	switch s.Kind {
	case KindPlane:
		return planeGeodesic(s.Data.(PlaneData), p, q)
	case KindSphere:
		return sphereGeodesic(s.Data.(SphereData), p, q)
	case KindCylinder:
		return cylinderGeodesic(s.Data.(CylinderData), cfg, p, q)
	default:
		return curve.Curve{}, errs.Newf(errs.DomainError, "surface: unknown kind %v", s.Kind)
	}
}

// PointGrid returns a finite sample of surface points for
// visualization; density is the number of samples per parametric
// dimension. Not used by the core algorithms (spec §4.5).
func PointGrid(s Surface, density int) ([]vector.Vec, error) {
	if density < 2 {
		return nil, errs.New(errs.DomainError, "surface: point_grid density must be at least 2")
	}
	switch s.Kind {
	case KindPlane:
		return planePointGrid(s.Data.(PlaneData), density), nil
	case KindSphere:
		return spherePointGrid(s.Data.(SphereData), density), nil
	case KindCylinder:
		return cylinderPointGrid(s.Data.(CylinderData), density), nil
	default:
		return nil, errs.Newf(errs.DomainError, "surface: unknown kind %v", s.Kind)
	}
}

// Equal reports whether a and b describe the same oriented surface, by
// structural comparison of their variant fields (mirrors curve.Equal).
func Equal(a, b Surface) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindPlane:
		ad, bd := a.Data.(PlaneData), b.Data.(PlaneData)
		return vector.Equal(ad.Point, bd.Point) && vector.Equal(ad.Normal, bd.Normal)
	case KindSphere:
		ad, bd := a.Data.(SphereData), b.Data.(SphereData)
		return vector.Equal(ad.Center, bd.Center) && ad.Radius.Lower == bd.Radius.Lower && ad.Radius.Upper == bd.Radius.Upper
	case KindCylinder:
		ad, bd := a.Data.(CylinderData), b.Data.(CylinderData)
		return vector.Equal(ad.Center, bd.Center) && vector.Equal(ad.Axis, bd.Axis) &&
			ad.Radius.Lower == bd.Radius.Lower && ad.Radius.Upper == bd.Radius.Upper
	default:
		return false
	}
}

// SameSupport reports whether a and b lie on the same surface
// regardless of orientation: Equal(a, b) or Equal(a, Flip(b)).
func SameSupport(a, b Surface) bool {
	return Equal(a, b) || Equal(a, Flip(b))
}
