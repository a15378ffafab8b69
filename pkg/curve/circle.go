package curve

import (
	"math"

	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// CircleData is a circle of the given Radius in the plane through
// Center perpendicular to Normal, with angle zero at RefDirection.
// Normal and RefDirection are stored unit-length and mutually
// orthogonal; orientation (right-hand rule about Normal) is implicit
// in the basis (RefDirection, Cross(Normal, RefDirection)).
type CircleData struct {
	Center       vector.Vec
	Normal       vector.Vec
	RefDirection vector.Vec
	Radius       efloat.EFloat
}

func (CircleData) curveData() {}

// NewCircle builds a Circle, normalizing Normal and projecting
// RefDirection into the plane perpendicular to Normal before
// normalizing it. Fails if Normal or the projected RefDirection is
// possibly zero, or Radius is not strictly positive.
func NewCircle(center, normal, refDirection vector.Vec, radius efloat.EFloat) (Curve, error) {
	nNZ, err := efloat.NewNonZero(vector.Norm(normal))
	if err != nil {
		return Curve{}, errs.Wrap(err, "curve: circle normal has possibly-zero norm")
	}
	unitNormal := vector.ScaleE(normal, efloat.DivBy(efloat.New(1), nNZ))

	comp := vector.Dot(refDirection, unitNormal)
	projected := vector.Sub(refDirection, vector.ScaleE(unitNormal, comp))
	pNZ, err := efloat.NewNonZero(vector.Norm(projected))
	if err != nil {
		return Curve{}, errs.Wrap(err, "curve: circle reference direction degenerates against its normal")
	}
	unitRef := vector.ScaleE(projected, efloat.DivBy(efloat.New(1), pNZ))

	if efloat.Cmp(radius, efloat.Zero()) != efloat.Greater {
		return Curve{}, errs.New(errs.DegenerateConfiguration, "curve: circle radius must be strictly positive")
	}

	return Curve{Kind: KindCircle, Data: CircleData{
		Center: center, Normal: unitNormal, RefDirection: unitRef, Radius: radius,
	}}, nil
}

func circleBasis(d CircleData) (u, v vector.Vec) {
	return d.RefDirection, vector.Cross(d.Normal, d.RefDirection)
}

func circlePointAtAngle(d CircleData, angle efloat.EFloat) vector.Vec {
	u, v := circleBasis(d)
	cos, sin := efloat.Cos(angle), efloat.Sin(angle)
	return vector.Add(d.Center, vector.Add(vector.ScaleE(u, efloat.Mul(d.Radius, cos)), vector.ScaleE(v, efloat.Mul(d.Radius, sin))))
}

func circleAngleOf(d CircleData, p vector.Vec) (efloat.EFloat, error) {
	u, v := circleBasis(d)
	rel := vector.Sub(p, d.Center)
	x, y := vector.Dot(rel, u), vector.Dot(rel, v)
	angle, err := efloat.Atan2(y, x)
	if err != nil {
		return efloat.EFloat{}, errs.Wrap(err, "curve: circle angle indeterminate near its axis")
	}
	return angle, nil
}

// wrapSweep brings a raw angle difference into [0, 2*pi) by adding a
// full turn when the (uncertified) midpoint indicates a negative
// sweep; the subsequent arithmetic remains certified.
func wrapSweep(raw efloat.EFloat) efloat.EFloat {
	if raw.Mid() < 0 {
		return efloat.Add(raw, efloat.New(2*math.Pi))
	}
	return raw
}

func circleTransform(d CircleData, t vector.Transform) (Curve, error) {
	center, err := t.Apply(d.Center)
	if err != nil {
		return Curve{}, errs.Wrap(err, "curve: circle transform failed on center")
	}
	normal := t.ApplyDirection(d.Normal)
	ref := t.ApplyDirection(d.RefDirection)
	return NewCircle(center, normal, ref, d.Radius)
}

func circleFlip(d CircleData) CircleData {
	return CircleData{Center: d.Center, Normal: vector.Neg(d.Normal), RefDirection: d.RefDirection, Radius: d.Radius}
}

func circleOnCurve(d CircleData, p vector.Vec) bool {
	rel := vector.Sub(p, d.Center)
	planar := vector.Dot(rel, d.Normal)
	if !efloat.Equal(planar, efloat.Zero()) {
		return false
	}
	return efloat.Equal(vector.NormSquared(rel), efloat.Mul(d.Radius, d.Radius))
}

func circleTangent(d CircleData, p vector.Vec) vector.Vec {
	return vector.Cross(d.Normal, vector.Sub(p, d.Center))
}

func circleDistance(d CircleData, a, b vector.Vec) (efloat.EFloat, error) {
	angleA, err := circleAngleOf(d, a)
	if err != nil {
		return efloat.EFloat{}, err
	}
	angleB, err := circleAngleOf(d, b)
	if err != nil {
		return efloat.EFloat{}, err
	}
	sweep := wrapSweep(efloat.Sub(angleB, angleA))
	return efloat.Mul(d.Radius, sweep), nil
}

func circleInterpolate(d CircleData, a, b *vector.Vec, t efloat.EFloat) (vector.Vec, error) {
	if a == nil && b == nil {
		// Both endpoints None denotes the whole closed circle (spec
		// §3.6): parameterize the full turn starting at RefDirection.
		angle := efloat.Scale(efloat.New(2*math.Pi), t.Mid())
		return circlePointAtAngle(d, angle), nil
	}
	if a == nil || b == nil {
		return vector.Vec{}, errs.New(errs.DomainError, "curve: circle interpolate needs both bounds or neither")
	}
	angleA, err := circleAngleOf(d, *a)
	if err != nil {
		return vector.Vec{}, err
	}
	sweep, err := circleDistance(d, *a, *b)
	if err != nil {
		return vector.Vec{}, err
	}
	sweepAngle := efloat.DivBy(sweep, mustNonZero(d.Radius))
	angle := efloat.Add(angleA, efloat.Mul(sweepAngle, t))
	return circlePointAtAngle(d, angle), nil
}

// mustNonZero wraps a value the caller has already guaranteed is
// nonzero by construction (a validated radius, an axis norm) as
// NonZero; it panics only if that guarantee was violated.
func mustNonZero(v efloat.EFloat) efloat.NonZero {
	nz, err := efloat.NewNonZero(v)
	if err != nil {
		panic("curve: expected-nonzero value was zero: " + err.Error())
	}
	return nz
}

func circleBetween(d CircleData, m, a, b vector.Vec) (bool, error) {
	angleA, err := circleAngleOf(d, a)
	if err != nil {
		return false, err
	}
	angleM, err := circleAngleOf(d, m)
	if err != nil {
		return false, err
	}
	sweepAB, err := circleDistance(d, a, b)
	if err != nil {
		return false, err
	}
	sweepAM := efloat.Mul(wrapSweep(efloat.Sub(angleM, angleA)), d.Radius)

	lowOK := efloat.Cmp(sweepAM, efloat.Zero())
	highOK := efloat.Cmp(sweepAM, sweepAB)
	if lowOK == efloat.Indeterminate || highOK == efloat.Indeterminate {
		return false, errs.New(errs.NumericalError, "curve: indeterminate between test on circle")
	}
	return lowOK != efloat.Less && highOK != efloat.Greater, nil
}

func circleProject(d CircleData, p vector.Vec) (vector.Vec, error) {
	rel := vector.Sub(p, d.Center)
	normalComp := vector.Dot(rel, d.Normal)
	inPlane := vector.Sub(rel, vector.ScaleE(d.Normal, normalComp))
	nz, err := efloat.NewNonZero(vector.Norm(inPlane))
	if err != nil {
		return vector.Vec{}, errs.Wrap(err, "curve: circle projection undefined for a point on its axis")
	}
	unit := vector.ScaleE(inPlane, efloat.DivBy(efloat.New(1), nz))
	return vector.Add(d.Center, vector.ScaleE(unit, d.Radius)), nil
}

// circleFullBoundingBox bounds every point of a full circle of the
// given radius and basis, using extent_i = radius*sqrt(u_i^2+v_i^2)
// per axis (the exact AABB of an arbitrarily-oriented circle).
func circleFullBoundingBox(center vector.Vec, radius efloat.EFloat, u, v vector.Vec) vector.BoundingBox {
	extent := func(ui, vi efloat.EFloat) efloat.EFloat {
		s := efloat.Add(efloat.Mul(ui, ui), efloat.Mul(vi, vi))
		sp, err := efloat.NewSemiPositive(s)
		if err != nil {
			panic("curve: circle extent computation produced a negative square: " + err.Error())
		}
		return efloat.Mul(radius, sp.Sqrt().Value())
	}
	ex, ey, ez := extent(u.X, v.X), extent(u.Y, v.Y), extent(u.Z, v.Z)
	return vector.BoundingBox{
		MinX: efloat.Sub(center.X, ex), MaxX: efloat.Add(center.X, ex),
		MinY: efloat.Sub(center.Y, ey), MaxY: efloat.Add(center.Y, ey),
		MinZ: efloat.Sub(center.Z, ez), MaxZ: efloat.Add(center.Z, ez),
	}
}

// arcExtentPoints returns, for a curve parameterized as
// center + cos(theta)*major + sin(theta)*minor, the (up to) two points
// per global axis where that axis's coordinate is locally extremal
// (theta = atan2(minor_i, major_i) and its antipode). Shared by
// circleBoundingBox and ellipseBoundingBox: a circle is the special
// case major=radius*u, minor=radius*v.
func arcExtentPoints(pointAt func(theta efloat.EFloat) vector.Vec, major, minor vector.Vec) []vector.Vec {
	var pts []vector.Vec
	for _, pair := range [][2]efloat.EFloat{{major.X, minor.X}, {major.Y, minor.Y}, {major.Z, minor.Z}} {
		theta, err := efloat.Atan2(pair[1], pair[0])
		if err != nil {
			continue
		}
		pts = append(pts, pointAt(theta), pointAt(efloat.Add(theta, efloat.New(math.Pi))))
	}
	return pts
}

// circleBoundingBox bounds the arc from a to b when both are given
// (the exact AABB, found by extending the chord's box with every
// axis-extremal point that the "between" test confirms lies on the
// swept arc), or the whole circle when a and b are both nil.
func circleBoundingBox(d CircleData, a, b *vector.Vec) (vector.BoundingBox, error) {
	u, v := circleBasis(d)
	if a == nil && b == nil {
		return circleFullBoundingBox(d.Center, d.Radius, u, v), nil
	}
	if a == nil || b == nil {
		return vector.BoundingBox{}, errs.New(errs.DomainError, "curve: circle bounding_box needs both bounds or neither")
	}
	box := vector.BoxFromPoints(*a, *b)
	major := vector.ScaleE(u, d.Radius)
	minor := vector.ScaleE(v, d.Radius)
	pointAt := func(theta efloat.EFloat) vector.Vec { return circlePointAtAngle(d, theta) }
	for _, p := range arcExtentPoints(pointAt, major, minor) {
		inArc, err := circleBetween(d, p, *a, *b)
		if err != nil {
			return vector.BoundingBox{}, err
		}
		if inArc {
			box = box.Extend(p)
		}
	}
	return box, nil
}
