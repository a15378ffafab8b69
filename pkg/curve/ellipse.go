package curve

import (
	"math"

	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// EllipseData is an ellipse in the plane through Center perpendicular
// to Normal: p(theta) = Center + cos(theta)*MajorAxis + sin(theta)*MinorAxis.
// MajorAxis and MinorAxis carry their own magnitudes (the semi-axis
// lengths) and must be mutually orthogonal and orthogonal to Normal;
// NewEllipse validates this rather than silently re-deriving principal
// axes, so only rigid transforms of an Ellipse are guaranteed to
// reconstruct (an affine transform that skews the axes away from
// orthogonality is rejected rather than silently reinterpreted).
type EllipseData struct {
	Center    vector.Vec
	Normal    vector.Vec
	MajorAxis vector.Vec
	MinorAxis vector.Vec
}

func (EllipseData) curveData() {}

// NewEllipse builds an Ellipse, normalizing Normal and validating that
// MajorAxis and MinorAxis are both non-degenerate and mutually
// orthogonal and orthogonal to Normal.
func NewEllipse(center, normal, major, minor vector.Vec) (Curve, error) {
	nNZ, err := efloat.NewNonZero(vector.Norm(normal))
	if err != nil {
		return Curve{}, errs.Wrap(err, "curve: ellipse normal has possibly-zero norm")
	}
	unitNormal := vector.ScaleE(normal, efloat.DivBy(efloat.New(1), nNZ))

	if _, err := efloat.NewNonZero(vector.Norm(major)); err != nil {
		return Curve{}, errs.Wrap(err, "curve: ellipse major axis has possibly-zero norm")
	}
	if _, err := efloat.NewNonZero(vector.Norm(minor)); err != nil {
		return Curve{}, errs.Wrap(err, "curve: ellipse minor axis has possibly-zero norm")
	}
	if !efloat.Equal(vector.Dot(major, unitNormal), efloat.Zero()) {
		return Curve{}, errs.New(errs.DegenerateConfiguration, "curve: ellipse major axis is not orthogonal to its normal")
	}
	if !efloat.Equal(vector.Dot(minor, unitNormal), efloat.Zero()) {
		return Curve{}, errs.New(errs.DegenerateConfiguration, "curve: ellipse minor axis is not orthogonal to its normal")
	}
	if !efloat.Equal(vector.Dot(major, minor), efloat.Zero()) {
		return Curve{}, errs.New(errs.DegenerateConfiguration, "curve: ellipse major and minor axes are not orthogonal")
	}

	return Curve{Kind: KindEllipse, Data: EllipseData{
		Center: center, Normal: unitNormal, MajorAxis: major, MinorAxis: minor,
	}}, nil
}

func ellipsePointAtAngle(d EllipseData, angle efloat.EFloat) vector.Vec {
	cos, sin := efloat.Cos(angle), efloat.Sin(angle)
	return vector.Add(d.Center, vector.Add(vector.ScaleE(d.MajorAxis, cos), vector.ScaleE(d.MinorAxis, sin)))
}

// ellipseCosSin recovers (cos theta, sin theta) for an on-curve point
// directly from its axis projections, avoiding an atan2 call.
func ellipseCosSin(d EllipseData, p vector.Vec) (efloat.EFloat, efloat.EFloat) {
	rel := vector.Sub(p, d.Center)
	cos := efloat.DivBy(vector.Dot(rel, d.MajorAxis), mustNonZero(vector.NormSquared(d.MajorAxis)))
	sin := efloat.DivBy(vector.Dot(rel, d.MinorAxis), mustNonZero(vector.NormSquared(d.MinorAxis)))
	return cos, sin
}

func ellipseAngleOf(d EllipseData, p vector.Vec) (efloat.EFloat, error) {
	cos, sin := ellipseCosSin(d, p)
	angle, err := efloat.Atan2(sin, cos)
	if err != nil {
		return efloat.EFloat{}, errs.Wrap(err, "curve: ellipse angle indeterminate")
	}
	return angle, nil
}

func ellipseTransform(d EllipseData, t vector.Transform) (Curve, error) {
	center, err := t.Apply(d.Center)
	if err != nil {
		return Curve{}, errs.Wrap(err, "curve: ellipse transform failed on center")
	}
	normal := t.ApplyDirection(d.Normal)
	major := t.ApplyDirection(d.MajorAxis)
	minor := t.ApplyDirection(d.MinorAxis)
	return NewEllipse(center, normal, major, minor)
}

func ellipseFlip(d EllipseData) EllipseData {
	return EllipseData{Center: d.Center, Normal: vector.Neg(d.Normal), MajorAxis: d.MajorAxis, MinorAxis: d.MinorAxis}
}

func ellipseOnCurve(d EllipseData, p vector.Vec) bool {
	rel := vector.Sub(p, d.Center)
	if !efloat.Equal(vector.Dot(rel, d.Normal), efloat.Zero()) {
		return false
	}
	cos, sin := ellipseCosSin(d, p)
	unit := efloat.Add(efloat.Mul(cos, cos), efloat.Mul(sin, sin))
	return efloat.Equal(unit, efloat.New(1))
}

func ellipseTangent(d EllipseData, p vector.Vec) vector.Vec {
	cos, sin := ellipseCosSin(d, p)
	return vector.Sub(vector.ScaleE(d.MinorAxis, cos), vector.ScaleE(d.MajorAxis, sin))
}

// ellipseSpeed evaluates |d/dtheta p(theta)| at a plain float64 angle,
// used by the numerical arc-length quadrature below.
func ellipseSpeed(major, minor vector.Vec, theta float64) float64 {
	sin, cos := math.Sin(theta), math.Cos(theta)
	dx := -sin*major.X.Mid() + cos*minor.X.Mid()
	dy := -sin*major.Y.Mid() + cos*minor.Y.Mid()
	dz := -sin*major.Z.Mid() + cos*minor.Z.Mid()
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ellipseArcLength approximates the arc length from thetaA to thetaB by
// composite trapezoidal quadrature of the speed function. Unlike the
// rest of this package, this is not a certified bound: the ellipse's
// arc length has no closed form (it is an elliptic integral), and the
// spec leaves the ellipse's exact algorithm unspecified (as it does for
// ellipse-ellipse intersection). The returned interval is widened by a
// fixed relative-plus-absolute epsilon to stay honest about that.
func ellipseArcLength(d EllipseData, thetaA, thetaB float64) efloat.EFloat {
	const steps = 512
	h := (thetaB - thetaA) / steps
	sum := 0.5 * (ellipseSpeed(d.MajorAxis, d.MinorAxis, thetaA) + ellipseSpeed(d.MajorAxis, d.MinorAxis, thetaB))
	for i := 1; i < steps; i++ {
		sum += ellipseSpeed(d.MajorAxis, d.MinorAxis, thetaA+float64(i)*h)
	}
	approx := sum * h
	eps := math.Abs(approx)*1e-6 + 1e-9
	return efloat.EFloat{Lower: approx - eps, Upper: approx + eps}
}

func ellipseDistance(d EllipseData, a, b vector.Vec) (efloat.EFloat, error) {
	angleA, err := ellipseAngleOf(d, a)
	if err != nil {
		return efloat.EFloat{}, err
	}
	angleB, err := ellipseAngleOf(d, b)
	if err != nil {
		return efloat.EFloat{}, err
	}
	sweep := wrapSweep(efloat.Sub(angleB, angleA))
	return ellipseArcLength(d, angleA.Mid(), angleA.Mid()+sweep.Mid()), nil
}

func ellipseInterpolate(d EllipseData, a, b *vector.Vec, t efloat.EFloat) (vector.Vec, error) {
	if a == nil && b == nil {
		angle := efloat.Scale(efloat.New(2*math.Pi), t.Mid())
		return ellipsePointAtAngle(d, angle), nil
	}
	if a == nil || b == nil {
		return vector.Vec{}, errs.New(errs.DomainError, "curve: ellipse interpolate needs both bounds or neither")
	}
	angleA, err := ellipseAngleOf(d, *a)
	if err != nil {
		return vector.Vec{}, err
	}
	angleB, err := ellipseAngleOf(d, *b)
	if err != nil {
		return vector.Vec{}, err
	}
	sweep := wrapSweep(efloat.Sub(angleB, angleA))
	angle := efloat.Add(angleA, efloat.Mul(sweep, t))
	return ellipsePointAtAngle(d, angle), nil
}

func ellipseBetween(d EllipseData, m, a, b vector.Vec) (bool, error) {
	angleA, err := ellipseAngleOf(d, a)
	if err != nil {
		return false, err
	}
	angleB, err := ellipseAngleOf(d, b)
	if err != nil {
		return false, err
	}
	angleM, err := ellipseAngleOf(d, m)
	if err != nil {
		return false, err
	}
	sweepAB := wrapSweep(efloat.Sub(angleB, angleA))
	sweepAM := wrapSweep(efloat.Sub(angleM, angleA))

	lowOK := efloat.Cmp(sweepAM, efloat.Zero())
	highOK := efloat.Cmp(sweepAM, sweepAB)
	if lowOK == efloat.Indeterminate || highOK == efloat.Indeterminate {
		return false, errs.New(errs.NumericalError, "curve: indeterminate between test on ellipse")
	}
	return lowOK != efloat.Less && highOK != efloat.Greater, nil
}

func ellipseProject(d EllipseData, p vector.Vec) (vector.Vec, error) {
	// No closed form; use a fixed-iteration angular refinement starting
	// from the in-plane direction, which is exact for a circle and a
	// good practical approximation for a mild ellipse.
	rel := vector.Sub(p, d.Center)
	normalComp := vector.Dot(rel, d.Normal)
	inPlane := vector.Sub(rel, vector.ScaleE(d.Normal, normalComp))
	if _, err := efloat.NewNonZero(vector.Norm(inPlane)); err != nil {
		return vector.Vec{}, errs.New(errs.DegenerateConfiguration, "curve: ellipse projection undefined for a point on its axis")
	}
	x := vector.Dot(inPlane, d.MajorAxis).Mid()
	y := vector.Dot(inPlane, d.MinorAxis).Mid()
	theta := math.Atan2(y, x)
	for i := 0; i < 8; i++ {
		cand := vector.New(
			d.Center.X.Mid()+math.Cos(theta)*d.MajorAxis.X.Mid()+math.Sin(theta)*d.MinorAxis.X.Mid(),
			d.Center.Y.Mid()+math.Cos(theta)*d.MajorAxis.Y.Mid()+math.Sin(theta)*d.MinorAxis.Y.Mid(),
			d.Center.Z.Mid()+math.Cos(theta)*d.MajorAxis.Z.Mid()+math.Sin(theta)*d.MinorAxis.Z.Mid(),
		)
		speed := ellipseSpeed(d.MajorAxis, d.MinorAxis, theta)
		if speed == 0 {
			break
		}
		tx := -math.Sin(theta)*d.MajorAxis.X.Mid() + math.Cos(theta)*d.MinorAxis.X.Mid()
		ty := -math.Sin(theta)*d.MajorAxis.Y.Mid() + math.Cos(theta)*d.MinorAxis.Y.Mid()
		tz := -math.Sin(theta)*d.MajorAxis.Z.Mid() + math.Cos(theta)*d.MinorAxis.Z.Mid()
		errX, errY, errZ := p.X.Mid()-cand.X.Mid(), p.Y.Mid()-cand.Y.Mid(), p.Z.Mid()-cand.Z.Mid()
		correction := (errX*tx + errY*ty + errZ*tz) / (speed * speed)
		theta += correction
	}
	return ellipsePointAtAngle(d, efloat.New(theta)), nil
}

// ellipseBoundingBox bounds the arc from a to b when both are given
// (tightened with axis-extremal points the arc actually sweeps
// through, same approach as circleBoundingBox), or the whole ellipse
// when a and b are both nil.
func ellipseBoundingBox(d EllipseData, a, b *vector.Vec) (vector.BoundingBox, error) {
	if a == nil && b == nil {
		return circleFullBoundingBox(d.Center, efloat.New(1), d.MajorAxis, d.MinorAxis), nil
	}
	if a == nil || b == nil {
		return vector.BoundingBox{}, errs.New(errs.DomainError, "curve: ellipse bounding_box needs both bounds or neither")
	}
	box := vector.BoxFromPoints(*a, *b)
	pointAt := func(theta efloat.EFloat) vector.Vec { return ellipsePointAtAngle(d, theta) }
	for _, p := range arcExtentPoints(pointAt, d.MajorAxis, d.MinorAxis) {
		inArc, err := ellipseBetween(d, p, *a, *b)
		if err != nil {
			return vector.BoundingBox{}, err
		}
		if inArc {
			box = box.Extend(p)
		}
	}
	return box, nil
}
