package curve

import (
	"math"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// HelixData is an unbounded helix of the given Radius and Pitch (axial
// rise per full turn) winding around Axis, with RefDirection marking
// angle zero. RightWinding selects the handedness: true sweeps
// counter-clockwise as seen looking down -Axis (standard right-hand
// rule), false the opposite.
type HelixData struct {
	Center       vector.Vec
	Axis         vector.Vec
	RefDirection vector.Vec
	Radius       efloat.EFloat
	Pitch        efloat.EFloat
	RightWinding bool
}

func (HelixData) curveData() {}

// NewHelix builds a Helix, normalizing Axis and projecting
// RefDirection into the plane perpendicular to it. Fails if Axis or the
// projected RefDirection is possibly zero, Radius is not strictly
// positive, or Pitch is possibly zero (a zero-pitch helix degenerates
// to a Circle and should be constructed as one).
func NewHelix(center, axis, refDirection vector.Vec, radius, pitch efloat.EFloat, rightWinding bool) (Curve, error) {
	aNZ, err := efloat.NewNonZero(vector.Norm(axis))
	if err != nil {
		return Curve{}, errs.Wrap(err, "curve: helix axis has possibly-zero norm")
	}
	unitAxis := vector.ScaleE(axis, efloat.DivBy(efloat.New(1), aNZ))

	comp := vector.Dot(refDirection, unitAxis)
	projected := vector.Sub(refDirection, vector.ScaleE(unitAxis, comp))
	pNZ, err := efloat.NewNonZero(vector.Norm(projected))
	if err != nil {
		return Curve{}, errs.Wrap(err, "curve: helix reference direction degenerates against its axis")
	}
	unitRef := vector.ScaleE(projected, efloat.DivBy(efloat.New(1), pNZ))

	if efloat.Cmp(radius, efloat.Zero()) != efloat.Greater {
		return Curve{}, errs.New(errs.DegenerateConfiguration, "curve: helix radius must be strictly positive")
	}
	if _, err := efloat.NewNonZero(pitch); err != nil {
		return Curve{}, errs.Wrap(err, "curve: helix pitch must be possibly-nonzero (use a Circle for zero pitch)")
	}

	return Curve{Kind: KindHelix, Data: HelixData{
		Center: center, Axis: unitAxis, RefDirection: unitRef,
		Radius: radius, Pitch: pitch, RightWinding: rightWinding,
	}}, nil
}

func helixBasis(d HelixData) (u, v vector.Vec) {
	u = d.RefDirection
	v = vector.Cross(d.Axis, u)
	if !d.RightWinding {
		v = vector.Neg(v)
	}
	return u, v
}

// helixAxialSpeed returns Pitch/(2*pi), the axial rise per unit theta.
func helixAxialSpeed(d HelixData) efloat.EFloat {
	return efloat.Scale(d.Pitch, 1/(2*math.Pi))
}

func helixThetaOf(d HelixData, p vector.Vec) efloat.EFloat {
	rel := vector.Sub(p, d.Center)
	z := vector.Dot(rel, d.Axis)
	return efloat.DivBy(efloat.Scale(z, 2*math.Pi), mustNonZero(d.Pitch))
}

func helixPointAtTheta(d HelixData, theta efloat.EFloat) vector.Vec {
	u, v := helixBasis(d)
	cos, sin := efloat.Cos(theta), efloat.Sin(theta)
	radial := vector.Add(vector.ScaleE(u, efloat.Mul(d.Radius, cos)), vector.ScaleE(v, efloat.Mul(d.Radius, sin)))
	axial := efloat.Mul(helixAxialSpeed(d), theta)
	return vector.Add(vector.Add(d.Center, radial), vector.ScaleE(d.Axis, axial))
}

func helixSpeed(d HelixData) efloat.EFloat {
	axialSpeed := helixAxialSpeed(d)
	sumSq := efloat.Add(efloat.Mul(d.Radius, d.Radius), efloat.Mul(axialSpeed, axialSpeed))
	sp, err := efloat.NewSemiPositive(sumSq)
	if err != nil {
		panic("curve: helix speed computation produced a negative square: " + err.Error())
	}
	return sp.Sqrt().Value()
}

func helixTransform(d HelixData, t vector.Transform) (Curve, error) {
	center, err := t.Apply(d.Center)
	if err != nil {
		return Curve{}, errs.Wrap(err, "curve: helix transform failed on center")
	}
	axis := t.ApplyDirection(d.Axis)
	ref := t.ApplyDirection(d.RefDirection)
	return NewHelix(center, axis, ref, d.Radius, d.Pitch, d.RightWinding)
}

func helixFlip(d HelixData) HelixData {
	return HelixData{
		Center: d.Center, Axis: vector.Neg(d.Axis), RefDirection: d.RefDirection,
		Radius: d.Radius, Pitch: d.Pitch, RightWinding: !d.RightWinding,
	}
}

func helixOnCurve(d HelixData, p vector.Vec) bool {
	theta := helixThetaOf(d, p)
	predicted := helixPointAtTheta(d, theta)
	return efloat.Equal(vector.NormSquared(vector.Sub(p, predicted)), efloat.Zero())
}

func helixTangent(d HelixData, p vector.Vec) vector.Vec {
	theta := helixThetaOf(d, p)
	u, v := helixBasis(d)
	cos, sin := efloat.Cos(theta), efloat.Sin(theta)
	radial := vector.Add(vector.ScaleE(u, efloat.Mul(d.Radius, efloat.Neg(sin))), vector.ScaleE(v, efloat.Mul(d.Radius, cos)))
	return vector.Add(radial, vector.ScaleE(d.Axis, helixAxialSpeed(d)))
}

func helixDistance(d HelixData, a, b vector.Vec) (efloat.EFloat, error) {
	thetaA, thetaB := helixThetaOf(d, a), helixThetaOf(d, b)
	return efloat.Mul(helixSpeed(d), efloat.Sub(thetaB, thetaA)), nil
}

func helixInterpolate(d HelixData, cfg config.Config, a, b *vector.Vec, t efloat.EFloat) (vector.Vec, error) {
	speed := helixSpeed(d)
	speedNZ, err := efloat.NewNonZero(speed)
	if err != nil {
		return vector.Vec{}, errs.Wrap(err, "curve: helix has possibly-zero speed")
	}
	horizonTheta := efloat.DivBy(efloat.New(cfg.HorizonDist), speedNZ)

	var thetaA, thetaB efloat.EFloat
	switch {
	case a == nil && b == nil:
		return vector.Vec{}, errs.New(errs.DomainError, "curve: helix interpolate needs at least one bound")
	case a == nil:
		thetaB = helixThetaOf(d, *b)
		thetaA = efloat.Sub(thetaB, horizonTheta)
	case b == nil:
		thetaA = helixThetaOf(d, *a)
		thetaB = efloat.Add(thetaA, horizonTheta)
	default:
		thetaA, thetaB = helixThetaOf(d, *a), helixThetaOf(d, *b)
	}
	theta := efloat.Add(thetaA, efloat.Mul(efloat.Sub(thetaB, thetaA), t))
	return helixPointAtTheta(d, theta), nil
}

func helixBetween(d HelixData, m, a, b vector.Vec) (bool, error) {
	thetaA, thetaB, thetaM := helixThetaOf(d, a), helixThetaOf(d, b), helixThetaOf(d, m)

	var lowOK, highOK efloat.Ordering
	if efloat.Cmp(thetaB, thetaA) != efloat.Less {
		lowOK = efloat.Cmp(thetaM, thetaA)
		highOK = efloat.Cmp(thetaM, thetaB)
	} else {
		lowOK = efloat.Cmp(thetaM, thetaB)
		highOK = efloat.Cmp(thetaM, thetaA)
	}
	if lowOK == efloat.Indeterminate || highOK == efloat.Indeterminate {
		return false, errs.New(errs.NumericalError, "curve: indeterminate between test on helix")
	}
	return lowOK != efloat.Less && highOK != efloat.Greater, nil
}

// helixProject finds the nearest on-curve point by starting from the
// height-implied angle and correcting by whole turns to match the
// point's planar angle; this is exact when p already lies near the
// curve (the common case for the numerical intersector) and a
// reasonable practical approximation otherwise, since general
// point-to-helix projection has no closed form.
func helixProject(d HelixData, p vector.Vec) (vector.Vec, error) {
	u, v := helixBasis(d)
	rel := vector.Sub(p, d.Center)
	z := vector.Dot(rel, d.Axis).Mid()
	thetaHeight := 2 * math.Pi * z / d.Pitch.Mid()

	x := vector.Dot(rel, u).Mid()
	y := vector.Dot(rel, v).Mid()
	phi := math.Atan2(y, x)

	k := math.Round((thetaHeight - phi) / (2 * math.Pi))
	theta := phi + k*2*math.Pi
	return helixPointAtTheta(d, efloat.New(theta)), nil
}

func helixBoundingBox(d HelixData, cfg config.Config, a, b *vector.Vec) (vector.BoundingBox, error) {
	speedNZ, err := efloat.NewNonZero(helixSpeed(d))
	if err != nil {
		return vector.BoundingBox{}, errs.Wrap(err, "curve: helix has possibly-zero speed")
	}
	horizonTheta := efloat.DivBy(efloat.New(cfg.HorizonDist), speedNZ)

	var thetaA, thetaB efloat.EFloat
	switch {
	case a == nil && b == nil:
		return vector.BoundingBox{}, errs.New(errs.DomainError, "curve: helix bounding_box needs at least one bound")
	case a == nil:
		thetaB = helixThetaOf(d, *b)
		thetaA = efloat.Sub(thetaB, horizonTheta)
	case b == nil:
		thetaA = helixThetaOf(d, *a)
		thetaB = efloat.Add(thetaA, horizonTheta)
	default:
		thetaA, thetaB = helixThetaOf(d, *a), helixThetaOf(d, *b)
	}

	u, v := helixBasis(d)
	radial := circleFullBoundingBox(vector.Zero(), d.Radius, u, v)
	axialLo := efloat.Mul(helixAxialSpeed(d), thetaA)
	axialHi := efloat.Mul(helixAxialSpeed(d), thetaB)
	if axialLo.Mid() > axialHi.Mid() {
		axialLo, axialHi = axialHi, axialLo
	}
	// Each axis component of Axis may be negative, so the extreme of
	// axialLo*axis_i vs axialHi*axis_i depends on that sign; take both
	// and sort per axis rather than assuming axialLo always yields the
	// smaller product.
	axialComponent := func(axis efloat.EFloat) (efloat.EFloat, efloat.EFloat) {
		p1 := efloat.Mul(axialLo, axis)
		p2 := efloat.Mul(axialHi, axis)
		return efloat.Min(p1, p2), efloat.Max(p1, p2)
	}
	minX, maxX := axialComponent(d.Axis.X)
	minY, maxY := axialComponent(d.Axis.Y)
	minZ, maxZ := axialComponent(d.Axis.Z)
	axialBox := vector.BoundingBox{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY, MinZ: minZ, MaxZ: maxZ}
	combined := vector.BoundingBox{
		MinX: efloat.Add(d.Center.X, efloat.Add(radial.MinX, axialBox.MinX)),
		MaxX: efloat.Add(d.Center.X, efloat.Add(radial.MaxX, axialBox.MaxX)),
		MinY: efloat.Add(d.Center.Y, efloat.Add(radial.MinY, axialBox.MinY)),
		MaxY: efloat.Add(d.Center.Y, efloat.Add(radial.MaxY, axialBox.MaxY)),
		MinZ: efloat.Add(d.Center.Z, efloat.Add(radial.MinZ, axialBox.MinZ)),
		MaxZ: efloat.Add(d.Center.Z, efloat.Add(radial.MaxZ, axialBox.MaxZ)),
	}
	return combined, nil
}
