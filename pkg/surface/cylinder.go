package surface

import (
	"math"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// CylinderData is the infinite circular cylinder of the given Radius
// around the line through Center in direction Axis (unit length), with
// outward normal n(p) = (p - proj_axis(p)) / Radius.
type CylinderData struct {
	Center vector.Vec
	Axis   vector.Vec
	Radius efloat.EFloat
}

func (CylinderData) surfaceData() {}

// NewCylinder builds a Cylinder, normalizing Axis. Fails if Axis has a
// possibly-zero norm or Radius is not strictly positive.
func NewCylinder(center, axis vector.Vec, radius efloat.EFloat) (Surface, error) {
	nz, err := efloat.NewNonZero(vector.Norm(axis))
	if err != nil {
		return Surface{}, errs.Wrap(err, "surface: cylinder axis has possibly-zero norm")
	}
	unitAxis := vector.ScaleE(axis, efloat.DivBy(efloat.New(1), nz))
	if efloat.Cmp(radius, efloat.Zero()) != efloat.Greater {
		return Surface{}, errs.New(errs.DegenerateConfiguration, "surface: cylinder radius must be strictly positive")
	}
	return Surface{Kind: KindCylinder, Data: CylinderData{Center: center, Axis: unitAxis, Radius: radius}}, nil
}

// cylinderRadial returns the component of p - Center perpendicular to
// Axis (the direction from the axis out to p).
func cylinderRadial(d CylinderData, p vector.Vec) vector.Vec {
	rel := vector.Sub(p, d.Center)
	axial := vector.Dot(rel, d.Axis)
	return vector.Sub(rel, vector.ScaleE(d.Axis, axial))
}

func cylinderTransform(d CylinderData, t vector.Transform) (Surface, error) {
	center, err := t.Apply(d.Center)
	if err != nil {
		return Surface{}, errs.Wrap(err, "surface: cylinder transform failed on center")
	}
	axis := t.ApplyDirection(d.Axis)
	return NewCylinder(center, axis, d.Radius)
}

func cylinderFlip(d CylinderData) CylinderData {
	return CylinderData{Center: d.Center, Axis: vector.Neg(d.Axis), Radius: d.Radius}
}

func cylinderOnSurface(d CylinderData, p vector.Vec) bool {
	radial := cylinderRadial(d, p)
	return efloat.Equal(vector.NormSquared(radial), efloat.Mul(d.Radius, d.Radius))
}

func cylinderNormal(d CylinderData, p vector.Vec) vector.Vec {
	radial := cylinderRadial(d, p)
	nz := mustNonZero(vector.Norm(radial))
	return vector.ScaleE(radial, efloat.DivBy(efloat.New(1), nz))
}

// cylinderGeodesic returns a Line along Axis when p and q sit at the
// same angular position (differing only in height), a Circle at that
// height when they share a height, else a Helix that winds from p to q
// counter-clockwise about Axis (a sweep in (0, 2*pi]) at constant
// pitch.
func cylinderGeodesic(d CylinderData, cfg config.Config, p, q vector.Vec) (curve.Curve, error) {
	radialP := cylinderRadial(d, p)
	radialQ := cylinderRadial(d, q)
	heightP := vector.Dot(vector.Sub(p, d.Center), d.Axis)
	heightQ := vector.Dot(vector.Sub(q, d.Center), d.Axis)

	cross := vector.Cross(radialP, radialQ)
	if efloat.Equal(vector.NormSquared(cross), efloat.Zero()) && efloat.Cmp(vector.Dot(radialP, radialQ), efloat.Zero()) == efloat.Greater {
		if efloat.Equal(heightP, heightQ) {
			return curve.Curve{}, errs.New(errs.DegenerateConfiguration, "surface: cylinder geodesic requires distinct endpoints")
		}
		axisPoint := vector.Add(d.Center, radialP)
		return curve.NewLine(axisPoint, d.Axis)
	}

	refDirection := radialP
	sweep, err := efloat.Atan2(vector.Dot(radialQ, vector.Cross(d.Axis, radialP)), vector.Dot(radialQ, radialP))
	if err != nil {
		return curve.Curve{}, errs.Wrap(err, "surface: cylinder geodesic angle indeterminate")
	}
	rise := efloat.Sub(heightQ, heightP)
	// Fold the sweep into (0, 2*pi] matching the right-winding
	// convention below, then derive the pitch that makes one full turn
	// of that sweep correspond to this helix's actual rise per radian.
	theta := sweep
	if theta.Mid() <= 0 {
		theta = efloat.Add(theta, efloat.New(2*math.Pi))
	}
	pitch, err := efloat.NewNonZero(efloat.Scale(efloat.DivBy(rise, mustNonZero(theta)), 2*math.Pi))
	if err != nil {
		// Zero rise with a nonzero sweep: p and q share a height but
		// differ angularly, so the geodesic is the circular arc at
		// that height — represent it as a helix of a tiny nonzero
		// pitch is wrong; use a Circle instead.
		return curve.NewCircle(vector.Add(d.Center, vector.ScaleE(d.Axis, heightP)), d.Axis, refDirection, d.Radius)
	}
	return curve.NewHelix(vector.Add(d.Center, vector.ScaleE(d.Axis, heightP)), d.Axis, refDirection, d.Radius, pitch.Value(), true)
}

func cylinderPointGrid(d CylinderData, density int) []vector.Vec {
	u, v := planeBasis(PlaneData{Point: d.Center, Normal: d.Axis})
	points := make([]vector.Vec, 0, density*density)
	r := d.Radius.Mid()
	for i := 0; i < density; i++ {
		h := float64(i)/float64(density-1)*2 - 1
		for j := 0; j < density; j++ {
			phi := 2 * math.Pi * float64(j) / float64(density-1)
			radial := vector.Add(vector.Scale(u, r*math.Cos(phi)), vector.Scale(v, r*math.Sin(phi)))
			axial := vector.Scale(d.Axis, h)
			points = append(points, vector.Add(d.Center, vector.Add(radial, axial)))
		}
	}
	return points
}
