package surface

import (
	"math"

	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// SphereData is the sphere of the given Radius centered at Center, with
// outward normal n(p) = (p - Center) / Radius.
type SphereData struct {
	Center vector.Vec
	Radius efloat.EFloat
}

func (SphereData) surfaceData() {}

// NewSphere builds a Sphere. Fails if Radius is not strictly positive.
func NewSphere(center vector.Vec, radius efloat.EFloat) (Surface, error) {
	if efloat.Cmp(radius, efloat.Zero()) != efloat.Greater {
		return Surface{}, errs.New(errs.DegenerateConfiguration, "surface: sphere radius must be strictly positive")
	}
	return Surface{Kind: KindSphere, Data: SphereData{Center: center, Radius: radius}}, nil
}

func sphereTransform(d SphereData, t vector.Transform) (Surface, error) {
	center, err := t.Apply(d.Center)
	if err != nil {
		return Surface{}, errs.Wrap(err, "surface: sphere transform failed on center")
	}
	return NewSphere(center, d.Radius)
}

// sphereFlip is a no-op: a sphere's outward orientation is fixed by its
// center and radius alone (spec §3.4 gives Plane/Cylinder the freedom
// to choose a normal sign, but a sphere's is always outward).
func sphereFlip(d SphereData) SphereData {
	return d
}

func sphereOnSurface(d SphereData, p vector.Vec) bool {
	rel := vector.Sub(p, d.Center)
	return efloat.Equal(vector.NormSquared(rel), efloat.Mul(d.Radius, d.Radius))
}

func sphereNormal(d SphereData, p vector.Vec) vector.Vec {
	rel := vector.Sub(p, d.Center)
	nz := mustNonZero(vector.Norm(rel))
	return vector.ScaleE(rel, efloat.DivBy(efloat.New(1), nz))
}

// mustNonZero wraps a value the caller has already guaranteed is
// nonzero by construction.
func mustNonZero(v efloat.EFloat) efloat.NonZero {
	nz, err := efloat.NewNonZero(v)
	if err != nil {
		panic("surface: expected-nonzero value was zero: " + err.Error())
	}
	return nz
}

// sphereGeodesic returns the short arc of the great circle through p
// and q: the circle through both points centered at the sphere's
// center, in the plane they and the center span.
func sphereGeodesic(d SphereData, p, q vector.Vec) (curve.Curve, error) {
	relP := vector.Sub(p, d.Center)
	relQ := vector.Sub(q, d.Center)
	normal := vector.Cross(relP, relQ)
	if efloat.Equal(vector.NormSquared(normal), efloat.Zero()) {
		// p and q are antipodal (or coincident): the great circle
		// through them is not unique. Pick an arbitrary normal
		// perpendicular to relP to resolve the ambiguity.
		seed := vector.New(1, 0, 0)
		if efloat.Cmp(efloat.Abs(vector.Dot(relP, seed)), efloat.New(0.9)) == efloat.Greater {
			seed = vector.New(0, 1, 0)
		}
		normal = vector.Cross(relP, seed)
	}
	return curve.NewCircle(d.Center, normal, relP, d.Radius)
}

func spherePointGrid(d SphereData, density int) []vector.Vec {
	points := make([]vector.Vec, 0, density*density)
	r := d.Radius.Mid()
	for i := 0; i < density; i++ {
		theta := math.Pi * float64(i) / float64(density-1)
		for j := 0; j < density; j++ {
			phi := 2 * math.Pi * float64(j) / float64(density-1)
			x := d.Center.X.Mid() + r*math.Sin(theta)*math.Cos(phi)
			y := d.Center.Y.Mid() + r*math.Sin(theta)*math.Sin(phi)
			z := d.Center.Z.Mid() + r*math.Cos(theta)
			points = append(points, vector.New(x, y, z))
		}
	}
	return points
}
