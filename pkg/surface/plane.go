package surface

import (
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// PlaneData is the plane through Point perpendicular to Normal (unit
// length), oriented outward along Normal.
type PlaneData struct {
	Point  vector.Vec
	Normal vector.Vec
}

func (PlaneData) surfaceData() {}

// NewPlane builds a Plane, normalizing Normal. Fails if Normal has a
// possibly-zero norm.
func NewPlane(point, normal vector.Vec) (Surface, error) {
	nz, err := efloat.NewNonZero(vector.Norm(normal))
	if err != nil {
		return Surface{}, errs.Wrap(err, "surface: plane normal has possibly-zero norm")
	}
	unit := vector.ScaleE(normal, efloat.DivBy(efloat.New(1), nz))
	return Surface{Kind: KindPlane, Data: PlaneData{Point: point, Normal: unit}}, nil
}

// planeBasis returns an orthonormal in-plane basis (u, v) with
// u x v == Normal, used for geodesics and point_grid.
func planeBasis(d PlaneData) (u, v vector.Vec) {
	seed := vector.New(1, 0, 0)
	if efloat.Cmp(efloat.Abs(vector.Dot(d.Normal, seed)), efloat.New(0.9)) == efloat.Greater {
		seed = vector.New(0, 1, 0)
	}
	u = vector.Cross(d.Normal, seed)
	unz, err := efloat.NewNonZero(vector.Norm(u))
	if err != nil {
		panic("surface: plane basis seed degenerated against its normal: " + err.Error())
	}
	u = vector.ScaleE(u, efloat.DivBy(efloat.New(1), unz))
	v = vector.Cross(d.Normal, u)
	return u, v
}

func planeTransform(d PlaneData, t vector.Transform) (Surface, error) {
	point, err := t.Apply(d.Point)
	if err != nil {
		return Surface{}, errs.Wrap(err, "surface: plane transform failed on point")
	}
	normal := t.ApplyDirection(d.Normal)
	return NewPlane(point, normal)
}

func planeFlip(d PlaneData) PlaneData {
	return PlaneData{Point: d.Point, Normal: vector.Neg(d.Normal)}
}

func planeOnSurface(d PlaneData, p vector.Vec) bool {
	rel := vector.Sub(p, d.Point)
	return efloat.Equal(vector.Dot(rel, d.Normal), efloat.Zero())
}

func planeNormal(d PlaneData) vector.Vec {
	return d.Normal
}

func planeGeodesic(d PlaneData, p, q vector.Vec) (curve.Curve, error) {
	direction := vector.Sub(q, p)
	if efloat.Equal(vector.NormSquared(direction), efloat.Zero()) {
		return curve.Curve{}, errs.New(errs.DegenerateConfiguration, "surface: plane geodesic requires distinct endpoints")
	}
	return curve.NewLine(p, direction)
}

func planePointGrid(d PlaneData, density int) []vector.Vec {
	u, v := planeBasis(d)
	points := make([]vector.Vec, 0, density*density)
	for i := 0; i < density; i++ {
		for j := 0; j < density; j++ {
			s := float64(i)/float64(density-1)*2 - 1
			r := float64(j)/float64(density-1)*2 - 1
			p := vector.Add(d.Point, vector.Add(vector.Scale(u, s), vector.Scale(v, r)))
			points = append(points, p)
		}
	}
	return points
}
