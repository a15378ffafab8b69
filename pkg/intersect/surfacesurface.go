package intersect

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/vector"
)

// Surfaces intersects a against b per spec §4.6's surface-surface
// rules, all three of which reduce to a pairwise comparison of the
// distance between the surfaces' defining points/centers against their
// radii, same shape as circleCircle's coplanar construction. Cylinder
// pairs have no closed form named in the spec and fall through to a
// DomainError: a splitting face against a cylindrical volume is outside
// this kernel's scope (cylinder surfaces participate in geodesics and
// curve-cylinder intersection, not in surface-surface splitting).
func Surfaces(cfg config.Config, a, b surface.Surface) (Result, error) {
	switch {
	case a.Kind == surface.KindPlane && b.Kind == surface.KindPlane:
		return planePlane(a.Data.(surface.PlaneData), b.Data.(surface.PlaneData))
	case a.Kind == surface.KindPlane && b.Kind == surface.KindSphere:
		return planeSphere(a.Data.(surface.PlaneData), b.Data.(surface.SphereData))
	case a.Kind == surface.KindSphere && b.Kind == surface.KindPlane:
		return planeSphere(b.Data.(surface.PlaneData), a.Data.(surface.SphereData))
	case a.Kind == surface.KindSphere && b.Kind == surface.KindSphere:
		return sphereSphere(a.Data.(surface.SphereData), b.Data.(surface.SphereData))
	default:
		return Result{}, errs.Newf(errs.DomainError, "intersect: no closed-form reduction for surface kinds %v/%v", a.Kind, b.Kind)
	}
}

// perpSeed returns an arbitrary unit vector perpendicular to axis,
// picking between two candidate seeds exactly as pkg/surface's
// planeBasis does to avoid a near-parallel seed degenerating the cross
// product.
func perpSeed(axis vector.Vec) vector.Vec {
	seed := vector.New(1, 0, 0)
	if efloat.Cmp(efloat.Abs(vector.Dot(axis, seed)), efloat.New(0.9)) == efloat.Greater {
		seed = vector.New(0, 1, 0)
	}
	return vector.Cross(axis, seed)
}

// planePlane implements spec §4.6: parallel and disjoint planes give
// None; parallel and coincident give the shared Surface; otherwise
// their intersection is a Line, found the same way circleCircle's
// non-coplanar reduction finds a circle-plane's supporting line.
func planePlane(a, b surface.PlaneData) (Result, error) {
	if normalsParallel(a.Normal, b.Normal) {
		offset := vector.Dot(vector.Sub(b.Point, a.Point), a.Normal)
		if efloat.Equal(offset, efloat.Zero()) {
			return Result{Kind: KindSurface, Surface: surface.Surface{Kind: surface.KindPlane, Data: a}}, nil
		}
		return none(), nil
	}

	dir := vector.Cross(a.Normal, b.Normal)
	m := [3][3]float64{
		{a.Normal.X.Mid(), a.Normal.Y.Mid(), a.Normal.Z.Mid()},
		{b.Normal.X.Mid(), b.Normal.Y.Mid(), b.Normal.Z.Mid()},
		{dir.X.Mid(), dir.Y.Mid(), dir.Z.Mid()},
	}
	rhs := [3]float64{
		vector.Dot(a.Point, a.Normal).Mid(),
		vector.Dot(b.Point, b.Normal).Mid(),
		0,
	}
	sol, err := vector.SolveLinear3(m, rhs)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: plane-plane intersection-line solve failed")
	}
	origin := vector.New(sol[0], sol[1], sol[2])
	line, err := curve.NewLine(origin, dir)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: plane-plane intersection line degenerate")
	}
	return onCurve(line), nil
}

// planeSphere implements spec §4.6: the distance from the sphere's
// center to the plane decides None (beyond the radius), Point
// (tangent), or Circle (a proper cross-section).
func planeSphere(pd surface.PlaneData, sd surface.SphereData) (Result, error) {
	offset := vector.Dot(vector.Sub(sd.Center, pd.Point), pd.Normal)
	distSquared := efloat.Mul(offset, offset)
	radiusSquared := efloat.Mul(sd.Radius, sd.Radius)

	sectionCenter := vector.Sub(sd.Center, vector.ScaleE(pd.Normal, offset))
	if efloat.Equal(distSquared, radiusSquared) {
		return point(sectionCenter), nil
	}

	cmp := efloat.Cmp(distSquared, radiusSquared)
	if cmp == efloat.Indeterminate {
		return Result{}, errs.New(errs.NumericalError, "intersect: plane-sphere distance indeterminate against radius")
	}
	if cmp == efloat.Greater {
		return none(), nil
	}

	sectionRadiusSquared := efloat.Sub(radiusSquared, distSquared)
	sp, err := efloat.NewSemiPositive(sectionRadiusSquared)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: plane-sphere section radius indeterminate near zero")
	}
	sectionRadius := sp.Sqrt().Value()

	circ, err := curve.NewCircle(sectionCenter, pd.Normal, perpSeed(pd.Normal), sectionRadius)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: plane-sphere section circle degenerate")
	}
	return onCurve(circ), nil
}

// sphereSphere is analogous to planeSphere and to circleCircle's
// coplanar construction, one dimension up: the radical plane meets the
// center line at distance aDist from a.Center, and the cross-section
// there is a circle of radius h (degenerating to a point at tangency).
func sphereSphere(a, b surface.SphereData) (Result, error) {
	centerDist := vector.Norm(vector.Sub(b.Center, a.Center))

	if pointsClose(a.Center, b.Center) {
		if efloat.Equal(a.Radius, b.Radius) {
			return Result{Kind: KindSurface, Surface: surface.Surface{Kind: surface.KindSphere, Data: a}}, nil
		}
		return none(), nil
	}

	sumR := efloat.Add(a.Radius, b.Radius)
	diffR := efloat.Abs(efloat.Sub(a.Radius, b.Radius))
	lowOK := efloat.Cmp(diffR, centerDist)
	highOK := efloat.Cmp(centerDist, sumR)
	// An indeterminate comparison here is a tangency within tolerance;
	// it is resolved by the hSquared == 0 check below.
	if lowOK == efloat.Greater || highOK == efloat.Greater {
		return none(), nil
	}

	distNZ, err := efloat.NewNonZero(centerDist)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: sphere-sphere center distance indeterminate near zero")
	}
	axis := vector.ScaleE(vector.Sub(b.Center, a.Center), efloat.DivBy(efloat.New(1), distNZ))

	numerator := efloat.Add(efloat.Mul(a.Radius, a.Radius), efloat.Sub(efloat.Mul(centerDist, centerDist), efloat.Mul(b.Radius, b.Radius)))
	aDist, err := efloat.Div(numerator, efloat.Scale(centerDist, 2))
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: sphere-sphere center distance indeterminate near zero")
	}
	center := vector.Add(a.Center, vector.ScaleE(axis, aDist))

	hSquared := efloat.Sub(efloat.Mul(a.Radius, a.Radius), efloat.Mul(aDist, aDist))
	if efloat.Equal(hSquared, efloat.Zero()) {
		return point(center), nil
	}
	hSP, err := efloat.NewSemiPositive(hSquared)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: sphere-sphere section radius indeterminate near zero")
	}
	h := hSP.Sqrt().Value()

	if efloat.Equal(h, efloat.Zero()) {
		return point(center), nil
	}
	circ, err := curve.NewCircle(center, axis, perpSeed(axis), h)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: sphere-sphere section circle degenerate")
	}
	return onCurve(circ), nil
}
