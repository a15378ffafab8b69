package intersect

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/vector"
)

// CurveSurface intersects c (bounded to the arc between cLo/cHi, if
// both given) against s, dispatching to the closed-form reduction spec
// §4.6 names for the pair, or failing with a DomainError for any
// pairing the spec leaves unspecified (Ellipse-anything beyond a
// plane, Helix-anything, and the curve-on-Cylinder pairs besides
// Line-Cylinder, which pkg/surface's own cylinderGeodesic already
// reduces to a Line/Circle/Helix curve rather than needing a dedicated
// reduction here).
func CurveSurface(cfg config.Config, c curve.Curve, cLo, cHi *vector.Vec, s surface.Surface) (Result, error) {
	switch {
	case c.Kind == curve.KindLine && s.Kind == surface.KindPlane:
		return linePlane(c.Data.(curve.LineData), cLo, cHi, s.Data.(surface.PlaneData))
	case c.Kind == curve.KindLine && s.Kind == surface.KindSphere:
		return lineSphere(c.Data.(curve.LineData), cLo, cHi, s.Data.(surface.SphereData))
	case c.Kind == curve.KindLine && s.Kind == surface.KindCylinder:
		return lineCylinder(c.Data.(curve.LineData), cLo, cHi, s.Data.(surface.CylinderData))
	case c.Kind == curve.KindCircle && s.Kind == surface.KindPlane:
		return circlePlane(c.Data.(curve.CircleData), cLo, cHi, s.Data.(surface.PlaneData))
	case c.Kind == curve.KindCircle && s.Kind == surface.KindSphere:
		return circleSphere(cfg, c.Data.(curve.CircleData), cLo, cHi, s.Data.(surface.SphereData))
	default:
		return Result{}, errs.Newf(errs.DomainError, "intersect: no closed-form reduction for curve kind %v against surface kind %v", c.Kind, s.Kind)
	}
}

func filterByCurveBound(c curve.Curve, lo, hi *vector.Vec, pts []vector.Vec) ([]vector.Vec, error) {
	if lo == nil || hi == nil {
		return pts, nil
	}
	var kept []vector.Vec
	for _, p := range pts {
		ok, err := curve.Between(c, p, *lo, *hi)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

// linePlane reduces to a single linear equation (spec §4.6): a line
// not parallel to the plane meets it in exactly one point; a parallel
// line either lies in the plane entirely (Curve) or misses it (None).
func linePlane(ld curve.LineData, lo, hi *vector.Vec, pd surface.PlaneData) (Result, error) {
	dn := vector.Dot(ld.Direction, pd.Normal)
	offset := vector.Dot(vector.Sub(ld.Origin, pd.Point), pd.Normal)

	if efloat.Equal(dn, efloat.Zero()) {
		if efloat.Equal(offset, efloat.Zero()) {
			return onCurve(curve.Curve{Kind: curve.KindLine, Data: ld}), nil
		}
		return none(), nil
	}
	dnNZ, err := efloat.NewNonZero(dn)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: line-plane crossing indeterminate near zero")
	}
	t := efloat.DivBy(efloat.Neg(offset), dnNZ)
	pt := vector.Add(ld.Origin, vector.ScaleE(ld.Direction, t))

	lineCurve := curve.Curve{Kind: curve.KindLine, Data: ld}
	kept, err := filterByCurveBound(lineCurve, lo, hi, []vector.Vec{pt})
	if err != nil {
		return Result{}, err
	}
	return pointsResult(kept), nil
}

// lineSphere reduces to the quadratic |O + t*D - Center|^2 = R^2.
func lineSphere(ld curve.LineData, lo, hi *vector.Vec, sd surface.SphereData) (Result, error) {
	rel := vector.Sub(ld.Origin, sd.Center)
	aCoef := vector.Dot(ld.Direction, ld.Direction)
	bCoef := efloat.Scale(vector.Dot(rel, ld.Direction), 2)
	cCoef := efloat.Sub(vector.Dot(rel, rel), efloat.Mul(sd.Radius, sd.Radius))

	raw, err := solveQuadraticPoints(ld, aCoef, bCoef, cCoef)
	if err != nil {
		return Result{}, err
	}
	lineCurve := curve.Curve{Kind: curve.KindLine, Data: ld}
	kept, err := filterByCurveBound(lineCurve, lo, hi, raw)
	if err != nil {
		return Result{}, err
	}
	return pointsResult(kept), nil
}

// lineCylinder reduces to the quadratic on the radial component of
// O + t*D relative to the cylinder's axis, the natural 3D generalization
// of lineSphere once the axial component is projected out.
func lineCylinder(ld curve.LineData, lo, hi *vector.Vec, cyd surface.CylinderData) (Result, error) {
	rel := vector.Sub(ld.Origin, cyd.Center)
	axialRel := vector.Dot(rel, cyd.Axis)
	axialDir := vector.Dot(ld.Direction, cyd.Axis)
	radialRel := vector.Sub(rel, vector.ScaleE(cyd.Axis, axialRel))
	radialDir := vector.Sub(ld.Direction, vector.ScaleE(cyd.Axis, axialDir))

	aCoef := vector.Dot(radialDir, radialDir)
	bCoef := efloat.Scale(vector.Dot(radialRel, radialDir), 2)
	cCoef := efloat.Sub(vector.Dot(radialRel, radialRel), efloat.Mul(cyd.Radius, cyd.Radius))

	raw, err := solveQuadraticPoints(ld, aCoef, bCoef, cCoef)
	if err != nil {
		return Result{}, err
	}
	lineCurve := curve.Curve{Kind: curve.KindLine, Data: ld}
	kept, err := filterByCurveBound(lineCurve, lo, hi, raw)
	if err != nil {
		return Result{}, err
	}
	return pointsResult(kept), nil
}

// circlePlane reduces to circle-line within the circle's own plane,
// per spec §4.6: first finds the line where the circle's plane meets
// the given plane (None if the planes are parallel and the circle's
// plane isn't the given one; the whole circle if it is), then runs the
// same quadratic as line-circle.
func circlePlane(cd curve.CircleData, lo, hi *vector.Vec, pd surface.PlaneData) (Result, error) {
	if normalsParallel(cd.Normal, pd.Normal) {
		offset := vector.Dot(vector.Sub(cd.Center, pd.Point), pd.Normal)
		if efloat.Equal(offset, efloat.Zero()) {
			return onCurve(curve.Curve{Kind: curve.KindCircle, Data: cd}), nil
		}
		return none(), nil
	}

	dir := vector.Cross(cd.Normal, pd.Normal)
	m := [3][3]float64{
		{cd.Normal.X.Mid(), cd.Normal.Y.Mid(), cd.Normal.Z.Mid()},
		{pd.Normal.X.Mid(), pd.Normal.Y.Mid(), pd.Normal.Z.Mid()},
		{dir.X.Mid(), dir.Y.Mid(), dir.Z.Mid()},
	}
	rhs := [3]float64{
		vector.Dot(cd.Center, cd.Normal).Mid(),
		vector.Dot(pd.Point, pd.Normal).Mid(),
		0,
	}
	sol, err := vector.SolveLinear3(m, rhs)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: circle-plane intersection-line solve failed")
	}
	origin := vector.New(sol[0], sol[1], sol[2])

	raw, err := lineCircleRaw(curve.LineData{Origin: origin, Direction: dir}, cd)
	if err != nil {
		return Result{}, err
	}
	circCurve := curve.Curve{Kind: curve.KindCircle, Data: cd}
	kept, err := filterByCurveBound(circCurve, lo, hi, raw)
	if err != nil {
		return Result{}, err
	}
	return pointsResult(kept), nil
}

// circleSphere reduces the sphere to its intersection with the
// circle's plane (a circle, a point, or nothing, by the same
// distance-from-center-to-plane test planeSphere uses), then to
// circle-circle, per spec §4.6.
func circleSphere(cfg config.Config, cd curve.CircleData, lo, hi *vector.Vec, sd surface.SphereData) (Result, error) {
	planeOffset := vector.Dot(vector.Sub(sd.Center, cd.Center), cd.Normal)
	distSquared := efloat.Mul(planeOffset, planeOffset)
	radiusSquared := efloat.Mul(sd.Radius, sd.Radius)

	sectionCenter := vector.Add(sd.Center, vector.ScaleE(cd.Normal, efloat.Neg(planeOffset)))
	if efloat.Equal(distSquared, radiusSquared) {
		if circleContains(cd, sectionCenter) {
			return point(sectionCenter), nil
		}
		return none(), nil
	}

	cmp := efloat.Cmp(distSquared, radiusSquared)
	if cmp == efloat.Indeterminate {
		return Result{}, errs.New(errs.NumericalError, "intersect: circle-sphere plane distance indeterminate against sphere radius")
	}
	if cmp == efloat.Greater {
		return none(), nil
	}

	sectionRadiusSquared := efloat.Sub(radiusSquared, distSquared)
	sp, err := efloat.NewSemiPositive(sectionRadiusSquared)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: circle-sphere section radius indeterminate near zero")
	}
	sectionRadius := sp.Sqrt().Value()

	u, _ := circleBasis(cd)
	section, err := curve.NewCircle(sectionCenter, cd.Normal, u, sectionRadius)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: circle-sphere section circle degenerate")
	}

	circCurve := curve.Curve{Kind: curve.KindCircle, Data: cd}
	res, err := circleCircle(cfg, section, section.Data.(curve.CircleData), circCurve, cd)
	if err != nil {
		return Result{}, err
	}
	return filterResultByCurveBound(circCurve, lo, hi, res)
}

// filterResultByCurveBound re-checks a Result's point(s) against an
// arc bound, downgrading Points to Point or None as points fall
// outside the bound (a Curve result, the whole-circle coincidence
// case, passes through unfiltered: callers compare it against their
// own edge bounds downstream, same as pkg/bisect's fallback callers do).
func filterResultByCurveBound(c curve.Curve, lo, hi *vector.Vec, res Result) (Result, error) {
	if lo == nil || hi == nil || res.Kind == KindCurve || res.Kind == KindNone {
		return res, nil
	}
	var pts []vector.Vec
	if res.Kind == KindPoint || res.Kind == KindPoints {
		pts = append(pts, res.P)
	}
	if res.Kind == KindPoints {
		pts = append(pts, res.Q)
	}
	kept, err := filterByCurveBound(c, lo, hi, pts)
	if err != nil {
		return Result{}, err
	}
	return pointsResult(kept), nil
}

// circleBasis exposes pkg/curve's unexported basis by reconstructing
// it from the public invariant circle.go documents: RefDirection and
// Cross(Normal, RefDirection) form the in-plane basis.
func circleBasis(d curve.CircleData) (u, v vector.Vec) {
	return d.RefDirection, vector.Cross(d.Normal, d.RefDirection)
}
