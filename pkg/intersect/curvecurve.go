package intersect

import (
	"github.com/chazu/geop/pkg/bisect"
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// Curves intersects a (bounded, if aLo/aHi are non-nil, to the arc
// between them) against b, dispatching to the closed-form solver spec
// §4.6 names for the pair's kinds, or to the generic bisector of
// pkg/bisect for any other pairing.
func Curves(cfg config.Config, a curve.Curve, aLo, aHi *vector.Vec, b curve.Curve, bLo, bHi *vector.Vec) (Result, error) {
	switch {
	case a.Kind == curve.KindLine && b.Kind == curve.KindLine:
		return lineLine(cfg, a, a.Data.(curve.LineData), aLo, aHi, b, b.Data.(curve.LineData), bLo, bHi)
	case a.Kind == curve.KindCircle && b.Kind == curve.KindCircle:
		return circleCircle(cfg, a, a.Data.(curve.CircleData), b, b.Data.(curve.CircleData))
	case a.Kind == curve.KindLine && b.Kind == curve.KindCircle:
		return lineCircle(cfg, a.Data.(curve.LineData), aLo, aHi, b.Data.(curve.CircleData), bLo, bHi)
	case a.Kind == curve.KindCircle && b.Kind == curve.KindLine:
		return lineCircle(cfg, b.Data.(curve.LineData), bLo, bHi, a.Data.(curve.CircleData), aLo, aHi)
	case a.Kind == curve.KindLine && b.Kind == curve.KindEllipse:
		return lineEllipse(cfg, a.Data.(curve.LineData), aLo, aHi, b.Data.(curve.EllipseData), bLo, bHi)
	case a.Kind == curve.KindEllipse && b.Kind == curve.KindLine:
		return lineEllipse(cfg, b.Data.(curve.LineData), bLo, bHi, a.Data.(curve.EllipseData), aLo, aHi)
	default:
		return genericCurveFallback(cfg, a, aLo, aHi, b, bLo, bHi)
	}
}

// pointsClose reports whether p and q are the same point to certified
// precision, the same "distance squared is possibly zero" test
// circleOnCurve and friends use throughout pkg/curve.
func pointsClose(p, q vector.Vec) bool {
	return efloat.Equal(vector.NormSquared(vector.Sub(p, q)), efloat.Zero())
}

func isZeroVec(v vector.Vec) bool {
	return efloat.Equal(vector.NormSquared(v), efloat.Zero())
}

// lineLine solves p + t*r = q + u*s per spec §4.6: parallel and
// non-collinear gives None; collinear gives the shared line as a
// Curve (callers clip it against their own edge bounds, same as the
// split algorithms of spec §4.9 already do for any shared-support
// overlap); otherwise a single point, accepted only if it lies
// between the supplied bounds on whichever side supplies them.
//
// Adapted from the 2D cross-product construction of tdewolff/canvas's
// LineLine to 3D: the scalar "cross(r,s)" of the 2D formula becomes
// the vector Cross(r,s), and a coplanarity check (comparing the two
// candidate points obtained from each line's own parametrization)
// replaces the 2D case's implicit guarantee that two lines in a plane
// always meet when not parallel.
func lineLine(cfg config.Config, aCurve curve.Curve, ad curve.LineData, aLo, aHi *vector.Vec, bCurve curve.Curve, bd curve.LineData, bLo, bHi *vector.Vec) (Result, error) {
	p, r := ad.Origin, ad.Direction
	q, s := bd.Origin, bd.Direction
	pq := vector.Sub(q, p)
	crossRS := vector.Cross(r, s)

	if isZeroVec(crossRS) {
		if !isZeroVec(vector.Cross(pq, r)) {
			return none(), nil
		}
		return onCurve(aCurve), nil
	}

	denom, err := efloat.NewNonZero(vector.NormSquared(crossRS))
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: line-line cross product indeterminate near zero")
	}
	t := efloat.DivBy(vector.Dot(vector.Cross(pq, s), crossRS), denom)
	u := efloat.DivBy(vector.Dot(vector.Cross(pq, r), crossRS), denom)

	pt := vector.Add(p, vector.ScaleE(r, t))
	pt2 := vector.Add(q, vector.ScaleE(s, u))
	if !pointsClose(pt, pt2) {
		// Skew: the two lines' closest approach doesn't actually meet.
		return none(), nil
	}

	if aLo != nil && aHi != nil {
		ok, err := curve.Between(aCurve, pt, *aLo, *aHi)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return none(), nil
		}
	}
	if bLo != nil && bHi != nil {
		ok, err := curve.Between(bCurve, pt, *bLo, *bHi)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return none(), nil
		}
	}
	return point(pt), nil
}

// lineCircleRaw reduces a line-circle intersection to a quadratic,
// per spec §4.6, after first handling the case where the line isn't
// even confined to the circle's plane: if the line crosses the plane
// transversally it can meet the circle in at most the one point where
// it pierces the plane; if it runs parallel to the plane without lying
// in it, there is no intersection at all.
func lineCircleRaw(ld curve.LineData, cd curve.CircleData) ([]vector.Vec, error) {
	dn := vector.Dot(ld.Direction, cd.Normal)
	rel := vector.Sub(ld.Origin, cd.Center)
	planarOffset := vector.Dot(rel, cd.Normal)

	if !efloat.Equal(dn, efloat.Zero()) {
		dnNZ, err := efloat.NewNonZero(dn)
		if err != nil {
			return nil, errs.Wrap(err, "intersect: line-circle plane crossing indeterminate near zero")
		}
		t := efloat.DivBy(efloat.Neg(planarOffset), dnNZ)
		pt := vector.Add(ld.Origin, vector.ScaleE(ld.Direction, t))
		relPt := vector.Sub(pt, cd.Center)
		if efloat.Equal(vector.NormSquared(relPt), efloat.Mul(cd.Radius, cd.Radius)) {
			return []vector.Vec{pt}, nil
		}
		return nil, nil
	}

	if !efloat.Equal(planarOffset, efloat.Zero()) {
		return nil, nil
	}

	// The line lies entirely in the circle's plane: classic 2D
	// line-circle quadratic a*t^2 + b*t + c = 0.
	aCoef := vector.Dot(ld.Direction, ld.Direction)
	bCoef := efloat.Scale(vector.Dot(rel, ld.Direction), 2)
	cCoef := efloat.Sub(vector.Dot(rel, rel), efloat.Mul(cd.Radius, cd.Radius))
	return solveQuadraticPoints(ld, aCoef, bCoef, cCoef)
}

// solveQuadraticPoints solves aCoef*t^2 + bCoef*t + cCoef = 0 and
// evaluates the line at each real root.
func solveQuadraticPoints(ld curve.LineData, aCoef, bCoef, cCoef efloat.EFloat) ([]vector.Vec, error) {
	if _, err := efloat.NewNonZero(aCoef); err != nil {
		return nil, errs.Wrap(err, "intersect: quadratic's leading coefficient is possibly zero (degenerate direction)")
	}
	disc := efloat.Sub(efloat.Mul(bCoef, bCoef), efloat.Scale(efloat.Mul(aCoef, cCoef), 4))

	twoA := efloat.Scale(aCoef, 2)
	twoANZ, err := efloat.NewNonZero(twoA)
	if err != nil {
		return nil, errs.Wrap(err, "intersect: quadratic's doubled leading coefficient is possibly zero")
	}

	if efloat.Equal(disc, efloat.Zero()) {
		t := efloat.DivBy(efloat.Neg(bCoef), twoANZ)
		return []vector.Vec{vector.Add(ld.Origin, vector.ScaleE(ld.Direction, t))}, nil
	}

	discSP, err := efloat.NewSemiPositive(disc)
	if err != nil {
		if disc.Upper < 0 {
			return nil, nil
		}
		return nil, errs.Wrap(err, "intersect: quadratic discriminant indeterminate near zero")
	}
	root := discSP.Sqrt().Value()

	t1 := efloat.DivBy(efloat.Sub(efloat.Neg(bCoef), root), twoANZ)
	t2 := efloat.DivBy(efloat.Add(efloat.Neg(bCoef), root), twoANZ)
	return []vector.Vec{
		vector.Add(ld.Origin, vector.ScaleE(ld.Direction, t1)),
		vector.Add(ld.Origin, vector.ScaleE(ld.Direction, t2)),
	}, nil
}

// lineCircle filters lineCircleRaw's points by whichever side supplies
// bound points (an unbounded line or full circle accepts all roots).
func lineCircle(cfg config.Config, ld curve.LineData, lineLo, lineHi *vector.Vec, cd curve.CircleData, circLo, circHi *vector.Vec) (Result, error) {
	raw, err := lineCircleRaw(ld, cd)
	if err != nil {
		return Result{}, err
	}
	lineCurve := curve.Curve{Kind: curve.KindLine, Data: ld}
	circCurve := curve.Curve{Kind: curve.KindCircle, Data: cd}
	var kept []vector.Vec
	for _, p := range raw {
		if lineLo != nil && lineHi != nil {
			ok, err := curve.Between(lineCurve, p, *lineLo, *lineHi)
			if err != nil {
				return Result{}, err
			}
			if !ok {
				continue
			}
		}
		if circLo != nil && circHi != nil {
			ok, err := curve.Between(circCurve, p, *circLo, *circHi)
			if err != nil {
				return Result{}, err
			}
			if !ok {
				continue
			}
		}
		kept = append(kept, p)
	}
	return pointsResult(kept), nil
}

// lineEllipseRaw mirrors lineCircleRaw, substituting the ellipse's
// local (major, minor) coordinates for the circle's radius. Grounded
// on the same tdewolff/canvas LineEllipse shape (transform to the
// ellipse's unit-circle frame, solve the circle case, transform back),
// adapted here to solve directly in the scaled local frame instead of
// actually building a transform.
func lineEllipseRaw(ld curve.LineData, ed curve.EllipseData) ([]vector.Vec, error) {
	dn := vector.Dot(ld.Direction, ed.Normal)
	rel := vector.Sub(ld.Origin, ed.Center)
	planarOffset := vector.Dot(rel, ed.Normal)

	if !efloat.Equal(dn, efloat.Zero()) {
		dnNZ, err := efloat.NewNonZero(dn)
		if err != nil {
			return nil, errs.Wrap(err, "intersect: line-ellipse plane crossing indeterminate near zero")
		}
		t := efloat.DivBy(efloat.Neg(planarOffset), dnNZ)
		pt := vector.Add(ld.Origin, vector.ScaleE(ld.Direction, t))
		if ellipseContains(ed, pt) {
			return []vector.Vec{pt}, nil
		}
		return nil, nil
	}

	if !efloat.Equal(planarOffset, efloat.Zero()) {
		return nil, nil
	}

	majorLenNZ, err := efloat.NewNonZero(vector.Norm(ed.MajorAxis))
	if err != nil {
		return nil, errs.Wrap(err, "intersect: ellipse major axis degenerate")
	}
	minorLenNZ, err := efloat.NewNonZero(vector.Norm(ed.MinorAxis))
	if err != nil {
		return nil, errs.Wrap(err, "intersect: ellipse minor axis degenerate")
	}
	eu := vector.ScaleE(ed.MajorAxis, efloat.DivBy(efloat.New(1), majorLenNZ))
	ev := vector.ScaleE(ed.MinorAxis, efloat.DivBy(efloat.New(1), minorLenNZ))

	x0 := efloat.DivBy(vector.Dot(rel, eu), majorLenNZ)
	y0 := efloat.DivBy(vector.Dot(rel, ev), minorLenNZ)
	dx := efloat.DivBy(vector.Dot(ld.Direction, eu), majorLenNZ)
	dy := efloat.DivBy(vector.Dot(ld.Direction, ev), minorLenNZ)

	aCoef := efloat.Add(efloat.Mul(dx, dx), efloat.Mul(dy, dy))
	bCoef := efloat.Scale(efloat.Add(efloat.Mul(x0, dx), efloat.Mul(y0, dy)), 2)
	cCoef := efloat.Sub(efloat.Add(efloat.Mul(x0, x0), efloat.Mul(y0, y0)), efloat.New(1))
	return solveQuadraticPoints(ld, aCoef, bCoef, cCoef)
}

func ellipseContains(ed curve.EllipseData, p vector.Vec) bool {
	rel := vector.Sub(p, ed.Center)
	majorLenNZ, err := efloat.NewNonZero(vector.Norm(ed.MajorAxis))
	if err != nil {
		return false
	}
	minorLenNZ, err := efloat.NewNonZero(vector.Norm(ed.MinorAxis))
	if err != nil {
		return false
	}
	x := efloat.DivBy(vector.Dot(rel, vector.ScaleE(ed.MajorAxis, efloat.DivBy(efloat.New(1), majorLenNZ))), majorLenNZ)
	y := efloat.DivBy(vector.Dot(rel, vector.ScaleE(ed.MinorAxis, efloat.DivBy(efloat.New(1), minorLenNZ))), minorLenNZ)
	sum := efloat.Add(efloat.Mul(x, x), efloat.Mul(y, y))
	return efloat.Equal(sum, efloat.New(1))
}

func lineEllipse(cfg config.Config, ld curve.LineData, lineLo, lineHi *vector.Vec, ed curve.EllipseData, ellLo, ellHi *vector.Vec) (Result, error) {
	raw, err := lineEllipseRaw(ld, ed)
	if err != nil {
		return Result{}, err
	}
	lineCurve := curve.Curve{Kind: curve.KindLine, Data: ld}
	ellCurve := curve.Curve{Kind: curve.KindEllipse, Data: ed}
	var kept []vector.Vec
	for _, p := range raw {
		if lineLo != nil && lineHi != nil {
			ok, err := curve.Between(lineCurve, p, *lineLo, *lineHi)
			if err != nil {
				return Result{}, err
			}
			if !ok {
				continue
			}
		}
		if ellLo != nil && ellHi != nil {
			ok, err := curve.Between(ellCurve, p, *ellLo, *ellHi)
			if err != nil {
				return Result{}, err
			}
			if !ok {
				continue
			}
		}
		kept = append(kept, p)
	}
	return pointsResult(kept), nil
}

// normalsParallel reports whether a and b point along the same axis,
// the first half of the coplanarity test circleCircle runs before
// deciding between the coplanar and non-coplanar branches.
func normalsParallel(a, b vector.Vec) bool {
	return isZeroVec(vector.Cross(a, b))
}

func circleContains(d curve.CircleData, p vector.Vec) bool {
	rel := vector.Sub(p, d.Center)
	return efloat.Equal(vector.NormSquared(rel), efloat.Mul(d.Radius, d.Radius))
}

// circleCircle implements spec §4.6's circle-circle rule. Coplanar
// circles reduce to the classical 2D case (same center: whole circle
// or None by radius; else tangent/two-point/disjoint by comparing the
// center distance against the radius sum and difference). Non-coplanar
// circles reduce to their planes' intersection line, then to
// line-circle against one circle with the result points checked
// against the other (spec: "non-coplanar -> reduce to plane-plane +
// circle").
func circleCircle(cfg config.Config, aCurve curve.Curve, a curve.CircleData, bCurve curve.Curve, b curve.CircleData) (Result, error) {
	if !normalsParallel(a.Normal, b.Normal) {
		return circleCircleNonCoplanar(cfg, a, b)
	}
	samePlane := efloat.Equal(vector.Dot(vector.Sub(b.Center, a.Center), a.Normal), efloat.Zero())
	if !samePlane {
		return none(), nil
	}
	return circleCircleCoplanar(aCurve, a, b)
}

func circleCircleCoplanar(aCurve curve.Curve, a, b curve.CircleData) (Result, error) {
	centerDist := vector.Norm(vector.Sub(b.Center, a.Center))

	if pointsClose(a.Center, b.Center) {
		if efloat.Equal(a.Radius, b.Radius) {
			return onCurve(aCurve), nil
		}
		return none(), nil
	}

	sumR := efloat.Add(a.Radius, b.Radius)
	diffR := efloat.Abs(efloat.Sub(a.Radius, b.Radius))
	lowOK := efloat.Cmp(diffR, centerDist)
	highOK := efloat.Cmp(centerDist, sumR)
	if lowOK == efloat.Greater || highOK == efloat.Greater {
		return none(), nil
	}

	// Standard two-circle-in-a-plane construction: the radical line
	// meets the center line at distance a_dist from a.Center, and the
	// two intersection points sit +-h off that line along the plane's
	// second basis vector. At tangency (centerDist == sumR or diffR)
	// this naturally collapses to h == 0, so no separate tangent case
	// is needed: an indeterminate comparison of centerDist against
	// those bounds falls through to the hSquared == 0 check below.
	u, v := circleBasis2D(a, b)
	numerator := efloat.Add(efloat.Mul(a.Radius, a.Radius), efloat.Sub(efloat.Mul(centerDist, centerDist), efloat.Mul(b.Radius, b.Radius)))
	aDist, err := efloat.Div(numerator, efloat.Scale(centerDist, 2))
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: circle-circle center distance indeterminate near zero")
	}
	hSquared := efloat.Sub(efloat.Mul(a.Radius, a.Radius), efloat.Mul(aDist, aDist))
	mid := vector.Add(a.Center, vector.ScaleE(u, aDist))
	if efloat.Equal(hSquared, efloat.Zero()) {
		return point(mid), nil
	}
	hSP, err := efloat.NewSemiPositive(hSquared)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: circle-circle chord height indeterminate near zero")
	}
	h := hSP.Sqrt().Value()

	p1 := vector.Add(mid, vector.ScaleE(v, h))
	p2 := vector.Sub(mid, vector.ScaleE(v, h))
	if efloat.Equal(h, efloat.Zero()) {
		return point(p1), nil
	}
	return points(p1, p2), nil
}

// circleBasis2D returns the unit vector from a's center toward b's
// center, and the in-plane vector perpendicular to it (consistent with
// a's own orientation), for the classic 2D two-circle construction.
func circleBasis2D(a, b curve.CircleData) (u, v vector.Vec) {
	dir := vector.Sub(b.Center, a.Center)
	nz, err := efloat.NewNonZero(vector.Norm(dir))
	if err != nil {
		panic("intersect: circle-circle basis requested for coincident centers: " + err.Error())
	}
	u = vector.ScaleE(dir, efloat.DivBy(efloat.New(1), nz))
	v = vector.Cross(a.Normal, u)
	return u, v
}

func circleCircleNonCoplanar(cfg config.Config, a, b curve.CircleData) (Result, error) {
	dir := vector.Cross(a.Normal, b.Normal)
	m := [3][3]float64{
		{a.Normal.X.Mid(), a.Normal.Y.Mid(), a.Normal.Z.Mid()},
		{b.Normal.X.Mid(), b.Normal.Y.Mid(), b.Normal.Z.Mid()},
		{dir.X.Mid(), dir.Y.Mid(), dir.Z.Mid()},
	}
	rhs := [3]float64{
		vector.Dot(a.Center, a.Normal).Mid(),
		vector.Dot(b.Center, b.Normal).Mid(),
		0,
	}
	sol, err := vector.SolveLinear3(m, rhs)
	if err != nil {
		return Result{}, errs.Wrap(err, "intersect: circle-circle plane intersection solve failed")
	}
	origin := vector.New(sol[0], sol[1], sol[2])

	raw, err := lineCircleRaw(curve.LineData{Origin: origin, Direction: dir}, a)
	if err != nil {
		return Result{}, err
	}
	var kept []vector.Vec
	for _, p := range raw {
		if circleContains(b, p) {
			kept = append(kept, p)
		}
	}
	return pointsResult(kept), nil
}

// genericCurveFallback hands off to pkg/bisect for any curve-kind
// pairing without a closed form (spec §4.6: "Any other pair: use the
// generic numerical bisector"), e.g. Circle-Ellipse, Circle-Helix,
// Ellipse-Ellipse (an explicit Open Question, spec §10), Helix-Helix.
// Unbounded bounds are only supported for the closed curve kinds
// (Circle, Ellipse): the whole curve is covered by splitting it into
// its four quarter-arcs so the bisector's recursive interval-narrowing
// has a finite starting interval on both sides.
func genericCurveFallback(cfg config.Config, a curve.Curve, aLo, aHi *vector.Vec, b curve.Curve, bLo, bHi *vector.Vec) (Result, error) {
	aIntervals, err := fullIntervals(cfg, a, aLo, aHi)
	if err != nil {
		return Result{}, err
	}
	bIntervals, err := fullIntervals(cfg, b, bLo, bHi)
	if err != nil {
		return Result{}, err
	}

	var all []vector.Vec
	for _, ia := range aIntervals {
		for _, ib := range bIntervals {
			pts, err := bisect.Curves(cfg, a, ia, b, ib)
			if err != nil {
				return Result{}, err
			}
			all = append(all, pts...)
		}
	}
	return pointsResult(dedupPoints(cfg, all)), nil
}

// fullIntervals returns the bisect.Interval(s) covering [lo, hi] when
// both are given, or (for a closed curve kind with no explicit bound)
// the four quarter-arc intervals that together cover the whole curve.
func fullIntervals(cfg config.Config, c curve.Curve, lo, hi *vector.Vec) ([]bisect.Interval, error) {
	if lo != nil && hi != nil {
		return []bisect.Interval{{Lo: *lo, Hi: *hi}}, nil
	}
	if lo != nil || hi != nil {
		return nil, errs.New(errs.DomainError, "intersect: curve intersection needs both bounds or neither")
	}
	if c.Kind != curve.KindCircle && c.Kind != curve.KindEllipse {
		return nil, errs.New(errs.DomainError, "intersect: unbounded curve needs explicit bounds for intersection")
	}
	quarters := make([]vector.Vec, 4)
	for i := range quarters {
		p, err := curve.Interpolate(c, cfg, nil, nil, efloat.New(float64(i)/4))
		if err != nil {
			return nil, err
		}
		quarters[i] = p
	}
	return []bisect.Interval{
		{Lo: quarters[0], Hi: quarters[1]},
		{Lo: quarters[1], Hi: quarters[2]},
		{Lo: quarters[2], Hi: quarters[3]},
		{Lo: quarters[3], Hi: quarters[0]},
	}, nil
}

func dedupPoints(cfg config.Config, pts []vector.Vec) []vector.Vec {
	threshold := cfg.DedupDistance()
	var kept []vector.Vec
	for _, p := range pts {
		duplicate := false
		for _, k := range kept {
			if vector.Norm(vector.Sub(p, k)).Mid() < threshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, p)
		}
	}
	return kept
}
