package curve

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// LineData is an unbounded line: Origin + t*Direction, t in R.
// Direction need not be unit length.
type LineData struct {
	Origin    vector.Vec
	Direction vector.Vec
}

func (LineData) curveData() {}

// NewLine builds a Line, failing if Direction has a possibly-zero norm.
func NewLine(origin, direction vector.Vec) (Curve, error) {
	if _, err := efloat.NewNonZero(vector.Norm(direction)); err != nil {
		return Curve{}, errs.Wrap(err, "curve: line direction has possibly-zero norm")
	}
	return Curve{Kind: KindLine, Data: LineData{Origin: origin, Direction: direction}}, nil
}

// lineUnitDirection returns the line's normalized direction.
func lineUnitDirection(d LineData) vector.Vec {
	nz, err := efloat.NewNonZero(vector.Norm(d.Direction))
	if err != nil {
		// Unreachable: NewLine already validated this.
		panic("curve: line direction became degenerate: " + err.Error())
	}
	return vector.ScaleE(d.Direction, efloat.DivBy(efloat.New(1), nz))
}

func lineTransform(d LineData, t vector.Transform) (Curve, error) {
	origin, err := t.Apply(d.Origin)
	if err != nil {
		return Curve{}, errs.Wrap(err, "curve: line transform failed on origin")
	}
	direction := t.ApplyDirection(d.Direction)
	return NewLine(origin, direction)
}

func lineFlip(d LineData) LineData {
	return LineData{Origin: d.Origin, Direction: vector.Neg(d.Direction)}
}

func lineOnCurve(d LineData, p vector.Vec) bool {
	rel := vector.Sub(p, d.Origin)
	cr := vector.Cross(rel, d.Direction)
	return efloat.Equal(vector.NormSquared(cr), efloat.Zero())
}

func lineTangent(d LineData, _ vector.Vec) vector.Vec {
	return d.Direction
}

func lineDistance(d LineData, a, b vector.Vec) (efloat.EFloat, error) {
	unit := lineUnitDirection(d)
	return vector.Dot(vector.Sub(b, a), unit), nil
}

// resolveBoundedPair turns a possibly-nil endpoint pair into concrete
// points, substituting a point horizonDist beyond the known endpoint
// (along or against unit) when the other is nil, per spec §4.4's
// "horizon distance" totality rule for unbounded curve variants.
func resolveBoundedPair(unit vector.Vec, horizonDist float64, a, b *vector.Vec) (vector.Vec, vector.Vec, error) {
	horizon := vector.Scale(unit, horizonDist)
	switch {
	case a == nil && b == nil:
		return vector.Vec{}, vector.Vec{}, errs.New(errs.DomainError, "curve: interpolate needs at least one bound on an unbounded curve")
	case a == nil:
		return vector.Sub(*b, horizon), *b, nil
	case b == nil:
		return *a, vector.Add(*a, horizon), nil
	default:
		return *a, *b, nil
	}
}

func lineInterpolate(d LineData, cfg config.Config, a, b *vector.Vec, t efloat.EFloat) (vector.Vec, error) {
	unit := lineUnitDirection(d)
	pa, pb, err := resolveBoundedPair(unit, cfg.HorizonDist, a, b)
	if err != nil {
		return vector.Vec{}, err
	}
	return vector.Add(pa, vector.ScaleE(vector.Sub(pb, pa), t)), nil
}

func lineBetween(d LineData, m, a, b vector.Vec) (bool, error) {
	dab, _ := lineDistance(d, a, b)
	dam, _ := lineDistance(d, a, m)

	var lowOK, highOK efloat.Ordering
	if efloat.Cmp(dab, efloat.Zero()) != efloat.Less {
		lowOK = efloat.Cmp(dam, efloat.Zero())
		highOK = efloat.Cmp(dam, dab)
	} else {
		lowOK = efloat.Cmp(dam, dab)
		highOK = efloat.Cmp(dam, efloat.Zero())
	}
	if lowOK == efloat.Indeterminate || highOK == efloat.Indeterminate {
		return false, errs.New(errs.NumericalError, "curve: indeterminate between test on line")
	}
	return lowOK != efloat.Less && highOK != efloat.Greater, nil
}

func lineProject(d LineData, p vector.Vec) (vector.Vec, error) {
	unit := lineUnitDirection(d)
	t := vector.Dot(vector.Sub(p, d.Origin), unit)
	return vector.Add(d.Origin, vector.ScaleE(unit, t)), nil
}

func lineBoundingBox(d LineData, cfg config.Config, a, b *vector.Vec) (vector.BoundingBox, error) {
	unit := lineUnitDirection(d)
	pa, pb, err := resolveBoundedPair(unit, cfg.HorizonDist, a, b)
	if err != nil {
		return vector.BoundingBox{}, err
	}
	return vector.BoxFromPoints(pa, pb), nil
}
