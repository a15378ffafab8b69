// Package vector implements the certified 3-D point/vector type (spec
// §3.2) and rigid/affine transforms built on top of it, plus the
// float64 fast-path linear solves (backed by gonum, the same numerics
// dependency the teacher's own sdfx geometry library uses) that feed
// an EFloat result back through the certified layer.
package vector

import (
	"fmt"

	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"gonum.org/v1/gonum/mat"
)

// Vec is a 3-D point or direction built from three certified scalars.
type Vec struct {
	X, Y, Z efloat.EFloat
}

// New builds a Vec from plain float64 coordinates (each definite).
func New(x, y, z float64) Vec {
	return Vec{X: efloat.New(x), Y: efloat.New(y), Z: efloat.New(z)}
}

// Zero is the origin.
func Zero() Vec { return New(0, 0, 0) }

func (v Vec) String() string {
	return fmt.Sprintf("(%s, %s, %s)", v.X, v.Y, v.Z)
}

// Add returns the certified sum of two vectors.
func Add(a, b Vec) Vec {
	return Vec{efloat.Add(a.X, b.X), efloat.Add(a.Y, b.Y), efloat.Add(a.Z, b.Z)}
}

// Sub returns the certified difference a - b.
func Sub(a, b Vec) Vec {
	return Vec{efloat.Sub(a.X, b.X), efloat.Sub(a.Y, b.Y), efloat.Sub(a.Z, b.Z)}
}

// Neg returns -v.
func Neg(a Vec) Vec {
	return Vec{efloat.Neg(a.X), efloat.Neg(a.Y), efloat.Neg(a.Z)}
}

// Scale returns k*v for a plain scalar k.
func Scale(a Vec, k float64) Vec {
	return Vec{efloat.Scale(a.X, k), efloat.Scale(a.Y, k), efloat.Scale(a.Z, k)}
}

// ScaleE returns k*v for a certified scalar k.
func ScaleE(a Vec, k efloat.EFloat) Vec {
	return Vec{efloat.Mul(a.X, k), efloat.Mul(a.Y, k), efloat.Mul(a.Z, k)}
}

// Dot returns the certified dot product a . b.
func Dot(a, b Vec) efloat.EFloat {
	return efloat.Add(efloat.Add(efloat.Mul(a.X, b.X), efloat.Mul(a.Y, b.Y)), efloat.Mul(a.Z, b.Z))
}

// Cross returns the certified cross product a x b.
func Cross(a, b Vec) Vec {
	return Vec{
		X: efloat.Sub(efloat.Mul(a.Y, b.Z), efloat.Mul(a.Z, b.Y)),
		Y: efloat.Sub(efloat.Mul(a.Z, b.X), efloat.Mul(a.X, b.Z)),
		Z: efloat.Sub(efloat.Mul(a.X, b.Y), efloat.Mul(a.Y, b.X)),
	}
}

// NormSquared returns the certified squared norm |v|^2.
func NormSquared(a Vec) efloat.EFloat {
	return Dot(a, a)
}

// Norm returns a certified bound on |v|. Cannot fail: NormSquared is
// always semi-positive.
func Norm(a Vec) efloat.EFloat {
	sq, err := efloat.NewSemiPositive(NormSquared(a))
	if err != nil {
		panic("vector: squared norm was negative, which cannot happen: " + err.Error())
	}
	return sq.Sqrt().Value()
}

// Equal reports whether a and b's coordinate intervals overlap on every
// axis (spec §3.1's "equality is intervals overlap", lifted componentwise).
func Equal(a, b Vec) bool {
	return efloat.Equal(a.X, b.X) && efloat.Equal(a.Y, b.Y) && efloat.Equal(a.Z, b.Z)
}

// IsNormalized reports whether v's squared norm's interval contains 1,
// per spec §3.2 ("A direction is normalized if its squared norm's
// interval contains 1").
func IsNormalized(a Vec) bool {
	return efloat.Equal(NormSquared(a), efloat.New(1))
}

// Angle returns the certified angle between a and b, in [0, pi].
// Fails if either vector has a possibly-zero norm (domain error) or if
// the cosine computation is out of acos's domain due to roundoff
// accumulation (surfaced as a NumericalError by Acos).
func Angle(a, b Vec) (efloat.EFloat, error) {
	na := Norm(a)
	nb := Norm(b)
	naNZ, err := efloat.NewNonZero(na)
	if err != nil {
		return efloat.EFloat{}, errs.Wrap(err, "vector.Angle: first vector has possibly-zero norm")
	}
	nbNZ, err := efloat.NewNonZero(nb)
	if err != nil {
		return efloat.EFloat{}, errs.Wrap(err, "vector.Angle: second vector has possibly-zero norm")
	}
	cos := efloat.DivBy(efloat.DivBy(Dot(a, b), naNZ), nbNZ)
	// Clamp into acos's domain; roundoff can push a unit cosine's
	// interval a hair outside [-1, 1] even though the true value can't be.
	if cos.Lower < -1 {
		cos.Lower = -1
	}
	if cos.Upper > 1 {
		cos.Upper = 1
	}
	angle, err := efloat.Acos(cos)
	if err != nil {
		return efloat.EFloat{}, errs.Wrap(err, "vector.Angle: acos of cosine interval failed")
	}
	return angle, nil
}

// solveLinear3 solves the 3x3 system M x = b using gonum's dense LU
// solver on plain float64s (the fast, uncertified path used to find a
// point on the line where two planes meet);
// the result is re-wrapped as an EFloat by the caller before it
// participates in any certified decision.
func solveLinear3(m [3][3]float64, b [3]float64) ([3]float64, error) {
	A := mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
	bv := mat.NewVecDense(3, b[:])
	var x mat.VecDense
	if err := x.SolveVec(A, bv); err != nil {
		return [3]float64{}, errs.Wrap(err, "vector: 3x3 linear solve failed (singular matrix)")
	}
	return [3]float64{x.AtVec(0), x.AtVec(1), x.AtVec(2)}, nil
}

// SolveLinear3 exposes the gonum-backed 3x3 solve for other packages
// (used by pkg/intersect to find a point on the line where two planes
// meet, in the plane-plane, circle-plane and non-coplanar circle-circle
// cases).
func SolveLinear3(m [3][3]float64, b [3]float64) ([3]float64, error) {
	return solveLinear3(m, b)
}
