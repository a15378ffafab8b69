package vector

import "github.com/chazu/geop/pkg/efloat"

// Transform is a 4x4 certified affine transform, applied to points as a
// homogeneous multiplication (spec §3.2). Row-major: M[row][col].
type Transform struct {
	M [4][4]efloat.EFloat
}

// Identity returns the identity transform.
func Identity() Transform {
	var t Transform
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				t.M[i][j] = efloat.New(1)
			} else {
				t.M[i][j] = efloat.New(0)
			}
		}
	}
	return t
}

// Translation returns a transform that translates by (x, y, z).
func Translation(x, y, z float64) Transform {
	t := Identity()
	t.M[0][3] = efloat.New(x)
	t.M[1][3] = efloat.New(y)
	t.M[2][3] = efloat.New(z)
	return t
}

// Scaling returns a transform that scales each axis independently.
// Non-uniform scaling is affine but not rigid.
func Scaling(x, y, z float64) Transform {
	t := Identity()
	t.M[0][0] = efloat.New(x)
	t.M[1][1] = efloat.New(y)
	t.M[2][2] = efloat.New(z)
	return t
}

// RotationX returns a rigid rotation about the X axis by theta radians.
func RotationX(theta float64) Transform {
	c, s := cosSin(theta)
	t := Identity()
	t.M[1][1], t.M[1][2] = c, efloat.Neg(s)
	t.M[2][1], t.M[2][2] = s, c
	return t
}

// RotationY returns a rigid rotation about the Y axis by theta radians.
func RotationY(theta float64) Transform {
	c, s := cosSin(theta)
	t := Identity()
	t.M[0][0], t.M[0][2] = c, s
	t.M[2][0], t.M[2][2] = efloat.Neg(s), c
	return t
}

// RotationZ returns a rigid rotation about the Z axis by theta radians.
func RotationZ(theta float64) Transform {
	c, s := cosSin(theta)
	t := Identity()
	t.M[0][0], t.M[0][1] = c, efloat.Neg(s)
	t.M[1][0], t.M[1][1] = s, c
	return t
}

func cosSin(theta float64) (efloat.EFloat, efloat.EFloat) {
	th := efloat.New(theta)
	return efloat.Cos(th), efloat.Sin(th)
}

// Mul composes two transforms: (a.Mul(b)) applied to a point equals a
// applied to (b applied to the point), i.e. Mul(a, b) = a * b.
func Mul(a, b Transform) Transform {
	var out Transform
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := efloat.New(0)
			for k := 0; k < 4; k++ {
				sum = efloat.Add(sum, efloat.Mul(a.M[i][k], b.M[k][j]))
			}
			out.M[i][j] = sum
		}
	}
	return out
}

// Apply transforms a point through homogeneous multiplication, with an
// implicit w=1, and dehomogenizes (divides by the resulting w).
// Fails if the resulting w component's interval is possibly zero.
func (t Transform) Apply(p Vec) (Vec, error) {
	coords := [3]efloat.EFloat{p.X, p.Y, p.Z}
	row := func(i int) efloat.EFloat {
		sum := t.M[i][3]
		for j := 0; j < 3; j++ {
			sum = efloat.Add(sum, efloat.Mul(t.M[i][j], coords[j]))
		}
		return sum
	}
	x, y, z := row(0), row(1), row(2)
	w := t.M[3][3]
	for j := 0; j < 3; j++ {
		w = efloat.Add(w, efloat.Mul(t.M[3][j], coords[j]))
	}
	wnz, err := efloat.NewNonZero(w)
	if err != nil {
		return Vec{}, err
	}
	return Vec{
		X: efloat.DivBy(x, wnz),
		Y: efloat.DivBy(y, wnz),
		Z: efloat.DivBy(z, wnz),
	}, nil
}

// ApplyDirection transforms a direction (vector, not point) by the
// transform's linear (upper-left 3x3) part only, ignoring translation.
func (t Transform) ApplyDirection(d Vec) Vec {
	coords := [3]efloat.EFloat{d.X, d.Y, d.Z}
	row := func(i int) efloat.EFloat {
		sum := efloat.New(0)
		for j := 0; j < 3; j++ {
			sum = efloat.Add(sum, efloat.Mul(t.M[i][j], coords[j]))
		}
		return sum
	}
	return Vec{X: row(0), Y: row(1), Z: row(2)}
}

// IsRigid reports whether the transform's linear part is (to interval
// tolerance) an orthonormal matrix with determinant +1 — i.e. a
// rotation plus translation, with no scaling, shear, or reflection.
// Curve/Surface.transform contracts require exactness for rigid
// motions (spec §4.4); non-rigid transforms are still legal (e.g. for
// degenerate-configuration callers that accept approximate results)
// but callers needing exactness should check this first.
func (t Transform) IsRigid() bool {
	cols := make([]Vec, 3)
	for j := 0; j < 3; j++ {
		cols[j] = Vec{X: t.M[0][j], Y: t.M[1][j], Z: t.M[2][j]}
	}
	for _, c := range cols {
		if !IsNormalized(c) {
			return false
		}
	}
	if !efloat.Equal(Dot(cols[0], cols[1]), efloat.New(0)) {
		return false
	}
	if !efloat.Equal(Dot(cols[0], cols[2]), efloat.New(0)) {
		return false
	}
	if !efloat.Equal(Dot(cols[1], cols[2]), efloat.New(0)) {
		return false
	}
	det := Cross(cols[0], cols[1])
	return efloat.Equal(Dot(det, cols[2]), efloat.New(1))
}
