package poly

import "github.com/chazu/geop/pkg/efloat"

// Bernstein is an ordered sequence of coefficients beta_0, ..., beta_n
// over the Bernstein basis on [0, 1]: p(t) = sum_i beta_i * B_{i,n}(t).
type Bernstein struct {
	Coeffs []efloat.EFloat
}

// NewBernstein builds a Bernstein polynomial from its control
// coefficients. Degree is len(coeffs)-1; no trailing-zero stripping is
// performed (unlike Monomial) since a zero leading/trailing Bernstein
// coefficient does not imply a lower-degree polynomial in this basis.
func NewBernstein(coeffs []efloat.EFloat) Bernstein {
	out := make([]efloat.EFloat, len(coeffs))
	copy(out, coeffs)
	return Bernstein{Coeffs: out}
}

// Degree returns n, the Bernstein polynomial's degree.
func (b Bernstein) Degree() int {
	return len(b.Coeffs) - 1
}

// Eval evaluates p(t) via de Casteljau's algorithm (spec §4.2):
// repeatedly blend adjacent points with parameter t until one remains.
func (b Bernstein) Eval(t efloat.EFloat) efloat.EFloat {
	return deCasteljau(b.Coeffs, t)
}

// deCasteljau runs the de Casteljau reduction on a coefficient slice,
// returning the final blended value. Shared by Eval and Subdivide.
func deCasteljau(coeffs []efloat.EFloat, t efloat.EFloat) efloat.EFloat {
	n := len(coeffs)
	if n == 0 {
		return efloat.Zero()
	}
	work := make([]efloat.EFloat, n)
	copy(work, coeffs)
	oneMinusT := efloat.Sub(efloat.New(1), t)
	for j := 1; j < n; j++ {
		for k := 0; k < n-j; k++ {
			work[k] = efloat.Add(efloat.Mul(oneMinusT, work[k]), efloat.Mul(t, work[k+1]))
		}
	}
	return work[0]
}

// deCasteljauTriangle runs de Casteljau but returns the full triangle
// of intermediate rows (row 0 is the input, the last row is the single
// evaluated point). Subdivide reads the left/right hulls off the
// triangle's diagonal and anti-diagonal.
func deCasteljauTriangle(coeffs []efloat.EFloat, t efloat.EFloat) [][]efloat.EFloat {
	n := len(coeffs)
	rows := make([][]efloat.EFloat, n)
	rows[0] = append([]efloat.EFloat(nil), coeffs...)
	oneMinusT := efloat.Sub(efloat.New(1), t)
	for j := 1; j < n; j++ {
		prev := rows[j-1]
		row := make([]efloat.EFloat, n-j)
		for k := 0; k < n-j; k++ {
			row[k] = efloat.Add(efloat.Mul(oneMinusT, prev[k]), efloat.Mul(t, prev[k+1]))
		}
		rows[j] = row
	}
	return rows
}

// ToMonomial converts a Bernstein polynomial to the monomial basis
// using the binomial expansion of B_{i,n}(t) = C(n,i) t^i (1-t)^(n-i).
func (b Bernstein) ToMonomial() Monomial {
	n := b.Degree()
	out := make([]efloat.EFloat, n+1)
	for k := range out {
		out[k] = efloat.Zero()
	}
	for i := 0; i <= n; i++ {
		// B_{i,n}(t) expanded: C(n,i) * sum_{j=0}^{n-i} C(n-i,j) (-1)^j t^(i+j)
		coeffNi := binomial(n, i)
		for j := 0; j <= n-i; j++ {
			sign := 1.0
			if j%2 == 1 {
				sign = -1.0
			}
			term := coeffNi * binomial(n-i, j) * sign
			out[i+j] = efloat.Add(out[i+j], efloat.Scale(b.Coeffs[i], term))
		}
	}
	return NewMonomial(out)
}

// FromMonomial converts a monomial polynomial to the Bernstein basis on
// [0, 1] of the requested degree n (n must be >= the monomial's degree;
// the polynomial is implicitly treated as degree n with zero leading
// coefficients). Uses the standard basis-change formula
// beta_i = sum_{j=0}^{i} C(i,j) / C(n,j) * c_j, for c_j the monomial
// coefficient of t^j (0 when j exceeds the monomial's degree).
func FromMonomial(m Monomial, n int) Bernstein {
	coeffs := make([]efloat.EFloat, n+1)
	get := func(j int) efloat.EFloat {
		if j < len(m.Coeffs) {
			return m.Coeffs[j]
		}
		return efloat.Zero()
	}
	for i := 0; i <= n; i++ {
		acc := efloat.Zero()
		for j := 0; j <= i; j++ {
			factor := binomial(i, j) / binomial(n, j)
			acc = efloat.Add(acc, efloat.Scale(get(j), factor))
		}
		coeffs[i] = acc
	}
	return Bernstein{Coeffs: coeffs}
}

// Elevate raises the polynomial's degree by r using the spec §4.2
// formula:
//
//	c_i^(n+r) = sum_{j=max(0,i-r)}^{min(n,i)} C(r,i-j)*C(n,j)/C(n+r,i) * c_j^n
//
// The resulting polynomial is pointwise identical to the original
// (spec §8 property 3).
func (b Bernstein) Elevate(r int) Bernstein {
	if r <= 0 {
		return NewBernstein(b.Coeffs)
	}
	n := b.Degree()
	newN := n + r
	out := make([]efloat.EFloat, newN+1)
	for i := 0; i <= newN; i++ {
		lo := i - r
		if lo < 0 {
			lo = 0
		}
		hi := i
		if hi > n {
			hi = n
		}
		denom := binomial(newN, i)
		acc := efloat.Zero()
		for j := lo; j <= hi; j++ {
			coeff := binomial(r, i-j) * binomial(n, j) / denom
			acc = efloat.Add(acc, efloat.Scale(b.Coeffs[j], coeff))
		}
		out[i] = acc
	}
	return Bernstein{Coeffs: out}
}

// Subdivide splits the curve at parameter t in [0, 1] into a left half
// (reparameterized over [0, t] -> [0, 1]) and a right half
// (reparameterized over [t, 1] -> [0, 1]), both sharing the break point
// p(t) as their shared endpoint. This is the de Casteljau subdivision
// of spec §4.2: the split is pointwise exact (spec §8 property 5).
func (b Bernstein) Subdivide(t efloat.EFloat) (left, right Bernstein) {
	rows := deCasteljauTriangle(b.Coeffs, t)
	n := len(b.Coeffs)
	leftCoeffs := make([]efloat.EFloat, n)
	rightCoeffs := make([]efloat.EFloat, n)
	for j := 0; j < n; j++ {
		leftCoeffs[j] = rows[j][0]
		rightCoeffs[n-1-j] = rows[j][len(rows[j])-1]
	}
	return Bernstein{Coeffs: leftCoeffs}, Bernstein{Coeffs: rightCoeffs}
}
