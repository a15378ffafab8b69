// Package poly implements the certified polynomial bases of spec §3.3
// and §4.2: monomial, Bernstein, B-spline, and NURBS polynomials, with
// evaluation, degree elevation, knot insertion, and subdivision.
package poly

import "github.com/chazu/geop/pkg/efloat"

// Monomial is an ordered sequence of coefficients c0, c1, ..., cn (low
// degree first): p(t) = c0 + c1*t + ... + cn*t^n. Trailing zero
// coefficients are stripped by NewMonomial.
type Monomial struct {
	Coeffs []efloat.EFloat
}

// NewMonomial builds a Monomial, stripping trailing-zero coefficients.
func NewMonomial(coeffs []efloat.EFloat) Monomial {
	n := len(coeffs)
	for n > 0 && efloat.Equal(coeffs[n-1], efloat.Zero()) {
		n--
	}
	out := make([]efloat.EFloat, n)
	copy(out, coeffs[:n])
	return Monomial{Coeffs: out}
}

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (m Monomial) Degree() int {
	return len(m.Coeffs) - 1
}

// Eval evaluates p(t) by Horner's method from the top coefficient down,
// widening certified bounds at every multiply-add.
func (m Monomial) Eval(t efloat.EFloat) efloat.EFloat {
	if len(m.Coeffs) == 0 {
		return efloat.Zero()
	}
	acc := m.Coeffs[len(m.Coeffs)-1]
	for i := len(m.Coeffs) - 2; i >= 0; i-- {
		acc = efloat.Add(efloat.Mul(acc, t), m.Coeffs[i])
	}
	return acc
}
