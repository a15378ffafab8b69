package poly_test

import (
	"testing"

	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/poly"
	"github.com/stretchr/testify/assert"
)

func ef(xs ...float64) []efloat.EFloat {
	out := make([]efloat.EFloat, len(xs))
	for i, x := range xs {
		out[i] = efloat.New(x)
	}
	return out
}

func TestMonomialEvalHorner(t *testing.T) {
	// p(t) = 1 + 2t + 3t^2
	p := poly.NewMonomial(ef(1, 2, 3))
	got := p.Eval(efloat.New(2))
	assert.InDelta(t, 1+2*2+3*4, got.Mid(), 1e-9)
}

func TestMonomialStripsTrailingZeros(t *testing.T) {
	p := poly.NewMonomial(ef(1, 2, 0, 0))
	assert.Equal(t, 1, p.Degree())
}

func TestMonomialZeroPolynomialDegree(t *testing.T) {
	p := poly.NewMonomial(ef(0, 0, 0))
	assert.Equal(t, -1, p.Degree())
}
