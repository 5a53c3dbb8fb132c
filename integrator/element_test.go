package integrator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gocolloc/colloc"
	"github.com/notargets/gocolloc/model_problems"
	"github.com/notargets/gocolloc/nonlinear"
	"github.com/notargets/gocolloc/utils"
)

func TestElementDegenerate(t *testing.T) {
	// Degree 0 has no interior unknowns: the element is an explicit
	// copy of the initial state, whatever the right-hand side is.
	scheme, err := colloc.NewScheme(0, colloc.Legendre)
	assert.NoError(t, err)
	es := ElementSolver{Scheme: scheme}
	sys := model_problems.VanDerPol{}
	xf, _, stats, err := es.Solve(sys, []float64{0.3, -1, 2}, []float64{0.2}, 0.5, nil)
	assert.NoError(t, err)
	assert.Equal(t, []float64{0.3, -1, 2}, xf)
	assert.Equal(t, 0, stats.Iterations)
}

func TestElementPade(t *testing.T) {
	// One degree-d Gauss-Legendre element applied to dx/dt = a x is
	// the (d,d) Pade approximant of exp(a h).
	var (
		a  = -1.3
		h  = 0.3
		x0 = []float64{2}
	)
	sys := model_problems.NewLinear(utils.NewMatrix(1, 1, []float64{a}))
	// Degree 1: (1 + ah/2) / (1 - ah/2), the implicit midpoint rule
	{
		scheme, err := colloc.NewScheme(1, colloc.Legendre)
		assert.NoError(t, err)
		es := ElementSolver{Scheme: scheme}
		xf, _, _, err := es.Solve(sys, x0, nil, h, nil)
		assert.NoError(t, err)
		want := x0[0] * (1 + a*h/2) / (1 - a*h/2)
		assert.True(t, math.Abs(xf[0]-want) < 1.e-12)
	}
	// Degree 2: (1 + ah/2 + (ah)^2/12) / (1 - ah/2 + (ah)^2/12)
	{
		scheme, err := colloc.NewScheme(2, colloc.Legendre)
		assert.NoError(t, err)
		es := ElementSolver{Scheme: scheme}
		xf, _, _, err := es.Solve(sys, x0, nil, h, nil)
		assert.NoError(t, err)
		z := a * h
		want := x0[0] * (1 + z/2 + z*z/12) / (1 - z/2 + z*z/12)
		assert.True(t, math.Abs(xf[0]-want) < 1.e-9)
	}
}

func TestElementRotation(t *testing.T) {
	// dx0/dt = x1, dx1/dt = -x0 from (1, 0): xf = (cos h, -sin h).
	// One degree-3 Radau element carries local error O(h^6).
	var (
		h  = 0.05
		x0 = []float64{1, 0}
	)
	A := utils.NewMatrix(2, 2, []float64{
		0, 1,
		-1, 0,
	})
	sys := model_problems.NewLinear(A)
	scheme, err := colloc.NewScheme(3, colloc.Radau)
	assert.NoError(t, err)
	es := ElementSolver{Scheme: scheme}
	xf, v, _, err := es.Solve(sys, x0, nil, h, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3*2, len(v))
	assert.True(t, math.Abs(xf[0]-math.Cos(h)) < 1.e-8)
	assert.True(t, math.Abs(xf[1]+math.Sin(h)) < 1.e-8)
}

func TestElementSparseBackend(t *testing.T) {
	// Dense and sparse Newton backends resolve the same element.
	var (
		h  = 0.1
		x0 = []float64{0, 1, 0}
		p  = []float64{0.2}
	)
	sys := model_problems.VanDerPol{}
	scheme, err := colloc.NewScheme(3, colloc.Radau)
	assert.NoError(t, err)
	dense := ElementSolver{Scheme: scheme, Newton: nonlinear.Newton{Backend: nonlinear.Dense}}
	sparse := ElementSolver{Scheme: scheme, Newton: nonlinear.Newton{Backend: nonlinear.Sparse}}
	xfD, _, _, err := dense.Solve(sys, x0, p, h, nil)
	assert.NoError(t, err)
	xfS, _, _, err := sparse.Solve(sys, x0, p, h, nil)
	assert.NoError(t, err)
	for i := range xfD {
		assert.True(t, math.Abs(xfD[i]-xfS[i]) < 1.e-9)
	}
}
