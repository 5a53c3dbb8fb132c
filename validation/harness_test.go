package validation

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gocolloc/colloc"
	"github.com/notargets/gocolloc/integrator"
	"github.com/notargets/gocolloc/model_problems"
	"github.com/notargets/gocolloc/nonlinear"
	"github.com/notargets/gocolloc/reference"
)

func vanDerPolMaps(t *testing.T, degree int, family colloc.Family, horizon float64, n int) (under, ref Map) {
	t.Helper()
	sys := model_problems.VanDerPol{}
	scheme, err := colloc.NewScheme(degree, family)
	assert.NoError(t, err)
	irk, err := integrator.NewFixedStep(scheme, sys, horizon, n, nonlinear.Newton{})
	assert.NoError(t, err)
	under = func(x0, p []float64) (xf []float64, err error) {
		xf, _, err = irk.Integrate(x0, p)
		return
	}
	dp := reference.DormandPrince{Atol: 1.e-12, Rtol: 1.e-10}
	ref = func(x0, p []float64) (xf []float64, err error) {
		xf, _, err = dp.Integrate(sys, x0, p, 0, horizon)
		return
	}
	return
}

func TestCompareVanDerPol(t *testing.T) {
	// The benchmark scenario: horizon 10, 100 elements, degree-4 Radau
	// points, x0 = [0,1,0], p = 0.2. Fixed-step and adaptive reference
	// must agree to 1e-6 on every component.
	under, ref := vanDerPolMaps(t, 4, colloc.Radau, 10., 100)
	rep, err := Compare(under, ref, []float64{0, 1, 0}, []float64{0.2}, ToleranceSpec{Abs: 1.e-6})
	assert.NoError(t, err)
	fmt.Printf("irk xf = %v\nref xf = %v\n%v\n", rep.Test, rep.Ref, rep)
	assert.True(t, rep.Pass)
	assert.True(t, rep.AbsDiff < 1.e-6)
}

func TestCompareFailure(t *testing.T) {
	// An unreachable tolerance must fail and identify the offender.
	under, ref := vanDerPolMaps(t, 2, colloc.Legendre, 10., 20)
	rep, err := Compare(under, ref, []float64{0, 1, 0}, []float64{0.2}, ToleranceSpec{Abs: 1.e-16})
	assert.NoError(t, err)
	assert.False(t, rep.Pass)
	assert.True(t, rep.AbsDiff > 1.e-16)
	assert.True(t, rep.Component >= 0 && rep.Component < 3)
}

func TestCompareErrorPropagation(t *testing.T) {
	// A failing integrator surfaces through the harness as an error,
	// not a report.
	boom := func(x0, p []float64) ([]float64, error) {
		return nil, fmt.Errorf("solver blew up")
	}
	ok := func(x0, p []float64) ([]float64, error) {
		return []float64{0}, nil
	}
	_, err := Compare(boom, ok, []float64{0}, nil, ToleranceSpec{Abs: 1})
	assert.Error(t, err)
	_, err = Compare(ok, boom, []float64{0}, nil, ToleranceSpec{Abs: 1})
	assert.Error(t, err)
}

func TestPerturbation(t *testing.T) {
	// Finite-difference directional derivatives w.r.t. p from both
	// integrators must agree within the discretization error.
	under, ref := vanDerPolMaps(t, 4, colloc.Radau, 10., 100)
	rep, err := PerturbationCheck(under, ref, []float64{0, 1, 0}, []float64{0.2}, 0, 0.01, ToleranceSpec{Abs: 1.e-3, Rel: 1.e-3})
	assert.NoError(t, err)
	assert.True(t, rep.Pass)
	assert.Equal(t, 3, len(rep.TestDeriv))
	// The quadrature state x2 accumulates p^2: its sensitivity is
	// well away from zero.
	assert.True(t, math.Abs(rep.TestDeriv[2]) > 0.1)

	_, err = PerturbationCheck(under, ref, []float64{0, 1, 0}, []float64{0.2}, 3, 0.01, ToleranceSpec{})
	assert.Error(t, err)
	_, err = PerturbationCheck(under, ref, []float64{0, 1, 0}, []float64{0.2}, 0, 0, ToleranceSpec{})
	assert.Error(t, err)
}
