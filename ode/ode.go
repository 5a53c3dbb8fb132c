package ode

import (
	"math"

	"github.com/notargets/gocolloc/utils"
)

// System is a right-hand side xdot = f(x, p) in semi-explicit form.
// Implementations must not retain the argument slices.
type System interface {
	NX() int // state dimension
	NP() int // parameter dimension
	Derive(xdot, x, p []float64)
}

// Differentiable is a System that can also produce analytic first
// derivatives. The collocation element solver uses JacobianX to build
// the Newton matrix; JacobianP supports sensitivity cross-checks.
type Differentiable interface {
	System
	JacobianX(J utils.Matrix, x, p []float64) // df/dx, nx x nx
	JacobianP(J utils.Matrix, x, p []float64) // df/dp, nx x np
}

// Func adapts a plain function to the System interface.
type Func struct {
	Nx, Np int
	F      func(xdot, x, p []float64)
}

func (f Func) NX() int                     { return f.Nx }
func (f Func) NP() int                     { return f.Np }
func (f Func) Derive(xdot, x, p []float64) { f.F(xdot, x, p) }

// FiniteDifference wraps a System lacking analytic derivatives with
// forward-difference Jacobians so it satisfies Differentiable. Eps is
// the base perturbation, scaled per component by 1+|x_i|; zero selects
// a default near sqrt(machine epsilon).
type FiniteDifference struct {
	System
	Eps float64
}

const defaultFDEps = 1.e-8

func (fd FiniteDifference) eps() float64 {
	if fd.Eps > 0 {
		return fd.Eps
	}
	return defaultFDEps
}

func (fd FiniteDifference) JacobianX(J utils.Matrix, x, p []float64) {
	var (
		nx = fd.NX()
		f0 = make([]float64, nx)
		f1 = make([]float64, nx)
		xp = make([]float64, nx)
	)
	fd.Derive(f0, x, p)
	copy(xp, x)
	for j := 0; j < nx; j++ {
		h := fd.eps() * (1. + math.Abs(x[j]))
		xp[j] = x[j] + h
		fd.Derive(f1, xp, p)
		xp[j] = x[j]
		for i := 0; i < nx; i++ {
			J.Set(i, j, (f1[i]-f0[i])/h)
		}
	}
}

func (fd FiniteDifference) JacobianP(J utils.Matrix, x, p []float64) {
	var (
		nx = fd.NX()
		np = fd.NP()
		f0 = make([]float64, nx)
		f1 = make([]float64, nx)
		pp = make([]float64, np)
	)
	fd.Derive(f0, x, p)
	copy(pp, p)
	for j := 0; j < np; j++ {
		h := fd.eps() * (1. + math.Abs(p[j]))
		pp[j] = p[j] + h
		fd.Derive(f1, x, pp)
		pp[j] = p[j]
		for i := 0; i < nx; i++ {
			J.Set(i, j, (f1[i]-f0[i])/h)
		}
	}
}
