package model_problems

import (
	"github.com/notargets/gocolloc/utils"
)

// VanDerPol is the forced Van der Pol oscillator augmented with a
// quadrature state accumulating x0^2 + x1^2 + p^2, the standard
// benchmark for implicit integrators:
//
//	dx0/dt = (1 - x1^2) x0 - x1 + p
//	dx1/dt = x0
//	dx2/dt = x0^2 + x1^2 + p^2
type VanDerPol struct{}

func (VanDerPol) NX() int { return 3 }
func (VanDerPol) NP() int { return 1 }

func (VanDerPol) Derive(xdot, x, p []float64) {
	xdot[0] = (1.-x[1]*x[1])*x[0] - x[1] + p[0]
	xdot[1] = x[0]
	xdot[2] = x[0]*x[0] + x[1]*x[1] + p[0]*p[0]
}

func (VanDerPol) JacobianX(J utils.Matrix, x, p []float64) {
	J.Set(0, 0, 1.-x[1]*x[1])
	J.Set(0, 1, -2.*x[1]*x[0]-1.)
	J.Set(0, 2, 0)
	J.Set(1, 0, 1)
	J.Set(1, 1, 0)
	J.Set(1, 2, 0)
	J.Set(2, 0, 2.*x[0])
	J.Set(2, 1, 2.*x[1])
	J.Set(2, 2, 0)
}

func (VanDerPol) JacobianP(J utils.Matrix, x, p []float64) {
	J.Set(0, 0, 1)
	J.Set(1, 0, 0)
	J.Set(2, 0, 2.*p[0])
}
