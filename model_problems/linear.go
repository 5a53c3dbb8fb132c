package model_problems

import (
	"github.com/notargets/gocolloc/utils"
)

// Linear is the constant-coefficient system dx/dt = A x, with no
// parameters. One collocation element of degree d applied to it
// reproduces a degree-2d rational approximation of exp(A h), which
// makes it the analytic yardstick for element accuracy.
type Linear struct {
	A utils.Matrix
}

func NewLinear(A utils.Matrix) (l Linear) {
	var (
		nr, nc = A.Dims()
	)
	if nr != nc {
		panic("linear system matrix must be square")
	}
	l = Linear{A: A}
	return
}

func (l Linear) NX() int {
	nr, _ := l.A.Dims()
	return nr
}

func (l Linear) NP() int { return 0 }

func (l Linear) Derive(xdot, x, p []float64) {
	var (
		n = len(x)
	)
	for i := 0; i < n; i++ {
		var acc float64
		for j := 0; j < n; j++ {
			acc += l.A.At(i, j) * x[j]
		}
		xdot[i] = acc
	}
}

func (l Linear) JacobianX(J utils.Matrix, x, p []float64) {
	var (
		n = len(x)
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			J.Set(i, j, l.A.At(i, j))
		}
	}
}

func (l Linear) JacobianP(J utils.Matrix, x, p []float64) {}
