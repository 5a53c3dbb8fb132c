package integrator

import (
	"github.com/notargets/gocolloc/colloc"
	"github.com/notargets/gocolloc/nonlinear"
	"github.com/notargets/gocolloc/ode"
	"github.com/notargets/gocolloc/utils"
)

// ElementSolver resolves one finite element: it assembles the implicit
// collocation system for the d interior states and hands it to the
// Newton solver. The unknown vector V stacks X_1..X_d; X_0 is pinned
// to the element's initial state.
type ElementSolver struct {
	Scheme *colloc.Scheme
	Newton nonlinear.Newton
}

// Solve advances one element of size h from x0. vGuess seeds the
// Newton iteration with a previous element's interior states; nil
// tiles x0 across the collocation nodes. On success it returns the end
// state and the resolved interior states for warm-starting the next
// element. Solver failures are propagated untouched.
func (es ElementSolver) Solve(sys ode.System, x0, p []float64, h float64, vGuess []float64) (xf, v []float64, stats nonlinear.Stats, err error) {
	var (
		d  = es.Scheme.Degree
		nx = sys.NX()
		C  = es.Scheme.C
		D  = es.Scheme.D
	)
	if d == 0 {
		// Single node at tau=0: no interior unknowns, continuity
		// reduces to an explicit copy of the initial state.
		xf = make([]float64, nx)
		for i := range xf {
			xf[i] = D.AtVec(0) * x0[i]
		}
		return
	}

	guess := vGuess
	if guess == nil {
		guess = make([]float64, d*nx)
		for j := 0; j < d; j++ {
			copy(guess[j*nx:(j+1)*nx], x0)
		}
	}

	xdot := make([]float64, nx)
	res := func(r, v []float64) {
		// R_j = h f(X_j, P) - sum_r C[r,j] X_r, one nx block per
		// interior node j.
		for j := 1; j <= d; j++ {
			Xj := v[(j-1)*nx : j*nx]
			sys.Derive(xdot, Xj, p)
			for i := 0; i < nx; i++ {
				acc := h*xdot[i] - C.At(0, j)*x0[i]
				for k := 1; k <= d; k++ {
					acc -= C.At(k, j) * v[(k-1)*nx+i]
				}
				r[(j-1)*nx+i] = acc
			}
		}
	}

	var jac nonlinear.Jacobian
	if dsys, ok := sys.(ode.Differentiable); ok {
		Jf := utils.NewMatrix(nx, nx)
		jac = func(J nonlinear.Setter, v []float64) {
			for j := 1; j <= d; j++ {
				Xj := v[(j-1)*nx : j*nx]
				dsys.JacobianX(Jf, Xj, p)
				for i := 0; i < nx; i++ {
					row := (j-1)*nx + i
					for l := 0; l < nx; l++ {
						val := h * Jf.At(i, l)
						if l == i {
							val -= C.At(j, j)
						}
						J.Set(row, (j-1)*nx+l, val)
					}
					for k := 1; k <= d; k++ {
						if k == j {
							continue
						}
						if c := C.At(k, j); c != 0 {
							J.Set(row, (k-1)*nx+i, -c)
						}
					}
				}
			}
		}
	}

	if v, stats, err = es.Newton.Solve(guess, res, jac); err != nil {
		return
	}

	// Continuity: evaluate the interpolating polynomial at tau=1.
	xf = make([]float64, nx)
	for i := 0; i < nx; i++ {
		acc := D.AtVec(0) * x0[i]
		for j := 1; j <= d; j++ {
			acc += D.AtVec(j) * v[(j-1)*nx+i]
		}
		xf[i] = acc
	}
	return
}
