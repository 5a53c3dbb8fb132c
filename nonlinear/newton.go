package nonlinear

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gocolloc/utils"
)

// Residual evaluates r(v), writing the result into r. len(r) == len(v).
type Residual func(r, v []float64)

// Jacobian writes dr/dv into J. The concrete J is selected by the
// configured Backend: a dense matrix or a sparse DOK. J arrives zeroed.
type Jacobian func(J Setter, v []float64)

// Setter is the assembly surface shared by mat.Dense and sparse.DOK.
type Setter interface {
	Set(i, j int, v float64)
	Dims() (r, c int)
}

// Backend selects the Jacobian storage used for the linear solve
// inside each Newton iteration.
type Backend uint8

const (
	Dense Backend = iota
	Sparse
)

func (b Backend) String() string {
	if b == Sparse {
		return "sparse"
	}
	return "dense"
}

// ConvergenceError reports that the iteration budget was exhausted
// before the residual reached tolerance.
type ConvergenceError struct {
	Iterations   int
	ResidualNorm float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("newton did not converge after %d iterations, residual norm %g", e.Iterations, e.ResidualNorm)
}

// SingularJacobianError reports that the linear solve inside an
// iteration could not be completed.
type SingularJacobianError struct {
	Iteration int
	Err       error
}

func (e *SingularJacobianError) Error() string {
	return fmt.Sprintf("singular jacobian in newton iteration %d: %v", e.Iteration, e.Err)
}

func (e *SingularJacobianError) Unwrap() error { return e.Err }

const (
	DefaultTol     = 1.e-10
	DefaultMaxIter = 25
	defaultFDEps   = 1.e-8
)

// Newton is a full-step Newton root finder for square systems
// r(v) = 0. The zero value uses the dense backend with defaults.
type Newton struct {
	Tol     float64 // max-norm residual tolerance, DefaultTol if 0
	MaxIter int     // iteration budget, DefaultMaxIter if 0
	Backend Backend
	FDEps   float64 // residual perturbation when no Jacobian is supplied
}

// Stats reports the work done by one Solve call.
type Stats struct {
	Iterations   int
	ResidualNorm float64
}

// Solve iterates v <- v - J^-1 r(v) from v0 until max|r| <= Tol. A nil
// jac falls back to a forward-difference Jacobian of the residual. v0
// is not modified. Failures are reported as ConvergenceError or
// SingularJacobianError, never retried here.
func (s Newton) Solve(v0 []float64, res Residual, jac Jacobian) (v []float64, stats Stats, err error) {
	var (
		n       = len(v0)
		r       = make([]float64, n)
		tol     = s.Tol
		maxIter = s.MaxIter
	)
	if tol == 0 {
		tol = DefaultTol
	}
	if maxIter == 0 {
		maxIter = DefaultMaxIter
	}
	v = make([]float64, n)
	copy(v, v0)

	for iter := 0; ; iter++ {
		res(r, v)
		stats.Iterations = iter
		stats.ResidualNorm = utils.NormInf(r)
		if stats.ResidualNorm <= tol && !utils.IsNan(r) {
			return
		}
		if iter >= maxIter || utils.IsNan(r) {
			err = &ConvergenceError{Iterations: iter, ResidualNorm: stats.ResidualNorm}
			return
		}

		J := s.newJacobianStore(n)
		if jac != nil {
			jac(J, v)
		} else {
			s.fdJacobian(J, res, v, r)
		}

		var dv []float64
		if dv, err = utils.LUSolve(s.factorizable(J), r); err != nil {
			err = &SingularJacobianError{Iteration: iter, Err: err}
			return
		}
		if utils.IsNan(dv) {
			err = &SingularJacobianError{Iteration: iter, Err: fmt.Errorf("non-finite newton step")}
			return
		}
		for i := range v {
			v[i] -= dv[i]
		}
	}
}

func (s Newton) newJacobianStore(n int) (J Setter) {
	switch s.Backend {
	case Sparse:
		J = sparse.NewDOK(n, n)
	default:
		J = mat.NewDense(n, n, nil)
	}
	return
}

// factorizable converts the assembly store into the form handed to the
// LU factorization: CSR for the sparse backend, the dense matrix as is.
func (s Newton) factorizable(J Setter) mat.Matrix {
	if dok, ok := J.(*sparse.DOK); ok {
		return dok.ToCSR()
	}
	return J.(*mat.Dense)
}

func (s Newton) fdJacobian(J Setter, res Residual, v, r0 []float64) {
	var (
		n   = len(v)
		r1  = make([]float64, n)
		eps = s.FDEps
	)
	if eps == 0 {
		eps = defaultFDEps
	}
	for j := 0; j < n; j++ {
		h := eps * (1. + math.Abs(v[j]))
		save := v[j]
		v[j] = save + h
		res(r1, v)
		v[j] = save
		for i := 0; i < n; i++ {
			J.Set(i, j, (r1[i]-r0[i])/h)
		}
	}
}
