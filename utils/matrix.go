package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Set(i, j int, val float64) { m.M.Set(i, j, val) }

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		data   = m.M.RawMatrix().Data
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			R.M.Set(j, i, m.M.At(i, j))
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return
}

func (m Matrix) MulVec(v Vector) (R Vector) { // Does not change receiver
	var (
		nr, _ = m.Dims()
	)
	R = NewVector(nr)
	R.V.MulVec(m.M, v.V)
	return
}

// Chainable methods, change the receiver
func (m Matrix) Scale(a float64) Matrix {
	m.M.Scale(a, m.M)
	return m
}

func (m Matrix) Add(A Matrix) Matrix {
	m.M.Add(m.M, A.M)
	return m
}

func (m Matrix) Apply(f func(float64) float64) Matrix {
	var (
		data = m.M.RawMatrix().Data
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return m
}

func (m Matrix) Max() (max float64) {
	var (
		data = m.M.RawMatrix().Data
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

func (m Matrix) Min() (min float64) {
	var (
		data = m.M.RawMatrix().Data
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) SumRow(i int) (s float64) {
	var (
		_, nc = m.Dims()
	)
	for j := 0; j < nc; j++ {
		s += m.M.At(i, j)
	}
	return
}

func (m Matrix) SumCol(j int) (s float64) {
	var (
		nr, _ = m.Dims()
	)
	for i := 0; i < nr; i++ {
		s += m.M.At(i, j)
	}
	return
}

// LUSolve solves m * x = b for square m using an LU factorization.
// A non-invertible m is reported via the returned error, not a panic,
// so callers can map it onto their own failure taxonomy.
func LUSolve(A mat.Matrix, b []float64) (x []float64, err error) {
	var (
		nr, nc = A.Dims()
		lu     mat.LU
	)
	if nr != nc {
		err = fmt.Errorf("matrix must be square to solve, have %d x %d", nr, nc)
		return
	}
	if nr != len(b) {
		err = fmt.Errorf("dimension mismatch in solve: matrix is %d x %d, rhs is %d", nr, nc, len(b))
		return
	}
	lu.Factorize(A)
	X := mat.NewVecDense(nr, nil)
	if err = lu.SolveVecTo(X, false, mat.NewVecDense(nr, b)); err != nil {
		return
	}
	x = X.RawVector().Data
	return
}
