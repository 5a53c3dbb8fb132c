package colloc

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// GaussLegendre computes the n Gauss-Legendre nodes on [0,1] by the
// Golub-Welsch method: the nodes are the eigenvalues of the symmetric
// tridiagonal Jacobi matrix of the Legendre recurrence, shifted from
// [-1,1] onto the unit interval.
func GaussLegendre(n int) (nodes []float64) {
	if n == 1 {
		return []float64{0.5}
	}
	JJ := mat.NewSymDense(n, nil)
	for i := 1; i < n; i++ {
		fi := float64(i)
		b := fi / math.Sqrt(4.*fi*fi-1.)
		JJ.SetSym(i-1, i, b)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, false); !ok {
		panic("eigenvalue decomposition failed")
	}
	x := eig.Values(nil)
	sort.Float64s(x)
	nodes = make([]float64, n)
	for i, val := range x {
		nodes[i] = 0.5 * (1. + val)
	}
	return
}
