package colloc

import (
	"fmt"

	"github.com/notargets/gocolloc/utils"
)

// InvalidConfigurationError reports a malformed collocation setup,
// detected at scheme-build time before any element is solved.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return "invalid collocation configuration: " + e.Reason
}

// Scheme holds the coefficients of one collocation element, derived
// once per (degree, points) choice and shared read-only by every
// element and every integrator built on it.
//
// C[j,r] is the derivative of the j-th Lagrange basis polynomial at
// node r (the collocation equation coefficients), D[j] is the value of
// the j-th basis polynomial at tau=1 (the continuity equation
// coefficients). Both depend only on the points, never on the problem
// dimension.
type Scheme struct {
	Degree int
	Tau    utils.Vector
	C      utils.Matrix
	D      utils.Vector
}

// NewScheme builds the scheme for a degree and point family.
func NewScheme(degree int, family Family) (s *Scheme, err error) {
	var tau []float64
	if tau, err = Points(degree, family); err != nil {
		return
	}
	return NewSchemeFromPoints(degree, tau)
}

// NewSchemeFromPoints builds the scheme from an explicit point set. The
// points must number degree+1, start at 0, lie within [0,1] and be
// strictly increasing; violations fail with InvalidConfigurationError
// because a repeated point makes the Lagrange basis singular.
func NewSchemeFromPoints(degree int, tau []float64) (s *Scheme, err error) {
	if degree < 0 {
		err = &InvalidConfigurationError{Reason: fmt.Sprintf("degree must be >= 0, have %d", degree)}
		return
	}
	if len(tau) != degree+1 {
		err = &InvalidConfigurationError{Reason: fmt.Sprintf("degree %d requires %d collocation points, have %d", degree, degree+1, len(tau))}
		return
	}
	if tau[0] != 0 {
		err = &InvalidConfigurationError{Reason: fmt.Sprintf("first collocation point must be 0, have %g", tau[0])}
		return
	}
	for j := 1; j < len(tau); j++ {
		if tau[j] <= tau[j-1] {
			err = &InvalidConfigurationError{Reason: fmt.Sprintf("collocation points must be strictly increasing, have tau[%d] = %g, tau[%d] = %g", j-1, tau[j-1], j, tau[j])}
			return
		}
	}
	if tau[degree] > 1 {
		err = &InvalidConfigurationError{Reason: fmt.Sprintf("collocation points must lie in [0,1], have tau[%d] = %g", degree, tau[degree])}
		return
	}

	var (
		np = degree + 1
		C  = utils.NewMatrix(np, np)
		D  = utils.NewVector(np)
	)
	for j := 0; j < np; j++ {
		// Continuity coefficient: the j-th basis polynomial evaluated
		// at the element's right endpoint.
		D.V.SetVec(j, lagrangeValue(tau, j, 1))
		// Collocation coefficients: its derivative at every node.
		for r := 0; r < np; r++ {
			C.Set(j, r, lagrangeDeriv(tau, j, tau[r]))
		}
	}
	s = &Scheme{
		Degree: degree,
		Tau:    utils.NewVector(np, tau),
		C:      C,
		D:      D,
	}
	return
}

// lagrangeValue evaluates the degree-len(tau)-1 Lagrange basis
// polynomial that is 1 at tau[j] and 0 at all other nodes.
func lagrangeValue(tau []float64, j int, t float64) (L float64) {
	L = 1
	for r := range tau {
		if r != j {
			L *= (t - tau[r]) / (tau[j] - tau[r])
		}
	}
	return
}

// lagrangeDeriv evaluates the derivative of the same basis polynomial
// by the product rule: one term per omitted factor.
func lagrangeDeriv(tau []float64, j int, t float64) (dL float64) {
	for m := range tau {
		if m == j {
			continue
		}
		term := 1. / (tau[j] - tau[m])
		for r := range tau {
			if r != j && r != m {
				term *= (t - tau[r]) / (tau[j] - tau[r])
			}
		}
		dL += term
	}
	return
}
