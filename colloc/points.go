package colloc

import (
	"fmt"
	"strings"
)

// Family selects the placement of collocation points inside one finite
// element. Legendre points maximize quadrature accuracy, Radau points
// include the right endpoint and trade a little accuracy for stiff
// stability.
type Family uint8

const (
	Legendre Family = iota
	Radau
)

func (f Family) String() string {
	switch f {
	case Legendre:
		return "legendre"
	case Radau:
		return "radau"
	}
	return fmt.Sprintf("family(%d)", uint8(f))
}

// ParseFamily maps a configuration string onto a Family.
func ParseFamily(name string) (f Family, err error) {
	switch strings.ToLower(name) {
	case "legendre":
		f = Legendre
	case "radau":
		f = Radau
	default:
		err = &InvalidConfigurationError{Reason: fmt.Sprintf("unknown collocation family %q", name)}
	}
	return
}

// MaxTabulatedDegree is the highest degree with pre-tabulated points.
// Legendre points for higher degrees are generated by GaussLegendre;
// Radau points are only available from the tables.
const MaxTabulatedDegree = 5

// Gauss-Legendre points on [0,1], interior only, by degree. The leading
// tau=0 node of the element is prepended by Points.
var legendrePoints = map[int][]float64{
	1: {0.5},
	2: {0.21132486540518713, 0.78867513459481287},
	3: {0.11270166537925831, 0.5, 0.88729833462074169},
	4: {0.06943184420297371, 0.33000947820757187, 0.66999052179242813, 0.93056815579702629},
	5: {0.04691007703066800, 0.23076534494715845, 0.5, 0.76923465505284155, 0.95308992296933200},
}

// Radau IIA points on [0,1], interior plus the right endpoint, by degree.
var radauPoints = map[int][]float64{
	1: {1.0},
	2: {0.33333333333333333, 1.0},
	3: {0.15505102572168220, 0.64494897427831780, 1.0},
	4: {0.08858795951270395, 0.40946686444073471, 0.78765946176084706, 1.0},
	5: {0.05710419611451768, 0.27684301363812383, 0.58359043236891682, 0.86024013565621944, 1.0},
}

// Points returns the d+1 collocation points for one element, tau[0] = 0
// followed by the d family nodes in increasing order. Degree 0 is the
// degenerate single-node scheme.
func Points(degree int, family Family) (tau []float64, err error) {
	if degree < 0 {
		err = &InvalidConfigurationError{Reason: fmt.Sprintf("degree must be >= 0, have %d", degree)}
		return
	}
	if degree == 0 {
		tau = []float64{0}
		return
	}
	var nodes []float64
	switch family {
	case Legendre:
		if degree <= MaxTabulatedDegree {
			nodes = legendrePoints[degree]
		} else {
			nodes = GaussLegendre(degree)
		}
	case Radau:
		var ok bool
		if nodes, ok = radauPoints[degree]; !ok {
			err = &InvalidConfigurationError{Reason: fmt.Sprintf("radau points are tabulated up to degree %d, have %d", MaxTabulatedDegree, degree)}
			return
		}
	default:
		err = &InvalidConfigurationError{Reason: fmt.Sprintf("unknown collocation family %v", family)}
		return
	}
	tau = make([]float64, degree+1)
	copy(tau[1:], nodes)
	return
}
