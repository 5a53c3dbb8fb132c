package validation

import (
	"fmt"
	"math"
)

// Map is a full-horizon state-transition map (x0, p) -> xf. Both the
// fixed-step collocation integrator and the adaptive reference are
// driven through this shape so the harness stays ignorant of their
// internals.
type Map func(x0, p []float64) (xf []float64, err error)

// ToleranceSpec is the agreement criterion: a component passes when
// |test - ref| <= Abs + Rel*|ref|.
type ToleranceSpec struct {
	Abs float64
	Rel float64
}

func (t ToleranceSpec) within(test, ref float64) bool {
	return math.Abs(test-ref) <= t.Abs+t.Rel*math.Abs(ref)
}

// Report carries the outcome of one comparison run. On failure,
// Component, AbsDiff and RelDiff identify the worst offender.
type Report struct {
	Pass      bool
	Component int
	AbsDiff   float64
	RelDiff   float64
	Test      []float64
	Ref       []float64
}

func (r Report) String() string {
	if r.Pass {
		return fmt.Sprintf("PASS: max abs diff %.3e (component %d)", r.AbsDiff, r.Component)
	}
	return fmt.Sprintf("FAIL: component %d, abs diff %.3e, rel diff %.3e", r.Component, r.AbsDiff, r.RelDiff)
}

// Compare runs both maps on identical inputs and checks the final
// states elementwise against the tolerance.
func Compare(under, ref Map, x0, p []float64, tol ToleranceSpec) (rep Report, err error) {
	var test, want []float64
	if test, err = under(x0, p); err != nil {
		err = fmt.Errorf("integrator under test: %w", err)
		return
	}
	if want, err = ref(x0, p); err != nil {
		err = fmt.Errorf("reference integrator: %w", err)
		return
	}
	if len(test) != len(want) {
		err = fmt.Errorf("state dimension mismatch: %d vs %d", len(test), len(want))
		return
	}
	rep = Report{Pass: true, Test: test, Ref: want}
	var worst float64
	for i := range test {
		absDiff := math.Abs(test[i] - want[i])
		relDiff := absDiff / math.Max(math.Abs(want[i]), 1.e-300)
		if !tol.within(test[i], want[i]) {
			rep.Pass = false
		}
		// Track the worst component relative to the criterion so the
		// report points at the dominant disagreement.
		ratio := absDiff / (tol.Abs + tol.Rel*math.Abs(want[i]))
		if ratio >= worst {
			worst = ratio
			rep.Component = i
			rep.AbsDiff = absDiff
			rep.RelDiff = relDiff
		}
	}
	return
}

// PerturbationReport holds finite-difference directional derivatives
// d xf / d p[Param] of both maps and their worst disagreement.
type PerturbationReport struct {
	Pass      bool
	Param     int
	Delta     float64
	Component int
	MaxDiff   float64
	TestDeriv []float64
	RefDeriv  []float64
}

// PerturbationCheck perturbs one parameter by delta, recomputes both
// maps, and compares the resulting finite-difference directional
// derivatives under the tolerance. This is the brute-force consistency
// check for any sensitivity capability layered on later.
func PerturbationCheck(under, ref Map, x0, p []float64, param int, delta float64, tol ToleranceSpec) (rep PerturbationReport, err error) {
	if param < 0 || param >= len(p) {
		err = fmt.Errorf("parameter index %d out of range, have %d parameters", param, len(p))
		return
	}
	if delta == 0 {
		err = fmt.Errorf("perturbation delta must be nonzero")
		return
	}
	var testDeriv, refDeriv []float64
	if testDeriv, err = fdDerivative(under, x0, p, param, delta); err != nil {
		err = fmt.Errorf("integrator under test: %w", err)
		return
	}
	if refDeriv, err = fdDerivative(ref, x0, p, param, delta); err != nil {
		err = fmt.Errorf("reference integrator: %w", err)
		return
	}
	rep = PerturbationReport{Pass: true, Param: param, Delta: delta, TestDeriv: testDeriv, RefDeriv: refDeriv}
	for i := range testDeriv {
		diff := math.Abs(testDeriv[i] - refDeriv[i])
		if diff > rep.MaxDiff {
			rep.MaxDiff = diff
			rep.Component = i
		}
		if !tol.within(testDeriv[i], refDeriv[i]) {
			rep.Pass = false
		}
	}
	return
}

func fdDerivative(m Map, x0, p []float64, param int, delta float64) (deriv []float64, err error) {
	var base, pert []float64
	if base, err = m(x0, p); err != nil {
		return
	}
	pp := make([]float64, len(p))
	copy(pp, p)
	pp[param] += delta
	if pert, err = m(x0, pp); err != nil {
		return
	}
	deriv = make([]float64, len(base))
	for i := range base {
		deriv[i] = (pert[i] - base[i]) / delta
	}
	return
}
