package integrator

import (
	"fmt"

	"github.com/notargets/gocolloc/colloc"
	"github.com/notargets/gocolloc/nonlinear"
	"github.com/notargets/gocolloc/ode"
)

// IntegrationError wraps the first element-level failure of a
// fixed-step integration together with the element at which it
// occurred. Partial trajectories are discarded: the composed map is
// all-or-nothing.
type IntegrationError struct {
	Element int
	Err     error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("integration failed at element %d: %v", e.Element, e.Err)
}

func (e *IntegrationError) Unwrap() error { return e.Err }

// Stats aggregates solver work across one integration call.
type Stats struct {
	Elements         int
	NewtonIterations int
}

// FixedStep composes N identical collocation elements of size
// Horizon/N into a single (x0, p) -> xf map. It holds no mutable state
// between calls: distinct (x0, p) integrations may run concurrently
// over one shared scheme.
type FixedStep struct {
	Scheme    *colloc.Scheme
	Sys       ode.System
	Horizon   float64
	N         int
	Newton    nonlinear.Newton
	ColdStart bool // seed every element from its own x0 instead of the previous solution
}

// NewFixedStep validates the configuration up front so malformed
// setups fail before any element is solved.
func NewFixedStep(scheme *colloc.Scheme, sys ode.System, horizon float64, n int, newton nonlinear.Newton) (f *FixedStep, err error) {
	if scheme == nil {
		err = &colloc.InvalidConfigurationError{Reason: "nil collocation scheme"}
		return
	}
	if sys == nil {
		err = &colloc.InvalidConfigurationError{Reason: "nil right-hand side"}
		return
	}
	if n < 1 {
		err = &colloc.InvalidConfigurationError{Reason: fmt.Sprintf("element count must be >= 1, have %d", n)}
		return
	}
	if horizon <= 0 {
		err = &colloc.InvalidConfigurationError{Reason: fmt.Sprintf("horizon must be positive, have %g", horizon)}
		return
	}
	f = &FixedStep{Scheme: scheme, Sys: sys, Horizon: horizon, N: n, Newton: newton}
	return
}

// Integrate threads the end state of each element into the start state
// of the next, a strict sequential chain. Any element failure aborts
// the whole call with an IntegrationError carrying the element index.
func (f *FixedStep) Integrate(x0, p []float64) (xf []float64, stats Stats, err error) {
	var (
		nx = f.Sys.NX()
		h  = f.Horizon / float64(f.N)
		es = ElementSolver{Scheme: f.Scheme, Newton: f.Newton}
	)
	if len(x0) != nx {
		err = &colloc.InvalidConfigurationError{Reason: fmt.Sprintf("initial state has %d components, system expects %d", len(x0), nx)}
		return
	}
	if len(p) != f.Sys.NP() {
		err = &colloc.InvalidConfigurationError{Reason: fmt.Sprintf("parameter vector has %d components, system expects %d", len(p), f.Sys.NP())}
		return
	}

	X := make([]float64, nx)
	copy(X, x0)
	var vWarm []float64
	for i := 0; i < f.N; i++ {
		var (
			v      []float64
			nstats nonlinear.Stats
		)
		guess := vWarm
		if f.ColdStart {
			guess = nil
		}
		if X, v, nstats, err = es.Solve(f.Sys, X, p, h, guess); err != nil {
			err = &IntegrationError{Element: i, Err: err}
			xf = nil
			return
		}
		vWarm = v
		stats.Elements++
		stats.NewtonIterations += nstats.Iterations
	}
	xf = X
	return
}
