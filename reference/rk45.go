package reference

import (
	"fmt"
	"math"

	"github.com/notargets/gocolloc/ode"
)

// Dormand-Prince coefficients (RK45)
var (
	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// Stats reports the work performed by one adaptive integration.
type Stats struct {
	Steps        int
	Rejected     int
	Evaluations  int
	LastStepSize float64
}

// DormandPrince is a variable-step embedded RK45 integrator, used as
// the independent reference the collocation integrator is validated
// against. The zero value uses the defaults below.
type DormandPrince struct {
	Atol        float64 // absolute error tolerance, DefaultAtol if 0
	Rtol        float64 // relative error tolerance, DefaultRtol if 0
	InitialStep float64 // first step size, (tf-t0)/100 if 0
	MaxSteps    int     // step budget, DefaultMaxSteps if 0
}

const (
	DefaultAtol     = 1.e-10
	DefaultRtol     = 1.e-8
	DefaultMaxSteps = 100000

	safety   = 0.9
	minScale = 0.2
	maxScale = 10.0
)

// Integrate advances sys from (t0, x0) to tf with embedded 4th/5th
// order error control, shrinking rejected steps and growing accepted
// ones. It fails if the step budget runs out or the step size
// underflows before reaching tf.
func (dp DormandPrince) Integrate(sys ode.System, x0, p []float64, t0, tf float64) (xf []float64, stats Stats, err error) {
	var (
		n        = sys.NX()
		atol     = dp.Atol
		rtol     = dp.Rtol
		maxSteps = dp.MaxSteps
		dt       = dp.InitialStep
	)
	if atol == 0 {
		atol = DefaultAtol
	}
	if rtol == 0 {
		rtol = DefaultRtol
	}
	if maxSteps == 0 {
		maxSteps = DefaultMaxSteps
	}
	if dt == 0 {
		dt = (tf - t0) / 100.
	}
	minStep := 1.e-14 * (tf - t0)

	var (
		x  = make([]float64, n)
		xs = [6][]float64{}
		k  = [7][]float64{}
	)
	copy(x, x0)
	for i := range xs {
		xs[i] = make([]float64, n)
	}
	for i := range k {
		k[i] = make([]float64, n)
	}

	t := t0
	for t < tf {
		if stats.Steps+stats.Rejected >= maxSteps {
			err = fmt.Errorf("reference integrator exceeded %d steps at t = %g", maxSteps, t)
			return
		}
		if tf-t <= minStep {
			// Remaining interval is below float resolution.
			break
		}
		if dt > tf-t {
			dt = tf - t
		}
		if dt < minStep {
			err = fmt.Errorf("reference integrator step size underflow at t = %g", t)
			return
		}

		sys.Derive(k[0], x, p)
		for i := 0; i < n; i++ {
			xs[0][i] = x[i] + dt*b21*k[0][i]
		}
		sys.Derive(k[1], xs[0], p)
		for i := 0; i < n; i++ {
			xs[1][i] = x[i] + dt*(b31*k[0][i]+b32*k[1][i])
		}
		sys.Derive(k[2], xs[1], p)
		for i := 0; i < n; i++ {
			xs[2][i] = x[i] + dt*(b41*k[0][i]+b42*k[1][i]+b43*k[2][i])
		}
		sys.Derive(k[3], xs[2], p)
		for i := 0; i < n; i++ {
			xs[3][i] = x[i] + dt*(b51*k[0][i]+b52*k[1][i]+b53*k[2][i]+b54*k[3][i])
		}
		sys.Derive(k[4], xs[3], p)
		for i := 0; i < n; i++ {
			xs[4][i] = x[i] + dt*(b61*k[0][i]+b62*k[1][i]+b63*k[2][i]+b64*k[3][i]+b65*k[4][i])
		}
		sys.Derive(k[5], xs[4], p)
		for i := 0; i < n; i++ {
			xs[5][i] = x[i] + dt*(c1*k[0][i]+c3*k[2][i]+c4*k[3][i]+c5*k[4][i]+c6*k[5][i])
		}
		sys.Derive(k[6], xs[5], p)
		stats.Evaluations += 7

		errMax := 0.0
		for i := 0; i < n; i++ {
			errEst := dt * (dc1*k[0][i] + dc3*k[2][i] + dc4*k[3][i] + dc5*k[4][i] + dc6*k[5][i] + dc7*k[6][i])
			scale := atol + rtol*math.Max(math.Abs(x[i]), math.Abs(xs[5][i]))
			errMax = math.Max(errMax, math.Abs(errEst)/scale)
		}

		if errMax <= 1 {
			t += dt
			copy(x, xs[5])
			stats.Steps++
			stats.LastStepSize = dt
			if errMax > 0 {
				dt *= math.Min(maxScale, safety*math.Pow(errMax, -0.2))
			} else {
				dt *= maxScale
			}
		} else {
			stats.Rejected++
			dt *= math.Max(minScale, safety*math.Pow(errMax, -0.25))
		}
	}

	xf = x
	return
}
