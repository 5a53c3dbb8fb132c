package colloc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheme(t *testing.T) {
	// Continuity coefficients reproduce the polynomial at the endpoint:
	// sum(D) = 1; the basis derivatives sum to zero at every node.
	{
		for _, family := range []Family{Legendre, Radau} {
			for d := 1; d <= MaxTabulatedDegree; d++ {
				s, err := NewScheme(d, family)
				assert.NoError(t, err)
				assert.Equal(t, d, s.Degree)
				assert.Equal(t, d+1, s.D.Len())
				assert.True(t, near(s.D.Sum(), 1))
				for r := 0; r <= d; r++ {
					assert.True(t, math.Abs(s.C.SumCol(r)) < 1.e-10)
				}
			}
		}
	}
	// Any valid point set, not just the built-in families
	{
		s, err := NewSchemeFromPoints(3, []float64{0, 0.25, 0.5, 1})
		assert.NoError(t, err)
		assert.True(t, near(s.D.Sum(), 1))
		for r := 0; r <= 3; r++ {
			assert.True(t, math.Abs(s.C.SumCol(r)) < 1.e-10)
		}
	}
	// Degree 1 closed forms
	{
		s, err := NewScheme(1, Legendre) // points [0, 0.5]
		assert.NoError(t, err)
		assert.True(t, near(s.D.AtVec(0), -1))
		assert.True(t, near(s.D.AtVec(1), 2))
		assert.True(t, near(s.C.At(0, 1), -2))
		assert.True(t, near(s.C.At(1, 1), 2))

		s, err = NewScheme(1, Radau) // points [0, 1]
		assert.NoError(t, err)
		assert.True(t, near(s.D.AtVec(0), 0))
		assert.True(t, near(s.D.AtVec(1), 1))
		assert.True(t, near(s.C.At(0, 1), -1))
		assert.True(t, near(s.C.At(1, 1), 1))
	}
	// Degenerate degree 0: a single node at 0, an explicit step
	{
		s, err := NewScheme(0, Radau)
		assert.NoError(t, err)
		assert.True(t, near(s.D.AtVec(0), 1))
		assert.True(t, near(s.C.At(0, 0), 0))
	}
	// Radau endpoint: the last continuity coefficient is exactly the
	// interpolant at tau=1, which is a node for this family.
	{
		for d := 1; d <= MaxTabulatedDegree; d++ {
			s, err := NewScheme(d, Radau)
			assert.NoError(t, err)
			assert.True(t, near(s.Tau.AtVec(d), 1))
			assert.True(t, math.Abs(s.D.AtVec(d)-1) < 1.e-10)
		}
	}
}

func TestSchemeRejections(t *testing.T) {
	var ice *InvalidConfigurationError
	// Point count must match degree+1
	{
		_, err := NewSchemeFromPoints(2, []float64{0, 0.5})
		assert.Error(t, err)
		assert.True(t, errors.As(err, &ice))
	}
	// Points must start at 0
	{
		_, err := NewSchemeFromPoints(1, []float64{0.1, 0.5})
		assert.Error(t, err)
		assert.True(t, errors.As(err, &ice))
	}
	// Duplicate points make the Lagrange basis singular
	{
		_, err := NewSchemeFromPoints(2, []float64{0, 0.5, 0.5})
		assert.Error(t, err)
		assert.True(t, errors.As(err, &ice))
	}
	// Points must be increasing and within [0,1]
	{
		_, err := NewSchemeFromPoints(2, []float64{0, 0.7, 0.3})
		assert.True(t, errors.As(err, &ice))
		_, err = NewSchemeFromPoints(2, []float64{0, 0.5, 1.5})
		assert.True(t, errors.As(err, &ice))
	}
	// Negative degree, unknown family, untabulated radau degree
	{
		_, err := NewScheme(-1, Legendre)
		assert.True(t, errors.As(err, &ice))
		_, err = NewScheme(3, Family(42))
		assert.True(t, errors.As(err, &ice))
		_, err = NewScheme(MaxTabulatedDegree+1, Radau)
		assert.True(t, errors.As(err, &ice))
	}
	// Legendre beyond the tables is generated, not rejected
	{
		s, err := NewScheme(7, Legendre)
		assert.NoError(t, err)
		assert.True(t, near(s.D.Sum(), 1))
	}
}

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily("Radau")
	assert.NoError(t, err)
	assert.Equal(t, Radau, f)
	f, err = ParseFamily("legendre")
	assert.NoError(t, err)
	assert.Equal(t, Legendre, f)
	_, err = ParseFamily("chebyshev")
	assert.Error(t, err)
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Max(math.Abs(a), 1) {
		l = true
	}
	return
}
