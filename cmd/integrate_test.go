package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gocolloc/colloc"
	"github.com/notargets/gocolloc/integrator"
	"github.com/notargets/gocolloc/model_problems"
	"github.com/notargets/gocolloc/nonlinear"
)

func TestDefaultParameters(t *testing.T) {
	// The shipped defaults must describe a runnable configuration.
	ip := defaultParameters()
	family, err := colloc.ParseFamily(ip.Family)
	assert.NoError(t, err)
	scheme, err := colloc.NewScheme(ip.Degree, family)
	assert.NoError(t, err)
	sys := model_problems.VanDerPol{}
	assert.Equal(t, sys.NX(), len(ip.X0))
	assert.Equal(t, sys.NP(), len(ip.P))
	_, err = integrator.NewFixedStep(scheme, sys, ip.Horizon, ip.Elements, nonlinear.Newton{})
	assert.NoError(t, err)
}
