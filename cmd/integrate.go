/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gocolloc/InputParameters"
	"github.com/notargets/gocolloc/colloc"
	"github.com/notargets/gocolloc/integrator"
	"github.com/notargets/gocolloc/model_problems"
	"github.com/notargets/gocolloc/nonlinear"
	"github.com/notargets/gocolloc/reference"
	"github.com/notargets/gocolloc/validation"
)

// IntegrateCmd represents the integrate command
var IntegrateCmd = &cobra.Command{
	Use:   "integrate",
	Short: "Run the fixed-step collocation integrator against the adaptive reference",
	Long: `
Constructs the collocation scheme, chains the finite elements over the
horizon and compares the final state against the Dormand-Prince
reference integrator on the Van der Pol model problem,

gocolloc integrate -d 4 -f radau -n 100 -t 10`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := defaultParameters()
		if icFile, _ := cmd.Flags().GetString("inputParametersFile"); len(icFile) != 0 {
			data, err := ioutil.ReadFile(icFile)
			if err != nil {
				panic(err)
			}
			if err = ip.Parse(data); err != nil {
				panic(err)
			}
		} else {
			ip.Degree, _ = cmd.Flags().GetInt("degree")
			ip.Family, _ = cmd.Flags().GetString("family")
			ip.Elements, _ = cmd.Flags().GetInt("elements")
			ip.Horizon, _ = cmd.Flags().GetFloat64("horizon")
			ip.LinearSolver, _ = cmd.Flags().GetString("linearSolver")
			ip.ColdStart, _ = cmd.Flags().GetBool("coldStart")
		}
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start().Stop()
		}
		RunIntegrate(ip)
	},
}

func init() {
	rootCmd.AddCommand(IntegrateCmd)
	IntegrateCmd.Flags().IntP("degree", "d", 4, "collocation polynomial degree")
	IntegrateCmd.Flags().StringP("family", "f", "radau", "collocation point family: legendre or radau")
	IntegrateCmd.Flags().IntP("elements", "n", 100, "number of finite elements over the horizon")
	IntegrateCmd.Flags().Float64P("horizon", "t", 10., "integration horizon")
	IntegrateCmd.Flags().String("linearSolver", "dense", "newton linear solver backend: dense or sparse")
	IntegrateCmd.Flags().Bool("coldStart", false, "seed each element's newton solve from its own initial state")
	IntegrateCmd.Flags().StringP("inputParametersFile", "I", "", "YAML input parameters file, overrides the other flags")
	IntegrateCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

func defaultParameters() (ip *InputParameters.IntegratorParameters) {
	ip = &InputParameters.IntegratorParameters{
		Title:               "Van der Pol oscillator",
		Degree:              4,
		Family:              "radau",
		Horizon:             10.,
		Elements:            100,
		LinearSolver:        "dense",
		NewtonTolerance:     nonlinear.DefaultTol,
		NewtonMaxIterations: nonlinear.DefaultMaxIter,
		CompareTolerance:    1.e-6,
		X0:                  []float64{0, 1, 0},
		P:                   []float64{0.2},
	}
	return
}

func RunIntegrate(ip *InputParameters.IntegratorParameters) {
	ip.Print()

	family, err := colloc.ParseFamily(ip.Family)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	scheme, err := colloc.NewScheme(ip.Degree, family)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}

	backend := nonlinear.Dense
	if ip.LinearSolver == "sparse" {
		backend = nonlinear.Sparse
	}
	newton := nonlinear.Newton{
		Tol:     ip.NewtonTolerance,
		MaxIter: ip.NewtonMaxIterations,
		Backend: backend,
	}

	sys := model_problems.VanDerPol{}
	irk, err := integrator.NewFixedStep(scheme, sys, ip.Horizon, ip.Elements, newton)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	irk.ColdStart = ip.ColdStart

	ref := reference.DormandPrince{}
	var irkStats integrator.Stats
	var refStats reference.Stats
	underMap := func(x0, p []float64) (xf []float64, err error) {
		xf, irkStats, err = irk.Integrate(x0, p)
		return
	}
	refMap := func(x0, p []float64) (xf []float64, err error) {
		xf, refStats, err = ref.Integrate(sys, x0, p, 0, ip.Horizon)
		return
	}

	tol := validation.ToleranceSpec{Abs: ip.CompareTolerance, Rel: ip.CompareTolerance}
	rep, err := validation.Compare(underMap, refMap, ip.X0, ip.P, tol)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("irk_integrator xf = %v\n", rep.Test)
	fmt.Printf("ref_integrator xf = %v\n", rep.Ref)
	fmt.Printf("%s\n", rep)

	fmt.Printf("------------------\n")
	fmt.Printf("Fixed-step statistics:\n")
	fmt.Printf("elements = %d, newton iterations = %d\n", irkStats.Elements, irkStats.NewtonIterations)
	fmt.Printf("Reference statistics:\n")
	fmt.Printf("steps = %d, rejected = %d, evaluations = %d, last step = %8.2e\n",
		refStats.Steps, refStats.Rejected, refStats.Evaluations, refStats.LastStepSize)

	if len(ip.P) != 0 {
		ptol := validation.ToleranceSpec{Abs: 1.e-3, Rel: 1.e-3}
		prep, err := validation.PerturbationCheck(underMap, refMap, ip.X0, ip.P, 0, 0.01, ptol)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("d xf / d p[0] (fd) = %v, max diff vs reference = %.3e\n", prep.TestDeriv, prep.MaxDiff)
		rep.Pass = rep.Pass && prep.Pass
	}

	if !rep.Pass {
		os.Exit(1)
	}
}
