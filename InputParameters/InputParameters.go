package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type IntegratorParameters struct {
	Title               string    `yaml:"Title"`
	Degree              int       `yaml:"Degree"`
	Family              string    `yaml:"Family"` // legendre or radau
	Horizon             float64   `yaml:"Horizon"`
	Elements            int       `yaml:"Elements"`
	LinearSolver        string    `yaml:"LinearSolver"` // dense or sparse
	NewtonTolerance     float64   `yaml:"NewtonTolerance"`
	NewtonMaxIterations int       `yaml:"NewtonMaxIterations"`
	ColdStart           bool      `yaml:"ColdStart"`
	CompareTolerance    float64   `yaml:"CompareTolerance"`
	X0                  []float64 `yaml:"X0"`
	P                   []float64 `yaml:"P"`
}

func (ip *IntegratorParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *IntegratorParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t\t= Degree\n", ip.Degree)
	fmt.Printf("[%s]\t\t\t= Family\n", ip.Family)
	fmt.Printf("%8.5f\t\t= Horizon\n", ip.Horizon)
	fmt.Printf("[%d]\t\t\t= Elements\n", ip.Elements)
	fmt.Printf("[%s]\t\t\t= LinearSolver\n", ip.LinearSolver)
	fmt.Printf("%8.1e\t\t= NewtonTolerance\n", ip.NewtonTolerance)
	fmt.Printf("[%d]\t\t\t\t= NewtonMaxIterations\n", ip.NewtonMaxIterations)
	fmt.Printf("%8.1e\t\t= CompareTolerance\n", ip.CompareTolerance)
	fmt.Printf("X0 = %v\n", ip.X0)
	fmt.Printf("P = %v\n", ip.P)
}
