package utils

import (
	"math"
)

func POW(x float64, pp int) (y float64) {
	var (
		p = pp
	)
	if pp < 0 {
		p = -pp
	}
	y = 1
	for i := 0; i < p; i++ {
		y *= x
	}
	if pp < 0 {
		y = 1. / y
	}
	return
}

func IsNan(data []float64) bool {
	for _, f := range data {
		if math.IsNaN(f) {
			return true
		}
	}
	return false
}
