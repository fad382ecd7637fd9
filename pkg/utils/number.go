package utils

import "math"

// Round arredonda f para a quantidade de casas decimais informada
func Round(f float64, places int) float64 {
	if f == 0 {
		return 0
	}

	pow := math.Pow(10, float64(places))
	return math.Round(f*pow) / pow
}
