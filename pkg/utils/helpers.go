package utils

import (
	"math"
)

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Lerp performs linear interpolation between two values
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpColor interpolates each 8-bit channel of two RGB triples
func LerpColor(from, to [3]uint8, t float64) [3]uint8 {
	t = Clamp(t, 0, 1)
	var out [3]uint8
	for i := range out {
		out[i] = uint8(math.Round(Lerp(float64(from[i]), float64(to[i]), t)))
	}
	return out
}
