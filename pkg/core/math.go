package core

import "math"

// DegreesToRadians converts an angle in degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// ClampFloat restricts x to [lo, hi]
func ClampFloat(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}
