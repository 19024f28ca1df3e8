package entity

import "math"

// Zoom constants
const (
	ZoomDefault = 1.0
	ZoomMin     = 0.25 // 25%
	ZoomMax     = 3.0  // 300%
	ZoomStep    = 0.1  // 10% increments
)

// ClampZoom rounds a zoom factor to two decimals and clamps it to [ZoomMin, ZoomMax].
// Non-finite input yields the default.
func ClampZoom(factor float64) float64 {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return ZoomDefault
	}
	factor = math.Round(factor*100) / 100
	if factor < ZoomMin {
		return ZoomMin
	}
	if factor > ZoomMax {
		return ZoomMax
	}
	return factor
}

// ZoomPercentage returns the zoom factor as a percentage (e.g., 150 for 1.5).
func ZoomPercentage(factor float64) int {
	return int(math.Round(factor * 100))
}
