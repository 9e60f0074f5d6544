package jet

import "math"

// wrapPhi maps an azimuth in (-pi, pi] onto [0, 2pi).
func wrapPhi(phi float64) float64 {
	if phi < 0 {
		phi += 2 * math.Pi
	}
	if phi >= 2*math.Pi {
		phi -= 2 * math.Pi
	}
	return phi
}

// DeltaPhi returns phi1 - phi2 wrapped to (-pi, pi].
func DeltaPhi(phi1, phi2 float64) float64 {
	dphi := math.Mod(phi1-phi2, 2*math.Pi)
	switch {
	case dphi > math.Pi:
		dphi -= 2 * math.Pi
	case dphi <= -math.Pi:
		dphi += 2 * math.Pi
	}
	return dphi
}

// DeltaR returns the distance in the (rapidity, phi) plane.
func DeltaR(y1, phi1, y2, phi2 float64) float64 {
	return math.Hypot(y1-y2, DeltaPhi(phi1, phi2))
}
