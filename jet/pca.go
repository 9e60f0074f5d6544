package jet

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Point is an energy-weighted position in the (eta, phi) offset plane of
// a jet image.
type Point struct {
	X, Y float64
	E    float64
}

// PrincipalAxis returns the principal direction of the energy flow of the
// points, unnormalized, oriented toward the side of the jet carrying more
// energy. ok is false when the points carry no energy.
//
// With C the energy-weighted covariance matrix and lmin its smaller
// eigenvalue, the direction is (C - lmin I)(1, 1):
// (sxx + sxy - lmin, syy + sxy - lmin). It spans the eigenspace of the
// larger eigenvalue and vanishes when (1, 1) lies along the minor axis or
// the energy flow is isotropic.
func PrincipalAxis(points []Point) (dx, dy float64, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	ws := make([]float64, len(points))
	var etot float64
	for i, p := range points {
		xs[i], ys[i], ws[i] = p.X, p.Y, p.E
		etot += p.E
	}
	if etot <= 0 {
		return 0, 0, false
	}

	mux := stat.Mean(xs, ws)
	muy := stat.Mean(ys, ws)

	var sxx, syy, sxy float64
	for i := range points {
		x, y := xs[i]-mux, ys[i]-muy
		sxx += ws[i] * x * x
		syy += ws[i] * y * y
		sxy += ws[i] * x * y
	}
	sxx /= etot
	syy /= etot
	sxy /= etot

	lmin := 0.5 * (sxx + syy - math.Sqrt((sxx-syy)*(sxx-syy)+4*sxy*sxy))
	dx = sxx + sxy - lmin
	dy = syy + sxy - lmin

	var eup, edn float64
	for i := range points {
		if dx*(xs[i]-mux)+dy*(ys[i]-muy) > 0 {
			eup += ws[i]
		} else {
			edn += ws[i]
		}
	}
	if eup < edn {
		dx, dy = -dx, -dy
	}
	return dx, dy, true
}
