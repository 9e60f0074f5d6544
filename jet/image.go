package jet

import (
	"go-hep.org/x/hep/hbook"
)

// Offsets returns the constituents' positions relative to axis:
// (eta_i - eta_axis, phi_i - phi_axis) with the azimuthal difference
// wrapped to (-pi, pi], weighted by the constituent energy.
func Offsets(constituents []Particle, axis *Momentum) []Point {
	eta0, phi0 := axis.Eta(), axis.Phi()
	pts := make([]Point, len(constituents))
	for i := range constituents {
		c := &constituents[i]
		pts[i] = Point{
			X: c.Eta() - eta0,
			Y: DeltaPhi(c.Phi(), phi0),
			E: c.E(),
		}
	}
	return pts
}

// Rasterize fills the points into a pixels x pixels image covering
// [-width, width] on both axes and returns the pixel intensities flattened
// with x as the slow index: pixel (ix, iy) is at ix*pixels + iy.
// Points outside the window are dropped.
func Rasterize(points []Point, pixels int, width float64) []float64 {
	h := hbook.NewH2D(pixels, -width, width, pixels, -width, width)
	for _, p := range points {
		h.Fill(p.X, p.Y, p.E)
	}

	img := make([]float64, 0, pixels*pixels)
	grid := h.GridXYZ()
	for ix := 0; ix < pixels; ix++ {
		for iy := 0; iy < pixels; iy++ {
			img = append(img, grid.Z(ix, iy))
		}
	}
	return img
}

// PixelCenter returns the centre of bin i of a pixels-wide axis covering
// [-width, width].
func PixelCenter(i, pixels int, width float64) float64 {
	return -width + (float64(i)+0.5)*2*width/float64(pixels)
}

// ImageParticles turns every pixel of a Rasterize image with a positive
// intensity into a massless particle at the pixel centre, with the
// intensity as pt. Index holds the pixel index.
func ImageParticles(img []float64, pixels int, width float64) []Particle {
	var out []Particle
	for ix := 0; ix < pixels; ix++ {
		x := PixelCenter(ix, pixels, width)
		for iy := 0; iy < pixels; iy++ {
			v := img[ix*pixels+iy]
			if !(v > 0) {
				continue
			}
			p := NewPtYPhiM(v, x, PixelCenter(iy, pixels, width), 0)
			p.Index = ix*pixels + iy
			out = append(out, p)
		}
	}
	return out
}

// ImageMass returns the invariant mass of the ImageParticles of img.
func ImageMass(img []float64, pixels int, width float64) float64 {
	var sum Momentum
	for _, p := range ImageParticles(img, pixels, width) {
		sum = sum.Add(&p.Momentum)
	}
	return sum.M()
}

// ImageTau21 returns tau_2/tau_1 of the ImageParticles of img with the
// DefaultNsubjettiness measure.
func ImageTau21(img []float64, pixels int, width float64) float64 {
	taus := DefaultNsubjettiness.Taus(2, ImageParticles(img, pixels, width))
	return TauRatio(taus[1], taus[0])
}
