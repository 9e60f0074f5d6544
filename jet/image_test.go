package jet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestOffsets(t *testing.T) {
	axis := NewPtYPhiM(100, 0.5, 2*math.Pi-0.1, 0).Momentum

	consts := []Particle{
		NewPtYPhiM(10, 0.7, 0.1, 0),
		NewPtYPhiM(5, 0.3, 2*math.Pi-0.2, 0),
	}
	pts := Offsets(consts, &axis)
	require.Len(t, pts, 2)
	require.InDelta(t, 0.2, pts[0].X, 1e-9)
	require.InDelta(t, 0.2, pts[0].Y, 1e-9)
	require.InDelta(t, consts[0].E(), pts[0].E, 1e-12)
	require.InDelta(t, -0.2, pts[1].X, 1e-9)
	require.InDelta(t, -0.1, pts[1].Y, 1e-9)
}

func TestRasterize(t *testing.T) {
	const pixels = 25
	img := Rasterize([]Point{
		{X: 0, Y: 0, E: 7},
		{X: 0.01, Y: -0.01, E: 3},
		{X: 0.5, Y: -0.9, E: 2},
		{X: 1.5, Y: 0, E: 100},
	}, pixels, 1)

	require.Len(t, img, pixels*pixels)
	require.InDelta(t, 10, img[12*pixels+12], 1e-12)

	// x = 0.5 -> bin 18, y = -0.9 -> bin 1
	require.InDelta(t, 2, img[18*pixels+1], 1e-12)
	require.InDelta(t, 12, floats.Sum(img), 1e-12, "out-of-window points are dropped")
}

func TestImageOrientation(t *testing.T) {
	const pixels = 5
	axis := NewPtYPhiM(100, 0, 1, 0).Momentum
	// higher eta and lower phi than the axis.
	c := NewPtYPhiM(10, 0.7, 0.2, 0)
	img := Rasterize(Offsets([]Particle{c}, &axis), pixels, 1)

	// eta is the slow index; phi offsets are phi_i - phi_axis.
	require.InDelta(t, c.E(), img[4*pixels+0], 1e-12)
	require.InDelta(t, c.E(), floats.Sum(img), 1e-12)
}

func TestRasterizeEmpty(t *testing.T) {
	img := Rasterize(nil, 4, 1)
	require.Equal(t, make([]float64, 16), img)
}

func TestPixelCenter(t *testing.T) {
	var got []float64
	for i := 0; i < 4; i++ {
		got = append(got, PixelCenter(i, 4, 1))
	}
	require.InDeltaSlice(t, []float64{-0.75, -0.25, 0.25, 0.75}, got, 1e-12)
}

func TestImageObservables(t *testing.T) {
	const pixels = 4
	img := make([]float64, pixels*pixels)
	require.Empty(t, ImageParticles(img, pixels, 1))
	require.Equal(t, 0.0, ImageMass(img, pixels, 1))
	require.Equal(t, -10.0, ImageTau21(img, pixels, 1))

	img[0*pixels+1] = 100
	img[3*pixels+1] = 100
	img[2] = -1
	parts := ImageParticles(img, pixels, 1)
	require.Len(t, parts, 2)
	require.Equal(t, 1, parts[0].Index)
	require.InDelta(t, -0.75, parts[0].Rapidity(), 1e-12)
	require.InDelta(t, 0.75, parts[1].Rapidity(), 1e-12)
	require.InDelta(t, -0.25, DeltaPhi(parts[1].Phi(), 0), 1e-12)

	want := 100 * math.Sqrt(2*(math.Cosh(1.5)-1))
	require.InDelta(t, want, ImageMass(img, pixels, 1), 1e-9)
	require.InDelta(t, 100*math.Sqrt(2*(math.Cosh(3)-1)), ImageMass(img, pixels, 2), 1e-9)
	require.InDelta(t, 0, ImageTau21(img, pixels, 1), 1e-12)

	// the soft pixel merges into its harder neighbour.
	img[3*pixels+1] = 50
	img[3*pixels+2] = 10
	tau21 := 5 / (75 + 10*math.Sqrt(2.5))
	require.InDelta(t, tau21, ImageTau21(img, pixels, 1), 1e-9)
}
