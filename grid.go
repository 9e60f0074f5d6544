package jetimage

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot/plotter"
)

// ImageGrid accumulates jet images of a fixed geometry and exposes their
// mean as a plotter.GridXYZ.
type ImageGrid struct {
	sum    *hbook.H2D
	n      int
	pixels int
}

var (
	_ plotter.GridXYZ = (*ImageGrid)(nil)
	_ plotter.GridXYZ = DiffGrid{}
)

// NewImageGrid returns an empty grid of pixels x pixels covering
// [-width, width] on both axes, matching jet.Rasterize.
func NewImageGrid(pixels int, width float64) *ImageGrid {
	return &ImageGrid{
		sum:    hbook.NewH2D(pixels, -width, width, pixels, -width, width),
		pixels: pixels,
	}
}

// Add accumulates one flattened image (x-major, see jet.Rasterize).
func (g *ImageGrid) Add(intensity []float32) error {
	if len(intensity) != g.pixels*g.pixels {
		return fmt.Errorf("jetimage: image with %d pixels, want %d", len(intensity), g.pixels*g.pixels)
	}
	grid := g.sum.GridXYZ()
	for i, v := range intensity {
		ix, iy := i/g.pixels, i%g.pixels
		g.sum.Fill(grid.X(ix), grid.Y(iy), float64(v))
	}
	g.n++
	return nil
}

// Len returns the number of images added.
func (g *ImageGrid) Len() int { return g.n }

func (g *ImageGrid) Dims() (int, int) {
	return g.pixels, g.pixels
}

// Z returns the mean intensity of pixel (i, j).
func (g *ImageGrid) Z(i, j int) float64 {
	if g.n == 0 {
		return 0
	}
	return g.sum.GridXYZ().Z(i, j) / float64(g.n)
}

func (g *ImageGrid) X(i int) float64 {
	return g.sum.GridXYZ().X(i)
}

func (g *ImageGrid) Y(j int) float64 {
	return g.sum.GridXYZ().Y(j)
}

// Mean returns the mean image flattened like the input images.
func (g *ImageGrid) Mean() []float64 {
	out := make([]float64, 0, g.pixels*g.pixels)
	for i := 0; i < g.pixels; i++ {
		for j := 0; j < g.pixels; j++ {
			out = append(out, g.Z(i, j))
		}
	}
	return out
}

// DiffGrid is the pixel-wise difference A - B of two mean images with the
// same geometry.
type DiffGrid struct {
	A, B *ImageGrid
}

func (d DiffGrid) Dims() (int, int)   { return d.A.Dims() }
func (d DiffGrid) Z(i, j int) float64 { return d.A.Z(i, j) - d.B.Z(i, j) }
func (d DiffGrid) X(i int) float64    { return d.A.X(i) }
func (d DiffGrid) Y(j int) float64    { return d.A.Y(j) }
