package jetimage

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// HeatMap describes a color-mapped image plot with a vertical color bar.
type HeatMap struct {
	Title          string
	XLabel, YLabel string
	Min, Max       float64
}

// Save draws grid as a PNG at output. When Min and Max are equal the
// range of the grid values is used.
func (hm HeatMap) Save(grid plotter.GridXYZ, output string) error {
	zmin, zmax := hm.Min, hm.Max
	if zmin == zmax {
		zmin, zmax = gridRange(grid)
	}

	p := plot.New()
	p.Title.Text = hm.Title
	p.X.Label.Text = hm.XLabel
	p.Y.Label.Text = hm.YLabel
	p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(zmin)
	colorMap.SetMax(zmax)
	heatMap := plotter.NewHeatMap(grid, colorMap.Palette(1000))
	heatMap.Min = zmin
	heatMap.Max = zmax
	p.Add(heatMap)
	p.Draw(dc0)

	p = plot.New()
	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0
	p.Draw(dc1)

	w, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("jetimage: could not create plot: %w", err)
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("jetimage: could not write plot %q: %w", output, err)
	}
	return w.Close()
}

func gridRange(grid plotter.GridXYZ) (float64, float64) {
	nx, ny := grid.Dims()
	zmin, zmax := 0.0, 0.0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			z := grid.Z(i, j)
			if (i == 0 && j == 0) || z < zmin {
				zmin = z
			}
			if (i == 0 && j == 0) || z > zmax {
				zmax = z
			}
		}
	}
	if zmax == zmin {
		zmax = zmin + 1
	}
	return zmin, zmax
}
