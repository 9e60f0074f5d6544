package jet

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// Calorimeter granularity: rapidity along x, azimuth along y.
const (
	detNBinsY   = 100
	detYLow     = -5.0
	detYHigh    = 5.0
	detNBinsPhi = 200
	detPhiLow   = -10.0
	detPhiHigh  = 10.0
)

// Detector is a toy calorimeter: particle energies are summed in
// (rapidity, phi) cells and every non-empty cell becomes a massless tower.
type Detector struct {
	cells *hbook.H2D
}

func NewDetector() *Detector {
	d := &Detector{}
	d.Reset()
	return d
}

// Reset empties every cell.
func (d *Detector) Reset() {
	d.cells = hbook.NewH2D(detNBinsY, detYLow, detYHigh, detNBinsPhi, detPhiLow, detPhiHigh)
}

// Deposit adds the energy of p to the cell containing it.
func (d *Detector) Deposit(p *Particle) {
	d.cells.Fill(p.Rapidity(), p.Phi(), p.E())
}

// Towers returns one massless particle per non-empty cell, placed at the
// cell centre. The cell energy is measured, so pt = E / cosh(eta).
func (d *Detector) Towers() []Particle {
	var towers []Particle
	grid := d.cells.GridXYZ()
	nx, ny := grid.Dims()
	wx := (detYHigh - detYLow) / float64(nx)
	wy := (detPhiHigh - detPhiLow) / float64(ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			e := grid.Z(i, j)
			if e <= 0 {
				continue
			}
			eta := detYLow + (float64(i)+0.5)*wx
			phi := detPhiLow + (float64(j)+0.5)*wy
			t := NewPtYPhiM(e/math.Cosh(eta), eta, phi, 0)
			t.Index = len(towers)
			towers = append(towers, t)
		}
	}
	return towers
}
