package event

import (
	"fmt"
	"io"
	"math"

	"go-hep.org/x/hep/lcio"

	"github.com/decibelcooper/jetimage/jet"
)

// MCParticleCollection is the LCIO collection holding generator particles.
const MCParticleCollection = "MCParticle"

// LCIOSource reads generator particles with GenStatus 1 from LCIO files.
type LCIOSource struct {
	r *lcio.Reader
}

func OpenLCIO(path string) (*LCIOSource, error) {
	r, err := lcio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("event: could not open LCIO file: %w", err)
	}
	return &LCIOSource{r: r}, nil
}

func (src *LCIOSource) Next() ([]jet.Particle, error) {
	if !src.r.Next() {
		if err := src.r.Err(); err != nil && err != io.EOF {
			return nil, err
		}
		return nil, io.EOF
	}

	event := src.r.Event()
	coll, ok := event.Get(MCParticleCollection).(*lcio.McParticleContainer)
	if !ok {
		return nil, fmt.Errorf("event: no %s collection in LCIO event", MCParticleCollection)
	}

	var parts []jet.Particle
	for i, truth := range coll.Particles {
		if truth.GenStatus != 1 {
			continue
		}
		px, py, pz := truth.P[0], truth.P[1], truth.P[2]
		e := math.Sqrt(px*px + py*py + pz*pz + truth.Mass*truth.Mass)
		part := jet.NewParticle(px, py, pz, e)
		part.PdgID = int(truth.PDG)
		part.Charge = float64(truth.Charge)
		part.Index = i
		parts = append(parts, part)
	}
	return parts, nil
}

func (src *LCIOSource) Close() error {
	return src.r.Close()
}
