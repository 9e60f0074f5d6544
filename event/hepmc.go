package event

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"go-hep.org/x/hep/hepmc"

	"github.com/decibelcooper/jetimage/jet"
)

// HepMCSource reads HepMC2 ASCII events. Particles with status 1 are
// final state.
type HepMCSource struct {
	f   *os.File
	dec *hepmc.Decoder
}

func OpenHepMC(path string) (*HepMCSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("event: could not open HepMC file: %w", err)
	}
	return &HepMCSource{f: f, dec: hepmc.NewDecoder(bufio.NewReader(f))}, nil
}

func (src *HepMCSource) Next() ([]jet.Particle, error) {
	var evt hepmc.Event
	if err := src.dec.Decode(&evt); err != nil {
		return nil, err
	}

	barcodes := make([]int, 0, len(evt.Particles))
	for bc := range evt.Particles {
		barcodes = append(barcodes, bc)
	}
	sort.Ints(barcodes)

	var parts []jet.Particle
	for i, bc := range barcodes {
		p := evt.Particles[bc]
		if p.Status != 1 {
			continue
		}
		part := jet.NewParticle(p.Momentum.Px(), p.Momentum.Py(), p.Momentum.Pz(), p.Momentum.E())
		part.PdgID = int(p.PdgID)
		part.Charge = jet.ChargeOf(part.PdgID)
		part.Index = i
		parts = append(parts, part)
	}
	return parts, nil
}

func (src *HepMCSource) Close() error {
	return src.f.Close()
}
