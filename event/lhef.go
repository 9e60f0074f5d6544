package event

import (
	"fmt"
	"os"

	"go-hep.org/x/hep/lhef"

	"github.com/decibelcooper/jetimage/jet"
)

// LHEFSource reads Les Houches event files. Entries with ISTUP == 1 are
// outgoing final-state particles.
type LHEFSource struct {
	f   *os.File
	dec *lhef.Decoder
}

func OpenLHEF(path string) (*LHEFSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("event: could not open LHEF file: %w", err)
	}
	dec, err := lhef.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("event: could not create LHEF decoder: %w", err)
	}
	return &LHEFSource{f: f, dec: dec}, nil
}

func (src *LHEFSource) Next() ([]jet.Particle, error) {
	evt, err := src.dec.Decode()
	if err != nil {
		return nil, err
	}

	var parts []jet.Particle
	for i := 0; i < int(evt.NUP); i++ {
		if evt.ISTUP[i] != 1 {
			continue
		}
		pup := evt.PUP[i]
		part := jet.NewParticle(pup[0], pup[1], pup[2], pup[3])
		part.PdgID = int(evt.IDUP[i])
		part.Charge = jet.ChargeOf(part.PdgID)
		part.Index = i
		parts = append(parts, part)
	}
	return parts, nil
}

func (src *LHEFSource) Close() error {
	return src.f.Close()
}
