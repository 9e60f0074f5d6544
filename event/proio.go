package event

import (
	"fmt"
	"io"
	"math"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"

	"github.com/decibelcooper/jetimage/jet"
)

// GenStableTag tags the stable generator particles of a proio event.
const GenStableTag = "GenStable"

// ProioSource reads stable generator particles from proio files.
type ProioSource struct {
	reader *proio.Reader
	events <-chan *proio.Event
}

func OpenProio(path string) (*ProioSource, error) {
	reader, err := proio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("event: could not open proio file: %w", err)
	}
	return &ProioSource{reader: reader, events: reader.ScanEvents()}, nil
}

func (src *ProioSource) Next() ([]jet.Particle, error) {
	event, ok := <-src.events
	if !ok {
		return nil, io.EOF
	}

	var parts []jet.Particle
	for i, id := range event.TaggedEntries(GenStableTag) {
		part, ok := event.GetEntry(id).(*eic.Particle)
		if !ok {
			continue
		}

		px := float64(part.GetP().GetX())
		py := float64(part.GetP().GetY())
		pz := float64(part.GetP().GetZ())
		m := float64(part.GetMass())
		p := jet.NewParticle(px, py, pz, math.Sqrt(px*px+py*py+pz*pz+m*m))
		p.PdgID = int(part.GetPdg())
		p.Charge = float64(part.GetCharge())
		p.Index = i
		parts = append(parts, p)
	}
	return parts, nil
}

func (src *ProioSource) Close() error {
	src.reader.Close()
	return nil
}
