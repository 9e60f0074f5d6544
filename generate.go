package jetimage

import (
	"errors"
	"fmt"
	"io"
	"log"

	"golang.org/x/exp/rand"

	"github.com/decibelcooper/jetimage/event"
	"github.com/decibelcooper/jetimage/jet"
)

// MinBiasMultiplicity is the mean number of particles of one pileup
// interaction.
const MinBiasMultiplicity = 50

// OpenSample returns the event source of s: the events of input when it is
// not empty, the toy gun configured by s otherwise. With s.Pileup > 0,
// s.Pileup minimum-bias interactions seeded with s.Seed+1 are overlaid on
// every event. s.Seed must already be resolved with event.Seed.
func OpenSample(s Sample, input string) (event.Source, error) {
	if s.Seed < 0 {
		return nil, fmt.Errorf("jetimage: unresolved seed %d", s.Seed)
	}

	var src event.Source
	if input != "" {
		f, err := event.Open(input)
		if err != nil {
			return nil, err
		}
		src = f
	} else {
		proc, err := event.ParseProcess(s.Process)
		if err != nil {
			return nil, err
		}
		gun, err := event.NewGun(event.GunConfig{
			Process:   proc,
			BosonMass: s.BosonMass,
			PtHatMin:  s.PtHatMin,
			PtHatMax:  s.PtHatMax,
			Seed:      uint64(s.Seed),
		})
		if err != nil {
			return nil, err
		}
		src = gun
	}

	if s.Pileup > 0 {
		mb := event.NewMinBias(uint64(s.Seed)+1, MinBiasMultiplicity)
		src = event.NewOverlay(src, mb, s.Pileup)
	}
	return src, nil
}

// Analyze feeds up to nEvents events of src to buf, or every event when
// nEvents is negative. It returns the number of events read. A progress
// line is logged every 1000 events when logger is not nil, and with
// buf.Debug set a summary of every written entry. Truth particles are
// handed over when src is an event.TruthSource.
func Analyze(src event.Source, buf *Buffer, nEvents int, logger *log.Logger) (int, error) {
	ts, _ := src.(event.TruthSource)
	n := 0
	for ; nEvents < 0 || n < nEvents; n++ {
		if logger != nil && n%1000 == 0 {
			logger.Printf("Generating event number %d", n)
		}

		particles, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("jetimage: could not read event %d: %w", n, err)
		}

		var truth []jet.Particle
		if ts != nil {
			truth = ts.Truth()
		}
		filled := buf.Filled
		if err := buf.AnalyzeTruthEvent(n, particles, truth); err != nil {
			return n, err
		}
		if logger != nil && buf.Debug && buf.Filled > filled {
			rec := buf.Record()
			logger.Printf("event %d: pt=%.1f m=%.1f tau21=%.3f boson=%d btag=%d",
				n, rec.LeadingPt, rec.LeadingM, rec.Tau21, rec.BosonID, rec.BTagged)
		}
	}
	return n, nil
}

// RunSample analyzes s into s.OutFile. input is handed to OpenSample.
func RunSample(s Sample, input string, debug bool, logger *log.Logger) (*Buffer, error) {
	src, err := OpenSample(s, input)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf := NewBuffer(s.OutFile, s.Pixels, s.Range)
	buf.Debug = debug
	buf.Rand = rand.New(rand.NewSource(uint64(s.Seed) + 2))
	if err := buf.Begin(); err != nil {
		return nil, err
	}

	if _, err := Analyze(src, buf, s.NEvents, logger); err != nil {
		buf.End()
		return nil, err
	}
	if err := buf.End(); err != nil {
		return nil, err
	}
	return buf, nil
}
