// Package event provides the final-state particles of collision events,
// either read from HepMC, LHEF, LCIO and proio files or drawn from a
// seeded toy gun.
package event

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/decibelcooper/jetimage/jet"
)

var ErrUnknownFormat = errors.New("event: unknown input format")

// Source yields the visible and invisible final-state particles of
// successive events. Next returns io.EOF once the source is exhausted.
type Source interface {
	Next() ([]jet.Particle, error)
	Close() error
}

// TruthSource is implemented by sources that know the heavy particles of
// the hard process, the resonances and b or c hadrons, of the event last
// returned by Next.
type TruthSource interface {
	Truth() []jet.Particle
}

// Open returns a Source reading the file at path. The format is chosen
// from the file extension.
func Open(path string) (Source, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hepmc", ".hepmc2":
		return OpenHepMC(path)
	case ".lhe", ".lhef":
		return OpenLHEF(path)
	case ".slcio":
		return OpenLCIO(path)
	case ".proio":
		return OpenProio(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}
