package jetimage

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/facette/natsort"
)

// Sample holds the generation settings of one batch of events.
type Sample struct {
	Name      string  `toml:"-"`
	Process   string  `toml:"process"`
	NEvents   int     `toml:"nevents"`
	Pixels    int     `toml:"pixels"`
	Range     float64 `toml:"range"`
	Pileup    int     `toml:"pileup"`
	PtHatMin  float64 `toml:"pthatmin"`
	PtHatMax  float64 `toml:"pthatmax"`
	BosonMass float64 `toml:"bosonmass"`
	Seed      int     `toml:"seed"`
	OutFile   string  `toml:"outfile"`
}

// DefaultSample matches the defaults of the jet_image_maker flags.
var DefaultSample = Sample{
	Process:   "WprimeToWZ_lept",
	NEvents:   1000,
	Pixels:    25,
	Range:     1,
	PtHatMin:  100,
	PtHatMax:  500,
	BosonMass: 800,
	Seed:      -1,
	OutFile:   "events.root",
}

// RunCard lists samples to generate. Keys of the [defaults] table apply to
// every [samples.<name>] table that does not set them.
//
//	[defaults]
//	nevents = 10000
//	pixels = 25
//
//	[samples.wprime]
//	process = "WprimeToWZ_lept"
//	outfile = "wprime.root"
type RunCard struct {
	Samples []Sample
}

type runCardFile struct {
	Defaults toml.Primitive            `toml:"defaults"`
	Samples  map[string]toml.Primitive `toml:"samples"`
}

// LoadRunCard reads a TOML run card. Samples are returned in natural order
// of their names.
func LoadRunCard(path string) (RunCard, error) {
	var card RunCard

	var raw runCardFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return card, fmt.Errorf("jetimage: could not decode run card %q: %w", path, err)
	}
	if len(raw.Samples) == 0 {
		return card, errors.New("jetimage: run card has no sample")
	}
	defaults := DefaultSample
	if meta.IsDefined("defaults") {
		if err := meta.PrimitiveDecode(raw.Defaults, &defaults); err != nil {
			return card, fmt.Errorf("jetimage: could not decode defaults: %w", err)
		}
	}

	names := make([]string, 0, len(raw.Samples))
	for name := range raw.Samples {
		names = append(names, name)
	}
	natsort.Sort(names)

	for _, name := range names {
		s := defaults
		if err := meta.PrimitiveDecode(raw.Samples[name], &s); err != nil {
			return card, fmt.Errorf("jetimage: could not decode sample %q: %w", name, err)
		}
		s.Name = name
		if !meta.IsDefined("samples", name, "outfile") {
			s.OutFile = name + ".root"
		}
		card.Samples = append(card.Samples, s)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return card, fmt.Errorf("jetimage: unknown run card key %q", undecoded[0].String())
	}
	return card, nil
}
