package event

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/decibelcooper/jetimage/jet"
)

// MinBias draws soft non-diffractive interactions.
type MinBias struct {
	mult distuv.Poisson
	pt   distuv.Exponential
	y    distuv.Uniform
	phi  distuv.Uniform
	unit distuv.Uniform
}

// NewMinBias returns a minimum-bias source with the given mean charged
// multiplicity per interaction.
func NewMinBias(seed uint64, mean float64) *MinBias {
	src := rand.NewSource(seed)
	return &MinBias{
		mult: distuv.Poisson{Lambda: mean, Src: src},
		pt:   distuv.Exponential{Rate: 1 / 0.5, Src: src},
		y:    distuv.Uniform{Min: -5, Max: 5, Src: src},
		phi:  distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src},
		unit: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

func (mb *MinBias) Next() ([]jet.Particle, error) {
	n := int(mb.mult.Rand())
	out := make([]jet.Particle, 0, n)
	for i := 0; i < n; i++ {
		p := jet.NewPtYPhiM(mb.pt.Rand()+0.1, mb.y.Rand(), mb.phi.Rand(), massPion)
		switch u := mb.unit.Rand(); {
		case u < 0.4:
			p.PdgID = 211
		case u < 0.8:
			p.PdgID = -211
		default:
			p.PdgID = 22
		}
		p.Charge = jet.ChargeOf(p.PdgID)
		p.Index = i
		out = append(out, p)
	}
	return out, nil
}

func (mb *MinBias) Close() error { return nil }

// Overlay adds npv pileup interactions from minbias to every event of
// primary. Overlaid particles have Pileup set.
type Overlay struct {
	primary Source
	minbias Source
	npv     int
}

func NewOverlay(primary, minbias Source, npv int) *Overlay {
	return &Overlay{primary: primary, minbias: minbias, npv: npv}
}

func (o *Overlay) Next() ([]jet.Particle, error) {
	parts, err := o.primary.Next()
	if err != nil {
		return nil, err
	}
	for i := 0; i < o.npv; i++ {
		pu, err := o.minbias.Next()
		if err != nil {
			return nil, fmt.Errorf("event: could not read pileup interaction: %w", err)
		}
		for _, p := range pu {
			p.Pileup = true
			p.Index = len(parts)
			parts = append(parts, p)
		}
	}
	return parts, nil
}

// Truth forwards the truth of the primary source, if it has any.
func (o *Overlay) Truth() []jet.Particle {
	if ts, ok := o.primary.(TruthSource); ok {
		return ts.Truth()
	}
	return nil
}

func (o *Overlay) Close() error {
	err1 := o.primary.Close()
	err2 := o.minbias.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
