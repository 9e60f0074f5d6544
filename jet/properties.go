package jet

import "math"

// MatchRadius is the distance within which Match associates two jets.
const MatchRadius = 0.7

// JetCharge returns the pt^kappa weighted charge of the jet.
func JetCharge(j *Jet, kappa float64) float64 {
	q := 0.0
	for i := range j.Constituents {
		c := &j.Constituents[i]
		q += c.Charge * math.Pow(c.Pt(), kappa)
	}
	return q / math.Pow(j.Pt(), kappa)
}

// IsBHadron reports whether pdg is a bottom meson or baryon.
func IsBHadron(pdg int) bool {
	a := abs(pdg)
	m := a % 10000
	return (m >= 500 && m < 600) || (a >= 5000 && a < 6000)
}

// IsCHadron reports whether pdg is a charm meson or baryon.
func IsCHadron(pdg int) bool {
	a := abs(pdg)
	m := a % 10000
	return (m >= 400 && m < 500) || (a >= 4000 && a < 5000)
}

// Uniformer draws uniform numbers in [0, 1).
type Uniformer interface {
	Float64() float64
}

// TagEfficiency holds the b-tagging efficiency for b jets and the
// rejection factors for c and light jets.
type TagEfficiency struct {
	B float64
	C float64
	L float64
}

// BTag decides whether j is b-tagged. Jets with a b hadron within r are
// tagged with probability eff.B, jets with a c hadron with probability
// 1/eff.C, and every jet can be mistagged with probability 1/eff.L.
func BTag(j *Jet, bhadrons, chadrons []Particle, r float64, eff TagEfficiency, rnd Uniformer) bool {
	foundB := within(j, bhadrons, r)
	foundC := within(j, chadrons, r)

	if foundB && rnd.Float64() < eff.B {
		return true
	}
	if foundC && rnd.Float64() < 1/eff.C {
		return true
	}
	return rnd.Float64() < 1/eff.L
}

// BosonMatch reports whether a boson with the given PDG id lies within r
// of the jet.
func BosonMatch(j *Jet, bosons []Particle, r float64, id int) bool {
	for i := range bosons {
		b := &bosons[i]
		if b.PdgID != id {
			continue
		}
		if b.DeltaR(&j.Momentum) < r {
			return true
		}
	}
	return false
}

// IsIsolated reports whether the scalar pt sum of the visible final-state
// particles above 0.5 GeV within cone of p, relative to the pt of p,
// stays at or below relIso. p is skipped when it belongs to event.
func IsIsolated(p *Particle, event []Particle, relIso, cone float64) bool {
	sum := 0.0
	for i := range event {
		o := &event[i]
		if o == p || IsInvisible(o.PdgID) || o.Pt() < 0.5 {
			continue
		}
		if o.DeltaR(&p.Momentum) > cone {
			continue
		}
		sum += o.Pt()
	}
	return sum/p.Pt() <= relIso
}

// Match returns the index of the hardest jet of jets within MatchRadius
// of j, or -1.
func Match(j *Jet, jets []Jet) int {
	found := -1
	ptmax := 0.0
	for i := range jets {
		o := &jets[i]
		if o.DeltaR(&j.Momentum) >= MatchRadius {
			continue
		}
		if o.Pt() > ptmax {
			found = i
			ptmax = o.Pt()
		}
	}
	return found
}

func within(j *Jet, ps []Particle, r float64) bool {
	for i := range ps {
		if ps[i].DeltaR(&j.Momentum) < r {
			return true
		}
	}
	return false
}
