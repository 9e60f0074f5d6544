// Package jet holds the jet-level pieces of the analysis: particle
// kinematics, the calorimeter model, clustering and trimming through
// go-hep/fastjet, N-subjettiness, the principal axis of a jet's energy
// flow and the rasterization of constituents into jet images.
package jet

import (
	"math"

	"go-hep.org/x/hep/fmom"
)

// Momentum is a four-momentum. Pt, Eta, Rapidity and M come from
// fmom.PxPyPzE; Phi follows the fastjet convention and lies in [0, 2pi).
type Momentum struct {
	fmom.PxPyPzE
}

func NewMomentum(px, py, pz, e float64) Momentum {
	return Momentum{fmom.NewPxPyPzE(px, py, pz, e)}
}

func (p *Momentum) Phi() float64 { return wrapPhi(p.PxPyPzE.Phi()) }

// Add returns the four-momentum sum of p and o.
func (p *Momentum) Add(o *Momentum) Momentum {
	sum := fmom.Add(&p.PxPyPzE, &o.PxPyPzE)
	return NewMomentum(sum.Px(), sum.Py(), sum.Pz(), sum.E())
}

// DeltaR returns the (rapidity, phi) distance between p and o, the
// distance the clustering uses. fmom.DeltaR works in pseudorapidity.
func (p *Momentum) DeltaR(o *Momentum) float64 {
	return DeltaR(p.Rapidity(), p.Phi(), o.Rapidity(), o.Phi())
}

// Particle is a final-state particle handed to the clustering.
type Particle struct {
	Momentum
	PdgID  int
	Charge float64
	Index  int  // position in the originating event record
	Pileup bool // true for particles overlaid from minimum-bias events
}

// NewParticle returns a particle with the given four-momentum.
func NewParticle(px, py, pz, e float64) Particle {
	return Particle{Momentum: NewMomentum(px, py, pz, e)}
}

// NewPtYPhiM returns a particle built from transverse momentum, rapidity,
// azimuth and mass.
func NewPtYPhiM(pt, y, phi, m float64) Particle {
	mt := math.Sqrt(pt*pt + m*m)
	return NewParticle(pt*math.Cos(phi), pt*math.Sin(phi), mt*math.Sinh(y), mt*math.Cosh(y))
}

// IsInvisible reports whether the PDG id is a neutrino.
func IsInvisible(pdg int) bool {
	switch abs(pdg) {
	case 12, 14, 16:
		return true
	}
	return false
}

// ChargeOf returns the electric charge of common long-lived particles.
// Unknown ids are treated as neutral.
func ChargeOf(pdg int) float64 {
	sign := 1.0
	if pdg < 0 {
		sign = -1
	}
	switch abs(pdg) {
	case 11, 13, 15:
		return -sign
	case 211, 321, 2212, 3222:
		return sign
	case 3112, 3312, 3334:
		return -sign
	}
	return 0
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
