package event

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/decibelcooper/jetimage/jet"
)

// Masses in GeV.
const (
	massTop  = 172.5
	massW    = 80.385
	massZ    = 91.1876
	massB    = 4.8
	massPion = 0.13957
)

// GunConfig configures the toy event gun.
type GunConfig struct {
	Process   Process
	BosonMass float64 // Z' or W' mass
	PtHatMin  float64 // QCD parton pt range
	PtHatMax  float64
	Seed      uint64
	UENMean   float64 // mean multiplicity of the soft underlying event
}

// Gun draws schematic events for the processes of GunConfig: a resonance
// decays in cascades of isotropic two-body decays, every quark fragments
// into a collinear spray of pions and a soft underlying event is added.
// It is a stand-in for a real generator, good enough to produce jets with
// one, two or three prongs.
type Gun struct {
	cfg GunConfig
	src rand.Source

	truth []jet.Particle

	unit    distuv.Uniform
	smear   distuv.Normal
	softPt  distuv.Exponential
	softY   distuv.Uniform
	azimuth distuv.Uniform
}

func NewGun(cfg GunConfig) (*Gun, error) {
	if !cfg.Process.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProcess, int(cfg.Process))
	}
	switch cfg.Process {
	case QCD:
		if !(cfg.PtHatMin > 0 && cfg.PtHatMax > cfg.PtHatMin) {
			return nil, fmt.Errorf("event: invalid pthat range [%v, %v]", cfg.PtHatMin, cfg.PtHatMax)
		}
	case ZprimeTottbar:
		if cfg.BosonMass <= 2*massTop {
			return nil, fmt.Errorf("event: boson mass %v below ttbar threshold", cfg.BosonMass)
		}
	default:
		if cfg.BosonMass <= massW+massZ {
			return nil, fmt.Errorf("event: boson mass %v below WZ threshold", cfg.BosonMass)
		}
	}
	if cfg.UENMean == 0 {
		cfg.UENMean = 20
	}

	src := rand.NewSource(cfg.Seed)
	return &Gun{
		cfg:     cfg,
		src:     src,
		unit:    distuv.Uniform{Min: 0, Max: 1, Src: src},
		smear:   distuv.Normal{Mu: 0, Sigma: 1, Src: src},
		softPt:  distuv.Exponential{Rate: 1 / 0.6, Src: src},
		softY:   distuv.Uniform{Min: -5, Max: 5, Src: src},
		azimuth: distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src},
	}, nil
}

// Next returns the final-state particles of a new event. The gun never
// runs dry.
func (g *Gun) Next() ([]jet.Particle, error) {
	var out []jet.Particle
	for _, q := range g.hardScatter() {
		out = append(out, q...)
	}
	out = append(out, g.underlyingEvent(g.cfg.UENMean)...)
	for i := range out {
		out[i].Index = i
	}
	return out, nil
}

func (g *Gun) Close() error { return nil }

// Truth returns the resonances of the event last returned by Next and the
// b hadrons of its top decays. QCD events have none.
func (g *Gun) Truth() []jet.Particle { return g.truth }

func (g *Gun) addTruth(p fmom.PxPyPzE, pdg int) {
	t := jet.NewParticle(p.Px(), p.Py(), p.Pz(), p.E())
	t.PdgID = pdg
	t.Charge = jet.ChargeOf(pdg)
	t.Index = len(g.truth)
	g.truth = append(g.truth, t)
}

// final holds either a quark to fragment or a stable particle.
type final struct {
	p     fmom.PxPyPzE
	pdg   int
	quark bool
}

func (g *Gun) hardScatter() [][]jet.Particle {
	var finals []final
	g.truth = nil
	switch g.cfg.Process {
	case ZprimeTottbar:
		zp := g.resonance(g.cfg.BosonMass)
		t1, t2 := g.decay(zp, massTop, massTop)
		for i, t := range []fmom.PxPyPzE{t1, t2} {
			sign := 1 - 2*i
			w, b := g.decay(t, massW, massB)
			q1, q2 := g.decay(w, 0, 0)
			// the b hadron follows the b quark.
			g.addTruth(t, sign*6)
			g.addTruth(w, sign*24)
			g.addTruth(b, -sign*521)
			finals = append(finals,
				final{p: b, pdg: 5, quark: true},
				final{p: q1, pdg: 1, quark: true},
				final{p: q2, pdg: 2, quark: true},
			)
		}
	case WprimeToWZLept:
		wp := g.resonance(g.cfg.BosonMass)
		w, z := g.decay(wp, massW, massZ)
		q1, q2 := g.decay(w, 0, 0)
		nu1, nu2 := g.decay(z, 0, 0)
		g.addTruth(w, 24)
		g.addTruth(z, 23)
		finals = append(finals,
			final{p: q1, pdg: 1, quark: true},
			final{p: q2, pdg: 2, quark: true},
			final{p: nu1, pdg: 12},
			final{p: nu2, pdg: -12},
		)
	case WprimeToWZHad:
		wp := g.resonance(g.cfg.BosonMass)
		w, z := g.decay(wp, massW, massZ)
		e, nu := g.decay(w, 0, 0)
		q1, q2 := g.decay(z, 0, 0)
		g.addTruth(w, 24)
		g.addTruth(z, 23)
		finals = append(finals,
			final{p: e, pdg: 11},
			final{p: nu, pdg: -12},
			final{p: q1, pdg: 1, quark: true},
			final{p: q2, pdg: -1, quark: true},
		)
	case QCD:
		pt := g.ptHat()
		phi := g.azimuth.Rand()
		y1 := 2 * (2*g.unit.Rand() - 1)
		y2 := 2 * (2*g.unit.Rand() - 1)
		finals = append(finals,
			final{p: ptYPhiM(pt, y1, phi, 0), pdg: 21, quark: true},
			final{p: ptYPhiM(pt, y2, phi+math.Pi, 0), pdg: 21, quark: true},
		)
	}

	out := make([][]jet.Particle, 0, len(finals))
	for _, f := range finals {
		if !f.quark {
			p := jet.NewParticle(f.p.Px(), f.p.Py(), f.p.Pz(), f.p.E())
			p.PdgID = f.pdg
			p.Charge = jet.ChargeOf(f.pdg)
			out = append(out, []jet.Particle{p})
			continue
		}
		out = append(out, g.fragment(f.p))
	}
	return out
}

// resonance returns a resonance of mass m produced at rest in the
// transverse plane with a rapidity in [-1, 1].
func (g *Gun) resonance(m float64) fmom.PxPyPzE {
	return ptYPhiM(0, 2*g.unit.Rand()-1, 0, m)
}

// ptHat draws the parton pt from a pt^-4 spectrum within the pthat range.
func (g *Gun) ptHat() float64 {
	lo := math.Pow(g.cfg.PtHatMin, -3)
	hi := math.Pow(g.cfg.PtHatMax, -3)
	u := g.unit.Rand()
	return math.Pow(lo+u*(hi-lo), -1.0/3)
}

// decay performs an isotropic two-body decay of parent into daughters of
// masses m1 and m2, returned in the lab frame.
func (g *Gun) decay(parent fmom.PxPyPzE, m1, m2 float64) (fmom.PxPyPzE, fmom.PxPyPzE) {
	m := parent.M()
	pstar := math.Sqrt((m*m - (m1+m2)*(m1+m2)) * (m*m - (m1-m2)*(m1-m2)))
	pstar /= 2 * m

	cost := 2*g.unit.Rand() - 1
	sint := math.Sqrt(1 - cost*cost)
	phi := g.azimuth.Rand()
	px, py, pz := pstar*sint*math.Cos(phi), pstar*sint*math.Sin(phi), pstar*cost

	d1 := fmom.NewPxPyPzE(px, py, pz, math.Sqrt(pstar*pstar+m1*m1))
	d2 := fmom.NewPxPyPzE(-px, -py, -pz, math.Sqrt(pstar*pstar+m2*m2))

	beta := fmom.BoostOf(&parent)
	return boosted(&d1, beta), boosted(&d2, beta)
}

func boosted(p *fmom.PxPyPzE, beta r3.Vec) fmom.PxPyPzE {
	b := fmom.Boost(p, beta)
	return fmom.NewPxPyPzE(b.Px(), b.Py(), b.Pz(), b.E())
}

// ptYPhiM returns the four-momentum of the given transverse momentum,
// rapidity, azimuth and mass.
func ptYPhiM(pt, y, phi, m float64) fmom.PxPyPzE {
	return jet.NewPtYPhiM(pt, y, phi, m).PxPyPzE
}

// fragment turns a quark into a collinear spray of pions.
func (g *Gun) fragment(q fmom.PxPyPzE) []jet.Particle {
	e := q.E()
	mult := distuv.Poisson{Lambda: math.Max(1, 2*math.Log(e)), Src: g.src}
	n := 1 + int(mult.Rand())

	fracs := make([]float64, n)
	sum := 0.0
	for i := range fracs {
		fracs[i] = -math.Log(1 - g.unit.Rand())
		sum += fracs[i]
	}

	qpt := q.Pt()
	qy := q.Rapidity()
	qphi := q.Phi()

	out := make([]jet.Particle, 0, n)
	for _, f := range fracs {
		pt := qpt * f / sum
		// pions with little momentum spread wider around the quark.
		width := math.Min(0.3, 0.5/math.Max(pt, 1))
		y := qy + width*g.smear.Rand()
		phi := qphi + width*g.smear.Rand()
		p := jet.NewPtYPhiM(pt, y, phi, massPion)
		switch u := g.unit.Rand(); {
		case u < 1.0/3:
			p.PdgID = 211
		case u < 2.0/3:
			p.PdgID = -211
		default:
			p.PdgID = 111
		}
		p.Charge = jet.ChargeOf(p.PdgID)
		out = append(out, p)
	}
	return out
}

// underlyingEvent returns soft particles spread over the detector.
func (g *Gun) underlyingEvent(mean float64) []jet.Particle {
	n := distuv.Poisson{Lambda: mean, Src: g.src}.Rand()
	out := make([]jet.Particle, 0, int(n))
	for i := 0; i < int(n); i++ {
		p := jet.NewPtYPhiM(g.softPt.Rand()+0.05, g.softY.Rand(), g.azimuth.Rand(), massPion)
		p.PdgID = 211
		if g.unit.Rand() < 0.5 {
			p.PdgID = -211
		}
		p.Charge = jet.ChargeOf(p.PdgID)
		out = append(out, p)
	}
	return out
}
