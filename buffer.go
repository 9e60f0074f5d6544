// Package jetimage runs the jet image analysis: it analyzes events into the
// EventTree (Buffer), reads trees back (ScanTree), preprocesses images for
// training (Converter) and provides the plotting helpers shared by the
// command-line drivers.
package jetimage

import (
	"errors"
	"fmt"
	"log"
	"math"

	"golang.org/x/exp/rand"

	"github.com/decibelcooper/jetimage/jet"
)

// Jet finding and trimming parameters of the event analysis.
const (
	JetRadius    = 1.0
	JetPtMin     = 10.0
	TrimRadius   = 0.3
	TrimFraction = 0.05
)

// Jet charge, b-tagging and lepton isolation parameters.
const (
	JetChargeKappa  = 0.5
	BTagRadius      = 0.4
	LeptonPtMin     = 10.0
	LeptonIsolation = 0.1
	LeptonCone      = 0.3
)

// DefaultTagEfficiency is a 70% b-tagging working point.
var DefaultTagEfficiency = jet.TagEfficiency{B: 0.7, C: 10, L: 100}

// Buffer analyzes events one at a time and writes one EventTree entry per
// event holding the trimmed leading jet, its image and its N-subjettiness.
// The leading jet is found twice: once from calorimeter towers and once
// from the raw visible particles (the _nopix branches).
type Buffer struct {
	Pixels  int
	Range   float64
	Debug   bool
	OutName string

	// Skipped counts events where no jet passed the threshold.
	Skipped int
	// Filled counts entries written to the tree.
	Filled int

	// TagEfficiency and Rand drive the b-tagging of the leading jet.
	// Begin fills in DefaultTagEfficiency and a generator seeded with 0
	// when they are left empty.
	TagEfficiency jet.TagEfficiency
	Rand          jet.Uniformer

	det *jet.Detector
	rec EventRecord
	out *TreeWriter[EventRecord]
}

func NewBuffer(outName string, pixels int, imageRange float64) *Buffer {
	return &Buffer{
		Pixels:  pixels,
		Range:   imageRange,
		OutName: outName,
	}
}

// Begin creates the output file and the event tree.
func (b *Buffer) Begin() error {
	if b.Pixels <= 0 {
		return fmt.Errorf("jetimage: invalid number of pixels %d", b.Pixels)
	}
	if !(b.Range > 0) {
		return fmt.Errorf("jetimage: invalid image range %v", b.Range)
	}

	if b.TagEfficiency == (jet.TagEfficiency{}) {
		b.TagEfficiency = DefaultTagEfficiency
	}
	if b.Rand == nil {
		b.Rand = rand.New(rand.NewSource(0))
	}

	b.det = jet.NewDetector()
	b.ResetBranches()

	out, err := CreateTree(b.OutName, EventTreeName, "Tree for jet images", &b.rec)
	if err != nil {
		return err
	}
	b.out = out
	return nil
}

// ResetBranches sets every branch of the current entry to Unset.
func (b *Buffer) ResetBranches() {
	b.rec.Reset(b.Pixels * b.Pixels)
}

// Record returns the current entry. After AnalyzeEvent it holds the event
// just written, or Unset everywhere when the event was skipped.
func (b *Buffer) Record() *EventRecord {
	return &b.rec
}

// AnalyzeEvent runs the jet analysis on the final-state particles of event
// ievt and appends the result to the tree. Events without a jet above
// JetPtMin are skipped.
func (b *Buffer) AnalyzeEvent(ievt int, particles []jet.Particle) error {
	return b.AnalyzeTruthEvent(ievt, particles, nil)
}

// AnalyzeTruthEvent is AnalyzeEvent with the truth particles of the hard
// process (see event.TruthSource), used for boson matching and b-tagging.
func (b *Buffer) AnalyzeTruthEvent(ievt int, particles, truth []jet.Particle) error {
	if b.out == nil {
		return errors.New("jetimage: AnalyzeEvent called before Begin")
	}
	if b.Debug {
		log.Printf("AnalyzeEvent: event %d with %d particles", ievt, len(particles))
	}

	b.ResetBranches()
	b.det.Reset()

	visible := make([]jet.Particle, 0, len(particles))
	for i := range particles {
		p := &particles[i]
		if jet.IsInvisible(p.PdgID) {
			continue
		}
		b.det.Deposit(p)
		visible = append(visible, *p)
	}

	var (
		leading, nopix jet.Jet
		nopixJets      []jet.Jet
	)
	towerJets, err := findJets(b.det.Towers())
	if err == nil {
		nopixJets, err = findJets(visible)
	}
	if err == nil {
		leading, err = trimLeading(towerJets)
	}
	if err == nil {
		nopix, err = trimLeading(nopixJets)
	}
	switch {
	case errors.Is(err, jet.ErrNoJets):
		b.Skipped++
		if b.Debug {
			log.Printf("AnalyzeEvent: event %d skipped: %v", ievt, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("jetimage: event %d: %w", ievt, err)
	}

	b.fill(&leading, &nopix)
	b.fillTruth(&leading, truth)
	b.rec.MatchNoPix = int32(jet.Match(&leading, nopixJets))
	b.rec.NIsoLeptons = int32(isolatedLeptons(particles))

	if err := b.out.Fill(); err != nil {
		return fmt.Errorf("jetimage: could not fill event %d: %w", ievt, err)
	}
	b.Filled++
	return nil
}

// findJets returns the anti-kt jets of particles above JetPtMin, hardest
// first.
func findJets(particles []jet.Particle) ([]jet.Jet, error) {
	jets, err := jet.AntiKt(particles, JetRadius, JetPtMin)
	if err != nil {
		return nil, err
	}
	if len(jets) == 0 {
		return nil, jet.ErrNoJets
	}
	return jets, nil
}

// trimLeading trims the hardest of jets.
func trimLeading(jets []jet.Jet) (jet.Jet, error) {
	trimmed, err := jet.Trim(jets[0], TrimRadius, TrimFraction)
	if err != nil {
		return jet.Jet{}, err
	}
	if len(trimmed.Pieces) == 0 {
		return jet.Jet{}, jet.ErrNoJets
	}
	return trimmed, nil
}

func (b *Buffer) fill(leading, nopix *jet.Jet) {
	rec := &b.rec

	rec.LeadingEta = float32(leading.Eta())
	rec.LeadingPhi = float32(leading.Phi())
	rec.LeadingPt = float32(leading.Pt())
	rec.LeadingM = float32(leading.M())
	rec.LeadingEtaNoPix = float32(nopix.Eta())
	rec.LeadingPhiNoPix = float32(nopix.Phi())
	rec.LeadingPtNoPix = float32(nopix.Pt())
	rec.LeadingMNoPix = float32(nopix.M())
	// towers carry no charge.
	rec.JetCharge = float32(jet.JetCharge(nopix, JetChargeKappa))

	axis := &leading.Pieces[0].Momentum

	rec.DeltaR = 0
	if len(leading.Pieces) > 1 {
		sub := &leading.Pieces[1].Momentum
		deta := sub.Eta() - axis.Eta()
		dphi := jet.DeltaPhi(sub.Phi(), axis.Phi())
		rec.DeltaR = float32(math.Hypot(deta, dphi))
		rec.SubLeadingEta = float32(deta)
		rec.SubLeadingPhi = float32(dphi)
	}

	consts := append([]jet.Particle(nil), leading.Constituents...)
	jet.SortParticlesByPt(consts)
	points := jet.Offsets(consts, axis)

	if dx, dy, ok := jet.PrincipalAxis(points); ok {
		rec.PCEta = float32(dx)
		rec.PCPhi = float32(dy)
	}

	for i, v := range jet.Rasterize(points, b.Pixels, b.Range) {
		rec.Intensity[i] = float32(v)
	}

	taus := jet.DefaultNsubjettiness.Taus(3, leading.Constituents)
	rec.Tau1, rec.Tau2, rec.Tau3 = float32(taus[0]), float32(taus[1]), float32(taus[2])
	rec.Tau21 = float32(jet.TauRatio(taus[1], taus[0]))
	rec.Tau32 = float32(jet.TauRatio(taus[2], taus[1]))

	taus = jet.DefaultNsubjettiness.Taus(3, nopix.Constituents)
	rec.Tau1NoPix, rec.Tau2NoPix, rec.Tau3NoPix = float32(taus[0]), float32(taus[1]), float32(taus[2])
	rec.Tau21NoPix = float32(jet.TauRatio(taus[1], taus[0]))
	rec.Tau32NoPix = float32(jet.TauRatio(taus[2], taus[1]))
}

// fillTruth sets the boson and b-tag branches of the leading jet.
func (b *Buffer) fillTruth(leading *jet.Jet, truth []jet.Particle) {
	var bhadrons, chadrons []jet.Particle
	for i := range truth {
		switch pdg := truth[i].PdgID; {
		case jet.IsBHadron(pdg):
			bhadrons = append(bhadrons, truth[i])
		case jet.IsCHadron(pdg):
			chadrons = append(chadrons, truth[i])
		}
	}

	b.rec.BosonID = 0
	// a top jet also holds its W.
	for _, id := range []int{6, -6, 24, -24, 23} {
		if jet.BosonMatch(leading, truth, jet.MatchRadius, id) {
			b.rec.BosonID = int32(id)
			break
		}
	}

	b.rec.BTagged = 0
	if jet.BTag(leading, bhadrons, chadrons, BTagRadius, b.TagEfficiency, b.Rand) {
		b.rec.BTagged = 1
	}
}

// isolatedLeptons counts the electrons and muons above LeptonPtMin that
// pass the relative isolation cut.
func isolatedLeptons(particles []jet.Particle) int {
	n := 0
	for i := range particles {
		p := &particles[i]
		switch p.PdgID {
		case 11, -11, 13, -13:
		default:
			continue
		}
		if p.Pt() < LeptonPtMin {
			continue
		}
		if jet.IsIsolated(p, particles, LeptonIsolation, LeptonCone) {
			n++
		}
	}
	return n
}

// End writes the tree and closes the output file.
func (b *Buffer) End() error {
	if b.out == nil {
		return nil
	}
	err := b.out.Close()
	b.out = nil
	if err != nil {
		return err
	}
	if b.Debug {
		log.Printf("End: %d entries written, %d events without jets", b.Filled, b.Skipped)
	}
	return nil
}
