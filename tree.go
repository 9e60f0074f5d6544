package jetimage

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// EventTreeName is the name of the tree written by Buffer.
const EventTreeName = "EventTree"

// Sentinel written to every branch of an event before it is analyzed.
const Unset = -999

// EventRecord holds the branches of one EventTree entry. Intensity is the
// flattened jet image (see jet.Rasterize) with NFilled pixels.
type EventRecord struct {
	NFilled   int32     `groot:"NFilled"`
	Intensity []float32 `groot:"Intensity[NFilled]"`

	SubLeadingEta float32 `groot:"SubLeadingEta"`
	SubLeadingPhi float32 `groot:"SubLeadingPhi"`

	PCEta float32 `groot:"PCEta"`
	PCPhi float32 `groot:"PCPhi"`

	LeadingEta float32 `groot:"LeadingEta"`
	LeadingPhi float32 `groot:"LeadingPhi"`
	LeadingPt  float32 `groot:"LeadingPt"`
	LeadingM   float32 `groot:"LeadingM"`

	LeadingEtaNoPix float32 `groot:"LeadingEta_nopix"`
	LeadingPhiNoPix float32 `groot:"LeadingPhi_nopix"`
	LeadingPtNoPix  float32 `groot:"LeadingPt_nopix"`
	LeadingMNoPix   float32 `groot:"LeadingM_nopix"`

	Tau1 float32 `groot:"Tau1"`
	Tau2 float32 `groot:"Tau2"`
	Tau3 float32 `groot:"Tau3"`

	Tau1NoPix float32 `groot:"Tau1_nopix"`
	Tau2NoPix float32 `groot:"Tau2_nopix"`
	Tau3NoPix float32 `groot:"Tau3_nopix"`

	DeltaR float32 `groot:"DeltaR"`

	Tau32 float32 `groot:"Tau32"`
	Tau21 float32 `groot:"Tau21"`

	Tau32NoPix float32 `groot:"Tau32_nopix"`
	Tau21NoPix float32 `groot:"Tau21_nopix"`

	JetCharge float32 `groot:"JetCharge"`

	// BosonID is the PDG id of the truth top, W or Z within
	// jet.MatchRadius of the leading jet, 0 when there is none.
	BosonID int32 `groot:"BosonID"`
	BTagged int32 `groot:"BTagged"`

	// MatchNoPix is the index of the particle-level jet matched to the
	// leading jet, -1 when none lies within jet.MatchRadius.
	MatchNoPix  int32 `groot:"MatchNoPix"`
	NIsoLeptons int32 `groot:"NIsoLeptons"`
}

// Reset sets every branch to Unset and sizes the image to npix pixels.
func (rec *EventRecord) Reset(npix int) {
	rec.NFilled = int32(npix)
	if cap(rec.Intensity) < npix {
		rec.Intensity = make([]float32, npix)
	}
	rec.Intensity = rec.Intensity[:npix]
	for i := range rec.Intensity {
		rec.Intensity[i] = Unset
	}

	for _, v := range []*float32{
		&rec.SubLeadingEta, &rec.SubLeadingPhi,
		&rec.PCEta, &rec.PCPhi,
		&rec.LeadingEta, &rec.LeadingPhi, &rec.LeadingPt, &rec.LeadingM,
		&rec.LeadingEtaNoPix, &rec.LeadingPhiNoPix, &rec.LeadingPtNoPix, &rec.LeadingMNoPix,
		&rec.Tau1, &rec.Tau2, &rec.Tau3,
		&rec.Tau1NoPix, &rec.Tau2NoPix, &rec.Tau3NoPix,
		&rec.DeltaR,
		&rec.Tau32, &rec.Tau21,
		&rec.Tau32NoPix, &rec.Tau21NoPix,
		&rec.JetCharge,
	} {
		*v = Unset
	}
	for _, v := range []*int32{&rec.BosonID, &rec.BTagged, &rec.MatchNoPix, &rec.NIsoLeptons} {
		*v = Unset
	}
}

// TreeWriter writes structs of type T as entries of a ROOT tree.
type TreeWriter[T any] struct {
	f    *riofs.File
	tree rtree.Writer
	data *T
}

// CreateTree creates the ROOT file at path holding a tree whose branches
// are taken from the groot tags of *data. Every Fill writes the current
// content of *data.
func CreateTree[T any](path, name, title string, data *T) (*TreeWriter[T], error) {
	f, err := groot.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create ROOT file %q: %w", path, err)
	}

	tree, err := rtree.NewWriter(f, name, rtree.WriteVarsFromStruct(data), rtree.WithTitle(title))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("could not create tree %q: %w", name, err)
	}
	return &TreeWriter[T]{f: f, tree: tree, data: data}, nil
}

// Fill appends the current content of the bound struct to the tree.
func (w *TreeWriter[T]) Fill() error {
	_, err := w.tree.Write()
	return err
}

// Close flushes the tree and closes the file.
func (w *TreeWriter[T]) Close() error {
	if err := w.tree.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("could not close tree: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("could not close ROOT file: %w", err)
	}
	return nil
}

// ScanTree calls fn for every entry of the named tree in the ROOT file at
// path. The struct handed to fn is reused between entries.
func ScanTree[T any](path, name string, fn func(i int64, data *T) error) error {
	f, err := groot.Open(path)
	if err != nil {
		return fmt.Errorf("could not open ROOT file %q: %w", path, err)
	}
	defer f.Close()

	obj, err := f.Get(name)
	if err != nil {
		return fmt.Errorf("could not find tree %q: %w", name, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return fmt.Errorf("object %q is not a tree", name)
	}

	var data T
	r, err := rtree.NewReader(tree, rtree.ReadVarsFromStruct(&data))
	if err != nil {
		return fmt.Errorf("could not create reader for %q: %w", name, err)
	}
	defer r.Close()

	return r.Read(func(ctx rtree.RCtx) error {
		return fn(ctx.Entry, &data)
	})
}

// ScanEvents is ScanTree over the EventTree written by Buffer.
func ScanEvents(path string, fn func(i int64, rec *EventRecord) error) error {
	return ScanTree(path, EventTreeName, fn)
}
