package jetimage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testSample(dir string) Sample {
	s := DefaultSample
	s.Name = "wprime"
	s.NEvents = 20
	s.Seed = 5
	s.OutFile = filepath.Join(dir, "wprime.root")
	return s
}

func TestOpenSample(t *testing.T) {
	s := DefaultSample
	_, err := OpenSample(s, "")
	require.Error(t, err, "unresolved seed")

	s.Seed = 1
	s.Process = "Higgs"
	_, err = OpenSample(s, "")
	require.Error(t, err)

	s.Process = "QCD"
	s.Pileup = 2
	src, err := OpenSample(s, "")
	require.NoError(t, err)
	defer src.Close()

	parts, err := src.Next()
	require.NoError(t, err)
	var pileup int
	for _, p := range parts {
		if p.Pileup {
			pileup++
		}
	}
	require.Greater(t, pileup, 0)
}

func TestRunSample(t *testing.T) {
	s := testSample(t.TempDir())

	buf, err := RunSample(s, "", false, nil)
	require.NoError(t, err)
	require.Equal(t, s.NEvents, buf.Filled+buf.Skipped)
	require.Greater(t, buf.Filled, 0)

	var n, wjets int
	err = ScanEvents(s.OutFile, func(i int64, rec *EventRecord) error {
		n++
		require.Contains(t, []int32{0, 23, 24}, rec.BosonID)
		require.Contains(t, []int32{0, 1}, rec.BTagged)
		require.GreaterOrEqual(t, rec.MatchNoPix, int32(-1))
		require.Equal(t, int32(0), rec.NIsoLeptons, "Z decays to neutrinos")
		require.NotEqual(t, float32(Unset), rec.JetCharge)
		if rec.BosonID == 24 {
			wjets++
		}
		require.Equal(t, int32(s.Pixels*s.Pixels), rec.NFilled)
		require.Greater(t, rec.LeadingPt, float32(JetPtMin))
		require.Greater(t, rec.LeadingPtNoPix, float32(JetPtMin))
		require.GreaterOrEqual(t, rec.DeltaR, float32(0))
		require.GreaterOrEqual(t, rec.Tau1, float32(0))
		for _, v := range rec.Intensity {
			require.GreaterOrEqual(t, v, float32(0))
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, buf.Filled, n)
	require.Greater(t, wjets, 0)
}

func TestRunSampleIsReproducible(t *testing.T) {
	s1 := testSample(t.TempDir())
	s2 := testSample(t.TempDir())
	s1.NEvents, s2.NEvents = 5, 5

	_, err := RunSample(s1, "", false, nil)
	require.NoError(t, err)
	_, err = RunSample(s2, "", false, nil)
	require.NoError(t, err)

	var recs []EventRecord
	require.NoError(t, ScanEvents(s1.OutFile, func(_ int64, rec *EventRecord) error {
		c := *rec
		c.Intensity = append([]float32(nil), rec.Intensity...)
		recs = append(recs, c)
		return nil
	}))
	var i int
	require.NoError(t, ScanEvents(s2.OutFile, func(_ int64, rec *EventRecord) error {
		require.Equal(t, recs[i], *rec)
		i++
		return nil
	}))
	require.Equal(t, len(recs), i)
}

func TestConverter(t *testing.T) {
	dir := t.TempDir()
	s := testSample(dir)
	buf, err := RunSample(s, "", false, nil)
	require.NoError(t, err)

	conv := Converter{
		Signal:    "wprime",
		Selection: Selection{EtaMax: 10, PtMin: 0, PtMax: 1e5, MMin: -1, MMax: 1e5},
		Dump:      filepath.Join(dir, "dump"),
		Save:      filepath.Join(dir, "save"),
		Plot:      filepath.Join(dir, "plot"),
	}
	stats, err := conv.Run([]string{s.OutFile})
	require.NoError(t, err)
	require.Equal(t, 1, stats.Files)
	require.Equal(t, buf.Filled, stats.Entries)
	require.Equal(t, buf.Filled, stats.Selected)
	require.Equal(t, stats.Selected, stats.Signal)

	var n int
	err = ScanTree(filepath.Join(dir, "dump-chnk0.root"), ImagesTreeName, func(_ int64, rec *ImageRecord) error {
		n++
		require.Equal(t, float32(1), rec.Signal)
		require.Len(t, rec.Image, s.Pixels*s.Pixels)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, stats.Selected, n)

	f, err := os.Open(filepath.Join(dir, "save_features.npy"))
	require.NoError(t, err)
	defer f.Close()
	var feats mat.Dense
	require.NoError(t, npyio.Read(f, &feats))
	r, c := feats.Dims()
	require.Equal(t, stats.Selected, r)
	require.Equal(t, 13, c)
	require.Equal(t, 1.0, feats.At(0, 0))

	_, err = os.Stat(filepath.Join(dir, "save_images.npy"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "plot_signal.png"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "plot_bkg.png"))
	require.True(t, os.IsNotExist(err))
}

func TestConverterErrors(t *testing.T) {
	var conv Converter
	_, err := conv.Run(nil)
	require.Error(t, err)

	_, err = conv.Run([]string{"a.root"})
	require.ErrorContains(t, err, "npy")
}
