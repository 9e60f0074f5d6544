package event

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/jetimage/jet"
)

func TestNewGunValidates(t *testing.T) {
	_, err := NewGun(GunConfig{Process: Process(7), BosonMass: 800})
	require.ErrorIs(t, err, ErrUnknownProcess)

	_, err = NewGun(GunConfig{Process: QCD, PtHatMin: 500, PtHatMax: 100})
	require.Error(t, err)

	_, err = NewGun(GunConfig{Process: ZprimeTottbar, BosonMass: 300})
	require.Error(t, err)

	_, err = NewGun(GunConfig{Process: WprimeToWZHad, BosonMass: 150})
	require.Error(t, err)

	_, err = NewGun(GunConfig{Process: WprimeToWZHad, BosonMass: 800})
	require.NoError(t, err)
}

func TestGunIsDeterministic(t *testing.T) {
	cfg := GunConfig{Process: ZprimeTottbar, BosonMass: 1500, Seed: 42}
	g1, err := NewGun(cfg)
	require.NoError(t, err)
	g2, err := NewGun(cfg)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		e1, err := g1.Next()
		require.NoError(t, err)
		e2, err := g2.Next()
		require.NoError(t, err)
		require.Equal(t, e1, e2)
		require.NotEmpty(t, e1)
	}

	cfg.Seed = 43
	g3, err := NewGun(cfg)
	require.NoError(t, err)
	e3, err := g3.Next()
	require.NoError(t, err)
	g1, _ = NewGun(GunConfig{Process: ZprimeTottbar, BosonMass: 1500, Seed: 42})
	e1, _ := g1.Next()
	require.NotEqual(t, e1, e3)
}

func TestGunEvents(t *testing.T) {
	for _, tc := range []struct {
		cfg      GunConfig
		neutrino bool
		electron bool
	}{
		{cfg: GunConfig{Process: ZprimeTottbar, BosonMass: 1500}},
		{cfg: GunConfig{Process: WprimeToWZLept, BosonMass: 800}, neutrino: true},
		{cfg: GunConfig{Process: WprimeToWZHad, BosonMass: 800}, neutrino: true, electron: true},
		{cfg: GunConfig{Process: QCD, PtHatMin: 100, PtHatMax: 500}},
	} {
		t.Run(tc.cfg.Process.String(), func(t *testing.T) {
			g, err := NewGun(tc.cfg)
			require.NoError(t, err)

			parts, err := g.Next()
			require.NoError(t, err)

			var nu, e bool
			var etot float64
			for i, p := range parts {
				require.Equal(t, i, p.Index)
				require.False(t, p.Pileup)
				require.False(t, math.IsNaN(p.E()))
				nu = nu || jet.IsInvisible(p.PdgID)
				e = e || p.PdgID == 11
				etot += p.E()
			}
			require.Equal(t, tc.neutrino, nu)
			require.Equal(t, tc.electron, e)
			require.Greater(t, etot, 100.0)
		})
	}
}

func TestGunTruth(t *testing.T) {
	for _, tc := range []struct {
		cfg    GunConfig
		pdgs   []int
		masses []float64
	}{
		{
			cfg:    GunConfig{Process: ZprimeTottbar, BosonMass: 1500, Seed: 3},
			pdgs:   []int{6, 24, -521, -6, -24, 521},
			masses: []float64{massTop, massW, massB, massTop, massW, massB},
		},
		{
			cfg:    GunConfig{Process: WprimeToWZLept, BosonMass: 800, Seed: 3},
			pdgs:   []int{24, 23},
			masses: []float64{massW, massZ},
		},
		{
			cfg:    GunConfig{Process: WprimeToWZHad, BosonMass: 800, Seed: 3},
			pdgs:   []int{24, 23},
			masses: []float64{massW, massZ},
		},
		{cfg: GunConfig{Process: QCD, PtHatMin: 100, PtHatMax: 500, Seed: 3}},
	} {
		t.Run(tc.cfg.Process.String(), func(t *testing.T) {
			g, err := NewGun(tc.cfg)
			require.NoError(t, err)

			for evt := 0; evt < 3; evt++ {
				_, err := g.Next()
				require.NoError(t, err)

				truth := g.Truth()
				require.Len(t, truth, len(tc.pdgs))
				for i := range truth {
					require.Equal(t, tc.pdgs[i], truth[i].PdgID)
					require.Equal(t, i, truth[i].Index)
					require.InDelta(t, tc.masses[i], truth[i].M(), 1e-6)
				}
			}
		})
	}
}

func TestGunTopsAddUpToBoson(t *testing.T) {
	g, err := NewGun(GunConfig{Process: ZprimeTottbar, BosonMass: 1500, Seed: 8})
	require.NoError(t, err)
	_, err = g.Next()
	require.NoError(t, err)

	truth := g.Truth()
	zp := truth[0].Add(&truth[3].Momentum)
	require.InDelta(t, 1500, zp.M(), 1e-6)
	require.True(t, jet.IsBHadron(truth[2].PdgID))
}

func TestPtHatRange(t *testing.T) {
	g, err := NewGun(GunConfig{Process: QCD, PtHatMin: 250, PtHatMax: 300, Seed: 1})
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		pt := g.ptHat()
		require.GreaterOrEqual(t, pt, 250.0-1e-9)
		require.LessOrEqual(t, pt, 300.0+1e-9)
	}
}

func TestDecayConservesMomentum(t *testing.T) {
	g, err := NewGun(GunConfig{Process: ZprimeTottbar, BosonMass: 1500, Seed: 7})
	require.NoError(t, err)

	parent := ptYPhiM(400, 0.8, 2, 172.5)
	for i := 0; i < 100; i++ {
		d1, d2 := g.decay(parent, massW, massB)
		sum := fmom.Add(&d1, &d2)
		require.InDelta(t, parent.Px(), sum.Px(), 1e-8)
		require.InDelta(t, parent.Py(), sum.Py(), 1e-8)
		require.InDelta(t, parent.Pz(), sum.Pz(), 1e-8)
		require.InDelta(t, parent.E(), sum.E(), 1e-8)
		require.InDelta(t, massW, d1.M(), 1e-6)
		require.InDelta(t, massB, d2.M(), 1e-5)
	}
}

func TestDecayAtRest(t *testing.T) {
	g, err := NewGun(GunConfig{Process: WprimeToWZLept, BosonMass: 800, Seed: 3})
	require.NoError(t, err)

	parent := fmom.NewPxPyPzE(0, 0, 0, massZ)
	d1, d2 := g.decay(parent, 0, 0)
	require.InDelta(t, massZ/2, d1.E(), 1e-9)
	require.InDelta(t, massZ/2, d2.E(), 1e-9)
	require.InDelta(t, -d1.Px(), d2.Px(), 1e-12)
	require.InDelta(t, -d1.Pz(), d2.Pz(), 1e-12)
	require.InDelta(t, 0, d1.M2(), 1e-9)
}
