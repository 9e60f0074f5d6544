package jet

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTauRatio(t *testing.T) {
	require.Equal(t, -10.0, TauRatio(1, 0))
	require.Equal(t, -10.0, TauRatio(1, 9e-5))
	require.Equal(t, -10.0, TauRatio(1, -9e-5))
	require.InDelta(t, 0.5, TauRatio(1, 2), 1e-12)
}

func TestTausTwoProngs(t *testing.T) {
	parts := []Particle{
		NewPtYPhiM(100, 0, 1, 0),
		NewPtYPhiM(100, 0.4, 1, 0),
	}

	taus := DefaultNsubjettiness.Taus(3, parts)
	require.Len(t, taus, 3)
	// one axis on either particle: 100 * 0.4 / (200 * 1)
	require.InDelta(t, 0.2, taus[0], 1e-9)
	require.InDelta(t, 0, taus[1], 1e-12)
	require.Equal(t, 0.0, taus[2], "fewer particles than axes")

	raw := Nsubjettiness{Beta: 1, R0: 1, Unnormalized: true}
	require.InDelta(t, 40, raw.Tau(1, parts), 1e-7)

	beta2 := Nsubjettiness{Beta: 2, R0: 1}
	require.InDelta(t, 100*0.16/200, beta2.Tau(1, parts), 1e-9)
}

func TestTausEmpty(t *testing.T) {
	require.Equal(t, []float64{0, 0, 0}, DefaultNsubjettiness.Taus(3, nil))
}

func TestTausOrdering(t *testing.T) {
	parts := []Particle{
		NewPtYPhiM(120, 0, 1, 0),
		NewPtYPhiM(20, 0.1, 1.05, 0),
		NewPtYPhiM(80, 0.5, 1.3, 0),
		NewPtYPhiM(15, 0.55, 1.2, 0),
		NewPtYPhiM(60, -0.3, 0.6, 0),
		NewPtYPhiM(5, -0.35, 0.7, 0),
	}
	taus := DefaultNsubjettiness.Taus(3, parts)
	require.Greater(t, taus[0], taus[1])
	require.Greater(t, taus[1], taus[2])
	require.Greater(t, taus[2], 0.0)
}

func TestWTAKtAxes(t *testing.T) {
	parts := []Particle{
		NewPtYPhiM(10, 0, 1, 0),
		NewPtYPhiM(50, 0.1, 1, 0),
		NewPtYPhiM(30, 1, 2, 0),
	}
	axes := WTAKtAxes(parts, 4)
	require.Len(t, axes, 4)
	require.Len(t, axes[2], 3)
	require.Nil(t, axes[3])

	// the two close particles merge first, the harder one sets the axis
	require.Len(t, axes[1], 2)
	require.Len(t, axes[0], 1)
	one := axes[0][0]
	require.InDelta(t, 90, one.Pt, 1e-9)
	require.InDelta(t, 0.1, one.Rapidity, 1e-9)
	require.InDelta(t, 1, one.Phi, 1e-9)

	var pts []float64
	for _, ax := range axes[1] {
		pts = append(pts, ax.Pt)
	}
	sort.Float64s(pts)
	require.InDeltaSlice(t, []float64{30, 60}, pts, 1e-9)
}

func TestKtDistance(t *testing.T) {
	a := Axis{Pt: 10, Rapidity: 0, Phi: 0.1}
	b := Axis{Pt: 4, Rapidity: 0.3, Phi: 2*math.Pi - 0.3}
	require.InDelta(t, 16*0.25, ktDistance(a, b), 1e-9)
}
