package jet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// twoJetEvent has a hard three-particle jet around (y, phi) = (0, 1), a
// softer jet around (1, 4) and an isolated soft particle.
func twoJetEvent() []Particle {
	ps := []Particle{
		NewPtYPhiM(100, 0, 1, 0),
		NewPtYPhiM(40, 0.05, 1.1, 0),
		NewPtYPhiM(1, 0.6, 1.4, 0),
		NewPtYPhiM(30, 1, 4, 0),
		NewPtYPhiM(25, 1.1, 4.05, 0),
		NewPtYPhiM(0.5, -3, 2.5, 0),
	}
	for i := range ps {
		ps[i].Index = i
		ps[i].PdgID = 211
	}
	return ps
}

func TestAntiKt(t *testing.T) {
	jets, err := AntiKt(twoJetEvent(), 0.8, 10)
	require.NoError(t, err)
	require.Len(t, jets, 2)

	require.Greater(t, jets[0].Pt(), jets[1].Pt())
	require.Len(t, jets[0].Constituents, 3)
	require.Len(t, jets[1].Constituents, 2)

	var idx []int
	for _, c := range jets[1].Constituents {
		idx = append(idx, c.Index)
	}
	require.ElementsMatch(t, []int{3, 4}, idx)

	var sum Momentum
	for i := range jets[0].Constituents {
		sum = sum.Add(&jets[0].Constituents[i].Momentum)
	}
	require.InDelta(t, sum.Pt(), jets[0].Pt(), 1e-6)
	require.InDelta(t, sum.M(), jets[0].M(), 1e-6)
}

func TestClusterEmpty(t *testing.T) {
	jets, err := AntiKt(nil, 1, 10)
	require.NoError(t, err)
	require.Empty(t, jets)
}

func TestTrim(t *testing.T) {
	jets, err := AntiKt(twoJetEvent(), 1, 10)
	require.NoError(t, err)
	require.NotEmpty(t, jets)

	lead := jets[0]
	require.Len(t, lead.Constituents, 3)

	trimmed, err := Trim(lead, 0.3, 0.05)
	require.NoError(t, err)
	require.Len(t, trimmed.Constituents, 2, "the soft far particle is trimmed away")
	require.NotEmpty(t, trimmed.Pieces)
	require.Less(t, trimmed.Pt(), lead.Pt())

	for i := 1; i < len(trimmed.Pieces); i++ {
		require.GreaterOrEqual(t, trimmed.Pieces[i-1].Pt(), trimmed.Pieces[i].Pt())
	}
}

func TestSortParticlesByPt(t *testing.T) {
	ps := twoJetEvent()
	SortParticlesByPt(ps)
	for i := 1; i < len(ps); i++ {
		require.GreaterOrEqual(t, ps[i-1].Pt(), ps[i].Pt())
	}
	require.Equal(t, 0, ps[0].Index)
}
