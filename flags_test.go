package jetimage

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloatArrayFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	ptBins := FloatArrayFlags{Array: []float64{0, 250, 500}}
	fs.Var(&ptBins, "ptbins", "")

	require.NoError(t, fs.Parse(nil))
	require.Equal(t, []float64{0, 250, 500}, ptBins.Array)

	require.NoError(t, fs.Parse([]string{"-ptbins", "1.5, 2", "-ptbins", "3"}))
	require.Equal(t, []float64{1.5, 2, 3}, ptBins.Array)
	require.Equal(t, "[1.5 2 3]", ptBins.String())

	require.Error(t, ptBins.Set("a"))
	require.Error(t, ptBins.Set(" , "))
}

func TestIntArrayFlags(t *testing.T) {
	pixels := IntArrayFlags{Array: []int{25}}
	require.NoError(t, pixels.Set("16,32"))
	require.NoError(t, pixels.Set("64"))
	require.Equal(t, []int{16, 32, 64}, pixels.Array)

	require.Error(t, pixels.Set("1.5"))
	require.Equal(t, []int{16, 32, 64}, pixels.Array)
}
