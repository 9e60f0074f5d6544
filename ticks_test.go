package jetimage

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
)

func labelled(ticks []plot.Tick) (values []float64, labels []string) {
	for _, t := range ticks {
		if t.IsMinor() {
			continue
		}
		values = append(values, t.Value)
		labels = append(labels, t.Label)
	}
	return values, labels
}

func TestPreciseTicks(t *testing.T) {
	ticks := PreciseTicks{NSuggestedTicks: 4}.Ticks(0, 10)
	values, labels := labelled(ticks)
	require.Equal(t, []float64{0, 3, 6, 9}, values)
	require.Equal(t, []string{"0", "3", "6", "9"}, labels)
	require.Len(t, ticks, 11)

	values, _ = labelled(PreciseTicks{NSuggestedTicks: 5}.Ticks(-1, 1))
	require.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, values)

	ticks = PreciseTicks{}.Ticks(2, 2)
	require.Len(t, ticks, 1)
	require.Equal(t, "2", ticks[0].Label)
}

func TestLogTicks(t *testing.T) {
	ticks := LogTicks{}.Ticks(1, 1000)
	require.Len(t, ticks, 28)
	_, labels := labelled(ticks)
	require.Equal(t, []string{"1", "10", "100", "1000"}, labels)

	_, labels = labelled(LogTicks{Floor: 1}.Ticks(0, 50))
	require.Equal(t, []string{"1", "10"}, labels)
}

func TestLogScale(t *testing.T) {
	s := LogScale{}
	require.InDelta(t, 0.5, s.Normalize(1, 100, 10), 1e-12)
	require.InDelta(t, 0, s.Normalize(0, 100, 0), 1e-12)
	require.InDelta(t, 1, s.Normalize(-5, 100, 100), 1e-12)
}
