package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadEvent(t *testing.T) {
	in := `# px py pz E
 1.0  0.0  0.0  1.0

-2.5 1.5 3.0 4.2
#END
7 7 7 7
`
	parts, err := readEvent(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, parts, 2)
	require.Equal(t, 1, parts[1].Index)
	require.InDelta(t, -2.5, parts[1].Px(), 1e-12)
	require.InDelta(t, 4.2, parts[1].E(), 1e-12)

	_, err = readEvent(strings.NewReader("1 2 3\n"))
	require.ErrorContains(t, err, "line 1")

	_, err = readEvent(strings.NewReader("1 2 x 4\n"))
	require.Error(t, err)
}
