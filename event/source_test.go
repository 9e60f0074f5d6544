package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenUnknownFormat(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "events.txt"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.hepmc"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnknownFormat)
}

const lhefEvent = `<LesHouchesEvents version="1.0">
<header>
</header>
<init>
 2212 2212 0.70000000000E+04 0.70000000000E+04 0 0 10042 10042 3 1
 0.50871500000E+03 0.39381826023E+01 0.50871500000E+03 1
</init>
<event>
 4 1 0.50871500000E+03 0.17250000000E+03 0.75467711139E-02 0.10807402460E+00
 21 -1 0 0 501 502 0.00000000000E+00 0.00000000000E+00 0.45000000000E+03 0.45000000000E+03 0.00000000000E+00 0. 9.
 21 -1 0 0 503 501 0.00000000000E+00 0.00000000000E+00 -0.30000000000E+03 0.30000000000E+03 0.00000000000E+00 0. 9.
 6 1 1 2 503 0 0.10000000000E+03 0.20000000000E+02 0.30000000000E+03 0.36700000000E+03 0.17250000000E+03 0. 9.
 -6 1 1 2 0 502 -0.10000000000E+03 -0.20000000000E+02 -0.15000000000E+03 0.38300000000E+03 0.17250000000E+03 0. 9.
</event>
</LesHouchesEvents>
`

func TestLHEFSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttbar.lhe")
	require.NoError(t, os.WriteFile(path, []byte(lhefEvent), 0o644))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	parts, err := src.Next()
	require.NoError(t, err)
	require.Len(t, parts, 2)

	require.Equal(t, 6, parts[0].PdgID)
	require.Equal(t, 2, parts[0].Index)
	require.InDelta(t, 100, parts[0].Px(), 1e-9)
	require.InDelta(t, 367, parts[0].E(), 1e-9)

	require.Equal(t, -6, parts[1].PdgID)
	require.Equal(t, 3, parts[1].Index)
}
