package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProcess(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Process
	}{
		{"1", ZprimeTottbar},
		{"2", WprimeToWZLept},
		{"3", WprimeToWZHad},
		{"4", QCD},
		{"ZprimeTottbar", ZprimeTottbar},
		{"WprimeToWZ_lept", WprimeToWZLept},
		{"wprimetowz_had", WprimeToWZHad},
		{"qcd", QCD},
	} {
		got, err := ParseProcess(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	for _, in := range []string{"0", "5", "-1", "Higgs", ""} {
		_, err := ParseProcess(in)
		require.ErrorIs(t, err, ErrUnknownProcess, in)
	}
}

func TestProcessString(t *testing.T) {
	require.Equal(t, "WprimeToWZ_lept", WprimeToWZLept.String())
	require.Equal(t, "QCD", QCD.String())
	require.Equal(t, "Process(9)", Process(9).String())
	require.False(t, Process(0).Valid())
	require.True(t, ZprimeTottbar.Valid())
}

func TestSeed(t *testing.T) {
	require.Equal(t, 0, Seed(0))
	require.Equal(t, 1234, Seed(1234))

	s := Seed(-1)
	require.GreaterOrEqual(t, s, 0)
	require.Less(t, s, 104729)
}
