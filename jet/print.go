package jet

import (
	"fmt"
	"io"
	"strings"
)

var rule = strings.Repeat("-", 85)

// PrintJets writes one line of kinematics per jet.
func PrintJets(w io.Writer, jets []Jet) {
	fmt.Fprintf(w, "%5s %12s %12s %12s %12s %12s %8s\n", "jet", "rap", "phi", "pt", "m", "e", "n_const")
	for i := range jets {
		j := &jets[i]
		fmt.Fprintf(w, "%5d %12.6f %12.6f %12.6f %12.6f %12.6f %8d\n",
			i, j.Rapidity(), j.Phi(), j.Pt(), j.M(), j.E(), len(j.Constituents))
	}
}

// TauRow is one line of an N-subjettiness table.
type TauRow struct {
	Label string
	Taus  []float64 // tau_1, tau_2, tau_3
}

// PrintTaus writes the taus and the ratios tau2/tau1 and tau3/tau2.
func PrintTaus(w io.Writer, title string, rows []TauRow) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%15s %14s %14s %14s %14s %14s\n", "beta", "tau1", "tau2", "tau3", "tau2/tau1", "tau3/tau2")
	for _, row := range rows {
		var t [3]float64
		copy(t[:], row.Taus)
		fmt.Fprintf(w, "%15s %14.6f %14.6f %14.6f %14.6f %14.6f\n",
			row.Label, t[0], t[1], t[2], TauRatio(t[1], t[0]), TauRatio(t[2], t[1]))
	}
	fmt.Fprintln(w, rule)
}
