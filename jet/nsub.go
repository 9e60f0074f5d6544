package jet

import "math"

// Nsubjettiness evaluates tau_N with the normalized measure
//
//	tau_N = sum_i pt_i min_k dR(i, axis_k)^Beta / sum_i pt_i R0^Beta
//
// using winner-take-all exclusive-kt axes. The axes are not refined by a
// subsequent minimization pass. With Unnormalized set the denominator is
// dropped and tau_N is in GeV.
type Nsubjettiness struct {
	Beta         float64
	R0           float64
	Unnormalized bool
}

// DefaultNsubjettiness is the measure written to the event tree.
var DefaultNsubjettiness = Nsubjettiness{Beta: 1, R0: 1}

// Axis is a subjet direction in the (rapidity, phi) plane.
type Axis struct {
	Pt, Rapidity, Phi float64
}

// Tau returns tau_N for the given constituents.
func (ns Nsubjettiness) Tau(n int, constituents []Particle) float64 {
	return ns.Taus(n, constituents)[n-1]
}

// Taus returns tau_1 ... tau_nmax. A jet with fewer constituents than N
// has tau_N = 0.
func (ns Nsubjettiness) Taus(nmax int, constituents []Particle) []float64 {
	taus := make([]float64, nmax)
	if len(constituents) == 0 {
		return taus
	}

	norm := 1.0
	if !ns.Unnormalized {
		norm = 0
		for i := range constituents {
			norm += constituents[i].Pt() * math.Pow(ns.R0, ns.Beta)
		}
	}
	if norm <= 0 {
		return taus
	}

	axes := WTAKtAxes(constituents, nmax)
	for n := 1; n <= nmax; n++ {
		if len(axes[n-1]) < n {
			continue
		}
		sum := 0.0
		for i := range constituents {
			c := &constituents[i]
			y, phi := c.Rapidity(), c.Phi()
			dmin := math.Inf(1)
			for _, ax := range axes[n-1] {
				dmin = math.Min(dmin, DeltaR(y, phi, ax.Rapidity, ax.Phi))
			}
			sum += c.Pt() * math.Pow(dmin, ns.Beta)
		}
		taus[n-1] = sum / norm
	}
	return taus
}

// TauRatio returns num/den, or -10 when |den| < 1e-4.
func TauRatio(num, den float64) float64 {
	if math.Abs(den) < 1e-4 {
		return -10
	}
	return num / den
}

// WTAKtAxes clusters the particles exclusively with the kt distance
// min(pt_i, pt_j)^2 dR_ij^2 and winner-take-all recombination: the merged
// axis keeps the direction of the harder input and the summed pt.
// axes[n-1] holds the axes when n pseudojets remain, for n <= nmax, and is
// nil when there are fewer than n particles.
func WTAKtAxes(particles []Particle, nmax int) [][]Axis {
	n := len(particles)
	axes := make([][]Axis, nmax)
	slots := make([]Axis, n)
	alive := make([]bool, n)
	for i := range particles {
		p := &particles[i]
		slots[i] = Axis{Pt: p.Pt(), Rapidity: p.Rapidity(), Phi: p.Phi()}
		alive[i] = true
	}

	// d[i][j] is only kept for j < i.
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, i)
		for j := 0; j < i; j++ {
			d[i][j] = ktDistance(slots[i], slots[j])
		}
	}

	remaining := n
	snapshot := func() {
		if remaining == 0 || remaining > nmax {
			return
		}
		out := make([]Axis, 0, remaining)
		for i, ok := range alive {
			if ok {
				out = append(out, slots[i])
			}
		}
		axes[remaining-1] = out
	}
	snapshot()

	for remaining > 1 {
		bi, bj, best := -1, -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if !alive[i] {
				continue
			}
			for j := 0; j < i; j++ {
				if alive[j] && d[i][j] < best {
					bi, bj, best = i, j, d[i][j]
				}
			}
		}
		if bi < 0 {
			break
		}

		winner := slots[bi]
		if slots[bj].Pt > winner.Pt {
			winner = slots[bj]
		}
		winner.Pt = slots[bi].Pt + slots[bj].Pt
		slots[bj] = winner
		alive[bi] = false
		remaining--

		for k := 0; k < n; k++ {
			switch {
			case !alive[k] || k == bj:
			case k < bj:
				d[bj][k] = ktDistance(slots[bj], slots[k])
			default:
				d[k][bj] = ktDistance(slots[k], slots[bj])
			}
		}
		snapshot()
	}
	return axes
}

func ktDistance(a, b Axis) float64 {
	pt := math.Min(a.Pt, b.Pt)
	dr := DeltaR(a.Rapidity, a.Phi, b.Rapidity, b.Phi)
	return pt * pt * dr * dr
}
