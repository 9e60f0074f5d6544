package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/decibelcooper/jetimage/jet"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] [event-file]

Reads one event as "px py pz E" lines, up to a line starting with #END,
from event-file or standard input. Lines starting with # are comments.
The event is clustered with anti-kt and the N-subjettiness of the two
hardest jets is printed.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	var (
		radius   = flag.Float64("r", 1, "anti-kt jet radius")
		pTMin    = flag.Float64("ptmin", 200, "minimum transverse momentum of analyzed jets")
		nJets    = flag.Int("njets", 2, "number of hardest jets to analyze")
		normDist = flag.Float64("r0", 0, "characteristic jet radius of the normalized measure, 0 means unnormalized taus")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() > 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	in := io.Reader(os.Stdin)
	if flag.NArg() == 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	particles, err := readEvent(in)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("# read an event with %d particles\n", len(particles))

	jets, err := jet.AntiKt(particles, *radius, 0)
	if err != nil {
		log.Fatal(err)
	}

	title := "N-subjettiness with Unnormalized Measure (in GeV)"
	measures := []jet.Nsubjettiness{
		{Beta: 1, R0: 1, Unnormalized: true},
		{Beta: 2, R0: 1, Unnormalized: true},
	}
	if *normDist > 0 {
		title = fmt.Sprintf("N-subjettiness with Normalized Measure (R0 = %g)", *normDist)
		for i := range measures {
			measures[i].R0 = *normDist
			measures[i].Unnormalized = false
		}
	}

	for i := 0; i < *nJets && i < len(jets); i++ {
		j := &jets[i]
		if j.Pt() < *pTMin {
			continue
		}

		fmt.Printf("Analyzing Jet %d:\n", i+1)
		jet.PrintJets(os.Stdout, jets[i:i+1])

		var rows []jet.TauRow
		for _, ns := range measures {
			rows = append(rows, jet.TauRow{
				Label: strconv.FormatFloat(ns.Beta, 'f', 6, 64),
				Taus:  ns.Taus(3, j.Constituents),
			})
		}
		jet.PrintTaus(os.Stdout, title+"\nWinner-Take-All kT Axes", rows)
	}
}

func readEvent(r io.Reader) ([]jet.Particle, error) {
	var particles []jet.Particle
	scan := bufio.NewScanner(r)
	for line := 1; scan.Scan(); line++ {
		text := strings.TrimSpace(scan.Text())
		if strings.HasPrefix(text, "#END") {
			break
		}
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 4 {
			return nil, fmt.Errorf("line %d: want px py pz E, got %q", line, text)
		}
		var p4 [4]float64
		for k := range p4 {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			p4[k] = v
		}
		p := jet.NewParticle(p4[0], p4[1], p4[2], p4[3])
		p.Index = len(particles)
		particles = append(particles, p)
	}
	return particles, scan.Err()
}
