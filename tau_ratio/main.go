package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/jetimage"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <event-tree-files>...

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	var (
		title     = flag.String("title", "", "plot title")
		output    = flag.String("output", "out.png", "output file")
		ratios    = jetimage.IntArrayFlags{Array: []int{21}}
		noPix     = flag.Bool("nopix", false, "use jets clustered without the calorimeter")
		doProfile = flag.Bool("profile", false, "write a CPU profile")
	)
	flag.Var(&ratios, "ratio", "N-subjettiness ratios to plot, 21 and/or 32 (comma-separated or repeated)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	for _, ratio := range ratios.Array {
		if ratio != 21 && ratio != 32 {
			printUsage()
			log.Fatal("Invalid arguments")
		}
	}
	if *doProfile {
		defer profile.Start().Stop()
	}

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "tau_N / tau_N-1"
	if len(ratios.Array) == 1 {
		ratio := ratios.Array[0]
		p.X.Label.Text = fmt.Sprintf("tau_%d / tau_%d", ratio/10, ratio%10)
	}
	p.X.Tick.Marker = jetimage.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = jetimage.LogTicks{}
	p.Y.Scale = jetimage.LogScale{}

	i := 0
	for _, filename := range flag.Args() {
		for _, ratio := range ratios.Array {
			hist := makeHist(filename, ratio, *noPix)

			h := hplot.NewH1D(hist)
			h.FillColor = nil
			h.LineStyle.Color = jetimage.LineColor(i)
			h.Infos.Style = hplot.HInfoNone

			label := filepath.Base(filename)
			if len(ratios.Array) > 1 {
				label += fmt.Sprintf(" tau_%d", ratio)
			}
			p.Add(h)
			p.Legend.Add(label, h)
			i++
		}
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}

// makeHist fills the chosen ratio of every entry. Entries where the
// denominator vanished carry -10 and are left out.
func makeHist(filename string, ratio int, noPix bool) *hbook.H1D {
	hist := hbook.NewH1D(50, 0, 1.2)

	err := jetimage.ScanEvents(filename, func(_ int64, rec *jetimage.EventRecord) error {
		var v float32
		switch {
		case ratio == 21 && !noPix:
			v = rec.Tau21
		case ratio == 21:
			v = rec.Tau21NoPix
		case !noPix:
			v = rec.Tau32
		default:
			v = rec.Tau32NoPix
		}
		if v >= 0 {
			hist.Fill(float64(v), 1)
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	return hist
}
