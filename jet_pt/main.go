package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/jetimage"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <event-tree-files>...

Plots the transverse momentum of the leading jet found from calorimeter
towers and from the raw particles.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	var (
		title  = flag.String("title", "", "plot title")
		output = flag.String("output", "out.png", "output file")
		pTMax  = flag.Float64("maxpt", 1000, "maximum transverse momentum")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "Leading jet p_T (GeV)"
	p.X.Tick.Marker = jetimage.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = jetimage.LogTicks{}
	p.Y.Scale = jetimage.LogScale{}

	i := 0
	for _, filename := range flag.Args() {
		hists := makeHists(filename, *pTMax)
		labels := []string{"towers", "particles"}
		for k, hist := range hists {
			h := hplot.NewH1D(hist)
			h.FillColor = nil
			h.LineStyle.Color = jetimage.LineColor(i)
			h.Infos.Style = hplot.HInfoNone

			p.Add(h)
			p.Legend.Add(filepath.Base(filename)+" "+labels[k], h)
			i++
		}
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}

func makeHists(filename string, pTMax float64) []*hbook.H1D {
	pTHist := hbook.NewH1D(50, 0, pTMax)
	pTNoPixHist := hbook.NewH1D(50, 0, pTMax)

	err := jetimage.ScanEvents(filename, func(_ int64, rec *jetimage.EventRecord) error {
		if rec.LeadingPt > 0 {
			pTHist.Fill(float64(rec.LeadingPt), 1)
		}
		if rec.LeadingPtNoPix > 0 {
			pTNoPixHist.Fill(float64(rec.LeadingPtNoPix), 1)
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	return []*hbook.H1D{pTHist, pTNoPixHist}
}
