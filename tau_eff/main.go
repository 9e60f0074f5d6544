package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/jetimage"
)

var (
	pTMin  = flag.Float64("minpt", 200, "minimum leading jet transverse momentum")
	pTMax  = flag.Float64("maxpt", 600, "maximum leading jet transverse momentum")
	nBins  = flag.Int("nbins", 20, "number of bins")
	title  = flag.String("title", "", "plot title")
	prefix = flag.String("prefix", "out", "output file prefix")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <event-tree-files>...

Plots the fraction of leading jets with tau_2/tau_1 below -cut versus the
jet transverse momentum.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	tauCuts := jetimage.FloatArrayFlags{Array: []float64{0.5}}
	flag.Var(&tauCuts, "cut", "a jet is tagged when tau_2/tau_1 is below this value (comma-separated or repeated)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 || *nBins < 1 || *pTMax <= *pTMin {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "Leading jet p_T (GeV)"
	p.Y.Label.Text = "fraction with tau_21 below cut"
	if len(tauCuts.Array) == 1 {
		p.Y.Label.Text = fmt.Sprintf("fraction with tau_21 < %g", tauCuts.Array[0])
	}
	p.X.Tick.Marker = jetimage.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = jetimage.PreciseTicks{NSuggestedTicks: 5}

	i := 0
	for _, filename := range flag.Args() {
		allHist := hbook.NewH1D(*nBins, *pTMin, *pTMax)
		taggedHists := make([]*hbook.H1D, len(tauCuts.Array))
		for c := range taggedHists {
			taggedHists[c] = hbook.NewH1D(*nBins, *pTMin, *pTMax)
		}

		err := jetimage.ScanEvents(filename, func(_ int64, rec *jetimage.EventRecord) error {
			if rec.Tau21 < 0 {
				return nil
			}
			pT := float64(rec.LeadingPt)
			allHist.Fill(pT, 1)
			for c, cut := range tauCuts.Array {
				if float64(rec.Tau21) < cut {
					taggedHists[c].Fill(pT, 1)
				}
			}
			return nil
		})
		if err != nil {
			log.Fatal(err)
		}

		for c, taggedHist := range taggedHists {
			points := make(plotter.XYs, *nBins)
			xErrors := make(plotter.XErrors, *nBins)
			yErrors := make(plotter.YErrors, *nBins)
			binHalfWidth := (*pTMax - *pTMin) / float64(*nBins) / 2
			binSigma := binHalfWidth / math.Sqrt(3.)
			for k := range points {
				all := allHist.Binning.Bins[k]
				tagged := taggedHist.Binning.Bins[k]

				points[k].X = all.XMid()
				xErrors[k].Low = binSigma
				xErrors[k].High = binSigma

				n, m := all.SumW(), tagged.SumW()
				if n > 0 {
					points[k].Y = m / n
					yErrors[k].Low = math.Sqrt((1 - m/n) * m / math.Pow(n, 2))
					yErrors[k].High = yErrors[k].Low
				}
			}
			errPoints := plotutil.ErrorPoints{XYs: points, XErrors: xErrors, YErrors: yErrors}
			xerr, err := plotter.NewXErrorBars(errPoints)
			if err != nil {
				log.Fatal(err)
			}
			yerr, err := plotter.NewYErrorBars(errPoints)
			if err != nil {
				log.Fatal(err)
			}

			scatter, err := plotter.NewScatter(points)
			if err != nil {
				log.Fatal(err)
			}

			pointColor := jetimage.LineColor(i)
			xerr.LineStyle.Color = pointColor
			yerr.LineStyle.Color = pointColor
			scatter.GlyphStyle.Color = pointColor
			scatter.GlyphStyle.Radius = vg.Points(1.5)

			label := filepath.Base(filename)
			if len(tauCuts.Array) > 1 {
				label += fmt.Sprintf(" cut %g", tauCuts.Array[c])
			}
			p.Add(xerr, yerr, scatter)
			p.Legend.Add(label, scatter)
			i++
		}
	}

	for _, ext := range []string{".pdf", ".png"} {
		if err := p.Save(6*vg.Inch, 4*vg.Inch, *prefix+ext); err != nil {
			log.Fatal(err)
		}
	}
}
