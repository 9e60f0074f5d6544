package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/jetimage"
	"github.com/decibelcooper/jetimage/jet"
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
		title  = flag.String("title", "", "plot title")
		output = flag.String("output", "out.png", "output file")
		nBins  = flag.Int("nbins", 50, "number of bins")
		mMin   = flag.Float64("minm", 0, "minimum jet mass")
		mMax   = flag.Float64("maxm", 200, "maximum jet mass")
		noPix  = flag.Bool("nopix", false, "also plot the mass of jets clustered without the calorimeter")
		image  = flag.Bool("image", false, "also plot the mass computed from the jet image pixels")
		width  = flag.Float64("range", 1, "half width of the images in eta and phi")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "Leading jet mass (GeV)"
	p.X.Tick.Marker = jetimage.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = jetimage.PreciseTicks{NSuggestedTicks: 5}

	nPlotted := 0
	for _, filename := range flag.Args() {
		mHist := hbook.NewH1D(*nBins, *mMin, *mMax)
		mNoPixHist := hbook.NewH1D(*nBins, *mMin, *mMax)
		mImageHist := hbook.NewH1D(*nBins, *mMin, *mMax)

		err := jetimage.ScanEvents(filename, func(_ int64, rec *jetimage.EventRecord) error {
			if rec.LeadingM != jetimage.Unset {
				mHist.Fill(float64(rec.LeadingM), 1)
			}
			if rec.LeadingMNoPix != jetimage.Unset {
				mNoPixHist.Fill(float64(rec.LeadingMNoPix), 1)
			}
			if *image && rec.LeadingPt != jetimage.Unset {
				dim := int(math.Round(math.Sqrt(float64(len(rec.Intensity)))))
				img := make([]float64, len(rec.Intensity))
				for i, v := range rec.Intensity {
					img[i] = float64(v)
				}
				mImageHist.Fill(jet.ImageMass(img, dim, *width), 1)
			}
			return nil
		})
		if err != nil {
			log.Fatal(err)
		}

		hists := []*hbook.H1D{mHist}
		names := []string{filepath.Base(filename)}
		if *noPix {
			hists = append(hists, mNoPixHist)
			names = append(names, filepath.Base(filename)+" (no pixels)")
		}
		if *image {
			hists = append(hists, mImageHist)
			names = append(names, filepath.Base(filename)+" (image)")
		}

		for k, hist := range hists {
			h := hplot.NewH1D(hist)
			h.FillColor = nil
			h.LineStyle.Color = jetimage.LineColor(nPlotted)
			if len(hists) == 1 && flag.NArg() == 1 {
				h.Infos.Style = hplot.HInfoSummary
			}
			p.Add(h)
			p.Legend.Add(names[k], h)
			nPlotted++
		}
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}
