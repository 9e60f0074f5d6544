package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/jetimage"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <event-tree-file>

options:
`,
	)
	flag.PrintDefaults()
}

var (
	output = flag.String("output", "out.png", "output file")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	p := plot.New()
	p.X.Label.Text = "log_10{pixel intensity (GeV)}"
	p.X.Tick.Marker = jetimage.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = jetimage.LogTicks{}
	p.Y.Scale = jetimage.LogScale{}

	hist := hbook.NewH1D(100, -3, 4)

	err := jetimage.ScanEvents(flag.Arg(0), func(_ int64, rec *jetimage.EventRecord) error {
		for _, v := range rec.Intensity {
			if v > 0 {
				hist.Fill(math.Log10(float64(v)), 1)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	hPlot := hplot.NewH1D(hist)
	p.Add(hPlot)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}
