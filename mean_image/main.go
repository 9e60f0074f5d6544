package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/decibelcooper/jetimage"
)

var (
	imRange    = flag.Float64("range", 1, "half width of the images in eta and phi")
	zMax       = flag.Float64("zmax", 0, "maximum intensity in the color map, 0 means the largest mean pixel")
	preprocess = flag.Bool("preprocess", false, "rotate and flip the images as jet_converter does")
	selected   = flag.Bool("select", false, "only use leading jets inside the default jet_converter selection")
	title      = flag.String("title", "", "plot title")
	output     = flag.String("output", "out.png", "output file")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <event-tree-files>...

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	var grid *jetimage.ImageGrid
	for _, filename := range flag.Args() {
		err := jetimage.ScanEvents(filename, func(i int64, rec *jetimage.EventRecord) error {
			if rec.LeadingPt == jetimage.Unset {
				return nil
			}
			if *selected && !jetimage.DefaultSelection.Accept(rec) {
				return nil
			}

			dim := int(math.Round(math.Sqrt(float64(len(rec.Intensity)))))
			if grid == nil {
				grid = jetimage.NewImageGrid(dim, *imRange)
			}

			img := rec.Intensity
			if *preprocess {
				img = jetimage.Preprocess(rec, dim, *imRange, false).Image
			}
			if err := grid.Add(img); err != nil {
				return fmt.Errorf("%s entry %d: %w", filename, i, err)
			}
			return nil
		})
		if err != nil {
			log.Fatal(err)
		}
	}
	if grid == nil || grid.Len() == 0 {
		log.Fatal("no jet image found")
	}

	hm := jetimage.HeatMap{
		Title:  *title,
		XLabel: "eta",
		YLabel: "phi",
		Max:    *zMax,
	}
	if err := hm.Save(grid, *output); err != nil {
		log.Fatal(err)
	}
	log.Printf("mean of %d images written to %s", grid.Len(), *output)
}
