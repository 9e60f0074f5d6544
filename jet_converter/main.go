package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decibelcooper/jetimage"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <event-tree-files>...

Selects, rotates and flips the leading jet images of EventTree files and
writes them to chunked ROOT files (-dump) and/or npy files (-save).

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	var (
		verbose = flag.Bool("verbose", false, "verbose output")
		signal  = flag.String("signal", "wprime", "string to search for in filenames to indicate a signal file")
		dump    = flag.String("dump", "", "ROOT file prefix to dump the images into (tree 'images'), -chnk<k>.root is appended")
		save    = flag.String("save", "", "file prefix of the npy output, _images.npy and _features.npy are appended")
		plotPfx = flag.String("plot", "", "file prefix of the mean image plots")
		pTMin   = flag.Float64("ptmin", jetimage.DefaultSelection.PtMin, "minimum pt to consider")
		pTMax   = flag.Float64("ptmax", jetimage.DefaultSelection.PtMax, "maximum pt to consider")
		chunk   = flag.Int("chunk", 10, "number of files to chunk together")
		imRange = flag.Float64("range", 1, "half width of the images in eta and phi, as passed to jet_image_maker")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *dump == "" && *save == "" {
		printUsage()
		log.Fatal("Must write to npy and/or ROOT file")
	}

	sel := jetimage.DefaultSelection
	sel.PtMin, sel.PtMax = *pTMin, *pTMax

	conv := &jetimage.Converter{
		Signal:    *signal,
		Selection: sel,
		Range:     *imRange,
		Dump:      *dump,
		Chunk:     *chunk,
		Save:      *save,
		Plot:      *plotPfx,
		Verbose:   *verbose,
	}
	log.Printf("chunk max is %d", *chunk)

	stats, err := conv.Run(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%d files, %d jets, %d selected (%d signal)", stats.Files, stats.Entries, stats.Selected, stats.Signal)
}
