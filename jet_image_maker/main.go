package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/profile"

	"github.com/decibelcooper/jetimage"
	"github.com/decibelcooper/jetimage/event"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options]

Generates events, or reads them from -input, and writes the leading jet
image of every event to the EventTree of -outfile.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	var (
		nEvents   = flag.Int("nevents", 10, "number of events")
		pixels    = flag.Int("pixels", 25, "number of pixels per dimension")
		imRange   = flag.Float64("range", 1, "image captures [-w, w] x [-w, w], where w is the value passed")
		debug     = flag.Bool("debug", false, "print per-event debugging output")
		pileup    = flag.Int("pileup", 0, "number of additional interactions (clustering scales as N^3: expect ~25 s per event at 30)")
		outFile   = flag.String("outfile", "test.root", "output file name")
		proc      = flag.String("proc", "2", "process: 1=ZprimeTottbar, 2=WprimeToWZ_lept, 3=WprimeToWZ_had, 4=QCD")
		seed      = flag.Int("seed", -1, "seed, -1 means random seed")
		pTHatMin  = flag.Float64("pthatmin", 100, "pThatMin for QCD")
		pTHatMax  = flag.Float64("pthatmax", 500, "pThatMax for QCD")
		bosonMass = flag.Float64("bosonmass", 800, "Z' or W' mass in GeV")
		input     = flag.String("input", "", "read events from a HepMC, LHEF, LCIO or proio file instead of generating them")
		doProfile = flag.Bool("profile", false, "write a CPU profile")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *doProfile {
		defer profile.Start().Stop()
	}

	fmt.Println("Called as: " + strings.Join(os.Args, " "))

	sample := jetimage.Sample{
		Process:   *proc,
		NEvents:   *nEvents,
		Pixels:    *pixels,
		Range:     *imRange,
		Pileup:    *pileup,
		PtHatMin:  *pTHatMin,
		PtHatMax:  *pTHatMax,
		BosonMass: *bosonMass,
		Seed:      event.Seed(*seed),
		OutFile:   *outFile,
	}
	if *input == "" {
		fmt.Printf("Random:seed = %d\n", sample.Seed)
	}
	if sample.Pileup > 0 {
		fmt.Printf("Random:seed = %d\n", sample.Seed+1)
	}
	fmt.Printf("%d is the number of pileup events\n", sample.Pileup)

	buf, err := jetimage.RunSample(sample, *input, *debug, log.New(os.Stdout, "", 0))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%d events written to %s, %d without jets", buf.Filled, sample.OutFile, buf.Skipped)
}
