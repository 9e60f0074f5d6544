package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"github.com/decibelcooper/jetimage"
	"github.com/decibelcooper/jetimage/event"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options]

Splits event generation over several workers. Worker i writes
<outfile>_cpu<i>.root. With -card, every sample of the TOML run card is
generated in turn and the other sample flags are ignored.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	var (
		outFile   = flag.String("outfile", "events.root", "output file name")
		nEvents   = flag.Int("nevents", 1000, "number of events")
		nCPU      = flag.Int("ncpu", -1, "number of workers, -1 means one less than the number of CPUs")
		process   = flag.String("process", "WprimeToWZ_lept", "one of ZprimeTottbar, WprimeToWZ_lept, WprimeToWZ_had, or QCD")
		pixels    = flag.Int("pixels", 25, "number of pixels per dimension")
		imRange   = flag.Float64("range", 1, "image half width")
		pileup    = flag.Int("pileup", 0, "number of additional interactions (clustering scales as N^3: expect ~25 s per event at 30)")
		pTHatMin  = flag.Float64("pthatmin", 100, "pThatMin for QCD")
		pTHatMax  = flag.Float64("pthatmax", 500, "pThatMax for QCD")
		bosonMass = flag.Float64("bosonmass", 800, "Z' or W' mass in GeV")
		seed      = flag.Int("seed", -1, "base seed, -1 means random seed")
		card      = flag.String("card", "", "TOML run card listing samples")
		debug     = flag.Bool("debug", false, "print per-event debugging output")
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

	samples := []jetimage.Sample{{
		Name:      *process,
		Process:   *process,
		NEvents:   *nEvents,
		Pixels:    *pixels,
		Range:     *imRange,
		Pileup:    *pileup,
		PtHatMin:  *pTHatMin,
		PtHatMax:  *pTHatMax,
		BosonMass: *bosonMass,
		Seed:      *seed,
		OutFile:   *outFile,
	}}
	if *card != "" {
		rc, err := jetimage.LoadRunCard(*card)
		if err != nil {
			log.Fatal(err)
		}
		samples = rc.Samples
	}

	workers := numWorkers(*nCPU)
	log.Printf("Splitting event generation over %d CPUs", workers)

	for _, s := range samples {
		if _, err := event.ParseProcess(s.Process); err != nil {
			log.Fatalf("sample %s: %v", s.Name, err)
		}
		if err := generate(s, workers, *debug); err != nil {
			log.Fatalf("sample %s: %v", s.Name, err)
		}
	}
}

func numWorkers(n int) int {
	max := runtime.NumCPU() - 1
	if max < 1 {
		max = 1
	}
	if n < 1 || n > max {
		return max
	}
	return n
}

func generate(s jetimage.Sample, workers int, debug bool) error {
	base := event.Seed(s.Seed)
	alloc := jetimage.DetermineAllocation(s.NEvents, workers)

	var grp errgroup.Group
	for i, n := range alloc {
		if n == 0 {
			continue
		}

		i := i
		job := s
		job.NEvents = n
		job.Seed = base + 2*i
		job.OutFile = workerFile(s.OutFile, i, workers)
		logger := log.New(os.Stderr, fmt.Sprintf("[%s cpu%d] ", s.Name, i), log.LstdFlags)

		grp.Go(func() error {
			logger.Printf("%d events with seed %d into %s", job.NEvents, job.Seed, job.OutFile)
			buf, err := jetimage.RunSample(job, "", debug, logger)
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			logger.Printf("done: %d written, %d without jets", buf.Filled, buf.Skipped)
			return nil
		})
	}
	return grp.Wait()
}

// workerFile names the output of worker i: the file itself with a single
// worker and <name>_cpu<i>.root otherwise.
func workerFile(name string, i, workers int) string {
	if !strings.HasSuffix(name, ".root") {
		name += ".root"
	}
	if workers == 1 {
		return name
	}
	return strings.TrimSuffix(name, ".root") + fmt.Sprintf("_cpu%d.root", i)
}
