package jetimage

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// ImagesTreeName is the name of the tree written by Converter.
const ImagesTreeName = "images"

// Converter turns EventTree files into preprocessed images: leading jets
// inside Selection are rotated and flipped, tagged as signal when the file
// name matches Signal, and written to chunked ROOT files and/or npy files.
type Converter struct {
	Signal    string
	Selection Selection
	// Range is the half width of the input images in eta and phi,
	// 1 when left 0.
	Range float64

	// Dump is the prefix of the ROOT output: <Dump>-chnk<k>.root, each
	// holding the jets of Chunk input files.
	Dump  string
	Chunk int
	// Save is the prefix of the npy output: <Save>_images.npy holds one
	// flattened image per row and <Save>_features.npy the columns of
	// ImageRecord.Features.
	Save string
	// Plot is the prefix of the mean image plots.
	Plot string

	Verbose bool

	dim      int
	chunk    int
	nChunked int
	rec      ImageRecord
	out      *TreeWriter[ImageRecord]

	images   []float64
	features []float64
	nSaved   int
	sig, bkg *ImageGrid
}

// Stats summarizes a conversion.
type Stats struct {
	Files    int
	Entries  int
	Selected int
	Signal   int
}

// Run converts the given EventTree files.
func (c *Converter) Run(files []string) (Stats, error) {
	var stats Stats
	if len(files) == 0 {
		return stats, errors.New("jetimage: no input file")
	}
	if c.Dump == "" && c.Save == "" {
		return stats, errors.New("jetimage: must write to npy and/or ROOT file")
	}
	if c.Chunk < 1 {
		c.Chunk = 10
	}
	if c.Selection == (Selection{}) {
		c.Selection = DefaultSelection
	}
	if c.Range == 0 {
		c.Range = 1
	}
	c.dim, c.chunk, c.nChunked = 0, 0, 0

	for i, fname := range files {
		if c.Verbose {
			log.Printf("(%d of %d) working on file: %s", i+1, len(files), fname)
		}
		if err := c.convertFile(fname, &stats); err != nil {
			c.closeChunk()
			return stats, err
		}
		stats.Files++

		c.nChunked++
		if c.nChunked >= c.Chunk {
			if err := c.closeChunk(); err != nil {
				return stats, err
			}
			c.nChunked = 0
			c.chunk++
		}
	}
	if err := c.closeChunk(); err != nil {
		return stats, err
	}

	if c.Save != "" {
		if err := c.save(); err != nil {
			return stats, err
		}
	}
	if c.Plot != "" {
		if err := c.plot(); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (c *Converter) convertFile(fname string, stats *Stats) error {
	signal := IsSignal(fname, c.Signal)
	return ScanEvents(fname, func(i int64, rec *EventRecord) error {
		stats.Entries++
		if c.Verbose && i%1000 == 0 {
			log.Printf("processing jet %d of file %s", i, fname)
		}

		dim, err := imageDim(len(rec.Intensity))
		if err != nil {
			return fmt.Errorf("jetimage: %s entry %d: %w", fname, i, err)
		}
		if c.dim == 0 {
			c.dim = dim
			c.sig = NewImageGrid(dim, float64(dim)/2)
			c.bkg = NewImageGrid(dim, float64(dim)/2)
		}
		if dim != c.dim {
			return fmt.Errorf("jetimage: %s has %dx%d images, want %dx%d", fname, dim, dim, c.dim, c.dim)
		}

		if !c.Selection.Accept(rec) {
			return nil
		}
		stats.Selected++
		if signal {
			stats.Signal++
		}

		c.rec = Preprocess(rec, dim, c.Range, signal)
		mean := c.bkg
		if signal {
			mean = c.sig
		}
		if err := mean.Add(c.rec.Image); err != nil {
			return err
		}

		if c.Dump != "" {
			if err := c.fill(); err != nil {
				return err
			}
		}
		if c.Save != "" {
			for _, v := range c.rec.Image {
				c.images = append(c.images, float64(v))
			}
			c.features = append(c.features, c.rec.Features()...)
			c.nSaved++
		}
		return nil
	})
}

func (c *Converter) fill() error {
	if c.out == nil {
		name := fmt.Sprintf("%s-chnk%d.root", c.Dump, c.chunk)
		if c.Verbose {
			log.Printf("making ROOT file: %s", name)
		}
		out, err := CreateTree(name, ImagesTreeName, "preprocessed jet images", &c.rec)
		if err != nil {
			return err
		}
		c.out = out
	}
	return c.out.Fill()
}

func (c *Converter) closeChunk() error {
	if c.out == nil {
		return nil
	}
	err := c.out.Close()
	c.out = nil
	return err
}

func (c *Converter) save() error {
	if c.nSaved == 0 {
		return errors.New("jetimage: no jet passed the selection, nothing to save")
	}

	images := mat.NewDense(c.nSaved, c.dim*c.dim, c.images)
	features := mat.NewDense(c.nSaved, len(c.features)/c.nSaved, c.features)
	for name, m := range map[string]*mat.Dense{
		c.Save + "_images.npy":   images,
		c.Save + "_features.npy": features,
	} {
		if c.Verbose {
			log.Printf("saving to file: %s", name)
		}
		if err := writeNpy(name, m); err != nil {
			return err
		}
	}
	return nil
}

func writeNpy(name string, m *mat.Dense) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("jetimage: could not create %q: %w", name, err)
	}
	defer f.Close()

	if err := npyio.Write(f, m); err != nil {
		return fmt.Errorf("jetimage: could not write %q: %w", name, err)
	}
	return f.Close()
}

func (c *Converter) plot() error {
	if c.dim == 0 {
		return nil
	}
	hm := HeatMap{XLabel: "eta (pixel)", YLabel: "phi (pixel)"}

	if c.bkg.Len() > 0 {
		hm.Title = "Average Jet Image, Background"
		if err := hm.Save(c.bkg, c.Plot+"_bkg.png"); err != nil {
			return err
		}
	}
	if c.sig.Len() > 0 {
		hm.Title = "Average Jet Image, Signal"
		if err := hm.Save(c.sig, c.Plot+"_signal.png"); err != nil {
			return err
		}
	}
	if c.sig.Len() > 0 && c.bkg.Len() > 0 {
		hm.Title = "Signal - Background"
		if err := hm.Save(DiffGrid{A: c.sig, B: c.bkg}, c.Plot+"_diff.png"); err != nil {
			return err
		}
	}
	return nil
}

// imageDim returns the side of a square image of n pixels.
func imageDim(n int) (int, error) {
	dim := int(math.Round(math.Sqrt(float64(n))))
	if n == 0 || dim*dim != n {
		return 0, fmt.Errorf("image of %d pixels is not square", n)
	}
	return dim, nil
}
