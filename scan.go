package qrio

import (
	"fmt"

	"github.com/ericlevine/qrio/bitutil"
	"github.com/ericlevine/qrio/geometry"
	"github.com/ericlevine/qrio/qrcode/decoder"
	"github.com/ericlevine/qrio/qrcode/detector"
)

// Scan runs the detection and decoding stages over one bitmap and keeps every
// intermediate result for inspection. A Scan belongs to one goroutine; run a
// separate Scan per bitmap for concurrent decodes.
//
// When a stage fails the pipeline stops there and the accessors of later
// stages return zero values.
type Scan struct {
	bitmap Bitmap
	opts   Options

	finder     *detector.Finder
	patterns   []geometry.Region
	graph      *detector.Graph
	grid       *detector.SamplingGrid
	normalized *detector.Normalized
	matrix     *decoder.Matrix
	decoded    *decoder.Result

	done bool
	err  error
}

// NewScan prepares a scan of bitmap. Nothing runs until Run.
func NewScan(bitmap Bitmap, opts *Options) *Scan {
	return &Scan{bitmap: bitmap, opts: opts.withDefaults()}
}

// Run executes every stage. Calling it again returns the first result.
func (s *Scan) Run() error {
	if !s.done {
		s.done = true
		s.err = s.run()
	}
	return s.err
}

func (s *Scan) run() error {
	bm, ok := s.bitmap.(*bitutil.BitMatrix)
	if !ok {
		bm = bitutil.FromBitmap(s.bitmap)
	}

	s.finder = detector.NewFinder(s.opts.Tolerances)
	s.patterns = s.finder.Find(bm)
	if len(s.patterns) < 3 {
		return fmt.Errorf("found %d of 3 finder patterns: %w", len(s.patterns), ErrNoFinderPatterns)
	}
	s.graph = detector.NewGraph(s.patterns)

	grid, err := detector.NewSamplingGrid(bm, s.patterns)
	if err != nil {
		return err
	}
	s.grid = grid

	normalized, err := grid.Normalize()
	if err != nil {
		return err
	}
	s.normalized = normalized

	modules, err := grid.Extract()
	if err != nil {
		return fmt.Errorf("sampling: %w", err)
	}
	matrix, err := decoder.NewMatrix(modules)
	if err != nil {
		return err
	}
	s.matrix = matrix

	decoded, err := matrix.Decode(s.opts.CharacterSet)
	if err != nil {
		return err
	}
	s.decoded = decoded
	return nil
}

// Err returns the error of the stage that stopped the scan, if any.
func (s *Scan) Err() error { return s.err }

// Bitmap returns the scanned bitmap.
func (s *Scan) Bitmap() Bitmap { return s.bitmap }

// Candidates returns the ratio matches grouped along dir before filtering.
func (s *Scan) Candidates(dir geometry.Orientation) []geometry.Match {
	if s.finder == nil {
		return nil
	}
	return s.finder.Candidates(dir)
}

// Matches returns the groups along dir that passed the aspect-ratio filter.
func (s *Scan) Matches(dir geometry.Orientation) []geometry.Match {
	if s.finder == nil {
		return nil
	}
	return s.finder.Matches(dir)
}

// FinderPatterns returns the detected finder patterns in detection order.
func (s *Scan) FinderPatterns() []geometry.Region {
	return append([]geometry.Region(nil), s.patterns...)
}

// Neighbors returns every edge between two finder patterns.
func (s *Scan) Neighbors() []detector.Neighbor {
	if s.graph == nil {
		return nil
	}
	return append([]detector.Neighbor(nil), s.graph.Edges()...)
}

// SamplingGrid returns the grid built around the shared corner.
func (s *Scan) SamplingGrid() *detector.SamplingGrid { return s.grid }

// Normalized returns the cropped, upright symbol.
func (s *Scan) Normalized() *detector.Normalized { return s.normalized }

// Matrix returns the sampled module grid. After a successful Run it has been
// unmasked.
func (s *Scan) Matrix() *decoder.Matrix { return s.matrix }

// Decoded returns the decoder output.
func (s *Scan) Decoded() *decoder.Result { return s.decoded }
