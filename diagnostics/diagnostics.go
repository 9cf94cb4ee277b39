// Package diagnostics renders the intermediate results of a scan over the
// scanned bitmap, for debugging detection failures.
package diagnostics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"

	"github.com/ericlevine/qrio/bitutil"
	"github.com/ericlevine/qrio/geometry"
	"github.com/ericlevine/qrio/qrcode/detector"
)

// Feature selects what is drawn over the bitmap.
type Feature uint

const (
	// Candidates outlines every grouped ratio match.
	Candidates Feature = 1 << iota
	// Matches outlines the groups that passed the aspect-ratio filter.
	Matches
	// FinderPatterns outlines the detected finder patterns.
	FinderPatterns
	// Neighbors draws a line between every pair of finder patterns.
	Neighbors
	// SamplePoints marks where each module was read.
	SamplePoints

	AllFeatures = Candidates | Matches | FinderPatterns | Neighbors | SamplePoints
)

// Stage selects which bitmap is drawn.
type Stage int

const (
	// Input draws the scanned bitmap.
	Input Stage = iota
	// Normalized draws the cropped, upright symbol.
	Normalized
)

// Options configures Render.
type Options struct {
	Features Feature
	// Crop trims an Input rendering to the symbol bounds. Normalized
	// renderings are always cropped.
	Crop  bool
	Stage Stage
}

var (
	green   = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	red     = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	magenta = color.NRGBA{R: 227, G: 91, B: 216, A: 255}
	cyan    = color.NRGBA{R: 0, G: 255, B: 255, A: 255}
)

// ErrNoSymbol is returned when the requested rendering needs a stage the
// scan did not reach.
var ErrNoSymbol = errors.New("diagnostics: scan did not locate a symbol")

// Scan is the view of a scan that Render draws from. *qrio.Scan implements
// it. Accessors of stages that did not run return zero values.
type Scan interface {
	Bitmap() bitutil.Bitmap
	Candidates(dir geometry.Orientation) []geometry.Match
	Matches(dir geometry.Orientation) []geometry.Match
	FinderPatterns() []geometry.Region
	Neighbors() []detector.Neighbor
	SamplingGrid() *detector.SamplingGrid
	Normalized() *detector.Normalized
}

// Render draws the bitmap selected by opts.Stage in black and white and
// overlays the selected features. Horizontal runs are green, vertical runs
// magenta, neighbor lines and sample points cyan. Finder pattern outlines
// are red and drawn last.
func Render(s Scan, opts Options) (*image.NRGBA, error) {
	if opts.Stage == Normalized {
		return renderNormalized(s, opts)
	}

	img := canvas(s.Bitmap())
	if opts.Features&Candidates != 0 {
		drawMatches(img, s.Candidates(geometry.Horizontal), green)
		drawMatches(img, s.Candidates(geometry.Vertical), magenta)
	}
	if opts.Features&Matches != 0 {
		drawMatches(img, s.Matches(geometry.Horizontal), green)
		drawMatches(img, s.Matches(geometry.Vertical), magenta)
	}
	if opts.Features&Neighbors != 0 {
		drawNeighbors(img, s.Neighbors())
	}
	if opts.Features&FinderPatterns != 0 {
		for _, r := range s.FinderPatterns() {
			drawRect(img, r, red)
		}
	}

	if opts.Crop {
		grid := s.SamplingGrid()
		if grid == nil {
			return nil, fmt.Errorf("crop: %w", ErrNoSymbol)
		}
		b := grid.Bounds()
		img = imaging.Crop(img, image.Rect(b.X1, b.Y1, b.X2+1, b.Y2+1))
	}
	return img, nil
}

func renderNormalized(s Scan, opts Options) (*image.NRGBA, error) {
	n := s.Normalized()
	if n == nil {
		return nil, ErrNoSymbol
	}
	img := canvas(n.Bitmap)
	if opts.Features&Neighbors != 0 {
		drawNeighbors(img, n.Graph.Edges())
	}
	if opts.Features&SamplePoints != 0 {
		if grid := s.SamplingGrid(); grid != nil {
			for _, p := range grid.SamplePoints() {
				drawDot(img, int(math.Round(p.X)), int(math.Round(p.Y)), cyan)
			}
		}
	}
	if opts.Features&FinderPatterns != 0 {
		for _, r := range []geometry.Region{n.TopLeft, n.TopRight, n.BottomLeft} {
			drawRect(img, r, red)
		}
	}
	return img, nil
}

// Save encodes img to path on fs. The format follows the file extension.
func Save(fs afero.Fs, path string, img image.Image) (err error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("diagnostics: %s: %w", path, err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return imaging.Encode(f, img, format)
}

// Write renders s and saves it to path.
func Write(fs afero.Fs, path string, s Scan, opts Options) error {
	img, err := Render(s, opts)
	if err != nil {
		return err
	}
	return Save(fs, path, img)
}

func canvas(b bitutil.Bitmap) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width(), b.Height()))
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if b.Get(x, y) {
				c = color.NRGBA{A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func drawMatches(img *image.NRGBA, matches []geometry.Match, c color.NRGBA) {
	for _, m := range matches {
		drawRect(img, m.Region, c)
	}
}

// drawRect outlines r. Pixels outside img are ignored by SetNRGBA.
func drawRect(img *image.NRGBA, r geometry.Region, c color.NRGBA) {
	for x := r.X1; x <= r.X2; x++ {
		img.SetNRGBA(x, r.Y1, c)
		img.SetNRGBA(x, r.Y2, c)
	}
	for y := r.Y1; y <= r.Y2; y++ {
		img.SetNRGBA(r.X1, y, c)
		img.SetNRGBA(r.X2, y, c)
	}
}

func drawNeighbors(img *image.NRGBA, neighbors []detector.Neighbor) {
	for _, n := range neighbors {
		x1, y1, x2, y2 := n.Coordinates()
		drawLine(img, int(x1), int(y1), int(x2), int(y2), cyan)
	}
}

// drawLine is Bresenham's line algorithm.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		img.SetNRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// drawDot marks (x, y) and its four direct neighbors.
func drawDot(img *image.NRGBA, x, y int, c color.NRGBA) {
	img.SetNRGBA(x, y, c)
	img.SetNRGBA(x-1, y, c)
	img.SetNRGBA(x+1, y, c)
	img.SetNRGBA(x, y-1, c)
	img.SetNRGBA(x, y+1, c)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
