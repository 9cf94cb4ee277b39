package detector

import (
	"fmt"
	"math"

	"github.com/ericlevine/qrio/bitutil"
	"github.com/ericlevine/qrio/geometry"
	"github.com/ericlevine/qrio/transform"
)

// A finder pattern is 7 modules wide; three of them are averaged.
const finderSpan = 21

// SamplingGrid relates the three finder patterns of one symbol to its module
// grid. Orientation tells which corner of the bitmap holds the symbol's
// top-left finder pattern:
//
//	0: top left
//	1: top right
//	2: bottom right
//	3: bottom left
type SamplingGrid struct {
	bitmap             bitutil.Bitmap
	graph              *Graph
	origin             int
	corners            []Neighbor
	orientation        int
	blockWidth         float64
	blockHeight        float64
	provisionalVersion int
	bounds             geometry.Region

	normalized *Normalized
	points     []transform.Point
}

// Normalized is the symbol cropped to its bounds and rotated so that its
// shared corner is at the top left.
type Normalized struct {
	Bitmap     *bitutil.BitMatrix
	Graph      *Graph
	TopLeft    geometry.Region
	TopRight   geometry.Region
	BottomLeft geometry.Region
	// Rotations is the number of clockwise quarter turns applied.
	Rotations int
}

// NewSamplingGrid locates the shared corner among patterns and measures the
// symbol around it.
func NewSamplingGrid(bitmap bitutil.Bitmap, patterns []geometry.Region) (*SamplingGrid, error) {
	if len(patterns) < 3 {
		return nil, fmt.Errorf("%d of 3 finder patterns: %w", len(patterns), ErrNoFinderPatterns)
	}
	sg := &SamplingGrid{bitmap: bitmap, graph: NewGraph(patterns)}
	origin, err := sg.graph.SharedCorner()
	if err != nil {
		return nil, err
	}
	sg.origin = origin
	sg.corners = sg.graph.RightAngleNeighbors(origin)[:2]
	sg.detectOrientation()
	return sg, nil
}

func (sg *SamplingGrid) detectOrientation() {
	origin := sg.OriginCorner()
	sg.bounds = origin
	widths, heights := origin.Width(), origin.Height()
	distance := 0.0
	for _, n := range sg.corners {
		sg.bounds = sg.bounds.Union(n.To)
		widths += n.To.Width()
		heights += n.To.Height()
		distance += n.Distance
	}
	sg.blockWidth = float64(widths) / finderSpan
	sg.blockHeight = float64(heights) / finderSpan

	dc := distance / 2
	sg.provisionalVersion = (int(math.Round(dc/sg.blockWidth)) - 10) / 4

	threshold := dc / 2
	ox, oy := origin.Center()
	above, left := false, false
	for _, n := range sg.corners {
		x, y := n.To.Center()
		above = above || y < oy-threshold
		left = left || x < ox-threshold
	}
	switch {
	case above && left:
		sg.orientation = 2
	case above:
		sg.orientation = 3
	case left:
		sg.orientation = 1
	default:
		sg.orientation = 0
	}
}

// Graph returns the neighbor graph of every detected finder pattern.
func (sg *SamplingGrid) Graph() *Graph { return sg.graph }

// OriginCorner returns the finder pattern with two right-angle neighbors.
func (sg *SamplingGrid) OriginCorner() geometry.Region { return sg.graph.patterns[sg.origin] }

// Corners returns the edges from the origin to the other two corners.
func (sg *SamplingGrid) Corners() []Neighbor { return sg.corners }

// Orientation returns the rotation class 0 to 3.
func (sg *SamplingGrid) Orientation() int { return sg.orientation }

// BlockWidth returns the estimated module width in pixels.
func (sg *SamplingGrid) BlockWidth() float64 { return sg.blockWidth }

// BlockHeight returns the estimated module height in pixels.
func (sg *SamplingGrid) BlockHeight() float64 { return sg.blockHeight }

// ProvisionalVersion estimates the version from the finder pattern spacing.
func (sg *SamplingGrid) ProvisionalVersion() int { return sg.provisionalVersion }

// Bounds returns the region covering the three corner patterns.
func (sg *SamplingGrid) Bounds() geometry.Region { return sg.bounds }

// SamplePoints returns where Extract read each module, in the coordinates of
// the normalized bitmap. It is empty before Extract succeeds.
func (sg *SamplingGrid) SamplePoints() []transform.Point { return sg.points }

// Normalize crops the bitmap to Bounds and rotates it upright.
func (sg *SamplingGrid) Normalize() (*Normalized, error) {
	if sg.normalized != nil {
		return sg.normalized, nil
	}
	b := sg.bounds
	bm := bitutil.Crop(sg.bitmap, b.X1, b.Y1, b.Width(), b.Height())
	patterns := []geometry.Region{sg.OriginCorner().Translate(b.X1, b.Y1)}
	for _, n := range sg.corners {
		patterns = append(patterns, n.To.Translate(b.X1, b.Y1))
	}

	rotations := 0
	if sg.orientation > 0 {
		rotations = 4 - sg.orientation
	}
	for i := 0; i < rotations; i++ {
		w, h := bm.Width(), bm.Height()
		bm = bm.RotateClockwise()
		for j := range patterns {
			patterns[j] = patterns[j].Rotate(w, h)
		}
	}

	g := NewGraph(patterns)
	tl, err := g.SharedCorner()
	if err != nil {
		return nil, fmt.Errorf("normalized symbol: %w", err)
	}
	corners := g.RightAngleNeighbors(tl)
	topRight, bottomLeft := corners[0].To, corners[1].To
	if horizontalness(corners[1]) > horizontalness(corners[0]) {
		topRight, bottomLeft = bottomLeft, topRight
	}
	sg.normalized = &Normalized{
		Bitmap:     bm,
		Graph:      g,
		TopLeft:    patterns[tl],
		TopRight:   topRight,
		BottomLeft: bottomLeft,
		Rotations:  rotations,
	}
	return sg.normalized, nil
}

// horizontalness is positive when the edge runs closer to the x axis.
func horizontalness(n Neighbor) float64 {
	x1, y1, x2, y2 := n.Coordinates()
	return math.Abs(x2-x1) - math.Abs(y2-y1)
}

// Dimension returns the number of modules per side of the normalized symbol.
func (sg *SamplingGrid) Dimension() (int, error) {
	n, err := sg.Normalize()
	if err != nil {
		return 0, err
	}
	bw, bh := sg.blockWidth, sg.blockHeight
	if n.Rotations%2 == 1 {
		bw, bh = bh, bw
	}
	raw := int(math.Round((float64(n.Bitmap.Width())/bw + float64(n.Bitmap.Height())/bh) / 2))
	return SnapDimension(raw, sg.provisionalVersion)
}

// SnapDimension rounds a measured module count to the nearest valid symbol
// size 17+4v. A count of the form 4k+3 lies between two sizes; it resolves to
// the size of the provisional version when that is one of them.
func SnapDimension(raw, provisionalVersion int) (int, error) {
	dim := raw
	switch raw % 4 {
	case 0:
		dim++
	case 2:
		dim--
	case 3:
		dim = 17 + 4*provisionalVersion
		if d := dim - raw; d < -2 || d > 2 {
			return 0, fmt.Errorf("%d modules, provisional version %d: %w", raw, provisionalVersion, ErrDimension)
		}
	}
	if dim < 21 || dim > 177 {
		return 0, fmt.Errorf("%d modules: %w", raw, ErrDimension)
	}
	return dim, nil
}

// Extract samples the module grid of the normalized symbol. The finder
// pattern centers sit 3.5 modules in from their corners; mapping those onto
// the detected centers absorbs any shear left after rotation. Modules are
// read from the source bitmap, so a tilted symbol whose far corner lies
// outside Bounds is still sampled in full.
func (sg *SamplingGrid) Extract() (*bitutil.BitMatrix, error) {
	n, err := sg.Normalize()
	if err != nil {
		return nil, err
	}
	dim, err := sg.Dimension()
	if err != nil {
		return nil, err
	}
	center := func(r geometry.Region) transform.Point {
		x, y := r.Center()
		return transform.Point{X: x, Y: y}
	}
	tl, tr, bl := center(n.TopLeft), center(n.TopRight), center(n.BottomLeft)
	br := transform.Point{X: tr.X - tl.X + bl.X, Y: tr.Y - tl.Y + bl.Y}
	far := float64(dim) - 3.5
	modules := [4]transform.Point{{X: 3.5, Y: 3.5}, {X: far, Y: 3.5}, {X: far, Y: far}, {X: 3.5, Y: far}}
	normalized := [4]transform.Point{tl, tr, br, bl}
	var source [4]transform.Point
	for i, p := range normalized {
		source[i] = sg.toSource(p)
	}
	s, err := transform.SampleGrid(sg.bitmap, dim, dim, transform.QuadrilateralToQuadrilateral(modules, source))
	if err != nil {
		return nil, err
	}
	xform := transform.QuadrilateralToQuadrilateral(modules, normalized)
	sg.points = make([]transform.Point, 0, dim*dim)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			sg.points = append(sg.points, xform.Apply(transform.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}))
		}
	}
	return s.Bits, nil
}

// toSource maps a point of the normalized bitmap back into the bitmap the
// grid was built from by undoing the quarter turns and then the crop.
func (sg *SamplingGrid) toSource(p transform.Point) transform.Point {
	n := sg.normalized
	w, h := float64(n.Bitmap.Width()), float64(n.Bitmap.Height())
	for i := 0; i < n.Rotations; i++ {
		p = transform.Point{X: p.Y, Y: w - p.X}
		w, h = h, w
	}
	return transform.Point{X: p.X + float64(sg.bounds.X1), Y: p.Y + float64(sg.bounds.Y1)}
}
