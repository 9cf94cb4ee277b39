package binarizer

import "github.com/ericlevine/qrio/bitutil"

const (
	blockSizePower   = 3
	blockSize        = 1 << blockSizePower
	minimumDimension = blockSize * 5
	minDynamicRange  = 24
)

// Hybrid thresholds each 8x8 block against the average black point of the
// surrounding 5x5 blocks. Images smaller than 40 pixels on either side fall
// back to GlobalHistogram. The result is computed once and cached.
type Hybrid struct {
	GlobalHistogram
	matrix *bitutil.BitMatrix
}

// NewHybrid creates a Hybrid binarizer.
func NewHybrid(source Source) *Hybrid {
	return &Hybrid{GlobalHistogram: *NewGlobalHistogram(source)}
}

// BlackMatrix returns the locally thresholded matrix.
func (h *Hybrid) BlackMatrix() (*bitutil.BitMatrix, error) {
	if h.matrix != nil {
		return h.matrix, nil
	}
	source := h.Source()
	width, height := source.Width(), source.Height()
	if width < minimumDimension || height < minimumDimension {
		m, err := h.GlobalHistogram.BlackMatrix()
		if err != nil {
			return nil, err
		}
		h.matrix = m
		return m, nil
	}

	g := newBlockGrid(source.Matrix(), width, height)
	g.computeBlackPoints()
	matrix := bitutil.NewBitMatrixWithSize(width, height)
	g.threshold(matrix)
	h.matrix = matrix
	return matrix, nil
}

// blockGrid divides an image into 8x8 blocks. Blocks on the right and bottom
// edges are shifted inwards so that every block lies fully in the image.
type blockGrid struct {
	pix           []byte
	width, height int
	cols, rows    int
	blackPoints   [][]int
}

func newBlockGrid(pix []byte, width, height int) *blockGrid {
	g := &blockGrid{
		pix:    pix,
		width:  width,
		height: height,
		cols:   (width + blockSize - 1) >> blockSizePower,
		rows:   (height + blockSize - 1) >> blockSizePower,
	}
	g.blackPoints = make([][]int, g.rows)
	for i := range g.blackPoints {
		g.blackPoints[i] = make([]int, g.cols)
	}
	return g
}

// origin returns the top-left pixel of block (bx, by).
func (g *blockGrid) origin(bx, by int) (x, y int) {
	return min(bx<<blockSizePower, g.width-blockSize), min(by<<blockSizePower, g.height-blockSize)
}

// computeBlackPoints stores the mean luminance of each block. A flat block
// gets half its minimum instead, or the weighted black point of its upper and
// left neighbors when its minimum is below that.
func (g *blockGrid) computeBlackPoints() {
	for by := 0; by < g.rows; by++ {
		for bx := 0; bx < g.cols; bx++ {
			x0, y0 := g.origin(bx, by)
			sum, lo, hi := 0, 0xFF, 0
			for y := y0; y < y0+blockSize; y++ {
				for _, p := range g.pix[y*g.width+x0 : y*g.width+x0+blockSize] {
					v := int(p)
					sum += v
					lo = min(lo, v)
					hi = max(hi, v)
				}
			}

			average := sum >> (blockSizePower * 2)
			if hi-lo <= minDynamicRange {
				average = lo / 2
				if by > 0 && bx > 0 {
					neighbors := (g.blackPoints[by-1][bx] + 2*g.blackPoints[by][bx-1] + g.blackPoints[by-1][bx-1]) / 4
					if lo < neighbors {
						average = neighbors
					}
				}
			}
			g.blackPoints[by][bx] = average
		}
	}
}

// threshold sets every pixel at or below its neighborhood's black point.
func (g *blockGrid) threshold(matrix *bitutil.BitMatrix) {
	for by := 0; by < g.rows; by++ {
		top := clampCenter(by, g.rows-3)
		for bx := 0; bx < g.cols; bx++ {
			left := clampCenter(bx, g.cols-3)
			sum := 0
			for _, row := range g.blackPoints[top-2 : top+3] {
				for _, v := range row[left-2 : left+3] {
					sum += v
				}
			}
			cutoff := sum / 25

			x0, y0 := g.origin(bx, by)
			for y := y0; y < y0+blockSize; y++ {
				for x := x0; x < x0+blockSize; x++ {
					if int(g.pix[y*g.width+x]) <= cutoff {
						matrix.Set(x, y)
					}
				}
			}
		}
	}
}

// clampCenter keeps a 5x5 neighborhood centered on i inside the grid.
func clampCenter(i, limit int) int {
	return max(2, min(i, limit))
}
