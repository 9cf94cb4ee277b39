package binarizer

import "github.com/ericlevine/qrio/bitutil"

const (
	luminanceBits    = 5
	luminanceShift   = 8 - luminanceBits
	luminanceBuckets = 1 << luminanceBits
)

// GlobalHistogram chooses one black point for the whole image from the
// histogram of four sample rows. It suits evenly lit scans; use Hybrid for
// photographs with shadows.
type GlobalHistogram struct {
	source Source
}

// NewGlobalHistogram creates a GlobalHistogram binarizer.
func NewGlobalHistogram(source Source) *GlobalHistogram {
	return &GlobalHistogram{source: source}
}

// Source returns the underlying luminance.
func (g *GlobalHistogram) Source() Source {
	return g.source
}

// BlackMatrix marks every pixel darker than the estimated black point. The
// histogram covers the middle three fifths of the rows at 1/5, 2/5, 3/5 and
// 4/5 of the height.
func (g *GlobalHistogram) BlackMatrix() (*bitutil.BitMatrix, error) {
	width, height := g.source.Width(), g.source.Height()

	var buckets [luminanceBuckets]int
	var row []byte
	for i := 1; i < 5; i++ {
		row = g.source.Row(height*i/5, row)
		for _, v := range row[width/5 : width*4/5] {
			buckets[v>>luminanceShift]++
		}
	}
	blackPoint, err := estimateBlackPoint(buckets[:])
	if err != nil {
		return nil, err
	}

	matrix := bitutil.NewBitMatrixWithSize(width, height)
	pix := g.source.Matrix()
	for y := 0; y < height; y++ {
		for x, v := range pix[y*width : (y+1)*width] {
			if int(v) < blackPoint {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}

// estimateBlackPoint finds the tallest bucket and the bucket that best
// combines height and distance from it, then returns the deepest valley
// between the two, biased towards the light peak.
func estimateBlackPoint(buckets []int) (int, error) {
	tallest, tallestCount := 0, 0
	for i, n := range buckets {
		if n > tallestCount {
			tallest, tallestCount = i, n
		}
	}

	second, secondScore := 0, 0
	for i, n := range buckets {
		d := i - tallest
		if score := n * d * d; score > secondScore {
			second, secondScore = i, score
		}
	}

	dark, light := min(tallest, second), max(tallest, second)
	if light-dark <= len(buckets)/16 {
		return 0, ErrLowContrast
	}

	valley, valleyScore := light-1, -1
	for i := light - 1; i > dark; i-- {
		fromDark := i - dark
		score := fromDark * fromDark * (light - i) * (tallestCount - buckets[i])
		if score > valleyScore {
			valley, valleyScore = i, score
		}
	}
	return valley << luminanceShift, nil
}
