package transform

import (
	"fmt"
	"math"

	"github.com/ericlevine/qrio/bitutil"
)

// Sampling is the result of reading a module grid out of a bitmap.
type Sampling struct {
	Bits *bitutil.BitMatrix
	// Points holds the pixel location read for every module, row by row.
	Points []Point
}

// SampleGrid reads a width x height module grid from image, taking the pixel
// under the center of every module as mapped through t. Points that land
// outside the image read as light.
func SampleGrid(image bitutil.Bitmap, width, height int, t Transform) (*Sampling, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("transform: invalid grid %dx%d", width, height)
	}
	bits := bitutil.NewBitMatrixWithSize(width, height)
	points := make([]Point, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := t.Apply(Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			points = append(points, p)
			if dark(image, p) {
				bits.Set(x, y)
			}
		}
	}
	return &Sampling{Bits: bits, Points: points}, nil
}

func dark(image bitutil.Bitmap, p Point) bool {
	x, y := math.Floor(p.X), math.Floor(p.Y)
	if x < 0 || y < 0 || x >= float64(image.Width()) || y >= float64(image.Height()) {
		return false
	}
	return image.Get(int(x), int(y))
}
