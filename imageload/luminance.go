package imageload

import (
	"image"
	"image/color"

	"github.com/ericlevine/qrio/binarizer"
	"github.com/ericlevine/qrio/bitutil"
)

// Luminance holds the 8-bit greyscale value of every pixel of an image. It
// implements binarizer.Source.
type Luminance struct {
	pix    []byte
	width  int
	height int
}

// NewLuminance converts img to greyscale with
// (306*R + 601*G + 117*B + 0x200) >> 10 on 8-bit components. Fully
// transparent pixels are white.
func NewLuminance(img image.Image) *Luminance {
	if gray, ok := img.(*image.Gray); ok {
		return newGrayLuminance(gray)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a == 0 {
				pix[y*w+x] = 0xFF
				continue
			}
			pix[y*w+x] = byte((306*(r>>8) + 601*(g>>8) + 117*(b>>8) + 0x200) >> 10)
		}
	}
	return &Luminance{pix: pix, width: w, height: h}
}

func newGrayLuminance(img *image.Gray) *Luminance {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(pix[y*w:], img.Pix[off:off+w])
	}
	return &Luminance{pix: pix, width: w, height: h}
}

// Width returns the width of the image.
func (l *Luminance) Width() int { return l.width }

// Height returns the height of the image.
func (l *Luminance) Height() int { return l.height }

// At returns the luminance of the pixel at (x, y).
func (l *Luminance) At(x, y int) byte { return l.pix[y*l.width+x] }

// Row copies row y into row, allocating when it is too short.
func (l *Luminance) Row(y int, row []byte) []byte {
	if len(row) < l.width {
		row = make([]byte, l.width)
	}
	copy(row, l.pix[y*l.width:(y+1)*l.width])
	return row
}

// Matrix returns the pixels row by row.
func (l *Luminance) Matrix() []byte { return l.pix }

// Threshold returns a bitmap in which every pixel at or below cutoff is dark.
func (l *Luminance) Threshold(cutoff uint8) *bitutil.BitMatrix {
	bm, _ := binarizer.NewFixed(l, cutoff).BlackMatrix()
	return bm
}

// ToImage renders a bitmap as black on white.
func ToImage(b bitutil.Bitmap) *image.Gray {
	w, h := b.Width(), b.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
