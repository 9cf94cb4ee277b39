// Package binarizer turns 8-bit luminance into the dark/light bitmaps the
// detector scans.
package binarizer

import (
	"errors"
	"fmt"

	"github.com/ericlevine/qrio/bitutil"
)

// ErrLowContrast is returned when the luminance histogram has no separate
// dark and light peaks.
var ErrLowContrast = errors.New("binarizer: not enough contrast")

// Source provides the luminance of an image, one byte per pixel, row major.
type Source interface {
	Width() int
	Height() int
	// Row fetches row y into row if it is large enough and returns it.
	Row(y int, row []byte) []byte
	// Matrix returns the whole image. Callers must not modify it.
	Matrix() []byte
}

// Binarizer produces a bitmap in which true is a dark pixel.
type Binarizer interface {
	BlackMatrix() (*bitutil.BitMatrix, error)
}

// Method selects a Binarizer.
type Method int

const (
	// Fixed marks every pixel at or below a fixed cutoff as dark.
	Fixed Method = iota
	// Histogram picks one cutoff for the whole image from its histogram.
	Histogram
	// Local picks a cutoff per 8x8 block from its 5x5 block neighborhood.
	Local
)

var methodNames = []string{"fixed", "histogram", "local"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod returns the Method named s.
func ParseMethod(s string) (Method, error) {
	for i, name := range methodNames {
		if s == name {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("binarizer: unknown method %q", s)
}

// New returns the binarizer for m. cutoff only applies to Fixed.
func New(m Method, source Source, cutoff uint8) (Binarizer, error) {
	switch m {
	case Fixed:
		return NewFixed(source, cutoff), nil
	case Histogram:
		return NewGlobalHistogram(source), nil
	case Local:
		return NewHybrid(source), nil
	}
	return nil, fmt.Errorf("binarizer: unknown method %d", int(m))
}

// FixedThreshold marks pixels at or below Cutoff as dark.
type FixedThreshold struct {
	source Source
	Cutoff uint8
}

// NewFixed creates a FixedThreshold binarizer.
func NewFixed(source Source, cutoff uint8) *FixedThreshold {
	return &FixedThreshold{source: source, Cutoff: cutoff}
}

// BlackMatrix never fails.
func (f *FixedThreshold) BlackMatrix() (*bitutil.BitMatrix, error) {
	width, height := f.source.Width(), f.source.Height()
	matrix := bitutil.NewBitMatrixWithSize(width, height)
	var row []byte
	for y := 0; y < height; y++ {
		row = f.source.Row(y, row)
		for x := 0; x < width; x++ {
			if row[x] <= f.Cutoff {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}
