// Package imageload reads image files into the boolean bitmaps the detector
// consumes.
package imageload

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
	"golang.org/x/image/webp"

	"github.com/ericlevine/qrio/binarizer"
	"github.com/ericlevine/qrio/bitutil"
)

// DefaultThreshold is the luminance at or below which a pixel counts as dark.
const DefaultThreshold = 126

// ErrUnsupportedFormat is returned for files whose extension names no known
// image format.
var ErrUnsupportedFormat = errors.New("imageload: unsupported image format")

// Loader reads images from a file system. The zero value reads the operating
// system's file system with a fixed DefaultThreshold.
type Loader struct {
	// Fs is read from. Nil means the operating system's file system.
	Fs afero.Fs
	// Method selects how luminance becomes dark and light pixels.
	Method binarizer.Method
	// Threshold is the cutoff of the Fixed method. Zero means
	// DefaultThreshold.
	Threshold uint8
}

// NewLoader returns a Loader reading from fs with a fixed DefaultThreshold.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{Fs: fs, Method: binarizer.Fixed, Threshold: DefaultThreshold}
}

// Load reads path and binarizes it.
func (l *Loader) Load(path string) (*bitutil.BitMatrix, error) {
	img, err := l.LoadImage(path)
	if err != nil {
		return nil, err
	}
	cutoff := l.Threshold
	if cutoff == 0 {
		cutoff = DefaultThreshold
	}
	b, err := binarizer.New(l.Method, NewLuminance(img), cutoff)
	if err != nil {
		return nil, err
	}
	bm, err := b.BlackMatrix()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bm, nil
}

// LoadImage reads and decodes path. The format is chosen by extension: JPEG,
// PNG, GIF, TIFF, BMP and WebP are understood.
func (l *Loader) LoadImage(path string) (image.Image, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}
	fs := l.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func decoderFor(path string) (func(io.Reader) (image.Image, error), error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return webp.Decode, nil
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	return func(r io.Reader) (image.Image, error) {
		return imaging.Decode(r, imaging.AutoOrientation(true))
	}, nil
}
