// Package qrio detects and decodes a single QR symbol in a black and white
// bitmap. Detection locates the three finder patterns by run-length ratio,
// relates them through their shared corner, resamples the symbol upright and
// hands the module grid to the decoder. Reed-Solomon correction is not
// performed.
package qrio

import (
	"runtime"

	"github.com/ericlevine/qrio/bitutil"
	"github.com/ericlevine/qrio/geometry"
)

// Bitmap is the input of a scan: true is a dark pixel.
type Bitmap = bitutil.Bitmap

// Options configures decoding. The zero value, and a nil *Options, use the
// defaults.
type Options struct {
	// Tolerances used when grouping and intersecting finder-pattern runs.
	// The zero value selects geometry.DefaultTolerances.
	Tolerances geometry.Tolerances

	// CharacterSet decodes byte segments that carry no ECI designator.
	// Empty means guess per segment.
	CharacterSet string

	// Workers bounds the number of concurrent decodes in DecodeAll.
	// Zero or less means runtime.GOMAXPROCS(0).
	Workers int
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Tolerances == (geometry.Tolerances{}) {
		out.Tolerances = geometry.DefaultTolerances()
	}
	if out.Workers <= 0 {
		out.Workers = runtime.GOMAXPROCS(0)
	}
	return out
}
