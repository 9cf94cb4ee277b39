package qrio

import (
	"github.com/ericlevine/qrio/qrcode/decoder"
	"github.com/ericlevine/qrio/qrcode/detector"
)

// Errors reported by Scan.Run and Decode. Each is terminal for the scan
// that returned it.
var (
	ErrNoFinderPatterns = detector.ErrNoFinderPatterns
	ErrNoSharedCorner   = detector.ErrNoSharedCorner
	ErrDimension        = detector.ErrDimension
	ErrInvalidDimension = decoder.ErrInvalidDimension
	ErrUnknownMask      = decoder.ErrUnknownMask
	ErrUnrecognizedMode = decoder.ErrUnrecognizedMode
	ErrTruncated        = decoder.ErrTruncated
)
