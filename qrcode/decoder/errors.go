package decoder

import "errors"

var (
	// ErrInvalidDimension is returned for module grids that are not square or
	// whose side is not 17+4v for a version v in 1..40.
	ErrInvalidDimension = errors.New("qrcode/decoder: invalid symbol dimension")
	// ErrUnknownMask is returned for a mask pattern index outside 0..7.
	ErrUnknownMask = errors.New("qrcode/decoder: unknown mask pattern")
	// ErrUnrecognizedMode is returned when the bit stream holds a mode
	// indicator that is not defined.
	ErrUnrecognizedMode = errors.New("qrcode/decoder: unrecognized mode")
	// ErrTruncated is returned when a segment or the codeword stream ends
	// before the announced data.
	ErrTruncated = errors.New("qrcode/decoder: truncated data")
	// ErrMalformedSegment is returned for segment contents that cannot occur
	// in a well formed symbol, such as a numeric group above 999.
	ErrMalformedSegment = errors.New("qrcode/decoder: malformed segment")

	errInvalidECLevel = errors.New("qrcode/decoder: invalid error correction level")
	errInvalidVersion = errors.New("qrcode/decoder: invalid version number")
	errInvalidECI     = errors.New("qrcode/decoder: invalid ECI designator")
)
