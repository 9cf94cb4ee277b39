package detector

import "errors"

var (
	// ErrNoFinderPatterns is returned when fewer than three finder patterns
	// were found.
	ErrNoFinderPatterns = errors.New("qrcode/detector: no finder patterns found")

	// ErrNoSharedCorner is returned when no finder pattern has two
	// right-angle neighbors.
	ErrNoSharedCorner = errors.New("qrcode/detector: no shared corner")

	// ErrDimension is returned when the module count of a normalized symbol
	// cannot be resolved to a valid version.
	ErrDimension = errors.New("qrcode/detector: invalid symbol dimension")
)
