// Package decoder reads the format information, codewords and data segments
// of a sampled, upright QR module grid.
package decoder

import (
	"fmt"

	"github.com/ericlevine/qrio/bitutil"
)

// formatInfoMask is XORed over the 15 format information bits.
const formatInfoMask = 0x5412

// FormatInformation is the content of the format information strip next to
// the top-left finder pattern. The BCH bits are extracted but not checked.
type FormatInformation struct {
	ECLevel     ErrorCorrectionLevel
	MaskPattern int
	BCH         int
	// Raw holds the 15 bits as read, before unmasking.
	Raw int
}

// ParseFormatInformation splits 15 masked format bits.
func ParseFormatInformation(raw int) FormatInformation {
	bits := (raw ^ formatInfoMask) & 0x7FFF
	level, _ := ECLevelForBits((bits >> 13) & 0x03)
	return FormatInformation{
		ECLevel:     level,
		MaskPattern: (bits >> 10) & 0x07,
		BCH:         bits & 0x03FF,
		Raw:         raw,
	}
}

// MaskFunc reports whether the data module at (x, y) is inverted by a mask.
type MaskFunc func(x, y int) bool

var masks = [8]MaskFunc{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (y/2+x/3)%2 == 0 },
	func(x, y int) bool { return (x*y)%6 == 0 },
	func(x, y int) bool { return (x*y)%6 < 3 },
	func(x, y int) bool { return (x+y+(x*y)%3)%2 == 0 },
}

// Mask returns mask pattern i.
func Mask(i int) (MaskFunc, error) {
	if i < 0 || i >= len(masks) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMask, i)
	}
	return masks[i], nil
}

// Matrix is a square, upright grid of QR modules. It is mutated in place by
// Unmask and must not be shared between goroutines.
type Matrix struct {
	bits     *bitutil.BitMatrix
	version  int
	format   *FormatInformation
	unmasked bool
}

// NewMatrix wraps bits, which the Matrix takes ownership of.
func NewMatrix(bits *bitutil.BitMatrix) (*Matrix, error) {
	if bits.Width() != bits.Height() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, bits.Width(), bits.Height())
	}
	version, err := VersionForDimension(bits.Width())
	if err != nil {
		return nil, err
	}
	return &Matrix{bits: bits, version: version}, nil
}

// Version returns (dimension-17)/4.
func (m *Matrix) Version() int { return m.version }

// Dimension returns the number of modules per side.
func (m *Matrix) Dimension() int { return m.bits.Width() }

// Width implements bitutil.Bitmap.
func (m *Matrix) Width() int { return m.bits.Width() }

// Height implements bitutil.Bitmap.
func (m *Matrix) Height() int { return m.bits.Height() }

// Get reports whether the module at (x, y) is dark.
func (m *Matrix) Get(x, y int) bool { return m.bits.Get(x, y) }

// Bits returns the underlying modules.
func (m *Matrix) Bits() *bitutil.BitMatrix { return m.bits }

// Unmasked reports whether Unmask has been applied an odd number of times.
func (m *Matrix) Unmasked() bool { return m.unmasked }

func (m *Matrix) String() string { return m.bits.String() }

// FormatInformation reads the primary copy of the format information: row 8
// columns 0-5, (7,8), (8,8), (8,7), then column 8 rows 5-0. The second copy is
// not consulted.
func (m *Matrix) FormatInformation() FormatInformation {
	if m.format != nil {
		return *m.format
	}
	raw := 0
	read := func(x, y int) {
		raw <<= 1
		if m.bits.Get(x, y) {
			raw |= 1
		}
	}
	for x := 0; x < 6; x++ {
		read(x, 8)
	}
	read(7, 8)
	read(8, 8)
	read(8, 7)
	for y := 5; y >= 0; y-- {
		read(8, y)
	}
	fi := ParseFormatInformation(raw)
	m.format = &fi
	return fi
}

// ECLevel returns the error correction level from the format information.
func (m *Matrix) ECLevel() ErrorCorrectionLevel {
	return m.FormatInformation().ECLevel
}

// MaskPattern returns the mask index from the format information.
func (m *Matrix) MaskPattern() int {
	return m.FormatInformation().MaskPattern
}

// Unmask inverts every data module selected by the symbol's mask pattern.
// Applying it twice restores the original modules.
func (m *Matrix) Unmask() error {
	mask, err := Mask(m.MaskPattern())
	if err != nil {
		return err
	}
	dimension := m.Dimension()
	for y := 0; y < dimension; y++ {
		for x := 0; x < dimension; x++ {
			if mask(x, y) && !m.IsFunction(x, y) {
				m.bits.Flip(x, y)
			}
		}
	}
	m.unmasked = !m.unmasked
	return nil
}

// InFinderPattern reports whether (x, y) lies in a finder pattern, its
// separator or the adjacent format information strip.
func (m *Matrix) InFinderPattern(x, y int) bool {
	d := m.Dimension()
	return (x < 9 && y < 9) ||
		(x > d-9 && y < 9) ||
		(x < 9 && y > d-9)
}

// InAlignmentPattern reports whether (x, y) lies in one of the 5x5 alignment
// patterns. Center pairs that coincide with a finder pattern are skipped.
func (m *Matrix) InAlignmentPattern(x, y int) bool {
	centers := AlignmentCenters(m.version)
	last := len(centers) - 1
	for i, cy := range centers {
		if y < cy-2 || y > cy+2 {
			continue
		}
		for j, cx := range centers {
			if (i == 0 && (j == 0 || j == last)) || (i == last && j == 0) {
				continue
			}
			if x >= cx-2 && x <= cx+2 {
				return true
			}
		}
	}
	return false
}

// InTimingLine reports whether (x, y) lies on row or column 6.
func (m *Matrix) InTimingLine(x, y int) bool {
	return x == 6 || y == 6
}

// InVersionInfo reports whether (x, y) lies in one of the two 6x3 version
// information blocks carried by versions 7 and up.
func (m *Matrix) InVersionInfo(x, y int) bool {
	if m.version < 7 {
		return false
	}
	d := m.Dimension()
	return (x >= d-11 && x <= d-9 && y < 6) ||
		(y >= d-11 && y <= d-9 && x < 6)
}

// IsFunction reports whether (x, y) holds a function module rather than data
// or error correction.
func (m *Matrix) IsFunction(x, y int) bool {
	return m.InFinderPattern(x, y) ||
		m.InTimingLine(x, y) ||
		m.InAlignmentPattern(x, y) ||
		m.InVersionInfo(x, y)
}

// WalkDataModules visits every data and error correction module in codeword
// order: two-column strips from the right edge, alternating upwards and
// downwards, stepping over the vertical timing column.
func (m *Matrix) WalkDataModules(visit func(x, y int)) {
	dimension := m.Dimension()
	readingUp := true
	for x := dimension - 1; x > 0; x -= 2 {
		if x == 6 {
			x--
		}
		for count := 0; count < dimension; count++ {
			y := count
			if readingUp {
				y = dimension - 1 - count
			}
			for col := 0; col < 2; col++ {
				if !m.IsFunction(x-col, y) {
					visit(x-col, y)
				}
			}
		}
		readingUp = !readingUp
	}
}

// RawCodewords packs the data modules into bytes in codeword order, most
// significant bit first. Remainder bits that do not fill a byte are dropped.
func (m *Matrix) RawCodewords() []byte {
	result := make([]byte, 0, TotalCodewords(m.version))
	currentByte := 0
	bitsRead := 0
	m.WalkDataModules(func(x, y int) {
		currentByte <<= 1
		if m.bits.Get(x, y) {
			currentByte |= 1
		}
		bitsRead++
		if bitsRead == 8 {
			result = append(result, byte(currentByte))
			bitsRead = 0
			currentByte = 0
		}
	})
	return result
}
