package decoder

import "fmt"

// Mode represents a QR code data encoding mode.
type Mode int

const (
	ModeTerminator         Mode = 0x00
	ModeNumeric            Mode = 0x01
	ModeAlphanumeric       Mode = 0x02
	ModeStructuredAppend   Mode = 0x03
	ModeByte               Mode = 0x04
	ModeFNC1FirstPosition  Mode = 0x05
	ModeECI                Mode = 0x07
	ModeKanji              Mode = 0x08
	ModeFNC1SecondPosition Mode = 0x09
	ModeHanzi              Mode = 0x0D
)

var modeNames = map[Mode]string{
	ModeTerminator:         "TERMINATOR",
	ModeNumeric:            "NUMERIC",
	ModeAlphanumeric:       "ALPHANUMERIC",
	ModeStructuredAppend:   "STRUCTURED_APPEND",
	ModeByte:               "BYTE",
	ModeFNC1FirstPosition:  "FNC1_FIRST_POSITION",
	ModeECI:                "ECI",
	ModeKanji:              "KANJI",
	ModeFNC1SecondPosition: "FNC1_SECOND_POSITION",
	ModeHanzi:              "HANZI",
}

// characterCountBits holds the count field width for versions 1-9, 10-26
// and 27-40. Modes without a count field are absent.
var characterCountBits = map[Mode][3]int{
	ModeNumeric:      {10, 12, 14},
	ModeAlphanumeric: {9, 11, 13},
	ModeByte:         {8, 16, 16},
	ModeKanji:        {8, 10, 12},
	ModeHanzi:        {8, 10, 12},
}

// ModeForBits returns the Mode for the given 4-bit value.
func ModeForBits(bits int) (Mode, error) {
	m := Mode(bits)
	if _, ok := modeNames[m]; !ok {
		return 0, fmt.Errorf("%w: %#x", ErrUnrecognizedMode, bits)
	}
	return m, nil
}

// CharacterCountBits returns the number of bits used to encode the character
// count for this mode in the given version.
func (m Mode) CharacterCountBits(version int) int {
	widths, ok := characterCountBits[m]
	if !ok {
		return 0
	}
	switch {
	case version <= 9:
		return widths[0]
	case version <= 26:
		return widths[1]
	default:
		return widths[2]
	}
}

// Bits returns the 4-bit encoding of this mode.
func (m Mode) Bits() int {
	return int(m)
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}
