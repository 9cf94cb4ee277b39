package decoder

// ErrorCorrectionLevel represents the four QR code error correction levels.
type ErrorCorrectionLevel int

const (
	ECLevelL ErrorCorrectionLevel = iota // ~7% correction
	ECLevelM                             // ~15% correction
	ECLevelQ                             // ~25% correction
	ECLevelH                             // ~30% correction
)

// levelsForBits maps the two format information bits to a level.
var levelsForBits = [4]ErrorCorrectionLevel{ECLevelM, ECLevelL, ECLevelH, ECLevelQ}

// Bits returns the 2-bit format information encoding of this level.
func (ecl ErrorCorrectionLevel) Bits() int {
	for bits, level := range levelsForBits {
		if level == ecl {
			return bits
		}
	}
	return -1
}

// Ordinal returns the ordinal position (L=0, M=1, Q=2, H=3).
func (ecl ErrorCorrectionLevel) Ordinal() int {
	return int(ecl)
}

func (ecl ErrorCorrectionLevel) String() string {
	if ecl < ECLevelL || ecl > ECLevelH {
		return "?"
	}
	return "LMQH"[ecl : ecl+1]
}

// ECLevelForBits returns the ErrorCorrectionLevel for the given 2-bit value.
func ECLevelForBits(bits int) (ErrorCorrectionLevel, error) {
	if bits < 0 || bits >= len(levelsForBits) {
		return 0, errInvalidECLevel
	}
	return levelsForBits[bits], nil
}
