package decoder

import "fmt"

// Version bounds and the module dimension of a version 1 symbol.
const (
	MinVersion   = 1
	MaxVersion   = 40
	minDimension = 21
)

// BlockSpec describes how the codewords of one version and error correction
// level are split into blocks. The first Count-LongCount blocks carry
// DataCodewords data codewords, the remaining LongCount blocks one more.
type BlockSpec struct {
	Count         int
	DataCodewords int
	ECCodewords   int
	LongCount     int
}

// ShortCount returns the number of blocks without the extra data codeword.
func (s BlockSpec) ShortCount() int {
	return s.Count - s.LongCount
}

// TotalDataCodewords returns the number of data codewords over all blocks.
func (s BlockSpec) TotalDataCodewords() int {
	return s.Count*s.DataCodewords + s.LongCount
}

// TotalCodewords returns the number of data and error correction codewords
// over all blocks.
func (s BlockSpec) TotalCodewords() int {
	return s.TotalDataCodewords() + s.Count*s.ECCodewords
}

// DimensionForVersion returns the module dimension of a symbol of the given
// version.
func DimensionForVersion(version int) int {
	return 17 + 4*version
}

// VersionForDimension returns the version of a symbol with the given module
// dimension.
func VersionForDimension(dimension int) (int, error) {
	if dimension < minDimension || dimension > DimensionForVersion(MaxVersion) || (dimension-17)%4 != 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDimension, dimension)
	}
	return (dimension - 17) / 4, nil
}

// BlockStructure returns the block layout for a version and level.
func BlockStructure(version int, level ErrorCorrectionLevel) (BlockSpec, error) {
	if version < MinVersion || version > MaxVersion {
		return BlockSpec{}, fmt.Errorf("%w: %d", errInvalidVersion, version)
	}
	if level < ECLevelL || level > ECLevelH {
		return BlockSpec{}, errInvalidECLevel
	}
	return blockTable[version-1][level.Ordinal()], nil
}

// TotalCodewords returns the number of codewords a symbol of the given version
// carries. It is the same for every error correction level.
func TotalCodewords(version int) int {
	if version < MinVersion || version > MaxVersion {
		return 0
	}
	return blockTable[version-1][0].TotalCodewords()
}

// AlignmentCenters returns the row and column coordinates of alignment
// pattern centers for the given version. Version 1 has none.
func AlignmentCenters(version int) []int {
	if version < MinVersion || version > MaxVersion {
		return nil
	}
	return alignmentCenters[version-1]
}

func init() {
	for v, levels := range blockTable {
		total := levels[0].TotalCodewords()
		for l, spec := range levels {
			if spec.Count <= 0 || spec.LongCount < 0 || spec.LongCount >= spec.Count {
				panic(fmt.Sprintf("qrcode/decoder: bad block spec for version %d level %d", v+1, l))
			}
			if spec.TotalCodewords() != total {
				panic(fmt.Sprintf("qrcode/decoder: version %d level %d has %d codewords, want %d",
					v+1, l, spec.TotalCodewords(), total))
			}
		}
		if centers := alignmentCenters[v]; v > 0 && (len(centers) < 2 || centers[0] != 6 ||
			centers[len(centers)-1] != DimensionForVersion(v+1)-7) {
			panic(fmt.Sprintf("qrcode/decoder: bad alignment centers for version %d", v+1))
		}
	}
}

// blockTable is indexed by version-1 and level ordinal (L, M, Q, H).
var blockTable = [MaxVersion][4]BlockSpec{
	{{1, 19, 7, 0}, {1, 16, 10, 0}, {1, 13, 13, 0}, {1, 9, 17, 0}},
	{{1, 34, 10, 0}, {1, 28, 16, 0}, {1, 22, 22, 0}, {1, 16, 28, 0}},
	{{1, 55, 15, 0}, {1, 44, 26, 0}, {2, 17, 18, 0}, {2, 13, 22, 0}},
	{{1, 80, 20, 0}, {2, 32, 18, 0}, {2, 24, 26, 0}, {4, 9, 16, 0}},
	{{1, 108, 26, 0}, {2, 43, 24, 0}, {4, 15, 18, 2}, {4, 11, 22, 2}},
	{{2, 68, 18, 0}, {4, 27, 16, 0}, {4, 19, 24, 0}, {4, 15, 28, 0}},
	{{2, 78, 20, 0}, {4, 31, 18, 0}, {6, 14, 18, 4}, {5, 13, 26, 1}},
	{{2, 97, 24, 0}, {4, 38, 22, 2}, {6, 18, 22, 2}, {6, 14, 26, 2}},
	{{2, 116, 30, 0}, {5, 36, 22, 2}, {8, 16, 20, 4}, {8, 12, 24, 4}},
	{{4, 68, 18, 2}, {5, 43, 26, 1}, {8, 19, 24, 2}, {8, 15, 28, 2}},
	{{4, 81, 20, 0}, {5, 50, 30, 4}, {8, 22, 28, 4}, {11, 12, 24, 8}},
	{{4, 92, 24, 2}, {8, 36, 22, 2}, {10, 20, 26, 6}, {11, 14, 28, 4}},
	{{4, 107, 26, 0}, {9, 37, 22, 1}, {12, 20, 24, 4}, {16, 11, 22, 4}},
	{{4, 115, 30, 1}, {9, 40, 24, 5}, {16, 16, 20, 5}, {16, 12, 24, 5}},
	{{6, 87, 22, 1}, {10, 41, 24, 5}, {12, 24, 30, 7}, {18, 12, 24, 7}},
	{{6, 98, 24, 1}, {10, 45, 28, 3}, {17, 19, 24, 2}, {16, 15, 30, 13}},
	{{6, 107, 28, 5}, {11, 46, 28, 1}, {16, 22, 28, 15}, {19, 14, 28, 17}},
	{{6, 120, 30, 1}, {13, 43, 26, 4}, {18, 22, 28, 1}, {21, 14, 28, 19}},
	{{7, 113, 28, 4}, {14, 44, 26, 11}, {21, 21, 26, 4}, {25, 13, 26, 16}},
	{{8, 107, 28, 5}, {16, 41, 26, 13}, {20, 24, 30, 5}, {25, 15, 28, 10}},
	{{8, 116, 28, 4}, {17, 42, 26, 0}, {23, 22, 28, 6}, {25, 16, 30, 6}},
	{{9, 111, 28, 7}, {17, 46, 28, 0}, {23, 24, 30, 16}, {34, 13, 24, 0}},
	{{9, 121, 30, 5}, {18, 47, 28, 14}, {25, 24, 30, 14}, {30, 15, 30, 14}},
	{{10, 117, 30, 4}, {20, 45, 28, 14}, {27, 24, 30, 16}, {32, 16, 30, 2}},
	{{12, 106, 26, 4}, {21, 47, 28, 13}, {29, 24, 30, 22}, {35, 15, 30, 13}},
	{{12, 114, 28, 2}, {23, 46, 28, 4}, {34, 22, 28, 6}, {37, 16, 30, 4}},
	{{12, 122, 30, 4}, {25, 45, 28, 3}, {34, 23, 30, 26}, {40, 15, 30, 28}},
	{{13, 117, 30, 10}, {26, 45, 28, 23}, {35, 24, 30, 31}, {42, 15, 30, 31}},
	{{14, 116, 30, 7}, {28, 45, 28, 7}, {38, 23, 30, 37}, {45, 15, 30, 26}},
	{{15, 115, 30, 10}, {29, 47, 28, 10}, {40, 24, 30, 25}, {48, 15, 30, 25}},
	{{16, 115, 30, 3}, {31, 46, 28, 29}, {43, 24, 30, 1}, {51, 15, 30, 28}},
	{{17, 115, 30, 0}, {33, 46, 28, 23}, {45, 24, 30, 35}, {54, 15, 30, 35}},
	{{18, 115, 30, 1}, {35, 46, 28, 21}, {48, 24, 30, 19}, {57, 15, 30, 46}},
	{{19, 115, 30, 6}, {37, 46, 28, 23}, {51, 24, 30, 7}, {60, 16, 30, 1}},
	{{19, 121, 30, 7}, {38, 47, 28, 26}, {53, 24, 30, 14}, {63, 15, 30, 41}},
	{{20, 121, 30, 14}, {40, 47, 28, 34}, {56, 24, 30, 10}, {66, 15, 30, 64}},
	{{21, 122, 30, 4}, {43, 46, 28, 14}, {59, 24, 30, 10}, {70, 15, 30, 46}},
	{{22, 122, 30, 18}, {45, 46, 28, 32}, {62, 24, 30, 14}, {74, 15, 30, 32}},
	{{24, 117, 30, 4}, {47, 47, 28, 7}, {65, 24, 30, 22}, {77, 15, 30, 67}},
	{{25, 118, 30, 6}, {49, 47, 28, 31}, {68, 24, 30, 34}, {81, 15, 30, 61}},
}

var alignmentCenters = [MaxVersion][]int{
	nil,
	{6, 18},
	{6, 22},
	{6, 26},
	{6, 30},
	{6, 34},
	{6, 22, 38},
	{6, 24, 42},
	{6, 26, 46},
	{6, 28, 50},
	{6, 30, 54},
	{6, 32, 58},
	{6, 34, 62},
	{6, 26, 46, 66},
	{6, 26, 48, 70},
	{6, 26, 50, 74},
	{6, 30, 54, 78},
	{6, 30, 56, 82},
	{6, 30, 58, 86},
	{6, 34, 62, 90},
	{6, 28, 50, 72, 94},
	{6, 26, 50, 74, 98},
	{6, 30, 54, 78, 102},
	{6, 28, 54, 80, 106},
	{6, 32, 58, 84, 110},
	{6, 30, 58, 86, 114},
	{6, 34, 62, 90, 118},
	{6, 26, 50, 74, 98, 122},
	{6, 30, 54, 78, 102, 126},
	{6, 26, 52, 78, 104, 130},
	{6, 30, 56, 82, 108, 134},
	{6, 34, 60, 86, 112, 138},
	{6, 30, 58, 86, 114, 142},
	{6, 34, 62, 90, 118, 146},
	{6, 30, 54, 78, 102, 126, 150},
	{6, 24, 50, 76, 102, 128, 154},
	{6, 28, 54, 80, 106, 132, 158},
	{6, 32, 58, 84, 110, 136, 162},
	{6, 26, 54, 82, 110, 138, 166},
	{6, 30, 58, 86, 114, 142, 170},
}
