package bitutil

import (
	"strings"
)

// Bitmap is a read-only two dimensional grid of pixels. Get reports true for
// a dark pixel. Coordinates outside the grid are never queried.
type Bitmap interface {
	Width() int
	Height() int
	Get(x, y int) bool
}

// BitMatrix represents a 2D matrix of bits.
// x is the column position, y is the row position. The origin is at the top-left.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32
}

// NewBitMatrix creates a new square BitMatrix with the given dimension.
func NewBitMatrix(dimension int) *BitMatrix {
	return NewBitMatrixWithSize(dimension, dimension)
}

// NewBitMatrixWithSize creates a new BitMatrix with the given width and height.
func NewBitMatrixWithSize(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitmatrix: dimensions must be greater than 0")
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}
}

// FromBitmap copies any Bitmap into a BitMatrix. A *BitMatrix is cloned.
func FromBitmap(b Bitmap) *BitMatrix {
	if bm, ok := b.(*BitMatrix); ok {
		return bm.Clone()
	}
	bm := NewBitMatrixWithSize(b.Width(), b.Height())
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if b.Get(x, y) {
				bm.Set(x, y)
			}
		}
	}
	return bm
}

// ParseBoolMatrix creates a BitMatrix from a 2D boolean array indexed [y][x].
func ParseBoolMatrix(image [][]bool) *BitMatrix {
	height := len(image)
	width := len(image[0])
	bm := NewBitMatrixWithSize(width, height)
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			if image[i][j] {
				bm.Set(j, i)
			}
		}
	}
	return bm
}

// ParseStringMatrix creates a BitMatrix from a string representation. Rows are
// separated by newlines; blank lines are ignored.
func ParseStringMatrix(repr, setStr, unsetStr string) *BitMatrix {
	var rows [][]bool
	for _, line := range strings.Split(strings.ReplaceAll(repr, "\r", ""), "\n") {
		if line == "" {
			continue
		}
		var row []bool
		for pos := 0; pos < len(line); {
			switch {
			case strings.HasPrefix(line[pos:], setStr):
				row = append(row, true)
				pos += len(setStr)
			case strings.HasPrefix(line[pos:], unsetStr):
				row = append(row, false)
				pos += len(unsetStr)
			default:
				panic("bitmatrix: illegal character encountered")
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			panic("bitmatrix: row lengths do not match")
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		panic("bitmatrix: empty matrix")
	}
	return ParseBoolMatrix(rows)
}

// Get returns true if the bit at (x, y) is set.
func (bm *BitMatrix) Get(x, y int) bool {
	offset := y*bm.rowSize + x/32
	return (bm.data[offset]>>uint(x&0x1f))&1 != 0
}

// Set sets the bit at (x, y).
func (bm *BitMatrix) Set(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] |= 1 << uint(x&0x1f)
}

// Unset clears the bit at (x, y).
func (bm *BitMatrix) Unset(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] &^= 1 << uint(x&0x1f)
}

// Flip flips the bit at (x, y).
func (bm *BitMatrix) Flip(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] ^= 1 << uint(x&0x1f)
}

// SetRegion sets a rectangular region of bits.
func (bm *BitMatrix) SetRegion(left, top, width, height int) {
	if top < 0 || left < 0 {
		panic("bitmatrix: left and top must be nonnegative")
	}
	if height < 1 || width < 1 {
		panic("bitmatrix: height and width must be at least 1")
	}
	right := left + width
	bottom := top + height
	if bottom > bm.height || right > bm.width {
		panic("bitmatrix: region must fit inside the matrix")
	}
	for y := top; y < bottom; y++ {
		offset := y * bm.rowSize
		for x := left; x < right; x++ {
			bm.data[offset+x/32] |= 1 << uint(x&0x1f)
		}
	}
}

// Row returns a row as a BitArray. If row is nil or too small, a new one is allocated.
func (bm *BitMatrix) Row(y int, row *BitArray) *BitArray {
	if row == nil || row.Size() != bm.width {
		row = NewBitArray(bm.width)
	} else {
		row.Clear()
	}
	copy(row.bits, bm.data[y*bm.rowSize:(y+1)*bm.rowSize])
	return row
}

// Column returns a column as a BitArray, top to bottom.
func (bm *BitMatrix) Column(x int, column *BitArray) *BitArray {
	if column == nil || column.Size() != bm.height {
		column = NewBitArray(bm.height)
	} else {
		column.Clear()
	}
	for y := 0; y < bm.height; y++ {
		if bm.Get(x, y) {
			column.Set(y)
		}
	}
	return column
}

// Extract returns a copy of the width x height rectangle whose top-left
// corner is (left, top). Pixels outside the matrix read as unset.
func (bm *BitMatrix) Extract(left, top, width, height int) *BitMatrix {
	return Crop(bm, left, top, width, height)
}

// Crop copies a rectangle out of any Bitmap. Pixels outside b read as unset.
func Crop(b Bitmap, left, top, width, height int) *BitMatrix {
	out := NewBitMatrixWithSize(width, height)
	for y := 0; y < height; y++ {
		sy := top + y
		if sy < 0 || sy >= b.Height() {
			continue
		}
		for x := 0; x < width; x++ {
			sx := left + x
			if sx < 0 || sx >= b.Width() {
				continue
			}
			if b.Get(sx, sy) {
				out.Set(x, y)
			}
		}
	}
	return out
}

// RotateClockwise returns the matrix rotated 90 degrees clockwise. The pixel
// at (x, y) moves to (height-1-y, x).
func (bm *BitMatrix) RotateClockwise() *BitMatrix {
	out := NewBitMatrixWithSize(bm.height, bm.width)
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				out.Set(bm.height-1-y, x)
			}
		}
	}
	return out
}

// Width returns the width.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the height.
func (bm *BitMatrix) Height() int { return bm.height }

// Clone returns a deep copy of the BitMatrix.
func (bm *BitMatrix) Clone() *BitMatrix {
	d := make([]uint32, len(bm.data))
	copy(d, bm.data)
	return &BitMatrix{width: bm.width, height: bm.height, rowSize: bm.rowSize, data: d}
}

// String returns a string representation using "X " for set and "  " for unset.
func (bm *BitMatrix) String() string {
	return bm.StringWithChars("X ", "  ")
}

// StringWithChars returns a string representation using the given set/unset strings.
func (bm *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(bm.height * (bm.width + 1))
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equals returns true if two BitMatrices are equal.
func (bm *BitMatrix) Equals(other *BitMatrix) bool {
	if bm.width != other.width || bm.height != other.height {
		return false
	}
	for i := range bm.data {
		if bm.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
