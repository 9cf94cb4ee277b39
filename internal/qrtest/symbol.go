// Package qrtest builds synthetic QR symbols for tests.
package qrtest

import (
	"bytes"
	"fmt"

	"github.com/ericlevine/qrio/bitutil"
	"github.com/ericlevine/qrio/internal/reedsolomon"
	"github.com/ericlevine/qrio/qrcode/decoder"
)

// FormatBits returns the 15 masked format information bits for a level and
// mask pattern, BCH bits included.
func FormatBits(level decoder.ErrorCorrectionLevel, mask int) int {
	data := level.Bits()<<3 | mask
	rem := data << 10
	for i := 14; i >= 10; i-- {
		if rem&(1<<i) != 0 {
			rem ^= 0x537 << (i - 10)
		}
	}
	return (data<<10 | rem) ^ 0x5412
}

// VersionBits returns the 18 version information bits of versions 7 and up.
func VersionBits(version int) int {
	rem := version << 12
	for i := 17; i >= 12; i-- {
		if rem&(1<<i) != 0 {
			rem ^= 0x1F25 << (i - 12)
		}
	}
	return version<<12 | rem
}

// Sequential returns the codewords 1, 2, ... n, wrapping at 256.
func Sequential(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i + 1)
	}
	return out
}

// Interleave lays out per-block data and error correction codewords the way
// a symbol stores them. data holds the data codewords of all blocks in block
// order, short blocks first. Every block's error correction codewords are
// filled with ec.
func Interleave(spec decoder.BlockSpec, data []byte, ec byte) []byte {
	blocks := splitBlocks(spec, data)
	ecBlocks := make([][]byte, len(blocks))
	for i := range ecBlocks {
		ecBlocks[i] = bytes.Repeat([]byte{ec}, spec.ECCodewords)
	}
	return interleave(spec, blocks, ecBlocks)
}

// ErrorCorrected is Interleave with the Reed-Solomon codewords each block
// really carries.
func ErrorCorrected(spec decoder.BlockSpec, data []byte) []byte {
	blocks := splitBlocks(spec, data)
	enc := reedsolomon.NewEncoder()
	ecBlocks := make([][]byte, len(blocks))
	for i, b := range blocks {
		ecBlocks[i] = enc.Encode(b, spec.ECCodewords)
	}
	return interleave(spec, blocks, ecBlocks)
}

func splitBlocks(spec decoder.BlockSpec, data []byte) [][]byte {
	blocks := make([][]byte, spec.Count)
	offset := 0
	for i := range blocks {
		n := spec.DataCodewords
		if i >= spec.ShortCount() {
			n++
		}
		blocks[i] = data[offset : offset+n]
		offset += n
	}
	return blocks
}

func interleave(spec decoder.BlockSpec, blocks, ecBlocks [][]byte) []byte {
	out := make([]byte, 0, spec.TotalCodewords())
	for i := 0; i <= spec.DataCodewords; i++ {
		for _, b := range blocks {
			if i < len(b) {
				out = append(out, b[i])
			}
		}
	}
	for i := 0; i < spec.ECCodewords; i++ {
		for _, b := range ecBlocks {
			out = append(out, b[i])
		}
	}
	return out
}

// ByteData encodes text as one byte mode segment followed by a terminator
// and pad codewords, filling the data capacity of a version and level.
func ByteData(version int, level decoder.ErrorCorrectionLevel, text string) ([]byte, error) {
	spec, err := decoder.BlockStructure(version, level)
	if err != nil {
		return nil, err
	}
	w := &bitWriter{}
	w.write(decoder.ModeByte.Bits(), 4)
	w.write(len(text), decoder.ModeByte.CharacterCountBits(version))
	for i := 0; i < len(text); i++ {
		w.write(int(text[i]), 8)
	}
	capacity := 8 * spec.TotalDataCodewords()
	if w.n > capacity {
		return nil, fmt.Errorf("qrtest: %d bytes do not fit version %d-%s", len(text), version, level)
	}
	w.write(0, min(4, capacity-w.n))
	w.write(0, (8-w.n%8)%8)
	data := w.buf
	for pad := byte(0xEC); len(data) < spec.TotalDataCodewords(); pad ^= 0xEC ^ 0x11 {
		data = append(data, pad)
	}
	return data, nil
}

type bitWriter struct {
	buf []byte
	n   int
}

func (w *bitWriter) write(v, bits int) {
	for i := bits - 1; i >= 0; i-- {
		if w.n%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v&(1<<i) != 0 {
			w.buf[len(w.buf)-1] |= 0x80 >> (w.n % 8)
		}
		w.n++
	}
}

// Symbol draws a complete module grid of the given version: finder, timing
// and alignment patterns, both format information copies, version
// information from version 7, the dark module and codewords placed in
// codeword order under mask. Codewords beyond the
// symbol's capacity are dropped; missing ones are left light.
func Symbol(version int, level decoder.ErrorCorrectionLevel, mask int, codewords []byte) *bitutil.BitMatrix {
	d := decoder.DimensionForVersion(version)
	bits := bitutil.NewBitMatrix(d)
	m, err := decoder.NewMatrix(bits)
	if err != nil {
		panic(err)
	}

	k := 0
	m.WalkDataModules(func(x, y int) {
		if k/8 < len(codewords) && codewords[k/8]&(0x80>>(k%8)) != 0 {
			bits.Set(x, y)
		}
		k++
	})
	maskFn, err := decoder.Mask(mask)
	if err != nil {
		panic(err)
	}
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			if maskFn(x, y) && !m.IsFunction(x, y) {
				bits.Flip(x, y)
			}
		}
	}

	for _, c := range [][2]int{{0, 0}, {d - 7, 0}, {0, d - 7}} {
		DrawFinder(bits, c[0], c[1])
	}
	for i := 8; i < d-8; i += 2 {
		bits.Set(i, 6)
		bits.Set(6, i)
	}
	centers := decoder.AlignmentCenters(version)
	last := len(centers) - 1
	for i, cy := range centers {
		for j, cx := range centers {
			if (i == 0 && (j == 0 || j == last)) || (i == last && j == 0) {
				continue
			}
			drawAlignment(bits, cx, cy)
		}
	}
	bits.Set(8, d-8)

	if version >= 7 {
		info := VersionBits(version)
		for i := 0; i < 18; i++ {
			if info&(1<<i) != 0 {
				bits.Set(d-11+i%3, i/3)
				bits.Set(i/3, d-11+i%3)
			}
		}
	}

	format := FormatBits(level, mask)
	primary := [][2]int{
		{0, 8}, {1, 8}, {2, 8}, {3, 8}, {4, 8}, {5, 8}, {7, 8}, {8, 8},
		{8, 7}, {8, 5}, {8, 4}, {8, 3}, {8, 2}, {8, 1}, {8, 0},
	}
	for i, p := range primary {
		if format&(1<<(14-i)) != 0 {
			bits.Set(p[0], p[1])
		}
	}
	for i := 0; i < 15; i++ {
		var x, y int
		if i < 7 {
			x, y = 8, d-1-i
		} else {
			x, y = d-15+i, 8
		}
		if format&(1<<(14-i)) != 0 {
			bits.Set(x, y)
		}
	}
	return bits
}

// DrawFinder draws a 7x7 finder pattern with its top-left module at (x, y).
func DrawFinder(bits *bitutil.BitMatrix, x, y int) {
	for dy := 0; dy < 7; dy++ {
		for dx := 0; dx < 7; dx++ {
			ring := dx == 0 || dy == 0 || dx == 6 || dy == 6
			core := dx >= 2 && dx <= 4 && dy >= 2 && dy <= 4
			if ring || core {
				bits.Set(x+dx, y+dy)
			} else {
				bits.Unset(x+dx, y+dy)
			}
		}
	}
}

func drawAlignment(bits *bitutil.BitMatrix, cx, cy int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if max(abs(dx), abs(dy)) != 1 {
				bits.Set(cx+dx, cy+dy)
			} else {
				bits.Unset(cx+dx, cy+dy)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Render scales every module to scale x scale pixels and surrounds the
// symbol with a light quiet zone of quiet modules.
func Render(modules bitutil.Bitmap, scale, quiet int) *bitutil.BitMatrix {
	w := (modules.Width() + 2*quiet) * scale
	h := (modules.Height() + 2*quiet) * scale
	out := bitutil.NewBitMatrixWithSize(w, h)
	for y := 0; y < modules.Height(); y++ {
		for x := 0; x < modules.Width(); x++ {
			if modules.Get(x, y) {
				out.SetRegion((x+quiet)*scale, (y+quiet)*scale, scale, scale)
			}
		}
	}
	return out
}
