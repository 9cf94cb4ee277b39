package bitutil

import (
	"errors"
	"fmt"
)

// ErrNotEnoughBits is returned when a read asks for more bits than remain.
var ErrNotEnoughBits = errors.New("bitutil: not enough bits available")

// BitSource reads big-endian bit fields of arbitrary width from a byte slice.
type BitSource struct {
	bytes  []byte
	offset int // in bits
}

// NewBitSource creates a new BitSource from a byte slice.
// Bits are read from the first byte first, from most-significant to least-significant.
func NewBitSource(bytes []byte) *BitSource {
	return &BitSource{bytes: bytes}
}

// BitOffset returns the index of the next bit within the current byte.
func (bs *BitSource) BitOffset() int {
	return bs.offset % 8
}

// ByteOffset returns the index of the next byte to be read.
func (bs *BitSource) ByteOffset() int {
	return bs.offset / 8
}

// ReadBits reads numBits bits and returns them as the least-significant bits of an int.
func (bs *BitSource) ReadBits(numBits int) (int, error) {
	if numBits < 1 || numBits > 32 {
		return 0, fmt.Errorf("bitutil: invalid read width %d", numBits)
	}
	if numBits > bs.Available() {
		return 0, fmt.Errorf("reading %d bits with %d left: %w", numBits, bs.Available(), ErrNotEnoughBits)
	}
	result := 0
	for numBits > 0 {
		byteIdx, bitIdx := bs.offset/8, bs.offset%8
		take := 8 - bitIdx
		if take > numBits {
			take = numBits
		}
		chunk := (int(bs.bytes[byteIdx]) >> uint(8-bitIdx-take)) & (1<<uint(take) - 1)
		result = result<<uint(take) | chunk
		bs.offset += take
		numBits -= take
	}
	return result, nil
}

// Skip advances past numBits bits, clamped to the end of the data.
func (bs *BitSource) Skip(numBits int) {
	bs.offset += numBits
	if end := len(bs.bytes) * 8; bs.offset > end {
		bs.offset = end
	}
}

// Available returns the number of bits that can still be read.
func (bs *BitSource) Available() int {
	return 8*len(bs.bytes) - bs.offset
}
