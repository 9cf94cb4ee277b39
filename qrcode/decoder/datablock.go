package decoder

import "fmt"

// DataBlock is one error correction block: its data codewords followed by its
// error correction codewords. The error correction codewords are located but
// never checked.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// Data returns the data codewords of the block.
func (b DataBlock) Data() []byte {
	return b.Codewords[:b.NumDataCodewords]
}

// ECCodewords returns the error correction codewords of the block.
func (b DataBlock) ECCodewords() []byte {
	return b.Codewords[b.NumDataCodewords:]
}

// Deinterleave separates the interleaved codeword stream of a symbol into its
// blocks. Short blocks come first. Codewords past spec.TotalCodewords() are
// ignored.
func Deinterleave(raw []byte, spec BlockSpec) ([]DataBlock, error) {
	total := spec.TotalCodewords()
	if len(raw) < total {
		return nil, fmt.Errorf("%w: %d codewords, need %d", ErrTruncated, len(raw), total)
	}

	short := spec.ShortCount()
	result := make([]DataBlock, spec.Count)
	for i := range result {
		numData := spec.DataCodewords
		if i >= short {
			numData++
		}
		result[i] = DataBlock{
			NumDataCodewords: numData,
			Codewords:        make([]byte, numData+spec.ECCodewords),
		}
	}

	offset := 0
	for i := 0; i < spec.DataCodewords; i++ {
		for j := range result {
			result[j].Codewords[i] = raw[offset]
			offset++
		}
	}
	for j := short; j < spec.Count; j++ {
		result[j].Codewords[spec.DataCodewords] = raw[offset]
		offset++
	}
	for i := 0; i < spec.ECCodewords; i++ {
		for j := range result {
			result[j].Codewords[result[j].NumDataCodewords+i] = raw[offset]
			offset++
		}
	}
	return result, nil
}

// DataCodewords concatenates the data codewords of blocks in order.
func DataCodewords(blocks []DataBlock) []byte {
	n := 0
	for _, b := range blocks {
		n += b.NumDataCodewords
	}
	result := make([]byte, 0, n)
	for _, b := range blocks {
		result = append(result, b.Data()...)
	}
	return result
}
