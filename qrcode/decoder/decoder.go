package decoder

import "fmt"

// Result is everything read from a module grid. Reed-Solomon correction is
// never applied, so DataBytes are the data codewords as sampled.
type Result struct {
	Version     int
	ECLevel     ErrorCorrectionLevel
	MaskPattern int
	Format      FormatInformation

	// RawBytes is the interleaved codeword stream in module order.
	RawBytes  []byte
	Blocks    []DataBlock
	DataBytes []byte

	BitStream
}

// Decode reads the format information, removes the mask if it has not been
// removed yet, collects and deinterleaves the codewords and parses the data
// bit stream.
func (m *Matrix) Decode(characterSet string) (*Result, error) {
	format := m.FormatInformation()
	if !m.unmasked {
		if err := m.Unmask(); err != nil {
			return nil, err
		}
	}

	spec, err := BlockStructure(m.version, format.ECLevel)
	if err != nil {
		return nil, err
	}
	raw := m.RawCodewords()
	blocks, err := Deinterleave(raw, spec)
	if err != nil {
		return nil, err
	}
	data := DataCodewords(blocks)

	stream, err := DecodeBitStream(data, m.version, characterSet)
	if err != nil {
		return nil, fmt.Errorf("version %d-%s mask %d: %w", m.version, format.ECLevel, format.MaskPattern, err)
	}
	return &Result{
		Version:     m.version,
		ECLevel:     format.ECLevel,
		MaskPattern: format.MaskPattern,
		Format:      format,
		RawBytes:    raw,
		Blocks:      blocks,
		DataBytes:   data,
		BitStream:   *stream,
	}, nil
}
