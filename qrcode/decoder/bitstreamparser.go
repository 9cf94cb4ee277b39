package decoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ericlevine/qrio/bitutil"
	"github.com/ericlevine/qrio/charset"
)

const gb2312Subset = 1

// Segment is one mode-tagged run of the bit stream. Text is only filled for
// numeric and byte segments. Alphanumeric, kanji and hanzi segments record
// their character count and are otherwise skipped.
type Segment struct {
	Mode  Mode
	Count int
	Bytes []byte
	// Charset is the encoding a byte segment was decoded with.
	Charset string
	Text    string
}

// BitStream is the decoded content of a symbol's data codewords.
type BitStream struct {
	Text         string
	Segments     []Segment
	ByteSegments [][]byte

	StructuredAppendSequence int
	StructuredAppendParity   int
	SymbologyModifier        int
}

// HasStructuredAppend reports whether the stream carries a structured append
// header.
func (s *BitStream) HasStructuredAppend() bool {
	return s.StructuredAppendSequence >= 0 && s.StructuredAppendParity >= 0
}

// DecodeBitStream reads the segments of a data codeword stream. Byte segments
// without an ECI designator are decoded with characterSet, or a guessed
// encoding when it is empty. The stream ends at a terminator or when fewer
// than four bits remain.
func DecodeBitStream(data []byte, version int, characterSet string) (*BitStream, error) {
	bs := bitutil.NewBitSource(data)
	result := &BitStream{StructuredAppendSequence: -1, StructuredAppendParity: -1}
	var text strings.Builder

	var currentECI *charset.ECI
	hasFNC1first := false
	hasFNC1second := false

	for bs.Available() >= 4 {
		modeBits, _ := bs.ReadBits(4)
		mode, err := ModeForBits(modeBits)
		if err != nil {
			return nil, fmt.Errorf("bit %d: %w", bs.BitOffset()-4, err)
		}
		if mode == ModeTerminator {
			break
		}

		seg := Segment{Mode: mode}
		switch mode {
		case ModeFNC1FirstPosition:
			hasFNC1first = true
		case ModeFNC1SecondPosition:
			hasFNC1second = true
		case ModeStructuredAppend:
			seq, err := readBits(bs, 8)
			if err != nil {
				return nil, err
			}
			parity, err := readBits(bs, 8)
			if err != nil {
				return nil, err
			}
			result.StructuredAppendSequence = seq
			result.StructuredAppendParity = parity
		case ModeECI:
			value, err := parseECIValue(bs)
			if err != nil {
				return nil, err
			}
			eci, err := charset.ByValue(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", errInvalidECI, err)
			}
			currentECI = eci
			seg.Charset = eci.Name
		case ModeHanzi:
			subset, err := readBits(bs, 4)
			if err != nil {
				return nil, err
			}
			if seg.Count, err = readBits(bs, mode.CharacterCountBits(version)); err != nil {
				return nil, err
			}
			if subset == gb2312Subset {
				seg.Charset = "GB18030"
			}
			if err := skipBits(bs, 13*seg.Count); err != nil {
				return nil, err
			}
		default:
			if seg.Count, err = readBits(bs, mode.CharacterCountBits(version)); err != nil {
				return nil, err
			}
			switch mode {
			case ModeNumeric:
				seg.Text, err = decodeNumericSegment(bs, seg.Count)
			case ModeAlphanumeric:
				err = skipBits(bs, 11*(seg.Count/2)+6*(seg.Count%2))
			case ModeKanji:
				seg.Charset = charset.ShiftJIS
				err = skipBits(bs, 13*seg.Count)
			case ModeByte:
				seg.Bytes, err = readBytes(bs, seg.Count)
				if err == nil {
					if currentECI != nil {
						seg.Charset = currentECI.Name
					} else {
						seg.Charset = charset.Guess(seg.Bytes, characterSet)
					}
					seg.Text = charset.Decode(seg.Bytes, seg.Charset)
					result.ByteSegments = append(result.ByteSegments, seg.Bytes)
				}
			}
			if err != nil {
				return nil, fmt.Errorf("%s segment: %w", mode, err)
			}
		}
		text.WriteString(seg.Text)
		result.Segments = append(result.Segments, seg)
	}

	switch {
	case hasFNC1first:
		result.SymbologyModifier = 3
	case hasFNC1second:
		result.SymbologyModifier = 5
	default:
		result.SymbologyModifier = 1
	}
	if currentECI != nil {
		result.SymbologyModifier++
	}
	result.Text = text.String()
	return result, nil
}

func readBits(bs *bitutil.BitSource, n int) (int, error) {
	if n == 0 {
		return 0, nil
	}
	if bs.Available() < n {
		return 0, fmt.Errorf("%w: need %d bits at bit %d, have %d", ErrTruncated, n, bs.BitOffset(), bs.Available())
	}
	return bs.ReadBits(n)
}

func skipBits(bs *bitutil.BitSource, n int) error {
	if bs.Available() < n {
		return fmt.Errorf("%w: need %d bits at bit %d, have %d", ErrTruncated, n, bs.BitOffset(), bs.Available())
	}
	bs.Skip(n)
	return nil
}

func readBytes(bs *bitutil.BitSource, count int) ([]byte, error) {
	if bs.Available() < 8*count {
		return nil, fmt.Errorf("%w: need %d bytes at bit %d", ErrTruncated, count, bs.BitOffset())
	}
	out := make([]byte, count)
	for i := range out {
		v, _ := bs.ReadBits(8)
		out[i] = byte(v)
	}
	return out, nil
}

func decodeNumericSegment(bs *bitutil.BitSource, count int) (string, error) {
	var sb strings.Builder
	for count > 0 {
		digits, width := 3, 10
		switch count {
		case 2:
			digits, width = 2, 7
		case 1:
			digits, width = 1, 4
		}
		v, err := readBits(bs, width)
		if err != nil {
			return "", err
		}
		s := strconv.Itoa(v)
		if len(s) > digits {
			return "", fmt.Errorf("%w: numeric group %d", ErrMalformedSegment, v)
		}
		sb.WriteString(strings.Repeat("0", digits-len(s)))
		sb.WriteString(s)
		count -= digits
	}
	return sb.String(), nil
}

func parseECIValue(bs *bitutil.BitSource) (int, error) {
	first, err := readBits(bs, 8)
	if err != nil {
		return 0, err
	}
	switch {
	case first&0x80 == 0:
		return first & 0x7F, nil
	case first&0xC0 == 0x80:
		second, err := readBits(bs, 8)
		if err != nil {
			return 0, err
		}
		return (first&0x3F)<<8 | second, nil
	case first&0xE0 == 0xC0:
		rest, err := readBits(bs, 16)
		if err != nil {
			return 0, err
		}
		return (first&0x1F)<<16 | rest, nil
	}
	return 0, fmt.Errorf("%w: lead byte %#x", errInvalidECI, first)
}
