package decoder_test

import (
	"bytes"
	"testing"

	"github.com/ericlevine/qrio/bitutil"
	"github.com/ericlevine/qrio/internal/qrtest"
	"github.com/ericlevine/qrio/qrcode/decoder"
)

func TestSequentialCodewords(t *testing.T) {
	tests := []struct {
		version int
		level   decoder.ErrorCorrectionLevel
		mask    int
	}{
		{1, decoder.ECLevelM, 0},
		{2, decoder.ECLevelL, 3},
		{5, decoder.ECLevelQ, 5},
		{7, decoder.ECLevelH, 6},
	}
	for _, tt := range tests {
		n := decoder.TotalCodewords(tt.version)
		bits := qrtest.Symbol(tt.version, tt.level, tt.mask, qrtest.Sequential(n))
		m, err := decoder.NewMatrix(bits)
		if err != nil {
			t.Fatal(err)
		}
		if m.Version() != tt.version || m.ECLevel() != tt.level || m.MaskPattern() != tt.mask {
			t.Errorf("read %d-%s mask %d, want %d-%s mask %d",
				m.Version(), m.ECLevel(), m.MaskPattern(), tt.version, tt.level, tt.mask)
		}
		if err := m.Unmask(); err != nil {
			t.Fatal(err)
		}
		raw := m.RawCodewords()
		if !bytes.Equal(raw, qrtest.Sequential(n)) {
			t.Errorf("version %d: raw codewords = %v", tt.version, raw)
		}
	}
}

func TestMaskedSymbolDiffersFromUnmasked(t *testing.T) {
	n := decoder.TotalCodewords(2)
	masked := qrtest.Symbol(2, decoder.ECLevelM, 0, qrtest.Sequential(n))
	m, err := decoder.NewMatrix(masked.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(m.RawCodewords(), qrtest.Sequential(n)) {
		t.Error("masked codewords should not read back before unmasking")
	}
}

func TestDecode(t *testing.T) {
	const version = 5
	level := decoder.ECLevelQ
	spec, err := decoder.BlockStructure(version, level)
	if err != nil {
		t.Fatal(err)
	}

	// Byte segment "hello, world" followed by a terminator and pad codewords.
	message := "hello, world"
	data := []byte{0x40 | byte(len(message)>>4), byte(len(message) << 4)}
	for i := 0; i < len(message); i++ {
		data[len(data)-1] |= message[i] >> 4
		data = append(data, message[i]<<4)
	}
	for pad := byte(0xEC); len(data) < spec.TotalDataCodewords(); pad ^= 0xEC ^ 0x11 {
		data = append(data, pad)
	}

	bits := qrtest.Symbol(version, level, 4, qrtest.Interleave(spec, data, 0xA5))
	m, err := decoder.NewMatrix(bits)
	if err != nil {
		t.Fatal(err)
	}
	result, err := m.Decode("")
	if err != nil {
		t.Fatal(err)
	}
	if result.Text != message {
		t.Errorf("Text = %q, want %q", result.Text, message)
	}
	if result.Version != version || result.ECLevel != level || result.MaskPattern != 4 {
		t.Errorf("result %d-%s mask %d", result.Version, result.ECLevel, result.MaskPattern)
	}
	if !bytes.Equal(result.DataBytes, data) {
		t.Errorf("DataBytes = %v, want %v", result.DataBytes, data)
	}
	if len(result.Blocks) != spec.Count {
		t.Fatalf("got %d blocks, want %d", len(result.Blocks), spec.Count)
	}
	for i, b := range result.Blocks {
		for _, c := range b.ECCodewords() {
			if c != 0xA5 {
				t.Fatalf("block %d ec codeword %#x, want 0xa5", i, c)
			}
		}
	}
	if len(result.RawBytes) != decoder.TotalCodewords(version) {
		t.Errorf("len(RawBytes) = %d", len(result.RawBytes))
	}
	if !m.Unmasked() {
		t.Error("Decode should leave the matrix unmasked")
	}

	// A second decode reuses the unmasked modules.
	again, err := m.Decode("")
	if err != nil || again.Text != message {
		t.Errorf("second Decode = %v, %v", again, err)
	}
}

func TestDecodeReportsUnknownMode(t *testing.T) {
	spec, _ := decoder.BlockStructure(1, decoder.ECLevelL)
	data := make([]byte, spec.TotalDataCodewords())
	data[0] = 0x60
	m, err := decoder.NewMatrix(qrtest.Symbol(1, decoder.ECLevelL, 2, qrtest.Interleave(spec, data, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Decode(""); err == nil {
		t.Error("expected an error for mode 0x6")
	}
}

func TestFormatBitsAgreeWithReader(t *testing.T) {
	for _, level := range []decoder.ErrorCorrectionLevel{decoder.ECLevelL, decoder.ECLevelM, decoder.ECLevelQ, decoder.ECLevelH} {
		for mask := 0; mask < 8; mask++ {
			fi := decoder.ParseFormatInformation(qrtest.FormatBits(level, mask))
			if fi.ECLevel != level || fi.MaskPattern != mask {
				t.Errorf("FormatBits(%s, %d) parses as %s/%d", level, mask, fi.ECLevel, fi.MaskPattern)
			}
		}
	}
	if got := qrtest.FormatBits(decoder.ECLevelM, 0); got != 0x5412 {
		t.Errorf("FormatBits(M, 0) = %#x, want 0x5412", got)
	}
	if got := qrtest.FormatBits(decoder.ECLevelL, 6); got != 0x6C41 {
		t.Errorf("FormatBits(L, 6) = %#x, want 0x6c41", got)
	}
}

func TestMatrixImplementsBitmap(t *testing.T) {
	var _ bitutil.Bitmap = (*decoder.Matrix)(nil)
}
