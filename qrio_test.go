package qrio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/liyue201/goqr"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ericlevine/qrio/bitutil"
	"github.com/ericlevine/qrio/geometry"
	"github.com/ericlevine/qrio/imageload"
	"github.com/ericlevine/qrio/internal/qrtest"
	"github.com/ericlevine/qrio/qrcode/decoder"
)

// encode renders content with go-qrcode, scale pixels per module, including
// its four-module quiet zone.
func encode(t *testing.T, content string, level qrcode.RecoveryLevel, scale int) (*qrcode.QRCode, *bitutil.BitMatrix) {
	t.Helper()
	q, err := qrcode.New(content, level)
	if err != nil {
		t.Fatal(err)
	}
	return q, qrtest.Render(bitutil.ParseBoolMatrix(q.Bitmap()), scale, 0)
}

func TestDecodeGenerated(t *testing.T) {
	tests := []struct {
		content string
		level   qrcode.RecoveryLevel
		ecLevel decoder.ErrorCorrectionLevel
		scale   int
	}{
		{"hello, qrio", qrcode.Medium, decoder.ECLevelM, 3},
		{"https://example.com/a/longer/path?with=query&and=more", qrcode.Low, decoder.ECLevelL, 4},
		{"31415926535897932384", qrcode.High, decoder.ECLevelQ, 2},
		{"highest level, version chosen by length", qrcode.Highest, decoder.ECLevelH, 3},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			q, bm := encode(t, tt.content, tt.level, tt.scale)
			result, err := Decode(bm, nil)
			if err != nil {
				t.Fatal(err)
			}
			if result.Text != tt.content {
				t.Errorf("Text = %q, want %q", result.Text, tt.content)
			}
			if result.Version != q.VersionNumber {
				t.Errorf("Version = %d, want %d", result.Version, q.VersionNumber)
			}
			if result.ECLevel != tt.ecLevel {
				t.Errorf("ECLevel = %s, want %s", result.ECLevel, tt.ecLevel)
			}
			if result.Orientation != 0 {
				t.Errorf("Orientation = %d, want 0", result.Orientation)
			}
			if len(result.RawBytes) != decoder.TotalCodewords(q.VersionNumber) {
				t.Errorf("len(RawBytes) = %d", len(result.RawBytes))
			}
		})
	}
}

func TestDecodeRotated(t *testing.T) {
	const content = "rotated symbols decode too"
	_, bm := encode(t, content, qrcode.Medium, 3)
	img := imageload.ToImage(bm)
	tests := []struct {
		name        string
		img         image.Image
		orientation int
	}{
		{"upright", img, 0},
		{"ccw90", imaging.Rotate90(img), 3},
		{"180", imaging.Rotate180(img), 2},
		{"ccw270", imaging.Rotate270(img), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotated := imageload.NewLuminance(tt.img).Threshold(imageload.DefaultThreshold)
			result, err := Decode(rotated, nil)
			if err != nil {
				t.Fatal(err)
			}
			if result.Text != content {
				t.Errorf("Text = %q, want %q", result.Text, content)
			}
			if result.Orientation != tt.orientation {
				t.Errorf("Orientation = %d, want %d", result.Orientation, tt.orientation)
			}
		})
	}
}

func TestDecodeRepeatable(t *testing.T) {
	_, bm := encode(t, "same input, same result", qrcode.Medium, 3)
	first, err := Decode(bm, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Decode(bm, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestDecodeTilted(t *testing.T) {
	const content = "slightly rotated"
	_, bm := encode(t, content, qrcode.Medium, 8)
	img := imageload.ToImage(bm)
	tests := []struct {
		degrees     float64
		orientation int
	}{
		{2, 0},
		{3, 0},
		{5, 0},
		{92, 3},
		{183, 2},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.degrees), func(t *testing.T) {
			tilted := imaging.Rotate(img, tt.degrees, color.White)
			result, err := Decode(imageload.NewLuminance(tilted).Threshold(imageload.DefaultThreshold), nil)
			if err != nil {
				t.Fatal(err)
			}
			if result.Text != content {
				t.Errorf("Text = %q, want %q", result.Text, content)
			}
			if result.Orientation != tt.orientation {
				t.Errorf("Orientation = %d, want %d", result.Orientation, tt.orientation)
			}
		})
	}
}

func TestDecodeAgreesWithGoqr(t *testing.T) {
	for _, content := range []string{"cross check", "another payload, a bit longer than the first one"} {
		_, bm := encode(t, content, qrcode.Medium, 4)
		codes, err := goqr.Recognize(imageload.ToImage(bm))
		if err != nil {
			t.Fatalf("goqr: %v", err)
		}
		if len(codes) != 1 {
			t.Fatalf("goqr found %d codes", len(codes))
		}
		result, err := Decode(bm, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal([]byte(result.Text), codes[0].Payload) {
			t.Errorf("Text = %q, goqr read %q", result.Text, codes[0].Payload)
		}
	}
}

func TestErrorCorrectedSymbolAgreesWithGoqr(t *testing.T) {
	tests := []struct {
		version int
		level   decoder.ErrorCorrectionLevel
		mask    int
		text    string
	}{
		{2, decoder.ECLevelQ, 5, "built by qrtest"},
		{4, decoder.ECLevelH, 2, "four blocks of nine codewords"},
		{7, decoder.ECLevelL, 6, "version information is drawn from seven up"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%s", tt.version, tt.level), func(t *testing.T) {
			data, err := qrtest.ByteData(tt.version, tt.level, tt.text)
			if err != nil {
				t.Fatal(err)
			}
			spec, _ := decoder.BlockStructure(tt.version, tt.level)
			modules := qrtest.Symbol(tt.version, tt.level, tt.mask, qrtest.ErrorCorrected(spec, data))
			bm := qrtest.Render(modules, 4, 4)

			codes, err := goqr.Recognize(imageload.ToImage(bm))
			if err != nil {
				t.Fatalf("goqr: %v", err)
			}
			if len(codes) != 1 || string(codes[0].Payload) != tt.text {
				t.Fatalf("goqr read %d codes", len(codes))
			}
			result, err := Decode(bm, nil)
			if err != nil {
				t.Fatal(err)
			}
			if result.Text != tt.text || result.MaskPattern != tt.mask || result.ECLevel != tt.level {
				t.Errorf("decoded %q %s mask %d", result.Text, result.ECLevel, result.MaskPattern)
			}
		})
	}
}

func TestSequentialSymbol(t *testing.T) {
	const version = 2
	n := decoder.TotalCodewords(version)
	modules := qrtest.Symbol(version, decoder.ECLevelM, 3, qrtest.Sequential(n))
	s := NewScan(qrtest.Render(modules, 4, 4), nil)
	// The codewords are not a valid bit stream, so only the stages up to the
	// matrix are expected to succeed.
	_ = s.Run()

	m := s.Matrix()
	if m == nil {
		t.Fatalf("no matrix: %v", s.Err())
	}
	if m.Version() != version || m.ECLevel() != decoder.ECLevelM || m.MaskPattern() != 3 {
		t.Errorf("matrix %d-%s mask %d", m.Version(), m.ECLevel(), m.MaskPattern())
	}
	if !m.Unmasked() {
		if err := m.Unmask(); err != nil {
			t.Fatal(err)
		}
	}
	if got := m.RawCodewords(); !bytes.Equal(got, qrtest.Sequential(n)) {
		t.Errorf("raw codewords = %v", got)
	}
	if len(s.FinderPatterns()) != 3 {
		t.Errorf("found %d finder patterns", len(s.FinderPatterns()))
	}
}

func TestScanAccessors(t *testing.T) {
	_, bm := encode(t, "accessors", qrcode.Medium, 3)
	s := NewScan(bm, nil)
	if s.FinderPatterns() != nil || s.Matrix() != nil || s.Result() != nil {
		t.Fatal("accessors should be empty before Run")
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if len(s.Candidates(geometry.Horizontal)) < 3 || len(s.Candidates(geometry.Vertical)) < 3 {
		t.Errorf("candidates: %d horizontal, %d vertical",
			len(s.Candidates(geometry.Horizontal)), len(s.Candidates(geometry.Vertical)))
	}
	if len(s.Matches(geometry.Horizontal)) < 3 {
		t.Errorf("matches: %d horizontal", len(s.Matches(geometry.Horizontal)))
	}
	if got := len(s.FinderPatterns()); got != 3 {
		t.Errorf("%d finder patterns, want 3", got)
	}
	if got := len(s.Neighbors()); got != 6 {
		t.Errorf("%d neighbors, want 6", got)
	}
	if s.SamplingGrid() == nil || s.Normalized() == nil || s.Decoded() == nil {
		t.Fatal("missing stage output")
	}
	if s.Decoded().Text != "accessors" {
		t.Errorf("Text = %q", s.Decoded().Text)
	}

	// Points are on the finder pattern centers: 4 quiet modules plus 3.5.
	r := s.Result()
	d := 17 + 4*r.Version
	want := [][2]float64{{7.5, 7.5}, {float64(d) + 0.5, 7.5}, {7.5, float64(d) + 0.5}}
	for i, p := range r.Points {
		if p.X != want[i][0]*3 || p.Y != want[i][1]*3 {
			t.Errorf("point %d = %v, want (%v, %v)", i, p, want[i][0]*3, want[i][1]*3)
		}
	}

	if err := s.Run(); err != nil {
		t.Errorf("second Run = %v", err)
	}
}

func TestDecodeNoFinderPatterns(t *testing.T) {
	blank := bitutil.NewBitMatrix(100)
	s := NewScan(blank, nil)
	err := s.Run()
	if !errors.Is(err, ErrNoFinderPatterns) {
		t.Fatalf("err = %v, want ErrNoFinderPatterns", err)
	}
	if len(s.FinderPatterns()) != 0 {
		t.Errorf("found %d finder patterns", len(s.FinderPatterns()))
	}
	if s.Neighbors() != nil || s.SamplingGrid() != nil || s.Matrix() != nil || s.Decoded() != nil {
		t.Error("later stages should be empty")
	}
	if _, err := Decode(blank, nil); !errors.Is(err, ErrNoFinderPatterns) {
		t.Errorf("Decode err = %v", err)
	}
}

func TestDecodeNoSharedCorner(t *testing.T) {
	// Three finder patterns on a diagonal have no right-angle neighbors.
	modules := bitutil.NewBitMatrix(45)
	for _, c := range []int{0, 19, 38} {
		qrtest.DrawFinder(modules, c, c)
	}
	s := NewScan(qrtest.Render(modules, 2, 4), nil)
	if err := s.Run(); !errors.Is(err, ErrNoSharedCorner) {
		t.Fatalf("err = %v, want ErrNoSharedCorner", err)
	}
	if len(s.FinderPatterns()) != 3 || len(s.Neighbors()) != 6 {
		t.Errorf("%d patterns, %d neighbors", len(s.FinderPatterns()), len(s.Neighbors()))
	}
	if s.SamplingGrid() != nil {
		t.Error("sampling grid should be empty")
	}
}

func TestDecodeAll(t *testing.T) {
	var bitmaps []Bitmap
	var want []string
	for i := 0; i < 6; i++ {
		content := fmt.Sprintf("batch item %d", i)
		_, bm := encode(t, content, qrcode.Medium, 2)
		bitmaps = append(bitmaps, bm)
		want = append(want, content)
	}
	bitmaps = append(bitmaps, bitutil.NewBitMatrix(50))

	outcomes := DecodeAll(context.Background(), bitmaps, &Options{Workers: 3})
	if len(outcomes) != len(bitmaps) {
		t.Fatalf("%d outcomes, want %d", len(outcomes), len(bitmaps))
	}
	for i, content := range want {
		if outcomes[i].Err != nil {
			t.Errorf("item %d: %v", i, outcomes[i].Err)
			continue
		}
		if outcomes[i].Result.Text != content {
			t.Errorf("item %d: Text = %q, want %q", i, outcomes[i].Result.Text, content)
		}
	}
	if last := outcomes[len(outcomes)-1]; !errors.Is(last.Err, ErrNoFinderPatterns) {
		t.Errorf("blank item: err = %v", last.Err)
	}
}

func TestDecodeAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, bm := encode(t, "never decoded", qrcode.Medium, 2)
	outcomes := DecodeAll(ctx, []Bitmap{bm, bm}, nil)
	for i, o := range outcomes {
		if !errors.Is(o.Err, context.Canceled) {
			t.Errorf("item %d: err = %v, want context.Canceled", i, o.Err)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var nilOpts *Options
	o := nilOpts.withDefaults()
	if o.Tolerances != geometry.DefaultTolerances() || o.Workers <= 0 {
		t.Errorf("defaults = %+v", o)
	}
	custom := geometry.DefaultTolerances()
	custom.MaxAspect = 0.7
	o = (&Options{Tolerances: custom, Workers: 2, CharacterSet: "UTF-8"}).withDefaults()
	if o.Tolerances != custom || o.Workers != 2 || o.CharacterSet != "UTF-8" {
		t.Errorf("custom = %+v", o)
	}
}
