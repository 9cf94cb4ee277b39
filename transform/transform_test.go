package transform

import (
	"math"
	"testing"

	"github.com/ericlevine/qrio/bitutil"
)

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestQuadrilateralToQuadrilateral(t *testing.T) {
	tests := []struct {
		name     string
		src, dst [4]Point
	}{
		{
			"scale",
			[4]Point{{3.5, 3.5}, {17.5, 3.5}, {17.5, 17.5}, {3.5, 17.5}},
			[4]Point{{35, 35}, {175, 35}, {175, 175}, {35, 175}},
		},
		{
			"shear",
			[4]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
			[4]Point{{5, 5}, {25, 7}, {23, 27}, {3, 25}},
		},
		{
			"perspective",
			[4]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
			[4]Point{{0, 0}, {12, 1}, {11, 13}, {-1, 9}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := QuadrilateralToQuadrilateral(tt.src, tt.dst)
			for i := range tt.src {
				if got := m.Apply(tt.src[i]); !near(got, tt.dst[i]) {
					t.Errorf("corner %d maps to %v, want %v", i, got, tt.dst[i])
				}
			}
		})
	}
}

func TestMatrixAdjointInverts(t *testing.T) {
	q := [4]Point{{5, 5}, {25, 7}, {23, 27}, {3, 25}}
	m := SquareToQuadrilateral(q)
	p := Point{0.25, 0.75}
	if got := m.Adjoint().Apply(m.Apply(p)); !near(got, p) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
}

func TestSampleGrid(t *testing.T) {
	// 2x2 modules of 3 pixels each on a checkerboard.
	image := bitutil.ParseStringMatrix(
		"111000\n111000\n111000\n000111\n000111\n000111\n", "1", "0")
	m := QuadrilateralToQuadrilateral(
		[4]Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}},
		[4]Point{{0, 0}, {6, 0}, {6, 6}, {0, 6}},
	)
	s, err := SampleGrid(image, 2, 2, m)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Bits.StringWithChars("1", "0"); got != "10\n01\n" {
		t.Errorf("sampled =\n%s", got)
	}
	if len(s.Points) != 4 || !near(s.Points[3], Point{4.5, 4.5}) {
		t.Errorf("points = %v", s.Points)
	}
}

func TestSampleGridOutsideReadsLight(t *testing.T) {
	image := bitutil.NewBitMatrix(4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			image.Set(x, y)
		}
	}
	// The right column and bottom row of modules map beyond the image.
	m := QuadrilateralToQuadrilateral(
		[4]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		[4]Point{{-1, -1}, {3, -1}, {3, 3}, {-1, 3}},
	)
	s, err := SampleGrid(image, 2, 2, m)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Bits.StringWithChars("1", "0"); got != "10\n00\n" {
		t.Errorf("sampled =\n%s", got)
	}
	if !near(s.Points[0], Point{1, 1}) || !near(s.Points[3], Point{5, 5}) {
		t.Errorf("points = %v", s.Points)
	}
}

func TestSampleGridInvalid(t *testing.T) {
	if _, err := SampleGrid(bitutil.NewBitMatrix(4), 0, 2, Matrix{}); err == nil {
		t.Error("expected an error for an empty grid")
	}
}
