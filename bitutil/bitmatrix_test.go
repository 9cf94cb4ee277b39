package bitutil

import "testing"

func TestBitMatrixGetSet(t *testing.T) {
	bm := NewBitMatrixWithSize(10, 10)
	bm.Set(3, 5)
	if !bm.Get(3, 5) {
		t.Error("bit (3,5) should be set")
	}
	if bm.Get(5, 3) {
		t.Error("bit (5,3) should not be set")
	}
	bm.Flip(3, 5)
	if bm.Get(3, 5) {
		t.Error("bit (3,5) should be unset after flip")
	}
	bm.Set(1, 1)
	bm.Unset(1, 1)
	if bm.Get(1, 1) {
		t.Error("bit (1,1) should be unset")
	}
}

func TestBitMatrixSetRegion(t *testing.T) {
	bm := NewBitMatrixWithSize(8, 8)
	bm.SetRegion(2, 2, 4, 4)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			expected := x >= 2 && x < 6 && y >= 2 && y < 6
			if bm.Get(x, y) != expected {
				t.Errorf("(%d,%d) = %v, want %v", x, y, bm.Get(x, y), expected)
			}
		}
	}
}

func TestBitMatrixRowColumn(t *testing.T) {
	bm := ParseStringMatrix("100\n110\n011\n", "1", "0")
	if got := bm.Row(1, nil).String(); got != "XX." {
		t.Errorf("Row(1) = %q, want %q", got, "XX.")
	}
	if got := bm.Column(2, nil).String(); got != "..X" {
		t.Errorf("Column(2) = %q, want %q", got, "..X")
	}
	reused := NewBitArray(3)
	reused.Set(0)
	if got := bm.Column(1, reused).String(); got != ".XX" {
		t.Errorf("Column(1) = %q, want %q", got, ".XX")
	}
}

func TestBitMatrixExtract(t *testing.T) {
	bm := ParseStringMatrix("1000\n0110\n0010\n0001\n", "1", "0")
	tests := []struct {
		name                     string
		left, top, width, height int
		want                     string
	}{
		{"square", 1, 1, 2, 2, "11\n01\n"},
		{"wide", 1, 1, 3, 2, "110\n010\n"},
		{"overhanging", 3, 3, 2, 2, "10\n00\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bm.Extract(tt.left, tt.top, tt.width, tt.height)
			if s := got.StringWithChars("1", "0"); s != tt.want {
				t.Errorf("Extract() =\n%s\nwant\n%s", s, tt.want)
			}
		})
	}
}

func TestBitMatrixRotateClockwise(t *testing.T) {
	bm := ParseStringMatrix("101\n000\n010\n", "1", "0")
	got := bm.RotateClockwise().StringWithChars("1", "0")
	want := "001\n100\n001\n"
	if got != want {
		t.Errorf("RotateClockwise() =\n%s\nwant\n%s", got, want)
	}

	wide := NewBitMatrixWithSize(4, 3)
	wide.Set(3, 0)
	rotated := wide.RotateClockwise()
	if rotated.Width() != 3 || rotated.Height() != 4 {
		t.Fatalf("dimensions after rotation: %dx%d, want 3x4", rotated.Width(), rotated.Height())
	}
	if !rotated.Get(2, 3) {
		t.Error("(3,0) should move to (2,3)")
	}

	full := bm
	for i := 0; i < 4; i++ {
		full = full.RotateClockwise()
	}
	if !full.Equals(bm) {
		t.Error("four rotations should restore the matrix")
	}
}

func TestFromBitmap(t *testing.T) {
	bm := ParseBoolMatrix([][]bool{{true, false}, {false, true}})
	copied := FromBitmap(bm)
	copied.Set(1, 0)
	if bm.Get(1, 0) {
		t.Error("modifying copy should not affect original")
	}
	if !copied.Get(0, 0) || !copied.Get(1, 1) {
		t.Error("copy should keep set bits")
	}
}

func TestBitMatrixEquals(t *testing.T) {
	a := NewBitMatrixWithSize(4, 4)
	b := NewBitMatrixWithSize(4, 4)
	a.Set(1, 2)
	b.Set(1, 2)
	if !a.Equals(b) {
		t.Error("equal matrices should be equal")
	}
	b.Set(3, 3)
	if a.Equals(b) {
		t.Error("different matrices should not be equal")
	}
	if a.Equals(NewBitMatrixWithSize(4, 5)) {
		t.Error("matrices of different size should not be equal")
	}
}
