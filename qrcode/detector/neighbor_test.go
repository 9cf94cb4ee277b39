package detector

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/ericlevine/qrio/geometry"
)

func TestNeighborCalculations(t *testing.T) {
	s1 := geometry.NewRegion(169, 140, 284, 256)
	s2 := geometry.NewRegion(173, 435, 286, 546)
	s3 := geometry.NewRegion(463, 140, 578, 256)

	tests := []struct {
		name       string
		from, to   geometry.Region
		angle      string
		distance   float64
		rightAngle bool
	}{
		{"1->2", s1, s2, "-1.561", 293, true},
		{"2->1", s2, s1, "1.581", 293, true},
		{"2->3", s2, s3, "0.788", 413, false},
		{"3->2", s3, s2, "-2.354", 413, false},
		{"3->1", s3, s1, "3.142", 294, true},
		{"1->3", s1, s3, "0.000", 294, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNeighbor(0, 1, tt.from, tt.to)
			if got := fmt.Sprintf("%.3f", n.Angle); got != tt.angle {
				t.Errorf("angle = %s, want %s", got, tt.angle)
			}
			if got := math.Round(n.Distance); got != tt.distance {
				t.Errorf("distance = %v, want %v", got, tt.distance)
			}
			if n.RightAngle() != tt.rightAngle {
				t.Errorf("RightAngle() = %v, want %v", n.RightAngle(), tt.rightAngle)
			}
		})
	}
}

func TestRightAngleBands(t *testing.T) {
	tests := []struct {
		angle float64
		want  bool
	}{
		{0, true},
		{math.Pi / 8, true},
		{math.Pi / 4, false},
		{-math.Pi / 2, true},
		{3 * math.Pi / 4, false},
		{-7 * math.Pi / 8, true},
		{math.Pi, true},
	}
	for _, tt := range tests {
		if got := (Neighbor{Angle: tt.angle}).RightAngle(); got != tt.want {
			t.Errorf("RightAngle(%.3f) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestGraph(t *testing.T) {
	patterns := []geometry.Region{
		geometry.NewRegion(0, 0, 6, 6),
		geometry.NewRegion(14, 0, 20, 6),
		geometry.NewRegion(0, 14, 6, 20),
		geometry.NewRegion(0, 0, 6, 6), // duplicate center, no edges to 0
	}
	g := NewGraph(patterns)
	// 0<->3 share a center, leaving 12-2 ordered pairs
	if len(g.Edges()) != 10 {
		t.Fatalf("got %d edges, want 10", len(g.Edges()))
	}
	for _, n := range g.Neighbors(0) {
		if n.Source != 0 || n.Destination == 0 || n.Destination == 3 {
			t.Errorf("unexpected edge %d->%d", n.Source, n.Destination)
		}
	}
	// the duplicate gives 1 and 2 a second right-angle neighbor each
	if got := g.SharedCorners(); !reflect.DeepEqual(got, []int{0, 1, 2, 3}) {
		t.Errorf("SharedCorners() = %v, want [0 1 2 3]", got)
	}
	corner, err := g.SharedCorner()
	if err != nil || corner != 0 {
		t.Fatalf("SharedCorner() = %d, %v", corner, err)
	}
	if got, want := g.Bounds(0), geometry.NewRegion(0, 0, 20, 20); got != want {
		t.Errorf("Bounds(0) = %v, want %v", got, want)
	}
}

func TestGraphNoSharedCorner(t *testing.T) {
	g := NewGraph([]geometry.Region{
		geometry.NewRegion(0, 0, 6, 6),
		geometry.NewRegion(20, 10, 26, 16),
		geometry.NewRegion(40, 25, 46, 31),
	})
	if _, err := g.SharedCorner(); !errors.Is(err, ErrNoSharedCorner) {
		t.Errorf("err = %v, want ErrNoSharedCorner", err)
	}
}
