// Package geometry provides the axis-aligned rectangles used throughout
// finder-pattern detection: plain regions and the run-length matches built
// from horizontal and vertical scan lines.
package geometry

import "fmt"

// Orientation describes the dominant axis of a Region.
type Orientation int

const (
	Square Orientation = iota
	Horizontal
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "square"
	}
}

// Region is an inclusive rectangle of pixels. X1 <= X2 and Y1 <= Y2.
type Region struct {
	X1, Y1, X2, Y2 int
}

// NewRegion returns the Region spanning both corners in any order.
func NewRegion(x1, y1, x2, y2 int) Region {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Region{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func (r Region) Left() int   { return r.X1 }
func (r Region) Top() int    { return r.Y1 }
func (r Region) Right() int  { return r.X2 }
func (r Region) Bottom() int { return r.Y2 }

// Width returns the number of pixel columns covered.
func (r Region) Width() int { return r.X2 - r.X1 + 1 }

// Height returns the number of pixel rows covered.
func (r Region) Height() int { return r.Y2 - r.Y1 + 1 }

// Orientation reports whether the region is wider than tall, taller than
// wide, or square.
func (r Region) Orientation() Orientation {
	switch w, h := r.Width(), r.Height(); {
	case w > h:
		return Horizontal
	case h > w:
		return Vertical
	default:
		return Square
	}
}

// Center returns the geometric center of the region.
func (r Region) Center() (x, y float64) {
	return float64(r.X1) + float64(r.Width())/2, float64(r.Y1) + float64(r.Height())/2
}

// Contains reports whether the pixel (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Union returns the smallest region covering both r and other.
func (r Region) Union(other Region) Region {
	return Region{
		X1: min(r.X1, other.X1),
		Y1: min(r.Y1, other.Y1),
		X2: max(r.X2, other.X2),
		Y2: max(r.Y2, other.Y2),
	}
}

// Translate moves the region into a frame whose origin is (dx, dy).
func (r Region) Translate(dx, dy int) Region {
	return Region{X1: r.X1 - dx, Y1: r.Y1 - dy, X2: r.X2 - dx, Y2: r.Y2 - dy}
}

// Rotate turns the region 90 degrees clockwise inside a frame of the given
// size, matching bitutil.BitMatrix.RotateClockwise.
func (r Region) Rotate(frameWidth, frameHeight int) Region {
	return NewRegion(frameHeight-1-r.Y2, r.X1, frameHeight-1-r.Y1, r.X2)
}

func (r Region) String() string {
	return fmt.Sprintf("R[%d,%d,%d,%d]", r.X1, r.Y1, r.X2, r.Y2)
}
