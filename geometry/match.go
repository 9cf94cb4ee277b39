package geometry

import (
	"fmt"
	"math"
	"sort"
)

// Tolerances bound how far two matches may drift apart and still be treated
// as parts of the same physical bar or as crossing bars of one pattern.
// Fractions are relative to the receiving match's length.
type Tolerances struct {
	Endpoint    float64 // origin/terminus drift between adjacent scan lines
	MinEndpoint int     // endpoint drift always allowed, in pixels
	Offset      float64 // gap between adjacent scan lines
	MinOffset   int     // gap always allowed, in pixels
	Length      float64 // length difference of intersecting matches
	Breadth     float64 // breadth difference of intersecting matches
	MinAspect   float64
	MaxAspect   float64
}

// DefaultTolerances returns the tolerances used when none are configured.
// An ideal grouped match has aspect ratio 3/7.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Endpoint:    0.05,
		MinEndpoint: 1,
		Offset:      0.25,
		MinOffset:   2,
		Length:      0.35,
		Breadth:     0.15,
		MinAspect:   0.25,
		MaxAspect:   0.59,
	}
}

// Match is a run-length candidate found on one or more consecutive scan lines
// of a single direction. Direction is either Horizontal or Vertical.
type Match struct {
	Region
	Direction Orientation
}

// NewMatch builds a single-line match. For horizontal matches offset is the
// row and origin/terminus are columns; vertical matches swap the axes.
func NewMatch(dir Orientation, offset, origin, terminus int) Match {
	if dir == Vertical {
		return Match{Region: NewRegion(offset, origin, offset, terminus), Direction: Vertical}
	}
	return Match{Region: NewRegion(origin, offset, terminus, offset), Direction: Horizontal}
}

// Offset is the first scan line covered by the match.
func (m Match) Offset() int {
	if m.Direction == Vertical {
		return m.X1
	}
	return m.Y1
}

// OffsetEnd is the last scan line covered by the match.
func (m Match) OffsetEnd() int {
	if m.Direction == Vertical {
		return m.X2
	}
	return m.Y2
}

// Origin is where the match starts along the scan axis.
func (m Match) Origin() int {
	if m.Direction == Vertical {
		return m.Y1
	}
	return m.X1
}

// Terminus is where the match ends along the scan axis.
func (m Match) Terminus() int {
	if m.Direction == Vertical {
		return m.Y2
	}
	return m.X2
}

// Length is the extent along the scan axis.
func (m Match) Length() int {
	if m.Direction == Vertical {
		return m.Height()
	}
	return m.Width()
}

// Breadth is the extent across scan lines.
func (m Match) Breadth() int {
	if m.Direction == Vertical {
		return m.Width()
	}
	return m.Height()
}

// AspectRatio returns Breadth / Length.
func (m Match) AspectRatio() float64 {
	return float64(m.Breadth()) / float64(m.Length())
}

// MatchesAspectRatio reports whether the match is shaped like the center
// square of a finder pattern seen across its full width.
func (m Match) MatchesAspectRatio(tol Tolerances) bool {
	ar := m.AspectRatio()
	return ar >= tol.MinAspect && ar <= tol.MaxAspect
}

// Union grows the match to cover other, keeping m's direction.
func (m Match) Union(other Match) Match {
	return Match{Region: m.Region.Union(other.Region), Direction: m.Direction}
}

// offsetDiff is the number of scan lines between the two matches; it is
// negative when they overlap.
func (m Match) offsetDiff(other Match) int {
	if other.Offset() > m.OffsetEnd() {
		return other.Offset() - m.OffsetEnd()
	}
	return m.Offset() - other.OffsetEnd()
}

func allowance(length int, fraction float64, minimum int) float64 {
	return math.Max(float64(minimum), fraction*float64(length))
}

// Adjacent reports whether other lies on a neighboring scan line of the same
// direction and spans the same stretch of the scan axis.
func (m Match) Adjacent(other Match, tol Tolerances) bool {
	if m.Direction != other.Direction {
		return false
	}
	length := m.Length()
	endpoint := allowance(length, tol.Endpoint, tol.MinEndpoint)
	if math.Abs(float64(m.Origin()-other.Origin())) > endpoint {
		return false
	}
	if math.Abs(float64(m.Terminus()-other.Terminus())) > endpoint {
		return false
	}
	return float64(m.offsetDiff(other)) <= allowance(length, tol.Offset, tol.MinOffset)
}

// Intersects reports whether m and other are the horizontal and vertical
// bars of the same finder pattern: each one's cross-scan span lies within
// the other's scan span and their sizes agree.
func (m Match) Intersects(other Match, tol Tolerances) bool {
	if m.Direction == other.Direction {
		return false
	}
	if m.Offset() < other.Origin() || m.OffsetEnd() > other.Terminus() {
		return false
	}
	if other.Offset() < m.Origin() || other.OffsetEnd() > m.Terminus() {
		return false
	}
	length := float64(m.Length())
	if math.Abs(float64(m.Length()-other.Length()))/length > tol.Length {
		return false
	}
	return math.Abs(float64(m.Breadth()-other.Breadth()))/length <= tol.Breadth
}

// Less orders matches by offset, then by origin.
func (m Match) Less(other Match) bool {
	if m.Offset() != other.Offset() {
		return m.Offset() < other.Offset()
	}
	return m.Origin() < other.Origin()
}

// SortMatches sorts matches in scan order.
func SortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Less(matches[j]) })
}

func (m Match) String() string {
	prefix := "H"
	if m.Direction == Vertical {
		prefix = "V"
	}
	return fmt.Sprintf("%s%d(%d->%d)", prefix, m.Offset(), m.Origin(), m.Terminus())
}
