// Package detector locates QR finder patterns in a bitmap and derives the
// sampling grid of the symbol they belong to.
package detector

import (
	"github.com/ericlevine/qrio/bitutil"
	"github.com/ericlevine/qrio/geometry"
)

// Finder collects finder-pattern candidates from horizontal and vertical
// scans of a bitmap. A Finder is used for one bitmap only.
type Finder struct {
	tol        geometry.Tolerances
	candidates map[geometry.Orientation][]geometry.Match
	matches    map[geometry.Orientation][]geometry.Match
	patterns   []geometry.Region
}

// NewFinder creates a Finder using the given tolerances.
func NewFinder(tol geometry.Tolerances) *Finder {
	return &Finder{
		tol: tol,
		candidates: map[geometry.Orientation][]geometry.Match{
			geometry.Horizontal: nil,
			geometry.Vertical:   nil,
		},
		matches: map[geometry.Orientation][]geometry.Match{
			geometry.Horizontal: nil,
			geometry.Vertical:   nil,
		},
	}
}

// Find runs every detection stage on image and returns the finder patterns.
func (f *Finder) Find(image bitutil.Bitmap) []geometry.Region {
	bm, ok := image.(*bitutil.BitMatrix)
	if !ok {
		bm = bitutil.FromBitmap(image)
	}
	f.Scan(bm, geometry.Horizontal)
	f.Scan(bm, geometry.Vertical)
	f.FilterCandidates()
	return f.FindIntersections()
}

// Scan run-length encodes every row (Horizontal) or column (Vertical) of bm
// and groups the ratio matches it finds.
func (f *Finder) Scan(bm *bitutil.BitMatrix, dir geometry.Orientation) {
	var found []geometry.Match
	var line *bitutil.BitArray
	if dir == geometry.Vertical {
		for x := 0; x < bm.Width(); x++ {
			line = bm.Column(x, line)
			found = append(found, ScanLine(line, dir, x)...)
		}
	} else {
		for y := 0; y < bm.Height(); y++ {
			line = bm.Row(y, line)
			found = append(found, ScanLine(line, dir, y)...)
		}
	}
	geometry.SortMatches(found)
	for _, m := range found {
		f.AddCandidate(m)
	}
}

// ScanLine slides a five-run window over line and returns a match for every
// window that starts with a dark run and has finder-pattern proportions.
func ScanLine(line *bitutil.BitArray, dir geometry.Orientation, offset int) []geometry.Match {
	runs := line.RunLengths()
	if len(runs) < 5 {
		return nil
	}
	var found []geometry.Match
	dark := line.Get(0)
	origin := 0
	for i := 0; i+5 <= len(runs); i++ {
		window := runs[i : i+5]
		if dark && MatchesRatio(window) {
			length := 0
			for _, w := range window {
				length += w
			}
			found = append(found, geometry.NewMatch(dir, offset, origin, origin+length-1))
		}
		origin += runs[i]
		dark = !dark
	}
	return found
}

// AddCandidate merges m into the first existing group of its direction that
// it is adjacent to, or starts a new group.
func (f *Finder) AddCandidate(m geometry.Match) {
	groups := f.candidates[m.Direction]
	for i, g := range groups {
		if m.Adjacent(g, f.tol) {
			groups[i] = g.Union(m)
			return
		}
	}
	f.candidates[m.Direction] = append(groups, m)
}

// FilterCandidates keeps the distinct groups whose aspect ratio fits the
// center square of a finder pattern.
func (f *Finder) FilterCandidates() {
	for dir, groups := range f.candidates {
		seen := make(map[geometry.Region]bool)
		var kept []geometry.Match
		for _, g := range groups {
			if seen[g.Region] || !g.MatchesAspectRatio(f.tol) {
				continue
			}
			seen[g.Region] = true
			kept = append(kept, g)
		}
		f.matches[dir] = kept
	}
}

// FindIntersections pairs every retained horizontal group with every
// retained vertical group crossing it. Each pair's union is a finder pattern.
func (f *Finder) FindIntersections() []geometry.Region {
	f.patterns = nil
	seen := make(map[geometry.Region]bool)
	for _, h := range f.matches[geometry.Horizontal] {
		for _, v := range f.matches[geometry.Vertical] {
			if !h.Intersects(v, f.tol) {
				continue
			}
			p := h.Region.Union(v.Region)
			if !seen[p] {
				seen[p] = true
				f.patterns = append(f.patterns, p)
			}
		}
	}
	return f.patterns
}

// Candidates returns the grouped matches of one direction before filtering.
func (f *Finder) Candidates(dir geometry.Orientation) []geometry.Match {
	return append([]geometry.Match(nil), f.candidates[dir]...)
}

// Matches returns the groups of one direction that passed the aspect filter.
func (f *Finder) Matches(dir geometry.Orientation) []geometry.Match {
	return append([]geometry.Match(nil), f.matches[dir]...)
}

// Patterns returns the finder patterns found by FindIntersections.
func (f *Finder) Patterns() []geometry.Region {
	return append([]geometry.Region(nil), f.patterns...)
}
