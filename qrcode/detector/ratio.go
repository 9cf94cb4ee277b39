package detector

// A slice through the center of a finder pattern crosses dark, light, dark,
// light and dark bands whose widths are in the ratio 1:1:3:1:1.
var (
	narrowMin, narrowMax = 0.5, 1.5
	wideMin, wideMax     = 2.1, 3.9
)

// NormalizedRatio divides every width by the mean of the four narrow bands.
func NormalizedRatio(widths []int) []float64 {
	if len(widths) != 5 {
		return nil
	}
	scale := float64(widths[0]+widths[1]+widths[3]+widths[4]) / 4
	out := make([]float64, len(widths))
	for i, w := range widths {
		out[i] = float64(w) / scale
	}
	return out
}

// MatchesRatio reports whether five consecutive run widths look like a
// finder-pattern crossing. Fewer or more than five widths never match.
func MatchesRatio(widths []int) bool {
	norm := NormalizedRatio(widths)
	if norm == nil {
		return false
	}
	for i, r := range norm {
		lo, hi := narrowMin, narrowMax
		if i == 2 {
			lo, hi = wideMin, wideMax
		}
		if r < lo || r > hi {
			return false
		}
	}
	return true
}
