package qrio

import (
	"github.com/ericlevine/qrio/geometry"
	"github.com/ericlevine/qrio/qrcode/decoder"
	"github.com/ericlevine/qrio/transform"
)

// Result is a decoded symbol.
type Result struct {
	Text         string
	RawBytes     []byte
	ByteSegments [][]byte
	Version      int
	ECLevel      decoder.ErrorCorrectionLevel
	MaskPattern  int
	// Orientation is the bitmap corner holding the top-left finder pattern:
	// 0 top left, 1 top right, 2 bottom right, 3 bottom left.
	Orientation int
	// Points are the centers of the top-left, top-right and bottom-left
	// finder patterns in bitmap coordinates.
	Points []transform.Point
}

// Decode detects and decodes the QR symbol in bitmap.
func Decode(bitmap Bitmap, opts *Options) (*Result, error) {
	s := NewScan(bitmap, opts)
	if err := s.Run(); err != nil {
		return nil, err
	}
	return s.Result(), nil
}

// Result summarizes a successful scan. It returns nil if Run failed or has
// not been called.
func (s *Scan) Result() *Result {
	if s.decoded == nil {
		return nil
	}
	d := s.decoded
	return &Result{
		Text:         d.Text,
		RawBytes:     d.RawBytes,
		ByteSegments: d.ByteSegments,
		Version:      d.Version,
		ECLevel:      d.ECLevel,
		MaskPattern:  d.MaskPattern,
		Orientation:  s.grid.Orientation(),
		Points:       s.cornerPoints(),
	}
}

// cornerPoints maps the normalized corner patterns back into the bitmap by
// completing the quarter turns and undoing the crop.
func (s *Scan) cornerPoints() []transform.Point {
	n := s.normalized
	corners := []geometry.Region{n.TopLeft, n.TopRight, n.BottomLeft}
	w, h := n.Bitmap.Width(), n.Bitmap.Height()
	for i := 0; i < (4-n.Rotations)%4; i++ {
		for j := range corners {
			corners[j] = corners[j].Rotate(w, h)
		}
		w, h = h, w
	}
	bounds := s.grid.Bounds()
	points := make([]transform.Point, len(corners))
	for i, c := range corners {
		x, y := c.Translate(-bounds.X1, -bounds.Y1).Center()
		points[i] = transform.Point{X: x, Y: y}
	}
	return points
}
