// Package transform maps between the logical module grid of a symbol and
// pixel coordinates of the bitmap it was found in.
package transform

// Point is a location in either module or pixel space.
type Point struct {
	X, Y float64
}

// Transform maps a point from one plane onto another.
type Transform interface {
	Apply(p Point) Point
}

// Matrix is a projective transform in homogeneous row-vector form: a point
// (x, y, 1) multiplied by the matrix gives (x'w, y'w, w).
type Matrix [3][3]float64

// Apply maps p through the transform.
func (m Matrix) Apply(p Point) Point {
	w := p.X*m[0][2] + p.Y*m[1][2] + m[2][2]
	return Point{
		X: (p.X*m[0][0] + p.Y*m[1][0] + m[2][0]) / w,
		Y: (p.X*m[0][1] + p.Y*m[1][1] + m[2][1]) / w,
	}
}

// ApplyAll maps every point in place.
func (m Matrix) ApplyAll(points []Point) {
	for i, p := range points {
		points[i] = m.Apply(p)
	}
}

// Then returns the transform that applies m followed by next.
func (m Matrix) Then(next Matrix) Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*next[0][j] + m[i][1]*next[1][j] + m[i][2]*next[2][j]
		}
	}
	return out
}

// Adjoint returns the adjugate of m. For a projective transform it is the
// inverse up to scale, which Apply ignores.
func (m Matrix) Adjoint() Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m.cofactor(j, i)
		}
	}
	return out
}

func (m Matrix) cofactor(r, c int) float64 {
	r1, r2 := (r+1)%3, (r+2)%3
	c1, c2 := (c+1)%3, (c+2)%3
	return m[r1][c1]*m[r2][c2] - m[r1][c2]*m[r2][c1]
}

// SquareToQuadrilateral maps the unit square (0,0), (1,0), (1,1), (0,1) onto
// the quadrilateral q, given in the same winding.
func SquareToQuadrilateral(q [4]Point) Matrix {
	dx3 := q[0].X - q[1].X + q[2].X - q[3].X
	dy3 := q[0].Y - q[1].Y + q[2].Y - q[3].Y
	if dx3 == 0 && dy3 == 0 {
		// parallelogram
		return Matrix{
			{q[1].X - q[0].X, q[1].Y - q[0].Y, 0},
			{q[2].X - q[1].X, q[2].Y - q[1].Y, 0},
			{q[0].X, q[0].Y, 1},
		}
	}
	dx1 := q[1].X - q[2].X
	dx2 := q[3].X - q[2].X
	dy1 := q[1].Y - q[2].Y
	dy2 := q[3].Y - q[2].Y
	denominator := dx1*dy2 - dx2*dy1
	a13 := (dx3*dy2 - dx2*dy3) / denominator
	a23 := (dx1*dy3 - dx3*dy1) / denominator
	return Matrix{
		{q[1].X - q[0].X + a13*q[1].X, q[1].Y - q[0].Y + a13*q[1].Y, a13},
		{q[3].X - q[0].X + a23*q[3].X, q[3].Y - q[0].Y + a23*q[3].Y, a23},
		{q[0].X, q[0].Y, 1},
	}
}

// QuadrilateralToSquare is the inverse of SquareToQuadrilateral.
func QuadrilateralToSquare(q [4]Point) Matrix {
	return SquareToQuadrilateral(q).Adjoint()
}

// QuadrilateralToQuadrilateral maps the corners of src onto the corners of dst.
func QuadrilateralToQuadrilateral(src, dst [4]Point) Matrix {
	return QuadrilateralToSquare(src).Then(SquareToQuadrilateral(dst))
}
