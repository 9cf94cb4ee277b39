// Package reedsolomon computes QR error correction codewords over GF(256)
// with the primitive polynomial x^8 + x^4 + x^3 + x^2 + 1. It is used to
// build valid fixture symbols; the decoder never corrects errors.
package reedsolomon

const primitive = 0x011D

var (
	expTable [255]byte
	logTable [256]int
)

func init() {
	x := 1
	for i := range expTable {
		expTable[i] = byte(x)
		logTable[x] = i
		x <<= 1
		if x >= 256 {
			x ^= primitive
		}
	}
}

// Exp returns α^a.
func Exp(a int) byte {
	return expTable[a%255]
}

// Multiply returns a * b in GF(256).
func Multiply(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[(logTable[a]+logTable[b])%255]
}

// Encoder produces error correction codewords. It caches generator
// polynomials and is not safe for concurrent use.
type Encoder struct {
	// generators[d] is the product of (x - α^i) for i < d, highest degree
	// coefficient first.
	generators [][]byte
}

// NewEncoder returns an Encoder with an empty generator cache.
func NewEncoder() *Encoder {
	return &Encoder{generators: [][]byte{{1}}}
}

func (e *Encoder) generator(degree int) []byte {
	for d := len(e.generators); d <= degree; d++ {
		prev := e.generators[d-1]
		root := Exp(d - 1)
		next := make([]byte, len(prev)+1)
		copy(next, prev)
		for i := 1; i < len(next); i++ {
			next[i] ^= Multiply(prev[i-1], root)
		}
		e.generators = append(e.generators, next)
	}
	return e.generators[degree]
}

// Encode returns the ecCount error correction codewords of data: the
// remainder of data·x^ecCount divided by the generator polynomial.
func (e *Encoder) Encode(data []byte, ecCount int) []byte {
	if ecCount <= 0 {
		return nil
	}
	gen := e.generator(ecCount)
	rem := make([]byte, ecCount)
	for _, d := range data {
		factor := d ^ rem[0]
		copy(rem, rem[1:])
		rem[ecCount-1] = 0
		for i := range rem {
			rem[i] ^= Multiply(gen[i+1], factor)
		}
	}
	return rem
}

// Syndromes evaluates the codeword, data followed by its error correction
// codewords, at α^0 through α^(ecCount-1). They are all zero for an
// uncorrupted codeword.
func Syndromes(codeword []byte, ecCount int) []byte {
	out := make([]byte, ecCount)
	for i := range out {
		a := Exp(i)
		var v byte
		for _, c := range codeword {
			v = Multiply(v, a) ^ c
		}
		out[i] = v
	}
	return out
}
