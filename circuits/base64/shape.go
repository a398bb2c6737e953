package cb64

import (
	"fmt"
	"math"
)

// Shape holds the circuit dimensions derived from the decoded byte size.
// It is fixed when the circuit is defined.
type Shape struct {
	DecodedByteSize    int
	Num6BitChunks      int
	NumZeroPaddingBits int
	EncodedByteSize    int
	NumEqualPaddings   int
}

// MaxDecodedByteSize is the largest decoded size whose bit count fits an int.
const MaxDecodedByteSize = math.MaxInt / 8

// NewShape derives the shape for decodedByteSize bytes and checks it against
// the standard base64 length 4*floor((n+2)/3).
func NewShape(decodedByteSize int) (Shape, error) {
	if decodedByteSize < 0 {
		return Shape{}, fmt.Errorf("%w: negative decoded byte size %d", ErrShapeInconsistency, decodedByteSize)
	}
	if decodedByteSize > MaxDecodedByteSize {
		return Shape{}, fmt.Errorf("%w: decoded byte size %d exceeds %d, the bit count would overflow",
			ErrShapeInconsistency, decodedByteSize, MaxDecodedByteSize)
	}

	nbBits := 8 * decodedByteSize
	chunks := ceilDiv(nbBits, 6)
	encoded := 4 * ceilDiv(chunks, 4)

	s := Shape{
		DecodedByteSize:    decodedByteSize,
		Num6BitChunks:      chunks,
		NumZeroPaddingBits: 6*chunks - nbBits,
		EncodedByteSize:    encoded,
		NumEqualPaddings:   encoded - chunks,
	}

	if want := EncodedLen(decodedByteSize); s.EncodedByteSize != want {
		return Shape{}, fmt.Errorf("%w: %d encoded bytes for %d decoded bytes, want %d",
			ErrShapeInconsistency, s.EncodedByteSize, decodedByteSize, want)
	}
	return s, nil
}

// Rows is the number of lane rows. Only the first Num6BitChunks are gated.
func (s Shape) Rows() int {
	return s.EncodedByteSize
}

func (s Shape) String() string {
	return fmt.Sprintf("decoded=%d chunks=%d zero-bits=%d encoded=%d pads=%d",
		s.DecodedByteSize, s.Num6BitChunks, s.NumZeroPaddingBits, s.EncodedByteSize, s.NumEqualPaddings)
}

// EncodedLen returns the padded base64 length of n bytes.
func EncodedLen(n int) int {
	return 4 * ((n + 2) / 3)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
