package cb64

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
)

// Lanes are the witness lanes of the gadget, one cell per row.
type Lanes struct {
	EncodedChars []frontend.Variable
	BitsVals     []frontend.Variable
}

// NewLanes returns empty lanes sized for the shape, to be used as a circuit
// template.
func NewLanes(s Shape) Lanes {
	return Lanes{
		EncodedChars: make([]frontend.Variable, s.Rows()),
		BitsVals:     make([]frontend.Variable, s.Rows()),
	}
}

// AssignLanes computes the lane values an honest prover assigns for data.
// Ungated rows hold the sentinel tuple.
func AssignLanes(data []byte) (Lanes, error) {
	s, err := NewShape(len(data))
	if err != nil {
		return Lanes{}, err
	}

	values := sixBitValues(data, s)
	lanes := NewLanes(s)
	for row := range s.Rows() {
		if row >= s.Num6BitChunks {
			lanes.EncodedChars[row] = DummyChar
			lanes.BitsVals[row] = DummyBitsVal
			continue
		}
		c, err := CharOf(values[row])
		if err != nil {
			return Lanes{}, fmt.Errorf("row %d: %w", row, err)
		}
		lanes.EncodedChars[row] = int(c)
		lanes.BitsVals[row] = int(values[row])
	}
	return lanes, nil
}

// EncodeNative evaluates the relation enforced by the gadget outside of a
// circuit: MSB-first bit groups of 6, zero-padded, mapped through CharOf and
// followed by '=' padding.
func EncodeNative(data []byte) (string, error) {
	s, err := NewShape(len(data))
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, s.EncodedByteSize)
	for _, v := range sixBitValues(data, s) {
		c, err := CharOf(v)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for range s.NumEqualPaddings {
		out = append(out, PaddingChar)
	}
	return string(out), nil
}

// DecodeNative maps base64 characters back to bytes, rejecting anything
// outside the standard alphabet or misplaced padding.
func DecodeNative(encoded string) ([]byte, error) {
	if len(encoded)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4", ErrInvalidCharacter, len(encoded))
	}

	trimmed := encoded
	for range 2 {
		if len(trimmed) > 0 && trimmed[len(trimmed)-1] == PaddingChar {
			trimmed = trimmed[:len(trimmed)-1]
		}
	}

	var bits []uint8
	for i := 0; i < len(trimmed); i++ {
		v, err := ValueOf(trimmed[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		for j := 5; j >= 0; j-- {
			bits = append(bits, (v>>j)&1)
		}
	}

	n := len(bits) / 8
	if len(encoded) > 0 && EncodedLen(n) != len(encoded) {
		return nil, fmt.Errorf("%w: bad padding", ErrInvalidCharacter)
	}
	out := make([]byte, n)
	for i := range out {
		var b byte
		for j := range 8 {
			b = b<<1 | bits[8*i+j]
		}
		out[i] = b
	}
	for _, b := range bits[8*n:] {
		if b != 0 {
			return nil, fmt.Errorf("%w: non-zero padding bits", ErrInvalidCharacter)
		}
	}
	return out, nil
}

func sixBitValues(data []byte, s Shape) []uint8 {
	bits := make([]uint8, 0, 6*s.Num6BitChunks)
	for _, b := range data {
		for j := 7; j >= 0; j-- {
			bits = append(bits, (b>>j)&1)
		}
	}
	for range s.NumZeroPaddingBits {
		bits = append(bits, 0)
	}

	values := make([]uint8, s.Num6BitChunks)
	for row := range values {
		var v uint8
		for _, b := range bits[6*row : 6*row+6] {
			v = v<<1 | b
		}
		values[row] = v
	}
	return values
}
