// Package cb64 implements a base64 encoding gadget: it proves that a sequence
// of witnessed bytes encodes to a sequence of base64 characters (RFC 4648
// standard alphabet, '=' padded).
//
// The bytes are decomposed into bits, regrouped into 6-bit chunks and each
// chunk is bound to its character through a static lookup table. The lane
// layout is fixed by the decoded byte size:
//
//	row             gate  EncodedChars  BitsVals
//	0..chunks-1     1     character     6-bit value
//	chunks..rows-1  0     free          free
//
// Every row performs the same tuple lookup. On ungated rows the looked-up
// tuple is replaced by the sentinel (DummyChar, DummyBitsVal) so the free
// cells never reach the table.
package cb64

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/std/math/bits"
	"github.com/consensys/gnark/std/math/uints"
)

// Gadget is a configured base64 encoder for a fixed decoded byte size.
type Gadget struct {
	api   frontend.API
	shape Shape
	table *Table
	gates []bool
}

// New configures the gadget for decodedByteSize input bytes.
func New(api frontend.API, decodedByteSize int) (*Gadget, error) {
	s, err := NewShape(decodedByteSize)
	if err != nil {
		return nil, err
	}

	gates := make([]bool, s.Rows())
	for row := range s.Num6BitChunks {
		gates[row] = true
	}

	g := &Gadget{
		api:   api,
		shape: s,
		gates: gates,
	}
	// a shape without rows performs no lookup
	if s.Rows() > 0 {
		g.table = NewTable(api)
	}

	log := logger.Logger().With().Str("gadget", "base64").Logger()
	log.Debug().
		Int("decoded", s.DecodedByteSize).
		Int("chunks", s.Num6BitChunks).
		Int("zeroBits", s.NumZeroPaddingBits).
		Int("encoded", s.EncodedByteSize).
		Int("pads", s.NumEqualPaddings).
		Msg("configured")

	return g, nil
}

// Shape returns the derived circuit shape.
func (g *Gadget) Shape() Shape {
	return g.shape
}

// Gated reports whether the row gate is set at row.
func (g *Gadget) Gated(row int) bool {
	return row >= 0 && row < len(g.gates) && g.gates[row]
}

// Load loads the lookup table. It must be called once before Encode.
func (g *Gadget) Load() error {
	if g.table == nil {
		return nil
	}
	return g.table.Load()
}

// Encode returns the base64 characters of bytes. The lanes are assigned by
// the solver from the composed 6-bit values.
func (g *Gadget) Encode(bytes []uints.U8) ([]frontend.Variable, error) {
	values, err := g.compose(bytes)
	if err != nil {
		return nil, err
	}

	lanes := NewLanes(g.shape)
	for row := range g.shape.Rows() {
		if !g.gates[row] {
			lanes.EncodedChars[row] = DummyChar
			lanes.BitsVals[row] = DummyBitsVal
			continue
		}
		res, err := g.api.Compiler().NewHint(assignRowHint, 2, values[row])
		if err != nil {
			return nil, fmt.Errorf("failed to assign row %d: %w", row, err)
		}
		lanes.BitsVals[row] = res[0]
		lanes.EncodedChars[row] = res[1]
	}

	return g.synthesize(values, lanes)
}

// EncodeWith is Encode with lanes supplied by the host, e.g. as circuit
// inputs. Cells of ungated rows are left unconstrained.
func (g *Gadget) EncodeWith(bytes []uints.U8, lanes Lanes) ([]frontend.Variable, error) {
	if len(lanes.EncodedChars) != g.shape.Rows() || len(lanes.BitsVals) != g.shape.Rows() {
		return nil, fmt.Errorf("%w: got %d/%d cells, want %d",
			ErrLaneSize, len(lanes.EncodedChars), len(lanes.BitsVals), g.shape.Rows())
	}

	values, err := g.compose(bytes)
	if err != nil {
		return nil, err
	}
	return g.synthesize(values, lanes)
}

// compose decomposes bytes MSB first, appends the zero padding bits and
// returns the weighted sum of every group of 6 bits.
func (g *Gadget) compose(bytes []uints.U8) ([]frontend.Variable, error) {
	if len(bytes) != g.shape.DecodedByteSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInputSize, len(bytes), g.shape.DecodedByteSize)
	}
	if g.table != nil && !g.table.Loaded() {
		return nil, ErrTableNotLoaded
	}

	stream := make([]frontend.Variable, 0, 6*g.shape.Num6BitChunks)
	for i := range bytes {
		// LSB first, range checked
		b := bits.ToBinary(g.api, bytes[i].Val, bits.WithNbDigits(8))
		for j := 7; j >= 0; j-- {
			stream = append(stream, b[j])
		}
	}
	for range g.shape.NumZeroPaddingBits {
		stream = append(stream, 0)
	}

	values := make([]frontend.Variable, g.shape.Num6BitChunks)
	for row := range values {
		group := stream[6*row : 6*row+6]
		v := frontend.Variable(0)
		for j, b := range group {
			v = g.api.Add(v, g.api.Mul(b, 1<<(5-j)))
		}
		values[row] = v
	}
	return values, nil
}

func (g *Gadget) synthesize(values []frontend.Variable, lanes Lanes) ([]frontend.Variable, error) {
	rows := g.shape.Rows()
	chars := make([]frontend.Variable, rows)
	vals := make([]frontend.Variable, rows)

	for row := range rows {
		q := 0
		if g.gates[row] {
			q = 1
			// bind the composed value to the table-facing lane
			g.api.AssertIsEqual(values[row], lanes.BitsVals[row])
		}
		chars[row] = g.selectTuple(q, lanes.EncodedChars[row], DummyChar)
		vals[row] = g.selectTuple(q, lanes.BitsVals[row], DummyBitsVal)
	}

	if g.table != nil {
		if err := g.table.LookupTuples(chars, vals); err != nil {
			return nil, err
		}
	}

	out := make([]frontend.Variable, 0, g.shape.EncodedByteSize)
	out = append(out, lanes.EncodedChars[:g.shape.Num6BitChunks]...)
	for range g.shape.NumEqualPaddings {
		out = append(out, PaddingChar)
	}
	return out, nil
}

// selectTuple returns q*x + (1-q)*dummy.
func (g *Gadget) selectTuple(q int, x frontend.Variable, dummy int) frontend.Variable {
	return g.api.Add(g.api.Mul(q, x), g.api.Mul(g.api.Sub(1, q), dummy))
}
