package cb64

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
)

func init() {
	solver.RegisterHint(GetHints()...)
}

// GetHints returns all hints used in the package.
func GetHints() []solver.Hint {
	return []solver.Hint{assignRowHint, tableRowHint}
}

// assignRowHint computes the lane cells of a gated row from its composed
// 6-bit value: outputs[0] is the bits value, outputs[1] its character.
func assignRowHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(inputs) != 1 || len(outputs) != 2 {
		return fmt.Errorf("assignRowHint: expected 1 input and 2 outputs, got %d and %d", len(inputs), len(outputs))
	}
	if !inputs[0].IsUint64() || inputs[0].Uint64() > 63 {
		return fmt.Errorf("assignRowHint: %w: %s", ErrInvalidValue, inputs[0])
	}
	v := uint8(inputs[0].Uint64())
	c, err := CharOf(v)
	if err != nil {
		return err
	}
	outputs[0].SetUint64(uint64(v))
	outputs[1].SetUint64(uint64(c))
	return nil
}

// tableRowHint returns the table row of the (character, bits value) tuple.
func tableRowHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(inputs) != 2 || len(outputs) != 1 {
		return fmt.Errorf("tableRowHint: expected 2 inputs and 1 output, got %d and %d", len(inputs), len(outputs))
	}
	var char, bits uint64 = DummyChar + 1, DummyBitsVal + 1
	if inputs[0].IsUint64() {
		char = inputs[0].Uint64()
	}
	if inputs[1].IsUint64() {
		bits = inputs[1].Uint64()
	}
	outputs[0].SetInt64(int64(tableRow(char, bits)))
	return nil
}
