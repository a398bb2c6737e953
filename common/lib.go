package common

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
)

// CompareChars asserts that the character witnesses produced by a gadget
// match the expected bytes, position by position.
func CompareChars(api frontend.API, chars []frontend.Variable, expected []uints.U8) error {
	if len(chars) != len(expected) {
		return fmt.Errorf("length mismatch: %d characters, %d expected", len(chars), len(expected))
	}

	for i := range chars {
		api.AssertIsEqual(chars[i], expected[i].Val)
	}
	return nil
}
