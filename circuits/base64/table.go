package cb64

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/lookup/logderivlookup"
)

const (
	// DummyBitsVal and DummyChar form the sentinel tuple stored at row 0 of
	// the table. Both are outside their valid ranges (0..63 and 0..255).
	DummyBitsVal = 64
	DummyChar    = 256

	// TableSize is the number of rows: 64 alphabet rows plus the sentinel.
	TableSize = 65

	// number of sentinel rows at the top of the table
	tableOffset = 1

	PaddingChar = '='
)

// Table is the static lookup relation between 6-bit values and the base64
// characters they encode. It is made of two lookup lanes sharing the row
// index: character[row] and bitsValue[row].
//
//	row 0      (DummyChar, DummyBitsVal)
//	row 1+v    (CharOf(v), v)   for v in 0..63
//
// The lanes are committed to the constraint system on the first lookup, a
// table nobody queries adds no constraint.
type Table struct {
	api frontend.API

	characters []frontend.Variable
	bitsValues []frontend.Variable
	loaded     bool

	character logderivlookup.Table
	bitsValue logderivlookup.Table
}

// NewTable configures the two lookup lanes of the table.
func NewTable(api frontend.API) *Table {
	return &Table{
		api:        api,
		characters: make([]frontend.Variable, 0, TableSize),
		bitsValues: make([]frontend.Variable, 0, TableSize),
	}
}

// Load populates the table: the sentinel tuple first, then the 64 alphabet
// rows. It must be called once, before any lookup.
func (t *Table) Load() error {
	if t.loaded {
		return ErrTableLoaded
	}

	t.characters = append(t.characters, DummyChar)
	t.bitsValues = append(t.bitsValues, DummyBitsVal)

	for v := range 64 {
		c, err := CharOf(uint8(v))
		if err != nil {
			return fmt.Errorf("failed to load row %d: %w", v+tableOffset, err)
		}
		t.characters = append(t.characters, int(c))
		t.bitsValues = append(t.bitsValues, v)
	}

	t.loaded = true
	return nil
}

// Loaded reports whether Load has been called.
func (t *Table) Loaded() bool {
	return t.loaded
}

// Len returns the number of loaded rows.
func (t *Table) Len() int {
	return len(t.characters)
}

func (t *Table) commit() {
	if t.character != nil {
		return
	}
	t.character = logderivlookup.New(t.api)
	t.bitsValue = logderivlookup.New(t.api)
	for row := range t.characters {
		t.character.Insert(t.characters[row])
		t.bitsValue.Insert(t.bitsValues[row])
	}
}

// LookupTuples asserts that every (chars[i], bits[i]) tuple is a row of the
// table. The row index of each tuple is witnessed by the prover and both
// lanes are read at that same row.
func (t *Table) LookupTuples(chars, bits []frontend.Variable) error {
	if !t.loaded {
		return ErrTableNotLoaded
	}
	if len(chars) != len(bits) {
		return fmt.Errorf("%w: %d characters for %d values", ErrLaneSize, len(chars), len(bits))
	}
	if len(chars) == 0 {
		return nil
	}

	rows := make([]frontend.Variable, len(chars))
	for i := range chars {
		res, err := t.api.Compiler().NewHint(tableRowHint, 1, chars[i], bits[i])
		if err != nil {
			return fmt.Errorf("failed to witness table row %d: %w", i, err)
		}
		rows[i] = res[0]
	}

	t.commit()
	gotChars := t.character.Lookup(rows...)
	gotBits := t.bitsValue.Lookup(rows...)
	for i := range rows {
		t.api.AssertIsEqual(gotChars[i], chars[i])
		t.api.AssertIsEqual(gotBits[i], bits[i])
	}
	return nil
}

// CharOf maps a 6-bit value to its character in the RFC 4648 standard
// alphabet.
func CharOf(v uint8) (byte, error) {
	switch {
	case v <= 25:
		return 'A' + v, nil
	case v <= 51:
		return 'a' + (v - 26), nil
	case v <= 61:
		return '0' + (v - 52), nil
	case v == 62:
		return '+', nil
	case v == 63:
		return '/', nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidValue, v)
}

// ValueOf is the inverse of CharOf.
func ValueOf(c byte) (uint8, error) {
	switch {
	case c >= 'A' && c <= 'Z':
		return c - 'A', nil
	case c >= 'a' && c <= 'z':
		return c - 'a' + 26, nil
	case c >= '0' && c <= '9':
		return c - '0' + 52, nil
	case c == '+':
		return 62, nil
	case c == '/':
		return 63, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCharacter, c)
}

// tableRow returns the row holding (char, bits). When no row matches it
// falls back to the row of the 6-bit value (or the sentinel) so that the
// mismatch is caught by the lookup constraint.
func tableRow(char, bits uint64) int {
	if char == DummyChar && bits == DummyBitsVal {
		return 0
	}
	if bits < 64 {
		return int(bits) + tableOffset
	}
	return 0
}
