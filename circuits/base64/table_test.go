package cb64_test

import (
	"errors"
	"testing"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	cb64 "github.com/mynextid/zk-base64/circuits/base64"
	"github.com/mynextid/zk-base64/common"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func TestCharOf(t *testing.T) {
	assert := test.NewAssert(t)

	for v := range 64 {
		c, err := cb64.CharOf(uint8(v))
		assert.NoError(err)
		assert.Equal(alphabet[v], c)

		back, err := cb64.ValueOf(c)
		assert.NoError(err)
		assert.Equal(uint8(v), back)
	}

	for _, v := range []uint8{64, 65, 128, 255} {
		_, err := cb64.CharOf(v)
		assert.True(errors.Is(err, cb64.ErrInvalidValue))
	}

	for _, c := range []byte{'=', '-', '_', ' ', 0, 0xff} {
		_, err := cb64.ValueOf(c)
		assert.True(errors.Is(err, cb64.ErrInvalidCharacter))
	}
}

// tableCircuit looks up the given tuples in a freshly loaded table
type tableCircuit struct {
	Chars []frontend.Variable
	Bits  []frontend.Variable

	rows int
}

func (c *tableCircuit) Define(api frontend.API) error {
	table := cb64.NewTable(api)
	if err := table.LookupTuples(c.Chars, c.Bits); !errors.Is(err, cb64.ErrTableNotLoaded) {
		return errors.New("lookup before load must fail")
	}
	if err := table.Load(); err != nil {
		return err
	}
	c.rows = table.Len()
	return table.LookupTuples(c.Chars, c.Bits)
}

func TestTableRows(t *testing.T) {
	assert := test.NewAssert(t)

	chars := []frontend.Variable{cb64.DummyChar}
	bits := []frontend.Variable{cb64.DummyBitsVal}
	for v := range 64 {
		chars = append(chars, int(alphabet[v]))
		bits = append(bits, v)
	}

	circuitTemplate := &tableCircuit{
		Chars: make([]frontend.Variable, len(chars)),
		Bits:  make([]frontend.Variable, len(bits)),
	}
	assignment := &tableCircuit{Chars: chars, Bits: bits}
	assert.NoError(common.IsSolved(circuitTemplate, assignment))
	assert.Equal(cb64.TableSize, circuitTemplate.rows)
}

func TestTableRejectsTuples(t *testing.T) {
	cases := []struct {
		name string
		char int
		bits int
	}{
		{"swapped character", 'B', 0},
		{"value out of range", 'A', 64},
		{"padding character", '=', 0},
		{"sentinel character with real value", cb64.DummyChar, 0},
		{"real character with sentinel value", 'A', cb64.DummyBitsVal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert := test.NewAssert(t)

			circuitTemplate := &tableCircuit{
				Chars: make([]frontend.Variable, 1),
				Bits:  make([]frontend.Variable, 1),
			}
			assignment := &tableCircuit{
				Chars: []frontend.Variable{tc.char},
				Bits:  []frontend.Variable{tc.bits},
			}
			assert.Error(common.IsSolved(circuitTemplate, assignment))
		})
	}
}

// loadedCircuit loads a table and never queries it
type loadedCircuit struct {
	X frontend.Variable

	rows int
}

func (c *loadedCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.X, 1)

	table := cb64.NewTable(api)
	if err := table.Load(); err != nil {
		return err
	}
	c.rows = table.Len()
	if !table.Loaded() {
		return errors.New("table must report loaded")
	}
	if err := table.Load(); !errors.Is(err, cb64.ErrTableLoaded) {
		return errors.New("second load must fail")
	}
	return nil
}

func TestTableUnqueried(t *testing.T) {
	assert := test.NewAssert(t)

	circuit := &loadedCircuit{}
	assert.NoError(common.IsSolved(circuit, &loadedCircuit{X: 1}))
	assert.Equal(cb64.TableSize, circuit.rows)
}
