package cb64_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/gnark/test"
	cb64 "github.com/mynextid/zk-base64/circuits/base64"
)

func TestWriteLayout(t *testing.T) {
	assert := test.NewAssert(t)

	var out bytes.Buffer
	assert.NoError(cb64.WriteLayout(&out, []byte{0x4d}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(lines, 7)
	assert.Equal([]string{"row", "q", "encoded_char", "bits_val", "table_row", "output"}, strings.Fields(lines[0]))
	// TQ==
	assert.Equal([]string{"0", "1", "84", "19", "20", "T"}, strings.Fields(lines[1]))
	assert.Equal([]string{"1", "1", "81", "16", "17", "Q"}, strings.Fields(lines[2]))
	assert.Equal([]string{"2", "0", "256", "64", "0", "="}, strings.Fields(lines[3]))
	assert.Equal([]string{"3", "0", "256", "64", "0", "="}, strings.Fields(lines[4]))
	assert.Equal("", lines[5])
	assert.Contains(lines[6], "chunks=2")
}
