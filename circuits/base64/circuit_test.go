package cb64_test

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/consensys/gnark/test"
	cb64 "github.com/mynextid/zk-base64/circuits/base64"
	"github.com/mynextid/zk-base64/common"
)

func TestCircuitEncode(t *testing.T) {
	// == Circuit data ==
	ccsPath := "compiled/cb64-circuit-encode-v1.ccs"
	pkPath := "compiled/cb64-proving-encode-v1.key"
	vkPath := "compiled/cb64-verifying-encode-v1.key"
	// true: recompile, false: load circuit if exists
	forceCompile := true

	// == Prepare the inputs ==
	data, err := hex.DecodeString(vector32Hex)
	if err != nil {
		t.Fatal(err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	circuitTemplate := cb64.NewEncodeTemplate(len(data))

	// Create witness assignment with actual values
	assignment := &cb64.CircuitEncode{
		Bytes:    common.BytesToU8Array(data),
		BytesB64: common.StringToU8Array(encoded),
	}

	// == Init the circuit ==
	fmt.Println("\n--- Init the circuit ---")
	startCircuit := time.Now()

	ccs, pk, vk, err := common.InitCircuit(ccsPath, pkPath, vkPath, forceCompile, circuitTemplate)
	if err != nil {
		t.Fatalf("failed to initialize a circuit: %v", err)
	}

	circuitTime := time.Since(startCircuit)
	fmt.Printf("✓ Circuit created/loaded successfully! (took %v)\n", circuitTime)

	// == Run the circuit ==
	if err := common.TestCircuit(assignment, ccs, pk, vk); err != nil {
		t.Fatal(err)
	}

	// == Wrong public input ==
	assignment.BytesB64 = common.StringToU8Array("GIu+hBcWsHGJVbzDqPH7VmmZIfFz1v6pHMZxqV3dR0h=")
	if err := common.TestCircuit(assignment, ccs, pk, vk); err == nil {
		t.Fatal("proof with a wrong encoding must fail")
	}
}

func TestCircuitDigestB64(t *testing.T) {
	assert := test.NewAssert(t)

	preimage := []byte("Hi there,\r\nthis is the body of a signed mail.\r\n")
	digest := sha256.Sum256(preimage)
	digestB64 := base64.StdEncoding.EncodeToString(digest[:])

	circuitTemplate := cb64.NewDigestTemplate(len(preimage))
	assignment := &cb64.CircuitDigestB64{
		Preimage:  common.BytesToU8Array(preimage),
		DigestB64: common.StringToU8Array(digestB64),
	}
	assert.NoError(common.IsSolved(circuitTemplate, assignment))

	// another preimage
	assignment.Preimage = common.BytesToU8Array(append([]byte("X"), preimage[1:]...))
	assert.Error(common.IsSolved(circuitTemplate, assignment))
}

func TestEncodeInputParser(t *testing.T) {
	assert := test.NewAssert(t)

	parser := &cb64.EncodeInputParser{Size: 3}

	assignment, err := parser.Parse([]byte(`{"encoded":"TWFu"}`), []byte(`{"decoded_hex":"4d616e"}`))
	assert.NoError(err)
	assert.NoError(common.IsSolved(cb64.NewEncodeTemplate(3), assignment))

	// verification only carries the public input
	_, err = parser.Parse([]byte(`{"encoded":"TWFu"}`), []byte(`{}`))
	assert.NoError(err)

	cases := []struct {
		name           string
		public, secret string
	}{
		{"invalid json", `{`, `{}`},
		{"wrong length", `{"encoded":"TWFuTQ=="}`, `{}`},
		{"url alphabet", `{"encoded":"TW-u"}`, `{}`},
		{"wrong decoded size", `{"encoded":"TWFu"}`, `{"decoded_hex":"4d61"}`},
		{"bad hex", `{"encoded":"TWFu"}`, `{"decoded_hex":"zz616e"}`},
		{"mismatch", `{"encoded":"TWFv"}`, `{"decoded_hex":"4d616e"}`},
	}
	for _, tc := range cases {
		_, err := parser.Parse([]byte(tc.public), []byte(tc.secret))
		assert.Error(err, tc.name)
	}
}

func TestDigestInputParser(t *testing.T) {
	assert := test.NewAssert(t)

	preimage := []byte("abc")
	digest := sha256.Sum256(preimage)
	digestB64 := base64.StdEncoding.EncodeToString(digest[:])

	parser := &cb64.DigestInputParser{PreimageSize: len(preimage)}
	_, err := parser.Parse(
		[]byte(fmt.Sprintf(`{"digest_b64":%q}`, digestB64)),
		[]byte(fmt.Sprintf(`{"preimage_hex":%q}`, hex.EncodeToString(preimage))),
	)
	assert.NoError(err)

	_, err = parser.Parse([]byte(`{"digest_b64":"TWFu"}`), []byte(`{}`))
	assert.Error(err)
}
