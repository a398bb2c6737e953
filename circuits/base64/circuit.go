package cb64

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/mynextid/zk-base64/common"
)

// CircuitEncode proves that BytesB64 is the base64 encoding of Bytes
type CircuitEncode struct {
	// Secret input
	Bytes []uints.U8 `gnark:",secret"`

	// Public input
	BytesB64 []uints.U8 `gnark:",public"`
}

func (c *CircuitEncode) Define(api frontend.API) error {
	encoded, err := Encode(api, c.Bytes)
	if err != nil {
		return err
	}
	return common.CompareChars(api, encoded, c.BytesB64)
}

// CircuitEncodeLanes proves the same relation as CircuitEncode, with the
// gadget lanes assigned by the prover as circuit inputs.
type CircuitEncodeLanes struct {
	// Secret input
	Bytes        []uints.U8          `gnark:",secret"`
	EncodedChars []frontend.Variable `gnark:",secret"`
	BitsVals     []frontend.Variable `gnark:",secret"`

	// Public input
	BytesB64 []uints.U8 `gnark:",public"`
}

func (c *CircuitEncodeLanes) Define(api frontend.API) error {
	g, err := New(api, len(c.Bytes))
	if err != nil {
		return err
	}
	if err := g.Load(); err != nil {
		return err
	}

	encoded, err := g.EncodeWith(c.Bytes, Lanes{
		EncodedChars: c.EncodedChars,
		BitsVals:     c.BitsVals,
	})
	if err != nil {
		return err
	}
	return common.CompareChars(api, encoded, c.BytesB64)
}

// CircuitDigestB64 proves that DigestB64 is the base64 encoded SHA-256
// digest of the secret Preimage (as in a DKIM body hash).
type CircuitDigestB64 struct {
	// Secret input
	Preimage []uints.U8 `gnark:",secret"`

	// Public input
	DigestB64 []uints.U8 `gnark:",public"`
}

func (c *CircuitDigestB64) Define(api frontend.API) error {
	digest, err := common.SHA256(api, c.Preimage)
	if err != nil {
		return err
	}

	encoded, err := Encode(api, digest)
	if err != nil {
		return err
	}
	return common.CompareChars(api, encoded, c.DigestB64)
}

// Encode configures a gadget for len(bytes), loads its table and encodes
// bytes.
func Encode(api frontend.API, bytes []uints.U8) ([]frontend.Variable, error) {
	g, err := New(api, len(bytes))
	if err != nil {
		return nil, err
	}
	if err := g.Load(); err != nil {
		return nil, err
	}
	return g.Encode(bytes)
}
