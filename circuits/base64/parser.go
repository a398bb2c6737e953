package cb64

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/mynextid/zk-base64/common"
)

// EncodePublicInput is the JSON public input of CircuitEncode
type EncodePublicInput struct {
	Encoded string `json:"encoded"`
}

// EncodePrivateInput is the JSON private input of CircuitEncode
type EncodePrivateInput struct {
	DecodedHex string `json:"decoded_hex"`
}

// EncodeInputParser builds CircuitEncode assignments for a fixed decoded size
type EncodeInputParser struct {
	Size int
}

func (p *EncodeInputParser) Parse(publicInput, privateInput []byte) (frontend.Circuit, error) {
	var pub EncodePublicInput
	if err := json.Unmarshal(publicInput, &pub); err != nil {
		return nil, fmt.Errorf("invalid public input: %w", err)
	}
	if err := validateEncoded(pub.Encoded, p.Size); err != nil {
		return nil, err
	}

	var priv EncodePrivateInput
	if err := json.Unmarshal(privateInput, &priv); err != nil {
		return nil, fmt.Errorf("invalid private input: %w", err)
	}

	decoded := make([]byte, p.Size)
	if priv.DecodedHex != "" {
		b, err := decodeHex(priv.DecodedHex, p.Size)
		if err != nil {
			return nil, err
		}
		if err := assertEncodes(b, pub.Encoded); err != nil {
			return nil, err
		}
		decoded = b
	}

	return &CircuitEncode{
		Bytes:    common.BytesToU8Array(decoded),
		BytesB64: common.StringToU8Array(pub.Encoded),
	}, nil
}

// DigestPublicInput is the JSON public input of CircuitDigestB64
type DigestPublicInput struct {
	DigestB64 string `json:"digest_b64"`
}

// DigestPrivateInput is the JSON private input of CircuitDigestB64
type DigestPrivateInput struct {
	PreimageHex string `json:"preimage_hex"`
}

// DigestInputParser builds CircuitDigestB64 assignments for a fixed preimage
// size
type DigestInputParser struct {
	PreimageSize int
}

func (p *DigestInputParser) Parse(publicInput, privateInput []byte) (frontend.Circuit, error) {
	var pub DigestPublicInput
	if err := json.Unmarshal(publicInput, &pub); err != nil {
		return nil, fmt.Errorf("invalid public input: %w", err)
	}
	if err := validateEncoded(pub.DigestB64, DigestSize); err != nil {
		return nil, err
	}

	var priv DigestPrivateInput
	if err := json.Unmarshal(privateInput, &priv); err != nil {
		return nil, fmt.Errorf("invalid private input: %w", err)
	}

	preimage := make([]byte, p.PreimageSize)
	if priv.PreimageHex != "" {
		b, err := decodeHex(priv.PreimageHex, p.PreimageSize)
		if err != nil {
			return nil, err
		}
		preimage = b
	}

	return &CircuitDigestB64{
		Preimage:  common.BytesToU8Array(preimage),
		DigestB64: common.StringToU8Array(pub.DigestB64),
	}, nil
}

// DigestSize is the size of a SHA-256 digest in bytes
const DigestSize = 32

// NewEncodeTemplate returns a CircuitEncode template for size decoded bytes
func NewEncodeTemplate(size int) *CircuitEncode {
	return &CircuitEncode{
		Bytes:    common.EmptyU8Array(size),
		BytesB64: common.EmptyU8Array(EncodedLen(size)),
	}
}

// NewDigestTemplate returns a CircuitDigestB64 template for a preimage of
// preimageSize bytes
func NewDigestTemplate(preimageSize int) *CircuitDigestB64 {
	return &CircuitDigestB64{
		Preimage:  common.EmptyU8Array(preimageSize),
		DigestB64: common.EmptyU8Array(EncodedLen(DigestSize)),
	}
}

// validateEncoded rejects malformed base64 before any constraint is built
func validateEncoded(encoded string, size int) error {
	if len(encoded) != EncodedLen(size) {
		return fmt.Errorf("%w: got %d characters, want %d", ErrInputSize, len(encoded), EncodedLen(size))
	}
	if _, err := DecodeNative(encoded); err != nil {
		return err
	}
	return nil
}

func decodeHex(s string, size int) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	if len(b) != size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInputSize, len(b), size)
	}
	return b, nil
}

func assertEncodes(decoded []byte, encoded string) error {
	expected, err := EncodeNative(decoded)
	if err != nil {
		return err
	}
	if expected != encoded {
		return fmt.Errorf("private input does not encode to %q", encoded)
	}
	return nil
}
