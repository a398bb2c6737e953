package api

import (
	cb64 "github.com/mynextid/zk-base64/circuits/base64"
)

const (
	BYTE_SIZE32 = 32
	BYTE_SIZE64 = 64
)

var CircuitList = map[string]CircuitInfo{
	"base64-encode-32": {
		Circuit:     cb64.NewEncodeTemplate(BYTE_SIZE32),
		Name:        "base64-encode-32",
		Version:     1,
		Description: "Proves that the public base64 string encodes 32 secret bytes",
		GadgetSize:  BYTE_SIZE32,
		InputParser: &cb64.EncodeInputParser{Size: BYTE_SIZE32},
	},
	"base64-encode-64": {
		Circuit:     cb64.NewEncodeTemplate(BYTE_SIZE64),
		Name:        "base64-encode-64",
		Version:     1,
		Description: "Proves that the public base64 string encodes 64 secret bytes",
		GadgetSize:  BYTE_SIZE64,
		InputParser: &cb64.EncodeInputParser{Size: BYTE_SIZE64},
	},
	"base64-digest-sha256": {
		Circuit:     cb64.NewDigestTemplate(BYTE_SIZE64),
		Name:        "base64-digest-sha256",
		Version:     1,
		Description: "Proves that the public base64 string is the SHA-256 digest of a secret 64 byte preimage",
		GadgetSize:  cb64.DigestSize,
		InputParser: &cb64.DigestInputParser{PreimageSize: BYTE_SIZE64},
	},
}
