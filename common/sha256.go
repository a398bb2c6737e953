package common

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/sha2"
	"github.com/consensys/gnark/std/math/uints"
)

// SHA256 returns the 32-byte digest of payload
func SHA256(api frontend.API, payload []uints.U8) ([]uints.U8, error) {
	h, err := sha2.New(api)
	if err != nil {
		return nil, err
	}

	h.Write(payload)
	return h.Sum(), nil
}
