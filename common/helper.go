package common

import (
	"crypto/rand"

	"github.com/consensys/gnark/std/math/uints"
)

// Helper function to convert string to []uints.U8
func StringToU8Array(s string) []uints.U8 {
	return BytesToU8Array([]byte(s))
}

// Helper function to convert bytes to []uints.U8
func BytesToU8Array(s []byte) []uints.U8 {
	result := make([]uints.U8, len(s))
	for i, b := range s {
		result[i] = uints.NewU8(b)
	}
	return result
}

// EmptyU8Array returns a circuit template slice of size n
func EmptyU8Array(n int) []uints.U8 {
	return make([]uints.U8, n)
}

// GenerateRandomBytes returns cryptographically secure random bytes
func GenerateRandomBytes(size int) ([]byte, error) {
	randomBytes := make([]byte, size)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}
	return randomBytes, nil
}
