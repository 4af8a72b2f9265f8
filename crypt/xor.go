// Package crypt holds the repeating-key XOR used on lua patches and on the
// catchdata blob.
package crypt

import (
	"github.com/pkg/errors"
)

var ErrEmptyKey = errors.New("crypt: empty xor key")

// XOR combines every byte of buffer with key[i mod len(key)]. Applying it
// twice with the same key gives the input back. With an empty key the input
// is returned as a copy.
func XOR(buffer []byte, key string) []byte {
	result := make([]byte, len(buffer))
	if len(key) == 0 {
		copy(result, buffer)
		return result
	}
	for i, b := range buffer {
		result[i] = b ^ key[i%len(key)]
	}
	return result
}

func XORChecked(buffer []byte, key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return XOR(buffer, key), nil
}
