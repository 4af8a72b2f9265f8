package catchdata

import (
	"bytes"
	"io"

	"gf-data-miner/crypt"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Unwrap reverses the XOR layer and decompresses the gzip stream under it.
func Unwrap(cipher []byte, key string) ([]byte, error) {
	compressed, err := crypt.XORChecked(cipher, key)
	if err != nil {
		return nil, errors.Wrap(err, "catchdata.Unwrap error")
	}
	reader, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, errors.Wrap(err, "catchdata.Unwrap error: not a gzip stream, wrong key?")
	}
	defer reader.Close()

	plain, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "catchdata.Unwrap error: decompress")
	}
	return plain, nil
}

// Decode unwraps the blob and splits it into tables.
func Decode(cipher []byte, key string) (*Tables, error) {
	plain, err := Unwrap(cipher, key)
	if err != nil {
		return nil, err
	}
	return Split(plain)
}
