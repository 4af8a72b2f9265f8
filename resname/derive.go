// Package resname derives the obfuscated file names the asset host serves.
package resname

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"gf-data-miner/config"
	"github.com/pkg/errors"
)

const NameSuffix = ".txt"

// Derive encrypts plainName with DES-CBC, base64 encodes the result and
// keeps only its ASCII letters and digits.
func Derive(plainName string, key []byte, iv []byte) (string, error) {
	block, err := des.NewCipher(key)
	if err != nil {
		return "", errors.Wrap(err, "resname.Derive error")
	}
	if len(iv) != block.BlockSize() {
		return "", fmt.Errorf("resname.Derive error: iv has %d bytes, want %d", len(iv), block.BlockSize())
	}

	padded := pad([]byte(plainName), block.BlockSize())
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(encrypted, padded)
	encoded := base64.StdEncoding.EncodeToString(encrypted)

	return keepAlphanumeric(encoded) + NameSuffix, nil
}

// ManifestName is the name of the resource manifest for vc.
func ManifestName(vc config.VersionContext, cfg config.Config) (string, error) {
	plainName, err := PlainName(vc)
	if err != nil {
		return "", err
	}
	key, err := cfg.ResKeyBytes()
	if err != nil {
		return "", errors.Wrap(err, "resname.ManifestName error")
	}
	iv, err := cfg.ResIVBytes()
	if err != nil {
		return "", errors.Wrap(err, "resname.ManifestName error")
	}
	return Derive(plainName, key, iv)
}

// ArchiveName is the name of the zip holding the table assets of a data
// version.
func ArchiveName(dataVersion string) string {
	sum := md5.Sum([]byte(dataVersion))
	return "stc_" + dataVersion + hex.EncodeToString(sum[:]) + ".zip"
}

func pad(bs []byte, blockSize int) []byte {
	n := blockSize - len(bs)%blockSize
	return append(bytes.Clone(bs), bytes.Repeat([]byte{byte(n)}, n)...)
}

func keepAlphanumeric(s string) string {
	return strings.Map(
		func(r rune) rune {
			if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
				return r
			}
			return -1
		},
		s,
	)
}
