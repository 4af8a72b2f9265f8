// Package output writes mined data to disk: indented JSON for the raw
// records and a compact YAML rendition for reading.
package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	TableIndent    = "    "
	MetadataIndent = "  "
	fileMode       = 0o664
	dirMode        = 0o775
)

// MarshalJSON encodes v without escaping HTML characters, so text fields keep
// their "<", ">" and "&" as written by the game.
func MarshalJSON(v any, indent string) ([]byte, error) {
	buffer := bytes.Buffer{}
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(v); err != nil {
		return nil, errors.Wrap(err, "output.MarshalJSON error")
	}
	return buffer.Bytes(), nil
}

func WriteJSON(path string, v any, indent string) error {
	bs, err := MarshalJSON(v, indent)
	if err != nil {
		return errors.Wrapf(err, "output.WriteJSON error writing %s", path)
	}
	return WriteFile(path, bs)
}

// WriteFile creates the parent directories of path as needed.
func WriteFile(path string, bs []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return errors.Wrapf(err, "output.WriteFile error creating directory of %s", path)
	}
	if err := os.WriteFile(path, bs, fileMode); err != nil {
		return errors.Wrapf(err, "output.WriteFile error writing %s", path)
	}
	return nil
}
