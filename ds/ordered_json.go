package ds

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

// DecodeOrderedJSON decodes a single JSON value. Objects at every depth come
// back as orderedmap.OrderedMap in document order with HTML escaping turned
// off, arrays as []any and numbers as json.Number, so that re-encoding keeps
// both key order and every digit.
func DecodeOrderedJSON(bs []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(bs))
	decoder.UseNumber()
	value, err := decodeOrderedValue(decoder)
	if err != nil {
		return nil, errors.Wrap(err, "ds.DecodeOrderedJSON error")
	}
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			return nil, errors.New("ds.DecodeOrderedJSON error: data after the first value")
		}
		return nil, errors.Wrap(err, "ds.DecodeOrderedJSON error")
	}
	return value, nil
}

func decodeOrderedValue(decoder *json.Decoder) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := token.(json.Delim)
	if !ok {
		return token, nil
	}

	switch delim {
	case '{':
		om := orderedmap.New()
		om.SetEscapeHTML(false)
		for decoder.More() {
			keyToken, err := decoder.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyToken.(string)
			if !ok {
				return nil, errors.Errorf("object key is a %T", keyToken)
			}
			value, err := decodeOrderedValue(decoder)
			if err != nil {
				return nil, err
			}
			om.Set(key, value)
		}
		if err := expectDelim(decoder, '}'); err != nil {
			return nil, err
		}
		return *om, nil
	case '[':
		items := make([]any, 0)
		for decoder.More() {
			item, err := decodeOrderedValue(decoder)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if err := expectDelim(decoder, ']'); err != nil {
			return nil, err
		}
		return items, nil
	}
	return nil, errors.Errorf("unexpected %s", delim)
}

func expectDelim(decoder *json.Decoder, want json.Delim) error {
	token, err := decoder.Token()
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	if err != nil {
		return err
	}
	if token != want {
		return errors.Errorf("want %s, got %v", want, token)
	}
	return nil
}
