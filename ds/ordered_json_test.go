package ds

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeNoEscape(t *testing.T, v any) string {
	buffer := bytes.Buffer{}
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	require.NoError(t, encoder.Encode(v))
	return buffer.String()
}

func TestDecodeOrderedJSON(t *testing.T) {
	text := `{"z":{"t":"<b>&","id":12345678901234567},"a":[{"n":1.50},"<i>",true,null]}`

	value, err := DecodeOrderedJSON([]byte(text))
	require.NoError(t, err)

	om, ok := value.(orderedmap.OrderedMap)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, om.Keys())

	nestedAny, _ := om.Get("z")
	nested, ok := nestedAny.(orderedmap.OrderedMap)
	require.True(t, ok)
	id, _ := nested.Get("id")
	assert.Equal(t, json.Number("12345678901234567"), id)

	assert.Equal(t, text+"\n", encodeNoEscape(t, om))
}

func TestDecodeOrderedJSON_Scalars(t *testing.T) {
	value, err := DecodeOrderedJSON([]byte(` "x" `))
	require.NoError(t, err)
	assert.Equal(t, "x", value)

	value, err = DecodeOrderedJSON([]byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, []any{}, value)
}

func TestDecodeOrderedJSON_Invalid(t *testing.T) {
	cases := []string{
		``,
		`{"a":[]`,
		`{"a":1}{"b":2}`,
		`{"a":1} x`,
		`[1,}`,
		`{1:2}`,
	}
	for _, c := range cases {
		_, err := DecodeOrderedJSON([]byte(c))
		assert.Error(t, err, c)
	}
}
