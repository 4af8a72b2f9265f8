package catchdata

import (
	"bytes"
	"encoding/json"
	"testing"

	"gf-data-miner/crypt"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, tables *Tables) string {
	bs, err := json.Marshal(tables)
	require.NoError(t, err)
	return string(bs)
}

func TestSplit(t *testing.T) {
	tables, err := Split([]byte("{\"a\":[{\"x\":1}]}\n{\"b\":[{\"y\":2}]}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tables.Keys())
	assert.Equal(t, `{"a":[{"x":1}],"b":[{"y":2}]}`, marshal(t, tables))
}

func TestSplit_RepeatedTableAppends(t *testing.T) {
	text := "{\"a\":[{\"x\":1}]}\n{\"b\":[]}\n{\"a\":[{\"x\":2},{\"x\":3}]}\n"

	tables, err := Split([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, `{"a":[{"x":1},{"x":2},{"x":3}],"b":[]}`, marshal(t, tables))
}

func TestSplit_IgnoresTextAfterLastNewline(t *testing.T) {
	tables, err := Split([]byte("{\"a\":[{\"x\":1}]}\n{\"b\":"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tables.Keys())

	tables, err = Split([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, tables.Keys())
}

func TestSplit_KeepsFieldOrder(t *testing.T) {
	tables, err := Split([]byte("{\"gun\":[{\"zeta\":1,\"alpha\":\"<M4>\",\"mid\":[1,2]}]}\n"))
	require.NoError(t, err)
	records, ok := tables.Get("gun")
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, records[0].Keys())
}

func TestSplit_KeepsLargeIntegersAndMarkup(t *testing.T) {
	line := `{"a":[{"id":12345678901234567,"rate":0.10,"tip":{"t":"<color=#fff>&</color>"}}]}`
	tables, err := Split([]byte(line + "\n"))
	require.NoError(t, err)
	records, ok := tables.Get("a")
	require.True(t, ok)

	buffer := bytes.Buffer{}
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	require.NoError(t, encoder.Encode(records))
	assert.Equal(t, `[{"id":12345678901234567,"rate":0.10,"tip":{"t":"<color=#fff>&</color>"}}]`+"\n", buffer.String())
}

func TestSplit_Malformed(t *testing.T) {
	cases := []struct {
		text string
		line int
	}{
		{"{\"a\":[{\"x\":1}]}\n{\"b\":[],\"c\":[]}\n", 2},
		{"{}\n", 1},
		{"\n", 1},
		{"[1,2]\n", 1},
		{"{\"a\":{\"x\":1}}\n", 1},
		{"{\"a\":[{\"x\":1}, 3]}\n", 1},
		{"{\"a\":[]}\n{\"a\":[]\n", 2},
		{"{\"a\":[]} {\"b\":[]}\n", 1},
		{"\"a\"\n", 1},
	}
	for _, c := range cases {
		tables, err := Split([]byte(c.text))
		assert.Nil(t, tables, c.text)
		var malformed ErrMalformedLine
		require.True(t, errors.As(err, &malformed), c.text)
		assert.Equal(t, c.line, malformed.Line, c.text)
	}
}

func TestSplit_MultiKeyReportsKeys(t *testing.T) {
	_, err := Split([]byte("{\"b\":[],\"c\":[]}\n"))
	var malformed ErrMalformedLine
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, []string{"b", "c"}, malformed.Keys)
}

func TestDecode(t *testing.T) {
	key := "c88d016d261eb80ce4d6e41a510d4048"
	plain := "{\"a\":[{\"x\":1}]}\n{\"b\":[{\"y\":2}]}\n"
	buffer := bytes.Buffer{}
	writer := gzip.NewWriter(&buffer)
	_, err := writer.Write([]byte(plain))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	cipher := crypt.XOR(buffer.Bytes(), key)

	unwrapped, err := Unwrap(cipher, key)
	require.NoError(t, err)
	assert.Equal(t, plain, string(unwrapped))

	tables, err := Decode(cipher, key)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[{"x":1}],"b":[{"y":2}]}`, marshal(t, tables))

	_, err = Decode(cipher, "wrong key")
	assert.Error(t, err)

	_, err = Decode(cipher, "")
	assert.ErrorIs(t, err, crypt.ErrEmptyKey)
}
