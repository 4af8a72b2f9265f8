package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newRecord(pairs ...any) orderedmap.OrderedMap {
	record := orderedmap.New()
	record.SetEscapeHTML(false)
	for i := 0; i < len(pairs); i += 2 {
		record.Set(pairs[i].(string), pairs[i+1])
	}
	return *record
}

func TestIsBlank(t *testing.T) {
	blanks := []any{"", "0", 0, int8(0), int32(0), int64(0), float64(0), false, json.Number("0"), json.Number("0.0")}
	for _, v := range blanks {
		assert.True(t, IsBlank(v), "%#v", v)
	}
	kept := []any{nil, "00", " ", int32(1), float64(0.5), true, []any{}, json.Number("12345678901234567")}
	for _, v := range kept {
		assert.False(t, IsBlank(v), "%#v", v)
	}
}

func TestMarshalJSON_KeepsHTML(t *testing.T) {
	bs, err := MarshalJSON(newRecord("text", "<b>&</b>", "id", int32(1)), TableIndent)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"text\": \"<b>&</b>\",\n    \"id\": 1\n}\n", string(bs))
}

func TestWriteJSON_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stc", "gun_info.json")
	require.NoError(t, WriteJSON(path, []int{1, 2}, MetadataIndent))

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2\n]\n", string(bs))
}

func TestFormatted(t *testing.T) {
	nested := orderedmap.New()
	nested.Set("z", 1)
	nested.Set("a", "")
	records := []orderedmap.OrderedMap{
		newRecord("id", int32(1), "name", "M1911", "note", "", "skin", "0", "rate", float64(0), "extra", *nested),
		newRecord("id", int32(0), "name", ""),
	}

	bs, err := Formatted(records)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(bs, &decoded))
	assert.Equal(t, []map[string]any{
		{"id": 1, "name": "M1911", "extra": map[string]any{"z": 1, "a": ""}},
		{},
	}, decoded)

	text := string(bs)
	assert.Less(t, strings.Index(text, "id:"), strings.Index(text, "name:"))
	assert.Less(t, strings.Index(text, "z:"), strings.Index(text, "a:"))
}

func TestFormatted_JSONNumbers(t *testing.T) {
	bs, err := Formatted([]orderedmap.OrderedMap{
		newRecord("id", json.Number("12345678901234567"), "rate", json.Number("0.5"), "skip", json.Number("0")),
	})
	require.NoError(t, err)
	assert.Equal(t, "- id: 12345678901234567\n  rate: 0.5\n", string(bs))
}

func TestFormatted_Empty(t *testing.T) {
	bs, err := Formatted([]orderedmap.OrderedMap{})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(bs, &decoded))
	assert.Empty(t, decoded)
}

func TestWriteFormatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatted", "gun_info.yaml")
	require.NoError(t, WriteFormatted(path, []orderedmap.OrderedMap{newRecord("id", int32(7))}))

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "- id: 7\n", string(bs))
}
