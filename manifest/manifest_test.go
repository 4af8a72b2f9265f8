package manifest

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestA = `{
  "daBaoTime": "20240115_9_5_0123456789abcdef0123456789abcdef",
  "resUrl": "https://cdn.example/res/",
  "passivityAssetBundles": [],
  "BaseAssetBundles": [
    {
      "assetBundleName": "asset_texttable",
      "resname": "r2",
      "assetAllRes": [
        {"pathKey": "b/gun.txt", "size": 10, "hashCode": "ffff"},
        {"pathKey": "a/item.txt", "size": 3, "hasCodes": [1, 2]}
      ]
    },
    {
      "assetBundleName": "asset_csv",
      "resname": "r1",
      "assetAllRes": [{"pathKey": "c.csv", "size": 1}]
    },
  ],
  "AddAssetBundles": [
    {"assetBundleName": "z", "resname": "rz", "assetAllRes": []},
    {"assetBundleName": "m", "resname": "rm", "assetAllRes": []}
  ]
}`

// manifestB has the same content as manifestA in another order and with
// other build hashes.
const manifestB = `{
  "daBaoTime": "20240115_9_5_0123456789abcdef0123456789abcdef",
  "resUrl": "https://cdn.example/res/",
  "passivityAssetBundles": [],
  "BaseAssetBundles": [
    {
      "assetBundleName": "asset_csv",
      "resname": "r1",
      "assetAllRes": [{"pathKey": "c.csv", "size": 1, "hashCode": "0000"}]
    },
    {
      "assetBundleName": "asset_texttable",
      "resname": "r2",
      "assetAllRes": [
        {"pathKey": "a/item.txt", "size": 3},
        {"pathKey": "b/gun.txt", "size": 10, "hashCode": "eeee"}
      ]
    }
  ],
  "AddAssetBundles": [
    {"assetBundleName": "m", "resname": "rm", "assetAllRes": []},
    {"assetBundleName": "z", "resname": "rz", "assetAllRes": []}
  ]
}`

func parseNormalized(t *testing.T, s string) (*Manifest, []byte) {
	m, err := Parse([]byte(s))
	require.NoError(t, err)
	require.NoError(t, Normalize(m))
	bs, err := Marshal(m)
	require.NoError(t, err)
	return m, bs
}

func TestNormalize_OrderAndHashesDoNotMatter(t *testing.T) {
	_, bsA := parseNormalized(t, manifestA)
	_, bsB := parseNormalized(t, manifestB)

	assert.Equal(t, string(bsA), string(bsB))
	assert.NotContains(t, string(bsA), "hashCode")
	assert.NotContains(t, string(bsA), "hasCodes")
}

func TestNormalize_Sorts(t *testing.T) {
	m, _ := parseNormalized(t, manifestA)

	value, ok := m.root.Get(GroupBase)
	require.True(t, ok)
	entries := value.([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "asset_csv", stringOf(entries[0], KeyAssetBundleName))
	assert.Equal(t, "asset_texttable", stringOf(entries[1], KeyAssetBundleName))

	entry, ok := toOrderedMap(entries[1])
	require.True(t, ok)
	resourcesAny, ok := entry.Get(KeyAssetAllRes)
	require.True(t, ok)
	resources := resourcesAny.([]any)
	assert.Equal(t, "a/item.txt", stringOf(resources[0], KeyPathKey))
	assert.Equal(t, "b/gun.txt", stringOf(resources[1], KeyPathKey))
	resource, ok := toOrderedMap(resources[1])
	require.True(t, ok)
	assert.Equal(t, []string{"pathKey", "size"}, resource.Keys())
}

func TestNormalize_Idempotent(t *testing.T) {
	m, first := parseNormalized(t, manifestA)
	require.NoError(t, Normalize(m))
	second, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestNormalize_MissingGroups(t *testing.T) {
	_, bs := parseNormalized(t, `{"daBaoTime": "x", "BaseAssetBundles": [{"assetBundleName": "a"}]}`)
	assert.NotContains(t, string(bs), GroupAdd)
}

func TestNormalize_UnexpectedShape(t *testing.T) {
	cases := []string{
		`{"BaseAssetBundles": {}}`,
		`{"BaseAssetBundles": [1]}`,
		`{"BaseAssetBundles": [{"assetAllRes": "none"}]}`,
		`{"BaseAssetBundles": [{"assetAllRes": [true]}]}`,
	}
	for _, c := range cases {
		m, err := Parse([]byte(c))
		require.NoError(t, err)
		var unexpectedShape ErrUnexpectedShape
		assert.True(t, errors.As(Normalize(m), &unexpectedShape), c)
	}
}

func TestParse_KeepsNumbersAndMarkup(t *testing.T) {
	m, err := Parse([]byte(`{"BaseAssetBundles": [{"assetBundleName": "a", "assetAllRes": [
		{"pathKey": "<b>&", "size": 12345678901234567, "meta": {"tag": "<color=red>"}}
	]}]}`))
	require.NoError(t, err)
	require.NoError(t, Normalize(m))
	bs, err := Marshal(m)
	require.NoError(t, err)

	text := string(bs)
	assert.Contains(t, text, `"size": 12345678901234567`)
	assert.Contains(t, text, `"pathKey": "<b>&"`)
	assert.Contains(t, text, `"tag": "<color=red>"`)
	assert.NotContains(t, text, `\u003c`)

	_, err = Parse([]byte(`[1]`))
	var unexpectedShape ErrUnexpectedShape
	assert.True(t, errors.As(err, &unexpectedShape))
}

func TestFingerprint(t *testing.T) {
	a, err := Parse([]byte(manifestA))
	require.NoError(t, err)
	b, err := Parse([]byte(manifestB))
	require.NoError(t, err)

	fingerprintA, err := Fingerprint(a)
	require.NoError(t, err)
	fingerprintB, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fingerprintA, fingerprintB)
	assert.Len(t, fingerprintA, 64)

	c, err := Parse([]byte(`{"daBaoTime": "other"}`))
	require.NoError(t, err)
	fingerprintC, err := Fingerprint(c)
	require.NoError(t, err)
	assert.NotEqual(t, fingerprintA, fingerprintC)
}

func TestBundleURLs(t *testing.T) {
	m, _ := parseNormalized(t, manifestA)

	urls, err := BundleURLs(m, []string{"asset_texttable", "asset_textavg"})
	require.NoError(t, err)
	assert.Equal(t, []BundleURL{
		{Name: "asset_texttable", URL: "https://cdn.example/res/r2.ab"},
	}, urls)
}

func TestAccessors(t *testing.T) {
	m, _ := parseNormalized(t, manifestA)
	assert.Equal(t, "https://cdn.example/res/", m.ResURL())
	assert.Equal(t, "20240115_9_5_0123456789abcdef0123456789abcdef", m.DaBaoTime())
}

func TestDabaoLabel(t *testing.T) {
	expectedValues := map[string]string{
		"20240115_9_5_0123456789abcdef0123456789abcdef":  "20240115_09_05",
		"20240115_19_45_0123456789abcdef0123456789abcdef": "20240115_19_45",
		"20240115_1_30123456789abcdef0123456789abcdef":   "20240115_01_03",
	}
	for in, out := range expectedValues {
		label, err := DabaoLabel(in)
		require.NoError(t, err)
		assert.Equal(t, out, label)
	}

	_, err := DabaoLabel("short")
	assert.Error(t, err)
	_, err = DabaoLabel("2024_0123456789abcdef0123456789abcdef")
	assert.Error(t, err)
}
