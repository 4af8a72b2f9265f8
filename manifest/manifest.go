package manifest

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gf-data-miner/ds"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
)

// Parse reads a manifest. The asset dump it comes from is loose JSON, so
// comments and trailing commas are accepted. Numbers keep their digits.
func Parse(bs []byte) (*Manifest, error) {
	value, err := ds.DecodeOrderedJSON(jsonc.ToJSON(bs))
	if err != nil {
		return nil, errors.Wrap(err, "manifest.Parse error")
	}
	root, ok := value.(orderedmap.OrderedMap)
	if !ok {
		return nil, ErrUnexpectedShape{Path: "$", Want: "object", Got: value}
	}
	return &Manifest{root: &root}, nil
}

func (r *Manifest) Field(key string) string {
	value, _ := r.root.Get(key)
	s, _ := value.(string)
	return s
}

func (r *Manifest) DaBaoTime() string {
	return r.Field(KeyDaBaoTime)
}

func (r *Manifest) ResURL() string {
	return r.Field(KeyResURL)
}

// Normalize sorts every bundle group by bundle name and every bundle's
// resources by path key, and drops the volatile hash attributes. Missing
// groups are left missing. Normalizing twice changes nothing.
func Normalize(m *Manifest) error {
	for _, group := range Groups {
		value, ok := m.root.Get(group)
		if !ok {
			continue
		}
		entries, ok := value.([]any)
		if !ok {
			return ErrUnexpectedShape{Path: group, Want: "array", Got: value}
		}
		for i, entryAny := range entries {
			path := fmt.Sprintf("%s[%d]", group, i)
			entry, ok := toOrderedMap(entryAny)
			if !ok {
				return ErrUnexpectedShape{Path: path, Want: "object", Got: entryAny}
			}
			resources, err := normalizeResources(entry, path)
			if err != nil {
				return err
			}
			if resources != nil {
				entry.Set(KeyAssetAllRes, resources)
			}
			entries[i] = entry
		}
		sortByKey(entries, KeyAssetBundleName)
		m.root.Set(group, entries)
	}
	return nil
}

func normalizeResources(entry orderedmap.OrderedMap, path string) ([]any, error) {
	value, ok := entry.Get(KeyAssetAllRes)
	if !ok {
		return nil, nil
	}
	resources, ok := value.([]any)
	if !ok {
		return nil, ErrUnexpectedShape{Path: path + "." + KeyAssetAllRes, Want: "array", Got: value}
	}
	for j, resourceAny := range resources {
		resource, ok := toOrderedMap(resourceAny)
		if !ok {
			return nil, ErrUnexpectedShape{
				Path: fmt.Sprintf("%s.%s[%d]", path, KeyAssetAllRes, j),
				Want: "object",
				Got:  resourceAny,
			}
		}
		for _, key := range VolatileKeys {
			resource.Delete(key)
		}
		resources[j] = resource
	}
	sortByKey(resources, KeyPathKey)
	return resources, nil
}

func sortByKey(items []any, key string) {
	sort.SliceStable(
		items,
		func(i, j int) bool {
			return stringOf(items[i], key) < stringOf(items[j], key)
		},
	)
}

func stringOf(item any, key string) string {
	om, ok := toOrderedMap(item)
	if !ok {
		return ""
	}
	value, _ := om.Get(key)
	s, _ := value.(string)
	return s
}

func toOrderedMap(value any) (orderedmap.OrderedMap, bool) {
	switch om := value.(type) {
	case orderedmap.OrderedMap:
		return om, true
	case *orderedmap.OrderedMap:
		return *om, true
	}
	return orderedmap.OrderedMap{}, false
}

// Marshal serializes m as indented JSON. Key order is the order read.
func Marshal(m *Manifest) ([]byte, error) {
	buffer := bytes.Buffer{}
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m.root); err != nil {
		return nil, errors.Wrap(err, "manifest.Marshal error")
	}
	return buffer.Bytes(), nil
}

// Fingerprint normalizes m in place and hashes its serialized form.
func Fingerprint(m *Manifest) (string, error) {
	if err := Normalize(m); err != nil {
		return "", err
	}
	bs, err := Marshal(m)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(bs)
	return hex.EncodeToString(sum[:]), nil
}

// BundleURLs lists the download locations of the named base bundles.
func BundleURLs(m *Manifest, names []string) ([]BundleURL, error) {
	value, ok := m.root.Get(GroupBase)
	if !ok {
		return []BundleURL{}, nil
	}
	entries, ok := value.([]any)
	if !ok {
		return nil, ErrUnexpectedShape{Path: GroupBase, Want: "array", Got: value}
	}
	resURL := m.ResURL()
	return lo.FilterMap(
		entries,
		func(entry any, _ int) (BundleURL, bool) {
			name := stringOf(entry, KeyAssetBundleName)
			if !lo.Contains(names, name) {
				return BundleURL{}, false
			}
			return BundleURL{
				Name: name,
				URL:  resURL + stringOf(entry, KeyResName) + ".ab",
			}, true
		},
	), nil
}

// DabaoLabel turns a build time like "20240115_9_5_<32 hex>" into
// "20240115_09_05".
func DabaoLabel(daBaoTime string) (string, error) {
	const hashLength = 32
	if len(daBaoTime) < hashLength {
		return "", fmt.Errorf(`DabaoLabel error: build time "%s" is too short`, daBaoTime)
	}
	s := strings.TrimSuffix(daBaoTime[:len(daBaoTime)-hashLength], "_")
	parts := strings.Split(s, "_")
	if len(parts) != 3 {
		return "", fmt.Errorf(`DabaoLabel error: build time "%s" is not day_hour_minute`, daBaoTime)
	}
	return parts[0] + "_" + leftPad(parts[1], 2) + "_" + leftPad(parts[2], 2), nil
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
