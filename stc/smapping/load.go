package smapping

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tidwall/jsonc"
)

// Dir is the mapping directory of one client-version bucket.
func Dir(root string, minVersion int) string {
	return filepath.Join(root, strconv.Itoa(minVersion))
}

// Parse reads a schema file. Comments and trailing commas are tolerated since
// the mapping files are edited by hand.
func Parse(bs []byte) (*Schema, error) {
	schema := Schema{}
	if err := json.Unmarshal(jsonc.ToJSON(bs), &schema); err != nil {
		return nil, errors.Wrap(err, "smapping.Parse error")
	}
	if schema.Name == "" {
		return nil, errors.New("smapping.Parse error: schema has no name")
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &schema, nil
}

func (r Schema) Validate() error {
	seen := make(map[string]struct{}, len(r.Fields))
	for _, field := range r.Fields {
		if _, ok := seen[field]; ok {
			return ErrDuplicateField{Schema: r.Name, Field: field}
		}
		seen[field] = struct{}{}
	}
	return nil
}

// Load reads the schema of tableID from a version bucket directory.
func Load(dir string, tableID string) (*Schema, error) {
	path := filepath.Join(dir, tableID+".json")
	bs, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSchemaNotFound{TableID: tableID, Path: path}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "smapping.Load error reading %s", path)
	}
	schema, err := Parse(bs)
	if err != nil {
		return nil, errors.Wrapf(err, "smapping.Load error parsing %s", path)
	}
	return schema, nil
}

// TableIDs lists the table ids that have a schema in dir.
func TableIDs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "smapping.TableIDs error")
	}
	return lo.Map(
		matches,
		func(match string, _ int) string {
			base := filepath.Base(match)
			return base[:len(base)-len(filepath.Ext(base))]
		},
	), nil
}
