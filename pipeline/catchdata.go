package pipeline

import (
	"os"
	"path/filepath"

	"gf-data-miner/catchdata"
	"gf-data-miner/output"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

// ProcessCatchdata decodes the catchdata blob at path and writes one JSON
// and one YAML file per table it holds.
func (r *Miner) ProcessCatchdata(path string, outDir string) (*catchdata.Tables, error) {
	cipher, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline.ProcessCatchdata error reading %s", path)
	}
	r.Logger.Info("decoding catchdata", "path", path, "size", len(cipher))
	tables, err := catchdata.Decode(cipher, r.Config.Keys.DatKey)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline.ProcessCatchdata error")
	}

	err = tables.Range(func(name string, records []orderedmap.OrderedMap) error {
		r.Logger.Debug("writing catchdata table", "name", name, "rows", len(records))
		path := filepath.Join(outDir, OutCatchdataDir, name+RecordsExtension)
		if err := output.WriteJSON(path, records, output.TableIndent); err != nil {
			return err
		}
		path = filepath.Join(outDir, OutFormattedDir, name+FormattedSuffix)
		return output.WriteFormatted(path, records)
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}
