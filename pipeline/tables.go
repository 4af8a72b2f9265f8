package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gf-data-miner/output"
	"gf-data-miner/stc"
	"gf-data-miner/stc/smapping"
	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
)

// TableIDs lists the ids of the table files in dir, sorted.
func TableIDs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+TableExtension))
	if err != nil {
		return nil, errors.Wrap(err, "pipeline.TableIDs error")
	}
	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, strings.TrimSuffix(filepath.Base(match), TableExtension))
	}
	sort.Strings(ids)
	return ids, nil
}

// DecodeTables decodes every table file in dir with the configured number of
// workers. A table that fails is reported and does not stop the others.
// Tables come back ordered by id.
func (r *Miner) DecodeTables(ctx context.Context, dir string) ([]*stc.Table, []TableFailure, error) {
	ids, err := TableIDs(dir)
	if err != nil {
		return nil, nil, err
	}
	mappingDir := smapping.Dir(r.Config.MappingDir, r.Version.MinVersion)
	r.Logger.Info("decoding tables", "count", len(ids), "mapping_dir", mappingDir)
	if err := r.warnUnusedSchemas(mappingDir, ids); err != nil {
		return nil, nil, err
	}

	decoded := xsync.NewMapOf[string, *stc.Table]()
	failed := xsync.NewMapOf[string, error]()

	jobs := make(chan string)
	wg := sync.WaitGroup{}
	workers := r.Config.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				table, err := r.decodeTable(dir, mappingDir, id)
				if err != nil {
					r.Logger.Warn("failed to decode table", "table", id, "error", err)
					failed.Store(id, err)
					continue
				}
				decoded.Store(id, table)
			}
		}()
	}

dispatch:
	for _, id := range ids {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- id:
		}
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "pipeline.DecodeTables error")
	}

	tables := make([]*stc.Table, 0, decoded.Size())
	failures := make([]TableFailure, 0, failed.Size())
	for _, id := range ids {
		if table, ok := decoded.Load(id); ok {
			tables = append(tables, table)
		}
		if err, ok := failed.Load(id); ok {
			failures = append(failures, TableFailure{TableID: id, Err: err})
		}
	}
	return tables, failures, nil
}

// warnUnusedSchemas logs the schemas that have no table file, which usually
// means the game dropped or renumbered a table.
func (r *Miner) warnUnusedSchemas(mappingDir string, tableIDs []string) error {
	schemaIDs, err := smapping.TableIDs(mappingDir)
	if err != nil {
		return err
	}
	unused := lo.Filter(schemaIDs, func(id string, _ int) bool {
		return !lo.Contains(tableIDs, id)
	})
	if len(unused) > 0 {
		sort.Strings(unused)
		r.Logger.Warn("schemas without table", "count", len(unused), "tables", unused)
	}
	return nil
}

func (r *Miner) decodeTable(dir string, mappingDir string, id string) (*stc.Table, error) {
	schema, err := smapping.Load(mappingDir, id)
	if err != nil {
		return nil, err
	}
	bs, err := os.ReadFile(filepath.Join(dir, id+TableExtension))
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline.decodeTable error reading %s", id)
	}
	table, err := stc.DecodeTable(bs, *schema, r.Version.LongRowFormat)
	if err != nil {
		return nil, err
	}
	if table.Drift != nil {
		r.Logger.Warn(
			"schema drift",
			"table", id,
			"name", table.Name,
			"kind", string(table.Drift.Kind),
			"declared", table.Drift.Declared,
			"physical", table.Drift.Physical,
		)
	}
	r.Logger.Debug("decoded table", "table", id, "name", table.Name, "rows", len(table.Records))
	return table, nil
}

// WriteTables writes each table's records as JSON under outDir/stc and as
// YAML under outDir/formatted.
func WriteTables(tables []*stc.Table, outDir string) error {
	for _, table := range tables {
		path := filepath.Join(outDir, OutTableDir, table.Name+RecordsExtension)
		if err := output.WriteJSON(path, table.Records, output.TableIndent); err != nil {
			return err
		}
		path = filepath.Join(outDir, OutFormattedDir, table.Name+FormattedSuffix)
		if err := output.WriteFormatted(path, table.Records); err != nil {
			return err
		}
	}
	return nil
}
