package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"gf-data-miner/manifest"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type Report struct {
	Label       string     `json:"label"`
	Fingerprint string     `json:"fingerprint"`
	UpToDate    bool       `json:"up_to_date"`
	Tables      int        `json:"tables"`
	Failed      []string   `json:"failed"`
	Catchdata   int        `json:"catchdata"`
	Assets      AssetStats `json:"assets"`
	Published   bool       `json:"published"`
}

// Run mines layout.Raw into layout.Out. Unless force is set, a build that
// matches the recorded version.json is left alone. Tables that fail to
// decode are listed in the report; everything else is fatal.
func (r *Miner) Run(ctx context.Context, layout Layout, force bool) (*Report, error) {
	report := &Report{Failed: []string{}}

	m, err := r.loadManifest(filepath.Join(layout.Raw, RawManifestFile))
	if err != nil {
		return nil, err
	}
	report.Label, err = VersionLabel(r.Version, m.DaBaoTime())
	if err != nil {
		return nil, err
	}
	report.Fingerprint, err = manifest.Fingerprint(m)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("mining", "label", report.Label, "fingerprint", report.Fingerprint)

	local, err := ReadVersion(filepath.Join(layout.Out, OutVersionFile))
	if err != nil {
		return nil, err
	}
	if !force && !UpdateAvailable(local, NewVersionInfo(r.Version, m.DaBaoTime())) {
		r.Logger.Info("already up to date", "label", report.Label)
		report.UpToDate = true
		return report, nil
	}

	if err := ClearOutput(layout.Out); err != nil {
		return nil, err
	}

	tables, failures, err := r.DecodeTables(ctx, filepath.Join(layout.Raw, RawTableDir))
	if err != nil {
		return nil, err
	}
	if err := WriteTables(tables, layout.Out); err != nil {
		return nil, err
	}
	report.Tables = len(tables)
	report.Failed = lo.Map(failures, func(failure TableFailure, _ int) string {
		return failure.TableID
	})

	catchdataPath := filepath.Join(layout.Raw, RawCatchdataFile)
	if _, err := os.Stat(catchdataPath); err == nil {
		catchdataTables, err := r.ProcessCatchdata(catchdataPath, layout.Out)
		if err != nil {
			return nil, err
		}
		report.Catchdata = catchdataTables.Len()
	} else {
		r.Logger.Warn("no catchdata", "path", catchdataPath)
	}

	report.Assets, err = r.ExportAssets(layout.Raw, layout.Out)
	if err != nil {
		return nil, err
	}
	if err := r.WriteVersion(layout.Out, m); err != nil {
		return nil, err
	}

	report.Published, err = r.publish(ctx, report.Label)
	if err != nil {
		return nil, err
	}
	r.Logger.Info(
		"mined",
		"label", report.Label,
		"tables", report.Tables,
		"failed", len(report.Failed),
		"catchdata", report.Catchdata,
	)
	return report, nil
}

func (r *Miner) loadManifest(path string) (*manifest.Manifest, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline.loadManifest error reading %s", path)
	}
	m, err := manifest.Parse(bs)
	if err != nil {
		return nil, err
	}
	if err := manifest.Normalize(m); err != nil {
		return nil, errors.Wrapf(err, "pipeline.loadManifest error normalizing %s", path)
	}
	return m, nil
}

func (r *Miner) publish(ctx context.Context, label string) (bool, error) {
	if r.Publisher == nil {
		return false, nil
	}
	published, err := r.Publisher.Publish(ctx, label)
	if err != nil {
		return false, errors.Wrap(err, "pipeline.publish error")
	}
	if !published || r.Notifier == nil {
		return published, nil
	}
	if err := r.Notifier.Notify(ctx, label); err != nil {
		r.Logger.Warn("failed to notify", "label", label, "error", err)
	}
	return published, nil
}

// ClearOutput removes the directories a previous run wrote into dir. Files
// and the .git directory are kept.
func ClearOutput(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "pipeline.ClearOutput error reading %s", dir)
	}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == ".git" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return errors.Wrapf(err, "pipeline.ClearOutput error removing %s", entry.Name())
		}
	}
	return nil
}
