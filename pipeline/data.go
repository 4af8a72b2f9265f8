// Package pipeline drives a mining run over resources that have already been
// fetched and unpacked into a directory. Network access, bundle unpacking,
// publishing and notification stay behind the interfaces declared here.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"gf-data-miner/config"
)

type (
	Fetcher interface {
		Fetch(ctx context.Context, url string) ([]byte, error)
	}
	// BundleUnpacker extracts the files of an asset bundle, keyed by their
	// path inside the bundle.
	BundleUnpacker interface {
		Unpack(ctx context.Context, bundle []byte) (map[string][]byte, error)
	}
	// Publisher records a finished run, e.g. as a commit. It reports whether
	// anything was published.
	Publisher interface {
		Publish(ctx context.Context, message string) (bool, error)
	}
	Notifier interface {
		Notify(ctx context.Context, message string) error
	}

	Miner struct {
		Config    config.Config
		Version   config.VersionContext
		Logger    *slog.Logger
		Publisher Publisher
		Notifier  Notifier
	}

	// Layout names the directories a run reads from and writes to.
	Layout struct {
		Raw string
		Out string
	}

	TableFailure struct {
		TableID string `json:"table_id"`
		Err     error  `json:"-"`
	}
)

const (
	RawTableDir      = "stc"
	RawCatchdataFile = "stc/catchdata.dat"
	RawManifestFile  = "resdata.json"
	RawDabaoDir      = "dabao"
	RawLuaPatchDir   = "dabao/luapatch"
	RawTextDataDir   = "textdata"

	OutTableDir      = "stc"
	OutCatchdataDir  = "catchdata"
	OutFormattedDir  = "formatted"
	OutAssetDir      = "asset"
	OutVersionFile   = "version.json"
	OutManifestFile  = "resdata_no_hash.json"
	TableExtension   = ".stc"
	LuaPatchSuffix   = ".txt"
	FormattedSuffix  = ".yaml"
	RecordsExtension = ".json"
)

func (r TableFailure) Error() string {
	return fmt.Sprintf("table %s: %v", r.TableID, r.Err)
}

func NewMiner(cfg config.Config, vc config.VersionContext, logger *slog.Logger) *Miner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Miner{
		Config:  cfg,
		Version: vc,
		Logger:  logger.With("region", string(vc.Region), "min_version", vc.MinVersion),
	}
}
