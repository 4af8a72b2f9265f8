package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gf-data-miner/crypt"
	"gf-data-miner/output"
	"github.com/pkg/errors"
)

type AssetStats struct {
	Copied    int `json:"copied"`
	Decrypted int `json:"decrypted"`
	Skipped   int `json:"skipped"`
}

// unpackedAssetExtension marks the serialized Unity objects left next to the
// extracted files; they are not published.
const unpackedAssetExtension = ".asset"

// DecryptLuaPatch XORs a lua patch with the lua key and returns the name it
// is published under.
func (r *Miner) DecryptLuaPatch(name string, cipher []byte) (string, []byte, error) {
	plain, err := crypt.XORChecked(cipher, r.Config.Keys.LuaKey)
	if err != nil {
		return "", nil, errors.Wrapf(err, "pipeline.DecryptLuaPatch error on %s", name)
	}
	return strings.TrimSuffix(name, LuaPatchSuffix), plain, nil
}

// ExportAssets copies the unpacked dabao and textdata trees into
// outDir/asset. Lua patches are decrypted on the way.
func (r *Miner) ExportAssets(rawDir string, outDir string) (AssetStats, error) {
	stats := AssetStats{}
	dabao := filepath.Join(rawDir, RawDabaoDir)
	luaPatchDir := filepath.Join(rawDir, RawLuaPatchDir)
	assetDir := filepath.Join(outDir, OutAssetDir)

	err := r.copyTree(dabao, assetDir, &stats, func(path string) bool {
		return strings.HasSuffix(path, LuaPatchSuffix) && isWithin(luaPatchDir, path)
	})
	if err != nil {
		return stats, err
	}
	err = r.copyTree(
		filepath.Join(rawDir, RawTextDataDir),
		filepath.Join(assetDir, RawTextDataDir),
		&stats,
		func(string) bool { return false },
	)
	if err != nil {
		return stats, err
	}
	r.Logger.Info(
		"exported assets",
		"copied", stats.Copied,
		"decrypted", stats.Decrypted,
		"skipped", stats.Skipped,
	)
	return stats, nil
}

func (r *Miner) copyTree(src string, dst string, stats *AssetStats, isLuaPatch func(string) bool) error {
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
		r.Logger.Debug("asset directory missing", "path", src)
		return nil
	}
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if filepath.Ext(path) == unpackedAssetExtension {
			stats.Skipped++
			return nil
		}
		relative, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrap(err, "pipeline.copyTree error")
		}
		bs, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "pipeline.copyTree error reading %s", path)
		}
		if isLuaPatch(path) {
			relative, bs, err = r.DecryptLuaPatch(relative, bs)
			if err != nil {
				return err
			}
			stats.Decrypted++
		} else {
			stats.Copied++
		}
		return output.WriteFile(filepath.Join(dst, relative), bs)
	})
}

func isWithin(dir string, path string) bool {
	relative, err := filepath.Rel(dir, path)
	return err == nil && relative != ".." && !strings.HasPrefix(relative, ".."+string(filepath.Separator))
}
