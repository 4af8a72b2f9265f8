package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gf-data-miner/config"
	"gf-data-miner/manifest"
	"gf-data-miner/output"
	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"
)

// VersionInfo is what version.json records about the last mined build.
type VersionInfo struct {
	DataVersion   string `json:"data_version"`
	ClientVersion string `json:"client_version"`
	ABVersion     string `json:"ab_version"`
	DabaoTime     string `json:"dabao_time"`
}

const shortDataVersionLength = 7

func NewVersionInfo(vc config.VersionContext, daBaoTime string) VersionInfo {
	return VersionInfo{
		DataVersion:   vc.DataVersion,
		ClientVersion: vc.ClientVersion,
		ABVersion:     vc.ABVersion,
		DabaoTime:     daBaoTime,
	}
}

// VersionLabel describes a build in one line, e.g.
// "CH | 30201 | data 1a2b3c4 | dabao 20240115_09_05".
func VersionLabel(vc config.VersionContext, daBaoTime string) (string, error) {
	label, err := manifest.DabaoLabel(daBaoTime)
	if err != nil {
		return "", err
	}
	dataVersion := vc.DataVersion
	if len(dataVersion) > shortDataVersionLength {
		dataVersion = dataVersion[:shortDataVersionLength]
	}
	return fmt.Sprintf(
		"%s | %s | data %s | dabao %s",
		vc.Region.Upper(), vc.ClientVersion, dataVersion, label,
	), nil
}

// ReadVersion returns nil without error when path does not exist.
func ReadVersion(path string) (*VersionInfo, error) {
	bs, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline.ReadVersion error reading %s", path)
	}
	info := VersionInfo{}
	if err := json.Unmarshal(jsonc.ToJSON(bs), &info); err != nil {
		return nil, errors.Wrapf(err, "pipeline.ReadVersion error parsing %s", path)
	}
	return &info, nil
}

// UpdateAvailable reports whether the remote build differs from the one last
// mined. Having mined nothing yet counts as an update.
func UpdateAvailable(local *VersionInfo, remote VersionInfo) bool {
	if local == nil {
		return true
	}
	return local.DataVersion != remote.DataVersion || local.DabaoTime != remote.DabaoTime
}

// WriteVersion records the mined build and the normalized manifest in
// outDir.
func (r *Miner) WriteVersion(outDir string, m *manifest.Manifest) error {
	info := NewVersionInfo(r.Version, m.DaBaoTime())
	if err := output.WriteJSON(filepath.Join(outDir, OutVersionFile), info, output.MetadataIndent); err != nil {
		return err
	}
	bs, err := manifest.Marshal(m)
	if err != nil {
		return err
	}
	return output.WriteFile(filepath.Join(outDir, OutManifestFile), bs)
}
