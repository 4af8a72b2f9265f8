package pipeline

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gf-data-miner/config"
	"gf-data-miner/manifest"
	"gf-data-miner/output"
	"gf-data-miner/resname"
	"github.com/pkg/errors"
)

// DirFetcher serves URLs from files named after the last URL path segment
// in Root, for runs over resources fetched by other means.
type DirFetcher struct {
	Root string
}

func (r DirFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "DirFetcher.Fetch error parsing %s", rawURL)
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return nil, errors.Errorf("DirFetcher.Fetch error: %s names no file", rawURL)
	}
	bs, err := os.ReadFile(filepath.Join(r.Root, name))
	if err != nil {
		return nil, errors.Wrapf(err, "DirFetcher.Fetch error reading %s", rawURL)
	}
	return bs, nil
}

func (r *Miner) hosts() (config.Hosts, error) {
	hosts := r.Config.HostsOf(r.Version.Region)
	if hosts.AssetHost == "" || hosts.CDNHost == "" {
		return hosts, errors.Errorf("no hosts configured for region %s", r.Version.Region)
	}
	return hosts, nil
}

// ManifestURL is where the manifest of the current version lives under its
// derived name.
func (r *Miner) ManifestURL() (string, error) {
	hosts, err := r.hosts()
	if err != nil {
		return "", err
	}
	name, err := resname.ManifestName(r.Version, r.Config)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(hosts.AssetHost, "/") + "/" + name, nil
}

func (r *Miner) ArchiveURL() (string, error) {
	hosts, err := r.hosts()
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(hosts.CDNHost, "/") + "/data/" + resname.ArchiveName(r.Version.DataVersion), nil
}

// BundleURLs lists the configured target bundles of m.
func (r *Miner) BundleURLs(m *manifest.Manifest) ([]manifest.BundleURL, error) {
	return manifest.BundleURLs(m, r.Config.Bundles)
}

// Download fetches rawURL into path.
func Download(ctx context.Context, fetcher Fetcher, rawURL string, path string) error {
	bs, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return errors.Wrapf(err, "pipeline.Download error fetching %s", rawURL)
	}
	return output.WriteFile(path, bs)
}

// UnpackBundle writes every file of bundle under dir.
func UnpackBundle(ctx context.Context, unpacker BundleUnpacker, bundle []byte, dir string) (int, error) {
	files, err := unpacker.Unpack(ctx, bundle)
	if err != nil {
		return 0, errors.Wrap(err, "pipeline.UnpackBundle error")
	}
	for name, bs := range files {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if !isWithin(dir, target) {
			return 0, errors.Errorf("pipeline.UnpackBundle error: %s escapes %s", name, dir)
		}
		if err := output.WriteFile(target, bs); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}
