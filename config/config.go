// Package config loads the miner configuration. A Config is built once at
// startup and handed to everything that needs it; nothing reads it from
// package state.
package config

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Keys             Keys                    `yaml:"keys"`
		LongRowThreshold int                     `yaml:"long_row_threshold"`
		MappingDir       string                  `yaml:"mapping_dir"`
		Workers          int                     `yaml:"workers"`
		LogLevel         string                  `yaml:"log_level"`
		SeqURL           string                  `yaml:"seq_url"`
		Bundles          []string                `yaml:"bundles"`
		Regions          map[Region]RegionConfig `yaml:"regions"`
	}
	Keys struct {
		ResKey string `yaml:"res_key"`
		ResIV  string `yaml:"res_iv"`
		LuaKey string `yaml:"lua_key"`
		DatKey string `yaml:"dat_key"`
	}
	RegionConfig struct {
		Generation Generation `yaml:"generation"`
		Hosts      Hosts      `yaml:"hosts"`
	}
	// Hosts are the servers a region publishes its resources on.
	Hosts struct {
		AssetHost string `yaml:"asset_host"`
		CDNHost   string `yaml:"cdn_host"`
	}
)

const (
	DefaultLongRowThreshold = 3020
	BlockSize               = 8
)

func Default() Config {
	regions := make(map[Region]RegionConfig, len(Regions))
	for _, region := range Regions {
		regions[region] = RegionConfig{Generation: Generation2018}
	}
	return Config{
		Keys: Keys{
			ResKey: "kxwL8X2+fgM=",
			ResIV:  "M9lp+7j2Jdwqr+Yj1h+A",
			LuaKey: "lvbb3zfc3faa8mq1rx0r0gl61b4338fa",
			DatKey: "c88d016d261eb80ce4d6e41a510d4048",
		},
		LongRowThreshold: DefaultLongRowThreshold,
		MappingDir:       "stc-mapping",
		Workers:          4,
		LogLevel:         "info",
		Bundles: []string{
			"asset_textavg",
			"asset_texttable",
			"asset_textes",
			"asset_textlangue",
			"asset_textlpatch",
			"asset_csv",
		},
		Regions: regions,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config.Load error reading %s", path)
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config.Load error parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config.Load error validating %s", path)
	}
	return cfg, nil
}

func (r Config) Validate() error {
	if _, err := r.ResKeyBytes(); err != nil {
		return err
	}
	if _, err := r.ResIVBytes(); err != nil {
		return err
	}
	if r.Keys.LuaKey == "" || r.Keys.DatKey == "" {
		return errors.New("lua_key and dat_key must not be empty")
	}
	if r.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", r.Workers)
	}
	for region, regionConfig := range r.Regions {
		if _, err := ParseRegion(string(region)); err != nil {
			return err
		}
		if regionConfig.Generation == "" {
			continue
		}
		if _, err := ParseGeneration(string(regionConfig.Generation)); err != nil {
			return errors.Wrapf(err, `region "%s"`, region)
		}
	}
	return nil
}

func (r Config) GenerationOf(region Region) Generation {
	regionConfig, ok := r.Regions[region]
	if !ok || regionConfig.Generation == "" {
		return Generation2018
	}
	return regionConfig.Generation
}

func (r Config) HostsOf(region Region) Hosts {
	return r.Regions[region].Hosts
}

func (r Config) ResKeyBytes() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(r.Keys.ResKey)
	if err != nil {
		return nil, errors.Wrap(err, "res_key is not base64")
	}
	if len(key) != BlockSize {
		return nil, fmt.Errorf("res_key must decode to %d bytes, got %d", BlockSize, len(key))
	}
	return key, nil
}

// ResIVBytes returns the first block of the configured IV; the configured
// value is longer than one block.
func (r Config) ResIVBytes() ([]byte, error) {
	iv, err := base64.StdEncoding.DecodeString(r.Keys.ResIV)
	if err != nil {
		return nil, errors.Wrap(err, "res_iv is not base64")
	}
	if len(iv) < BlockSize {
		return nil, fmt.Errorf("res_iv must decode to at least %d bytes, got %d", BlockSize, len(iv))
	}
	return iv[:BlockSize], nil
}
