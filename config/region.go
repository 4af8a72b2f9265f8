package config

import (
	"fmt"
	"strings"
)

type (
	Region     string
	Generation string
)

const (
	RegionCH = Region("ch")
	RegionTW = Region("tw")
	RegionKR = Region("kr")
	RegionUS = Region("us")
	RegionJP = Region("jp")
	RegionAT = Region("at")

	// GenerationLegacy clients name their manifest without the 2018 suffix.
	GenerationLegacy = Generation("legacy")
	Generation2018   = Generation("2018")
)

var Regions = []Region{RegionCH, RegionTW, RegionKR, RegionUS, RegionJP, RegionAT}

func ParseRegion(s string) (Region, error) {
	region := Region(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Regions {
		if region == known {
			return region, nil
		}
	}
	return "", fmt.Errorf(`unknown region "%s"`, s)
}

func ParseGeneration(s string) (Generation, error) {
	switch Generation(s) {
	case GenerationLegacy, Generation2018:
		return Generation(s), nil
	}
	return "", fmt.Errorf(`unknown naming generation "%s"`, s)
}

// UnmarshalText lets regions be used directly as go-arg values and YAML keys.
func (r *Region) UnmarshalText(text []byte) error {
	region, err := ParseRegion(string(text))
	if err != nil {
		return err
	}
	*r = region
	return nil
}

func (r Region) Upper() string {
	return strings.ToUpper(string(r))
}
