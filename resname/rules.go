package resname

import (
	"fmt"
	"strconv"
	"strings"

	"gf-data-miner/config"
)

type (
	RuleKey struct {
		Region     config.Region
		Generation config.Generation
	}
	// Rule builds the plain manifest name "{min}_[{infix}_]{ab}_{suffix}".
	Rule struct {
		Infix  string
		Suffix string
	}
	ErrUnknownNamingRule struct {
		Key RuleKey
	}
)

const (
	suffixLegacy = "AndroidResConfigData"
	suffix2018   = "AndroidResConfigData2018"
)

// Rules is the manifest naming history. A new region or client generation is
// a new entry here.
var Rules = map[RuleKey]Rule{
	{config.RegionCH, config.Generation2018}: {Suffix: suffix2018},
	{config.RegionTW, config.Generation2018}: {Suffix: suffix2018},
	{config.RegionKR, config.Generation2018}: {Suffix: suffix2018},
	{config.RegionUS, config.Generation2018}: {Suffix: suffix2018},
	{config.RegionJP, config.Generation2018}: {Suffix: suffix2018},
	{config.RegionAT, config.Generation2018}: {Infix: "alpha2020", Suffix: suffix2018},

	{config.RegionCH, config.GenerationLegacy}: {Suffix: suffixLegacy},
	{config.RegionTW, config.GenerationLegacy}: {Suffix: suffixLegacy},
	{config.RegionKR, config.GenerationLegacy}: {Suffix: suffixLegacy},
	{config.RegionUS, config.GenerationLegacy}: {Suffix: suffixLegacy},
	{config.RegionJP, config.GenerationLegacy}: {Suffix: suffixLegacy},
	{config.RegionAT, config.GenerationLegacy}: {Suffix: suffixLegacy},
}

func (r ErrUnknownNamingRule) Error() string {
	return fmt.Sprintf(
		`no manifest naming rule for region "%s" generation "%s"`,
		r.Key.Region, r.Key.Generation,
	)
}

func (r Rule) PlainName(minVersion int, abVersion string) string {
	parts := []string{strconv.Itoa(minVersion)}
	if r.Infix != "" {
		parts = append(parts, r.Infix)
	}
	parts = append(parts, abVersion, r.Suffix)
	return strings.Join(parts, "_")
}

func PlainName(vc config.VersionContext) (string, error) {
	key := RuleKey{Region: vc.Region, Generation: vc.Generation}
	rule, ok := Rules[key]
	if !ok {
		return "", ErrUnknownNamingRule{Key: key}
	}
	return rule.PlainName(vc.MinVersion, vc.ABVersion), nil
}
