package config

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// VersionContext pins everything that depends on which client build is being
// mined. It is built once per run and passed by value.
type VersionContext struct {
	Region        Region     `json:"region"`
	ClientVersion string     `json:"client_version"`
	MinVersion    int        `json:"min_version"`
	ABVersion     string     `json:"ab_version"`
	DataVersion   string     `json:"data_version"`
	Generation    Generation `json:"generation"`
	LongRowFormat bool       `json:"long_row_format"`
}

// MinVersion buckets a client version like 30205 into 3020. Halves round to
// even, which is how the buckets were always computed.
func MinVersion(clientVersion string) (int, error) {
	client, err := strconv.Atoi(strings.TrimSpace(clientVersion))
	if err != nil {
		return 0, errors.Wrapf(err, `MinVersion error: client version "%s"`, clientVersion)
	}
	return int(math.RoundToEven(float64(client) / 10)), nil
}

func (r Config) VersionContext(region Region, clientVersion, abVersion, dataVersion string) (VersionContext, error) {
	minVersion, err := MinVersion(clientVersion)
	if err != nil {
		return VersionContext{}, err
	}
	return VersionContext{
		Region:        region,
		ClientVersion: clientVersion,
		MinVersion:    minVersion,
		ABVersion:     abVersion,
		DataVersion:   dataVersion,
		Generation:    r.GenerationOf(region),
		LongRowFormat: minVersion >= r.LongRowThreshold,
	}, nil
}
