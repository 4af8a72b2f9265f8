// Package catchdata unwraps the catchdata blob: a gzip stream XORed with a
// fixed key, holding one JSON object per line, each naming one table.
package catchdata

import (
	"fmt"
	"strings"

	"gf-data-miner/ds"
	"github.com/iancoleman/orderedmap"
)

// Tables maps table names to their records in first-seen order.
type Tables = ds.LinkedHashMap[string, []orderedmap.OrderedMap]

type ErrMalformedLine struct {
	Line int
	Keys []string
	Err  error
}

func (r ErrMalformedLine) Error() string {
	if r.Err != nil {
		return fmt.Sprintf("catchdata line %d is malformed: %v", r.Line, r.Err)
	}
	return fmt.Sprintf(
		"catchdata line %d must hold exactly one table, got keys [%s]",
		r.Line, strings.Join(r.Keys, ", "),
	)
}

func (r ErrMalformedLine) Unwrap() error {
	return r.Err
}
