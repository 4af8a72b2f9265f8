// Package stc decodes the game's binary table assets into named records.
//
// A table is laid out as
//
//	code u16 | reserved (2 or 4) | rows (u16 or i32) | columns u8 | tags [columns]u8
//	reserved 4 | data offset i32 | ... | rows at data offset
//
// where the wider reserved block and row count belong to the long row format.
package stc

import (
	"fmt"

	"gf-data-miner/stc/scolumn"
	"gf-data-miner/stc/smapping"
	"github.com/iancoleman/orderedmap"
)

type (
	Table struct {
		Name    string                  `json:"name"`
		Records []orderedmap.OrderedMap `json:"records"`
		Code    uint16                  `json:"-"`
		Fields  []string                `json:"-"`
		TypeIDs []scolumn.TypeID        `json:"-"`
		Drift   *smapping.Drift         `json:"-"`
	}
	// TableLayout is everything EncodeTable needs to write a table.
	TableLayout struct {
		Code          uint16
		LongRowFormat bool
		TypeIDs       []scolumn.TypeID
		Rows          [][]any
		// Gap is the number of filler bytes between the column header and the
		// row data, which the format allows.
		Gap int
	}
	ErrTruncatedTable struct {
		Table          string
		Offset         int64
		Rows           int64
		Row            int
		Columns        int
		DeclaredFields int
		Err            error
	}
)

const (
	// dataOffsetReservedSize precedes the data offset.
	dataOffsetReservedSize = 4
)

func (r ErrTruncatedTable) Error() string {
	return fmt.Sprintf(
		`table "%s" truncated at offset %d (row %d of %d; %d physical columns, %d declared fields): %v`,
		r.Table, r.Offset, r.Row, r.Rows, r.Columns, r.DeclaredFields, r.Err,
	)
}

func (r ErrTruncatedTable) Unwrap() error {
	return r.Err
}
