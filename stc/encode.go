package stc

import (
	"fmt"

	"gf-data-miner/stc/lbytes"
	"gf-data-miner/stc/scolumn"
	"gf-data-miner/stc/sheader"
	"github.com/pkg/errors"
)

// EncodeTable writes layout in the format DecodeTable reads. Row data starts
// right after the column header plus layout.Gap filler bytes.
func EncodeTable(layout TableLayout) ([]byte, error) {
	header := sheader.Header{
		Code: layout.Code,
		Rows: int64(len(layout.Rows)),
	}
	bs := sheader.Encode(header, layout.LongRowFormat)
	bs = append(bs, scolumn.EncodeTypes(layout.TypeIDs)...)
	bs = append(bs, lbytes.CreateZeroBytes(dataOffsetReservedSize)...)
	dataOffset := len(bs) + 4 + layout.Gap
	bs = append(bs, lbytes.EncodeValueInt(int32(dataOffset))...)
	bs = append(bs, lbytes.CreateZeroBytes(layout.Gap)...)

	for i, row := range layout.Rows {
		if len(row) != len(layout.TypeIDs) {
			return nil, fmt.Errorf(
				"stc.EncodeTable error: row %d has %d values for %d columns",
				i, len(row), len(layout.TypeIDs),
			)
		}
		for column, value := range row {
			valueBytes, err := scolumn.EncodeValue(layout.TypeIDs[column], value)
			if err != nil {
				return nil, errors.Wrapf(err, "stc.EncodeTable error: row %d", i)
			}
			bs = append(bs, valueBytes...)
		}
	}

	return bs, nil
}
