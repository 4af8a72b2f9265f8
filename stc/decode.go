package stc

import (
	"gf-data-miner/stc/lbytes"
	"gf-data-miner/stc/scolumn"
	"gf-data-miner/stc/sheader"
	"gf-data-miner/stc/smapping"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

// DecodeTable turns one table asset into records named by schema. The result
// depends only on its arguments; a table that cannot be read to the end
// yields no records at all.
func DecodeTable(bs []byte, schema smapping.Schema, longRowFormat bool) (*Table, error) {
	reader := lbytes.NewBytesReader(bs)
	truncated := ErrTruncatedTable{
		Table:          schema.Name,
		Row:            -1,
		DeclaredFields: len(schema.Fields),
	}
	fail := func(err error) error {
		truncated.Err = err
		truncated.Offset = reader.Offset()
		unexpectedEnd := lbytes.ErrUnexpectedEnd{}
		if errors.As(err, &unexpectedEnd) {
			truncated.Offset = unexpectedEnd.Offset
		}
		return truncated
	}

	header, err := sheader.Decode(reader, longRowFormat)
	if err != nil {
		return nil, fail(err)
	}
	truncated.Rows = header.Rows
	table := Table{
		Name:    schema.Name,
		Code:    header.Code,
		Records: make([]orderedmap.OrderedMap, 0),
	}
	if header.Rows == 0 {
		return &table, nil
	}

	typeIDs, err := scolumn.DecodeTypes(reader)
	if err != nil {
		unknownType := scolumn.ErrUnknownType{}
		if errors.As(err, &unknownType) {
			return nil, errors.Wrapf(err, `stc.DecodeTable error in table "%s"`, schema.Name)
		}
		return nil, fail(err)
	}
	truncated.Columns = len(typeIDs)
	table.TypeIDs = typeIDs
	table.Fields, table.Drift = smapping.Reconcile(schema.Fields, len(typeIDs))

	if err := reader.Skip(dataOffsetReservedSize); err != nil {
		return nil, fail(err)
	}
	dataOffset, err := reader.ReadInt()
	if err != nil {
		return nil, fail(err)
	}
	if err := reader.SeekTo(int64(dataOffset)); err != nil {
		return nil, fail(err)
	}

	// row counts come from the file; do not trust them for allocation
	capacity := header.Rows
	if remaining := int64(reader.Len()); capacity > remaining {
		capacity = remaining
	}
	records := make([]orderedmap.OrderedMap, 0, capacity)
	for row := 0; int64(row) < header.Rows; row++ {
		truncated.Row = row
		record := orderedmap.New()
		record.SetEscapeHTML(false)
		for column, typeID := range typeIDs {
			value, err := scolumn.DecodeValue(reader, typeID)
			invalidString := lbytes.ErrInvalidString{}
			if errors.As(err, &invalidString) {
				return nil, errors.Wrapf(
					err, `stc.DecodeTable error in table "%s" row %d column "%s"`,
					schema.Name, row, table.Fields[column],
				)
			}
			if err != nil {
				return nil, fail(errors.Wrapf(err, `column "%s"`, table.Fields[column]))
			}
			record.Set(table.Fields[column], value)
		}
		records = append(records, *record)
	}
	table.Records = records

	return &table, nil
}
