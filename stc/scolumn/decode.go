package scolumn

import (
	"gf-data-miner/stc/lbytes"
	"github.com/pkg/errors"
)

type readFunction func(reader *lbytes.Reader) (any, error)

// readFunctions is the whole set of column types; a tag missing here is
// rejected while the column types are read, before any row is touched.
var readFunctions = map[TypeID]readFunction{
	TypeByte: func(reader *lbytes.Reader) (any, error) {
		return reader.ReadSByte()
	},
	TypeInt: func(reader *lbytes.Reader) (any, error) {
		return reader.ReadInt()
	},
	TypeLong: func(reader *lbytes.Reader) (any, error) {
		return reader.ReadLong()
	},
	TypeFloat: func(reader *lbytes.Reader) (any, error) {
		return reader.ReadFloat()
	},
	TypeString: func(reader *lbytes.Reader) (any, error) {
		return reader.ReadString()
	},
}

// DecodeTypes reads the column count followed by one tag per column.
func DecodeTypes(reader *lbytes.Reader) ([]TypeID, error) {
	count, err := reader.ReadUByte()
	if err != nil {
		return nil, errors.Wrap(err, "scolumn.DecodeTypes error: read column count")
	}
	typeIDs := make([]TypeID, 0, count)
	for i := 0; i < int(count); i++ {
		tag, err := reader.ReadUByte()
		if err != nil {
			return nil, errors.Wrapf(err, "scolumn.DecodeTypes error: read type of column %d", i)
		}
		typeID := TypeID(tag)
		if !typeID.Valid() {
			return nil, ErrUnknownType{Column: i, TypeID: typeID}
		}
		typeIDs = append(typeIDs, typeID)
	}
	return typeIDs, nil
}

// DecodeValue reads one cell of the given type.
func DecodeValue(reader *lbytes.Reader, typeID TypeID) (any, error) {
	read, ok := readFunctions[typeID]
	if !ok {
		return nil, ErrUnknownType{Column: -1, TypeID: typeID}
	}
	return read(reader)
}
