package scolumn

import (
	"fmt"
)

type (
	// TypeID is the physical type tag stored per column.
	TypeID         uint8
	ErrUnknownType struct {
		Column int
		TypeID TypeID
	}
)

const (
	TypeByte   = TypeID(1)
	TypeInt    = TypeID(5)
	TypeLong   = TypeID(8)
	TypeFloat  = TypeID(9)
	TypeString = TypeID(11)
)

func (r ErrUnknownType) Error() string {
	return fmt.Sprintf("column %d: unknown type id %d", r.Column, r.TypeID)
}

func (r TypeID) String() string {
	switch r {
	case TypeByte:
		return "byte"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	}
	return fmt.Sprintf("unknown(%d)", uint8(r))
}

func (r TypeID) Valid() bool {
	_, ok := readFunctions[r]
	return ok
}
