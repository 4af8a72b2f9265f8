package scolumn

import (
	"fmt"

	"gf-data-miner/stc/lbytes"
)

func EncodeTypes(typeIDs []TypeID) []byte {
	bs := make([]byte, 0, len(typeIDs)+1)
	bs = append(bs, byte(len(typeIDs)))
	for _, typeID := range typeIDs {
		bs = append(bs, byte(typeID))
	}
	return bs
}

// EncodeValue accepts the Go type DecodeValue produces for typeID, plus the
// untyped numbers that come out of JSON.
func EncodeValue(typeID TypeID, value any) ([]byte, error) {
	switch typeID {
	case TypeByte:
		v, ok := toInt64(value)
		if !ok {
			return nil, mismatch(typeID, value)
		}
		return lbytes.EncodeValueByte(int8(v)), nil
	case TypeInt:
		v, ok := toInt64(value)
		if !ok {
			return nil, mismatch(typeID, value)
		}
		return lbytes.EncodeValueInt(int32(v)), nil
	case TypeLong:
		v, ok := toInt64(value)
		if !ok {
			return nil, mismatch(typeID, value)
		}
		return lbytes.EncodeValueLong(v), nil
	case TypeFloat:
		switch v := value.(type) {
		case float32:
			return lbytes.EncodeValueFloat(v), nil
		case float64:
			return lbytes.EncodeValueFloat(float32(v)), nil
		}
		return nil, mismatch(typeID, value)
	case TypeString:
		v, ok := value.(string)
		if !ok {
			return nil, mismatch(typeID, value)
		}
		return lbytes.EncodeValueString(v), nil
	}
	return nil, ErrUnknownType{Column: -1, TypeID: typeID}
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int8:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

func mismatch(typeID TypeID, value any) error {
	return fmt.Errorf(`scolumn.EncodeValue error: value "%v" of type %T is not a %s`, value, value, typeID)
}
