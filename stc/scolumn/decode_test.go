package scolumn

import (
	"testing"

	"gf-data-miner/stc/lbytes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTypes(t *testing.T) {
	typeIDs := []TypeID{TypeInt, TypeString, TypeByte, TypeLong, TypeFloat}
	reader := lbytes.NewBytesReader(EncodeTypes(typeIDs))

	decoded, err := DecodeTypes(reader)
	require.NoError(t, err)
	assert.Equal(t, typeIDs, decoded)
}

func TestDecodeTypes_UnknownTag(t *testing.T) {
	reader := lbytes.NewBytesReader([]byte{2, byte(TypeInt), 7})

	_, err := DecodeTypes(reader)
	var unknownType ErrUnknownType
	require.True(t, errors.As(err, &unknownType))
	assert.Equal(t, 1, unknownType.Column)
	assert.Equal(t, TypeID(7), unknownType.TypeID)
}

func TestDecodeTypes_Truncated(t *testing.T) {
	reader := lbytes.NewBytesReader([]byte{3, byte(TypeInt)})

	_, err := DecodeTypes(reader)
	assert.Error(t, err)
}

func TestDecodeValue(t *testing.T) {
	cases := []struct {
		typeID TypeID
		value  any
	}{
		{TypeByte, int8(-7)},
		{TypeInt, int32(-100000)},
		{TypeLong, int64(1) << 40},
		{TypeFloat, 2.5},
		{TypeString, "M4A1"},
	}
	for _, c := range cases {
		bs, err := EncodeValue(c.typeID, c.value)
		require.NoError(t, err)
		decoded, err := DecodeValue(lbytes.NewBytesReader(bs), c.typeID)
		require.NoError(t, err)
		assert.Equal(t, c.value, decoded, c.typeID.String())
	}
}

func TestEncodeValue_Mismatch(t *testing.T) {
	_, err := EncodeValue(TypeString, 3)
	assert.Error(t, err)
	_, err = EncodeValue(TypeInt, "3")
	assert.Error(t, err)
}

func TestTypeID_String(t *testing.T) {
	assert.Equal(t, "float", TypeFloat.String())
	assert.Equal(t, "unknown(2)", TypeID(2).String())
	assert.False(t, TypeID(2).Valid())
}
