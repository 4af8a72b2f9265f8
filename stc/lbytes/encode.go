package lbytes

import (
	"encoding/binary"
	"math"
)

func EncodeValueByte(value int8) []byte {
	return []byte{byte(value)}
}

func EncodeValueUShort(value uint16) []byte {
	bs := make([]byte, 2)
	binary.LittleEndian.PutUint16(bs, value)
	return bs
}

func EncodeValueInt(value int32) []byte {
	bs := make([]byte, 4)
	binary.LittleEndian.PutUint32(bs, uint32(value))
	return bs
}

func EncodeValueLong(value int64) []byte {
	bs := make([]byte, 8)
	binary.LittleEndian.PutUint64(bs, uint64(value))
	return bs
}

func EncodeValueFloat(value float32) []byte {
	bs := make([]byte, 4)
	binary.LittleEndian.PutUint32(bs, math.Float32bits(value))
	return bs
}

// EncodeValueString lays out a string the way ReadString expects it: one
// reserved zero byte, the uint16 length, then the raw bytes.
func EncodeValueString(value string) []byte {
	bs := []byte{0}
	bs = append(bs, EncodeValueUShort(uint16(len(value)))...)
	bs = append(bs, []byte(value)...)
	return bs
}

func CreateZeroBytes(n int) []byte {
	return make([]byte, n)
}
