package sheader

import (
	"gf-data-miner/stc/lbytes"
)

func Encode(header Header, longRowFormat bool) []byte {
	if longRowFormat {
		bs := make([]byte, 0, LongHeaderSize)
		bs = append(bs, lbytes.EncodeValueUShort(header.Code)...)
		bs = append(bs, lbytes.CreateZeroBytes(LongReservedSize)...)
		bs = append(bs, lbytes.EncodeValueInt(int32(header.Rows))...)
		return bs
	}
	bs := make([]byte, 0, ShortHeaderSize)
	bs = append(bs, lbytes.EncodeValueUShort(header.Code)...)
	bs = append(bs, lbytes.CreateZeroBytes(ShortReservedSize)...)
	bs = append(bs, lbytes.EncodeValueUShort(uint16(header.Rows))...)
	return bs
}
