package sheader

type (
	Header struct {
		Code uint16 `json:"code"`
		Rows int64  `json:"rows"`
	}
)

const (
	ShortReservedSize = 2
	LongReservedSize  = 4
	ShortHeaderSize   = 2 + ShortReservedSize + 2
	LongHeaderSize    = 2 + LongReservedSize + 4
)
