package sheader

import (
	"fmt"

	"gf-data-miner/stc/lbytes"
	"github.com/pkg/errors"
)

// Decode reads the table header. The long row format widens the reserved
// block and the row count from 16 to 32 bits.
func Decode(reader *lbytes.Reader, longRowFormat bool) (*Header, error) {
	readCode := lbytes.CreateUShortReadFunction(reader)
	skipReserved := lbytes.CreateSkipFunction(reader, ShortReservedSize)
	readRows := lbytes.CreateUShortReadFunction(reader)
	if longRowFormat {
		skipReserved = lbytes.CreateSkipFunction(reader, LongReservedSize)
		readRows = lbytes.CreateIntReadFunction(reader)
	}

	headerInstructions := []lbytes.Instruction{
		{Key: "code", ReadFunction: readCode},
		{Key: "", ReadFunction: skipReserved},
		{Key: "rows", ReadFunction: readRows},
	}

	header, err := lbytes.ExecuteInstructions[Header](headerInstructions)
	if err != nil {
		return nil, errors.Wrap(err, "sheader.Decode error")
	}
	if header.Rows < 0 {
		return nil, fmt.Errorf("sheader.Decode error: negative row count %d", header.Rows)
	}

	return header, nil
}
