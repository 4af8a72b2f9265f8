package lbytes

import (
	"bytes"
	"fmt"
)

type (
	// Reader is a forward-only little-endian cursor over an in-memory table.
	Reader struct {
		bytes.Reader
	}
	Instruction struct {
		Key          string
		ReadFunction ReadFunction
	}
	ReadFunction func() (any, error)
	ErrUnexpectedEnd struct {
		Offset int64
		Want   int
		Have   int
	}
	ErrInvalidString struct {
		Offset int64
		Length int
	}
)

func (r ErrUnexpectedEnd) Error() string {
	return fmt.Sprintf(
		"unexpected end of buffer at offset %d: want %d bytes, have %d",
		r.Offset, r.Want, r.Have,
	)
}

func (r ErrInvalidString) Error() string {
	return fmt.Sprintf("string of %d bytes at offset %d is not valid UTF-8", r.Length, r.Offset)
}
