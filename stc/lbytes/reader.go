package lbytes

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
)

func NewBytesReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
	}
}

// Offset returns the absolute position of the cursor.
func (b *Reader) Offset() int64 {
	return b.Size() - int64(b.Len())
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	bs := make([]byte, n)
	// add return early to avoid EOF error
	// when reader's pointer reach end of file
	// while the number of next bytes to read is 0
	if n == 0 {
		return bs, nil
	}
	offset := b.Offset()
	read, err := io.ReadFull(&b.Reader, bs)
	if err != nil {
		return nil, ErrUnexpectedEnd{
			Offset: offset,
			Want:   n,
			Have:   read,
		}
	}
	return bs, nil
}

func (b *Reader) Skip(n int) error {
	_, err := b.ReadBytes(n)
	return err
}

// SeekTo moves the cursor to an absolute offset. Seeking past the end is
// allowed; the next read reports it.
func (b *Reader) SeekTo(offset int64) error {
	if _, err := b.Reader.Seek(offset, io.SeekStart); err != nil {
		return errors.Wrapf(err, "SeekTo error: offset %d", offset)
	}
	return nil
}

func (b *Reader) ReadSByte() (int8, error) {
	bs, err := b.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return int8(bs[0]), nil
}

// ReadUByte reads the same single byte as ReadSByte, unsigned. Column counts
// and type tags are laid out this way.
func (b *Reader) ReadUByte() (uint8, error) {
	bs, err := b.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (b *Reader) ReadUShort() (uint16, error) {
	bs, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bs), nil
}

func (b *Reader) ReadInt() (int32, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	result := binary.LittleEndian.Uint32(bs)
	return int32(result), nil
}

func (b *Reader) ReadLong() (int64, error) {
	bs, err := b.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	result := binary.LittleEndian.Uint64(bs)
	return int64(result), nil
}

// ReadFloat reads a float32 and re-quantizes it to 6 significant digits,
// the precision the published data has always been serialized with.
func (b *Reader) ReadFloat() (float64, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	f32 := math.Float32frombits(binary.LittleEndian.Uint32(bs))
	return QuantizeFloat(f32), nil
}

// ReadString reads a reserved byte, an unsigned 16-bit length and that many
// UTF-8 bytes.
func (b *Reader) ReadString() (string, error) {
	if err := b.Skip(1); err != nil {
		return "", err
	}
	length, err := b.ReadUShort()
	if err != nil {
		return "", err
	}
	offset := b.Offset()
	bs, err := b.ReadBytes(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bs) {
		return "", ErrInvalidString{Offset: offset, Length: len(bs)}
	}
	return string(bs), nil
}

func QuantizeFloat(f32 float32) float64 {
	s := strconv.FormatFloat(float64(f32), 'g', 6, 64)
	f64, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// FormatFloat output always parses back
		return float64(f32)
	}
	return f64
}
