package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	bit32Size = 4
	bit64Size = 8
)

////
// De/Encoding functions
////

// padBytesNeeded determines how many bytes are needed to fill up to the next 4
// byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}

// appendPaddedString appends str, its NUL terminator and the padding up to the
// next 4 byte boundary.
func appendPaddedString(dst []byte, str string) []byte {
	dst = append(dst, str...)
	dst = append(dst, 0)
	return appendPadding(dst, len(str)+1)
}

func appendPadding(dst []byte, n int) []byte {
	for i := padBytesNeeded(n); i > 0; i-- {
		dst = append(dst, 0)
	}
	return dst
}

func appendInt32(dst []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(v))
}

func appendFloat32(dst []byte, v float32) []byte {
	return binary.BigEndian.AppendUint32(dst, math.Float32bits(v))
}

// appendBlob appends the length prefix, the payload and the payload padding.
func appendBlob(dst []byte, data []byte) []byte {
	dst = appendInt32(dst, int32(len(data)))
	dst = append(dst, data...)
	return appendPadding(dst, len(data))
}

// parsePaddedString reads the NUL terminated string starting at off. It returns
// the raw string bytes (a sub-slice of data) and the offset past the padding.
func parsePaddedString(data []byte, off int) ([]byte, int, error) {
	pos := bytes.IndexByte(data[off:], 0)
	if pos == -1 {
		return nil, 0, fmt.Errorf("parsePaddedString: no terminator after offset %d: %w", off, ErrTruncated)
	}

	str := data[off : off+pos]
	if !utf8.Valid(str) {
		return nil, 0, fmt.Errorf("parsePaddedString: offset %d: %w", off, ErrInvalidString)
	}

	end := off + pos + 1
	end += padBytesNeeded(pos + 1)
	if end > len(data) {
		return nil, 0, fmt.Errorf("parsePaddedString: padding past end of data: %w", ErrTruncated)
	}

	return str, end, nil
}

func parseInt32(data []byte, off int) (int32, int, error) {
	if len(data)-off < bit32Size {
		return 0, 0, fmt.Errorf("parseInt32: need %d bytes at offset %d, have %d: %w", bit32Size, off, len(data)-off, ErrUnexpectedEOF)
	}
	return int32(binary.BigEndian.Uint32(data[off:])), off + bit32Size, nil
}

func parseFloat32(data []byte, off int) (float32, int, error) {
	if len(data)-off < bit32Size {
		return 0, 0, fmt.Errorf("parseFloat32: need %d bytes at offset %d, have %d: %w", bit32Size, off, len(data)-off, ErrUnexpectedEOF)
	}
	return math.Float32frombits(binary.BigEndian.Uint32(data[off:])), off + bit32Size, nil
}

// parseBlob parses an OSC blob starting at off. The returned payload is a
// sub-slice of data whose capacity ends at the payload, so appending to it
// never writes into the rest of the packet.
func parseBlob(data []byte, off int) ([]byte, int, error) {
	blobLen, off, err := parseInt32(data, off)
	if err != nil {
		return nil, 0, fmt.Errorf("parseBlob: %w", err)
	}

	n := int(blobLen)
	if n < 0 || n > len(data)-off {
		return nil, 0, fmt.Errorf("parseBlob: invalid blob length %d: %w", blobLen, ErrUnexpectedEOF)
	}
	end := off + n
	if end+padBytesNeeded(n) > len(data) {
		return nil, 0, fmt.Errorf("parseBlob: padding past end of data: %w", ErrUnexpectedEOF)
	}

	return data[off:end:end], end + padBytesNeeded(n), nil
}
