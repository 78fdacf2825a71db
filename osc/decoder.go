package osc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"github.com/rs/zerolog"
)

// DefaultMaxDepth is the bundle nesting limit used when Decoder.MaxDepth is zero.
const DefaultMaxDepth = 32

// Decoder decodes OSC packets. The zero value is ready to use: it borrows from
// the input and applies DefaultMaxDepth. A Decoder holds no state between
// calls and may be shared between goroutines.
//
// Borrowed results (Copy == false) hold strings and blobs that point into the
// input slice. They stay valid only while that slice is alive and unmodified;
// a transport that reuses its read buffer must either copy the datagram first
// or decode with Copy set.
type Decoder struct {
	// MaxDepth limits bundle nesting; a top-level bundle has depth 1. Zero
	// means DefaultMaxDepth and a negative value disables the limit.
	MaxDepth int

	// Copy makes decoded strings and blobs independent of the input.
	Copy bool

	// Logger receives debug events about bundle element disambiguation.
	Logger *zerolog.Logger
}

var (
	defaultDecoder Decoder
	nopLogger      = zerolog.Nop()
)

func (d *Decoder) logger() *zerolog.Logger {
	if d.Logger == nil {
		return &nopLogger
	}
	return d.Logger
}

func (d *Decoder) tooDeep(depth int) bool {
	limit := d.MaxDepth
	if limit == 0 {
		limit = DefaultMaxDepth
	}
	return limit > 0 && depth > limit
}

func (d *Decoder) string(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if d.Copy {
		return string(b)
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

func (d *Decoder) blob(b []byte) Blob {
	if d.Copy {
		return Blob(bytes.Clone(b))
	}
	return Blob(b)
}

// ParsePacket decodes data as a single bundle or message. A datagram that looks
// like a bundle is decoded as one, falling back to a message when that fails,
// the same way bundle elements are classified. All of data must be used.
func (d *Decoder) ParsePacket(data []byte) (Packet, error) {
	p, n, err := d.decodePacket(data, 0)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("ParsePacket: %d of %d bytes used: %w", n, len(data), ErrTrailingBytes)
	}
	return p, nil
}

// DecodeMessage decodes one message from the start of data and returns it with
// the number of bytes consumed.
func (d *Decoder) DecodeMessage(data []byte) (*Message, int, error) {
	// First, read the OSC address
	addr, off, err := parsePaddedString(data, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("DecodeMessage: address: %w", err)
	}

	// Read the type tag string
	tags, off, err := parsePaddedString(data, off)
	if err != nil {
		return nil, 0, fmt.Errorf("DecodeMessage: type tags: %w", err)
	}

	// If the typetag doesn't start with ',', it's not valid
	if len(tags) == 0 || tags[0] != ',' {
		return nil, 0, fmt.Errorf("DecodeMessage: type tag string %q: %w", tags, ErrInvalidTag)
	}

	m := &Message{Address: d.string(addr)}
	if len(tags) > 1 {
		m.Arguments = make([]Argument, 0, len(tags)-1)
	}

	for _, c := range tags[1:] {
		switch TypeTag(c) {
		default:
			return nil, 0, fmt.Errorf("DecodeMessage: unsupported type tag %q: %w", c, ErrInvalidTag)

		case TypeInt32:
			var v int32
			if v, off, err = parseInt32(data, off); err != nil {
				return nil, 0, fmt.Errorf("DecodeMessage: %w", err)
			}
			m.Arguments = append(m.Arguments, Int32(v))

		case TypeFloat32:
			var v float32
			if v, off, err = parseFloat32(data, off); err != nil {
				return nil, 0, fmt.Errorf("DecodeMessage: %w", err)
			}
			m.Arguments = append(m.Arguments, Float32(v))

		case TypeString:
			var s []byte
			if s, off, err = parsePaddedString(data, off); err != nil {
				return nil, 0, fmt.Errorf("DecodeMessage: %w", err)
			}
			m.Arguments = append(m.Arguments, String(d.string(s)))

		case TypeBlob:
			var b []byte
			if b, off, err = parseBlob(data, off); err != nil {
				return nil, 0, fmt.Errorf("DecodeMessage: %w", err)
			}
			m.Arguments = append(m.Arguments, d.blob(b))
		}
	}

	return m, off, nil
}

// DecodeBundle decodes a bundle that spans all of data. Bundles carry no
// element count, so the consumed length is always len(data) on success.
func (d *Decoder) DecodeBundle(data []byte) (*Bundle, int, error) {
	return d.decodeBundle(data, 1)
}

func (d *Decoder) decodeBundle(data []byte, depth int) (*Bundle, int, error) {
	if d.tooDeep(depth) {
		return nil, 0, fmt.Errorf("DecodeBundle: depth %d: %w", depth, ErrDepthExceeded)
	}

	// Read the '#bundle' OSC string
	tag, off, err := parsePaddedString(data, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("DecodeBundle: %w", err)
	}
	if string(tag) != bundleTagString {
		return nil, 0, fmt.Errorf("DecodeBundle: invalid bundle start tag %q: %w", tag, ErrInvalidString)
	}

	if len(data)-off < bit64Size {
		return nil, 0, fmt.Errorf("DecodeBundle: time tag: %w", ErrTruncated)
	}
	b := &Bundle{Timetag: Timetag(binary.BigEndian.Uint64(data[off:]))}
	off += bit64Size

	// Read until the end of the buffer
	for i := 0; off < len(data); i++ {
		var size int32
		if size, off, err = parseInt32(data, off); err != nil {
			return nil, 0, fmt.Errorf("DecodeBundle: element %d size: %w", i, err)
		}
		if size < 0 || int(size) > len(data)-off {
			return nil, 0, fmt.Errorf("DecodeBundle: element %d size %d exceeds remaining %d bytes: %w", i, size, len(data)-off, ErrTruncated)
		}
		elem := data[off : off+int(size)]

		p, n, err := d.decodePacket(elem, depth)
		if err != nil {
			if errors.Is(err, ErrDepthExceeded) || errors.Is(err, ErrInvalidTag) {
				return nil, 0, fmt.Errorf("DecodeBundle: element %d: %w", i, err)
			}
			return nil, 0, fmt.Errorf("DecodeBundle: element %d: %w: %w", i, ErrInvalidTag, err)
		}
		if n != len(elem) {
			return nil, 0, fmt.Errorf("DecodeBundle: element %d used %d of %d bytes: %w", i, n, len(elem), ErrInvalidTag)
		}

		b.Elements = append(b.Elements, p)
		off += len(elem)
	}

	return b, off, nil
}

// decodePacket classifies data as a nested bundle or a message. depth is the
// nesting level of the enclosing bundle (0 at the top level).
//
// A message address may legally begin with "#bundle", so the byte-level
// candidate test is only a hint: the element is a bundle when a full bundle
// decode succeeds and uses every byte. Otherwise it is decoded as a message.
// The returned count is the number of bytes the chosen decode used.
func (d *Decoder) decodePacket(data []byte, depth int) (Packet, int, error) {
	var bundleErr error
	if isBundleCandidate(data) {
		b, n, err := d.decodeBundle(data, depth+1)
		if err == nil && n == len(data) {
			return b, n, nil
		}
		if err == nil {
			err = fmt.Errorf("nested bundle used %d of %d bytes: %w", n, len(data), ErrInvalidTag)
		}
		bundleErr = err
		d.logger().Debug().Err(err).Int("size", len(data)).Int("depth", depth+1).
			Msg("bundle candidate rejected, decoding as message")
	}

	m, n, err := d.DecodeMessage(data)
	if err != nil {
		// Neither reading works. Data that starts like a bundle is reported
		// with the bundle error, which names the actual fault.
		if bundleErr != nil {
			return nil, 0, bundleErr
		}
		if hasBundleTag(data) {
			return nil, 0, fmt.Errorf("DecodeBundle: time tag: %w", ErrTruncated)
		}
		return nil, 0, err
	}
	return m, n, nil
}
