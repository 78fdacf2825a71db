package osc

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	bundleTagString = "#bundle"

	// minBundleSize is the padded "#bundle" tag plus the time tag.
	minBundleSize = len(bundleTagString) + 1 + bit64Size
)

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC bundle/message
// elements. The OSC-timetag is a 64-bit fixed point time tag. See
// http://opensoundcontrol.org/spec-1_0.html for more information.
type Bundle struct {
	Timetag  Timetag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns a bundle with the given time tag and elements.
func NewBundle(tt Timetag, elems ...Packet) *Bundle {
	return &Bundle{Timetag: tt, Elements: elems}
}

// NewBundleWithTime returns an empty bundle scheduled for t.
func NewBundleWithTime(t time.Time) *Bundle {
	return &Bundle{Timetag: NewTimetagFromTime(t)}
}

// Append appends OSC bundles or OSC messages to the bundle.
func (b *Bundle) Append(elems ...Packet) {
	b.Elements = append(b.Elements, elems...)
}

// Count returns the number of messages and bundles nested anywhere below b,
// not counting b itself.
func (b *Bundle) Count() (messages, bundles int) {
	for _, elem := range b.Elements {
		switch p := elem.(type) {
		case *Message:
			messages++
		case *Bundle:
			bundles++
			m, n := p.Count()
			messages += m
			bundles += n
		}
	}
	return messages, bundles
}

// EncodeBundle returns the wire encoding of b:
// 1. Bundle string: '#bundle'
// 2. OSC timetag
// 3. Length of first OSC bundle element
// 4. First bundle element
// 5. Length of n OSC bundle element
// 6. n bundle element
func EncodeBundle(b *Bundle) []byte {
	return AppendBundle(nil, b)
}

// AppendBundle appends the wire encoding of b to dst and returns the extended slice.
func AppendBundle(dst []byte, b *Bundle) []byte {
	dst = appendPaddedString(dst, bundleTagString)
	dst = binary.BigEndian.AppendUint64(dst, uint64(b.Timetag))

	for _, elem := range b.Elements {
		// Reserve the size prefix and fill it in once the element is written.
		at := len(dst)
		dst = append(dst, 0, 0, 0, 0)
		dst = appendPacket(dst, elem)
		binary.BigEndian.PutUint32(dst[at:], uint32(int32(len(dst)-at-bit32Size)))
	}
	return dst
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The error is
// always nil.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	return EncodeBundle(b), nil
}

func (*Bundle) packet() {}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. All
// strings and blobs in the decoded tree are copies, so data may be reused
// afterwards.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	d := Decoder{Copy: true}
	bundle, n, err := d.DecodeBundle(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("UnmarshalBinary: %d of %d bytes used: %w", n, len(data), ErrTrailingBytes)
	}
	*b = *bundle
	return nil
}

// isBundleCandidate reports whether data is shaped like a bundle: it must be
// long enough for the tag and a time tag, and start with "#bundle" followed
// directly by its NUL terminator. Addresses such as "#bundle/sub" or
// "#bundled" fail the terminator check. A message addressed exactly "#bundle"
// passes, so callers must still confirm with a full decode.
func isBundleCandidate(data []byte) bool {
	if len(data) < minBundleSize || !hasBundleTag(data) {
		return false
	}
	n := len(bundleTagString)
	timetagStart := n + 1 + padBytesNeeded(n+1)
	return len(data) >= timetagStart+bit64Size
}

// hasBundleTag reports whether data starts with the terminated "#bundle" tag.
func hasBundleTag(data []byte) bool {
	n := len(bundleTagString)
	return len(data) > n && string(data[:n]) == bundleTagString && data[n] == 0
}
