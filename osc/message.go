package osc

import (
	"fmt"
	"strings"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more arguments.
type Message struct {
	Address   string
	Arguments []Argument
}

// Verify that Messages implements the Packet interface.
var _ Packet = (*Message)(nil)

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...Argument) *Message {
	return &Message{Address: addr, Arguments: args}
}

// Append appends the given arguments to the arguments list.
func (m *Message) Append(args ...Argument) {
	m.Arguments = append(m.Arguments, args...)
}

// Clear clears the OSC address and all arguments.
func (m *Message) Clear() {
	m.Address = ""
	m.Arguments = m.Arguments[:0]
}

// TypeTags returns the type tag string, a ',' followed by one letter per argument.
func (m *Message) TypeTags() string {
	return string(appendTypeTags(make([]byte, 0, len(m.Arguments)+1), m.Arguments))
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.Address)
	sb.WriteByte(' ')
	sb.WriteString(m.TypeTags())

	for _, arg := range m.Arguments {
		switch arg := arg.(type) {
		case Int32, Float32:
			fmt.Fprintf(&sb, " %v", arg)
		case String:
			fmt.Fprintf(&sb, " %q", string(arg))
		case Blob:
			fmt.Fprintf(&sb, " blob(%d)", len(arg))
		}
	}

	return sb.String()
}

// EncodeMessage returns the wire encoding of m:
// 1. OSC Address Pattern
// 2. OSC Type Tag String
// 3. OSC Arguments
func EncodeMessage(m *Message) []byte {
	return AppendMessage(nil, m)
}

// AppendMessage appends the wire encoding of m to dst and returns the extended slice.
func AppendMessage(dst []byte, m *Message) []byte {
	dst = appendPaddedString(dst, m.Address)

	start := len(dst)
	dst = appendTypeTags(dst, m.Arguments)
	dst = append(dst, 0)
	dst = appendPadding(dst, len(dst)-start)

	for _, arg := range m.Arguments {
		dst = arg.appendTo(dst)
	}
	return dst
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The error is
// always nil.
func (m *Message) MarshalBinary() ([]byte, error) {
	return EncodeMessage(m), nil
}

func (*Message) packet() {}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. The
// decoded address and arguments are copies, so data may be reused afterwards.
// data must hold exactly one message.
func (m *Message) UnmarshalBinary(data []byte) error {
	d := Decoder{Copy: true}
	msg, n, err := d.DecodeMessage(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("UnmarshalBinary: %d of %d bytes used: %w", n, len(data), ErrTrailingBytes)
	}
	*m = *msg
	return nil
}

// IsPlausibleAddress reports whether addr looks like an OSC address: non-empty
// and starting with '/'. The codec itself accepts any address.
func IsPlausibleAddress(addr string) bool {
	return len(addr) > 0 && addr[0] == '/'
}
