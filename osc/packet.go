package osc

import (
	"encoding"
	"fmt"
)

// Packet is either a *Message or a *Bundle. No other implementations exist, so
// a type switch over those two cases is exhaustive.
type Packet interface {
	encoding.BinaryMarshaler
	packet()
}

// EncodePacket returns the wire encoding of p.
func EncodePacket(p Packet) []byte {
	return appendPacket(nil, p)
}

func appendPacket(dst []byte, p Packet) []byte {
	switch p := p.(type) {
	case *Message:
		return AppendMessage(dst, p)
	case *Bundle:
		return AppendBundle(dst, p)
	default:
		panic(fmt.Sprintf("osc: cannot encode packet of type %T", p))
	}
}

// ParsePacket decodes a complete packet, such as one UDP datagram, with the
// zero-value Decoder. The result borrows from data.
func ParsePacket(data []byte) (Packet, error) {
	return defaultDecoder.ParsePacket(data)
}

// DecodeMessage decodes one message from the start of data and returns it with
// the number of bytes consumed. The result borrows from data.
func DecodeMessage(data []byte) (*Message, int, error) {
	return defaultDecoder.DecodeMessage(data)
}

// DecodeBundle decodes one bundle spanning all of data and returns it with the
// number of bytes consumed. The result borrows from data.
func DecodeBundle(data []byte) (*Bundle, int, error) {
	return defaultDecoder.DecodeBundle(data)
}
