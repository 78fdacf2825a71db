package osc

import "encoding/binary"

const zero = string(byte(0))

// nulls returns a string of `i` nulls.
func nulls(i int) string {
	s := ""
	for j := 0; j < i; j++ {
		s += zero
	}
	return s
}

// be32 returns the big-endian encoding of v as a string.
func be32(v uint32) string {
	return string(binary.BigEndian.AppendUint32(nil, v))
}

// be64 returns the big-endian encoding of v as a string.
func be64(v uint64) string {
	return string(binary.BigEndian.AppendUint64(nil, v))
}

type testCase struct {
	name    string
	obj     Packet
	raw     []byte
	wantErr bool
}

const (
	pingRaw        = "/ping" + zero + zero + zero + "," + "i" + zero + zero + zero + zero + zero + "\x01"
	controlStopRaw = "/control/stop" + zero + zero + zero + "," + zero + zero + zero
	notABundleRaw  = "#bundle" + zero + ",s" + zero + zero + "not a bundle" + zero + zero + zero + zero
)

func pingMessage() *Message { return NewMessage("/ping", Int32(1)) }

var messageTestCases = []testCase{
	{"ping", pingMessage(), []byte(pingRaw), false},
	{"no_arguments", NewMessage("/x"), []byte("/x" + nulls(2) + "," + nulls(3)), false},
	{"float32", NewMessage("/f", Float32(0.5)), []byte("/f" + nulls(2) + ",f" + nulls(2) + "\x3f" + nulls(3)), false},
	{"negative_int32", NewMessage("/n", Int32(-1)), []byte("/n" + nulls(2) + ",i" + nulls(2) + "\xff\xff\xff\xff"), false},
	{"string", NewMessage("/s", String("hello")), []byte("/s" + nulls(2) + ",s" + nulls(2) + "hello" + nulls(3)), false},
	{"empty_string", NewMessage("/s", String("")), []byte("/s" + nulls(2) + ",s" + nulls(2) + nulls(4)), false},
	{"blob", NewMessage("/blob", Blob{1, 2, 3, 4, 5}), []byte("/blob" + nulls(3) + ",b" + nulls(2) + be32(5) + "\x01\x02\x03\x04\x05" + nulls(3)), false},
	{"empty_blob", NewMessage("/e", Blob{}), []byte("/e" + nulls(2) + ",b" + nulls(2) + be32(0)), false},
	{"mixed", NewMessage("/synth/volume", Float32(0.5), String("foo"), Int32(42)),
		[]byte("/synth/volume" + nulls(3) + ",fsi" + nulls(4) + "\x3f" + nulls(3) + "foo" + zero + be32(42)), false},
	{"bundle_address", NewMessage("#bundle", String("not a bundle")), []byte(notABundleRaw), false},
	{"bundle_prefixed_address", NewMessage("#bundle/sub/path", Int32(123)),
		[]byte("#bundle/sub/path" + nulls(4) + ",i" + nulls(2) + be32(123)), false},
}

var bundleTestCases = []testCase{
	{"empty_immediate", NewBundle(Immediate), []byte("#bundle" + zero + be64(1)), false},
	{"one_message", NewBundle(42, pingMessage()), []byte("#bundle" + zero + be64(42) + be32(16) + pingRaw), false},
	{"nested",
		NewBundle(200, NewMessage("/control/stop"), NewBundle(100, pingMessage())),
		[]byte("#bundle" + zero + be64(200) +
			be32(20) + controlStopRaw +
			be32(36) + "#bundle" + zero + be64(100) + be32(16) + pingRaw),
		false},
	{"bundle_address_message",
		NewBundle(42, NewMessage("#bundle", String("not a bundle"))),
		[]byte("#bundle" + zero + be64(42) + be32(28) + notABundleRaw),
		false},
}
