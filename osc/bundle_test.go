package osc

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestBundle_MarshalBinary(t *testing.T) {
	for _, tt := range bundleTestCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.obj.MarshalBinary()
			if (err != nil) != tt.wantErr {
				t.Errorf("MarshalBinary() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.raw) {
				t.Errorf("MarshalBinary() got = % x, want % x", got, tt.raw)
			}
		})
	}
}

func TestBundle_UnmarshalBinary(t *testing.T) {
	for _, tt := range bundleTestCases {
		t.Run(tt.name, func(t *testing.T) {
			m := new(Bundle)
			if err := m.UnmarshalBinary(tt.raw); (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalBinary() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(m, tt.obj) {
				t.Errorf("UnmarshalBinary() got = %v, want %v", m, tt.obj)
			}
		})
	}
}

func TestEncodeBundle_EmptyImmediate(t *testing.T) {
	got := EncodeBundle(NewBundle(Immediate))
	want := []byte{'#', 'b', 'u', 'n', 'd', 'l', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 1}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeBundle() = % x, want % x", got, want)
	}

	b, n, err := DecodeBundle(got)
	if err != nil {
		t.Fatal(err)
	}
	if n != 16 || b.Timetag != Immediate || len(b.Elements) != 0 {
		t.Errorf("DecodeBundle() = %+v, %d", b, n)
	}
}

func TestBundle_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		bundle *Bundle
	}{
		{"nested", NewBundle(200,
			NewMessage("/control/stop"),
			NewBundle(100,
				NewMessage("/synth/freq", Float32(440)),
				NewMessage("/synth/amp", Float32(0.5))))},
		{"deeply_nested", NewBundle(100,
			NewBundle(200,
				NewBundle(300, NewMessage("/deep/message", String("nested")))))},
		{"mixed", NewBundle(50,
			NewMessage("/msg1", Int32(1)),
			NewBundle(150, NewMessage("/msg2", Int32(2))),
			NewMessage("/msg3", Int32(3)),
			NewBundle(250, NewMessage("/msg4", Int32(4))))},
		{"empty_nested", NewBundle(1, NewBundle(2), NewBundle(3, NewBundle(4)))},
		{"confusing_and_real", NewBundle(100,
			NewMessage("#bundle", String("confusing message")),
			NewBundle(200, NewMessage("/real/message", Float32(3.14))))},
		{"blobs", NewBundle(7,
			NewMessage("/blob", Blob{1, 2, 3}, Blob{}, Blob{9, 9, 9, 9}),
			NewMessage("/s", String("abc"), String("abcd")))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := EncodeBundle(tt.bundle)
			if len(raw)%4 != 0 {
				t.Errorf("encoded length %d is not 32-bit aligned", len(raw))
			}

			got, n, err := DecodeBundle(raw)
			if err != nil {
				t.Fatalf("DecodeBundle() error = %v", err)
			}
			if n != len(raw) {
				t.Errorf("DecodeBundle() consumed %d bytes, want %d", n, len(raw))
			}
			if !reflect.DeepEqual(got, tt.bundle) {
				t.Errorf("DecodeBundle() got = %v, want %v", got, tt.bundle)
			}
		})
	}
}

func TestDecodeBundle_MessageAddressedLikeBundle(t *testing.T) {
	for _, addr := range []string{
		"#bundle",
		"#bundle/sub/path",
		"#bundle_extended",
		"#bundled",
		"#bundle123",
	} {
		t.Run(addr, func(t *testing.T) {
			want := NewMessage(addr, Int32(123), String("not a bundle"))
			raw := EncodeBundle(NewBundle(100, want))

			got, _, err := DecodeBundle(raw)
			if err != nil {
				t.Fatalf("DecodeBundle() error = %v", err)
			}
			if len(got.Elements) != 1 {
				t.Fatalf("DecodeBundle() got %d elements, want 1", len(got.Elements))
			}
			msg, ok := got.Elements[0].(*Message)
			if !ok {
				t.Fatalf("element decoded as %T, want *Message", got.Elements[0])
			}
			if !reflect.DeepEqual(msg, want) {
				t.Errorf("element = %v, want %v", msg, want)
			}
		})
	}
}

// A message whose bytes also form a valid bundle is decoded as a bundle. The
// wire format cannot tell the two apart.
func TestDecodeBundle_AmbiguousElement(t *testing.T) {
	inner := EncodeMessage(pingMessage())
	payload := append([]byte(be32(uint32(len(inner)))), inner...)
	msg := NewMessage("#bundle", Blob(payload))

	got, _, err := DecodeBundle(EncodeBundle(NewBundle(1, msg)))
	if err != nil {
		t.Fatal(err)
	}
	nested, ok := got.Elements[0].(*Bundle)
	if !ok {
		t.Fatalf("element decoded as %T, want *Bundle", got.Elements[0])
	}
	// The tag string ",b" and the blob length became the time tag.
	if want := Timetag(0x2c620000_00000014); nested.Timetag != want {
		t.Errorf("nested time tag = %#x, want %#x", uint64(nested.Timetag), uint64(want))
	}
	if want := NewBundle(nested.Timetag, pingMessage()); !reflect.DeepEqual(nested, want) {
		t.Errorf("nested = %v, want %v", nested, want)
	}
}

func TestDecodeBundle_Errors(t *testing.T) {
	header := "#bundle" + zero + be64(1)
	tests := []struct {
		name    string
		raw     []byte
		wantErr []error
	}{
		{"empty", nil, []error{ErrTruncated}},
		{"wrong_tag", []byte("#bundlx" + zero + be64(1)), []error{ErrInvalidString}},
		{"message", []byte(pingRaw), []error{ErrInvalidString}},
		{"short_time_tag", []byte("#bundle" + zero + be32(0)), []error{ErrTruncated}},
		{"short_size", []byte(header + "\x00\x00"), []error{ErrUnexpectedEOF}},
		{"size_past_end", []byte(header + be32(32) + pingRaw), []error{ErrTruncated}},
		{"negative_size", []byte(header + be32(0xfffffff0) + pingRaw), []error{ErrTruncated}},
		{"size_too_small", []byte(header + be32(12) + pingRaw[:12]), []error{ErrInvalidTag, ErrUnexpectedEOF}},
		{"size_too_large", []byte(header + be32(20) + pingRaw + "\x00\x00\x00\x00"), []error{ErrInvalidTag}},
		{"zero_size", []byte(header + be32(0)), []error{ErrInvalidTag, ErrTruncated}},
		{"bad_element", []byte(header + be32(8) + "/a" + nulls(2) + "x" + nulls(3)), []error{ErrInvalidTag}},
		{"invalid_utf8_element", []byte(header + be32(8) + "/\xff" + nulls(2) + "," + nulls(3)), []error{ErrInvalidTag, ErrInvalidString}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := DecodeBundle(tt.raw)
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("DecodeBundle() error = %v, want %v", err, want)
				}
			}
			if got != nil || n != 0 {
				t.Errorf("DecodeBundle() returned partial result %v, %d", got, n)
			}
		})
	}
}

func TestDecodeBundle_TruncatedInput(t *testing.T) {
	for _, tt := range bundleTestCases {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeBundle(tt.raw[:len(tt.raw)-1])
			if !errors.Is(err, ErrTruncated) && !errors.Is(err, ErrUnexpectedEOF) {
				t.Errorf("DecodeBundle() error = %v, want truncation", err)
			}
		})
	}
}

func nestBundles(depth int) *Bundle {
	b := NewBundle(Timetag(depth), pingMessage())
	for i := depth - 1; i > 0; i-- {
		b = NewBundle(Timetag(i), b)
	}
	return b
}

func TestDecoder_MaxDepth(t *testing.T) {
	tests := []struct {
		name     string
		maxDepth int
		depth    int
		wantErr  bool
	}{
		{"default_at_limit", 0, DefaultMaxDepth, false},
		{"default_over_limit", 0, DefaultMaxDepth + 1, true},
		{"custom_at_limit", 3, 3, false},
		{"custom_over_limit", 3, 4, true},
		{"single", 1, 1, false},
		{"single_over", 1, 2, true},
		{"unlimited", -1, 200, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := nestBundles(tt.depth)
			d := Decoder{MaxDepth: tt.maxDepth}
			got, _, err := d.DecodeBundle(EncodeBundle(want))
			if tt.wantErr {
				if !errors.Is(err, ErrDepthExceeded) {
					t.Fatalf("DecodeBundle() error = %v, want %v", err, ErrDepthExceeded)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeBundle() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("DecodeBundle() got = %v, want %v", got, want)
			}
		})
	}
}

func TestBundle_Count(t *testing.T) {
	b := NewBundle(50,
		NewMessage("/msg1"),
		NewBundle(150, NewMessage("/msg2"), NewBundle(1, NewMessage("/msg3"))),
		NewMessage("/msg4"))
	messages, bundles := b.Count()
	if messages != 4 || bundles != 2 {
		t.Errorf("Count() = %d, %d; want 4, 2", messages, bundles)
	}
}

func TestBundle_Append(t *testing.T) {
	b := NewBundleWithTime(time.Now())
	b.Append(NewMessage("/a"), NewBundle(Immediate))
	if len(b.Elements) != 2 {
		t.Fatalf("Append() left %d elements, want 2", len(b.Elements))
	}
	if _, ok := b.Elements[1].(*Bundle); !ok {
		t.Errorf("element 1 is %T, want *Bundle", b.Elements[1])
	}
}

func TestIsBundleCandidate(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want bool
	}{
		{"bundle", []byte("#bundle" + zero + be64(1)), true},
		{"short", []byte("#bundle" + zero + be32(1)), false},
		{"message", []byte(pingRaw), false},
		{"prefixed_address", []byte("#bundled" + nulls(4) + "," + nulls(3) + nulls(4)), false},
		{"bundle_address", []byte(notABundleRaw), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBundleCandidate(tt.raw); got != tt.want {
				t.Errorf("isBundleCandidate() = %v, want %v", got, tt.want)
			}
		})
	}
}
