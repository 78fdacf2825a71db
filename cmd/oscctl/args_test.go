package main

import (
	"reflect"
	"testing"
	"time"

	"github.com/chabad360/osc-codec/osc"
)

func TestParseArgument(t *testing.T) {
	tests := []struct {
		raw     string
		want    osc.Argument
		wantErr bool
	}{
		{"i:42", osc.Int32(42), false},
		{"i:0x10", osc.Int32(16), false},
		{"i:-7", osc.Int32(-7), false},
		{"f:0.5", osc.Float32(0.5), false},
		{"s:hello world", osc.String("hello world"), false},
		{"s:", osc.String(""), false},
		{"b:deadbeef", osc.Blob{0xde, 0xad, 0xbe, 0xef}, false},
		{"b:", osc.Blob{}, false},
		{"42", osc.Int32(42), false},
		{"1.25", osc.Float32(1.25), false},
		{"text", osc.String("text"), false},
		{"4294967296", osc.Float32(4294967296), false},
		{"x:y", osc.String("x:y"), false},
		{"i:nope", nil, true},
		{"i:4294967296", nil, true},
		{"f:abc", nil, true},
		{"b:xyz", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseArgument(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseArgument() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseArgument() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseArguments_Empty(t *testing.T) {
	args, err := parseArguments(nil)
	if err != nil || args != nil {
		t.Errorf("parseArguments(nil) = %#v, %v; want nil, nil", args, err)
	}
	decoded, _, err := osc.DecodeMessage(osc.EncodeMessage(osc.NewMessage("/ping")))
	if err != nil {
		t.Fatal(err)
	}
	built, err := buildPacket("/ping", []string{}, false, "")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(built, decoded) {
		t.Errorf("buildPacket() = %#v, want %#v", built, decoded)
	}
}

func TestParseTimetag(t *testing.T) {
	now := time.Unix(0, 0)
	tests := []struct {
		raw     string
		want    osc.Timetag
		wantErr bool
	}{
		{"", osc.Immediate, false},
		{"Immediate", osc.Immediate, false},
		{"now", 0x83aa7e80_00000000, false},
		{"+1s", 0x83aa7e81_00000000, false},
		{"1970-01-01T00:00:02Z", 0x83aa7e82_00000000, false},
		{"0x2a", 42, false},
		{"7", 7, false},
		{"+soon", 0, true},
		{"tomorrow", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseTimetag(tt.raw, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimetag() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseTimetag() = %#x, want %#x", uint64(got), uint64(tt.want))
			}
		})
	}
}

func TestBuildPacket(t *testing.T) {
	p, err := buildPacket("/ping", []string{"i:1"}, false, "")
	if err != nil {
		t.Fatal(err)
	}
	if want := osc.NewMessage("/ping", osc.Int32(1)); !reflect.DeepEqual(p, want) {
		t.Errorf("buildPacket() = %v, want %v", p, want)
	}

	p, err = buildPacket("/ping", nil, true, "immediate")
	if err != nil {
		t.Fatal(err)
	}
	if want := osc.NewBundle(osc.Immediate, osc.NewMessage("/ping")); !reflect.DeepEqual(p, want) {
		t.Errorf("buildPacket() = %v, want %v", p, want)
	}

	if _, err := buildPacket("/ping", []string{"i:x"}, false, ""); err == nil {
		t.Error("buildPacket() error = nil, want error")
	}
}
