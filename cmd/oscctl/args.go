package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chabad360/osc-codec/osc"
)

// parseArgument reads one command-line argument. A "i:", "f:", "s:" or "b:"
// prefix forces the type; blobs are hex. Bare values become int32, then
// float32, then string, whichever parses first.
func parseArgument(raw string) (osc.Argument, error) {
	if len(raw) >= 2 && raw[1] == ':' {
		val := raw[2:]
		switch raw[0] {
		case 'i':
			n, err := strconv.ParseInt(val, 0, 32)
			if err != nil {
				return nil, fmt.Errorf("int32 argument %q: %w", val, err)
			}
			return osc.Int32(n), nil
		case 'f':
			f, err := strconv.ParseFloat(val, 32)
			if err != nil {
				return nil, fmt.Errorf("float32 argument %q: %w", val, err)
			}
			return osc.Float32(f), nil
		case 's':
			return osc.String(val), nil
		case 'b':
			b, err := hex.DecodeString(val)
			if err != nil {
				return nil, fmt.Errorf("blob argument %q: %w", val, err)
			}
			if len(b) == 0 {
				return osc.Blob{}, nil
			}
			return osc.Blob(b), nil
		}
	}

	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return osc.Int32(n), nil
	}
	if f, err := strconv.ParseFloat(raw, 32); err == nil {
		return osc.Float32(f), nil
	}
	return osc.String(raw), nil
}

// parseArguments returns nil for no arguments, matching decoded messages.
func parseArguments(raw []string) ([]osc.Argument, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	args := make([]osc.Argument, 0, len(raw))
	for _, r := range raw {
		arg, err := parseArgument(r)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// parseTimetag accepts "immediate", "now", an RFC 3339 time, a Go duration
// offset from now such as "+500ms", or a raw 64-bit value.
func parseTimetag(raw string, now time.Time) (osc.Timetag, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "immediate":
		return osc.Immediate, nil
	case "now":
		return osc.NewTimetagFromTime(now), nil
	}
	if strings.HasPrefix(raw, "+") {
		d, err := time.ParseDuration(raw[1:])
		if err != nil {
			return 0, fmt.Errorf("timetag offset %q: %w", raw, err)
		}
		return osc.NewTimetagFromTime(now.Add(d)), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return osc.NewTimetagFromTime(t), nil
	}
	v, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timetag %q", raw)
	}
	return osc.Timetag(v), nil
}

// buildPacket assembles the message described by address and args, wrapped
// in a bundle when bundle is set.
func buildPacket(address string, rawArgs []string, bundle bool, timetag string) (osc.Packet, error) {
	args, err := parseArguments(rawArgs)
	if err != nil {
		return nil, err
	}
	msg := osc.NewMessage(address, args...)
	if !bundle {
		return msg, nil
	}
	tt, err := parseTimetag(timetag, time.Now())
	if err != nil {
		return nil, err
	}
	return osc.NewBundle(tt, msg), nil
}
