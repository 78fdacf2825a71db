package osc

import (
	"time"
)

const (
	// Immediate is the reserved time tag meaning "apply immediately". The codec
	// treats it like any other value.
	Immediate = Timetag(1)

	secondsFrom1900To1970 = 2208988800
)

// Timetag represents an OSC Time Tag.
// An OSC Time Tag is defined as follows:
// Time tags are represented by a 64 bit fixed point number. The first 32 bits
// specify the number of seconds since midnight on January 1, 1900, and the
// last 32 bits specify fractional parts of a second to a precision of about
// 200 picoseconds. This is the representation used by Internet NTP timestamps.
type Timetag uint64

// NewTimetagFromTime returns a new OSC time tag object from a time.Time.
func NewTimetagFromTime(timeStamp time.Time) Timetag {
	return timeToTimetag(timeStamp)
}

// Time returns the time.
func (t Timetag) Time() time.Time {
	return timetagToTime(t)
}

// Fraction returns the last 32 bits of the OSC time tag. Specifies the
// fractional part of a second.
func (t Timetag) Fraction() uint32 {
	return uint32(t)
}

// Seconds returns the first 32 bits (the number of seconds since the
// midnight 1900) from the OSC time tag.
func (t Timetag) Seconds() uint32 {
	return uint32(t >> 32)
}

// IsImmediate reports whether t is the reserved "immediately" value.
func (t Timetag) IsImmediate() bool {
	return t == Immediate
}

// ExpiresIn calculates the duration until the current time is the same as the
// value of the time tag. It returns zero if the value of the time tag is in
// the past or immediate.
func (t Timetag) ExpiresIn() time.Duration {
	if t <= Immediate {
		return 0
	}

	d := time.Until(timetagToTime(t))
	if d <= 0 {
		return 0
	}

	return d
}

// timeToTimetag converts the given time to an OSC time tag. The fractional
// part is nanoseconds scaled to 1/2^32 of a second.
func timeToTimetag(t time.Time) Timetag {
	secs := uint64(t.Unix()+secondsFrom1900To1970) << 32
	frac := (uint64(t.Nanosecond()) << 32) / uint64(time.Second)
	return Timetag(secs + frac)
}

// timetagToTime converts the given timetag to a time object.
func timetagToTime(t Timetag) time.Time {
	nsec := (uint64(t.Fraction()) * uint64(time.Second)) >> 32
	return time.Unix(int64(t.Seconds())-secondsFrom1900To1970, int64(nsec))
}
