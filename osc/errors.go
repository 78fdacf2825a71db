package osc

import "errors"

// Decoding errors. Callers should compare with errors.Is, since the codec wraps
// them with positional context.
var (
	// ErrTruncated is returned when the data ends before a padded string or a
	// fixed-size field (bundle time tag, bundle element) is complete.
	ErrTruncated = errors.New("osc: truncated data")
	// ErrUnexpectedEOF is returned when a numeric argument or a blob needs more
	// bytes than remain.
	ErrUnexpectedEOF = errors.New("osc: unexpected end of data")
	// ErrInvalidString is returned for strings that are not valid UTF-8 and for
	// bundles whose leading tag is not "#bundle".
	ErrInvalidString = errors.New("osc: invalid string")
	// ErrInvalidTag is returned for malformed type tag strings, unknown type
	// tags and bundle elements that do not consume exactly their declared size.
	ErrInvalidTag = errors.New("osc: invalid type tag")
	// ErrDepthExceeded is returned when bundles nest deeper than Decoder.MaxDepth.
	ErrDepthExceeded = errors.New("osc: bundle nesting too deep")
	// ErrTrailingBytes is returned when a whole packet was expected but bytes
	// remain after it.
	ErrTrailingBytes = errors.New("osc: trailing bytes after packet")
)
