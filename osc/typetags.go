package osc

// TypeTag is the wire letter of an argument type.
type TypeTag byte

const (
	TypeInt32   TypeTag = 'i'
	TypeFloat32 TypeTag = 'f'
	TypeString  TypeTag = 's'
	TypeBlob    TypeTag = 'b'
)

// Argument is an OSC 1.0 argument. It is implemented by Int32, Float32, String
// and Blob only.
type Argument interface {
	// TypeTag returns the wire letter of the argument.
	TypeTag() TypeTag
	appendTo(dst []byte) []byte
}

// Int32 is a 32-bit big-endian two's complement integer ('i').
type Int32 int32

// Float32 is a 32-bit big-endian IEEE 754 float ('f').
type Float32 float32

// String is a NUL terminated, padded UTF-8 string ('s').
type String string

// Blob is a length prefixed, padded run of raw bytes ('b').
type Blob []byte

func (Int32) TypeTag() TypeTag   { return TypeInt32 }
func (Float32) TypeTag() TypeTag { return TypeFloat32 }
func (String) TypeTag() TypeTag  { return TypeString }
func (Blob) TypeTag() TypeTag    { return TypeBlob }

func (a Int32) appendTo(dst []byte) []byte   { return appendInt32(dst, int32(a)) }
func (a Float32) appendTo(dst []byte) []byte { return appendFloat32(dst, float32(a)) }
func (a String) appendTo(dst []byte) []byte  { return appendPaddedString(dst, string(a)) }
func (a Blob) appendTo(dst []byte) []byte    { return appendBlob(dst, a) }

// appendTypeTags appends the type tag string for args, without the NUL
// terminator or padding.
func appendTypeTags(dst []byte, args []Argument) []byte {
	dst = append(dst, ',')
	for _, arg := range args {
		dst = append(dst, byte(arg.TypeTag()))
	}
	return dst
}
