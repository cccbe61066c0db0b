package protocol

import (
	"math"
	"strconv"
)

// Field kind tags. Every canonicalized value starts with its kind
// tag, so an absent value can never collide with a legitimately
// empty string.
const (
	absentKind byte = 'x'
	stringKind byte = 's'
	uintKind   byte = 'u'
	floatKind  byte = 'f'
	bytesKind  byte = 'b'
)

const (
	// fieldSeparator joins the canonicalized values of one record.
	// It must never occur unescaped inside a value's payload.
	fieldSeparator byte = '|'
	escapeByte     byte = '\\'
)

// Field is one value of a record's ordered field list.
type Field struct {
	kind byte
	str  string
	num  uint64
	fnum float64
	raw  []byte
}

// AbsentField represents a missing value. It is distinct from an
// empty string or empty byte sequence.
func AbsentField() Field { return Field{kind: absentKind} }

// StringField wraps a string value.
func StringField(s string) Field { return Field{kind: stringKind, str: s} }

// UintField wraps an unsigned integer value.
func UintField(u uint64) Field { return Field{kind: uintKind, num: u} }

// FloatField wraps a float value. Non-finite values are rejected at
// canonicalization time.
func FloatField(f float64) Field { return Field{kind: floatKind, fnum: f} }

// BytesField wraps an opaque byte sequence, embedded verbatim
// (escaped, never re-encoded).
func BytesField(b []byte) Field { return Field{kind: bytesKind, raw: b} }

// Canonicalize serializes an ordered field list into the byte form
// covered by the Merkle commitment. The encoding is total and
// deterministic: the same logical field list yields bit-identical
// output on every call and every platform.
func Canonicalize(fields []Field) ([]byte, error) {
	var buf []byte
	for i, f := range fields {
		if i > 0 {
			buf = append(buf, fieldSeparator)
		}
		enc, err := f.encode()
		if err != nil {
			return nil, err
		}
		buf = append(buf, enc...)
	}
	return buf, nil
}

func (f Field) encode() ([]byte, error) {
	switch f.kind {
	case absentKind:
		return []byte{absentKind}, nil
	case stringKind:
		return appendEscaped([]byte{stringKind}, []byte(f.str)), nil
	case uintKind:
		return strconv.AppendUint([]byte{uintKind}, f.num, 10), nil
	case floatKind:
		if math.IsNaN(f.fnum) || math.IsInf(f.fnum, 0) {
			return nil, ErrMalformedField
		}
		// shortest decimal form that parses back exactly
		return strconv.AppendFloat([]byte{floatKind}, f.fnum, 'g', -1, 64), nil
	case bytesKind:
		return appendEscaped([]byte{bytesKind}, f.raw), nil
	default:
		return nil, ErrMalformedField
	}
}

// appendEscaped appends src to dst, escaping the field separator and
// the escape byte itself.
func appendEscaped(dst, src []byte) []byte {
	for _, c := range src {
		if c == fieldSeparator || c == escapeByte {
			dst = append(dst, escapeByte)
		}
		dst = append(dst, c)
	}
	return dst
}
