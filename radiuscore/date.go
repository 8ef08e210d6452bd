package radiuscore

import (
	"bytes"
	"encoding/binary"
	"strconv"
)

// DateValue is a unix epoch truncated to whole seconds, encoded as a
// 4-byte unsigned integer (spec 4.1 "date").
type DateValue struct {
	Seconds uint32
}

// ParseDate accepts a decimal literal, optionally with a fractional part
// (nanoseconds are truncated, grounded on
// original_source/libradi/radtypes.py DateType: "int(float(value))").
func ParseDate(literal string) (DateValue, error) {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return DateValue{}, &ParseError{Type: "date", Literal: literal, Reason: "expected a unix timestamp"}
	}
	if f < 0 || f >= 4294967295 {
		return DateValue{}, &ParseError{Type: "date", Literal: literal, Reason: "out of range for a 32-bit epoch"}
	}
	return DateValue{Seconds: uint32(f)}, nil
}

func (d DateValue) ByteLen() int { return 4 }

func (d DateValue) Encode(out *bytes.Buffer) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], d.Seconds)
	out.Write(b[:])
}
