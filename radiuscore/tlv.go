package radiuscore

import (
	"bytes"
	"strings"
)

// TLVValue is a single type/length/value triple: one type byte, one
// length byte, then the value bytes (spec 4.1 "tlv").
type TLVValue struct {
	Type  byte
	Value []byte
}

// ParseTLV accepts "type/value" where type is a 1-byte numeric (decimal or
// 0x-hex) and value is any numeric literal, grounded on
// original_source/libradi/radtypes.py TlvType.
func ParseTLV(literal string) (TLVValue, error) {
	typePart, valuePart, found := strings.Cut(literal, "/")
	if !found {
		return TLVValue{}, &ParseError{Type: "tlv", Literal: literal, Reason: "expected type/value format"}
	}

	typeNum, err := ParseNumeric(typePart, 1, 1)
	if err != nil {
		return TLVValue{}, &ParseError{Type: "tlv", Literal: literal, Reason: "type must be a single byte"}
	}
	if typeNum.ByteLen() != 1 {
		return TLVValue{}, &ParseError{Type: "tlv", Literal: literal, Reason: "type must be exactly one byte"}
	}

	valueNum, err := ParseNumeric(valuePart, 1, 1)
	if err != nil {
		return TLVValue{}, &ParseError{Type: "tlv", Literal: literal, Reason: err.Error()}
	}
	var buf bytes.Buffer
	valueNum.Encode(&buf)

	return TLVValue{Type: byte(typeNum.Value), Value: buf.Bytes()}, nil
}

func (t TLVValue) ByteLen() int {
	return 2 + len(t.Value)
}

func (t TLVValue) Encode(out *bytes.Buffer) {
	out.WriteByte(t.Type)
	out.WriteByte(byte(len(t.Value)))
	out.Write(t.Value)
}
