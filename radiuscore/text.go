package radiuscore

import (
	"bytes"
	"strings"
)

// StringValue is non-empty UTF-8/opaque text (spec 4.1 "string"). Empty
// input is a parse error per RFC 2866.
type StringValue string

func ParseString(literal string) (StringValue, error) {
	if literal == "" {
		return "", &ParseError{Type: "string", Literal: literal, Reason: "empty strings are not allowed (rfc2866)"}
	}
	return StringValue(literal), nil
}

func (s StringValue) ByteLen() int { return len(s) }

func (s StringValue) Encode(out *bytes.Buffer) {
	out.WriteString(string(s))
}

// OctetsValue holds a numeric literal chunked to fit, grounded on
// original_source/libradi/radtypes.py where "octets" aliases ByteType, not
// TextType (spec 9 open question, resolved against that source). This is a
// real behavioral divergence from "string": a hex literal like "0xABCD"
// parses as the two raw bytes 0xAB 0xCD here, not as the six ASCII
// characters "0xABCD".
type OctetsValue []byte

func ParseOctets(literal string) (OctetsValue, error) {
	trimmed := strings.TrimSpace(literal)
	if trimmed == "" {
		return nil, &ParseError{Type: "octets", Literal: literal, Reason: "empty octets are not allowed"}
	}
	nv, err := ParseNumeric(trimmed, 1, 1)
	if err != nil {
		return nil, &ParseError{Type: "octets", Literal: literal, Reason: err.Error()}
	}
	var buf bytes.Buffer
	nv.Encode(&buf)
	return OctetsValue(buf.Bytes()), nil
}

func (o OctetsValue) ByteLen() int { return len(o) }

func (o OctetsValue) Encode(out *bytes.Buffer) {
	out.Write([]byte(o))
}
