// Package radiuscore implements the dictionary, wire-type codec and
// message assembly that make up a RADIUS Accounting-Request.
package radiuscore

import (
	"bytes"
	"fmt"
)

// TypeTag is the closed set of wire types a dictionary ATTRIBUTE can declare.
type TypeTag int

const (
	TypeNone TypeTag = iota
	TypeString
	TypeOctets
	TypeIPAddr
	TypeIPv6Addr
	TypeIPv6Prefix
	TypeEther
	TypeDate
	TypeInteger
	TypeSigned
	TypeShort
	TypeByte
	TypeTLV
)

// String renders the tag the way it appears in a FreeRADIUS dictionary file.
func (t TypeTag) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeOctets:
		return "octets"
	case TypeIPAddr:
		return "ipaddr"
	case TypeIPv6Addr:
		return "ipv6addr"
	case TypeIPv6Prefix:
		return "ipv6prefix"
	case TypeEther:
		return "ether"
	case TypeDate:
		return "date"
	case TypeInteger:
		return "integer"
	case TypeSigned:
		return "signed"
	case TypeShort:
		return "short"
	case TypeByte:
		return "byte"
	case TypeTLV:
		return "tlv"
	default:
		return "none"
	}
}

// ParseTypeTag maps a dictionary type-field token to a TypeTag.
func ParseTypeTag(token string) (TypeTag, error) {
	switch token {
	case "string":
		return TypeString, nil
	case "octets":
		return TypeOctets, nil
	case "ipaddr":
		return TypeIPAddr, nil
	case "ipv6addr":
		return TypeIPv6Addr, nil
	case "ipv6prefix":
		return TypeIPv6Prefix, nil
	case "ether":
		return TypeEther, nil
	case "date":
		return TypeDate, nil
	case "integer":
		return TypeInteger, nil
	case "signed":
		return TypeSigned, nil
	case "short":
		return TypeShort, nil
	case "byte":
		return TypeByte, nil
	case "tlv":
		return TypeTLV, nil
	default:
		return TypeNone, &UnknownTypeError{Tag: token}
	}
}

// WireValue is the operation set every parsed attribute value supports:
// report its on-the-wire length and serialize itself.
type WireValue interface {
	ByteLen() int
	Encode(out *bytes.Buffer)
}

// Equal reports whether two WireValues hold the same parsed value. Used to
// validate an AVP against a dictionary's enumerated_values, which compares
// by parsed value rather than by label (spec 4.3).
func Equal(a, b WireValue) bool {
	switch av := a.(type) {
	case NumericValue:
		bv, ok := b.(NumericValue)
		return ok && av.Value == bv.Value
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && string(av) == string(bv)
	case OctetsValue:
		bv, ok := b.(OctetsValue)
		return ok && bytes.Equal([]byte(av), []byte(bv))
	case AddressValue:
		bv, ok := b.(AddressValue)
		return ok && av.IP.Equal(bv.IP)
	case IPv6PrefixValue:
		bv, ok := b.(IPv6PrefixValue)
		return ok && av.Mask == bv.Mask && av.Addr == bv.Addr
	case EtherValue:
		bv, ok := b.(EtherValue)
		return ok && av == bv
	case DateValue:
		bv, ok := b.(DateValue)
		return ok && av.Seconds == bv.Seconds
	case TLVValue:
		bv, ok := b.(TLVValue)
		return ok && av.Type == bv.Type && bytes.Equal(av.Value, bv.Value)
	default:
		return false
	}
}

// ParseByTag parses literal text into the WireValue variant for tag.
// chunkCount declares the initial chunk count for numeric types (byte,
// short, integer, signed); it is widened automatically if the value does
// not fit, and is ignored for every other tag.
func ParseByTag(tag TypeTag, literal string, chunkCount int) (WireValue, error) {
	switch tag {
	case TypeString:
		return ParseString(literal)
	case TypeOctets:
		return ParseOctets(literal)
	case TypeIPAddr, TypeIPv6Addr:
		return ParseAddress(literal, tag == TypeIPv6Addr)
	case TypeIPv6Prefix:
		return ParseIPv6Prefix(literal)
	case TypeEther:
		return ParseEther(literal)
	case TypeDate:
		return ParseDate(literal)
	case TypeInteger, TypeSigned:
		return ParseNumeric(literal, 4, chunkCount)
	case TypeShort:
		return ParseNumeric(literal, 2, chunkCount)
	case TypeByte:
		return ParseNumeric(literal, 1, chunkCount)
	case TypeTLV:
		return ParseTLV(literal)
	default:
		return nil, &UnknownTypeError{Tag: tag.String()}
	}
}

// ContainerValue concatenates several WireValues into one on the wire.
type ContainerValue []WireValue

func (c ContainerValue) ByteLen() int {
	n := 0
	for _, v := range c {
		n += v.ByteLen()
	}
	return n
}

func (c ContainerValue) Encode(out *bytes.Buffer) {
	for _, v := range c {
		v.Encode(out)
	}
}

func (c ContainerValue) String() string {
	return fmt.Sprintf("container(%d values)", len(c))
}
