package radiuscore

import (
	"bytes"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// AddressValue holds a parsed IPv4 (4 bytes) or IPv6 (16 bytes) address.
type AddressValue struct {
	IP net.IP
	V6 bool
}

// ParseAddress parses a dotted-quad IPv4 or colon-hex IPv6 literal.
// requireV6 rejects an address that does not parse as IPv6 (used for the
// "ipv6addr" tag, which is an alias of "ipaddr" constrained to IPv6 per
// spec 4.1).
func ParseAddress(literal string, requireV6 bool) (AddressValue, error) {
	ip := net.ParseIP(literal)
	if ip == nil {
		return AddressValue{}, &ParseError{Type: "ipaddr", Literal: literal, Reason: "invalid IP address"}
	}

	if v4 := ip.To4(); v4 != nil && !strings.Contains(literal, ":") {
		if requireV6 {
			return AddressValue{}, &ParseError{Type: "ipv6addr", Literal: literal, Reason: "not an IPv6 address"}
		}
		return AddressValue{IP: v4, V6: false}, nil
	}

	v6 := ip.To16()
	if v6 == nil {
		return AddressValue{}, &ParseError{Type: "ipaddr", Literal: literal, Reason: "invalid IP address"}
	}
	return AddressValue{IP: v6, V6: true}, nil
}

func (a AddressValue) ByteLen() int {
	if a.V6 {
		return 16
	}
	return 4
}

func (a AddressValue) Encode(out *bytes.Buffer) {
	if a.V6 {
		out.Write(a.IP.To16())
	} else {
		out.Write(a.IP.To4())
	}
}

// IPv6PrefixValue is the RFC-defined 18-byte encoding: one reserved zero
// byte, one mask-length byte, 16 address bytes (spec 4.1).
type IPv6PrefixValue struct {
	Mask uint8
	Addr [16]byte
}

// ParseIPv6Prefix accepts "addr" (mask defaults to 128) or "addr/mask"
// (mask clamped to 128).
func ParseIPv6Prefix(literal string) (IPv6PrefixValue, error) {
	addrPart := literal
	mask := 128
	if idx := strings.IndexByte(literal, '/'); idx >= 0 {
		addrPart = literal[:idx]
		m, err := strconv.Atoi(literal[idx+1:])
		if err != nil {
			return IPv6PrefixValue{}, &ParseError{Type: "ipv6prefix", Literal: literal, Reason: "invalid mask"}
		}
		if m > 128 {
			m = 128
		}
		if m < 0 {
			return IPv6PrefixValue{}, &ParseError{Type: "ipv6prefix", Literal: literal, Reason: "invalid mask"}
		}
		mask = m
	}

	ip := net.ParseIP(addrPart)
	if ip == nil || !strings.Contains(addrPart, ":") {
		return IPv6PrefixValue{}, &ParseError{Type: "ipv6prefix", Literal: literal, Reason: "invalid IPv6 address"}
	}
	v6 := ip.To16()
	if v6 == nil {
		return IPv6PrefixValue{}, &ParseError{Type: "ipv6prefix", Literal: literal, Reason: "invalid IPv6 address"}
	}

	var prefix IPv6PrefixValue
	prefix.Mask = uint8(mask)
	copy(prefix.Addr[:], v6)
	return prefix, nil
}

func (p IPv6PrefixValue) ByteLen() int { return 18 }

func (p IPv6PrefixValue) Encode(out *bytes.Buffer) {
	out.WriteByte(0x00)
	out.WriteByte(p.Mask)
	out.Write(p.Addr[:])
}

// EtherValue is a 6-byte MAC address.
type EtherValue [6]byte

// ParseEther accepts exactly six colon-separated hex bytes.
func ParseEther(literal string) (EtherValue, error) {
	parts := strings.Split(literal, ":")
	if len(parts) != 6 {
		return EtherValue{}, &ParseError{Type: "ether", Literal: literal, Reason: "expected six colon-separated hex bytes"}
	}
	var e EtherValue
	for i, p := range parts {
		b, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return EtherValue{}, &ParseError{Type: "ether", Literal: literal, Reason: fmt.Sprintf("invalid byte %q", p)}
		}
		e[i] = byte(b)
	}
	return e, nil
}

func (e EtherValue) ByteLen() int { return 6 }

func (e EtherValue) Encode(out *bytes.Buffer) {
	out.Write(e[:])
}
