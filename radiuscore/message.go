package radiuscore

import (
	"bytes"
	"crypto/md5"

	"golang.org/x/exp/slices"
)

// AccountingRequest is the default Message.Code (RFC 2866).
const AccountingRequest byte = 4

// Message is a RADIUS accounting packet under assembly: fixed header plus
// an ordered AVP list. AVPs appear on the wire in exactly insertion order
// (spec 5: "this ordering is observable to receivers and must be
// preserved").
type Message struct {
	Code       byte
	Identifier byte
	Secret     string
	AVPs       []*AVP
	length     int
}

// NewMessage starts an empty message. length starts at 20, the fixed
// header size (spec 4.4).
func NewMessage(secret string, code byte) *Message {
	return &Message{
		Code:   code,
		Secret: secret,
		length: 20,
	}
}

// AddAVP appends avp, updating the running length. Rejects nil and any AVP
// whose own length would overflow.
func (m *Message) AddAVP(avp *AVP) error {
	if avp == nil {
		return &LengthOverflowError{What: "nil avp", Size: 0, Max: 255}
	}
	n := avp.Len()
	if n > 255 {
		return &LengthOverflowError{What: "avp " + avp.Def.Name, Size: n, Max: 255}
	}
	m.AVPs = append(m.AVPs, avp)
	m.length += n
	if m.length > 65535 {
		return &LengthOverflowError{What: "message", Size: m.length, Max: 65535}
	}
	return nil
}

// Copy returns a shallow clone of m with its own AVP slice, grounded on
// core/radius_packet.go's use of slices.Clone to hand out a packet without
// sharing the receiver's backing array.
func (m *Message) Copy() *Message {
	return &Message{
		Code:       m.Code,
		Identifier: m.Identifier,
		Secret:     m.Secret,
		AVPs:       slices.Clone(m.AVPs),
		length:     m.length,
	}
}

// Encode serializes the message, computing the Request Authenticator per
// RFC 2866 3: MD5(code || id || length || 16 zero bytes || AVPs || secret).
func (m *Message) Encode() ([]byte, error) {
	var avpBytes bytes.Buffer
	for _, avp := range m.AVPs {
		if err := avp.Encode(&avpBytes); err != nil {
			return nil, err
		}
	}

	total := 20 + avpBytes.Len()
	if total > 65535 {
		return nil, &LengthOverflowError{What: "message", Size: total, Max: 65535}
	}

	header := make([]byte, 20)
	header[0] = m.Code
	header[1] = m.Identifier
	header[2] = byte(total >> 8)
	header[3] = byte(total)

	hash := md5.New()
	hash.Write(header)
	hash.Write(avpBytes.Bytes())
	hash.Write([]byte(m.Secret))
	auth := hash.Sum(nil)
	copy(header[4:20], auth)

	out := make([]byte, 0, total)
	out = append(out, header...)
	out = append(out, avpBytes.Bytes()...)
	return out, nil
}
