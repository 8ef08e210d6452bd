package radiuscore

import "bytes"

// AVP is a RADIUS Attribute-Value Pair bound to the AttributeDef that
// defines it. SubAVPs is non-empty iff this AVP is a Vendor-Specific
// wrapper: Code is then 26, Value is the 4-byte vendor id, and SubAVPs
// holds exactly one child carrying the real attribute (spec 3).
type AVP struct {
	Def     *AttributeDef
	Code    byte
	Value   WireValue
	SubAVPs []*AVP
}

// NewAVP builds an AVP for name using dict, wrapping it in a
// Vendor-Specific Attribute if the attribute belongs to a vendor. This is
// the only public entry point; VSA wrapping is implemented by newAVP with
// an explicit allowVSAWrap flag rather than unbounded recursion (spec 9:
// "AVP VSA recursion... model as a helper constructor").
func NewAVP(dict *Dictionary, name, literal string) (*AVP, error) {
	return newAVP(dict, name, literal, true)
}

func newAVP(dict *Dictionary, name, literal string, allowVSAWrap bool) (*AVP, error) {
	def, err := dict.FindAttribute(name)
	if err != nil {
		return nil, err
	}

	if allowVSAWrap && def.Vendor != nil {
		vsaDef, err := dict.FindAttribute("vendor-specific")
		if err != nil {
			return nil, err
		}
		child, err := newAVP(dict, name, literal, false)
		if err != nil {
			return nil, err
		}
		vendorIDValue := NumericValue{Value: uint64(def.Vendor.ID), ChunkBytes: 4, ChunkCount: 1}
		vendorIDValue.adjustLength()
		return &AVP{
			Def:     vsaDef,
			Code:    vsaDef.Code,
			Value:   vendorIDValue,
			SubAVPs: []*AVP{child},
		}, nil
	}

	value, err := ParseByTag(def.WireType, literal, 1)
	if err != nil {
		return nil, err
	}
	if !def.ResolveEnum(value) {
		return nil, &DisallowedValueError{Attribute: def.Name, Literal: literal}
	}

	return &AVP{Def: def, Code: def.Code, Value: value}, nil
}

// Len is the total on-the-wire size of this AVP, consistent with Encode
// (spec 4.3: "this function is used by the message assembler and must
// remain consistent with encode").
func (a *AVP) Len() int {
	n := 2 + a.Value.ByteLen()
	for _, sub := range a.SubAVPs {
		n += sub.Len()
	}
	return n
}

// Encode appends this AVP's wire bytes to out. Returns LengthOverflowError
// if the total length does not fit the one-byte length field.
func (a *AVP) Encode(out *bytes.Buffer) error {
	total := a.Len()
	if total > 255 {
		return &LengthOverflowError{What: "avp " + a.Def.Name, Size: total, Max: 255}
	}
	out.WriteByte(a.Code)
	out.WriteByte(byte(total))
	a.Value.Encode(out)
	for _, sub := range a.SubAVPs {
		if err := sub.Encode(out); err != nil {
			return err
		}
	}
	return nil
}
