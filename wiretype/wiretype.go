// Package wiretype maps the three low bits of a protobuf field key onto a
// closed set of wire types, several different ways.
//
// Canonical is the reference: every other resolver must agree with it for
// any code in its domain. Masked is the exception, it trades the bounds
// check for aliasing of codes outside [0,8).
package wiretype

import "google.golang.org/protobuf/encoding/protowire"

// WireType is one of the protobuf wire types this package knows about.
type WireType uint8

const (
	Invalid WireType = iota
	Varint
	Fixed64
	LengthDelimited
	Fixed32
)

// Order matters: Canonical scans it front to back.
var variants = [...]WireType{Invalid, Varint, Fixed64, LengthDelimited, Fixed32}

var codes = [...]int{
	Invalid:         -1,
	Varint:          0,
	Fixed64:         1,
	LengthDelimited: 2,
	Fixed32:         5,
}

var names = [...]string{
	Invalid:         "INVALID",
	Varint:          "VARINT",
	Fixed64:         "FIXED64",
	LengthDelimited: "LENGTH_DELIMITED",
	Fixed32:         "FIXED32",
}

// All returns every variant, Invalid included, in declaration order.
func All() []WireType {
	out := make([]WireType, len(variants))
	copy(out, variants[:])
	return out
}

// Code returns the integer carried on the wire for w, or -1 for Invalid.
func (w WireType) Code() int {
	if int(w) >= len(codes) {
		return -1
	}
	return codes[w]
}

func (w WireType) Valid() bool {
	return w != Invalid && int(w) < len(variants)
}

func (w WireType) String() string {
	if int(w) >= len(names) {
		return names[Invalid]
	}
	return names[w]
}

// Canonical walks every variant and returns the first one whose code is
// code. It is deliberately the slowest resolver.
func Canonical(code int) WireType {
	for _, w := range variants {
		if w.Code() == code {
			return w
		}
	}
	return Invalid
}

// Proto converts w to its protowire equivalent.
func (w WireType) Proto() (protowire.Type, bool) {
	if !w.Valid() {
		return 0, false
	}
	return protowire.Type(w.Code()), true
}

// FromProto is the inverse of Proto. Group types resolve to Invalid.
func FromProto(t protowire.Type) WireType {
	return Dense8(int(t))
}
