package wiretype

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrMalformedKey    = errors.New("malformed field key")
	ErrUnknownWireType = errors.New("unknown wire type")
)

// DecodeKey consumes one varint field key from the front of b and returns
// its field number, wire type and length in bytes.
//
// The wire type is resolved with Dense8, so the deprecated group types
// come back as Invalid together with ErrUnknownWireType.
func DecodeKey(b []byte) (protowire.Number, WireType, int, error) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return 0, Invalid, 0, fmt.Errorf("%w: %w", ErrMalformedKey, protowire.ParseError(n))
	}
	w := Dense8(int(typ))
	if w == Invalid {
		return num, Invalid, n, fmt.Errorf("%w: %d", ErrUnknownWireType, typ)
	}
	return num, w, n, nil
}

// AppendKey appends the field key for num and w to b.
func AppendKey(b []byte, num protowire.Number, w WireType) ([]byte, error) {
	typ, ok := w.Proto()
	if !ok {
		return b, fmt.Errorf("%w: %s", ErrUnknownWireType, w)
	}
	return protowire.AppendTag(b, num, typ), nil
}
