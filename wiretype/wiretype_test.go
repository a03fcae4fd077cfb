package wiretype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestCodes(t *testing.T) {
	tests := []struct {
		w    WireType
		code int
		name string
	}{
		{Varint, 0, "VARINT"},
		{Fixed64, 1, "FIXED64"},
		{LengthDelimited, 2, "LENGTH_DELIMITED"},
		{Fixed32, 5, "FIXED32"},
		{Invalid, -1, "INVALID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.w.Code())
			assert.Equal(t, tt.name, tt.w.String())
			assert.Equal(t, tt.w != Invalid, tt.w.Valid())
		})
	}

	assert.Equal(t, "INVALID", WireType(42).String())
	assert.Equal(t, -1, WireType(42).Code())
	assert.False(t, WireType(42).Valid())
}

func TestAllIsACopy(t *testing.T) {
	all := All()
	require.Len(t, all, 5)
	all[0] = Fixed32
	assert.Equal(t, Invalid, All()[0])
}

func TestCanonical(t *testing.T) {
	for _, w := range All() {
		if !w.Valid() {
			continue
		}
		assert.Equal(t, w, Canonical(w.Code()))
	}
	for _, code := range []int{-1, 3, 4, 6, 7, 8, 255, -100} {
		assert.Equal(t, Invalid, Canonical(code), "code %d", code)
	}
}

func TestMatchesProtowire(t *testing.T) {
	expected := map[WireType]protowire.Type{
		Varint:          protowire.VarintType,
		Fixed64:         protowire.Fixed64Type,
		LengthDelimited: protowire.BytesType,
		Fixed32:         protowire.Fixed32Type,
	}
	for w, pt := range expected {
		got, ok := w.Proto()
		require.True(t, ok, w.String())
		assert.Equal(t, pt, got)
		assert.Equal(t, w, FromProto(pt))
	}

	_, ok := Invalid.Proto()
	assert.False(t, ok)
	assert.Equal(t, Invalid, FromProto(protowire.StartGroupType))
	assert.Equal(t, Invalid, FromProto(protowire.EndGroupType))
}
