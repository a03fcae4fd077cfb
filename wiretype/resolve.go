package wiretype

// Resolver maps a raw code to a wire type. Implementations must be pure.
type Resolver func(code int) WireType

// Table8 covers every value of a 3-bit code. Table6 stops at the highest
// defined code, 5.
type (
	Table8 [8]WireType
	Table6 [6]WireType
)

// Written once during package init, read-only afterwards.
var (
	table8 = BuildTable8()
	table6 = BuildTable6()
)

// BuildTable8 evaluates Canonical for every index of a fresh Table8.
func BuildTable8() Table8 {
	var t Table8
	for i := range t {
		t[i] = Canonical(i)
	}
	return t
}

// BuildTable6 evaluates Canonical for every index of a fresh Table6.
func BuildTable6() Table6 {
	var t Table6
	for i := range t {
		t[i] = Canonical(i)
	}
	return t
}

// Tables returns copies of the process-wide lookup tables.
func Tables() (Table8, Table6) {
	return table8, table6
}

// Switch compares code against each known code in turn.
func Switch(code int) WireType {
	switch code {
	case 0:
		return Varint
	case 1:
		return Fixed64
	case 2:
		return LengthDelimited
	case 5:
		return Fixed32
	default:
		return Invalid
	}
}

// Dense8 indexes the 8-entry table. Codes outside [0,8) are Invalid.
func Dense8(code int) WireType {
	// negative codes wrap to huge unsigned values
	if uint(code) >= uint(len(table8)) {
		return Invalid
	}
	return table8[code]
}

// Dense6 indexes the 6-entry table. Codes outside [0,6) are Invalid.
func Dense6(code int) WireType {
	if uint(code) >= uint(len(table6)) {
		return Invalid
	}
	return table6[code]
}

// Masked indexes the 8-entry table with the low three bits of code and
// skips the bounds check. Codes outside [0,8) alias: Masked(8) is Varint.
func Masked(code int) WireType {
	return table8[code&7]
}

// Strategy is a named Resolver. Masking strategies expect the raw input
// value rather than its low three bits.
type Strategy struct {
	Name    string
	Resolve Resolver
	Masking bool
}

var strategies = [...]Strategy{
	{Name: "canonical", Resolve: Canonical},
	{Name: "switch", Resolve: Switch},
	{Name: "dense8", Resolve: Dense8},
	{Name: "dense6", Resolve: Dense6},
	{Name: "masked", Resolve: Masked, Masking: true},
}

// Strategies lists every resolver, reference first.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies[:])
	return out
}

func Lookup(name string) (Strategy, bool) {
	for _, s := range strategies {
		if s.Name == name {
			return s, true
		}
	}
	return Strategy{}, false
}
