package harness

import (
	"fmt"
	"math/rand/v2"
)

// MaxInput is the exclusive upper bound of generated input values.
const MaxInput = 255

// NewInput returns size values drawn uniformly from [0, MaxInput). The
// same non-zero seed always yields the same sequence; a zero seed draws a
// fresh one, which is returned so the run can be replayed.
func NewInput(size int, seed uint64) ([]int, uint64, error) {
	if size <= 0 {
		return nil, 0, fmt.Errorf("%w: size %d", ErrEmptyInput, size)
	}
	for seed == 0 {
		seed = rand.Uint64()
	}
	r := rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
	input := make([]int, size)
	for i := range input {
		input[i] = r.IntN(MaxInput)
	}
	return input, seed, nil
}
