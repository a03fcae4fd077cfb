package harness

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wiretype-benchmark/wiretype"
)

// ModeAverageTime is the only supported aggregation: mean time per call.
const ModeAverageTime = "avgt"

var (
	ErrInvalidConfig   = errors.New("invalid config")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrUnknownUnit     = errors.New("unknown time unit")
	ErrEmptyInput      = errors.New("empty input")
	ErrMismatch        = errors.New("strategy disagrees with canonical")
)

var units = map[string]time.Duration{
	"ns": time.Nanosecond,
	"us": time.Microsecond,
	"ms": time.Millisecond,
	"s":  time.Second,
}

// ParseUnit returns the duration one reporting unit stands for.
func ParseUnit(unit string) (time.Duration, error) {
	d, ok := units[strings.ToLower(unit)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return d, nil
}

type Config struct {
	WarmupIterations      int           `json:"warmupIterations" cbor:"warmup_iterations"`
	WarmupTime            time.Duration `json:"warmupTime" cbor:"warmup_time"`
	MeasurementIterations int           `json:"measurementIterations" cbor:"measurement_iterations"`
	MeasurementTime       time.Duration `json:"measurementTime" cbor:"measurement_time"`

	// InputSize is the length of the generated input sequence.
	InputSize int `json:"inputSize" cbor:"input_size"`
	// Seed makes the input reproducible. Zero draws a random seed.
	Seed uint64 `json:"seed" cbor:"seed"`

	Unit string `json:"unit" cbor:"unit"`
	Mode string `json:"mode" cbor:"mode"`

	// Strategies restricts the run to the named strategies, in order.
	// Empty means all of them.
	Strategies []string `json:"strategies,omitempty" cbor:"strategies,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		WarmupIterations:      5,
		WarmupTime:            time.Second,
		MeasurementIterations: 5,
		MeasurementTime:       time.Second,
		InputSize:             128,
		Unit:                  "ns",
		Mode:                  ModeAverageTime,
	}
}

func (c Config) Validate() error {
	switch {
	case c.WarmupIterations < 0:
		return fmt.Errorf("%w: negative warm-up iterations %d", ErrInvalidConfig, c.WarmupIterations)
	case c.WarmupIterations > 0 && c.WarmupTime <= 0:
		return fmt.Errorf("%w: warm-up time must be positive, got %s", ErrInvalidConfig, c.WarmupTime)
	case c.MeasurementIterations <= 0:
		return fmt.Errorf("%w: measurement iterations must be positive, got %d", ErrInvalidConfig, c.MeasurementIterations)
	case c.MeasurementTime <= 0:
		return fmt.Errorf("%w: measurement time must be positive, got %s", ErrInvalidConfig, c.MeasurementTime)
	case c.InputSize <= 0:
		return fmt.Errorf("%w: input size must be positive, got %d", ErrInvalidConfig, c.InputSize)
	case c.Mode != ModeAverageTime:
		return fmt.Errorf("%w: unsupported mode %q", ErrInvalidConfig, c.Mode)
	}
	if _, err := ParseUnit(c.Unit); err != nil {
		return err
	}
	_, err := c.selected()
	return err
}

func (c Config) selected() ([]wiretype.Strategy, error) {
	if len(c.Strategies) == 0 {
		return wiretype.Strategies(), nil
	}
	out := make([]wiretype.Strategy, 0, len(c.Strategies))
	for _, name := range c.Strategies {
		s, ok := wiretype.Lookup(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
		}
		out = append(out, s)
	}
	return out, nil
}
