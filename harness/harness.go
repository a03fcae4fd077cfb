// Package harness times every wire-type resolver over the same input
// sequence and reports the average cost of a single call.
package harness

import (
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"wiretype-benchmark/wiretype"
)

// Passes run between two clock reads.
const batch = 64

// sink keeps the folded results alive so the calls are not dead code.
var sink wiretype.WireType

// A pass resolves every element of input once and folds the results.
type pass func(input []int) wiretype.WireType

// Direct calls, so each resolver can be inlined into its own loop.
var passes = map[string]pass{
	"canonical": func(input []int) (acc wiretype.WireType) {
		for _, v := range input {
			acc ^= wiretype.Canonical(v & 7)
		}
		return acc
	},
	"switch": func(input []int) (acc wiretype.WireType) {
		for _, v := range input {
			acc ^= wiretype.Switch(v & 7)
		}
		return acc
	},
	"dense8": func(input []int) (acc wiretype.WireType) {
		for _, v := range input {
			acc ^= wiretype.Dense8(v & 7)
		}
		return acc
	},
	"dense6": func(input []int) (acc wiretype.WireType) {
		for _, v := range input {
			acc ^= wiretype.Dense6(v & 7)
		}
		return acc
	},
	"masked": func(input []int) (acc wiretype.WireType) {
		for _, v := range input {
			acc ^= wiretype.Masked(v)
		}
		return acc
	},
}

func passFor(s wiretype.Strategy) pass {
	if p, ok := passes[s.Name]; ok {
		return p
	}
	resolve, masking := s.Resolve, s.Masking
	return func(input []int) (acc wiretype.WireType) {
		for _, v := range input {
			if !masking {
				v &= 7
			}
			acc ^= resolve(v)
		}
		return acc
	}
}

// Run generates the input sequence once and then measures every selected
// strategy against it.
func Run(cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	input, seed, err := NewInput(cfg.InputSize, cfg.Seed)
	if err != nil {
		return nil, err
	}
	cfg.Seed = seed
	return RunInput(cfg, input)
}

// RunInput measures every selected strategy against input. cfg.InputSize
// is overwritten with len(input).
func RunInput(cfg Config, input []int) (*Report, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}
	cfg.InputSize = len(input)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	unit, err := ParseUnit(cfg.Unit)
	if err != nil {
		return nil, err
	}
	selected, err := cfg.selected()
	if err != nil {
		return nil, err
	}

	log := Logger()
	report := &Report{
		StartedAt: time.Now(),
		GoVersion: runtime.Version(),
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		Config:    cfg,
	}

	for _, s := range selected {
		p := passFor(s)

		for i := 0; i < cfg.WarmupIterations; i++ {
			n, elapsed := iterate(p, input, cfg.WarmupTime)
			log.Debug("warm-up iteration",
				zap.String("strategy", s.Name),
				zap.Int("iteration", i+1),
				zap.Int64("calls", n*int64(len(input))),
				zap.Duration("elapsed", elapsed))
		}

		result := Result{
			Strategy: s.Name,
			Masking:  s.Masking,
			Unit:     cfg.Unit,
		}
		var total time.Duration
		for i := 0; i < cfg.MeasurementIterations; i++ {
			n, elapsed := iterate(p, input, cfg.MeasurementTime)
			calls := n * int64(len(input))
			it := Iteration{
				Calls:   calls,
				Elapsed: elapsed,
				Score:   score(elapsed, calls, unit),
			}
			log.Debug("measurement iteration",
				zap.String("strategy", s.Name),
				zap.Int("iteration", i+1),
				zap.Int64("calls", calls),
				zap.Float64("score", it.Score))

			result.Iterations = append(result.Iterations, it)
			result.Calls += calls
			total += elapsed
		}
		result.Score = score(total, result.Calls, unit)
		report.Results = append(report.Results, result)

		log.Info("strategy measured",
			zap.String("strategy", s.Name),
			zap.Float64("score", result.Score),
			zap.String("unit", cfg.Unit),
			zap.Int64("calls", result.Calls))
	}

	report.Elapsed = time.Since(report.StartedAt)
	return report, nil
}

// iterate repeats whole passes over input until budget has elapsed and
// returns the number of passes made.
func iterate(p pass, input []int, budget time.Duration) (int64, time.Duration) {
	var (
		acc wiretype.WireType
		n   int64
	)
	start := time.Now()
	deadline := start.Add(budget)
	for {
		for i := 0; i < batch; i++ {
			acc ^= p(input)
		}
		n += batch
		if now := time.Now(); !now.Before(deadline) {
			sink = acc
			return n, now.Sub(start)
		}
	}
}

func score(elapsed time.Duration, calls int64, unit time.Duration) float64 {
	if calls == 0 {
		return 0
	}
	return float64(elapsed) / float64(calls) / float64(unit)
}

// Verify checks every selected strategy against Canonical on [-8, 256).
// Masking strategies are checked against Dense8 of the low three bits.
func Verify(cfg Config) error {
	selected, err := cfg.selected()
	if err != nil {
		return err
	}
	for _, s := range selected {
		for code := -8; code < 256; code++ {
			want := wiretype.Canonical(code)
			if s.Masking {
				want = wiretype.Dense8(code & 7)
			}
			if got := s.Resolve(code); got != want {
				return fmt.Errorf("%w: %s(%d) = %s, canonical says %s", ErrMismatch, s.Name, code, got, want)
			}
		}
	}
	return nil
}
