package main

import (
	"bytes"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiretype-benchmark/harness"
	"wiretype-benchmark/wiretype"
)

var quickArgs = []string{
	"--warmup-iterations=1",
	"--warmup-time=1ms",
	"--measurement-iterations=1",
	"--measurement-time=2ms",
	"--log-level=error",
}

func TestGetConfigDefaults(t *testing.T) {
	v, err := getViper(nil)
	require.NoError(t, err)

	cfg, format, err := getConfig(v)
	require.NoError(t, err)
	assert.Equal(t, harness.DefaultConfig(), cfg)
	assert.Equal(t, harness.FormatText, format)
	assert.True(t, v.GetBool(validateKey))
}

func TestGetConfigFlags(t *testing.T) {
	v, err := getViper([]string{
		"--warmup-iterations=2",
		"--warmup-time=10ms",
		"--measurement-iterations=3",
		"--measurement-time=20ms",
		"--size=64",
		"--seed=99",
		"--unit=us",
		"--strategies=masked,dense8",
		"--format=json",
	})
	require.NoError(t, err)

	cfg, format, err := getConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.WarmupIterations)
	assert.Equal(t, 10*time.Millisecond, cfg.WarmupTime)
	assert.Equal(t, 3, cfg.MeasurementIterations)
	assert.Equal(t, 20*time.Millisecond, cfg.MeasurementTime)
	assert.Equal(t, 64, cfg.InputSize)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, "us", cfg.Unit)
	assert.Equal(t, []string{"masked", "dense8"}, cfg.Strategies)
	assert.Equal(t, harness.FormatJSON, format)
}

func TestGetConfigEnv(t *testing.T) {
	t.Setenv("WIRETYPE_BENCH_MEASUREMENT_ITERATIONS", "7")
	t.Setenv("WIRETYPE_BENCH_STRATEGIES", "switch,canonical")
	t.Setenv("WIRETYPE_BENCH_FORMAT", "cbor")

	v, err := getViper(nil)
	require.NoError(t, err)

	cfg, format, err := getConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MeasurementIterations)
	assert.Equal(t, []string{"switch", "canonical"}, cfg.Strategies)
	assert.Equal(t, harness.FormatCBOR, format)
}

func TestGetConfigInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--format=xml"},
		{"--unit=days"},
		{"--strategies=bogus"},
		{"--size=0"},
	} {
		v, err := getViper(args)
		require.NoError(t, err)
		_, _, err = getConfig(v)
		assert.Error(t, err, args)
	}

	_, err := getViper([]string{"--no-such-flag"})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	defer harness.SetLogger(nil)

	var out bytes.Buffer
	args := append([]string{"--format=json", "--seed=5", "--strategies=dense6,masked"}, quickArgs...)
	require.NoError(t, run(args, &out))

	var report harness.Report
	require.NoError(t, jsoniter.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, uint64(5), report.Config.Seed)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "dense6", report.Results[0].Strategy)
	assert.Equal(t, "masked", report.Results[1].Strategy)
	assert.Positive(t, report.Results[0].Calls)
}

func TestRunText(t *testing.T) {
	defer harness.SetLogger(nil)

	var out bytes.Buffer
	require.NoError(t, run(quickArgs, &out))
	for _, s := range wiretype.Strategies() {
		assert.Contains(t, out.String(), s.Name+":")
	}
	assert.Contains(t, out.String(), "ns/op")
}

func TestRunHelp(t *testing.T) {
	require.NoError(t, run([]string{"--help"}, &bytes.Buffer{}))
}

func TestRunBadConfig(t *testing.T) {
	err := run([]string{"--measurement-iterations=0"}, &bytes.Buffer{})
	require.ErrorIs(t, err, harness.ErrInvalidConfig)
}

var sink wiretype.WireType

// BenchmarkResolve mirrors the harness: every op is one call, inputs come
// from a fixed 128-element sequence and all but masked see the low bits.
func BenchmarkResolve(b *testing.B) {
	input, _, err := harness.NewInput(128, 1)
	if err != nil {
		b.Fatal(err)
	}

	for _, s := range wiretype.Strategies() {
		s := s
		b.Run(s.Name, func(b *testing.B) {
			codes := make([]int, len(input))
			for i, v := range input {
				if !s.Masking {
					v &= 7
				}
				codes[i] = v
			}

			var acc wiretype.WireType
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				acc ^= s.Resolve(codes[i%len(codes)])
			}
			sink = acc
		})
	}
}
