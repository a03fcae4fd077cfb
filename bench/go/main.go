package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"wiretype-benchmark/harness"
)

const (
	envPrefix = "WIRETYPE_BENCH"

	warmupIterationsKey      = "warmup-iterations"
	warmupTimeKey            = "warmup-time"
	measurementIterationsKey = "measurement-iterations"
	measurementTimeKey       = "measurement-time"
	sizeKey                  = "size"
	seedKey                  = "seed"
	unitKey                  = "unit"
	strategiesKey            = "strategies"
	formatKey                = "format"
	logLevelKey              = "log-level"
	validateKey              = "validate"
)

func buildFlagSet() *pflag.FlagSet {
	d := harness.DefaultConfig()
	fs := pflag.NewFlagSet("wiretype-bench", pflag.ContinueOnError)

	fs.Int(warmupIterationsKey, d.WarmupIterations, "Number of unmeasured warm-up iterations per strategy")
	fs.Duration(warmupTimeKey, d.WarmupTime, "Duration of each warm-up iteration")
	fs.Int(measurementIterationsKey, d.MeasurementIterations, "Number of measured iterations per strategy")
	fs.Duration(measurementTimeKey, d.MeasurementTime, "Duration of each measured iteration")
	fs.Int(sizeKey, d.InputSize, "Length of the generated input sequence")
	fs.Uint64(seedKey, d.Seed, "Seed for the input sequence, 0 picks one at random")
	fs.String(unitKey, d.Unit, "Reporting unit: ns, us, ms or s")
	fs.StringSlice(strategiesKey, nil, "Strategies to run, in order (default all)")
	fs.String(formatKey, string(harness.FormatText), "Report format: text, json or cbor")
	fs.String(logLevelKey, "info", "Log level")
	fs.Bool(validateKey, true, "Check every strategy against the canonical resolver before timing")

	return fs
}

// getViper parses args and layers WIRETYPE_BENCH_* environment variables
// under the flags.
func getViper(args []string) (*viper.Viper, error) {
	fs := buildFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

func getConfig(v *viper.Viper) (harness.Config, harness.Format, error) {
	cfg := harness.DefaultConfig()
	cfg.WarmupIterations = v.GetInt(warmupIterationsKey)
	cfg.WarmupTime = v.GetDuration(warmupTimeKey)
	cfg.MeasurementIterations = v.GetInt(measurementIterationsKey)
	cfg.MeasurementTime = v.GetDuration(measurementTimeKey)
	cfg.InputSize = v.GetInt(sizeKey)
	cfg.Seed = v.GetUint64(seedKey)
	cfg.Unit = v.GetString(unitKey)

	// env values arrive as a single comma separated string
	for _, s := range v.GetStringSlice(strategiesKey) {
		for _, name := range strings.Split(s, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Strategies = append(cfg.Strategies, name)
			}
		}
	}

	format, err := harness.ParseFormat(v.GetString(formatKey))
	if err != nil {
		return cfg, "", err
	}
	return cfg, format, cfg.Validate()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	c := zap.NewProductionConfig()
	c.Level = lvl
	c.Encoding = "console"
	c.DisableStacktrace = true
	return c.Build()
}

func run(args []string, out io.Writer) error {
	v, err := getViper(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	cfg, format, err := getConfig(v)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := newLogger(v.GetString(logLevelKey))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	harness.SetLogger(log)

	if v.GetBool(validateKey) {
		if err := harness.Verify(cfg); err != nil {
			return err
		}
		log.Debug("all strategies agree with canonical")
	}

	log.Info("starting benchmark",
		zap.Int(warmupIterationsKey, cfg.WarmupIterations),
		zap.Duration(warmupTimeKey, cfg.WarmupTime),
		zap.Int(measurementIterationsKey, cfg.MeasurementIterations),
		zap.Duration(measurementTimeKey, cfg.MeasurementTime),
		zap.Int(sizeKey, cfg.InputSize))

	report, err := harness.Run(cfg)
	if err != nil {
		return err
	}
	return report.Write(out, format)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
