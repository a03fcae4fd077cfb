package harness

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fxamacker/cbor/v2"
	jsoniter "github.com/json-iterator/go"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, s)
	}
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var cborEnc = func() cbor.EncMode {
	em, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

type Report struct {
	StartedAt time.Time     `json:"startedAt" cbor:"started_at"`
	Elapsed   time.Duration `json:"elapsed" cbor:"elapsed"`
	GoVersion string        `json:"goVersion" cbor:"go_version"`
	GOOS      string        `json:"goos" cbor:"goos"`
	GOARCH    string        `json:"goarch" cbor:"goarch"`
	Config    Config        `json:"config" cbor:"config"`
	Results   []Result      `json:"results" cbor:"results"`
}

// Result holds the measurement iterations of one strategy. Score is the
// mean time per call across all of them, in Unit.
type Result struct {
	Strategy   string      `json:"strategy" cbor:"strategy"`
	Masking    bool        `json:"masking" cbor:"masking"`
	Score      float64     `json:"score" cbor:"score"`
	Unit       string      `json:"unit" cbor:"unit"`
	Calls      int64       `json:"calls" cbor:"calls"`
	Iterations []Iteration `json:"iterations" cbor:"iterations"`
}

type Iteration struct {
	Calls   int64         `json:"calls" cbor:"calls"`
	Elapsed time.Duration `json:"elapsed" cbor:"elapsed"`
	Score   float64       `json:"score" cbor:"score"`
}

// Write encodes r to w in the given format.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return r.WriteText(w)
	case FormatJSON:
		return r.EncodeJSON(w)
	case FormatCBOR:
		return r.EncodeCBOR(w)
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, f)
	}
}

func (r *Report) WriteText(w io.Writer) error {
	c := r.Config
	_, err := fmt.Fprintf(w, "Wire type resolution (%s %s/%s, input %d, seed %d)\n",
		r.GoVersion, r.GOOS, r.GOARCH, c.InputSize, c.Seed)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Warm-up: %d x %s, measurement: %d x %s, mode: %s\n",
		c.WarmupIterations, c.WarmupTime, c.MeasurementIterations, c.MeasurementTime, c.Mode)
	if err != nil {
		return err
	}
	for _, res := range r.Results {
		_, err = fmt.Fprintf(w, "%-10s %10.3f %s/op  (%s calls)\n",
			res.Strategy+":", res.Score, res.Unit, humanize.Comma(res.Calls))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Report) EncodeCBOR(w io.Writer) error {
	return cborEnc.NewEncoder(w).Encode(r)
}
