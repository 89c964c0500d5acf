package seq

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrInvalidConfig is returned by Series when the configuration cannot be honored.
var ErrInvalidConfig = errors.New("invalid series configuration")

// Gate selects how the presence of a sample is drawn.
type Gate int

const (
	// GateUnit draws the presence probability in [0, 1): a sample is missing
	// with probability 1-Continuity.
	GateUnit Gate = iota
	// GateLegacy draws the presence probability with Next(0, 0), which is
	// always 0. Every sample is then present as long as Continuity >= 0.
	// Samples are rounded halves up, toward +Inf, so that series drawn from a
	// non-negative seed match the dashboard's historical charts. Negative
	// seeds are normalised by the Generator and do not match.
	GateLegacy
)

func (g Gate) String() string {
	switch g {
	case GateUnit:
		return "unit"
	case GateLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Gate(%d)", int(g))
	}
}

// SeriesConfig describes a synthetic series.
type SeriesConfig struct {
	Min, Max   float64   // bounds of the random part of every sample
	Baseline   []float64 // added to the sample of the same index, 0 when absent
	Count      int       // number of samples
	Decimals   int       // present samples are rounded to that many decimals
	Continuity float64   // probability in [0, 1] that a sample is present
	Gate       Gate
}

// DefaultSeriesConfig returns the default configuration: 8 samples in
// [0, 100) with 8 decimals and no missing sample.
func DefaultSeriesConfig() SeriesConfig {
	return SeriesConfig{
		Min:        0,
		Max:        100,
		Count:      8,
		Decimals:   8,
		Continuity: 1,
		Gate:       GateUnit,
	}
}

// Validate reports why cfg cannot produce a series.
func (cfg SeriesConfig) Validate() error {
	switch {
	case cfg.Count < 0:
		return fmt.Errorf("%w: negative count %d", ErrInvalidConfig, cfg.Count)
	case cfg.Decimals < 0:
		return fmt.Errorf("%w: negative decimals %d", ErrInvalidConfig, cfg.Decimals)
	case math.IsNaN(cfg.Continuity) || cfg.Continuity < 0 || cfg.Continuity > 1:
		return fmt.Errorf("%w: continuity %v outside [0, 1]", ErrInvalidConfig, cfg.Continuity)
	case !finite(cfg.Min) || !finite(cfg.Max):
		return fmt.Errorf("%w: bounds [%v, %v] are not finite", ErrInvalidConfig, cfg.Min, cfg.Max)
	case cfg.Gate != GateUnit && cfg.Gate != GateLegacy:
		return fmt.Errorf("%w: unknown gate %v", ErrInvalidConfig, cfg.Gate)
	}
	for i, b := range cfg.Baseline {
		if !finite(b) {
			return fmt.Errorf("%w: baseline[%d] = %v is not finite", ErrInvalidConfig, i, b)
		}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Sample is one point of a series, either a value or a gap.
type Sample struct {
	Value float64
	Valid bool // false for a missing sample
}

// Present returns a present sample.
func Present(v float64) Sample { return Sample{Value: v, Valid: true} }

// Missing is the missing sample.
var Missing = Sample{}

func (s Sample) String() string {
	if !s.Valid {
		return "-"
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// MarshalJSON encodes a missing sample as null so that charts draw a gap.
func (s Sample) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON decodes a number or null.
func (s *Sample) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = Missing
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Present(v)
	return nil
}

// Series draws a synthetic series described by cfg.
//
// For every index i, it draws value = Baseline[i] + Next(Min, Max), then
// draws the presence p according to cfg.Gate: the sample is present, rounded
// to cfg.Decimals, when p <= Continuity. Every sample consumes exactly two
// draws. An invalid configuration returns an error wrapping ErrInvalidConfig
// and leaves the generator untouched.
func (g *Generator) Series(cfg SeriesConfig) ([]Sample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	samples := make([]Sample, 0, cfg.Count)
	for i := range cfg.Count {
		var base float64
		if i < len(cfg.Baseline) {
			base = cfg.Baseline[i]
		}
		value := base + g.Next(cfg.Min, cfg.Max)

		var p float64
		if cfg.Gate == GateLegacy {
			p = g.Next(0, 0)
		} else {
			p = g.Float()
		}

		switch {
		case p > cfg.Continuity:
			samples = append(samples, Missing)
		case cfg.Gate == GateLegacy:
			samples = append(samples, Present(roundHalfUp(value, cfg.Decimals)))
		default:
			samples = append(samples, Present(round(value, cfg.Decimals)))
		}
	}
	return samples, nil
}

// round rounds v half away from zero to decimals digits.
func round(v float64, decimals int) float64 {
	return decimal.NewFromFloat(v).Round(int32(decimals)).InexactFloat64()
}

// roundHalfUp scales v by 10^decimals, rounds halves toward +Inf and scales
// back, in float64 arithmetic.
func roundHalfUp(v float64, decimals int) float64 {
	f := math.Pow(10, float64(decimals))
	x := v * f
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r / f
}
