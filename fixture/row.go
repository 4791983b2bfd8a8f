// Package fixture synthesizes option-chain-like CSV snapshots into a
// dataset/<YYYYMMDD>/<HHMM>.csv tree for seeding test datasets.
package fixture

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Row is one synthetic option-chain line. Field order is the CSV column order.
type Row struct {
	StrikePrice int     `csv:"Strike Price"`
	CallLTP     float64 `csv:"CALL_LTP"`
	PutLTP      float64 `csv:"PUT_LTP"`
	GammaCall   float64 `csv:"GAMMA_CALL"`
}

// Header is the exact header line written to every minute file.
var Header = []string{"Strike Price", "CALL_LTP", "PUT_LTP", "GAMMA_CALL"}

var ErrInvalidRange = errors.New("invalid range")

// IntRange is the half-open interval [Min, Max).
type IntRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

func (r IntRange) Draw(rng *rand.Rand) int {
	return r.Min + rng.Intn(r.Max-r.Min)
}

func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v < r.Max
}

// FloatRange is the half-open interval [Min, Max).
type FloatRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Draw returns a uniform value in [Min, Max). Rounding in Min+u*(Max-Min)
// can land exactly on Max, so that case is pulled back one ulp.
func (r FloatRange) Draw(rng *rand.Rand) float64 {
	v := r.Min + rng.Float64()*(r.Max-r.Min)
	if v >= r.Max {
		v = math.Nextafter(r.Max, r.Min)
	}
	return v
}

func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}

// Ranges holds the sampling interval of every column.
type Ranges struct {
	Strike    IntRange   `json:"strike" yaml:"strike"`
	CallLTP   FloatRange `json:"call_ltp" yaml:"call_ltp"`
	PutLTP    FloatRange `json:"put_ltp" yaml:"put_ltp"`
	GammaCall FloatRange `json:"gamma_call" yaml:"gamma_call"`
}

func DefaultRanges() Ranges {
	return Ranges{
		Strike:    IntRange{Min: 100, Max: 150},
		CallLTP:   FloatRange{Min: 5.0, Max: 10.0},
		PutLTP:    FloatRange{Min: 4.0, Max: 9.0},
		GammaCall: FloatRange{Min: 0.1, Max: 0.3},
	}
}

// Validate reports the first empty, inverted or unbounded interval. The
// width of every interval must itself be finite and fit in its type.
func (r Ranges) Validate() error {
	if r.Strike.Min >= r.Strike.Max || r.Strike.Max-r.Strike.Min <= 0 {
		return fmt.Errorf("%w: strike [%d, %d)", ErrInvalidRange, r.Strike.Min, r.Strike.Max)
	}
	floats := []struct {
		name string
		r    FloatRange
	}{
		{"call_ltp", r.CallLTP},
		{"put_ltp", r.PutLTP},
		{"gamma_call", r.GammaCall},
	}
	for _, f := range floats {
		if !finite(f.r.Min) || !finite(f.r.Max) || f.r.Min >= f.r.Max || !finite(f.r.Max-f.r.Min) {
			return fmt.Errorf("%w: %s [%g, %g)", ErrInvalidRange, f.name, f.r.Min, f.r.Max)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NewRows draws n rows. Every field is sampled independently.
func NewRows(rng *rand.Rand, n int, r Ranges) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			StrikePrice: r.Strike.Draw(rng),
			CallLTP:     r.CallLTP.Draw(rng),
			PutLTP:      r.PutLTP.Draw(rng),
			GammaCall:   r.GammaCall.Draw(rng),
		}
	}
	return rows
}
