package fixture

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRowsWithinRanges(t *testing.T) {
	t.Parallel()

	r := DefaultRanges()
	rows := NewRows(rand.New(rand.NewSource(7)), 20000, r)
	require.Len(t, rows, 20000)

	strikes := map[int]bool{}
	for _, row := range rows {
		assert.True(t, r.Strike.Contains(row.StrikePrice), "strike %d", row.StrikePrice)
		assert.True(t, r.CallLTP.Contains(row.CallLTP), "call %v", row.CallLTP)
		assert.True(t, r.PutLTP.Contains(row.PutLTP), "put %v", row.PutLTP)
		assert.True(t, r.GammaCall.Contains(row.GammaCall), "gamma %v", row.GammaCall)
		strikes[row.StrikePrice] = true
	}
	// 20k draws over 50 integers hit every value.
	assert.Len(t, strikes, 50)
	assert.False(t, strikes[150])
}

func TestNewRowsSameSeedSameRows(t *testing.T) {
	t.Parallel()

	a := NewRows(rand.New(rand.NewSource(42)), 50, DefaultRanges())
	b := NewRows(rand.New(rand.NewSource(42)), 50, DefaultRanges())
	c := NewRows(rand.New(rand.NewSource(43)), 50, DefaultRanges())
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestRangesValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Ranges)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Ranges) {}},
		{name: "empty strike", mutate: func(r *Ranges) { r.Strike = IntRange{Min: 5, Max: 5} }, wantErr: "strike"},
		{name: "inverted call", mutate: func(r *Ranges) { r.CallLTP = FloatRange{Min: 10, Max: 5} }, wantErr: "call_ltp"},
		{name: "empty put", mutate: func(r *Ranges) { r.PutLTP = FloatRange{Min: 1, Max: 1} }, wantErr: "put_ltp"},
		{name: "inverted gamma", mutate: func(r *Ranges) { r.GammaCall = FloatRange{Min: 0.3, Max: 0.1} }, wantErr: "gamma_call"},
		{name: "strike width overflows", mutate: func(r *Ranges) { r.Strike = IntRange{Min: math.MinInt64/2 - 10, Max: math.MaxInt64/2 + 10} }, wantErr: "strike"},
		{name: "widest strike", mutate: func(r *Ranges) { r.Strike = IntRange{Min: math.MinInt, Max: math.MaxInt} }, wantErr: "strike"},
		{name: "wide strike that fits", mutate: func(r *Ranges) { r.Strike = IntRange{Min: -1 << 40, Max: 1 << 40} }},
		{name: "infinite call max", mutate: func(r *Ranges) { r.CallLTP = FloatRange{Min: 5, Max: math.Inf(1)} }, wantErr: "call_ltp"},
		{name: "infinite put min", mutate: func(r *Ranges) { r.PutLTP = FloatRange{Min: math.Inf(-1), Max: 9} }, wantErr: "put_ltp"},
		{name: "nan gamma", mutate: func(r *Ranges) { r.GammaCall = FloatRange{Min: math.NaN(), Max: 0.3} }, wantErr: "gamma_call"},
		{name: "call width overflows", mutate: func(r *Ranges) { r.CallLTP = FloatRange{Min: -math.MaxFloat64, Max: math.MaxFloat64} }, wantErr: "call_ltp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRanges()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRange)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRowsAcceptsEveryValidRange(t *testing.T) {
	t.Parallel()

	r := DefaultRanges()
	r.Strike = IntRange{Min: math.MinInt / 2, Max: math.MaxInt / 2}
	r.CallLTP = FloatRange{Min: -math.MaxFloat64 / 2, Max: math.MaxFloat64 / 2}
	require.NoError(t, r.Validate())

	var rows []Row
	require.NotPanics(t, func() { rows = NewRows(rand.New(rand.NewSource(3)), 100, r) })
	for _, row := range rows {
		assert.True(t, r.Strike.Contains(row.StrikePrice))
		assert.True(t, r.CallLTP.Contains(row.CallLTP))
	}
}

func TestRangeContainsIsHalfOpen(t *testing.T) {
	t.Parallel()

	assert.True(t, IntRange{Min: 100, Max: 150}.Contains(100))
	assert.False(t, IntRange{Min: 100, Max: 150}.Contains(150))
	assert.True(t, FloatRange{Min: 0.1, Max: 0.3}.Contains(0.1))
	assert.False(t, FloatRange{Min: 0.1, Max: 0.3}.Contains(0.3))
}
