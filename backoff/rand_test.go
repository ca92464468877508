package backoff

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUintBound(t *testing.T) {
	tests := []struct {
		name     string
		upper    float64
		expected uint64
	}{
		{name: "zero", upper: 0, expected: 0},
		{name: "negative", upper: -1.5, expected: 0},
		{name: "negative infinity", upper: math.Inf(-1), expected: 0},
		{name: "nan", upper: math.NaN(), expected: 0},
		{name: "below one truncates to zero", upper: 0.999, expected: 0},
		{name: "fraction truncates down", upper: 4.5, expected: 4},
		{name: "just below next integer", upper: 2.9999, expected: 2},
		{name: "whole number", upper: 2_000_000_000, expected: 2_000_000_000},
		{name: "above uint64 range", upper: 1e30, expected: math.MaxUint64},
		{name: "positive infinity", upper: math.Inf(1), expected: math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, uintBound(tt.upper))
		})
	}
}

func TestDrawInclusive(t *testing.T) {
	tests := []struct {
		name     string
		n        uint64
		highest  bool
		expected uint64
		bound    uint64
	}{
		{name: "zero range", n: 0, highest: true, expected: 0, bound: 1},
		{name: "lowest", n: 10, highest: false, expected: 0, bound: 11},
		{name: "highest is inclusive", n: 10, highest: true, expected: 10, bound: 11},
		{name: "full range", n: math.MaxUint64, highest: true, expected: math.MaxUint64, bound: math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &stubSource{highest: tt.highest}
			assert.Equal(t, tt.expected, drawInclusive(src, tt.n))
			assert.Equal(t, []uint64{tt.bound}, src.bounds)
		})
	}
}

func TestCryptoSource(t *testing.T) {
	src := CryptoSource{}

	for _, n := range []uint64{1, 2, 7, 1_000, math.MaxUint64} {
		for range 100 {
			assert.Less(t, src.Uint64N(n), n)
		}
	}

	assert.Zero(t, src.Uint64N(1))
}

func TestCryptoSource_AsJitterSource(t *testing.T) {
	b := NewJittered(WithSource(CryptoSource{}), WithMax(5*time.Second))

	b.Pause()
	for range 100 {
		delay := b.Pause()
		assert.GreaterOrEqual(t, delay, time.Duration(1))
		assert.LessOrEqual(t, delay, b.Max())
	}
}

func TestGlobalSource(t *testing.T) {
	src := globalSource{}

	for range 100 {
		assert.Less(t, src.Uint64N(3), uint64(3))
	}
}

func BenchmarkGlobalSource_Uint64N(b *testing.B) {
	src := globalSource{}
	for i := 0; i < b.N; i++ {
		src.Uint64N(2_000_000_001)
	}
}

func BenchmarkCryptoSource_Uint64N(b *testing.B) {
	src := CryptoSource{}
	for i := 0; i < b.N; i++ {
		src.Uint64N(2_000_000_001)
	}
}
