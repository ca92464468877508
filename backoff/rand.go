package backoff

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	"math/big"
	mrand "math/rand/v2"
)

// Source produces uniformly distributed random integers.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	Uint64() uint64
	// Uint64N returns a value in [0, n). It panics if n == 0.
	Uint64N(n uint64) uint64
}

var (
	_ Source = globalSource{}
	_ Source = (*mrand.Rand)(nil)
	_ Source = CryptoSource{}
)

// globalSource draws from the process-wide math/rand/v2 generator.
type globalSource struct{}

func (globalSource) Uint64() uint64 {
	return mrand.Uint64()
}

func (globalSource) Uint64N(n uint64) uint64 {
	return mrand.Uint64N(n)
}

// CryptoSource draws from crypto/rand. If the system reader fails, it falls
// back to a PCG generator.
type CryptoSource struct{}

func (CryptoSource) Uint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fallbackRand().Uint64()
	}

	return binary.LittleEndian.Uint64(buf[:])
}

func (CryptoSource) Uint64N(n uint64) uint64 {
	v, err := rand.Int(rand.Reader, new(big.Int).SetUint64(n))
	if err != nil {
		return fallbackRand().Uint64N(n)
	}

	return v.Uint64()
}

func fallbackRand() *mrand.Rand {
	return mrand.New(mrand.NewPCG(mrand.Uint64(), mrand.Uint64())) // #nosec G404 -- fallback when crypto/rand fails
}

// uintBound truncates upper toward zero, saturating to the uint64 range.
// NaN and non-positive values map to 0.
func uintBound(upper float64) uint64 {
	switch {
	case math.IsNaN(upper) || upper <= 0:
		return 0
	case upper >= float64(math.MaxUint64):
		return math.MaxUint64
	default:
		return uint64(upper)
	}
}

// drawInclusive returns a uniform value in [0, n].
func drawInclusive(src Source, n uint64) uint64 {
	if n == math.MaxUint64 {
		return src.Uint64()
	}

	return src.Uint64N(n + 1)
}
