package random

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	floatExponentBits  = 0x3F800000
	floatMantissaMask  = 0x7FFFFF
	doubleExponentBits = 0x3FF0000000000000
	doubleMantissaMask = 0xFFFFFFFFFFFFF
)

// Rand derives distributions from a Source.
type Rand struct {
	src Source
}

// NewRand returns a Rand drawing from src.
func NewRand(src Source) *Rand {
	return &Rand{src: src}
}

// New returns a Rand over a fresh Engine seeded with seed.
func New(seed uint64) (*Rand, error) {
	e, err := NewEngine(seed)
	if err != nil {
		return nil, err
	}
	return NewRand(e), nil
}

// Source returns the underlying source.
func (r *Rand) Source() Source {
	return r.src
}

// Uint64 returns one raw 64-bit value.
func (r *Rand) Uint64() uint64 {
	return r.src.Uint64()
}

// Int64 returns one raw value reinterpreted as signed.
func (r *Rand) Int64() int64 {
	return int64(r.src.Uint64())
}

// Int32 returns the low 32 bits of one raw value.
func (r *Rand) Int32() int32 {
	return int32(r.src.Uint64())
}

// Bool reports whether the sign bit of one raw value is set.
func (r *Rand) Bool() bool {
	return r.Int64() < 0
}

// Int32n returns a value in [0, bound).
//
// Each 64-bit draw is used for up to two rejection trials: first its low 31
// bits, then bits 32..62. Only when both land at or above the rejection limit
// is a fresh value drawn.
func (r *Rand) Int32n(bound int32) (int32, error) {
	if bound <= 0 {
		return 0, errBound(bound)
	}
	if bound&(bound-1) == 0 {
		v := int32(r.src.Uint64() & math.MaxInt32)
		return v & (bound - 1), nil
	}
	limit := int32(math.MaxInt32 - math.MaxInt32%bound)
	for {
		r64 := r.src.Uint64()
		r32 := int32(r64 & math.MaxInt32)
		if r32 < limit {
			return r32 % bound, nil
		}
		r32 = int32((r64 >> 32) & math.MaxInt32)
		if r32 < limit {
			return r32 % bound, nil
		}
	}
}

// Int64n returns a value in [0, bound), one 63-bit draw per rejection trial.
func (r *Rand) Int64n(bound int64) (int64, error) {
	if bound <= 0 {
		return 0, errBound(bound)
	}
	if bound&(bound-1) == 0 {
		return int64(r.src.Uint64()>>1) & (bound - 1), nil
	}
	limit := int64(math.MaxInt64 - math.MaxInt64%bound)
	for {
		v := int64(r.src.Uint64() >> 1)
		if v < limit {
			return v % bound, nil
		}
	}
}

// Int32Range returns origin plus a value sampled below origin+bound.
//
// The sampling bound is the sum origin+bound (int32 wrap-around), not the span
// bound-origin. For origin == 0 the two agree; for other origins the result can
// leave [origin, bound), and a non-positive sum is rejected as a bad bound.
// This matches the reference generator and is kept for reproducibility.
func (r *Rand) Int32Range(origin, bound int32) (int32, error) {
	if origin >= bound {
		return 0, errRange(origin, bound)
	}
	v, err := r.Int64n(int64(origin + bound))
	if err != nil {
		return 0, err
	}
	return origin + int32(v), nil
}

// Int64Range returns origin + floorMod(raw, bound-origin). It is not
// rejection sampled, so small spans carry a slight modulo bias.
func (r *Rand) Int64Range(origin, bound int64) (int64, error) {
	if origin >= bound {
		return 0, errRange(origin, bound)
	}
	return origin + floorMod(r.Int64(), bound-origin), nil
}

// floorMod returns x mod y with the sign of y.
func floorMod(x, y int64) int64 {
	m := x % y
	if m != 0 && (m^y) < 0 {
		m += y
	}
	return m
}

// Float32 returns a value in [0, 1) built from 23 random mantissa bits.
func (r *Rand) Float32() float32 {
	bits := uint32(r.src.Uint64()&floatMantissaMask) | floatExponentBits
	return math.Float32frombits(bits) - 1.0
}

// Float64 returns a value in [0, 1) built from 52 random mantissa bits.
func (r *Rand) Float64() float64 {
	bits := r.src.Uint64()&doubleMantissaMask | doubleExponentBits
	return math.Float64frombits(bits) - 1.0
}

// Float32n returns a value in [0, bound).
func (r *Rand) Float32n(bound float32) (float32, error) {
	if !validBound(float64(bound)) {
		return 0, errFloatBound(bound)
	}
	return float32(r.Float64() * float64(bound)), nil
}

// Float32Range returns a value in [origin, bound).
func (r *Rand) Float32Range(origin, bound float32) (float32, error) {
	if !validRange(float64(origin), float64(bound)) {
		return 0, errRange(origin, bound)
	}
	return float32(float64(origin) + r.Float64()*float64(bound-origin)), nil
}

// Float64n returns a value in [0, bound).
func (r *Rand) Float64n(bound float64) (float64, error) {
	if !validBound(bound) {
		return 0, errFloatBound(bound)
	}
	return r.Float64() * bound, nil
}

// Float64Range returns a value in [origin, bound).
func (r *Rand) Float64Range(origin, bound float64) (float64, error) {
	if !validRange(origin, bound) {
		return 0, errRange(origin, bound)
	}
	return origin + r.Float64()*(bound-origin), nil
}

// FillBytes fills buf with big-endian 8-byte chunks. A trailing chunk of
// fewer than 8 bytes takes the leading bytes of one more big-endian draw.
func (r *Rand) FillBytes(buf []byte) {
	i := 0
	for ; i+8 <= len(buf); i += 8 {
		binary.BigEndian.PutUint64(buf[i:], r.src.Uint64())
	}
	if i == len(buf) {
		return
	}
	v := r.src.Uint64()
	for j := 7; j >= 0; j-- {
		if i+j < len(buf) {
			buf[i+j] = byte(v)
		}
		v >>= 8
	}
}

// Read implements io.Reader. It always fills p and never fails.
func (r *Rand) Read(p []byte) (int, error) {
	r.FillBytes(p)
	return len(p), nil
}

// ExpFloat64 returns an exponentially distributed value with rate 1 by
// inverting the CDF of a non-zero uniform draw.
func (r *Rand) ExpFloat64() float64 {
	u := r.Float64()
	for u == 0 {
		u = r.Float64()
	}
	return -math.Log(1.0 - u)
}

// NormFloat64 returns a standard normal value using the cosine branch of the
// Box-Muller transform. The paired sine value is discarded, so every call
// consumes at least two draws.
func (r *Rand) NormFloat64() float64 {
	u1 := r.Float64()
	u2 := r.Float64()
	for u1 == 0 {
		u1 = r.Float64()
	}
	return math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
}

func validBound(bound float64) bool {
	return 0 < bound && bound < math.Inf(1)
}

func validRange(origin, bound float64) bool {
	return math.Inf(-1) < origin && origin < bound && bound < math.Inf(1)
}

func errBound[T int32 | int64](bound T) error {
	return fmt.Errorf("%w: bound must be positive, got %d", ErrInvalidArgument, bound)
}

func errFloatBound[T float32 | float64](bound T) error {
	return fmt.Errorf("%w: bound must be finite and positive, got %v", ErrInvalidArgument, bound)
}

func errRange[T int32 | int64 | float32 | float64](origin, bound T) error {
	return fmt.Errorf("%w: bound must be greater than origin, got [%v, %v)", ErrInvalidArgument, origin, bound)
}
