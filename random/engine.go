package random

const (
	fmixC1 = 0xFF51AFD7ED558CCD
	fmixC2 = 0xC4CEB9FE1A85EC53
)

// Source produces raw 64-bit values. Everything in Rand is derived from
// successive calls to Uint64.
type Source interface {
	Uint64() uint64
}

// Engine is an xorshift128+ generator with a MurmurHash3-finalized output.
type Engine struct {
	state0 uint64
	state1 uint64
}

// NewEngine returns an engine seeded with seed.
func NewEngine(seed uint64) (*Engine, error) {
	e := &Engine{}
	if err := e.Seed(seed); err != nil {
		return nil, err
	}
	return e, nil
}

// Seed resets the engine state from seed. The seed itself is never stored.
func (e *Engine) Seed(seed uint64) error {
	s0 := Finalize(seed)
	s1 := Finalize(^s0)
	if s0 == 0 && s1 == 0 {
		return ErrZeroState
	}
	e.state0, e.state1 = s0, s1
	return nil
}

// Finalize is the MurmurHash3 fmix64 mixing function.
func Finalize(h uint64) uint64 {
	h ^= h >> 33
	h *= fmixC1
	h ^= h >> 33
	h *= fmixC2
	h ^= h >> 33
	return h
}

func (e *Engine) xorShift128() {
	s1 := e.state0
	s0 := e.state1

	e.state0 = s0
	s1 ^= s1 << 23
	s1 ^= s1 >> 17
	s1 ^= s0
	s1 ^= s0 >> 26
	e.state1 = s1
}

// Uint64 advances the state and returns the finalized value of the new
// state. The raw xorshift output is never exposed.
func (e *Engine) Uint64() uint64 {
	e.xorShift128()
	return Finalize(e.state0 ^ e.state1)
}

// State returns the two state words.
func (e *Engine) State() (uint64, uint64) {
	return e.state0, e.state1
}

// Clone returns an independent engine positioned at the same state.
func (e *Engine) Clone() *Engine {
	c := *e
	return &c
}
