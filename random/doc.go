// Package random implements a deterministic, non-cryptographic xorshift128+
// engine whose output is passed through the MurmurHash3 64-bit finalizer, and
// a sampler deriving bounded integers, floats, byte streams, and Gaussian and
// exponential variates from it.
//
// Given the same seed, an Engine reproduces the same sequence bit for bit on
// every platform. The generator is predictable and must not be used where
// unpredictability matters.
//
// Basic Usage:
//
//	r, err := random.New(42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n, _ := r.Int32n(100)
//	f := r.Float64()
//
// Thread Safety:
//
// Engine and Rand are not safe for concurrent use. Give each goroutine its own
// instance or guard a shared one with a mutex.
package random
