// Package rng implements the stream-cipher backed pseudo-random primitives
// the mutation engine draws all of its randomness from: bounded ranges,
// log-biased ranges, probability checks, and signed deltas.
package rng

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/chacha20"
)

// Source is a keyed ChaCha20 keystream wrapped with the engine's integer
// sampling primitives. It is not safe for concurrent use.
type Source struct {
	cipher *chacha20.Cipher
	seed   uint64
}

// New derives a Source from a 64-bit seed. The seed is expanded into a
// ChaCha20 key (zero-padded) with a fixed nonce, matching the spirit of
// the reference engine's ChaCha20Rng::seed_from_u64.
func New(seed uint64) *Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	nonce := [chacha20.NonceSize]byte{}
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		panic(err)
	}
	return &Source{cipher: c, seed: seed}
}

// Seed returns the seed this source was constructed from.
func (s *Source) Seed() uint64 { return s.seed }

func (s *Source) fill(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	s.cipher.XORKeyStream(buf, buf)
}

// Uint64 draws a uniformly distributed 64-bit word from the keystream.
func (s *Source) Uint64() uint64 {
	var buf [8]byte
	s.fill(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// Uint32 draws a uniformly distributed 32-bit word from the keystream.
func (s *Source) Uint32() uint32 {
	var buf [4]byte
	s.fill(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

// Bool draws a single fair coin flip.
func (s *Source) Bool() bool {
	return s.Uint64()&1 == 1
}

// Bytes fills buf with keystream bytes.
func (s *Source) Bytes(buf []byte) {
	s.fill(buf)
}

// Range returns a uniform value in [0, n). Returns 0 if n == 0.
func (s *Source) Range(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	// Rejection-free modulo bias is not worth the complexity for a fuzzer's
	// sampling needs; the reference engine itself uses a plain modulo-style
	// gen_range under the hood for most of its bounded draws.
	return s.Uint64() % n
}

// RangeInt is the int convenience form of Range.
func (s *Source) RangeInt(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Range(uint64(n)))
}

// Rands draws a value in [0, self) — the core "rands" primitive applied to
// a bound, not a type. n == 0 always yields 0.
func (s *Source) Rands(n uint64) uint64 {
	return s.Range(n)
}

// RandLog draws from a log-biased distribution over [0, self): it first
// picks a bit-width n in [0, self), then returns a value with that many
// significant bits set at random (0 if n == 0), mirroring the reference
// engine's "rand_log" so that small magnitudes are drawn far more often
// than large ones.
func (s *Source) RandLog(self uint64) uint64 {
	if self == 0 {
		return 0
	}
	n := s.Range(self)
	if n == 0 {
		return 0
	}
	hi := uint64(1) << (n - 1)
	val := s.Rands(hi)
	return val | hi
}

// Occurs reports whether an event with probability prob (in [0,1]) occurs
// this draw. A whole-number probability (0.0 or 1.0) always reports false,
// matching the reference engine's guard against degenerate fractions.
func (s *Source) Occurs(prob float64) bool {
	if prob <= 0 || prob >= 1 {
		return false
	}
	// Represent prob as nom/denom using a bounded denominator, matching the
	// reference engine's use of an exact fraction (e.g. 0.8 == 4/5).
	const denom = 1 << 20
	nom := uint64(prob*denom + 0.5)
	n := s.Range(denom)
	return n < nom
}

// RandDelta returns +1 or -1 with equal probability.
func (s *Source) RandDelta() int {
	if s.Bool() {
		return 1
	}
	return -1
}

// RandDeltaUp returns +1 or -1 with a slight positive bias (12/20 favor +1),
// used by the fuse family of mutators which tend to be net-beneficial.
func (s *Source) RandDeltaUp() int {
	if s.Range(20) <= 11 {
		return 1
	}
	return -1
}

// Elem returns a uniformly chosen element index of a slice of length n, or
// -1 if n == 0.
func (s *Source) Elem(n int) int {
	if n <= 0 {
		return -1
	}
	return s.RangeInt(n)
}

// BigRange returns a uniform *big.Int in [0, n). Used by the numeric
// mutator's arbitrary-width integer arithmetic.
func (s *Source) BigRange(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return big.NewInt(0)
	}
	var buf [32]byte
	s.Bytes(buf[:])
	v := new(big.Int).SetBytes(buf[:])
	return v.Mod(v, n)
}
