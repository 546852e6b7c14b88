package rng

import (
	"math/big"
	"testing"

	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestNewIsDeterministicForFixedSeed(t *testing.T) {
	a := New(1234)
	b := New(1234)
	for i := 0; i < 8; i++ {
		testutil.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestDifferentSeedsDivergeQuickly(t *testing.T) {
	a := New(1)
	b := New(2)
	testutil.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestSeedReturnsConstructedValue(t *testing.T) {
	s := New(777)
	testutil.Equal(t, s.Seed(), uint64(777))
}

func TestRangeZeroAlwaysReturnsZero(t *testing.T) {
	s := New(1)
	for i := 0; i < 10; i++ {
		testutil.Equal(t, s.Range(0), uint64(0))
	}
}

func TestRangeIntStaysWithinBounds(t *testing.T) {
	s := New(9)
	for i := 0; i < 200; i++ {
		v := s.RangeInt(7)
		testutil.True(t, v >= 0 && v < 7)
	}
}

func TestRangeIntNonPositiveReturnsZero(t *testing.T) {
	s := New(1)
	testutil.Equal(t, s.RangeInt(0), 0)
	testutil.Equal(t, s.RangeInt(-5), 0)
}

func TestElemReturnsNegativeOneForEmpty(t *testing.T) {
	s := New(1)
	testutil.Equal(t, s.Elem(0), -1)
}

func TestElemStaysInBounds(t *testing.T) {
	s := New(5)
	for i := 0; i < 100; i++ {
		v := s.Elem(4)
		testutil.True(t, v >= 0 && v < 4)
	}
}

func TestRandDeltaIsAlwaysPlusOrMinusOne(t *testing.T) {
	s := New(3)
	for i := 0; i < 50; i++ {
		d := s.RandDelta()
		testutil.True(t, d == 1 || d == -1)
	}
}

func TestRandDeltaUpSkewsPositive(t *testing.T) {
	s := New(11)
	pos := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		if s.RandDeltaUp() == 1 {
			pos++
		}
	}
	testutil.True(t, pos > trials/2, "expected a positive-leaning skew")
}

func TestOccursDegenerateProbabilitiesAlwaysFalse(t *testing.T) {
	s := New(1)
	testutil.False(t, s.Occurs(0))
	testutil.False(t, s.Occurs(1))
	testutil.False(t, s.Occurs(-1))
	testutil.False(t, s.Occurs(2))
}

func TestOccursRoughlyMatchesProbability(t *testing.T) {
	s := New(42)
	hits := 0
	const trials = 5000
	for i := 0; i < trials; i++ {
		if s.Occurs(0.5) {
			hits++
		}
	}
	frac := float64(hits) / trials
	testutil.True(t, frac > 0.4 && frac < 0.6, "occurs(0.5) should land near 50%")
}

func TestRandLogZeroSelfReturnsZero(t *testing.T) {
	s := New(1)
	testutil.Equal(t, s.RandLog(0), uint64(0))
}

func TestBigRangeStaysWithinBounds(t *testing.T) {
	s := New(1)
	n := big.NewInt(100)
	for i := 0; i < 20; i++ {
		v := s.BigRange(n)
		testutil.True(t, v.Sign() >= 0 && v.Cmp(n) < 0)
	}
}

func TestBigRangeNonPositiveBoundReturnsZero(t *testing.T) {
	s := New(1)
	v := s.BigRange(big.NewInt(0))
	testutil.Equal(t, v.Sign(), 0)
}
