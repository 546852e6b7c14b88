package mutators

import (
	"bytes"
	"testing"

	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestMutateByteDropShrinksByOne(t *testing.T) {
	s := rng.New(1)
	in := []byte("hello")
	out, _ := mutateByteDrop(s, in)
	testutil.Equal(t, len(out), len(in)-1)
}

func TestMutateByteDropEmptyIsNoop(t *testing.T) {
	s := rng.New(1)
	out, _ := mutateByteDrop(s, nil)
	testutil.Equal(t, len(out), 0)
}

func TestMutateByteFlipChangesExactlyOneBit(t *testing.T) {
	s := rng.New(42)
	in := []byte{0x00, 0x00, 0x00, 0x00}
	out, _ := mutateByteFlip(s, in)
	testutil.Equal(t, len(out), len(in))

	diff := 0
	for i := range in {
		diff += popcount(in[i] ^ out[i])
	}
	testutil.Equal(t, diff, 1)
}

func TestMutateByteInsertGrowsByOne(t *testing.T) {
	s := rng.New(7)
	in := []byte("abc")
	out, _ := mutateByteInsert(s, in)
	testutil.Equal(t, len(out), len(in)+1)
}

func TestMutateByteRepeatNeverShrinks(t *testing.T) {
	s := rng.New(3)
	in := []byte("radamsa")
	out, _ := mutateByteRepeat(s, in)
	testutil.True(t, len(out) >= len(in))
}

func TestMutateSeqDelUsesListDelSeqBytes(t *testing.T) {
	s := rng.New(9)
	in := bytes.Repeat([]byte("x"), 50)
	out, _ := mutateSeqDel(s, in)
	testutil.True(t, len(out) <= len(in))
}

func TestMutateBytePermIsPermutationOfWindow(t *testing.T) {
	s := rng.New(11)
	in := []byte("0123456789abcdefghij")
	out, _ := mutateBytePerm(s, in)
	testutil.Equal(t, len(out), len(in))

	var a, b [256]int
	for _, c := range in {
		a[c]++
	}
	for _, c := range out {
		b[c]++
	}
	testutil.Equal(t, a, b)
}

func popcount(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}
