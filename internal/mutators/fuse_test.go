package mutators

import (
	"testing"

	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestFuseEmptyInputsReturnListaUnchanged(t *testing.T) {
	s := rng.New(1)
	out := fuse(s, []byte("abc"), nil)
	testutil.Equal(t, string(out), "abc")

	out2 := fuse(s, nil, []byte("xyz"))
	testutil.Equal(t, len(out2), 0)
}

func TestSuffixesOfCoversEveryStartingIndex(t *testing.T) {
	list := []byte("abcd")
	sufs := suffixesOf(list)
	testutil.Equal(t, len(sufs), len(list))
	for i, suf := range sufs {
		testutil.Equal(t, string(suf), string(list[i:]))
	}
}

func TestSplitPrefixesDedupsByFirstByte(t *testing.T) {
	prefixes := [][]byte{[]byte("aXY"), []byte("ab"), []byte("bcd")}
	newPrefixes, _ := splitPrefixes(prefixes, nil)
	seen := map[byte]bool{}
	for _, p := range newPrefixes {
		testutil.False(t, seen[p[0]], "expected at most one representative per leading byte")
		seen[p[0]] = true
	}
}

func TestFuseThisNeverGrowsBeyondSelfFuseBound(t *testing.T) {
	s := rng.New(77)
	data := []byte("the quick brown fox jumps over the lazy dog")
	out, delta := mutateFuseThis(s, data)
	testutil.NotNil(t, out)
	testutil.True(t, delta != 0 || delta == 0)
	testutil.True(t, len(out) <= 2*len(data)+1)
}

func TestFuseNextProducesBytes(t *testing.T) {
	s := rng.New(13)
	data := []byte("the quick brown fox jumps over the lazy dog")
	out, _ := mutateFuseNext(s, data)
	testutil.NotNil(t, out)
}

func TestFuseOldConcatenatesTwoFuses(t *testing.T) {
	s := rng.New(21)
	data := []byte("the quick brown fox jumps over the lazy dog")
	out, _ := mutateFuseOld(s, data)
	testutil.NotNil(t, out)
}

func TestFuseOnEmptyDataIsHarmless(t *testing.T) {
	s := rng.New(5)
	out, _ := mutateFuseThis(s, nil)
	testutil.Equal(t, len(out), 0)
}
