package mutators

import (
	"testing"

	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestSplitLinesKeepsTrailingNewlinesPerLine(t *testing.T) {
	lines := splitLines([]byte("a\nbb\nccc"))
	testutil.Equal(t, len(lines), 3)
	testutil.Equal(t, string(lines[0]), "a\n")
	testutil.Equal(t, string(lines[1]), "bb\n")
	testutil.Equal(t, string(lines[2]), "ccc")
}

func TestSplitLinesEmptyInput(t *testing.T) {
	testutil.Equal(t, len(splitLines(nil)), 0)
}

func TestTryLinesRejectsBinaryLeadingLine(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, '\n'}
	testutil.Nil(t, tryLines(data))
}

func TestTryLinesAcceptsTextualInput(t *testing.T) {
	data := []byte("one\ntwo\nthree\n")
	lines := tryLines(data)
	testutil.NotNil(t, lines)
	testutil.Equal(t, len(lines), 3)
}

func TestListDelRemovesOneElement(t *testing.T) {
	s := rng.New(1)
	list := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	out := listDel(s, list)
	testutil.Equal(t, len(out), 2)
}

func TestListDupGrowsByOne(t *testing.T) {
	s := rng.New(2)
	list := [][]byte{[]byte("a"), []byte("b")}
	out := listDup(s, list)
	testutil.Equal(t, len(out), 3)
}

func TestListPermIsPermutationOfInput(t *testing.T) {
	s := rng.New(4)
	list := [][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d")}
	out := listPerm(s, list)
	testutil.Equal(t, len(out), len(list))
	counts := map[string]int{}
	for _, l := range list {
		counts[string(l)]++
	}
	for _, l := range out {
		counts[string(l)]--
	}
	for _, c := range counts {
		testutil.Equal(t, c, 0)
	}
}

func TestListDelSeqOnShortListIsNoop(t *testing.T) {
	s := rng.New(1)
	list := [][]byte{[]byte("only")}
	out := listDelSeq(s, list)
	testutil.Equal(t, len(out), 1)
}

func TestMutateLineDelOnTextualInput(t *testing.T) {
	s := rng.New(5)
	data := []byte("one\ntwo\nthree\n")
	out, delta := mutateLineDel(s, data)
	testutil.Equal(t, delta, 1)
	testutil.True(t, len(out) < len(data))
}

func TestMutateLineDelOnBinaryInputIsNoop(t *testing.T) {
	s := rng.New(5)
	data := append([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}, '\n')
	out, delta := mutateLineDel(s, data)
	testutil.Equal(t, string(out), string(data))
	testutil.Equal(t, delta, -1)
}

func TestMutateLineDupGrowsLineCount(t *testing.T) {
	s := rng.New(6)
	data := []byte("one\ntwo\nthree\n")
	out, delta := mutateLineDup(s, data)
	testutil.Equal(t, delta, 1)
	testutil.True(t, len(out) > len(data))
}

func TestMutateLinePermReordersLines(t *testing.T) {
	s := rng.New(8)
	data := []byte("one\ntwo\nthree\nfour\n")
	out, delta := mutateLinePerm(s, data)
	testutil.Equal(t, delta, 1)
	testutil.Equal(t, len(out), len(data))
}
