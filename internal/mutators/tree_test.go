package mutators

import (
	"bytes"
	"testing"

	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestBuildBinaryTreeRoundtripsUnchanged(t *testing.T) {
	data := []byte("(a,(b,c),d)")
	tr := buildBinaryTree(data)
	got := tr.treeToVec(tr.root, data)
	testutil.Equal(t, string(got), string(data))
}

func TestBuildBinaryTreeHandlesUnmatchedOpen(t *testing.T) {
	data := []byte("(a,(b,c,d")
	tr := buildBinaryTree(data)
	got := tr.treeToVec(tr.root, data)
	testutil.Equal(t, string(got), string(data))
}

func TestPartialParseRejectsBinarish(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	testutil.Nil(t, partialParse(data))
}

func TestSublistExcludesRootAndEmptyPairs(t *testing.T) {
	data := []byte("(a,(),c)")
	tr := buildBinaryTree(data)
	ids := tr.sublist()
	for _, id := range ids {
		testutil.True(t, id != tr.root)
		n := tr.nodes[id]
		testutil.True(t, n.end > n.start)
	}
}

func TestSublistExcludesUndelimitedLeaves(t *testing.T) {
	data := []byte("(a)")
	tr := buildBinaryTree(data)
	ids := tr.sublist()
	testutil.Equal(t, len(ids), 1)
	n := tr.nodes[ids[0]]
	testutil.True(t, n.delim != [2]byte{0, 0})
	testutil.Equal(t, string(data[n.start:n.end]), "(a)")
}

func TestBuildBinaryTreeDropsChildrenBeyondMaxLevels(t *testing.T) {
	data := bytes.Repeat([]byte("("), maxLevels+50)
	tr := buildBinaryTree(data)
	testutil.Equal(t, len(tr.nodes), maxLevels)
}

func TestMutateTreeDelShrinksOutput(t *testing.T) {
	s := rng.New(1)
	data := []byte("(a,(b,c),d,(e,f))")
	out, delta := mutateTreeDel(s, data)
	if out == nil {
		testutil.Equal(t, delta, -1)
		return
	}
	testutil.Equal(t, delta, 1)
	testutil.True(t, len(out) < len(data))
}

func TestMutateTreeDupGrowsOutput(t *testing.T) {
	s := rng.New(2)
	data := []byte("(a,(b,c),d,(e,f))")
	out, delta := mutateTreeDup(s, data)
	if out == nil {
		testutil.Equal(t, delta, -1)
		return
	}
	testutil.Equal(t, delta, 1)
	testutil.True(t, len(out) > len(data))
}

func TestMutateTreeOpsOnBinarishDataAlwaysFail(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	s := rng.New(3)
	for _, fn := range []func(*rng.Source, []byte) ([]byte, int){
		mutateTreeDel, mutateTreeDup, mutateTreeStutter, mutateTreeSwap1, mutateTreeSwap2,
	} {
		out, delta := fn(s, data)
		testutil.Nil(t, out)
		testutil.Equal(t, delta, -1)
	}
}

func TestMutateTreeStutterRepeatsPath(t *testing.T) {
	s := rng.New(4)
	data := []byte("(a,(b,c),d,(e,f),(g,h),(i,j))")
	out, delta := mutateTreeStutter(s, data)
	if out == nil {
		testutil.Equal(t, delta, -1)
		return
	}
	testutil.Equal(t, delta, 1)
	testutil.True(t, len(out) >= len(data))
}
