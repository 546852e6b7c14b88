package shared

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestIsBinarishDetectsNulByte(t *testing.T) {
	testutil.True(t, IsBinarish([]byte{'a', 'b', 0x00, 'c'}))
}

func TestIsBinarishDetectsHighBit(t *testing.T) {
	testutil.True(t, IsBinarish([]byte{'a', 0x80, 'c'}))
}

func TestIsBinarishEightCleanBytesIsNotBinarish(t *testing.T) {
	testutil.False(t, IsBinarish([]byte("abcdefgh")))
}

func TestIsBinarishShortCleanRunIsNotBinarish(t *testing.T) {
	testutil.False(t, IsBinarish([]byte("abc")))
}

func TestIsBinarishEmptyIsNotBinarish(t *testing.T) {
	testutil.False(t, IsBinarish(nil))
}

func TestExpandFilesPassesSocketAddressesThrough(t *testing.T) {
	out, err := ExpandFiles([]string{"127.0.0.1:8080"})
	testutil.NoError(t, err)
	testutil.Equal(t, len(out), 1)
	testutil.Equal(t, out[0], "127.0.0.1:8080")
}

func TestExpandFilesGlobsExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		testutil.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	out, err := ExpandFiles([]string{dir})
	testutil.NoError(t, err)
	testutil.Equal(t, len(out), 2)
}

func TestExpandFilesNoMatchReturnsArgumentUnchanged(t *testing.T) {
	out, err := ExpandFiles([]string{"/nonexistent/path/nothing-*.bin"})
	testutil.NoError(t, err)
	testutil.Equal(t, len(out), 1)
}

type fakeWeighted struct{ p int }

func (f fakeWeighted) Priority() int { return f.p }

func TestChoosePrioritySelectsByWeight(t *testing.T) {
	items := []fakeWeighted{{p: 1}, {p: 1}, {p: 1}}
	got, ok := ChoosePriority(items, 0)
	testutil.True(t, ok)
	testutil.Equal(t, got, items[0])

	got, ok = ChoosePriority(items, 1)
	testutil.True(t, ok)
	testutil.Equal(t, got, items[1])
}

func TestChoosePriorityEmptyListFails(t *testing.T) {
	_, ok := ChoosePriority([]fakeWeighted{}, 0)
	testutil.False(t, ok)
}

func TestSortDescendingByPriorityOrdersHighestFirst(t *testing.T) {
	items := []fakeWeighted{{p: 1}, {p: 5}, {p: 3}}
	SortDescendingByPriority(items)
	testutil.Equal(t, items[0].p, 5)
	testutil.Equal(t, items[1].p, 3)
	testutil.Equal(t, items[2].p, 1)
}
