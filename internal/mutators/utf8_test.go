package mutators

import (
	"testing"

	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestMutateUTF8WidenOnEmptyIsNoop(t *testing.T) {
	s := rng.New(1)
	out, _ := mutateUTF8Widen(s, nil)
	testutil.Equal(t, len(out), 0)
}

func TestMutateUTF8WidenGrowsByOneOnAsciiByte(t *testing.T) {
	s := rng.New(2)
	in := []byte{0x41}
	out, _ := mutateUTF8Widen(s, in)
	testutil.True(t, len(out) == len(in) || len(out) == len(in)+1)
}

func TestMutateUTF8InsertGrowsOutput(t *testing.T) {
	s := rng.New(3)
	in := []byte("hello world")
	out, _ := mutateUTF8Insert(s, in)
	testutil.True(t, len(out) > len(in))
}

func TestMutateUTF8InsertOnEmptyInput(t *testing.T) {
	s := rng.New(4)
	out, _ := mutateUTF8Insert(s, nil)
	testutil.True(t, len(out) > 0)
}

func TestFunnyUnicodeTableIsNonEmptyAndNoEntryIsEmpty(t *testing.T) {
	testutil.True(t, len(funnyUnicode) > 0)
	for _, entry := range funnyUnicode {
		testutil.True(t, len(entry) > 0)
	}
}
