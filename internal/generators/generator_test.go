package generators

import (
	"testing"

	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/runtime/vfs"
	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestMuxSelectPicksBufferGeneratorWhenOnlyOneEnabled(t *testing.T) {
	m := New()
	testutil.NoError(t, m.Configure("buffer=10"))
	s := rng.New(1)
	gen := m.Select(s, Source{FS: vfs.NewMem(), Buffer: []byte("seed data")}, nil)
	testutil.NotNil(t, gen)
	testutil.Equal(t, gen.Kind, Buffer)
}

func TestMuxSelectReturnsNilWhenNoGeneratorCanOpen(t *testing.T) {
	m := New()
	testutil.NoError(t, m.Configure("file=10"))
	s := rng.New(1)
	gen := m.Select(s, Source{FS: vfs.NewMem()}, nil)
	testutil.Nil(t, gen)
}

func TestMuxSelectPrefersHigherPriorityGenerator(t *testing.T) {
	m := New()
	testutil.NoError(t, m.Configure("buffer=1,random=100"))
	s := rng.New(1)
	gen := m.Select(s, Source{FS: vfs.NewMem(), Buffer: []byte("x")}, nil)
	testutil.NotNil(t, gen)
	testutil.Equal(t, gen.Kind, Random)
}

func TestNextBlockReadsBufferContentFully(t *testing.T) {
	m := New()
	testutil.NoError(t, m.Configure("buffer=10"))
	s := rng.New(7)
	data := make([]byte, 5000)
	for i := range data {
		data[i] = byte(i)
	}
	gen := m.Select(s, Source{FS: vfs.NewMem(), Buffer: data}, nil)
	testutil.NotNil(t, gen)

	var got []byte
	for {
		block, last := NextBlock(gen)
		got = append(got, block...)
		if last {
			break
		}
	}
	testutil.Equal(t, len(got), len(data))
}

func TestNextBlockOnNilFDReturnsLastImmediately(t *testing.T) {
	g := newGenerator(Buffer)
	block, last := g.nextBlock()
	testutil.Nil(t, block)
	testutil.True(t, last)
}

func TestRandomGeneratorProducesBoundedBlocks(t *testing.T) {
	m := New()
	testutil.NoError(t, m.Configure("random=10"))
	s := rng.New(3)
	gen := m.Select(s, Source{FS: vfs.NewMem()}, nil)
	testutil.NotNil(t, gen)

	total := 0
	for {
		block, last := NextBlock(gen)
		total += len(block)
		if last {
			break
		}
	}
	testutil.True(t, total > 0)
}

func TestDefaultFSReturnsOSFilesystem(t *testing.T) {
	fsys := DefaultFS()
	testutil.NotNil(t, fsys)
}
