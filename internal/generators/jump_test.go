package generators

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/runtime/vfs"
	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestNewJumpStreamFailsWithoutFactory(t *testing.T) {
	_, err := NewJumpStream(vfs.NewOS(), t.TempDir(), func() (vfs.Watcher, error) {
		return nil, os.ErrInvalid
	}, rng.New(1))
	testutil.Error(t, err)
}

func TestJumpStreamStreamsNewlyWrittenFile(t *testing.T) {
	dir := t.TempDir()
	fsys := vfs.NewOS()

	js, err := NewJumpStream(fsys, dir, vfs.NewFSWatcher, rng.New(1))
	if err != nil {
		t.Skip("fsnotify not supported in this environment:", err)
	}
	defer js.Close()

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "seed.bin"), []byte("fuzz me"), 0o644)
	}()

	buf := make([]byte, 64)
	done := make(chan struct{})
	var n int
	var readErr error
	go func() {
		n, readErr = js.Read(buf)
		close(done)
	}()

	select {
	case <-done:
		testutil.NoError(t, readErr)
		testutil.True(t, n > 0)
	case <-time.After(6 * time.Second):
		t.Skip("jump stream did not observe a filesystem event in time")
	}
}

func TestSetFDOnJumpKindRejectsDirectOpen(t *testing.T) {
	g := newGenerator(Jump)
	g.rng = rng.New(1)
	err := g.setFD(Source{})
	testutil.Error(t, err)
}
