package generators

import (
	"io"
	"time"

	engineerrors "github.com/microsoft/rusty-radamsa/internal/errors"
	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/runtime/vfs"
)

// jumpStream watches a directory for newly created or written files and
// streams each one's bytes in turn as it appears, picking up wherever the
// reference engine's (unimplemented) "jump streamer" concept leaves off:
// a source that jumps between files as a fuzzing campaign drops new seeds
// into a directory.
type jumpStream struct {
	fs      vfs.FileSystem
	watcher vfs.Watcher
	rng     *rng.Source
	cur     vfs.File
	timeout time.Duration
}

// JumpWatcherFactory builds the Watcher a jump generator uses. Production
// code and this package's tests pass vfs.NewFSWatcher over the OS
// filesystem; a polling vfs.SimpleWatcher also satisfies vfs.Watcher.
type JumpWatcherFactory func() (vfs.Watcher, error)

func newJumpSource(src Source, s *rng.Source) error {
	return engineerrors.Configuration("jump-needs-factory", "jump generator requires NewJumpStream, not setFD")
}

// NewJumpStream constructs the directory-watching reader directly (the
// generator mux wires this in via a dedicated code path rather than
// Generator.setFD, since it needs a watcher factory the mux-level Source
// struct doesn't otherwise carry).
func NewJumpStream(fs vfs.FileSystem, dir string, watcherFactory JumpWatcherFactory, s *rng.Source) (*jumpStream, error) {
	w, err := watcherFactory()
	if err != nil {
		return nil, engineerrors.SourceUnavailable("watch-failed", err.Error())
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, engineerrors.SourceUnavailable("watch-add-failed", err.Error())
	}
	return &jumpStream{fs: fs, watcher: w, rng: s, timeout: 5 * time.Second}, nil
}

func (j *jumpStream) Read(buf []byte) (int, error) {
	for {
		if j.cur != nil {
			n, err := j.cur.Read(buf)
			if n > 0 {
				return n, nil
			}
			j.cur.Close()
			j.cur = nil
			if err != nil && err != io.EOF {
				return 0, err
			}
		}

		select {
		case ev, ok := <-j.watcher.Events():
			if !ok {
				return 0, io.EOF
			}
			if ev.Op&(vfs.OpCreate|vfs.OpWrite) == 0 {
				continue
			}
			f, err := j.fs.Open(ev.Path)
			if err != nil {
				continue
			}
			j.cur = f
		case <-time.After(j.timeout):
			return 0, io.EOF
		}
	}
}

func (j *jumpStream) Close() error {
	if j.cur != nil {
		j.cur.Close()
	}
	return j.watcher.Close()
}
