package generators

import (
	"io"

	"github.com/microsoft/rusty-radamsa/internal/rng"
)

// randomStream produces nblocks worth of random data before reporting EOF,
// mirroring the reference engine's RandomStream generator.
type randomStream struct {
	rng     *rng.Source
	nblocks int
}

func newRandomStream(s *rng.Source, nblocks int) *randomStream {
	return &randomStream{rng: s, nblocks: nblocks}
}

func (r *randomStream) Read(buf []byte) (int, error) {
	if r.nblocks <= 0 {
		return 0, io.EOF
	}
	r.nblocks--
	r.rng.Bytes(buf)
	return len(buf), nil
}

func (r *randomStream) Close() error { return nil }
