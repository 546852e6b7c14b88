package generators

import (
	"bytes"
	"io"
	"net"
	"os"
	"time"

	engineerrors "github.com/microsoft/rusty-radamsa/internal/errors"
	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/runtime/vfs"
	"github.com/microsoft/rusty-radamsa/internal/shared"
)

// reader is the minimal surface every generator's underlying source needs:
// read arbitrarily-sized blocks, and be closed once exhausted.
type reader interface {
	Read(buf []byte) (int, error)
	Close() error
}

// Source configures how a generator resolves its underlying reader: a
// filesystem (for file/buffer), one in-memory buffer (for buffer), or a
// set of candidate file paths (for file, chosen randomly per mux pass).
type Source struct {
	FS      vfs.FileSystem
	Paths   []string
	Buffer  []byte
	Address string // host:port for tcp/udp
}

type bufferReader struct{ *bytes.Reader }

func (b *bufferReader) Close() error { return nil }

// Generator is one live entry in a generator mux: its kind, priority, and
// the RNG-seeded reader state backing next-block reads.
type Generator struct {
	Kind      GenType
	Priority  int
	weight    int
	fd        reader
	blockSize int
	seed      uint64
	rng       *rng.Source
}

func newGenerator(kind GenType) *Generator {
	return &Generator{Kind: kind}
}

func (g *Generator) Priority_() int { return g.Priority }

// init derives this generator's own RNG stream from the mux RNG and picks
// an initial randomized block size, mirroring the reference Generator::init.
func (g *Generator) init(s *rng.Source) {
	g.seed = s.Range(g.Kind.seedBase())
	g.rng = rng.New(g.seed)
	g.blockSize = randBlockSize(g.rng)
}

func randBlockSize(s *rng.Source) int {
	v := int(s.Range(shared.MaxBlockSize))
	if v < shared.MinBlockSize {
		return shared.MinBlockSize
	}
	return v
}

// setFD opens the underlying reader for this generator's kind.
func (g *Generator) setFD(src Source) error {
	switch g.Kind {
	case Stdin:
		if isTerminalStdin() {
			return engineerrors.SourceUnavailable("no-stdin", "stdin is a terminal, not a data source")
		}
		g.fd = os.Stdin
		return nil

	case File:
		if src.FS == nil || len(src.Paths) == 0 {
			return engineerrors.SourceUnavailable("no-path", "file generator needs at least one path")
		}
		p := src.Paths[int(g.rng.Range(uint64(len(src.Paths))))]
		f, err := src.FS.Open(p)
		if err != nil {
			return engineerrors.SourceUnavailable("open-failed", err.Error())
		}
		g.fd = f
		return nil

	case Buffer:
		if src.Buffer == nil {
			return engineerrors.SourceUnavailable("no-buffer", "buffer generator needs in-memory data")
		}
		g.fd = &bufferReader{bytes.NewReader(src.Buffer)}
		return nil

	case TCPSocket:
		if src.Address == "" {
			return engineerrors.SourceUnavailable("no-address", "tcp generator needs an address")
		}
		ln, err := net.Listen("tcp", src.Address)
		if err != nil {
			return engineerrors.SourceUnavailable("listen-failed", err.Error())
		}
		defer ln.Close()
		conn, err := ln.Accept()
		if err != nil {
			return engineerrors.SourceUnavailable("accept-failed", err.Error())
		}
		g.fd = conn
		return nil

	case UDPSocket:
		if src.Address == "" {
			return engineerrors.SourceUnavailable("no-address", "udp generator needs an address")
		}
		addr, err := net.ResolveUDPAddr("udp", src.Address)
		if err != nil {
			return engineerrors.SourceUnavailable("resolve-failed", err.Error())
		}
		conn, err := net.ListenUDP("udp", addr)
		if err != nil {
			return engineerrors.SourceUnavailable("listen-failed", err.Error())
		}
		conn.SetReadDeadline(time.Now().Add(10 * time.Second))
		g.fd = conn
		return nil

	case Random:
		g.fd = newRandomStream(g.rng, 1+int(g.rng.Range(99)))
		return nil

	case Jump:
		return newJumpSource(src, g.rng)

	default:
		return engineerrors.SourceUnavailable("unknown-kind", "unknown generator kind")
	}
}

// nextBlock reads the generator's current block size worth of data,
// reporting whether this was the final (possibly short) block.
func (g *Generator) nextBlock() ([]byte, bool) {
	if g.fd == nil {
		return nil, true
	}
	buf := make([]byte, g.blockSize)
	n, err := io.ReadFull(g.fd, buf)
	if n == 0 {
		return nil, true
	}
	if n < g.blockSize || err != nil {
		return buf[:n], true
	}
	g.blockSize = randBlockSize(g.rng)
	return buf, false
}
