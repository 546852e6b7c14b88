// Package output implements the output sink mux: stdout, file, tcp/udp
// server and client, an in-memory buffer, a hash-templated path writer,
// and a wrapping text template, any number of which can receive a given
// fuzzed block simultaneously.
package output

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	engineerrors "github.com/microsoft/rusty-radamsa/internal/errors"
)

type Kind int

const (
	Stdout Kind = iota
	File
	TCPServer
	TCPClient
	UDPServer
	UDPClient
	Buffer
	Hashing
	Template
)

// DefaultOutputs is the normative default output configuration string.
const DefaultOutputs = "-"

func (k Kind) ID() string {
	switch k {
	case Stdout:
		return "-"
	case File:
		return "file"
	case TCPServer:
		return "tcpserver"
	case TCPClient:
		return "tcpclient"
	case UDPServer:
		return "udpserver"
	case UDPClient:
		return "udpclient"
	case Buffer:
		return "buffer"
	case Hashing:
		return "hash"
	case Template:
		return "template"
	default:
		return ""
	}
}

func (k Kind) Info() string {
	switch k {
	case Stdout:
		return "Write output data to Stdout"
	case File:
		return "Write output data to a binary file"
	case TCPServer:
		return "Write output data to a tcp port as server"
	case TCPClient:
		return "Write output data to a tcp port as client"
	case UDPServer:
		return "Write output data to a udp port as server"
	case UDPClient:
		return "Write output data to a udp port as client"
	case Buffer:
		return "Write output data to a buffer address or vector"
	case Hashing:
		return "Write output variations to a hashing directory using %n and %s as in the template path (i.e. /tmp/fuzz-%n.%s)"
	case Template:
		return `Output template. %f is fuzzed data. e.g. "<html>%f</html>"`
	default:
		return ""
	}
}

var allKinds = []Kind{Stdout, File, TCPServer, TCPClient, UDPServer, UDPClient, Buffer, Hashing, Template}

func byID(id string) (Kind, bool) {
	for _, k := range allKinds {
		if k.ID() == id {
			return k, true
		}
	}
	return 0, false
}

// AllKinds returns every registered output kind, for `list` output.
func AllKinds() []Kind {
	return append([]Kind(nil), allKinds...)
}

type sink struct {
	kind     Kind
	path     string
	tmplText string
	w        io.WriteCloser
	buf      *bytes.Buffer
	nWritten int
}

// Sinks holds every configured output destination plus the truncate/resize
// options that govern how mux writes interact with a caller-supplied
// output buffer.
type Sinks struct {
	sinks    []*sink
	Truncate int
	Resize   bool
	nextHash int
}

func New() *Sinks {
	return &Sinks{}
}

// Configure parses an output specifier list: sink ids, optionally each
// followed by path arguments consumed until the next recognized sink id
// (mirroring string_outputs's greedy-path-consumption parse). "-" and
// "buffer" take no paths.
func Configure(input []string) (*Sinks, error) {
	s := &Sinks{}
	i := 0
	for i < len(input) {
		tok := strings.TrimSpace(input[i])
		kind, ok := byID(tok)
		if !ok {
			return nil, engineerrors.Configuration("unknown-output", fmt.Sprintf("unknown output %q", tok))
		}
		i++
		sk := &sink{kind: kind}
		if kind != Buffer && kind != Stdout {
			var paths []string
			for i < len(input) {
				if _, isKind := byID(strings.TrimSpace(input[i])); isKind {
					break
				}
				paths = append(paths, input[i])
				i++
			}
			if len(paths) > 0 {
				sk.path = paths[0]
				for _, p := range paths[1:] {
					clone := &sink{kind: kind, path: p}
					s.sinks = append(s.sinks, clone)
				}
			}
		}
		s.sinks = append(s.sinks, sk)
	}
	return s, nil
}

// Open resolves each sink's underlying writer. A sink that fails to open
// is dropped (mirroring init_pipes's fallible-per-sink filtering).
func (s *Sinks) Open() {
	var live []*sink
	for _, sk := range s.sinks {
		if err := sk.open(); err == nil {
			live = append(live, sk)
		}
	}
	s.sinks = live
}

func (sk *sink) open() error {
	switch sk.kind {
	case Stdout:
		sk.w = os.Stdout
		return nil
	case File:
		f, err := os.Create(sk.path)
		if err != nil {
			return err
		}
		sk.w = f
		return nil
	case TCPServer:
		ln, err := net.Listen("tcp", sk.path)
		if err != nil {
			return err
		}
		conn, err := ln.Accept()
		ln.Close()
		if err != nil {
			return err
		}
		sk.w = conn
		return nil
	case TCPClient:
		conn, err := net.Dial("tcp", sk.path)
		if err != nil {
			return err
		}
		sk.w = conn
		return nil
	case UDPServer:
		addr, err := net.ResolveUDPAddr("udp", sk.path)
		if err != nil {
			return err
		}
		conn, err := net.ListenUDP("udp", addr)
		if err != nil {
			return err
		}
		sk.w = conn
		return nil
	case UDPClient:
		conn, err := net.Dial("udp", sk.path)
		if err != nil {
			return err
		}
		sk.w = conn
		return nil
	case Buffer:
		sk.buf = &bytes.Buffer{}
		return nil
	case Hashing:
		sk.tmplText = sk.path
		return nil
	case Template:
		sk.tmplText = sk.path
		sk.w = os.Stdout
		return nil
	default:
		return engineerrors.Configuration("unknown-output", "unknown output kind")
	}
}

// Write sends (possibly truncated) data to every sink, also populating
// outBuf from the first Buffer sink present, resized or length-clamped per
// the Resize option.
func (s *Sinks) Write(data []byte, outBuf *[]byte) (int, error) {
	d := data
	if s.Truncate > 0 && s.Truncate < len(data) {
		d = data[:s.Truncate]
	}
	seq := s.nextHash
	s.nextHash++
	for _, sk := range s.sinks {
		if err := sk.write(d, seq); err != nil {
			return 0, err
		}
		if sk.kind == Buffer && outBuf != nil {
			if s.Resize {
				resizeLen := len(d)
				if s.Truncate > 0 {
					resizeLen = s.Truncate
				}
				if resizeLen > len(d) {
					resizeLen = len(d)
				}
				*outBuf = append([]byte(nil), d[:resizeLen]...)
			} else {
				maxLen := len(*outBuf)
				if len(d) < maxLen {
					maxLen = len(d)
				}
				copy(*outBuf, d[:maxLen])
			}
		}
	}
	return len(d), nil
}

func (sk *sink) write(data []byte, seq int) error {
	switch sk.kind {
	case Buffer:
		sk.buf.Reset()
		sk.buf.Write(data)
		return nil
	case Hashing:
		path := expandTemplate(sk.tmplText, seq, data)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = f.Write(data)
		return err
	case Template:
		rendered := strings.ReplaceAll(sk.tmplText, "%f", string(data))
		if sk.w != nil {
			_, err := sk.w.Write([]byte(rendered))
			return err
		}
		return nil
	default:
		if sk.w == nil {
			return nil
		}
		_, err := sk.w.Write(data)
		return err
	}
}

// expandTemplate resolves %n (sequence number) and %s (byte size) in a
// hashing-output path template, e.g. "/tmp/fuzz-%n.%s".
func expandTemplate(tmpl string, seq int, data []byte) string {
	out := strings.ReplaceAll(tmpl, "%n", strconv.Itoa(seq))
	out = strings.ReplaceAll(out, "%s", strconv.Itoa(len(data)))
	return out
}

// Close releases every sink's underlying writer.
func (s *Sinks) Close() {
	for _, sk := range s.sinks {
		if sk.w != nil {
			sk.w.Close()
		}
	}
}
