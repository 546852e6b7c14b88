// Package generators implements the data-source mux: stdin, file, tcp,
// udp, buffer, random, and jump generators, selected by a priority mux the
// same way internal/mutators selects mutators.
package generators

// GenType identifies one generator kind.
type GenType int

const (
	Stdin GenType = iota
	File
	TCPSocket
	UDPSocket
	Buffer
	Jump
	Random
)

var allGenTypes = []GenType{Stdin, File, TCPSocket, UDPSocket, Buffer, Jump, Random}

// DefaultGenerators is the normative default generator configuration string.
const DefaultGenerators = "random,buffer=10000,file=1000,jump=200,stdin=10000"

func (g GenType) ID() string {
	switch g {
	case Stdin:
		return "stdin"
	case File:
		return "file"
	case TCPSocket:
		return "tcp"
	case UDPSocket:
		return "udp"
	case Buffer:
		return "buffer"
	case Jump:
		return "jump"
	case Random:
		return "random"
	default:
		return ""
	}
}

func (g GenType) Info() string {
	switch g {
	case Stdin:
		return "Generator to read data from stdin"
	case File:
		return "Generator to read data from a file"
	case TCPSocket:
		return "Generator to read data from a tcp port"
	case UDPSocket:
		return "Generator to read data from a udp port"
	case Buffer:
		return "Generator to read data from buffer"
	case Jump:
		return "Generator streaming from a directory being watched for new files"
	case Random:
		return "Generator to make random bytes"
	default:
		return ""
	}
}

// seedBase mirrors the reference engine's per-kind seed derivation bases:
// stream generators share one base, buffer gets its own, and jump gets a
// distinct base again so directory-watch seeding doesn't collide with file
// seeding.
func (g GenType) seedBase() uint64 {
	switch g {
	case Buffer:
		return 42
	case Jump:
		return 0xfffffffff
	default:
		return 100000000000000
	}
}

// AllGenTypes returns every registered generator kind, for `list` output.
func AllGenTypes() []GenType {
	return append([]GenType(nil), allGenTypes...)
}

func byID(id string) (GenType, bool) {
	for _, g := range allGenTypes {
		if g.ID() == id {
			return g, true
		}
	}
	return 0, false
}
