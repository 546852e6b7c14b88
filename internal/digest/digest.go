// Package digest implements the uniqueness cache: a bounded set of hash
// digests used to skip re-emitting test cases already produced this run.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"math/big"
	"sync"

	"github.com/snksoft/crc"

	engineerrors "github.com/microsoft/rusty-radamsa/internal/errors"
)

// HashType identifies a digest algorithm the uniqueness cache can use.
type HashType int

const (
	Sha HashType = iota // default: SHA-256
	Sha256
	Sha512
	CrcDefault // default CRC family: CRC-64
	Crc32
	Crc64
	Crc82
)

// Checksum describes one registered hash id, mirroring the reference
// engine's init_digests table.
type Checksum struct {
	ID       string
	Desc     string
	HashType HashType
}

// RegisteredHashes is the ordered, complete list of hash ids the CLI's
// `list -hashes` can print and `-hash` can select.
var RegisteredHashes = []Checksum{
	{ID: "sha", Desc: "Default Hash Sha-256", HashType: Sha},
	{ID: "sha256", Desc: "Sha-256", HashType: Sha256},
	{ID: "sha512", Desc: "Sha-512", HashType: Sha512},
	{ID: "crc", Desc: "Default CRC-64", HashType: CrcDefault},
	{ID: "crc32", Desc: "CRC-32 (CKSUM)", HashType: Crc32},
	{ID: "crc64", Desc: "CRC-64 (Redis)", HashType: Crc64},
	{ID: "crc82", Desc: "CRC-82 (DARC)", HashType: Crc82},
}

// ByID finds a registered hash by its configuration string id.
func ByID(id string) (Checksum, bool) {
	for _, c := range RegisteredHashes {
		if c.ID == id {
			return c, true
		}
	}
	return Checksum{}, false
}

// Digest computes the digest of data under the given hash family. Sha512
// is dispatched to an actual SHA-512 digest (the upstream Rust source has
// a copy-paste bug routing its single-buffer Sha512 path through SHA-256;
// this port fixes it — see DESIGN.md Open Question 4).
func Digest(ht HashType, data []byte) []byte {
	switch ht {
	case Sha, Sha256:
		sum := sha256.Sum256(data)
		return sum[:]
	case Sha512:
		sum := sha512.Sum512(data)
		return sum[:]
	case Crc32:
		return crc32Of(data)
	case CrcDefault, Crc64:
		return crc64Of(data)
	case Crc82:
		return crc82Of(data)
	default:
		sum := sha256.Sum256(data)
		return sum[:]
	}
}

// crc32Params mirrors the Rust crc crate's CRC_32_CKSUM parameters.
var crc32Params = &crc.Parameters{
	Width: 32, Polynomial: 0x04C11DB7, Init: 0x00000000,
	ReflectIn: false, ReflectOut: false, FinalXor: 0xFFFFFFFF,
}

// crc64Params mirrors CRC_64_REDIS.
var crc64Params = &crc.Parameters{
	Width: 64, Polynomial: 0xad93d23594c935a9, Init: 0x0000000000000000,
	ReflectIn: true, ReflectOut: true, FinalXor: 0x0000000000000000,
}

func crc32Of(data []byte) []byte {
	h := crc.NewHash(crc32Params)
	h.Update(data)
	v := h.CRC32()
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func crc64Of(data []byte) []byte {
	h := crc.NewHash(crc64Params)
	h.Update(data)
	v := h.CRC64()
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(v >> (8 * i))
	}
	return out
}

// crc82Of implements CRC-82/DARC as a software LFSR over a big.Int
// register: no Go CRC library in the example pack (or the wider ecosystem)
// supports widths beyond 64 bits, so this is the one hash family
// implemented on top of math/big rather than a third-party CRC package.
var crc82Poly = mustBig("0x0308C0111011401440411")

func mustBig(hex string) *big.Int {
	n := new(big.Int)
	n.SetString(hex[2:], 16)
	return n
}

func crc82Of(data []byte) []byte {
	const width = 82
	reg := new(big.Int)
	// DARC is a reflected CRC: bits enter LSB-first into a right-shifting
	// register that is reduced by the bit-reversed polynomial.
	rev := new(big.Int)
	for i := 0; i < width; i++ {
		rev.SetBit(rev, width-1-i, crc82Poly.Bit(i))
	}

	for _, b := range data {
		for bit := 0; bit < 8; bit++ {
			inBit := uint(b>>uint(bit)) & 1
			lsb := reg.Bit(0)
			reg.Rsh(reg, 1)
			if lsb^inBit == 1 {
				reg.Xor(reg, rev)
			}
		}
	}

	out := make([]byte, (width+7)/8)
	b := reg.Bytes()
	copy(out[len(out)-len(b):], b)
	return out
}

// Checksums is the bounded uniqueness cache: Add reports whether a digest
// has already been seen, and rejects new digests with a CapacityExceeded
// error once the configured capacity is reached.
type Checksums struct {
	mu       sync.Mutex
	hashType HashType
	seen     map[string]bool
	max      int
}

// NewChecksums constructs a Checksums cache for the given hash family and
// capacity (the reference engine defaults max to 10000, matching
// MAX_CHECKSUM_RETRY).
func NewChecksums(ht HashType, max int) *Checksums {
	if max <= 0 {
		max = 10000
	}
	return &Checksums{hashType: ht, seen: make(map[string]bool), max: max}
}

// Add hashes data and records it. It returns (true, nil) if this digest was
// already present (a duplicate to skip), (false, nil) if it was fresh, and
// a CapacityExceeded error if the cache is full and cannot record any more
// entries.
func (c *Checksums) Add(data []byte) (duplicate bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sum := string(Digest(c.hashType, data))
	if c.seen[sum] {
		return true, nil
	}
	if len(c.seen) >= c.max {
		return false, engineerrors.CapacityExceeded("cache-full", "uniqueness cache is at capacity")
	}
	c.seen[sum] = true
	return false, nil
}

// Len returns the number of distinct digests recorded so far.
func (c *Checksums) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}
