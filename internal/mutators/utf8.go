package mutators

import "github.com/microsoft/rusty-radamsa/internal/rng"

func mutateUTF8Widen(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	out := append([]byte(nil), data...)
	if len(out) > 0 {
		p := s.RangeInt(len(out))
		b := out[p]
		// only widen a plain 6-bit-representable ASCII byte
		if b == b&0b111111 {
			wide := []byte{0b11000000, b | 0b10000000}
			tail := append([]byte(nil), out[p+1:]...)
			out = append(out[:p], wide...)
			out = append(out, tail...)
		}
	}
	return out, d
}

// funnyUnicode is the literal set of problematic code points and byte
// sequences the reference engine biases toward: BOMs, bidi overrides,
// illegal surrogate encodings, and NFC/NFKC-expansion traps.
var funnyUnicode = buildFunnyUnicode()

func buildFunnyUnicode() [][]byte {
	literal := [][]byte{
		[]byte("‮"), // Right to Left Override
		[]byte("‭"), // Left to Right Override
		[]byte("᠎"), // Mongolian Vowel Separator
		[]byte("⁠"), // Word Joiner
		[]byte("﻾"), // reserved
		[]byte("￿"), // not a character
		[]byte("࿭"), // unassigned
		{0xed, 0xba, 0xad},           // U+DEAD illegal low surrogate
		{0xed, 0xaa, 0xad},           // U+DAAD illegal high surrogate
		[]byte(""),             // private use char (Apple)
		[]byte("／"),             // full width solidus
		[]byte("\U0001D7D6"),         // MATHEMATICAL BOLD DIGIT EIGHT
		[]byte("ß"),             // IDNA deviant
		[]byte("﷽"),             // expands 11x/18x NFKC
		[]byte("ΐ"),             // expands 3x NFD
		[]byte("ᾂ"),             // expands 4x NFD
		[]byte("שּׁ"),             // expands 3x NFC
		[]byte("\U0001D160"),         // expands 3x NFC
		{0xf4, 0x8f, 0xbf, 0xbe},     // illegal outside U+10FFFF
		{239, 191, 191},              // 65535
		{240, 144, 128, 128},         // 65536
		{0xef, 0xbb, 0xbf},           // canonical utf8 BOM
		{0xfe, 0xff},                 // utf16 be BOM
		{0xff, 0xfe},                 // utf16 le BOM
		{0, 0, 0xff, 0xff},           // ascii null be
		{0xff, 0xff, 0, 0},           // ascii null le
		{43, 47, 118, 56},
		{43, 47, 118, 57},
		{43, 47, 118, 43},
		{43, 47, 118, 47},
		{247, 100, 76},
		{221, 115, 102, 115},
		{14, 254, 255},
		{251, 238, 40},
		{251, 238, 40, 255},
		{132, 49, 149, 51},
	}

	type interval struct{ lo, hi rune }
	ranges := []interval{
		{0x0009, 0x000d}, {0x00a0, 0x00a0}, {0x1680, 0x1680}, {0x180e, 0x180e},
		{0x2000, 0x200a}, {0x2028, 0x2028}, {0x2029, 0x2029}, {0x202f, 0x202f},
		{0x205f, 0x205f}, {0x3000, 0x3000}, {0x200e, 0x200f}, {0x202a, 0x202e},
		{0x200c, 0x200d}, {0x0345, 0x0345}, {0x00b6, 0x00b6}, {0x02d0, 0x02d1},
		{0xff70, 0xff70}, {0x02b0, 0x02b8}, {0xfdd0, 0xfdd0}, {0x034f, 0x034f},
		{0x115f, 0x1160}, {0x2065, 0x2069}, {0x3164, 0x3164}, {0xffa0, 0xffa0},
		{0xe0001, 0xe0001}, {0xe0020, 0xe007f}, {0x0e40, 0x0e44}, {0x1f4a9, 0x1f4a9},
	}
	for _, r := range ranges {
		for p := r.lo; p <= r.hi; p++ {
			literal = append(literal, []byte(string(p)))
		}
	}
	return literal
}

func mutateUTF8Insert(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	out := append([]byte(nil), data...)
	p := s.RangeInt(len(out) + 1)
	bytes := funnyUnicode[s.Elem(len(funnyUnicode))]
	tail := append([]byte(nil), out[p:]...)
	out = append(out[:p], bytes...)
	out = append(out, tail...)
	return out, d
}
