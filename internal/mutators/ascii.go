package mutators

import "github.com/microsoft/rusty-radamsa/internal/rng"

// Lightweight ASCII text lexer and "silly string" injector, mirroring
// original_source/src/mutations/ascii.rs. Unlike the real Radamsa, this
// doesn't identify quote delimiters yet; it just separates texty runs from
// raw byte runs.

var sillyStrings = [][]byte{
	[]byte("%n"), []byte("%n"), []byte("%s"), []byte("%d"), []byte("%p"), []byte("%#x"),
	[]byte(`\00`), []byte("aaaa%d%n"),
	[]byte("`xcalc`"), []byte(";xcalc"), []byte("$(xcalc)"), []byte("!xcalc"), []byte(`"xcalc`), []byte("'xcalc"),
	[]byte(`\x00`), []byte(`\r\n`), []byte(`\r`), []byte(`\n`), []byte(`\x0a`), []byte(`\x0d`),
	[]byte("NaN"), []byte("+inf"),
	[]byte("$PATH"),
	[]byte("$!!"), []byte("!!"), []byte("&#000;"), []byte(` `),
	[]byte("$&"), []byte("$+"), []byte("$`"), []byte("$'"), []byte("$1"),
}

// randomBadness concatenates between 1 and 19 random silly strings.
func randomBadness(s *rng.Source) []byte {
	n := 1 + s.RangeInt(19)
	var out []byte
	for i := 0; i < n; i++ {
		out = append(out, sillyStrings[s.Elem(len(sillyStrings))]...)
	}
	return out
}

var newlineCounts = []int{127, 128, 255, 256, 16383, 16384, 32767, 32768, 65535, 65536}

// mutateTextData inserts/replaces injected badness or a burst of newlines
// at a random position within a texty chunk.
func mutateTextData(s *rng.Source, data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	idx := s.RangeInt(len(data))
	switch s.RangeInt(3) {
	case 0:
		badness := randomBadness(s)
		out := append([]byte(nil), data[:idx]...)
		out = append(out, badness...)
		out = append(out, data[idx:]...)
		return out
	case 1:
		badness := randomBadness(s)
		out := append([]byte(nil), data[:idx]...)
		out = append(out, badness...)
		return out
	default:
		numAs := 0
		choice := s.RangeInt(11)
		if choice <= 9 {
			numAs = newlineCounts[choice]
		} else {
			numAs = s.RangeInt(1024)
		}
		ins := make([]byte, numAs)
		for i := range ins {
			ins[i] = 0xa
		}
		out := append([]byte(nil), data[:idx]...)
		out = append(out, ins...)
		out = append(out, data[idx:]...)
		return out
	}
}

func isTexty(b byte) bool {
	return b == 9 || b == 10 || b == 13 || (b >= 31 && b <= 125)
}

func isTextyEnough(data []byte) bool {
	const minTexty = 6
	n := minTexty
	if len(data) < n {
		n = len(data)
	}
	for i := 0; i < n; i++ {
		if !isTexty(data[i]) {
			return false
		}
	}
	return true
}

type lexKind int

const (
	lexText lexKind = iota
	lexByte
)

type lexChunk struct {
	kind lexKind
	data []byte
}

type asciiLex struct {
	chunks []lexChunk
}

// lexAscii splits data into alternating texty and raw-byte chunks.
func lexAscii(data []byte) *asciiLex {
	var chunks []lexChunk
	var seenData []byte
	i := 0
	for i < len(data) {
		if isTextyEnough(data[i:]) {
			if len(seenData) > 0 {
				chunks = append(chunks, lexChunk{lexByte, seenData})
				seenData = nil
			}
			var seenText []byte
			for i < len(data) && isTexty(data[i]) {
				seenText = append(seenText, data[i])
				i++
			}
			chunks = append(chunks, lexChunk{lexText, seenText})
		} else {
			seenData = append(seenData, data[i])
			i++
		}
	}
	if len(seenData) > 0 {
		chunks = append(chunks, lexChunk{lexByte, seenData})
	}
	return &asciiLex{chunks: chunks}
}

func (a *asciiLex) firstBlockHasText() bool {
	if len(a.chunks) == 0 {
		return false
	}
	return a.chunks[0].kind != lexByte
}

// mutate perturbs a random text chunk, retrying until it lands on one (raw
// byte chunks are skipped, mirroring the reference loop-until-text logic).
func (a *asciiLex) mutate(s *rng.Source) {
	for {
		i := s.Elem(len(a.chunks))
		if a.chunks[i].kind == lexText {
			a.chunks[i].data = mutateTextData(s, a.chunks[i].data)
			return
		}
	}
}

func (a *asciiLex) unlex() []byte {
	var out []byte
	for _, c := range a.chunks {
		out = append(out, c.data...)
	}
	return out
}

func mutateAsciiBad(s *rng.Source, data []byte) ([]byte, int) {
	cs := lexAscii(data)
	if cs.firstBlockHasText() {
		cs.mutate(s)
		return cs.unlex(), s.RandDeltaUp()
	}
	return append([]byte(nil), data...), -1
}
