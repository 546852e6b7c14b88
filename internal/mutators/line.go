package mutators

import (
	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/shared"
)

// Generic list operations shared by the line mutators (and, for sequence
// deletion, the raw byte mutator). Mirrors original_source/src/generic.rs.

func listDelSeqBytes(s *rng.Source, data []byte) []byte {
	lines := make([][]byte, len(data))
	for i := range data {
		lines[i] = data[i : i+1]
	}
	out := listDelSeq(s, lines)
	return concatBytes(out)
}

func concatBytes(lines [][]byte) []byte {
	var out []byte
	for _, l := range lines {
		out = append(out, l...)
	}
	return out
}

func listDelSeq(s *rng.Source, list [][]byte) [][]byte {
	if len(list) < 2 {
		return list
	}
	start := s.RangeInt(len(list) - 1)
	end := start + 1 + s.RangeInt(len(list)-start-1)
	out := append([][]byte(nil), list[:start]...)
	out = append(out, list[end:]...)
	return out
}

func listDel(s *rng.Source, list [][]byte) [][]byte {
	if len(list) == 0 {
		return list
	}
	p := s.RangeInt(len(list))
	out := append([][]byte(nil), list[:p]...)
	out = append(out, list[p+1:]...)
	return out
}

func listDup(s *rng.Source, list [][]byte) [][]byte {
	if len(list) == 0 {
		return list
	}
	p := s.RangeInt(len(list))
	out := append([][]byte(nil), list[:p+1]...)
	out = append(out, list[p])
	out = append(out, list[p+1:]...)
	return out
}

func listClone(s *rng.Source, list [][]byte) [][]byte {
	if len(list) == 0 {
		return list
	}
	from := s.Elem(len(list))
	to := s.RangeInt(len(list) + 1)
	out := append([][]byte(nil), list[:to]...)
	out = append(out, list[from])
	out = append(out, list[to:]...)
	return out
}

func listSwap(s *rng.Source, list [][]byte) [][]byte {
	if len(list) < 2 {
		return list
	}
	out := append([][]byte(nil), list...)
	i := s.RangeInt(len(out))
	j := s.RangeInt(len(out))
	out[i], out[j] = out[j], out[i]
	return out
}

func listPerm(s *rng.Source, list [][]byte) [][]byte {
	out := append([][]byte(nil), list...)
	for i := len(out) - 1; i > 0; i-- {
		j := s.RangeInt(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func listRepeat(s *rng.Source, list [][]byte) [][]byte {
	if len(list) == 0 {
		return list
	}
	p := s.Elem(len(list))
	n := int(s.RandLog(10))
	out := append([][]byte(nil), list[:p+1]...)
	for i := 0; i < n; i++ {
		out = append(out, list[p])
	}
	out = append(out, list[p+1:]...)
	return out
}

func listIns(s *rng.Source, list [][]byte) [][]byte {
	if len(list) == 0 {
		return list
	}
	from := s.Elem(len(list))
	to := s.RangeInt(len(list) + 1)
	out := append([][]byte(nil), list[:to]...)
	out = append(out, list[from])
	out = append(out, list[to:]...)
	return out
}

func listReplace(s *rng.Source, list [][]byte) [][]byte {
	if len(list) < 2 {
		return list
	}
	from := s.Elem(len(list))
	to := s.Elem(len(list))
	out := append([][]byte(nil), list...)
	out[to] = out[from]
	return out
}

// splitLines splits data into lines, each retaining its trailing '\n' (the
// last line retains whatever tail it has, with no trailing separator).
func splitLines(data []byte) [][]byte {
	var lines [][]byte
	prev := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, data[prev:i+1])
			prev = i + 1
		}
	}
	if prev < len(data) {
		lines = append(lines, data[prev:])
	}
	return lines
}

// tryLines splits data into lines and rejects (returns nil) input whose
// first line looks binary — line mutators need a textual gate so they
// don't shred binary framing.
func tryLines(data []byte) [][]byte {
	if data == nil {
		return nil
	}
	lines := splitLines(data)
	if len(lines) == 0 {
		return nil
	}
	if isBinarishLine(lines[0]) {
		return nil
	}
	return lines
}

func isBinarishLine(line []byte) bool {
	return shared.IsBinarish(line)
}

func mutateLineDel(s *rng.Source, data []byte) ([]byte, int) {
	if lines := tryLines(data); lines != nil {
		return concatBytes(listDel(s, lines)), 1
	}
	return append([]byte(nil), data...), -1
}

func mutateLineDelSeq(s *rng.Source, data []byte) ([]byte, int) {
	if lines := tryLines(data); lines != nil {
		return concatBytes(listDelSeq(s, lines)), 1
	}
	return nil, -1
}

func mutateLineDup(s *rng.Source, data []byte) ([]byte, int) {
	if lines := tryLines(data); lines != nil {
		return concatBytes(listDup(s, lines)), 1
	}
	return nil, -1
}

func mutateLineClone(s *rng.Source, data []byte) ([]byte, int) {
	if lines := tryLines(data); lines != nil {
		return concatBytes(listClone(s, lines)), 1
	}
	return nil, -1
}

func mutateLineSwap(s *rng.Source, data []byte) ([]byte, int) {
	if lines := tryLines(data); lines != nil {
		return concatBytes(listSwap(s, lines)), 1
	}
	return nil, -1
}

func mutateLinePerm(s *rng.Source, data []byte) ([]byte, int) {
	if lines := tryLines(data); lines != nil {
		return concatBytes(listPerm(s, lines)), 1
	}
	return append([]byte(nil), data...), -1
}

func mutateLineRepeat(s *rng.Source, data []byte) ([]byte, int) {
	if lines := tryLines(data); lines != nil {
		return concatBytes(listRepeat(s, lines)), 1
	}
	return nil, -1
}

func mutateLineIns(s *rng.Source, data []byte) ([]byte, int) {
	if lines := tryLines(data); lines != nil {
		return concatBytes(listIns(s, lines)), 1
	}
	return nil, -1
}

func mutateLineReplace(s *rng.Source, data []byte) ([]byte, int) {
	if lines := tryLines(data); lines != nil {
		return concatBytes(listReplace(s, lines)), 1
	}
	return nil, -1
}
