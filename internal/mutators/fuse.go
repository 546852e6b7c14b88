package mutators

import "github.com/microsoft/rusty-radamsa/internal/rng"

// Jump-point search and splicing, mirroring original_source/src/fuse.rs.
// Operates directly on []byte rather than a generic list type, since every
// caller in this codebase fuses byte slices.

const (
	searchFuel    = 100000
	searchStopIP  = 8
)

// suffixesOf returns every suffix of list, one per starting index.
func suffixesOf(list []byte) [][]byte {
	out := make([][]byte, len(list))
	for i := range list {
		out[i] = list[i:]
	}
	return out
}

// alternateSuffixes is used when fusing a list with itself: walking the
// list while flipping a random bit each step grows two different suffix
// collections from different starting offsets, so `from` and `to` aren't
// drawn from the same structural position even over identical input.
func alternateSuffixes(s *rng.Source, list []byte) ([][]byte, [][]byte) {
	var a, b [][]byte
	flip := false
	for i := range list {
		if s.Bool() {
			flip = !flip
		}
		if flip {
			a = append(a, list[i:])
		} else {
			b = append(b, list[i:])
		}
	}
	return a, b
}

func initialSuffixes(s *rng.Source, lista, listb []byte) ([][]byte, [][]byte) {
	if string(lista) == string(listb) {
		return alternateSuffixes(s, lista)
	}
	return suffixesOf(lista), suffixesOf(listb)
}

func anyPositionPair(s *rng.Source, lista, listb [][]byte) ([]byte, []byte, bool) {
	if len(lista) == 0 || len(listb) == 0 {
		return nil, nil, false
	}
	return lista[s.Elem(len(lista))], listb[s.Elem(len(listb))], true
}

// splitPrefixes narrows a prefix candidate list to one representative per
// distinct leading byte, and narrows the companion suffix list to distinct
// entries at least two bytes shorter than the shortest surviving prefix —
// a trie-like narrowing step
// by common structure rather than exhaustive comparison.
func splitPrefixes(prefixes, suffixes [][]byte) ([][]byte, [][]byte) {
	seenFirstByte := make(map[byte]bool)
	var newPrefixes [][]byte
	minLen := -1
	for _, p := range prefixes {
		if len(p) == 0 {
			continue
		}
		if seenFirstByte[p[0]] {
			continue
		}
		seenFirstByte[p[0]] = true
		newPrefixes = append(newPrefixes, p)
		if minLen < 0 || len(p) < minLen {
			minLen = len(p)
		}
	}
	var newSuffixes [][]byte
	seen := make(map[string]bool)
	for _, suf := range suffixes {
		if minLen >= 0 && len(suf) < minLen-1 {
			key := string(suf)
			if !seen[key] {
				seen[key] = true
				newSuffixes = append(newSuffixes, suf)
			}
		}
	}
	return newPrefixes, newSuffixes
}

// findJumpPoints searches for a pair of structurally-similar suffixes of
// lista and listb, depth-limited by a fuel budget, narrowing by common
// prefix at each step, falling back to a random position pair if the
// search runs out of fuel, gets unlucky on a stop-probability draw, or the
// narrowing collapses to nothing.
func findJumpPoints(s *rng.Source, lista, listb []byte) ([]byte, []byte) {
	fuel := searchFuel
	curA, curB := initialSuffixes(s, lista, listb)
	if len(curA) == 0 || len(curB) == 0 {
		return lista, listb
	}

	for {
		if fuel < 0 || s.RangeInt(searchStopIP) == 0 {
			if from, to, ok := anyPositionPair(s, curA, curB); ok {
				return from, to
			}
			return lista, listb
		}
		nextA, nextB := splitPrefixes(curA, curB)
		if len(nextA) == 0 || len(nextB) == 0 {
			if from, to, ok := anyPositionPair(s, curA, curB); ok {
				return from, to
			}
			return lista, listb
		}
		curA, curB = nextA, nextB
		fuel -= len(nextA) + len(nextB)
	}
}

// fuse finds the longest suffix of lista matching a jump-point `from`, and
// replaces it with the paired `to`. If either input is empty, or the
// strip fails, lista is returned unchanged.
func fuse(s *rng.Source, lista, listb []byte) []byte {
	if len(lista) == 0 || len(listb) == 0 {
		return append([]byte(nil), lista...)
	}
	from, to := findJumpPoints(s, lista, listb)
	if len(from) == 0 || len(from) > len(lista) {
		return append([]byte(nil), lista...)
	}
	prefix := lista[:len(lista)-len(from)]
	if string(lista[len(prefix):]) != string(from) {
		return append([]byte(nil), lista...)
	}
	out := append([]byte(nil), prefix...)
	out = append(out, to...)
	return out
}

func mutateFuseThis(s *rng.Source, data []byte) ([]byte, int) {
	out := fuse(s, data, data)
	return out, s.RandDeltaUp()
}

func mutateFuseNext(s *rng.Source, data []byte) ([]byte, int) {
	mid := len(data) / 2
	al1, al2 := data[:mid], data[mid:]
	abl := fuse(s, al1, data)
	abal := fuse(s, abl, al2)
	return abal, s.RandDeltaUp()
}

// mutateFuseOld fuses two independent halves against each other twice
// (consuming different RNG draws each time) and concatenates the results.
// The reference implementation notes this is its own approximation of
// Radamsa's original fuse-old, not a 1:1 port.
func mutateFuseOld(s *rng.Source, data []byte) ([]byte, int) {
	mid := len(data) / 2
	al1, al2 := data[:mid], data[mid:]
	a := fuse(s, al1, al2)
	b := fuse(s, al1, al2)
	out := append([]byte(nil), a...)
	out = append(out, b...)
	return out, s.RandDeltaUp()
}
