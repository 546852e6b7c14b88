// Package shared holds small helpers shared across the generator, pattern,
// and mutator muxes: binary-content sniffing, file-argument glob expansion,
// and the priority-weighted selection routine common to all three muxes.
package shared

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	AvgBlockSize        = 2048
	MinBlockSize        = 256
	MaxBlockSize         = 2 * AvgBlockSize
	InitialIP            = 24
	RemutateProbability  = 0.8
	MaxChecksumRetry     = 10000
	MaxUDPPacketSize     = 65507
)

// IsBinarish reports whether data looks like binary content rather than
// text: a NUL byte or a high bit set within the first 8 bytes marks it
// binary; 8 consecutive low, non-NUL bytes marks it texty.
func IsBinarish(data []byte) bool {
	p := 0
	for _, b := range data {
		if p == 8 {
			return false
		}
		if b == 0 {
			return true
		}
		if b&0x80 == 0 {
			p++
		} else {
			return true
		}
	}
	return false
}

var addrPattern = regexp.MustCompile(`([0-9]+\.[0-9]+\.[0-9]+\.[0-9]+):([0-9]+)`)

// ExpandFiles expands a list of CLI file arguments into concrete file
// paths, passing "host:port"-shaped arguments through untouched (they are
// socket addresses, not paths) and glob-expanding the rest with doublestar
// (which supports "**" recursive matches beyond stdlib filepath.Glob).
func ExpandFiles(args []string) ([]string, error) {
	var out []string
	for _, f := range args {
		if addrPattern.MatchString(f) {
			out = append(out, f)
			continue
		}

		info, statErr := os.Stat(f)
		if statErr == nil && info.IsDir() {
			matches, err := doublestar.FilepathGlob(filepath.Join(f, "*"))
			if err != nil {
				return nil, err
			}
			out = append(out, matches...)
			continue
		}

		matches, err := doublestar.FilepathGlob(f)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			out = append(out, f)
			continue
		}
		for _, m := range matches {
			mi, err := os.Stat(m)
			if err == nil && mi.IsDir() {
				continue
			}
			out = append(out, m)
		}
	}
	return out, nil
}

// PriorityWeighted is satisfied by any mux entry (mutator, generator,
// pattern) that carries a priority used for weighted selection.
type PriorityWeighted interface {
	Priority() int
}

// ChoosePriority performs the priority-weighted linear scan common to the
// generator, pattern, and mutator muxes: walk the list, subtracting each
// entry's priority from the initial random draw, and return the first
// entry the draw "lands" inside. Mirrors original_source/src/shared.rs's
// choose_priority.
func ChoosePriority[T PriorityWeighted](items []T, initial int) (T, bool) {
	var zero T
	n := initial
	for i, item := range items {
		if n < item.Priority() {
			return item, true
		}
		if len(items) == 1 {
			return item, true
		}
		n -= item.Priority()
		_ = i
	}
	return zero, false
}

// SortDescendingByPriority sorts items by descending priority, stable, for
// the generator mux's deterministic highest-priority selection (see
// DESIGN.md Open Question 3).
func SortDescendingByPriority[T PriorityWeighted](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority() > items[j].Priority()
	})
}
