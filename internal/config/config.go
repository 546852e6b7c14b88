// Package config parses the engine's shared "id[=priority],..." weighted
// selector grammar (used identically by mutators, generators, and patterns)
// and manages schema-versioned persisted mutator state.
package config

import (
	"strconv"
	"strings"

	engineerrors "github.com/microsoft/rusty-radamsa/internal/errors"
)

// WeightedEntry is a single parsed "id[=priority]" token.
type WeightedEntry struct {
	ID       string
	Priority int
}

// ParseWeighted parses the shared grammar used by mutator/generator/pattern
// configuration strings: a comma-separated list of "id" or "id=priority"
// tokens. A bare id defaults to priority 1 (priority 0 and below is also
// normalized up to 1, matching the reference engine's "if priority < 1 {
// 1 }" normalization); a priority that is not an integer is a Configuration
// error. validIDs, if non-nil, is consulted to reject unknown ids as a
// Configuration error instead of the reference engine's panic.
func ParseWeighted(input string, validIDs map[string]bool) ([]WeightedEntry, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	var out []WeightedEntry
	for _, tok := range strings.Split(input, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts := strings.SplitN(tok, "=", 2)
		id := strings.TrimSpace(parts[0])
		priority := 1
		if len(parts) == 2 {
			p, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, engineerrors.Configuration("bad-priority", "unparseable priority: "+tok)
			}
			if p < 1 {
				priority = 1
			} else {
				priority = p
			}
		}
		if validIDs != nil && !validIDs[id] {
			return nil, engineerrors.Configuration("unknown-id", "unknown id: "+id)
		}
		out = append(out, WeightedEntry{ID: id, Priority: priority})
	}
	return out, nil
}
