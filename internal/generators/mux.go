package generators

import (
	"sort"

	"github.com/microsoft/rusty-radamsa/internal/config"
	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/runtime/vfs"
)

// Mux holds every registered generator, the subset enabled by
// configuration, and resolves which one feeds a given fuzzing run.
type Mux struct {
	all     map[GenType]*Generator
	enabled []GenType
}

// New builds a Mux with every generator kind registered but none enabled;
// call Configure to enable a subset.
func New() *Mux {
	m := &Mux{all: make(map[GenType]*Generator)}
	for _, g := range allGenTypes {
		m.all[g] = newGenerator(g)
	}
	return m
}

// Configure parses a weighted selector string (e.g. DefaultGenerators) and
// enables the named generators with the given priorities.
func (m *Mux) Configure(input string) error {
	valid := make(map[string]bool, len(allGenTypes))
	for _, g := range allGenTypes {
		valid[g.ID()] = true
	}
	entries, err := config.ParseWeighted(input, valid)
	if err != nil {
		return err
	}
	m.enabled = nil
	for _, e := range entries {
		g, _ := byID(e.ID)
		gen := m.all[g]
		gen.Priority = e.Priority
		m.enabled = append(m.enabled, g)
	}
	return nil
}

// JumpConfig supplies the extra wiring the jump generator needs beyond a
// plain Source: the directory to watch and the watcher factory to use.
type JumpConfig struct {
	Dir     string
	Watcher JumpWatcherFactory
}

// Select picks a generator to draw this run's data from. It mirrors the
// reference engine's actual (not merely spec-permitted) selection
// behavior: every enabled generator is initialized, opened against src,
// generators that fail to open are dropped for this call, and the
// survivors are sorted descending by priority with the highest-priority
// one returned — a deterministic pick, not a weighted random draw. See
// DESIGN.md Open Question 3.
func (m *Mux) Select(s *rng.Source, src Source, jump *JumpConfig) *Generator {
	var live []*Generator
	for _, id := range m.enabled {
		gen := m.all[id]
		gen.init(s)

		var err error
		if gen.Kind == Jump {
			if jump == nil {
				continue
			}
			js, jerr := NewJumpStream(src.FS, jump.Dir, jump.Watcher, gen.rng)
			if jerr != nil {
				continue
			}
			gen.fd = js
		} else {
			err = gen.setFD(src)
		}
		if err != nil {
			continue
		}
		live = append(live, gen)
	}
	if len(live) == 0 {
		return nil
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].Priority > live[j].Priority })
	return live[0]
}

// NextBlock reads the next block of data from a selected generator.
func NextBlock(g *Generator) ([]byte, bool) {
	return g.nextBlock()
}

// DefaultFS is the production filesystem generators read against; tests
// substitute vfs.NewMem() directly via Source.FS.
func DefaultFS() vfs.FileSystem { return vfs.NewOS() }
