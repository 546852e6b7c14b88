// Package patterns implements the pattern mux: OnceDec (mutate once),
// ManyDec (mutate possibly many times), and Burst (several mutations
// clustered together), which decide how many times a block stream gets
// run through the mutator mux per fuzzing pass.
package patterns

import (
	"sort"

	"github.com/microsoft/rusty-radamsa/internal/config"
	"github.com/microsoft/rusty-radamsa/internal/generators"
	"github.com/microsoft/rusty-radamsa/internal/mutators"
	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/shared"
)

type ID string

const (
	OnceDec ID = "od"
	ManyDec ID = "nd"
	Burst   ID = "bu"
)

// DefaultPatterns is the normative default pattern configuration string.
const DefaultPatterns = "od,nd=2,bu"

var allIDs = []ID{OnceDec, ManyDec, Burst}

func Info(id ID) string {
	switch id {
	case OnceDec:
		return "Mutate once"
	case ManyDec:
		return "Mutate possibly many times"
	case Burst:
		return "Make several mutations closeby once"
	default:
		return ""
	}
}

// AllIDs returns every registered pattern id, for `list` output.
func AllIDs() []ID {
	return append([]ID(nil), allIDs...)
}

type pattern struct {
	id       ID
	priority int
}

// Mux holds every pattern kind and the subset enabled by configuration.
type Mux struct {
	all     map[ID]*pattern
	enabled []ID
}

func New() *Mux {
	m := &Mux{all: make(map[ID]*pattern)}
	for _, id := range allIDs {
		m.all[id] = &pattern{id: id}
	}
	return m
}

func (m *Mux) Configure(input string) error {
	valid := make(map[string]bool, len(allIDs))
	for _, id := range allIDs {
		valid[string(id)] = true
	}
	entries, err := config.ParseWeighted(input, valid)
	if err != nil {
		return err
	}
	m.enabled = nil
	for _, e := range entries {
		p := m.all[ID(e.ID)]
		p.priority = e.Priority
		m.enabled = append(m.enabled, ID(e.ID))
	}
	return nil
}

// Apply picks one enabled pattern by a priority-weighted draw
// (shared.ChoosePriority over the patterns sorted by descending priority)
// and runs it against gen/muts, returning the original concatenated bytes
// and the mutated bytes.
func (m *Mux) Apply(s *rng.Source, gen *generators.Generator, muts *mutators.Mutators) ([]byte, []byte, bool) {
	var live []*pattern
	total := 0
	for _, id := range m.enabled {
		p := m.all[id]
		total += p.priority
		live = append(live, p)
	}
	if len(live) == 0 {
		return nil, nil, false
	}
	initial := int(s.Rands(uint64(total)))
	sort.SliceStable(live, func(i, j int) bool { return live[i].priority > live[j].priority })
	chosen, ok := shared.ChoosePriority(live, initial)
	if !ok {
		return nil, nil, false
	}

	switch chosen.id {
	case OnceDec:
		return patOnceDec(s, gen, muts)
	case ManyDec:
		return patManyDec(s, gen, muts)
	case Burst:
		return patBurst(s, gen, muts)
	default:
		return nil, nil, false
	}
}

func (p *pattern) Priority() int { return p.priority }

// mutateOnce streams every block from gen, mutating each block picked by
// a decaying inverse-probability draw (the final block is always mutated)
// and passing the rest through unchanged.
func mutateOnce(s *rng.Source, gen *generators.Generator, muts *mutators.Mutators) ([]byte, [][]byte, bool) {
	ip := int(s.Rands(uint64(shared.InitialIP)))
	var og []byte
	var out [][]byte
	for {
		block, last := generators.NextBlock(gen)
		if block == nil {
			break
		}
		og = append(og, block...)
		n := int(s.Rands(uint64(ip)))
		if n == 0 || last {
			out = append(out, muts.MuxFuzzers(s, block))
			ip++
		} else {
			out = append(out, append([]byte(nil), block...))
		}
		if last {
			break
		}
	}
	if out == nil {
		return nil, nil, false
	}
	return og, out, true
}

func mutateMulti(s *rng.Source, data [][]byte, muts *mutators.Mutators) [][]byte {
	ip := int(s.Rands(uint64(shared.InitialIP)))
	out := make([][]byte, 0, len(data))
	for _, block := range data {
		n := int(s.Rands(uint64(ip)))
		if n == 0 {
			out = append(out, muts.MuxFuzzers(s, block))
			ip++
		} else {
			out = append(out, append([]byte(nil), block...))
		}
	}
	return out
}

func concat(blocks [][]byte) []byte {
	var out []byte
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

func patOnceDec(s *rng.Source, gen *generators.Generator, muts *mutators.Mutators) ([]byte, []byte, bool) {
	og, data, ok := mutateOnce(s, gen, muts)
	if !ok {
		return nil, nil, false
	}
	return og, concat(data), true
}

func patManyDec(s *rng.Source, gen *generators.Generator, muts *mutators.Mutators) ([]byte, []byte, bool) {
	og, data, ok := mutateOnce(s, gen, muts)
	if !ok {
		return nil, nil, false
	}
	result := data
	for s.Occurs(shared.RemutateProbability) {
		result = mutateMulti(s, data, muts)
	}
	return og, concat(result), true
}

func patBurst(s *rng.Source, gen *generators.Generator, muts *mutators.Mutators) ([]byte, []byte, bool) {
	og, data, ok := mutateOnce(s, gen, muts)
	if !ok {
		return nil, nil, false
	}
	n := 1
	for {
		if s.Occurs(shared.RemutateProbability) || n < 2 {
			data = mutateMulti(s, data, muts)
			n++
		} else {
			break
		}
	}
	return og, concat(data), true
}
