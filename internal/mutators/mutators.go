// Package mutators implements the mutation library: roughly thirty byte,
// line, tree, UTF-8, numeric, ASCII, and fuse mutators, dispatched through
// a priority/score-weighted mux.
package mutators

import (
	"sort"

	"github.com/microsoft/rusty-radamsa/internal/config"
	engineerrors "github.com/microsoft/rusty-radamsa/internal/errors"
	"github.com/microsoft/rusty-radamsa/internal/rng"
)

// ID is a mutator's short configuration-string identifier.
type ID string

const (
	AsciiBad   ID = "ab"
	ByteDrop   ID = "bd"
	ByteFlip   ID = "bf"
	ByteInsert ID = "bi"
	ByteRepeat ID = "br"
	BytePerm   ID = "bp"
	ByteInc    ID = "bei"
	ByteDec    ID = "bed"
	ByteRand   ID = "ber"
	SeqRepeat  ID = "sr"
	SeqDel     ID = "sd"
	LineDel     ID = "ld"
	LineDelSeq  ID = "lds"
	LineDup     ID = "lr2"
	LineClone   ID = "li"
	LineRepeat  ID = "lr"
	LineSwap    ID = "ls"
	LinePerm    ID = "lp"
	LineIns     ID = "lis"
	LineReplace ID = "lrs"
	TreeDel    ID = "td"
	TreeDup    ID = "tr2"
	TreeSwap1  ID = "ts1"
	TreeSwap2  ID = "ts2"
	TreeRepeat ID = "tr"
	UTF8Widen  ID = "uw"
	UTF8Insert ID = "ui"
	Num        ID = "num"
	FuseThis   ID = "ft"
	FuseNext   ID = "fn"
	FuseOld    ID = "fo"
	Nop        ID = "nop"
)

// DefaultMutators is the normative default mutator configuration string.
const DefaultMutators = "ft=2,fo=2,fn,num=5,ld,lds,lr2,li,ls,lp,lr,sr,sd,bd,bf,bi,br,bp,bei,bed,ber,uw,ui=2,ab"

const (
	maxScore = 10
	minScore = 2
)

// mutateFunc is the closed sum-type signature every mutator implements:
// data in, possibly-mutated data out, plus a learning delta applied to the
// mutator's running score.
type mutateFunc func(s *rng.Source, data []byte) ([]byte, int)

type descriptor struct {
	id   ID
	info string
	fn   mutateFunc
}

var registry = []descriptor{
	{AsciiBad, "enhance silly issues in ASCII string data handling", mutateAsciiBad},
	{ByteDrop, "drop a byte", mutateByteDrop},
	{ByteFlip, "flip one bit", mutateByteFlip},
	{ByteInsert, "insert a random byte", mutateByteInsert},
	{ByteRepeat, "repeat a byte", mutateByteRepeat},
	{BytePerm, "permute some bytes", mutateBytePerm},
	{ByteInc, "increment a byte by one", mutateByteInc},
	{ByteDec, "decrement a byte by one", mutateByteDec},
	{ByteRand, "swap a byte with a random one", mutateByteRandom},
	{SeqRepeat, "repeat a sequence of bytes", mutateSeqRepeat},
	{SeqDel, "delete a sequence of bytes", mutateSeqDel},
	{LineDel, "delete a line", mutateLineDel},
	{LineDelSeq, "delete many lines", mutateLineDelSeq},
	{LineDup, "duplicate a line", mutateLineDup},
	{LineClone, "copy a line closeby", mutateLineClone},
	{LineRepeat, "repeat a line", mutateLineRepeat},
	{LineSwap, "swap two lines", mutateLineSwap},
	{LinePerm, "swap order of lines", mutateLinePerm},
	{LineIns, "insert a line from elsewhere", mutateLineIns},
	{LineReplace, "replace a line with one from elsewhere", mutateLineReplace},
	{TreeDel, "delete a node", mutateTreeDel},
	{TreeDup, "duplicate a node", mutateTreeDup},
	{TreeSwap1, "swap one node with another one", mutateTreeSwap1},
	{TreeSwap2, "swap two nodes pairwise", mutateTreeSwap2},
	{TreeRepeat, "repeat a path of the parse tree", mutateTreeStutter},
	{UTF8Widen, "try to make a code point too wide", mutateUTF8Widen},
	{UTF8Insert, "insert funny unicode", mutateUTF8Insert},
	{Num, "try to modify a textual number", mutateSedNum},
	{FuseThis, "jump to a similar position in block", mutateFuseThis},
	{FuseNext, "likely clone data between similar positions", mutateFuseNext},
	{FuseOld, "fuse previously seen data elsewhere", mutateFuseOld},
	{Nop, "do nothing (debug/test)", mutateNop},
}

// Info returns the human description for a mutator id, for `list -mutators`.
func Info(id ID) string {
	for _, d := range registry {
		if d.id == id {
			return d.info
		}
	}
	return ""
}

// AllIDs returns every registered mutator id, in table order.
func AllIDs() []ID {
	ids := make([]ID, len(registry))
	for i, d := range registry {
		ids[i] = d.id
	}
	return ids
}

// mutator is one live entry in a Mutators set: its descriptor plus the
// learned priority/score/weight/delta state.
type mutator struct {
	desc     descriptor
	priority int
	score    int
	weight   int
	delta    int
}

func (m *mutator) Priority() int { return m.priority }

// Mutators is the mutator mux: the full registry plus the subset enabled
// by configuration, their priorities, and their learned scores.
type Mutators struct {
	all     map[ID]*mutator
	enabled []ID
}

// New constructs a Mutators set with every mutator registered but none
// enabled; call Configure to enable a subset.
func New() *Mutators {
	m := &Mutators{all: make(map[ID]*mutator)}
	for _, d := range registry {
		m.all[d.id] = &mutator{desc: d, score: maxScore}
	}
	return m
}

// Configure parses a weighted selector string (e.g. DefaultMutators) and
// enables the named mutators with the given priorities.
func (m *Mutators) Configure(input string) error {
	valid := make(map[string]bool, len(registry))
	for _, d := range registry {
		valid[string(d.id)] = true
	}
	entries, err := config.ParseWeighted(input, valid)
	if err != nil {
		return err
	}
	for _, e := range entries {
		mu := m.all[ID(e.ID)]
		mu.priority = e.Priority
		mu.score = maxScore
		m.enabled = append(m.enabled, ID(e.ID))
	}
	return nil
}

// Randomize assigns each enabled mutator a random score in [minScore,
// maxScore), used by randomized fuzzing campaigns that don't want to trust
// a fixed initial score. Values below 2 clamp up to minScore.
func (m *Mutators) Randomize(s *rng.Source) {
	for _, id := range m.enabled {
		mu := m.all[id]
		v := int(s.Rands(uint64(maxScore)))
		if v < 2 {
			mu.score = minScore
		} else {
			mu.score = v
		}
	}
}

// weightedPermutation draws a random weight (priority*score).rands() for
// every enabled mutator and returns them sorted ascending by weight, so
// that mux_fuzzers can pop from the end (highest weight first).
func (m *Mutators) weightedPermutation(s *rng.Source) []*mutator {
	var out []*mutator
	for _, id := range m.enabled {
		mu := m.all[id]
		if mu.priority > 0 {
			mu.weight = int(s.Rands(uint64(mu.priority * mu.score)))
			out = append(out, mu)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].weight < out[j].weight })
	return out
}

// adjustPriority reproduces the reference engine's unusual clamp verbatim:
// max(minScore, max(maxScore, score+delta)) — not a standard two-sided
// clamp, since max(maxScore, ...) only ever raises the floor, letting a
// score climb arbitrarily high on repeated positive deltas. See DESIGN.md
// Open Question 2.
func adjustPriority(score, delta int) int {
	if delta == 0 {
		return score
	}
	raised := score + delta
	if maxScore > raised {
		raised = maxScore
	}
	if minScore > raised {
		raised = minScore
	}
	return raised
}

// MuxFuzzers applies the highest-weighted applicable mutator to data,
// trying progressively lower-weighted ones until one actually changes the
// bytes or the candidate list is exhausted (in which case data is returned
// unchanged, matching MutationProducedNoChange semantics handled by the
// caller).
func (m *Mutators) MuxFuzzers(s *rng.Source, data []byte) []byte {
	candidates := m.weightedPermutation(s)
	for len(candidates) > 0 {
		mu := candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		newData, delta := mu.desc.fn(s, data)
		if newData != nil {
			mu.score = adjustPriority(mu.score, delta)
			mu.delta = delta
			if !bytesEqual(newData, data) {
				return newData
			}
		}
	}
	return data
}

// Scores returns the current learned score for every enabled mutator, in
// the shape config.SaveState persists.
func (m *Mutators) Scores() []config.MutatorState {
	out := make([]config.MutatorState, 0, len(m.enabled))
	for _, id := range m.enabled {
		mu := m.all[id]
		out = append(out, config.MutatorState{ID: string(id), Score: mu.score})
	}
	return out
}

// ApplyScores restores previously learned scores (e.g. from
// config.LoadState) onto whichever of the given states are both enabled
// and registered here; unknown or disabled ids are ignored.
func (m *Mutators) ApplyScores(states []config.MutatorState) {
	for _, st := range states {
		if mu, ok := m.all[ID(st.ID)]; ok {
			mu.score = st.Score
		}
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NoChangeErr is returned by callers that need to surface
// MutationProducedNoChange explicitly (the mux itself just returns the
// original bytes, per spec semantics).
var NoChangeErr = engineerrors.New(engineerrors.CategoryNoChange, "no-change", "mutator produced no change", nil)
