// Package radamsa implements a black-box mutation fuzzer modeled on the
// Radamsa test-case generator: a generator mux supplies input blocks, a
// pattern mux decides how many mutator passes to apply, and a mutator mux
// with learned priorities perturbs the bytes before they reach an output
// sink mux.
package radamsa

import (
	"time"

	"github.com/microsoft/rusty-radamsa/internal/config"
	"github.com/microsoft/rusty-radamsa/internal/digest"
	engineerrors "github.com/microsoft/rusty-radamsa/internal/errors"
	"github.com/microsoft/rusty-radamsa/internal/generators"
	"github.com/microsoft/rusty-radamsa/internal/mutators"
	"github.com/microsoft/rusty-radamsa/internal/output"
	"github.com/microsoft/rusty-radamsa/internal/patterns"
	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/shared"
)

// Engine is the top-level fuzzer: construct one with New or NewWithSeed,
// configure its mutators/generators/patterns/output, then call Fuzz
// repeatedly.
type Engine struct {
	Seed    uint64
	Verbose bool
	Count   int
	Offset  int
	Delay   time.Duration

	rng *rng.Source

	checksums   *digest.Checksums
	useHashmap  bool
	hashType    digest.HashType
	checksumMax int

	mutators   *mutators.Mutators
	patterns   *patterns.Mux
	generators *generators.Mux
	outputs    *output.Sinks

	jump *generators.JumpConfig
}

// New constructs an Engine seeded from the current time.
func New() *Engine {
	return NewWithSeed(uint64(time.Now().UnixNano()))
}

// NewWithSeed constructs an Engine with an explicit seed, leaving its
// mutators/generators/patterns/output unconfigured; call Init then the
// Set* methods (or Default/DefaultWithSeed for the normative configuration).
func NewWithSeed(seed uint64) *Engine {
	e := &Engine{
		Seed:        seed,
		rng:         rng.New(seed),
		hashType:    digest.Sha,
		checksumMax: shared.MaxChecksumRetry,
	}
	e.checksums = digest.NewChecksums(e.hashType, e.checksumMax)
	return e
}

// Init allocates the mutator/generator/pattern/output registries.
func (e *Engine) Init() {
	e.mutators = mutators.New()
	e.patterns = patterns.New()
	e.generators = generators.New()
	e.outputs = output.New()
}

// Default constructs a fully-configured Engine using every normative
// default (default mutators, generators, patterns, a single stdout
// output), seeded from the current time.
func Default() *Engine {
	e := New()
	e.initWithDefaults()
	return e
}

func (e *Engine) initWithDefaults() {
	e.Init()
	_ = e.mutators.Configure(mutators.DefaultMutators)
	_ = e.generators.Configure(generators.DefaultGenerators)
	_ = e.patterns.Configure(patterns.DefaultPatterns)
	e.mutators.Randomize(e.rng)
	sinks, _ := output.Configure([]string{output.DefaultOutputs})
	sinks.Open()
	e.outputs = sinks
}

// DefaultWithSeed is Default with an explicit, reproducible seed.
func DefaultWithSeed(seed uint64) *Engine {
	e := NewWithSeed(seed)
	e.Verbose = true
	e.initWithDefaults()
	return e
}

// SetMutators configures the active mutator set ("default" for the
// normative set, else a weighted id list like "bd=3,bf,num=2").
func (e *Engine) SetMutators(spec string) error {
	if spec == "default" {
		return e.mutators.Configure(mutators.DefaultMutators)
	}
	return e.mutators.Configure(spec)
}

// SetGenerators configures the active generator set.
func (e *Engine) SetGenerators(spec string) error {
	if spec == "default" {
		return e.generators.Configure(generators.DefaultGenerators)
	}
	return e.generators.Configure(spec)
}

// SetPatterns configures the active pattern set.
func (e *Engine) SetPatterns(spec string) error {
	if spec == "default" {
		return e.patterns.Configure(patterns.DefaultPatterns)
	}
	return e.patterns.Configure(spec)
}

// SetOutput configures the output sinks from a token list, e.g.
// []string{"file", "/tmp/out.bin"} or []string{"-"}.
func (e *Engine) SetOutput(tokens []string) error {
	if len(tokens) == 1 && tokens[0] == "default" {
		tokens = []string{output.DefaultOutputs}
	}
	sinks, err := output.Configure(tokens)
	if err != nil {
		return err
	}
	sinks.Truncate = e.outputs.Truncate
	sinks.Resize = e.outputs.Resize
	sinks.Open()
	e.outputs = sinks
	return nil
}

// SetChecksum selects the uniqueness-cache hash family ("default" keeps
// the current one).
func (e *Engine) SetChecksum(id string) error {
	if id == "default" {
		return nil
	}
	cs, ok := digest.ByID(id)
	if !ok {
		return engineerrors.Configuration("unknown-hash", "unknown checksum id "+id)
	}
	e.hashType = cs.HashType
	e.checksums = digest.NewChecksums(e.hashType, e.checksumMax)
	return nil
}

// ChecksumMax sets the uniqueness cache's capacity.
func (e *Engine) ChecksumMax(max int) {
	e.checksumMax = max
	e.checksums = digest.NewChecksums(e.hashType, max)
}

// EnableHashmap turns on the dedup loop in Fuzz: when enabled, Fuzz keeps
// re-mutating until it produces output not already seen this run (bounded
// by shared.MaxChecksumRetry attempts) instead of emitting the first pass.
func (e *Engine) EnableHashmap(enable bool) { e.useHashmap = enable }

// Truncate clamps every output write to at most size bytes (0 disables
// truncation).
func (e *Engine) Truncate(size int) { e.outputs.Truncate = size }

// Resize controls whether a Buffer output sink is resized to fit the
// written data (true) or clamped/copied into the caller's fixed-size
// buffer (false, the default).
func (e *Engine) Resize(enable bool) { e.outputs.Resize = enable }

// SetSeed reseeds the engine's RNG.
func (e *Engine) SetSeed(seed uint64) {
	e.Seed = seed
	e.rng = rng.New(seed)
}

// SetJump wires a directory-watching jump generator; omit to leave "jump"
// unusable even if selected by a generator spec.
func (e *Engine) SetJump(cfg *generators.JumpConfig) { e.jump = cfg }

// SaveState persists the current learned mutator scores to path, stamped
// with the on-disk schema version.
func (e *Engine) SaveState(path string) error {
	return config.SaveState(path, e.mutators.Scores())
}

// LoadState restores previously learned mutator scores from path, leaving
// any mutator not named in the file (or not currently enabled) untouched.
func (e *Engine) LoadState(path string) error {
	states, err := config.LoadState(path)
	if err != nil {
		return err
	}
	e.mutators.ApplyScores(states)
	return nil
}

// Fuzz produces Count fuzzed test cases (Count defaults to 1 when unset),
// skipping the first Offset of them unwritten and sleeping Delay between
// each emitted one, returning the total bytes written across every
// emitted case.
//
// data supplies in-memory source bytes for the "buffer"/"stdin" generators;
// paths supplies candidate files for the "file" generator; outBuf, if
// non-nil, receives the bytes written to a "buffer" output sink on every
// call (each emission overwrites it).
func (e *Engine) Fuzz(data []byte, paths []string, outBuf *[]byte) (int, error) {
	count := e.Count
	if count <= 0 {
		count = 1
	}
	total := 0
	emitted := 0
	for i := 0; i < e.Offset+count; i++ {
		n, err := e.fuzzOne(data, paths, outBuf)
		if err != nil {
			return total, err
		}
		if i < e.Offset {
			continue
		}
		total += n
		emitted++
		if e.Delay > 0 && emitted < count {
			time.Sleep(e.Delay)
		}
	}
	return total, nil
}

// fuzzOne selects a generator, runs the pattern mux (which drives the
// mutator mux) over its block stream, and writes the result to every
// configured output sink, returning the number of bytes written.
func (e *Engine) fuzzOne(data []byte, paths []string, outBuf *[]byte) (int, error) {
	src := generators.Source{FS: generators.DefaultFS(), Paths: paths, Buffer: data}

	gen := e.generators.Select(e.rng, src, e.jump)
	if gen == nil {
		return 0, engineerrors.SourceUnavailable("no-generator", "failed to select a generator; paths may be malformed")
	}

	og, mutated, ok := e.patterns.Apply(e.rng, gen, e.mutators)
	if !ok {
		return 0, engineerrors.Configuration("no-pattern", "failed to apply a pattern")
	}

	if !e.useHashmap {
		return e.outputs.Write(mutated, outBuf)
	}

	attempts := 0
	for {
		dup, err := e.checksums.Add(mutated)
		if err != nil {
			// cache exhausted: emit anyway rather than spin forever
			return e.outputs.Write(mutated, outBuf)
		}
		if !dup {
			return e.outputs.Write(mutated, outBuf)
		}
		attempts++
		if attempts >= shared.MaxChecksumRetry {
			return e.outputs.Write(mutated, outBuf)
		}
		gen = e.generators.Select(e.rng, generators.Source{FS: src.FS, Paths: paths, Buffer: og}, e.jump)
		if gen == nil {
			return e.outputs.Write(mutated, outBuf)
		}
		_, m, ok := e.patterns.Apply(e.rng, gen, e.mutators)
		if ok {
			mutated = m
		}
	}
}
