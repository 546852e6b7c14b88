// Command radamsa is a general purpose black-box mutation fuzzer: it reads
// sample data from stdin, files, or a directory glob, mutates it in ways
// that tend to expose bugs in programs that parse untrusted input, and
// writes the result to stdout or another configured sink.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	radamsa "github.com/microsoft/rusty-radamsa"
	"github.com/microsoft/rusty-radamsa/internal/cli"
	"github.com/microsoft/rusty-radamsa/internal/digest"
	"github.com/microsoft/rusty-radamsa/internal/generators"
	"github.com/microsoft/rusty-radamsa/internal/mutators"
	"github.com/microsoft/rusty-radamsa/internal/output"
	"github.com/microsoft/rusty-radamsa/internal/patterns"
	"github.com/microsoft/rusty-radamsa/internal/shared"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "list" {
		runList(os.Args[2:])
		return
	}

	var (
		seedFlag  int64
		count     int
		hash      string
		pat       string
		mut       string
		gen       string
		out       string
		checksums int
		delay     int
		truncate  int
		seek      int
		verbose   bool
		loadState string
		saveState string
	)

	flag.Int64Var(&seedFlag, "seed", 0, "random seed (default random)")
	flag.IntVar(&count, "n", 1, "how many outputs to generate")
	flag.StringVar(&hash, "hash", "default", "hash algorithm for uniqueness checks (default sha256)")
	flag.StringVar(&pat, "patterns", "default", "which mutation patterns to use (use list command to see all)")
	flag.StringVar(&mut, "mutators", "default", "which mutations to use (use list command to see all)")
	flag.StringVar(&gen, "generators", "default", "which data generators to use (use list command to see all)")
	flag.StringVar(&out, "output", "", "output pattern, e.g. \"file out.bin\" or \"tcpclient 127.0.0.1:9000\"")
	flag.IntVar(&checksums, "checksums", 10000, "maximum number of checksums in uniqueness filter (0 disables)")
	flag.IntVar(&delay, "delay", 0, "sleep for n milliseconds between outputs")
	flag.IntVar(&truncate, "truncate", 0, "take only first n bytes of each output (0 disables)")
	flag.IntVar(&seek, "seek", 0, "start from given testcase")
	flag.BoolVar(&verbose, "verbose", false, "show progress during generation")
	flag.StringVar(&loadState, "load-state", "", "restore learned mutator scores from a prior run")
	flag.StringVar(&saveState, "save-state", "", "persist learned mutator scores for a future run")
	flag.Usage = usage
	flag.Parse()

	logger := cli.NewLogger(verbose, verbose)

	var rad *radamsa.Engine
	if seedFlag != 0 {
		rad = radamsa.NewWithSeed(uint64(seedFlag))
	} else {
		rad = radamsa.New()
	}
	rad.Init()
	rad.Verbose = verbose
	rad.Count = count
	rad.Offset = seek
	rad.Delay = time.Duration(delay) * time.Millisecond

	if err := rad.SetChecksum(hash); err != nil {
		cli.ExitWithError("bad -hash value: %v", err)
	}
	if err := rad.SetPatterns(pat); err != nil {
		cli.ExitWithError("bad -patterns value: %v", err)
	}
	if err := rad.SetMutators(mut); err != nil {
		cli.ExitWithError("bad -mutators value: %v", err)
	}
	if err := rad.SetGenerators(gen); err != nil {
		cli.ExitWithError("bad -generators value: %v", err)
	}

	if out != "" {
		if err := rad.SetOutput(strings.Fields(out)); err != nil {
			cli.ExitWithError("bad -output value: %v", err)
		}
	} else if err := rad.SetOutput([]string{"default"}); err != nil {
		cli.ExitWithError("failed to configure default output: %v", err)
	}

	rad.ChecksumMax(checksums)
	rad.Truncate(truncate)
	if checksums > 0 {
		rad.EnableHashmap(true)
	}

	if loadState != "" {
		if err := rad.LoadState(loadState); err != nil {
			cli.ExitWithError("failed to load mutator state: %v", err)
		}
	}

	files := flag.Args()
	var paths []string
	if len(files) > 0 {
		expanded, err := shared.ExpandFiles(files)
		if err != nil {
			cli.ExitWithError("failed to expand file arguments: %v", err)
		}
		paths = expanded
	}

	logger.Debug("seed %d", rad.Seed)
	n, err := rad.Fuzz(nil, paths, nil)
	if err != nil {
		cli.ExitWithError("fuzz failed: %v", err)
	}
	logger.Debug("total len = %d", n)

	if saveState != "" {
		if err := rad.SaveState(saveState); err != nil {
			cli.ExitWithError("failed to save mutator state: %v", err)
		}
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "radamsa is a general purpose fuzzer. It modifies given sample data")
	fmt.Fprintln(os.Stderr, "in ways which might expose errors in programs intended to process it.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "usage: radamsa [flags] [FILE ...]")
	fmt.Fprintln(os.Stderr, "       radamsa list [-all|-mutators|-generators|-patterns|-hashes|-outputs]")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	all := fs.Bool("all", false, "list all mutations, generators, patterns, hashes, outputs")
	ms := fs.Bool("mutators", false, "list mutators")
	gs := fs.Bool("generators", false, "list generators")
	ps := fs.Bool("patterns", false, "list patterns")
	hs := fs.Bool("hashes", false, "list hash types")
	os_ := fs.Bool("outputs", false, "list output options")
	_ = fs.Parse(args)

	if *ms || *all {
		fmt.Println("MUTATIONS:\n----------")
		fmt.Printf("  DEFAULT: %s\n", mutators.DefaultMutators)
		for _, id := range mutators.AllIDs() {
			fmt.Printf("    %-6s %s\n", id, mutators.Info(id))
		}
		fmt.Println("---")
	}
	if *gs || *all {
		fmt.Println("GENERATORS:\n----------")
		fmt.Printf("  DEFAULT: %s\n", generators.DefaultGenerators)
		for _, g := range generators.AllGenTypes() {
			fmt.Printf("    %-6s %s\n", g.ID(), g.Info())
		}
		fmt.Println("---")
	}
	if *ps || *all {
		fmt.Println("PATTERNS:\n----------")
		fmt.Printf("  DEFAULT: %s\n", patterns.DefaultPatterns)
		for _, id := range patterns.AllIDs() {
			fmt.Printf("    %-6s %s\n", id, patterns.Info(id))
		}
		fmt.Println("---")
	}
	if *hs || *all {
		fmt.Println("HASHES:\n----------")
		fmt.Println("  DEFAULT: sha256")
		for _, c := range digest.RegisteredHashes {
			fmt.Printf("    %-6s %s\n", c.ID, c.Desc)
		}
		fmt.Println("---")
	}
	if *os_ || *all {
		fmt.Println("OUTPUTS:\n----------")
		fmt.Println("  DEFAULT: -")
		for _, k := range output.AllKinds() {
			fmt.Printf("    %-10s %s\n", k.ID(), k.Info())
		}
		fmt.Println("---")
	}
}
