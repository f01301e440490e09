package main

import (
	"errors"
	"flag"
	"io"

	"github.com/dvorsky/jsonpath/internal/exit"
)

var (
	ErrNoArguments  = errors.New("no arguments provided")
	ErrMissingQuery = errors.New("a query is required (positional argument, or -batch)")
)

// outputMode selects which of the three driver entry points a single
// -query invocation uses.
type outputMode int

const (
	outputValues outputMode = iota
	outputPaths
	outputNodes
)

// Config is a single cmd/jpq invocation's parsed flags.
type Config struct {
	Query      string
	File       string // document file, or "" for stdin
	BatchFile  string // when set, Query/File are ignored
	OutputMode outputMode

	MaxDepth     int
	Parallel     bool
	Sort         bool
	NoDuplicates bool
}

// Parse parses command-line arguments and returns a validated Config.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		file         = fs.String("file", "", "Document file to read (default: stdin)")
		batchFile    = fs.String("batch", "", "Run a batch manifest instead of a single query")
		paths        = fs.Bool("paths", false, "Print normalized paths instead of values")
		nodes        = fs.Bool("nodes", false, "Print path/value pairs instead of values")
		maxDepth     = fs.Int("max-depth", 0, "Bound recursive descent traversal (0 for the built-in default)")
		parallel     = fs.Bool("parallel", false, "Run union branches concurrently")
		sortResults  = fs.Bool("sort", false, "Sort results by normalized path")
		noDuplicates = fs.Bool("dedup", false, "Drop results with a normalized path already seen")
	)
	fs.Bool("values", false, "Print matched values (default)")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	cfg := &Config{
		File:         *file,
		BatchFile:    *batchFile,
		MaxDepth:     *maxDepth,
		Parallel:     *parallel,
		Sort:         *sortResults,
		NoDuplicates: *noDuplicates,
	}

	switch {
	case *nodes:
		cfg.OutputMode = outputNodes
	case *paths:
		cfg.OutputMode = outputPaths
	default:
		cfg.OutputMode = outputValues
	}

	if cfg.BatchFile != "" {
		return cfg, nil
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrMissingQuery, Usage())
	}
	cfg.Query = rest[0]

	return cfg, nil
}

// Usage returns the CLI's help text.
func Usage() string {
	return `jpq - JSONPath query engine

Usage: jpq [options] <query>
       jpq -batch manifest.yaml

Options:
  -file FILE       Document file to read (default: stdin)
  -values          Print matched values (default)
  -paths           Print normalized paths instead of values
  -nodes           Print path/value pairs instead of values
  -max-depth N     Bound recursive descent traversal (0 for the default of 64)
  -parallel        Run union branches concurrently
  -sort            Sort results by normalized path
  -dedup           Drop results with a normalized path already seen
  -batch FILE      Run a batch manifest instead of a single query
  -h, -help        Show this help message

Examples:
  jpq -file catalog.json '$.store.book[*].title'
  cat catalog.json | jpq -paths '$..price'
  jpq -batch queries.yaml`
}
