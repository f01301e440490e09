package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dvorsky/jsonpath"
	"github.com/dvorsky/jsonpath/internal/batch"
	"github.com/dvorsky/jsonpath/internal/value"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	cfg, exitResult := Parse(args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.BatchFile != "" {
		return runBatch(ctx, cfg, stdout)
	}
	return runQuery(cfg, stdin, stdout)
}

func runQuery(cfg *Config, stdin io.Reader, stdout io.Writer) int {
	path, err := jsonpath.Parse(cfg.Query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	doc, err := readDocument(cfg.File, stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	opts := jsonpath.Options{
		MaxDepth:     cfg.MaxDepth,
		NoDuplicates: cfg.NoDuplicates,
		Sort:         cfg.Sort,
	}
	if cfg.Parallel {
		opts.ExecutionMode = jsonpath.Parallel
	}

	switch cfg.OutputMode {
	case outputPaths:
		got, err := path.SelectPaths(doc, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for _, p := range got {
			fmt.Fprintln(stdout, p)
		}
	case outputNodes:
		got, err := path.SelectNodes(doc, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for _, n := range got {
			fmt.Fprintf(stdout, "%s %s\n", n.Path, renderValue(n.Value))
		}
	default:
		got, err := path.SelectValues(doc, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for _, v := range got {
			fmt.Fprintln(stdout, renderValue(v))
		}
	}

	return 0
}

func runBatch(ctx context.Context, cfg *Config, stdout io.Writer) int {
	f, err := os.Open(cfg.BatchFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer f.Close()

	manifest, err := batch.ParseManifest(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	results, err := batch.Run(ctx, manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.RunID, r.Err)
			continue
		}
		for _, n := range r.Nodes {
			fmt.Fprintf(stdout, "%s\t%s %s\n", r.RunID, n.Path, renderValue(n.Value))
		}
	}
	if failed {
		return 1
	}
	return 0
}

func readDocument(file string, stdin io.Reader) (jsonpath.Value, error) {
	if file == "" {
		return jsonpath.Decode(stdin)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return jsonpath.Decode(f)
}

// renderValue renders a matched value the way a caller piping jpq
// output into another tool would want: the bare literal for scalars,
// JSON for containers.
func renderValue(v jsonpath.Value) string {
	if s, err := v.StringValue(); err == nil {
		return s
	}
	if f, ok := v.Double(); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	native, err := toNative(v)
	if err != nil {
		return ""
	}
	data, err := json.Marshal(native)
	if err != nil {
		return ""
	}
	return string(data)
}

// toNative converts a matched value into the encoding/json-compatible
// types (map[string]any, []any, bool, nil) needed to render an Array,
// Object, boolean or null result as JSON; strings and numbers are
// handled directly by renderValue and reach here only as array/object
// elements.
func toNative(v jsonpath.Value) (any, error) {
	switch v.Kind() {
	case value.Null, value.Undefined:
		return nil, nil
	case value.True:
		return true, nil
	case value.False:
		return false, nil
	}

	if s, err := v.StringValue(); err == nil {
		return s, nil
	}
	if f, ok := v.Double(); ok {
		return f, nil
	}
	if elems, err := v.Elements(); err == nil {
		out := make([]any, len(elems))
		for i, e := range elems {
			n, err := toNative(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	if props, err := v.Properties(); err == nil {
		out := make(map[string]any, len(props))
		for _, p := range props {
			n, err := toNative(p.Value)
			if err != nil {
				return nil, err
			}
			out[p.Name] = n
		}
		return out, nil
	}
	return nil, nil
}
