package batch

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dvorsky/jsonpath"
	"github.com/dvorsky/jsonpath/internal/ratelimit"
)

// Result is one entry's outcome. Exactly one of Nodes or Err is set.
type Result struct {
	RunID string
	Entry Entry
	Nodes []jsonpath.Node
	Err   error
}

// Run executes every entry in m, rate limited by m.RateLimit entries
// started per second, and returns their results in manifest order
// regardless of completion order. A single entry's failure does not
// stop the others; its Result carries the error instead.
func Run(ctx context.Context, m *Manifest) ([]Result, error) {
	limiter := ratelimit.New(m.RateLimit)
	results := make([]Result, len(m.Entries))

	var wg sync.WaitGroup
	for i, entry := range m.Entries {
		if err := limiter.Wait(ctx); err != nil {
			wg.Wait()
			return nil, fmt.Errorf("batch: %w", err)
		}

		wg.Add(1)
		go func(i int, entry Entry) {
			defer wg.Done()
			results[i] = runEntry(entry)
		}(i, entry)
	}
	wg.Wait()

	return results, nil
}

func runEntry(entry Entry) Result {
	result := Result{RunID: uuid.NewString(), Entry: entry}

	doc, err := loadDocument(entry)
	if err != nil {
		result.Err = err
		return result
	}

	path, err := jsonpath.Parse(entry.Query)
	if err != nil {
		result.Err = fmt.Errorf("batch: entry %q: %w", entryLabel(entry), err)
		return result
	}

	mode, err := parseMode(entry.Mode)
	if err != nil {
		result.Err = fmt.Errorf("batch: entry %q: %w", entryLabel(entry), err)
		return result
	}

	nodes, err := path.SelectNodes(doc, jsonpath.Options{
		MaxDepth:      entry.MaxDepth,
		ExecutionMode: mode,
		NoDuplicates:  entry.NoDuplicates,
		Sort:          entry.Sort,
	})
	if err != nil {
		result.Err = fmt.Errorf("batch: entry %q: %w", entryLabel(entry), err)
		return result
	}

	result.Nodes = nodes
	return result
}

func loadDocument(entry Entry) (jsonpath.Value, error) {
	if entry.DocumentFile != "" {
		f, err := os.Open(entry.DocumentFile)
		if err != nil {
			return nil, fmt.Errorf("batch: entry %q: %w", entryLabel(entry), err)
		}
		defer f.Close()
		doc, err := jsonpath.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("batch: entry %q: decode %s: %w", entryLabel(entry), entry.DocumentFile, err)
		}
		return doc, nil
	}

	doc, err := jsonpath.Decode(strings.NewReader(entry.Document))
	if err != nil {
		return nil, fmt.Errorf("batch: entry %q: decode document: %w", entryLabel(entry), err)
	}
	return doc, nil
}

func parseMode(mode string) (jsonpath.ExecutionMode, error) {
	switch mode {
	case "", "sequential":
		return jsonpath.Sequential, nil
	case "parallel":
		return jsonpath.Parallel, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", mode)
	}
}

func entryLabel(entry Entry) string {
	if entry.ID != "" {
		return entry.ID
	}
	return entry.Query
}
