// Package batch runs many JSONPath queries against many documents
// from a single YAML manifest, the multi-query analogue of the
// teacher's multi-file test-run mode.
package batch

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// Entry is one query to run against one document.
type Entry struct {
	// ID names this entry in Result output. When empty, the entry is
	// labelled by its query text instead.
	ID string `yaml:"id,omitempty"`

	// Document is the document text, inline. Exactly one of Document
	// or DocumentFile must be set.
	Document string `yaml:"document,omitempty"`
	// DocumentFile names a file to read the document from, resolved
	// relative to the current working directory.
	DocumentFile string `yaml:"document_file,omitempty"`

	Query string `yaml:"query"`

	MaxDepth     int    `yaml:"max_depth,omitempty"`
	Mode         string `yaml:"mode,omitempty"` // "sequential" (default) or "parallel"
	NoDuplicates bool   `yaml:"no_duplicates,omitempty"`
	Sort         bool   `yaml:"sort,omitempty"`
}

// Manifest is a batch run's full set of entries plus the rate limit
// applied across all of them.
type Manifest struct {
	// RateLimit caps entries started per second, shared across the
	// whole run. Zero means unlimited.
	RateLimit float64 `yaml:"rate_limit,omitempty"`
	Entries   []Entry `yaml:"entries"`
}

// ParseManifest decodes a batch manifest from r.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("batch: decode manifest: %w", err)
	}
	for i, e := range m.Entries {
		if e.Query == "" {
			return nil, fmt.Errorf("batch: entry %d: query is required", i)
		}
		if (e.Document == "") == (e.DocumentFile == "") {
			return nil, fmt.Errorf("batch: entry %d: exactly one of document or document_file is required", i)
		}
	}
	return &m, nil
}
