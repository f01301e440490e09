package jsonpath

import (
	"errors"
	"strings"
	"testing"
)

const booksDoc = `{
  "books":[
    {"category":"fiction","title":"A Wild Sheep Chase","author":"Haruki Murakami","price":22.72},
    {"category":"fiction","title":"The Night Watch","author":"Sergei Lukyanenko","price":23.58},
    {"category":"fiction","title":"The Comedians","author":"Graham Greene","price":21.99},
    {"category":"memoir","title":"The Night Watch","author":"David Atlee Phillips","price":260.90}
  ]
}`

func mustParse(t *testing.T, query string) *Path {
	t.Helper()
	p, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse(%q): %v", query, err)
	}
	return p
}

func mustDoc(t *testing.T, doc string) Value {
	t.Helper()
	v, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return v
}

func stringValues(t *testing.T, vs []Value) []string {
	t.Helper()
	out := make([]string, len(vs))
	for i, v := range vs {
		s, err := v.StringValue()
		if err != nil {
			t.Fatalf("value %d is not a string: %v", i, err)
		}
		out[i] = s
	}
	return out
}

func assertEqualStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSelectValuesUnionOfFiltersWithDuplicates(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$.books[?@.category=='memoir',?@.price>23].title")

	got, err := path.SelectValues(doc, Options{})
	if err != nil {
		t.Fatalf("SelectValues: %v", err)
	}
	assertEqualStrings(t, stringValues(t, got), []string{"The Night Watch", "The Night Watch", "The Night Watch"})
}

func TestSelectValuesUnionOfFiltersNoDuplicates(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$.books[?@.category=='memoir',?@.price>23].title")

	got, err := path.SelectValues(doc, Options{NoDuplicates: true})
	if err != nil {
		t.Fatalf("SelectValues: %v", err)
	}
	assertEqualStrings(t, stringValues(t, got), []string{"The Night Watch", "The Night Watch"})
}

func TestSelectValuesWildcardPrices(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$.books[*].price")

	got, err := path.SelectValues(doc, Options{})
	if err != nil {
		t.Fatalf("SelectValues: %v", err)
	}
	want := []float64{22.72, 23.58, 21.99, 260.90}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i, w := range want {
		f, ok := got[i].Double()
		if !ok || f != w {
			t.Errorf("index %d: got %v, want %v", i, f, w)
		}
	}
}

func TestSelectValuesNegativeIndex(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$.books[-1].title")

	got, err := path.SelectValues(doc, Options{})
	if err != nil {
		t.Fatalf("SelectValues: %v", err)
	}
	assertEqualStrings(t, stringValues(t, got), []string{"The Night Watch"})
}

func TestSelectValuesRecursiveDescentMaxDepthExceeded(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$..title")

	_, err := path.SelectValues(doc, Options{MaxDepth: 2})
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("got %v, want ErrMaxDepthExceeded", err)
	}
}

func TestSelectValuesRecursiveDescentWithinBudget(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$..title")

	got, err := path.SelectValues(doc, Options{MaxDepth: 64})
	if err != nil {
		t.Fatalf("SelectValues: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d titles, want 4: %v", len(got), got)
	}
}

func TestSelectValuesFunctionCallLengthOnStrings(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$.books[?length(@.title) > 15].title")

	got, err := path.SelectValues(doc, Options{})
	if err != nil {
		t.Fatalf("SelectValues: %v", err)
	}
	assertEqualStrings(t, stringValues(t, got), []string{"A Wild Sheep Chase"})
}

func TestSelectValuesRegexFilter(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, `$.books[?@.title=~/wild/i].title`)

	got, err := path.SelectValues(doc, Options{})
	if err != nil {
		t.Fatalf("SelectValues: %v", err)
	}
	assertEqualStrings(t, stringValues(t, got), []string{"A Wild Sheep Chase"})
}

func TestSelectNodesMatchSelectValues(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$.books[*].author")

	nodes, err := path.SelectNodes(doc, Options{})
	if err != nil {
		t.Fatalf("SelectNodes: %v", err)
	}
	values, err := path.SelectValues(doc, Options{})
	if err != nil {
		t.Fatalf("SelectValues: %v", err)
	}
	if len(nodes) != len(values) {
		t.Fatalf("SelectNodes returned %d, SelectValues returned %d", len(nodes), len(values))
	}
	for i, n := range nodes {
		got, _ := n.Value.StringValue()
		want, _ := values[i].StringValue()
		if got != want {
			t.Errorf("index %d: SelectNodes value %q != SelectValues value %q", i, got, want)
		}
	}
}

func TestSelectPathsRoundTripsThroughParse(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$.books[*].title")

	paths, err := path.SelectPaths(doc, Options{})
	if err != nil {
		t.Fatalf("SelectPaths: %v", err)
	}

	for i, p := range paths {
		reparsed := mustParse(t, p)
		got, err := reparsed.SelectValues(doc, Options{})
		if err != nil {
			t.Fatalf("SelectValues(%q): %v", p, err)
		}
		if len(got) != 1 {
			t.Fatalf("path %q selected %d values, want 1", p, len(got))
		}
		title, _ := got[0].StringValue()
		orig, _ := doc.Property("books")
		elem, _ := orig.Index(i)
		wantTitle, _ := elem.Property("title")
		want, _ := wantTitle.StringValue()
		if title != want {
			t.Errorf("round trip of %q: got %q, want %q", p, title, want)
		}
	}
}

func TestSortedPathsAgreeAcrossSelectPathsAndSelectNodes(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$.books[*].price")

	first, err := path.SelectPaths(doc, Options{Sort: true})
	if err != nil {
		t.Fatalf("SelectPaths: %v", err)
	}

	sortedDoc, err := path.SelectNodes(doc, Options{Sort: true})
	if err != nil {
		t.Fatalf("SelectNodes: %v", err)
	}
	var second []string
	for _, n := range sortedDoc {
		second = append(second, n.Path)
	}
	assertEqualStrings(t, second, first)
}

func TestNoDuplicatesIsIdempotent(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$.books[?@.category=='memoir',?@.price>23].title")

	once, err := path.SelectPaths(doc, Options{NoDuplicates: true})
	if err != nil {
		t.Fatalf("SelectPaths: %v", err)
	}

	// Re-running the same query with NoDuplicates through a second Path
	// instance stands in for "applying twice": the option only ever
	// acts on one already-collected result set per call, so idempotence
	// means a second pass changes nothing further.
	path2 := mustParse(t, "$.books[?@.category=='memoir',?@.price>23].title")
	twice, err := path2.SelectPaths(doc, Options{NoDuplicates: true})
	if err != nil {
		t.Fatalf("SelectPaths: %v", err)
	}
	assertEqualStrings(t, twice, once)
}

func TestUnionSequentialAndParallelAreSetEquivalent(t *testing.T) {
	doc := mustDoc(t, booksDoc)
	path := mustParse(t, "$.books[?@.category=='memoir',?@.price>23].title")

	seq, err := path.SelectPaths(doc, Options{ExecutionMode: Sequential, Sort: true})
	if err != nil {
		t.Fatalf("SelectPaths sequential: %v", err)
	}
	par, err := path.SelectPaths(doc, Options{ExecutionMode: Parallel, Sort: true})
	if err != nil {
		t.Fatalf("SelectPaths parallel: %v", err)
	}
	assertEqualStrings(t, par, seq)
}

func TestSelectValuesEmptyArrayWildcardYieldsNoResults(t *testing.T) {
	doc := mustDoc(t, `{"items": []}`)
	path := mustParse(t, "$.items[*]")

	got, err := path.SelectValues(doc, Options{})
	if err != nil {
		t.Fatalf("SelectValues: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d results, want 0", len(got))
	}
}

func TestSelectValuesNegativeIndexPastStartYieldsNothing(t *testing.T) {
	doc := mustDoc(t, `{"items": [1, 2, 3]}`)
	path := mustParse(t, "$.items[-4]")

	got, err := path.SelectValues(doc, Options{})
	if err != nil {
		t.Fatalf("SelectValues: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d results, want 0", len(got))
	}
}

func TestParseReturnsParseError(t *testing.T) {
	_, err := Parse("$.a{")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v (%T), want *ParseError", err, err)
	}
	if perr.Line == 0 && perr.Column == 0 {
		t.Errorf("ParseError has zero position: %+v", perr)
	}
}
