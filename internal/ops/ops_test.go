package ops

import (
	"strings"
	"testing"

	"github.com/dvorsky/jsonpath/internal/value"
)

func num(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.Decode(strings.NewReader(s))
	if err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func TestArithmeticDivisionByZero(t *testing.T) {
	got := Div.Apply(num(t, "1"), num(t, "0"))
	if got.Kind() != value.Null {
		t.Errorf("1/0 = %v, want null", got.Kind())
	}
}

func TestArithmeticExactPreferred(t *testing.T) {
	got := Add.Apply(num(t, "1"), num(t, "2"))
	r, ok := got.Decimal()
	if !ok {
		t.Fatal("expected exact decimal result")
	}
	if r.RatString() != "3" && r.RatString() != "3/1" {
		t.Errorf("1+2 = %s, want 3", r.RatString())
	}
}

func TestComparisonMixedKindsIsNull(t *testing.T) {
	got := Lt.Apply(num(t, "1"), num(t, `"a"`))
	if got.Kind() != value.Null {
		t.Errorf("1 < \"a\" = %v, want null", got.Kind())
	}
}

func TestLogicalShortCircuitReturnsOperandValue(t *testing.T) {
	// || and && return the operand value itself, not a coerced boolean.
	got := Or.Apply(num(t, "0"), num(t, "false"))
	if got.Kind() != value.Number {
		t.Errorf("0 || false = %v, want the number 0 (0 is truthy)", got.Kind())
	}
}

func TestFunctionArity(t *testing.T) {
	fn, ok := Functions["length"]
	if !ok {
		t.Fatal("length not registered")
	}
	if fn.Arity != 1 {
		t.Errorf("length arity = %d, want 1", fn.Arity)
	}
}

func TestLengthCountsCodepoints(t *testing.T) {
	fn := Functions["length"]
	got := fn.Call([]value.Value{num(t, `"héllo"`)})
	f, _ := got.Double()
	if f != 5 {
		t.Errorf("length(\"héllo\") = %v, want 5", f)
	}
}

func TestMinMaxRequireHomogeneous(t *testing.T) {
	fn := Functions["max"]
	arr := num(t, `[1, "a", 2]`)
	got := fn.Call([]value.Value{arr})
	if got.Kind() != value.Null {
		t.Errorf("max of mixed array = %v, want null", got.Kind())
	}

	arr2 := num(t, `[3, 1, 2]`)
	got2 := fn.Call([]value.Value{arr2})
	f, _ := got2.Double()
	if f != 3 {
		t.Errorf("max([3,1,2]) = %v, want 3", f)
	}
}

func TestAvgEmptyIsNull(t *testing.T) {
	fn := Functions["avg"]
	got := fn.Call([]value.Value{num(t, "[]")})
	if got.Kind() != value.Null {
		t.Errorf("avg([]) = %v, want null", got.Kind())
	}
}

func TestContainsArrayAndString(t *testing.T) {
	fn := Functions["contains"]

	got := fn.Call([]value.Value{num(t, "[1,2,3]"), num(t, "2")})
	if got.Kind() != value.True {
		t.Errorf("contains([1,2,3], 2) = %v, want true", got.Kind())
	}

	got2 := fn.Call([]value.Value{num(t, `"hello world"`), num(t, `"wor"`)})
	if got2.Kind() != value.True {
		t.Errorf("contains(\"hello world\", \"wor\") = %v, want true", got2.Kind())
	}
}

func TestTokenizeSplitsOnRegex(t *testing.T) {
	fn := Functions["tokenize"]
	got := fn.Call([]value.Value{num(t, `"a1b22c"`), num(t, `"[0-9]+"`)})
	elems, err := got.Elements()
	if err != nil {
		t.Fatalf("Elements() error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(elems) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(elems), len(want))
	}
	for i, w := range want {
		s, _ := elems[i].StringValue()
		if s != w {
			t.Errorf("token[%d] = %q, want %q", i, s, w)
		}
	}
}
