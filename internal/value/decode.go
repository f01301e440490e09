package value

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a single JSON document from r into a Value tree,
// preserving object property order exactly as encountered — the
// standard library's map[string]any would discard it, and object
// iteration order is observable through wildcard and recursive-descent
// selectors. The token-by-token walk mirrors how a hand-rolled streaming
// decoder builds nested containers one delimiter at a time.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("value: decode: %w", err)
	}

	v, err := decodeValue(dec, tok)
	if err != nil {
		return nil, fmt.Errorf("value: decode: %w", err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		return NewNumberLiteral(t.String()), nil
	case string:
		return NewString(t), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return NullValue, nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	var props []Property
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return NewObject(props), nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %T", tok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := decodeValue(dec, valTok)
		if err != nil {
			return nil, err
		}
		props = append(props, Property{Name: key, Value: val})
	}
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var elems []Value
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return NewArray(elems), nil
		}
		val, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}
		elems = append(elems, val)
	}
}
