package value

import "sort"

// Equal implements the deep, ordering-independent equality relation
// used by the "==" and "!=" operators and the contains() built-in.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case Null, True, False, Undefined:
		return true
	case Number:
		return numbersEqual(a, b)
	case String:
		as, _ := a.StringValue()
		bs, _ := b.StringValue()
		return as == bs
	case Array:
		ae, _ := a.Elements()
		be, _ := b.Elements()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !Equal(ae[i], be[i]) {
				return false
			}
		}
		return true
	case Object:
		return objectsEqual(a, b)
	default:
		return false
	}
}

func numbersEqual(a, b Value) bool {
	if ar, aok := a.Decimal(); aok {
		if br, bok := b.Decimal(); bok {
			return ar.Cmp(br) == 0
		}
	}
	af, aok := a.Double()
	bf, bok := b.Double()
	return aok && bok && af == bf
}

func objectsEqual(a, b Value) bool {
	ap, _ := a.Properties()
	bp, _ := b.Properties()
	if len(ap) != len(bp) {
		return false
	}

	as := sortedProperties(ap)
	bs := sortedProperties(bp)
	for i := range as {
		if as[i].Name != bs[i].Name {
			return false
		}
		if !Equal(as[i].Value, bs[i].Value) {
			return false
		}
	}
	return true
}

func sortedProperties(props []Property) []Property {
	out := make([]Property, len(props))
	copy(out, props)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Compare orders two values for the "<", "<=", ">", ">=" operators.
// It returns (cmp, true) when the operands are ordinally comparable
// (both numbers or both strings), and (0, false) otherwise — callers
// treat the latter as a comparison failure that yields null.
func Compare(a, b Value) (int, bool) {
	if a.Kind() == Number && b.Kind() == Number {
		if ar, aok := a.Decimal(); aok {
			if br, bok := b.Decimal(); bok {
				return ar.Cmp(br), true
			}
		}
		af, aok := a.Double()
		bf, bok := b.Double()
		if !aok || !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	if a.Kind() == String && b.Kind() == String {
		as, _ := a.StringValue()
		bs, _ := b.StringValue()
		switch {
		case as < bs:
			return -1, true
		case as > bs:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

// Truthy implements the truthiness rule used by logical operators and
// filter predicates: false iff the value is False, Null, Undefined, an
// empty array, an empty-property object, or an empty string; numbers
// (including 0 and NaN) are always true.
func Truthy(v Value) bool {
	switch v.Kind() {
	case False, Null, Undefined:
		return false
	case Array:
		n, _ := v.Len()
		return n != 0
	case Object:
		n, _ := v.Len()
		return n != 0
	case String:
		s, _ := v.StringValue()
		return s != ""
	default:
		return true
	}
}
