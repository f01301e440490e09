package value

import (
	"hash/maphash"
	"strconv"
)

// maxHashDepth bounds recursion when hashing deeply nested arrays and
// objects, to avoid runaway recursion on pathological input.
const maxHashDepth = 100

var hashSeed = maphash.MakeSeed()

// Hash mixes a Value's kind and contents into a 64-bit digest. Two values that satisfy Equal always produce the same
// Hash; the converse is not guaranteed.
func Hash(v Value) uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	hashInto(&h, v, 0)
	return h.Sum64()
}

func hashInto(h *maphash.Hash, v Value, depth int) {
	_ = h.WriteByte(byte(v.Kind()))

	if depth > maxHashDepth {
		return
	}

	switch v.Kind() {
	case String:
		s, _ := v.StringValue()
		_, _ = h.WriteString(s)
	case Number:
		if f, ok := v.Double(); ok {
			_, _ = h.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
	case Array:
		elems, _ := v.Elements()
		for _, e := range elems {
			hashInto(h, e, depth+1)
		}
	case Object:
		props, _ := v.Properties()
		sorted := sortedProperties(props)
		for _, p := range sorted {
			_, _ = h.WriteString(p.Name)
			hashInto(h, p.Value, depth+1)
		}
	}
}

