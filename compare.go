package main

import "strings"

// compare orders two values, returning -1, 0, or +1 and true, or false when
// the pair has no order: mismatched variants (other than Integer against
// Float), blocks, and NaN.
func compare(a, b Value) (int, bool) {
	switch a := a.(type) {
	case Char:
		if b, ok := b.(Char); ok {
			return cmpInt(int64(a), int64(b)), true
		}
	case Integer:
		switch b := b.(type) {
		case Integer:
			return cmpInt(int64(a), int64(b)), true
		case Float:
			return cmpFloat(float64(a), float64(b))
		}
	case Float:
		switch b := b.(type) {
		case Integer:
			return cmpFloat(float64(a), float64(b))
		case Float:
			return cmpFloat(float64(a), float64(b))
		}
	case Str:
		if b, ok := b.(Str); ok {
			return strings.Compare(string(a), string(b)), true
		}
	case Array:
		if b, ok := b.(Array); ok {
			return cmpArrays(a, b)
		}
	}
	return 0, false
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) (int, bool) {
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	case a == b:
		return 0, true
	}
	return 0, false
}

// cmpArrays is lexicographic: the first unequal (or unordered) element pair
// decides, otherwise the shorter array is less.
func cmpArrays(a, b Array) (int, bool) {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c, ok := compare(a[i], b[i]); !ok || c != 0 {
			return c, ok
		}
	}
	return cmpInt(int64(len(a)), int64(len(b))), true
}

// less is the strict ordering used by comparison operators and min/max.
func less(a, b Value) bool {
	c, ok := compare(a, b)
	return ok && c < 0
}

// keyCmp is a total order for sorting: unordered pairs compare equal.
func keyCmp(a, b Value) int {
	c, _ := compare(a, b)
	return c
}

// equal is value equality. Blocks are equal when their operator tokens are
// equal position by position.
func equal(a, b Value) bool {
	switch a := a.(type) {
	case *Block:
		b, ok := b.(*Block)
		if !ok || len(a.ops) != len(b.ops) {
			return false
		}
		for i := range a.ops {
			if a.ops[i].token != b.ops[i].token {
				return false
			}
		}
		return true
	case Array:
		b, ok := b.(Array)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !equal(a[i], b[i]) {
				return false
			}
		}
		return true
	}
	c, ok := compare(a, b)
	return ok && c == 0
}
