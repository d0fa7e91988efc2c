package main

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

func toChar(v Value) (Value, error) {
	switch v := v.(type) {
	case Char:
		return v, nil
	case Integer:
		if v >= 0 && v <= utf8.MaxRune && utf8.ValidRune(rune(v)) {
			return Char(v), nil
		}
	case Float:
		if v >= 0 && v < math.MaxInt8 && v == Float(math.Trunc(float64(v))) {
			return Char(v), nil
		}
	}
	return nil, castError(v, "Char")
}

func toFloat(v Value) (Value, error) {
	switch v := v.(type) {
	case Char:
		if v < utf8.RuneSelf {
			return Float(v), nil
		}
	case Integer:
		return Float(v), nil
	case Float:
		return v, nil
	}
	return nil, castError(v, "Float")
}

func toInt(v Value) (Value, error) {
	switch v := v.(type) {
	case Char:
		return Integer(v), nil
	case Integer:
		return v, nil
	case Float:
		return Integer(truncFloat(float64(v))), nil
	case Str:
		if n, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return Integer(n), nil
		}
	}
	return nil, castError(v, "Integer")
}

func toStr(v Value) (Str, error) {
	switch v := v.(type) {
	case Char:
		return Str(rune(v)), nil
	case Integer:
		return Str(strconv.FormatInt(int64(v), 10)), nil
	case Float:
		return Str(formatFloat(float64(v))), nil
	case Str:
		return v, nil
	case Array:
		var sb strings.Builder
		writeDebugList(&sb, v)
		return Str(sb.String()), nil
	}
	return "", castError(v, "Str")
}

// truncFloat converts toward zero, saturating at the int64 range; NaN is 0.
func truncFloat(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}
