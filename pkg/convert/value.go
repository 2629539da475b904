package convert

import (
	"strconv"
	"strings"
)

// ToString 宽松字符串转换，非字符串一律返回空串
func ToString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// toNumber accepts JSON-decoded numbers and numeric strings.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ToPositiveInt parses v as a positive whole number.
// Anything that is not a number greater than zero yields 0.
// ToPositiveInt 解析正整数，解析失败或非正数时返回 0
func ToPositiveInt(v any) int {
	f, ok := toNumber(v)
	if !ok || f <= 0 {
		return 0
	}
	return int(f)
}

// ToNonNegativeInt parses v as a whole number of at least zero,
// falling back to 0 for anything else.
// ToNonNegativeInt 解析非负整数，失败或负数时回落为 0
func ToNonNegativeInt(v any) int {
	f, ok := toNumber(v)
	if !ok || f < 0 {
		return 0
	}
	return int(f)
}

// ToBoolOr 布尔转换，无法识别时返回默认值
func ToBoolOr(v any, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}
