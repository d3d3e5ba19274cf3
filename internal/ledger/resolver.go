package ledger

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"rentledger/internal/domain"
)

// 字段解析器：上游记录同一数量可能出现在多个别名字段下，
// 按固定优先级取第一个有效候选。纯函数，畸形输入一律当作缺失，绝不报错。

// Lookup 解析记录中的键，支持点号路径（如 "totals.totalAmount"）
func Lookup(rec domain.Record, key string) (any, bool) {
	if rec == nil {
		return nil, false
	}
	cur := any(rec)
	for _, part := range strings.Split(key, ".") {
		m, ok := toMap(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case domain.Record:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}

// AsNumber 将任意值转为有限浮点数；无法解析返回 false
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ResolveNumber 按候选顺序返回第一个可解析为有限数的字段值
func ResolveNumber(rec domain.Record, keys []string, def float64) float64 {
	for _, k := range keys {
		v, ok := Lookup(rec, k)
		if !ok {
			continue
		}
		if n, ok := AsNumber(v); ok {
			return n
		}
	}
	return def
}

// ResolveString 按候选顺序返回第一个非空字符串化标量
func ResolveString(rec domain.Record, keys []string, def string) string {
	for _, k := range keys {
		v, ok := Lookup(rec, k)
		if !ok {
			continue
		}
		if s := asString(v); s != "" {
			return s
		}
	}
	return def
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// 上游日期格式不统一：ISO8601、日期部分或含毫秒的变体都出现过
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
}

// AsTime 尽力解析时间值；失败返回 nil
func AsTime(v any) *time.Time {
	s := asString(v)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	// 数值时间戳（秒或毫秒）
	if n, ok := AsNumber(v); ok && n > 0 {
		sec := int64(n)
		if sec > 1e12 { // 毫秒
			t := time.UnixMilli(sec).UTC()
			return &t
		}
		t := time.Unix(sec, 0).UTC()
		return &t
	}
	return nil
}

// ResolveTime 按候选顺序返回第一个可解析的时间
func ResolveTime(rec domain.Record, keys []string) *time.Time {
	for _, k := range keys {
		v, ok := Lookup(rec, k)
		if !ok {
			continue
		}
		if t := AsTime(v); t != nil {
			return t
		}
	}
	return nil
}
