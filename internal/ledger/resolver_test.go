package ledger

import (
	"testing"
	"time"

	"rentledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveNumber_Precedence 测试别名优先级：第一个可解析的候选胜出
func TestResolveNumber_Precedence(t *testing.T) {
	rec := domain.Record{"totalAmount": 500.0, "total": 200.0}
	got := ResolveNumber(rec, []string{"totalAmount", "total"}, 0)
	assert.Equal(t, 500.0, got)

	// 第一个候选缺失时取第二个
	rec = domain.Record{"total": 200.0}
	got = ResolveNumber(rec, []string{"totalAmount", "total"}, 0)
	assert.Equal(t, 200.0, got)
}

// TestResolveNumber_MalformedTreatedAsAbsent 畸形值当缺失处理，不报错
func TestResolveNumber_MalformedTreatedAsAbsent(t *testing.T) {
	rec := domain.Record{
		"rentAmount": "abc",
		"rent":       "1250.50",
	}
	got := ResolveNumber(rec, []string{"rentAmount", "rent"}, 0)
	assert.Equal(t, 1250.50, got)

	// 全部畸形 → 默认值
	rec = domain.Record{"rentAmount": "x", "rent": map[string]any{}}
	assert.Equal(t, 99.0, ResolveNumber(rec, []string{"rentAmount", "rent"}, 99))

	// nil 记录不 panic
	assert.Equal(t, 0.0, ResolveNumber(nil, []string{"rent"}, 0))
}

// TestResolveNumber_NestedKeys 点号路径读取嵌套字段
func TestResolveNumber_NestedKeys(t *testing.T) {
	rec := domain.Record{
		"totals": map[string]any{"totalAmount": "700"},
	}
	got := ResolveNumber(rec, []string{"amount", "totals.totalAmount"}, 0)
	assert.Equal(t, 700.0, got)
}

// TestResolveNumber_Idempotent 纯函数：相同输入重复调用结果一致
func TestResolveNumber_Idempotent(t *testing.T) {
	rec := domain.Record{"amount": "42"}
	first := ResolveNumber(rec, []string{"amount"}, 0)
	second := ResolveNumber(rec, []string{"amount"}, 0)
	assert.Equal(t, first, second)
}

func TestResolveString(t *testing.T) {
	rec := domain.Record{"number": 101, "roomNumber": "ignored"}
	assert.Equal(t, "101", ResolveString(rec, []string{"number", "roomNumber"}, "-"))
	assert.Equal(t, "-", ResolveString(domain.Record{}, []string{"number"}, "-"))
}

// TestAsTime 上游日期格式不统一，尽力解析
func TestAsTime(t *testing.T) {
	got := AsTime("2024-03-01T10:30:00Z")
	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())

	got = AsTime("2024-03-01")
	require.NotNil(t, got)
	assert.Equal(t, time.March, got.Month())

	assert.Nil(t, AsTime("not a date"))
	assert.Nil(t, AsTime(""))
	assert.Nil(t, AsTime(nil))
}
