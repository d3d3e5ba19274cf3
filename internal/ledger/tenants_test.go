package ledger

import (
	"testing"

	"rentledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenantWith(id string, moveOut any, moveIn any) domain.Record {
	rec := domain.Record{"_id": id, "fullName": "Tenant " + id}
	if moveOut != nil {
		rec["moveOutDate"] = moveOut
	}
	if moveIn != nil {
		rec["moveInDate"] = moveIn
	}
	return rec
}

// TestActiveTenant_SingleActive 恰好一个无退租日期的条目被选中，与顺序无关
func TestActiveTenant_SingleActive(t *testing.T) {
	tenants := []domain.Tenant{
		NormalizeTenant(tenantWith("1", "2024-01-01", nil)),
		NormalizeTenant(tenantWith("2", nil, nil)),
	}
	active := ActiveTenant(tenants)
	require.NotNil(t, active)
	assert.Equal(t, "2", active.RecordID)
}

// TestActiveTenant_NoneActive 所有条目都有退租日期 → nil
func TestActiveTenant_NoneActive(t *testing.T) {
	tenants := []domain.Tenant{
		NormalizeTenant(tenantWith("1", "2024-01-01", nil)),
		NormalizeTenant(tenantWith("2", "2024-02-01", nil)),
	}
	assert.Nil(t, ActiveTenant(tenants))
	assert.Nil(t, ActiveTenant(nil))
}

// TestActiveTenant_MultipleActive 数据不一致时取输入顺序第一个，不报错
func TestActiveTenant_MultipleActive(t *testing.T) {
	tenants := []domain.Tenant{
		NormalizeTenant(tenantWith("a", nil, nil)),
		NormalizeTenant(tenantWith("b", nil, nil)),
	}
	active := ActiveTenant(tenants)
	require.NotNil(t, active)
	assert.Equal(t, "a", active.RecordID)
}

// TestSortedHistory 入住日期倒序；缺失日期按纪元处理排最后；输入不被修改
func TestSortedHistory(t *testing.T) {
	tenants := []domain.Tenant{
		NormalizeTenant(tenantWith("old", "2023-06-01", "2022-01-01")),
		NormalizeTenant(tenantWith("nodate", nil, nil)),
		NormalizeTenant(tenantWith("new", nil, "2024-05-01")),
	}
	sorted := SortedHistory(tenants)
	require.Len(t, sorted, 3)
	assert.Equal(t, "new", sorted[0].RecordID)
	assert.Equal(t, "old", sorted[1].RecordID)
	assert.Equal(t, "nodate", sorted[2].RecordID)

	// 原切片顺序不变
	assert.Equal(t, "old", tenants[0].RecordID)
}

// TestTenantRecords_LegacySingularKey tenants 优先，legacy tenant 字段兜底
func TestTenantRecords_LegacySingularKey(t *testing.T) {
	room := domain.Record{
		"tenant": []any{map[string]any{"_id": "t1"}},
	}
	recs := TenantRecords(room)
	require.Len(t, recs, 1)

	room = domain.Record{
		"tenants": []any{map[string]any{"_id": "t2"}},
		"tenant":  []any{map[string]any{"_id": "ignored"}},
	}
	recs = TenantRecords(room)
	require.Len(t, recs, 1)
	assert.Equal(t, "t2", ResolveString(recs[0], []string{"_id"}, ""))

	assert.Nil(t, TenantRecords(domain.Record{}))
}
