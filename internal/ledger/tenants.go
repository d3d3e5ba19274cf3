package ledger

import (
	"sort"

	"rentledger/internal/domain"
)

// 租客选择器：从房间的租客列表里确定唯一"在住"租客（无退租日期），
// 并按入住日期倒序排出完整历史。

// NormalizeTenant 将原始租客记录映射为领域模型
func NormalizeTenant(rec domain.Record) domain.Tenant {
	return domain.Tenant{
		RecordID: ResolveString(rec, []string{"_id", "id"}, ""),
		Code:     ResolveString(rec, []string{"tenantId"}, ""),
		FullName: ResolveString(rec, []string{"fullName", "name"}, ""),
		Phone:    ResolveString(rec, []string{"phone", "mobile"}, ""),
		Email:    ResolveString(rec, []string{"email"}, ""),
		Rent:     ResolveNumber(rec, []string{"rentAmount", "rent"}, 0),
		Advance:  ResolveNumber(rec, []string{"advancedAmount", "advanceAmount"}, 0),
		MoveIn:   ResolveTime(rec, []string{"moveInDate"}),
		MoveOut:  ResolveTime(rec, []string{"moveOutDate"}),
		Raw:      rec,
	}
}

// TenantRecords 取房间记录里的租客列表
// 兼容 legacy 单数字段：tenants 优先，其次 tenant
func TenantRecords(room domain.Record) []domain.Record {
	for _, key := range []string{"tenants", "tenant"} {
		v, ok := Lookup(room, key)
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok || len(list) == 0 {
			continue
		}
		out := make([]domain.Record, 0, len(list))
		for _, item := range list {
			if m, ok := toMap(item); ok {
				out = append(out, domain.Record(m))
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// ActiveTenant 返回列表中第一个无退租日期的租客；不存在返回 nil。
// 多个在住条目属于源数据不一致：按输入顺序取第一个，不报错（尽力而为）。
func ActiveTenant(tenants []domain.Tenant) *domain.Tenant {
	for i := range tenants {
		if tenants[i].MoveOut == nil {
			return &tenants[i]
		}
	}
	return nil
}

// SortedHistory 按入住日期倒序（最新在前）排列租客历史。
// 入住日期缺失/无效按纪元时间处理（最旧，排最后）。不修改输入。
func SortedHistory(tenants []domain.Tenant) []domain.Tenant {
	out := make([]domain.Tenant, len(tenants))
	copy(out, tenants)
	sort.SliceStable(out, func(i, j int) bool {
		return moveInUnix(out[i]) > moveInUnix(out[j])
	})
	return out
}

func moveInUnix(t domain.Tenant) int64 {
	if t.MoveIn == nil {
		return 0
	}
	return t.MoveIn.UnixMilli()
}
