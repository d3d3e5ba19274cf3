package ledger

import (
	"rentledger/internal/domain"
)

// 房间规范化：building 可能是对象也可能是裸名称字符串，
// 租金按 room.rent → 在住租客 rentAmount → 0 兜底（与管理端行为一致）。

// NormalizeRoom 将原始房间记录映射为领域模型
func NormalizeRoom(rec domain.Record) domain.Room {
	room := domain.Room{
		ID:       ResolveString(rec, []string{"_id", "id"}, ""),
		Number:   ResolveString(rec, []string{"number", "roomNumber"}, ""),
		IsBooked: asBool(rec["isBooked"]),
		Building: normalizeBuilding(rec["building"]),
		Raw:      rec,
	}

	for _, t := range TenantRecords(rec) {
		room.Tenants = append(room.Tenants, NormalizeTenant(t))
	}

	room.Rent = ResolveNumber(rec, []string{"rent", "rentAmount", "monthlyRent"}, 0)
	if room.Rent == 0 {
		if active := ActiveTenant(room.Tenants); active != nil {
			room.Rent = active.Rent
		}
	}
	return room
}

func normalizeBuilding(v any) domain.Building {
	switch b := v.(type) {
	case string:
		return domain.Building{Name: b}
	case map[string]any:
		rec := domain.Record(b)
		return domain.Building{
			ID:   ResolveString(rec, []string{"_id", "id"}, ""),
			Name: ResolveString(rec, []string{"name"}, ""),
		}
	}
	return domain.Building{}
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}

// DisplayRent 卡片展示租金：租客字段优先于房间字段
// 别名链与前端一致：tenant.rentAmount, tenant.rent, room.rent, room.rentAmount, room.monthlyRent
func DisplayRent(room domain.Room, tenant *domain.Tenant) float64 {
	if tenant != nil {
		if r := ResolveNumber(tenant.Raw, []string{"rentAmount", "rent"}, 0); r != 0 {
			return r
		}
	}
	return ResolveNumber(room.Raw, []string{"rent", "rentAmount", "monthlyRent"}, 0)
}

// RoomDisplayStatus 卡片状态：在住租客已退租显示 Left，否则按预订标记
func RoomDisplayStatus(room domain.Room, tenant *domain.Tenant) domain.RoomStatus {
	if tenant.Left() {
		return domain.RoomStatusLeft
	}
	if room.IsBooked {
		return domain.RoomStatusBooked
	}
	return domain.RoomStatusAvailable
}
