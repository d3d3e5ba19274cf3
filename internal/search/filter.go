package search

import (
	"strings"

	"rentledger/internal/domain"
	"rentledger/internal/ledger"
)

// StatusFilter 房间状态过滤维度
// "Left" 不是独立维度：租客已退租的房间仍按原始预订标记分类
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusBooked    StatusFilter = "booked"
	StatusAvailable StatusFilter = "available"
)

// ParseStatusFilter 非法输入退回 all
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case StatusBooked:
		return StatusBooked
	case StatusAvailable:
		return StatusAvailable
	default:
		return StatusAll
	}
}

// Filter 对房间集合依次应用状态过滤与自由文本搜索（两者 AND），
// 保持输入的相对顺序。搜索为大小写不敏感子串匹配，
// 命中域：房间号、楼栋名、在住租客姓名、在住租客 ID；空查询全命中。
func Filter(rooms []domain.Room, status StatusFilter, query string) []domain.Room {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if status != StatusAll {
			booked := status == StatusBooked
			if r.IsBooked != booked {
				continue
			}
		}
		if q != "" && !matchesQuery(r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesQuery(r domain.Room, q string) bool {
	if strings.Contains(strings.ToLower(r.Number), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Building.Name), q) {
		return true
	}
	t := ledger.ActiveTenant(r.Tenants)
	if t == nil {
		return false
	}
	if strings.Contains(strings.ToLower(t.FullName), q) {
		return true
	}
	return strings.Contains(strings.ToLower(t.DisplayID()), q)
}
