package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"rentledger/internal/domain"
	"rentledger/internal/ledger"

	"go.uber.org/zap"
)

// PortalStats 租客门户汇总栏
type PortalStats struct {
	TotalDue     float64       `json:"total_due"`     // 未结账单总额
	OverdueCount int           `json:"overdue_count"` // 已过期且未支付
	RecentlyPaid []domain.Bill `json:"recently_paid"` // 最近已支付（至多 3 条）
}

// PortalView 租客门户账单视图：最新账单 + 历史 + 汇总
type PortalView struct {
	TenantCode  string        `json:"tenant_code"`
	Current     *domain.Bill  `json:"current,omitempty"`
	Bills       []domain.Bill `json:"bills"`
	Stats       PortalStats   `json:"stats"`
	LastChecked time.Time     `json:"last_checked"`
}

// BillService 公共账单查询服务（免认证门户）
type BillService struct {
	upstream Upstream
	logger   *zap.Logger
	now      func() time.Time // 测试可替换
}

func NewBillService(upstream Upstream, logger *zap.Logger) *BillService {
	return &BillService{upstream: upstream, logger: logger, now: time.Now}
}

// NormalizeTenantCode 租客编号规整：去空白、转大写、缺 "T" 前缀补上
// 空输入返回 ErrEmptyTenantCode（不发起拉取，调用方清空旧结果）
func NormalizeTenantCode(input string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(input))
	if trimmed == "" {
		return "", ErrEmptyTenantCode
	}
	if !strings.HasPrefix(trimmed, "T") {
		trimmed = "T" + trimmed
	}
	return trimmed, nil
}

// PublicBills 按租客编号查询账单，billingMonth 倒序，最新一条为当前账单
func (s *BillService) PublicBills(ctx context.Context, rawCode string) (*PortalView, error) {
	code, err := NormalizeTenantCode(rawCode)
	if err != nil {
		return nil, err
	}

	records, err := s.upstream.PublicBills(ctx, code)
	if err != nil {
		s.logger.Error("Public bill lookup failed", zap.String("tenant_code", code), zap.Error(err))
		return nil, err
	}

	bills := make([]domain.Bill, 0, len(records))
	for _, rec := range records {
		bills = append(bills, ledger.EnhanceBill(rec, nil))
	}
	sort.SliceStable(bills, func(i, j int) bool {
		return billingMonthUnix(bills[i]) > billingMonthUnix(bills[j])
	})

	view := &PortalView{
		TenantCode:  code,
		Bills:       bills,
		Stats:       portalStats(bills, s.now()),
		LastChecked: s.now(),
	}
	if len(bills) > 0 {
		view.Current = &bills[0]
	}
	return view, nil
}

func portalStats(bills []domain.Bill, now time.Time) PortalStats {
	stats := PortalStats{}
	for _, b := range bills {
		if b.Status != domain.BillStatusPaid {
			stats.TotalDue += b.Total
			if due := ledger.ResolveTime(b.Raw, []string{"dueDate"}); due != nil && due.Before(now) {
				stats.OverdueCount++
			}
			continue
		}
		if len(stats.RecentlyPaid) < 3 {
			stats.RecentlyPaid = append(stats.RecentlyPaid, b)
		}
	}
	return stats
}

func billingMonthUnix(b domain.Bill) int64 {
	if t := ledger.AsTime(b.BillingMonth); t != nil {
		return t.UnixMilli()
	}
	return 0
}
