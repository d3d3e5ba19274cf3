package service

import (
	"context"
	"sort"

	"rentledger/internal/domain"
	"rentledger/internal/ledger"

	"go.uber.org/zap"
)

// TenantStatement 租客对账单：档案 + 支付历史 + 增强账单 + 汇总欠款
type TenantStatement struct {
	Tenant   domain.Tenant    `json:"tenant"`
	Bills    []domain.Bill    `json:"bills"`
	Payments []domain.Payment `json:"payments"`
	TotalDue float64          `json:"total_due"`
}

// TenantService 租客对账服务
type TenantService struct {
	upstream Upstream
	logger   *zap.Logger
}

func NewTenantService(upstream Upstream, logger *zap.Logger) *TenantService {
	return &TenantService{upstream: upstream, logger: logger}
}

// Statement 拉取租客 + 账单并做全量对账
// 账单接口失败时降级读取租客记录上内嵌的 bills/generatedBills；
// 租客无独立支付列表时从账单推导支付记录
func (s *TenantService) Statement(ctx context.Context, id string) (*TenantStatement, error) {
	rec, err := s.upstream.Tenant(ctx, id)
	if err != nil {
		return nil, err
	}

	billRecs, err := s.upstream.BillsForTenant(ctx, id)
	if err != nil {
		s.logger.Warn("Bill fetch failed, falling back to embedded bills",
			zap.String("tenant_id", id), zap.Error(err))
		billRecs = embeddedBills(rec)
	}

	paymentRecs := embeddedPayments(rec)
	if len(paymentRecs) == 0 {
		paymentRecs = ledger.DerivePayments(billRecs)
	}

	payments := make([]domain.Payment, 0, len(paymentRecs))
	for _, p := range paymentRecs {
		payments = append(payments, ledger.NormalizePayment(p))
	}
	ledger.SortPaymentsDesc(payments)

	bills := make([]domain.Bill, 0, len(billRecs))
	for _, b := range billRecs {
		bills = append(bills, ledger.EnhanceBill(b, paymentRecs))
	}
	sort.SliceStable(bills, func(i, j int) bool {
		return generatedUnix(bills[i]) > generatedUnix(bills[j])
	})

	totalDue := 0.0
	if len(bills) > 0 {
		for _, b := range bills {
			totalDue += b.Outstanding
		}
	} else {
		// 无账单时退回租客记录上的欠款汇总
		totalDue = ledger.ResolveNumber(rec, []string{"duePayment.pendingAmount"}, 0)
	}

	return &TenantStatement{
		Tenant:   ledger.NormalizeTenant(rec),
		Bills:    bills,
		Payments: payments,
		TotalDue: totalDue,
	}, nil
}

// MarkLeave 给房间的在住租客登记退租
// 前置条件：房间存在、有在住租客、给了退租日期 —— 违反即本地中止，
// 不向上游发出任何变更请求
func (s *TenantService) MarkLeave(ctx context.Context, roomID, leaveDate string) error {
	if leaveDate == "" {
		return ErrNoLeaveDate
	}
	records, err := s.upstream.Rooms(ctx)
	if err != nil {
		return err
	}

	var room *domain.Room
	for _, rec := range records {
		r := ledger.NormalizeRoom(rec)
		if r.ID == roomID {
			room = &r
			break
		}
	}
	if room == nil {
		return ErrRoomNotFound
	}

	active := ledger.ActiveTenant(room.Tenants)
	if active == nil {
		return ErrNoActiveTenant
	}

	return s.upstream.UpdateTenant(ctx, active.RecordID, domain.Record{"moveOutDate": leaveDate})
}

// SetMoveOut 直接更新租客退租日期（空串表示清除）
// 调用方随后重新拉取以观察变更
func (s *TenantService) SetMoveOut(ctx context.Context, tenantID, date string) error {
	if tenantID == "" {
		return ErrNoActiveTenant
	}
	var patch domain.Record
	if date == "" {
		patch = domain.Record{"moveOutDate": nil}
	} else {
		patch = domain.Record{"moveOutDate": date}
	}
	return s.upstream.UpdateTenant(ctx, tenantID, patch)
}

func embeddedBills(rec domain.Record) []domain.Record {
	for _, key := range []string{"bills", "generatedBills"} {
		if list := recordList(rec, key); len(list) > 0 {
			return list
		}
	}
	return nil
}

func embeddedPayments(rec domain.Record) []domain.Record {
	return recordList(rec, "payments")
}

func recordList(rec domain.Record, key string) []domain.Record {
	v, ok := ledger.Lookup(rec, key)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]domain.Record, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, domain.Record(m))
		}
	}
	return out
}

func generatedUnix(b domain.Bill) int64 {
	if b.GeneratedAt == nil {
		return 0
	}
	return b.GeneratedAt.UnixMilli()
}
