package service

import (
	"context"

	"rentledger/internal/domain"
)

// Upstream 上游租赁后台 API（见 internal/client）
// 服务层只依赖接口，便于单元测试
type Upstream interface {
	Rooms(ctx context.Context) ([]domain.Record, error)
	Tenant(ctx context.Context, id string) (domain.Record, error)
	BillsForTenant(ctx context.Context, tenantRecordID string) ([]domain.Record, error)
	PublicBills(ctx context.Context, tenantCode string) ([]domain.Record, error)
	UpdateTenant(ctx context.Context, id string, patch domain.Record) error
}
