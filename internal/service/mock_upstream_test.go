package service

import (
	"context"

	"rentledger/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUpstream is a mock implementation of Upstream
type MockUpstream struct {
	mock.Mock
}

func (m *MockUpstream) Rooms(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockUpstream) Tenant(ctx context.Context, id string) (domain.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Record), args.Error(1)
}

func (m *MockUpstream) BillsForTenant(ctx context.Context, tenantRecordID string) ([]domain.Record, error) {
	args := m.Called(ctx, tenantRecordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockUpstream) PublicBills(ctx context.Context, tenantCode string) ([]domain.Record, error) {
	args := m.Called(ctx, tenantCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockUpstream) UpdateTenant(ctx context.Context, id string, patch domain.Record) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
