package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rentledger/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 上游租赁后台 API 客户端
// 本层取数为 fire-and-await：不重试不退避，失败直接上抛由调用方处理
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient 创建上游 API 客户端
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: c,
		logger:     logger,
	}
}

// Rooms 拉取管理端房间列表（含内嵌租客记录）
func (c *Client) Rooms(ctx context.Context) ([]domain.Record, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get("/manager/rooms")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("upstream rooms request failed: %s", resp.Status())
	}
	records, err := decodeRecords(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode rooms response: %w", err)
	}
	c.logger.Debug("Fetched rooms from upstream", zap.Int("count", len(records)))
	return records, nil
}

// Tenant 按记录 ID 拉取单个租客
func (c *Client) Tenant(ctx context.Context, id string) (domain.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("tenant id required")
	}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get("/tenants/" + id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tenant %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("upstream tenant request failed: %s", resp.Status())
	}
	rec, err := decodeRecord(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode tenant response: %w", err)
	}
	return rec, nil
}

// BillsForTenant 按租客记录 ID 拉取全部账单（limit=0 表示不分页）
func (c *Client) BillsForTenant(ctx context.Context, tenantRecordID string) ([]domain.Record, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("tenant", tenantRecordID).
		SetQueryParam("limit", "0").
		Get("/bills")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bills for tenant %s: %w", tenantRecordID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("upstream bills request failed: %s", resp.Status())
	}
	records, err := decodeRecords(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode bills response: %w", err)
	}
	return records, nil
}

// PublicBills 公共账单查询（免认证，仅凭租客编号，供租客门户使用）
func (c *Client) PublicBills(ctx context.Context, tenantCode string) ([]domain.Record, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("tenantId", tenantCode).
		Get("/public/bills")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public bills for %s: %w", tenantCode, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("upstream public bills request failed: %s", resp.Status())
	}
	records, err := decodeRecords(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode public bills response: %w", err)
	}
	return records, nil
}

// UpdateTenant 变更租客（如设置退租日期）
// 核心不关心其内部实现，只期望下次拉取能看到变更
func (c *Client) UpdateTenant(ctx context.Context, id string, patch domain.Record) error {
	if id == "" {
		return fmt.Errorf("tenant id required")
	}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(patch).
		Patch("/tenants/" + id)
	if err != nil {
		return fmt.Errorf("failed to update tenant %s: %w", id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("upstream tenant update failed: %s", resp.Status())
	}
	c.logger.Info("Updated tenant upstream", zap.String("tenant_id", id))
	return nil
}

// 上游响应信封不统一：可能是裸数组/对象，也可能包在 {"data": ...} 里

func decodeRecords(body []byte) ([]domain.Record, error) {
	var list []domain.Record
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var envelope struct {
		Data []domain.Record `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func decodeRecord(body []byte) (domain.Record, error) {
	var rec domain.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, err
	}
	if inner, ok := rec["data"]; ok {
		if m, ok := inner.(map[string]any); ok {
			return domain.Record(m), nil
		}
	}
	return rec, nil
}
