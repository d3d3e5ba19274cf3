package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"rentledger/internal/domain"
	"rentledger/internal/ledger"
	"rentledger/internal/search"
	"rentledger/internal/store"

	"go.uber.org/zap"
)

const roomsCacheKey = "rentledger:rooms:snapshot"

// RoomCard 房间卡片视图（管理端列表项）
type RoomCard struct {
	Room         domain.Room       `json:"room"`
	ActiveTenant *domain.Tenant    `json:"active_tenant,omitempty"`
	Status       domain.RoomStatus `json:"status"`
	Rent         float64           `json:"rent"`
	MoveIn       *time.Time        `json:"move_in,omitempty"`
	MoveOut      *time.Time        `json:"move_out,omitempty"`
}

// RoomsOverview 过滤后的房间集合（shown/total 供列表头展示）
type RoomsOverview struct {
	Items []RoomCard `json:"items"`
	Shown int        `json:"shown"`
	Total int        `json:"total"`
}

// RoomService 房间概览服务：拉取（或读缓存）→ 规范化 → 过滤
type RoomService struct {
	upstream Upstream
	kv       store.KV
	cacheTTL time.Duration
	logger   *zap.Logger

	// 重载序号：晚到的旧响应会被丢弃，避免覆盖更新的视图
	reloadSeq atomic.Uint64
}

func NewRoomService(upstream Upstream, kv store.KV, cacheTTL time.Duration, logger *zap.Logger) *RoomService {
	return &RoomService{
		upstream: upstream,
		kv:       kv,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Overview 返回过滤后的房间概览
// reload=true 时绕过快照缓存强制走上游；
// 拉取失败时集合重置为空（不保留部分旧数据），错误上抛
func (s *RoomService) Overview(ctx context.Context, status search.StatusFilter, query string, reload bool) (*RoomsOverview, error) {
	records, err := s.loadRecords(ctx, reload)
	if err != nil {
		return &RoomsOverview{Items: []RoomCard{}}, err
	}

	rooms := make([]domain.Room, 0, len(records))
	for _, rec := range records {
		rooms = append(rooms, ledger.NormalizeRoom(rec))
	}

	filtered := search.Filter(rooms, status, query)
	items := make([]RoomCard, 0, len(filtered))
	for _, r := range filtered {
		items = append(items, buildCard(r))
	}

	return &RoomsOverview{
		Items: items,
		Shown: len(items),
		Total: len(rooms),
	}, nil
}

func (s *RoomService) loadRecords(ctx context.Context, reload bool) ([]domain.Record, error) {
	if !reload && s.kv != nil {
		if cached, err := s.kv.Get(ctx, roomsCacheKey); err == nil {
			var records []domain.Record
			if err := json.Unmarshal([]byte(cached), &records); err == nil {
				return records, nil
			}
			// 缓存损坏：当作未命中，走上游重建
			s.logger.Warn("Room snapshot cache corrupt, refetching")
		}
	}

	// 重载先失效旧快照：拉取失败后后续请求也不能再读到陈旧数据
	if reload && s.kv != nil {
		if err := s.kv.Delete(ctx, roomsCacheKey); err != nil {
			s.logger.Warn("Failed to invalidate room snapshot", zap.Error(err))
		}
	}

	seq := s.reloadSeq.Add(1)
	records, err := s.upstream.Rooms(ctx)
	if err != nil {
		s.logger.Error("Failed to load rooms from upstream", zap.Error(err))
		return nil, err
	}
	if s.reloadSeq.Load() != seq {
		// 本次请求期间已有更新的重载开始：丢弃，最新者胜出
		s.logger.Debug("Discarding stale rooms response", zap.Uint64("seq", seq))
		return nil, ErrSuperseded
	}

	if s.kv != nil {
		if data, err := json.Marshal(records); err == nil {
			if err := s.kv.Set(ctx, roomsCacheKey, string(data), s.cacheTTL); err != nil {
				s.logger.Warn("Failed to cache room snapshot", zap.Error(err))
			}
		}
	}
	return records, nil
}

func buildCard(r domain.Room) RoomCard {
	t := ledger.ActiveTenant(r.Tenants)
	card := RoomCard{
		Room:         r,
		ActiveTenant: t,
		Status:       ledger.RoomDisplayStatus(r, t),
		Rent:         ledger.DisplayRent(r, t),
	}
	if t != nil {
		card.MoveIn = t.MoveIn
		card.MoveOut = t.MoveOut
	}
	return card
}
