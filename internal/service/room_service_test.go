package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rentledger/internal/domain"
	"rentledger/internal/search"
	"rentledger/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeKV 内存 KV，替代 Redis 做单测
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func roomRecords() []domain.Record {
	return []domain.Record{
		{
			"_id":        "room-1",
			"roomNumber": "101",
			"building":   map[string]any{"_id": "b1", "name": "Sunrise"},
			"isBooked":   true,
			"tenants": []any{
				map[string]any{
					"_id":        "ten-1",
					"tenantId":   "T1001",
					"fullName":   "Alice Wong",
					"rentAmount": float64(900),
					"moveInDate": "2024-03-01",
				},
			},
		},
		{
			"_id":        "room-2",
			"roomNumber": "102",
			"building":   map[string]any{"_id": "b1", "name": "Sunrise"},
			"isBooked":   false,
			"rent":       float64(750),
		},
	}
}

func TestOverview_BuildsCards(t *testing.T) {
	upstream := new(MockUpstream)
	upstream.On("Rooms", mock.Anything).Return(roomRecords(), nil)
	svc := NewRoomService(upstream, nil, time.Minute, zap.NewNop())

	got, err := svc.Overview(context.Background(), search.StatusAll, "", false)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Shown)
	assert.Equal(t, 2, got.Total)

	first := got.Items[0]
	assert.Equal(t, "101", first.Room.Number)
	require.NotNil(t, first.ActiveTenant)
	assert.Equal(t, "Alice Wong", first.ActiveTenant.FullName)
	assert.Equal(t, domain.RoomStatusBooked, first.Status)
	assert.Equal(t, float64(900), first.Rent)
	require.NotNil(t, first.MoveIn)

	second := got.Items[1]
	assert.Nil(t, second.ActiveTenant)
	assert.Equal(t, domain.RoomStatusAvailable, second.Status)
	assert.Equal(t, float64(750), second.Rent)
}

func TestOverview_FilterAndSearchCombined(t *testing.T) {
	upstream := new(MockUpstream)
	upstream.On("Rooms", mock.Anything).Return(roomRecords(), nil)
	svc := NewRoomService(upstream, nil, time.Minute, zap.NewNop())

	got, err := svc.Overview(context.Background(), search.StatusBooked, "alice", false)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "room-1", got.Items[0].Room.ID)
	// shown 统计过滤后数量，total 统计全集
	assert.Equal(t, 1, got.Shown)
	assert.Equal(t, 2, got.Total)

	// 状态与搜索是 AND：booked 集合里搜不到空闲房
	got, err = svc.Overview(context.Background(), search.StatusBooked, "102", false)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestOverview_ServedFromCache(t *testing.T) {
	upstream := new(MockUpstream)
	upstream.On("Rooms", mock.Anything).Return(roomRecords(), nil).Once()
	kv := newFakeKV()
	svc := NewRoomService(upstream, kv, time.Minute, zap.NewNop())

	_, err := svc.Overview(context.Background(), search.StatusAll, "", false)
	require.NoError(t, err)

	// 第二次命中快照缓存，不再走上游
	got, err := svc.Overview(context.Background(), search.StatusAll, "", false)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	upstream.AssertNumberOfCalls(t, "Rooms", 1)
}

func TestOverview_ReloadBypassesCache(t *testing.T) {
	upstream := new(MockUpstream)
	upstream.On("Rooms", mock.Anything).Return(roomRecords(), nil)
	kv := newFakeKV()
	svc := NewRoomService(upstream, kv, time.Minute, zap.NewNop())

	_, err := svc.Overview(context.Background(), search.StatusAll, "", false)
	require.NoError(t, err)
	_, err = svc.Overview(context.Background(), search.StatusAll, "", true)
	require.NoError(t, err)
	upstream.AssertNumberOfCalls(t, "Rooms", 2)
}

func TestOverview_FailedReloadInvalidatesSnapshot(t *testing.T) {
	upstream := new(MockUpstream)
	upstream.On("Rooms", mock.Anything).Return(roomRecords(), nil).Once()
	upstream.On("Rooms", mock.Anything).Return(nil, errors.New("upstream down")).Once()
	upstream.On("Rooms", mock.Anything).Return(roomRecords(), nil).Once()
	kv := newFakeKV()
	svc := NewRoomService(upstream, kv, time.Minute, zap.NewNop())

	_, err := svc.Overview(context.Background(), search.StatusAll, "", false)
	require.NoError(t, err)

	// 重载失败：旧快照已失效，不能再被后续请求读到
	_, err = svc.Overview(context.Background(), search.StatusAll, "", true)
	require.Error(t, err)
	_, err = kv.Get(context.Background(), roomsCacheKey)
	assert.ErrorIs(t, err, store.ErrMiss)

	got, err := svc.Overview(context.Background(), search.StatusAll, "", false)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	// 第三次走上游而不是缓存
	upstream.AssertNumberOfCalls(t, "Rooms", 3)
}

func TestOverview_CorruptCacheRefetches(t *testing.T) {
	upstream := new(MockUpstream)
	upstream.On("Rooms", mock.Anything).Return(roomRecords(), nil)
	kv := newFakeKV()
	require.NoError(t, kv.Set(context.Background(), roomsCacheKey, "{not json", time.Minute))
	svc := NewRoomService(upstream, kv, time.Minute, zap.NewNop())

	got, err := svc.Overview(context.Background(), search.StatusAll, "", false)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	upstream.AssertNumberOfCalls(t, "Rooms", 1)
}

func TestOverview_FetchFailureResetsCollection(t *testing.T) {
	upstream := new(MockUpstream)
	upstream.On("Rooms", mock.Anything).Return(nil, errors.New("upstream down"))
	svc := NewRoomService(upstream, nil, time.Minute, zap.NewNop())

	got, err := svc.Overview(context.Background(), search.StatusAll, "", false)
	require.Error(t, err)
	// 失败时集合清空，不保留部分旧数据
	assert.Empty(t, got.Items)
	assert.Equal(t, 0, got.Total)
}

// staleUpstream 第一次 Rooms 调用阻塞直到 release，之后的调用立即返回
type staleUpstream struct {
	MockUpstream
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (s *staleUpstream) Rooms(ctx context.Context) ([]domain.Record, error) {
	n := s.calls.Add(1)
	if n == 1 {
		close(s.started)
		<-s.release
	}
	return []domain.Record{{"_id": fmt.Sprintf("room-%d", n)}}, nil
}

func TestOverview_StaleReloadDiscarded(t *testing.T) {
	upstream := &staleUpstream{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewRoomService(upstream, nil, time.Minute, zap.NewNop())

	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Overview(context.Background(), search.StatusAll, "", true)
		firstErr <- err
	}()
	<-upstream.started

	// 第一次重载还挂着时又来了一次：后者胜出
	got, err := svc.Overview(context.Background(), search.StatusAll, "", true)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "room-2", got.Items[0].Room.ID)

	close(upstream.release)
	assert.ErrorIs(t, <-firstErr, ErrSuperseded)
}
