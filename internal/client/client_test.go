package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	return c, srv
}

// TestRooms_BareArray 裸数组响应
func TestRooms_BareArray(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/manager/rooms", r.URL.Path)
		_, _ = w.Write([]byte(`[{"_id":"r1","number":"101"},{"_id":"r2"}]`))
	})
	defer srv.Close()

	rooms, err := c.Rooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "r1", rooms[0]["_id"])
}

// TestRooms_DataEnvelope {"data":[...]} 信封
func TestRooms_DataEnvelope(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"_id":"r1"}]}`))
	})
	defer srv.Close()

	rooms, err := c.Rooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
}

// TestRooms_UpstreamError 上游错误直接上抛，不重试
func TestRooms_UpstreamError(t *testing.T) {
	var calls int
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := c.Rooms(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestTenant(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tenants/t1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"_id":"t1","fullName":"Asha Rao"}}`))
	})
	defer srv.Close()

	rec, err := c.Tenant(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", rec["fullName"])

	_, err = c.Tenant(context.Background(), "")
	assert.Error(t, err)
}

func TestBillsForTenant_QueryParams(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bills", r.URL.Path)
		assert.Equal(t, "t1", r.URL.Query().Get("tenant"))
		assert.Equal(t, "0", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"_id":"b1","totalAmount":1000}]`))
	})
	defer srv.Close()

	bills, err := c.BillsForTenant(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, bills, 1)
}

func TestPublicBills(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/bills", r.URL.Path)
		assert.Equal(t, "T0001", r.URL.Query().Get("tenantId"))
		_, _ = w.Write([]byte(`[{"_id":"b1"}]`))
	})
	defer srv.Close()

	bills, err := c.PublicBills(context.Background(), "T0001")
	require.NoError(t, err)
	require.Len(t, bills, 1)
}

func TestUpdateTenant(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/tenants/t1", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2024-06-30", body["moveOutDate"])
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	defer srv.Close()

	err := c.UpdateTenant(context.Background(), "t1", domain.Record{"moveOutDate": "2024-06-30"})
	require.NoError(t, err)
}
