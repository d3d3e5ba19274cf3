package httpapi

import (
	"net/http"

	"rentledger/internal/search"
	"rentledger/internal/service"

	"go.uber.org/zap"
)

// RoomsHandler 管理端房间概览 Handler
type RoomsHandler struct {
	rooms   *service.RoomService
	tenants *service.TenantService
	logger  *zap.Logger
}

func NewRoomsHandler(rooms *service.RoomService, tenants *service.TenantService, logger *zap.Logger) *RoomsHandler {
	return &RoomsHandler{rooms: rooms, tenants: tenants, logger: logger}
}

// GetRooms 获取过滤后的房间概览
// 查询参数：status=all|booked|available（非法退回 all），search=自由文本
func (h *RoomsHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	status := search.ParseStatusFilter(r.URL.Query().Get("status"))
	query := r.URL.Query().Get("search")

	overview, err := h.rooms.Overview(r.Context(), status, query, false)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(overview))
}

// Reload 强制绕过快照缓存重新拉取；过滤参数与 GetRooms 一致
func (h *RoomsHandler) Reload(w http.ResponseWriter, r *http.Request) {
	status := search.ParseStatusFilter(r.URL.Query().Get("status"))
	query := r.URL.Query().Get("search")

	overview, err := h.rooms.Overview(r.Context(), status, query, true)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(overview))
}

// MarkLeave 给房间在住租客登记退租
// Body: {"leaveDate": "YYYY-MM-DD"}
func (h *RoomsHandler) MarkLeave(w http.ResponseWriter, r *http.Request, roomID string) {
	var body struct {
		LeaveDate string `json:"leaveDate"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	if err := h.tenants.MarkLeave(r.Context(), roomID, body.LeaveDate); err != nil {
		h.logger.Warn("Mark leave rejected",
			zap.String("room_id", roomID), zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"roomId": roomID, "leaveDate": body.LeaveDate}))
}
