package httpapi

import (
	"fmt"
	"net/http"

	"rentledger/internal/service"

	"go.uber.org/zap"
)

// TenantsHandler 管理端租客对账 Handler
type TenantsHandler struct {
	tenants *service.TenantService
	logger  *zap.Logger
}

func NewTenantsHandler(tenants *service.TenantService, logger *zap.Logger) *TenantsHandler {
	return &TenantsHandler{tenants: tenants, logger: logger}
}

// GetStatement 获取租客对账单（档案 + 支付历史 + 增强账单 + 汇总欠款）
func (h *TenantsHandler) GetStatement(w http.ResponseWriter, r *http.Request, id string) {
	statement, err := h.tenants.Statement(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to build tenant statement",
			zap.String("tenant_id", id), zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(statement))
}

// MoveOut 直接更新租客退租日期
// Body: {"moveOutDate": "YYYY-MM-DD"}；null/缺失表示清除退租标记
func (h *TenantsHandler) MoveOut(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		MoveOutDate string `json:"moveOutDate"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	if err := h.tenants.SetMoveOut(r.Context(), id, body.MoveOutDate); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"tenantId": id, "moveOutDate": body.MoveOutDate}))
}

// ExportStatement 导出对账单 Excel
func (h *TenantsHandler) ExportStatement(w http.ResponseWriter, r *http.Request, id string) {
	statement, err := h.tenants.Statement(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := GenerateStatementExport(statement)
	if err != nil {
		h.logger.Error("Failed to generate statement export",
			zap.String("tenant_id", id), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to generate export"))
		return
	}

	filename := fmt.Sprintf("statement-%s.xlsx", statement.Tenant.DisplayID())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
