package httpapi

import (
	"net/http"

	"rentledger/internal/service"

	"go.uber.org/zap"
)

// PublicBillsHandler 免认证租客账单门户 Handler
type PublicBillsHandler struct {
	bills  *service.BillService
	logger *zap.Logger
}

func NewPublicBillsHandler(bills *service.BillService, logger *zap.Logger) *PublicBillsHandler {
	return &PublicBillsHandler{bills: bills, logger: logger}
}

// GetBills 按租客编号查询账单
// 查询参数：tenantId（大小写/前缀宽松，服务端规整）
func (h *PublicBillsHandler) GetBills(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("tenantId")

	view, err := h.bills.PublicBills(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(view))
}
