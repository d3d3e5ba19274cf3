package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"rentledger/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// writeServiceError 服务层错误转信封
// 前置条件错误与陈旧重载给 warning，其余给 error；
// 拉取失败统一 HTTP 200 + 信封（前端按 code 分流，不依赖状态码）
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoLeaveDate),
		errors.Is(err, service.ErrNoActiveTenant),
		errors.Is(err, service.ErrEmptyTenantCode),
		errors.Is(err, service.ErrSuperseded):
		writeJSON(w, http.StatusOK, Warn(err.Error()))
	default:
		writeJSON(w, http.StatusOK, Fail(err.Error()))
	}
}
