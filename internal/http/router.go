package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterManagerRoutes 注册管理端路由
func (r *Router) RegisterManagerRoutes(rooms *RoomsHandler, tenants *TenantsHandler) {
	// rooms list
	r.Handle("/manager/api/v1/rooms", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rooms.GetRooms(w, req)
	})

	// rooms reload + rooms/{id}/mark-leave
	r.Handle("/manager/api/v1/rooms/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/manager/api/v1/rooms/")
		switch {
		case rest == "reload":
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			rooms.Reload(w, req)
		case strings.HasSuffix(rest, "/mark-leave"):
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			id := strings.TrimSuffix(rest, "/mark-leave")
			if id == "" || strings.Contains(id, "/") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			rooms.MarkLeave(w, req, id)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	// tenants/{id}, tenants/{id}/move-out, tenants/{id}/statement.xlsx
	r.Handle("/manager/api/v1/tenants/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/manager/api/v1/tenants/")
		switch {
		case strings.HasSuffix(rest, "/move-out"):
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			id := strings.TrimSuffix(rest, "/move-out")
			if id == "" || strings.Contains(id, "/") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			tenants.MoveOut(w, req, id)
		case strings.HasSuffix(rest, "/statement.xlsx"):
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			id := strings.TrimSuffix(rest, "/statement.xlsx")
			if id == "" || strings.Contains(id, "/") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			tenants.ExportStatement(w, req, id)
		default:
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			if rest == "" || strings.Contains(rest, "/") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			tenants.GetStatement(w, req, rest)
		}
	})
}

// RegisterPublicRoutes 注册免认证门户路由
func (r *Router) RegisterPublicRoutes(bills *PublicBillsHandler) {
	r.Handle("/public/api/v1/bills", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		bills.GetBills(w, req)
	})
}
