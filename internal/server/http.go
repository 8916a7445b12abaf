package server

import (
	"embed"
	"encoding/json"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/saju_scribe/internal/config"
	"github.com/iWorld-y/saju_scribe/internal/service"
)

//go:embed assets/*
var assets embed.FS

// NewHTTPServer 组装 HTTP 服务：JSON API + 内嵌表单页面
func NewHTTPServer(cfg config.ServerConfig, svc *service.SajuService) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if cfg.Addr != "" {
		opts = append(opts, http.Address(cfg.Addr))
	}
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, err := assets.ReadFile("assets/index.html")
		if err != nil {
			writeError(w, nethttp.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	srv.HandleFunc("/api/report", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeError(w, nethttp.StatusMethodNotAllowed, "POST only")
			return
		}
		var req service.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		reply, err := svc.Generate(r.Context(), &req)
		if err != nil {
			writeError(w, nethttp.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, reply)
	})

	srv.HandleFunc("/api/export", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeError(w, nethttp.StatusMethodNotAllowed, "POST only")
			return
		}
		var req service.ExportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		data, filename, err := svc.Export(r.Context(), &req)
		if err != nil {
			writeError(w, nethttp.StatusUnprocessableEntity, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.Write(data)
	})

	srv.HandleFunc("/api/subscribe", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeError(w, nethttp.StatusMethodNotAllowed, "POST only")
			return
		}
		var req service.SubscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if err := svc.Subscribe(r.Context(), &req); err != nil {
			writeError(w, nethttp.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	})

	srv.HandleFunc("/api/history", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			writeError(w, nethttp.StatusMethodNotAllowed, "GET only")
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		reports, err := svc.History(r.Context(), limit)
		if err != nil {
			writeError(w, nethttp.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, map[string]any{"reports": reports})
	})

	return srv
}

func writeJSON(w nethttp.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(v)
}

func writeError(w nethttp.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
