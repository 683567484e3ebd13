// Package server 是 HTTP 边界层：路由、CORS、错误码映射。
// 推荐逻辑全部在 engine 内；这里只做参数解析与响应编码。
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/engine"
	"github.com/rushteam/anirec/search"
)

// Server 持有就绪的引擎与检索索引，注入每个请求处理器。
type Server struct {
	engine *engine.Engine
	search *search.Index
	logger zerolog.Logger
}

func New(e *engine.Engine, idx *search.Index, logger zerolog.Logger) *Server {
	return &Server{
		engine: e,
		search: idx,
		logger: logger,
	}
}

// Router 组装路由与中间件。allowedOrigins 为空时放行所有来源。
func (s *Server) Router(allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", s.handleHome)
	r.Get("/search", s.handleSearch)
	r.Get("/recommend/{id}", s.handleRecommend)
	r.Post("/recommend/batch", s.handleRecommendBatch)

	return r
}

// requestLog 记录每个请求的方法、路径、状态码与耗时。
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	limit := queryInt(r, "limit", 5)

	results := s.search.Search(query, limit)
	respondJSON(w, http.StatusOK, map[string][]search.Result{"results": results})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid item id")
		return
	}
	limit := queryInt(r, "limit", engine.DefaultLimit)

	result, err := s.engine.Recommend(r.Context(), id, limit)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// batchRequest 是批量推荐的请求体。
type batchRequest struct {
	IDs   []int64 `json:"ids"`
	Limit int     `json:"limit"`
}

func (s *Server) handleRecommendBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		respondDetail(w, http.StatusBadRequest, "empty seed set")
		return
	}
	if req.Limit <= 0 {
		req.Limit = engine.DefaultBatchLimit
	}

	result, err := s.engine.RecommendBatch(r.Context(), req.IDs, req.Limit)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// respondError 把领域错误映射为 HTTP 状态码。
// 这些都是确定性前置条件失败，不做本地恢复或重试。
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsInvalidInput(err):
		status = http.StatusBadRequest
	case core.IsNotFound(err):
		status = http.StatusNotFound
	case core.IsUnavailable(err):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("internal error")
	}
	respondDetail(w, status, err.Error())
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}
	if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
		return parsed
	}
	return defaultVal
}
