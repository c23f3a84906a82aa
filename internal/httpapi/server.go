package httpapi

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// Server wires the ledger services into an http.Server with security
// headers, per-IP rate limiting and request logging.
type Server struct {
	http.Server

	accounts   *services.AccountService
	categories *services.CategoryService
	operations *services.OperationService
	analytics  *services.AnalyticsService
	logger     *log.Logger

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once

	snapshotCache *cache.LRUCache[services.Snapshot]
	reportCache   *cache.LRUCache[string]
	cacheManager  *cache.Manager
}

const (
	analyticsCacheSize = 64
	analyticsCacheTTL  = 30 * time.Second
)

// NewServer configures routes and timeouts, returning a ready-to-run server.
func NewServer(addr string, accounts *services.AccountService, categories *services.CategoryService, operations *services.OperationService, analytics *services.AnalyticsService, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           log.Middleware(logger.WithComponent(log.ComponentHTTP))(mux),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		accounts:    accounts,
		categories:  categories,
		operations:  operations,
		analytics:   analytics,
		logger:      logger.WithComponent(log.ComponentHTTP),
		rateLimiter: newRateLimiter(60),

		snapshotCache: cache.NewLRUCache[services.Snapshot](analyticsCacheSize, analyticsCacheTTL),
		reportCache:   cache.NewLRUCache[string](analyticsCacheSize, analyticsCacheTTL),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.snapshotCache, s.reportCache)
	s.cacheManager.StartCleanup(5 * time.Minute)

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /accounts", s.guard(s.handleListAccounts))
	mux.HandleFunc("POST /accounts", s.guard(s.handleCreateAccount))
	mux.HandleFunc("GET /accounts/{id}", s.guard(s.handleGetAccount))
	mux.HandleFunc("DELETE /accounts/{id}", s.guard(s.handleDeleteAccount))
	mux.HandleFunc("GET /accounts/total", s.guard(s.handleTotalBalance))

	mux.HandleFunc("GET /categories", s.guard(s.handleListCategories))
	mux.HandleFunc("POST /categories", s.guard(s.handleCreateCategory))
	mux.HandleFunc("GET /categories/{id}", s.guard(s.handleGetCategory))
	mux.HandleFunc("DELETE /categories/{id}", s.guard(s.handleDeleteCategory))

	mux.HandleFunc("GET /operations", s.guard(s.handleListOperations))
	mux.HandleFunc("POST /operations", s.guard(s.handleCreateOperation))
	mux.HandleFunc("GET /operations/{id}", s.guard(s.handleGetOperation))
	mux.HandleFunc("DELETE /operations/{id}", s.guard(s.handleDeleteOperation))

	mux.HandleFunc("GET /analytics/snapshot", s.guard(s.handleSnapshot))
	mux.HandleFunc("GET /analytics/report", s.guard(s.handleReport))
	mux.HandleFunc("GET /analytics/categories", s.guard(s.handleCategoryStatistics))

	return s
}

// guard applies security headers and rate limiting to a handler.
func (s *Server) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")

		if !s.rateLimiter.allow(clientIP(r)) {
			ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded").Write(w)
			return
		}
		next(w, r)
	}
}

// invalidateAnalytics drops cached snapshots and reports. Called after
// any mutation that changes balances or the operation log.
func (s *Server) invalidateAnalytics() {
	s.snapshotCache.Clear()
	s.reportCache.Clear()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}).Write(w)
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		s.cacheManager.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// clientIP extracts the request's client address without the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
