// Package http exposes the JSON API over the expense service.
package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/srishti24jais/ispent-expense-tracker/internal/cache"
	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
	applog "github.com/srishti24jais/ispent-expense-tracker/internal/log"
	"github.com/srishti24jais/ispent-expense-tracker/internal/middleware/ratelimit"
	"github.com/srishti24jais/ispent-expense-tracker/internal/middleware/trace"
	"github.com/srishti24jais/ispent-expense-tracker/internal/services"
)

const summaryCacheKey = "summary"

// Options tunes the server's cache and rate-limit behaviour.
type Options struct {
	CacheTTL          time.Duration
	CacheMaxSize      int
	RequestsPerMinute int
}

// DefaultOptions returns the values used when a field is left zero.
func DefaultOptions() Options {
	return Options{
		CacheTTL:          5 * time.Minute,
		CacheMaxSize:      100,
		RequestsPerMinute: 60,
	}
}

type Server struct {
	http.Server

	service *services.ExpenseService
	logger  *applog.Logger

	limiter *ratelimit.Limiter
	tracer  *trace.Middleware

	// Summary responses are cached until the next write invalidates
	// them or the TTL lapses.
	summaryCache *cache.TTLCache[core.Summary]

	startTime     time.Time
	totalExpenses int64
	cacheHits     int64
	cacheMisses   int64

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run server listening on addr.
func NewServer(addr string, service *services.ExpenseService, logger *applog.Logger, opts Options) *Server {
	defaults := DefaultOptions()
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaults.CacheTTL
	}
	if opts.CacheMaxSize <= 0 {
		opts.CacheMaxSize = defaults.CacheMaxSize
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = defaults.RequestsPerMinute
	}

	mux := http.NewServeMux()

	s := &Server{
		service:          service,
		logger:           logger.WithComponent(applog.ComponentHTTP),
		limiter:          ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RequestsPerMinute, CleanupInterval: 5 * time.Minute}),
		tracer:           trace.NewMiddleware(clientIP),
		summaryCache:     cache.New[core.Summary](opts.CacheMaxSize, opts.CacheTTL),
		startTime:        time.Now(),
		stopCacheCleanup: make(chan struct{}),
	}

	limited := s.limiter.Middleware(clientIP)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.Handle("POST /api/expenses", limited(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("DELETE /api/expenses/{id}", limited(http.HandlerFunc(s.handleDeleteExpense)))
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.Handle("POST /api/settings", limited(http.HandlerFunc(s.handlePutSettings)))
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	s.Addr = addr
	s.Handler = s.tracer.Handler(withSecurityHeaders(mux))
	s.ReadHeaderTimeout = 10 * time.Second

	go s.cacheCleanupLoop()

	return s
}

// invalidateSummary drops the cached summary after any write.
func (s *Server) invalidateSummary() {
	s.summaryCache.Delete(summaryCacheKey)
}

func (s *Server) cacheCleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.summaryCache.CleanExpired(); removed > 0 {
				s.logger.Debug("Cache cleanup completed", "entries_removed", removed)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops background goroutines before shutting down the
// underlying HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// TotalExpensesCreated reports how many expenses this server instance
// has accepted.
func (s *Server) TotalExpensesCreated() int64 {
	return atomic.LoadInt64(&s.totalExpenses)
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
