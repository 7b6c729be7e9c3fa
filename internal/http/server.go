package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"hourly/internal/cache"
	"hourly/internal/kvstore"
	"hourly/internal/log"
	"hourly/internal/middleware/ratelimit"
	"hourly/internal/middleware/security"
	"hourly/internal/middleware/trace"
	"hourly/internal/services"
)

// Options tunes the server beyond its listen address.
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
	Logger    *log.Logger
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CacheSize: 256,
		CacheTTL:  5 * time.Minute,
	}
}

// Server hosts the JSON API over a single kvstore-backed account store.
type Server struct {
	http.Server

	sessions *services.SessionService
	ledger   *services.LedgerService

	rateLimiter *ratelimit.Limiter
	detector    *security.Detector
	traceMW     *trace.Middleware
	startTime   time.Time

	// Cached analytics response bodies, keyed per user so mutations can
	// drop every stale entry for the acting account at once.
	analyticsCache *cache.LRUCache[[]byte]
	cacheManager   *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, store kvstore.Store, opts Options) *Server {
	if opts.CacheSize <= 0 || opts.CacheTTL <= 0 {
		cacheOpts := DefaultOptions()
		opts.CacheSize = cacheOpts.CacheSize
		opts.CacheTTL = cacheOpts.CacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}

	mux := http.NewServeMux()

	s := &Server{
		sessions:       services.NewSessionService(store),
		ledger:         services.NewLedgerService(store),
		rateLimiter:    ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:       security.NewDetector(),
		analyticsCache: cache.NewLRUCache[[]byte](opts.CacheSize, opts.CacheTTL),
		cacheManager:   cache.NewManager(),
		startTime:      time.Now(),
	}
	s.traceMW = trace.NewMiddleware(s.detector.ExtractClientIP)

	s.cacheManager.Register(s.analyticsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/session", s.handleSession)

	mux.HandleFunc("GET /api/expenses", s.handleDayExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/balance", s.handleGetBalance)
	mux.HandleFunc("PUT /api/balance", s.handleSetBalance)

	mux.HandleFunc("GET /api/analytics/yearly", s.handleYearlyTotals)
	mux.HandleFunc("GET /api/analytics/daily", s.handleDailyTotals)
	mux.HandleFunc("GET /api/analytics/categories", s.handleCategoryBreakdown)

	headersMW := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limitMW := s.rateLimiter.Middleware(s.detector.ExtractClientIP, nil)
	logMW := log.Middleware(opts.Logger)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.traceMW.Middleware(headersMW.Middleware(limitMW(logMW(mux)))),
	}

	return s
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// invalidateAnalytics drops every cached analytics body for the user.
func (s *Server) invalidateAnalytics(username string) {
	s.analyticsCache.DeletePrefix(username + ":")
}
