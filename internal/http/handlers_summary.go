package http

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.summaryCache.Get(summaryCacheKey); ok {
		atomic.AddInt64(&s.cacheHits, 1)
		writeJSON(w, http.StatusOK, map[string]any{
			"summary": cached,
			"cached":  true,
		})
		return
	}
	atomic.AddInt64(&s.cacheMisses, 1)

	expenses := s.service.ListExpenses(r.Context())
	settings := s.service.GetSettings(r.Context())
	summary := core.BuildSummary(expenses, settings, time.Now())

	s.summaryCache.Set(summaryCacheKey, summary)

	writeJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"cached":  false,
	})
}
