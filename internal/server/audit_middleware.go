package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/sprinkles/storefront/internal/metrics"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := AuditLogEntry{
			Timestamp: start,
			Method:    r.Method,
			Path:      r.URL.Path,
			Route:     routeName(r),
		}

		if account, ok := accountFrom(r.Context()); ok {
			entry.AccountID = account.ID
			entry.Role = account.Role.String()
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Duration = time.Since(start)

		metrics.HTTPRequestsTotal.WithLabelValues(entry.Route, strconv.Itoa(entry.StatusCode)).Inc()
		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func routeName(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unknown"
	}
	if tpl, err := route.GetPathTemplate(); err == nil {
		return tpl
	}
	return "unknown"
}
