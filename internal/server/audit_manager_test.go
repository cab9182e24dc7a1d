package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gitlab.com/sprinkles/storefront/internal/storage"
)

func TestAuditManager_FlushesOnShutdown(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	manager := NewAuditManager(2, 10, time.Hour, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	for i := 0; i < 5; i++ {
		manager.LogEntry(ctx, AuditLogEntry{Route: "/dashboard", Method: http.MethodGet, StatusCode: http.StatusOK})
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	manager.Shutdown(shutdownCtx)

	assert.Equal(t, 5, logs.FilterMessage("audit").Len())
	assert.Zero(t, manager.Pending())
}

func TestAuditManager_FullBatchIsWrittenWithoutWaiting(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	manager := NewAuditManager(1, 3, time.Hour, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	for i := 0; i < 3; i++ {
		manager.LogEntry(ctx, AuditLogEntry{Route: "/login", Method: http.MethodPost, StatusCode: http.StatusSeeOther})
	}

	require.Eventually(t, func() bool {
		return logs.FilterMessage("audit").Len() == 3
	}, time.Second, 10*time.Millisecond)

	manager.Shutdown(context.Background())
}

func TestAuditManager_LogAfterShutdown(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	manager := NewAuditManager(1, 3, time.Hour, zap.New(core))
	manager.Start(context.Background())
	manager.Shutdown(context.Background())

	manager.LogEntry(context.Background(), AuditLogEntry{Route: "/logout"})

	entries := logs.FilterMessage("audit").FilterField(zap.String("mode", "direct")).All()
	assert.Len(t, entries, 1)
	assert.Zero(t, manager.Pending())
}

func TestAuditLogMiddleware_RecordsRouteAndAccount(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := &Server{AuditManager: NewAuditManager(1, 1, time.Hour, zap.New(core))}
	s.AuditManager.Start(context.Background())

	handler := s.auditLogMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req = req.WithContext(withAccount(req.Context(), &storage.Account{ID: 3, Role: storage.RoleAdmin}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	s.AuditManager.Shutdown(context.Background())

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	entry, ok := entries[0].ContextMap()["entry"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(3), entry["account_id"])
	assert.Equal(t, "Admin", entry["role"])
	assert.Equal(t, http.StatusTeapot, entry["status_code"])
	assert.Equal(t, "unknown", entry["route"])
}
