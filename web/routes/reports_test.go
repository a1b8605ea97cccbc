package routes_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avolkov/claimdesk/logging"
	"github.com/avolkov/claimdesk/model"
	"github.com/avolkov/claimdesk/web/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRows(t *testing.T) {
	started := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	runs := []model.ReportRun{
		{
			ID: "run1", ReportSlug: "claims-volume", RequestedBy: "m.osei@ahcip.example",
			Status: model.RunCompleted, RowCount: 168,
			StartedAt: started, FinishedAt: started.Add(4 * time.Minute),
		},
		{
			ID: "run2", ReportSlug: "phi-access", RequestedBy: "j.tremblay@ahcip.example",
			Status: model.RunQueued, StartedAt: started.Add(time.Hour),
		},
		{
			ID: "run3", ReportSlug: "audit-summary", RequestedBy: "m.osei@ahcip.example",
			Status: model.RunFailed,
			StartedAt: started, FinishedAt: started.Add(30 * time.Second),
		},
	}

	rows := routes.RunRows(runs)

	require.Len(t, rows, 3)
	assert.Equal(t, "168", rows[0]["rows"])
	assert.Equal(t, "4m0s", rows[0]["duration"])
	assert.Equal(t, "", rows[1]["rows"], "queued runs have no row count yet")
	assert.Equal(t, "", rows[1]["duration"])
	assert.Equal(t, "", rows[2]["rows"], "failed runs show no row count")
	assert.Equal(t, "30s", rows[2]["duration"])
}

func TestReportsHandle(t *testing.T) {
	t.Run("success renders cards and runs", func(t *testing.T) {
		handler, mockStorage := newMockHandler()
		mockStorage.ReturnReports = []model.Report{
			{ID: "r1", Slug: "claims-volume", Title: "Claims Volume", Description: "Submitted claims per day", Category: "claims"},
			{ID: "r2", Slug: "phi-access", Title: "PHI Access Review", Description: "All PHI access events", Category: "compliance"},
		}
		mockStorage.ReturnRuns = []model.ReportRun{
			{ID: "run1", ReportSlug: "claims-volume", RequestedBy: "m.osei@ahcip.example",
				Status: model.RunCompleted, RowCount: 12, StartedAt: time.Now().Add(-time.Hour), FinishedAt: time.Now()},
		}

		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		w := httptest.NewRecorder()

		handler.ReportsHandle(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, mockStorage.CallCount, "reports and runs each fetched once")

		body := w.Body.String()
		assert.Contains(t, body, "Claims Volume")
		assert.Contains(t, body, "PHI Access Review")
		assert.Contains(t, body, "Recent runs")
		assert.Contains(t, body, "badge badge-ok")
	})

	t.Run("recent runs pager is inert", func(t *testing.T) {
		handler, mockStorage := newMockHandler()
		mockStorage.ReturnRuns = []model.ReportRun{
			{ID: "run1", ReportSlug: "claims-volume", Status: model.RunCompleted, StartedAt: time.Now()},
		}

		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		w := httptest.NewRecorder()

		handler.ReportsHandle(w, req)

		body := w.Body.String()
		assert.Contains(t, body, "Page 1 of 1")
		assert.NotContains(t, body, "pager-next")
		assert.NotContains(t, body, "pager-prev")
	})

	t.Run("log lines carry the request id", func(t *testing.T) {
		var buf bytes.Buffer

		prev := slog.Default()
		slog.SetDefault(slog.New(logging.ContextHandler{Handler: slog.NewTextHandler(&buf, nil)}))
		t.Cleanup(func() { slog.SetDefault(prev) })

		handler, _ := newMockHandler()

		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		req = req.WithContext(logging.RequestCtx(req.Context(), "req-42"))
		w := httptest.NewRecorder()

		handler.ReportsHandle(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, buf.String(), "request_id=req-42")
	})

	t.Run("storage error returns 500", func(t *testing.T) {
		handler, mockStorage := newMockHandler()
		mockStorage.ReturnError = errors.New("database error")

		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		w := httptest.NewRecorder()

		handler.ReportsHandle(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("no runs renders empty state", func(t *testing.T) {
		handler, _ := newMockHandler()

		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		w := httptest.NewRecorder()

		handler.ReportsHandle(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No report runs recorded yet")
	})
}
