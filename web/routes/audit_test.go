package routes_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/avolkov/claimdesk/model"
	"github.com/avolkov/claimdesk/web/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAuditQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q := routes.BuildAuditQuery(url.Values{})

		assert.Equal(t, model.SortState{Key: "time", Desc: true}, q.Sort)
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 50, q.PageSize)
		assert.True(t, q.From.IsZero())
		assert.True(t, q.To.IsZero())
	})

	t.Run("date window is inclusive of the end day", func(t *testing.T) {
		raw, err := url.ParseQuery("from=2026-03-01&to=2026-03-05")
		require.NoError(t, err)

		q := routes.BuildAuditQuery(raw)

		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), q.From)
		assert.Equal(t, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), q.To)
	})

	t.Run("malformed dates are ignored", func(t *testing.T) {
		raw, err := url.ParseQuery("from=yesterday&to=03%2F05%2F2026")
		require.NoError(t, err)

		q := routes.BuildAuditQuery(raw)

		assert.True(t, q.From.IsZero())
		assert.True(t, q.To.IsZero())
	})

	t.Run("filters and paging", func(t *testing.T) {
		raw, err := url.ParseQuery("action=phi_accessed&actor=j.tremblay%40ahcip.example&subject=AHC-0913&phi=1&page=3&page_size=500")
		require.NoError(t, err)

		q := routes.BuildAuditQuery(raw)

		assert.Equal(t, model.ActionPHIAccessed, q.Action)
		assert.Equal(t, "j.tremblay@ahcip.example", q.ActorEmail)
		assert.Equal(t, "AHC-0913", q.Subject)
		assert.True(t, q.PHIOnly)
		assert.Equal(t, 3, q.Page)
		assert.Equal(t, 200, q.PageSize, "page size is capped at the audit maximum")
	})
}

func TestAuditRows(t *testing.T) {
	entries := []model.AuditEntry{
		{
			ID: "a1", Action: model.ActionPHIAccessed, Description: "Viewed patient coverage record",
			ActorEmail: "j.tremblay@ahcip.example", ActorRole: "auditor",
			IPAddress: "10.42.0.11", PHIAccessed: true,
			CreatedAt: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			ID: "a2", Action: model.ActionFormUpdated, Description: "Published new form version",
			ActorEmail: "m.osei@ahcip.example", ActorRole: "admin", SubjectCode: "AHC-0913",
			CreatedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		},
	}

	rows := routes.AuditRows(entries)

	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-10 09:30", rows[0]["time"])
	assert.Equal(t, "phi", rows[0]["phi"])
	assert.Equal(t, "", rows[0]["subject"], "entries without a subject render a blank cell")
	assert.Equal(t, "", rows[1]["phi"], "non-PHI entries render a blank flag cell")
	assert.Equal(t, "AHC-0913", rows[1]["subject"])
	assert.Equal(t, "m.osei@ahcip.example", rows[1]["actor"])
}

func TestAuditHandle(t *testing.T) {
	t.Run("success renders entries and filter bar", func(t *testing.T) {
		handler, mockStorage := newMockHandler()
		mockStorage.ReturnEntries = []model.AuditEntry{
			{ID: "a1", Action: model.ActionClaimDenied, Description: "Claim denied: service not covered",
				ActorEmail: "a.kowalski@ahcip.example", ActorRole: "adjudicator", CreatedAt: time.Now()},
		}
		mockStorage.ReturnTotal = 1

		req := httptest.NewRequest(http.MethodGet, "/audit", nil)
		w := httptest.NewRecorder()

		handler.AuditHandle(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, mockStorage.CallCount)

		body := w.Body.String()
		assert.Contains(t, body, "claim_denied")
		assert.Contains(t, body, "All actions")
		assert.Contains(t, body, "PHI access only")
	})

	t.Run("storage error returns 500", func(t *testing.T) {
		handler, mockStorage := newMockHandler()
		mockStorage.ReturnError = errors.New("database error")

		req := httptest.NewRequest(http.MethodGet, "/audit", nil)
		w := httptest.NewRecorder()

		handler.AuditHandle(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("filters are passed to storage", func(t *testing.T) {
		handler, mockStorage := newMockHandler()

		req := httptest.NewRequest(http.MethodGet, "/audit?action=phi_accessed&phi=1", nil)
		w := httptest.NewRecorder()

		handler.AuditHandle(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, model.ActionPHIAccessed, mockStorage.LastAuditQuery.Action)
		assert.True(t, mockStorage.LastAuditQuery.PHIOnly)
	})

	t.Run("subject filter reaches storage and shows a clear link", func(t *testing.T) {
		handler, mockStorage := newMockHandler()

		req := httptest.NewRequest(http.MethodGet, "/audit?action=form_updated&subject=AHC-0913", nil)
		w := httptest.NewRecorder()

		handler.AuditHandle(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "AHC-0913", mockStorage.LastAuditQuery.Subject)
		assert.Contains(t, w.Body.String(), "Clear subject: AHC-0913")
	})

	t.Run("empty trail renders empty state", func(t *testing.T) {
		handler, _ := newMockHandler()

		req := httptest.NewRequest(http.MethodGet, "/audit", nil)
		w := httptest.NewRecorder()

		handler.AuditHandle(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No audit entries match the current filters")
	})
}
