package routes_test

import (
	"github.com/avolkov/claimdesk/db"
	"github.com/avolkov/claimdesk/model"
	"github.com/avolkov/claimdesk/web/nav"
	"github.com/avolkov/claimdesk/web/routes"
)

// StorageMock is a simple manual mock implementation of the Storage interface.
type StorageMock struct {
	ReturnForms   []model.FormDefinition
	ReturnEntries []model.AuditEntry
	ReturnReports []model.Report
	ReturnRuns    []model.ReportRun
	ReturnTotal   int
	ReturnError   error

	LastFormQuery  db.FormQuery
	LastAuditQuery db.AuditQuery
	CallCount      int
}

func (m *StorageMock) ListForms(q db.FormQuery) ([]model.FormDefinition, int, error) {
	m.CallCount++
	m.LastFormQuery = q

	return m.ReturnForms, m.ReturnTotal, m.ReturnError
}

func (m *StorageMock) ListAuditEntries(q db.AuditQuery) ([]model.AuditEntry, int, error) {
	m.CallCount++
	m.LastAuditQuery = q

	return m.ReturnEntries, m.ReturnTotal, m.ReturnError
}

func (m *StorageMock) ListReports() ([]model.Report, error) {
	m.CallCount++

	return m.ReturnReports, m.ReturnError
}

func (m *StorageMock) ListReportRuns(_ int) ([]model.ReportRun, error) {
	m.CallCount++

	return m.ReturnRuns, m.ReturnError
}

func (m *StorageMock) InsertForm(_ *model.FormDefinition) error {
	return nil
}

func (m *StorageMock) InsertAuditEntry(_ *model.AuditEntry) error {
	return nil
}

func (m *StorageMock) InsertReport(_ *model.Report) error {
	return nil
}

func (m *StorageMock) InsertReportRun(_ *model.ReportRun) error {
	return nil
}

func (m *StorageMock) Close() {}

// newMockHandler wires a handler onto a fresh storage mock.
func newMockHandler() (*routes.ServerHandler, *StorageMock) {
	mockStorage := &StorageMock{}

	return &routes.ServerHandler{
		Storage: mockStorage,
		Nav:     nav.Routes{},
	}, mockStorage
}
