package model

import (
	"time"
)

// Column describes one displayed field of a tabular view. Order of a
// []Column is the left-to-right display order; keys must be unique
// within one specification.
type Column struct {
	Key      string
	Label    string
	Sortable bool
}

// Row maps a field name to its display value. An "id" entry, when
// present, identifies the record.
type Row map[string]string

// SortState is the currently applied ordering of a tabular view.
type SortState struct {
	Key  string
	Desc bool
}

// Toggled returns the direction a header link for key should request:
// re-activating the current key flips direction, any other key starts
// ascending.
func (s SortState) Toggled(key string) bool {
	if s.Key == key {
		return !s.Desc
	}

	return false
}

// Pagination describes which slice of a larger dataset is shown.
type Pagination struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// NewPagination clamps its inputs into a valid state: Page >= 1,
// TotalPages >= 1, Page <= TotalPages.
func NewPagination(page, pageSize, totalItems int) Pagination {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}

	if page > totalPages {
		page = totalPages
	}

	return Pagination{Page: page, PageSize: pageSize, TotalItems: totalItems, TotalPages: totalPages}
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// Offset is the number of rows to skip for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// FormDefinition is one claim-submission form managed by the portal.
type FormDefinition struct {
	ID          string
	Code        string
	Name        string
	Description string
	Category    string
	ClaimType   string
	Version     int
	Active      bool
	UpdatedAt   time.Time
}

// Audit trail action vocabulary.
const (
	ActionUserLogin        = "user_login"
	ActionUserLoginFailed  = "user_login_failed"
	ActionClaimSubmitted   = "claim_submitted"
	ActionClaimAdjudicated = "claim_adjudicated"
	ActionClaimApproved    = "claim_approved"
	ActionClaimDenied      = "claim_denied"
	ActionPHIAccessed      = "phi_accessed"
	ActionPHIExported      = "phi_exported"
	ActionFormCreated      = "form_created"
	ActionFormUpdated      = "form_updated"
	ActionSettingsChanged  = "settings_changed"
)

// AuditEntry is one immutable line of the compliance audit trail.
// SubjectCode names what the action touched: a claim number for claim
// actions, a form code for form actions, empty otherwise.
type AuditEntry struct {
	ID          string
	Action      string
	Description string
	ActorEmail  string
	ActorRole   string
	SubjectCode string
	IPAddress   string
	PHIAccessed bool
	CreatedAt   time.Time
}

// Report is a report definition shown on the dashboard. Generation is
// handled elsewhere; the portal only lists definitions and past runs.
type Report struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Category    string
}

// Run states for ReportRun.Status.
const (
	RunQueued    = "queued"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// ReportRun is one recorded execution of a report.
type ReportRun struct {
	ID          string
	ReportSlug  string
	RequestedBy string
	Status      string
	RowCount    int
	StartedAt   time.Time
	FinishedAt  time.Time
}
