package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avolkov/claimdesk/model"

	_ "github.com/mattn/go-sqlite3"
)

// FormQuery narrows and orders the forms listing. Search is matched
// fuzzily against form code and name; Category and ActiveOnly are
// strict filters.
type FormQuery struct {
	Search     string
	Category   string
	ActiveOnly bool
	Sort       model.SortState
	Page       int
	PageSize   int
}

// AuditQuery narrows and orders the audit trail listing. Subject
// matches the claim number or form code an action touched.
type AuditQuery struct {
	Action     string
	ActorEmail string
	Subject    string
	PHIOnly    bool
	From       time.Time
	To         time.Time
	Sort       model.SortState
	Page       int
	PageSize   int
}

type Storage interface {
	ListForms(q FormQuery) ([]model.FormDefinition, int, error)
	ListAuditEntries(q AuditQuery) ([]model.AuditEntry, int, error)
	ListReports() ([]model.Report, error)
	ListReportRuns(limit int) ([]model.ReportRun, error)
	InsertForm(form *model.FormDefinition) error
	InsertAuditEntry(entry *model.AuditEntry) error
	InsertReport(report *model.Report) error
	InsertReportRun(run *model.ReportRun) error
	Close()
}

type SQLiteStorage struct {
	db *sql.DB
}

func InitDbStorage(db *sql.DB) error {
	statements := []string{
		`create table if not exists form_definitions(
			id text primary key,
			code text not null unique,
			name text not null,
			description text,
			category text,
			claim_type text,
			version int not null default 1,
			active bool not null default true,
			updated_at datetime not null)`,
		`create table if not exists audit_entries(
			id text primary key,
			action text not null,
			description text,
			actor_email text not null,
			actor_role text not null,
			subject_code text,
			ip_address text,
			phi_accessed bool not null default false,
			created_at datetime not null)`,
		`create table if not exists reports(
			id text primary key,
			slug text not null unique,
			title text not null,
			description text,
			category text)`,
		`create table if not exists report_runs(
			id text primary key,
			report_slug text not null,
			requested_by text not null,
			status text not null,
			row_count int not null default 0,
			started_at datetime not null,
			finished_at datetime)`,
		`create index if not exists audit_entries_created_ix on audit_entries (created_at DESC)`,
		`create index if not exists audit_entries_action_ix on audit_entries (action)`,
		`create index if not exists form_definitions_code_ix on form_definitions (code)`,
	}

	for _, sqlStmt := range statements {
		_, err := db.Exec(sqlStmt)
		if err != nil {
			slog.Error("Schema statement failed", "error", err, "statement", sqlStmt)

			return fmt.Errorf("could not initialize schema: %w", err)
		}
	}

	return nil
}

func ConnectDB(path string) (Storage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite file %s: %w", path, err)
	}

	err = InitDbStorage(db)
	if err != nil {
		return nil, err
	}

	return &SQLiteStorage{db}, nil
}

// formSortColumns whitelists ORDER BY targets for the forms listing.
var formSortColumns = map[string]string{
	"code":     "code",
	"name":     "name",
	"category": "category",
	"version":  "version",
	"updated":  "updated_at",
}

// auditSortColumns whitelists ORDER BY targets for the audit listing.
var auditSortColumns = map[string]string{
	"time":   "created_at",
	"action": "action",
	"actor":  "actor_email",
}

func orderClause(columns map[string]string, sort model.SortState, fallback string) string {
	col, ok := columns[sort.Key]
	if !ok {
		return fallback
	}

	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}

	return col + " " + dir
}

func (s *SQLiteStorage) ListForms(q FormQuery) ([]model.FormDefinition, int, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if q.Category != "" {
		where = append(where, "category = ?")
		args = append(args, q.Category)
	}

	if q.ActiveOnly {
		where = append(where, "active = true")
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " where " + strings.Join(where, " and ")
	}

	orderBy := " order by " + orderClause(formSortColumns, q.Sort, "code ASC")

	// Fuzzy search ranks in memory, so that path needs the full
	// candidate set before it can page.
	if q.Search != "" {
		return s.searchForms(whereClause+orderBy, args, q)
	}

	var total int

	err := s.db.QueryRow("select count(*) from form_definitions"+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("could not count forms: %w", err)
	}

	query := `select id, code, name, description, category, claim_type, version, active, updated_at
		from form_definitions` + whereClause + orderBy + " limit ? offset ?"

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = total
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("could not list forms: %w", err)
	}

	defer rows.Close()

	result, err := scanForms(rows)
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (s *SQLiteStorage) searchForms(tail string, args []any, q FormQuery) ([]model.FormDefinition, int, error) {
	query := `select id, code, name, description, category, claim_type, version, active, updated_at
		from form_definitions` + tail

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("could not list forms: %w", err)
	}

	defer rows.Close()

	result, err := scanForms(rows)
	if err != nil {
		return nil, 0, err
	}

	result = RankForms(result, q.Search)
	total := len(result)

	return pageSlice(result, q.Page, q.PageSize), total, nil
}

func scanForms(rows *sql.Rows) ([]model.FormDefinition, error) {
	result := make([]model.FormDefinition, 0)

	for rows.Next() {
		var form model.FormDefinition

		err := rows.Scan(&form.ID, &form.Code, &form.Name, &form.Description, &form.Category,
			&form.ClaimType, &form.Version, &form.Active, &form.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan form row: %w", err)
		}

		result = append(result, form)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("form rows iteration failed: %w", err)
	}

	return result, nil
}

// pageSlice cuts one page out of items; out-of-range pages yield an
// empty slice rather than an error.
func pageSlice[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}

	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

func (s *SQLiteStorage) ListAuditEntries(q AuditQuery) ([]model.AuditEntry, int, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if q.Action != "" {
		where = append(where, "action = ?")
		args = append(args, q.Action)
	}

	if q.ActorEmail != "" {
		where = append(where, "actor_email = ?")
		args = append(args, q.ActorEmail)
	}

	if q.Subject != "" {
		where = append(where, "subject_code = ?")
		args = append(args, q.Subject)
	}

	if q.PHIOnly {
		where = append(where, "phi_accessed = true")
	}

	if !q.From.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, q.From)
	}

	if !q.To.IsZero() {
		where = append(where, "created_at < ?")
		args = append(args, q.To)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " where " + strings.Join(where, " and ")
	}

	var total int

	err := s.db.QueryRow("select count(*) from audit_entries"+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("could not count audit entries: %w", err)
	}

	query := `select id, action, description, actor_email, actor_role, subject_code, ip_address, phi_accessed, created_at
		from audit_entries` + whereClause +
		" order by " + orderClause(auditSortColumns, q.Sort, "created_at DESC") +
		" limit ? offset ?"

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = total
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("could not list audit entries: %w", err)
	}

	defer rows.Close()

	result := make([]model.AuditEntry, 0)

	for rows.Next() {
		var entry model.AuditEntry

		err = rows.Scan(&entry.ID, &entry.Action, &entry.Description, &entry.ActorEmail,
			&entry.ActorRole, &entry.SubjectCode, &entry.IPAddress, &entry.PHIAccessed, &entry.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("could not scan audit row: %w", err)
		}

		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("audit rows iteration failed: %w", err)
	}

	return result, total, nil
}

func (s *SQLiteStorage) ListReports() ([]model.Report, error) {
	rows, err := s.db.Query(`select id, slug, title, description, category
		from reports order by category, title`)
	if err != nil {
		return nil, fmt.Errorf("could not list reports: %w", err)
	}

	defer rows.Close()

	result := make([]model.Report, 0)

	for rows.Next() {
		var report model.Report

		err = rows.Scan(&report.ID, &report.Slug, &report.Title, &report.Description, &report.Category)
		if err != nil {
			return nil, fmt.Errorf("could not scan report row: %w", err)
		}

		result = append(result, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report rows iteration failed: %w", err)
	}

	return result, nil
}

func (s *SQLiteStorage) ListReportRuns(limit int) ([]model.ReportRun, error) {
	rows, err := s.db.Query(`select id, report_slug, requested_by, status, row_count, started_at, finished_at
		from report_runs order by started_at desc limit ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("could not list report runs: %w", err)
	}

	defer rows.Close()

	result := make([]model.ReportRun, 0, limit)

	for rows.Next() {
		var run model.ReportRun

		var finished sql.NullTime

		err = rows.Scan(&run.ID, &run.ReportSlug, &run.RequestedBy, &run.Status, &run.RowCount,
			&run.StartedAt, &finished)
		if err != nil {
			return nil, fmt.Errorf("could not scan report run row: %w", err)
		}

		if finished.Valid {
			run.FinishedAt = finished.Time
		}

		result = append(result, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report run rows iteration failed: %w", err)
	}

	return result, nil
}

func (s *SQLiteStorage) InsertForm(form *model.FormDefinition) error {
	_, err := s.db.Exec(`insert into form_definitions(id, code, name, description, category, claim_type, version, active, updated_at)
		values(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		form.ID, form.Code, form.Name, form.Description, form.Category,
		form.ClaimType, form.Version, form.Active, form.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not insert form %s: %w", form.Code, err)
	}

	return nil
}

func (s *SQLiteStorage) InsertAuditEntry(entry *model.AuditEntry) error {
	_, err := s.db.Exec(`insert into audit_entries(id, action, description, actor_email, actor_role, subject_code, ip_address, phi_accessed, created_at)
		values(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Action, entry.Description, entry.ActorEmail, entry.ActorRole,
		entry.SubjectCode, entry.IPAddress, entry.PHIAccessed, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not insert audit entry: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) InsertReport(report *model.Report) error {
	_, err := s.db.Exec(`insert into reports(id, slug, title, description, category)
		values(?, ?, ?, ?, ?)`,
		report.ID, report.Slug, report.Title, report.Description, report.Category)
	if err != nil {
		return fmt.Errorf("could not insert report %s: %w", report.Slug, err)
	}

	return nil
}

func (s *SQLiteStorage) InsertReportRun(run *model.ReportRun) error {
	var finished any
	if !run.FinishedAt.IsZero() {
		finished = run.FinishedAt
	}

	_, err := s.db.Exec(`insert into report_runs(id, report_slug, requested_by, status, row_count, started_at, finished_at)
		values(?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ReportSlug, run.RequestedBy, run.Status, run.RowCount, run.StartedAt, finished)
	if err != nil {
		return fmt.Errorf("could not insert report run: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) Close() {
	s.db.Close()
}
