package routes

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/avolkov/claimdesk/model"
	cs "github.com/avolkov/claimdesk/web/components"
	"github.com/avolkov/claimdesk/web/nav"
)

const recentRunsLimit = 10

var runsColumns = []model.Column{
	{Key: "report", Label: "Report"},
	{Key: "requested_by", Label: "Requested By"},
	{Key: "status", Label: "Status"},
	{Key: "rows", Label: "Rows"},
	{Key: "started", Label: "Started"},
	{Key: "duration", Label: "Duration"},
}

// RunRows converts report runs into display rows.
func RunRows(runs []model.ReportRun) []model.Row {
	rows := make([]model.Row, 0, len(runs))

	for _, run := range runs {
		rowCount := ""
		if run.Status == model.RunCompleted {
			rowCount = strconv.Itoa(run.RowCount)
		}

		duration := ""
		if !run.FinishedAt.IsZero() {
			duration = run.FinishedAt.Sub(run.StartedAt).Truncate(time.Second).String()
		}

		rows = append(rows, model.Row{
			"id":           run.ID,
			"report":       run.ReportSlug,
			"requested_by": run.RequestedBy,
			"status":       run.Status,
			"rows":         rowCount,
			"started":      run.StartedAt.Format("2006-01-02 15:04"),
			"duration":     duration,
		})
	}

	return rows
}

// ReportsHandle handles requests to the reports dashboard.
func (s *ServerHandler) ReportsHandle(w http.ResponseWriter, r *http.Request) {
	slog.InfoContext(r.Context(), "Handling reports page request")

	reports, err := s.Storage.ListReports()
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list reports", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	runs, err := s.Storage.ListReportRuns(recentRunsLimit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list report runs", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	slog.DebugContext(r.Context(), "Gathered reports", "reports", len(reports), "runs", len(runs))

	table := cs.TableContext{
		Columns: runsColumns,
		Rows:    RunRows(runs),
		CellFuncs: map[string]cs.CellFunc{
			"status": func(value string, _ model.Row) g.Node {
				return cs.StatusBadge(value)
			},
		},
		EmptyLabel: "No report runs recorded yet",
	}

	// A fixed recent-runs window is always a single page.
	pagination := model.NewPagination(1, recentRunsLimit, len(runs))

	trail := nav.Trail{
		{Label: "Administration", Href: s.Nav.Home()},
		{Label: "Reports"},
	}

	cards := make([]g.Node, 0, len(reports))
	for _, report := range reports {
		cards = append(cards, cs.Card(report.Title, report.Description, report.Category))
	}

	_ = SafeRenderComponent(cs.Page("Reports", s.Nav, trail, "reports",
		html.H1(g.Text("Reports")),
		cs.CardGrid(cards...),
		cs.SectionTitle("Recent runs"),
		cs.DataTable(table),
		cs.Pager(pagination, func(page int) string {
			return nav.PageURL(s.Nav.Reports(), nil, page)
		}),
	), w)
}
