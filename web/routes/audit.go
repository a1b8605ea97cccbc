package routes

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/avolkov/claimdesk/db"
	"github.com/avolkov/claimdesk/model"
	cs "github.com/avolkov/claimdesk/web/components"
	"github.com/avolkov/claimdesk/web/nav"
)

const (
	auditDefaultPageSize = 50
	auditMaxPageSize     = 200
)

var auditColumns = []model.Column{
	{Key: "time", Label: "Time", Sortable: true},
	{Key: "action", Label: "Action", Sortable: true},
	{Key: "subject", Label: "Subject"},
	{Key: "actor", Label: "Actor", Sortable: true},
	{Key: "role", Label: "Role"},
	{Key: "ip", Label: "IP Address"},
	{Key: "phi", Label: "PHI"},
	{Key: "details", Label: "Details"},
}

var auditSortKeys = map[string]bool{"time": true, "action": true, "actor": true}

// filterableActions are the quick-filter links shown above the table.
var filterableActions = []string{
	model.ActionUserLogin,
	model.ActionClaimSubmitted,
	model.ActionClaimApproved,
	model.ActionClaimDenied,
	model.ActionPHIAccessed,
	model.ActionFormUpdated,
}

// BuildAuditQuery translates audit-view query parameters into a
// storage query. Malformed dates and numbers degrade to defaults.
func BuildAuditQuery(query url.Values) db.AuditQuery {
	auditQuery := db.AuditQuery{
		Action:     query.Get("action"),
		ActorEmail: query.Get("actor"),
		Subject:    query.Get("subject"),
		PHIOnly:    query.Get("phi") == "1",
		Sort:       sortQueryParam(query, auditSortKeys, model.SortState{Key: "time", Desc: true}),
		Page:       intQueryParam(query, "page", 1, 1<<30),
		PageSize:   intQueryParam(query, "page_size", auditDefaultPageSize, auditMaxPageSize),
	}

	if from, err := time.Parse(time.DateOnly, query.Get("from")); err == nil {
		auditQuery.From = from
	}

	if to, err := time.Parse(time.DateOnly, query.Get("to")); err == nil {
		// The upper bound is exclusive, so include the named day fully.
		auditQuery.To = to.AddDate(0, 0, 1)
	}

	return auditQuery
}

// AuditRows converts audit entries into display rows.
func AuditRows(entries []model.AuditEntry) []model.Row {
	rows := make([]model.Row, 0, len(entries))

	for _, entry := range entries {
		phi := ""
		if entry.PHIAccessed {
			phi = "phi"
		}

		rows = append(rows, model.Row{
			"id":      entry.ID,
			"time":    entry.CreatedAt.Format("2006-01-02 15:04"),
			"action":  entry.Action,
			"subject": entry.SubjectCode,
			"actor":   entry.ActorEmail,
			"role":    entry.ActorRole,
			"ip":      entry.IPAddress,
			"phi":     phi,
			"details": entry.Description,
		})
	}

	return rows
}

// AuditHandle handles requests to the audit log viewer.
func (s *ServerHandler) AuditHandle(w http.ResponseWriter, r *http.Request) {
	slog.InfoContext(r.Context(), "Handling audit page request")

	query := r.URL.Query()
	auditQuery := BuildAuditQuery(query)

	entries, total, err := s.Storage.ListAuditEntries(auditQuery)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list audit entries", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	slog.DebugContext(r.Context(), "Gathered audit entries", "count", len(entries), "total", total)

	pagination := model.NewPagination(auditQuery.Page, auditQuery.PageSize, total)
	base := s.Nav.Audit()

	table := cs.TableContext{
		Columns: auditColumns,
		Rows:    AuditRows(entries),
		Sort:    auditQuery.Sort,
		SortBase: func(key string, desc bool) string {
			return nav.SortURL(base, query, key, desc)
		},
		CellFuncs: map[string]cs.CellFunc{
			"phi": func(value string, _ model.Row) g.Node {
				if value == "" {
					return g.Text("")
				}

				return cs.StatusBadge(value)
			},
			"actor": func(value string, _ model.Row) g.Node {
				return html.A(html.Href(nav.FilterURL(base, query, "actor", value)), g.Text(value))
			},
		},
		EmptyLabel: "No audit entries match the current filters",
	}

	trail := nav.Trail{
		{Label: "Administration", Href: s.Nav.Home()},
		{Label: "Audit Log"},
	}

	_ = SafeRenderComponent(cs.Page("Audit Log", s.Nav, trail, "audit",
		html.H1(g.Text("Audit Log")),
		auditFilterBar(base, query),
		cs.DataTable(table),
		cs.Pager(pagination, func(page int) string {
			return nav.PageURL(base, query, page)
		}),
	), w)
}

func auditFilterBar(base string, query url.Values) g.Node {
	current := query.Get("action")

	links := make([]g.Node, 0, len(filterableActions)+4)
	links = append(links, filterLink(nav.FilterURL(base, query, "action", ""), "All actions", current == ""))

	for _, action := range filterableActions {
		links = append(links, filterLink(nav.FilterURL(base, query, "action", action), action, current == action))
	}

	phiOnly := query.Get("phi") == "1"
	toggle := "1"

	if phiOnly {
		toggle = ""
	}

	links = append(links, filterLink(nav.FilterURL(base, query, "phi", toggle), "PHI access only", phiOnly))

	if actor := query.Get("actor"); actor != "" {
		links = append(links, filterLink(nav.FilterURL(base, query, "actor", ""), "Clear actor: "+actor, true))
	}

	if subject := query.Get("subject"); subject != "" {
		links = append(links, filterLink(nav.FilterURL(base, query, "subject", ""), "Clear subject: "+subject, true))
	}

	return html.Div(html.Class("filter-bar"), g.Group(links))
}
