package routes

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/avolkov/claimdesk/db"
	"github.com/avolkov/claimdesk/model"
	cs "github.com/avolkov/claimdesk/web/components"
	"github.com/avolkov/claimdesk/web/nav"
)

const (
	formsDefaultPageSize = 20
	formsMaxPageSize     = 100
)

var formsColumns = []model.Column{
	{Key: "code", Label: "Code", Sortable: true},
	{Key: "name", Label: "Name", Sortable: true},
	{Key: "category", Label: "Category", Sortable: true},
	{Key: "version", Label: "Version", Sortable: true},
	{Key: "status", Label: "Status"},
	{Key: "updated", Label: "Updated", Sortable: true},
}

var formsSortKeys = map[string]bool{
	"code": true, "name": true, "category": true, "version": true, "updated": true,
}

// BuildFormQuery translates forms-list query parameters into a storage
// query. Malformed values degrade to defaults.
func BuildFormQuery(query url.Values) db.FormQuery {
	return db.FormQuery{
		Search:     query.Get("q"),
		Category:   query.Get("category"),
		ActiveOnly: query.Get("active") == "1",
		Sort:       sortQueryParam(query, formsSortKeys, model.SortState{Key: "code"}),
		Page:       intQueryParam(query, "page", 1, 1<<30),
		PageSize:   intQueryParam(query, "page_size", formsDefaultPageSize, formsMaxPageSize),
	}
}

// FormRows converts form definitions into display rows.
func FormRows(forms []model.FormDefinition) []model.Row {
	rows := make([]model.Row, 0, len(forms))

	for _, form := range forms {
		status := "inactive"
		if form.Active {
			status = "active"
		}

		rows = append(rows, model.Row{
			"id":       form.ID,
			"code":     form.Code,
			"name":     form.Name,
			"category": form.Category,
			"version":  strconv.Itoa(form.Version),
			"status":   status,
			"updated":  form.UpdatedAt.Format("2006-01-02"),
		})
	}

	return rows
}

// FormsHandle handles requests to the form definitions listing.
func (s *ServerHandler) FormsHandle(w http.ResponseWriter, r *http.Request) {
	slog.InfoContext(r.Context(), "Handling forms page request")

	query := r.URL.Query()
	formQuery := BuildFormQuery(query)

	forms, total, err := s.Storage.ListForms(formQuery)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list forms", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	slog.DebugContext(r.Context(), "Gathered form definitions", "count", len(forms), "total", total)

	pagination := model.NewPagination(formQuery.Page, formQuery.PageSize, total)
	base := s.Nav.Forms()

	table := cs.TableContext{
		Columns: formsColumns,
		Rows:    FormRows(forms),
		Sort:    formQuery.Sort,
		SortBase: func(key string, desc bool) string {
			return nav.SortURL(base, query, key, desc)
		},
		RowHref: func(row model.Row) string {
			return nav.FilterURL(base, query, "selected", row["code"])
		},
		CellFuncs: map[string]cs.CellFunc{
			"status": func(value string, _ model.Row) g.Node {
				return cs.StatusBadge(value)
			},
		},
		Actions: func(row model.Row) g.Node {
			history := url.Values{"action": {model.ActionFormUpdated}}

			return html.A(
				html.Href(nav.FilterURL(s.Nav.Audit(), history, "subject", row["code"])),
				g.Text("History"),
			)
		},
		EmptyLabel: "No forms match the current filters",
	}

	trail := nav.Trail{
		{Label: "Administration", Href: s.Nav.Home()},
		{Label: "Forms"},
	}

	body := []g.Node{
		html.H1(g.Text("Form Definitions")),
		cs.SearchBox(base, "q", formQuery.Search, "Search by code or name", map[string]string{
			"sort":     query.Get("sort"),
			"dir":      query.Get("dir"),
			"category": formQuery.Category,
		}),
		formsFilterBar(base, query),
	}

	if selected := query.Get("selected"); selected != "" {
		if panel := formDetailPanel(forms, selected); panel != nil {
			body = append(body, panel)
		}
	}

	body = append(body,
		cs.DataTable(table),
		cs.Pager(pagination, func(page int) string {
			return nav.PageURL(base, query, page)
		}),
	)

	_ = SafeRenderComponent(cs.Page("Forms", s.Nav, trail, "forms", body...), w)
}

// formsFilterBar renders quick category and active-only filter links.
func formsFilterBar(base string, query url.Values) g.Node {
	categories := []string{"claims", "registration", "clinical", "providers"}
	current := query.Get("category")

	links := make([]g.Node, 0, len(categories)+2)
	links = append(links, filterLink(nav.FilterURL(base, query, "category", ""), "All categories", current == ""))

	for _, category := range categories {
		links = append(links, filterLink(nav.FilterURL(base, query, "category", category), category, current == category))
	}

	activeOnly := query.Get("active") == "1"
	toggle := "1"

	if activeOnly {
		toggle = ""
	}

	links = append(links, filterLink(nav.FilterURL(base, query, "active", toggle), "Active only", activeOnly))

	return html.Div(html.Class("filter-bar"), g.Group(links))
}

func filterLink(href, label string, on bool) g.Node {
	class := ""
	if on {
		class = "on"
	}

	return html.A(html.Class(class), html.Href(href), g.Text(label))
}

// formDetailPanel shows the selected form above the table, when the
// selected code is present in the current result page.
func formDetailPanel(forms []model.FormDefinition, code string) g.Node {
	for _, form := range forms {
		if form.Code != code {
			continue
		}

		return cs.Card(
			form.Code+": "+form.Name,
			form.Description,
			"version "+strconv.Itoa(form.Version),
		)
	}

	return nil
}
