package components

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/avolkov/claimdesk/web/nav"
)

// rowClickScript makes rows with data-href navigable. Clicks that land
// on embedded controls must not double as row selection, so anything
// inside a link, button or form is left alone.
const rowClickScript = `
document.addEventListener('click', function (e) {
	if (e.target.closest('a, button, form, input, select')) {
		return;
	}
	var row = e.target.closest('tr[data-href]');
	if (row) {
		window.location = row.getAttribute('data-href');
	}
});
`

const stylesheet = `
:root { --ink: #1d2733; --muted: #66707c; --line: #dde3ea; --accent: #155fa0; }
* { box-sizing: border-box; }
body { margin: 0; font: 15px/1.45 system-ui, sans-serif; color: var(--ink); display: flex; min-height: 100vh; }
.sidebar { width: 210px; flex-shrink: 0; background: #f4f6f8; border-right: 1px solid var(--line); padding: 1.25rem 1rem; }
.sidebar .brand { font-weight: 700; margin-bottom: 1.5rem; display: block; color: var(--ink); text-decoration: none; }
.sidebar a.nav-link { display: block; padding: .4rem .6rem; border-radius: 6px; color: var(--ink); text-decoration: none; }
.sidebar a.nav-link.current { background: var(--accent); color: #fff; }
.content { flex: 1; padding: 1.25rem 2rem; max-width: 1100px; }
.breadcrumbs { font-size: .85rem; color: var(--muted); margin-bottom: 1rem; }
.breadcrumbs a { color: var(--accent); text-decoration: none; }
.breadcrumbs .sep { margin: 0 .4rem; }
.data-table { width: 100%; border-collapse: collapse; margin: 1rem 0; }
.data-table th, .data-table td { text-align: left; padding: .5rem .65rem; border-bottom: 1px solid var(--line); }
.data-table th { font-size: .8rem; text-transform: uppercase; letter-spacing: .03em; color: var(--muted); }
.data-table th.sortable a { color: inherit; text-decoration: none; }
.data-table tr.selectable:hover { background: #f0f5fa; cursor: pointer; }
.data-table tr.empty-state td { text-align: center; color: var(--muted); padding: 2rem 0; }
.row-actions a { color: var(--accent); text-decoration: none; font-size: .85rem; }
.badge { display: inline-block; padding: .1rem .55rem; border-radius: 999px; font-size: .75rem; font-weight: 600; }
.badge-ok { background: #e1f3e5; color: #186a2f; }
.badge-info { background: #e2edf8; color: #155fa0; }
.badge-muted { background: #eceff2; color: #66707c; }
.badge-err { background: #fbe4e4; color: #9d2424; }
.pager { display: flex; gap: 1rem; align-items: center; font-size: .9rem; }
.pager a { color: var(--accent); text-decoration: none; }
.pager-status { color: var(--muted); }
.search-box { display: flex; gap: .5rem; margin: .5rem 0 1rem; }
.search-box input[type=search] { padding: .35rem .6rem; border: 1px solid var(--line); border-radius: 6px; width: 280px; }
.search-box button { padding: .35rem .9rem; border: 0; border-radius: 6px; background: var(--accent); color: #fff; }
.filter-bar { display: flex; gap: .75rem; flex-wrap: wrap; font-size: .85rem; margin-bottom: .5rem; }
.filter-bar a { color: var(--accent); text-decoration: none; }
.filter-bar a.on { font-weight: 700; }
.card-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 1rem; margin: 1rem 0 2rem; }
.card { border: 1px solid var(--line); border-radius: 8px; padding: 1rem; }
.card h3 { margin: 0 0 .35rem; font-size: 1rem; }
.card p { margin: 0; color: var(--muted); font-size: .88rem; }
.card-footer { display: block; margin-top: .6rem; font-size: .75rem; color: var(--muted); text-transform: uppercase; letter-spacing: .04em; }
.section-title { font-size: 1.1rem; margin: 1.5rem 0 .25rem; }
`

// Page wraps view content into the portal shell: sidebar navigation,
// breadcrumb bar and the shared stylesheet and row-click script.
func Page(title string, routes nav.Routes, trail nav.Trail, current string, body ...g.Node) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(g.Text(title+" - Claimdesk")),
				html.StyleEl(g.Raw(stylesheet)),
			),
			html.Body(
				sidebar(routes, current),
				html.Main(
					html.Class("content"),
					breadcrumbs(trail),
					g.Group(body),
				),
				html.Script(g.Raw(rowClickScript)),
			),
		),
	)
}

func sidebar(routes nav.Routes, current string) g.Node {
	return html.Aside(
		html.Class("sidebar"),
		html.A(html.Class("brand"), html.Href(routes.Home()), g.Text("Claimdesk")),
		navLink(routes.Forms(), "Forms", current == "forms"),
		navLink(routes.Audit(), "Audit Log", current == "audit"),
		navLink(routes.Reports(), "Reports", current == "reports"),
	)
}

func navLink(href, label string, current bool) g.Node {
	class := "nav-link"
	if current {
		class += " current"
	}

	return html.A(html.Class(class), html.Href(href), g.Text(label))
}

func breadcrumbs(trail nav.Trail) g.Node {
	if len(trail) == 0 {
		return g.Group(nil)
	}

	parts := make([]g.Node, 0, len(trail)*2)

	for i, crumb := range trail {
		if i > 0 {
			parts = append(parts, html.Span(html.Class("sep"), g.Text("/")))
		}

		if crumb.Href != "" && i < len(trail)-1 {
			parts = append(parts, html.A(html.Href(crumb.Href), g.Text(crumb.Label)))
		} else {
			parts = append(parts, html.Span(g.Text(crumb.Label)))
		}
	}

	return html.Nav(html.Class("breadcrumbs"), g.Group(parts))
}
