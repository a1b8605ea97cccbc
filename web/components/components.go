package components

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// badgeClasses maps a status value to its badge modifier class.
// Unknown values fall back to a neutral badge.
var badgeClasses = map[string]string{
	"active":    "badge-ok",
	"completed": "badge-ok",
	"running":   "badge-info",
	"queued":    "badge-info",
	"inactive":  "badge-muted",
	"retired":   "badge-muted",
	"failed":    "badge-err",
	"phi":       "badge-err",
}

// StatusBadge renders a status string as a colored badge; meant to be
// used as a cell override.
func StatusBadge(status string) g.Node {
	class, ok := badgeClasses[status]
	if !ok {
		class = "badge-muted"
	}

	return html.Span(html.Class("badge "+class), g.Text(status))
}

// SearchBox is a GET form submitting a single search parameter to
// action. keep preserves parameters (like the active sort) as hidden
// inputs so searching does not reset them.
func SearchBox(action, name, value, placeholder string, keep map[string]string) g.Node {
	hidden := make([]g.Node, 0, len(keep))
	for k, v := range keep {
		if v == "" {
			continue
		}

		hidden = append(hidden, html.Input(html.Type("hidden"), html.Name(k), html.Value(v)))
	}

	return html.Form(
		html.Class("search-box"),
		html.Method("get"),
		html.Action(action),
		g.Group(hidden),
		html.Input(
			html.Type("search"),
			html.Name(name),
			html.Value(value),
			html.Placeholder(placeholder),
		),
		html.Button(html.Type("submit"), g.Text("Search")),
	)
}

// Card is one tile on the reports dashboard.
func Card(title, description, footer string) g.Node {
	return html.Div(
		html.Class("card"),
		html.H3(g.Text(title)),
		html.P(g.Text(description)),
		g.If(footer != "",
			html.Span(html.Class("card-footer"), g.Text(footer)),
		),
	)
}

// CardGrid lays cards out in a responsive grid.
func CardGrid(cards ...g.Node) g.Node {
	return html.Div(html.Class("card-grid"), g.Group(cards))
}

// SectionTitle heads a block of page content.
func SectionTitle(title string) g.Node {
	return html.H2(html.Class("section-title"), g.Text(title))
}
