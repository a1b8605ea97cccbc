package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/avolkov/claimdesk/model"
)

// CellFunc overrides rendering of one column's cells. It receives the
// raw value at the column key and the whole row, and fully controls
// the cell content.
type CellFunc func(value string, row model.Row) g.Node

// TableContext is everything DataTable needs to render one tabular
// view. The renderer is presentation-only: it never sorts, filters or
// slices Rows, and trusts the caller to have paged them already.
type TableContext struct {
	Columns []model.Column
	Rows    []model.Row

	// Sort is the currently applied ordering, used only to mark the
	// active header; SortBase turns an intent-to-sort into a URL.
	Sort     model.SortState
	SortBase func(key string, desc bool) string

	// RowHref makes rows navigable; clicks landing on embedded
	// controls are excluded by the layout's click handler.
	RowHref func(row model.Row) string

	// CellFuncs maps column keys to rendering overrides.
	CellFuncs map[string]CellFunc

	// Actions fills a trailing per-row cell with controls.
	Actions func(row model.Row) g.Node

	EmptyLabel string
}

// DataTable renders a sortable tabular view from a column
// specification and a row sequence. Missing keys degrade to empty
// cells; zero rows render the header plus a single empty-state row.
func DataTable(ctx TableContext) g.Node {
	return html.Table(
		html.Class("data-table"),
		html.THead(tableHeader(ctx)),
		html.TBody(tableBody(ctx)),
	)
}

func tableHeader(ctx TableContext) g.Node {
	cells := make([]g.Node, 0, len(ctx.Columns)+1)

	for _, col := range ctx.Columns {
		cells = append(cells, headerCell(ctx, col))
	}

	if ctx.Actions != nil {
		cells = append(cells, html.Th(g.Attr("scope", "col"), html.Class("actions-col")))
	}

	return html.Tr(g.Group(cells))
}

func headerCell(ctx TableContext, col model.Column) g.Node {
	if !col.Sortable || ctx.SortBase == nil {
		return html.Th(g.Attr("scope", "col"), g.Text(col.Label))
	}

	indicator := ""
	if ctx.Sort.Key == col.Key {
		if ctx.Sort.Desc {
			indicator = " ▾"
		} else {
			indicator = " ▴"
		}
	}

	return html.Th(
		g.Attr("scope", "col"),
		html.Class("sortable"),
		html.A(
			html.Href(ctx.SortBase(col.Key, ctx.Sort.Toggled(col.Key))),
			g.Text(col.Label+indicator),
		),
	)
}

func tableBody(ctx TableContext) g.Node {
	if len(ctx.Rows) == 0 {
		return emptyRow(ctx)
	}

	rows := make([]g.Node, 0, len(ctx.Rows))
	for _, row := range ctx.Rows {
		rows = append(rows, bodyRow(ctx, row))
	}

	return g.Group(rows)
}

func bodyRow(ctx TableContext, row model.Row) g.Node {
	cells := make([]g.Node, 0, len(ctx.Columns)+1)

	for _, col := range ctx.Columns {
		cells = append(cells, bodyCell(ctx, col, row))
	}

	if ctx.Actions != nil {
		cells = append(cells, html.Td(html.Class("row-actions"), ctx.Actions(row)))
	}

	// Attributes have to be direct children of Tr to end up on the tag.
	children := make([]g.Node, 0, len(cells)+2)
	if ctx.RowHref != nil {
		children = append(children, html.Class("selectable"), g.Attr("data-href", ctx.RowHref(row)))
	}

	children = append(children, cells...)

	return html.Tr(children...)
}

func bodyCell(ctx TableContext, col model.Column, row model.Row) g.Node {
	value := row[col.Key]

	if cell, ok := ctx.CellFuncs[col.Key]; ok {
		return html.Td(cell(value, row))
	}

	return html.Td(g.Text(value))
}

func emptyRow(ctx TableContext) g.Node {
	label := ctx.EmptyLabel
	if label == "" {
		label = "Nothing to display"
	}

	span := len(ctx.Columns)
	if ctx.Actions != nil {
		span++
	}

	return html.Tr(
		html.Class("empty-state"),
		html.Td(
			html.ColSpan(strconv.Itoa(span)),
			g.Text(label),
		),
	)
}
