package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/avolkov/claimdesk/model"
)

// Pager shows the position within a paged dataset and, when more than
// one page exists, previous/next links built through pageURL. With a
// single page the control is inert: no links are emitted at all.
func Pager(p model.Pagination, pageURL func(page int) string) g.Node {
	children := []g.Node{
		html.Class("pager"),
	}

	if p.HasPrev() {
		children = append(children, html.A(
			html.Class("pager-prev"),
			html.Href(pageURL(p.Page-1)),
			g.Text("← Previous"),
		))
	}

	children = append(children, html.Span(
		html.Class("pager-status"),
		g.Text(fmt.Sprintf("Page %d of %d (%s)", p.Page, p.TotalPages, itemCount(p.TotalItems))),
	))

	if p.HasNext() {
		children = append(children, html.A(
			html.Class("pager-next"),
			html.Href(pageURL(p.Page+1)),
			g.Text("Next →"),
		))
	}

	return html.Nav(children...)
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}

	return fmt.Sprintf("%d items", n)
}
