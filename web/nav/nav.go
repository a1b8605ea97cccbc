// Package nav is the navigation capability handed to views and
// components: breadcrumb trails plus centralized URL construction, so
// nothing else in the web layer hand-formats paths.
package nav

import (
	"net/url"
	"strconv"
)

type Crumb struct {
	Label string
	Href  string
}

// Trail is an ordered breadcrumb path; the last crumb is the current
// page and renders without a link.
type Trail []Crumb

// Routes builds every path the portal links to. The zero value serves
// from the root; Prefix supports mounting under a subpath.
type Routes struct {
	Prefix string
}

func (r Routes) Home() string {
	return r.path("/")
}

func (r Routes) Forms() string {
	return r.path("/forms")
}

func (r Routes) Audit() string {
	return r.path("/audit")
}

func (r Routes) Reports() string {
	return r.path("/reports")
}

func (r Routes) path(p string) string {
	if r.Prefix == "" {
		return p
	}

	return r.Prefix + p
}

// PageURL points at a specific page of a listing, keeping every other
// query parameter intact.
func PageURL(base string, query url.Values, page int) string {
	q := cloneValues(query)
	q.Set("page", strconv.Itoa(page))

	return base + "?" + q.Encode()
}

// SortURL points at a listing re-ordered by key, dropping back to the
// first page since the old offset is meaningless under a new order.
func SortURL(base string, query url.Values, key string, desc bool) string {
	q := cloneValues(query)
	q.Set("sort", key)

	if desc {
		q.Set("dir", "desc")
	} else {
		q.Set("dir", "asc")
	}

	q.Del("page")

	return base + "?" + q.Encode()
}

// FilterURL points at a listing with one filter changed, resetting
// paging. An empty value removes the filter.
func FilterURL(base string, query url.Values, name, value string) string {
	q := cloneValues(query)

	if value == "" {
		q.Del(name)
	} else {
		q.Set(name, value)
	}

	q.Del("page")

	return base + "?" + q.Encode()
}

func cloneValues(query url.Values) url.Values {
	q := url.Values{}

	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	return q
}
