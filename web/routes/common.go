package routes

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	g "maragu.dev/gomponents"

	"github.com/avolkov/claimdesk/db"
	"github.com/avolkov/claimdesk/model"
	"github.com/avolkov/claimdesk/web/nav"
)

// ServerHandler holds all dependencies needed for the web server handlers.
type ServerHandler struct {
	Storage db.Storage
	Nav     nav.Routes
}

// SafeRenderComponent safely renders an HTML component to an http.ResponseWriter.
func SafeRenderComponent(component g.Node, w http.ResponseWriter) error {
	// Do not write to w because it implies 200 status
	var buf bytes.Buffer

	err := component.Render(&buf)
	if err != nil {
		return fmt.Errorf("could not render component: %w", err)
	}

	// Component rendered successfully to the buffer.
	// Now, copy it over to the ResponseWriter
	// This implies a 200 OK status code
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response", "error", err)

		return fmt.Errorf("could not write to response writer: %w", err)
	}

	return nil
}

// intQueryParam reads a positive integer query parameter, falling back
// to def on absent or malformed input and clamping into [1, ceil].
func intQueryParam(query url.Values, name string, def, ceil int) int {
	raw := query.Get(name)
	if raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return def
	}

	if value > ceil {
		return ceil
	}

	return value
}

// sortQueryParam reads sort/dir parameters; unknown sort keys fall
// back to the view default rather than failing.
func sortQueryParam(query url.Values, allowed map[string]bool, def model.SortState) model.SortState {
	key := query.Get("sort")
	if key == "" || !allowed[key] {
		return def
	}

	return model.SortState{Key: key, Desc: query.Get("dir") == "desc"}
}
