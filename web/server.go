package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/avolkov/claimdesk/db"
	"github.com/avolkov/claimdesk/logging"
	"github.com/avolkov/claimdesk/web/nav"
	"github.com/avolkov/claimdesk/web/routes"
)

func disableCacheInDevMode(dev bool, next http.Handler) http.Handler {
	if !dev {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// withRequestID tags every request context with a generated id so that
// all log records of one request can be correlated.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.RequestCtx(r.Context(), uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BuildServer wires the three admin views onto a mux.
func BuildServer(storage db.Storage, routeTable nav.Routes) *http.ServeMux {
	handler := routes.ServerHandler{
		Storage: storage,
		Nav:     routeTable,
	}

	mux := http.NewServeMux()
	mux.Handle("/forms", http.HandlerFunc(handler.FormsHandle))
	mux.Handle("/audit", http.HandlerFunc(handler.AuditHandle))
	mux.Handle("/reports", http.HandlerFunc(handler.ReportsHandle))
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)

			return
		}

		http.Redirect(w, r, routeTable.Forms(), http.StatusFound)
	}))

	return mux
}

// StartServer runs the admin interface until the listener fails.
func StartServer(port int, storage db.Storage, dev bool) {
	slog.Info("Running interface", "port", port)

	mux := BuildServer(storage, nav.Routes{})

	err := http.ListenAndServe(
		fmt.Sprintf(":%d", port),
		withRequestID(disableCacheInDevMode(dev, mux)))
	if err != nil {
		slog.Error("Could not run server", "error", err)
		os.Exit(1)
	}
}
