// Package web is the HTTP surface of the deals browser: the page
// shell, the listing/detail endpoints and the store reload hook. It
// renders only what the controllers and normalizer already derived.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"flashdeals/internal/listing"
	"flashdeals/internal/stores"
)

//go:embed templates/index.html
var templateFS embed.FS

// defaultSortBy is used when a search arrives without a sort key.
const defaultSortBy = "Deal Rating"

// sortOptions are the sort keys the upstream API understands, in the
// order the selector presents them.
var sortOptions = []string{
	"Deal Rating",
	"Savings",
	"Price",
	"Title",
	"Metacritic",
	"Reviews",
	"Recent",
}

type Handler struct {
	listing   ListingController
	detail    DetailController
	directory StoreDirectory
	index     *template.Template
}

// NewRouter builds the application router.
func NewRouter(l ListingController, d DetailController, dir StoreDirectory) http.Handler {
	h := &Handler{
		listing:   l,
		detail:    d,
		directory: dir,
		index:     template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}

	r := mux.NewRouter()
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/search", h.Search).Methods(http.MethodPost)
	api.HandleFunc("/more", h.LoadMore).Methods(http.MethodPost)
	api.HandleFunc("/deals/close", h.CloseDeal).Methods(http.MethodPost)
	api.HandleFunc("/deals/{id}", h.OpenDeal).Methods(http.MethodGet)
	api.HandleFunc("/stores/reload", h.ReloadStores).Methods(http.MethodPost)

	r.Use(loggingMiddleware)
	return r
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Stores      []stores.Option
		SortOptions []string
	}{
		Stores:      h.directory.Options(),
		SortOptions: sortOptions,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.index.Execute(w, data); err != nil {
		slog.Error("Index template render failed", "error", err)
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Search starts a new listing session from the submitted parameters.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var p listing.Params
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid search request body")
		return
	}
	if p.SortBy == "" {
		p.SortBy = defaultSortBy
	}

	update := h.listing.NewSearch(r.Context(), p)
	if update == nil {
		// A newer search superseded this one mid-flight.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// LoadMore requests the next page of the current session.
func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	update := h.listing.LoadMore(r.Context())
	if update == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// OpenDeal opens the detail view for one deal.
func (h *Handler) OpenDeal(w http.ResponseWriter, r *http.Request) {
	dealID := mux.Vars(r)["id"]
	if dealID == "" {
		writeError(w, http.StatusBadRequest, "missing deal id")
		return
	}

	view := h.detail.Open(r.Context(), dealID)
	if view == nil {
		// The view was closed before the fetch came back.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CloseDeal closes the detail view.
func (h *Handler) CloseDeal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.detail.Close())
}

// ReloadStores re-fetches the store directory. A failed load is a
// warning, not an error: the previous directory keeps serving lookups.
func (h *Handler) ReloadStores(w http.ResponseWriter, r *http.Request) {
	type reloadResponse struct {
		Stores []stores.Option `json:"stores"`
		Status listing.Status  `json:"status,omitempty"`
	}

	resp := reloadResponse{}
	if err := h.directory.Load(r.Context()); err != nil {
		resp.Status = listing.Status{
			Severity: listing.SeverityWarning,
			Text:     "Could not load the store list. Some filters may be unavailable.",
		}
	}
	resp.Stores = h.directory.Options()
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
