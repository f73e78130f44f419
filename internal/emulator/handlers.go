package emulator

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ofitec/conciliador/pkg/mapping"
)

// Handler serves the reconciliation endpoints over a Store.
type Handler struct {
	store   *Store
	matcher *Matcher
}

// NewHandler creates a Handler.
func NewHandler(store *Store, mapper *mapping.Mapper) *Handler {
	return &Handler{
		store:   store,
		matcher: NewMatcher(mapper),
	}
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// Suggestions handles POST /api/reconcile/suggestions.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if req.SourceType == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing source_type")
		return
	}

	docs, err := h.store.ListDocuments(nil)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list documents")
		return
	}

	items := h.matcher.Suggest(req, docs)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

// confirmRequest is the decoded body of a confirm request.
type confirmRequest struct {
	SourceType string         `json:"source_type"`
	SourceRef  string         `json:"source_ref"`
	TargetType string         `json:"target_type"`
	TargetRef  string         `json:"target_ref"`
	Metadata   map[string]any `json:"metadata"`
}

// Confirm handles POST /api/reconcile/confirm.
// The Idempotency-Key header, when present, collapses duplicate submissions
// into a single link.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if req.SourceType == "" || req.SourceRef == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing source_type or source_ref")
		return
	}
	if req.TargetType == "" || req.TargetRef == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing target_type or target_ref")
		return
	}

	link := LinkRecord{
		SourceType: req.SourceType,
		SourceRef:  req.SourceRef,
		TargetType: req.TargetType,
		TargetRef:  req.TargetRef,
		Fecha:      metadataString(req.Metadata, "fecha"),
		Amount:     metadataFloat(req.Metadata, "amount"),
	}

	if err := h.store.CreateLink(&link, r.Header.Get("Idempotency-Key")); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to record link")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accepted": true,
	})
}

// Links handles GET /api/reconcile/links.
// Supported filters: expense_id, tax_period+tax_tipo, source_type+source_ref.
func (h *Handler) Links(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter func(LinkRecord) bool
	switch {
	case q.Get("expense_id") != "":
		id := q.Get("expense_id")
		filter = func(l LinkRecord) bool {
			return l.SourceType == "expense" && l.SourceRef == id
		}
	case q.Get("tax_period") != "":
		period := q.Get("tax_period")
		tipo := q.Get("tax_tipo")
		filter = func(l LinkRecord) bool {
			if l.SourceType != "tax" {
				return false
			}
			// tax refs carry "<tipo>-<period>" (e.g. "F29-2025-01").
			return l.SourceRef == tipo+"-"+period
		}
	case q.Get("source_ref") != "":
		sourceType := q.Get("source_type")
		sourceRef := q.Get("source_ref")
		filter = func(l LinkRecord) bool {
			return l.SourceType == sourceType && l.SourceRef == sourceRef
		}
	}

	links, err := h.store.ListLinks(filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list links")
		return
	}

	items := make([]map[string]interface{}, 0, len(links))
	for _, l := range links {
		items = append(items, map[string]interface{}{
			"id":     strconv.FormatInt(l.ID, 10),
			"amount": l.Amount,
			"type":   l.TargetType,
			"ref":    l.TargetRef,
			"fecha":  l.Fecha,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

// CreateDocument handles POST /api/documents (seed data).
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var doc Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if doc.Kind == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing kind")
		return
	}
	if doc.Fecha == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing fecha")
		return
	}

	if err := h.store.CreateDocument(&doc); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to create document")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"document": doc,
	})
}

// ListDocuments handles GET /api/documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")

	var filter func(Document) bool
	if kind != "" {
		filter = func(d Document) bool { return d.Kind == kind }
	}

	docs, err := h.store.ListDocuments(filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list documents")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
	})
}

func metadataString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func metadataFloat(m map[string]any, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}
