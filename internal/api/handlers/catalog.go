package handlers

import (
	"net/http"

	"github.com/whisper-web/backend/internal/transcribe"
)

// CatalogHandler serves the static option catalogs the form is built
// from.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListModels returns the selectable model sizes with memory hints
func (h *CatalogHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, transcribe.Models(), http.StatusOK)
}

// ListLanguages returns the language dropdown entries
func (h *CatalogHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, transcribe.Languages(), http.StatusOK)
}
