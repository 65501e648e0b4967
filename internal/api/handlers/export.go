package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/whisper-web/backend/internal/export"
	"github.com/whisper-web/backend/internal/transcribe"
)

// ExportHandler serializes a transcription result into a downloadable
// document. The page posts the result JSON back since nothing is kept
// server-side between invocations.
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// Export handles POST /api/export/{format}
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	var res transcribe.Result
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		jsonError(w, "invalid result payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	var body, filename string
	switch format {
	case "txt":
		body = export.Text(&res)
		filename = "transcript.txt"
	case "srt":
		body = export.SRT(&res)
		filename = "transcript.srt"
	case "vtt":
		body = export.VTT(&res)
		filename = "transcript.vtt"
	default:
		jsonError(w, fmt.Sprintf("unknown export format: %q", format), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(body))
}
