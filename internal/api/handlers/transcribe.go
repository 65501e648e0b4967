package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/whisper-web/backend/internal/media"
	"github.com/whisper-web/backend/internal/transcribe"
)

// TranscribeHandler runs the full upload -> normalize -> transcribe
// pipeline synchronously, one invocation per request.
type TranscribeHandler struct {
	normalizer *media.Normalizer
	engine     transcribe.Engine
	maxUpload  int64 // bytes
}

func NewTranscribeHandler(normalizer *media.Normalizer, engine transcribe.Engine, maxUpload int64) *TranscribeHandler {
	return &TranscribeHandler{
		normalizer: normalizer,
		engine:     engine,
		maxUpload:  maxUpload,
	}
}

// TranscribeResponse is the invocation result returned to the page.
type TranscribeResponse struct {
	Text     string               `json:"text"`
	Language string               `json:"language"`
	Duration float64              `json:"duration,omitempty"` // audio duration in seconds
	Elapsed  float64              `json:"elapsed"`            // processing time in seconds
	Segments []transcribe.Segment `json:"segments"`
}

// Transcribe handles POST /api/transcribe
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			jsonError(w, fmt.Sprintf("upload too large (limit %d MB)", h.maxUpload>>20), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	opts, err := parseOptions(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "media file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("[transcribe] invocation: file=%s size=%d model=%s task=%s lang=%s",
		header.Filename, len(blob), opts.Model, opts.Task, opts.Language)

	result, status, err := h.run(r.Context(), blob, header.Filename, opts)
	if err != nil {
		jsonError(w, err.Error(), status)
		return
	}

	jsonResponse(w, result, http.StatusOK)
}

// run executes the pipeline stages and maps each failure to an HTTP
// status by error kind.
func (h *TranscribeHandler) run(ctx context.Context, blob []byte, filename string, opts transcribe.Options) (*TranscribeResponse, int, error) {
	norm, err := h.normalizer.Normalize(ctx, blob, filename)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) {
			return nil, http.StatusBadRequest, err
		}
		var convErr *media.ConvertError
		if errors.As(err, &convErr) {
			return nil, http.StatusBadGateway, fmt.Errorf("audio extraction failed: %w", convErr)
		}
		return nil, http.StatusInternalServerError, err
	}
	defer norm.Close()

	start := time.Now()
	res, err := h.engine.Transcribe(ctx, transcribe.Request{
		AudioPath: norm.AudioPath,
		Options:   opts,
	})
	if err != nil {
		var engErr *transcribe.EngineError
		if errors.As(err, &engErr) && engErr.Kind == transcribe.KindModelLoad {
			msg := engErr.Message
			if smaller := transcribe.SmallerModel(opts.Model); smaller != "" {
				msg = fmt.Sprintf("%s; try the %q model instead", msg, smaller)
			}
			return nil, http.StatusServiceUnavailable, errors.New(msg)
		}
		return nil, http.StatusBadGateway, fmt.Errorf("transcription failed: %w", err)
	}

	elapsed := time.Since(start)
	log.Printf("[transcribe] done: segments=%d language=%s elapsed=%s",
		len(res.Segments), res.Language, elapsed.Round(time.Millisecond))

	duration := res.Duration
	if duration == 0 {
		duration = norm.Duration
	}

	return &TranscribeResponse{
		Text:     res.Text,
		Language: res.Language,
		Duration: duration,
		Elapsed:  elapsed.Seconds(),
		Segments: res.Segments,
	}, http.StatusOK, nil
}

// parseOptions reads the option fields from the form, applying the
// defaults for absent fields and rejecting values outside the allowed
// sets.
func parseOptions(r *http.Request) (transcribe.Options, error) {
	opts := transcribe.DefaultOptions()

	if v := r.FormValue("task"); v != "" {
		opts.Task = transcribe.Task(v)
	}
	if v := r.FormValue("model"); v != "" {
		opts.Model = v
	}
	if v := r.FormValue("language"); v != "" {
		opts.Language = v
	}
	if v := r.FormValue("temperature"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid temperature: %q", v)
		}
		opts.Temperature = f
	}
	if v := r.FormValue("best_of"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid best_of: %q", v)
		}
		opts.BestOf = i
	}
	if v := r.FormValue("chunk_minutes"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid chunk_minutes: %q", v)
		}
		opts.ChunkMinutes = i
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
