package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// WhisperCppClient talks to the whisper.cpp HTTP server (whisper-server)
type WhisperCppClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewWhisperCppClient creates a client for the whisper.cpp server
func NewWhisperCppClient(baseURL string, timeout time.Duration) *WhisperCppClient {
	if timeout <= 0 {
		timeout = 30 * time.Minute // transcription can be very long
	}
	return &WhisperCppClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *WhisperCppClient) Name() string {
	return "whisper.cpp"
}

// verboseResponse mirrors the whisper.cpp verbose_json payload.
type verboseResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start      float64 `json:"start"`
		End        float64 `json:"end"`
		Text       string  `json:"text"`
		AvgLogprob float64 `json:"avg_logprob"`
	} `json:"segments"`
	Error string `json:"error"`
}

// Transcribe sends the normalized audio to whisper-server and parses the
// structured result. The call blocks for the full duration of inference.
func (c *WhisperCppClient) Transcribe(ctx context.Context, req Request) (*Result, error) {
	// Build multipart form
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, &EngineError{
			Kind:    KindTranscription,
			Message: fmt.Sprintf("open audio: %v", err),
			Err:     err,
		}
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(req.AudioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return nil, fmt.Errorf("copy audio data: %w", err)
	}

	opts := req.Options
	writer.WriteField("response_format", "verbose_json")
	writer.WriteField("model", opts.Model)
	writer.WriteField("temperature", strconv.FormatFloat(opts.Temperature, 'f', 1, 64))
	if opts.Temperature > 0 && opts.BestOf > 1 {
		// best_of only matters when sampling; greedy decoding ignores it
		writer.WriteField("best_of", strconv.Itoa(opts.BestOf))
	}
	if opts.Task == TaskTranslate {
		writer.WriteField("translate", "true")
	}
	if opts.Language != "" && opts.Language != "auto" {
		writer.WriteField("language", opts.Language)
	}
	writer.Close()

	url := c.baseURL + "/inference"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	log.Printf("[whisper] sending request to %s (model=%s task=%s lang=%s)",
		url, opts.Model, opts.Task, opts.Language)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &EngineError{
			Kind:    KindTranscription,
			Message: fmt.Sprintf("whisper server request: %v", err),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &EngineError{
			Kind:    KindTranscription,
			Message: fmt.Sprintf("read response: %v", err),
			Err:     err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		if isOOMError(string(body)) {
			return nil, &EngineError{
				Kind:    KindModelLoad,
				Message: fmt.Sprintf("model %q did not fit in memory", opts.Model),
			}
		}
		return nil, &EngineError{
			Kind:    KindTranscription,
			Message: fmt.Sprintf("whisper server error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var parsed verboseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &EngineError{
			Kind:    KindTranscription,
			Message: fmt.Sprintf("parse whisper response: %v", err),
			Err:     err,
		}
	}
	if parsed.Error != "" {
		return nil, &EngineError{
			Kind:    KindTranscription,
			Message: "whisper server: " + parsed.Error,
		}
	}

	result := &Result{
		Text:     parsed.Text,
		Language: parsed.Language,
		Duration: parsed.Duration,
		Segments: make([]Segment, 0, len(parsed.Segments)),
	}
	if result.Language == "" {
		result.Language = opts.Language
	}
	for _, s := range parsed.Segments {
		result.Segments = append(result.Segments, Segment{
			Start:      s.Start,
			End:        s.End,
			Text:       s.Text,
			AvgLogprob: s.AvgLogprob,
		})
	}

	return result, nil
}

// isOOMError checks if an error response indicates out-of-memory on the
// inference host
func isOOMError(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "out of memory") ||
		strings.Contains(lower, "allocation") ||
		strings.Contains(lower, "oom") ||
		strings.Contains(lower, "memory") && strings.Contains(lower, "failed") ||
		strings.Contains(lower, "sycl") && strings.Contains(lower, "error")
}
