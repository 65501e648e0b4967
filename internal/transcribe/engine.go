package transcribe

import "context"

// Task selects what the model produces: text in the spoken language, or
// an English translation of it.
type Task string

const (
	TaskTranscribe Task = "transcribe"
	TaskTranslate  Task = "translate"
)

// Request is the input for a transcription
type Request struct {
	AudioPath string // absolute path to the normalized audio file
	Options   Options
}

// Segment is a timestamped span of recognized speech
type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	AvgLogprob float64 `json:"avg_logprob,omitempty"`
}

// Result is the output of a transcription. Segments arrive in
// chronological order from the engine and are never reordered here.
type Result struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Duration float64   `json:"duration,omitempty"` // audio duration in seconds
	Segments []Segment `json:"segments"`
}

// Engine is the common interface for all transcription engines
type Engine interface {
	// Transcribe converts normalized audio into text and timed segments.
	// The call blocks until the engine returns a full result or fails.
	Transcribe(ctx context.Context, req Request) (*Result, error)
	// Name returns the engine name
	Name() string
}
