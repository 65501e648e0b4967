package transcribe

// ErrorKind classifies engine failures so callers can choose how to
// present them without parsing message text.
type ErrorKind string

const (
	// KindModelLoad means the engine could not load or fit the selected
	// model (typically out of memory on the inference host).
	KindModelLoad ErrorKind = "model_load"
	// KindTranscription covers every other failure of the engine call.
	KindTranscription ErrorKind = "transcription"
)

// EngineError is a classified failure from a transcription engine.
type EngineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	return e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
