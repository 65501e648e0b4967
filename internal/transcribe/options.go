package transcribe

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Options is the flat configuration record for one invocation.
// ChunkMinutes is collected from the form and bounds-checked but is not
// applied to the engine call.
type Options struct {
	Task         Task    `json:"task" validate:"oneof=transcribe translate"`
	Model        string  `json:"model" validate:"oneof=tiny base small medium large"`
	Language     string  `json:"language"` // "" or "auto" = detect, otherwise a code from Languages
	Temperature  float64 `json:"temperature" validate:"gte=0,lte=1"`
	BestOf       int     `json:"best_of" validate:"gte=1,lte=5"`
	ChunkMinutes int     `json:"chunk_minutes" validate:"gte=0,lte=60"`
}

// DefaultOptions returns the form defaults: greedy decoding with the
// smallest model and language auto-detection.
func DefaultOptions() Options {
	return Options{
		Task:        TaskTranscribe,
		Model:       "tiny",
		Language:    "",
		Temperature: 0,
		BestOf:      1,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks every field by allowed-value membership.
func (o Options) Validate() error {
	if err := getValidator().Struct(o); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			fe := errs[0]
			return fmt.Errorf("invalid %s: %v", strings.ToLower(fe.Field()), fe.Value())
		}
		return err
	}
	if !validLanguage(o.Language) {
		return fmt.Errorf("invalid language: %q", o.Language)
	}
	return nil
}
