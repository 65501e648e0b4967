package media

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
)

type probeResult struct {
	Format probeFormat `json:"format"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

// probeDuration asks ffprobe for the duration of a pass-through audio
// file. Used for display only, so callers treat failures as "unknown".
func probeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, err
	}

	return strconv.ParseFloat(result.Format.Duration, 64)
}
