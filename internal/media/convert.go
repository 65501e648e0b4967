package media

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ConvertError carries the conversion tool's combined output so the
// failure can be surfaced to the user verbatim.
type ConvertError struct {
	Output string
	Err    error
}

func (e *ConvertError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("ffmpeg: %v", e.Err)
	}
	return fmt.Sprintf("ffmpeg: %s: %v", out, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// FFmpegConverter shells out to ffmpeg to demux the audio track as WAV
// 16kHz mono (required by whisper).
type FFmpegConverter struct {
	bin string
}

func NewFFmpegConverter(bin string) *FFmpegConverter {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpegConverter{bin: bin}
}

func ffmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn", // no video
		"-acodec", "pcm_s16le",
		"-ar", "16000", // 16kHz
		"-ac", "1", // mono
		"-y", // overwrite
		outputPath,
	}
}

func (c *FFmpegConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, c.bin, ffmpegArgs(inputPath, outputPath)...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return &ConvertError{Output: string(output), Err: err}
	}
	return nil
}
