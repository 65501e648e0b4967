package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/whisper-web/backend/internal/transcribe"
)

// Text returns the result's full text byte-for-byte.
func Text(res *transcribe.Result) string {
	return res.Text
}

// SRT serializes the segments as SubRip: 1-based index, comma-separated
// millisecond timestamps, blank line between blocks. An empty segment
// list yields an empty document.
func SRT(res *transcribe.Result) string {
	var sb strings.Builder
	for i, seg := range res.Segments {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatTimestamp(seg.Start, ','), formatTimestamp(seg.End, ',')))
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// VTT serializes the segments as WebVTT (dot-separated milliseconds).
func VTT(res *transcribe.Result) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for i, seg := range res.Segments {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatTimestamp(seg.Start, '.'), formatTimestamp(seg.End, '.')))
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// formatTimestamp converts float seconds to HH:MM:SS<sep>mmm without
// discarding sub-second precision.
func formatTimestamp(seconds float64, sep byte) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int(math.Round(seconds * 1000))

	h := totalMs / 3600000
	totalMs %= 3600000
	m := totalMs / 60000
	totalMs %= 60000
	s := totalMs / 1000
	ms := totalMs % 1000

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", h, m, s, sep, ms)
}
