package media

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned before any file is written or process
// spawned when the upload's extension is neither audio nor video.
var ErrUnsupportedType = fmt.Errorf("unsupported file type")

// audioExts are passed through unchanged; the transcription engine does
// its own decoding for these.
var audioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
	".aac":  true,
	".opus": true,
	".wma":  true,
}

// videoExts require audio extraction before transcription.
var videoExts = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".ts":   true,
	".m4v":  true,
	".flv":  true,
	".wmv":  true,
	".mpg":  true,
	".mpeg": true,
}

// Converter extracts the audio track of a video container into a mono
// 16kHz signed 16-bit PCM WAV file at outputPath.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string) error
}

// Normalized is the outcome of normalizing one upload. Close removes
// every transient file the normalization created and must be called on
// every path once transcription is done with AudioPath.
type Normalized struct {
	ID        string  // invocation id, also used in transient file names
	AudioPath string  // file the engine should read
	Converted bool    // true when a video track was extracted
	Duration  float64 // audio duration in seconds, 0 if unknown

	files []string
}

// Close deletes all transient files. Safe to call more than once.
func (n *Normalized) Close() {
	for _, f := range n.files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			log.Printf("[media] failed to remove transient file %s: %v", f, err)
		}
	}
	n.files = nil
}

// Normalizer turns uploaded blobs into audio files the transcription
// engine can consume.
type Normalizer struct {
	tmpDir    string
	converter Converter
}

func NewNormalizer(tmpDir string, converter Converter) *Normalizer {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Normalizer{tmpDir: tmpDir, converter: converter}
}

// Normalize writes the blob to a uniquely named transient file and, for
// video containers, extracts the audio track. The extension check
// happens before anything touches the filesystem. On error no transient
// files are left behind.
func (n *Normalizer) Normalize(ctx context.Context, blob []byte, filename string) (*Normalized, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	isAudio := audioExts[ext]
	isVideo := videoExts[ext]
	if !isAudio && !isVideo {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	id := uuid.New().String()
	uploadPath := filepath.Join(n.tmpDir, "upload-"+id+ext)
	if err := os.WriteFile(uploadPath, blob, 0600); err != nil {
		os.Remove(uploadPath)
		return nil, fmt.Errorf("write upload: %w", err)
	}

	norm := &Normalized{
		ID:        id,
		AudioPath: uploadPath,
		files:     []string{uploadPath},
	}

	if isAudio {
		// Pass through byte-identical; duration is best-effort.
		if d, err := probeDuration(ctx, uploadPath); err == nil {
			norm.Duration = d
		}
		return norm, nil
	}

	audioPath := filepath.Join(n.tmpDir, "audio-"+id+".wav")
	log.Printf("[media] extracting audio track: %s -> %s", filename, filepath.Base(audioPath))
	if err := n.converter.Convert(ctx, uploadPath, audioPath); err != nil {
		os.Remove(audioPath)
		norm.Close()
		return nil, err
	}
	norm.AudioPath = audioPath
	norm.Converted = true
	norm.files = append(norm.files, audioPath)

	// Sanity-check what the converter produced.
	d, err := wavDuration(audioPath)
	if err != nil {
		log.Printf("[media] converted output check failed: %v", err)
		return norm, nil
	}
	norm.Duration = d

	return norm, nil
}
