package media

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

const (
	wantSampleRate = 16000
	wantChannels   = 1
)

// wavDuration decodes the WAV header of a converted file, confirms the
// 16kHz mono format the engine expects, and returns the audio duration
// in seconds.
func wavDuration(path string) (float64, error) {
	fh, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer fh.Close()

	d := wav.NewDecoder(fh)
	if !d.IsValidFile() {
		return 0, fmt.Errorf("not a valid wav file: %s", path)
	}
	if d.SampleRate != wantSampleRate || d.NumChans != wantChannels {
		return 0, fmt.Errorf("unexpected format: %d Hz / %d channels (want %d Hz mono)",
			d.SampleRate, d.NumChans, wantSampleRate)
	}

	dur, err := d.Duration()
	if err != nil {
		return 0, fmt.Errorf("read duration: %w", err)
	}
	return dur.Seconds(), nil
}
