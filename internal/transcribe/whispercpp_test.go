package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAudioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF fake audio"), 0600))
	return path
}

const verboseJSONBody = `{
	"text": " Hello world",
	"language": "en",
	"duration": 3.0,
	"segments": [
		{"start": 0.0, "end": 1.5, "text": " Hello", "avg_logprob": -0.21},
		{"start": 1.5, "end": 3.0, "text": " world", "avg_logprob": -0.34}
	]
}`

func TestWhisperCppTranscribe(t *testing.T) {
	var gotPath string
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotForm = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotForm[k] = v[0]
		}
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "audio.wav", hdr.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(verboseJSONBody))
	}))
	defer srv.Close()

	c := NewWhisperCppClient(srv.URL, time.Minute)
	res, err := c.Transcribe(context.Background(), Request{
		AudioPath: writeAudioFixture(t),
		Options:   DefaultOptions(),
	})
	require.NoError(t, err)

	assert.Equal(t, "/inference", gotPath)
	assert.Equal(t, "verbose_json", gotForm["response_format"])
	assert.Equal(t, "tiny", gotForm["model"])
	assert.Equal(t, "0.0", gotForm["temperature"])
	// auto-detect: no language field; greedy decoding: no best_of
	assert.NotContains(t, gotForm, "language")
	assert.NotContains(t, gotForm, "best_of")
	assert.NotContains(t, gotForm, "translate")

	assert.Equal(t, " Hello world", res.Text)
	assert.Equal(t, "en", res.Language)
	assert.Equal(t, 3.0, res.Duration)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, 0.0, res.Segments[0].Start)
	assert.Equal(t, 1.5, res.Segments[0].End)
	assert.Equal(t, " Hello", res.Segments[0].Text)
	assert.InDelta(t, -0.21, res.Segments[0].AvgLogprob, 1e-9)
}

func TestWhisperCppForwardsSamplingOptions(t *testing.T) {
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotForm = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotForm[k] = v[0]
		}
		w.Write([]byte(verboseJSONBody))
	}))
	defer srv.Close()

	opts := DefaultOptions()
	opts.Task = TaskTranslate
	opts.Language = "ja"
	opts.Model = "medium"
	opts.Temperature = 0.7
	opts.BestOf = 3

	c := NewWhisperCppClient(srv.URL, time.Minute)
	_, err := c.Transcribe(context.Background(), Request{
		AudioPath: writeAudioFixture(t),
		Options:   opts,
	})
	require.NoError(t, err)

	assert.Equal(t, "medium", gotForm["model"])
	assert.Equal(t, "0.7", gotForm["temperature"])
	assert.Equal(t, "3", gotForm["best_of"])
	assert.Equal(t, "true", gotForm["translate"])
	assert.Equal(t, "ja", gotForm["language"])
}

func TestWhisperCppModelLoadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("ggml_backend_alloc: failed to allocate buffer: out of memory"))
	}))
	defer srv.Close()

	c := NewWhisperCppClient(srv.URL, time.Minute)
	opts := DefaultOptions()
	opts.Model = "large"
	_, err := c.Transcribe(context.Background(), Request{
		AudioPath: writeAudioFixture(t),
		Options:   opts,
	})
	require.Error(t, err)

	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, KindModelLoad, engErr.Kind)
	assert.Contains(t, engErr.Message, "large")
}

func TestWhisperCppServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("no audio data"))
	}))
	defer srv.Close()

	c := NewWhisperCppClient(srv.URL, time.Minute)
	_, err := c.Transcribe(context.Background(), Request{
		AudioPath: writeAudioFixture(t),
		Options:   DefaultOptions(),
	})
	require.Error(t, err)

	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, KindTranscription, engErr.Kind)
	assert.Contains(t, engErr.Message, "status 400")
}

func TestWhisperCppErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "failed to decode audio"}`))
	}))
	defer srv.Close()

	c := NewWhisperCppClient(srv.URL, time.Minute)
	_, err := c.Transcribe(context.Background(), Request{
		AudioPath: writeAudioFixture(t),
		Options:   DefaultOptions(),
	})
	require.Error(t, err)

	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, KindTranscription, engErr.Kind)
	assert.Contains(t, engErr.Message, "failed to decode audio")
}

func TestWhisperCppMissingAudioFile(t *testing.T) {
	c := NewWhisperCppClient("http://localhost:1", time.Minute)
	_, err := c.Transcribe(context.Background(), Request{
		AudioPath: "/nonexistent/audio.wav",
		Options:   DefaultOptions(),
	})
	require.Error(t, err)

	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, KindTranscription, engErr.Kind)
}
