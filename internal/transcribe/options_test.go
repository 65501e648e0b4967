package transcribe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsAreValid(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())
}

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{"valid translate", func(o *Options) { o.Task = TaskTranslate }, ""},
		{"valid large model", func(o *Options) { o.Model = "large" }, ""},
		{"valid language", func(o *Options) { o.Language = "ko" }, ""},
		{"auto language", func(o *Options) { o.Language = "auto" }, ""},
		{"valid sampling", func(o *Options) { o.Temperature = 0.8; o.BestOf = 5 }, ""},
		{"valid chunk hint", func(o *Options) { o.ChunkMinutes = 10 }, ""},
		{"unknown task", func(o *Options) { o.Task = "summarize" }, "invalid task"},
		{"unknown model", func(o *Options) { o.Model = "huge" }, "invalid model"},
		{"unknown language", func(o *Options) { o.Language = "xx" }, "invalid language"},
		{"temperature too high", func(o *Options) { o.Temperature = 1.5 }, "invalid temperature"},
		{"temperature negative", func(o *Options) { o.Temperature = -0.1 }, "invalid temperature"},
		{"best_of zero", func(o *Options) { o.BestOf = 0 }, "invalid bestof"},
		{"best_of too high", func(o *Options) { o.BestOf = 9 }, "invalid bestof"},
		{"chunk hint out of range", func(o *Options) { o.ChunkMinutes = 90 }, "invalid chunkminutes"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			opts := DefaultOptions()
			c.mutate(&opts)
			err := opts.Validate()
			if c.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), c.wantErr)
			}
		})
	}
}

func TestModelCatalog(t *testing.T) {
	models := Models()
	require.Len(t, models, 5)
	assert.Equal(t, "tiny", models[0].Name)
	assert.Equal(t, "large", models[4].Name)
}

func TestSmallerModel(t *testing.T) {
	assert.Equal(t, "medium", SmallerModel("large"))
	assert.Equal(t, "tiny", SmallerModel("base"))
	assert.Equal(t, "", SmallerModel("tiny"))
	assert.Equal(t, "", SmallerModel("bogus"))
}

func TestLanguageCode(t *testing.T) {
	assert.Equal(t, "en", LanguageCode("English"))
	assert.Equal(t, "", LanguageCode("Auto detect"))
	assert.Equal(t, "", LanguageCode("Klingon"))
}

func TestLanguagesCopy(t *testing.T) {
	langs := Languages()
	require.NotEmpty(t, langs)
	langs[0].Name = "mutated"
	assert.Equal(t, "Auto detect", Languages()[0].Name)
}
