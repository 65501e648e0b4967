package transcribe

// ModelInfo describes a selectable model size for the frontend.
type ModelInfo struct {
	Name       string `json:"name"`
	Parameters string `json:"parameters"`
	RAM        string `json:"ram"` // approximate memory required to load
}

// Models lists the selectable model sizes, smallest first.
// The RAM figures are the upstream whisper recommendations and drive the
// "pick a smaller model" suggestion on load failures.
func Models() []ModelInfo {
	return []ModelInfo{
		{Name: "tiny", Parameters: "39M", RAM: "~1 GB"},
		{Name: "base", Parameters: "74M", RAM: "~1 GB"},
		{Name: "small", Parameters: "244M", RAM: "~2 GB"},
		{Name: "medium", Parameters: "769M", RAM: "~5 GB"},
		{Name: "large", Parameters: "1550M", RAM: "~10 GB"},
	}
}

// SmallerModel returns the next size down, or "" if already at tiny.
func SmallerModel(name string) string {
	models := Models()
	for i := 1; i < len(models); i++ {
		if models[i].Name == name {
			return models[i-1].Name
		}
	}
	return ""
}

// LanguageInfo maps a display name to the code sent to the engine.
type LanguageInfo struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// languages is the dropdown catalog. "Auto detect" maps to the empty
// code, which tells the engine to run language detection.
var languages = []LanguageInfo{
	{Name: "Auto detect", Code: ""},
	{Name: "English", Code: "en"},
	{Name: "Chinese", Code: "zh"},
	{Name: "German", Code: "de"},
	{Name: "Spanish", Code: "es"},
	{Name: "Russian", Code: "ru"},
	{Name: "Korean", Code: "ko"},
	{Name: "French", Code: "fr"},
	{Name: "Japanese", Code: "ja"},
	{Name: "Portuguese", Code: "pt"},
	{Name: "Turkish", Code: "tr"},
	{Name: "Polish", Code: "pl"},
	{Name: "Catalan", Code: "ca"},
	{Name: "Dutch", Code: "nl"},
	{Name: "Arabic", Code: "ar"},
	{Name: "Swedish", Code: "sv"},
	{Name: "Italian", Code: "it"},
	{Name: "Indonesian", Code: "id"},
	{Name: "Hindi", Code: "hi"},
	{Name: "Finnish", Code: "fi"},
	{Name: "Vietnamese", Code: "vi"},
	{Name: "Ukrainian", Code: "uk"},
	{Name: "Greek", Code: "el"},
	{Name: "Czech", Code: "cs"},
	{Name: "Danish", Code: "da"},
	{Name: "Norwegian", Code: "no"},
	{Name: "Thai", Code: "th"},
	{Name: "Hebrew", Code: "he"},
	{Name: "Hungarian", Code: "hu"},
	{Name: "Romanian", Code: "ro"},
}

// Languages returns the dropdown catalog in display order.
func Languages() []LanguageInfo {
	out := make([]LanguageInfo, len(languages))
	copy(out, languages)
	return out
}

// LanguageCode resolves a display name to its code. Unknown names
// resolve to auto-detect.
func LanguageCode(name string) string {
	for _, l := range languages {
		if l.Name == name {
			return l.Code
		}
	}
	return ""
}

func validLanguage(code string) bool {
	if code == "" || code == "auto" {
		return true
	}
	for _, l := range languages {
		if l.Code == code {
			return true
		}
	}
	return false
}
