package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	WhisperURL        string
	FFmpegPath        string
	TmpDir            string
	MaxUploadMB       int64
	WhisperTimeoutMin int
	RateLimitPerMin   int
	CORSOrigins       []string
}

func Load() *Config {
	// Local development convenience; a missing .env is fine.
	godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	maxUpload, _ := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "512"), 10, 64)
	timeoutMin, _ := strconv.Atoi(getEnv("WHISPER_TIMEOUT_MIN", "30"))
	rateLimit, _ := strconv.Atoi(getEnv("RATE_LIMIT_PER_MIN", "10"))

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	return &Config{
		Port:              port,
		WhisperURL:        getEnv("WHISPER_URL", "http://localhost:9000"),
		FFmpegPath:        getEnv("FFMPEG_PATH", "ffmpeg"),
		TmpDir:            getEnv("TMP_DIR", os.TempDir()),
		MaxUploadMB:       maxUpload,
		WhisperTimeoutMin: timeoutMin,
		RateLimitPerMin:   rateLimit,
		CORSOrigins:       corsOrigins,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
