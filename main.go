package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/whisper-web/backend/internal/api"
	"github.com/whisper-web/backend/internal/config"
	"github.com/whisper-web/backend/internal/media"
	"github.com/whisper-web/backend/internal/transcribe"
)

func main() {
	cfg := config.Load()

	// Ensure the transient-file directory exists
	os.MkdirAll(cfg.TmpDir, 0755)

	// Media normalizer with the real ffmpeg converter
	converter := media.NewFFmpegConverter(cfg.FFmpegPath)
	normalizer := media.NewNormalizer(cfg.TmpDir, converter)

	// Transcription engine
	engine := transcribe.NewWhisperCppClient(cfg.WhisperURL, time.Duration(cfg.WhisperTimeoutMin)*time.Minute)
	log.Printf("[whisper] using %s engine at %s", engine.Name(), cfg.WhisperURL)

	// Create router
	router := api.NewRouter(cfg, normalizer, engine)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Transient files: %s", cfg.TmpDir)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
