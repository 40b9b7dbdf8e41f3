package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	logFileName = "vi-timer.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging routes logs to dir/vi-timer.log in debug mode and discards
// them otherwise, so nothing is written over the timer display
// The returned file is nil when logging is disabled
func setupLogging(debug bool, dir string) (*os.File, *slog.Logger) {
	if !debug {
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		log.SetOutput(io.Discard)
		return nil, logger
	}

	logFile, err := openLogFile(dir)
	if err != nil {
		// Logging is best effort; the timer still runs
		fmt.Fprintf(os.Stderr, "vi-timer: logging disabled: %v\n", err)
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		log.SetOutput(io.Discard)
		return nil, logger
	}

	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(handler).With(slog.String("session", uuid.NewString()))

	// SetDefault also redirects the log package; point it back at the file
	slog.SetDefault(logger)
	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	return logFile, logger
}

// openLogFile creates dir and opens the log for append, rotating it first
// when it has grown past maxLogSize
func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(dir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("vi-timer-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			return nil, err
		}
	}

	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
