package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const rotateStamp = "20060102-150405"

// setupLogging opens the log file for a slog text handler and makes it the default logger
// The file is truncated on start. One already larger than maxSize is first
// renamed to <name>.<timestamp>.log so a long session survives a restart.
func setupLogging(path string, maxSize int64, level slog.Level) (*os.File, *slog.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil && maxSize > 0 && info.Size() > maxSize {
		base := strings.TrimSuffix(path, filepath.Ext(path))
		rotated := fmt.Sprintf("%s.%s.log", base, time.Now().Format(rotateStamp))
		if err := os.Rename(path, rotated); err != nil {
			return nil, nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	// Stray log.Printf calls must not reach the terminal
	slog.SetDefault(logger)
	return f, logger, nil
}
