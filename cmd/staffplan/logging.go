package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/rpggio/staffplan/internal/config"
)

// newLogger builds the process logger. The returned func closes the log file,
// if any.
func newLogger(cfg config.Config) (*slog.Logger, func() error, error) {
	var w io.Writer = consoleWriter(cfg)
	closeFn := func() error { return nil }

	if cfg.Log.Path != "" {
		f, err := openCappedFile(cfg.Log.Path, maxLogSizeBytes, keepLogSizeBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return logger, closeFn, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// cappedFile is an append-only file that drops its oldest bytes once it
// grows past max, keeping the newest keep bytes.
type cappedFile struct {
	mu   sync.Mutex
	file *os.File
	max  int64
	keep int64
}

func openCappedFile(path string, maxSize, keepSize int64) (*cappedFile, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	c := &cappedFile{file: file, max: maxSize, keep: keepSize}
	if err := c.trim(); err != nil {
		file.Close()
		return nil, err
	}
	return c, nil
}

func (c *cappedFile) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, c.trim()
}

func (c *cappedFile) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file.Close()
}

func (c *cappedFile) trim() error {
	info, err := c.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= c.max {
		return nil
	}

	tail := make([]byte, c.keep)
	n, err := c.file.ReadAt(tail, size-c.keep)
	if err != nil && err != io.EOF {
		return err
	}
	if err := c.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND writes land at the new end after truncation.
	_, err = c.file.Write(tail[:n])
	return err
}
