package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

type Options struct {
	DbPath   string `json:"db_path"`
	PoolSize int    `json:"pool_size"`
	Records  int    `json:"records"`
	LogLevel string `json:"log_level"`
}

func DefaultOptions() Options {
	return Options{
		DbPath:   "pagebuf.db",
		PoolSize: 16,
		Records:  64,
		LogLevel: "INFO",
	}
}

// loadOptions overlays the JSON config at path, if given, onto the defaults.
func loadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return opts, fmt.Errorf("error opening config %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&opts); err != nil {
		return opts, fmt.Errorf("error decoding config %s: %w", path, err)
	}

	return opts, nil
}

func initLogger(w io.Writer, logLevel string) {
	level := slog.LevelInfo
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		slog.Warn("unknown log level, using INFO", "level", logLevel)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
