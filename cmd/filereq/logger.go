// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package main

import (
	"io"
	"log/slog"

	"github.com/woozymasta/filereq"
)

// newLogger creates a logger writing to outW. Unknown levels fall back to info,
// any format other than "json" uses the text handler.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

// loggingProbe records every probe at debug level.
type loggingProbe struct {
	next   filereq.Probe
	logger *slog.Logger
}

// Exists delegates to the wrapped probe.
func (p loggingProbe) Exists(path string) (bool, error) {
	exists, err := p.next.Exists(path)
	if err != nil {
		p.logger.Debug("probe failed", "path", path, "err", err)
		return exists, err
	}

	p.logger.Debug("probe", "path", path, "exists", exists)
	return exists, nil
}
