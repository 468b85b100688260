// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

// Package log wraps logrus behind the small leveled interface the rest of
// this module depends on, so that a caller of classfile can inject their
// own logger (or silence logging entirely) without the core decoder
// importing a concrete logging library.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level is a logging severity, ordered least to most severe.
type Level int

// The severities the decoder emits at.
const (
	LevelDebug Level = iota
	LevelWarn
	LevelError
)

// Logger is the minimal leveled logging interface classfile depends on.
// NewStdLogger adapts a *logrus.Logger to it.
type Logger interface {
	Log(level Level, args ...any)
}

// logrusLogger adapts a *logrus.Logger to Logger.
type logrusLogger struct {
	entry *logrus.Logger
}

// NewStdLogger returns a Logger backed by logrus, writing to w.
func NewStdLogger(w io.Writer) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &logrusLogger{entry: l}
}

func (l *logrusLogger) Log(level Level, args ...any) {
	switch level {
	case LevelDebug:
		l.entry.Debug(args...)
	case LevelWarn:
		l.entry.Warn(args...)
	case LevelError:
		l.entry.Error(args...)
	}
}

// filterLogger drops entries below a minimum level before they reach the
// wrapped Logger.
type filterLogger struct {
	next Logger
	min  Level
}

// FilterOption configures a filterLogger built by NewFilter.
type FilterOption func(*filterLogger)

// FilterLevel sets the minimum level that passes the filter.
func FilterLevel(min Level) FilterOption {
	return func(f *filterLogger) { f.min = min }
}

// NewFilter wraps next with a minimum-severity filter.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filterLogger{next: next, min: LevelWarn}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filterLogger) Log(level Level, args ...any) {
	if level < f.min {
		return
	}
	f.next.Log(level, args...)
}

// Helper is a leveled, printf-style convenience wrapper around a Logger,
// mirroring the shape classfile.Options.Logger consumers are expected to
// use (file.logger.Errorf(...), .Warnf(...), .Debugf(...)).
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in printf-style convenience methods.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) Debugf(format string, args ...any) { h.logf(LevelDebug, format, args...) }
func (h *Helper) Warnf(format string, args ...any)  { h.logf(LevelWarn, format, args...) }
func (h *Helper) Errorf(format string, args ...any) { h.logf(LevelError, format, args...) }

func (h *Helper) logf(level Level, format string, args ...any) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(level, sprintf(format, args...))
}

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// Default returns the package default: warnings and errors to stderr.
func Default() *Helper {
	return NewHelper(NewFilter(NewStdLogger(os.Stderr), FilterLevel(LevelWarn)))
}
