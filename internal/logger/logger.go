// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// the http log channel, rotating file sinks and context-aware helpers used
// throughout the request pipeline.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
// Records of the http channel, which ranks between info and warn, are
// emitted with [Logger.HTTP]. Application code should pass *Logger by
// pointer and obtain request-scoped loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-request-pipeline/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// LevelHTTP is the level name written by the http channel.
	LevelHTTP = "http"

	// RequestIDField is the field carrying the correlation id on
	// request-scoped loggers.
	RequestIDField = "requestId"

	// MetadataField holds the record-specific fields of the request
	// pipeline records.
	MetadataField = "metadata"

	// TimestampField is the field carrying the time a record was emitted,
	// formatted with TimestampFormat.
	TimestampField  = "timestamp"
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

	consoleTimeFormat = "2006-01-02 15:04:05"

	combinedLogFile = "combined.log"
	errorLogFile    = "error.log"
	httpLogFile     = "http.log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API; the http field is a
// second zerolog.Logger that feeds the http channel.
type Logger struct {
	zerolog.Logger

	http    zerolog.Logger
	closers []io.Closer
}

// NewLogger constructs a *Logger for the given role label (e.g. "server").
//
// The logger is configured with:
//   - minimum level debug, or info when env is "production";
//   - a "role" field and a "timestamp" field on every record;
//   - a console sink on os.Stdout;
//   - when cfg.Dir is set, three rotating files in that directory:
//     combined.log (every record), error.log (error only) and http.log
//     (the http channel plus warn and above).
//
// If the log directory cannot be created the logger falls back to the
// console and reports the problem as its first record.
func NewLogger(role string, cfg config.Log, env string) *Logger {
	level := LevelForEnv(env)
	console := zerolog.ConsoleWriter{
		Out:                   os.Stdout,
		NoColor:               cfg.NoColor,
		PartsOrder:            []string{TimestampField, zerolog.LevelFieldName, zerolog.MessageFieldName},
		FieldsExclude:         []string{TimestampField},
		FormatLevel:           formatConsoleLevel,
		FormatPartValueByName: formatConsolePart,
	}

	mainWriters := []io.Writer{console}
	httpWriters := []io.Writer{console}
	var closers []io.Closer
	var dirErr error

	if cfg.Dir != "" {
		if dirErr = os.MkdirAll(cfg.Dir, 0o755); dirErr == nil {
			combined := rotatingFile(cfg, combinedLogFile)
			errorLog := rotatingFile(cfg, errorLogFile)
			httpLog := rotatingFile(cfg, httpLogFile)
			closers = append(closers, combined, errorLog, httpLog)

			mainWriters = append(mainWriters,
				combined,
				&zerolog.FilteredLevelWriter{Writer: zerolog.LevelWriterAdapter{Writer: errorLog}, Level: zerolog.ErrorLevel},
				&zerolog.FilteredLevelWriter{Writer: zerolog.LevelWriterAdapter{Writer: httpLog}, Level: zerolog.WarnLevel},
			)
			httpWriters = append(httpWriters, combined, httpLog)
		}
	}

	l := newLogger(role, level, zerolog.MultiLevelWriter(mainWriters...), zerolog.MultiLevelWriter(httpWriters...))
	l.closers = closers

	if dirErr != nil {
		l.Warn().Err(dirErr).Str("dir", cfg.Dir).Msg("log directory unavailable, logging to console only")
	}

	return l
}

// NewWithWriter returns a logger writing JSON records of both channels to w.
// It is used by tests and by tools that want machine-readable output.
func NewWithWriter(role string, w io.Writer, level zerolog.Level) *Logger {
	return newLogger(role, level, w, w)
}

func newLogger(role string, level zerolog.Level, main, httpOut io.Writer) *Logger {
	httpLevel := zerolog.InfoLevel
	if level > zerolog.InfoLevel {
		httpLevel = zerolog.Disabled
	}

	return &Logger{
		Logger: zerolog.New(main).Level(level).Hook(timestampHook).With().
			Str("role", role).
			Logger(),
		http: zerolog.New(httpOut).Level(httpLevel).Hook(timestampHook).With().
			Str("role", role).
			Logger(),
	}
}

// timestampHook stamps each record when it is written. The zerolog globals
// naming the time field are left alone.
var timestampHook = zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(TimestampField, time.Now().Format(TimestampFormat))
})

// LevelForEnv returns the minimum level for a deployment environment.
func LevelForEnv(env string) zerolog.Level {
	if strings.EqualFold(env, config.EnvProduction) {
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop(), http: zerolog.Nop()}
}

// HTTP starts a record on the http channel. The returned event is nil, and
// all calls on it are no-ops, when the channel is disabled.
func (l *Logger) HTTP() *zerolog.Event {
	return l.http.Log().Str(zerolog.LevelFieldName, LevelHTTP)
}

// WithRequestID returns a child logger whose records of both channels carry
// the correlation id. The receiver is not modified.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With().Str(RequestIDField, requestID).Logger(),
		http:   l.http.With().Str(RequestIDField, requestID).Logger(),
	}
}

// Close flushes and closes the rotating log files. Closing a console-only
// logger is a no-op.
func (l *Logger) Close() error {
	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.closers = nil
	return errors.Join(errs...)
}

type ctxKey struct{}

// WithContext returns a copy of ctx carrying l. The embedded zerolog logger is
// stored as well, so zerolog's log.Ctx keeps working for library code.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	ctx = l.Logger.WithContext(ctx)
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx by WithContext.
// If no logger has been attached, a no-op logger is returned, so this
// function never returns nil.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
		return l
	}
	return Nop()
}

// FromRequest is FromContext applied to the request's context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

func rotatingFile(cfg config.Log, name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, name),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.CompressEnabled(),
		LocalTime:  true,
	}
}

func formatConsolePart(v any, name string) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	if name != TimestampField {
		return s
	}
	ts, err := time.Parse(TimestampFormat, s)
	if err != nil {
		return s
	}
	return ts.Local().Format(consoleTimeFormat)
}

func formatConsoleLevel(i any) string {
	level, ok := i.(string)
	if !ok {
		return "?????"
	}
	return fmt.Sprintf("%-5s", strings.ToUpper(level))
}
