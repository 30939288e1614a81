/*
NAME
  alog.go

DESCRIPTION
  alog provides the leveled logging interface used throughout av1enc,
  in the shape of revid.Logger: a Log method taking a level and
  key/value-ish params, plus per-level convenience wrappers. The
  default implementation backs onto a rotating file via lumberjack,
  matching the teacher's cmd/rv and cmd/looper wiring.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package alog provides the av1enc leveled logger.
package alog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level mirrors the teacher's logging level scheme (logging.Debug ..
// logging.Fatal in ausocean/utils/logging).
type Level int8

const (
	Debug Level = iota
	Info
	Warning
	Error
	Fatal
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger is the interface encoder components log through. It matches
// revid.Logger's shape so that a caller embedding av1enc into a larger
// pipeline can pass their own implementation straight through.
type Logger interface {
	SetLevel(Level)
	Log(level Level, message string, params ...interface{})
	Debug(message string, params ...interface{})
	Info(message string, params ...interface{})
	Warning(message string, params ...interface{})
	Error(message string, params ...interface{})
}

// FileLogger is the default Logger, writing level-tagged lines to a
// rotating file via lumberjack and, optionally, to an additional writer
// (e.g. os.Stderr) for interactive use.
type FileLogger struct {
	mu     sync.Mutex
	level  Level
	file   *lumberjack.Logger
	also   io.Writer
	logger *log.Logger
}

// New returns a FileLogger rotating into path (maxSizeMB per file, up to
// maxBackups old files kept). If also is non-nil, every line is written
// there too (e.g. os.Stderr for a CLI).
func New(path string, maxSizeMB, maxBackups int, also io.Writer) *FileLogger {
	fl := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}
	f := &FileLogger{level: Info, file: fl, also: also}
	f.logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	return f
}

// Write implements io.Writer so FileLogger can back its own *log.Logger;
// it fans out to the lumberjack file and the optional secondary sink.
func (f *FileLogger) Write(p []byte) (int, error) {
	if _, err := f.file.Write(p); err != nil {
		return 0, err
	}
	if f.also != nil {
		f.also.Write(p)
	}
	return len(p), nil
}

func (f *FileLogger) SetLevel(l Level) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.level = l
}

func (f *FileLogger) Log(level Level, message string, params ...interface{}) {
	f.mu.Lock()
	lvl := f.level
	f.mu.Unlock()
	if level < lvl {
		return
	}
	f.logger.Print(format(level, message, params...))
}

func (f *FileLogger) Debug(m string, p ...interface{})   { f.Log(Debug, m, p...) }
func (f *FileLogger) Info(m string, p ...interface{})    { f.Log(Info, m, p...) }
func (f *FileLogger) Warning(m string, p ...interface{}) { f.Log(Warning, m, p...) }
func (f *FileLogger) Error(m string, p ...interface{})   { f.Log(Error, m, p...) }

func format(level Level, message string, params ...interface{}) string {
	s := fmt.Sprintf("[%s] %s", level, message)
	for i := 0; i+1 < len(params); i += 2 {
		s += fmt.Sprintf(" %v=%v", params[i], params[i+1])
	}
	return s
}

// Discard is a Logger that drops every message; useful as a default when
// a caller does not supply one.
var Discard Logger = discard{}

type discard struct{}

func (discard) SetLevel(Level)                     {}
func (discard) Log(Level, string, ...interface{})  {}
func (discard) Debug(string, ...interface{})       {}
func (discard) Info(string, ...interface{})        {}
func (discard) Warning(string, ...interface{})     {}
func (discard) Error(string, ...interface{})       {}

// Stderr is a convenience sink for cmd/av1enc: New(path, sizeMB, backups, alog.Stderr).
var Stderr io.Writer = os.Stderr
