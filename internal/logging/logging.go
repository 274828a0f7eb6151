//
// corvid - UCI chess engine
//
// MIT License
//
// Copyright (c) 2020-2026 corvid contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package logging wires up the process-wide op/go-logging backends: an
// append-mode file handler at DEBUG (the file is never rotated) and a
// leveled stdout handler whose level is
// controlled from config. Every other package asks for its own named logger
// via GetLog so log lines can be filtered per subsystem.
package logging

import (
	"os"

	"github.com/op/go-logging"
)

var (
	stdoutBackend logging.Backend
	fileBackend   logging.Backend
	logFile       *os.File
	initialized   bool
)

const logFormat = `%{time:2006-01-02 15:04:05.000} %{level:-8s} %{module:-14s} %{message}`

// Setup wires the stdout backend at the given level and, when logDir is
// set, an append-mode file backend at DEBUG. Safe
// to call more than once; only the first call takes effect. Called from
// config.Setup so every named logger created afterwards inherits it.
func Setup(level logging.Level, logDir string) {
	if initialized {
		return
	}
	format := logging.MustStringFormatter(logFormat)

	stdoutBackend = logging.NewLogBackend(os.Stdout, "", 0)
	stdoutFormatted := logging.NewBackendFormatter(stdoutBackend, format)
	stdoutLeveled := logging.AddModuleLevel(stdoutFormatted)
	stdoutLeveled.SetLevel(level, "")

	backends := []logging.Backend{stdoutLeveled}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err == nil {
			if f, err := os.OpenFile(logDir+"/corvid.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
				logFile = f
				fileBackend = logging.NewLogBackend(f, "", 0)
				fileFormatted := logging.NewBackendFormatter(fileBackend, format)
				fileLeveled := logging.AddModuleLevel(fileFormatted)
				fileLeveled.SetLevel(logging.DEBUG, "")
				backends = append(backends, fileLeveled)
			}
		}
	}

	logging.SetBackend(backends...)
	initialized = true
}

// GetLog returns the named logger for module, initializing the default
// stdout-only backend at INFO if Setup has not been called yet (e.g. in
// unit tests that construct a package directly).
func GetLog(module string) *logging.Logger {
	if !initialized {
		Setup(logging.INFO, "")
	}
	return logging.MustGetLogger(module)
}

// Close closes the log file, if one was opened.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

// SetLevel changes the level of the named module at runtime on go-logging's
// combined backend, so it gates the file backend as well as stdout.
func SetLevel(level logging.Level, module string) {
	logging.SetLevel(level, module)
}

// LevelFromInt maps the 1..7 integer scale used by corvid's config file
// onto go-logging's Level enum.
func LevelFromInt(n int) logging.Level {
	switch {
	case n <= 1:
		return logging.CRITICAL
	case n == 2:
		return logging.ERROR
	case n == 3:
		return logging.WARNING
	case n == 4:
		return logging.NOTICE
	case n == 5:
		return logging.INFO
	default:
		return logging.DEBUG
	}
}
