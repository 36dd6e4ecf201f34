// Copyright 2025 The Armada Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package armadalog provides JSON structured logging using zerolog.
package armadalog

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a narrow subset of zerolog.Logger's methods, which zerolog.Logger
// satisfies. Get and Component return zerolog.Logger itself, and the engine
// and CLI take zerolog.Logger values rather than this interface.
type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	With() zerolog.Context
}

// Config controls the global logger created by Init.
type Config struct {
	Level  string // trace, debug, info, warn, error (default: info)
	Debug  bool   // shorthand for Level=debug
	Output string // "stdout" (default) or "stderr"
}

//nolint:gochecknoglobals // process-wide logger singleton
var global zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	global = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init replaces the global logger according to cfg. Safe to call once at
// process start; later calls simply reconfigure the singleton.
func Init(cfg Config) error {
	var w io.Writer = os.Stdout
	if strings.EqualFold(cfg.Output, "stderr") {
		w = os.Stderr
	}

	level := zerolog.InfoLevel

	switch {
	case cfg.Debug:
		level = zerolog.DebugLevel
	case cfg.Level != "":
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}

		level = parsed
	}

	global = zerolog.New(w).With().Timestamp().Logger().Level(level)

	return nil
}

// Get returns the process-wide logger.
func Get() zerolog.Logger {
	return global
}

// Component returns a logger with a "component" field set, the way the
// teacher tags subsystems (scan, config, report, ...).
func Component(name string) zerolog.Logger {
	return global.With().Str("component", name).Logger()
}
