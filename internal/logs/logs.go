/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logs owns the process-wide zap logger.
package logs

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// EnvLogLevel overrides the default warn level (debug, info, warn, error).
	EnvLogLevel = "MUMBLELINK_LOG_LEVEL"
	// EnvName switches to the development encoder when set to "test".
	EnvName = "MUMBLELINK_ENV"

	// FieldComponent names the subsystem a log line comes from.
	FieldComponent = "component"
)

var (
	// Logger is the root logger. Packages should derive from it via Named.
	Logger *zap.Logger
	level  = zap.NewAtomicLevelAt(zapcore.WarnLevel)
)

func init() {
	if s := os.Getenv(EnvLogLevel); s != "" {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(s)); err == nil {
			level.SetLevel(l)
		}
	}

	var cfg zap.Config
	if IsTest() {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = level

	var err error
	Logger, err = cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
}

// IsTest reports whether the process runs with MUMBLELINK_ENV=test.
func IsTest() bool {
	return os.Getenv(EnvName) == "test"
}

// SetLevel changes the level of every logger derived from Logger.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

// Level returns the current level.
func Level() zapcore.Level {
	return level.Level()
}

// Named returns a child logger tagged with the component name.
func Named(component string) *zap.Logger {
	return Logger.With(zap.String(FieldComponent, component))
}

// OrNamed returns l, or a component logger when l is nil.
func OrNamed(l *zap.Logger, component string) *zap.Logger {
	if l != nil {
		return l
	}
	return Named(component)
}
