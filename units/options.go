// SPDX-License-Identifier: MIT

// Package units: functional configuration for System.
//
// Design goals:
//   - Deterministic behavior: tables are applied in the order given.
//   - Safe by construction: panic only on nonsensical values (programmer error).
package units

import (
	"bytes"
	"io"
	"log/slog"
	"os"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultUseBuiltinTable loads the embedded table before any user table.
	DefaultUseBuiltinTable = true

	// DefaultCacheSize bounds the number of parsed expressions kept per System.
	// Zero disables caching.
	DefaultCacheSize = 1024
)

const (
	panicNilLogger    = "units: WithLogger: logger must be non-nil"
	panicNilReader    = "units: WithTable: reader must be non-nil"
	panicNegativeSize = "units: WithCacheSize: size must be >= 0"
)

// Option configures a System.
type Option func(*options)

type options struct {
	builtin   bool
	tables    []func() (io.Reader, string, error) // opener, label
	logger    *slog.Logger
	cacheSize int
}

func defaultOptions() options {
	return options{
		builtin:   DefaultUseBuiltinTable,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		cacheSize: DefaultCacheSize,
	}
}

// WithLogger routes table-loading and cache diagnostics to logger (debug level).
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic(panicNilLogger)
	}

	return func(o *options) { o.logger = logger }
}

// WithTable adds a YAML table read from r after the tables already configured.
// The reader is consumed once, when the System is built.
func WithTable(r io.Reader) Option {
	if r == nil {
		panic(panicNilReader)
	}

	return func(o *options) {
		o.tables = append(o.tables, func() (io.Reader, string, error) { return r, "reader", nil })
	}
}

// WithTableData adds a YAML table held in memory.
func WithTableData(data []byte) Option {
	buf := append([]byte(nil), data...)

	return func(o *options) {
		o.tables = append(o.tables, func() (io.Reader, string, error) {
			return bytes.NewReader(buf), "data", nil
		})
	}
}

// WithTableFile adds a YAML table read from path when the System is built.
func WithTableFile(path string) Option {
	return func(o *options) {
		o.tables = append(o.tables, func() (io.Reader, string, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, path, err
			}
			return bytes.NewReader(data), path, nil
		})
	}
}

// WithoutBuiltinTable starts from an empty registry; only user tables apply.
func WithoutBuiltinTable() Option {
	return func(o *options) { o.builtin = false }
}

// WithCacheSize bounds the parse cache; zero disables it.
func WithCacheSize(n int) Option {
	if n < 0 {
		panic(panicNegativeSize)
	}

	return func(o *options) { o.cacheSize = n }
}
