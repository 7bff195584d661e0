// Package repository provides read access to the restaurants and dishes tables.
package repository

import "github.com/okian/foodie/pkg/logger"

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger sets the logger used for query diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *SQLiteStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReadOnly controls whether Open requests a read-only connection.
// Defaults to true; the service never writes.
func WithReadOnly(readOnly bool) Option {
	return func(s *SQLiteStore) {
		s.readOnly = readOnly
	}
}
