/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddbrepo

import (
	"github.com/rs/zerolog"
)

type settings struct {
	logger         zerolog.Logger
	pageSize       int32
	consistentRead bool
}

// Option is a functional option for configuring a Repo
type Option func(*settings)

func defaultSettings() settings {
	return settings{
		logger:         zerolog.Nop(),
		pageSize:       100,
		consistentRead: true,
	}
}

// WithLogger sets the logger used for store failures
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithPageSize sets the number of items evaluated per scan page
func WithPageSize(size int32) Option {
	return func(s *settings) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithConsistentRead toggles strongly consistent reads. They are on by default.
func WithConsistentRead(enabled bool) Option {
	return func(s *settings) {
		s.consistentRead = enabled
	}
}
