/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongorepo

import (
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// settings are shared by a Context and every Repo opened from it
type settings struct {
	logger    zerolog.Logger
	batchSize int32
	txOptions *options.TransactionOptions
}

// Option is a functional option for configuring contexts and repositories
type Option func(*settings)

func defaultSettings() settings {
	return settings{
		logger: zerolog.Nop(),
	}
}

func newSettings(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the logger used for transaction lifecycle and store failures
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithBatchSize sets the cursor batch size for find operations. Zero keeps the server default.
func WithBatchSize(size int32) Option {
	return func(s *settings) {
		if size >= 0 {
			s.batchSize = size
		}
	}
}

// WithTransactionOptions sets the read/write concern and read preference of started transactions
func WithTransactionOptions(opts *options.TransactionOptions) Option {
	return func(s *settings) {
		s.txOptions = opts
	}
}
