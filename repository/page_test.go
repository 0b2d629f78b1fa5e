/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package repository

import (
	"testing"

	"github.com/suparena/docrepo/errors"
)

func TestCheckWindow(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		limit    int
		nonEmpty bool
		invalid  bool
	}{
		{name: "first page", offset: 0, limit: 10, nonEmpty: true},
		{name: "past the end is still valid", offset: 1000, limit: 10, nonEmpty: true},
		{name: "zero limit", offset: 0, limit: 0},
		{name: "negative offset", offset: -1, limit: 10, invalid: true},
		{name: "negative limit", offset: 0, limit: -5, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nonEmpty, err := CheckWindow(tt.offset, tt.limit)
			if tt.invalid {
				if !errors.IsValidationError(err) {
					t.Fatalf("Expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if nonEmpty != tt.nonEmpty {
				t.Fatalf("Expected nonEmpty=%v, got %v", tt.nonEmpty, nonEmpty)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	if got := PageOffset(1, 25); got != 0 {
		t.Fatalf("Expected 0, got %d", got)
	}
	if got := PageOffset(3, 25); got != 50 {
		t.Fatalf("Expected 50, got %d", got)
	}
	if got := PageOffset(0, 25); got != 0 {
		t.Fatalf("Page numbers below 1 should clamp, got %d", got)
	}
}
