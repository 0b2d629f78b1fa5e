/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package repository

import (
	"github.com/suparena/docrepo/errors"
)

// CheckWindow validates a page window before any store call. It reports
// whether the window can contain anything: a zero limit is a valid, empty page.
func CheckWindow(offset, limit int) (bool, error) {
	if offset < 0 {
		return false, errors.NewValidationError("offset", "must not be negative")
	}
	if limit < 0 {
		return false, errors.NewValidationError("limit", "must not be negative")
	}
	return limit > 0, nil
}

// PageOffset converts a 1-based page number and page size into an offset.
// Page numbers below 1 are treated as 1.
func PageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
