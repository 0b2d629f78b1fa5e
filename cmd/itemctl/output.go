/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/suparena/docrepo/errors"
)

// Exit codes
const (
	exitOK       = 0
	exitFailure  = 1
	exitInput    = 2
	exitNotFound = 3
	exitStore    = 4
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.IsNotFound(err):
		return exitNotFound
	case errors.IsValidationError(err):
		return exitInput
	case errors.IsStoreError(err):
		return exitStore
	default:
		return exitFailure
	}
}

// describeError prefixes err with the class of failure shown to the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "interrupted"
	case errors.IsNotFound(err):
		return fmt.Sprintf("not found: %v", err)
	case errors.IsValidationError(err):
		return fmt.Sprintf("invalid input: %v", err)
	case errors.IsStoreError(err):
		return fmt.Sprintf("store error: %v", err)
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
