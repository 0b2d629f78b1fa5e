/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command itemctl manages items in the configured document store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, &app{out: os.Stdout}, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
